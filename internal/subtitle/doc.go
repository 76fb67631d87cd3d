// Package subtitle parses XML subtitle documents and converts them to the
// plain-text encodings used for corpus building. Parsing is best-effort:
// real-world subtitle XML is routinely malformed and a bad entry must never
// abort a batch.
package subtitle
