// Package archive selects entries from compressed subtitle archives and
// runs the XML stripping pass that produces a stripped archive.
package archive
