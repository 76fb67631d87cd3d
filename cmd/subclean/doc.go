// Package main hosts the subclean CLI entrypoint and command graph.
//
// The Cobra-based command tree turns terminal invocations into corpus
// preparation runs: stripping XML subtitle archives, joining them into
// flat corpus files, deduplicating those files, and inspecting the run
// history. It centralizes configuration resolution and structured logging
// setup so subcommands can focus on argument handling.
//
// Keep this package lean: add new functionality by extending the internal
// packages first, then surface it through dedicated commands or flags here.
package main
