// Package logging constructs the process-wide slog logger. The CLI builds
// one logger at startup from configuration and injects it into every
// component that logs; nothing in this repository relies on slog's global
// default.
package logging
