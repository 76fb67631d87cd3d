// Package testsupport provides shared fixtures for subclean tests: configs
// seeded with per-test temp directories and in-memory zip archive builders.
package testsupport

import (
	"path/filepath"
	"testing"

	"subclean/internal/config"
)

// NewConfig produces a config seeded with unique temp directories per test.
func NewConfig(t testing.TB) *config.Config {
	t.Helper()

	base := t.TempDir()
	cfg := config.Default()
	cfg.Paths.CorporaDir = filepath.Join(base, "corpora")
	cfg.Paths.LogDir = filepath.Join(base, "logs")
	cfg.Join.Progress = false

	if err := cfg.EnsureDirectories(); err != nil {
		t.Fatalf("ensure directories: %v", err)
	}
	return &cfg
}
