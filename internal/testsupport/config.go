package testsupport

import (
	"path/filepath"
	"testing"

	"autopost/internal/config"
)

// ConfigOption allows callers to customize the generated test configuration.
type ConfigOption func(*config.Config)

// NewConfig produces a config seeded with unique temp directories per test.
// It defaults common fields and applies any provided options.
func NewConfig(t testing.TB, opts ...ConfigOption) *config.Config {
	t.Helper()

	base := t.TempDir()
	cfg := config.Default()
	cfg.Paths.DataDir = filepath.Join(base, "data")
	cfg.Paths.LogDir = filepath.Join(base, "logs")
	cfg.Sheet.Spreadsheet = "test-spreadsheet"
	cfg.Google.AccessToken = "test-token"
	cfg.WordPress.URL = "https://wp.test"
	cfg.WordPress.User = "editor"
	cfg.WordPress.AppPassword = "abcd efgh"

	for _, opt := range opts {
		opt(&cfg)
	}
	return &cfg
}

// WithSpreadsheet overrides the spreadsheet reference on the test config.
func WithSpreadsheet(ref string) ConfigOption {
	return func(cfg *config.Config) {
		cfg.Sheet.Spreadsheet = ref
	}
}

// WithHeaderRows overrides the header offset on the test config.
func WithHeaderRows(rows int) ConfigOption {
	return func(cfg *config.Config) {
		cfg.Sheet.HeaderRows = rows
	}
}
