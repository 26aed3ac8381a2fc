package config

import (
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

//go:embed sample_config.toml
var sampleConfig string

// Paths contains directory configuration.
type Paths struct {
	DataDir string `toml:"data_dir"`
	LogDir  string `toml:"log_dir"`
}

// Sheet describes where content candidates live inside the spreadsheet.
type Sheet struct {
	Spreadsheet string `toml:"spreadsheet"`
	HeaderRows  int    `toml:"header_rows"`
	// ReadyValues is the upper-cased truthy set for the ready/online columns.
	ReadyValues []string `toml:"ready_values"`
	Columns     Columns  `toml:"columns"`
}

// Columns maps 1-based spreadsheet column numbers to their meaning.
type Columns struct {
	Section      int `toml:"section"`
	Ready        int `toml:"ready"`
	Online       int `toml:"online"`
	Story        int `toml:"story"`
	Author       int `toml:"author"`
	Image        int `toml:"image"`
	Categories   int `toml:"categories"`
	Photographer int `toml:"photographer"`
	Headlines    int `toml:"headlines"`
	Cutlines     int `toml:"cutlines"`
}

// Google contains Google Sheets/Docs/Drive API settings. The access token is
// expected to arrive from the environment; credential acquisition itself is
// out of scope for this tool.
type Google struct {
	AccessToken    string `toml:"access_token"`
	SheetsBaseURL  string `toml:"sheets_base_url"`
	DocsBaseURL    string `toml:"docs_base_url"`
	DriveBaseURL   string `toml:"drive_base_url"`
	RequestTimeout int    `toml:"request_timeout"`
}

// WordPress contains settings for the content backend.
type WordPress struct {
	URL              string   `toml:"url"`
	User             string   `toml:"user"`
	AppPassword      string   `toml:"app_password"`
	RequestTimeout   int      `toml:"request_timeout"`
	CategoryPageSize int      `toml:"category_page_size"`
	AuthorRole       string   `toml:"author_role"`
	EmailDomains     []string `toml:"email_domains"`
}

// Media contains featured image upload settings.
type Media struct {
	UploadRetries        int `toml:"upload_retries"`
	RetryDelaySeconds    int `toml:"retry_delay_seconds"`
	FallbackRetries      int `toml:"fallback_retries"`
	FallbackDelaySeconds int `toml:"fallback_delay_seconds"`
}

// Redaction contains settings for the interactive body-start selection.
type Redaction struct {
	DefaultStartLine int `toml:"default_start_line"`
	PreviewLines     int `toml:"preview_lines"`
}

// Logging contains configuration for log output.
type Logging struct {
	Format string `toml:"format"`
	Level  string `toml:"level"`
}

// Config encapsulates all configuration values for autopost.
//
// Configuration sections by subsystem:
//   - Paths: data (run journal, lock) and log directories
//   - Sheet: spreadsheet identity, header offset, column layout, truthy set
//   - Google: Sheets/Docs/Drive API access
//   - WordPress: backend URL, credentials, taxonomy settings
//   - Media: featured image retry budget
//   - Redaction: body-start selection defaults
//   - Logging: log format and level
type Config struct {
	Paths     Paths     `toml:"paths"`
	Sheet     Sheet     `toml:"sheet"`
	Google    Google    `toml:"google"`
	WordPress WordPress `toml:"wordpress"`
	Media     Media     `toml:"media"`
	Redaction Redaction `toml:"redaction"`
	Logging   Logging   `toml:"logging"`
}

// DefaultConfigPath returns the absolute path to the default configuration file location.
func DefaultConfigPath() (string, error) {
	return expandPath("~/.config/autopost/config.toml")
}

// Load locates, parses, and validates a configuration file. The returned
// config has all path fields expanded and secrets resolved from the
// environment where the file leaves them blank.
func Load(path string) (*Config, string, bool, error) {
	cfg := Default()

	resolvedPath, exists, err := resolveConfigPath(path)
	if err != nil {
		return nil, "", false, err
	}

	if exists {
		file, err := os.Open(resolvedPath)
		if err != nil {
			return nil, "", false, fmt.Errorf("open config: %w", err)
		}
		defer file.Close()

		decoder := toml.NewDecoder(file)
		if err := decoder.Decode(&cfg); err != nil {
			return nil, "", false, fmt.Errorf("parse config: %w", err)
		}
	}

	if err := cfg.normalize(); err != nil {
		return nil, "", false, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, "", false, err
	}

	return &cfg, resolvedPath, exists, nil
}

func resolveConfigPath(path string) (string, bool, error) {
	if path != "" {
		expanded, err := expandPath(path)
		if err != nil {
			return "", false, err
		}
		_, err = os.Stat(expanded)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return expanded, false, nil
			}
			return "", false, fmt.Errorf("stat config: %w", err)
		}
		return expanded, true, nil
	}

	defaultPath, err := DefaultConfigPath()
	if err != nil {
		return "", false, err
	}

	projectPath, err := filepath.Abs("autopost.toml")
	if err != nil {
		return "", false, err
	}

	if info, err := os.Stat(defaultPath); err == nil && !info.IsDir() {
		return defaultPath, true, nil
	}
	if info, err := os.Stat(projectPath); err == nil && !info.IsDir() {
		return projectPath, true, nil
	}

	return defaultPath, false, nil
}

// EnsureDirectories creates the directories a run needs before it starts.
func (c *Config) EnsureDirectories() error {
	for _, dir := range []string{c.Paths.DataDir, c.Paths.LogDir} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create directory %q: %w", dir, err)
		}
	}
	return nil
}

func expandPath(pathValue string) (string, error) {
	if pathValue == "" {
		return pathValue, nil
	}
	if strings.HasPrefix(pathValue, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home directory: %w", err)
		}
		if pathValue == "~" {
			pathValue = home
		} else if len(pathValue) > 1 && (pathValue[1] == '/' || pathValue[1] == '\\') {
			pathValue = filepath.Join(home, pathValue[2:])
		}
	}
	cleaned := filepath.Clean(pathValue)
	absolute, err := filepath.Abs(cleaned)
	if err != nil {
		return "", fmt.Errorf("resolve absolute path for %q: %w", cleaned, err)
	}
	return absolute, nil
}

// ExpandPath exposes the repository path expansion rules for other packages.
func ExpandPath(pathValue string) (string, error) {
	return expandPath(pathValue)
}

// CreateSample writes a sample configuration file to the specified location.
func CreateSample(path string) error {
	expanded, err := expandPath(path)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(expanded), 0o755); err != nil {
		return fmt.Errorf("create config directory: %w", err)
	}
	if err := os.WriteFile(expanded, []byte(sampleConfig), 0o644); err != nil {
		return fmt.Errorf("write sample config: %w", err)
	}
	return nil
}
