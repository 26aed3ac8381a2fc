package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
)

func (c *Config) normalize() error {
	// Values from a .env in the working directory fill environment gaps but
	// never override variables already exported.
	_ = godotenv.Load()

	if err := c.normalizePaths(); err != nil {
		return err
	}
	c.normalizeSheet()
	c.normalizeGoogle()
	c.normalizeWordPress()
	c.normalizeMedia()
	c.normalizeRedaction()
	c.normalizeLogging()
	return nil
}

func (c *Config) normalizePaths() error {
	var err error
	if strings.TrimSpace(c.Paths.DataDir) == "" {
		c.Paths.DataDir = defaultDataDir
	}
	if c.Paths.DataDir, err = expandPath(c.Paths.DataDir); err != nil {
		return fmt.Errorf("paths.data_dir: %w", err)
	}
	if strings.TrimSpace(c.Paths.LogDir) == "" {
		c.Paths.LogDir = defaultLogDir
	}
	if c.Paths.LogDir, err = expandPath(c.Paths.LogDir); err != nil {
		return fmt.Errorf("paths.log_dir: %w", err)
	}
	return nil
}

func (c *Config) normalizeSheet() {
	c.Sheet.Spreadsheet = strings.TrimSpace(c.Sheet.Spreadsheet)
	if c.Sheet.Spreadsheet == "" {
		c.Sheet.Spreadsheet = strings.TrimSpace(os.Getenv("AUTOPOST_SPREADSHEET"))
	}
	if c.Sheet.HeaderRows <= 0 {
		c.Sheet.HeaderRows = defaultHeaderRows
	}
	if len(c.Sheet.ReadyValues) == 0 {
		c.Sheet.ReadyValues = Default().Sheet.ReadyValues
	}
	for i, v := range c.Sheet.ReadyValues {
		c.Sheet.ReadyValues[i] = strings.ToUpper(strings.TrimSpace(v))
	}
	def := Default().Sheet.Columns
	cols := &c.Sheet.Columns
	for _, col := range []struct {
		value *int
		def   int
	}{
		{&cols.Section, def.Section},
		{&cols.Ready, def.Ready},
		{&cols.Online, def.Online},
		{&cols.Story, def.Story},
		{&cols.Author, def.Author},
		{&cols.Image, def.Image},
		{&cols.Categories, def.Categories},
		{&cols.Photographer, def.Photographer},
		{&cols.Headlines, def.Headlines},
		{&cols.Cutlines, def.Cutlines},
	} {
		if *col.value <= 0 {
			*col.value = col.def
		}
	}
}

func (c *Config) normalizeGoogle() {
	if strings.TrimSpace(c.Google.AccessToken) == "" {
		c.Google.AccessToken = strings.TrimSpace(os.Getenv("GOOGLE_ACCESS_TOKEN"))
	}
	c.Google.SheetsBaseURL = normalizeBaseURL(c.Google.SheetsBaseURL, defaultSheetsBaseURL)
	c.Google.DocsBaseURL = normalizeBaseURL(c.Google.DocsBaseURL, defaultDocsBaseURL)
	c.Google.DriveBaseURL = normalizeBaseURL(c.Google.DriveBaseURL, defaultDriveBaseURL)
	if c.Google.RequestTimeout <= 0 {
		c.Google.RequestTimeout = defaultGoogleTimeout
	}
}

func (c *Config) normalizeWordPress() {
	if strings.TrimSpace(c.WordPress.URL) == "" {
		c.WordPress.URL = strings.TrimSpace(os.Getenv("WP_URL"))
	}
	c.WordPress.URL = strings.TrimRight(strings.TrimSpace(c.WordPress.URL), "/")
	if strings.TrimSpace(c.WordPress.User) == "" {
		c.WordPress.User = strings.TrimSpace(os.Getenv("WP_USER"))
	}
	if strings.TrimSpace(c.WordPress.AppPassword) == "" {
		c.WordPress.AppPassword = strings.TrimSpace(os.Getenv("WP_APP_PASSWORD"))
	}
	if c.WordPress.RequestTimeout <= 0 {
		c.WordPress.RequestTimeout = defaultWPTimeout
	}
	if c.WordPress.CategoryPageSize <= 0 {
		c.WordPress.CategoryPageSize = defaultCategoryPageSize
	}
	if strings.TrimSpace(c.WordPress.AuthorRole) == "" {
		c.WordPress.AuthorRole = defaultAuthorRole
	}
	if len(c.WordPress.EmailDomains) == 0 {
		c.WordPress.EmailDomains = Default().WordPress.EmailDomains
	}
}

func (c *Config) normalizeMedia() {
	if c.Media.UploadRetries <= 0 {
		c.Media.UploadRetries = defaultUploadRetries
	}
	if c.Media.RetryDelaySeconds <= 0 {
		c.Media.RetryDelaySeconds = defaultRetryDelaySeconds
	}
	if c.Media.FallbackRetries <= 0 {
		c.Media.FallbackRetries = defaultFallbackRetries
	}
	if c.Media.FallbackDelaySeconds <= 0 {
		c.Media.FallbackDelaySeconds = defaultFallbackDelaySeconds
	}
}

func (c *Config) normalizeRedaction() {
	if c.Redaction.DefaultStartLine <= 0 {
		c.Redaction.DefaultStartLine = defaultRedactionStartLine
	}
	if c.Redaction.PreviewLines <= 0 {
		c.Redaction.PreviewLines = defaultRedactionPreview
	}
}

func (c *Config) normalizeLogging() {
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	if c.Logging.Format == "" {
		c.Logging.Format = defaultLogFormat
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
}

func normalizeBaseURL(value, fallback string) string {
	value = strings.TrimSpace(value)
	if value == "" {
		return fallback
	}
	return strings.TrimRight(value, "/")
}
