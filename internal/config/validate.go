package config

import (
	"errors"
	"fmt"
	"strings"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validateWordPress(); err != nil {
		return err
	}
	if err := c.validateSheet(); err != nil {
		return err
	}
	if err := c.validateLogging(); err != nil {
		return err
	}
	return nil
}

func (c *Config) validateWordPress() error {
	if strings.TrimSpace(c.WordPress.URL) == "" {
		defaultPath, err := DefaultConfigPath()
		if err != nil {
			defaultPath = "~/.config/autopost/config.toml"
		}
		return fmt.Errorf("wordpress.url is required. Set WP_URL env var or edit %s (create with 'autopost config init')", defaultPath)
	}
	if strings.TrimSpace(c.WordPress.User) == "" {
		return errors.New("wordpress.user is required (WP_USER)")
	}
	if strings.TrimSpace(c.WordPress.AppPassword) == "" {
		return errors.New("wordpress.app_password is required (WP_APP_PASSWORD)")
	}
	return nil
}

func (c *Config) validateSheet() error {
	cols := c.Sheet.Columns
	seen := map[int]string{}
	for _, col := range []struct {
		name  string
		value int
	}{
		{"sheet.columns.ready", cols.Ready},
		{"sheet.columns.online", cols.Online},
		{"sheet.columns.story", cols.Story},
	} {
		if col.value <= 0 {
			return fmt.Errorf("%s must be a positive column number", col.name)
		}
		if prev, ok := seen[col.value]; ok {
			return fmt.Errorf("%s and %s both map to column %d", prev, col.name, col.value)
		}
		seen[col.value] = col.name
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch c.Logging.Format {
	case "console", "json":
		return nil
	default:
		return fmt.Errorf("logging.format: unsupported value %q", c.Logging.Format)
	}
}
