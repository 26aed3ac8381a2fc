package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"sync"
	"time"

	"autopost/internal/config"
	"autopost/internal/googleapi"
	"autopost/internal/logging"
	"autopost/internal/sheet"
	"autopost/internal/sheet/xlsxgrid"
	"autopost/internal/wordpress"
)

type commandContext struct {
	configFlag *string

	configOnce sync.Once
	config     *config.Config
	configErr  error
}

func newCommandContext(configFlag *string) *commandContext {
	return &commandContext{configFlag: configFlag}
}

func (c *commandContext) ensureConfig() (*config.Config, error) {
	c.configOnce.Do(func() {
		var path string
		if c.configFlag != nil {
			path = strings.TrimSpace(*c.configFlag)
		}
		cfg, _, _, err := config.Load(path)
		if err != nil {
			c.configErr = err
			return
		}
		if err := cfg.EnsureDirectories(); err != nil {
			c.configErr = err
			return
		}
		c.config = cfg
	})
	return c.config, c.configErr
}

func (c *commandContext) newLogger() (*slog.Logger, error) {
	cfg, err := c.ensureConfig()
	if err != nil {
		return nil, err
	}
	return logging.NewFromConfig(cfg)
}

func (c *commandContext) googleClient() (*googleapi.Client, error) {
	cfg, err := c.ensureConfig()
	if err != nil {
		return nil, err
	}
	return googleapi.New(cfg.Google.AccessToken,
		googleapi.WithTimeout(time.Duration(cfg.Google.RequestTimeout)*time.Second),
		googleapi.WithSheetsBaseURL(cfg.Google.SheetsBaseURL),
		googleapi.WithDocsBaseURL(cfg.Google.DocsBaseURL),
		googleapi.WithDriveBaseURL(cfg.Google.DriveBaseURL),
	)
}

func (c *commandContext) wordpressClient() (*wordpress.Client, error) {
	cfg, err := c.ensureConfig()
	if err != nil {
		return nil, err
	}
	return wordpress.New(cfg.WordPress.URL, cfg.WordPress.User, cfg.WordPress.AppPassword,
		wordpress.WithTimeout(time.Duration(cfg.WordPress.RequestTimeout)*time.Second),
		wordpress.WithCategoryPageSize(cfg.WordPress.CategoryPageSize),
	)
}

// loadGrid resolves the spreadsheet reference to a grid. A reference that
// names an existing .xlsx file is read locally; anything else is treated as
// a Google Sheets URL or ID.
func (c *commandContext) loadGrid(ctx context.Context, ref string) (*sheet.Grid, string, error) {
	cfg, err := c.ensureConfig()
	if err != nil {
		return nil, "", err
	}
	ref = strings.TrimSpace(ref)
	if ref == "" {
		ref = cfg.Sheet.Spreadsheet
	}
	if ref == "" {
		return nil, "", fmt.Errorf("no spreadsheet configured; pass one or set sheet.spreadsheet")
	}

	if strings.HasSuffix(strings.ToLower(ref), ".xlsx") {
		if _, err := os.Stat(ref); err != nil {
			return nil, "", fmt.Errorf("spreadsheet file %s: %w", ref, err)
		}
		grid, err := xlsxgrid.Load(ref, "")
		if err != nil {
			return nil, "", err
		}
		return grid, "", nil
	}

	spreadsheetID, err := googleapi.SpreadsheetID(ref)
	if err != nil {
		return nil, "", err
	}
	google, err := c.googleClient()
	if err != nil {
		return nil, "", err
	}
	grid, err := google.FetchGrid(ctx, spreadsheetID)
	if err != nil {
		return nil, "", err
	}
	return grid, spreadsheetID, nil
}
