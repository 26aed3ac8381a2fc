package config

const (
	defaultDataDir              = "~/.local/share/autopost"
	defaultLogDir               = "~/.local/share/autopost/logs"
	defaultHeaderRows           = 7
	defaultSheetsBaseURL        = "https://sheets.googleapis.com"
	defaultDocsBaseURL          = "https://docs.googleapis.com"
	defaultDriveBaseURL         = "https://www.googleapis.com"
	defaultGoogleTimeout        = 30
	defaultWPTimeout            = 30
	defaultCategoryPageSize     = 100
	defaultAuthorRole           = "staff-writer"
	defaultUploadRetries        = 2
	defaultRetryDelaySeconds    = 2
	defaultFallbackRetries      = 3
	defaultFallbackDelaySeconds = 3
	defaultRedactionStartLine   = 4
	defaultRedactionPreview     = 9
	defaultLogFormat            = "console"
	defaultLogLevel             = "info"
)

// Default returns a Config populated with repository defaults. Column numbers
// follow the newsroom sheet layout: section in A, ready checkbox in B, online
// checkbox in D, story link in E, byline in H, image link in N, categories in
// O, photographer and headlines doc in P, cutlines doc in Q.
func Default() Config {
	return Config{
		Paths: Paths{
			DataDir: defaultDataDir,
			LogDir:  defaultLogDir,
		},
		Sheet: Sheet{
			HeaderRows:  defaultHeaderRows,
			ReadyValues: []string{"TRUE", "✓", "YES", "1"},
			Columns: Columns{
				Section:      1,
				Ready:        2,
				Online:       4,
				Story:        5,
				Author:       8,
				Image:        14,
				Categories:   15,
				Photographer: 16,
				Headlines:    16,
				Cutlines:     17,
			},
		},
		Google: Google{
			SheetsBaseURL:  defaultSheetsBaseURL,
			DocsBaseURL:    defaultDocsBaseURL,
			DriveBaseURL:   defaultDriveBaseURL,
			RequestTimeout: defaultGoogleTimeout,
		},
		WordPress: WordPress{
			RequestTimeout:   defaultWPTimeout,
			CategoryPageSize: defaultCategoryPageSize,
			AuthorRole:       defaultAuthorRole,
			EmailDomains:     []string{"nogood.com", "nogood.net"},
		},
		Media: Media{
			UploadRetries:        defaultUploadRetries,
			RetryDelaySeconds:    defaultRetryDelaySeconds,
			FallbackRetries:      defaultFallbackRetries,
			FallbackDelaySeconds: defaultFallbackDelaySeconds,
		},
		Redaction: Redaction{
			DefaultStartLine: defaultRedactionStartLine,
			PreviewLines:     defaultRedactionPreview,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
