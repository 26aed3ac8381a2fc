package media

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"autopost/internal/config"
	"autopost/internal/googleapi"
	"autopost/internal/logging"
	"autopost/internal/services"
	"autopost/internal/wordpress"
)

// FallbackChoice is the operator's answer to a failed image upload.
type FallbackChoice int

const (
	// FallbackSkip abandons the image and continues without one.
	FallbackSkip FallbackChoice = iota
	// FallbackNewURL retries with a replacement URL.
	FallbackNewURL
	// FallbackLocalFile uploads a file from the local filesystem instead.
	FallbackLocalFile
)

// Downloader fetches files from Google Drive.
type Downloader interface {
	FetchDriveFile(ctx context.Context, fileID string) (*googleapi.DriveFile, error)
}

// Library uploads files to the WordPress media library.
type Library interface {
	UploadMedia(ctx context.Context, filename, mimeType string, data []byte, caption string) (*wordpress.Media, error)
}

// Prompter asks the operator what to do when an image cannot be uploaded.
// The second return value carries the replacement URL or local path when the
// choice needs one.
type Prompter interface {
	ImageFallback(ctx context.Context, reason string) (FallbackChoice, string, error)
}

// Processor downloads and uploads featured images.
type Processor struct {
	downloads  Downloader
	library    Library
	prompt     Prompter
	httpClient *http.Client
	logger     *slog.Logger

	uploadRetries   int
	retryDelay      time.Duration
	fallbackRetries int
	fallbackDelay   time.Duration

	sleep func(time.Duration)
}

// Option configures a Processor.
type Option func(*Processor)

// WithHTTPClient overrides the client used for plain URL downloads.
func WithHTTPClient(client *http.Client) Option {
	return func(p *Processor) {
		if client != nil {
			p.httpClient = client
		}
	}
}

// WithSleep overrides the retry delay function.
func WithSleep(sleep func(time.Duration)) Option {
	return func(p *Processor) {
		if sleep != nil {
			p.sleep = sleep
		}
	}
}

// NewProcessor creates an image processor with the configured retry policy.
func NewProcessor(downloads Downloader, library Library, prompt Prompter, cfg config.Media, logger *slog.Logger, opts ...Option) *Processor {
	processor := &Processor{
		downloads:       downloads,
		library:         library,
		prompt:          prompt,
		httpClient:      &http.Client{Timeout: 60 * time.Second},
		logger:          logging.NewComponentLogger(logger, "media"),
		uploadRetries:   cfg.UploadRetries,
		retryDelay:      time.Duration(cfg.RetryDelaySeconds) * time.Second,
		fallbackRetries: cfg.FallbackRetries,
		fallbackDelay:   time.Duration(cfg.FallbackDelaySeconds) * time.Second,
		sleep:           time.Sleep,
	}
	for _, opt := range opts {
		opt(processor)
	}
	return processor
}

// ProcessImage downloads the image at imageURL and uploads it to the media
// library. When the normal path fails it consults the operator, who may
// supply a replacement URL, point at a local file, or skip the image. A skip
// returns nil media with nil error.
func (p *Processor) ProcessImage(ctx context.Context, imageURL, caption string) (*wordpress.Media, error) {
	media, err := p.attempt(ctx, imageURL, caption, p.uploadRetries, p.retryDelay)
	if err == nil {
		return media, nil
	}
	p.logger.Warn("image upload failed", logging.String("url", imageURL), logging.Error(err))

	for {
		choice, value, promptErr := p.prompt.ImageFallback(ctx, err.Error())
		if promptErr != nil {
			return nil, promptErr
		}
		switch choice {
		case FallbackSkip:
			p.logger.Info("image skipped by operator")
			return nil, nil
		case FallbackNewURL:
			media, err = p.attempt(ctx, value, caption, p.fallbackRetries, p.fallbackDelay)
		case FallbackLocalFile:
			media, err = p.uploadLocal(ctx, value, caption)
		default:
			return nil, fmt.Errorf("unknown fallback choice %d", choice)
		}
		if err == nil {
			return media, nil
		}
		p.logger.Warn("fallback attempt failed", logging.Error(err))
	}
}

// attempt downloads and uploads once per try, sleeping between tries.
func (p *Processor) attempt(ctx context.Context, imageURL, caption string, tries int, delay time.Duration) (*wordpress.Media, error) {
	if tries < 1 {
		tries = 1
	}
	var lastErr error
	for i := 0; i < tries; i++ {
		if i > 0 {
			p.sleep(delay)
		}
		media, err := p.fetchAndUpload(ctx, imageURL, caption)
		if err == nil {
			return media, nil
		}
		lastErr = err
	}
	return nil, lastErr
}

func (p *Processor) fetchAndUpload(ctx context.Context, imageURL, caption string) (*wordpress.Media, error) {
	name, mimeType, data, err := p.fetch(ctx, imageURL)
	if err != nil {
		return nil, err
	}
	ext, err := ImageExtension(name, mimeType)
	if err != nil {
		return nil, services.Wrap(services.ErrValidation, "media", "process image", "image format rejected", err)
	}
	media, err := p.library.UploadMedia(ctx, UniqueFilename(ext), MIMEForExtension(ext), data, caption)
	if err != nil {
		return nil, services.Wrap(services.ErrExternal, "media", "process image", "media upload failed", err)
	}
	return media, nil
}

func (p *Processor) fetch(ctx context.Context, imageURL string) (string, string, []byte, error) {
	if googleapi.IsDriveURL(imageURL) {
		fileID, err := googleapi.DriveFileID(imageURL)
		if err != nil {
			return "", "", nil, services.Wrap(services.ErrValidation, "media", "fetch image", "unrecognized drive url", err)
		}
		file, err := p.downloads.FetchDriveFile(ctx, fileID)
		if err != nil {
			return "", "", nil, services.Wrap(services.ErrExternal, "media", "fetch image", "drive download failed", err)
		}
		return file.Name, file.MIMEType, file.Data, nil
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, imageURL, nil)
	if err != nil {
		return "", "", nil, services.Wrap(services.ErrValidation, "media", "fetch image", "invalid image url", err)
	}
	resp, err := p.httpClient.Do(req)
	if err != nil {
		return "", "", nil, services.Wrap(services.ErrExternal, "media", "fetch image", "image download failed", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return "", "", nil, services.Wrap(services.ErrExternal, "media", "fetch image",
			fmt.Sprintf("image download returned %d", resp.StatusCode), nil)
	}
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", "", nil, services.Wrap(services.ErrExternal, "media", "fetch image", "reading image body failed", err)
	}
	return filepath.Base(req.URL.Path), resp.Header.Get("Content-Type"), data, nil
}

func (p *Processor) uploadLocal(ctx context.Context, path, caption string) (*wordpress.Media, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, services.Wrap(services.ErrValidation, "media", "process image", "local file unreadable", err)
	}
	ext, err := ImageExtension(path, "")
	if err != nil {
		return nil, services.Wrap(services.ErrValidation, "media", "process image", "image format rejected", err)
	}
	media, err := p.library.UploadMedia(ctx, UniqueFilename(ext), MIMEForExtension(ext), data, caption)
	if err != nil {
		return nil, services.Wrap(services.ErrExternal, "media", "process image", "media upload failed", err)
	}
	return media, nil
}
