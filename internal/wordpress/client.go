package wordpress

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

const defaultCategoryPageSize = 100

// Client provides access to a WordPress site's wp/v2 REST API.
type Client struct {
	baseURL          string
	user             string
	appPassword      string
	categoryPageSize int
	httpClient       *http.Client
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient overrides the default HTTP client.
func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		if client != nil {
			c.httpClient = client
		}
	}
}

// WithTimeout overrides the default request timeout.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		if timeout > 0 {
			c.httpClient.Timeout = timeout
		}
	}
}

// WithCategoryPageSize overrides the page size used when listing categories.
func WithCategoryPageSize(size int) Option {
	return func(c *Client) {
		if size > 0 {
			c.categoryPageSize = size
		}
	}
}

// New creates a WordPress client for the given site.
func New(baseURL, user, appPassword string, opts ...Option) (*Client, error) {
	baseURL = strings.TrimSpace(baseURL)
	if baseURL == "" {
		return nil, errors.New("wordpress url required")
	}
	user = strings.TrimSpace(user)
	if user == "" {
		return nil, errors.New("wordpress user required")
	}
	appPassword = strings.TrimSpace(appPassword)
	if appPassword == "" {
		return nil, errors.New("wordpress application password required")
	}
	client := &Client{
		baseURL:          strings.TrimRight(baseURL, "/"),
		user:             user,
		appPassword:      appPassword,
		categoryPageSize: defaultCategoryPageSize,
		httpClient:       &http.Client{Timeout: 60 * time.Second},
	}
	for _, opt := range opts {
		opt(client)
	}
	return client, nil
}

func (c *Client) endpoint(path string) string {
	return c.baseURL + "/wp-json/wp/v2" + path
}

func (c *Client) do(ctx context.Context, method, path string, body io.Reader, contentType string, out any) error {
	req, err := http.NewRequestWithContext(ctx, method, c.endpoint(path), body)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.SetBasicAuth(c.user, c.appPassword)
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("execute request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return c.apiError(resp)
	}
	if out == nil {
		io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

func (c *Client) getJSON(ctx context.Context, path string, out any) error {
	return c.do(ctx, http.MethodGet, path, nil, "", out)
}

func (c *Client) postJSON(ctx context.Context, path string, body any, out any) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("encode request: %w", err)
	}
	return c.do(ctx, http.MethodPost, path, bytes.NewReader(payload), "application/json", out)
}

// APIError is a non-2xx WordPress response, carrying the REST error code
// when the payload follows the standard error shape.
type APIError struct {
	StatusCode int    `json:"-"`
	Code       string `json:"code"`
	Message    string `json:"message"`
}

func (e *APIError) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("wordpress returned %d: %s (%s)", e.StatusCode, e.Message, e.Code)
	}
	return fmt.Sprintf("wordpress returned %d", e.StatusCode)
}

func (c *Client) apiError(resp *http.Response) error {
	data, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
	apiErr := &APIError{StatusCode: resp.StatusCode}
	_ = json.Unmarshal(data, apiErr)
	return apiErr
}
