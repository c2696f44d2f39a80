package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"golang.org/x/oauth2"

	"github.com/preston-bernstein/season-weeks-service/internal/logging"
)

const maxErrorBody = 4 << 10

// Config controls how the client reaches the backend API.
type Config struct {
	BaseURL    string
	HTTPClient *http.Client
	// TokenSource supplies the bearer token; nil sends anonymous requests.
	TokenSource oauth2.TokenSource
	// OnUnauthorized runs after any 401 response, typically clearing the session.
	OnUnauthorized func()
	Logger         *slog.Logger
}

// Client is a typed wrapper over the scenario backend REST API.
type Client struct {
	baseURL        string
	httpClient     httpDoer
	onUnauthorized func()
	logger         *slog.Logger
	now            func() time.Time
}

// New constructs a Client.
func New(cfg Config) *Client {
	return &Client{
		baseURL:        normalizeBaseURL(cfg.BaseURL),
		httpClient:     resolveHTTPClient(cfg.HTTPClient, cfg.TokenSource),
		onUnauthorized: cfg.OnUnauthorized,
		logger:         cfg.Logger,
		now:            time.Now,
	}
}

// BaseURL returns the normalized API root.
func (c *Client) BaseURL() string {
	return c.baseURL
}

type errorBody struct {
	Error   string   `json:"error"`
	Message string   `json:"message"`
	Errors  []string `json:"errors"`
}

// do sends a JSON request and decodes a JSON response into out when non-nil.
func (c *Client) do(ctx context.Context, method, path string, in, out any) error {
	var body io.Reader
	if in != nil {
		buf, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("encode %s %s: %w", method, path, err)
		}
		body = bytes.NewReader(buf)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	start := c.now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	logging.FromContext(ctx, c.logger).Debug("backend request",
		logging.FieldMethod, method,
		logging.FieldPath, path,
		logging.FieldStatusCode, resp.StatusCode,
		logging.FieldDurationMS, c.now().Sub(start).Milliseconds(),
	)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := c.decodeError(method, path, resp)
		if resp.StatusCode == http.StatusUnauthorized && c.onUnauthorized != nil {
			c.onUnauthorized()
		}
		return apiErr
	}

	if out == nil || resp.StatusCode == http.StatusNoContent {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode %s %s: %w", method, path, err)
	}
	return nil
}

func (c *Client) decodeError(method, path string, resp *http.Response) *APIError {
	apiErr := &APIError{
		Method:     method,
		Path:       path,
		StatusCode: resp.StatusCode,
		RetryAfter: parseRetryAfter(resp.Header.Get("Retry-After"), c.now()),
	}
	raw, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	var eb errorBody
	if json.Unmarshal(raw, &eb) == nil {
		apiErr.Message = eb.Error
		if apiErr.Message == "" {
			apiErr.Message = eb.Message
		}
		apiErr.Details = eb.Errors
	} else {
		apiErr.Message = string(bytes.TrimSpace(raw))
	}
	return apiErr
}
