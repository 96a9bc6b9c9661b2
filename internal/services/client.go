// HTTP client for the salon REST backend
package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/salonx/internal/models"
	"github.com/desertthunder/salonx/internal/shared"
	"github.com/google/uuid"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"golang.org/x/oauth2"
)

const defaultBaseURL = "http://localhost:8000"

// ClientOpts configures [NewClient]. Every field is optional.
type ClientOpts struct {
	HTTPClient *http.Client
	Session    models.Session
	Logger     *log.Logger
	Timeout    time.Duration // zero means no timeout
}

// Client performs JSON requests against the salon backend on behalf of a [models.Session].
type Client struct {
	baseURL string
	base    http.RoundTripper
	timeout time.Duration
	logger  *log.Logger

	mu         sync.RWMutex
	session    models.Session
	httpClient *http.Client
}

// FormFile is one file part of a multipart request.
type FormFile struct {
	Field    string
	Filename string
	Data     []byte
}

// NewClient creates a client for baseURL. Outbound requests are traced with otelhttp.
func NewClient(baseURL string, opts ClientOpts) *Client {
	if baseURL == "" {
		baseURL = defaultBaseURL
	}

	base := http.DefaultTransport
	if opts.HTTPClient != nil && opts.HTTPClient.Transport != nil {
		base = opts.HTTPClient.Transport
	}

	timeout := opts.Timeout
	if opts.HTTPClient != nil && timeout == 0 {
		timeout = opts.HTTPClient.Timeout
	}

	logger := opts.Logger
	if logger == nil {
		logger = log.Default()
	}

	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		base:    otelhttp.NewTransport(base),
		timeout: timeout,
		logger:  logger.With("client", "api"),
	}
	c.SetSession(opts.Session)
	return c
}

// BaseURL returns the backend root URL.
func (c *Client) BaseURL() string { return c.baseURL }

// Session returns the session the client currently sends.
func (c *Client) Session() models.Session {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.session
}

// SetSession replaces the session, rebuilding the authorizing transport.
func (c *Client) SetSession(s models.Session) {
	transport := c.base
	if s.Authenticated() {
		transport = &oauth2.Transport{
			Source: oauth2.StaticTokenSource(&oauth2.Token{AccessToken: s.Token, TokenType: "Bearer"}),
			Base:   c.base,
		}
	}

	c.mu.Lock()
	c.session = s
	c.httpClient = &http.Client{Transport: transport, Timeout: c.timeout}
	c.mu.Unlock()
}

// Get sends GET path?query and decodes the JSON response into out.
func (c *Client) Get(ctx context.Context, path string, query url.Values, out any) error {
	endpoint := path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}
	return c.doRequest(ctx, http.MethodGet, endpoint, nil, "", out)
}

// Post sends body as JSON and decodes the JSON response into out.
func (c *Client) Post(ctx context.Context, path string, body, out any) error {
	data, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("failed to encode request: %w", err)
	}
	return c.doRequest(ctx, http.MethodPost, path, data, "application/json", out)
}

// PostMultipart sends fields and files as multipart/form-data. Fields are written in key order.
func (c *Client) PostMultipart(ctx context.Context, path string, fields map[string]string, files []FormFile, out any) error {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, k := range keys {
		if err := w.WriteField(k, fields[k]); err != nil {
			return fmt.Errorf("failed to write field %s: %w", k, err)
		}
	}

	for _, f := range files {
		part, err := w.CreateFormFile(f.Field, f.Filename)
		if err != nil {
			return fmt.Errorf("failed to create file part %s: %w", f.Field, err)
		}
		if _, err := part.Write(f.Data); err != nil {
			return fmt.Errorf("failed to write file part %s: %w", f.Field, err)
		}
	}

	if err := w.Close(); err != nil {
		return fmt.Errorf("failed to close multipart body: %w", err)
	}
	return c.doRequest(ctx, http.MethodPost, path, buf.Bytes(), w.FormDataContentType(), out)
}

func (c *Client) doRequest(ctx context.Context, method, endpoint string, body []byte, contentType string, out any) error {
	c.mu.RLock()
	session, client := c.session, c.httpClient
	c.mu.RUnlock()

	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+endpoint, reader)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", uuid.NewString())
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	if session.Locale != "" {
		req.Header.Set("Accept-Language", session.Locale)
	}
	if session.Currency != "" {
		req.Header.Set("X-Currency", session.Currency)
	}

	start := time.Now()
	resp, err := client.Do(req)
	if err != nil {
		c.logger.Debug("request failed", "method", method, "path", endpoint, "error", err)
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	c.logger.Debug("request", "method", method, "path", endpoint, "status", resp.StatusCode, "elapsed", time.Since(start))

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return newAPIError(resp.StatusCode, data)
	}

	if out != nil && len(bytes.TrimSpace(data)) > 0 {
		if err := json.Unmarshal(data, out); err != nil {
			return fmt.Errorf("failed to decode response: %w", err)
		}
	}
	return nil
}

// APIError is a non-2xx response from the backend.
type APIError struct {
	Status int
	Detail string
}

// Error returns the backend detail when present, otherwise "HTTP {status}".
func (e *APIError) Error() string {
	if e.Detail != "" {
		return e.Detail
	}
	return fmt.Sprintf("HTTP %d", e.Status)
}

// Unwrap lets callers match [shared.ErrAPIRequest], plus [shared.ErrNotFound] and [shared.ErrNotAuthenticated] by status.
func (e *APIError) Unwrap() []error {
	errs := []error{shared.ErrAPIRequest}
	switch e.Status {
	case http.StatusNotFound:
		errs = append(errs, shared.ErrNotFound)
	case http.StatusUnauthorized:
		errs = append(errs, shared.ErrNotAuthenticated)
	case http.StatusServiceUnavailable:
		errs = append(errs, shared.ErrServiceUnavailable)
	}
	return errs
}

// newAPIError reads a FastAPI style error body: detail is either a string or a list of {msg}.
func newAPIError(status int, body []byte) *APIError {
	var payload struct {
		Detail json.RawMessage `json:"detail"`
	}
	if err := json.Unmarshal(body, &payload); err != nil || len(payload.Detail) == 0 {
		return &APIError{Status: status}
	}

	var detail string
	if err := json.Unmarshal(payload.Detail, &detail); err == nil {
		return &APIError{Status: status, Detail: detail}
	}

	var items []struct {
		Msg string `json:"msg"`
	}
	if err := json.Unmarshal(payload.Detail, &items); err == nil {
		msgs := make([]string, 0, len(items))
		for _, it := range items {
			if it.Msg != "" {
				msgs = append(msgs, it.Msg)
			}
		}
		return &APIError{Status: status, Detail: strings.Join(msgs, "; ")}
	}

	return &APIError{Status: status}
}
