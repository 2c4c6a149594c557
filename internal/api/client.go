// Package api is the typed HTTP client of the AutoPrestige prediction backend.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// DefaultBaseURL is the loopback address the backend listens on by default.
const DefaultBaseURL = "http://127.0.0.1:8000"

const maxErrorBody = 64 << 10

type Client struct {
	baseURL    string
	httpClient *http.Client
	log        zerolog.Logger
	requestID  func() string
}

type Option func(*Client)

// WithHTTPClient replaces the default http.Client (no timeout).
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

func WithLogger(l zerolog.Logger) Option {
	return func(c *Client) { c.log = l }
}

// WithRequestID overrides the X-Request-ID generator.
func WithRequestID(fn func() string) Option {
	return func(c *Client) { c.requestID = fn }
}

func New(baseURL string, opts ...Option) *Client {
	if strings.TrimSpace(baseURL) == "" {
		baseURL = DefaultBaseURL
	}
	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{},
		log:        zerolog.Nop(),
		requestID:  uuid.NewString,
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

func (c *Client) BaseURL() string { return c.baseURL }

// Endpoints

// Health pings the backend root.
func (c *Client) Health(ctx context.Context) error {
	var out map[string]any
	return c.do(ctx, "health", http.MethodGet, "/", nil, "", &out, false)
}

// Predict submits one vehicle and returns its USD price.
func (c *Client) Predict(ctx context.Context, in ValuationInput) (float64, error) {
	body, err := json.Marshal(in)
	if err != nil {
		return 0, fmt.Errorf("predict: encode: %w", err)
	}
	var out predictResponse
	if err := c.do(ctx, "predict", http.MethodPost, "/predict", bytes.NewReader(body), "application/json", &out, false); err != nil {
		return 0, err
	}
	return out.Price, nil
}

// PredictBatch uploads a spreadsheet as the multipart field "file".
func (c *Client) PredictBatch(ctx context.Context, filename string, r io.Reader) ([]BatchRow, error) {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	part, err := mw.CreateFormFile("file", filepath.Base(filename))
	if err != nil {
		return nil, fmt.Errorf("predict batch: %w", err)
	}
	if _, err := io.Copy(part, r); err != nil {
		return nil, fmt.Errorf("predict batch: read %s: %w", filename, err)
	}
	if err := mw.Close(); err != nil {
		return nil, fmt.Errorf("predict batch: %w", err)
	}
	var out batchResponse
	if err := c.do(ctx, "predict batch", http.MethodPost, "/predict-batch", &buf, mw.FormDataContentType(), &out, true); err != nil {
		return nil, err
	}
	return out.Data, nil
}

func (c *Client) DashboardStats(ctx context.Context) (DashboardStats, error) {
	var out DashboardStats
	if err := c.do(ctx, "dashboard stats", http.MethodGet, "/dashboard-stats", nil, "", &out, false); err != nil {
		return DashboardStats{}, err
	}
	return out, nil
}

func (c *Client) History(ctx context.Context) ([]HistoryRecord, error) {
	var out []HistoryRecord
	if err := c.do(ctx, "history", http.MethodGet, "/history", nil, "", &out, false); err != nil {
		return nil, err
	}
	return out, nil
}

// Chat sends one user message and returns the assistant's reply.
func (c *Client) Chat(ctx context.Context, message string) (string, error) {
	body, err := json.Marshal(chatRequest{Message: message})
	if err != nil {
		return "", fmt.Errorf("chat: encode: %w", err)
	}
	var out chatResponse
	if err := c.do(ctx, "chat", http.MethodPost, "/chat", bytes.NewReader(body), "application/json", &out, false); err != nil {
		return "", err
	}
	return out.Response, nil
}

// Internal helpers

func (c *Client) do(ctx context.Context, op, method, path string, body io.Reader, contentType string, target any, withDetail bool) error {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	req.Header.Set("Accept", "application/json")
	rid := c.requestID()
	req.Header.Set("X-Request-ID", rid)

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.log.Debug().Err(err).Str("op", op).Str("request_id", rid).Msg("request failed")
		return fmt.Errorf("%s: %w", op, err)
	}
	defer resp.Body.Close()

	c.log.Debug().
		Str("op", op).
		Str("method", method).
		Str("path", path).
		Int("status", resp.StatusCode).
		Dur("took", time.Since(start)).
		Str("request_id", rid).
		Msg("backend call")

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := &APIError{Op: op, Status: resp.StatusCode}
		if withDetail {
			raw, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
			apiErr.Detail = parseDetail(raw)
		}
		return apiErr
	}
	if err := json.NewDecoder(resp.Body).Decode(target); err != nil {
		return fmt.Errorf("%s: %w: %v", op, ErrDecode, err)
	}
	return nil
}
