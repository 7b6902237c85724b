package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"
)

// maxResponseBytes bounds JSON replies read into memory.
const maxResponseBytes = 32 << 20

// Client talks to the external REST backend.
type Client struct {
	baseURL string
	http    *http.Client
	logger  *zap.Logger
	maxBody int64
}

// NewClient creates a Client for baseURL. A nil httpClient gets one with timeout.
func NewClient(baseURL string, timeout time.Duration, httpClient *http.Client, logger *zap.Logger) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: timeout}
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    httpClient,
		logger:  logger,
		maxBody: maxResponseBytes,
	}
}

// BaseURL returns the upstream base the client was built with.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// Do sends req and reads the whole reply. Non-2xx statuses are not errors here.
func (c *Client) Do(ctx context.Context, req Request) (*Response, error) {
	method := req.Method
	if method == "" {
		method = http.MethodGet
	}

	target := c.baseURL + "/" + strings.TrimLeft(req.Path, "/")
	if len(req.Query) > 0 {
		target += "?" + req.Query.Encode()
	}

	var body io.Reader
	switch {
	case req.RawBody != nil:
		body = bytes.NewReader(req.RawBody)
	case req.Body != nil:
		payload, err := json.Marshal(req.Body)
		if err != nil {
			return nil, fmt.Errorf("backend: encode request body: %w", err)
		}
		body = bytes.NewReader(payload)
	}

	httpReq, err := http.NewRequestWithContext(ctx, method, target, body)
	if err != nil {
		return nil, fmt.Errorf("backend: build request: %w", err)
	}
	httpReq.Header.Set("Accept", "application/json")
	if body != nil {
		httpReq.Header.Set("Content-Type", "application/json")
	}
	if req.Token != "" {
		httpReq.Header.Set("Authorization", "Bearer "+req.Token)
	}

	start := time.Now()
	resp, err := c.http.Do(httpReq)
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		c.logger.Warn("backend request failed",
			zap.String("method", method), zap.String("path", req.Path), zap.Error(err))
		return nil, &NetworkError{Err: err}
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, c.maxBody+1))
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, &NetworkError{Err: err}
	}
	if int64(len(data)) > c.maxBody {
		c.logger.Warn("backend response too large",
			zap.String("method", method), zap.String("path", req.Path), zap.Int64("limit", c.maxBody))
		return nil, ErrResponseTooLarge
	}

	c.logger.Debug("backend request",
		zap.String("method", method),
		zap.String("path", req.Path),
		zap.Int("status", resp.StatusCode),
		zap.Duration("latency", time.Since(start)),
	)
	return &Response{Status: resp.StatusCode, Header: resp.Header, Body: data}, nil
}

// JSON sends req and decodes a 2xx body into out. Non-2xx replies become an
// *UpstreamError. out may be nil.
func (c *Client) JSON(ctx context.Context, req Request, out any) error {
	resp, err := c.Do(ctx, req)
	if err != nil {
		return err
	}
	if !resp.OK() {
		return NewUpstreamError(resp.Status, resp.Body)
	}
	if out == nil || len(bytes.TrimSpace(resp.Body)) == 0 {
		return nil
	}
	if err := json.Unmarshal(resp.Body, out); err != nil {
		return fmt.Errorf("backend: decode %s response: %w", req.Path, err)
	}
	return nil
}

// Ping checks the backend answers at all. Any HTTP status counts as reachable.
func (c *Client) Ping(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/", nil)
	if err != nil {
		return err
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 1<<10))
	return resp.Body.Close()
}
