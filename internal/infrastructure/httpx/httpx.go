package httpx

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"go.uber.org/zap"
)

const defaultMaxBody = 1 << 20

// StatusError reports a non-2xx answer. Body holds the start of the payload.
type StatusError struct {
	Code int
	Body string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("status %d: %s", e.Code, e.Body)
}

// Client issues single-shot JSON requests. There is no retry.
type Client struct {
	HTTP    *http.Client
	MaxBody int64
	Log     *zap.Logger
}

func (c *Client) GetJSON(ctx context.Context, url string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("new request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	return c.DoJSON(req, out)
}

func (c *Client) DoJSON(req *http.Request, out any) error {
	hc := c.HTTP
	if hc == nil {
		hc = http.DefaultClient
	}
	limit := c.MaxBody
	if limit <= 0 {
		limit = defaultMaxBody
	}
	log := c.Log
	if log == nil {
		log = zap.NewNop()
	}

	start := time.Now()
	resp, err := hc.Do(req)
	if err != nil {
		log.Warn("http.request_failed", zap.String("url", req.URL.Redacted()), zap.Error(err))
		return fmt.Errorf("do request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()
	log.Info("http.request",
		zap.String("method", req.Method),
		zap.String("url", req.URL.Redacted()),
		zap.Int("status", resp.StatusCode),
		zap.Duration("duration", time.Since(start)),
	)

	body := io.LimitReader(resp.Body, limit)
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		snippet, _ := io.ReadAll(io.LimitReader(body, 512))
		return &StatusError{Code: resp.StatusCode, Body: string(snippet)}
	}
	if err := json.NewDecoder(body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}
