// Package search implements the outbound search API adapter
package search

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"math/rand"
	"net/http"
	"time"

	perr "prospector/internal/platform/errors"
	"prospector/internal/platform/logger"
)

// Result is one organic search hit
type Result struct {
	Title   string `json:"title"`
	URL     string `json:"link"`
	Snippet string `json:"snippet"`
}

// Client talks to a serper-style search API. The zero key client is a
// valid, permanently disabled client
type Client struct {
	cfg  Config
	http *http.Client
	log  *logger.Logger
}

// New constructs a search client
func New(cfg Config) *Client {
	return &Client{
		cfg:  cfg,
		http: &http.Client{Timeout: cfg.Timeout},
		log:  logger.Named("adapter.search"),
	}
}

// Enabled reports whether an API key is configured
func (c *Client) Enabled() bool { return c.cfg.APIKey != "" }

type searchRequest struct {
	Q   string `json:"q"`
	Num int    `json:"num,omitempty"`
}

type searchResponse struct {
	Organic []Result `json:"organic"`
}

// Search runs one query and returns the organic hits. Transient upstream
// failures (429 and 5xx) are retried with jittered backoff
func (c *Client) Search(ctx context.Context, query string, count int) ([]Result, error) {
	if !c.Enabled() {
		return nil, perr.Forbiddenf("search api key not configured")
	}

	body, err := json.Marshal(searchRequest{Q: query, Num: count})
	if err != nil {
		return nil, perr.Wrap(err, perr.ErrorCodeJSON, "encode search request")
	}

	var lastErr error
	for attempt := 0; attempt <= c.cfg.MaxRetries; attempt++ {
		if attempt > 0 {
			if err := sleepCtx(ctx, backoff(attempt)); err != nil {
				return nil, err
			}
			c.log.Debug().Str("query", query).Int("attempt", attempt).Msg("retrying search")
		}

		hits, err := c.doSearch(ctx, body)
		if err == nil {
			return hits, nil
		}
		if !retryable(err) {
			return nil, err
		}
		lastErr = err
	}
	return nil, lastErr
}

// retryable treats rate limiting and upstream unavailability as transient
func retryable(err error) bool {
	switch perr.CodeOf(err) {
	case perr.ErrorCodeTooManyRequests, perr.ErrorCodeUnavailable:
		return true
	default:
		return false
	}
}

func (c *Client) doSearch(ctx context.Context, body []byte) ([]Result, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.BaseURL+"/search", bytes.NewReader(body))
	if err != nil {
		return nil, perr.Wrap(err, perr.ErrorCodeInvalidArgument, "build search request")
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-API-KEY", c.cfg.APIKey)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, perr.Wrap(err, perr.ErrorCodeUnavailable, "search api unreachable")
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusOK:
		// fall through to decode
	case resp.StatusCode == http.StatusTooManyRequests:
		return nil, perr.Newf(perr.ErrorCodeTooManyRequests, "search api rate limited")
	case resp.StatusCode >= 500:
		return nil, perr.Newf(perr.ErrorCodeUnavailable, "search api returned %d", resp.StatusCode)
	case resp.StatusCode == http.StatusUnauthorized, resp.StatusCode == http.StatusForbidden:
		return nil, perr.Forbiddenf("search api rejected credentials")
	default:
		return nil, perr.Newf(perr.ErrorCodeUnknown, "search api returned %d", resp.StatusCode)
	}

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 4<<20))
	if err != nil {
		return nil, perr.Wrap(err, perr.ErrorCodeUnavailable, "read search response")
	}
	var sr searchResponse
	if err := json.Unmarshal(raw, &sr); err != nil {
		return nil, perr.Wrap(err, perr.ErrorCodeJSON, "decode search response")
	}
	return sr.Organic, nil
}

// backoff is exponential with jitter, starting around 250ms
func backoff(attempt int) time.Duration {
	base := 250 * time.Millisecond << (attempt - 1)
	jitter := time.Duration(rand.Int63n(int64(base / 2)))
	return base + jitter
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return fmt.Errorf("search retry aborted: %w", ctx.Err())
	case <-t.C:
		return nil
	}
}
