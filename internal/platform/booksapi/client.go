// Package booksapi is a client for the books lookup service.
package booksapi

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	exponential "github.com/jpillora/backoff"
	"golang.org/x/time/rate"

	"bookfixture/internal/book"
	"bookfixture/internal/platform/validation"
)

const maxResponseBytes = 1 << 20

type config struct {
	BaseURL    string        `validate:"required,url"`
	UserAgent  string        `validate:"required"`
	RPS        float64       `validate:"gt=0"`
	MaxRetries int           `validate:"gte=0,lte=10"`
	Timeout    time.Duration `validate:"gt=0"`
	MinBackoff time.Duration `validate:"gt=0"`
	MaxBackoff time.Duration `validate:"gtefield=MinBackoff"`
}

type Option func(*config)

func WithUserAgent(userAgent string) Option {
	return func(c *config) { c.UserAgent = userAgent }
}

func WithRateLimit(rps float64) Option {
	return func(c *config) { c.RPS = rps }
}

func WithMaxRetries(n int) Option {
	return func(c *config) { c.MaxRetries = n }
}

func WithTimeout(d time.Duration) Option {
	return func(c *config) { c.Timeout = d }
}

// WithBackoff sets the bounds of the delay between retries.
func WithBackoff(minDelay, maxDelay time.Duration) Option {
	return func(c *config) {
		c.MinBackoff = minDelay
		c.MaxBackoff = maxDelay
	}
}

type Client struct {
	httpClient *http.Client
	userAgent  string
	baseURL    string
	limiter    *rate.Limiter
	maxRetries int
	minBackoff time.Duration
	maxBackoff time.Duration
}

func NewClient(baseURL string, opts ...Option) (*Client, error) {
	cfg := config{
		BaseURL:    strings.TrimRight(baseURL, "/"),
		UserAgent:  "bookfixture-client/1.0",
		RPS:        10,
		MaxRetries: 3,
		Timeout:    15 * time.Second,
		MinBackoff: time.Second,
		MaxBackoff: 30 * time.Second,
	}
	for _, opt := range opts {
		opt(&cfg)
	}

	if err := validation.Struct(cfg); err != nil {
		return nil, fmt.Errorf("booksapi: invalid config: %w", err)
	}
	u, err := url.Parse(cfg.BaseURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return nil, fmt.Errorf("booksapi: base url must be an absolute http(s) url: %q", baseURL)
	}

	return &Client{
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
		},
		userAgent:  cfg.UserAgent,
		baseURL:    cfg.BaseURL,
		limiter:    rate.NewLimiter(rate.Limit(cfg.RPS), 1),
		maxRetries: cfg.MaxRetries,
		minBackoff: cfg.MinBackoff,
		maxBackoff: cfg.MaxBackoff,
	}, nil
}

// Find fetches GET /books/{isbn}. A non-2xx response is returned as a
// *ResponseError with the error body bound when possible.
func (c *Client) Find(ctx context.Context, isbn string) (book.Book, error) {
	if isbn == "" {
		return book.Book{}, ErrEmptyISBN
	}

	u := c.baseURL + book.PathPrefix + url.PathEscape(isbn)

	var res book.Book
	if err := c.get(ctx, u, &res); err != nil {
		return book.Book{}, err
	}
	return res, nil
}

func (c *Client) get(ctx context.Context, url string, target any) error {
	bo := &exponential.Backoff{
		Min:    c.minBackoff,
		Max:    c.maxBackoff,
		Factor: 2,
		Jitter: true,
	}

	var lastErr error
	for i := 0; i <= c.maxRetries; i++ {
		if i > 0 {
			select {
			case <-time.After(bo.Duration()):
			case <-ctx.Done():
				return ctx.Err()
			}
		}

		if err := c.limiter.Wait(ctx); err != nil {
			return err
		}

		retry, err := c.do(ctx, url, target)
		if err == nil {
			return nil
		}
		if !retry {
			return err
		}
		lastErr = err
	}
	if c.maxRetries == 0 {
		return lastErr
	}
	return fmt.Errorf("after %d retries: %w", c.maxRetries, lastErr)
}

// do performs one attempt and reports whether a failure is worth retrying.
func (c *Client) do(ctx context.Context, url string, target any) (bool, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return false, err
	}
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return false, ctx.Err()
		}
		return true, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return true, fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		respErr := newResponseError(resp.StatusCode, body)
		return respErr.retryable(), respErr
	}

	if err := json.Unmarshal(body, target); err != nil {
		return false, fmt.Errorf("decode response: %w", err)
	}
	return false, nil
}
