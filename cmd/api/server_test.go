package main

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bookfixture/internal/httpx"
)

func newTestServer(t *testing.T, cfg Config) (*httptest.Server, *atomic.Bool) {
	t.Helper()
	rateLimiter := httpx.NewRateLimitMiddleware(cfg.RateLimitRPS, cfg.RateLimitBurst, cfg.TrustProxy)
	t.Cleanup(rateLimiter.Close)

	var shuttingDown atomic.Bool
	server := httptest.NewServer(newRouter(cfg, rateLimiter, &shuttingDown))
	t.Cleanup(server.Close)
	return server, &shuttingDown
}

func get(t *testing.T, url string) (*http.Response, string) {
	t.Helper()
	resp, err := http.Get(url)
	require.NoError(t, err)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp, string(body)
}

func TestRouter_Books(t *testing.T) {
	server, _ := newTestServer(t, defaultConfig())

	t.Run("restricted isbn", func(t *testing.T) {
		resp, body := get(t, server.URL+"/books/1680502395")

		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
		assert.Equal(t, "application/json", resp.Header.Get("Content-Type"))
		assert.JSONEq(t, `{"status":401,"error":"Unauthorized","message":"No message available","path":"/books/1680502395"}`, body)
		assert.NotEmpty(t, resp.Header.Get(httpx.RequestIDHeader))
		assert.Equal(t, "nosniff", resp.Header.Get("X-Content-Type-Options"))
	})

	t.Run("any other isbn", func(t *testing.T) {
		resp, body := get(t, server.URL+"/books/9999999999")

		assert.Equal(t, http.StatusOK, resp.StatusCode)
		assert.JSONEq(t, `{"isbn":"1491950358","name":"Building Microservices"}`, body)
	})

	t.Run("unknown route", func(t *testing.T) {
		resp, body := get(t, server.URL+"/authors/1")

		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
		assert.JSONEq(t, `{"status":404,"error":"Not Found","message":"Page Not Found","path":"/authors/1"}`, body)
	})
}

func TestRouter_BooksDisabled(t *testing.T) {
	cfg := defaultConfig()
	cfg.BooksRoutesEnabled = false
	server, _ := newTestServer(t, cfg)

	resp, body := get(t, server.URL+"/books/0")

	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Contains(t, body, `"path":"/books/0"`)
}

func TestRouter_Health(t *testing.T) {
	server, shuttingDown := newTestServer(t, defaultConfig())

	resp, body := get(t, server.URL+"/healthz")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "ok", body)

	resp, body = get(t, server.URL+"/readyz")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "ready", body)

	shuttingDown.Store(true)
	resp, _ = get(t, server.URL+"/readyz")
	assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)
}

func TestRouter_Metrics(t *testing.T) {
	server, _ := newTestServer(t, defaultConfig())

	get(t, server.URL+"/books/1680502395")
	get(t, server.URL+"/books/0")

	resp, body := get(t, server.URL+"/metrics")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, body, `books_lookups_total{outcome="unauthorized"}`)
	assert.Contains(t, body, `books_lookups_total{outcome="found"}`)
	assert.Contains(t, body, `route="/books/{isbn}"`)
}

func TestRouter_MetricsDisabled(t *testing.T) {
	cfg := defaultConfig()
	cfg.MetricsEnabled = false
	server, _ := newTestServer(t, cfg)

	resp, _ := get(t, server.URL+"/metrics")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestRouter_RateLimited(t *testing.T) {
	cfg := defaultConfig()
	cfg.RateLimitRPS = 0.001
	cfg.RateLimitBurst = 1
	server, _ := newTestServer(t, cfg)

	resp, _ := get(t, server.URL+"/books/0")
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp, body := get(t, server.URL+"/books/0")
	assert.Equal(t, http.StatusTooManyRequests, resp.StatusCode)
	assert.True(t, strings.Contains(body, `"status":429`))
}

func TestRouter_MethodNotAllowed(t *testing.T) {
	server, _ := newTestServer(t, defaultConfig())

	resp, err := http.Post(server.URL+"/books/0", "application/json", strings.NewReader("{}"))
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusMethodNotAllowed, resp.StatusCode)
	assert.Equal(t, "GET, HEAD", resp.Header.Get("Allow"))
}

func TestRouter_RateLimitIgnoresForwardedFor(t *testing.T) {
	cfg := defaultConfig()
	cfg.RateLimitRPS = 0.001
	cfg.RateLimitBurst = 1
	server, _ := newTestServer(t, cfg)

	send := func(forwarded string) int {
		req, err := http.NewRequest(http.MethodGet, server.URL+"/books/0", nil)
		require.NoError(t, err)
		req.Header.Set("X-Forwarded-For", forwarded)
		resp, err := http.DefaultClient.Do(req)
		require.NoError(t, err)
		resp.Body.Close()
		return resp.StatusCode
	}

	assert.Equal(t, http.StatusOK, send("198.51.100.1"))
	assert.Equal(t, http.StatusTooManyRequests, send("198.51.100.2"))
}
