package main

import (
	"log"
	"net/http"
	"sync/atomic"

	"bookfixture/internal/book"
	"bookfixture/internal/httpx"
)

func newRouter(cfg Config, rateLimiter *httpx.RateLimitMiddleware, shuttingDown *atomic.Bool) http.Handler {
	router := http.NewServeMux()

	router.HandleFunc("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	router.HandleFunc("GET /readyz", func(w http.ResponseWriter, r *http.Request) {
		if shuttingDown.Load() {
			http.Error(w, "shutting down", http.StatusServiceUnavailable)
			return
		}
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ready"))
	})

	if cfg.MetricsEnabled {
		router.Handle("GET /metrics", httpx.NewMetricsHTTPHandler())
	}

	if cfg.BooksRoutesEnabled {
		book.NewHTTPHandler(book.NewService()).Register(router)
	} else {
		log.Println("book routes disabled")
	}

	router.HandleFunc("/", httpx.NotFound)

	return httpx.Chain(router,
		httpx.RequestIDMiddleware,
		httpx.AccessLogMiddleware,
		httpx.RecoveryMiddleware,
		httpx.MetricsMiddleware,
		httpx.SecurityHeadersMiddleware(cfg.EnableHSTS),
		httpx.CORSMiddleware(cfg.CORSAllowedOrigins),
		rateLimiter.Middleware,
		httpx.RequestSizeLimitMiddleware(int64(cfg.MaxRequestSize.Bytes())),
	)
}
