package main

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"bookfixture/internal/book"
)

func newBooksServer(t *testing.T) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	book.NewHTTPHandler(book.NewService()).Register(mux)
	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)
	return server
}

func TestRun(t *testing.T) {
	server := newBooksServer(t)

	t.Run("found", func(t *testing.T) {
		var stdout, stderr bytes.Buffer
		code := run(context.Background(), []string{"-addr", server.URL, "0"}, &stdout, &stderr)

		assert.Equal(t, exitOK, code)
		assert.Equal(t, "0\t{\"isbn\":\"1491950358\",\"name\":\"Building Microservices\"}\n", stdout.String())
		assert.Empty(t, stderr.String())
	})

	t.Run("bound error body", func(t *testing.T) {
		var stdout, stderr bytes.Buffer
		code := run(context.Background(), []string{"-addr", server.URL, "0", "1680502395"}, &stdout, &stderr)

		assert.Equal(t, exitFailure, code)
		assert.Contains(t, stdout.String(), "1680502395\tstatus=401 error=\"Unauthorized\" message=\"No message available\" path=\"/books/1680502395\"\n")
		assert.Contains(t, stderr.String(), "1680502395: booksapi: 401 Unauthorized: No message available")
	})

	t.Run("strict rejects malformed isbn", func(t *testing.T) {
		var stdout, stderr bytes.Buffer
		code := run(context.Background(), []string{"-addr", server.URL, "-strict", "abc"}, &stdout, &stderr)

		assert.Equal(t, exitFailure, code)
		assert.Empty(t, stdout.String())
		assert.Contains(t, stderr.String(), "abc: not a valid ISBN")
	})

	t.Run("strict checks the check digit", func(t *testing.T) {
		var stdout, stderr bytes.Buffer
		code := run(context.Background(), []string{"-addr", server.URL, "-strict", "1234567890", "1680502394"}, &stdout, &stderr)

		assert.Equal(t, exitFailure, code)
		assert.Empty(t, stdout.String())
		assert.Contains(t, stderr.String(), "1234567890: not a valid ISBN")
		assert.Contains(t, stderr.String(), "1680502394: not a valid ISBN")
	})

	t.Run("strict accepts a valid isbn", func(t *testing.T) {
		var stdout, stderr bytes.Buffer
		code := run(context.Background(), []string{"-addr", server.URL, "-strict", "978-1-4919-5035-7"}, &stdout, &stderr)

		assert.Equal(t, exitOK, code)
		assert.Contains(t, stdout.String(), `{"isbn":"1491950358","name":"Building Microservices"}`)
	})
}

func TestRun_Usage(t *testing.T) {
	tests := map[string][]string{
		"no isbn":      {},
		"unknown flag": {"-nope", "0"},
		"bad addr":     {"-addr", "not a url", "0"},
	}

	for name, args := range tests {
		t.Run(name, func(t *testing.T) {
			var stdout, stderr bytes.Buffer
			code := run(context.Background(), args, &stdout, &stderr)

			assert.Equal(t, exitUsage, code)
			assert.NotEmpty(t, stderr.String())
		})
	}
}
