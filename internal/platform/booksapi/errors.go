package booksapi

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"bookfixture/internal/httpx"
)

// ErrEmptyISBN is returned by Find when no identifier is given.
var ErrEmptyISBN = errors.New("booksapi: empty isbn")

// ResponseError is returned for any non-2xx response. Body holds the
// response bound to httpx.ErrorBody, or nil when it could not be decoded.
type ResponseError struct {
	StatusCode int
	Body       *httpx.ErrorBody
	Raw        []byte
}

func newResponseError(statusCode int, raw []byte) *ResponseError {
	e := &ResponseError{StatusCode: statusCode, Raw: raw}
	var body httpx.ErrorBody
	if err := json.Unmarshal(raw, &body); err == nil && body.Status != 0 {
		e.Body = &body
	}
	return e
}

func (e *ResponseError) Error() string {
	if e.Body != nil && e.Body.Message != "" {
		return fmt.Sprintf("booksapi: %d %s: %s", e.StatusCode, http.StatusText(e.StatusCode), e.Body.Message)
	}
	return fmt.Sprintf("booksapi: %d %s", e.StatusCode, http.StatusText(e.StatusCode))
}

func (e *ResponseError) retryable() bool {
	return e.StatusCode == http.StatusTooManyRequests || e.StatusCode >= 500
}

// IsUnauthorized reports whether err is a 401 response from the server.
func IsUnauthorized(err error) bool {
	var respErr *ResponseError
	return errors.As(err, &respErr) && respErr.StatusCode == http.StatusUnauthorized
}
