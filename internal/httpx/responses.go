package httpx

import (
	"encoding/json"
	"log"
	"net/http"
)

// DefaultErrorMessage is reported when an error carries no specific message.
const DefaultErrorMessage = "No message available"

// ErrorBody is the JSON body of every error response the service produces.
type ErrorBody struct {
	Status  int    `json:"status"`
	Error   string `json:"error"`
	Message string `json:"message"`
	Path    string `json:"path"`
}

// NewErrorBody builds an error body for statusCode. An empty message is
// replaced with DefaultErrorMessage.
func NewErrorBody(statusCode int, message, path string) ErrorBody {
	if message == "" {
		message = DefaultErrorMessage
	}
	return ErrorBody{
		Status:  statusCode,
		Error:   http.StatusText(statusCode),
		Message: message,
		Path:    path,
	}
}

// JSON writes v with the given status code. The body is v encoded on a
// single line followed by a newline.
func JSON(w http.ResponseWriter, statusCode int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("encode response failed: status=%d error=%v", statusCode, err)
	}
}

// JSONError writes an ErrorBody for the request's path.
func JSONError(w http.ResponseWriter, r *http.Request, statusCode int, message string) {
	JSON(w, statusCode, NewErrorBody(statusCode, message, r.URL.Path))
}

// NotFound is the fallback handler for unmatched routes.
func NotFound(w http.ResponseWriter, r *http.Request) {
	JSONError(w, r, http.StatusNotFound, "Page Not Found")
}
