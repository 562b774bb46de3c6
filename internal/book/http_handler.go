package book

import (
	"errors"
	"log"
	"net/http"
	"strings"

	"bookfixture/internal/httpx"
)

type HTTPHandler struct {
	finder Finder
}

func NewHTTPHandler(finder Finder) *HTTPHandler {
	return &HTTPHandler{finder: finder}
}

// Register adds the book routes to mux.
func (h *HTTPHandler) Register(mux *http.ServeMux) {
	find := http.HandlerFunc(h.Find)
	mux.Handle(PathPrefix+"{isbn}", httpx.MethodMux(map[string]http.Handler{
		http.MethodGet:  find,
		http.MethodHead: find,
	}))
}

// Find handles GET /books/{isbn}
func (h *HTTPHandler) Find(w http.ResponseWriter, r *http.Request) {
	isbn := r.PathValue("isbn")
	if isbn == "" {
		// Called outside a ServeMux, e.g. directly from a test.
		isbn, _ = strings.CutPrefix(r.URL.Path, PathPrefix)
	}

	book, err := h.finder.Find(r.Context(), isbn)
	if err != nil {
		if errors.Is(err, ErrUnauthorized) {
			lookupsCount.WithLabelValues("unauthorized").Inc()
			body := httpx.NewErrorBody(http.StatusUnauthorized, httpx.DefaultErrorMessage, PathPrefix+isbn)
			httpx.JSON(w, http.StatusUnauthorized, body)
			return
		}
		log.Printf("book lookup failed: isbn=%q request_id=%s error=%v", isbn, httpx.RequestIDFrom(r), err)
		httpx.JSONError(w, r, http.StatusInternalServerError, "Internal server error")
		return
	}

	lookupsCount.WithLabelValues("found").Inc()
	httpx.JSON(w, http.StatusOK, book)
}
