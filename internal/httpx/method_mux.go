package httpx

import (
	"net/http"
	"slices"
	"strings"
)

// MethodMux chooses a handler based on the incoming HTTP method and answers
// any other method with a 405 ErrorBody and an Allow header.
func MethodMux(handlers map[string]http.Handler) http.Handler {
	allowed := make([]string, 0, len(handlers))
	for method := range handlers {
		allowed = append(allowed, method)
	}
	slices.Sort(allowed)
	allow := strings.Join(allowed, ", ")

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if h, ok := handlers[r.Method]; ok {
			h.ServeHTTP(w, r)
			return
		}
		w.Header().Set("Allow", allow)
		JSONError(w, r, http.StatusMethodNotAllowed, "Method Not Allowed")
	})
}
