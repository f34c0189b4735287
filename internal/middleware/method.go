package middleware

import (
	"net/http"
)

// ReadOnly lets through GET and HEAD requests only.
func ReadOnly(h http.Handler) http.Handler {
	return Method(h, http.MethodGet, http.MethodHead)
}

// Method answers 405 to requests whose method is not in methods.
func Method(h http.Handler, methods ...string) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		for _, m := range methods {
			if r.Method == m {
				h.ServeHTTP(w, r)
				return
			}
		}
		w.WriteHeader(http.StatusMethodNotAllowed)
	})
}
