package middleware

import (
	"net/http"

	"github.com/soilworks/borelog-registry/pkg/requestid"
)

// RequestID takes the id from the x-request-id header when the caller supplies
// one, otherwise generates a fresh one, and injects it into the request context.
func RequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestID := r.Header.Get("x-request-id")
		if requestID == "" {
			requestID = requestid.Generate()
		}

		w.Header().Set("x-request-id", requestID)
		r = r.WithContext(requestid.ToContext(r.Context(), requestID))
		next.ServeHTTP(w, r)
	})
}
