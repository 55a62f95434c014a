package middleware

import (
	"net/http"

	"github.com/chll-hr/leave-backend/internal/handler/http/response"
	"github.com/chll-hr/leave-backend/internal/pkg/logger"
	"github.com/chll-hr/leave-backend/internal/pkg/validator"
	"github.com/go-chi/chi/v5"
)

// ValidIDs answers 404 when one of the named URL parameters is not an ID
// this service issues, before it can reach a UUID column.
func ValidIDs(params ...string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			for _, p := range params {
				if v := chi.URLParam(r, p); v != "" && !validator.IsValidUUID(v) {
					logger.From(r.Context()).Debug("malformed id in path", "param", p, "value", v)
					response.NotFound(w, "Not found")
					return
				}
			}
			next.ServeHTTP(w, r)
		})
	}
}
