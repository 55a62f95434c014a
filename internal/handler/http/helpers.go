package http

import (
	"encoding/json"
	"net/http"

	"github.com/chll-hr/leave-backend/internal/handler/http/middleware"
	"github.com/chll-hr/leave-backend/internal/handler/http/response"
	"github.com/chll-hr/leave-backend/internal/pkg/logger"
)

const maxBodyBytes = 1 << 20

// callerID returns the authenticated employee or writes 401.
func callerID(w http.ResponseWriter, r *http.Request) (string, bool) {
	id := middleware.EmployeeID(r.Context())
	if id == "" {
		response.Unauthorized(w, "Unauthorized")
		return "", false
	}
	return id, true
}

// decodeJSON reads a JSON body into dst or writes 400. An empty body leaves
// dst untouched when allowEmpty is set.
func decodeJSON(w http.ResponseWriter, r *http.Request, dst any, allowEmpty bool) bool {
	if allowEmpty && r.ContentLength == 0 {
		return true
	}
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		logger.From(r.Context()).Debug("request decode error", "path", r.URL.Path, "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return false
	}
	return true
}
