package middleware

import (
	"context"
	"net/http"

	"github.com/chll-hr/leave-backend/internal/handler/http/response"
	"github.com/chll-hr/leave-backend/internal/pkg/jwt"
	"github.com/chll-hr/leave-backend/internal/pkg/logger"
	"github.com/go-chi/jwtauth/v5"
)

type ctxKey string

const employeeIDKey ctxKey = "employee_id"

// AuthRequired accepts only verified access tokens and stores the caller's
// employee ID in the request context. It runs after jwtauth.Verifier.
func AuthRequired(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token, _, err := jwtauth.FromContext(r.Context())
		if err != nil {
			response.Unauthorized(w, "Invalid or expired token")
			return
		}

		employeeID, err := jwt.EmployeeID(token, jwt.TypeAccess)
		if err != nil {
			response.HandleError(w, err)
			return
		}

		ctx := WithEmployeeID(r.Context(), employeeID)
		ctx = logger.With(ctx, "employee_id", employeeID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func WithEmployeeID(ctx context.Context, employeeID string) context.Context {
	return context.WithValue(ctx, employeeIDKey, employeeID)
}

// EmployeeID returns the authenticated caller, or "" outside AuthRequired.
func EmployeeID(ctx context.Context) string {
	id, _ := ctx.Value(employeeIDKey).(string)
	return id
}
