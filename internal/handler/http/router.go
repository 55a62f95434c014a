package http

import (
	"log/slog"
	"os"

	"github.com/chll-hr/leave-backend/internal/handler/http/middleware"
	"github.com/chll-hr/leave-backend/internal/pkg/jwt"
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
	"github.com/go-chi/jwtauth/v5"
)

// RouterConfig carries the settings the router needs from config.Config.
type RouterConfig struct {
	Env             string
	Version         string
	AllowedOrigins  []string
	ImportPerMinute int
}

type Handlers struct {
	Company      CompanyHandler
	Employee     EmployeeHandler
	Leave        LeaveHandler
	Notification NotificationHandler
}

func NewRouter(cfg RouterConfig, JWTService jwt.Service, h Handlers) *chi.Mux {
	r := chi.NewRouter()
	logFormat := httplog.SchemaECS.Concise(cfg.Env != "production")
	accessLogger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		ReplaceAttr: logFormat.ReplaceAttr,
	})).With(
		slog.String("app", "chll-leave"),
		slog.String("version", cfg.Version),
		slog.String("env", cfg.Env),
	)

	origins := cfg.AllowedOrigins
	if len(origins) == 0 {
		origins = []string{"http://localhost:3000"}
	}
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   origins,
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link"},
		MaxAge:           300,
	}))

	r.Use(httplog.RequestLogger(accessLogger, &httplog.Options{
		Level:  slog.LevelInfo,
		Schema: httplog.SchemaECS,
	}))

	r.Use(chiMiddleware.CleanPath)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Heartbeat("/healthz"))

	importLimiter := middleware.NewRateLimiter(cfg.ImportPerMinute)

	r.Route("/api/v1", func(r chi.Router) {

		// EventSource authenticates with a short-lived query token.
		r.Get("/notifications/stream", h.Notification.Stream)

		// Requires authentication
		r.Group(func(r chi.Router) {
			r.Use(jwtauth.Verifier(JWTService.JWTAuth()))
			r.Use(middleware.AuthRequired)

			r.Get("/notifications/sse-token", h.Notification.GetSSEToken)
			r.Get("/employees/import/example", h.Employee.ImportExample)

			r.Post("/leaves", h.Leave.CreateRequest)
			r.With(middleware.ValidIDs("requestID")).Post("/leaves/{requestID}/approve", h.Leave.ApproveRequest)
			r.With(middleware.ValidIDs("requestID")).Post("/leaves/{requestID}/reject", h.Leave.RejectRequest)

			r.Post("/companies", h.Company.Create)
			r.Route("/companies/{companyID}", func(r chi.Router) {
				r.Use(middleware.ValidIDs("companyID"))

				r.Get("/", h.Company.GetByID)
				r.Put("/", h.Company.Update)

				r.Route("/departments", func(r chi.Router) {
					r.Get("/", h.Company.ListDepartments)
					r.Post("/", h.Company.CreateDepartment)
					r.With(middleware.ValidIDs("departmentID")).Put("/{departmentID}", h.Company.UpdateDepartment)
					r.With(middleware.ValidIDs("departmentID")).Get("/{departmentID}/employees", h.Company.ListDepartmentMembers)
				})

				r.Route("/leave-types", func(r chi.Router) {
					r.Get("/", h.Leave.ListTypes)
					r.Post("/", h.Leave.CreateType)
				})

				r.Get("/leaves", h.Leave.ListCompanyLeaves)

				r.Route("/employees", func(r chi.Router) {
					r.Get("/", h.Employee.List)
					r.Post("/", h.Employee.Add)
					r.With(importLimiter.Handler).Post("/import", h.Employee.Import)

					r.Route("/{employeeID}", func(r chi.Router) {
						r.Use(middleware.ValidIDs("employeeID"))
						r.Get("/leaves", h.Leave.ListEmployeeLeaves)
						r.Post("/leaves", h.Leave.CreateRequest)
						r.Get("/balance", h.Leave.GetBalance)
						r.Get("/calendar.ics", h.Leave.Calendar)
					})
				})
			})
		})
	})

	return r
}
