package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/chll-hr/leave-backend/internal/config"
	appHTTP "github.com/chll-hr/leave-backend/internal/handler/http"
	"github.com/chll-hr/leave-backend/internal/pkg/database"
	"github.com/chll-hr/leave-backend/internal/pkg/email"
	"github.com/chll-hr/leave-backend/internal/pkg/jwt"
	"github.com/chll-hr/leave-backend/internal/pkg/logger"
	"github.com/chll-hr/leave-backend/internal/pkg/sse"
	"github.com/chll-hr/leave-backend/internal/repository/memory"
	"github.com/chll-hr/leave-backend/internal/repository/postgresql"
	accessService "github.com/chll-hr/leave-backend/internal/service/access"
	companyService "github.com/chll-hr/leave-backend/internal/service/company"
	employeeService "github.com/chll-hr/leave-backend/internal/service/employee"
	leaveService "github.com/chll-hr/leave-backend/internal/service/leave"
	notificationService "github.com/chll-hr/leave-backend/internal/service/notification"
	"github.com/spf13/cobra"
)

const shutdownTimeout = 15 * time.Second

func newServeCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			logger.Init(cfg.App.Env, cfg.App.LogLevel)

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()
			return serve(ctx, cfg)
		},
	}
}

type storage struct {
	tx    database.Transactor
	repos leaveService.Repositories
	close func()
}

// openStorage connects to PostgreSQL, or falls back to the in-memory store
// when no database is configured.
func openStorage(ctx context.Context, cfg *config.Config) (storage, error) {
	if !cfg.HasDatabase() {
		logger.Default().Warn("DB_HOST not set, using in-memory store; data is lost on exit")
		store := memory.NewStore()
		return storage{
			tx: store,
			repos: leaveService.Repositories{
				Companies:   store,
				Departments: store,
				Employees:   store,
				Memberships: store,
				LeaveTypes:  store,
				Requests:    store,
			},
			close: func() {},
		}, nil
	}

	db, err := database.NewPostgreSQLDB(ctx, cfg.DatabaseURL(), database.PoolConfig{})
	if err != nil {
		return storage{}, fmt.Errorf("failed to connect to database: %w", err)
	}
	return storage{
		tx: postgresql.NewTransactor(db),
		repos: leaveService.Repositories{
			Companies:   postgresql.NewCompanyRepository(db),
			Departments: postgresql.NewDepartmentRepository(db),
			Employees:   postgresql.NewEmployeeRepository(db),
			Memberships: postgresql.NewMembershipRepository(db),
			LeaveTypes:  postgresql.NewLeaveTypeRepository(db),
			Requests:    postgresql.NewLeaveRequestRepository(db),
		},
		close: db.Close,
	}, nil
}

func serve(ctx context.Context, cfg *config.Config) error {
	log := logger.Default()

	store, err := openStorage(ctx, cfg)
	if err != nil {
		return err
	}
	defer store.close()
	repos := store.repos

	JWTService, err := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiration)
	if err != nil {
		return err
	}
	emailService, err := email.NewEmailService(cfg.SMTP)
	if err != nil {
		return fmt.Errorf("failed to initialize email service: %w", err)
	}

	notifier := notificationService.NewNotificationService(emailService, sse.NewHub(), notificationService.Config{
		WorkerCount: cfg.Notification.Workers,
		QueueSize:   cfg.Notification.QueueSize,
	})
	defer notifier.Stop()

	authz := accessService.NewAuthorizer(repos.Memberships, repos.Departments)
	companySvc := companyService.NewCompanyService(store.tx, repos.Companies, repos.Departments, repos.Employees, repos.Memberships, repos.LeaveTypes, authz, cfg.Leave.DefaultTimezone)
	employeeSvc := employeeService.NewEmployeeService(store.tx, repos.Employees, repos.Memberships, repos.Companies, repos.Departments, authz)
	leaveSvc := leaveService.NewLeaveService(store.tx, repos, authz, notifier, cfg.Leave.CalendarDomain)

	router := appHTTP.NewRouter(appHTTP.RouterConfig{
		Env:             cfg.App.Env,
		Version:         version,
		AllowedOrigins:  cfg.App.CORSAllowedOrigins,
		ImportPerMinute: cfg.App.ImportRateLimit,
	}, JWTService, appHTTP.Handlers{
		Company:      appHTTP.NewCompanyHandler(companySvc, employeeSvc),
		Employee:     appHTTP.NewEmployeeHandler(employeeSvc),
		Leave:        appHTTP.NewLeaveHandler(leaveSvc),
		Notification: appHTTP.NewNotificationHandler(notifier, JWTService),
	})

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.App.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("server listening", slog.String("addr", srv.Addr), slog.String("env", cfg.App.Env))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("failed to shut down server: %w", err)
	}
	return nil
}
