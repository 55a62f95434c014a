package email

import (
	"bytes"
	"context"
	"embed"
	"fmt"
	"html/template"
	"log/slog"
	"net/smtp"
	"time"

	"github.com/chll-hr/leave-backend/internal/config"
	"github.com/chll-hr/leave-backend/internal/pkg/logger"
	goretry "github.com/sethvargo/go-retry"
)

//go:embed templates/*.html
var templateFS embed.FS

const (
	maxRetries = 3
	baseDelay  = time.Second
)

// EmailService defines the interface for sending emails
type EmailService interface {
	SendLeaveStatus(ctx context.Context, mail LeaveStatusMail) error
}

// LeaveStatusMail tells an employee how their request was decided.
type LeaveStatusMail struct {
	To           string
	EmployeeName string
	CompanyName  string
	Approved     bool
	Starting     string
	Ending       string
}

func (m LeaveStatusMail) StatusLabel() string {
	if m.Approved {
		return "approved"
	}
	return "rejected"
}

type sendFunc func(addr string, a smtp.Auth, from string, to []string, msg []byte) error

type emailServiceImpl struct {
	cfg       config.SMTPConfig
	templates *template.Template
	send      sendFunc
	baseDelay time.Duration
}

// NewEmailService creates a new email service instance
func NewEmailService(cfg config.SMTPConfig) (EmailService, error) {
	return newEmailService(cfg, smtp.SendMail, baseDelay)
}

func newEmailService(cfg config.SMTPConfig, send sendFunc, delay time.Duration) (*emailServiceImpl, error) {
	tmpl, err := template.ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("failed to parse email templates: %w", err)
	}

	return &emailServiceImpl{
		cfg:       cfg,
		templates: tmpl,
		send:      send,
		baseDelay: delay,
	}, nil
}

// SendLeaveStatus renders the decision email and sends it.
func (s *emailServiceImpl) SendLeaveStatus(ctx context.Context, mail LeaveStatusMail) error {
	var body bytes.Buffer
	if err := s.templates.ExecuteTemplate(&body, "leave_status.html", mail); err != nil {
		return fmt.Errorf("failed to execute template: %w", err)
	}

	subject := fmt.Sprintf("Leave request %s - %s", mail.StatusLabel(), mail.CompanyName)
	return s.sendHTML(ctx, mail.To, subject, body.String())
}

func (s *emailServiceImpl) sendHTML(ctx context.Context, to, subject, htmlBody string) error {
	log := logger.From(ctx)

	// Skip sending if SMTP is not configured
	if s.cfg.Host == "" {
		log.Warn("SMTP not configured, skipping email send", slog.String("to", to), slog.String("subject", subject))
		return nil
	}

	from := s.cfg.From

	headers := fmt.Sprintf("From: %s <%s>\r\n", s.cfg.FromName, from)
	headers += fmt.Sprintf("To: %s\r\n", to)
	headers += fmt.Sprintf("Subject: %s\r\n", subject)
	headers += "MIME-Version: 1.0\r\n"
	headers += "Content-Type: text/html; charset=\"UTF-8\"\r\n"
	headers += "\r\n"

	message := []byte(headers + htmlBody)

	var auth smtp.Auth
	if s.cfg.Username != "" {
		auth = smtp.PlainAuth("", s.cfg.Username, s.cfg.Password, s.cfg.Host)
	}
	addr := fmt.Sprintf("%s:%d", s.cfg.Host, s.cfg.Port)

	// exponential backoff: 1s, 2s between the three attempts
	backoff := goretry.WithMaxRetries(maxRetries-1, goretry.NewExponential(s.baseDelay))

	attempt := 0
	err := goretry.Do(ctx, backoff, func(ctx context.Context) error {
		attempt++
		if err := s.send(addr, auth, from, []string{to}, message); err != nil {
			log.Error("Failed to send email",
				slog.String("to", to),
				slog.String("subject", subject),
				slog.Int("attempt", attempt),
				slog.Int("max_retries", maxRetries),
				slog.Any("error", err),
			)
			return goretry.RetryableError(err)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to send email after %d attempts: %w", attempt, err)
	}

	log.Info("Email sent successfully", slog.String("to", to), slog.String("subject", subject), slog.Int("attempt", attempt))
	return nil
}
