package notification

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/chll-hr/leave-backend/internal/domain/leave"
	"github.com/chll-hr/leave-backend/internal/domain/notification"
	"github.com/chll-hr/leave-backend/internal/pkg/calendar"
	"github.com/chll-hr/leave-backend/internal/pkg/email"
	"github.com/chll-hr/leave-backend/internal/pkg/logger"
	"github.com/chll-hr/leave-backend/internal/pkg/sse"
	"github.com/google/uuid"
)

const eventLeaveStatus = "leave_status"

// Config holds notification service configuration
type Config struct {
	WorkerCount int // default: 2
	QueueSize   int // default: 256
}

type job struct {
	ctx    context.Context
	change leave.StatusChange
}

type NotificationServiceImpl struct {
	mailer email.EmailService
	hub    *sse.Hub
	config Config
	now    func() time.Time

	mu      sync.RWMutex
	stopped bool
	queue   chan job
	wg      sync.WaitGroup
}

var _ notification.Service = (*NotificationServiceImpl)(nil)

// NewNotificationService starts the workers. mailer may be nil to disable email.
func NewNotificationService(mailer email.EmailService, hub *sse.Hub, cfg Config) *NotificationServiceImpl {
	if cfg.WorkerCount <= 0 {
		cfg.WorkerCount = 2
	}
	if cfg.QueueSize <= 0 {
		cfg.QueueSize = 256
	}

	s := &NotificationServiceImpl{
		mailer: mailer,
		hub:    hub,
		config: cfg,
		now:    time.Now,
		queue:  make(chan job, cfg.QueueSize),
	}

	for i := 0; i < cfg.WorkerCount; i++ {
		s.wg.Add(1)
		go s.worker(i)
	}

	return s
}

// LeaveStatusChanged queues the change. It never blocks: when the queue is
// full or the service is stopped the change is logged and dropped.
func (s *NotificationServiceImpl) LeaveStatusChanged(ctx context.Context, change leave.StatusChange) {
	if err := s.enqueue(ctx, change); err != nil {
		logger.From(ctx).Warn("leave notification dropped",
			slog.String("request_id", change.RequestID),
			slog.String("employee_id", change.EmployeeID),
			slog.Any("error", err),
		)
	}
}

func (s *NotificationServiceImpl) enqueue(ctx context.Context, change leave.StatusChange) error {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.stopped {
		return notification.ErrServiceStopped
	}
	select {
	case s.queue <- job{ctx: context.WithoutCancel(ctx), change: change}:
		return nil
	default:
		return notification.ErrQueueFull
	}
}

func (s *NotificationServiceImpl) worker(id int) {
	defer s.wg.Done()
	for j := range s.queue {
		s.deliver(logger.With(j.ctx, slog.Int("notification_worker", id)), j.change)
	}
}

func (s *NotificationServiceImpl) deliver(ctx context.Context, change leave.StatusChange) {
	log := logger.From(ctx)

	n, ok := s.build(change)
	if !ok {
		log.Debug("no notification for status", slog.String("status", string(change.Status)))
		return
	}

	delivered := s.hub.Publish(change.EmployeeID, sse.Event{
		Event: eventLeaveStatus,
		Data:  notification.NewNotificationResponse(n),
	})
	log.Debug("leave notification published", slog.String("request_id", change.RequestID), slog.Int("streams", delivered))

	if s.mailer == nil || change.EmployeeEmail == "" {
		return
	}
	start, end := mailDates(change)
	err := s.mailer.SendLeaveStatus(ctx, email.LeaveStatusMail{
		To:           change.EmployeeEmail,
		EmployeeName: change.EmployeeName,
		CompanyName:  change.CompanyName,
		Approved:     n.Type == notification.TypeLeaveApproved,
		Starting:     start,
		Ending:       end,
	})
	if err != nil {
		log.Error("failed to email leave decision", slog.String("request_id", change.RequestID), slog.Any("error", err))
	}
}

func (s *NotificationServiceImpl) build(change leave.StatusChange) (notification.Notification, bool) {
	typ, ok := notification.TypeOf(change.Status)
	if !ok {
		return notification.Notification{}, false
	}

	start, end := mailDates(change)
	return notification.Notification{
		ID:          uuid.Must(uuid.NewV7()).String(),
		CompanyID:   change.CompanyID,
		RecipientID: change.EmployeeID,
		SenderID:    change.DecidedBy,
		Type:        typ,
		Title:       fmt.Sprintf("Leave request %s", change.Status),
		Message:     fmt.Sprintf("Your leave at %s from %s until %s was %s.", change.CompanyName, start, end, change.Status),
		Data: notification.LeaveStatusData{
			LeaveRequestID: change.RequestID,
			Status:         string(change.Status),
			Starting:       change.Starting,
			Ending:         change.Ending,
		},
		CreatedAt: s.now(),
	}, true
}

// mailDates renders the request bounds in the company zone. All-day requests
// show the last day off rather than the day the employee is back.
func mailDates(change leave.StatusChange) (string, string) {
	loc := change.Location
	if loc == nil {
		loc = time.UTC
	}
	r := calendar.Range{Start: change.Starting, End: change.Ending}
	if r.IsAllDay(loc) && !r.IsEmpty() {
		return calendar.FormatDate(r.Start, loc), calendar.FormatDate(r.End.In(loc).AddDate(0, 0, -1), loc)
	}
	const layout = "2006-01-02 15:04"
	return r.Start.In(loc).Format(layout), r.End.In(loc).Format(layout)
}

// Subscribe forwards hub events for employeeID until ctx ends.
func (s *NotificationServiceImpl) Subscribe(ctx context.Context, employeeID string) (<-chan notification.SSEEvent, func()) {
	ch, cleanup := s.hub.Subscribe(employeeID)

	out := make(chan notification.SSEEvent, 10)

	go func() {
		defer close(out)
		for {
			select {
			case event, ok := <-ch:
				if !ok {
					return
				}
				resp, ok := event.Data.(notification.NotificationResponse)
				if !ok {
					continue
				}
				select {
				case out <- notification.SSEEvent{Event: event.Event, Data: resp}:
				case <-ctx.Done():
					return
				}
			case <-ctx.Done():
				return
			}
		}
	}()

	return out, cleanup
}

// Stop refuses new changes, lets the workers drain the queue and waits.
func (s *NotificationServiceImpl) Stop() {
	s.mu.Lock()
	if s.stopped {
		s.mu.Unlock()
		return
	}
	s.stopped = true
	close(s.queue)
	s.mu.Unlock()

	s.wg.Wait()
	logger.Default().Info("notification service stopped")
}
