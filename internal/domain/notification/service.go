package notification

import (
	"context"

	"github.com/chll-hr/leave-backend/internal/domain/leave"
)

// Service delivers leave decisions by email and to open event streams.
type Service interface {
	leave.Notifier

	// Subscribe opens a stream for employeeID until ctx ends or cleanup runs.
	Subscribe(ctx context.Context, employeeID string) (<-chan SSEEvent, func())

	// Stop drains the queue and waits for the workers.
	Stop()
}
