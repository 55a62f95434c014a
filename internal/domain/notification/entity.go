package notification

import (
	"time"

	"github.com/chll-hr/leave-backend/internal/domain/leave"
)

// NotificationType represents the type of notification
type NotificationType string

const (
	TypeLeaveApproved NotificationType = "leave_approved"
	TypeLeaveRejected NotificationType = "leave_rejected"
)

// TypeOf maps a decided request status to its notification type.
func TypeOf(s leave.LeaveRequestStatus) (NotificationType, bool) {
	switch s {
	case leave.LeaveRequestStatusApproved:
		return TypeLeaveApproved, true
	case leave.LeaveRequestStatusRejected:
		return TypeLeaveRejected, true
	}
	return "", false
}

// Notification represents a notification entity
type Notification struct {
	ID          string
	CompanyID   string
	RecipientID string
	SenderID    string
	Type        NotificationType
	Title       string
	Message     string
	Data        LeaveStatusData
	CreatedAt   time.Time
}

// LeaveStatusData is the machine-readable part of a leave decision.
type LeaveStatusData struct {
	LeaveRequestID string    `json:"leave_request_id"`
	Status         string    `json:"status"`
	Starting       time.Time `json:"starting"`
	Ending         time.Time `json:"ending"`
}
