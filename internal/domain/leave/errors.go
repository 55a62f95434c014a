package leave

import (
	"errors"

	"github.com/chll-hr/leave-backend/internal/pkg/calendar"
)

var (
	ErrLeaveRequestNotFound         = errors.New("Leave request not found")
	ErrLeaveTypeNotFound            = errors.New("Leave type not found")
	ErrLeaveTypeExists              = errors.New("Leave type already exists")
	ErrOverlappingLeave             = errors.New("Leave request overlaps an existing request")
	ErrBalanceExceeded              = errors.New("Leave balance exceeded")
	ErrLeaveRequestAlreadyProcessed = errors.New("Leave request already processed")
	ErrInvalidRange                 = calendar.ErrInvalidRange
)
