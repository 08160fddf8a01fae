package leave

import (
	"time"

	"github.com/google/uuid"
)

const (
	TypeCasual     = "CASUAL"
	TypeSick       = "SICK"
	TypePermission = "PERMISSION"
)

// Statuses. SUBMITTED is the only non-terminal status; APPROVED, REJECTED
// and SENT_BACK end the workflow and clear the approver. CANCELLED exists
// in storage for historic rows but no transition produces it.
const (
	StatusSubmitted = "SUBMITTED"
	StatusApproved  = "APPROVED"
	StatusRejected  = "REJECTED"
	StatusSentBack  = "SENT_BACK"
	StatusCancelled = "CANCELLED"
)

const (
	ActionSubmit   = "SUBMIT"
	ActionApprove  = "APPROVE"
	ActionReject   = "REJECT"
	ActionSendBack = "SEND_BACK"
)

type LeaveRequest struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey"`
	EmployeeID uuid.UUID `gorm:"type:uuid;not null;index:idx_leave_requests_employee"`

	LeaveType string    `gorm:"type:varchar(15);not null"`
	StartDate time.Time `gorm:"type:date;not null"`
	EndDate   time.Time `gorm:"type:date;not null"`
	TotalDays int       `gorm:"not null"`
	Reason    string    `gorm:"type:text"`

	Status            string     `gorm:"type:varchar(15);not null;default:'SUBMITTED'"`
	CurrentApproverID *uuid.UUID `gorm:"type:uuid;index:idx_leave_requests_approver"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

// LeaveApprovalLog is append-only; one row per workflow action.
type LeaveApprovalLog struct {
	ID             uuid.UUID `gorm:"type:uuid;primaryKey"`
	LeaveRequestID uuid.UUID `gorm:"type:uuid;not null;index:idx_leave_approval_logs_request"`
	ActorID        uuid.UUID `gorm:"type:uuid;not null"`

	Action     string `gorm:"type:varchar(15);not null"`
	FromStatus string `gorm:"type:varchar(15);not null"`
	ToStatus   string `gorm:"type:varchar(15);not null"`
	Comment    string `gorm:"type:text"`

	CreatedAt time.Time
}
