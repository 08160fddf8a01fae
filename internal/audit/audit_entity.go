package audit

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// Snapshot actions recorded on privileged employee mutations.
const (
	ActionAdminEdit  = "ADMIN_EDIT"
	ActionSoftDelete = "SOFT_DELETE"
	ActionRestore    = "RESTORE"
)

// EmployeeSnapshot is an immutable before/after record of one privileged
// employee mutation. Never updated or deleted.
type EmployeeSnapshot struct {
	ID          uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	EmployeeID  uuid.UUID       `gorm:"type:uuid;not null;index:idx_snapshots_employee"`
	ChangedByID *uuid.UUID      `gorm:"type:uuid"`
	Action      string          `gorm:"type:varchar(100);not null"`
	BeforeData  json.RawMessage `gorm:"type:jsonb;not null"`
	AfterData   json.RawMessage `gorm:"type:jsonb;not null"`
	CreatedAt   time.Time
}

// ActionLogEntry is one append-only line of employee history.
type ActionLogEntry struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	EmployeeID uuid.UUID `gorm:"type:uuid;not null;index:idx_action_log_employee"`
	Action     string    `gorm:"type:varchar(255);not null"`
	CreatedAt  time.Time
}
