package task

import (
	"time"

	"github.com/google/uuid"
)

const (
	StatusAssigned   = "ASSIGNED"
	StatusInProgress = "IN_PROGRESS"
	StatusBlocked    = "BLOCKED"
	StatusCompleted  = "COMPLETED"
)

const (
	PriorityLow    = "LOW"
	PriorityMedium = "MEDIUM"
	PriorityHigh   = "HIGH"
)

// allowedTransitions encodes the execution state machine. An assigned task
// may start or block immediately, IN_PROGRESS and BLOCKED move both ways and
// both can complete. COMPLETED has no outgoing edges; a completed task is
// immutable. A status may repeat itself so progress can move without a state
// change.
var allowedTransitions = map[string][]string{
	StatusAssigned:   {StatusAssigned, StatusInProgress, StatusBlocked},
	StatusInProgress: {StatusInProgress, StatusBlocked, StatusCompleted},
	StatusBlocked:    {StatusBlocked, StatusInProgress, StatusCompleted},
	StatusCompleted:  {},
}

func canTransition(from, to string) bool {
	for _, next := range allowedTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

type Task struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey"`
	Title       string    `gorm:"type:varchar(200);not null"`
	Description string    `gorm:"type:text"`
	Priority    string    `gorm:"type:varchar(10);not null;default:'MEDIUM'"`
	DueDate     *time.Time

	AssignorID uuid.UUID `gorm:"type:uuid;not null;index:idx_tasks_assignor"`
	AssigneeID uuid.UUID `gorm:"type:uuid;not null;index:idx_tasks_assignee"`

	Status   string `gorm:"type:varchar(15);not null;default:'ASSIGNED'"`
	Progress int    `gorm:"not null;default:0"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

// TaskUpdateLog is append-only; one row per execution update.
type TaskUpdateLog struct {
	ID      uuid.UUID `gorm:"type:uuid;primaryKey"`
	TaskID  uuid.UUID `gorm:"type:uuid;not null;index:idx_task_update_logs_task"`
	ActorID uuid.UUID `gorm:"type:uuid;not null"`

	FromStatus string `gorm:"type:varchar(15);not null"`
	ToStatus   string `gorm:"type:varchar(15);not null"`
	Progress   int    `gorm:"not null"`
	Note       string `gorm:"type:text"`

	CreatedAt time.Time
}
