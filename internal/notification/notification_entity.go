package notification

import (
	"time"

	"github.com/google/uuid"
)

const (
	KindLeaveDecided = "LEAVE_DECIDED"
)

type Notification struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey"`
	EmployeeID uuid.UUID `gorm:"type:uuid;not null;index:idx_notifications_employee"`

	Kind    string `gorm:"type:varchar(30);not null"`
	Message string `gorm:"type:text;not null"`

	IsRead    bool `gorm:"not null;default:false"`
	CreatedAt time.Time
}
