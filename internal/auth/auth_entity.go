package auth

import (
	"time"

	"github.com/google/uuid"
)

// MaxFailedAttempts locks the account when reached.
const MaxFailedAttempts = 5

type Credential struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey"`
	EmployeeID uuid.UUID `gorm:"type:uuid;uniqueIndex:uq_credentials_employee;not null"`
	Username   string    `gorm:"type:varchar(100);uniqueIndex:uq_credentials_username;not null"`

	PasswordHash string `gorm:"type:varchar(100);not null"`

	CreatedAt time.Time
	UpdatedAt time.Time
}
