package employee

import (
	"time"

	"github.com/google/uuid"
)

const (
	EmploymentStatusActive            = "ACTIVE"
	EmploymentStatusTerminated        = "TERMINATED"
	EmploymentStatusAbscondTerminated = "ABSCOND_TERMINATED"
)

type Employee struct {
	ID             uuid.UUID `gorm:"type:uuid;primaryKey"`
	EmployeeNumber string    `gorm:"type:varchar(20);uniqueIndex:uq_employee_number;not null"`
	Name           string    `gorm:"type:varchar(100);not null"`

	DateOfBirth   *time.Time `gorm:"type:date"`
	BloodGroup    string     `gorm:"type:varchar(3)"`
	MaritalStatus string     `gorm:"type:varchar(10)"`
	Email         string     `gorm:"type:varchar(255)"`

	ResidentialAddress     string `gorm:"type:text"`
	PermanentAddress       string `gorm:"type:text"`
	ContactNumber          string `gorm:"type:varchar(15)"`
	EmergencyContactNumber string `gorm:"type:varchar(15)"`

	Designation string `gorm:"type:varchar(30)"`
	Department  string `gorm:"type:varchar(30)"`
	Client      string `gorm:"type:varchar(100)"`

	// ReportingRole mirrors the reporting person's designation at edge
	// creation time. The workflow only ever uses the direct reporting
	// person; the role column is informational.
	ReportingRole     string     `gorm:"type:varchar(30)"`
	ReportingPersonID *uuid.UUID `gorm:"type:uuid"`

	JoiningDate      *time.Time `gorm:"type:date"`
	EndingDate       *time.Time `gorm:"type:date"`
	EmploymentStatus string     `gorm:"type:varchar(25);not null;default:'ACTIVE'"`

	// Account control
	IsLocked            bool       `gorm:"not null;default:false"`
	FailedLoginAttempts int        `gorm:"not null;default:0"`
	ForcePasswordReset  bool       `gorm:"not null;default:true"`
	CredentialID        *uuid.UUID `gorm:"type:uuid"`

	// Soft delete (management only); the row itself is never removed
	IsDeleted   bool       `gorm:"not null;default:false;index:idx_employees_is_deleted"`
	DeletedAt   *time.Time
	DeletedByID *uuid.UUID `gorm:"type:uuid"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

// SnapshotSubjectID implements audit.Snapshotter.
func (e *Employee) SnapshotSubjectID() uuid.UUID {
	return e.ID
}

// AuditState implements audit.Snapshotter. Keys match the public field
// names so snapshots diff cleanly against update payloads.
func (e *Employee) AuditState() map[string]any {
	return map[string]any{
		"employee_number":          e.EmployeeNumber,
		"name":                     e.Name,
		"date_of_birth":            e.DateOfBirth,
		"blood_group":              e.BloodGroup,
		"marital_status":           e.MaritalStatus,
		"email":                    e.Email,
		"residential_address":      e.ResidentialAddress,
		"permanent_address":        e.PermanentAddress,
		"contact_number":           e.ContactNumber,
		"emergency_contact_number": e.EmergencyContactNumber,
		"designation":              e.Designation,
		"department":               e.Department,
		"client":                   e.Client,
		"reporting_role":           e.ReportingRole,
		"reporting_person_id":      e.ReportingPersonID,
		"joining_date":             e.JoiningDate,
		"ending_date":              e.EndingDate,
		"employment_status":        e.EmploymentStatus,
		"is_locked":                e.IsLocked,
		"force_password_reset":     e.ForcePasswordReset,
		"is_deleted":               e.IsDeleted,
		"deleted_at":               e.DeletedAt,
		"deleted_by_id":            e.DeletedByID,
	}
}
