package employee

type RegisterEmployeeRequest struct {
	Name          string `json:"name" binding:"required,max=100"`
	DateOfBirth   string `json:"date_of_birth"`
	BloodGroup    string `json:"blood_group" binding:"omitempty,oneof=A+ A- B+ B- O+ O- AB+ AB-"`
	MaritalStatus string `json:"marital_status" binding:"omitempty,oneof=SINGLE MARRIED"`
	Email         string `json:"email" binding:"omitempty,email"`

	ResidentialAddress     string `json:"residential_address"`
	PermanentAddress       string `json:"permanent_address"`
	ContactNumber          string `json:"contact_number" binding:"omitempty,max=15"`
	EmergencyContactNumber string `json:"emergency_contact_number" binding:"omitempty,max=15"`

	Designation string `json:"designation" binding:"required,oneof=ASSOCIATE SENIOR_ASSOCIATE TEAM_LEADER MANAGER SENIOR_MANAGER VICE_PRESIDENT PRESIDENT CEO HR"`
	Department  string `json:"department" binding:"omitempty,oneof=IT ADMIN DEVELOPER HR MANAGEMENT"`
	Client      string `json:"client"`

	ReportingPersonID string `json:"reporting_person_id" binding:"omitempty,uuid"`

	JoiningDate      string `json:"joining_date"`
	EndingDate       string `json:"ending_date"`
	EmploymentStatus string `json:"employment_status" binding:"omitempty,oneof=ACTIVE TERMINATED ABSCOND_TERMINATED"`
}

// AdminEditEmployeeRequest carries a partial update. Nil means "not
// provided". Policy-governed fields may be silently dropped depending on
// the acting employee's designation; designation and reporting person are
// management-only.
type AdminEditEmployeeRequest struct {
	ContactNumber          *string `json:"contact_number"`
	EmergencyContactNumber *string `json:"emergency_contact_number"`
	ResidentialAddress     *string `json:"residential_address"`
	PermanentAddress       *string `json:"permanent_address"`
	Client                 *string `json:"client"`
	Department             *string `json:"department" binding:"omitempty,oneof=IT ADMIN DEVELOPER HR MANAGEMENT"`

	Designation       *string `json:"designation" binding:"omitempty,oneof=ASSOCIATE SENIOR_ASSOCIATE TEAM_LEADER MANAGER SENIOR_MANAGER VICE_PRESIDENT PRESIDENT CEO HR"`
	ReportingPersonID *string `json:"reporting_person_id" binding:"omitempty,uuid"`

	Comment string `json:"comment"`
}

type EmployeeResponse struct {
	ID             string `json:"id"`
	EmployeeNumber string `json:"employee_number"`
	Name           string `json:"name"`

	DateOfBirth   *string `json:"date_of_birth,omitempty"`
	BloodGroup    string  `json:"blood_group,omitempty"`
	MaritalStatus string  `json:"marital_status,omitempty"`
	Email         string  `json:"email,omitempty"`

	ResidentialAddress     string `json:"residential_address,omitempty"`
	PermanentAddress       string `json:"permanent_address,omitempty"`
	ContactNumber          string `json:"contact_number,omitempty"`
	EmergencyContactNumber string `json:"emergency_contact_number,omitempty"`

	Designation string `json:"designation"`
	Department  string `json:"department,omitempty"`
	Client      string `json:"client,omitempty"`

	ReportingRole     string  `json:"reporting_role,omitempty"`
	ReportingPersonID *string `json:"reporting_person_id,omitempty"`

	JoiningDate      *string `json:"joining_date,omitempty"`
	EndingDate       *string `json:"ending_date,omitempty"`
	EmploymentStatus string  `json:"employment_status"`

	ForcePasswordReset bool `json:"force_password_reset"`
	HasLogin           bool `json:"has_login"`

	IsDeleted   bool    `json:"is_deleted"`
	DeletedAt   *string `json:"deleted_at,omitempty"`
	DeletedByID *string `json:"deleted_by_id,omitempty"`
}

type EmployeeOption struct {
	ID             string `json:"id"`
	EmployeeNumber string `json:"employee_number"`
	Name           string `json:"name"`
	Designation    string `json:"designation"`
}
