package leave

type ApplyLeaveRequest struct {
	LeaveType string  `json:"leave_type" binding:"required,oneof=CASUAL SICK PERMISSION"`
	StartDate string  `json:"start_date" binding:"required"`
	EndDate   string  `json:"end_date"`
	Hours     float64 `json:"hours" binding:"omitempty,gt=0,lte=8"`
	Reason    string  `json:"reason" binding:"required,max=500"`
}

type LeaveActionRequest struct {
	Action  string `json:"action" binding:"required,oneof=APPROVE REJECT SEND_BACK"`
	Comment string `json:"comment" binding:"max=500"`
}

type LeaveResponse struct {
	ID         string `json:"id"`
	EmployeeID string `json:"employee_id"`

	LeaveType string `json:"leave_type"`
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`
	TotalDays int    `json:"total_days"`
	Reason    string `json:"reason"`

	Status            string  `json:"status"`
	CurrentApproverID *string `json:"current_approver_id,omitempty"`

	CreatedAt string `json:"created_at"`
	UpdatedAt string `json:"updated_at"`
}

type ApprovalLogResponse struct {
	ID             string `json:"id"`
	LeaveRequestID string `json:"leave_request_id"`
	ActorID        string `json:"actor_id"`
	Action         string `json:"action"`
	FromStatus     string `json:"from_status"`
	ToStatus       string `json:"to_status"`
	Comment        string `json:"comment,omitempty"`
	CreatedAt      string `json:"created_at"`
}
