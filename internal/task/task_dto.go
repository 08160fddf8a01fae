package task

type CreateTaskRequest struct {
	Title       string `json:"title" binding:"required,max=200"`
	Description string `json:"description" binding:"max=2000"`
	Priority    string `json:"priority" binding:"omitempty,oneof=LOW MEDIUM HIGH"`
	DueDate     string `json:"due_date"`
	AssigneeID  string `json:"assignee_id" binding:"required,uuid"`
}

type UpdateTaskDefinitionRequest struct {
	Title       *string `json:"title" binding:"omitempty,max=200"`
	Description *string `json:"description" binding:"omitempty,max=2000"`
	Priority    *string `json:"priority" binding:"omitempty,oneof=LOW MEDIUM HIGH"`
	DueDate     *string `json:"due_date"`
}

type TaskUpdateRequest struct {
	Status   string `json:"status" binding:"omitempty,oneof=ASSIGNED IN_PROGRESS BLOCKED COMPLETED"`
	Progress *int   `json:"progress" binding:"omitempty,min=0,max=100"`
	Note     string `json:"note" binding:"max=500"`
}

type TaskResponse struct {
	ID          string  `json:"id"`
	Title       string  `json:"title"`
	Description string  `json:"description,omitempty"`
	Priority    string  `json:"priority"`
	DueDate     *string `json:"due_date,omitempty"`

	AssignorID string `json:"assignor_id"`
	AssigneeID string `json:"assignee_id"`

	Status   string `json:"status"`
	Progress int    `json:"progress"`

	CreatedAt string `json:"created_at"`
	UpdatedAt string `json:"updated_at"`
}

type TaskUpdateLogResponse struct {
	ID         string `json:"id"`
	TaskID     string `json:"task_id"`
	ActorID    string `json:"actor_id"`
	FromStatus string `json:"from_status"`
	ToStatus   string `json:"to_status"`
	Progress   int    `json:"progress"`
	Note       string `json:"note,omitempty"`
	CreatedAt  string `json:"created_at"`
}
