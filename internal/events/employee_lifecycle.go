package events

import "time"

const EmployeeLifecycleTopic = "workforce.employee.lifecycle.v1"

const (
	EmployeeRegistered  = "employee_registered"
	EmployeeDeactivated = "employee_deactivated"
	EmployeeRestored    = "employee_restored"
)

type EmployeeLifecycleEvent struct {
	EventType      string    `json:"event_type"`
	RequestID      string    `json:"request_id,omitempty"`
	EmployeeID     string    `json:"employee_id"`
	EmployeeNumber string    `json:"employee_number"`
	ActorID        string    `json:"actor_id,omitempty"`
	OccurredAt     time.Time `json:"occurred_at"`
}
