package events

import "time"

const LeaveLifecycleTopic = "workforce.leave.lifecycle.v1"

const LeaveDecided = "leave_decided"

type LeaveDecidedEvent struct {
	EventType  string    `json:"event_type"`
	RequestID  string    `json:"request_id,omitempty"`
	LeaveID    string    `json:"leave_id"`
	EmployeeID string    `json:"employee_id"`
	ApproverID string    `json:"approver_id"`
	Status     string    `json:"status"`
	OccurredAt time.Time `json:"occurred_at"`
}
