package events

import "time"

const LeaveDecidedTopic = "ems.leave.decided.v1"

type LeaveDecidedEvent struct {
	EventType  string    `json:"event_type"`
	RequestID  string    `json:"request_id,omitempty"`
	LeaveID    string    `json:"leave_id"`
	EmpCode    string    `json:"emp_code"`
	Subject    string    `json:"subject"`
	Status     string    `json:"status"`
	DecidedBy  string    `json:"decided_by"`
	OccurredAt time.Time `json:"occurred_at"`
}
