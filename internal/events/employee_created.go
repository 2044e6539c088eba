package events

import "time"

const EmployeeCreatedTopic = "ems.employee.lifecycle.v1"

type EmployeeCreatedEvent struct {
	EventType  string    `json:"event_type"`
	RequestID  string    `json:"request_id,omitempty"`
	EmpCode    string    `json:"emp_code"`
	FullName   string    `json:"full_name"`
	OccurredAt time.Time `json:"occurred_at"`
}
