package events

import "time"

const PayrollGeneratedTopic = "ems.payroll.generated.v1"

type PayrollGeneratedEvent struct {
	EventType   string    `json:"event_type"`
	RequestID   string    `json:"request_id,omitempty"`
	GeneratedBy string    `json:"generated_by"`
	Periods     []string  `json:"periods"` // YYYY-MM, deduplicated
	EmpCodes    []string  `json:"emp_codes"`
	OccurredAt  time.Time `json:"occurred_at"`
}
