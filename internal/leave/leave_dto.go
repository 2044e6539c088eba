package leave

type SubmitLeaveRequest struct {
	Subject   string `json:"subject" binding:"required"`
	StartDate string `json:"start_date" binding:"required"`
	EndDate   string `json:"end_date" binding:"required"`
	Message   string `json:"message"`
	LeaveType string `json:"leave_type" binding:"required,oneof=paid unpaid"`
}

type DecideLeaveRequest struct {
	Decision string `json:"decision" binding:"required,oneof=approved rejected"`
}

type LeaveResponse struct {
	ID        string  `json:"id"`
	EmpCode   string  `json:"emp_code"`
	Subject   string  `json:"subject"`
	StartDate string  `json:"start_date"`
	EndDate   string  `json:"end_date"`
	TotalDays int     `json:"total_days"`
	Message   string  `json:"message,omitempty"`
	LeaveType string  `json:"leave_type"`
	Status    string  `json:"status"`
	AppliedAt string  `json:"applied_at"`
	DecidedAt *string `json:"decided_at,omitempty"`
	DecidedBy *string `json:"decided_by,omitempty"`
}
