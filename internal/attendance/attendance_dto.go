package attendance

type RecordPunchRequest struct {
	ActionName  string `json:"action_name" binding:"required,oneof=punchin punchout"`
	Description string `json:"description"`
}

type PunchResponse struct {
	ID             string `json:"id"`
	EmpCode        string `json:"emp_code"`
	AttendanceDate string `json:"attendance_date"`
	ActionName     string `json:"action_name"`
	ActionTime     string `json:"action_time"`
	Description    string `json:"description,omitempty"`
}
