package payroll

type RunPayrollRequest struct {
	Regenerate bool `json:"regenerate"`
}

type SalaryResponse struct {
	ID           string  `json:"id"`
	EmpCode      string  `json:"emp_code"`
	NetSalary    float64 `json:"net_salary"`
	SalaryMonth  string  `json:"salary_month"`
	GenerateDate string  `json:"generate_date"`
}

type RunPayrollResponse struct {
	Generated []SalaryResponse `json:"generated"`
	Warnings  []string         `json:"warnings,omitempty"`
}
