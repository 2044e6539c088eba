package report

type AttendanceSummaryRow struct {
	EmpCode      string `gorm:"column:emp_code" json:"emp_code"`
	FullName     string `gorm:"column:full_name" json:"full_name"`
	DaysPresent  int64  `gorm:"column:days_present" json:"days_present"`
	TotalPunches int64  `gorm:"column:total_punches" json:"total_punches"`
}

type SalarySummaryRow struct {
	SalaryMonth string  `gorm:"column:salary_month" json:"salary_month"`
	Employees   int64   `gorm:"column:employees" json:"employees"`
	TotalPay    float64 `gorm:"column:total_pay" json:"total_pay"`
}
