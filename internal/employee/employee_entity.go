package employee

import (
	"time"
)

// Employee mirrors the employees table. EmpCode is the business key used
// by attendance, leave and salary rows; it never changes once referenced.
type Employee struct {
	EmpCode     string    `gorm:"column:emp_code;type:varchar(20);primaryKey"`
	Password    string    `gorm:"column:emp_password;type:varchar(255);not null"`
	FullName    string    `gorm:"column:full_name;type:varchar(255);not null"`
	DOB         time.Time `gorm:"column:dob;type:date"`
	Gender      string    `gorm:"column:gender;type:varchar(10)"`
	Nationality string    `gorm:"column:nationality;type:varchar(100)"`
	Address     string    `gorm:"column:address;type:text"`
	PhoneNumber string    `gorm:"column:phone_number;type:varchar(30)"`
	Email       string    `gorm:"column:email;type:varchar(255);uniqueIndex"`

	PassportNumber     string    `gorm:"column:passport_number;type:varchar(50)"`
	PassportCountry    string    `gorm:"column:passport_country;type:varchar(100)"`
	PassportIssueDate  time.Time `gorm:"column:passport_issue_date;type:date"`
	PassportExpiryDate time.Time `gorm:"column:passport_expiry_date;type:date;index"`

	VisaType       string    `gorm:"column:visa_type;type:varchar(50)"`
	VisaNumber     string    `gorm:"column:visa_number;type:varchar(50)"`
	VisaIssueDate  time.Time `gorm:"column:visa_issue_date;type:date"`
	VisaExpiryDate time.Time `gorm:"column:visa_expiry_date;type:date;index"`
	VisaStatus     string    `gorm:"column:visa_status;type:varchar(20)"`

	PermitType       string    `gorm:"column:permit_type;type:varchar(50)"`
	PermitNumber     string    `gorm:"column:permit_number;type:varchar(50)"`
	PermitIssueDate  time.Time `gorm:"column:permit_issue_date;type:date"`
	PermitExpiryDate time.Time `gorm:"column:permit_expiry_date;type:date;index"`

	HourlyRate float64 `gorm:"column:hourly_rate;not null;default:0"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

func (Employee) TableName() string {
	return "employees"
}
