package employee

type CreateEmployeeRequest struct {
	EmpCode     string `json:"emp_code"` // minted from the counter when blank
	Password    string `json:"password" binding:"required,min=6"`
	FullName    string `json:"full_name" binding:"required"`
	DOB         string `json:"dob" binding:"required"`
	Gender      string `json:"gender" binding:"required,oneof=male female"`
	Nationality string `json:"nationality" binding:"required"`
	Address     string `json:"address"`
	PhoneNumber string `json:"phone_number"`
	Email       string `json:"email" binding:"required,email"`

	PassportNumber     string `json:"passport_number"`
	PassportCountry    string `json:"passport_country"`
	PassportIssueDate  string `json:"passport_issue_date"`
	PassportExpiryDate string `json:"passport_expiry_date"`

	VisaType       string `json:"visa_type"`
	VisaNumber     string `json:"visa_number"`
	VisaIssueDate  string `json:"visa_issue_date"`
	VisaExpiryDate string `json:"visa_expiry_date"`
	VisaStatus     string `json:"visa_status"`

	PermitType       string `json:"permit_type"`
	PermitNumber     string `json:"permit_number"`
	PermitIssueDate  string `json:"permit_issue_date"`
	PermitExpiryDate string `json:"permit_expiry_date"`

	HourlyRate float64 `json:"hourly_rate" binding:"gte=0"`
}

// UpdateEmployeeRequest replaces every mutable field in one operation.
// An empty password keeps the stored credential.
type UpdateEmployeeRequest struct {
	Password    string `json:"password"`
	FullName    string `json:"full_name" binding:"required"`
	DOB         string `json:"dob" binding:"required"`
	Gender      string `json:"gender" binding:"required,oneof=male female"`
	Nationality string `json:"nationality" binding:"required"`
	Address     string `json:"address"`
	PhoneNumber string `json:"phone_number"`
	Email       string `json:"email" binding:"required,email"`

	PassportNumber     string `json:"passport_number"`
	PassportCountry    string `json:"passport_country"`
	PassportIssueDate  string `json:"passport_issue_date"`
	PassportExpiryDate string `json:"passport_expiry_date"`

	VisaType       string `json:"visa_type"`
	VisaNumber     string `json:"visa_number"`
	VisaIssueDate  string `json:"visa_issue_date"`
	VisaExpiryDate string `json:"visa_expiry_date"`
	VisaStatus     string `json:"visa_status"`

	PermitType       string `json:"permit_type"`
	PermitNumber     string `json:"permit_number"`
	PermitIssueDate  string `json:"permit_issue_date"`
	PermitExpiryDate string `json:"permit_expiry_date"`

	HourlyRate float64 `json:"hourly_rate" binding:"gte=0"`
}

type EmployeeResponse struct {
	EmpCode     string `json:"emp_code"`
	FullName    string `json:"full_name"`
	DOB         string `json:"dob"`
	Gender      string `json:"gender"`
	Nationality string `json:"nationality"`
	Address     string `json:"address"`
	PhoneNumber string `json:"phone_number"`
	Email       string `json:"email"`

	PassportNumber     string `json:"passport_number"`
	PassportCountry    string `json:"passport_country"`
	PassportIssueDate  string `json:"passport_issue_date"`
	PassportExpiryDate string `json:"passport_expiry_date"`

	VisaType       string `json:"visa_type"`
	VisaNumber     string `json:"visa_number"`
	VisaIssueDate  string `json:"visa_issue_date"`
	VisaExpiryDate string `json:"visa_expiry_date"`
	VisaStatus     string `json:"visa_status"`

	PermitType       string `json:"permit_type"`
	PermitNumber     string `json:"permit_number"`
	PermitIssueDate  string `json:"permit_issue_date"`
	PermitExpiryDate string `json:"permit_expiry_date"`

	HourlyRate float64 `json:"hourly_rate"`
}
