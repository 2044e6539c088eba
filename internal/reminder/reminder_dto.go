package reminder

type ExpiringDocumentResponse struct {
	EmpCode      string `json:"emp_code"`
	FullName     string `json:"full_name"`
	Email        string `json:"email"`
	DocumentType string `json:"document_type"`
	Number       string `json:"number,omitempty"`
	ExpiryDate   string `json:"expiry_date"`
}

type ScanResponse struct {
	WindowDays int                        `json:"window_days"`
	ScannedAt  string                     `json:"scanned_at"`
	Passports  []ExpiringDocumentResponse `json:"passports"`
	Visas      []ExpiringDocumentResponse `json:"visas"`
	Permits    []ExpiringDocumentResponse `json:"permits"`
}
