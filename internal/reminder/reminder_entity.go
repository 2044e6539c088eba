package reminder

import "time"

// Document kinds scanned for upcoming expiry.
const (
	DocPassport = "passport"
	DocVisa     = "visa"
	DocPermit   = "permit"
)

// DefaultWindowDays is how far ahead the scan looks.
const DefaultWindowDays = 30

// ExpiringDocument is one employee document whose expiry date falls
// inside the scan window.
type ExpiringDocument struct {
	EmpCode      string    `gorm:"column:emp_code"`
	FullName     string    `gorm:"column:full_name"`
	Email        string    `gorm:"column:email"`
	DocumentType string    `gorm:"-"`
	Number       string    `gorm:"column:number"`
	ExpiryDate   time.Time `gorm:"column:expiry_date"`
}
