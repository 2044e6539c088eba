package auth

import "time"

// Admin rows exist solely for authentication.
type Admin struct {
	AdminCode string `gorm:"column:admin_code;type:varchar(20);primaryKey"`
	Password  string `gorm:"column:admin_password;type:varchar(255);not null"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (Admin) TableName() string {
	return "admins"
}

// Session is the explicit principal object issued at login and rebuilt
// per request by the auth middleware. There is no global session state.
type Session struct {
	Role string `json:"role"` // "admin" or "employee"
	Code string `json:"code"`
}

func (s Session) IsAdmin() bool {
	return s.Role == RoleAdmin
}
