package scope

import "gorm.io/gorm"

// ByEmployee restricts a query to the rows owned by one employee code.
func ByEmployee(empCode string) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where("emp_code = ?", empCode)
	}
}
