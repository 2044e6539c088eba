// Package gormtx joins GORM sessions to transactions managed through
// database/sql, so service-level Begin/Commit actually covers the
// repository statements issued inside it.
package gormtx

import (
	"database/sql"

	"gorm.io/gorm"
)

// Bind returns a session whose statements run on tx instead of the
// connection pool. GORM skips its own per-call transaction when the
// ConnPool is already a *sql.Tx, so the caller stays in charge of
// commit and rollback.
func Bind(db *gorm.DB, tx *sql.Tx) *gorm.DB {
	session := db.Session(&gorm.Session{Context: db.Statement.Context, NewDB: true})
	session.Statement.ConnPool = tx
	return session
}
