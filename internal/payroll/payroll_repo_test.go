package payroll_test

import (
	"context"
	"testing"
	"time"

	"github.com/kingxjullien14/nkp-ems/internal/payroll"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func openGorm(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	gdb, err := gorm.Open(postgres.New(postgres.Config{Conn: db}), &gorm.Config{})
	assert.NoError(t, err)
	return gdb, mock
}

// The regenerate path deletes the prior rows before inserting the new
// ones, so both statements must run on the transaction the service
// opened, not on the pool.
func TestRepository_WithTx_StatementsJoinCallerTx(t *testing.T) {
	gdb, poolMock := openGorm(t)

	txDB, txMock, err := sqlmock.New()
	assert.NoError(t, err)
	defer txDB.Close()

	txMock.ExpectBegin()
	txMock.ExpectExec(`DELETE FROM "salaries"`).
		WithArgs("2024-01").
		WillReturnResult(sqlmock.NewResult(0, 2))
	txMock.ExpectExec(`INSERT INTO "salaries"`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	txMock.ExpectCommit()

	tx, err := txDB.Begin()
	assert.NoError(t, err)

	repo := payroll.NewRepository(gdb).WithTx(tx)

	ctx := context.Background()
	assert.NoError(t, repo.DeleteByPeriods(ctx, []string{"2024-01"}))
	assert.NoError(t, repo.InsertSalaries(ctx, []payroll.Salary{{
		ID:           uuid.New(),
		EmpCode:      "EMP-000001",
		NetSalary:    80,
		SalaryMonth:  "2024-01",
		GenerateDate: time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC),
	}}))
	assert.NoError(t, tx.Commit())

	assert.NoError(t, txMock.ExpectationsWereMet())
	// nothing leaked onto the pool connection
	assert.NoError(t, poolMock.ExpectationsWereMet())
}

func TestRepository_WithTx_RollbackDiscardsDelete(t *testing.T) {
	gdb, poolMock := openGorm(t)

	txDB, txMock, err := sqlmock.New()
	assert.NoError(t, err)
	defer txDB.Close()

	txMock.ExpectBegin()
	txMock.ExpectExec(`DELETE FROM "salaries"`).
		WithArgs("2024-01").
		WillReturnResult(sqlmock.NewResult(0, 2))
	txMock.ExpectRollback()

	tx, err := txDB.Begin()
	assert.NoError(t, err)

	repo := payroll.NewRepository(gdb).WithTx(tx)
	assert.NoError(t, repo.DeleteByPeriods(context.Background(), []string{"2024-01"}))
	assert.NoError(t, tx.Rollback())

	assert.NoError(t, txMock.ExpectationsWereMet())
	assert.NoError(t, poolMock.ExpectationsWereMet())
}
