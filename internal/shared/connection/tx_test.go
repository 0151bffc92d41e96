package connection

import (
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func newMockGorm(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()
	sqlDB, mock, err := sqlmock.New()
	assert.NoError(t, err)

	db, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{SkipDefaultTransaction: true})
	assert.NoError(t, err)
	return db, mock
}

func TestWithSQLTx(t *testing.T) {
	t.Run("nil tx returns same handle", func(t *testing.T) {
		db, _ := newMockGorm(t)
		assert.Same(t, db, WithSQLTx(db, nil))
	})

	t.Run("statements run inside the borrowed tx", func(t *testing.T) {
		db, mock := newMockGorm(t)
		sqlDB, err := db.DB()
		assert.NoError(t, err)

		mock.ExpectBegin()
		mock.ExpectExec(`UPDATE companies SET is_active = false`).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()

		tx, err := sqlDB.Begin()
		assert.NoError(t, err)

		err = WithSQLTx(db, tx).Exec("UPDATE companies SET is_active = false").Error
		assert.NoError(t, err)
		assert.NoError(t, tx.Commit())
		assert.NoError(t, mock.ExpectationsWereMet())

		// the base handle is untouched
		assert.Equal(t, sqlDB, db.Statement.ConnPool)
	})
}
