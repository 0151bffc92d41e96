package connection

import (
	"context"
	"database/sql"

	"gorm.io/gorm"
)

// WithSQLTx returns a gorm handle whose statements run on tx. Services own
// the *sql.Tx (BeginTx/Commit); repositories only borrow it.
func WithSQLTx(db *gorm.DB, tx *sql.Tx) *gorm.DB {
	if tx == nil {
		return db
	}
	txDB := db.Session(&gorm.Session{Context: context.Background(), NewDB: true})
	txDB.Statement.ConnPool = tx
	return txDB
}
