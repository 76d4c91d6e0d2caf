// Package sqlxrepos implements the storage ports against PostgreSQL using
// sqlx. Cross-row invariants (supersede-and-create, the attendance unique
// index, cascade deletes) are enforced inside transactions so the core can
// stay oblivious to the backend.
package sqlxrepos

import (
	"database/sql"

	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"
)

// Wrap converts a *sql.DB (as returned by database.Open) for use with the
// sqlx repositories.
func Wrap(db *sql.DB) *sqlx.DB {
	return sqlx.NewDb(db, "postgres")
}

// inTx runs fn within a transaction, committing on success.
func inTx(db *sqlx.DB, fn func(tx *sqlx.Tx) error) error {
	tx, err := db.Beginx()
	if err != nil {
		return errors.Wrap(err, "beginning tx")
	}
	if err = fn(tx); err != nil {
		_ = tx.Rollback()
		return err
	}
	return errors.Wrap(tx.Commit(), "committing tx")
}
