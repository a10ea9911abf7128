package sqlstore

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/clientive/clientive/internal/domain"
)

// Ensure accountRepo implements domain.AccountRepository.
var _ domain.AccountRepository = (*accountRepo)(nil)

type accountRepo struct {
	db    *DB
	owner string
}

// DeleteAll removes the owner's orders, tasks and clients in one transaction.
func (r *accountRepo) DeleteAll(ctx context.Context) (err error) {
	tx, err := r.db.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	for _, table := range []string{"orders", "tasks", "clients"} {
		if err = deleteOwned(ctx, tx, r.db, table, r.owner); err != nil {
			return err
		}
	}
	if err = tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}

func deleteOwned(ctx context.Context, tx *sql.Tx, db *DB, table, owner string) error {
	if _, err := tx.ExecContext(ctx, db.rebind(`DELETE FROM `+table+` WHERE owner_id = ?`), owner); err != nil {
		return fmt.Errorf("delete %s: %w", table, err)
	}
	return nil
}
