package sqlite

import (
	"context"
	"database/sql"
	"fmt"
)

// querier is satisfied by *sql.DB and *sql.Tx.
type querier interface {
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

// nextPosition returns max(position)+1 among the rows scoped by scopeCol =
// scopeID, 0 when the scope is empty. Positions are dense only at append
// time; deletions may leave gaps.
func nextPosition(ctx context.Context, q querier, table, scopeCol string, scopeID int64) (int, error) {
	var pos int
	query := fmt.Sprintf("SELECT COALESCE(MAX(position) + 1, 0) FROM %s WHERE %s = ?", table, scopeCol)
	if err := q.QueryRowContext(ctx, query, scopeID).Scan(&pos); err != nil {
		return 0, fmt.Errorf("failed to compute next position in %s: %w", table, err)
	}
	return pos, nil
}

// reorder applies the id -> position mapping to the scoped rows in one
// transaction. An id outside the scope fails the whole batch.
func reorder(ctx context.Context, db *sql.DB, table, scopeCol string, scopeID int64, positions map[int64]int, touch bool) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin reorder: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	query := fmt.Sprintf("UPDATE %s SET position = ? WHERE id = ? AND %s = ?", table, scopeCol)
	if touch {
		query = fmt.Sprintf("UPDATE %s SET position = ?, updated_at = ? WHERE id = ? AND %s = ?", table, scopeCol)
	}

	for id, pos := range positions {
		args := []any{pos, id, scopeID}
		if touch {
			args = []any{pos, now(), id, scopeID}
		}
		res, err := tx.ExecContext(ctx, query, args...)
		if err != nil {
			return fmt.Errorf("failed to reorder %s: %w", table, err)
		}
		n, err := res.RowsAffected()
		if err != nil {
			return fmt.Errorf("failed to reorder %s: %w", table, err)
		}
		if n == 0 {
			return fmt.Errorf("row %d not found in %s scope %d", id, table, scopeID)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit reorder: %w", err)
	}
	return nil
}
