package common

import (
	"context"
	"database/sql"
	"errors"
)

type ToggleAction string

const (
	ToggleAdded   ToggleAction = "added"
	ToggleRemoved ToggleAction = "removed"
)

var (
	// ErrEdgeExists is returned when a concurrent request created the same
	// edge first. Callers treat it as "already in that state" rather than a
	// server fault.
	ErrEdgeExists = errors.New("edge already exists")
)

// ToggleEdge flips the existence of a uniquely keyed edge row (a follow or a
// like) in a single transaction. The delete and insert statements must target
// the same unique key and take the same arguments. If the row exists it is
// deleted, otherwise it is inserted; a unique violation on the insert means a
// concurrent toggle won the race and is reported as ErrEdgeExists. Any other
// insert failure, foreign key violations included, is returned as is for the
// caller to map. The edge is never left in a partial state.
func ToggleEdge(ctx context.Context, db *sql.DB, deleteQuery, insertQuery string, args ...any) (ToggleAction, error) {
	var action ToggleAction

	err := WithTx(ctx, db, func(tx *sql.Tx) error {
		res, err := tx.ExecContext(ctx, deleteQuery, args...)
		if err != nil {
			return err
		}

		rows, err := res.RowsAffected()
		if err != nil {
			return err
		}

		if rows == 1 {
			action = ToggleRemoved
			return nil
		}

		_, err = tx.ExecContext(ctx, insertQuery, args...)
		if err != nil {
			switch {
			case UniqueViolation(err):
				return ErrEdgeExists
			default:
				return err
			}
		}

		action = ToggleAdded
		return nil
	})
	if err != nil {
		return "", err
	}

	return action, nil
}
