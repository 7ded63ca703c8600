package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	entsql "entgo.io/ent/dialect/sql"
	"github.com/google/uuid"

	"github.com/joseph-ayodele/parts-inventory/internal/common"
)

type querier interface {
	Query() (string, []any)
}

func execStmt(ctx context.Context, drv *entsql.Driver, b querier) (int64, error) {
	q, args := b.Query()
	var res sql.Result
	if err := drv.Exec(ctx, q, args, &res); err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

// queryEach runs b and calls scan for every row. Rows are closed before it
// returns, so callers may issue further statements on single-connection
// databases.
func queryEach(ctx context.Context, drv *entsql.Driver, b querier, scan func(rows *entsql.Rows) error) error {
	q, args := b.Query()
	var rows entsql.Rows
	if err := drv.Query(ctx, q, args, &rows); err != nil {
		return err
	}
	defer rows.Close()
	for rows.Next() {
		if err := scan(&rows); err != nil {
			return err
		}
	}
	return rows.Err()
}

// queryID returns the first column of the first row as a UUID, or
// ErrNotFound when there is no row.
func queryID(ctx context.Context, drv *entsql.Driver, b querier) (uuid.UUID, error) {
	var (
		id    uuid.UUID
		found bool
	)
	err := queryEach(ctx, drv, b, func(rows *entsql.Rows) error {
		if found {
			return nil
		}
		found = true
		return rows.Scan(&id)
	})
	if err != nil {
		return uuid.Nil, err
	}
	if !found {
		return uuid.Nil, common.ErrNotFound
	}
	return id, nil
}

func dbError(op string, err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, common.ErrNotFound) || errors.Is(err, common.ErrInvalidInput) {
		return fmt.Errorf("%s: %w", op, err)
	}
	return common.NewAppError("DB_ERROR", op, fmt.Errorf("%w: %v", common.ErrDatabase, err))
}

func nowUTC() time.Time { return time.Now().UTC() }
