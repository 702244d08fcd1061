package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"
)

// conditions collects WHERE clauses with positional arguments.
type conditions struct {
	clauses []string
	args    []interface{}
}

func (c *conditions) add(clause string, arg interface{}) {
	c.args = append(c.args, arg)
	c.clauses = append(c.clauses, fmt.Sprintf(clause, len(c.args)))
}

func (c *conditions) where() string {
	if len(c.clauses) == 0 {
		return ""
	}
	return " WHERE " + strings.Join(c.clauses, " AND ")
}

// exists runs a SELECT 1 ... LIMIT 1 style query.
func exists(ctx context.Context, q sqlx.QueryerContext, query string, args ...interface{}) (bool, error) {
	var found int
	if err := sqlx.GetContext(ctx, q, &found, query, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

// existsExcluding checks column = value, ignoring the row with excludeID
// when it is non-zero.
func existsExcluding(ctx context.Context, q sqlx.QueryerContext, table, column string, value, excludeID interface{}) (bool, error) {
	query := fmt.Sprintf("SELECT 1 FROM %s WHERE %s = $1", table, column)
	args := []interface{}{value}
	if !isZeroID(excludeID) {
		query += " AND id <> $2"
		args = append(args, excludeID)
	}
	return exists(ctx, q, query+" LIMIT 1", args...)
}

func isZeroID(id interface{}) bool {
	switch v := id.(type) {
	case nil:
		return true
	case int64:
		return v == 0
	case string:
		return v == ""
	default:
		return false
	}
}

// insertReturningID executes a named INSERT ... RETURNING id.
func insertReturningID(ctx context.Context, ext sqlx.ExtContext, query string, arg interface{}) (int64, error) {
	rows, err := sqlx.NamedQueryContext(ctx, ext, query, arg)
	if err != nil {
		return 0, err
	}
	defer rows.Close()

	if !rows.Next() {
		if err := rows.Err(); err != nil {
			return 0, err
		}
		return 0, sql.ErrNoRows
	}
	var id int64
	if err := rows.Scan(&id); err != nil {
		return 0, err
	}
	return id, rows.Err()
}

// deleteByID removes one row and reports sql.ErrNoRows when nothing matched.
func deleteByID(ctx context.Context, db sqlx.ExecerContext, table string, id interface{}) error {
	res, err := db.ExecContext(ctx, fmt.Sprintf("DELETE FROM %s WHERE id = $1", table), id)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// requireAffected turns an UPDATE that matched nothing into sql.ErrNoRows.
func requireAffected(res sql.Result) error {
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return sql.ErrNoRows
	}
	return nil
}
