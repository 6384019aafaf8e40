package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/noah-isme/coaching-center-api/internal/models"
	appErrors "github.com/noah-isme/coaching-center-api/pkg/errors"
)

const uniqueViolation = pq.ErrorCode("23505")

// insertError maps a unique constraint violation to errors.ErrDuplicate.
func insertError(err error, op string) error {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
		return appErrors.Wrap(err, appErrors.ErrDuplicate.Code, appErrors.ErrDuplicate.Status, op+": "+appErrors.ErrDuplicate.Message)
	}
	return fmt.Errorf("%s: %w", op, err)
}

// conditions accumulates WHERE fragments with positional placeholders.
type conditions struct {
	clauses []string
	args    []interface{}
}

func (c *conditions) eq(column string, value interface{}) {
	c.args = append(c.args, value)
	c.clauses = append(c.clauses, fmt.Sprintf("%s = $%d", column, len(c.args)))
}

func (c *conditions) where() string {
	if len(c.clauses) == 0 {
		return ""
	}
	return " WHERE " + strings.Join(c.clauses, " AND ")
}

// orderBy translates a "-rating,-createdAt" style sort expression into an
// ORDER BY list restricted to the allowed columns. Unknown fields are ignored
// and fallback is used when nothing usable remains.
func orderBy(raw string, allowed map[string]string, fallback string) string {
	var parts []string
	for _, field := range strings.Split(raw, ",") {
		field = strings.TrimSpace(field)
		if field == "" {
			continue
		}
		direction := "ASC"
		if strings.HasPrefix(field, "-") {
			direction = "DESC"
			field = field[1:]
		} else if strings.HasPrefix(field, "+") {
			field = field[1:]
		}
		column, ok := allowed[field]
		if !ok {
			continue
		}
		parts = append(parts, column+" "+direction)
	}
	if len(parts) == 0 {
		return fallback
	}
	return strings.Join(parts, ", ")
}

func pageClause(opts models.ListOptions) string {
	if opts.Limit <= 0 {
		return ""
	}
	return fmt.Sprintf(" LIMIT %d OFFSET %d", opts.Limit, opts.Offset())
}

// stableOrder ends the ordering on the primary key so LIMIT/OFFSET pages
// never overlap when the sort columns tie.
func stableOrder(order string) string {
	if order == "" {
		return "id ASC"
	}
	return order + ", id ASC"
}

// listAndCount runs the page query followed by the matching COUNT(*).
func listAndCount(ctx context.Context, db *sqlx.DB, dest interface{}, columns, table string, cond conditions, order string, opts models.ListOptions) (int, error) {
	query := fmt.Sprintf("SELECT %s FROM %s%s ORDER BY %s%s", columns, table, cond.where(), stableOrder(order), pageClause(opts))
	if err := db.SelectContext(ctx, dest, query, cond.args...); err != nil {
		return 0, fmt.Errorf("list %s: %w", table, err)
	}

	var total int
	countQuery := fmt.Sprintf("SELECT COUNT(*) FROM %s%s", table, cond.where())
	if err := db.GetContext(ctx, &total, countQuery, cond.args...); err != nil {
		return 0, fmt.Errorf("count %s: %w", table, err)
	}
	return total, nil
}

// expectAffected converts a zero-row write into sql.ErrNoRows.
func expectAffected(res sql.Result, op string) error {
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("%s rows affected: %w", op, err)
	}
	if affected == 0 {
		return sql.ErrNoRows
	}
	return nil
}

func deleteByID(ctx context.Context, db *sqlx.DB, table, id string) error {
	res, err := db.ExecContext(ctx, fmt.Sprintf("DELETE FROM %s WHERE id = $1", table), id)
	if err != nil {
		return fmt.Errorf("delete %s: %w", table, err)
	}
	return expectAffected(res, "delete "+table)
}

func countWhere(ctx context.Context, db *sqlx.DB, table, where string, args ...interface{}) (int, error) {
	query := "SELECT COUNT(*) FROM " + table
	if where != "" {
		query += " WHERE " + where
	}
	var total int
	if err := db.GetContext(ctx, &total, query, args...); err != nil {
		return 0, fmt.Errorf("count %s: %w", table, err)
	}
	return total, nil
}
