// Package store implements a generic CRUD adapter over PostgreSQL.
//
// Each entity kind is described by a Mapper, which names its table, writable
// columns, default ordering, and how to scan a row back into the entity type.
// The operations are package-level generic functions taking a Querier, so the
// same adapter runs against *sql.DB and inside a *sql.Tx without change.
//
// Side effects are confined to the database; there is no caching and every
// operation is synchronous and blocking.
package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
)

// Querier is the subset of database/sql shared by *sql.DB and *sql.Tx.
type Querier interface {
	ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...interface{}) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...interface{}) *sql.Row
}

// Scanner abstracts *sql.Row and *sql.Rows for Mapper scan functions.
type Scanner interface {
	Scan(dest ...interface{}) error
}

// Fields is a column → value map supplied to Create and Update. Keys must
// name writable columns of the mapper; anything else is rejected before any
// SQL is built.
type Fields map[string]interface{}

// Mapper describes one entity kind to the generic operations.
type Mapper[T any] struct {
	// Table is the table name.
	Table string
	// Columns are the writable columns, excluding the id column.
	Columns []string
	// OrderBy is the kind's default ordering, e.g. "created_at DESC".
	OrderBy string
	// Scan reads one row in the order id, Columns...
	Scan func(Scanner) (T, error)
}

func (m Mapper[T]) selectList() string {
	return "id, " + strings.Join(m.Columns, ", ")
}

func (m Mapper[T]) hasColumn(name string) bool {
	for _, c := range m.Columns {
		if c == name {
			return true
		}
	}
	return false
}

// pickColumns returns the mapper columns present in fields, in mapper order,
// with their values. An unknown key is an error so that no caller-supplied
// string ever reaches the SQL text.
func (m Mapper[T]) pickColumns(fields Fields) ([]string, []interface{}, error) {
	for k := range fields {
		if !m.hasColumn(k) {
			return nil, nil, fmt.Errorf("unknown column %q", k)
		}
	}
	var cols []string
	var vals []interface{}
	for _, c := range m.Columns {
		if v, ok := fields[c]; ok {
			cols = append(cols, c)
			vals = append(vals, v)
		}
	}
	return cols, vals, nil
}

// Create inserts a new record and returns it as stored, including
// database-defaulted columns. Insertion failures (constraint violations
// included) are reported as *PersistenceError.
func Create[T any](ctx context.Context, q Querier, m Mapper[T], fields Fields) (T, error) {
	var zero T
	cols, vals, err := m.pickColumns(fields)
	if err != nil {
		return zero, persistErr("create", m.Table, err)
	}
	if len(cols) == 0 {
		return zero, persistErr("create", m.Table, errors.New("no fields supplied"))
	}

	ph := make([]string, len(cols))
	for i := range cols {
		ph[i] = fmt.Sprintf("$%d", i+1)
	}
	query := fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s) RETURNING %s",
		m.Table, strings.Join(cols, ", "), strings.Join(ph, ", "), m.selectList())

	rec, err := m.Scan(q.QueryRowContext(ctx, query, vals...))
	if err != nil {
		return zero, persistErr("create", m.Table, err)
	}
	return rec, nil
}

// Update applies each supplied field to the record with the given id and
// returns the updated record. Returns ErrNotFound if no such record exists.
func Update[T any](ctx context.Context, q Querier, m Mapper[T], id int64, fields Fields) (T, error) {
	var zero T
	cols, vals, err := m.pickColumns(fields)
	if err != nil {
		return zero, persistErr("update", m.Table, err)
	}
	if len(cols) == 0 {
		return ByID(ctx, q, m, id)
	}

	sets := make([]string, len(cols))
	for i, c := range cols {
		sets[i] = fmt.Sprintf("%s = $%d", c, i+1)
	}
	query := fmt.Sprintf("UPDATE %s SET %s WHERE id = $%d RETURNING %s",
		m.Table, strings.Join(sets, ", "), len(cols)+1, m.selectList())
	vals = append(vals, id)

	rec, err := m.Scan(q.QueryRowContext(ctx, query, vals...))
	if errors.Is(err, sql.ErrNoRows) {
		return zero, ErrNotFound
	}
	if err != nil {
		return zero, persistErr("update", m.Table, err)
	}
	return rec, nil
}

// Delete removes the record with the given id and returns its prior state.
// Returns ErrNotFound if no such record exists.
func Delete[T any](ctx context.Context, q Querier, m Mapper[T], id int64) (T, error) {
	var zero T
	query := fmt.Sprintf("DELETE FROM %s WHERE id = $1 RETURNING %s", m.Table, m.selectList())

	rec, err := m.Scan(q.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return zero, ErrNotFound
	}
	if err != nil {
		return zero, persistErr("delete", m.Table, err)
	}
	return rec, nil
}

// All returns every record of the kind in its default ordering.
func All[T any](ctx context.Context, q Querier, m Mapper[T]) ([]T, error) {
	query := fmt.Sprintf("SELECT %s FROM %s ORDER BY %s", m.selectList(), m.Table, m.OrderBy)
	return queryMany(ctx, q, m, query)
}

// ByID returns the record with the given id, or ErrNotFound.
func ByID[T any](ctx context.Context, q Querier, m Mapper[T], id int64) (T, error) {
	var zero T
	query := fmt.Sprintf("SELECT %s FROM %s WHERE id = $1", m.selectList(), m.Table)

	rec, err := m.Scan(q.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return zero, ErrNotFound
	}
	if err != nil {
		return zero, persistErr("get", m.Table, err)
	}
	return rec, nil
}

// ByField returns the records whose column equals value, in the kind's
// default ordering. The result may be empty; that is not an error.
func ByField[T any](ctx context.Context, q Querier, m Mapper[T], field string, value interface{}) ([]T, error) {
	if !m.hasColumn(field) {
		return nil, persistErr("filter", m.Table, fmt.Errorf("unknown column %q", field))
	}
	query := fmt.Sprintf("SELECT %s FROM %s WHERE %s = $1 ORDER BY %s",
		m.selectList(), m.Table, field, m.OrderBy)
	return queryMany(ctx, q, m, query, value)
}

func queryMany[T any](ctx context.Context, q Querier, m Mapper[T], query string, args ...interface{}) ([]T, error) {
	rows, err := q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, persistErr("query", m.Table, err)
	}
	defer rows.Close()

	var out []T
	for rows.Next() {
		rec, err := m.Scan(rows)
		if err != nil {
			return nil, persistErr("scan", m.Table, err)
		}
		out = append(out, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, persistErr("query", m.Table, err)
	}
	return out, nil
}
