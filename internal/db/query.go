package db

import (
	"context"
	"database/sql"
	"fmt"
	"strconv"
)

// Row is one result row as an ordered column/value mapping. Column names may
// repeat when a query selects from joined tables.
type Row struct {
	Columns []string
	Values  []interface{}
}

// Get returns the value of the first column called name.
func (r *Row) Get(name string) (interface{}, bool) {
	for i, c := range r.Columns {
		if c == name {
			return r.Values[i], true
		}
	}
	return nil, false
}

// Int64 returns the named column as an integer, or 0.
func (r *Row) Int64(name string) int64 {
	v, _ := r.Get(name)
	switch n := v.(type) {
	case int64:
		return n
	case int32:
		return int64(n)
	case int:
		return int64(n)
	case float64:
		return int64(n)
	case []byte:
		out, _ := strconv.ParseInt(string(n), 10, 64)
		return out
	case string:
		out, _ := strconv.ParseInt(n, 10, 64)
		return out
	}
	return 0
}

// String returns the named column as text, or "".
func (r *Row) String(name string) string {
	v, _ := r.Get(name)
	switch s := v.(type) {
	case string:
		return s
	case []byte:
		return string(s)
	case nil:
		return ""
	}
	return fmt.Sprint(v)
}

// Query runs a parameterized statement and returns every row.
func (s *Store) Query(ctx context.Context, query string, args ...interface{}) ([]*Row, error) {
	rows, err := s.gdb.WithContext(ctx).Raw(query, args...).Rows()
	if err != nil {
		return nil, fmt.Errorf("query: %w", err)
	}
	defer rows.Close()

	out, err := scanRows(rows)
	if err != nil {
		return nil, fmt.Errorf("query: %w", err)
	}
	return out, nil
}

// QueryOne runs a parameterized statement and returns its first row, or nil
// when the statement matched nothing.
func (s *Store) QueryOne(ctx context.Context, query string, args ...interface{}) (*Row, error) {
	rows, err := s.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, nil
	}
	return rows[0], nil
}

func scanRows(rows *sql.Rows) ([]*Row, error) {
	cols, err := rows.Columns()
	if err != nil {
		return nil, err
	}

	out := make([]*Row, 0)
	for rows.Next() {
		values := make([]interface{}, len(cols))
		ptrs := make([]interface{}, len(cols))
		for i := range values {
			ptrs[i] = &values[i]
		}
		if err := rows.Scan(ptrs...); err != nil {
			return nil, err
		}
		out = append(out, &Row{Columns: cols, Values: values})
	}
	return out, rows.Err()
}
