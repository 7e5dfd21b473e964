package db

import (
	"database/sql"
	"fmt"
	"io"
	"strconv"
	"strings"
	"text/tabwriter"
	"time"

	"gorm.io/gorm"
)

// Executor issues SQL statements against the operations database. Statements
// use ? placeholders; gorm rewrites them for the active dialect.
type Executor struct {
	db *gorm.DB
}

// NewExecutor wraps a gorm connection.
func NewExecutor(db *gorm.DB) *Executor {
	return &Executor{db: db}
}

// Result is a query result rendered as text.
type Result struct {
	Columns []string
	Rows    [][]string
}

// DB exposes the underlying gorm handle.
func (e *Executor) DB() *gorm.DB {
	return e.db
}

// Dialect returns the name of the active gorm dialector (postgres, mysql, sqlite).
func (e *Executor) Dialect() string {
	return e.db.Dialector.Name()
}

// Exec executes a statement for effect and returns the number of affected rows.
func (e *Executor) Exec(query string, args ...any) (int64, error) {
	res := e.db.Exec(query, args...)
	if res.Error != nil {
		return 0, fmt.Errorf("db: exec: %w", res.Error)
	}
	return res.RowsAffected, nil
}

// Count executes a query and returns the number of rows it produced.
func (e *Executor) Count(query string, args ...any) (int, error) {
	rows, err := e.db.Raw(query, args...).Rows()
	if err != nil {
		return 0, fmt.Errorf("db: query: %w", err)
	}
	defer rows.Close()

	n := 0
	for rows.Next() {
		n++
	}
	if err := rows.Err(); err != nil {
		return 0, fmt.Errorf("db: read rows: %w", err)
	}
	return n, nil
}

// Exists reports whether query returns at least one row.
func (e *Executor) Exists(query string, args ...any) (bool, error) {
	n, err := e.Count(query, args...)
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// Row runs a query expected to return at most one row. The caller scans it;
// sql.ErrNoRows signals an empty result.
func (e *Executor) Row(query string, args ...any) *sql.Row {
	return e.db.Raw(query, args...).Row()
}

// Query executes a query and returns every row with each column rendered as
// text. NULL renders as an empty string.
func (e *Executor) Query(query string, args ...any) (*Result, error) {
	rows, err := e.db.Raw(query, args...).Rows()
	if err != nil {
		return nil, fmt.Errorf("db: query: %w", err)
	}
	defer rows.Close()

	cols, err := rows.Columns()
	if err != nil {
		return nil, fmt.Errorf("db: columns: %w", err)
	}

	result := &Result{Columns: cols}
	values := make([]any, len(cols))
	ptrs := make([]any, len(cols))
	for i := range values {
		ptrs[i] = &values[i]
	}
	for rows.Next() {
		if err := rows.Scan(ptrs...); err != nil {
			return nil, fmt.Errorf("db: scan: %w", err)
		}
		record := make([]string, len(cols))
		for i, v := range values {
			record[i] = formatValue(v)
		}
		result.Rows = append(result.Rows, record)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db: read rows: %w", err)
	}
	return result, nil
}

// Transaction runs fn inside a database transaction. Returning an error from
// fn rolls back every statement it issued.
func (e *Executor) Transaction(fn func(tx *Executor) error) error {
	return e.db.Transaction(func(tx *gorm.DB) error {
		return fn(&Executor{db: tx})
	})
}

// Close releases the underlying connection pool.
func (e *Executor) Close() error {
	sqlDB, err := e.db.DB()
	if err != nil {
		return fmt.Errorf("db: close: %w", err)
	}
	return sqlDB.Close()
}

func formatValue(v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case []byte:
		return string(x)
	case string:
		return x
	case int64:
		return strconv.FormatInt(x, 10)
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(x)
	case time.Time:
		if x.Hour() == 0 && x.Minute() == 0 && x.Second() == 0 && x.Nanosecond() == 0 {
			return x.Format("2006-01-02")
		}
		return x.Format("2006-01-02 15:04:05")
	default:
		return fmt.Sprint(x)
	}
}

// Print writes the result as an aligned table followed by a row count.
func (r *Result) Print(w io.Writer) {
	if len(r.Rows) == 0 {
		fmt.Fprintln(w, "No rows.")
		return
	}
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	headers := make([]string, len(r.Columns))
	for i, c := range r.Columns {
		headers[i] = strings.ToUpper(c)
	}
	fmt.Fprintln(tw, strings.Join(headers, "\t"))
	for _, row := range r.Rows {
		fmt.Fprintln(tw, strings.Join(row, "\t"))
	}
	tw.Flush()
	fmt.Fprintf(w, "(%d rows)\n", len(r.Rows))
}
