// Package sqlsource reads the listings table from a SQL database, read-only.
package sqlsource

import (
	"context"
	"fmt"
	"log"
	"regexp"
	"strconv"
	"time"

	"listingscope/ports"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	_ "github.com/mattn/go-sqlite3"
)

// Supported drivers
const (
	DriverSQLite   = "sqlite3"
	DriverPostgres = "postgres"
)

var identifierPattern = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*(\.[A-Za-z_][A-Za-z0-9_]*)?$`)

// Reader selects every row of one table and hands it back as strings.
type Reader struct {
	driver string
	dsn    string
	table  string
	name   string
}

var _ ports.TableSource = (*Reader)(nil)

// NewSQLiteReader opens path read-only.
func NewSQLiteReader(path, table string) (*Reader, error) {
	return newReader(DriverSQLite, "file:"+path+"?mode=ro", table, path)
}

// NewPostgresReader reads table through the given connection URL.
func NewPostgresReader(databaseURL, table string) (*Reader, error) {
	return newReader(DriverPostgres, databaseURL, table, "postgres")
}

func newReader(driver, dsn, table, name string) (*Reader, error) {
	if !identifierPattern.MatchString(table) {
		return nil, fmt.Errorf("invalid table name %q", table)
	}
	return &Reader{driver: driver, dsn: dsn, table: table, name: name + "#" + table}, nil
}

func (r *Reader) Name() string {
	return r.name
}

// Read opens a connection for the duration of one query and closes it again.
func (r *Reader) Read(ctx context.Context) (*ports.RawTable, error) {
	start := time.Now()
	db, err := sqlx.ConnectContext(ctx, r.driver, r.dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to %s: %w", r.driver, err)
	}
	defer db.Close()

	rows, err := db.QueryxContext(ctx, "SELECT * FROM "+r.table)
	if err != nil {
		return nil, fmt.Errorf("failed to query %s: %w", r.table, err)
	}
	defer rows.Close()

	headers, err := rows.Columns()
	if err != nil {
		return nil, fmt.Errorf("failed to read columns of %s: %w", r.table, err)
	}

	var data [][]string
	for rows.Next() {
		values, err := rows.SliceScan()
		if err != nil {
			return nil, fmt.Errorf("failed to scan row %d of %s: %w", len(data)+1, r.table, err)
		}
		cells := make([]string, len(values))
		for i, v := range values {
			cells[i] = cellString(v)
		}
		data = append(data, cells)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate %s: %w", r.table, err)
	}
	if len(data) == 0 {
		return nil, fmt.Errorf("table %s has no rows", r.table)
	}

	log.Printf("[SQLSource] %s read in %.2fms (%d columns, %d rows)",
		r.name, float64(time.Since(start).Nanoseconds())/1e6, len(headers), len(data))

	return &ports.RawTable{Headers: headers, Rows: data}, nil
}

// cellString renders a driver value the way it would appear in a CSV export.
func cellString(v interface{}) string {
	switch t := v.(type) {
	case nil:
		return ""
	case []byte:
		return string(t)
	case string:
		return t
	case int64:
		return strconv.FormatInt(t, 10)
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(t)
	case time.Time:
		return t.Format("2006-01-02")
	default:
		return fmt.Sprint(t)
	}
}
