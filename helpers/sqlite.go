package helpers

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	_ "modernc.org/sqlite"

	"github.com/spektr-org/xpsref/engine"
	"github.com/spektr-org/xpsref/schema"
)

// ============================================================================
// SQLITE HELPER: Reads a reference table stored in SQLite
// ============================================================================
// SQL NULL is a missing value, exactly like a CSV null token. Column names
// are resolved through the same schema as CSV headers.
// ============================================================================

// OpenSQLite opens a SQLite database read-only.
func OpenSQLite(path string) (*sql.DB, error) {
	db, err := sql.Open("sqlite", "file:"+path+"?mode=ro")
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	return db, nil
}

// LoadSQLite reads every row of table into Records in rowid order.
func LoadSQLite(ctx context.Context, db *sql.DB, table string, sch schema.Config) ([]engine.Record, error) {
	query := "SELECT * FROM " + quoteIdent(table) + " ORDER BY rowid"
	rows, err := db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("query %s: %w", table, err)
	}
	defer rows.Close()

	headers, err := rows.Columns()
	if err != nil {
		return nil, fmt.Errorf("read columns of %s: %w", table, err)
	}
	mapping, err := schema.Resolve(headers, sch)
	if err != nil {
		return nil, err
	}

	dest := make([]sql.NullString, len(headers))
	ptrs := make([]any, len(headers))
	for i := range dest {
		ptrs[i] = &dest[i]
	}

	var records []engine.Record
	for row := 1; rows.Next(); row++ {
		if err := rows.Scan(ptrs...); err != nil {
			return nil, fmt.Errorf("scan %s row %d: %w", table, row, err)
		}
		cells := make([]rawCell, len(dest))
		for i, d := range dest {
			cells[i] = rawCell{value: d.String, valid: d.Valid && !sch.IsNull(d.String)}
		}
		rec, err := buildRecord(cells, mapping, row)
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate %s: %w", table, err)
	}
	return records, nil
}

// quoteIdent quotes a SQL identifier.
func quoteIdent(name string) string {
	return `"` + strings.ReplaceAll(name, `"`, `""`) + `"`
}
