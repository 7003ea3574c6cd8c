package frame

import (
	"database/sql"
	"fmt"
	"math"

	_ "modernc.org/sqlite"
)

// ReadSQL runs a query against an open database and loads the result
// set into a Frame. Column types follow the driver's scan types: all
// integers become an IntSeries, any float promotes the column to a
// FloatSeries, text and blobs load as strings. NULL cells become the
// type's missing marker (zero, NaN or the empty string).
func ReadSQL(db *sql.DB, query string, args ...any) (*Frame, error) {
	rows, err := db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("query failed: %w", err)
	}
	defer rows.Close()

	names, err := rows.Columns()
	if err != nil {
		return nil, fmt.Errorf("failed to read columns: %w", err)
	}

	var data [][]any
	for rows.Next() {
		cells := make([]any, len(names))
		ptrs := make([]any, len(names))
		for i := range cells {
			ptrs[i] = &cells[i]
		}
		if err := rows.Scan(ptrs...); err != nil {
			return nil, fmt.Errorf("failed to scan row: %w", err)
		}
		data = append(data, cells)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration failed: %w", err)
	}
	if len(data) == 0 {
		return nil, fmt.Errorf("query returned no rows")
	}

	cols := make([]Series, len(names))
	for c, name := range names {
		cells := make([]any, len(data))
		for r := range data {
			cells[r] = data[r][c]
		}
		col, err := seriesFromScanned(name, cells)
		if err != nil {
			return nil, err
		}
		cols[c] = col
	}

	return New(cols...)
}

// ReadSQLite opens a SQLite database file, runs the query and closes it.
func ReadSQLite(path, query string, args ...any) (*Frame, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer db.Close()

	return ReadSQL(db, query, args...)
}

func seriesFromScanned(name string, cells []any) (Series, error) {
	// Classify by the widest type seen across the column.
	hasFloat, hasInt, hasText, hasBool := false, false, false, false
	for _, v := range cells {
		switch v.(type) {
		case nil:
		case int64:
			hasInt = true
		case float64:
			hasFloat = true
		case bool:
			hasBool = true
		case string, []byte:
			hasText = true
		default:
			return nil, fmt.Errorf("column %q: unsupported scan type %T", name, v)
		}
	}

	switch {
	case hasText:
		out := make([]string, len(cells))
		for i, v := range cells {
			switch x := v.(type) {
			case string:
				out[i] = x
			case []byte:
				out[i] = string(x)
			case nil:
				out[i] = ""
			default:
				out[i] = fmt.Sprint(x)
			}
		}
		return NewString(name, out), nil
	case hasFloat:
		out := make([]float64, len(cells))
		for i, v := range cells {
			switch x := v.(type) {
			case float64:
				out[i] = x
			case int64:
				out[i] = float64(x)
			case nil:
				out[i] = math.NaN()
			}
		}
		return NewFloat(name, out), nil
	case hasInt:
		out := make([]int64, len(cells))
		for i, v := range cells {
			if x, ok := v.(int64); ok {
				out[i] = x
			}
		}
		return NewInt(name, out), nil
	case hasBool:
		out := make([]bool, len(cells))
		for i, v := range cells {
			if x, ok := v.(bool); ok {
				out[i] = x
			}
		}
		return NewBool(name, out), nil
	default:
		return nil, fmt.Errorf("column %q: all values NULL, cannot infer type", name)
	}
}
