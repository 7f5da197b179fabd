package sql

import (
	"fmt"
)

// ScanMaps scans all rows of the given ColumnScanner into a slice of
// column-name keyed maps and closes it. []byte values are converted to
// string, since dynamic attribute maps hold text, not driver buffers.
func ScanMaps(rows ColumnScanner) ([]map[string]any, error) {
	defer rows.Close()
	columns, err := rows.Columns()
	if err != nil {
		return nil, fmt.Errorf("dialect/sql: scan: %w", err)
	}
	var out []map[string]any
	for rows.Next() {
		values := make([]any, len(columns))
		ptrs := make([]any, len(columns))
		for i := range values {
			ptrs[i] = &values[i]
		}
		if err := rows.Scan(ptrs...); err != nil {
			return nil, fmt.Errorf("dialect/sql: scan: %w", err)
		}
		row := make(map[string]any, len(columns))
		for i, c := range columns {
			switch v := values[i].(type) {
			case []byte:
				row[c] = string(v)
			default:
				row[c] = v
			}
		}
		out = append(out, row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("dialect/sql: scan: %w", err)
	}
	return out, nil
}
