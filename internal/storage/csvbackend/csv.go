// Package csvbackend writes a run's result set to a flat CSV file.
package csvbackend

import (
	"context"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"strconv"

	"github.com/karston/phdscout/internal/storage"
)

// ensure csvWriter implements storage.Writer
var _ storage.Writer = (*csvWriter)(nil)

type csvWriter struct {
	path string
}

// New creates a storage.Writer that writes records to a CSV file at path,
// overwriting any existing file on Write.
func New(path string) storage.Writer {
	return &csvWriter{path: path}
}

// Write persists all records in one shot. The column set is the canonical
// field order, then any extra keys from the first record in sorted order,
// then the source url column.
func (w *csvWriter) Write(ctx context.Context, records []*storage.ProjectRecord) error {
	if len(records) == 0 {
		return nil
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	f, err := os.Create(w.path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", w.path, err)
	}
	defer f.Close()

	columns := columnsFor(records[0])

	cw := csv.NewWriter(f)
	if err := cw.Write(columns); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}

	for _, rec := range records {
		row := make([]string, 0, len(columns))
		for _, col := range columns {
			if col == "url" {
				row = append(row, rec.URL)
				continue
			}
			row = append(row, formatValue(rec.Fields[col]))
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("writing record for %s: %w", rec.URL, err)
		}
	}

	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("flushing %s: %w", w.path, err)
	}
	return nil
}

// columnsFor derives the header from the first record: known columns that
// appear, then unknown keys sorted, then url.
func columnsFor(first *storage.ProjectRecord) []string {
	known := make(map[string]bool, len(storage.KnownColumns))
	var columns []string
	for _, col := range storage.KnownColumns {
		known[col] = true
		if _, ok := first.Fields[col]; ok {
			columns = append(columns, col)
		}
	}

	var extras []string
	for key := range first.Fields {
		if !known[key] && key != "url" {
			extras = append(extras, key)
		}
	}
	sort.Strings(extras)

	columns = append(columns, extras...)
	return append(columns, "url")
}

// formatValue renders a decoded JSON value as a CSV cell. Nulls become
// empty cells; numbers drop the float artifacts json decoding introduces.
func formatValue(v any) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return val
	case bool:
		return strconv.FormatBool(val)
	case float64:
		if val == float64(int64(val)) {
			return strconv.FormatInt(int64(val), 10)
		}
		return strconv.FormatFloat(val, 'f', -1, 64)
	case json.Number:
		return val.String()
	default:
		data, err := json.Marshal(val)
		if err != nil {
			return fmt.Sprint(val)
		}
		return string(data)
	}
}
