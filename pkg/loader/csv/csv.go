package csv

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"
)

// ErrEmpty is returned by ParseTable when the content has no header row.
var ErrEmpty = errors.New("CSV file is empty or contains no valid data")

// Table is a decoded CSV file with a header index. Rows keep the file order.
type Table struct {
	Header []string
	Rows   [][]string

	index map[string]int
}

// ParseTable parses CSV content into a Table. The first non-empty record is
// the header. Quoting is handled leniently, records may have differing field
// counts and blank lines are skipped.
func ParseTable(content []byte) (*Table, error) {
	reader := csv.NewReader(bytes.NewReader(content))
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	t := &Table{index: make(map[string]int)}

	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to parse CSV: %w", err)
		}

		if isEmpty(record) {
			continue
		}

		if t.Header == nil {
			t.Header = make([]string, len(record))
			for i, field := range record {
				name := strings.TrimSpace(strings.TrimPrefix(field, "\uFEFF"))
				t.Header[i] = name
				if _, ok := t.index[name]; !ok {
					t.index[name] = i
				}
			}
			continue
		}

		t.Rows = append(t.Rows, record)
	}

	if t.Header == nil {
		return nil, ErrEmpty
	}

	return t, nil
}

// Has reports whether the table has a column with the given name.
func (t *Table) Has(column string) bool {
	_, ok := t.index[column]
	return ok
}

// Missing returns the columns from the given list that the table lacks.
func (t *Table) Missing(columns ...string) []string {
	var missing []string
	for _, c := range columns {
		if !t.Has(c) {
			missing = append(missing, c)
		}
	}
	return missing
}

// Get returns the value of column in row, or an empty string when the column
// is unknown or the row is short.
func (t *Table) Get(row []string, column string) string {
	i, ok := t.index[column]
	if !ok || i >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[i])
}

func isEmpty(record []string) bool {
	for _, field := range record {
		if strings.TrimSpace(field) != "" {
			return false
		}
	}
	return true
}
