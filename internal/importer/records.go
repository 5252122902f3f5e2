package importer

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// record is one CSV row keyed by header name.
type record struct {
	line   int
	values map[string]string
}

func (r record) get(column string) string {
	return strings.TrimSpace(r.values[column])
}

// optionalInt parses column, returning nil for an empty cell.
func (r record) optionalInt(column string) (*int, error) {
	raw := r.get(column)
	if raw == "" {
		return nil, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return nil, fmt.Errorf("column %s: %q is not a number", column, raw)
	}
	return &n, nil
}

func (r record) requiredInt(column string) (int, error) {
	n, err := r.optionalInt(column)
	if err != nil {
		return 0, err
	}
	if n == nil {
		return 0, fmt.Errorf("column %s is empty", column)
	}
	return *n, nil
}

// readRecords parses a semicolon-separated file whose first line names the
// columns. Every name in columns must be present in the header.
func readRecords(r io.Reader, columns []string) ([]record, error) {
	reader := csv.NewReader(r)
	reader.Comma = ';'
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	header, err := reader.Read()
	if err == io.EOF {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read header: %w", err)
	}

	index := make(map[string]int, len(header))
	for i, name := range header {
		index[strings.TrimSpace(strings.TrimPrefix(name, "\ufeff"))] = i
	}
	for _, c := range columns {
		if _, ok := index[c]; !ok {
			return nil, fmt.Errorf("missing column %q", c)
		}
	}

	var records []record
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		line, _ := reader.FieldPos(0)
		if len(row) == 1 && strings.TrimSpace(row[0]) == "" {
			continue
		}

		values := make(map[string]string, len(columns))
		for _, c := range columns {
			if i := index[c]; i < len(row) {
				values[c] = row[i]
			}
		}
		records = append(records, record{line: line, values: values})
	}
	return records, nil
}
