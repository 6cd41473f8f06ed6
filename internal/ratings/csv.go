package ratings

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/hlieber45/harrisonlieber-site/internal/shared"
)

// ParseLine splits one CSV line on commas that sit outside double quotes. Quote characters are dropped.
func ParseLine(line string) []string {
	var fields []string
	var current strings.Builder
	inQuotes := false

	for _, r := range line {
		switch {
		case r == '"':
			inQuotes = !inQuotes
		case r == ',' && !inQuotes:
			fields = append(fields, current.String())
			current.Reset()
		default:
			current.WriteRune(r)
		}
	}

	return append(fields, current.String())
}

// table is a parsed CSV file: a header index plus the non-blank data rows.
type table struct {
	index map[string]int
	rows  [][]string
}

// col returns the trimmed value of column name in row, or "" when the column or cell is absent.
func (t *table) col(row []string, name string) string {
	i, ok := t.index[name]
	if !ok || i >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[i])
}

// readTable reads a header row and every non-blank line after it. Every name in required must appear in the header.
func readTable(r io.Reader, required ...string) (*table, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	if !scanner.Scan() {
		if err := scanner.Err(); err != nil {
			return nil, fmt.Errorf("failed to read header: %w", err)
		}
		return nil, fmt.Errorf("%w: missing header row", shared.ErrMalformedCSV)
	}

	header := ParseLine(strings.TrimPrefix(scanner.Text(), "\ufeff"))
	t := &table{index: make(map[string]int, len(header))}
	for i, h := range header {
		t.index[strings.TrimSpace(h)] = i
	}

	for _, name := range required {
		if _, ok := t.index[name]; !ok {
			return nil, fmt.Errorf("%w: missing %q column", shared.ErrMalformedCSV, name)
		}
	}

	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		t.rows = append(t.rows, ParseLine(line))
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read rows: %w", err)
	}

	return t, nil
}
