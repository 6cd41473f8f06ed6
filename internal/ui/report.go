package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Level colors a report value.
type Level int

const (
	Plain Level = iota
	Good
	Warning
	Bad
)

type row struct {
	key   string
	value string
	level Level
}

// Report is a titled list of aligned key/value rows.
type Report struct {
	title   string
	rows    []row
	palette *Palette
}

// NewReport starts a report styled with the default palette.
func NewReport(title string) *Report {
	return &Report{title: title, palette: styles}
}

// Add appends a row. Values are formatted with %v.
func (r *Report) Add(key string, value any, level Level) *Report {
	r.rows = append(r.rows, row{key: key, value: fmt.Sprint(value), level: level})
	return r
}

// Count appends a numeric row colored Good when positive and the given level otherwise.
func (r *Report) Count(key string, n int, zero Level) *Report {
	level := Good
	if n == 0 {
		level = zero
	}
	return r.Add(key, n, level)
}

// Render lays the rows out under the title.
func (r *Report) Render() string {
	width := 0
	for _, row := range r.rows {
		width = max(width, lipgloss.Width(row.key))
	}

	lines := make([]string, 0, len(r.rows))
	for _, row := range r.rows {
		key := row.key + ":" + strings.Repeat(" ", width-lipgloss.Width(row.key)+1)
		lines = append(lines, "  "+key+r.paint(row))
	}

	return r.palette.Title(r.title) + "\n" + strings.Join(lines, "\n") + "\n"
}

func (r *Report) paint(row row) string {
	switch row.level {
	case Good:
		return r.palette.OK(row.value)
	case Warning:
		return r.palette.Warn(row.value)
	case Bad:
		return r.palette.Err(row.value)
	default:
		return row.value
	}
}

// List renders a titled bullet list, or nothing when items is empty.
func List(title string, items []string) string {
	if len(items) == 0 {
		return ""
	}

	var b strings.Builder
	b.WriteString(styles.Warn(title) + "\n")
	for _, item := range items {
		b.WriteString("  - " + item + "\n")
	}
	return b.String()
}
