// Package ui styles CLI output with lipgloss.
//
// [Palette] holds the named styles. [Report] renders an aligned key/value summary, used for enrichment
// results, cache stats and movie bucket counts. Styles degrade to plain text when stdout is not a terminal.
package ui
