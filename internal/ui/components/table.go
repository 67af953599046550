package components

import (
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/lipgloss"
)

// rowTable is the table shared by the list components. It keeps the source
// records next to the rendered rows so the cursor maps back to a record, and
// tracks which refresh key its content belongs to.
type rowTable[T any] struct {
	table   table.Model
	records []T
	toRow   func(T) table.Row

	requested  bool
	requestKey int
	loading    bool
}

func newRowTable[T any](columns []table.Column, toRow func(T) table.Row) rowTable[T] {
	width := 0
	for _, c := range columns {
		width += c.Width + 2
	}
	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(12),
		table.WithWidth(width),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("230")).
		Background(lipgloss.Color("62")).
		Bold(false)
	t.SetStyles(s)

	return rowTable[T]{table: t, toRow: toRow}
}

// needsLoad records key as requested and reports whether it differs from
// the key of the current content
func (rt *rowTable[T]) needsLoad(key int) bool {
	if rt.requested && rt.requestKey == key {
		return false
	}
	rt.requested = true
	rt.requestKey = key
	rt.loading = true
	return true
}

// apply installs records loaded for key; results for superseded keys are dropped
func (rt *rowTable[T]) apply(key int, records []T) bool {
	if key != rt.requestKey {
		return false
	}
	rt.loading = false
	rt.records = records

	rows := make([]table.Row, len(records))
	for i, r := range records {
		rows[i] = rt.toRow(r)
	}
	rt.table.SetRows(rows)
	if c := rt.table.Cursor(); c >= len(rows) {
		rt.table.SetCursor(max(len(rows)-1, 0))
	}
	return true
}

func (rt *rowTable[T]) selected() (T, bool) {
	c := rt.table.Cursor()
	if c < 0 || c >= len(rt.records) {
		var zero T
		return zero, false
	}
	return rt.records[c], true
}

func (rt *rowTable[T]) setSize(width, height int) {
	if width > 0 {
		rt.table.SetWidth(width)
	}
	if height > 0 {
		rt.table.SetHeight(height)
	}
}
