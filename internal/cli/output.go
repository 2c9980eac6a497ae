package cli

import (
	"fmt"
	"io"
	"strings"
)

// List renders marked items, one per line.
type List struct {
	items []listItem
}

type listItem struct {
	marker  string
	content string
}

// NewList creates a new list.
func NewList() *List {
	return &List{}
}

// Add adds a plain item.
func (l *List) Add(content string) {
	l.items = append(l.items, listItem{"•", content})
}

// AddSuccess adds a success item.
func (l *List) AddSuccess(content string) {
	l.items = append(l.items, listItem{Success("✓"), content})
}

// AddError adds an error item.
func (l *List) AddError(content string) {
	l.items = append(l.items, listItem{Error("✗"), content})
}

// AddWarning adds a warning item.
func (l *List) AddWarning(content string) {
	l.items = append(l.items, listItem{Warning("!"), content})
}

// Len returns the number of items.
func (l *List) Len() int {
	return len(l.items)
}

// String renders the list as a string.
func (l *List) String() string {
	var b strings.Builder
	for _, item := range l.items {
		b.WriteString("  ")
		b.WriteString(item.marker)
		b.WriteString(" ")
		b.WriteString(item.content)
		b.WriteString("\n")
	}
	return b.String()
}

// WriteStatements writes each statement terminated by a semicolon, one per
// line, highlighted when colors are enabled.
func WriteStatements(w io.Writer, stmts []string) error {
	for _, s := range stmts {
		if _, err := fmt.Fprintln(w, HighlightSQL(s)+";"); err != nil {
			return err
		}
	}
	return nil
}

// FormatCount formats "1 statement" / "3 statements".
func FormatCount(count int, singular, plural string) string {
	if count == 1 {
		return fmt.Sprintf("%d %s", count, singular)
	}
	return fmt.Sprintf("%d %s", count, plural)
}
