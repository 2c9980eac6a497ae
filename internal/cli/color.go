package cli

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// ANSI 256 colors for broad terminal compatibility.
var (
	styleError   = lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true)
	styleWarning = lipgloss.NewStyle().Foreground(lipgloss.Color("11")).Bold(true)
	styleNote    = lipgloss.NewStyle().Foreground(lipgloss.Color("14")).Bold(true)
	styleHelp    = lipgloss.NewStyle().Foreground(lipgloss.Color("10")).Bold(true)
	styleSuccess = lipgloss.NewStyle().Foreground(lipgloss.Color("10")).Bold(true)
	styleInfo    = lipgloss.NewStyle().Foreground(lipgloss.Color("14"))
	styleCode    = lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true)
	stylePipe    = lipgloss.NewStyle().Foreground(lipgloss.Color("12"))
	styleLineNum = lipgloss.NewStyle().Foreground(lipgloss.Color("12"))
	stylePath    = lipgloss.NewStyle().Bold(true)
	styleDim     = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	styleKeyword = lipgloss.NewStyle().Foreground(lipgloss.Color("13")).Bold(true)
)

func render(style lipgloss.Style, s string) string {
	if !EnableColors() {
		return s
	}
	return style.Render(s)
}

// Error returns text styled as an error label.
func Error(s string) string { return render(styleError, s) }

// Warning returns text styled as a warning label.
func Warning(s string) string { return render(styleWarning, s) }

// Note returns text styled as a note label.
func Note(s string) string { return render(styleNote, s) }

// Help returns text styled as a help label.
func Help(s string) string { return render(styleHelp, s) }

// Success returns text styled as a success message.
func Success(s string) string { return render(styleSuccess, s) }

// Info returns text styled as informational text.
func Info(s string) string { return render(styleInfo, s) }

// Code returns text styled as an error code.
func Code(s string) string { return render(styleCode, s) }

// LineNum returns text styled as a line number.
func LineNum(s string) string { return render(styleLineNum, s) }

// FilePath returns text styled as a file path.
func FilePath(s string) string { return render(stylePath, s) }

// Dim returns de-emphasized text.
func Dim(s string) string { return render(styleDim, s) }

// Pipe returns the gutter character of a diagnostic.
func Pipe() string { return render(stylePipe, "|") }

// sqlKeywords are highlighted by HighlightSQL.
var sqlKeywords = map[string]bool{
	"CREATE": true, "ALTER": true, "DROP": true, "TABLE": true, "INDEX": true,
	"ADD": true, "COLUMN": true, "RENAME": true, "TO": true, "ON": true,
	"AS": true, "GENERATED": true, "ALWAYS": true, "STORED": true,
	"UNIQUE": true, "NOT": true, "NULL": true, "PRIMARY": true, "KEY": true,
	"DEFAULT": true, "IF": true, "EXISTS": true, "WHERE": true,
}

// HighlightSQL colors the DDL keywords of stmt. Identifiers and expressions
// are left as they are. Without colors stmt is returned unchanged.
func HighlightSQL(stmt string) string {
	if !EnableColors() {
		return stmt
	}

	var b strings.Builder
	word := strings.Builder{}
	flush := func() {
		if word.Len() == 0 {
			return
		}
		w := word.String()
		if sqlKeywords[w] {
			b.WriteString(styleKeyword.Render(w))
		} else {
			b.WriteString(w)
		}
		word.Reset()
	}

	inQuote := rune(0)
	for _, r := range stmt {
		switch {
		case inQuote != 0:
			b.WriteRune(r)
			if r == inQuote {
				inQuote = 0
			}
		case r == '"' || r == '`' || r == '\'':
			flush()
			inQuote = r
			b.WriteRune(r)
		case r == '_' || r >= 'A' && r <= 'Z' || r >= 'a' && r <= 'z' || r >= '0' && r <= '9':
			word.WriteRune(r)
		default:
			flush()
			b.WriteRune(r)
		}
	}
	flush()
	return b.String()
}
