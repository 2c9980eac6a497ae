// Package strutil provides string helpers for identifier naming used by the
// DSL, the dialects and the CLI.
package strutil

import (
	"strings"
	"unicode"
)

// ToSnakeCase converts a camelCase or PascalCase key to snake_case.
// Examples: primaryKey -> primary_key, allowNull -> allow_null, HTTPServer -> http_server
func ToSnakeCase(s string) string {
	if s == "" {
		return ""
	}

	var result strings.Builder
	result.Grow(len(s) + 4)

	for i, r := range s {
		switch {
		case unicode.IsUpper(r):
			if i > 0 {
				prev := rune(s[i-1])
				if unicode.IsLower(prev) || unicode.IsDigit(prev) {
					result.WriteByte('_')
				} else if i+1 < len(s) && unicode.IsLower(rune(s[i+1])) {
					result.WriteByte('_')
				}
			}
			result.WriteRune(unicode.ToLower(r))
		case r == '-' || r == ' ':
			result.WriteByte('_')
		default:
			result.WriteRune(r)
		}
	}

	return result.String()
}

// IndexName returns the default index name for a table and its columns.
// Example: IndexName("nums", "a2") -> "nums_a2_index"
// Example: IndexName("public.nums", "a", "b") -> "nums_a_b_index"
func IndexName(table string, cols ...string) string {
	parts := make([]string, 0, len(cols)+2)
	parts = append(parts, ExtractTableName(table))
	parts = append(parts, cols...)
	parts = append(parts, "index")
	return strings.Join(parts, "_")
}

// ParseRef splits a schema-qualified table reference into schema and table.
// "public.nums" -> ("public", "nums"), "nums" -> ("", "nums").
func ParseRef(ref string) (schema, table string) {
	if i := strings.LastIndexByte(ref, '.'); i >= 0 {
		return ref[:i], ref[i+1:]
	}
	return "", ref
}

// ExtractTableName returns the table portion of a reference.
func ExtractTableName(ref string) string {
	_, table := ParseRef(ref)
	return table
}

// Indent indents each non-empty line of text with the given number of spaces.
func Indent(text string, spaces int) string {
	prefix := strings.Repeat(" ", spaces)
	lines := strings.Split(text, "\n")
	for i, line := range lines {
		if line != "" {
			lines[i] = prefix + line
		}
	}
	return strings.Join(lines, "\n")
}
