package cli

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/hlop3z/gencol/internal/alerr"
)

// Context keys rendered in a fixed place rather than as details.
var layoutKeys = map[string]bool{
	"file": true, "line": true, "column": true, "source": true, "help": true,
}

// FormatError formats an error for CLI display in rustc style:
//
//	error[E1003]: generated column requires an expression
//	  --> schema.js:2
//	   |
//	 2 | t.generated_column("a2", "integer");
//	   |
//	   = table: nums
//	help: ...
//
// Errors other than *alerr.Error are printed on one line.
func FormatError(err error) string {
	if err == nil {
		return ""
	}

	var ae *alerr.Error
	if !errors.As(err, &ae) {
		return Error("error") + ": " + err.Error() + "\n"
	}

	var b strings.Builder
	ctx := ae.GetContext()

	b.WriteString(Error("error"))
	b.WriteString("[")
	b.WriteString(Code(string(ae.GetCode())))
	b.WriteString("]: ")
	b.WriteString(ae.GetMessage())
	b.WriteString("\n")

	file, _ := ctx["file"].(string)
	line, _ := ctx["line"].(int)
	if file != "" {
		loc := file
		if line > 0 {
			loc = fmt.Sprintf("%s:%d", file, line)
		}
		b.WriteString("  ")
		b.WriteString(render(stylePipe, "-->"))
		b.WriteString(" ")
		b.WriteString(FilePath(loc))
		b.WriteString("\n")
	}

	gutter := "  "
	if line > 0 {
		gutter = strings.Repeat(" ", len(fmt.Sprint(line)))
	}

	if source, ok := ctx["source"].(string); ok && line > 0 {
		b.WriteString(gutter + " " + Pipe() + "\n")
		b.WriteString(LineNum(fmt.Sprint(line)) + " " + Pipe() + " " + source + "\n")
	}

	keys := make([]string, 0, len(ctx))
	for k := range ctx {
		if !layoutKeys[k] {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)
	if len(keys) > 0 {
		b.WriteString(gutter + " " + Pipe() + "\n")
		for _, k := range keys {
			fmt.Fprintf(&b, "%s = %s: %v\n", gutter, k, ctx[k])
		}
	}

	if cause := ae.GetCause(); cause != nil {
		b.WriteString(Note("cause"))
		b.WriteString(": ")
		b.WriteString(cleanCauseMessage(cause.Error()))
		b.WriteString("\n")
	}

	for _, help := range ae.Helps() {
		b.WriteString(Help("help"))
		b.WriteString(": ")
		b.WriteString(help)
		b.WriteString("\n")
	}

	return b.String()
}

// cleanCauseMessage removes Goja native stack suffixes from a cause.
func cleanCauseMessage(msg string) string {
	if idx := strings.Index(msg, " at github.com"); idx != -1 {
		msg = strings.TrimSpace(msg[:idx])
	}
	return msg
}

// FormatWarning formats a warning line.
func FormatWarning(msg string) string {
	return Warning("warning") + ": " + msg + "\n"
}

// FormatNote formats a note line.
func FormatNote(msg string) string {
	return Note("note") + ": " + msg + "\n"
}
