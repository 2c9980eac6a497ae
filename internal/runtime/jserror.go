package runtime

import (
	"bufio"
	"errors"
	"strconv"
	"strings"

	"github.com/dop251/goja"
)

// JSErrorInfo is the position and message extracted from a Goja error.
type JSErrorInfo struct {
	Message string
	Line    int
	Column  int
}

// ParseJSError extracts the message and source position from a Goja error.
func ParseJSError(err error) *JSErrorInfo {
	info := &JSErrorInfo{}
	if err == nil {
		return info
	}
	info.Message = err.Error()

	var syntaxErr *goja.CompilerSyntaxError
	if errors.As(err, &syntaxErr) {
		if syntaxErr.File != nil {
			pos := syntaxErr.File.Position(syntaxErr.Offset)
			info.Line = pos.Line
			info.Column = pos.Column
		}
		return info
	}

	var exception *goja.Exception
	if errors.As(err, &exception) {
		info.Message = exception.Value().String()
		// Native Go frames report line 0; the first JS frame is the call site.
		for _, frame := range exception.Stack() {
			pos := frame.Position()
			if pos.Line > 0 {
				info.Line = pos.Line
				info.Column = pos.Column
				return info
			}
		}
		parseGojaErrorMessage(info)
	}
	return info
}

// parseGojaErrorMessage reads "Line X:Y" from a syntax error message.
// It is the fallback for exceptions that carry no stack frames.
func parseGojaErrorMessage(info *JSErrorInfo) {
	msg := info.Message
	idx := strings.Index(msg, "Line ")
	if idx == -1 {
		return
	}
	rest := msg[idx+len("Line "):]

	colon := strings.Index(rest, ":")
	if colon == -1 {
		return
	}
	if line, err := strconv.Atoi(rest[:colon]); err == nil {
		info.Line = line
	}

	rest = rest[colon+1:]
	if end := strings.IndexAny(rest, " \n"); end != -1 {
		rest = rest[:end]
	}
	if col, err := strconv.Atoi(rest); err == nil {
		info.Column = col
	}
}

// GetSourceLine returns line lineNum (1-indexed) of code.
func GetSourceLine(code string, lineNum int) string {
	if lineNum <= 0 || code == "" {
		return ""
	}

	scanner := bufio.NewScanner(strings.NewReader(code))
	current := 0
	for scanner.Scan() {
		current++
		if current == lineNum {
			return scanner.Text()
		}
	}
	return ""
}
