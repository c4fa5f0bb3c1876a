package wiki

import "fmt"

// FormatError describes a malformed graph file. Line is 1-based; it is 0
// when the problem is only detectable after the whole input was read.
type FormatError struct {
	Line   int
	Reason string
}

// Error implements the error interface.
func (e *FormatError) Error() string {
	if e.Line == 0 {
		return e.Reason
	}
	return fmt.Sprintf("line %d: %s", e.Line, e.Reason)
}

func formatErrorf(line int, format string, args ...any) *FormatError {
	return &FormatError{Line: line, Reason: fmt.Sprintf(format, args...)}
}
