package trc

import "fmt"

// FormatError reports a TRC file whose structure does not match the fixed
// layout: missing metadata keys, or column counts inconsistent with
// NumMarkers. The whole import fails; no partial state is kept.
type FormatError struct {
	Path   string
	Line   int // 1-based line number, 0 when not line-specific
	Reason string
}

func (e *FormatError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("trc: %s:%d: %s", e.Path, e.Line, e.Reason)
	}
	return fmt.Sprintf("trc: %s: %s", e.Path, e.Reason)
}

func formatErrorf(path string, line int, format string, args ...any) *FormatError {
	return &FormatError{Path: path, Line: line, Reason: fmt.Sprintf(format, args...)}
}
