// Package diag implements the shared diagnostic facility used by every
// compilation stage (scanner, types, parser, codegen). Diagnostics print as
//
//	<filename>:<line>: <source-line-text>
//	<caret-indent>^ <message>
//
// to standard error. The compiler's propagation policy is first-error-wins:
// every diagnostic is fatal, so the stages that detect an error return it
// immediately rather than collecting more than one.
package diag

import (
	"fmt"
	"strings"
)

// Error is a single positioned diagnostic.
type Error struct {
	Filename string
	Source   string // the full source buffer, used to extract the offending line
	Line     int    // 1-based
	Off      int    // byte offset of the offending location within Source
	Msg      string
}

func (e *Error) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s:%d: %s\n", e.Filename, e.Line, e.lineText())
	fmt.Fprintf(&b, "%s^ %s\n", strings.Repeat(" ", e.caretIndent()), e.Msg)
	return b.String()
}

// lineText returns the source text of the line containing Off, without its
// trailing newline.
func (e *Error) lineText() string {
	start := strings.LastIndexByte(e.Source[:min(e.Off, len(e.Source))], '\n') + 1
	end := len(e.Source)
	if i := strings.IndexByte(e.Source[e.Off:], '\n'); i >= 0 {
		end = e.Off + i
	}
	if start > end {
		start = end
	}
	return e.Source[start:end]
}

// caretIndent is the number of columns to indent the caret line so that the
// '^' lines up under the offending byte, prefixed to account for the
// "<filename>:<line>: " prefix already printed on the line above.
func (e *Error) caretIndent() int {
	lineStart := strings.LastIndexByte(e.Source[:min(e.Off, len(e.Source))], '\n') + 1
	prefix := fmt.Sprintf("%s:%d: ", e.Filename, e.Line)
	return len(prefix) + (e.Off - lineStart)
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}

// Newf builds a new Error anchored at off/line within source, with a
// printf-style message.
func Newf(filename, source string, off, line int, format string, args ...any) *Error {
	return &Error{
		Filename: filename,
		Source:   source,
		Off:      off,
		Line:     line,
		Msg:      fmt.Sprintf(format, args...),
	}
}

// List accumulates diagnostics, mirroring the standard library's
// go/scanner.ErrorList shape. None of the compiler's stages adds to a List:
// each raises its first error through Throw (see the package doc). The
// accumulator shape is kept for symmetry with the rest of the pipeline and
// to make it trivial to print "first N errors" during development.
type List struct {
	errs []*Error
}

func (l *List) Add(e *Error) { l.errs = append(l.errs, e) }

func (l *List) Len() int { return len(l.errs) }

// Err returns the first recorded error, or nil.
func (l *List) Err() error {
	if len(l.errs) == 0 {
		return nil
	}
	return l.errs[0]
}

// Fatal is the panic payload thrown by scanner/parser/codegen code to unwind
// to the top-level driver at the first error. It carries the *Error so the
// driver can print it and exit 1.
type Fatal struct{ Err *Error }

// Throw panics with a Fatal wrapping a newly built Error. It is the idiom
// used throughout lang/scanner, lang/parser and lang/codegen to implement
// the first-error-wins propagation policy without threading an error return
// value through every recursive-descent production.
func Throw(filename, source string, off, line int, format string, args ...any) {
	panic(Fatal{Err: Newf(filename, source, off, line, format, args...)})
}

// Recover is deferred by the top-level driver (or by tests) to turn a Fatal
// panic into a normal error return. Any other panic value is re-raised.
func Recover(errp *error) {
	if r := recover(); r != nil {
		if f, ok := r.(Fatal); ok {
			*errp = f.Err
			return
		}
		panic(r)
	}
}
