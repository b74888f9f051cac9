package ast

import "github.com/mna/minic/lang/diag"

// currentFilename and currentSource hold the file currently being annotated,
// so that Throw can format a diagnostic without threading a context
// parameter through every Annotate call. This mirrors original_source's
// chibicc.c globals (current_filename/current_input), which the original
// implementation also relies on for exactly this reason: a single
// compilation processes one file at a time and diagnostics never need to
// reach across files.
var (
	currentFilename string
	currentSource   string
)

// SetSource records the file lang/parser is about to build a tree for; it
// must be called before Annotate (or any Throw) runs against that tree.
func SetSource(filename, src string) {
	currentFilename = filename
	currentSource = src
}

// Throw raises a diag.Fatal anchored at n's originating token, following the
// compiler's first-error-wins propagation policy (spec.md §6).
func Throw(n Node, format string, args ...any) {
	tok := n.Tok()
	diag.Throw(currentFilename, currentSource, tok.Off, tok.Line, format, args...)
}
