package ast

import "github.com/mna/minic/lang/types"

// Obj is a named object: a local variable, function parameter, global
// variable, string-literal global, or function, per spec.md §3's Obj model.
// Locals and globals are both represented by Obj; the IsLocal flag and the
// presence of Body/Params distinguish the variants instead of splitting them
// into separate Go types, mirroring the single chibicc Obj record this type
// is grounded on (original_source/chibicc.h).
type Obj struct {
	Name string
	Type *types.Type

	IsLocal bool

	// Offset is this local's byte offset from rbp; negative, assigned by
	// lang/codegen's prologue pass. Unused for globals.
	Offset int

	// IsStatic marks a global or function declared with the "static"
	// storage-class specifier: the code generator must not emit a ".globl"
	// directive for it. Supplemented over the distilled spec per
	// SPEC_FULL.md §7.
	IsStatic bool

	// InitData holds a string literal's NUL-terminated byte content; non-nil
	// only for anonymous string-literal globals.
	InitData []byte

	// Params, Body, Locals and StackSize are populated only when Obj denotes
	// a function: Params is the parameter list in declaration order, Body is
	// the parsed function body, Locals chains every local (including
	// parameters) declared in the function for the prologue pass to lay out,
	// and StackSize is the 16-byte-aligned total computed by that pass.
	Params    []*Obj
	Body      []Stmt
	Locals    []*Obj
	StackSize int

	// IsFunction distinguishes a function Obj from a variable Obj sharing the
	// same record shape.
	IsFunction bool

	// IsDefinition marks a function Obj that has a body. lang/parser creates
	// no Obj at all for a function declaration without a body (spec.md
	// §4.3's "function declaration vs. definition" disambiguation), so every
	// function Obj it returns has IsDefinition set; lang/codegen skips any
	// function Obj without it.
	IsDefinition bool

	Next *Obj
}
