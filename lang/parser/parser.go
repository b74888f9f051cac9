// Package parser implements the recursive-descent parser described in
// SPEC_FULL.md §6 (spec.md §4.3): it consumes the scanner's token list and
// produces a typed AST plus the translation unit's global Obj list, threading
// a lexical Scope chain and two Obj lists (locals-of-current-function,
// globals-of-translation-unit) the way the teacher's lang/resolver threads a
// Function/block chain through its own single recursive walk, adapted here
// to build a full typed tree rather than annotate an existing one.
package parser

import (
	"github.com/mna/minic/lang/ast"
	"github.com/mna/minic/lang/diag"
	"github.com/mna/minic/lang/scanner"
	"github.com/mna/minic/lang/token"
	"github.com/mna/minic/lang/types"
)

// parser carries all state for one translation unit. Per SPEC_FULL.md §8
// (spec.md §9's "global mutable state" note), every field that the original
// implementation kept as a process-wide static lives on this struct instead.
// The one exception is the filename and source text that lang/ast keeps in
// package variables (set by ast.SetSource in ParseFile) for its diagnostics,
// which two compilations running at once in the same process would share.
type parser struct {
	filename string
	src      string
	cur      *token.Token

	scope *ast.Scope

	locals  []*ast.Obj // reset at the start of each function
	globals []*ast.Obj

	strCounter int
}

// ParseFile tokenizes and parses one translation unit, returning its list of
// top-level Obj records (functions and global variables, in declaration
// order) or the first diagnostic encountered.
func ParseFile(filename string, src []byte) (globals []*ast.Obj, err error) {
	defer diag.Recover(&err)

	ast.SetSource(filename, string(src))
	head := scanner.Lex(filename, src)

	p := &parser{
		filename: filename,
		src:      string(src),
		cur:      head,
		scope:    ast.NewScope(),
	}
	p.program()
	return p.globals, nil
}

func (p *parser) errorf(format string, args ...any) {
	diag.Throw(p.filename, p.src, p.cur.Off, p.cur.Line, format, args...)
}

func (p *parser) errorfAt(tok *token.Token, format string, args ...any) {
	diag.Throw(p.filename, p.src, tok.Off, tok.Line, format, args...)
}

// at reports whether the current token is the punctuator/keyword lit.
func (p *parser) at(lit string) bool {
	return p.cur.Kind != token.EOF && p.cur.Is(lit)
}

// atEOF reports whether the current token is the end-of-input sentinel.
func (p *parser) atEOF() bool { return p.cur.Kind == token.EOF }

// consume advances past the current token and reports true if it matched
// lit; otherwise it leaves the cursor untouched and reports false.
func (p *parser) consume(lit string) bool {
	if !p.at(lit) {
		return false
	}
	p.advance()
	return true
}

// expect advances past the current token if it matches lit, or raises a
// syntax diagnostic naming the expected punctuator.
func (p *parser) expect(lit string) *token.Token {
	if !p.at(lit) {
		p.errorf("expected %q", lit)
	}
	return p.advance()
}

// advance returns the current token and moves the cursor to the next one.
func (p *parser) advance() *token.Token {
	t := p.cur
	if t.Kind != token.EOF {
		p.cur = t.Next
	}
	return t
}

// expectIdent advances past an IDENT token and returns its text, or raises
// "expected an identifier".
func (p *parser) expectIdent() (string, *token.Token) {
	if p.cur.Kind != token.IDENT {
		p.errorf("expected an identifier")
	}
	t := p.advance()
	return t.Text, t
}

// expectNumber advances past a NUMBER token and returns its value.
func (p *parser) expectNumber() int64 {
	if p.cur.Kind != token.NUMBER {
		p.errorf("expected a number")
	}
	return p.advance().IntValue
}

// isTypeName reports whether the current token starts a declspec: one of
// the fixed base-type keywords, "struct"/"union", or a name bound as a
// typedef in scope (spec.md §4.3's "is type name" predicate).
func (p *parser) isTypeName() bool {
	switch {
	case p.cur.Kind == token.KEYWORD:
		switch p.cur.Text {
		case "void", "char", "short", "int", "long", "typedef", "struct", "union", "static":
			return true
		}
		return false
	case p.cur.Kind == token.IDENT:
		if b := p.scope.LookupVar(p.cur.Text); b != nil && b.Typedef != nil {
			return true
		}
	}
	return false
}

// program = ( typedef | function-def | global-var )*
func (p *parser) program() {
	for !p.atEOF() {
		baseTy, isTypedef, isStatic := p.declspec()
		if isTypedef {
			p.typedefList(baseTy)
			continue
		}

		if p.isFunctionDeclarator() {
			p.functionDef(baseTy, isStatic)
			continue
		}
		p.globalVarList(baseTy, isStatic)
	}
}

// typedefList parses the comma-separated declarator list following a
// "typedef" declspec and records each name as a typedef entry in the current
// (file) scope.
func (p *parser) typedefList(baseTy *types.Type) {
	first := true
	for !p.consume(";") {
		if !first {
			p.expect(",")
		}
		first = false
		ty, name, _ := p.declarator(baseTy)
		p.scope.DeclareVar(name, &ast.VarBinding{Typedef: ty})
	}
}

// globalVarList parses the comma-separated declarator list of a global-var
// production and registers each as a global Obj.
func (p *parser) globalVarList(baseTy *types.Type, isStatic bool) {
	first := true
	for !p.consume(";") {
		if !first {
			p.expect(",")
		}
		first = false
		ty, name, _ := p.declarator(baseTy)
		if ty.Kind == types.Void {
			p.errorf("variable declared void")
		}
		obj := &ast.Obj{Name: name, Type: ty, IsLocal: false, IsStatic: isStatic}
		p.globals = append(p.globals, obj)
		p.scope.DeclareVar(name, &ast.VarBinding{Obj: obj})
	}
}

// isFunctionDeclarator peeks ahead by parsing a throwaway declarator off a
// scratch base type, then rewinds p.cur. The trial parse shares p.scope, so
// a struct/union tag declared inside a parameter list is registered during
// the lookahead as well as during the real parse.
func (p *parser) isFunctionDeclarator() bool {
	mark := p.cur
	ty, _, _ := p.declarator(types.TypeInt)
	p.cur = mark
	return ty.Kind == types.Func
}
