// Package ast defines the typed abstract syntax tree produced by
// lang/parser and consumed by lang/codegen, per SPEC_FULL.md §5
// (spec.md §3). Following the Design Notes' guidance, each node kind is its
// own Go type implementing the Node/Expr/Stmt interfaces (a proper sum type
// per entity) rather than one wide struct with a kind tag and many unused
// fields — grounded on the teacher's lang/ast package, which uses the same
// one-struct-per-kind-plus-Format/Span/Walk shape, adapted here to C's much
// smaller node set.
package ast

import (
	"github.com/mna/minic/lang/token"
	"github.com/mna/minic/lang/types"
)

// Node is implemented by every AST node. Every node produced by the parser
// has a non-nil originating token, per spec.md §3's invariants.
type Node interface {
	Tok() *token.Token
	Walk(v Visitor)
}

// Expr is an expression node. Every expression node carries an annotated
// type once lang/ast's Annotate walk has run over it (spec.md §3's
// invariant 2 / §8 property 2).
type Expr interface {
	Node
	Type() *types.Type
	SetType(*types.Type)
	exprNode()
}

// Stmt is a statement node. Statements carry no type, per spec.md §3.
type Stmt interface {
	Node
	stmtNode()
}

// Visitor is implemented by callers of Walk to traverse the tree. Annotate
// and lang/codegen do not use it; they dispatch on node types directly.
type Visitor interface {
	Visit(n Node)
}

// VisitorFunc adapts a plain function to the Visitor interface.
type VisitorFunc func(n Node)

func (f VisitorFunc) Visit(n Node) { f(n) }

// baseExpr factors the annotated-type bookkeeping shared by every Expr
// implementation.
type baseExpr struct {
	tok *token.Token
	ty  *types.Type
}

func (b *baseExpr) Tok() *token.Token      { return b.tok }
func (b *baseExpr) Type() *types.Type      { return b.ty }
func (b *baseExpr) SetType(t *types.Type)  { b.ty = t }
func (b *baseExpr) exprNode()              {}

// baseStmt factors the originating-token bookkeeping shared by every Stmt
// implementation.
type baseStmt struct {
	tok *token.Token
}

func (b *baseStmt) Tok() *token.Token { return b.tok }
func (b *baseStmt) stmtNode()         {}
