package ast

import (
	"github.com/mna/minic/lang/token"
	"github.com/mna/minic/lang/types"
)

// BinOp identifies the operator of a BinExpr.
type BinOp uint8

const (
	Add BinOp = iota
	Sub
	Mul
	Div
	Eq
	Ne
	Lt
	Le
)

// NumExpr is an integer-literal expression.
type NumExpr struct {
	baseExpr
	Value int64
}

func NewNumExpr(tok *token.Token, v int64) *NumExpr {
	return &NumExpr{baseExpr: baseExpr{tok: tok}, Value: v}
}
func (n *NumExpr) Walk(v Visitor) { v.Visit(n) }

// VarExpr references a named Obj (local, global, or string-literal global).
type VarExpr struct {
	baseExpr
	Obj *Obj
}

func NewVarExpr(tok *token.Token, obj *Obj) *VarExpr {
	return &VarExpr{baseExpr: baseExpr{tok: tok}, Obj: obj}
}
func (n *VarExpr) Walk(v Visitor) { v.Visit(n) }

// NegExpr is unary negation.
type NegExpr struct {
	baseExpr
	X Expr
}

func NewNegExpr(tok *token.Token, x Expr) *NegExpr {
	return &NegExpr{baseExpr: baseExpr{tok: tok}, X: x}
}
func (n *NegExpr) Walk(v Visitor) { v.Visit(n); n.X.Walk(v) }

// NotExpr is logical negation ("!x"), one of the supplemented operators
// from SPEC_FULL.md §7.
type NotExpr struct {
	baseExpr
	X Expr
}

func NewNotExpr(tok *token.Token, x Expr) *NotExpr {
	return &NotExpr{baseExpr: baseExpr{tok: tok}, X: x}
}
func (n *NotExpr) Walk(v Visitor) { v.Visit(n); n.X.Walk(v) }

// BitNotExpr is bitwise negation ("~x"), one of the supplemented operators
// from SPEC_FULL.md §7.
type BitNotExpr struct {
	baseExpr
	X Expr
}

func NewBitNotExpr(tok *token.Token, x Expr) *BitNotExpr {
	return &BitNotExpr{baseExpr: baseExpr{tok: tok}, X: x}
}
func (n *BitNotExpr) Walk(v Visitor) { v.Visit(n); n.X.Walk(v) }

// BinExpr is a binary arithmetic or comparison expression, already
// type-directed-rewritten for pointer arithmetic by the parser (spec.md
// §4.3's "Pointer arithmetic normalization").
type BinExpr struct {
	baseExpr
	Op          BinOp
	Left, Right Expr
}

func NewBinExpr(tok *token.Token, op BinOp, l, r Expr) *BinExpr {
	return &BinExpr{baseExpr: baseExpr{tok: tok}, Op: op, Left: l, Right: r}
}
func (n *BinExpr) Walk(v Visitor) { v.Visit(n); n.Left.Walk(v); n.Right.Walk(v) }

// LogicalOp identifies the operator of a LogicalExpr.
type LogicalOp uint8

const (
	LogAnd LogicalOp = iota
	LogOr
)

// LogicalExpr is a short-circuiting "&&"/"||" expression, one of the
// supplemented operators from SPEC_FULL.md §7.
type LogicalExpr struct {
	baseExpr
	Op          LogicalOp
	Left, Right Expr
}

func NewLogicalExpr(tok *token.Token, op LogicalOp, l, r Expr) *LogicalExpr {
	return &LogicalExpr{baseExpr: baseExpr{tok: tok}, Op: op, Left: l, Right: r}
}
func (n *LogicalExpr) Walk(v Visitor) { v.Visit(n); n.Left.Walk(v); n.Right.Walk(v) }

// AssignExpr is "left = right".
type AssignExpr struct {
	baseExpr
	Left, Right Expr
}

func NewAssignExpr(tok *token.Token, l, r Expr) *AssignExpr {
	return &AssignExpr{baseExpr: baseExpr{tok: tok}, Left: l, Right: r}
}
func (n *AssignExpr) Walk(v Visitor) { v.Visit(n); n.Left.Walk(v); n.Right.Walk(v) }

// AddrExpr is "&x".
type AddrExpr struct {
	baseExpr
	X Expr
}

func NewAddrExpr(tok *token.Token, x Expr) *AddrExpr {
	return &AddrExpr{baseExpr: baseExpr{tok: tok}, X: x}
}
func (n *AddrExpr) Walk(v Visitor) { v.Visit(n); n.X.Walk(v) }

// DerefExpr is "*x".
type DerefExpr struct {
	baseExpr
	X Expr
}

func NewDerefExpr(tok *token.Token, x Expr) *DerefExpr {
	return &DerefExpr{baseExpr: baseExpr{tok: tok}, X: x}
}
func (n *DerefExpr) Walk(v Visitor) { v.Visit(n); n.X.Walk(v) }

// MemberExpr is "x.name" (or the desugared form of "x->name").
type MemberExpr struct {
	baseExpr
	X      Expr
	Member *types.Member
}

func NewMemberExpr(tok *token.Token, x Expr) *MemberExpr {
	return &MemberExpr{baseExpr: baseExpr{tok: tok}, X: x}
}
func (n *MemberExpr) Walk(v Visitor) { v.Visit(n); n.X.Walk(v) }

// CommaExpr is "left, right".
type CommaExpr struct {
	baseExpr
	Left, Right Expr
}

func NewCommaExpr(tok *token.Token, l, r Expr) *CommaExpr {
	return &CommaExpr{baseExpr: baseExpr{tok: tok}, Left: l, Right: r}
}
func (n *CommaExpr) Walk(v Visitor) { v.Visit(n); n.Left.Walk(v); n.Right.Walk(v) }

// CallExpr is "name(args...)".
type CallExpr struct {
	baseExpr
	FuncName string
	Args     []Expr
}

func NewCallExpr(tok *token.Token, name string, args []Expr) *CallExpr {
	return &CallExpr{baseExpr: baseExpr{tok: tok}, FuncName: name, Args: args}
}
func (n *CallExpr) Walk(v Visitor) {
	v.Visit(n)
	for _, a := range n.Args {
		a.Walk(v)
	}
}

// StmtExpr is a GNU statement expression "({ stmt...; expr; })".
type StmtExpr struct {
	baseExpr
	Body []Stmt
}

func NewStmtExpr(tok *token.Token, body []Stmt) *StmtExpr {
	return &StmtExpr{baseExpr: baseExpr{tok: tok}, Body: body}
}
func (n *StmtExpr) Walk(v Visitor) {
	v.Visit(n)
	for _, s := range n.Body {
		s.Walk(v)
	}
}
