package parser

import (
	"strconv"

	"github.com/mna/minic/lang/ast"
	"github.com/mna/minic/lang/token"
	"github.com/mna/minic/lang/types"
)

// expr = assign ( "," expr )?
func (p *parser) expr() ast.Expr {
	e := p.assign()
	if p.consume(",") {
		tok := p.cur
		rhs := p.expr()
		e = ast.NewCommaExpr(tok, e, rhs)
		ast.Annotate(e)
	}
	return e
}

// assign = logic-or ( "=" assign )?
//
// logic-or and logic-and are supplemented levels over the distilled
// grammar, giving "||" and "&&" their conventional short-circuit
// precedence between assignment and equality (SPEC_FULL.md §7).
func (p *parser) assign() ast.Expr {
	e := p.logicOr()
	if p.consume("=") {
		tok := p.cur
		rhs := p.assign()
		e = ast.NewAssignExpr(tok, e, rhs)
		ast.Annotate(e)
	}
	return e
}

// logic-or = logic-and ( "||" logic-and )*
func (p *parser) logicOr() ast.Expr {
	e := p.logicAnd()
	for p.at("||") {
		tok := p.advance()
		e = ast.NewLogicalExpr(tok, ast.LogOr, e, p.logicAnd())
		ast.Annotate(e)
	}
	return e
}

// logic-and = equality ( "&&" equality )*
func (p *parser) logicAnd() ast.Expr {
	e := p.equality()
	for p.at("&&") {
		tok := p.advance()
		e = ast.NewLogicalExpr(tok, ast.LogAnd, e, p.equality())
		ast.Annotate(e)
	}
	return e
}

// equality = relational ( ("=="|"!=") relational )*
func (p *parser) equality() ast.Expr {
	e := p.relational()
	for {
		switch {
		case p.at("=="):
			tok := p.advance()
			e = ast.NewBinExpr(tok, ast.Eq, e, p.relational())
			ast.Annotate(e)
		case p.at("!="):
			tok := p.advance()
			e = ast.NewBinExpr(tok, ast.Ne, e, p.relational())
			ast.Annotate(e)
		default:
			return e
		}
	}
}

// relational = add ( ("<"|"<="|">"|">=") add )*
func (p *parser) relational() ast.Expr {
	e := p.add()
	for {
		switch {
		case p.at("<"):
			tok := p.advance()
			e = ast.NewBinExpr(tok, ast.Lt, e, p.add())
			ast.Annotate(e)
		case p.at("<="):
			tok := p.advance()
			e = ast.NewBinExpr(tok, ast.Le, e, p.add())
			ast.Annotate(e)
		case p.at(">"):
			tok := p.advance()
			e = ast.NewBinExpr(tok, ast.Lt, p.add(), e)
			ast.Annotate(e)
		case p.at(">="):
			tok := p.advance()
			e = ast.NewBinExpr(tok, ast.Le, p.add(), e)
			ast.Annotate(e)
		default:
			return e
		}
	}
}

// add = mul ( ("+"|"-") mul )*
//
// Applies pointer-arithmetic normalization at each step, per spec.md
// §4.3's "Pointer arithmetic normalization".
func (p *parser) add() ast.Expr {
	e := p.mul()
	for {
		switch {
		case p.at("+"):
			tok := p.advance()
			e = p.newAdd(tok, e, p.mul())
		case p.at("-"):
			tok := p.advance()
			e = p.newSub(tok, e, p.mul())
		default:
			return e
		}
	}
}

// newAdd: "int + int" → plain add; "ptr + int" or "int + ptr" (after
// swapping to ptr + int) → scale the integer operand by the pointee size,
// then add; "ptr + ptr" is rejected.
func (p *parser) newAdd(tok *token.Token, l, r ast.Expr) ast.Expr {
	lp, rp := types.IsPointerLike(l.Type()), types.IsPointerLike(r.Type())
	switch {
	case !lp && !rp:
		e := ast.NewBinExpr(tok, ast.Add, l, r)
		ast.Annotate(e)
		return e
	case lp && rp:
		p.errorfAt(tok, "invalid operands to binary +")
	case !lp && rp:
		l, r = r, l
	}
	scale := ast.NewNumExpr(tok, int64(l.Type().Base.Size))
	ast.Annotate(scale)
	scaled := ast.NewBinExpr(tok, ast.Mul, r, scale)
	ast.Annotate(scaled)
	e := ast.NewBinExpr(tok, ast.Add, l, scaled)
	ast.Annotate(e)
	return e
}

// newSub: "int - int" → plain sub; "ptr - int" → integer scaled by pointee
// size, subtracted, result type is the left pointer's type; "ptr - ptr" →
// subtraction divided by the pointee size, result type int (element
// count); "int - ptr" is rejected.
func (p *parser) newSub(tok *token.Token, l, r ast.Expr) ast.Expr {
	lp, rp := types.IsPointerLike(l.Type()), types.IsPointerLike(r.Type())
	switch {
	case !lp && !rp:
		e := ast.NewBinExpr(tok, ast.Sub, l, r)
		ast.Annotate(e)
		return e
	case lp && rp:
		// sub's type is the raw byte-count difference (Long), not the
		// pointer type ast.Annotate's generic BinExpr rule would derive from
		// its operands, so it and the enclosing Div are typed by hand instead
		// of re-running Annotate over already-annotated children.
		sub := ast.NewBinExpr(tok, ast.Sub, l, r)
		sub.SetType(types.TypeLong)
		divisor := ast.NewNumExpr(tok, int64(l.Type().Base.Size))
		divisor.SetType(types.TypeInt)
		e := ast.NewBinExpr(tok, ast.Div, sub, divisor)
		e.SetType(types.TypeInt)
		return e
	case lp && !rp:
		scale := ast.NewNumExpr(tok, int64(l.Type().Base.Size))
		ast.Annotate(scale)
		scaled := ast.NewBinExpr(tok, ast.Mul, r, scale)
		ast.Annotate(scaled)
		e := ast.NewBinExpr(tok, ast.Sub, l, scaled)
		ast.Annotate(e)
		return e
	default:
		p.errorfAt(tok, "invalid operands to binary -")
		panic("unreachable")
	}
}

// mul = unary ( ("*"|"/") unary )*
func (p *parser) mul() ast.Expr {
	e := p.unary()
	for {
		switch {
		case p.at("*"):
			tok := p.advance()
			e = ast.NewBinExpr(tok, ast.Mul, e, p.unary())
			ast.Annotate(e)
		case p.at("/"):
			tok := p.advance()
			e = ast.NewBinExpr(tok, ast.Div, e, p.unary())
			ast.Annotate(e)
		default:
			return e
		}
	}
}

// unary = ("+"|"-"|"*"|"&"|"!"|"~") unary | postfix
//
// "!" and "~" are supplemented over the distilled grammar (SPEC_FULL.md
// §7).
func (p *parser) unary() ast.Expr {
	switch {
	case p.at("+"):
		p.advance()
		return p.unary()
	case p.at("-"):
		tok := p.advance()
		e := ast.NewNegExpr(tok, p.unary())
		ast.Annotate(e)
		return e
	case p.at("*"):
		tok := p.advance()
		e := ast.NewDerefExpr(tok, p.unary())
		ast.Annotate(e)
		return e
	case p.at("&"):
		tok := p.advance()
		e := ast.NewAddrExpr(tok, p.unary())
		ast.Annotate(e)
		return e
	case p.at("!"):
		tok := p.advance()
		e := ast.NewNotExpr(tok, p.unary())
		ast.Annotate(e)
		return e
	case p.at("~"):
		tok := p.advance()
		e := ast.NewBitNotExpr(tok, p.unary())
		ast.Annotate(e)
		return e
	default:
		return p.postfix()
	}
}

// postfix = primary ( "[" expr "]" | "." ident | "->" ident )*
func (p *parser) postfix() ast.Expr {
	e := p.primary()
	for {
		switch {
		case p.at("["):
			tok := p.advance()
			idx := p.expr()
			ast.Annotate(idx)
			p.expect("]")
			// a[b] desugars to *(a+b), using the same pointer-arithmetic
			// normalization as the "+" operator (spec.md §4.3's "Indexing").
			e = ast.NewDerefExpr(tok, p.newAdd(tok, e, idx))
			ast.Annotate(e)

		case p.at("."):
			p.advance()
			e = p.memberAccess(e)

		case p.at("->"):
			tok := p.advance()
			// x->y desugars to (*x).y.
			deref := ast.NewDerefExpr(tok, e)
			ast.Annotate(deref)
			e = p.memberAccessAt(deref, tok)

		default:
			return e
		}
	}
}

func (p *parser) memberAccess(x ast.Expr) ast.Expr {
	tok := p.cur
	return p.memberAccessAt(x, tok)
}

func (p *parser) memberAccessAt(x ast.Expr, tok *token.Token) ast.Expr {
	name, nameTok := p.expectIdent()
	m := ast.NewMemberExpr(tok, x)
	resolveMember(p, m, x, name, nameTok)
	return m
}

// resolveMember looks up name among x's (annotated) struct/union members
// and fills in the MemberExpr, raising diagnostics for non-aggregate bases
// or unknown member names.
func resolveMember(p *parser, m *ast.MemberExpr, x ast.Expr, name string, nameTok *token.Token) {
	baseTy := x.Type()
	if !types.IsAggregate(baseTy) {
		p.errorfAt(nameTok, "not a struct nor a union")
	}
	mem := types.FindMember(baseTy, name)
	if mem == nil {
		p.errorfAt(nameTok, "no such member: %s", name)
	}
	m.Member = mem
	ast.Annotate(m)
}

// primary = "(" "{" stmt+ "}" ")" | "(" expr ")"
//         | "sizeof" ( "(" type-name ")" | unary )
//         | ident ( "(" args? ")" )? | str | num
func (p *parser) primary() ast.Expr {
	switch {
	case p.at("("):
		if p.peekIsStmtExprOpen() {
			tok := p.advance() // "("
			p.expect("{")
			body := p.compoundStmt()
			p.expect(")")
			e := ast.NewStmtExpr(tok, body)
			ast.Annotate(e)
			return e
		}
		p.advance()
		e := p.expr()
		p.expect(")")
		return e

	case p.at("sizeof"):
		tok := p.advance()
		if p.at("(") && p.isTypeNameAfterParen() {
			p.advance()
			ty := p.abstractTypeName()
			p.expect(")")
			e := ast.NewNumExpr(tok, int64(ty.Size))
			ast.Annotate(e)
			return e
		}
		operand := p.unary()
		ast.Annotate(operand)
		e := ast.NewNumExpr(tok, int64(operand.Type().Size))
		ast.Annotate(e)
		return e

	case p.cur.Kind == token.NUMBER:
		tok := p.advance()
		e := ast.NewNumExpr(tok, tok.IntValue)
		ast.Annotate(e)
		return e

	case p.cur.Kind == token.STRING:
		tok := p.advance()
		obj := p.newStringLiteral(tok.StrValue)
		e := ast.NewVarExpr(tok, obj)
		ast.Annotate(e)
		return e

	case p.cur.Kind == token.IDENT:
		tok := p.advance()
		if p.consume("(") {
			return p.finishCall(tok)
		}
		b := p.scope.LookupVar(tok.Text)
		if b == nil || b.Obj == nil {
			p.errorfAt(tok, "undefined variable: %s", tok.Text)
		}
		e := ast.NewVarExpr(tok, b.Obj)
		ast.Annotate(e)
		return e

	default:
		p.errorf("expected an expression")
		panic("unreachable")
	}
}

// peekIsStmtExprOpen reports whether the "(" just seen begins a GNU
// statement expression "({ ... })" rather than a parenthesized expression.
func (p *parser) peekIsStmtExprOpen() bool {
	return p.cur.Next != nil && p.cur.Next.Is("{")
}

// isTypeNameAfterParen reports whether the token following the "(" that
// sizeof is about to consume starts a type-name, distinguishing
// "sizeof(int)" from "sizeof(expr)".
func (p *parser) isTypeNameAfterParen() bool {
	next := p.cur.Next
	if next == nil {
		return false
	}
	switch next.Kind {
	case token.KEYWORD:
		switch next.Text {
		case "void", "char", "short", "int", "long", "struct", "union":
			return true
		}
		return false
	case token.IDENT:
		if b := p.scope.LookupVar(next.Text); b != nil && b.Typedef != nil {
			return true
		}
	}
	return false
}

// finishCall parses the argument list following an already-consumed "("
// for a call to the function named by nameTok, whose "(" has just been
// consumed by the caller.
func (p *parser) finishCall(nameTok *token.Token) ast.Expr {
	var args []ast.Expr
	first := true
	for !p.at(")") {
		if !first {
			p.expect(",")
		}
		first = false
		a := p.assign()
		ast.Annotate(a)
		args = append(args, a)
	}
	p.expect(")")
	e := ast.NewCallExpr(nameTok, nameTok.Text, args)
	ast.Annotate(e)
	return e
}

// newStringLiteral registers an anonymous global Obj for a decoded string
// literal, named with a unique synthetic ".L..<n>" counter, per spec.md
// §4.3's "String literals".
func (p *parser) newStringLiteral(data []byte) *ast.Obj {
	name := p.uniqueName()
	obj := &ast.Obj{
		Name:     name,
		Type:     types.ArrayOf(types.TypeChar, len(data)),
		IsLocal:  false,
		InitData: data,
	}
	p.globals = append(p.globals, obj)
	return obj
}

// uniqueName returns the next ".L..<n>" synthetic global name.
func (p *parser) uniqueName() string {
	n := p.strCounter
	p.strCounter++
	return formatUniqueName(n)
}

func formatUniqueName(n int) string {
	return ".L.." + strconv.Itoa(n)
}
