package parser

import (
	"github.com/mna/minic/lang/ast"
	"github.com/mna/minic/lang/types"
)

// compound-stmt = ( typedef | declaration | stmt )* "}"
//
// The opening "{" has already been consumed by the caller (functionDef or
// the "{" branch of stmt). Pushes and pops a Scope frame, per spec.md
// §4.3's "Scope and identifier resolution".
func (p *parser) compoundStmt() []ast.Stmt {
	p.scope.Push()
	defer p.scope.Pop()

	var body []ast.Stmt
	for !p.consume("}") {
		if p.at("typedef") {
			baseTy, _, _ := p.declspec()
			p.typedefList(baseTy)
			continue
		}
		if p.isTypeName() {
			body = append(body, p.declaration()...)
			continue
		}
		body = append(body, p.stmt())
	}
	return body
}

// declaration = declspec ( declarator ( "=" assign )? ( "," declarator ( "=" assign )? )* )? ";"
//
// Each declared local becomes an Obj registered in the current scope; an
// initializer is lowered to an assignment expr-stmt, matching
// original_source/parse.c's declaration() desugaring.
func (p *parser) declaration() []ast.Stmt {
	baseTy, _, isStatic := p.declspec()
	_ = isStatic // static locals keep ordinary stack storage

	var stmts []ast.Stmt
	first := true
	for !p.consume(";") {
		if !first {
			p.expect(",")
		}
		first = false

		ty, name, tok := p.declarator(baseTy)
		if ty.Kind == types.Void {
			p.errorfAt(tok, "variable declared void")
		}
		obj := p.newLocal(name, ty)

		if p.consume("=") {
			lhs := ast.NewVarExpr(tok, obj)
			ast.Annotate(lhs)
			rhs := p.assign()
			assign := ast.NewAssignExpr(tok, lhs, rhs)
			ast.Annotate(assign)
			stmts = append(stmts, ast.NewExprStmt(tok, assign))
		}
	}
	return stmts
}

// stmt = "return" expr? ";" | "if" "(" expr ")" stmt ("else" stmt)?
//      | "for" "(" expr-stmt expr? ";" expr? ")" stmt
//      | "while" "(" expr ")" stmt | "{" compound-stmt | expr-stmt
func (p *parser) stmt() ast.Stmt {
	switch {
	case p.at("return"):
		tok := p.advance()
		var expr ast.Expr
		if !p.at(";") {
			expr = p.expr()
		}
		p.expect(";")
		if expr != nil {
			ast.Annotate(expr)
		}
		return ast.NewReturnStmt(tok, expr)

	case p.at("if"):
		tok := p.advance()
		p.expect("(")
		cond := p.expr()
		ast.Annotate(cond)
		p.expect(")")
		then := p.stmt()
		var els ast.Stmt
		if p.consume("else") {
			els = p.stmt()
		}
		return ast.NewIfStmt(tok, cond, then, els)

	case p.at("for"):
		tok := p.advance()
		p.expect("(")
		p.scope.Push()
		var init ast.Stmt
		if !p.at(";") {
			init = p.exprStmtOrDecl()
		} else {
			p.advance()
		}
		var cond ast.Expr
		if !p.at(";") {
			cond = p.expr()
			ast.Annotate(cond)
		}
		p.expect(";")
		var post ast.Stmt
		if !p.at(")") {
			postExpr := p.expr()
			ast.Annotate(postExpr)
			post = ast.NewExprStmt(tok, postExpr)
		}
		p.expect(")")
		body := p.stmt()
		p.scope.Pop()
		return ast.NewForStmt(tok, init, cond, post, body)

	case p.at("while"):
		tok := p.advance()
		p.expect("(")
		cond := p.expr()
		ast.Annotate(cond)
		p.expect(")")
		body := p.stmt()
		return ast.NewForStmt(tok, nil, cond, nil, body)

	case p.at("{"):
		tok := p.advance()
		body := p.compoundStmt()
		return ast.NewBlockStmt(tok, body)

	default:
		return p.exprStmt()
	}
}

// exprStmtOrDecl handles the for-loop init clause, which may be either a
// declaration (e.g. "for (int i = 0; ...)") or a plain expression statement.
func (p *parser) exprStmtOrDecl() ast.Stmt {
	if p.isTypeName() {
		stmts := p.declaration()
		switch len(stmts) {
		case 0:
			return ast.NewExprStmt(p.cur, nil)
		case 1:
			return stmts[0]
		default:
			return ast.NewBlockStmt(stmts[0].Tok(), stmts)
		}
	}
	return p.exprStmt()
}

// expr-stmt = expr? ";"
func (p *parser) exprStmt() ast.Stmt {
	tok := p.cur
	if p.consume(";") {
		return ast.NewExprStmt(tok, nil)
	}
	e := p.expr()
	ast.Annotate(e)
	p.expect(";")
	return ast.NewExprStmt(tok, e)
}
