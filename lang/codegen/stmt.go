package codegen

import "github.com/mna/minic/lang/ast"

// genStmt lowers one statement, emitting an optional ".loc" directive first
// (SPEC_FULL.md §3's AMBIENT STACK: gated by Config.EmitLoc).
func (g *generator) genStmt(s ast.Stmt) {
	g.emitLoc(s.Tok().Line)

	switch n := s.(type) {
	case *ast.BlockStmt:
		for _, c := range n.Body {
			g.genStmt(c)
		}

	case *ast.IfStmt:
		id := g.nextLabel()
		g.genExpr(n.Cond)
		g.emitf("  cmp $0, %%rax\n")
		g.emitf("  je .L.else.%d\n", id)
		g.genStmt(n.Then)
		g.emitf("  jmp .L.end.%d\n", id)
		g.emitf(".L.else.%d:\n", id)
		if n.Else != nil {
			g.genStmt(n.Else)
		}
		g.emitf(".L.end.%d:\n", id)

	case *ast.ForStmt:
		id := g.nextLabel()
		if n.Init != nil {
			g.genStmt(n.Init)
		}
		g.emitf(".L.begin.%d:\n", id)
		if n.Cond != nil {
			g.genExpr(n.Cond)
			g.emitf("  cmp $0, %%rax\n")
			g.emitf("  je .L.end.%d\n", id)
		}
		g.genStmt(n.Body)
		if n.Post != nil {
			g.genStmt(n.Post)
		}
		g.emitf("  jmp .L.begin.%d\n", id)
		g.emitf(".L.end.%d:\n", id)

	case *ast.ReturnStmt:
		if n.Expr != nil {
			g.genExpr(n.Expr)
		}
		g.emitf("  jmp %s\n", g.curRetLabel)

	case *ast.ExprStmt:
		if n.Expr != nil {
			g.genExpr(n.Expr)
		}
	}
}

func (g *generator) emitLoc(line int) {
	if g.cfg.EmitLoc && line > 0 {
		g.emitf("  .loc 1 %d\n", line)
	}
}
