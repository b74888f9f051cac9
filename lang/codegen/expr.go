package codegen

import (
	"fmt"

	"github.com/mna/minic/lang/ast"
	"github.com/mna/minic/lang/diag"
	"github.com/mna/minic/lang/types"
)

// genExpr lowers e, leaving its value in %rax.
func (g *generator) genExpr(e ast.Expr) {
	g.emitLoc(e.Tok().Line)

	switch n := e.(type) {
	case *ast.NumExpr:
		g.emitf("  mov $%d, %%rax\n", n.Value)

	case *ast.VarExpr:
		g.genAddr(n)
		g.load(n.Type())

	case *ast.NegExpr:
		g.genExpr(n.X)
		g.emitf("  neg %%rax\n")

	case *ast.NotExpr:
		g.genExpr(n.X)
		g.emitf("  cmp $0, %%rax\n")
		g.emitf("  sete %%al\n")
		g.emitf("  movzb %%al, %%rax\n")

	case *ast.BitNotExpr:
		g.genExpr(n.X)
		g.emitf("  not %%rax\n")

	case *ast.BinExpr:
		g.genBinExpr(n)

	case *ast.LogicalExpr:
		g.genLogicalExpr(n)

	case *ast.AssignExpr:
		g.genAddr(n.Left)
		g.push()
		g.genExpr(n.Right)
		g.store(n.Left.Type())

	case *ast.AddrExpr:
		g.genAddr(n.X)

	case *ast.DerefExpr:
		g.genExpr(n.X)
		g.load(n.Type())

	case *ast.MemberExpr:
		g.genAddr(n)
		g.load(n.Type())

	case *ast.CommaExpr:
		g.genExpr(n.Left)
		g.genExpr(n.Right)

	case *ast.CallExpr:
		g.genCallExpr(n)

	case *ast.StmtExpr:
		for _, s := range n.Body {
			g.genStmt(s)
		}

	default:
		diag.Throw(g.filename, g.source, e.Tok().Off, e.Tok().Line, "internal error: invalid expression")
	}
}

// genAddr computes the address of an lvalue expression into %rax, per
// spec.md §4.4's gen_addr.
func (g *generator) genAddr(e ast.Expr) {
	switch n := e.(type) {
	case *ast.VarExpr:
		if n.Obj.IsLocal {
			g.emitf("  lea %d(%%rbp), %%rax\n", n.Obj.Offset)
		} else {
			g.emitf("  lea %s(%%rip), %%rax\n", n.Obj.Name)
		}

	case *ast.DerefExpr:
		g.genExpr(n.X) // the operand's value is already the address

	case *ast.CommaExpr:
		g.genExpr(n.Left)
		g.genAddr(n.Right)

	case *ast.MemberExpr:
		g.genAddr(n.X)
		g.emitf("  add $%d, %%rax\n", n.Member.Offset)

	default:
		diag.Throw(g.filename, g.source, e.Tok().Off, e.Tok().Line, "not an lvalue")
	}
}

// load dereferences the address in %rax into a value of type ty, per
// spec.md §4.4: arrays/structs/unions decay to their address instead
// (array-to-pointer decay / aggregate-by-reference).
func (g *generator) load(ty *types.Type) {
	switch ty.Kind {
	case types.Array, types.Struct, types.Union:
		return
	case types.Char:
		g.emitf("  movsbq (%%rax), %%rax\n")
	case types.Short:
		g.emitf("  movswq (%%rax), %%rax\n")
	case types.Int:
		g.emitf("  movsxd (%%rax), %%rax\n")
	default:
		g.emitf("  mov (%%rax), %%rax\n")
	}
}

// store pops a destination address into %rdi and stores %rax's value into
// it (byte-by-byte for struct/union, size-appropriate otherwise).
func (g *generator) store(ty *types.Type) {
	g.pop("rdi")
	switch ty.Kind {
	case types.Struct, types.Union:
		for i := 0; i < ty.Size; i++ {
			g.emitf("  mov %d(%%rax), %%r8b\n", i)
			g.emitf("  mov %%r8b, %d(%%rdi)\n", i)
		}
	case types.Char:
		g.emitf("  mov %%al, (%%rdi)\n")
	case types.Short:
		g.emitf("  mov %%ax, (%%rdi)\n")
	case types.Int:
		g.emitf("  mov %%eax, (%%rdi)\n")
	default:
		g.emitf("  mov %%rax, (%%rdi)\n")
	}
}

// genBinExpr emits the right operand, pushes, emits the left operand, pops
// into %rdi, then the op-specific instruction sequence.
func (g *generator) genBinExpr(n *ast.BinExpr) {
	g.genExpr(n.Right)
	g.push()
	g.genExpr(n.Left)
	g.pop("rdi")

	switch n.Op {
	case ast.Add:
		g.emitf("  add %%rdi, %%rax\n")
	case ast.Sub:
		g.emitf("  sub %%rdi, %%rax\n")
	case ast.Mul:
		g.emitf("  imul %%rdi, %%rax\n")
	case ast.Div:
		g.emitf("  cqo\n")
		g.emitf("  idiv %%rdi\n")
	case ast.Eq:
		g.emitf("  cmp %%rdi, %%rax\n")
		g.emitf("  sete %%al\n")
		g.emitf("  movzb %%al, %%rax\n")
	case ast.Ne:
		g.emitf("  cmp %%rdi, %%rax\n")
		g.emitf("  setne %%al\n")
		g.emitf("  movzb %%al, %%rax\n")
	case ast.Lt:
		g.emitf("  cmp %%rdi, %%rax\n")
		g.emitf("  setl %%al\n")
		g.emitf("  movzb %%al, %%rax\n")
	case ast.Le:
		g.emitf("  cmp %%rdi, %%rax\n")
		g.emitf("  setle %%al\n")
		g.emitf("  movzb %%al, %%rax\n")
	default:
		panic(fmt.Sprintf("codegen: unhandled BinOp %v", n.Op))
	}
}

// genLogicalExpr lowers "&&"/"||" with proper short-circuit control flow,
// one of the supplemented operators from SPEC_FULL.md §7.
func (g *generator) genLogicalExpr(n *ast.LogicalExpr) {
	id := g.nextLabel()
	switch n.Op {
	case ast.LogAnd:
		g.genExpr(n.Left)
		g.emitf("  cmp $0, %%rax\n")
		g.emitf("  je .L.false.%d\n", id)
		g.genExpr(n.Right)
		g.emitf("  cmp $0, %%rax\n")
		g.emitf("  je .L.false.%d\n", id)
		g.emitf("  mov $1, %%rax\n")
		g.emitf("  jmp .L.end.%d\n", id)
		g.emitf(".L.false.%d:\n", id)
		g.emitf("  mov $0, %%rax\n")
		g.emitf(".L.end.%d:\n", id)
	case ast.LogOr:
		g.genExpr(n.Left)
		g.emitf("  cmp $0, %%rax\n")
		g.emitf("  jne .L.true.%d\n", id)
		g.genExpr(n.Right)
		g.emitf("  cmp $0, %%rax\n")
		g.emitf("  jne .L.true.%d\n", id)
		g.emitf("  mov $0, %%rax\n")
		g.emitf("  jmp .L.end.%d\n", id)
		g.emitf(".L.true.%d:\n", id)
		g.emitf("  mov $1, %%rax\n")
		g.emitf(".L.end.%d:\n", id)
	}
}

// genCallExpr evaluates each argument left-to-right and pushes it, then
// pops in reverse into the argument register sequence, per spec.md §4.4's
// "Function calls".
func (g *generator) genCallExpr(n *ast.CallExpr) {
	for _, a := range n.Args {
		g.genExpr(a)
		g.push()
	}
	for i := len(n.Args) - 1; i >= 0; i-- {
		g.pop(argRegs64[i])
	}
	g.emitf("  mov $0, %%rax\n")
	g.emitf("  call %s\n", n.FuncName)
}
