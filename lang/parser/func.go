package parser

import (
	"github.com/mna/minic/lang/ast"
	"github.com/mna/minic/lang/types"
)

// functionDef = declspec declarator "{" compound-stmt
//
// Called once declspec has already produced baseTy and the caller has
// peeked ahead to confirm the declarator names a function. Per spec.md
// §4.3's "function declaration vs. definition" disambiguation, a trailing
// ";" instead of "{" means this was only a declaration: no body, and the
// Obj is dropped rather than added to the globals list (the code generator
// never sees function declarations without bodies).
func (p *parser) functionDef(baseTy *types.Type, isStatic bool) {
	ty, name, _ := p.declarator(baseTy)

	if p.consume(";") {
		return // declaration only, no definition to emit
	}

	fn := &ast.Obj{
		Name:         name,
		Type:         ty,
		IsFunction:   true,
		IsDefinition: true,
		IsStatic:     isStatic,
	}
	p.globals = append(p.globals, fn)
	p.scope.DeclareVar(name, &ast.VarBinding{Obj: fn})

	p.locals = nil
	p.scope.Push()

	for i, pname := range ty.ParamNames {
		obj := p.newLocal(pname, ty.Params[i])
		fn.Params = append(fn.Params, obj)
	}

	p.expect("{")
	fn.Body = p.compoundStmt()
	fn.Locals = p.locals

	p.scope.Pop()
}

// newLocal creates a fresh local Obj, registers it in the current function's
// locals list and the innermost scope, and returns it.
func (p *parser) newLocal(name string, ty *types.Type) *ast.Obj {
	obj := &ast.Obj{Name: name, Type: ty, IsLocal: true}
	p.locals = append(p.locals, obj)
	p.scope.DeclareVar(name, &ast.VarBinding{Obj: obj})
	return obj
}
