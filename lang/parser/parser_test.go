package parser_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mna/minic/lang/ast"
	"github.com/mna/minic/lang/parser"
	"github.com/mna/minic/lang/types"
)

func parse(t *testing.T, src string) []*ast.Obj {
	t.Helper()
	globals, err := parser.ParseFile("test.c", []byte(src))
	require.NoError(t, err)
	return globals
}

func findFunc(t *testing.T, globals []*ast.Obj, name string) *ast.Obj {
	t.Helper()
	for _, g := range globals {
		if g.IsFunction && g.Name == name {
			return g
		}
	}
	t.Fatalf("no function named %s", name)
	return nil
}

func TestParseMinimalMain(t *testing.T) {
	globals := parse(t, "int main() { return 0; }\n")
	fn := findFunc(t, globals, "main")
	require.Len(t, fn.Body, 1)
	ret, ok := fn.Body[0].(*ast.ReturnStmt)
	require.True(t, ok)
	num, ok := ret.Expr.(*ast.NumExpr)
	require.True(t, ok)
	assert.EqualValues(t, 0, num.Value)
	assert.Same(t, types.TypeInt, num.Type())
}

func TestParseArithmeticPrecedence(t *testing.T) {
	// 3+5*2 must parse as 3+(5*2), per ordinary precedence.
	globals := parse(t, "int main() { return 3+5*2; }\n")
	fn := findFunc(t, globals, "main")
	ret := fn.Body[0].(*ast.ReturnStmt)
	add, ok := ret.Expr.(*ast.BinExpr)
	require.True(t, ok)
	assert.Equal(t, ast.Add, add.Op)
	mul, ok := add.Right.(*ast.BinExpr)
	require.True(t, ok)
	assert.Equal(t, ast.Mul, mul.Op)
}

func TestParsePointerDifference(t *testing.T) {
	// &a-&a is ptr-ptr, which divides by the pointee size and types to int
	// (spec.md §8 invariant 8 / the newSub ptr-ptr rule).
	globals := parse(t, "int main() { int a=3; int b=&a-&a; return a+b; }\n")
	fn := findFunc(t, globals, "main")
	require.Len(t, fn.Locals, 2)
	decl := fn.Body[1].(*ast.ExprStmt)
	assign := decl.Expr.(*ast.AssignExpr)
	div := assign.Right.(*ast.BinExpr)
	assert.Equal(t, ast.Div, div.Op)
	assert.Same(t, types.TypeInt, div.Type())
}

func TestParseArrayIndexDesugarsToDeref(t *testing.T) {
	globals := parse(t, "int main() { int a[3]; *a=1; return a[0]; }\n")
	fn := findFunc(t, globals, "main")
	last := fn.Body[len(fn.Body)-1].(*ast.ReturnStmt)
	deref, ok := last.Expr.(*ast.DerefExpr)
	require.True(t, ok)
	_, ok = deref.X.(*ast.BinExpr)
	assert.True(t, ok, "a[0] should desugar to *(a+0)")
}

func TestParseStructMemberLayout(t *testing.T) {
	globals := parse(t, "struct T{ char a; int b;}; int main(){ struct T t; t.a=1; t.b=41; return t.a+t.b;}\n")
	fn := findFunc(t, globals, "main")
	require.Len(t, fn.Locals, 1)
	st := fn.Locals[0].Type
	require.Equal(t, types.Struct, st.Kind)
	a := types.FindMember(st, "a")
	b := types.FindMember(st, "b")
	require.NotNil(t, a)
	require.NotNil(t, b)
	assert.Equal(t, 0, a.Offset)
	assert.Equal(t, 4, b.Offset)
	assert.Equal(t, 8, st.Size)
}

func TestParseRecursiveFactorial(t *testing.T) {
	globals := parse(t, "int fact(int n){ if (n<2) return 1; return n*fact(n-1);} int main(){ return fact(5);}\n")
	fact := findFunc(t, globals, "fact")
	require.Len(t, fact.Params, 1)
	assert.Equal(t, "n", fact.Params[0].Name)
}

func TestParseLogicalOperators(t *testing.T) {
	globals := parse(t, "int main(){ return 1 && 0 || 1; }\n")
	fn := findFunc(t, globals, "main")
	ret := fn.Body[0].(*ast.ReturnStmt)
	or, ok := ret.Expr.(*ast.LogicalExpr)
	require.True(t, ok)
	assert.Equal(t, ast.LogOr, or.Op)
	and, ok := or.Left.(*ast.LogicalExpr)
	require.True(t, ok)
	assert.Equal(t, ast.LogAnd, and.Op)
}

func TestParseUndefinedVariableFails(t *testing.T) {
	_, err := parser.ParseFile("test.c", []byte("int main(){ return x; }\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "undefined variable")
}

func TestParseArrayAssignFails(t *testing.T) {
	// The parser layer only rejects assigning through an array-typed lvalue
	// (ast.Annotate's AssignExpr rule); a non-lvalue like "1=2" parses fine
	// here and is only caught later, in lang/codegen's genAddr (see
	// lang/codegen/codegen_test.go's TestGenerateNonLvalueAssignFails).
	_, err := parser.ParseFile("test.c", []byte("int main(){ int a[3]; a=a; return 0; }\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not an lvalue")
}

func TestParsePointerPlusPointerFails(t *testing.T) {
	_, err := parser.ParseFile("test.c", []byte("int main(){ int *p; int *q; return p+q; }\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid operands")
}

func TestParseMissingOperandFails(t *testing.T) {
	_, err := parser.ParseFile("test.c", []byte("int main(){ return 1+; }\n"))
	require.Error(t, err)
}

func TestParseTypedef(t *testing.T) {
	globals := parse(t, "typedef int myint; myint x;\n")
	require.Len(t, globals, 1)
	assert.Equal(t, "x", globals[0].Name)
	assert.Same(t, types.TypeInt, globals[0].Type)
}

func TestParseStaticFunctionNotExported(t *testing.T) {
	globals := parse(t, "static int helper() { return 1; } int main() { return helper(); }\n")
	helper := findFunc(t, globals, "helper")
	assert.True(t, helper.IsStatic)
	main := findFunc(t, globals, "main")
	assert.False(t, main.IsStatic)
}

func TestParseVoidReturn(t *testing.T) {
	globals := parse(t, "void f() { return; } int main() { f(); return 0; }\n")
	f := findFunc(t, globals, "f")
	ret := f.Body[0].(*ast.ReturnStmt)
	assert.Nil(t, ret.Expr)
}

func TestParsePointerDeclarator(t *testing.T) {
	// int (*p)[3] must be pointer-to-array-of-3-int, not array-of-3-pointer.
	globals := parse(t, "int main(){ int a[3]; int (*p)[3]; p=&a; return 0; }\n")
	fn := findFunc(t, globals, "main")
	require.Len(t, fn.Locals, 2)
	pType := fn.Locals[1].Type
	require.Equal(t, types.Ptr, pType.Kind)
	require.Equal(t, types.Array, pType.Base.Kind)
	assert.Equal(t, 3, pType.Base.Len)
}
