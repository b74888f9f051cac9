package maincmd

import (
	"context"
	"fmt"

	"github.com/mna/mainer"

	"github.com/mna/minic/internal/sourcefile"
	"github.com/mna/minic/lang/ast"
	"github.com/mna/minic/lang/parser"
)

// Ast implements the "minic ast <file>" debugging subcommand: run the
// parser alone and print the resulting top-level Obj list, grounded on the
// teacher's Parse subcommand.
func (c *Cmd) Ast(ctx context.Context, stdio mainer.Stdio, args []string) error {
	path := args[0]
	src, err := sourcefile.Read(path, stdio.Stdin)
	if err != nil {
		return err
	}
	filename := sourcefile.DisplayName(path)

	globals, err := parser.ParseFile(filename, src)
	if err != nil {
		return err
	}
	for _, obj := range globals {
		printObj(stdio, obj, 0)
	}
	return nil
}

func printObj(stdio mainer.Stdio, obj *ast.Obj, depth int) {
	if obj.IsFunction {
		fmt.Fprintf(stdio.Stdout, "func %s %s (definition=%v, static=%v)\n",
			obj.Name, obj.Type.Kind, obj.IsDefinition, obj.IsStatic)
		for _, s := range obj.Body {
			printStmt(stdio, s, depth+1)
		}
		return
	}
	fmt.Fprintf(stdio.Stdout, "var %s %s (static=%v)\n", obj.Name, obj.Type.Kind, obj.IsStatic)
}

func printStmt(stdio mainer.Stdio, s ast.Stmt, depth int) {
	fmt.Fprintf(stdio.Stdout, "%*s%T\n", depth*2, "", s)
}
