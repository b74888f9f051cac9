package maincmd

import (
	"context"
	"fmt"

	"github.com/mna/mainer"

	"github.com/mna/minic/internal/sourcefile"
	"github.com/mna/minic/lang/diag"
	"github.com/mna/minic/lang/scanner"
	"github.com/mna/minic/lang/token"
)

// Tokens implements the "minic tokens <file>" debugging subcommand,
// grounded on the teacher's Tokenize subcommand: run the scanner alone and
// print its output, one token per line.
func (c *Cmd) Tokens(ctx context.Context, stdio mainer.Stdio, args []string) (err error) {
	defer diag.Recover(&err)

	path := args[0]
	src, err := sourcefile.Read(path, stdio.Stdin)
	if err != nil {
		return err
	}
	filename := sourcefile.DisplayName(path)

	head := scanner.Lex(filename, src)
	for t := head; t != nil; t = t.Next {
		printToken(stdio, t)
	}
	return nil
}

func printToken(stdio mainer.Stdio, t *token.Token) {
	fmt.Fprintf(stdio.Stdout, "%d:%s", t.Line, t.Kind)
	if t.Kind != token.EOF {
		fmt.Fprintf(stdio.Stdout, " %q", t.Text)
	}
	fmt.Fprintln(stdio.Stdout)
}
