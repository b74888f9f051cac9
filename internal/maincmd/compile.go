package maincmd

import (
	"os"

	"github.com/mna/mainer"

	"github.com/mna/minic/internal/sourcefile"
	"github.com/mna/minic/lang/codegen"
	"github.com/mna/minic/lang/parser"
)

// compile runs the full scanner → parser → codegen pipeline against path,
// writing assembly to c.Output (or standard output if empty), per spec.md
// §6's CLI/external-interfaces contract.
func (c *Cmd) compile(stdio mainer.Stdio, path string, cfg envConfig) error {
	src, err := sourcefile.Read(path, stdio.Stdin)
	if err != nil {
		return err
	}

	filename := sourcefile.DisplayName(path)
	globals, err := parser.ParseFile(filename, src)
	if err != nil {
		return err
	}

	out := stdio.Stdout
	if c.Output != "" && c.Output != "-" {
		f, err := os.Create(c.Output)
		if err != nil {
			return err
		}
		defer f.Close()
		out = f
	}

	return codegen.Generate(out, filename, string(src), globals, codegen.Config{EmitLoc: cfg.EmitLoc})
}
