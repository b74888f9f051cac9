// Package maincmd implements the command-line entry point, kept as an
// external collaborator per spec.md §1 ("Out of scope as external
// collaborators": CLI entry, argument handling, file I/O). It follows the
// teacher's internal/maincmd shape closely: a Cmd struct with flag-tagged
// fields parsed by mna/mainer, a reflection-based dispatch table
// (buildCmds) for named subcommands, and a default action when no
// subcommand is given.
package maincmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"reflect"
	"strings"

	"github.com/caarlos0/env/v6"
	"github.com/mna/mainer"
)

const binName = "minic"

var (
	shortUsage = fmt.Sprintf(`
usage: %s [ -o <path> ] <file>
       %[1]s tokens|ast <file>
Run '%[1]s --help' for details.
`, binName)

	longUsage = fmt.Sprintf(`usage: %s [ -o <path> ] <file>
       %[1]s tokens|ast <file>
       %[1]s -h|--help

Compiles a subset of C to x86-64 System V assembly. <file> may be "-" to
read the translation unit from standard input.

The <command> can be one of:
       tokens                    Print the scanner's token stream instead
                                 of compiling.
       ast                       Print the parsed abstract syntax tree
                                 instead of compiling.

Valid flag options are:
       -h --help                 Show this help and exit.
       -o <path>                 Write assembly to <path> instead of
                                 standard output.

Environment variables (all optional, MINIC_ prefixed):
       MINIC_EMIT_LOC            Emit ".loc" debug directives usable by
                                 an assembler to produce DWARF line tables.
`, binName)
)

// envConfig holds the optional environment-variable overrides read with
// caarlos0/env, per SPEC_FULL.md §3's AMBIENT STACK.
type envConfig struct {
	EmitLoc bool `env:"MINIC_EMIT_LOC" envDefault:"false"`
}

// Cmd is the top-level command, populated by mainer.Parser from os.Args.
type Cmd struct {
	BuildVersion string
	BuildDate    string

	Help   bool   `flag:"h,help"`
	Output string `flag:"o,output"`

	args  []string
	cmdFn func(context.Context, mainer.Stdio, []string) error
}

func (c *Cmd) SetArgs(args []string) { c.args = args }

func (c *Cmd) SetFlags(flags map[string]bool) {}

func (c *Cmd) Validate() error {
	if c.Help {
		return nil
	}
	if len(c.args) == 0 {
		return errors.New("no input file specified")
	}

	if cmdFn, ok := buildCmds(c)[c.args[0]]; ok {
		if len(c.args) < 2 {
			return fmt.Errorf("%s: an input file must be provided", c.args[0])
		}
		c.cmdFn = cmdFn
		return nil
	}

	if len(c.args) != 1 {
		return errors.New("expected exactly one input file")
	}
	return nil
}

func (c *Cmd) Main(args []string, stdio mainer.Stdio) mainer.ExitCode {
	p := mainer.Parser{EnvVars: false, EnvPrefix: strings.ToUpper(binName) + "_"}
	if err := p.Parse(args, c); err != nil {
		fmt.Fprintf(stdio.Stderr, "invalid arguments: %s\n%s", err, shortUsage)
		return mainer.InvalidArgs
	}

	if c.Help {
		fmt.Fprint(stdio.Stdout, longUsage)
		return mainer.Success
	}

	var cfg envConfig
	if err := env.Parse(&cfg); err != nil {
		fmt.Fprintf(stdio.Stderr, "invalid environment: %s\n", err)
		return mainer.InvalidArgs
	}

	ctx := mainer.CancelOnSignal(context.Background(), os.Interrupt)

	if c.cmdFn != nil {
		if err := c.cmdFn(ctx, stdio, c.args[1:]); err != nil {
			fmt.Fprintf(stdio.Stderr, "%s\n", err)
			return mainer.Failure
		}
		return mainer.Success
	}

	if err := c.compile(stdio, c.args[0], cfg); err != nil {
		fmt.Fprintf(stdio.Stderr, "%s\n", err)
		return mainer.Failure
	}
	return mainer.Success
}

// buildCmds mirrors the teacher's reflection-based dispatch: any exported
// method matching the (context.Context, mainer.Stdio, []string) error
// signature becomes a named subcommand, keyed by its lowercased name.
func buildCmds(v interface{}) map[string]func(context.Context, mainer.Stdio, []string) error {
	cmds := make(map[string]func(context.Context, mainer.Stdio, []string) error)

	vv := reflect.ValueOf(v)
	vt := vv.Type()
	for i := 0; i < vt.NumMethod(); i++ {
		m := vt.Method(i)
		mt := m.Type

		if mt.NumIn() != 4 || mt.NumOut() != 1 {
			continue
		}
		if rt := mt.Out(0); rt.Kind() != reflect.Interface || rt.Name() != "error" {
			continue
		}
		if p0 := mt.In(0); p0.Kind() != reflect.Ptr || p0.Elem().Name() != "Cmd" {
			continue
		}
		if p1 := mt.In(1); p1.Kind() != reflect.Interface || p1.Name() != "Context" {
			continue
		}
		if p2 := mt.In(2); p2.Kind() != reflect.Struct || p2.Name() != "Stdio" {
			continue
		}
		if p3 := mt.In(3); p3.Kind() != reflect.Slice || p3.Elem().Name() != "string" {
			continue
		}
		cmds[strings.ToLower(m.Name)] = vv.Method(i).Interface().(func(context.Context, mainer.Stdio, []string) error)
	}
	return cmds
}
