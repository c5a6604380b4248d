// Package embed is Reyna's host-embedding surface: everything a Go program
// needs to compile and run a Reyna script without shelling out to the CLI.
package embed

import (
	"fmt"
	"path/filepath"

	"github.com/reyna-lang/reyna/internal/checker"
	"github.com/reyna-lang/reyna/internal/lexer"
	"github.com/reyna-lang/reyna/internal/parser"
	"github.com/reyna-lang/reyna/internal/stdlib"
	"github.com/reyna-lang/reyna/internal/vm"
)

// Result reports how far a Run got, the way the teacher's backend reports
// OK/COMPILE_ERROR/RUNTIME_ERROR to its caller instead of just an error.
type Result int

const (
	OK Result = iota
	CompileError
	RuntimeError
)

// NewVM creates a VM with every stdlib native already registered, ready for
// Compile's output to be handed to Interpret, or for a host to add its own
// globals with DefineGlobal before running.
func NewVM() *vm.VM {
	machine := vm.New()
	stdlib.Register(machine)
	return machine
}

// Compile lexes, parses, type-checks, and compiles source into a callable
// top-level function. baseDir resolves relative import paths in `import`
// statements; pass the directory containing the source file, or "." for
// in-memory source with no imports.
func Compile(source, baseDir string) (*vm.ObjFunction, error) {
	lx := lexer.New(source)
	tokens := lx.ScanTokens()
	if len(lx.Errors) > 0 {
		return nil, lx.Errors[0]
	}

	p := parser.New(tokens)
	prog := p.Parse()
	if len(p.Errors) > 0 {
		return nil, p.Errors[0]
	}

	c := checker.New(baseDir)
	if ok := c.Check(prog); !ok {
		return nil, c.Err
	}

	fn, err := vm.Compile(prog, baseDir)
	if err != nil {
		return nil, err
	}
	return fn, nil
}

// Run compiles and executes source against a fresh VM with the stdlib
// registered, reporting which stage failed if any did.
func Run(source, baseDir string) (Result, error) {
	fn, err := Compile(source, baseDir)
	if err != nil {
		return CompileError, err
	}

	machine := NewVM()
	if err := machine.Interpret(fn); err != nil {
		return RuntimeError, err
	}
	return OK, nil
}

// RunFile is Run, resolving baseDir from path's directory.
func RunFile(path string, source string) (Result, error) {
	return Run(source, filepath.Dir(path))
}

// Check lexes, parses, and type-checks source without compiling or running
// it, for the CLI's --check flag. baseDir resolves relative import paths
// the same way Compile does, so a script that imports another file is
// checked against that file's actual declarations.
func Check(source, baseDir string) error {
	lx := lexer.New(source)
	tokens := lx.ScanTokens()
	if len(lx.Errors) > 0 {
		return lx.Errors[0]
	}

	p := parser.New(tokens)
	prog := p.Parse()
	if len(p.Errors) > 0 {
		return p.Errors[0]
	}

	c := checker.New(baseDir)
	if ok := c.Check(prog); !ok {
		return c.Err
	}
	return nil
}

// describeResult renders a Result for diagnostic output; hosts reach it
// through Result.String.
func describeResult(r Result) string {
	switch r {
	case OK:
		return "ok"
	case CompileError:
		return "compile error"
	case RuntimeError:
		return "runtime error"
	default:
		return fmt.Sprintf("result(%d)", int(r))
	}
}

// String renders a Result the way fmt.Stringer expects.
func (r Result) String() string { return describeResult(r) }
