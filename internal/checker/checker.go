// Package checker implements Reyna's single-pass, lexically-scoped type
// checker. It walks the tree once, registering function/struct/class
// signatures as it goes and collapsing anything it cannot prove to the top
// type "any".
package checker

import (
	"fmt"

	"github.com/reyna-lang/reyna/internal/ast"
	"github.com/reyna-lang/reyna/internal/modules"
	"github.com/reyna-lang/reyna/internal/reynaerr"
)

const (
	TypeAny     = "any"
	TypeVoid    = "void"
	TypeInt64   = "int64"
	TypeFloat64 = "float64"
	TypeBool    = "bool"
	TypeString  = "string"
	TypeArray   = "array"
	TypeFn      = "fn"
)

type funcSig struct {
	params []string
	ret    string
}

type classInfo struct {
	superclass string
	methods    map[string]*funcSig
}

// Checker walks a Program once, recording the first TypeError it finds.
type Checker struct {
	scopes    []map[string]string
	functions map[string]*funcSig
	structs   map[string]map[string]string
	classes   map[string]*classInfo

	currentReturnType string
	currentClass      string

	resultType string

	// loader resolves import statements the same way the compiler does, so
	// an imported declaration is visible to the checker at the point its
	// import statement appears rather than only once bytecode compilation
	// inlines it.
	loader *modules.Loader

	Err *reynaerr.TypeError
}

// New creates a Checker with an empty global scope, resolving relative
// import paths against baseDir. Pass "." for source with no meaningful
// directory of its own.
func New(baseDir string) *Checker {
	return &Checker{
		scopes:    []map[string]string{{}},
		functions: map[string]*funcSig{},
		structs:   map[string]map[string]string{},
		classes:   map[string]*classInfo{},
		loader:    modules.New(baseDir),
	}
}

// Check type-checks every top-level statement in order, aborting at the
// first type error. It returns false if checking failed; the error is
// available as c.Err.
func (c *Checker) Check(prog *ast.Program) (ok bool) {
	defer func() {
		if r := recover(); r != nil {
			if te, isTypeErr := r.(*reynaerr.TypeError); isTypeErr {
				c.Err = te
				ok = false
				return
			}
			panic(r)
		}
	}()

	for _, stmt := range prog.Statements {
		c.visitStmt(stmt)
	}
	return true
}

func (c *Checker) fail(format string, args ...interface{}) {
	panic(&reynaerr.TypeError{Msg: fmt.Sprintf(format, args...)})
}

func (c *Checker) beginScope() { c.scopes = append(c.scopes, map[string]string{}) }
func (c *Checker) endScope()   { c.scopes = c.scopes[:len(c.scopes)-1] }

func (c *Checker) declare(name, typ string) {
	scope := c.scopes[len(c.scopes)-1]
	if _, exists := scope[name]; exists {
		c.fail("variable '%s' already declared in this scope", name)
	}
	scope[name] = typ
}

func (c *Checker) resolve(name string) (string, bool) {
	for i := len(c.scopes) - 1; i >= 0; i-- {
		if t, ok := c.scopes[i][name]; ok {
			return t, true
		}
	}
	return "", false
}

// isNumeric reports whether t is one of the two builtin numeric types.
func isNumeric(t string) bool { return t == TypeInt64 || t == TypeFloat64 }

// widens reports whether a value of type from may be used where a value of
// type to is expected: identical types always widen, and int64 widens to
// float64.
func widens(from, to string) bool {
	return from == to || (to == TypeFloat64 && from == TypeInt64)
}
