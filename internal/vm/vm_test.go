package vm

import (
	"bytes"
	"testing"

	"github.com/reyna-lang/reyna/internal/checker"
	"github.com/reyna-lang/reyna/internal/lexer"
	"github.com/reyna-lang/reyna/internal/parser"
)

// compile lexes, parses, type-checks, and compiles input, the way
// pkg/embed.Compile does, failing the test at whichever stage goes wrong.
func compile(t *testing.T, input string) *ObjFunction {
	t.Helper()

	lx := lexer.New(input)
	tokens := lx.ScanTokens()
	if len(lx.Errors) > 0 {
		t.Fatalf("lex error: %s", lx.Errors[0].Error())
	}

	p := parser.New(tokens)
	prog := p.Parse()
	if len(p.Errors) > 0 {
		t.Fatalf("parse error: %s", p.Errors[0].Error())
	}

	c := checker.New(".")
	if ok := c.Check(prog); !ok {
		t.Fatalf("type error: %s", c.Err.Error())
	}

	fn, err := Compile(prog, ".")
	if err != nil {
		t.Fatalf("compile error: %s", err)
	}
	return fn
}

// run compiles and interprets input against a fresh VM, returning everything
// it printed. It fails the test on a runtime error.
func run(t *testing.T, input string) string {
	t.Helper()

	fn := compile(t, input)
	machine := New()
	var out bytes.Buffer
	machine.SetOutput(&out)
	if err := machine.Interpret(fn); err != nil {
		t.Fatalf("runtime error: %s", err)
	}
	return out.String()
}

// runErr is like run but expects a runtime error and returns it instead of
// failing the test.
func runErr(t *testing.T, input string) error {
	t.Helper()

	fn := compile(t, input)
	machine := New()
	var out bytes.Buffer
	machine.SetOutput(&out)
	return machine.Interpret(fn)
}

func TestArithmeticIntegerDivisionTruncatesTowardZero(t *testing.T) {
	out := run(t, `print 7 / 2; print -7 / 2;`)
	if out != "3\n-3\n" {
		t.Errorf("got %q", out)
	}
}

func TestArithmeticFloatWideningOnMixedOperands(t *testing.T) {
	out := run(t, `print 7 / 2.0; print 1 + 1.5;`)
	if out != "3.5\n2.5\n" {
		t.Errorf("got %q", out)
	}
}

func TestArithmeticIntegerStaysIntegerWhenBothOperandsAreInt(t *testing.T) {
	out := run(t, `print 3 * 4; print 10 - 3;`)
	if out != "12\n7\n" {
		t.Errorf("got %q", out)
	}
}

func TestWhileLoop(t *testing.T) {
	out := run(t, `
		let i: int64 = 0;
		while (i < 3) {
			print i;
			i = i + 1;
		}
	`)
	if out != "0\n1\n2\n" {
		t.Errorf("got %q", out)
	}
}

func TestForLoopDesugarsToWhile(t *testing.T) {
	out := run(t, `
		for (let i: int64 = 0; i < 3; i = i + 1) {
			print i;
		}
	`)
	if out != "0\n1\n2\n" {
		t.Errorf("got %q", out)
	}
}

func TestIfElseChain(t *testing.T) {
	out := run(t, `
		let x: int64 = 2;
		if (x == 1) {
			print "one";
		} else if (x == 2) {
			print "two";
		} else {
			print "other";
		}
	`)
	if out != "two\n" {
		t.Errorf("got %q", out)
	}
}

func TestClosureCapturesByReference(t *testing.T) {
	out := run(t, `
		fn makeCounter() -> fn {
			let count: int64 = 0;
			fn increment() -> int64 {
				count = count + 1;
				return count;
			}
			return increment;
		}
		let counter = makeCounter();
		print counter();
		print counter();
		print counter();
	`)
	if out != "1\n2\n3\n" {
		t.Errorf("got %q", out)
	}
}

func TestClassInheritanceAndSuper(t *testing.T) {
	out := run(t, `
		class Animal {
			fn speak() -> string {
				return "...";
			}
			fn describe() -> string {
				return "an animal that says " + this.speak();
			}
		}
		class Dog < Animal {
			fn speak() -> string {
				return "woof";
			}
			fn greet() -> string {
				return super.describe();
			}
		}
		let d = Dog();
		print d.greet();
	`)
	if out != "an animal that says woof\n" {
		t.Errorf("got %q", out)
	}
}

func TestArrayIndexingAndAssignment(t *testing.T) {
	out := run(t, `
		let xs = [1, 2, 3];
		xs[1] = 20;
		print xs[0];
		print xs[1];
		print xs[2];
	`)
	if out != "1\n20\n3\n" {
		t.Errorf("got %q", out)
	}
}

func TestArrayOutOfBoundsIsRuntimeError(t *testing.T) {
	err := runErr(t, `
		let xs = [1, 2, 3];
		print xs[5];
	`)
	if err == nil {
		t.Fatal("expected a runtime error for out-of-bounds index")
	}
}

func TestTryCatchFinally(t *testing.T) {
	out := run(t, `
		try {
			throw "boom";
		} catch (e) {
			print "caught: " + e;
		} finally {
			print "cleanup";
		}
	`)
	if out != "caught: boom\ncleanup\n" {
		t.Errorf("got %q", out)
	}
}

func TestTryFinallyRunsWithoutException(t *testing.T) {
	out := run(t, `
		try {
			print "body";
		} catch (e) {
			print "unreached";
		} finally {
			print "cleanup";
		}
	`)
	if out != "body\ncleanup\n" {
		t.Errorf("got %q", out)
	}
}

func TestMatchExpression(t *testing.T) {
	out := run(t, `
		let x: int64 = 2;
		let result = match x {
			1 => "one",
			2 => "two",
			_ => "other",
		};
		print result;
	`)
	if out != "two\n" {
		t.Errorf("got %q", out)
	}
}

func TestMatchEvaluatesSubjectOnce(t *testing.T) {
	out := run(t, `
		let calls: int64 = 0;
		fn subject() -> int64 {
			calls = calls + 1;
			return 2;
		}
		let result = match subject() {
			1 => "one",
			2 => "two",
			_ => "other",
		};
		print result;
		print calls;
	`)
	if out != "two\n1\n" {
		t.Errorf("got %q", out)
	}
}

func TestMatchGuardFallsThroughToNextArmWhenFalse(t *testing.T) {
	out := run(t, `
		let x: int64 = 2;
		let result = match x {
			n if n > 5 => "big",
			n if n > 0 => "small positive",
			_ => "other",
		};
		print result;
	`)
	if out != "small positive\n" {
		t.Errorf("got %q", out)
	}
}

func TestMatchGuardOnWildcardArm(t *testing.T) {
	out := run(t, `
		let flag: bool = false;
		let result = match 1 {
			_ if flag => "enabled",
			_ => "disabled",
		};
		print result;
	`)
	if out != "disabled\n" {
		t.Errorf("got %q", out)
	}
}

func TestClassDeclaredInsideFunctionDoesNotCorruptLocals(t *testing.T) {
	out := run(t, `
		fn f() -> int64 {
			class A {
				fn m() -> int64 { return 1; }
			}
			let x: int64 = 42;
			return x;
		}
		print f();
	`)
	if out != "42\n" {
		t.Errorf("got %q", out)
	}
}

func TestStructFieldAssignmentAndAccess(t *testing.T) {
	out := run(t, `
		struct Point {
			x: int64;
			y: int64;
		}
		let p = Point();
		p.x = 1;
		p.y = 2;
		print p.x;
		print p.y;
	`)
	if out != "1\n2\n" {
		t.Errorf("got %q", out)
	}
}

func TestUndefinedGlobalAssignmentIsRuntimeError(t *testing.T) {
	err := runErr(t, `undeclared = 1;`)
	if err == nil {
		t.Fatal("expected a runtime error assigning to an undeclared global")
	}
}
