// Command reyna is the Reyna language CLI: run a script file, type-check it
// without running it, or drop into an interactive REPL with no file given.
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/reyna-lang/reyna/internal/config"
	"github.com/reyna-lang/reyna/pkg/embed"
)

// exDataErr mirrors the BSD sysexits.h convention the teacher's CLI already
// leans on for its own exit codes: 65 means the input data was bad, not the
// invocation.
const exDataErr = 65

func main() {
	args := os.Args[1:]

	if len(args) >= 1 && (args[0] == "-help" || args[0] == "--help") {
		printUsage()
		return
	}
	if len(args) >= 1 && (args[0] == "-version" || args[0] == "--version") {
		fmt.Println("reyna " + config.Version)
		return
	}

	checkOnly := false
	var path string
	for _, arg := range args {
		switch arg {
		case "--check":
			checkOnly = true
		default:
			if path == "" {
				path = arg
			}
		}
	}

	if path == "" {
		runREPL()
		return
	}

	source, err := os.ReadFile(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "reyna: %s\n", err)
		os.Exit(1)
	}

	if checkOnly {
		if err := embed.Check(string(source), filepath.Dir(path)); err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(exDataErr)
		}
		return
	}

	if _, err := embed.RunFile(path, string(source)); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println("usage: reyna [--check] [script.reyna]")
	fmt.Println()
	fmt.Println("  --check        type-check the script without running it")
	fmt.Println("  (no script)    start the interactive REPL")
}
