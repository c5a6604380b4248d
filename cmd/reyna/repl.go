package main

import (
	"bufio"
	"fmt"
	"os"

	"github.com/mattn/go-isatty"

	"github.com/reyna-lang/reyna/internal/config"
	"github.com/reyna-lang/reyna/pkg/embed"
)

// runREPL reads lines from stdin and runs each one as its own script, the
// way the reference implementation's REPL does: no state survives from one
// line to the next. "exit" quits; EOF quits silently.
func runREPL() {
	interactive := isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd())

	if interactive {
		fmt.Printf("Reyna %s\n", config.Version)
	}

	scanner := bufio.NewScanner(os.Stdin)
	for {
		if interactive {
			fmt.Print("> ")
		}
		if !scanner.Scan() {
			return
		}
		line := scanner.Text()
		if line == "exit" {
			return
		}
		if line == "" {
			continue
		}
		if _, err := embed.Run(line, "."); err != nil {
			fmt.Println(err)
		}
	}
}
