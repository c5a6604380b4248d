package stdlib

import (
	"bufio"
	"os"
	"strings"
	"sync"

	"github.com/reyna-lang/reyna/internal/reynaerr"
	"github.com/reyna-lang/reyna/internal/vm"
)

// stdinReader is shared across calls so readLine-style natives don't lose
// buffered input between invocations, matching the teacher's io builtins.
var (
	stdinReader     *bufio.Reader
	stdinReaderOnce sync.Once
)

func getStdinReader() *bufio.Reader {
	stdinReaderOnce.Do(func() { stdinReader = bufio.NewReader(os.Stdin) })
	return stdinReader
}

func ioBuiltins() map[string]vm.NativeFn {
	return map[string]vm.NativeFn{
		"input": func(machine *vm.VM, args []vm.Value) (vm.Value, error) {
			if len(args) != 0 {
				return vm.Value{}, arityError("input", 0, len(args))
			}
			line, err := getStdinReader().ReadString('\n')
			if err != nil && line == "" {
				return vm.NilVal(), nil
			}
			return vm.ObjVal(machine.NewString(strings.TrimRight(line, "\r\n"))), nil
		},

		"read_file": func(machine *vm.VM, args []vm.Value) (vm.Value, error) {
			if len(args) != 1 {
				return vm.Value{}, arityError("read_file", 1, len(args))
			}
			path, err := argString("read_file", args, 0)
			if err != nil {
				return vm.Value{}, err
			}
			data, readErr := os.ReadFile(path)
			if readErr != nil {
				return vm.Value{}, &reynaerr.RuntimeError{Msg: "read_file: " + readErr.Error()}
			}
			return vm.ObjVal(machine.NewString(string(data))), nil
		},

		"write_file": func(_ *vm.VM, args []vm.Value) (vm.Value, error) {
			if len(args) != 2 {
				return vm.Value{}, arityError("write_file", 2, len(args))
			}
			path, err := argString("write_file", args, 0)
			if err != nil {
				return vm.Value{}, err
			}
			content, err := argString("write_file", args, 1)
			if err != nil {
				return vm.Value{}, err
			}
			if writeErr := os.WriteFile(path, []byte(content), 0o644); writeErr != nil {
				return vm.Value{}, &reynaerr.RuntimeError{Msg: "write_file: " + writeErr.Error()}
			}
			return vm.BoolVal(true), nil
		},
	}
}
