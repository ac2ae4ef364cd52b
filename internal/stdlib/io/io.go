// Package io builds O²L's `io` host object: print and input. input() uses
// github.com/mattn/go-isatty to skip writing its prompt when the output
// stream is an *os.File that isn't a terminal (a redirected file or pipe);
// any other io.Writer always gets the prompt.
package io

import (
	"bufio"
	"fmt"
	stdio "io"
	"os"
	"strings"

	"github.com/mattn/go-isatty"

	"github.com/zombocoder/o2l/internal/eval"
	"github.com/zombocoder/o2l/internal/object"
	"github.com/zombocoder/o2l/internal/rterror"
	"github.com/zombocoder/o2l/internal/value"
)

// New builds the `io` host object against the given output/input streams
// (os.Stdout/os.Stdin in production, swappable in tests).
func New(out stdio.Writer, in stdio.Reader) *object.HostObject {
	reader := bufio.NewReader(in)
	h := object.NewHostObject("io")

	h.Register("print", func(args []value.Value) (value.Value, *rterror.Error) {
		if len(args) == 0 {
			fmt.Fprintln(out)
			return value.Nil, nil
		}
		formatStr, ok := args[0].(value.Text)
		if !ok {
			return nil, rterror.RequiresArgs("io", "print", "a Text format string as the first argument")
		}
		rendered := eval.FormatPrint(string(formatStr), args[1:])
		fmt.Fprintln(out, rendered)
		return value.Nil, nil
	})

	h.Register("input", func(args []value.Value) (value.Value, *rterror.Error) {
		if len(args) > 0 {
			if prompt, ok := args[0].(value.Text); ok {
				if f, isFile := out.(*os.File); !isFile || isatty.IsTerminal(f.Fd()) {
					fmt.Fprint(out, string(prompt))
				}
			}
		}
		line, err := reader.ReadString('\n')
		if err != nil && line == "" {
			return value.Text(""), nil
		}
		return value.Text(strings.TrimRight(line, "\r\n")), nil
	})

	return h
}
