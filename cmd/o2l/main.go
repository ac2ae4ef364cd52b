// Command o2l is the O²L launcher: locate the entry .obq file,
// bootstrap the stdlib host objects, populate __program_args__, invoke
// Main.main(), and exit with its result.
package main

import (
	"fmt"
	"os"

	"github.com/zombocoder/o2l/internal/cli"
)

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(argv []string) int {
	if len(argv) == 0 {
		fmt.Fprintln(os.Stderr, "usage: o2l <file.obq|dir> [program args...]")
		return 2
	}

	target := argv[0]
	programArgs := argv[1:]

	entryPath, manifest, err := cli.ResolveEntry(target)
	if err != nil {
		fmt.Fprintln(os.Stderr, "o2l: "+err.Error())
		return 1
	}

	return cli.Run(entryPath, manifest, programArgs, os.Stdout, os.Stderr)
}
