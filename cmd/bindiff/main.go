// Command bindiff is a small CLI over the diff metaformat, its algebra, and
// the bpk container format: sum and combine diffs, apply a diff to a
// source, and pack/unpack/list bpk archives.
package main

import (
	"fmt"
	"os"
)

var subcommands = map[string]func([]string) error{
	"sum":     runSum,
	"combine": runCombine,
	"apply":   runApply,
	"pack":    runPack,
	"unpack":  runUnpack,
	"list":    runList,
}

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}

	run, ok := subcommands[os.Args[1]]
	if !ok {
		fmt.Fprintf(os.Stderr, "bindiff: unknown subcommand %q\n", os.Args[1])
		usage()
		os.Exit(2)
	}

	if err := run(os.Args[2:]); err != nil {
		fmt.Fprintf(os.Stderr, "bindiff %s: %v\n", os.Args[1], err)
		os.Exit(1)
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, "usage: bindiff <sum|combine|apply|pack|unpack|list> [flags]")
}
