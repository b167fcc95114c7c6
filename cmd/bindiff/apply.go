package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/cocosip/bindiff/apply"
	"github.com/cocosip/bindiff/stream"
)

func runApply(args []string) error {
	fs := flag.NewFlagSet("apply", flag.ExitOnError)
	srcPath := fs.String("src", "", "path to the source file")
	diffPath := fs.String("diff", "", "path to the diff")
	outPath := fs.String("out", "", "path to write the result (default: stdout)")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *srcPath == "" || *diffPath == "" {
		return fmt.Errorf("apply: -src and -diff are required")
	}

	src, err := os.Open(*srcPath)
	if err != nil {
		return err
	}
	defer src.Close()
	d, err := os.Open(*diffPath)
	if err != nil {
		return err
	}
	defer d.Close()

	out, closeOut, err := openOutput(*outPath)
	if err != nil {
		return err
	}
	defer closeOut()

	return apply.Apply(out, src, stream.New(d))
}

// openOutput returns w writing to path, or stdout if path is empty, along
// with a close func safe to defer unconditionally.
func openOutput(path string) (w *os.File, closeFn func() error, err error) {
	if path == "" {
		return os.Stdout, func() error { return nil }, nil
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, nil, err
	}
	return f, f.Close, nil
}
