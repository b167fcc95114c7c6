package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/cocosip/bindiff/algebra"
	"github.com/cocosip/bindiff/stream"
)

func runSum(args []string) error {
	fs := flag.NewFlagSet("sum", flag.ExitOnError)
	d1Path := fs.String("d1", "", "path to the first diff")
	d2Path := fs.String("d2", "", "path to the second diff, applied after d1")
	outPath := fs.String("out", "", "path to write the summed diff (default: stdout)")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *d1Path == "" || *d2Path == "" {
		return fmt.Errorf("sum: -d1 and -d2 are required")
	}

	f1, err := os.Open(*d1Path)
	if err != nil {
		return err
	}
	defer f1.Close()
	f2, err := os.Open(*d2Path)
	if err != nil {
		return err
	}
	defer f2.Close()

	out, closeOut, err := openOutput(*outPath)
	if err != nil {
		return err
	}
	defer closeOut()

	return algebra.Sum(out, stream.New(f1), stream.New(f2))
}
