package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"github.com/cocosip/bindiff/container"
)

func runPack(args []string) error {
	fs := flag.NewFlagSet("pack", flag.ExitOnError)
	outPath := fs.String("out", "", "path to write the bpk archive")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *outPath == "" {
		return fmt.Errorf("pack: -out is required")
	}
	diffPaths := fs.Args()
	if len(diffPaths) == 0 {
		return fmt.Errorf("pack: at least one diff file is required")
	}

	entries := make([]container.PackEntry, 0, len(diffPaths))
	for _, p := range diffPaths {
		f, err := os.Open(p)
		if err != nil {
			return err
		}
		defer f.Close()
		entries = append(entries, container.PackEntry{Name: filepath.Base(p), Diff: f})
	}

	out, err := os.Create(*outPath)
	if err != nil {
		return err
	}
	defer out.Close()

	return container.Pack(out, entries)
}
