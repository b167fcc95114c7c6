package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/cocosip/bindiff/container"
)

func runUnpack(args []string) error {
	fs := flag.NewFlagSet("unpack", flag.ExitOnError)
	archivePath := fs.String("archive", "", "path to the bpk archive")
	outDir := fs.String("out", ".", "directory to write each entry's diff into")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *archivePath == "" {
		return fmt.Errorf("unpack: -archive is required")
	}

	f, err := os.Open(*archivePath)
	if err != nil {
		return err
	}
	defer f.Close()

	r, err := container.NewReader(f)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(*outDir, 0o755); err != nil {
		return err
	}

	for {
		entry, data, err := r.Next()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return err
		}
		dst := filepath.Join(*outDir, entry.Name)
		if err := os.WriteFile(dst, data, 0o644); err != nil {
			return fmt.Errorf("unpack: writing %s: %w", dst, err)
		}
		fmt.Printf("unpacked %s (%d bytes)\n", dst, len(data))
	}
}
