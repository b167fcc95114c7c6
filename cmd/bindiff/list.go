package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/cocosip/bindiff/container"
)

func runList(args []string) error {
	fs := flag.NewFlagSet("list", flag.ExitOnError)
	archivePath := fs.String("archive", "", "path to the bpk archive")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *archivePath == "" {
		return fmt.Errorf("list: -archive is required")
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

	for _, e := range r.Entries() {
		fmt.Printf("%s\t%s\t%d -> %d bytes\n", e.ID, e.Name, e.UncompressedSize, e.CompressedSize)
	}
	return nil
}
