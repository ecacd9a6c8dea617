package main

import (
	"fmt"
	"os"

	"github.com/atotto/clipboard"

	"github.com/gavrilikhin-d/libos/internal/cli"
	"github.com/gavrilikhin-d/libos/internal/config"
	"github.com/gavrilikhin-d/libos/internal/fsio"
	"github.com/gavrilikhin-d/libos/internal/ui"
	"github.com/gavrilikhin-d/libos/internal/version"
)

func main() {
	cfg, err := cli.ParseUpdateVersion()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	root := cfg.Root
	if root == "" {
		root = fsio.FindRoot(".")
	}
	fs := fsio.NewOSFS(root)

	conf, err := config.Load(fs, config.FileName)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	stamper := version.New(fs, version.Options{
		Header:     conf.VersionHeader,
		Doxyfile:   conf.Doxyfile,
		SphinxConf: conf.SphinxConf,
	})

	v, err := stamper.Extract()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	fmt.Println(v)

	if cfg.Copy {
		if err := clipboard.WriteAll(v); err != nil {
			ui.Warning("Could not copy version to clipboard: %v", err)
		}
	}

	if cfg.PrintOnly {
		return
	}

	changed, err := stamper.Stamp(v)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	ui.PrintStampSummary(v, changed)
}
