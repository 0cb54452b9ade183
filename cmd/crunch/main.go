// SPDX-License-Identifier: Unlicense OR MIT

// Command crunch packs a set of PNG images into one or more texture atlas
// pages plus a metadata manifest.
//
// Usage:
//
//	crunch <OUTPUT> <INPUT1[,INPUT2,...]> [OPTIONS]
package main

import (
	"fmt"
	"io"
	"log"
	"os"
	"strconv"

	"github.com/MoonsideGames/crunch/internal/bitmap"
	"github.com/MoonsideGames/crunch/internal/config"
	"github.com/MoonsideGames/crunch/internal/crunchutil"
	"github.com/MoonsideGames/crunch/internal/discover"
	"github.com/MoonsideGames/crunch/internal/manifest"
	"github.com/MoonsideGames/crunch/internal/pipeline"
)

func main() {
	if err := run(os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "crunch: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string) error {
	cfg, err := config.ParseArgs(args)
	if err != nil {
		return err
	}

	logger := log.New(io.Discard, "", 0)
	if cfg.Verbose {
		logger = log.New(os.Stderr, "", 0)
	}

	sources, err := discover.Walk(cfg.Inputs, cfg.Output)
	if err != nil {
		return err
	}

	fingerprint, err := manifest.ComputeFingerprint(args, sources)
	if err != nil {
		return err
	}

	hashPath := cfg.Output + ".hash"
	noop, err := manifest.CheckGate(hashPath, fingerprint, cfg.Force)
	if err != nil {
		return err
	}
	if noop {
		fmt.Println("atlas is unchanged")
		return nil
	}

	if err := manifest.CleanOutputs(cfg.Output); err != nil {
		return err
	}

	logger.Printf("loading %d source image(s)", len(sources))
	bitmaps, err := bitmap.LoadAll(sources, cfg.Premultiply, cfg.Trim)
	if err != nil {
		return err
	}

	pages, err := pipeline.Run(bitmaps, cfg.PageSize, cfg.PageSize, cfg.Padding, cfg.Rotate, cfg.Unique)
	if err != nil {
		return err
	}
	logger.Printf("packed %d bitmap(s) onto %d page(s)", len(bitmaps), len(pages))

	for i, pg := range pages {
		page := pg.Packer.Render(pg.Bitmaps)
		path := cfg.Output + strconv.Itoa(i) + ".png"
		if err := manifest.WritePagePNG(path, page); err != nil {
			return err
		}
		logger.Printf("wrote %s", path)
	}

	m := manifest.Build(pages, cfg.Output, cfg.Trim)
	if err := writeManifests(cfg, m); err != nil {
		return err
	}

	if err := manifest.WriteFingerprint(hashPath, fingerprint); err != nil {
		return err
	}
	return nil
}

func writeManifests(cfg *config.Config, m manifest.Manifest) error {
	if cfg.XML {
		if err := writeManifestFile(cfg.Output+".xml", func(w io.Writer) error {
			return manifest.WriteXML(w, m, cfg.Trim, cfg.Rotate)
		}); err != nil {
			return err
		}
	}
	if cfg.Binary {
		if err := writeManifestFile(cfg.Output+".bin", func(w io.Writer) error {
			return manifest.WriteBinary(w, m, cfg.Trim, cfg.Rotate)
		}); err != nil {
			return err
		}
	}
	if cfg.JSON {
		if err := writeManifestFile(cfg.Output+".json", func(w io.Writer) error {
			return manifest.WriteJSON(w, m, cfg.Trim, cfg.Rotate)
		}); err != nil {
			return err
		}
	}
	return nil
}

func writeManifestFile(path string, write func(io.Writer) error) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("%s: %w: %v", path, crunchutil.ErrIoWrite, err)
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()
	return write(f)
}
