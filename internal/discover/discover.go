// SPDX-License-Identifier: Unlicense OR MIT

// Package discover implements the filesystem traversal spec.md §1 places
// out of the packer core's scope: turning CLI input arguments into the
// flat (absolute-path, relative-name) pairs the core consumes.
package discover

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/MoonsideGames/crunch/internal/bitmap"
	"github.com/MoonsideGames/crunch/internal/crunchutil"
)

// Walk resolves each of inputs — a single PNG file or a directory — to its
// constituent PNG sources. Directory traversal is sorted lexicographically
// by full path (spec.md §9.3) so both ingestion and the fingerprint are
// reproducible across hosts. A bare PNG file input is itself loaded and
// packed (spec.md §9.2), not silently dropped.
//
// outputPrefix is the atlas's own OUTPUT argument: any discovered path that
// this run would itself write (<prefix>.hash, <prefix>.{bin,xml,json},
// <prefix><N>.png) is excluded, so a previous run's pages sitting inside a
// scanned input directory are neither read as a new source nor fed into the
// fingerprint.
func Walk(inputs []string, outputPrefix string) ([]bitmap.Source, error) {
	var all []bitmap.Source
	for _, in := range inputs {
		entries, err := walkOne(in)
		if err != nil {
			return nil, err
		}
		all = append(all, entries...)
	}
	return excludeOwnOutput(all, outputPrefix), nil
}

// excludeOwnOutput drops any source whose path is one of outputPrefix's own
// reserved output paths.
func excludeOwnOutput(sources []bitmap.Source, outputPrefix string) []bitmap.Source {
	absPrefix, err := filepath.Abs(outputPrefix)
	if err != nil {
		return sources
	}
	kept := sources[:0:0]
	for _, s := range sources {
		absPath, err := filepath.Abs(s.Path)
		if err != nil || !isReservedOutputPath(absPath, absPrefix) {
			kept = append(kept, s)
		}
	}
	return kept
}

// isReservedOutputPath reports whether absPath is one of the files crunch
// itself writes for the atlas at absPrefix: the fingerprint (.hash), a
// manifest (.bin/.xml/.json), or a numbered page (<N>.png).
func isReservedOutputPath(absPath, absPrefix string) bool {
	if !strings.HasPrefix(absPath, absPrefix) {
		return false
	}
	suffix := absPath[len(absPrefix):]
	switch suffix {
	case ".hash", ".bin", ".xml", ".json":
		return true
	}
	digits := strings.TrimSuffix(suffix, ".png")
	if digits == suffix || digits == "" {
		return false
	}
	for _, r := range digits {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

func walkOne(input string) ([]bitmap.Source, error) {
	abs, err := filepath.Abs(input)
	if err != nil {
		return nil, fmt.Errorf("%s: %w: %v", input, crunchutil.ErrIoRead, err)
	}
	input = abs

	info, err := os.Stat(input)
	if err != nil {
		return nil, fmt.Errorf("%s: %w: %v", input, crunchutil.ErrIoRead, err)
	}

	if !info.IsDir() {
		if !isPNG(input) {
			return nil, nil
		}
		name := strings.TrimSuffix(filepath.Base(input), filepath.Ext(input))
		return []bitmap.Source{{Path: input, Name: name}}, nil
	}

	var paths []string
	err = filepath.WalkDir(input, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !isPNG(path) {
			return nil
		}
		paths = append(paths, path)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("%s: %w: %v", input, crunchutil.ErrIoRead, err)
	}
	sort.Strings(paths)

	entries := make([]bitmap.Source, len(paths))
	for i, p := range paths {
		rel, err := filepath.Rel(input, p)
		if err != nil {
			return nil, fmt.Errorf("%s: %w: %v", p, crunchutil.ErrIoRead, err)
		}
		rel = filepath.ToSlash(rel)
		name := strings.TrimSuffix(rel, filepath.Ext(rel))
		entries[i] = bitmap.Source{Path: p, Name: name}
	}
	return entries, nil
}

func isPNG(path string) bool {
	return strings.EqualFold(filepath.Ext(path), ".png")
}
