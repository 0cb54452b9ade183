// SPDX-License-Identifier: Unlicense OR MIT

package bitmap

import (
	"fmt"
	"os"

	"github.com/MoonsideGames/crunch/internal/crunchutil"
	"golang.org/x/sync/errgroup"
)

// Source identifies one input PNG: its absolute path and the relative name
// it should carry in the manifest (spec.md §3's Bitmap.name). Filesystem
// traversal that produces these pairs is out of scope (spec.md §1) and
// lives in internal/discover; cmd/crunch hands its flat list to LoadAll.
// Duplicate paths in that list are loaded once per occurrence.
type Source struct {
	Path string
	Name string
}

// LoadAll decodes every Source concurrently (bitmap ingestion is
// independent per file until placement begins — only the MaxRects search
// itself is required to stay single-threaded, per spec.md §5) and returns
// the resulting Bitmaps in the same order as srcs, following
// cmd/gogio/main.go's buildIcons pattern of an errgroup.Group fanning out
// over independent per-item work.
func LoadAll(srcs []Source, premultiply, trim bool) ([]*Bitmap, error) {
	out := make([]*Bitmap, len(srcs))

	var g errgroup.Group
	for i, src := range srcs {
		i, src := i, src
		g.Go(func() error {
			data, err := os.ReadFile(src.Path)
			if err != nil {
				return fmt.Errorf("%s: %w: %v", src.Path, crunchutil.ErrIoRead, err)
			}
			bm, err := Decode(src.Path, src.Name, data, premultiply, trim)
			if err != nil {
				return err
			}
			out[i] = bm
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}
