// SPDX-License-Identifier: Unlicense OR MIT

// Package manifest implements component E: PNG page emission and the
// XML/JSON/BIN manifest serializers, plus the fingerprint-based
// incremental-build gate (spec.md §4.E, §6).
package manifest

import (
	"fmt"

	"github.com/MoonsideGames/crunch/internal/pipeline"
)

// Image is one source bitmap's placement record inside a manifest page.
// Width/Height are the bitmap's intrinsic (un-rotated) dimensions — the
// Rotated flag tells a reader to swap them to recover the on-page extent.
type Image struct {
	Name                                    string
	X, Y, Width, Height                     int
	FrameX, FrameY, FrameWidth, FrameHeight int
	Rotated                                 bool
}

// Page is one atlas page's manifest entry.
type Page struct {
	Name   string
	Images []Image
}

// Manifest is the full set of pages produced by one run.
type Manifest struct {
	Pages []Page
}

// Build constructs a Manifest from the pipeline's packed pages. atlasName is
// the output path prefix; page names are "<atlasName><index>" (spec.md
// §6.2's "atlases/atlas0" example). Frame fields are populated only when
// trim is set, matching the conditional wire-format fields in §6.2–§6.4.
func Build(pages []pipeline.Page, atlasName string, trim bool) Manifest {
	m := Manifest{Pages: make([]Page, 0, len(pages))}
	for i, pg := range pages {
		page := Page{Name: fmt.Sprintf("%s%d", atlasName, i)}
		for _, pl := range pg.Packer.Placements {
			bm := pg.Bitmaps[pl.BitmapIndex]
			img := Image{
				Name:    bm.Name,
				X:       pl.X,
				Y:       pl.Y,
				Width:   bm.Width,
				Height:  bm.Height,
				Rotated: pl.Rotated,
			}
			if trim {
				img.FrameX, img.FrameY = bm.FrameX, bm.FrameY
				img.FrameWidth, img.FrameHeight = bm.FrameWidth, bm.FrameHeight
			}
			page.Images = append(page.Images, img)
		}
		m.Pages = append(m.Pages, page)
	}
	return m
}
