// SPDX-License-Identifier: Unlicense OR MIT

// Package pipeline implements component D: the driver that orders bitmaps,
// loops emitting pages until everything is placed, and fails if a single
// bitmap can never fit (spec.md §4.D).
package pipeline

import (
	"fmt"

	"github.com/MoonsideGames/crunch/internal/bitmap"
	"github.com/MoonsideGames/crunch/internal/crunchutil"
	"github.com/MoonsideGames/crunch/internal/pack"
	"golang.org/x/exp/slices"
)

// Page is one emitted atlas page: the packer that built it, and the batch
// of bitmaps it was handed (Placement.BitmapIndex indexes into Bitmaps).
type Page struct {
	Packer  *pack.Packer
	Bitmaps []*bitmap.Bitmap
}

// Run sorts bms ascending by area, then packs pages by repeatedly handing
// the remaining bitmaps — walked largest-first, per spec.md §9.1 — to a
// fresh Packer until none remain.
func Run(bms []*bitmap.Bitmap, pageWidth, pageHeight, padding int, allowRotate, unique bool) ([]Page, error) {
	ordered := append([]*bitmap.Bitmap(nil), bms...)
	slices.SortStableFunc(ordered, func(a, b *bitmap.Bitmap) int {
		return a.Width*a.Height - b.Width*b.Height
	})

	remaining := make([]*bitmap.Bitmap, len(ordered))
	for i, bm := range ordered {
		remaining[len(ordered)-1-i] = bm // largest first
	}

	var pages []Page
	for len(remaining) > 0 {
		p := pack.NewPacker(pageWidth, pageHeight, padding, allowRotate, unique)
		unfitIdx := p.Pack(remaining)

		if len(p.Placements) == 0 {
			return nil, fmt.Errorf("%s: %w", remaining[0].Name, crunchutil.ErrPackingImpossible)
		}

		pages = append(pages, Page{Packer: p, Bitmaps: remaining})

		next := make([]*bitmap.Bitmap, len(unfitIdx))
		for i, idx := range unfitIdx {
			next[i] = remaining[idx]
		}
		remaining = next
	}
	return pages, nil
}
