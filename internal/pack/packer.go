// SPDX-License-Identifier: Unlicense OR MIT

package pack

import (
	"image"
	"image/color"
	"image/draw"

	"github.com/MoonsideGames/crunch/internal/bitmap"
	"golang.org/x/exp/slices"
)

// Placement records where one bitmap in a packing batch landed on a page
// (spec.md §3's Placement).
type Placement struct {
	// BitmapIndex is the position of the bitmap within the batch passed
	// to Pack.
	BitmapIndex int
	X, Y        int
	Rotated     bool
	// DuplicateOf is the index, within Placements, of the canonical
	// placement this one aliases; nil for non-alias placements.
	DuplicateOf *int
}

// Packer builds one occupied page out of a batch of bitmaps: it dedups
// (when Unique), drives the MaxRects free-rect store, and reports whichever
// bitmaps did not fit (spec.md §4.C).
type Packer struct {
	PageWidth, PageHeight, Padding int
	AllowRotate, Unique            bool

	store      *FreeRectStore
	Placements []Placement
}

// NewPacker returns an empty packer for one page of the given size.
func NewPacker(pageWidth, pageHeight, padding int, allowRotate, unique bool) *Packer {
	return &Packer{
		PageWidth:   pageWidth,
		PageHeight:  pageHeight,
		Padding:     padding,
		AllowRotate: allowRotate,
		Unique:      unique,
		store:       NewFreeRectStore(pageWidth, pageHeight),
	}
}

// Pack attempts to place every bitmap in bms onto the page, in order, and
// returns the batch indices of bitmaps that did not fit on this page.
func (p *Packer) Pack(bms []*bitmap.Bitmap) []int {
	canonicalOf := p.dedup(bms)

	placementIndexOf := make(map[int]int, len(bms))
	unfitCanonical := make(map[int]bool)
	var unfit []int

	for i, bm := range bms {
		if canonicalOf[i] != i {
			continue // alias; resolved below once its canonical is known
		}
		w, h := bm.Width+p.Padding, bm.Height+p.Padding
		x, y, rotated, ok := p.store.Insert(w, h, p.AllowRotate)
		if !ok {
			unfitCanonical[i] = true
			unfit = append(unfit, i)
			continue
		}
		p.Placements = append(p.Placements, Placement{BitmapIndex: i, X: x, Y: y, Rotated: rotated})
		placementIndexOf[i] = len(p.Placements) - 1
	}

	for i := range bms {
		c := canonicalOf[i]
		if c == i {
			continue
		}
		if unfitCanonical[c] {
			unfit = append(unfit, i)
			continue
		}
		canIdx := placementIndexOf[c]
		can := p.Placements[canIdx]
		dup := canIdx
		p.Placements = append(p.Placements, Placement{
			BitmapIndex: i, X: can.X, Y: can.Y, Rotated: can.Rotated, DuplicateOf: &dup,
		})
	}

	p.reorderByBitmapIndex()
	slices.Sort(unfit)
	return unfit
}

// dedup groups bms by HashValue (confirming with Equal) and returns, for
// every index i, the batch index of its canonical occurrence — itself, if
// i is the first occurrence of its pixel content (spec.md §4.C step 1).
func (p *Packer) dedup(bms []*bitmap.Bitmap) []int {
	canonicalOf := make([]int, len(bms))
	for i := range bms {
		canonicalOf[i] = i
	}
	if !p.Unique {
		return canonicalOf
	}
	seen := make(map[uint64][]int)
	for i, bm := range bms {
		matched := false
		for _, c := range seen[bm.HashValue] {
			if bms[c].Equal(bm) {
				canonicalOf[i] = c
				matched = true
				break
			}
		}
		if !matched {
			seen[bm.HashValue] = append(seen[bm.HashValue], i)
		}
	}
	return canonicalOf
}

// reorderByBitmapIndex sorts Placements by BitmapIndex so the manifest
// lists images in the same order the batch received them, fixing up
// DuplicateOf indices to match the new positions.
func (p *Packer) reorderByBitmapIndex() {
	order := make([]int, len(p.Placements))
	for i := range order {
		order[i] = i
	}
	slices.SortFunc(order, func(a, b int) int {
		return p.Placements[a].BitmapIndex - p.Placements[b].BitmapIndex
	})

	newIndexOf := make([]int, len(order))
	for newIdx, oldIdx := range order {
		newIndexOf[oldIdx] = newIdx
	}

	next := make([]Placement, len(p.Placements))
	for newIdx, oldIdx := range order {
		pl := p.Placements[oldIdx]
		if pl.DuplicateOf != nil {
			remapped := newIndexOf[*pl.DuplicateOf]
			pl.DuplicateOf = &remapped
		}
		next[newIdx] = pl
	}
	p.Placements = next
}

// Render composites the page: an RGBA8 buffer of PageWidth×PageHeight,
// filled transparent, with every non-alias placement's pixels blitted at
// (X, Y), rotated 90° clockwise if Rotated. Alias placements contribute no
// pixels — their content is already on the page via the canonical.
func (p *Packer) Render(bms []*bitmap.Bitmap) *image.RGBA {
	page := image.NewRGBA(image.Rect(0, 0, p.PageWidth, p.PageHeight))
	for _, pl := range p.Placements {
		if pl.DuplicateOf != nil {
			continue
		}
		bm := bms[pl.BitmapIndex]
		blit(page, bm, pl.X, pl.Y, pl.Rotated)
	}
	return page
}

// blit copies bm's pixels into page at (x, y), rotating 90° clockwise
// first if rotated.
func blit(page *image.RGBA, bm *bitmap.Bitmap, x, y int, rotated bool) {
	src := &image.RGBA{
		Pix:    bm.Pixels,
		Stride: bm.Width * 4,
		Rect:   image.Rect(0, 0, bm.Width, bm.Height),
	}
	if !rotated {
		dst := page.Bounds().Intersect(image.Rect(x, y, x+bm.Width, y+bm.Height))
		draw.Draw(page, dst, src, image.Point{}, draw.Src)
		return
	}

	// Rotate 90° clockwise: destination (col, row) = src (row, h-1-col).
	for sy := 0; sy < bm.Height; sy++ {
		for sx := 0; sx < bm.Width; sx++ {
			dx := x + (bm.Height - 1 - sy)
			dy := y + sx
			si := sy*src.Stride + sx*4
			px := bm.Pixels[si : si+4 : si+4]
			page.SetRGBA(dx, dy, color.RGBA{R: px[0], G: px[1], B: px[2], A: px[3]})
		}
	}
}
