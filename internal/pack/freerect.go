// SPDX-License-Identifier: Unlicense OR MIT

// Package pack implements the MaxRects free-rectangle store (component B)
// and the single-page packer (component C) of spec.md §4.B/§4.C.
package pack

import "github.com/MoonsideGames/crunch/internal/geom"

// FreeRectStore maintains the set of maximal free rectangles covering the
// unoccupied area of one page. The rectangles may overlap one another.
type FreeRectStore struct {
	free []geom.Rectangle
}

// NewFreeRectStore returns a store whose entire page is free.
func NewFreeRectStore(pageWidth, pageHeight int) *FreeRectStore {
	return &FreeRectStore{free: []geom.Rectangle{geom.Rect(0, 0, pageWidth, pageHeight)}}
}

// Insert chooses the placement of a w×h rectangle (optionally rotated 90°)
// that minimizes the best-short-side-fit score, breaking ties by
// best-long-side-fit and then by first encountered (spec.md §4.B). It
// reports ok=false if no free rectangle can hold the rectangle in either
// orientation.
func (s *FreeRectStore) Insert(w, h int, allowRotate bool) (x, y int, rotated bool, ok bool) {
	best := -1
	var bestW, bestH, bestShort, bestLong int
	var bestRotated bool

	consider := func(idx, cw, ch int, rot bool) {
		f := s.free[idx]
		if cw > f.Dx() || ch > f.Dy() {
			return
		}
		short := min(f.Dx()-cw, f.Dy()-ch)
		long := max(f.Dx()-cw, f.Dy()-ch)
		if best == -1 || short < bestShort || (short == bestShort && long < bestLong) {
			best = idx
			bestW, bestH = cw, ch
			bestRotated = rot
			bestShort, bestLong = short, long
		}
	}

	for i := range s.free {
		consider(i, w, h, false)
		if allowRotate {
			consider(i, h, w, true)
		}
	}
	if best == -1 {
		return 0, 0, false, false
	}

	f := s.free[best]
	placed := geom.Rect(f.Min.X, f.Min.Y, bestW, bestH)
	s.split(placed)
	s.prune()
	return placed.Min.X, placed.Min.Y, bestRotated, true
}

// split replaces every free rectangle intersecting placed with up to four
// maximal sub-rectangles of its remainder (top, bottom, left, right
// strips, each spanning the full extent of the original rectangle).
func (s *FreeRectStore) split(placed geom.Rectangle) {
	next := make([]geom.Rectangle, 0, len(s.free))
	for _, g := range s.free {
		if !g.Intersects(placed) {
			next = append(next, g)
			continue
		}
		if placed.Min.Y > g.Min.Y {
			next = append(next, geom.Rect(g.Min.X, g.Min.Y, g.Dx(), placed.Min.Y-g.Min.Y))
		}
		if placed.Max.Y < g.Max.Y {
			next = append(next, geom.Rect(g.Min.X, placed.Max.Y, g.Dx(), g.Max.Y-placed.Max.Y))
		}
		if placed.Min.X > g.Min.X {
			next = append(next, geom.Rect(g.Min.X, g.Min.Y, placed.Min.X-g.Min.X, g.Dy()))
		}
		if placed.Max.X < g.Max.X {
			next = append(next, geom.Rect(placed.Max.X, g.Min.Y, g.Max.X-placed.Max.X, g.Dy()))
		}
	}
	s.free = next
}

// prune removes any free rectangle fully contained in another, restoring
// the maximal-rectangles invariant. Mandatory after every insert (spec.md
// §4.B).
func (s *FreeRectStore) prune() {
	kept := make([]bool, len(s.free))
	for i := range kept {
		kept[i] = true
	}
	for i := range s.free {
		if !kept[i] {
			continue
		}
		for j := range s.free {
			if i == j || !kept[j] {
				continue
			}
			if s.free[i].In(s.free[j]) {
				kept[i] = false
				break
			}
		}
	}
	next := s.free[:0:0]
	for i, r := range s.free {
		if kept[i] {
			next = append(next, r)
		}
	}
	s.free = next
}

// Free returns the current free rectangle list, for tests and diagnostics.
func (s *FreeRectStore) Free() []geom.Rectangle {
	return s.free
}
