// SPDX-License-Identifier: Unlicense OR MIT

package pack

import (
	"bytes"
	"image/png"
	"testing"

	"github.com/MoonsideGames/crunch/internal/bitmap"
	"github.com/MoonsideGames/crunch/internal/geom"
)

func solidBitmap(name string, w, h int, fill byte) *bitmap.Bitmap {
	px := make([]byte, w*h*4)
	for i := range px {
		px[i] = fill
	}
	return &bitmap.Bitmap{
		Name: name, Width: w, Height: h,
		FrameWidth: w, FrameHeight: h,
		Pixels:    px,
		HashValue: uint64(w)<<32 | uint64(h)<<16 | uint64(fill),
	}
}

// gradientBitmap fills every pixel with a position-derived value so a
// rotation or offset bug shows up as a pixel mismatch, unlike solidBitmap's
// uniform fill.
func gradientBitmap(name string, w, h int) *bitmap.Bitmap {
	px := make([]byte, w*h*4)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			i := (y*w + x) * 4
			px[i+0] = byte(x)
			px[i+1] = byte(y)
			px[i+2] = byte(x + y)
			px[i+3] = 255
		}
	}
	return &bitmap.Bitmap{
		Name: name, Width: w, Height: h,
		FrameWidth: w, FrameHeight: h,
		Pixels:    px,
		HashValue: uint64(w)<<32 | uint64(h),
	}
}

func placementRect(pl Placement, bm *bitmap.Bitmap) geom.Rectangle {
	w, h := bm.Width, bm.Height
	if pl.Rotated {
		w, h = h, w
	}
	return geom.Rect(pl.X, pl.Y, w, h)
}

func TestPackerSingleFit(t *testing.T) {
	bms := []*bitmap.Bitmap{solidBitmap("a", 10, 10, 1)}
	p := NewPacker(64, 64, 1, false, false)
	unfit := p.Pack(bms)
	if len(unfit) != 0 {
		t.Fatalf("unfit: have %v, want none", unfit)
	}
	if len(p.Placements) != 1 {
		t.Fatalf("placements: have %d, want 1", len(p.Placements))
	}
	pl := p.Placements[0]
	if pl.X != 0 || pl.Y != 0 || pl.Rotated {
		t.Errorf("placement: have (%d,%d,%v), want (0,0,false)", pl.X, pl.Y, pl.Rotated)
	}
}

func TestPackerDedup(t *testing.T) {
	a := solidBitmap("x", 8, 8, 5)
	b := solidBitmap("y", 8, 8, 5)
	p := NewPacker(32, 32, 0, false, true)
	unfit := p.Pack([]*bitmap.Bitmap{a, b})
	if len(unfit) != 0 {
		t.Fatalf("unfit: have %v, want none", unfit)
	}
	if len(p.Placements) != 2 {
		t.Fatalf("placements: have %d, want 2", len(p.Placements))
	}
	canon, alias := p.Placements[0], p.Placements[1]
	if alias.DuplicateOf == nil {
		t.Fatalf("second placement should be an alias")
	}
	if canon.X != alias.X || canon.Y != alias.Y || canon.Rotated != alias.Rotated {
		t.Errorf("alias position mismatch: canon=%+v alias=%+v", canon, alias)
	}
}

func TestPackerNoOverlapAndPadding(t *testing.T) {
	bms := make([]*bitmap.Bitmap, 0, 20)
	for i := 0; i < 20; i++ {
		bms = append(bms, solidBitmap("b", 8, 8, byte(i)))
	}
	p := NewPacker(64, 64, 2, false, false)
	p.Pack(bms)

	for i, a := range p.Placements {
		ra := placementRect(a, bms[a.BitmapIndex])
		if ra.Min.X < 0 || ra.Min.Y < 0 || ra.Max.X > p.PageWidth || ra.Max.Y > p.PageHeight {
			t.Errorf("placement %d out of bounds: %+v", i, ra)
		}
		for j, b := range p.Placements {
			if i == j {
				continue
			}
			rb := placementRect(b, bms[b.BitmapIndex])
			if ra.Intersects(rb) {
				t.Errorf("placements %d and %d overlap: %+v / %+v", i, j, ra, rb)
			}
			if d := geom.ChebyshevDistance(ra, rb); d < p.Padding {
				t.Errorf("placements %d and %d too close: distance %d < padding %d", i, j, d, p.Padding)
			}
		}
	}
}

func TestPackerRotation(t *testing.T) {
	bms := []*bitmap.Bitmap{solidBitmap("tall", 4, 8, 9)}
	p := NewPacker(8, 8, 0, true, false)
	unfit := p.Pack(bms)
	if len(unfit) != 0 {
		t.Fatalf("unfit: have %v, want none", unfit)
	}
	pl := p.Placements[0]
	r := placementRect(pl, bms[0])
	if r.Max.X > 8 || r.Max.Y > 8 {
		t.Errorf("rotated placement out of bounds: %+v", r)
	}
}

// TestRenderRoundTrip exercises spec.md §8 invariant 5: decoding the
// emitted PNG and sampling it at each placement's coordinates, undoing
// rotation, reproduces the source bitmap's pixels exactly.
func TestRenderRoundTrip(t *testing.T) {
	bms := []*bitmap.Bitmap{
		gradientBitmap("wide", 6, 3),
		gradientBitmap("tall", 3, 6),
	}
	p := NewPacker(32, 32, 1, true, false)
	unfit := p.Pack(bms)
	if len(unfit) != 0 {
		t.Fatalf("unfit: have %v, want none", unfit)
	}

	page := p.Render(bms)
	var buf bytes.Buffer
	if err := png.Encode(&buf, page); err != nil {
		t.Fatalf("png.Encode: %v", err)
	}
	decoded, err := png.Decode(&buf)
	if err != nil {
		t.Fatalf("png.Decode: %v", err)
	}

	for _, pl := range p.Placements {
		bm := bms[pl.BitmapIndex]
		for sy := 0; sy < bm.Height; sy++ {
			for sx := 0; sx < bm.Width; sx++ {
				dx, dy := pl.X+sx, pl.Y+sy
				if pl.Rotated {
					dx, dy = pl.X+(bm.Height-1-sy), pl.Y+sx
				}
				r, g, b, a := decoded.At(dx, dy).RGBA()
				i := (sy*bm.Width + sx) * 4
				want := bm.Pixels[i : i+4 : i+4]
				have := [4]byte{byte(r >> 8), byte(g >> 8), byte(b >> 8), byte(a >> 8)}
				if have != [4]byte{want[0], want[1], want[2], want[3]} {
					t.Fatalf("%s pixel (%d,%d) -> page (%d,%d): have %v, want %v",
						bm.Name, sx, sy, dx, dy, have, want)
				}
			}
		}
	}
}

func TestPackerReportsUnfit(t *testing.T) {
	bms := []*bitmap.Bitmap{solidBitmap("big", 100, 100, 1)}
	p := NewPacker(64, 64, 0, false, false)
	unfit := p.Pack(bms)
	if len(unfit) != 1 || unfit[0] != 0 {
		t.Fatalf("unfit: have %v, want [0]", unfit)
	}
	if len(p.Placements) != 0 {
		t.Errorf("placements: have %d, want 0", len(p.Placements))
	}
}
