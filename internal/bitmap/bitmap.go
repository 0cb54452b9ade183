// SPDX-License-Identifier: Unlicense OR MIT

// Package bitmap implements component A of the atlas packer: decoding a PNG
// to RGBA8, optional alpha premultiplication, tight-bbox trimming, and
// content hashing.
package bitmap

import (
	"bytes"
	"fmt"
	"image"
	"image/draw"
	_ "image/png" // PNG decode support registered with image.Decode

	"github.com/MoonsideGames/crunch/internal/crunchutil"
)

// Bitmap owns decoded RGBA8 pixels plus identity and trim metadata
// (spec.md §3).
type Bitmap struct {
	// Name is the relative identifier: directory-prefix stripped,
	// extensionless, forward-slash.
	Name string
	// SourcePath is the absolute path the bitmap was decoded from.
	SourcePath string

	// Width, Height are the dimensions after trimming.
	Width, Height int

	// FrameX, FrameY, FrameWidth, FrameHeight is the bbox of opaque
	// pixels inside the original untrimmed image.
	FrameX, FrameY, FrameWidth, FrameHeight int

	// Pixels holds Width*Height RGBA8 samples in row-major order.
	Pixels []byte

	// HashValue is a content hash of Pixels, used only to group dedup
	// candidates; equality is always confirmed by byte-compare.
	HashValue uint64
}

// Decode decodes a PNG at sourcePath into a Bitmap named relName, applying
// premultiplication and trimming as requested.
func Decode(sourcePath, relName string, data []byte, premultiply, trim bool) (*Bitmap, error) {
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%s: %w: %v", sourcePath, crunchutil.ErrPngCodec, err)
	}
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()

	// image.RGBA is alpha-premultiplied by definition, so drawing into one
	// would bake in a premultiply as part of the format conversion alone,
	// ahead of and regardless of the optional step below. Decode into
	// image.NRGBA instead to get straight-alpha bytes.
	nrgba := image.NewNRGBA(image.Rect(0, 0, w, h))
	draw.Draw(nrgba, nrgba.Bounds(), img, b.Min, draw.Src)

	bm := &Bitmap{
		Name:         relName,
		SourcePath:   sourcePath,
		Width:        w,
		Height:       h,
		FrameX:       0,
		FrameY:       0,
		FrameWidth:   w,
		FrameHeight:  h,
		Pixels:       nrgba.Pix,
	}

	if premultiply {
		bm.premultiplyAlpha()
	}
	if trim {
		bm.trim()
	}
	bm.HashValue = crunchutil.ContentHash(bm.Pixels)
	return bm, nil
}

// premultiplyAlpha scales R, G, B by A/255 with round-to-nearest, in place.
func (bm *Bitmap) premultiplyAlpha() {
	px := bm.Pixels
	for i := 0; i+3 < len(px); i += 4 {
		a := uint32(px[i+3])
		px[i+0] = byte((uint32(px[i+0])*a + 127) / 255)
		px[i+1] = byte((uint32(px[i+1])*a + 127) / 255)
		px[i+2] = byte((uint32(px[i+2])*a + 127) / 255)
	}
}

// trim crops Pixels to the tightest axis-aligned rectangle containing any
// pixel with alpha != 0, recording the original bbox as the frame. A fully
// transparent bitmap collapses to a 1x1 fully-transparent bitmap with a
// zero-sized frame (spec.md §4.A step 3).
func (bm *Bitmap) trim() {
	minX, minY := bm.Width, bm.Height
	maxX, maxY := -1, -1

	for y := 0; y < bm.Height; y++ {
		row := y * bm.Width * 4
		for x := 0; x < bm.Width; x++ {
			a := bm.Pixels[row+x*4+3]
			if a != 0 {
				if x < minX {
					minX = x
				}
				if x > maxX {
					maxX = x
				}
				if y < minY {
					minY = y
				}
				if y > maxY {
					maxY = y
				}
			}
		}
	}

	if maxX < 0 {
		// Entirely transparent.
		bm.FrameX, bm.FrameY = 0, 0
		bm.FrameWidth, bm.FrameHeight = 0, 0
		bm.Width, bm.Height = 1, 1
		bm.Pixels = make([]byte, 4)
		return
	}

	fw, fh := maxX-minX+1, maxY-minY+1
	bm.FrameX, bm.FrameY = minX, minY
	bm.FrameWidth, bm.FrameHeight = fw, fh

	cropped := make([]byte, fw*fh*4)
	for y := 0; y < fh; y++ {
		srcOff := ((minY+y)*bm.Width + minX) * 4
		dstOff := y * fw * 4
		copy(cropped[dstOff:dstOff+fw*4], bm.Pixels[srcOff:srcOff+fw*4])
	}
	bm.Pixels = cropped
	bm.Width, bm.Height = fw, fh
}

// Equal reports whether bm and other have byte-identical trimmed pixel
// content. Used to confirm a hash collision in the dedup pass (spec.md
// §3's Bitmap equality is "always confirmed by byte-compare").
func (bm *Bitmap) Equal(other *Bitmap) bool {
	if bm.Width != other.Width || bm.Height != other.Height {
		return false
	}
	return bytes.Equal(bm.Pixels, other.Pixels)
}
