// SPDX-License-Identifier: Unlicense OR MIT

package manifest

import (
	"encoding/json"
	"io"
)

type jsonImage struct {
	N      string `json:"n"`
	X      int    `json:"x"`
	Y      int    `json:"y"`
	W      int    `json:"w"`
	H      int    `json:"h"`
	FX     *int   `json:"fx,omitempty"`
	FY     *int   `json:"fy,omitempty"`
	FW     *int   `json:"fw,omitempty"`
	FH     *int   `json:"fh,omitempty"`
	Rotate *int   `json:"r,omitempty"`
}

type jsonTexture struct {
	Name   string      `json:"name"`
	Images []jsonImage `json:"images"`
}

type jsonRoot struct {
	Textures []jsonTexture `json:"textures"`
}

// WriteJSON writes m in the shape of spec.md §6.4.
func WriteJSON(w io.Writer, m Manifest, trim, rotate bool) error {
	root := jsonRoot{Textures: make([]jsonTexture, 0, len(m.Pages))}
	for _, pg := range m.Pages {
		tex := jsonTexture{Name: pg.Name, Images: make([]jsonImage, 0, len(pg.Images))}
		for _, img := range pg.Images {
			ji := jsonImage{N: img.Name, X: img.X, Y: img.Y, W: img.Width, H: img.Height}
			if trim {
				ji.FX, ji.FY = intPtr(img.FrameX), intPtr(img.FrameY)
				ji.FW, ji.FH = intPtr(img.FrameWidth), intPtr(img.FrameHeight)
			}
			if rotate && img.Rotated {
				ji.Rotate = intPtr(1)
			}
			tex.Images = append(tex.Images, ji)
		}
		root.Textures = append(root.Textures, tex)
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(root)
}
