// SPDX-License-Identifier: Unlicense OR MIT

package manifest

import (
	"encoding/xml"
	"io"
)

type xmlImage struct {
	Name   string `xml:"n,attr"`
	X      int    `xml:"x,attr"`
	Y      int    `xml:"y,attr"`
	W      int    `xml:"w,attr"`
	H      int    `xml:"h,attr"`
	FX     *int   `xml:"fx,attr,omitempty"`
	FY     *int   `xml:"fy,attr,omitempty"`
	FW     *int   `xml:"fw,attr,omitempty"`
	FH     *int   `xml:"fh,attr,omitempty"`
	Rotate *int   `xml:"r,attr,omitempty"`
}

type xmlTex struct {
	Name   string     `xml:"n,attr"`
	Images []xmlImage `xml:"img"`
}

type xmlAtlas struct {
	XMLName xml.Name `xml:"atlas"`
	Texs    []xmlTex `xml:"tex"`
}

// WriteXML writes m in the shape of spec.md §6.3: <atlas><tex><img/></tex></atlas>,
// with fx/fy/fw/fh present only when trim is set and r="1" present only
// when rotate is set and the image was actually rotated.
func WriteXML(w io.Writer, m Manifest, trim, rotate bool) error {
	atlas := toXMLAtlas(m, trim, rotate)
	if _, err := io.WriteString(w, xml.Header); err != nil {
		return err
	}
	enc := xml.NewEncoder(w)
	enc.Indent("", "  ")
	return enc.Encode(atlas)
}

func toXMLAtlas(m Manifest, trim, rotate bool) xmlAtlas {
	atlas := xmlAtlas{Texs: make([]xmlTex, 0, len(m.Pages))}
	for _, pg := range m.Pages {
		tex := xmlTex{Name: pg.Name, Images: make([]xmlImage, 0, len(pg.Images))}
		for _, img := range pg.Images {
			xi := xmlImage{Name: img.Name, X: img.X, Y: img.Y, W: img.Width, H: img.Height}
			if trim {
				xi.FX, xi.FY = intPtr(img.FrameX), intPtr(img.FrameY)
				xi.FW, xi.FH = intPtr(img.FrameWidth), intPtr(img.FrameHeight)
			}
			if rotate && img.Rotated {
				xi.Rotate = intPtr(1)
			}
			tex.Images = append(tex.Images, xi)
		}
		atlas.Texs = append(atlas.Texs, tex)
	}
	return atlas
}

func intPtr(v int) *int {
	return &v
}
