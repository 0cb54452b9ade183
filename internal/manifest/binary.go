// SPDX-License-Identifier: Unlicense OR MIT

package manifest

import (
	"bufio"
	"bytes"
	"encoding/binary"
	"errors"
	"io"
)

// ErrTruncated is returned by ReadBinary when the stream ends mid-record.
var ErrTruncated = errors.New("manifest: truncated binary stream")

// WriteBinary writes m in the wire format of spec.md §6.2: every integer a
// signed 16-bit little-endian value, every string null-terminated UTF-8.
// Frame fields are written only if trim is set; the rotated byte only if
// rotate is set.
func WriteBinary(w io.Writer, m Manifest, trim, rotate bool) error {
	bw := bufio.NewWriter(w)
	if err := writeInt16(bw, len(m.Pages)); err != nil {
		return err
	}
	for _, pg := range m.Pages {
		if err := writeCString(bw, pg.Name); err != nil {
			return err
		}
		if err := writeInt16(bw, len(pg.Images)); err != nil {
			return err
		}
		for _, img := range pg.Images {
			if err := writeImageBinary(bw, img, trim, rotate); err != nil {
				return err
			}
		}
	}
	return bw.Flush()
}

func writeImageBinary(w io.Writer, img Image, trim, rotate bool) error {
	if err := writeCString(w, img.Name); err != nil {
		return err
	}
	for _, v := range [4]int{img.X, img.Y, img.Width, img.Height} {
		if err := writeInt16(w, v); err != nil {
			return err
		}
	}
	if trim {
		for _, v := range [4]int{img.FrameX, img.FrameY, img.FrameWidth, img.FrameHeight} {
			if err := writeInt16(w, v); err != nil {
				return err
			}
		}
	}
	if rotate {
		var r uint8
		if img.Rotated {
			r = 1
		}
		if _, err := w.Write([]byte{r}); err != nil {
			return err
		}
	}
	return nil
}

func writeInt16(w io.Writer, v int) error {
	return binary.Write(w, binary.LittleEndian, int16(v))
}

func writeCString(w io.Writer, s string) error {
	if _, err := io.WriteString(w, s); err != nil {
		return err
	}
	_, err := w.Write([]byte{0})
	return err
}

// ReadBinary parses the format WriteBinary produces. Used by tests to check
// format parity against the XML/JSON encoders (spec.md §8 invariant 8).
func ReadBinary(r io.Reader, trim, rotate bool) (Manifest, error) {
	br := bufio.NewReader(r)
	numPages, err := readInt16(br)
	if err != nil {
		return Manifest{}, err
	}
	m := Manifest{Pages: make([]Page, numPages)}
	for i := range m.Pages {
		name, err := readCString(br)
		if err != nil {
			return Manifest{}, err
		}
		numImages, err := readInt16(br)
		if err != nil {
			return Manifest{}, err
		}
		pg := Page{Name: name, Images: make([]Image, numImages)}
		for j := range pg.Images {
			img, err := readImageBinary(br, trim, rotate)
			if err != nil {
				return Manifest{}, err
			}
			pg.Images[j] = img
		}
		m.Pages[i] = pg
	}
	return m, nil
}

func readImageBinary(r *bufio.Reader, trim, rotate bool) (Image, error) {
	var img Image
	name, err := readCString(r)
	if err != nil {
		return img, err
	}
	img.Name = name
	vals := make([]int, 4)
	for i := range vals {
		v, err := readInt16(r)
		if err != nil {
			return img, err
		}
		vals[i] = v
	}
	img.X, img.Y, img.Width, img.Height = vals[0], vals[1], vals[2], vals[3]
	if trim {
		fvals := make([]int, 4)
		for i := range fvals {
			v, err := readInt16(r)
			if err != nil {
				return img, err
			}
			fvals[i] = v
		}
		img.FrameX, img.FrameY, img.FrameWidth, img.FrameHeight = fvals[0], fvals[1], fvals[2], fvals[3]
	}
	if rotate {
		b, err := r.ReadByte()
		if err != nil {
			return img, ErrTruncated
		}
		img.Rotated = b != 0
	}
	return img, nil
}

func readInt16(r *bufio.Reader) (int, error) {
	var v int16
	if err := binary.Read(r, binary.LittleEndian, &v); err != nil {
		return 0, ErrTruncated
	}
	return int(v), nil
}

func readCString(r *bufio.Reader) (string, error) {
	s, err := r.ReadString(0)
	if err != nil {
		return "", ErrTruncated
	}
	return string(bytes.TrimSuffix([]byte(s), []byte{0})), nil
}
