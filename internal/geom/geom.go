// SPDX-License-Identifier: Unlicense OR MIT

// Package geom provides integer point and rectangle primitives for pixel
// coordinates on an atlas page.
package geom

// A Point is a two dimensional integer point.
type Point struct {
	X, Y int
}

// A Rectangle contains the points (X, Y) where Min.X <= X < Max.X,
// Min.Y <= Y < Max.Y.
type Rectangle struct {
	Min, Max Point
}

// Rect returns the Rectangle with the given origin and size.
func Rect(x, y, w, h int) Rectangle {
	return Rectangle{Min: Point{X: x, Y: y}, Max: Point{X: x + w, Y: y + h}}
}

// Dx returns r's width.
func (r Rectangle) Dx() int {
	return r.Max.X - r.Min.X
}

// Dy returns r's height.
func (r Rectangle) Dy() int {
	return r.Max.Y - r.Min.Y
}

// Area returns r's area.
func (r Rectangle) Area() int {
	return r.Dx() * r.Dy()
}

// Empty reports whether r contains no points.
func (r Rectangle) Empty() bool {
	return r.Dx() <= 0 || r.Dy() <= 0
}

// Intersects reports whether r and s share any interior point.
func (r Rectangle) Intersects(s Rectangle) bool {
	return r.Min.X < s.Max.X && s.Min.X < r.Max.X &&
		r.Min.Y < s.Max.Y && s.Min.Y < r.Max.Y
}

// In reports whether every point in r is also in s.
func (r Rectangle) In(s Rectangle) bool {
	if r.Empty() {
		return true
	}
	return s.Min.X <= r.Min.X && r.Max.X <= s.Max.X &&
		s.Min.Y <= r.Min.Y && r.Max.Y <= s.Max.Y
}

// ChebyshevDistance returns the Chebyshev (L-infinity) distance between the
// closest points of r and s; 0 if they touch or overlap.
func ChebyshevDistance(r, s Rectangle) int {
	dx := axisGap(r.Min.X, r.Max.X, s.Min.X, s.Max.X)
	dy := axisGap(r.Min.Y, r.Max.Y, s.Min.Y, s.Max.Y)
	if dx > dy {
		return dx
	}
	return dy
}

func axisGap(aMin, aMax, bMin, bMax int) int {
	if aMax <= bMin {
		return bMin - aMax
	}
	if bMax <= aMin {
		return aMin - bMax
	}
	return 0
}
