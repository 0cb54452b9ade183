// SPDX-License-Identifier: Unlicense OR MIT

package geom

import "testing"

func TestIntersects(t *testing.T) {
	a := Rect(0, 0, 10, 10)
	b := Rect(9, 9, 10, 10)
	if !a.Intersects(b) {
		t.Errorf("Intersects: have false, want true")
	}
	c := Rect(10, 10, 10, 10)
	if a.Intersects(c) {
		t.Errorf("Intersects: have true, want false for touching rects")
	}
}

func TestIn(t *testing.T) {
	outer := Rect(0, 0, 100, 100)
	inner := Rect(10, 10, 20, 20)
	if !inner.In(outer) {
		t.Errorf("In: have false, want true")
	}
	if outer.In(inner) {
		t.Errorf("In: have true, want false")
	}
}

func TestChebyshevDistance(t *testing.T) {
	a := Rect(0, 0, 10, 10)
	b := Rect(12, 0, 10, 10)
	if d := ChebyshevDistance(a, b); d != 2 {
		t.Errorf("ChebyshevDistance: have %d, want 2", d)
	}
	c := Rect(0, 0, 10, 10)
	d := Rect(5, 5, 10, 10)
	if got := ChebyshevDistance(c, d); got != 0 {
		t.Errorf("ChebyshevDistance overlap: have %d, want 0", got)
	}
}
