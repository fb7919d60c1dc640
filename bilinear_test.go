// seehuhn.de/go/reyes - micropolygon sampling
// Copyright (C) 2026  Jochen Voss <voss@seehuhn.de>
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with this program.  If not, see <https://www.gnu.org/licenses/>.

package reyes

import (
	"fmt"
	"math"
	"testing"

	"seehuhn.de/go/geom/vec"
)

func pt(x, y float64) vec.Vec2 {
	return vec.Vec2{X: x, Y: y}
}

var testQuads = []struct {
	name string
	q    Quad
}{
	{"unit_square", Quad{pt(0, 0), pt(1, 0), pt(0, 1), pt(1, 1)}},
	{"rectangle", Quad{pt(0, 0), pt(2, 0), pt(0, 1), pt(2, 1)}},
	{"parallelogram", Quad{pt(0, 0), pt(3, 1), pt(1, 2), pt(4, 3)}},
	{"nearly_parallelogram", Quad{pt(0, 0), pt(3, 1), pt(1, 2), pt(4.01, 3.005)}},
	{"skewed", Quad{pt(0.1, 0.1), pt(1.1, 0), pt(-0.1, 1.5), pt(1, 1)}},
	{"trapezoid", Quad{pt(0.4, 0), pt(0.6, 0), pt(0, 1), pt(1, 1)}},
	{"kite", Quad{pt(0, -1), pt(1, 0), pt(-1, 0), pt(0, 2)}},
	{"general", Quad{pt(6, 10), pt(50, 4), pt(14, 58), pt(60, 44)}},
	{"mirrored", Quad{pt(1, 0), pt(0, 0), pt(1.1, 1), pt(0, 1.2)}},
}

// roundTripParams includes the corners, the edges and points just inside
// the edges.
var roundTripParams = []float64{0, 1e-6, 0.01, 0.25, 0.5, 0.75, 0.99, 1 - 1e-6, 1}

func near(got, want, tol float64) bool {
	return math.Abs(got-want) <= tol
}

func checkRoundTrip(t *testing.T, inv Inverter, q Quad, tol float64) {
	t.Helper()
	for _, v := range roundTripParams {
		for _, u := range roundTripParams {
			p := q.Eval(u, v)
			c := inv.Invert(p)
			if !near(c.U, u, tol) || !near(c.V, v, tol) {
				t.Errorf("Invert(P(%g,%g)) = (%g,%g)", u, v, c.U, c.V)
			}
		}
	}
}

func TestAnalyticRoundTrip(t *testing.T) {
	for _, test := range testQuads {
		t.Run(test.name, func(t *testing.T) {
			checkRoundTrip(t, NewAnalytic(test.q), test.q, 1e-7)
		})
	}
}

func TestNewtonRoundTrip(t *testing.T) {
	for _, test := range testQuads {
		t.Run(test.name, func(t *testing.T) {
			inv := NewNewton(test.q).WithIterations(12)
			checkRoundTrip(t, inv, test.q, 1e-9)
		})
	}
}

// With the default iteration count Newton's method is exact for
// parallelograms and trapezoids, and approximate for nearly linear quads.
func TestNewtonDefault(t *testing.T) {
	cases := []struct {
		name string
		q    Quad
		tol  float64
	}{
		{"rectangle", Quad{pt(0, 0), pt(2, 0), pt(0, 1), pt(2, 1)}, 1e-12},
		{"parallelogram", Quad{pt(0, 0), pt(3, 1), pt(1, 2), pt(4, 3)}, 1e-12},
		{"nearly_parallelogram", Quad{pt(0, 0), pt(3, 1), pt(1, 2), pt(4.01, 3.005)}, 5e-3},
		{"trapezoid", Quad{pt(0.4, 0), pt(0.6, 0), pt(0, 1), pt(1, 1)}, 1e-9},
	}
	for _, test := range cases {
		t.Run(test.name, func(t *testing.T) {
			checkRoundTrip(t, NewNewton(test.q), test.q, test.tol)
		})
	}
}

func TestSpecificPoint(t *testing.T) {
	q := Quad{pt(0.1, 0.1), pt(1.1, 0), pt(-0.1, 1.5), pt(1, 1)}
	p := q.Eval(0.5, 0.5)
	for _, inv := range []Inverter{NewAnalytic(q), NewNewton(q).WithIterations(8)} {
		c := inv.Invert(p)
		if !near(c.U, 0.5, 1e-3) || !near(c.V, 0.5, 1e-3) {
			t.Errorf("%T: got (%g,%g), want (0.5,0.5)", inv, c.U, c.V)
		}
	}
	c := Invert(q, p)
	if !near(c.U, 0.5, 1e-9) || !near(c.V, 0.5, 1e-9) {
		t.Errorf("Invert: got (%g,%g), want (0.5,0.5)", c.U, c.V)
	}
}

// Translating patch and point by the same offset must not affect the
// result beyond rounding of the input coordinates.
func TestLargeOffset(t *testing.T) {
	offsets := []vec.Vec2{
		pt(1000, 1000),
		pt(1000, 2000),
		pt(-1e4, 3e3),
		pt(1e5, 1e5),
	}
	for _, test := range testQuads {
		q := Quad{
			A: test.q.A.Mul(0.25),
			B: test.q.B.Mul(0.25),
			C: test.q.C.Mul(0.25),
			D: test.q.D.Mul(0.25),
		}
		for _, off := range offsets {
			name := fmt.Sprintf("%s_%g_%g", test.name, off.X, off.Y)
			t.Run(name, func(t *testing.T) {
				qq := q.Translate(off)
				checkRoundTrip(t, NewAnalytic(qq), qq, 1e-6)
			})
		}
	}
}

func TestOffsetRectangle(t *testing.T) {
	q := Quad{pt(1000, 2000), pt(1002, 2000), pt(1000, 2001), pt(1002, 2001)}
	for _, uv := range [][2]float64{{0.5, 0.5}, {0.25, 0.75}, {0, 1}, {1, 0}} {
		p := q.Eval(uv[0], uv[1])
		c := NewAnalytic(q).Invert(p)
		if !near(c.U, uv[0], 1e-10) || !near(c.V, uv[1], 1e-10) {
			t.Errorf("P(%g,%g): got (%g,%g)", uv[0], uv[1], c.U, c.V)
		}
		c = NewNewton(q).Invert(p)
		if !near(c.U, uv[0], 1e-10) || !near(c.V, uv[1], 1e-10) {
			t.Errorf("Newton P(%g,%g): got (%g,%g)", uv[0], uv[1], c.U, c.V)
		}
	}
}

// Quads with a collapsed edge are triangles.  Away from the collapsed
// edge the inverse is still well defined.
func TestDegenerate(t *testing.T) {
	cases := []struct {
		name string
		q    Quad
		skip func(u, v float64) bool
	}{
		{
			name: "A=B",
			q:    Quad{pt(0, 0), pt(0, 0), pt(-1, 2), pt(1.5, 2)},
			skip: func(u, v float64) bool { return v < 0.1 },
		},
		{
			name: "C=D",
			q:    Quad{pt(0, 0), pt(2, 0.5), pt(1, 2), pt(1, 2)},
			skip: func(u, v float64) bool { return v > 0.9 },
		},
		{
			name: "A=C",
			q:    Quad{pt(0, 0), pt(2, -1), pt(0, 0), pt(2.5, 1)},
			skip: func(u, v float64) bool { return u < 0.1 },
		},
		{
			name: "B=D",
			q:    Quad{pt(0, 0), pt(2, 1), pt(0.5, 2), pt(2, 1)},
			skip: func(u, v float64) bool { return u > 0.9 },
		},
	}
	params := []float64{0, 0.1, 0.25, 0.5, 0.75, 0.9, 1}
	for _, test := range cases {
		t.Run(test.name, func(t *testing.T) {
			a := NewAnalytic(test.q)
			for _, v := range params {
				for _, u := range params {
					if test.skip(u, v) {
						continue
					}
					p := test.q.Eval(u, v)
					c := a.Invert(p)
					if !near(c.U, u, 1e-7) || !near(c.V, v, 1e-7) {
						t.Errorf("Invert(P(%g,%g)) = (%g,%g)", u, v, c.U, c.V)
					}
				}
			}
		})
	}
}

func TestCollapsedNoNaN(t *testing.T) {
	quads := []Quad{
		{pt(3, 4), pt(3, 4), pt(3, 4), pt(3, 4)},
		{pt(0, 0), pt(1, 1), pt(2, 2), pt(3, 3)},
		{pt(0, 0), pt(1, 0), pt(0, 0), pt(1, 0)},
	}
	points := []vec.Vec2{pt(3, 4), pt(0, 0), pt(0.5, 0.5), pt(-7, 11)}
	for i, q := range quads {
		for _, inv := range []Inverter{NewAnalytic(q), NewNewton(q)} {
			for _, p := range points {
				c := inv.Invert(p)
				if math.IsNaN(c.U) || math.IsNaN(c.V) || math.IsInf(c.U, 0) || math.IsInf(c.V, 0) {
					t.Errorf("quad %d, %T, point %v: got (%g,%g)", i, inv, p, c.U, c.V)
				}
			}
		}
	}
}

// Outside points are mapped to coordinates outside [0,1]², which
// callers clamp.
func TestOutside(t *testing.T) {
	q := Quad{pt(0, 0), pt(1, 0), pt(0, 1), pt(1, 1)}
	c := NewAnalytic(q).Invert(pt(1.5, -0.25))
	if !near(c.U, 1.5, 1e-12) || !near(c.V, -0.25, 1e-12) {
		t.Errorf("got (%g,%g)", c.U, c.V)
	}
	c = c.Clamp()
	if c.U != 1 || c.V != 0 {
		t.Errorf("Clamp: got (%g,%g)", c.U, c.V)
	}
}

func TestSolverKindString(t *testing.T) {
	if s := SolverAnalytic.String(); s != "analytic" {
		t.Errorf("SolverAnalytic.String() = %q", s)
	}
	if s := SolverNewton.String(); s != "newton" {
		t.Errorf("SolverNewton.String() = %q", s)
	}
}

func BenchmarkInvert(b *testing.B) {
	q := Quad{pt(0.1, 0.1), pt(1.1, 0), pt(-0.1, 1.5), pt(1, 1)}
	p := q.Eval(0.3, 0.6)

	b.Run("analytic", func(b *testing.B) {
		b.ReportAllocs()
		for b.Loop() {
			NewAnalytic(q).Invert(p)
		}
	})
	b.Run("newton", func(b *testing.B) {
		b.ReportAllocs()
		for b.Loop() {
			NewNewton(q).Invert(p)
		}
	})
}
