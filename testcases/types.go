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

package testcases

import (
	"seehuhn.de/go/geom/matrix"
	"seehuhn.de/go/geom/vec"
)

// TestCase defines a single rendering test.
type TestCase struct {
	Name    string        // lowercase a-z and _ only
	Patches []Patch       // the geometry to render, in drawing order
	Width   int           // canvas width in pixels
	Height  int           // canvas height in pixels
	Samples int           // samples per pixel along each axis (0 means default)
	CTM     matrix.Matrix // transformation matrix (zero-value means no transform)
}

// Patch is a bilinear patch together with its dicing rates.
type Patch struct {
	Corners [4]vec.Vec2 // A, B, C, D; A and D are opposite corners
	NU, NV  int         // number of micropolygons along u and v
	Z       [4]float64  // depth at the corners
	Value   [4]float64  // shaded value at the corners
}

// IsCoverage reports whether the test case consists of a single patch
// with constant value 1, so that the expected output is plain coverage.
func (tc *TestCase) IsCoverage() bool {
	if len(tc.Patches) != 1 {
		return false
	}
	return tc.Patches[0].Value == [4]float64{1, 1, 1, 1}
}

// pt is a helper to create a vec.Vec2 from x, y coordinates.
func pt(x, y float64) vec.Vec2 {
	return vec.Vec2{X: x, Y: y}
}

// solid returns an opaque patch at depth zero.
func solid(a, b, c, d vec.Vec2, nu, nv int) Patch {
	return Patch{
		Corners: [4]vec.Vec2{a, b, c, d},
		NU:      nu,
		NV:      nv,
		Value:   [4]float64{1, 1, 1, 1},
	}
}

// box returns a solid axis-aligned rectangle.
func box(x1, y1, x2, y2 float64, nu, nv int) Patch {
	return solid(pt(x1, y1), pt(x2, y1), pt(x1, y2), pt(x2, y2), nu, nv)
}
