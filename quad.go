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
	"seehuhn.de/go/geom/rect"
	"seehuhn.de/go/geom/vec"
)

// Quad holds the corners of a bilinear patch.
//
// A and D are diagonally opposite, so the edges are A–B, B–D, D–C and C–A.
// The parameter u runs from A towards B, the parameter v from A towards C.
// For a 2×2 lattice of values v1..v4 in row-major order this means
// A=v1, B=v2, C=v3, D=v4.
type Quad struct {
	A, B, C, D vec.Vec2
}

// Eval evaluates the bilinear map
//
//	P(u,v) = (1-v)·((1-u)·A + u·B) + v·((1-u)·C + u·D).
func (q Quad) Eval(u, v float64) vec.Vec2 {
	return vec.Vec2{
		X: Bilerp(q.A.X, q.B.X, q.C.X, q.D.X, u, v),
		Y: Bilerp(q.A.Y, q.B.Y, q.C.Y, q.D.Y, u, v),
	}
}

// Centroid returns the average of the four corners.
func (q Quad) Centroid() vec.Vec2 {
	return q.A.Add(q.B).Add(q.C).Add(q.D).Mul(0.25)
}

// Bounds returns the smallest rectangle containing all four corners.
func (q Quad) Bounds() rect.Rect {
	return rect.Rect{
		LLx: min(q.A.X, q.B.X, q.C.X, q.D.X),
		LLy: min(q.A.Y, q.B.Y, q.C.Y, q.D.Y),
		URx: max(q.A.X, q.B.X, q.C.X, q.D.X),
		URy: max(q.A.Y, q.B.Y, q.C.Y, q.D.Y),
	}
}

// Translate returns the quad shifted by d.
func (q Quad) Translate(d vec.Vec2) Quad {
	return Quad{A: q.A.Add(d), B: q.B.Add(d), C: q.C.Add(d), D: q.D.Add(d)}
}

// area2 returns twice the signed area of the polygon A, B, D, C.
func (q Quad) area2() float64 {
	return cross(q.B.Sub(q.A), q.D.Sub(q.A)) + cross(q.D.Sub(q.A), q.C.Sub(q.A))
}

// Bilerp interpolates the scalar corner values a, b, c, d
// using the same corner convention as [Quad].
//
// The result is exact at the corners, and along an edge whose two corner
// values coincide.  Dicing a patch with a collapsed edge thus gives
// exactly coincident vertices.
func Bilerp(a, b, c, d, u, v float64) float64 {
	return lerp(lerp(a, b, u), lerp(c, d, u), v)
}

func lerp(a, b, t float64) float64 {
	if t < 0.5 {
		return a + t*(b-a)
	}
	return b - (1-t)*(b-a)
}

// Coord holds the parametric coordinates of a point inside a patch.
//
// Points inside the patch have coordinates in [0,1], but solvers may
// overshoot by a small multiple of the machine epsilon near the boundary.
type Coord struct {
	U, V float64
}

// Clamp returns c with both coordinates clamped to [0,1].
func (c Coord) Clamp() Coord {
	return Coord{U: min(max(c.U, 0), 1), V: min(max(c.V, 0), 1)}
}

// cross returns the z-component of the cross product a×b.
func cross(a, b vec.Vec2) float64 {
	return a.X*b.Y - a.Y*b.X
}
