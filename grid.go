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
	"seehuhn.de/go/geom/matrix"
	"seehuhn.de/go/geom/path"
	"seehuhn.de/go/geom/rect"
	"seehuhn.de/go/geom/vec"
)

// Grid is a diced grid of micropolygons in raster coordinates.
//
// The grid has (NU+1)×(NV+1) vertices, stored in row-major order with u
// varying fastest.  Micropolygon (i,j) has the corners
// A=v(i,j), B=v(i+1,j), C=v(i,j+1), D=v(i+1,j+1).
type Grid struct {
	NU, NV int

	// P holds the vertex positions.
	P []vec.Vec2

	// Z holds the depth at each vertex.  Smaller values are closer to the
	// viewer.  Nil means depth 0 everywhere.
	Z []float64

	// Value holds the shaded value at each vertex.  Nil means 1 everywhere.
	Value []float64
}

// NewGrid allocates a grid with nu×nv micropolygons.
// The Z and Value slices are left nil.
func NewGrid(nu, nv int) *Grid {
	return &Grid{
		NU: nu,
		NV: nv,
		P:  make([]vec.Vec2, (nu+1)*(nv+1)),
	}
}

func (g *Grid) index(i, j int) int {
	return j*(g.NU+1) + i
}

// Vertex returns the position of vertex (i,j).
func (g *Grid) Vertex(i, j int) vec.Vec2 {
	return g.P[g.index(i, j)]
}

// Micropolygon returns the corners of micropolygon (i,j),
// for 0 <= i < NU and 0 <= j < NV.
func (g *Grid) Micropolygon(i, j int) Quad {
	k := g.index(i, j)
	stride := g.NU + 1
	return Quad{
		A: g.P[k],
		B: g.P[k+1],
		C: g.P[k+stride],
		D: g.P[k+stride+1],
	}
}

// interpolate evaluates a per-vertex attribute inside micropolygon (i,j).
func (g *Grid) interpolate(vals []float64, i, j int, c Coord, def float64) float64 {
	if vals == nil {
		return def
	}
	k := g.index(i, j)
	stride := g.NU + 1
	return Bilerp(vals[k], vals[k+1], vals[k+stride], vals[k+stride+1], c.U, c.V)
}

// Bounds returns the bounding box of all vertices.
// The result is the zero rectangle for a grid without vertices.
func (g *Grid) Bounds() rect.Rect {
	if len(g.P) == 0 {
		return rect.Rect{}
	}
	b := rect.Rect{LLx: g.P[0].X, LLy: g.P[0].Y, URx: g.P[0].X, URy: g.P[0].Y}
	for _, p := range g.P[1:] {
		b.LLx = min(b.LLx, p.X)
		b.LLy = min(b.LLy, p.Y)
		b.URx = max(b.URx, p.X)
		b.URy = max(b.URy, p.Y)
	}
	return b
}

// Outline returns the wireframe of the grid as a path: one closed
// subpath per micropolygon.
func (g *Grid) Outline() *path.Data {
	p := &path.Data{}
	for j := range g.NV {
		for i := range g.NU {
			q := g.Micropolygon(i, j)
			p = p.MoveTo(q.A).LineTo(q.B).LineTo(q.D).LineTo(q.C).Close()
		}
	}
	return p
}

// Patch is a bilinear patch in user space, with depth and shaded values
// given at the corners.
type Patch struct {
	Corners Quad
	Z       [4]float64 // at A, B, C, D
	Value   [4]float64 // at A, B, C, D
}

// Dice evaluates the patch on an (nu+1)×(nv+1) lattice and transforms
// the vertices to raster space using ctm.
// A zero ctm is treated as the identity.
func (p *Patch) Dice(nu, nv int, ctm matrix.Matrix) *Grid {
	nu = max(nu, 1)
	nv = max(nv, 1)
	if ctm == (matrix.Matrix{}) {
		ctm = matrix.Identity
	}

	g := NewGrid(nu, nv)
	g.Z = make([]float64, len(g.P))
	g.Value = make([]float64, len(g.P))

	k := 0
	for j := range nv + 1 {
		v := float64(j) / float64(nv)
		for i := range nu + 1 {
			u := float64(i) / float64(nu)
			q := p.Corners.Eval(u, v)
			g.P[k] = vec.Vec2{
				X: ctm[0]*q.X + ctm[2]*q.Y + ctm[4],
				Y: ctm[1]*q.X + ctm[3]*q.Y + ctm[5],
			}
			g.Z[k] = Bilerp(p.Z[0], p.Z[1], p.Z[2], p.Z[3], u, v)
			g.Value[k] = Bilerp(p.Value[0], p.Value[1], p.Value[2], p.Value[3], u, v)
			k++
		}
	}
	return g
}
