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

import "seehuhn.de/go/geom/vec"

// Edge is the half-plane equation of a directed line segment.
//
// The signed distance of a point p is n·(p - o), where o is one of the
// two endpoints and n is a normal of the segment.  The reference point o
// is always the lexicographically smaller endpoint, independent of the
// direction of the edge.  This has two consequences:
//
//   - both endpoints have signed distance exactly zero, and
//   - the edges from a to b and from b to a give exactly negated distances
//     for every point, so that two polygons sharing an edge never both
//     claim (or both reject) a point near that edge.
//
// A formulation of the form n·p - c with a precomputed constant c has
// neither property, because c is rounded independently of n.
type Edge struct {
	origin vec.Vec2 // reference endpoint
	normal vec.Vec2 // points to the left of the directed edge
}

// NewEdge returns the equation of the edge from origin to target.
// Points to the left of the edge (in a coordinate system where the
// y-axis points up) have positive signed distance.
func NewEdge(origin, target vec.Vec2) Edge {
	if less(target, origin) {
		d := origin.Sub(target)
		return Edge{origin: target, normal: vec.Vec2{X: d.Y, Y: -d.X}}
	}
	d := target.Sub(origin)
	return Edge{origin: origin, normal: vec.Vec2{X: -d.Y, Y: d.X}}
}

// less orders points lexicographically by x, then y.
func less(a, b vec.Vec2) bool {
	return a.X < b.X || a.X == b.X && a.Y < b.Y
}

// IsDegenerate reports whether the two endpoints of the edge coincide.
// Every point is on a degenerate edge.
func (e Edge) IsDegenerate() bool {
	return e.normal.X == 0 && e.normal.Y == 0
}

// Distance returns the signed distance of p from the edge, scaled by the
// length of the edge.
func (e Edge) Distance(p vec.Vec2) float64 {
	// The conversions force rounding of both products, so that the
	// compiler cannot fuse them into an FMA and break exactness.
	return float64(e.normal.X*(p.X-e.origin.X)) + float64(e.normal.Y*(p.Y-e.origin.Y))
}

// OnEdge reports whether p lies exactly on the line through the edge.
func (e Edge) OnEdge(p vec.Vec2) bool {
	return e.Distance(p) == 0
}

// InsideClosed reports whether p is on the edge or to its left.
func (e Edge) InsideClosed(p vec.Vec2) bool {
	return e.Distance(p) >= 0
}

// InsideOpen reports whether p is strictly to the left of the edge.
func (e Edge) InsideOpen(p vec.Vec2) bool {
	return e.Distance(p) > 0
}

// Classification is the result of [Edge.Classify].
type Classification struct {
	OnEdge       bool
	InsideClosed bool
	InsideOpen   bool
}

// Classify evaluates all three predicates for p at once.
func (e Edge) Classify(p vec.Vec2) Classification {
	d := e.Distance(p)
	return Classification{
		OnEdge:       d == 0,
		InsideClosed: d >= 0,
		InsideOpen:   d > 0,
	}
}

// Indices of the edges in a QuadEdges value.
const (
	EdgeAB = iota // closed
	EdgeBD        // open
	EdgeDC        // open
	EdgeCA        // closed
)

// QuadEdges holds the edge equations of a micropolygon, in the order
// A→B, B→D, D→C, C→A.
//
// Points on the edges A–B and C–A are inside, points on B–D and D–C are
// outside.  In a grid where micropolygon (i,j) has corners A=v(i,j),
// B=v(i+1,j), C=v(i,j+1), D=v(i+1,j+1), the shared edge between two
// neighbours is B–D or D–C for one of them and C–A or A–B for the other.
// Every point of the grid interior is therefore covered by exactly one
// micropolygon, including points on shared edges and vertices.
type QuadEdges struct {
	Edges [4]Edge

	skip  uint8 // bit i set: edge i is degenerate
	empty bool  // zero-area quad
}

// NewQuadEdges computes the edge equations for q.
// For clockwise quads the edge directions are reversed, so that the
// interior is always on the positive side.
func NewQuadEdges(q Quad) QuadEdges {
	var qe QuadEdges
	area := q.area2()
	switch {
	case area > 0:
		qe.Edges = [4]Edge{
			EdgeAB: NewEdge(q.A, q.B),
			EdgeBD: NewEdge(q.B, q.D),
			EdgeDC: NewEdge(q.D, q.C),
			EdgeCA: NewEdge(q.C, q.A),
		}
	case area < 0:
		qe.Edges = [4]Edge{
			EdgeAB: NewEdge(q.B, q.A),
			EdgeBD: NewEdge(q.D, q.B),
			EdgeDC: NewEdge(q.C, q.D),
			EdgeCA: NewEdge(q.A, q.C),
		}
	default:
		qe.empty = true
		return qe
	}
	for i := range qe.Edges {
		if qe.Edges[i].IsDegenerate() {
			qe.skip |= 1 << i
		}
	}
	return qe
}

// Empty reports whether the quad has zero area.  Empty quads cover no
// points.
func (qe *QuadEdges) Empty() bool {
	return qe.empty
}

// Covers reports whether p lies inside the quad.
func (qe *QuadEdges) Covers(p vec.Vec2) bool {
	if qe.empty {
		return false
	}
	if qe.skip == 0 {
		return qe.Edges[EdgeAB].InsideClosed(p) &&
			qe.Edges[EdgeBD].InsideOpen(p) &&
			qe.Edges[EdgeDC].InsideOpen(p) &&
			qe.Edges[EdgeCA].InsideClosed(p)
	}
	for i := range qe.Edges {
		if qe.skip&(1<<i) != 0 {
			continue
		}
		var ok bool
		if i == EdgeAB || i == EdgeCA {
			ok = qe.Edges[i].InsideClosed(p)
		} else {
			ok = qe.Edges[i].InsideOpen(p)
		}
		if !ok {
			return false
		}
	}
	return true
}
