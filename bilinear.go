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
	"math"

	"seehuhn.de/go/geom/vec"
)

// Inverter maps points back to the parametric coordinates of a patch.
// Implementations precompute everything which only depends on the patch,
// so that Invert can be called once per sample.
type Inverter interface {
	Invert(p vec.Vec2) Coord
}

// SolverKind selects the strategy used to invert bilinear patches.
type SolverKind int

const (
	// SolverAnalytic uses the closed-form solution, see [NewAnalytic].
	SolverAnalytic SolverKind = iota

	// SolverNewton uses a fixed number of Newton steps, see [NewNewton].
	SolverNewton
)

func (k SolverKind) String() string {
	switch k {
	case SolverAnalytic:
		return "analytic"
	case SolverNewton:
		return "newton"
	default:
		return "unknown"
	}
}

const (
	// linearThreshold is the largest irregularity |G|, relative to the
	// patch size, for which the cross term is treated as a perturbation.
	linearThreshold = 1e-2

	// twistThreshold decides when E×G counts as zero, relative to |E|·|G|.
	twistThreshold = 1e-10

	// rootSlack is how far a quadratic root may lie outside [-1/2, 1/2]
	// and still count as clean.
	rootSlack = 1e-7

	newtonIterations       = 2
	newtonIterationsLinear = 1
)

// patchKind records which solution path a patch takes.
type patchKind uint8

const (
	patchGeneral patchKind = iota
	patchLinear
	patchSemiDegenerate
)

// centred holds a patch in the form
//
//	P(s,t) = M + s·E + t·F + s·t·G,  s = u-1/2, t = v-1/2.
//
// Working relative to the centroid M keeps the coefficients small when
// the patch sits far from the origin.
type centred struct {
	m, e, f, g vec.Vec2
}

func newCentred(q Quad) centred {
	m := q.Centroid()
	a := q.A.Sub(m)
	b := q.B.Sub(m)
	c := q.C.Sub(m)
	d := q.D.Sub(m)
	return centred{
		m: m,
		e: b.Sub(a).Add(d.Sub(c)).Mul(0.5),
		f: c.Sub(a).Add(d.Sub(b)).Mul(0.5),
		g: a.Sub(b).Add(d.Sub(c)),
	}
}

// eval returns s·E + t·F + s·t·G, the offset of P(s,t) from the centroid.
func (c *centred) eval(s, t float64) vec.Vec2 {
	return c.e.Mul(s).Add(c.f.Mul(t)).Add(c.g.Mul(s * t))
}

func (c *centred) classify() patchKind {
	size := max(c.e.Length(), c.f.Length())
	if c.g.Length() < linearThreshold*size {
		return patchLinear
	}
	if math.Abs(cross(c.e, c.g)) <= twistThreshold*c.e.Length()*c.g.Length() {
		return patchSemiDegenerate
	}
	return patchGeneral
}

// newtonStep performs one Newton step for r = s·E + t·F + s·t·G.
func (c *centred) newtonStep(r vec.Vec2, s, t float64) (float64, float64) {
	res := c.eval(s, t).Sub(r)
	ds := c.e.Add(c.g.Mul(t))
	dt := c.f.Add(c.g.Mul(s))
	det := cross(ds, dt)
	if det == 0 {
		return s, t
	}
	return s - cross(res, dt)/det, t - cross(ds, res)/det
}

// Analytic inverts a bilinear patch in closed form.
//
// The zero value is not useful; use [NewAnalytic].
type Analytic struct {
	centred
	kind patchKind
	ef   float64 // E×F
	eg   float64 // E×G
}

// NewAnalytic prepares the inversion of q.
func NewAnalytic(q Quad) Analytic {
	c := newCentred(q)
	return Analytic{
		centred: c,
		kind:    c.classify(),
		ef:      cross(c.e, c.f),
		eg:      cross(c.e, c.g),
	}
}

// Invert returns the coordinates (u,v) with q.Eval(u,v) ≈ p.
//
// Invert never fails. If p is not on the patch, or the patch is
// degenerate, the result is a best-effort approximation.
func (a Analytic) Invert(p vec.Vec2) Coord {
	r := p.Sub(a.m)

	var s, t float64
	switch a.kind {
	case patchLinear:
		if a.ef != 0 {
			s = cross(r, a.f) / a.ef
			t = cross(a.e, r) / a.ef
			s, t = a.newtonStep(r, s, t)
		}

	case patchSemiDegenerate:
		// E ∥ G, so crossing with E eliminates both s-terms.
		if a.ef != 0 {
			t = cross(r, a.e) / -a.ef
		}
		s = divide(r.Sub(a.f.Mul(t)), a.e.Add(a.g.Mul(t)))

	default:
		// Crossing r = s·E + t·(F + s·G) with F + s·G eliminates t:
		//   (E×G)·s² + (E×F - r×G)·s - r×F = 0
		qa := a.eg
		qb := a.ef - cross(r, a.g)
		qc := -cross(r, a.f)

		disc := max(qb*qb-4*qa*qc, 0)
		h := -0.5 * (qb + math.Copysign(math.Sqrt(disc), qb))
		s1 := h / qa
		s2 := s1
		if h != 0 {
			s2 = qc / h
		}

		s, t = s1, a.solveT(r, s1)
		if s2 != s1 {
			t2 := a.solveT(r, s2)
			if a.better(r, s2, t2, s, t) {
				s, t = s2, t2
			}
		}
	}

	return Coord{U: s + 0.5, V: t + 0.5}
}

// solveT back-substitutes s into r - s·E = t·(F + s·G).
func (a *Analytic) solveT(r vec.Vec2, s float64) float64 {
	return divide(r.Sub(a.e.Mul(s)), a.f.Add(a.g.Mul(s)))
}

// better reports whether (s1,t1) is a better root than (s0,t0).
//
// Roots within rootSlack of the centred unit square are preferred.  Among
// two such roots the one with the smaller residual wins: patches with a
// collapsed edge always have a spurious root on that edge, for which the
// back-substitution for t breaks down.  Among two outside roots the one
// closer to the square wins.
func (a *Analytic) better(r vec.Vec2, s1, t1, s0, t0 float64) bool {
	d1 := max(math.Abs(s1), math.Abs(t1))
	d0 := max(math.Abs(s0), math.Abs(t0))
	in1 := d1 <= 0.5+rootSlack
	in0 := d0 <= 0.5+rootSlack
	if in1 != in0 {
		return in1
	}
	if in1 {
		return a.residual(r, s1, t1) < a.residual(r, s0, t0)
	}
	return d1 < d0
}

// residual returns the max-norm of s·E + t·F + s·t·G - r.
func (c *centred) residual(r vec.Vec2, s, t float64) float64 {
	res := c.eval(s, t).Sub(r)
	return max(math.Abs(res.X), math.Abs(res.Y))
}

// divide solves num = x·den for x, using the larger component of den.
func divide(num, den vec.Vec2) float64 {
	if math.Abs(den.X) >= math.Abs(den.Y) {
		if den.X == 0 {
			return 0
		}
		return num.X / den.X
	}
	return num.Y / den.Y
}

// Newton inverts a bilinear patch by Newton iteration started at the
// centroid.
//
// This is simpler than [Analytic] and degrades more gently for patches
// with nearly parallel adjacent edges, but the default two iterations
// give lower accuracy for strongly irregular patches.
type Newton struct {
	centred
	iterations int
}

// NewNewton prepares the inversion of q.
// Near-parallelogram patches use one iteration, all others two.
func NewNewton(q Quad) Newton {
	c := newCentred(q)
	n := newtonIterations
	if c.classify() == patchLinear {
		n = newtonIterationsLinear
	}
	return Newton{centred: c, iterations: n}
}

// WithIterations returns a copy of n which performs k Newton steps.
func (n Newton) WithIterations(k int) Newton {
	n.iterations = k
	return n
}

// Invert returns the coordinates (u,v) with q.Eval(u,v) ≈ p.
func (n Newton) Invert(p vec.Vec2) Coord {
	r := p.Sub(n.m)
	var s, t float64
	for range n.iterations {
		s, t = n.newtonStep(r, s, t)
	}
	return Coord{U: s + 0.5, V: t + 0.5}
}

// Invert returns the parametric coordinates of p on the patch q,
// using the analytic solver.
//
// When many points are inverted against the same patch, use [NewAnalytic]
// once and call Invert on the result.
func Invert(q Quad, p vec.Vec2) Coord {
	return NewAnalytic(q).Invert(p)
}
