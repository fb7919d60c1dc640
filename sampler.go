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
	"math/rand/v2"
	"slices"

	"seehuhn.de/go/geom/rect"
	"seehuhn.de/go/geom/vec"
)

// Hit describes a sample covered by a micropolygon.
type Hit struct {
	X, Y int      // pixel
	S    int      // sample index within the pixel, row-major
	P    vec.Vec2 // sample position in raster coordinates

	I, J   int   // micropolygon
	Local  Coord // coordinates within the micropolygon, clamped to [0,1]
	Global Coord // coordinates within the whole grid

	Z     float64 // interpolated depth
	Value float64 // interpolated shaded value
}

// Sampler determines which samples are covered by the micropolygons of a
// grid.  Create one instance and reuse it for many grids.  Internal
// buffers grow as needed but never shrink.
//
// A Sampler is not safe for concurrent use.  Use one Sampler per bucket
// or per goroutine.
type Sampler struct {
	// Clip bounds sampling to this raster-space rectangle.
	// Coordinates must be integer-aligned.
	Clip rect.Rect

	// Samples is the number of samples per pixel along each axis; each
	// pixel carries Samples×Samples samples.  Must be at least 1.
	Samples int

	// Jitter moves each sample to a random position within its stratum.
	// The positions only depend on Seed and the pixel, so that all
	// micropolygons see the same samples.
	Jitter bool

	// Seed selects the jitter pattern.
	Seed uint64

	// Solver selects how covered samples are mapped back to (u,v).
	Solver SolverKind

	rng       rand.PCG
	pts       []vec.Vec2 // sample positions of the current pixel
	ptsPixelX int
	ptsPixelY int
	ptsValid  bool

	cover []float32 // per-pixel coverage, reused as output
}

// NewSampler returns a Sampler with the given clip rectangle,
// four by four centred samples per pixel and the analytic solver.
func NewSampler(clip rect.Rect) *Sampler {
	return &Sampler{
		Clip:    clip,
		Samples: defaultSamples,
		Solver:  SolverAnalytic,
	}
}

// Reset restores the default settings for a new clip rectangle, keeping
// the capacity of internal buffers.
func (s *Sampler) Reset(clip rect.Rect) {
	s.Clip = clip
	s.Samples = defaultSamples
	s.Jitter = false
	s.Seed = 0
	s.Solver = SolverAnalytic

	s.pts = s.pts[:0]
	s.ptsValid = false
	s.cover = s.cover[:0]
}

// pixelSamples returns the sample positions of pixel (x,y).
// The returned slice is only valid until the next call.
func (s *Sampler) pixelSamples(x, y int) []vec.Vec2 {
	if s.ptsValid && s.ptsPixelX == x && s.ptsPixelY == y {
		return s.pts
	}

	n := max(s.Samples, 1)
	s.pts = slices.Grow(s.pts[:0], n*n)[:n*n]
	scale := 1 / float64(n)

	if s.Jitter {
		// Per-pixel stream: reproducible, and independent of the order in
		// which pixels are visited.
		s.rng.Seed(s.Seed, uint64(uint32(x))<<32|uint64(uint32(y)))
	}

	k := 0
	for sy := range n {
		for sx := range n {
			ox, oy := 0.5, 0.5
			if s.Jitter {
				ox = unitFloat(s.rng.Uint64())
				oy = unitFloat(s.rng.Uint64())
			}
			s.pts[k] = vec.Vec2{
				X: float64(x) + (float64(sx)+ox)*scale,
				Y: float64(y) + (float64(sy)+oy)*scale,
			}
			k++
		}
	}

	s.ptsPixelX, s.ptsPixelY = x, y
	s.ptsValid = true
	return s.pts
}

// unitFloat maps random bits to [0,1).
func unitFloat(bits uint64) float64 {
	return float64(bits>>11) * 0x1p-53
}

// pixelRange clamps a bounding box to the clip rectangle and converts it to
// a half-open range of pixels.
func (s *Sampler) pixelRange(b rect.Rect) (xMin, xMax, yMin, yMax int, ok bool) {
	clipXMin := int(s.Clip.LLx)
	clipXMax := int(s.Clip.URx)
	clipYMin := int(s.Clip.LLy)
	clipYMax := int(s.Clip.URy)

	xMin = max(int(math.Floor(b.LLx)), clipXMin)
	xMax = min(int(math.Floor(b.URx))+1, clipXMax)
	yMin = max(int(math.Floor(b.LLy)), clipYMin)
	yMax = min(int(math.Floor(b.URy))+1, clipYMax)

	if xMin >= xMax || yMin >= yMax {
		return 0, 0, 0, 0, false
	}
	return xMin, xMax, yMin, yMax, true
}

// SampleGrid calls visit for every sample inside the clip rectangle which
// is covered by a micropolygon of g.  Since micropolygons of a grid tile
// without overlap, each sample is reported at most once per grid, unless
// the grid folds over itself.
//
// The Hit passed to visit is only valid for the duration of the call.
func (s *Sampler) SampleGrid(g *Grid, visit func(h *Hit)) {
	switch s.Solver {
	case SolverNewton:
		sampleGrid(s, g, NewNewton, visit)
	default:
		sampleGrid(s, g, NewAnalytic, visit)
	}
}

// sampleGrid is instantiated once per solver type, so that the per-sample
// Invert calls are statically dispatched.
func sampleGrid[I Inverter](s *Sampler, g *Grid, build func(Quad) I, visit func(h *Hit)) {
	s.ptsValid = false

	invNU := 1 / float64(g.NU)
	invNV := 1 / float64(g.NV)

	var h Hit
	for j := range g.NV {
		for i := range g.NU {
			q := g.Micropolygon(i, j)
			b := q.Bounds()
			xMin, xMax, yMin, yMax, ok := s.pixelRange(b)
			if !ok {
				continue
			}

			edges := NewQuadEdges(q)
			if edges.Empty() {
				continue
			}

			// The solver is only set up once the first sample is covered;
			// most micropolygons are small and many cover no sample.
			var inv I
			haveInv := false

			for y := yMin; y < yMax; y++ {
				for x := xMin; x < xMax; x++ {
					for k, p := range s.pixelSamples(x, y) {
						if p.X < b.LLx || p.X > b.URx || p.Y < b.LLy || p.Y > b.URy {
							continue
						}
						if !edges.Covers(p) {
							continue
						}
						if !haveInv {
							inv = build(q)
							haveInv = true
						}
						c := inv.Invert(p).Clamp()

						h = Hit{
							X: x, Y: y, S: k, P: p,
							I: i, J: j,
							Local: c,
							Global: Coord{
								U: (float64(i) + c.U) * invNU,
								V: (float64(j) + c.V) * invNV,
							},
							Z:     g.interpolate(g.Z, i, j, c, 0),
							Value: g.interpolate(g.Value, i, j, c, 1),
						}
						visit(&h)
					}
				}
			}
		}
	}
}

// Coverage computes, for every pixel touched by g, the fraction of its
// samples covered by the grid.  Coverage is delivered row-by-row via the
// emit callback; runs of zero coverage at the ends of a row are trimmed.
// The coverage slice passed to emit is only valid for the duration of the
// callback.
func (s *Sampler) Coverage(g *Grid, emit func(y, xMin int, coverage []float32)) {
	xMin, xMax, yMin, yMax, ok := s.pixelRange(g.Bounds())
	if !ok {
		return
	}

	width := xMax - xMin
	height := yMax - yMin
	size := width * height
	s.cover = slices.Grow(s.cover[:0], size)[:size]
	clear(s.cover)

	n := max(s.Samples, 1)
	weight := 1 / float32(n*n)
	s.SampleGrid(g, func(h *Hit) {
		s.cover[(h.Y-yMin)*width+(h.X-xMin)] += weight
	})

	for row := range height {
		rowOffset := row * width
		coverage := s.cover[rowOffset : rowOffset+width]
		for i, c := range coverage {
			coverage[i] = min(c, 1)
		}
		if trimmed, offset := trimZeros(coverage); trimmed != nil {
			emit(yMin+row, xMin+offset, trimmed)
		}
	}
}

// trimZeros returns the sub-slice of coverage with leading and trailing
// zeros removed, and the offset of its first element.
// It returns nil if all values are zero.
func trimZeros(coverage []float32) (trimmed []float32, offset int) {
	n := len(coverage)
	lo := 0
	for lo < n && coverage[lo] == 0 {
		lo++
	}
	if lo == n {
		return nil, 0
	}
	hi := n - 1
	for hi > lo && coverage[hi] == 0 {
		hi--
	}
	return coverage[lo : hi+1], lo
}

const defaultSamples = 4
