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
	"context"
	"fmt"
	"image"
	"image/color"
	"maps"
	"slices"
	"testing"

	"golang.org/x/image/vector"

	"seehuhn.de/go/geom/matrix"
	"seehuhn.de/go/geom/rect"
	"seehuhn.de/go/reyes/testcases"
)

var benchSizes = []int{20, 200, 1000}

// benchPatch returns an irregular patch filling most of a size×size image.
func benchPatch(size int) Patch {
	s := float64(size)
	return Patch{
		Corners: Quad{
			pt(0.10*s, 0.12*s),
			pt(0.88*s, 0.05*s),
			pt(0.05*s, 0.90*s),
			pt(0.93*s, 0.85*s),
		},
		Value: [4]float64{1, 1, 1, 1},
	}
}

// benchGrid dices the benchmark patch into micropolygons of about one
// pixel.
func benchGrid(size int) *Grid {
	p := benchPatch(size)
	return p.Dice(size, size, matrix.Identity)
}

// BenchmarkCoverage benchmarks the coverage of a diced patch.
func BenchmarkCoverage(b *testing.B) {
	for _, size := range benchSizes {
		for _, solver := range []SolverKind{SolverAnalytic, SolverNewton} {
			b.Run(fmt.Sprintf("%dx%d/%s", size, size, solver), func(b *testing.B) {
				clip := rect.Rect{LLx: 0, LLy: 0, URx: float64(size), URy: float64(size)}
				s := NewSampler(clip)
				g := benchGrid(size)

				dst := image.NewAlpha(image.Rect(0, 0, size, size))

				b.ResetTimer()
				b.ReportAllocs()

				for b.Loop() {
					s.Reset(clip)
					s.Solver = solver
					s.Coverage(g, func(y, xMin int, coverage []float32) {
						row := dst.Pix[y*dst.Stride+xMin:]
						for i, c := range coverage {
							row[i] = uint8(c * 255)
						}
					})
				}
			})
		}
	}
}

// BenchmarkVector benchmarks x/image/vector drawing the outline of the
// same patch.
func BenchmarkVector(b *testing.B) {
	for _, size := range benchSizes {
		b.Run(fmt.Sprintf("%dx%d", size, size), func(b *testing.B) {
			r := vector.NewRasterizer(size, size)

			dst := image.NewAlpha(image.Rect(0, 0, size, size))
			src := image.NewUniform(color.Alpha{255})

			q := benchPatch(size).Corners

			b.ResetTimer()
			b.ReportAllocs()

			for b.Loop() {
				r.Reset(size, size)
				r.MoveTo(float32(q.A.X), float32(q.A.Y))
				r.LineTo(float32(q.B.X), float32(q.B.Y))
				r.LineTo(float32(q.D.X), float32(q.D.Y))
				r.LineTo(float32(q.C.X), float32(q.C.Y))
				r.ClosePath()
				r.Draw(dst, dst.Bounds(), src, image.Point{})
			}
		})
	}
}

// BenchmarkRender benchmarks the bucketed renderer on the same patch.
func BenchmarkRender(b *testing.B) {
	for _, size := range benchSizes {
		b.Run(fmt.Sprintf("%dx%d", size, size), func(b *testing.B) {
			grids := []*Grid{benchGrid(size)}
			opt := &Options{Width: size, Height: size}

			b.ResetTimer()
			b.ReportAllocs()

			for b.Loop() {
				if _, err := Render(context.Background(), grids, opt); err != nil {
					b.Fatal(err)
				}
			}
		})
	}
}

// BenchmarkRenderAll measures steady-state performance by reusing a single
// Sampler across all test cases.  This tests buffer reuse with varying clip
// sizes.
func BenchmarkRenderAll(b *testing.B) {
	var cases []testcases.TestCase
	for _, category := range slices.Sorted(maps.Keys(testcases.All)) {
		cases = append(cases, testcases.All[category]...)
	}
	grids := make([][]*Grid, len(cases))
	for i, tc := range cases {
		grids[i] = ExampleGrids(tc)
	}

	s := NewSampler(rect.Rect{})
	visit := func(h *Hit) {}

	b.ResetTimer()
	for b.Loop() {
		for i, tc := range cases {
			s.Reset(rect.Rect{
				LLx: 0,
				LLy: 0,
				URx: float64(tc.Width),
				URy: float64(tc.Height),
			})
			if tc.Samples > 0 {
				s.Samples = tc.Samples
			}
			for _, g := range grids[i] {
				s.SampleGrid(g, visit)
			}
		}
	}
}
