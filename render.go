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

// Package reyes implements the sampling stage of a REYES-style
// micropolygon renderer.
//
// The two building blocks are the edge equations in [QuadEdges], which
// decide whether a sample lies inside a micropolygon, and the inverse
// bilinear solvers [Analytic] and [Newton], which map a covered sample back
// to the (u,v) coordinates of the micropolygon.  [Sampler] combines both
// for a diced [Grid], and [Render] resolves many grids into an image.
package reyes

//go:generate go run ./testcases/export

import (
	"context"
	"errors"
	"fmt"
	"image"
	"math"
	"runtime"
	"slices"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"seehuhn.de/go/geom/rect"
	"seehuhn.de/go/reyes/testcases"
)

// ErrInvalidOptions is returned by [Render] for unusable options.
var ErrInvalidOptions = errors.New("reyes: invalid options")

// Options controls [Render].  Zero values select the defaults.
type Options struct {
	// Width and Height give the image size in pixels.  Both are required.
	Width, Height int

	// BucketSize is the side length of the square image regions rendered
	// independently.  Default: 16.
	BucketSize int

	// Samples is the number of samples per pixel along each axis.
	// Default: 4.
	Samples int

	// Jitter and Seed control stratified jittered sampling,
	// see [Sampler].
	Jitter bool
	Seed   uint64

	// Solver selects the inverse bilinear solver.
	Solver SolverKind

	// Workers limits the number of buckets rendered concurrently.
	// Default: GOMAXPROCS.
	Workers int
}

const defaultBucketSize = 16

// Render resolves the grids into a grayscale image.
//
// Each sample takes the value of the nearest grid covering it (smallest
// Z; on ties the earlier grid wins), and uncovered samples count as 0.
// Pixel values are the sample averages, clamped to [0,1].
//
// Buckets are rendered concurrently.  Grids are only read, so they may be
// shared with other goroutines which do not modify them.  If ctx is
// cancelled, Render stops starting new buckets and returns the context's
// error.
func Render(ctx context.Context, grids []*Grid, opt *Options) (*image.Gray, error) {
	if opt == nil || opt.Width <= 0 || opt.Height <= 0 {
		return nil, fmt.Errorf("%w: image size must be positive", ErrInvalidOptions)
	}
	if opt.BucketSize < 0 || opt.Samples < 0 || opt.Workers < 0 {
		return nil, fmt.Errorf("%w: negative parameter", ErrInvalidOptions)
	}
	for i, g := range grids {
		if g.NU <= 0 || g.NV <= 0 || len(g.P) != (g.NU+1)*(g.NV+1) {
			return nil, fmt.Errorf("%w: grid %d is malformed", ErrInvalidOptions, i)
		}
	}

	bucketSize := opt.BucketSize
	if bucketSize == 0 {
		bucketSize = defaultBucketSize
	}
	samples := opt.Samples
	if samples == 0 {
		samples = defaultSamples
	}
	workers := opt.Workers
	if workers == 0 {
		workers = runtime.GOMAXPROCS(0)
	}

	start := time.Now()
	img := image.NewGray(image.Rect(0, 0, opt.Width, opt.Height))

	bounds := make([]rect.Rect, len(grids))
	for i, g := range grids {
		bounds[i] = g.Bounds()
	}

	pool := sync.Pool{
		New: func() any { return &bucket{} },
	}

	eg, ctx := errgroup.WithContext(ctx)
	eg.SetLimit(workers)
	numBuckets := 0
	for y0 := 0; y0 < opt.Height; y0 += bucketSize {
		for x0 := 0; x0 < opt.Width; x0 += bucketSize {
			clip := rect.Rect{
				LLx: float64(x0),
				LLy: float64(y0),
				URx: float64(min(x0+bucketSize, opt.Width)),
				URy: float64(min(y0+bucketSize, opt.Height)),
			}
			numBuckets++
			eg.Go(func() error {
				if err := ctx.Err(); err != nil {
					return err
				}
				b := pool.Get().(*bucket)
				defer pool.Put(b)
				b.render(img, clip, grids, bounds, opt, samples)
				return nil
			})
		}
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}

	Logger().Debug("render done",
		"width", opt.Width,
		"height", opt.Height,
		"grids", len(grids),
		"buckets", numBuckets,
		"solver", opt.Solver.String(),
		"duration", time.Since(start))
	return img, nil
}

// bucket holds the per-goroutine state for rendering one image region.
type bucket struct {
	sampler Sampler
	depth   []float64 // per sample, +Inf where uncovered
	value   []float64 // per sample
}

func (b *bucket) render(img *image.Gray, clip rect.Rect, grids []*Grid, bounds []rect.Rect, opt *Options, samples int) {
	b.sampler.Reset(clip)
	b.sampler.Samples = samples
	b.sampler.Jitter = opt.Jitter
	b.sampler.Seed = opt.Seed
	b.sampler.Solver = opt.Solver

	x0, y0 := int(clip.LLx), int(clip.LLy)
	w := int(clip.URx) - x0
	h := int(clip.URy) - y0
	spp := samples * samples
	size := w * h * spp

	b.depth = slices.Grow(b.depth[:0], size)[:size]
	b.value = slices.Grow(b.value[:0], size)[:size]
	for i := range b.depth {
		b.depth[i] = math.Inf(1)
	}
	clear(b.value)

	visit := func(hit *Hit) {
		idx := ((hit.Y-y0)*w+(hit.X-x0))*spp + hit.S
		if hit.Z < b.depth[idx] {
			b.depth[idx] = hit.Z
			b.value[idx] = hit.Value
		}
	}
	for i, g := range grids {
		if !overlaps(bounds[i], clip) {
			continue
		}
		b.sampler.SampleGrid(g, visit)
	}

	// resolve
	for y := range h {
		row := img.Pix[(y0+y)*img.Stride+x0:]
		for x := range w {
			base := (y*w + x) * spp
			sum := 0.0
			for k := range spp {
				if !math.IsInf(b.depth[base+k], 1) {
					sum += b.value[base+k]
				}
			}
			c := min(max(sum/float64(spp), 0), 1)
			row[x] = byte(math.Round(c * 255))
		}
	}
}

// overlaps reports whether the closed rectangle a intersects the pixel
// region clip.
func overlaps(a, clip rect.Rect) bool {
	return a.URx >= clip.LLx && a.LLx < clip.URx && a.URy >= clip.LLy && a.LLy < clip.URy
}

// ExampleGrids dices the patches of a test case into raster-space grids.
func ExampleGrids(tc testcases.TestCase) []*Grid {
	grids := make([]*Grid, 0, len(tc.Patches))
	for _, tp := range tc.Patches {
		p := Patch{
			Corners: Quad{A: tp.Corners[0], B: tp.Corners[1], C: tp.Corners[2], D: tp.Corners[3]},
			Z:       tp.Z,
			Value:   tp.Value,
		}
		grids = append(grids, p.Dice(tp.NU, tp.NV, tc.CTM))
	}
	return grids
}

// exampleSamples is the sampling rate used for test cases which do not
// specify one.
const exampleSamples = 8

// RenderExample renders a test case into a grayscale buffer.
// The buffer is in row-major order with the given stride.
// Each byte represents the resolved value from 0 to 255.
func RenderExample(tc testcases.TestCase, buf []byte, width, height, stride int) error {
	samples := tc.Samples
	if samples == 0 {
		samples = exampleSamples
	}
	img, err := Render(context.Background(), ExampleGrids(tc), &Options{
		Width:   width,
		Height:  height,
		Samples: samples,
	})
	if err != nil {
		return err
	}
	for y := range height {
		copy(buf[y*stride:y*stride+width], img.Pix[y*img.Stride:y*img.Stride+width])
	}
	return nil
}

