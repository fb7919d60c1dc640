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


// Command genpdf writes one PDF per test case, showing the micropolygon
// wireframes and the positions of all covered samples.  The plots are
// meant for visual inspection of coverage near shared edges.
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"maps"
	"os"
	"path/filepath"
	"slices"

	"seehuhn.de/go/geom/matrix"
	"seehuhn.de/go/geom/path"
	"seehuhn.de/go/geom/rect"
	"seehuhn.de/go/pdf"
	"seehuhn.de/go/pdf/document"
	"seehuhn.de/go/pdf/graphics"
	"seehuhn.de/go/pdf/graphics/color"

	"seehuhn.de/go/reyes"
	"seehuhn.de/go/reyes/testcases"
)

func main() {
	outDir := flag.String("d", "testdata/plots", "output directory")
	samples := flag.Int("samples", 4, "samples per pixel along each axis")
	flag.Parse()

	if err := os.MkdirAll(*outDir, 0755); err != nil {
		slog.Error("cannot create output directory", "err", err)
		os.Exit(1)
	}

	for _, category := range slices.Sorted(maps.Keys(testcases.All)) {
		for _, tc := range testcases.All[category] {
			name := category + "_" + tc.Name
			pdfPath := filepath.Join(*outDir, name+".pdf")
			if err := generatePDF(tc, *samples, pdfPath); err != nil {
				slog.Error("cannot write plot", "case", name, "err", err)
				os.Exit(1)
			}
			slog.Info("wrote plot", "file", pdfPath)
		}
	}
}

// dotSize is the side length of a sample marker, in pixels.
const dotSize = 0.12

func generatePDF(tc testcases.TestCase, samples int, pdfPath string) error {
	// Page size in points (1 point = 1 pixel at 72 DPI)
	paper := &pdf.Rectangle{
		URx: float64(tc.Width),
		URy: float64(tc.Height),
	}

	page, err := document.CreateSinglePage(pdfPath, paper, pdf.V1_7, nil)
	if err != nil {
		return err
	}

	page.SetFillColor(color.DeviceGray(1))
	page.Rectangle(0, 0, float64(tc.Width), float64(tc.Height))
	page.Fill()

	// PDF origin is bottom-left; raster coordinates have y pointing down.
	page.Transform(matrix.Matrix{1, 0, 0, -1, 0, float64(tc.Height)})

	if tc.Samples > 0 {
		samples = tc.Samples
	}
	grids := reyes.ExampleGrids(tc)

	s := reyes.NewSampler(rect.Rect{URx: float64(tc.Width), URy: float64(tc.Height)})
	s.Samples = samples
	hits := 0
	page.SetFillColor(color.DeviceGray(0.5))
	for _, g := range grids {
		s.SampleGrid(g, func(h *reyes.Hit) {
			page.Rectangle(h.P.X-dotSize/2, h.P.Y-dotSize/2, dotSize, dotSize)
			hits++
		})
	}
	if hits > 0 {
		page.Fill()
	}

	page.SetStrokeColor(color.DeviceGray(0))
	page.SetLineWidth(0.05)
	page.SetLineCap(graphics.LineCapRound)
	page.SetLineJoin(graphics.LineJoinRound)
	for _, g := range grids {
		for cmd, pts := range g.Outline().Iter() {
			switch cmd {
			case path.CmdMoveTo:
				page.MoveTo(pts[0].X, pts[0].Y)
			case path.CmdLineTo:
				page.LineTo(pts[0].X, pts[0].Y)
			case path.CmdClose:
				page.ClosePath()
			default:
				return fmt.Errorf("unexpected path command %v", cmd)
			}
		}
	}
	page.Stroke()

	return page.Close()
}
