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

import "seehuhn.de/go/geom/matrix"

// offsetCases place the geometry far away from the origin in user space
// and move it back to the canvas using the CTM.
var offsetCases = []TestCase{
	{
		Name: "large_offset_rectangle",
		Patches: []Patch{
			solid(pt(1000, 2000), pt(1002, 2000), pt(1000, 2001), pt(1002, 2001), 4, 4),
		},
		Width:  64,
		Height: 64,
		CTM:    matrix.Matrix{20, 0, 0, 20, 12 - 20*1000, 22 - 20*2000},
	},
	{
		Name:    "small_shape_large_offset",
		Patches: []Patch{offsetQuad(10000, 10000)},
		Width:   64,
		Height:  64,
		CTM:     matrix.Matrix{1, 0, 0, 1, -10000, -10000},
	},
	{
		Name:    "very_large_offset",
		Patches: []Patch{offsetQuad(1e6, 1e6)},
		Width:   64,
		Height:  64,
		CTM:     matrix.Matrix{1, 0, 0, 1, -1e6, -1e6},
	},
}

// offsetQuad returns an irregular quad with corners near (x+32, y+32).
func offsetQuad(x, y float64) Patch {
	return solid(
		pt(x+20.25, y+20.5),
		pt(x+43.75, y+21),
		pt(x+19.5, y+44),
		pt(x+44.5, y+43.25),
		16, 16,
	)
}
