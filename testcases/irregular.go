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

var irregularCases = []TestCase{
	{
		Name: "skewed_quad",
		Patches: []Patch{
			solid(pt(0.1, 0.1), pt(1.1, 0), pt(-0.1, 1.5), pt(1, 1), 10, 10),
		},
		Width:  64,
		Height: 64,
		CTM:    matrix.Matrix{30, 0, 0, 30, 10, 5},
	},
	{
		Name: "trapezoid",
		Patches: []Patch{
			solid(pt(20, 8), pt(44, 8), pt(4, 56), pt(60, 56), 8, 8),
		},
		Width:  64,
		Height: 64,
	},
	{
		Name: "kite",
		Patches: []Patch{
			solid(pt(32, 4), pt(58, 30), pt(6, 30), pt(32, 60), 12, 12),
		},
		Width:  64,
		Height: 64,
	},
	{
		Name: "general_quad",
		Patches: []Patch{
			solid(pt(6, 10), pt(50, 4), pt(14, 58), pt(60, 44), 5, 7),
		},
		Width:  64,
		Height: 64,
	},

	// Mirrored: the micropolygons have the opposite orientation.
	{
		Name: "mirrored",
		Patches: []Patch{
			solid(pt(50, 4), pt(6, 10), pt(60, 44), pt(14, 58), 7, 5),
		},
		Width:  64,
		Height: 64,
	},
}
