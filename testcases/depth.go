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

import "seehuhn.de/go/geom/vec"

// depthCases contain overlapping patches with different depths and values.
var depthCases = []TestCase{
	{
		Name: "near_over_far",
		Patches: []Patch{
			{
				Corners: [4]vec.Vec2{pt(8, 8), pt(40, 8), pt(8, 40), pt(40, 40)},
				NU:      4,
				NV:      4,
				Z:       [4]float64{1, 1, 1, 1},
				Value:   [4]float64{1, 1, 1, 1},
			},
			{
				Corners: [4]vec.Vec2{pt(24, 24), pt(56, 24), pt(24, 56), pt(56, 56)},
				NU:      4,
				NV:      4,
				Z:       [4]float64{0.5, 0.5, 0.5, 0.5},
				Value:   [4]float64{0.5, 0.5, 0.5, 0.5},
			},
		},
		Width:  64,
		Height: 64,
	},

	// Two patches which intersect in depth along the line x = 32.
	{
		Name: "intersecting",
		Patches: []Patch{
			{
				Corners: [4]vec.Vec2{pt(8, 8), pt(56, 8), pt(8, 56), pt(56, 56)},
				NU:      8,
				NV:      8,
				Z:       [4]float64{0, 1, 0, 1},
				Value:   [4]float64{1, 1, 1, 1},
			},
			{
				Corners: [4]vec.Vec2{pt(8, 16), pt(56, 16), pt(8, 48), pt(56, 48)},
				NU:      8,
				NV:      8,
				Z:       [4]float64{1, 0, 1, 0},
				Value:   [4]float64{0.25, 0.25, 0.25, 0.25},
			},
		},
		Width:  64,
		Height: 64,
	},

	// A value gradient across a single patch.
	{
		Name: "gradient",
		Patches: []Patch{
			{
				Corners: [4]vec.Vec2{pt(4, 4), pt(60, 4), pt(4, 60), pt(60, 60)},
				NU:      16,
				NV:      16,
				Value:   [4]float64{0, 1, 0, 1},
			},
		},
		Width:  64,
		Height: 64,
	},
}
