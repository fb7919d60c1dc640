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

var regularCases = []TestCase{
	{
		Name:    "square",
		Patches: []Patch{box(8, 8, 56, 56, 8, 8)},
		Width:   64,
		Height:  64,
	},
	{
		Name:    "rectangle_fine",
		Patches: []Patch{box(4, 20, 60, 44, 32, 16)},
		Width:   64,
		Height:  64,
	},
	{
		Name: "parallelogram",
		Patches: []Patch{
			solid(pt(10, 10), pt(40, 16), pt(20, 50), pt(50, 56), 6, 6),
		},
		Width:  64,
		Height: 64,
	},

	// Micropolygons smaller than a pixel, with corners off the pixel grid.
	{
		Name:    "subpixel_micropolygons",
		Patches: []Patch{box(16.3, 16.7, 47.6, 47.2, 64, 64)},
		Width:   64,
		Height:  64,
	},

	// One sample per pixel: every pixel is either fully in or fully out.
	{
		Name:    "single_sample",
		Patches: []Patch{box(10.25, 12.75, 50.75, 40.25, 4, 4)},
		Width:   64,
		Height:  64,
		Samples: 1,
	},
}
