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

// degenerateCases use patches with coincident corners.
var degenerateCases = []TestCase{
	{
		Name: "triangle_ab",
		Patches: []Patch{
			solid(pt(32, 6), pt(32, 6), pt(6, 58), pt(58, 58), 8, 8),
		},
		Width:  64,
		Height: 64,
	},
	{
		Name: "triangle_cd",
		Patches: []Patch{
			solid(pt(6, 6), pt(58, 6), pt(32, 58), pt(32, 58), 8, 8),
		},
		Width:  64,
		Height: 64,
	},
	{
		Name: "triangle_bd",
		Patches: []Patch{
			solid(pt(6, 6), pt(58, 32), pt(6, 58), pt(58, 32), 8, 8),
		},
		Width:  64,
		Height: 64,
	},
}
