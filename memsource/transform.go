// seehuhn.de/go/pdfview - page layout and coordinate mapping for PDF viewers
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

package memsource

import (
	"seehuhn.de/go/geom/matrix"
	"seehuhn.de/go/geom/vec"
	"seehuhn.de/go/pdfview"
)

// unitRotation maps the unit square in page orientation (y up) to the unit
// square in device orientation (y down), for each of the four rotations.
// All four maps are their own inverse.
var unitRotation = [4]matrix.Matrix{
	pdfview.Rotate0:   {1, 0, 0, -1, 0, 1},  // (u, 1-v)
	pdfview.Rotate90:  {0, 1, 1, 0, 0, 0},   // (v, u)
	pdfview.Rotate180: {-1, 0, 0, 1, 1, 0},  // (1-u, v)
	pdfview.Rotate270: {0, -1, -1, 0, 1, 1}, // (1-v, 1-u)
}

// pageToDevice returns the transformation from page coordinates to device
// coordinates for a page of the given size shown in box.
func pageToDevice(size pdfview.Size, box pdfview.DeviceBox, rot pdfview.Rotation) matrix.Matrix {
	return matrix.Scale(1/size.Width, 1/size.Height).
		Mul(unitRotation[rot&3]).
		Mul(matrix.Scale(box.Width, box.Height)).
		Mul(matrix.Translate(box.X, box.Y))
}

// deviceToPage is the inverse of pageToDevice.
func deviceToPage(size pdfview.Size, box pdfview.DeviceBox, rot pdfview.Rotation) matrix.Matrix {
	return matrix.Translate(-box.X, -box.Y).
		Mul(matrix.Scale(1/box.Width, 1/box.Height)).
		Mul(unitRotation[rot&3]).
		Mul(matrix.Scale(size.Width, size.Height))
}

// DeviceToPage implements the [pdfview.PageTransformer] interface.
func (d *Document) DeviceToPage(page int, box pdfview.DeviceBox, rot pdfview.Rotation, p vec.Vec2) (vec.Vec2, bool) {
	if !d.valid(page) || box.IsEmpty() || d.pages[page].Size.IsZero() {
		return vec.Vec2{}, false
	}
	M := deviceToPage(d.pages[page].Size, box, rot)
	x, y := M.Apply(p.X, p.Y)
	return vec.Vec2{X: x, Y: y}, true
}

// PageToDevice implements the [pdfview.PageTransformer] interface.
func (d *Document) PageToDevice(page int, box pdfview.DeviceBox, rot pdfview.Rotation, p vec.Vec2) (vec.Vec2, bool) {
	if !d.valid(page) || box.IsEmpty() || d.pages[page].Size.IsZero() {
		return vec.Vec2{}, false
	}
	M := pageToDevice(d.pages[page].Size, box, rot)
	x, y := M.Apply(p.X, p.Y)
	return vec.Vec2{X: x, Y: y}, true
}
