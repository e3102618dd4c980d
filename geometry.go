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

package pdfview

import (
	"errors"

	"seehuhn.de/go/geom/vec"
)

// Size is the width and height of a page or a viewport.
type Size struct {
	Width, Height float64
}

// Scale returns the size multiplied by f.
func (s Size) Scale(f float64) Size {
	return Size{Width: s.Width * f, Height: s.Height * f}
}

// IsZero reports whether the size has no area.  Sizes with a NaN
// component count as zero.
func (s Size) IsZero() bool {
	return !(s.Width > 0 && s.Height > 0)
}

// Rotation describes how a page is rotated when it is mapped to the device.
// The possible values are [Rotate0], [Rotate90], [Rotate180], [Rotate270].
type Rotation int

// Valid values for Rotation.
const (
	Rotate0   Rotation = iota // don't rotate
	Rotate90                  // rotate 90 degrees clockwise
	Rotate180                 // rotate 180 degrees clockwise
	Rotate270                 // rotate 270 degrees clockwise
)

// DecodeRotation converts an angle in degrees into a Rotation.
// The angle must be a multiple of 90.
func DecodeRotation(deg int) (Rotation, error) {
	deg = deg % 360
	if deg < 0 {
		deg += 360
	}
	switch deg {
	case 0:
		return Rotate0, nil
	case 90:
		return Rotate90, nil
	case 180:
		return Rotate180, nil
	case 270:
		return Rotate270, nil
	default:
		return 0, errNoRotation
	}
}

var errNoRotation = errors.New("not a valid page rotation")

// Degrees returns the rotation angle in degrees.
func (r Rotation) Degrees() int {
	switch r {
	case Rotate90:
		return 90
	case Rotate180:
		return 180
	case Rotate270:
		return 270
	default:
		return 0
	}
}

// DeviceBox is the area a page occupies in device space.  X and Y give the
// top-left corner, Width and Height the extent of the page at the current
// zoom level.
type DeviceBox struct {
	X, Y          float64
	Width, Height float64
}

// IsEmpty reports whether the box has no area.
func (b DeviceBox) IsEmpty() bool {
	return b.Width <= 0 || b.Height <= 0
}

// Rect is a rectangle in screen coordinates, with y pointing down.
// A normalized Rect has Left <= Right and Top <= Bottom.
type Rect struct {
	Left, Top, Right, Bottom float64
}

// RectFromPoints returns the smallest normalized rectangle containing
// both points.
func RectFromPoints(a, b vec.Vec2) Rect {
	r := Rect{Left: a.X, Top: a.Y, Right: b.X, Bottom: b.Y}
	r.Sort()
	return r
}

// Sort swaps the coordinates where needed so that r is normalized.
func (r *Rect) Sort() {
	if r.Left > r.Right {
		r.Left, r.Right = r.Right, r.Left
	}
	if r.Top > r.Bottom {
		r.Top, r.Bottom = r.Bottom, r.Top
	}
}

// Dx returns the width of the rectangle.
func (r Rect) Dx() float64 {
	return r.Right - r.Left
}

// Dy returns the height of the rectangle.
func (r Rect) Dy() float64 {
	return r.Bottom - r.Top
}

// Handle identifies a native object in the page source.
// The zero Handle denotes failure or absence.
type Handle uint64
