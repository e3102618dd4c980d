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
	"image"
	"image/color"
	"image/draw"
	"math"

	xdraw "golang.org/x/image/draw"
	"seehuhn.de/go/pdfview"
)

// Paper is the colour used for the page background by RenderPage.
var Paper color.Color = color.White

// RenderPage implements the [pdfview.Renderer] interface.
//
// The page is drawn as blank paper filling bounds.  If annotations is set,
// the image overlays of the page are scaled into their device rectangles.
// Overlay images are not rotated together with the page.
func (d *Document) RenderPage(dst draw.Image, page int, bounds image.Rectangle, annotations bool) error {
	if !d.valid(page) {
		return pdfview.ErrPageRange
	}
	bounds = bounds.Canon()
	if bounds.Empty() {
		return nil
	}

	d.mu.Lock()
	defer d.mu.Unlock()
	if d.closed {
		return pdfview.ErrClosed
	}

	draw.Draw(dst, bounds.Intersect(dst.Bounds()), image.NewUniform(Paper), image.Point{}, draw.Src)
	if !annotations || d.pages[page].Size.IsZero() {
		return nil
	}

	box := pdfview.DeviceBox{
		X:      float64(bounds.Min.X),
		Y:      float64(bounds.Min.Y),
		Width:  float64(bounds.Dx()),
		Height: float64(bounds.Dy()),
	}
	M := pageToDevice(d.pages[page].Size, box, d.pages[page].Rotation)
	for _, c := range d.byPage[page] {
		for _, im := range d.containers[c].images {
			ax, ay := M.Apply(im.bbox.LLx, im.bbox.LLy)
			bx, by := M.Apply(im.bbox.URx, im.bbox.URy)
			r := image.Rect(
				int(math.Round(ax)), int(math.Round(ay)),
				int(math.Round(bx)), int(math.Round(by)),
			) // image.Rect sorts the corners
			clip := r.Intersect(bounds)
			if clip.Empty() {
				continue
			}
			xdraw.BiLinear.Scale(restrict(dst, clip), r, im.img, im.img.Bounds(), xdraw.Over, nil)
		}
	}
	return nil
}

// restrict returns a view of dst which only covers r.  Drawing through the
// view leaves the pixels of dst outside r unchanged.
func restrict(dst draw.Image, r image.Rectangle) draw.Image {
	if s, ok := dst.(interface {
		SubImage(image.Rectangle) image.Image
	}); ok {
		if sub, ok := s.SubImage(r).(draw.Image); ok {
			return sub
		}
	}
	return clipped{Image: dst, r: r.Intersect(dst.Bounds())}
}

// clipped restricts the bounds of a draw.Image without a SubImage method.
type clipped struct {
	draw.Image
	r image.Rectangle
}

func (c clipped) Bounds() image.Rectangle { return c.r }
