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

// Package viewport converts between screen coordinates and page coordinates.
//
// Screen coordinates have their origin in the top-left corner of the view,
// with y growing downwards.  Page coordinates have their origin in the
// bottom-left corner of a page, with y growing upwards, and are measured in
// the units of the page source.  The conversion accounts for the scroll
// position, the zoom level, the position of the page in the layout and the
// page rotation.  The final step between device space and page space is
// delegated to a [pdfview.PageTransformer].
package viewport

import (
	"seehuhn.de/go/geom/rect"
	"seehuhn.de/go/geom/vec"
	"seehuhn.de/go/pdfview"
	"seehuhn.de/go/pdfview/layout"
)

// State describes the current view of the document.
//
// ScrollX and ScrollY give the displacement of the document relative to the
// view.  Scrolling towards the end of the document makes these values
// negative.
type State struct {
	ScrollX, ScrollY float64
	Zoom             float64
	Rotation         pdfview.Rotation
}

// Mapper converts coordinates for one document.
// It is safe for concurrent use, provided the transformer is.
type Mapper struct {
	layout *layout.Layout
	src    pdfview.PageTransformer
}

// NewMapper returns a mapper which uses the given layout and transformer.
func NewMapper(l *layout.Layout, src pdfview.PageTransformer) *Mapper {
	return &Mapper{layout: l, src: src}
}

// pageBox describes where a logical page is shown in content space.
type pageBox struct {
	physical int
	box      pdfview.DeviceBox
}

// locate returns the device box of a logical page, relative to the start
// of the document.  All values are taken from the same layout snapshot.
func locate(snap *layout.Snapshot, page int, zoom float64) (pageBox, bool) {
	physical := snap.DocumentPage(page)
	if physical < 0 {
		return pageBox{}, false
	}

	primary := snap.PageOffset(page, zoom)
	secondary := snap.SecondaryPageOffset(page, zoom)
	size := snap.ScaledPageSize(page, zoom)

	res := pageBox{physical: physical}
	res.box.Width = size.Width
	res.box.Height = size.Height
	if snap.Direction() == layout.Vertical {
		res.box.X, res.box.Y = secondary, primary
	} else {
		res.box.X, res.box.Y = primary, secondary
	}
	return res, true
}

// content converts a screen point into content coordinates.
func (st State) content(x, y float64) vec.Vec2 {
	return vec.Vec2{X: x - st.ScrollX, Y: y - st.ScrollY}
}

// screen converts a point in content coordinates into screen coordinates.
func (st State) screen(p vec.Vec2) vec.Vec2 {
	return vec.Vec2{X: p.X + st.ScrollX, Y: p.Y + st.ScrollY}
}

// pageAt returns the logical page under a point in content coordinates.
func pageAt(snap *layout.Snapshot, p vec.Vec2, zoom float64) int {
	if snap.Direction() == layout.Vertical {
		return snap.PageAtOffset(p.Y, zoom)
	}
	return snap.PageAtOffset(p.X, zoom)
}

// ScreenToPage converts a screen point into page coordinates.
// The page is the logical page under the point along the scroll axis.
// If no page can be found, or if the transformation fails, ok is false.
func (m *Mapper) ScreenToPage(st State, x, y float64) (page int, p vec.Vec2, ok bool) {
	snap := m.layout.Snapshot()
	if snap.NumPages() == 0 {
		return 0, vec.Vec2{}, false
	}

	c := st.content(x, y)
	page = pageAt(snap, c, st.Zoom)
	loc, ok := locate(snap, page, st.Zoom)
	if !ok {
		return 0, vec.Vec2{}, false
	}
	p, ok = m.src.DeviceToPage(loc.physical, loc.box, st.Rotation, c)
	if !ok {
		return 0, vec.Vec2{}, false
	}
	return page, p, true
}

// PageToScreen converts a point on a logical page into screen coordinates.
func (m *Mapper) PageToScreen(st State, page int, p vec.Vec2) (vec.Vec2, bool) {
	loc, ok := locate(m.layout.Snapshot(), page, st.Zoom)
	if !ok {
		return vec.Vec2{}, false
	}
	q, ok := m.src.PageToDevice(loc.physical, loc.box, st.Rotation, p)
	if !ok {
		return vec.Vec2{}, false
	}
	return st.screen(q), true
}

// PageRectToScreen converts a rectangle on a logical page into a screen
// rectangle.  The corners are transformed independently and the result is
// normalized, so that Left <= Right and Top <= Bottom.
func (m *Mapper) PageRectToScreen(st State, page int, r rect.Rect) (pdfview.Rect, bool) {
	loc, ok := locate(m.layout.Snapshot(), page, st.Zoom)
	if !ok {
		return pdfview.Rect{}, false
	}

	a, ok := m.src.PageToDevice(loc.physical, loc.box, st.Rotation, vec.Vec2{X: r.LLx, Y: r.LLy})
	if !ok {
		return pdfview.Rect{}, false
	}
	b, ok := m.src.PageToDevice(loc.physical, loc.box, st.Rotation, vec.Vec2{X: r.URx, Y: r.URy})
	if !ok {
		return pdfview.Rect{}, false
	}
	return pdfview.RectFromPoints(st.screen(a), st.screen(b)), true
}

// ScreenRectToPage converts a screen rectangle into a rectangle on the
// logical page under the rectangle's first corner (Left, Top).  Both
// corners are mapped relative to this page and the result is normalized.
func (m *Mapper) ScreenRectToPage(st State, r pdfview.Rect) (page int, res rect.Rect, ok bool) {
	snap := m.layout.Snapshot()
	if snap.NumPages() == 0 {
		return 0, rect.Rect{}, false
	}

	page = pageAt(snap, st.content(r.Left, r.Top), st.Zoom)
	res, ok = screenRectOnPage(snap, m.src, st, page, r)
	if !ok {
		return 0, rect.Rect{}, false
	}
	return page, res, true
}

// ScreenRectOnPage converts a screen rectangle into page coordinates of
// the given logical page.  The rectangle does not need to overlap the page.
func (m *Mapper) ScreenRectOnPage(st State, page int, r pdfview.Rect) (rect.Rect, bool) {
	return screenRectOnPage(m.layout.Snapshot(), m.src, st, page, r)
}

func screenRectOnPage(snap *layout.Snapshot, src pdfview.PageTransformer, st State, page int, r pdfview.Rect) (rect.Rect, bool) {
	loc, ok := locate(snap, page, st.Zoom)
	if !ok {
		return rect.Rect{}, false
	}

	a, ok := src.DeviceToPage(loc.physical, loc.box, st.Rotation, st.content(r.Left, r.Top))
	if !ok {
		return rect.Rect{}, false
	}
	b, ok := src.DeviceToPage(loc.physical, loc.box, st.Rotation, st.content(r.Right, r.Bottom))
	if !ok {
		return rect.Rect{}, false
	}
	res := rect.Rect{
		LLx: min(a.X, b.X),
		LLy: min(a.Y, b.Y),
		URx: max(a.X, b.X),
		URy: max(a.Y, b.Y),
	}
	return res, true
}

// PageBox returns the device box of a logical page in screen coordinates.
func (m *Mapper) PageBox(st State, page int) (pdfview.DeviceBox, bool) {
	loc, ok := locate(m.layout.Snapshot(), page, st.Zoom)
	if !ok {
		return pdfview.DeviceBox{}, false
	}
	box := loc.box
	box.X += st.ScrollX
	box.Y += st.ScrollY
	return box, true
}
