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

// Package document combines the layout, coordinate mapping, page tracking
// and overlay management for one open document.
//
// A [Document] is the object a viewer holds while a document is shown.  All
// page numbers passed to its methods are logical page numbers, which are
// translated into physical pages of the [pdfview.Source] using the page
// sequence of the layout.
package document

import (
	"errors"
	"fmt"
	"image"
	"image/draw"
	"sync/atomic"

	"seehuhn.de/go/geom/rect"
	"seehuhn.de/go/geom/vec"
	"seehuhn.de/go/pdfview"
	"seehuhn.de/go/pdfview/layout"
	"seehuhn.de/go/pdfview/overlay"
	"seehuhn.de/go/pdfview/pagestate"
	"seehuhn.de/go/pdfview/viewport"
	"seehuhn.de/go/xmp"
)

// Options control how a document is shown.  A nil value for any of the
// fields selects the defaults of the corresponding package.
type Options struct {
	Layout  *layout.Options
	Overlay *overlay.Options
}

var errFailedBefore = errors.New("page failed to open before")

// Document is an open document.
// It is safe for concurrent use.
type Document struct {
	// Layout describes the positions of the pages.
	Layout *layout.Layout

	// Marks holds image marks drawn by the viewer on top of the pages.
	Marks overlay.Marks

	src      pdfview.Source
	mapper   *viewport.Mapper
	pages    *pagestate.Tracker
	overlays *overlay.Manager
	closed   atomic.Bool
}

// Open prepares src for viewing in a view of the given size.
// The document takes ownership of src and closes it in [Document.Close].
func Open(src pdfview.Source, view pdfview.Size, opt *Options) (*Document, error) {
	if opt == nil {
		opt = &Options{}
	}

	l, err := layout.New(src, view, opt.Layout)
	if err != nil {
		return nil, err
	}

	doc := &Document{
		Layout:   l,
		src:      src,
		mapper:   viewport.NewMapper(l, src),
		pages:    pagestate.NewTracker(l, src),
		overlays: overlay.New(src, src, opt.Overlay),
	}
	pdfview.Logger().Debug("document opened",
		"pages", l.NumPages(), "physical", src.NumPages())
	return doc, nil
}

// NumPages returns the number of logical pages.
func (doc *Document) NumPages() int {
	return doc.Layout.NumPages()
}

// Recompute updates the layout for a new view size.
func (doc *Document) Recompute(view pdfview.Size) error {
	return doc.Layout.Recompute(view)
}

// DocumentPage returns the physical page shown as a logical page, or -1.
func (doc *Document) DocumentPage(page int) int {
	return doc.Layout.DocumentPage(page)
}

// ValidPage clamps a logical page number to the valid range.
func (doc *Document) ValidPage(page int) int {
	return doc.Layout.ValidPage(page)
}

// OpenPage makes sure that a logical page is open.  See
// [pagestate.Tracker.Open] for details.
func (doc *Document) OpenPage(page int) (alreadyOpen bool, err error) {
	if doc.closed.Load() {
		return false, pdfview.ErrClosed
	}
	return doc.pages.Open(page)
}

// PageHasError reports whether a logical page failed to open.
func (doc *Document) PageHasError(page int) bool {
	return doc.pages.HasError(page)
}

// RenderPage draws a logical page into the rectangle bounds of dst.  The
// page is opened first, if needed.
func (doc *Document) RenderPage(dst draw.Image, page int, bounds image.Rectangle, annotations bool) error {
	if doc.closed.Load() {
		return pdfview.ErrClosed
	}
	physical := doc.Layout.DocumentPage(page)
	if physical < 0 {
		return fmt.Errorf("page %d: %w", page, pdfview.ErrPageRange)
	}
	if _, err := doc.pages.Open(page); err != nil {
		return err
	}
	if doc.pages.HasError(page) {
		return &pdfview.PageOpenError{Page: page, Err: errFailedBefore}
	}
	return doc.src.RenderPage(dst, physical, bounds, annotations)
}

// PageRotation returns the rotation stored in the document for a logical
// page.
func (doc *Document) PageRotation(page int) pdfview.Rotation {
	physical := doc.Layout.DocumentPage(page)
	if physical < 0 || doc.closed.Load() {
		return pdfview.Rotate0
	}
	return doc.src.PageRotation(physical)
}

// Metadata returns the XMP metadata of the document, or nil.
func (doc *Document) Metadata() *xmp.Packet {
	if doc.closed.Load() {
		return nil
	}
	return doc.src.Metadata()
}

// Bookmarks returns the document outline.  Bookmark targets are physical
// page numbers.
func (doc *Document) Bookmarks() []pdfview.Bookmark {
	if doc.closed.Load() {
		return nil
	}
	return doc.src.Bookmarks()
}

// PageLinks returns the links on a logical page.
func (doc *Document) PageLinks(page int) []pdfview.Link {
	physical := doc.Layout.DocumentPage(page)
	if physical < 0 || doc.closed.Load() {
		return nil
	}
	return doc.src.PageLinks(physical)
}

// ScreenToPage converts a screen point into page coordinates.
// See [viewport.Mapper.ScreenToPage].
func (doc *Document) ScreenToPage(st viewport.State, x, y float64) (page int, p vec.Vec2, ok bool) {
	return doc.mapper.ScreenToPage(st, x, y)
}

// PageToScreen converts a point on a logical page into screen coordinates.
func (doc *Document) PageToScreen(st viewport.State, page int, p vec.Vec2) (vec.Vec2, bool) {
	return doc.mapper.PageToScreen(st, page, p)
}

// PageRectToScreen converts a rectangle on a logical page into a
// normalized screen rectangle.
func (doc *Document) PageRectToScreen(st viewport.State, page int, r rect.Rect) (pdfview.Rect, bool) {
	return doc.mapper.PageRectToScreen(st, page, r)
}

// ScreenRectToPage converts a screen rectangle into a rectangle on the
// logical page under its first corner.
func (doc *Document) ScreenRectToPage(st viewport.State, r pdfview.Rect) (page int, res rect.Rect, ok bool) {
	return doc.mapper.ScreenRectToPage(st, r)
}

// PageBox returns the area covered by a logical page, in screen
// coordinates.
func (doc *Document) PageBox(st viewport.State, page int) (pdfview.DeviceBox, bool) {
	return doc.mapper.PageBox(st, page)
}

// AddImage places an image overlay on a logical page.
// See [overlay.Manager.AddImage].
func (doc *Document) AddImage(page int, img image.Image, left, top, width, height float64, origin overlay.Origin) pdfview.Handle {
	physical := doc.Layout.DocumentPage(page)
	if physical < 0 || doc.closed.Load() {
		return 0
	}
	return doc.overlays.AddImage(physical, img, left, top, width, height, origin)
}

// AddImageAt places an image overlay on a logical page, covering the given
// screen rectangle.
func (doc *Document) AddImageAt(st viewport.State, page int, img image.Image, r pdfview.Rect) pdfview.Handle {
	pr, ok := doc.mapper.ScreenRectOnPage(st, page, r)
	if !ok {
		return 0
	}
	return doc.AddImage(page, img, pr.LLx, pr.LLy, pr.Dx(), pr.Dy(), overlay.OriginBottomLeft)
}

// RemoveImage removes an image overlay from a logical page.
func (doc *Document) RemoveImage(page int, h pdfview.Handle) bool {
	physical := doc.Layout.DocumentPage(page)
	if physical < 0 || doc.closed.Load() {
		return false
	}
	return doc.overlays.RemoveImage(physical, h)
}

// Images returns the image overlays on a logical page.
func (doc *Document) Images(page int) []pdfview.Handle {
	physical := doc.Layout.DocumentPage(page)
	if physical < 0 {
		return nil
	}
	return doc.overlays.Images(physical)
}

// RemoveAnnotation removes all image overlays from a logical page.
func (doc *Document) RemoveAnnotation(page int) bool {
	physical := doc.Layout.DocumentPage(page)
	if physical < 0 || doc.closed.Load() {
		return false
	}
	return doc.overlays.RemoveAnnotation(physical)
}

// Close releases all overlays and closes the page source.  Calling Close
// more than once returns [pdfview.ErrClosed].
func (doc *Document) Close() error {
	if doc.closed.Swap(true) {
		return pdfview.ErrClosed
	}
	if !doc.overlays.Close() {
		pdfview.Logger().Warn("some overlays could not be removed")
	}
	doc.pages.Reset()
	doc.Marks.Clear(-1)
	return doc.src.Close()
}
