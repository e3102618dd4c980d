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
	"image"
	"image/draw"

	"seehuhn.de/go/geom/rect"
	"seehuhn.de/go/geom/vec"
	"seehuhn.de/go/xmp"
)

// PageSizer gives access to the number and the size of the physical pages
// of a document.
type PageSizer interface {
	// NumPages returns the number of physical pages.
	NumPages() int

	// PageSize returns the size of a physical page in page units.
	PageSize(page int) (Size, error)
}

// PageOpener opens physical pages.  Implementations need not be reentrant
// for the same page; callers serialise calls.
type PageOpener interface {
	OpenPage(page int) error
}

// PageTransformer converts between device space and the coordinate system
// of a page.
//
// The box gives the area the page occupies on the device, rot the rotation
// used for display.  Page coordinates have their origin in the bottom-left
// corner of the page with y pointing up.  The boolean result is false if the
// page index is invalid or the box is empty.
type PageTransformer interface {
	DeviceToPage(page int, box DeviceBox, rot Rotation, p vec.Vec2) (vec.Vec2, bool)
	PageToDevice(page int, box DeviceBox, rot Rotation, p vec.Vec2) (vec.Vec2, bool)
}

// PageSource is the part of the page source used by the layout and
// coordinate mapping code.
type PageSource interface {
	PageSizer
	PageOpener
	PageTransformer
}

// AnnotationStore creates and destroys native overlay objects.
//
// A container groups zero or more image objects on one page.  All positions
// are given in page coordinates with a bottom-left origin.  Failures are
// reported by a zero Handle or a false result.
type AnnotationStore interface {
	CreateContainer(page int) Handle
	AddImageObject(page int, container Handle, img image.Image, bbox rect.Rect) Handle
	RemoveImageObject(page int, container, obj Handle) bool
	RemoveContainer(page int, container Handle) bool
}

// Renderer draws a physical page into the area bounds of dst.
type Renderer interface {
	RenderPage(dst draw.Image, page int, bounds image.Rectangle, annotations bool) error
}

// Bookmark is an entry in the document outline.
type Bookmark struct {
	Title    string
	Page     int // physical page index, or -1
	Children []Bookmark
}

// Link is a clickable area on a page.
type Link struct {
	// BBox is the active area in page coordinates.
	BBox rect.Rect

	// DestPage is the physical target page of an internal link, or -1.
	DestPage int

	// URI is the target of an external link.
	URI string
}

// DocumentInfo gives access to document level information.
type DocumentInfo interface {
	// Metadata returns the XMP metadata of the document, or nil.
	Metadata() *xmp.Packet

	Bookmarks() []Bookmark
	PageLinks(page int) []Link
	PageRotation(page int) Rotation
}

// Source combines all interfaces a page source for a complete document
// provides.
type Source interface {
	PageSource
	AnnotationStore
	Renderer
	DocumentInfo

	Close() error
}
