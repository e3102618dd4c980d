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

// Package memsource implements an in-memory page source.
//
// A [Document] behaves like a PDF decoder with a fixed list of pages: it
// reports page sizes, opens pages, converts coordinates between device space
// and page space, stores image overlays in native containers and renders
// pages (blank paper plus overlays) into bitmaps.  It is used by the tests
// and by the command line tools, and can stand in for a real decoder while
// developing a viewer.
package memsource

import (
	"image"
	"slices"
	"sync"

	"golang.org/x/text/language"
	"seehuhn.de/go/geom/rect"
	"seehuhn.de/go/pdfview"
	"seehuhn.de/go/xmp"
)

// Page describes one physical page.
type Page struct {
	Size     pdfview.Size
	Rotation pdfview.Rotation
	Links    []pdfview.Link

	// OpenErr, if set, is returned every time the page is opened.
	OpenErr error
}

// Faults selects native operations which fail.
type Faults struct {
	CreateContainer bool
	AddImage        bool
	RemoveImage     bool
	RemoveContainer bool
}

// Document is an in-memory page source.
// It is safe for concurrent use.
type Document struct {
	mu sync.Mutex

	pages     []Page
	openCount []int
	meta      *xmp.Packet
	bookmarks []pdfview.Bookmark
	faults    Faults
	closed    bool

	next       pdfview.Handle
	containers map[pdfview.Handle]*container
	byPage     map[int][]pdfview.Handle // containers in creation order
}

type container struct {
	page   int
	images []*imageObject
}

type imageObject struct {
	handle pdfview.Handle
	img    image.Image
	bbox   rect.Rect
}

// New creates a document with the given pages.
func New(pages ...Page) *Document {
	return &Document{
		pages:      slices.Clone(pages),
		openCount:  make([]int, len(pages)),
		containers: make(map[pdfview.Handle]*container),
		byPage:     make(map[int][]pdfview.Handle),
	}
}

// FromSizes creates a document with unrotated pages of the given sizes.
func FromSizes(sizes ...pdfview.Size) *Document {
	pages := make([]Page, len(sizes))
	for i, size := range sizes {
		pages[i].Size = size
	}
	return New(pages...)
}

// SetInfo sets the Dublin Core title and creator of the document metadata.
func (d *Document) SetInfo(title, creator string) error {
	dc := &xmp.DublinCore{}
	dc.Title.Set(language.Und, title)
	dc.Creator.Append(xmp.NewProperName(creator))

	packet := xmp.NewPacket()
	err := packet.Set(dc)
	if err != nil {
		return err
	}

	d.mu.Lock()
	d.meta = packet
	d.mu.Unlock()
	return nil
}

// SetBookmarks sets the document outline.
func (d *Document) SetBookmarks(bookmarks []pdfview.Bookmark) {
	d.mu.Lock()
	d.bookmarks = slices.Clone(bookmarks)
	d.mu.Unlock()
}

// SetFaults selects native operations which fail from now on.
func (d *Document) SetFaults(f Faults) {
	d.mu.Lock()
	d.faults = f
	d.mu.Unlock()
}

// NumPages implements the [pdfview.PageSizer] interface.
func (d *Document) NumPages() int {
	return len(d.pages)
}

// PageSize implements the [pdfview.PageSizer] interface.
func (d *Document) PageSize(page int) (pdfview.Size, error) {
	if !d.valid(page) {
		return pdfview.Size{}, pdfview.ErrPageRange
	}
	return d.pages[page].Size, nil
}

// OpenPage implements the [pdfview.PageOpener] interface.
func (d *Document) OpenPage(page int) error {
	if !d.valid(page) {
		return pdfview.ErrPageRange
	}

	d.mu.Lock()
	defer d.mu.Unlock()
	if d.closed {
		return pdfview.ErrClosed
	}
	d.openCount[page]++
	return d.pages[page].OpenErr
}

// OpenCount returns how often a page has been opened.
func (d *Document) OpenCount(page int) int {
	if !d.valid(page) {
		return 0
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.openCount[page]
}

// Metadata implements the [pdfview.DocumentInfo] interface.
func (d *Document) Metadata() *xmp.Packet {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.meta
}

// Bookmarks implements the [pdfview.DocumentInfo] interface.
func (d *Document) Bookmarks() []pdfview.Bookmark {
	d.mu.Lock()
	defer d.mu.Unlock()
	return slices.Clone(d.bookmarks)
}

// PageLinks implements the [pdfview.DocumentInfo] interface.
func (d *Document) PageLinks(page int) []pdfview.Link {
	if !d.valid(page) {
		return nil
	}
	return slices.Clone(d.pages[page].Links)
}

// PageRotation implements the [pdfview.DocumentInfo] interface.
func (d *Document) PageRotation(page int) pdfview.Rotation {
	if !d.valid(page) {
		return pdfview.Rotate0
	}
	return d.pages[page].Rotation
}

// Close releases all native objects.  Pages cannot be opened after Close.
func (d *Document) Close() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.closed {
		return pdfview.ErrClosed
	}
	d.closed = true
	clear(d.containers)
	clear(d.byPage)
	return nil
}

func (d *Document) valid(page int) bool {
	return page >= 0 && page < len(d.pages)
}
