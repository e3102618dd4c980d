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

// Package layout arranges the pages of a document along a scroll axis.
//
// A [Layout] holds the original size of every logical page.  Whenever the
// viewport size changes, [Layout.Recompute] derives the scaled page sizes,
// the spacing between pages, the page offsets along the scroll axis and the
// total document length.  All values are stored for zoom level 1; the query
// methods multiply by the zoom factor given by the caller.
//
// Recomputation builds a new immutable [Snapshot] and publishes it
// atomically, so that readers on other goroutines see either the old or the
// new layout, never a mixture of both.
package layout

import (
	"fmt"
	"slices"
	"sync"
	"sync/atomic"

	"seehuhn.de/go/pdfview"
	"seehuhn.de/go/pdfview/fit"
)

// Direction is the scroll direction of a document.
type Direction int

// Valid values for Direction.
const (
	Vertical   Direction = iota // pages are stacked top to bottom
	Horizontal                  // pages are placed left to right
)

func (d Direction) String() string {
	if d == Horizontal {
		return "horizontal"
	}
	return "vertical"
}

// Options control how pages are laid out.
// The zero value lays out all pages vertically, fitted to the viewport
// width, without spacing.
type Options struct {
	// Policy selects the viewport dimension pages are fitted to.
	Policy fit.Policy

	// Direction is the scroll direction.
	Direction Direction

	// Spacing is the fixed gap between consecutive pages, in layout units.
	Spacing float64

	// AutoSpacing, if set, sizes the gap around each page so that the page
	// is centered in the viewport.  Spacing is added between pages on top
	// of the automatic gap.
	AutoSpacing bool

	// FitEachPage, if set, fits every page to the viewport on its own.
	// Otherwise the largest page is fitted and the other pages are scaled by
	// the same factor.
	FitEachPage bool

	// Pages maps logical page indices to physical page indices.  Entries may
	// repeat and need not be increasing.  If Pages is nil, every physical page
	// is shown once, in order.
	Pages []int
}

// static holds the parts of a layout which do not change after construction.
type static struct {
	opt         Options
	numPhysical int
	numPages    int

	original      []pdfview.Size // indexed by logical page
	maxWidthPage  pdfview.Size
	maxHeightPage pdfview.Size
}

// Layout is the layout of one open document.
// It is safe for concurrent use.
type Layout struct {
	st *static

	mu  sync.Mutex // serialises Recompute
	cur atomic.Pointer[Snapshot]
}

// New reads the page sizes from src and computes the layout for the given
// viewport.  If opt is nil, default options are used.
func New(src pdfview.PageSizer, viewport pdfview.Size, opt *Options) (*Layout, error) {
	if opt == nil {
		opt = &Options{}
	}
	st := &static{
		opt:         *opt,
		numPhysical: src.NumPages(),
	}
	if opt.Pages != nil {
		st.opt.Pages = slices.Clone(opt.Pages)
		st.numPages = len(opt.Pages)
	} else {
		st.numPages = st.numPhysical
	}

	st.original = make([]pdfview.Size, st.numPages)
	for i := range st.numPages {
		docPage := st.documentPage(i)
		if docPage < 0 {
			pdfview.Logger().Warn("logical page maps to an invalid physical page",
				"page", i, "physical", st.opt.Pages[i])
			continue
		}
		size, err := src.PageSize(docPage)
		if err != nil {
			return nil, fmt.Errorf("page %d: %w", docPage, err)
		}
		if size.Width > st.maxWidthPage.Width {
			st.maxWidthPage = size
		}
		if size.Height > st.maxHeightPage.Height {
			st.maxHeightPage = size
		}
		st.original[i] = size
	}

	l := &Layout{st: st}
	err := l.Recompute(viewport)
	if err != nil {
		return nil, err
	}
	return l, nil
}

// Recompute recalculates page sizes, offsets and the document length for a
// new viewport size.  If the viewport has no area, [pdfview.ErrInvalidViewport]
// is returned and the previous layout stays in place.
func (l *Layout) Recompute(viewport pdfview.Size) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	st := l.st
	calc, err := fit.NewCalculator(st.opt.Policy, st.maxWidthPage, st.maxHeightPage,
		viewport, st.opt.FitEachPage)
	if err != nil {
		return err
	}

	s := &Snapshot{
		st:        st,
		viewport:  viewport,
		maxWidth:  calc.OptimalMaxWidthPageSize(),
		maxHeight: calc.OptimalMaxHeightPageSize(),
		scaled:    make([]pdfview.Size, st.numPages),
	}
	for i, size := range st.original {
		s.scaled[i] = calc.Scale(size)
	}
	if st.opt.AutoSpacing {
		s.prepareAutoSpacing()
	}
	s.prepareDocLen()
	s.preparePageOffsets()

	l.cur.Store(s)

	pdfview.Logger().Debug("layout recomputed",
		"pages", st.numPages,
		"width", viewport.Width, "height", viewport.Height,
		"length", s.length)
	return nil
}

// Snapshot returns the current layout.  The result is immutable; use it
// when several queries must see the same layout.
func (l *Layout) Snapshot() *Snapshot {
	return l.cur.Load()
}

// NumPages returns the number of logical pages.
func (l *Layout) NumPages() int {
	return l.st.numPages
}

// Direction returns the scroll direction.
func (l *Layout) Direction() Direction {
	return l.st.opt.Direction
}

// IsVertical reports whether pages are stacked vertically.
func (l *Layout) IsVertical() bool {
	return l.st.opt.Direction == Vertical
}

// DocumentPage returns the physical page shown as logical page userPage,
// or -1 if userPage is not a valid logical page.
func (l *Layout) DocumentPage(userPage int) int {
	return l.st.documentPage(userPage)
}

// ValidPage clamps userPage to the range of logical pages.
// For an empty document, 0 is returned.
func (l *Layout) ValidPage(userPage int) int {
	if userPage <= 0 || l.st.numPages == 0 {
		return 0
	}
	if userPage >= l.st.numPages {
		return l.st.numPages - 1
	}
	return userPage
}

// OriginalPageSize returns the unscaled size of a logical page.
func (l *Layout) OriginalPageSize(page int) pdfview.Size {
	if l.st.documentPage(page) < 0 {
		return pdfview.Size{}
	}
	return l.st.original[page]
}

// The following methods query the current snapshot.

// Viewport returns the viewport size the layout was computed for.
func (l *Layout) Viewport() pdfview.Size { return l.Snapshot().Viewport() }

// PageSize returns the scaled size of a logical page at zoom level 1.
func (l *Layout) PageSize(page int) pdfview.Size { return l.Snapshot().PageSize(page) }

// ScaledPageSize returns the size of a logical page at the given zoom level.
func (l *Layout) ScaledPageSize(page int, zoom float64) pdfview.Size {
	return l.Snapshot().ScaledPageSize(page, zoom)
}

// MaxPageSize returns the scaled size of the widest page for vertical
// scrolling, or the tallest page for horizontal scrolling.
func (l *Layout) MaxPageSize() pdfview.Size { return l.Snapshot().MaxPageSize() }

// DocLen returns the length of the document along the scroll axis.
func (l *Layout) DocLen(zoom float64) float64 { return l.Snapshot().DocLen(zoom) }

// PageLength returns the extent of a page along the scroll axis.
func (l *Layout) PageLength(page int, zoom float64) float64 {
	return l.Snapshot().PageLength(page, zoom)
}

// PageSpacing returns the spacing allotted to a page.
func (l *Layout) PageSpacing(page int, zoom float64) float64 {
	return l.Snapshot().PageSpacing(page, zoom)
}

// PageOffset returns the offset of a page along the scroll axis.
func (l *Layout) PageOffset(page int, zoom float64) float64 {
	return l.Snapshot().PageOffset(page, zoom)
}

// SecondaryPageOffset returns the offset of a page perpendicular to the
// scroll axis.
func (l *Layout) SecondaryPageOffset(page int, zoom float64) float64 {
	return l.Snapshot().SecondaryPageOffset(page, zoom)
}

// PageAtOffset returns the logical page at the given scroll offset.
func (l *Layout) PageAtOffset(offset, zoom float64) int {
	return l.Snapshot().PageAtOffset(offset, zoom)
}

func (st *static) documentPage(userPage int) int {
	if userPage < 0 || userPage >= st.numPages {
		return -1
	}
	if st.opt.Pages == nil {
		return userPage
	}
	docPage := st.opt.Pages[userPage]
	if docPage < 0 || docPage >= st.numPhysical {
		return -1
	}
	return docPage
}
