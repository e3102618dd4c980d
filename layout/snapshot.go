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

package layout

import (
	"seehuhn.de/go/pdfview"
)

// Snapshot is an immutable layout for one viewport size.
//
// All lengths are stored for zoom level 1 and multiplied by the zoom factor
// on access.  Queries for an invalid logical page return zero values.
type Snapshot struct {
	st       *static
	viewport pdfview.Size

	maxWidth  pdfview.Size // scaled size of the widest page
	maxHeight pdfview.Size // scaled size of the tallest page

	scaled  []pdfview.Size
	spacing []float64 // only used with auto spacing
	offsets []float64
	length  float64
}

func (s *Snapshot) primary(size pdfview.Size) float64 {
	if s.st.opt.Direction == Vertical {
		return size.Height
	}
	return size.Width
}

func (s *Snapshot) prepareAutoSpacing() {
	n := len(s.scaled)
	viewExtent := s.primary(s.viewport)
	s.spacing = make([]float64, n)
	for i, size := range s.scaled {
		spacing := max(0, viewExtent-s.primary(size))
		if i < n-1 {
			spacing += s.st.opt.Spacing
		}
		s.spacing[i] = spacing
	}
}

func (s *Snapshot) prepareDocLen() {
	n := len(s.scaled)
	length := 0.0
	for i, size := range s.scaled {
		length += s.primary(size)
		if s.st.opt.AutoSpacing {
			length += s.spacing[i]
		} else if i < n-1 {
			length += s.st.opt.Spacing
		}
	}
	s.length = length
}

func (s *Snapshot) preparePageOffsets() {
	n := len(s.scaled)
	fixed := s.st.opt.Spacing
	s.offsets = make([]float64, n)
	offset := 0.0
	for i, size := range s.scaled {
		extent := s.primary(size)
		if s.st.opt.AutoSpacing {
			offset += s.spacing[i] / 2
			if i == 0 {
				offset -= fixed / 2
			} else if i == n-1 {
				offset += fixed / 2
			}
			s.offsets[i] = offset
			offset += extent + s.spacing[i]/2
		} else {
			s.offsets[i] = offset
			offset += extent + fixed
		}
	}
}

// NumPages returns the number of logical pages.
func (s *Snapshot) NumPages() int {
	return len(s.scaled)
}

// Direction returns the scroll direction.
func (s *Snapshot) Direction() Direction {
	return s.st.opt.Direction
}

// DocumentPage returns the physical page shown as logical page userPage,
// or -1 if userPage is not a valid logical page.
func (s *Snapshot) DocumentPage(userPage int) int {
	return s.st.documentPage(userPage)
}

// Viewport returns the viewport size the snapshot was computed for.
func (s *Snapshot) Viewport() pdfview.Size {
	return s.viewport
}

// PageSize returns the scaled size of a logical page at zoom level 1.
func (s *Snapshot) PageSize(page int) pdfview.Size {
	if s.st.documentPage(page) < 0 {
		return pdfview.Size{}
	}
	return s.scaled[page]
}

// ScaledPageSize returns the size of a logical page at the given zoom level.
func (s *Snapshot) ScaledPageSize(page int, zoom float64) pdfview.Size {
	return s.PageSize(page).Scale(zoom)
}

// MaxPageSize returns the scaled size of the widest page for vertical
// scrolling, or the tallest page for horizontal scrolling.
func (s *Snapshot) MaxPageSize() pdfview.Size {
	if s.st.opt.Direction == Vertical {
		return s.maxWidth
	}
	return s.maxHeight
}

// MaxPageWidth returns the width of [Snapshot.MaxPageSize].
func (s *Snapshot) MaxPageWidth() float64 {
	return s.MaxPageSize().Width
}

// MaxPageHeight returns the height of [Snapshot.MaxPageSize].
func (s *Snapshot) MaxPageHeight() float64 {
	return s.MaxPageSize().Height
}

// DocLen returns the length of the document along the scroll axis.
func (s *Snapshot) DocLen(zoom float64) float64 {
	return s.length * zoom
}

// PageLength returns the height of a page for vertical scrolling, or the
// width of a page for horizontal scrolling.
func (s *Snapshot) PageLength(page int, zoom float64) float64 {
	return s.primary(s.PageSize(page)) * zoom
}

// PageSpacing returns the spacing allotted to a page.  With auto spacing
// this is the gap around the page, otherwise the fixed spacing.
func (s *Snapshot) PageSpacing(page int, zoom float64) float64 {
	if s.st.documentPage(page) < 0 {
		return 0
	}
	return s.spacingAt(page) * zoom
}

func (s *Snapshot) spacingAt(i int) float64 {
	if s.st.opt.AutoSpacing {
		return s.spacing[i]
	}
	return s.st.opt.Spacing
}

// PageOffset returns the position of the start of a page along the scroll
// axis, that is y for vertical scrolling and x for horizontal scrolling.
func (s *Snapshot) PageOffset(page int, zoom float64) float64 {
	if s.st.documentPage(page) < 0 {
		return 0
	}
	return s.offsets[page] * zoom
}

// SecondaryPageOffset returns the position of a page perpendicular to the
// scroll axis, that is x for vertical scrolling and y for horizontal
// scrolling.  Pages narrower than the widest page are centered.
func (s *Snapshot) SecondaryPageOffset(page int, zoom float64) float64 {
	if s.st.documentPage(page) < 0 {
		return 0
	}
	size := s.scaled[page]
	if s.st.opt.Direction == Vertical {
		return zoom * (s.MaxPageWidth() - size.Width) / 2
	}
	return zoom * (s.MaxPageHeight() - size.Height) / 2
}

// PageAtOffset returns the last logical page whose band, including half
// of its spacing, starts before offset.  The result is never negative.
func (s *Snapshot) PageAtOffset(offset, zoom float64) int {
	page := 0
	for i := range s.offsets {
		start := s.offsets[i]*zoom - s.spacingAt(i)*zoom/2
		if start >= offset {
			break
		}
		page++
	}
	return max(page-1, 0)
}
