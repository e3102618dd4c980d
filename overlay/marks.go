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

package overlay

import (
	"slices"
	"sync"

	"golang.org/x/exp/maps"
)

// Mark describes an image drawn on top of a rendered page by the viewer,
// without being stored in the document.  Left and Top are measured from the
// top-left corner of the page, Rotate is in degrees.
type Mark struct {
	Page          int
	Left, Top     float64
	Width, Height float64
	Rotate        float64
}

// Marks is a registry of image marks, grouped by page.
// The zero value is an empty registry, ready to use.
// It is safe for concurrent use.
type Marks struct {
	mu     sync.Mutex
	byPage map[int][]Mark
}

// Add registers a mark.  If unique is set and an equal mark is already
// present on the page, nothing is added.
func (r *Marks) Add(mark Mark, unique bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.byPage == nil {
		r.byPage = make(map[int][]Mark)
	}
	marks := r.byPage[mark.Page]
	if unique && slices.Contains(marks, mark) {
		return
	}
	r.byPage[mark.Page] = append(marks, mark)
}

// Remove removes one copy of a mark.  The result reports whether the mark
// was present.
func (r *Marks) Remove(mark Mark) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	marks := r.byPage[mark.Page]
	idx := slices.Index(marks, mark)
	if idx < 0 {
		return false
	}
	r.byPage[mark.Page] = slices.Delete(marks, idx, idx+1)
	return true
}

// Has reports whether a mark is present.
func (r *Marks) Has(mark Mark) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return slices.Contains(r.byPage[mark.Page], mark)
}

// Clear removes all marks from a page.  If page is negative, the marks of
// all pages are removed.
func (r *Marks) Clear(page int) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if page < 0 {
		clear(r.byPage)
		return
	}
	delete(r.byPage, page)
}

// Marks returns the marks on a page, in the order they were added.
func (r *Marks) Marks(page int) []Mark {
	r.mu.Lock()
	defer r.mu.Unlock()
	return slices.Clone(r.byPage[page])
}

// Pages returns the pages which have marks, in increasing order.
func (r *Marks) Pages() []int {
	r.mu.Lock()
	defer r.mu.Unlock()

	keys := maps.Keys(r.byPage)
	slices.Sort(keys)

	var pages []int
	for _, page := range keys {
		if len(r.byPage[page]) > 0 {
			pages = append(pages, page)
		}
	}
	return pages
}
