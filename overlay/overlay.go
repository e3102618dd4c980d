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

// Package overlay manages image overlays attached to the pages of a
// document.
//
// Overlays live in native annotation containers provided by a
// [pdfview.AnnotationStore].  Containers are created lazily, when the first
// image is added to a page.  The [Manager] keeps a list of the image handles
// on each page, and this list only changes after the corresponding native
// call has succeeded.
//
// Page numbers in this package are physical page numbers.
package overlay

import (
	"image"
	"slices"
	"sync"

	"golang.org/x/exp/maps"
	"seehuhn.de/go/geom/rect"
	"seehuhn.de/go/pdfview"
)

// Grouping selects how images are grouped into native containers.
type Grouping int

const (
	// GroupPerPage uses one container for all images on a page.
	GroupPerPage Grouping = iota

	// GroupPerImage uses a separate container for every image.  Removing
	// the image also removes its container.
	GroupPerImage
)

func (g Grouping) String() string {
	switch g {
	case GroupPerPage:
		return "per-page"
	case GroupPerImage:
		return "per-image"
	default:
		return "unknown"
	}
}

// Origin selects how the top coordinate passed to [Manager.AddImage] is
// interpreted.
type Origin int

const (
	// OriginBottomLeft means that top is the y coordinate of the bottom edge
	// of the image, in page coordinates.  The value is used unchanged.
	OriginBottomLeft Origin = iota

	// OriginTopLeft means that top is the distance from the top edge of
	// the page to the top edge of the image.
	OriginTopLeft
)

// Options control the behaviour of a [Manager].
// The zero value selects [GroupPerPage].
type Options struct {
	Grouping Grouping
}

// Manager keeps track of the image overlays of one document.
// It is safe for concurrent use.
type Manager struct {
	store pdfview.AnnotationStore
	sizer pdfview.PageSizer
	opt   Options

	mu     sync.Mutex
	pages  map[int]*pageOverlays
	closed bool
}

// pageOverlays holds the native objects of one page.
type pageOverlays struct {
	// images lists the image handles in the order they were added.
	images []pdfview.Handle

	// container maps each image to its native container.
	container map[pdfview.Handle]pdfview.Handle

	// shared is the page-wide container used with GroupPerPage, or 0.
	shared pdfview.Handle
}

// New creates a manager which stores overlays in store.  The sizer is used
// to convert top-left coordinates.
func New(store pdfview.AnnotationStore, sizer pdfview.PageSizer, opt *Options) *Manager {
	if opt == nil {
		opt = &Options{}
	}
	return &Manager{
		store: store,
		sizer: sizer,
		opt:   *opt,
		pages: make(map[int]*pageOverlays),
	}
}

// AddImage places img on a page, inside the rectangle with the given left
// edge, width and height.  The meaning of top is determined by origin.
//
// On success, the handle of the new image object is returned.  On failure
// the zero handle is returned and nothing is recorded.  The image must be
// fully prepared before calling AddImage; it is not modified.
func (m *Manager) AddImage(page int, img image.Image, left, top, width, height float64, origin Origin) pdfview.Handle {
	bottom := top
	if origin == OriginTopLeft {
		size, err := m.sizer.PageSize(page)
		if err != nil {
			pdfview.Logger().Warn("cannot place image",
				"page", page, "error", err)
			return 0
		}
		bottom = size.Height - top - height
	}
	bbox := rect.Rect{LLx: left, LLy: bottom, URx: left + width, URy: bottom + height}

	m.mu.Lock()
	defer m.mu.Unlock()
	if m.closed {
		return 0
	}

	po := m.pages[page]
	if po == nil {
		po = &pageOverlays{container: make(map[pdfview.Handle]pdfview.Handle)}
	}

	c := po.shared
	created := false
	if c == 0 {
		c = m.store.CreateContainer(page)
		if c == 0 {
			pdfview.Logger().Warn("cannot create annotation container", "page", page)
			return 0
		}
		created = true
	}

	h := m.store.AddImageObject(page, c, img, bbox)
	if h == 0 {
		if created && m.opt.Grouping == GroupPerImage {
			m.releaseContainer(page, c)
		} else if created {
			po.shared = c
			m.pages[page] = po
		}
		return 0
	}

	if m.opt.Grouping == GroupPerPage {
		po.shared = c
	}
	po.images = append(po.images, h)
	po.container[h] = c
	m.pages[page] = po

	pdfview.Logger().Debug("image overlay added",
		"page", page, "handle", h, "bbox", bbox)
	return h
}

// RemoveImage removes an image overlay from a page.  The result is false if
// the handle does not belong to the page or if the native object could not
// be removed.  In both cases the recorded state is unchanged.
func (m *Manager) RemoveImage(page int, h pdfview.Handle) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	po := m.pages[page]
	if po == nil {
		return false
	}
	idx := slices.Index(po.images, h)
	if idx < 0 {
		return false
	}

	c := po.container[h]
	if !m.store.RemoveImageObject(page, c, h) {
		pdfview.Logger().Warn("cannot remove image overlay",
			"page", page, "handle", h)
		return false
	}
	po.images = slices.Delete(po.images, idx, idx+1)
	delete(po.container, h)
	if m.opt.Grouping == GroupPerImage {
		m.releaseContainer(page, c)
	}
	if len(po.images) == 0 && po.shared == 0 {
		delete(m.pages, page)
	}

	pdfview.Logger().Debug("image overlay removed", "page", page, "handle", h)
	return true
}

// Images returns the handles of the image overlays on a page, in the order
// they were added.
func (m *Manager) Images(page int) []pdfview.Handle {
	m.mu.Lock()
	defer m.mu.Unlock()

	po := m.pages[page]
	if po == nil {
		return nil
	}
	return slices.Clone(po.images)
}

// Pages returns the pages which have native overlay objects, in increasing
// order.
func (m *Manager) Pages() []int {
	m.mu.Lock()
	defer m.mu.Unlock()
	pages := maps.Keys(m.pages)
	slices.Sort(pages)
	return pages
}

// RemoveAnnotation removes all native containers of a page, together with
// the images they hold.  Handles are only forgotten for containers which
// were removed successfully.  The result is true if the page had overlays
// and all of them were removed.
func (m *Manager) RemoveAnnotation(page int) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.removePage(page)
}

// Close removes the overlays of all pages.  Afterwards, AddImage fails.
// The result is false if any native container could not be removed.
func (m *Manager) Close() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.closed = true

	ok := true
	pages := maps.Keys(m.pages)
	slices.Sort(pages)
	for _, page := range pages {
		if !m.removePage(page) {
			ok = false
		}
	}
	return ok
}

// removePage implements RemoveAnnotation.  The caller must hold m.mu.
func (m *Manager) removePage(page int) bool {
	po := m.pages[page]
	if po == nil {
		return false
	}

	var containers []pdfview.Handle
	if po.shared != 0 {
		containers = append(containers, po.shared)
	}
	for _, h := range po.images {
		c := po.container[h]
		if !slices.Contains(containers, c) {
			containers = append(containers, c)
		}
	}

	ok := true
	for _, c := range containers {
		if !m.store.RemoveContainer(page, c) {
			pdfview.Logger().Warn("cannot remove annotation container",
				"page", page, "container", c)
			ok = false
			continue
		}
		if c == po.shared {
			po.shared = 0
		}
		po.images = slices.DeleteFunc(po.images, func(h pdfview.Handle) bool {
			if po.container[h] == c {
				delete(po.container, h)
				return true
			}
			return false
		})
	}
	if len(po.images) == 0 && po.shared == 0 {
		delete(m.pages, page)
	}
	return ok
}

// releaseContainer removes an unused container.  The caller must hold m.mu.
func (m *Manager) releaseContainer(page int, c pdfview.Handle) {
	if !m.store.RemoveContainer(page, c) {
		pdfview.Logger().Warn("cannot remove annotation container",
			"page", page, "container", c)
	}
}
