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

	"seehuhn.de/go/geom/rect"
	"seehuhn.de/go/pdfview"
)

// CreateContainer implements the [pdfview.AnnotationStore] interface.
func (d *Document) CreateContainer(page int) pdfview.Handle {
	if !d.valid(page) {
		return 0
	}

	d.mu.Lock()
	defer d.mu.Unlock()
	if d.closed || d.faults.CreateContainer {
		return 0
	}
	h := d.alloc()
	d.containers[h] = &container{page: page}
	d.byPage[page] = append(d.byPage[page], h)
	return h
}

// AddImageObject implements the [pdfview.AnnotationStore] interface.
func (d *Document) AddImageObject(page int, c pdfview.Handle, img image.Image, bbox rect.Rect) pdfview.Handle {
	d.mu.Lock()
	defer d.mu.Unlock()

	cont := d.containers[c]
	if cont == nil || cont.page != page || img == nil || d.faults.AddImage {
		return 0
	}
	h := d.alloc()
	cont.images = append(cont.images, &imageObject{handle: h, img: img, bbox: bbox})
	return h
}

// RemoveImageObject implements the [pdfview.AnnotationStore] interface.
func (d *Document) RemoveImageObject(page int, c, obj pdfview.Handle) bool {
	d.mu.Lock()
	defer d.mu.Unlock()

	cont := d.containers[c]
	if cont == nil || cont.page != page || d.faults.RemoveImage {
		return false
	}
	for i, im := range cont.images {
		if im.handle == obj {
			cont.images = append(cont.images[:i], cont.images[i+1:]...)
			return true
		}
	}
	return false
}

// RemoveContainer implements the [pdfview.AnnotationStore] interface.
// All image objects in the container are released.
func (d *Document) RemoveContainer(page int, c pdfview.Handle) bool {
	d.mu.Lock()
	defer d.mu.Unlock()

	cont := d.containers[c]
	if cont == nil || cont.page != page || d.faults.RemoveContainer {
		return false
	}
	delete(d.containers, c)
	hh := d.byPage[page]
	for i, h := range hh {
		if h == c {
			d.byPage[page] = append(hh[:i], hh[i+1:]...)
			break
		}
	}
	if len(d.byPage[page]) == 0 {
		delete(d.byPage, page)
	}
	return true
}

// ImageObjects returns the handles of all image objects on a page, in the
// order they were added.  This reflects the native state, independent of
// any bookkeeping by callers.
func (d *Document) ImageObjects(page int) []pdfview.Handle {
	d.mu.Lock()
	defer d.mu.Unlock()

	var res []pdfview.Handle
	for _, c := range d.byPage[page] {
		for _, im := range d.containers[c].images {
			res = append(res, im.handle)
		}
	}
	return res
}

// ImageBBox returns the placement of an image object in page coordinates.
func (d *Document) ImageBBox(obj pdfview.Handle) (rect.Rect, bool) {
	d.mu.Lock()
	defer d.mu.Unlock()

	for _, c := range d.containers {
		for _, im := range c.images {
			if im.handle == obj {
				return im.bbox, true
			}
		}
	}
	return rect.Rect{}, false
}

// NumContainers returns the number of native containers on a page.
func (d *Document) NumContainers(page int) int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.byPage[page])
}

// alloc returns a fresh handle.  The caller must hold d.mu.
func (d *Document) alloc() pdfview.Handle {
	d.next++
	return d.next
}
