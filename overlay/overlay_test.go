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
	"image"
	"sync"
	"testing"

	"github.com/google/go-cmp/cmp"
	"seehuhn.de/go/geom/rect"
	"seehuhn.de/go/pdfview"
	"seehuhn.de/go/pdfview/memsource"
)

var testImage = image.NewGray(image.Rect(0, 0, 2, 2))

func newDoc() *memsource.Document {
	return memsource.FromSizes(
		pdfview.Size{Width: 100, Height: 200},
		pdfview.Size{Width: 100, Height: 200},
	)
}

func TestAddImage(t *testing.T) {
	doc := newDoc()
	m := New(doc, doc, nil)

	a := m.AddImage(0, testImage, 10, 20, 30, 40, OriginBottomLeft)
	b := m.AddImage(0, testImage, 10, 20, 30, 40, OriginTopLeft)
	if a == 0 || b == 0 {
		t.Fatal("AddImage failed")
	}
	if d := cmp.Diff([]pdfview.Handle{a, b}, m.Images(0)); d != "" {
		t.Errorf("images (-want +got):\n%s", d)
	}
	if n := doc.NumContainers(0); n != 1 {
		t.Errorf("%d containers, want 1", n)
	}

	type testCase struct {
		h    pdfview.Handle
		want rect.Rect
	}
	cases := []testCase{
		{a, rect.Rect{LLx: 10, LLy: 20, URx: 40, URy: 60}},
		{b, rect.Rect{LLx: 10, LLy: 140, URx: 40, URy: 180}},
	}
	for _, c := range cases {
		got, ok := doc.ImageBBox(c.h)
		if !ok {
			t.Errorf("image %d missing", c.h)
			continue
		}
		if d := cmp.Diff(c.want, got); d != "" {
			t.Errorf("image %d (-want +got):\n%s", c.h, d)
		}
	}

	if h := m.AddImage(5, testImage, 0, 0, 1, 1, OriginTopLeft); h != 0 {
		t.Error("image added to a page which does not exist")
	}
	if d := cmp.Diff([]int{0}, m.Pages()); d != "" {
		t.Errorf("pages (-want +got):\n%s", d)
	}
}

func TestAddImageFailure(t *testing.T) {
	doc := newDoc()
	m := New(doc, doc, nil)

	doc.SetFaults(memsource.Faults{CreateContainer: true})
	if h := m.AddImage(0, testImage, 0, 0, 1, 1, OriginBottomLeft); h != 0 {
		t.Error("AddImage succeeded without a container")
	}

	doc.SetFaults(memsource.Faults{AddImage: true})
	if h := m.AddImage(0, testImage, 0, 0, 1, 1, OriginBottomLeft); h != 0 {
		t.Error("AddImage succeeded without an image object")
	}
	if imgs := m.Images(0); len(imgs) != 0 {
		t.Errorf("failed images recorded: %v", imgs)
	}

	// the container created above is reused
	doc.SetFaults(memsource.Faults{})
	if h := m.AddImage(0, testImage, 0, 0, 1, 1, OriginBottomLeft); h == 0 {
		t.Error("AddImage failed")
	}
	if n := doc.NumContainers(0); n != 1 {
		t.Errorf("%d containers, want 1", n)
	}
}

func TestRemoveImage(t *testing.T) {
	doc := newDoc()
	m := New(doc, doc, nil)
	a := m.AddImage(0, testImage, 0, 0, 1, 1, OriginBottomLeft)
	b := m.AddImage(0, testImage, 0, 0, 1, 1, OriginBottomLeft)
	c := m.AddImage(1, testImage, 0, 0, 1, 1, OriginBottomLeft)

	if m.RemoveImage(0, c) {
		t.Error("removed an image from the wrong page")
	}
	if len(doc.ImageObjects(1)) != 1 {
		t.Error("native image removed for a foreign handle")
	}

	doc.SetFaults(memsource.Faults{RemoveImage: true})
	if m.RemoveImage(0, a) {
		t.Error("RemoveImage succeeded despite native failure")
	}
	if d := cmp.Diff([]pdfview.Handle{a, b}, m.Images(0)); d != "" {
		t.Errorf("images after failed removal (-want +got):\n%s", d)
	}

	doc.SetFaults(memsource.Faults{})
	if !m.RemoveImage(0, a) {
		t.Error("RemoveImage failed")
	}
	if m.RemoveImage(0, a) {
		t.Error("image removed twice")
	}
	if d := cmp.Diff([]pdfview.Handle{b}, m.Images(0)); d != "" {
		t.Errorf("images (-want +got):\n%s", d)
	}
	if d := cmp.Diff([]pdfview.Handle{b}, doc.ImageObjects(0)); d != "" {
		t.Errorf("native images (-want +got):\n%s", d)
	}
}

func TestGroupPerImage(t *testing.T) {
	doc := newDoc()
	m := New(doc, doc, &Options{Grouping: GroupPerImage})

	a := m.AddImage(0, testImage, 0, 0, 1, 1, OriginBottomLeft)
	b := m.AddImage(0, testImage, 0, 0, 1, 1, OriginBottomLeft)
	if n := doc.NumContainers(0); n != 2 {
		t.Errorf("%d containers, want 2", n)
	}
	if !m.RemoveImage(0, a) {
		t.Fatal("RemoveImage failed")
	}
	if n := doc.NumContainers(0); n != 1 {
		t.Errorf("%d containers, want 1", n)
	}

	doc.SetFaults(memsource.Faults{AddImage: true})
	if m.AddImage(0, testImage, 0, 0, 1, 1, OriginBottomLeft) != 0 {
		t.Error("AddImage succeeded despite native failure")
	}
	if n := doc.NumContainers(0); n != 1 {
		t.Errorf("unused container kept: %d containers", n)
	}

	doc.SetFaults(memsource.Faults{})
	if !m.RemoveImage(0, b) {
		t.Fatal("RemoveImage failed")
	}
	if n := doc.NumContainers(0); n != 0 {
		t.Errorf("%d containers, want 0", n)
	}
	if pages := m.Pages(); len(pages) != 0 {
		t.Errorf("pages left: %v", pages)
	}
}

func TestRemoveAnnotation(t *testing.T) {
	for _, grouping := range []Grouping{GroupPerPage, GroupPerImage} {
		t.Run(grouping.String(), func(t *testing.T) {
			doc := newDoc()
			m := New(doc, doc, &Options{Grouping: grouping})
			m.AddImage(0, testImage, 0, 0, 1, 1, OriginBottomLeft)
			m.AddImage(0, testImage, 0, 0, 1, 1, OriginBottomLeft)

			if m.RemoveAnnotation(1) {
				t.Error("removed annotations from a page without overlays")
			}

			doc.SetFaults(memsource.Faults{RemoveContainer: true})
			if m.RemoveAnnotation(0) {
				t.Error("RemoveAnnotation succeeded despite native failure")
			}
			if n := len(m.Images(0)); n != 2 {
				t.Errorf("%d images left, want 2", n)
			}

			doc.SetFaults(memsource.Faults{})
			if !m.RemoveAnnotation(0) {
				t.Error("RemoveAnnotation failed")
			}
			if imgs := m.Images(0); imgs != nil {
				t.Errorf("images left: %v", imgs)
			}
			if n := doc.NumContainers(0); n != 0 {
				t.Errorf("%d containers left", n)
			}
		})
	}
}

func TestClose(t *testing.T) {
	doc := newDoc()
	m := New(doc, doc, nil)
	m.AddImage(0, testImage, 0, 0, 1, 1, OriginBottomLeft)
	m.AddImage(1, testImage, 0, 0, 1, 1, OriginBottomLeft)

	if !m.Close() {
		t.Error("Close failed")
	}
	if pages := m.Pages(); len(pages) != 0 {
		t.Errorf("pages left: %v", pages)
	}
	for page := range 2 {
		if n := doc.NumContainers(page); n != 0 {
			t.Errorf("page %d: %d containers left", page, n)
		}
	}

	if h := m.AddImage(0, testImage, 0, 0, 1, 1, OriginBottomLeft); h != 0 {
		t.Error("AddImage succeeded after Close")
	}
	if n := doc.NumContainers(0); n != 0 {
		t.Errorf("%d containers created after Close", n)
	}
}

func TestAddDuringClose(t *testing.T) {
	doc := newDoc()
	m := New(doc, doc, nil)

	var wg sync.WaitGroup
	var mu sync.Mutex
	var added []pdfview.Handle
	for i := range 16 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if h := m.AddImage(i%2, testImage, 0, 0, 1, 1, OriginBottomLeft); h != 0 {
				mu.Lock()
				added = append(added, h)
				mu.Unlock()
			}
		}()
	}
	m.Close()
	wg.Wait()

	// every add either happened before Close and was swept, or failed
	if pages := m.Pages(); len(pages) != 0 {
		t.Errorf("pages left after close: %v (added %d)", pages, len(added))
	}
	for page := range 2 {
		if objs := doc.ImageObjects(page); len(objs) != 0 {
			t.Errorf("page %d: native images left: %v", page, objs)
		}
	}
}

func TestConcurrentAdd(t *testing.T) {
	doc := newDoc()
	m := New(doc, doc, nil)

	var wg sync.WaitGroup
	for i := range 20 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			m.AddImage(i%2, testImage, 0, 0, 1, 1, OriginTopLeft)
		}()
	}
	wg.Wait()

	for page := range 2 {
		if n := len(m.Images(page)); n != 10 {
			t.Errorf("page %d: %d images, want 10", page, n)
		}
		if n := doc.NumContainers(page); n != 1 {
			t.Errorf("page %d: %d containers, want 1", page, n)
		}
	}
}
