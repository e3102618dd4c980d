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

package viewport

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"seehuhn.de/go/geom/rect"
	"seehuhn.de/go/geom/vec"
	"seehuhn.de/go/pdfview"
	"seehuhn.de/go/pdfview/fit"
	"seehuhn.de/go/pdfview/layout"
	"seehuhn.de/go/pdfview/memsource"
)

var approx = cmpopts.EquateApprox(0, 1e-9)

func newTestMapper(t *testing.T, opt *layout.Options, sizes ...pdfview.Size) *Mapper {
	t.Helper()
	doc := memsource.FromSizes(sizes...)
	l, err := layout.New(doc, pdfview.Size{Width: 100, Height: 100}, opt)
	if err != nil {
		t.Fatal(err)
	}
	return NewMapper(l, doc)
}

var threePages = []pdfview.Size{
	{Width: 100, Height: 200},
	{Width: 150, Height: 100},
	{Width: 80, Height: 80},
}

func TestScreenToPage(t *testing.T) {
	m := newTestMapper(t, &layout.Options{Policy: fit.Width, Spacing: 10}, threePages...)
	f := 100.0 / 150.0

	type testCase struct {
		st       State
		x, y     float64
		wantPage int
		want     vec.Vec2
	}
	cases := []testCase{
		// centre of the first page
		{State{Zoom: 1}, 50, 100 * f, 0, vec.Vec2{X: 50, Y: 100}},
		// zoomed in
		{State{Zoom: 2}, 100, 200 * f, 0, vec.Vec2{X: 50, Y: 100}},
		// scrolled so that page 1 starts at the top of the view
		{State{Zoom: 1, ScrollY: -(200*f + 10)}, 50, 10, 1, vec.Vec2{X: 75, Y: 85}},
	}
	for i, c := range cases {
		page, p, ok := m.ScreenToPage(c.st, c.x, c.y)
		if !ok {
			t.Errorf("%d: conversion failed", i)
			continue
		}
		if page != c.wantPage {
			t.Errorf("%d: page %d, want %d", i, page, c.wantPage)
		}
		if d := cmp.Diff(c.want, p, approx); d != "" {
			t.Errorf("%d: point (-want +got):\n%s", i, d)
		}
	}
}

func TestPageRectToScreen(t *testing.T) {
	m := newTestMapper(t, &layout.Options{Policy: fit.Width, Spacing: 10}, threePages...)
	f := 100.0 / 150.0
	st := State{Zoom: 1, ScrollY: -(200*f + 10)}
	want := pdfview.Rect{Left: 0, Top: 0, Right: 100, Bottom: 100 * f}

	for _, r := range []rect.Rect{
		{LLx: 0, LLy: 0, URx: 150, URy: 100},
		{LLx: 150, LLy: 100, URx: 0, URy: 0},
	} {
		got, ok := m.PageRectToScreen(st, 1, r)
		if !ok {
			t.Fatal("conversion failed")
		}
		if d := cmp.Diff(want, got, approx); d != "" {
			t.Errorf("PageRectToScreen(%v) (-want +got):\n%s", r, d)
		}
		if got.Left > got.Right || got.Top > got.Bottom {
			t.Errorf("rectangle %v is not normalized", got)
		}
	}
}

func TestRectRoundTrip(t *testing.T) {
	m := newTestMapper(t, &layout.Options{Policy: fit.Width, Spacing: 10}, threePages...)
	st := State{Zoom: 1.5, ScrollX: -3, ScrollY: -180}

	for rot := pdfview.Rotate0; rot <= pdfview.Rotate270; rot++ {
		st.Rotation = rot
		in := rect.Rect{LLx: 10, LLy: 20, URx: 60, URy: 70}
		screen, ok := m.PageRectToScreen(st, 1, in)
		if !ok {
			t.Fatalf("%d°: PageRectToScreen failed", rot.Degrees())
		}
		page, out, ok := m.ScreenRectToPage(st, screen)
		if !ok {
			t.Fatalf("%d°: ScreenRectToPage failed", rot.Degrees())
		}
		if page != 1 {
			t.Errorf("%d°: page %d, want 1", rot.Degrees(), page)
		}
		if d := cmp.Diff(in, out, approx); d != "" {
			t.Errorf("%d°: round trip (-want +got):\n%s", rot.Degrees(), d)
		}
	}
}

func TestPointRoundTrip(t *testing.T) {
	m := newTestMapper(t, &layout.Options{Policy: fit.Both, AutoSpacing: true, Spacing: 4}, threePages...)
	st := State{Zoom: 1.25, ScrollY: -250}
	p := vec.Vec2{X: 40, Y: 30}

	q, ok := m.PageToScreen(st, 2, p)
	if !ok {
		t.Fatal("PageToScreen failed")
	}
	page, back, ok := m.ScreenToPage(st, q.X, q.Y)
	if !ok {
		t.Fatal("ScreenToPage failed")
	}
	if page != 2 {
		t.Errorf("page %d, want 2", page)
	}
	if d := cmp.Diff(p, back, approx); d != "" {
		t.Errorf("round trip (-want +got):\n%s", d)
	}
}

func TestHorizontal(t *testing.T) {
	m := newTestMapper(t, &layout.Options{Policy: fit.Height, Direction: layout.Horizontal},
		pdfview.Size{Width: 100, Height: 200},
		pdfview.Size{Width: 200, Height: 100},
	)

	page, p, ok := m.ScreenToPage(State{Zoom: 1}, 100, 50)
	if !ok {
		t.Fatal("conversion failed")
	}
	if page != 1 {
		t.Errorf("page %d, want 1", page)
	}
	if d := cmp.Diff(vec.Vec2{X: 100, Y: 50}, p, approx); d != "" {
		t.Errorf("point (-want +got):\n%s", d)
	}

	box, ok := m.PageBox(State{Zoom: 1, ScrollX: -10}, 1)
	if !ok {
		t.Fatal("PageBox failed")
	}
	want := pdfview.DeviceBox{X: 40, Y: 25, Width: 100, Height: 50}
	if d := cmp.Diff(want, box, approx); d != "" {
		t.Errorf("page box (-want +got):\n%s", d)
	}
}

func TestInvalidPages(t *testing.T) {
	m := newTestMapper(t, &layout.Options{Policy: fit.Width, Pages: []int{0, 9}}, threePages...)
	st := State{Zoom: 1}

	if _, ok := m.PageRectToScreen(st, 1, rect.Rect{URx: 1, URy: 1}); ok {
		t.Error("PageRectToScreen accepted an invalid logical page")
	}
	if _, ok := m.PageRectToScreen(st, -1, rect.Rect{URx: 1, URy: 1}); ok {
		t.Error("PageRectToScreen accepted a negative page")
	}
	if _, ok := m.PageToScreen(st, 5, vec.Vec2{}); ok {
		t.Error("PageToScreen accepted a page out of range")
	}

	empty := newTestMapper(t, nil)
	if _, _, ok := empty.ScreenToPage(st, 10, 10); ok {
		t.Error("ScreenToPage succeeded on an empty document")
	}
	if _, _, ok := empty.ScreenRectToPage(st, pdfview.Rect{Right: 10, Bottom: 10}); ok {
		t.Error("ScreenRectToPage succeeded on an empty document")
	}
}

func TestScreenRectOnPage(t *testing.T) {
	m := newTestMapper(t, &layout.Options{Policy: fit.Width, Spacing: 10}, threePages...)
	f := 100.0 / 150.0
	st := State{Zoom: 1}

	// a rectangle at the top of the view, expressed relative to page 1
	// which starts below it
	got, ok := m.ScreenRectOnPage(st, 1, pdfview.Rect{Left: 0, Top: 0, Right: 100, Bottom: 10})
	if !ok {
		t.Fatal("conversion failed")
	}
	top := 100 + (200*f+10)/f
	want := rect.Rect{LLx: 0, LLy: top - 10/f, URx: 150, URy: top}
	if d := cmp.Diff(want, got, approx); d != "" {
		t.Errorf("rectangle (-want +got):\n%s", d)
	}
}
