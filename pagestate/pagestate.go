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

// Package pagestate keeps track of which pages of a document have been
// opened.
//
// Pages are opened lazily, the first time they are needed.  Every physical
// page is opened at most once, even if it appears several times in the page
// sequence or if several goroutines request it at the same time.  A page
// which fails to open stays marked as failed; there is no retry.
package pagestate

import (
	"slices"
	"sync"

	"golang.org/x/exp/maps"
	"seehuhn.de/go/pdfview"
)

// Resolver maps logical pages to physical pages.  Negative return values
// mark invalid logical pages.  [*layout.Layout] implements this interface.
type Resolver interface {
	DocumentPage(userPage int) int
}

// Tracker records the open pages of one document.
// It is safe for concurrent use.
type Tracker struct {
	res    Resolver
	opener pdfview.PageOpener

	mu     sync.Mutex
	failed map[int]bool // physical page -> open failed
}

// NewTracker returns a tracker which opens pages using opener.
func NewTracker(res Resolver, opener pdfview.PageOpener) *Tracker {
	return &Tracker{
		res:    res,
		opener: opener,
		failed: make(map[int]bool),
	}
}

// Open makes sure that the physical page behind a logical page is open.
//
// The first call for a physical page opens it.  If this fails, a
// [*pdfview.PageOpenError] is returned.  All later calls for the same
// physical page return alreadyOpen=true without contacting the page
// source, whether the first attempt succeeded or not.  Invalid logical
// pages are ignored.
func (t *Tracker) Open(userPage int) (alreadyOpen bool, err error) {
	page := t.res.DocumentPage(userPage)
	if page < 0 {
		return false, nil
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	if _, seen := t.failed[page]; seen {
		return true, nil
	}

	err = t.opener.OpenPage(page)
	t.failed[page] = err != nil
	if err != nil {
		pdfview.Logger().Warn("cannot open page",
			"page", userPage, "physical", page, "error", err)
		return false, &pdfview.PageOpenError{Page: userPage, Err: err}
	}
	return false, nil
}

// IsOpen reports whether the physical page behind a logical page has been
// opened successfully.
func (t *Tracker) IsOpen(userPage int) bool {
	page := t.res.DocumentPage(userPage)
	if page < 0 {
		return false
	}

	t.mu.Lock()
	defer t.mu.Unlock()
	failed, seen := t.failed[page]
	return seen && !failed
}

// HasError reports whether opening the physical page behind a logical page
// has failed.  Pages which have not been opened yet, and invalid logical
// pages, report false; this differs from "not successfully open", which is
// !IsOpen.
func (t *Tracker) HasError(userPage int) bool {
	page := t.res.DocumentPage(userPage)
	if page < 0 {
		return false
	}

	t.mu.Lock()
	defer t.mu.Unlock()
	return t.failed[page]
}

// PageState describes a physical page which has been opened.
type PageState struct {
	Page   int
	Failed bool
}

// Opened returns all physical pages for which an open has been attempted,
// ordered by page number.
func (t *Tracker) Opened() []PageState {
	t.mu.Lock()
	defer t.mu.Unlock()

	pages := maps.Keys(t.failed)
	slices.Sort(pages)
	res := make([]PageState, len(pages))
	for i, page := range pages {
		res[i] = PageState{Page: page, Failed: t.failed[page]}
	}
	return res
}

// Reset forgets all pages.  This is used when the document is closed.
func (t *Tracker) Reset() {
	t.mu.Lock()
	clear(t.failed)
	t.mu.Unlock()
}
