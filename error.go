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
	"errors"
	"strconv"
)

var (
	// ErrInvalidViewport is returned when a viewport has a zero or negative
	// width or height.
	ErrInvalidViewport = errors.New("invalid viewport size")

	// ErrClosed is returned by operations on a document which has already
	// been closed.
	ErrClosed = errors.New("document is closed")

	// ErrPageRange indicates a physical page index outside the document.
	ErrPageRange = errors.New("page index out of range")
)

// PageOpenError indicates that the page source could not open a page.
// Page is the logical page index which was requested.
type PageOpenError struct {
	Page int
	Err  error
}

func (err *PageOpenError) Error() string {
	middle := ""
	if err.Err != nil {
		middle = ": " + err.Err.Error()
	}
	return "cannot open page " + strconv.Itoa(err.Page) + middle
}

func (err *PageOpenError) Unwrap() error {
	return err.Err
}
