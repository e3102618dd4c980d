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

// Package pdfview implements the page layout and coordinate mapping engine of
// a scrollable, zoomable multi-page PDF viewer.
//
// The root package defines the types shared between the sub-packages and the
// interfaces through which the engine talks to the underlying page source
// (the PDF decoder and rasteriser).  The work is done in the sub-packages:
//
//   - [seehuhn.de/go/pdfview/fit] derives the scaled size of every page from
//     a fit policy and the viewport size.
//   - [seehuhn.de/go/pdfview/layout] keeps the scaled page sizes, spacing,
//     page offsets and the total document length.
//   - [seehuhn.de/go/pdfview/viewport] converts between screen coordinates
//     and page coordinates.
//   - [seehuhn.de/go/pdfview/pagestate] tracks which pages have been opened
//     in the page source.
//   - [seehuhn.de/go/pdfview/overlay] owns the native image overlays
//     attached to pages.
//   - [seehuhn.de/go/pdfview/document] ties everything together for one open
//     document.
//
// Two coordinate systems are used throughout.  Screen (device) coordinates
// have their origin in the top-left corner with y pointing down.  Page
// coordinates have their origin in the bottom-left corner of the page with
// y pointing up, in the units of the page source.
//
// A typical use looks like this:
//
//	doc, err := document.Open(src, pdfview.Size{Width: 1080, Height: 1920}, nil)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer doc.Close()
//
//	page := doc.Layout.PageAtOffset(offset, zoom)
//	...
package pdfview
