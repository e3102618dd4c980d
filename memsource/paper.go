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

import "seehuhn.de/go/pdfview"

// Common paper sizes, in PDF points.
var (
	A4     = pdfview.Size{Width: 595.276, Height: 841.890}
	A5     = pdfview.Size{Width: 420.945, Height: 595.276}
	Letter = pdfview.Size{Width: 612, Height: 792}
)
