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
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestMarks(t *testing.T) {
	var r Marks
	a := Mark{Page: 1, Left: 10, Top: 20, Width: 5, Height: 5}
	b := Mark{Page: 1, Left: 10, Top: 20, Width: 5, Height: 5, Rotate: 90}
	c := Mark{Page: 3, Width: 1, Height: 1}

	r.Add(a, false)
	r.Add(a, true)
	r.Add(b, true)
	r.Add(c, false)

	if d := cmp.Diff([]Mark{a, b}, r.Marks(1)); d != "" {
		t.Errorf("marks on page 1 (-want +got):\n%s", d)
	}
	if d := cmp.Diff([]int{1, 3}, r.Pages()); d != "" {
		t.Errorf("pages (-want +got):\n%s", d)
	}

	r.Add(a, false)
	if !r.Remove(a) || !r.Has(a) {
		t.Error("Remove should remove one copy only")
	}
	if !r.Remove(a) || r.Has(a) {
		t.Error("second copy not removed")
	}
	if r.Remove(Mark{Page: 7}) {
		t.Error("removed a mark which was never added")
	}

	r.Clear(1)
	if r.Has(b) || !r.Has(c) {
		t.Error("Clear(1) removed the wrong marks")
	}
	r.Clear(-1)
	if r.Has(c) || len(r.Pages()) != 0 {
		t.Error("Clear(-1) did not remove all marks")
	}
}
