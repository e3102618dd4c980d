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

// Package fit computes the scaled size of pages for display in a viewport.
package fit

import (
	"fmt"

	"seehuhn.de/go/pdfview"
)

// Policy selects which viewport dimension the pages are fitted to.
type Policy int

// Valid values for Policy.
const (
	Width  Policy = iota // page width fills the viewport width
	Height               // page height fills the viewport height
	Both                 // the whole page fits into the viewport
)

func (p Policy) String() string {
	switch p {
	case Width:
		return "width"
	case Height:
		return "height"
	case Both:
		return "both"
	default:
		return fmt.Sprintf("Policy(%d)", int(p))
	}
}

// ParsePolicy converts the output of [Policy.String] back into a Policy.
func ParsePolicy(s string) (Policy, error) {
	switch s {
	case "width":
		return Width, nil
	case "height":
		return Height, nil
	case "both":
		return Both, nil
	}
	return 0, fmt.Errorf("unknown fit policy %q", s)
}

// Calculator scales original page sizes according to a fit policy.
//
// If FitEachPage is false, a single scale factor derived from the largest
// pages is applied to all pages, so that the relative sizes of pages are
// preserved.  Otherwise every page is fitted to the viewport on its own.
type Calculator struct {
	policy      Policy
	viewport    pdfview.Size
	fitEachPage bool

	widthRatio  float64
	heightRatio float64

	optimalMaxWidth  pdfview.Size
	optimalMaxHeight pdfview.Size
}

// NewCalculator derives the scaling rule for the given policy.
//
// maxWidthPage is the original size of the widest page, maxHeightPage the
// original size of the tallest page.  The viewport must have positive
// width and height, otherwise [pdfview.ErrInvalidViewport] is returned.
func NewCalculator(policy Policy, maxWidthPage, maxHeightPage, viewport pdfview.Size, fitEachPage bool) (*Calculator, error) {
	if viewport.IsZero() {
		return nil, fmt.Errorf("%w: %gx%g", pdfview.ErrInvalidViewport, viewport.Width, viewport.Height)
	}

	c := &Calculator{
		policy:      policy,
		viewport:    viewport,
		fitEachPage: fitEachPage,
	}
	c.computeMaxSizes(maxWidthPage, maxHeightPage)
	return c, nil
}

func (c *Calculator) computeMaxSizes(maxW, maxH pdfview.Size) {
	vw, vh := c.viewport.Width, c.viewport.Height
	switch c.policy {
	case Height:
		c.optimalMaxHeight = fitHeight(maxH, vh)
		c.heightRatio = ratio(c.optimalMaxHeight.Height, maxH.Height)
		c.optimalMaxWidth = fitHeight(maxW, maxW.Height*c.heightRatio)
		c.widthRatio = ratio(c.optimalMaxWidth.Width, maxW.Width)
	case Both:
		localMaxWidth := fitBoth(maxW, vw, vh)
		localWidthRatio := ratio(localMaxWidth.Width, maxW.Width)
		c.optimalMaxHeight = fitBoth(maxH, maxH.Width*localWidthRatio, vh)
		c.heightRatio = ratio(c.optimalMaxHeight.Height, maxH.Height)
		c.optimalMaxWidth = fitBoth(maxW, vw, maxW.Height*c.heightRatio)
		c.widthRatio = ratio(c.optimalMaxWidth.Width, maxW.Width)
	default:
		c.optimalMaxWidth = fitWidth(maxW, vw)
		c.widthRatio = ratio(c.optimalMaxWidth.Width, maxW.Width)
		c.optimalMaxHeight = fitWidth(maxH, maxH.Width*c.widthRatio)
		c.heightRatio = ratio(c.optimalMaxHeight.Height, maxH.Height)
	}
}

// OptimalMaxWidthPageSize returns the scaled size of the widest page.
func (c *Calculator) OptimalMaxWidthPageSize() pdfview.Size {
	return c.optimalMaxWidth
}

// OptimalMaxHeightPageSize returns the scaled size of the tallest page.
func (c *Calculator) OptimalMaxHeightPageSize() pdfview.Size {
	return c.optimalMaxHeight
}

// Scale returns the scaled size of a page with the given original size.
// Pages without area are scaled to the zero size.
func (c *Calculator) Scale(orig pdfview.Size) pdfview.Size {
	if orig.IsZero() {
		return pdfview.Size{}
	}

	maxWidth := orig.Width * c.widthRatio
	maxHeight := orig.Height * c.heightRatio
	if c.fitEachPage {
		maxWidth = c.viewport.Width
		maxHeight = c.viewport.Height
	}

	switch c.policy {
	case Height:
		return fitHeight(orig, maxHeight)
	case Both:
		return fitBoth(orig, maxWidth, maxHeight)
	default:
		return fitWidth(orig, maxWidth)
	}
}

// fitWidth scales size to the given width, keeping the aspect ratio.
func fitWidth(size pdfview.Size, maxWidth float64) pdfview.Size {
	if size.IsZero() {
		return pdfview.Size{}
	}
	return pdfview.Size{Width: maxWidth, Height: maxWidth * size.Height / size.Width}
}

// fitHeight scales size to the given height, keeping the aspect ratio.
func fitHeight(size pdfview.Size, maxHeight float64) pdfview.Size {
	if size.IsZero() {
		return pdfview.Size{}
	}
	return pdfview.Size{Width: maxHeight * size.Width / size.Height, Height: maxHeight}
}

// fitBoth scales size to the largest size which fits into maxWidth x maxHeight.
// The width-driven candidate is used unless its height exceeds maxHeight.
func fitBoth(size pdfview.Size, maxWidth, maxHeight float64) pdfview.Size {
	if size.IsZero() {
		return pdfview.Size{}
	}
	res := fitWidth(size, maxWidth)
	if res.Height > maxHeight {
		res = fitHeight(size, maxHeight)
	}
	return res
}

func ratio(a, b float64) float64 {
	if b <= 0 {
		return 0
	}
	return a / b
}
