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

// Pdfview-layout shows how the pages of a document are laid out in a
// viewer window.
//
// The document is described by a list of page sizes.  The program prints
// the scaled size and the position of every page, and can map a screen
// point to page coordinates or render the visible part of the document
// into a PNG file.
//
// Usage:
//
//	pdfview-layout [flags] a4,letter,300x400,...
package main

import (
	"errors"
	"flag"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"io"
	"log"
	"log/slog"
	"math"
	"os"
	"strconv"
	"strings"
	"text/tabwriter"

	"golang.org/x/term"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"seehuhn.de/go/pdfview"
	"seehuhn.de/go/pdfview/document"
	"seehuhn.de/go/pdfview/fit"
	"seehuhn.de/go/pdfview/internal/float"
	"seehuhn.de/go/pdfview/layout"
	"seehuhn.de/go/pdfview/memsource"
	"seehuhn.de/go/pdfview/viewport"
	"seehuhn.de/go/xmp"
)

func main() {
	view := flag.String("view", "800x600", "viewport size `WxH`")
	fitArg := flag.String("fit", "width", "fit policy (width, height or both)")
	each := flag.Bool("each", false, "fit each page separately")
	auto := flag.Bool("auto", false, "center every page in the viewport")
	spacing := flag.Float64("spacing", 0, "space between pages")
	horizontal := flag.Bool("horizontal", false, "scroll horizontally")
	zoom := flag.Float64("zoom", 1, "zoom level")
	scroll := flag.String("scroll", "0,0", "scroll position `X,Y`")
	order := flag.String("order", "", "comma-separated page sequence")
	at := flag.String("at", "", "map the screen point `X,Y` to page coordinates")
	title := flag.String("title", "", "document title, shown as XMP metadata")
	render := flag.String("render", "", "render the visible pages into this PNG file")
	verbose := flag.Bool("v", false, "log layout details to stderr")
	flag.Parse()

	if flag.NArg() != 1 {
		fmt.Fprintf(os.Stderr, "Usage: %s [options] a4,letter,WxH,...\n", os.Args[0])
		flag.PrintDefaults()
		os.Exit(1)
	}
	if *verbose {
		h := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug})
		pdfview.SetLogger(slog.New(h))
	}

	sizes, err := parseSizes(flag.Arg(0))
	if err != nil {
		log.Fatal(err)
	}
	viewSize, err := parseSize(*view)
	if err != nil {
		log.Fatal(err)
	}
	policy, err := fit.ParsePolicy(*fitArg)
	if err != nil {
		log.Fatal(err)
	}
	scrollX, scrollY, err := parsePoint(*scroll)
	if err != nil {
		log.Fatal(err)
	}

	lopt := &layout.Options{
		Policy:      policy,
		Spacing:     *spacing,
		AutoSpacing: *auto,
		FitEachPage: *each,
	}
	if *horizontal {
		lopt.Direction = layout.Horizontal
	}
	if *order != "" {
		lopt.Pages, err = parseInts(*order)
		if err != nil {
			log.Fatal(err)
		}
	}

	src := memsource.FromSizes(sizes...)
	if *title != "" {
		err = src.SetInfo(*title, os.Getenv("USER"))
		if err != nil {
			log.Fatal(err)
		}
	}
	doc, err := document.Open(src, viewSize, &document.Options{Layout: lopt})
	if err != nil {
		log.Fatal(err)
	}
	defer doc.Close()

	st := viewport.State{ScrollX: scrollX, ScrollY: scrollY, Zoom: *zoom}

	err = showLayout(os.Stdout, doc, *zoom)
	if err != nil {
		log.Fatal(err)
	}

	if *at != "" {
		x, y, err := parsePoint(*at)
		if err != nil {
			log.Fatal(err)
		}
		page, p, ok := doc.ScreenToPage(st, x, y)
		if !ok {
			fmt.Printf("(%s, %s) is not on a page\n", float.Format(x, 2), float.Format(y, 2))
		} else {
			fmt.Printf("(%s, %s) -> page %d at (%s, %s)\n",
				float.Format(x, 2), float.Format(y, 2), page,
				float.Format(p.X, 2), float.Format(p.Y, 2))
		}
	}

	if packet := doc.Metadata(); packet != nil {
		err = packet.Write(os.Stdout, &xmp.PacketOptions{Pretty: true})
		if err != nil {
			log.Fatal(err)
		}
	}

	if *render != "" {
		err = renderView(*render, doc, st, viewSize)
		if err != nil {
			log.Fatal(err)
		}
	}
}

// showLayout prints one line per logical page.  On a terminal the columns
// are aligned, otherwise they are separated by tabs.
func showLayout(w io.Writer, doc *document.Document, zoom float64) error {
	p := message.NewPrinter(language.English)
	out := w
	var tw *tabwriter.Writer
	if f, ok := w.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		tw = tabwriter.NewWriter(w, 0, 8, 2, ' ', tabwriter.AlignRight)
		out = tw
	}

	l := doc.Layout
	p.Fprintf(out, "page\tphysical\twidth\theight\toffset\tsecondary\t\n")
	for i := range l.NumPages() {
		size := l.ScaledPageSize(i, zoom)
		p.Fprintf(out, "%d\t%d\t%.1f\t%.1f\t%.1f\t%.1f\t\n",
			i, l.DocumentPage(i), size.Width, size.Height,
			l.PageOffset(i, zoom), l.SecondaryPageOffset(i, zoom))
	}
	if tw != nil {
		err := tw.Flush()
		if err != nil {
			return err
		}
	}
	_, err := p.Fprintf(w, "document length %.1f (%s)\n", l.DocLen(zoom), l.Direction())
	return err
}

// renderView draws the part of the document visible in the viewport.
func renderView(fname string, doc *document.Document, st viewport.State, view pdfview.Size) error {
	bounds := image.Rect(0, 0, int(math.Ceil(view.Width)), int(math.Ceil(view.Height)))
	img := image.NewRGBA(bounds)
	draw.Draw(img, bounds, image.NewUniform(color.Gray{Y: 0x80}), image.Point{}, draw.Src)

	for page := range doc.NumPages() {
		pb, ok := doc.PageBox(st, page)
		if !ok {
			continue
		}
		r := image.Rect(
			int(math.Round(pb.X)), int(math.Round(pb.Y)),
			int(math.Round(pb.X+pb.Width)), int(math.Round(pb.Y+pb.Height)))
		if !r.Overlaps(bounds) {
			continue
		}
		err := doc.RenderPage(img, page, r, true)
		if err != nil {
			return err
		}
	}

	fd, err := os.Create(fname)
	if err != nil {
		return err
	}
	err = png.Encode(fd, img)
	if err != nil {
		fd.Close()
		return err
	}
	return fd.Close()
}

func parseSizes(s string) ([]pdfview.Size, error) {
	var res []pdfview.Size
	for _, field := range strings.Split(s, ",") {
		size, err := parseSize(field)
		if err != nil {
			return nil, err
		}
		res = append(res, size)
	}
	return res, nil
}

func parseSize(s string) (pdfview.Size, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "a4":
		return memsource.A4, nil
	case "a5":
		return memsource.A5, nil
	case "letter":
		return memsource.Letter, nil
	}

	ws, hs, ok := strings.Cut(s, "x")
	if !ok {
		return pdfview.Size{}, fmt.Errorf("invalid size %q", s)
	}
	w, err := strconv.ParseFloat(strings.TrimSpace(ws), 64)
	if err != nil {
		return pdfview.Size{}, err
	}
	h, err := strconv.ParseFloat(strings.TrimSpace(hs), 64)
	if err != nil {
		return pdfview.Size{}, err
	}
	return pdfview.Size{Width: w, Height: h}, nil
}

func parsePoint(s string) (float64, float64, error) {
	xs, ys, ok := strings.Cut(s, ",")
	if !ok {
		return 0, 0, fmt.Errorf("invalid point %q", s)
	}
	x, err := strconv.ParseFloat(strings.TrimSpace(xs), 64)
	if err != nil {
		return 0, 0, err
	}
	y, err := strconv.ParseFloat(strings.TrimSpace(ys), 64)
	if err != nil {
		return 0, 0, err
	}
	return x, y, nil
}

func parseInts(s string) ([]int, error) {
	var res []int
	for _, field := range strings.Split(s, ",") {
		n, err := strconv.Atoi(strings.TrimSpace(field))
		if err != nil {
			return nil, err
		}
		res = append(res, n)
	}
	if len(res) == 0 {
		return nil, errors.New("empty page sequence")
	}
	return res, nil
}
