// Package report renders a metadata report for humans and persists it
// as JSON.
package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"

	"github.com/tmcnab/exifscope/internal/metadata"
)

const labelWidth = 25

// Printer writes the styled terminal report. Color is governed by the
// fatih/color package-level switch, so --no-color and non-TTY output
// both degrade to plain text.
type Printer struct {
	w      io.Writer
	rule   string
	bold   *color.Color
	header *color.Color
	label  *color.Color
	good   *color.Color
	notice *color.Color
}

func NewPrinter(w io.Writer) *Printer {
	return &Printer{
		w:      w,
		rule:   strings.Repeat("=", 60),
		bold:   color.New(color.Bold),
		header: color.New(color.Bold, color.FgCyan),
		label:  color.New(color.Faint),
		good:   color.New(color.FgGreen),
		notice: color.New(color.FgYellow),
	}
}

// Print renders the full report. Empty sections are omitted, except
// GPS Location, which always appears so "no GPS data" reads as a
// finding rather than a gap.
func (p *Printer) Print(rep *metadata.Report) {
	fmt.Fprintf(p.w, "\n%s\n", p.bold.Sprint(p.rule))
	fmt.Fprintln(p.w, p.header.Sprint("  EXIF METADATA REPORT"))
	fmt.Fprintln(p.w, p.bold.Sprint(p.rule))

	p.printFile(rep.File)
	p.printGPS(rep.GPS)
	p.printBlock("Device / Camera", rep.Device)
	p.printBlock("Date & Time", rep.DateTime)
	p.printBlock("Image Settings", rep.Image)
	p.printBlock("Other Metadata", rep.Other)

	fmt.Fprintf(p.w, "\n%s\n", p.bold.Sprint(p.rule))
}

func (p *Printer) printFile(f metadata.FileInfo) {
	p.sectionHeader("File Info")
	p.row("Filename", f.Name)
	p.row("Path", f.Path)
	p.row("Size", fmt.Sprintf("%.2f KB", f.SizeKB))
	if f.Width > 0 && f.Height > 0 {
		p.row("Dimensions", fmt.Sprintf("%d x %d", f.Width, f.Height))
	}
}

func (p *Printer) printGPS(gps *metadata.GPSFix) {
	p.sectionHeader("GPS Location")
	if gps == nil {
		fmt.Fprintf(p.w, "  %s\n", p.notice.Sprint("No GPS data found."))
		return
	}
	if gps.Latitude != nil && gps.Longitude != nil {
		p.row("Latitude", fmt.Sprintf("%v", *gps.Latitude))
		p.row("Longitude", fmt.Sprintf("%v", *gps.Longitude))
		fmt.Fprintf(p.w, "  %s\n", p.good.Sprintf("%-*s %s", labelWidth, "Google Maps", gps.MapsURL))
	}
	if gps.Altitude != nil {
		p.row("Altitude (m)", fmt.Sprintf("%v", *gps.Altitude))
	}
	if gps.Place != "" {
		p.row("Place", gps.Place)
	}
}

func (p *Printer) printBlock(title string, b *metadata.Block) {
	if b == nil || b.Len() == 0 {
		return
	}
	p.sectionHeader(title)
	for _, key := range b.Keys() {
		v, _ := b.Get(key)
		p.row(key, fmt.Sprintf("%v", v))
	}
}

func (p *Printer) sectionHeader(title string) {
	fmt.Fprintf(p.w, "\n%s\n", p.header.Sprintf("[ %s ]", title))
}

func (p *Printer) row(key, value string) {
	fmt.Fprintf(p.w, "  %s %s\n", p.label.Sprintf("%-*s", labelWidth, key), value)
}
