package sink

import (
	"bytes"
	"fmt"
	"html/template"

	"github.com/matzehuels/nameplate/pkg/card"
	"github.com/matzehuels/nameplate/pkg/fonts"
	"github.com/matzehuels/nameplate/pkg/names"
	"github.com/matzehuels/nameplate/pkg/render/styles"
)

// Print sheet geometry, in millimetres. Pages are A4 landscape.
const (
	PageWidthMM        = 297.0
	PageHeightMM       = 210.0
	PageMarginMM       = 10.0
	PrintPlateWidthMM  = 210.0
	PrintPlateHeightMM = 99.0
	printGapMM         = 4.0
)

type PrintOption func(*printRenderer)

type printRenderer struct {
	columns    int
	style      styles.Style
	fontFamily string
	font       *fonts.Font
}

// WithColumns sets the number of plate columns per page (default 2).
func WithColumns(n int) PrintOption {
	return func(r *printRenderer) {
		if n > 0 {
			r.columns = n
		}
	}
}

// WithPrintStyle sets the plate style of the SVG sheet.
func WithPrintStyle(s styles.Style) PrintOption { return func(r *printRenderer) { r.style = s } }

// WithPrintFontFamily overrides the label font stack.
func WithPrintFontFamily(family string) PrintOption {
	return func(r *printRenderer) { r.fontFamily = family }
}

// WithPrintFont embeds f and uses it for labels.
func WithPrintFont(f *fonts.Font) PrintOption { return func(r *printRenderer) { r.font = f } }

func newPrintRenderer(opts ...PrintOption) printRenderer {
	r := printRenderer{columns: 2, style: styles.Paper{}}
	for _, opt := range opts {
		opt(&r)
	}
	return r
}

func (r *printRenderer) family() string {
	if r.fontFamily != "" {
		return r.fontFamily
	}
	if r.font != nil {
		return r.font.Family
	}
	return ""
}

var printTemplate = template.Must(template.New("print").Parse(`<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>Nameplates</title>
<style>
{{- if .FontFace}}
  {{.FontFace}}
{{- end}}
  @page { size: A4 landscape; margin: 10mm; }
  body { margin: 0; print-color-adjust: exact; -webkit-print-color-adjust: exact; }
  .sheet { display: grid; grid-template-columns: repeat({{.Columns}}, 1fr); gap: 4mm; }
  .print-card { page-break-inside: avoid; break-inside: avoid; }
  .nameplate {
    width: 210mm; max-width: 100%; aspect-ratio: 210 / 99;
    display: flex; align-items: center; justify-content: center;
    background: linear-gradient(#fffdf7, #f5efe0); background-color: white;
    box-shadow: 0 4px 6px rgba(0, 0, 0, 0.1), 0 1px 3px rgba(0, 0, 0, 0.08);
  }
  .nameplate span {
    font-family: {{.FontFamily}}; font-weight: 300; font-size: 80px; color: black; white-space: pre;
    text-shadow: 1px 1px 2px rgba(255,255,255,0.8), -1px -1px 2px rgba(255,255,255,0.8);
  }
</style>
</head>
<body>
<div class="sheet">
{{- range .Plates}}
  <div class="print-card" data-id="{{.ID}}"><div class="nameplate"><span>{{.Label}}</span></div></div>
{{- end}}
</div>
</body>
</html>
`))

type printPlate struct {
	ID    int
	Label string
}

// RenderPrintHTML returns a printable HTML page with one plate per card, in
// card order. Only card values are used.
func RenderPrintHTML(cards []card.Card, opts ...PrintOption) ([]byte, error) {
	r := newPrintRenderer(opts...)

	data := struct {
		Columns    int
		FontFamily template.CSS
		FontFace   template.CSS
		Plates     []printPlate
	}{
		Columns:    r.columns,
		FontFamily: template.CSS(fonts.Stack(r.family())),
	}
	if r.font != nil {
		data.FontFace = template.CSS(r.font.FaceCSS())
	}
	for _, c := range cards {
		data.Plates = append(data.Plates, printPlate{ID: c.ID, Label: names.Format(c.Value)})
	}

	var buf bytes.Buffer
	if err := printTemplate.Execute(&buf, data); err != nil {
		return nil, fmt.Errorf("render print sheet: %w", err)
	}
	return buf.Bytes(), nil
}

// PrintLayout is the page grid of an SVG print sheet.
type PrintLayout struct {
	Columns      int
	RowsPerPage  int
	Pages        int
	PlateWidth   float64 // mm
	PlateHeight  float64 // mm
	ColumnOffset float64 // mm between column origins
	RowOffset    float64 // mm between row origins
}

// ComputePrintLayout fits n plates with the 210:99 plate aspect onto A4
// landscape pages with the given number of columns.
func ComputePrintLayout(n, columns int) PrintLayout {
	columns = max(1, columns)
	innerW := PageWidthMM - 2*PageMarginMM
	innerH := PageHeightMM - 2*PageMarginMM

	w := min(PrintPlateWidthMM, (innerW-float64(columns-1)*printGapMM)/float64(columns))
	h := w * PrintPlateHeightMM / PrintPlateWidthMM
	rows := max(1, int((innerH+printGapMM)/(h+printGapMM)))

	perPage := rows * columns
	pages := max(1, (n+perPage-1)/perPage)
	return PrintLayout{
		Columns:      columns,
		RowsPerPage:  rows,
		Pages:        pages,
		PlateWidth:   w,
		PlateHeight:  h,
		ColumnOffset: w + printGapMM,
		RowOffset:    h + printGapMM,
	}
}

// Center returns the center of plate i in sheet millimetres.
func (l PrintLayout) Center(i int) (x, y float64) {
	perPage := l.RowsPerPage * l.Columns
	page, slot := i/perPage, i%perPage
	row, col := slot/l.Columns, slot%l.Columns
	x = PageMarginMM + float64(col)*l.ColumnOffset + l.PlateWidth/2
	y = float64(page)*PageHeightMM + PageMarginMM + float64(row)*l.RowOffset + l.PlateHeight/2
	return x, y
}

// RenderPrintSVG returns the print sheet as one SVG in millimetre units,
// with A4 landscape pages stacked vertically.
func RenderPrintSVG(cards []card.Card, opts ...PrintOption) []byte {
	r := newPrintRenderer(opts...)
	l := ComputePrintLayout(len(cards), r.columns)
	totalH := float64(l.Pages) * PageHeightMM

	var buf bytes.Buffer
	fmt.Fprintf(&buf, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.1f %.1f" width="%.0fmm" height="%.0fmm">`+"\n",
		PageWidthMM, totalH, PageWidthMM, totalH)
	r.style.RenderDefs(&buf)
	if r.font != nil || r.fontFamily != "" {
		buf.WriteString("  <style>")
		if r.font != nil {
			fmt.Fprintf(&buf, "\n    %s", r.font.FaceCSS())
		}
		fmt.Fprintf(&buf, "\n    .plate-text { font-family: %s; }\n  </style>\n", fonts.Stack(r.family()))
	}

	for p := range l.Pages {
		fmt.Fprintf(&buf, `  <rect class="page" x="0" y="%.1f" width="%.1f" height="%.1f" fill="white"/>`+"\n",
			float64(p)*PageHeightMM, PageWidthMM, PageHeightMM)
	}
	for i, c := range cards {
		x, y := l.Center(i)
		p := styles.Plate{
			ID:    c.ID,
			Label: names.Format(c.Value),
			CX:    x,
			CY:    y,
			W:     l.PlateWidth,
			H:     l.PlateHeight,
			Scale: 1,
		}
		fmt.Fprintf(&buf, `  <g class="print-card" data-id="%d" transform="%s">`+"\n", c.ID, transform(p))
		r.style.RenderPlate(&buf, p)
		r.style.RenderText(&buf, p)
		buf.WriteString("  </g>\n")
	}

	buf.WriteString("</svg>\n")
	return buf.Bytes()
}
