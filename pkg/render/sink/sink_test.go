package sink

import (
	"context"
	"strings"
	"testing"

	"github.com/matzehuels/nameplate/pkg/card"
	"github.com/matzehuels/nameplate/pkg/errors"
	"github.com/matzehuels/nameplate/pkg/fonts"
	"github.com/matzehuels/nameplate/pkg/render/styles"
)

func testCards() []card.Card {
	return []card.Card{
		{ID: 9, Value: "Ada", X: 100, Y: 100, Rotation: 15, ZIndex: 2, Scale: 1},
		{ID: 4, Value: "张三", X: 300, Y: 200, Rotation: -30, ZIndex: 0, Scale: 1},
		{ID: 1, Value: "Grace", X: 500, Y: 300, ZIndex: 2},
	}
}

func TestRenderSVGPaintOrder(t *testing.T) {
	out := string(RenderSVG(testCards(), 800, 600))

	// ZIndex 0 first, then the two ZIndex 2 cards by id.
	order := []string{`id="card-4"`, `id="card-1"`, `id="card-9"`}
	last := -1
	for _, id := range order {
		i := strings.Index(out, id)
		if i < 0 {
			t.Fatalf("RenderSVG() missing %s", id)
		}
		if i < last {
			t.Errorf("%s drawn out of order", id)
		}
		last = i
	}
}

func TestRenderSVGContent(t *testing.T) {
	out := string(RenderSVG(testCards(), 800, 600, WithStyle(styles.Simple{}), WithSelected(4)))

	tests := []struct {
		name string
		want string
	}{
		{"viewBox", `viewBox="0 0 800.0 600.0"`},
		{"rotation about center", `transform="translate(100.00 100.00) rotate(15.00) scale(1.000)"`},
		{"zero scale drawn as 1", `transform="translate(500.00 300.00) rotate(0.00) scale(1.000)"`},
		{"formatted label", "张\u2004\u2004\u2004\u2004三"},
		{"selected class", `class="card selected" data-id="4"`},
		{"plate size", `width="200.00" height="98.00"`},
		{"simple backdrop", `fill="white"`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if !strings.Contains(out, tt.want) {
				t.Errorf("RenderSVG() missing %s", tt.want)
			}
		})
	}
	if strings.Contains(out, `id="editor"`) {
		t.Error("RenderSVG() drew an editor without WithEditor")
	}
}

func TestRenderSVGEditor(t *testing.T) {
	out := string(RenderSVG(testCards(), 800, 600, WithSelected(9), WithEditor("Ada L")))
	if !strings.Contains(out, `id="editor"`) || !strings.Contains(out, "Ada L") {
		t.Errorf("RenderSVG() missing edit overlay:\n%s", out)
	}
	if strings.Index(out, `id="editor"`) < strings.Index(out, `id="card-9"`) {
		t.Error("editor should be drawn above the board")
	}
	if !strings.Contains(out, `transform="translate(400.00 300.00) rotate(0.00)`) {
		t.Error("editor should be centered and upright")
	}
}

func TestRenderSVGFonts(t *testing.T) {
	out := string(RenderSVG(nil, 100, 100, WithEmbeddedFont(fonts.New(fonts.FontFamily, "woff", []byte("wOFF")))))
	if !strings.Contains(out, "@font-face") || !strings.Contains(out, ".plate-text { font-family: "+fonts.FallbackFontFamily) {
		t.Errorf("RenderSVG() missing embedded font CSS:\n%s", out)
	}

	out = string(RenderSVG(nil, 100, 100, WithFontFamily("Kaiti")))
	if !strings.Contains(out, ".plate-text { font-family: 'Kaiti'") {
		t.Errorf("RenderSVG() missing font family override:\n%s", out)
	}
}

func TestRenderSVGPlateSize(t *testing.T) {
	out := string(RenderSVG(testCards()[:1], 800, 600, WithPlateSize(100, 49), WithStyle(styles.Simple{})))
	if !strings.Contains(out, `width="100.00" height="49.00"`) {
		t.Errorf("WithPlateSize not applied:\n%s", out)
	}
}

func TestRenderPrintHTML(t *testing.T) {
	cards := testCards()
	cards[0].Value = "<b>"
	out, err := RenderPrintHTML(cards)
	if err != nil {
		t.Fatalf("RenderPrintHTML() error: %v", err)
	}
	html := string(out)

	for _, want := range []string{
		"size: A4 landscape",
		"margin: 10mm",
		"repeat(2, 1fr)",
		"page-break-inside: avoid",
		"width: 210mm",
		"aspect-ratio: 210 / 99",
		"&lt;\u2004b\u2004&gt;",
		fonts.FallbackFontFamily,
	} {
		if !strings.Contains(html, want) {
			t.Errorf("RenderPrintHTML() missing %q", want)
		}
	}
	if n := strings.Count(html, `class="print-card"`); n != len(cards) {
		t.Errorf("RenderPrintHTML() has %d plates, want %d", n, len(cards))
	}
	if i, j := strings.Index(html, `data-id="9"`), strings.Index(html, `data-id="4"`); i > j {
		t.Error("print plates should follow card order")
	}
}

func TestRenderPrintHTMLColumns(t *testing.T) {
	out, err := RenderPrintHTML(testCards(), WithColumns(3), WithPrintFont(fonts.New(fonts.FontFamily, "truetype", []byte{1})))
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(out), "repeat(3, 1fr)") || !strings.Contains(string(out), "@font-face") {
		t.Errorf("RenderPrintHTML() ignored options:\n%s", out)
	}
}

func TestComputePrintLayout(t *testing.T) {
	l := ComputePrintLayout(9, 2)
	if l.Columns != 2 || l.RowsPerPage != 2 || l.Pages != 3 {
		t.Errorf("ComputePrintLayout(9, 2) = %+v, want 2 cols, 2 rows, 3 pages", l)
	}
	if l.PlateWidth != 136.5 {
		t.Errorf("PlateWidth = %v, want 136.5", l.PlateWidth)
	}
	if ratio := l.PlateWidth / l.PlateHeight; ratio < 2.12 || ratio > 2.13 {
		t.Errorf("plate aspect = %v, want 210/99", ratio)
	}

	x, y := l.Center(4)
	if x != PageMarginMM+l.PlateWidth/2 || y != PageHeightMM+PageMarginMM+l.PlateHeight/2 {
		t.Errorf("Center(4) = (%v, %v), want first slot of page 2", x, y)
	}

	one := ComputePrintLayout(1, 1)
	if one.PlateWidth != PrintPlateWidthMM || one.Pages != 1 {
		t.Errorf("ComputePrintLayout(1, 1) = %+v, want full-size plates", one)
	}
	if empty := ComputePrintLayout(0, 2); empty.Pages != 1 {
		t.Errorf("ComputePrintLayout(0, 2).Pages = %d, want 1", empty.Pages)
	}
}

func TestRenderPrintSVG(t *testing.T) {
	cards := make([]card.Card, 5)
	for i := range cards {
		cards[i] = card.Card{ID: i, Value: "N"}
	}
	out := string(RenderPrintSVG(cards))
	if !strings.Contains(out, `width="297mm" height="420mm"`) {
		t.Errorf("RenderPrintSVG() should stack two pages:\n%s", out[:200])
	}
	if n := strings.Count(out, `class="page"`); n != 2 {
		t.Errorf("RenderPrintSVG() drew %d pages, want 2", n)
	}
	if n := strings.Count(out, `class="print-card"`); n != 5 {
		t.Errorf("RenderPrintSVG() drew %d plates, want 5", n)
	}
}

func TestToDOT(t *testing.T) {
	dot := ToDOT(testCards(), 800, 600)
	for _, want := range []string{
		"layout=neato;",
		"inputscale=72;",
		`card9 [label="A` + "\u2004" + `d` + "\u2004" + `a", pos="100,-100!", orientation=15];`,
		`card4 [label="张` + "\u2004\u2004\u2004\u2004" + `三", pos="300,-200!", orientation=-30];`,
		`corner1 [shape=point, style=invis, pos="800,-600!"];`,
		"fixedsize=true",
	} {
		if !strings.Contains(dot, want) {
			t.Errorf("ToDOT() missing %s in:\n%s", want, dot)
		}
	}
	if strings.Index(dot, "card4 ") > strings.Index(dot, "card9 ") {
		t.Error("ToDOT() nodes should follow paint order")
	}
}

func TestQuote(t *testing.T) {
	if got := quote(`say "hi"\`); got != `"say \"hi\"\\"` {
		t.Errorf("quote() = %s", got)
	}
}

func TestRenderDOTFormat(t *testing.T) {
	_, err := RenderDOT(context.Background(), "graph {}", "gif")
	if !errors.Is(err, errors.ErrCodeInvalidFormat) {
		t.Errorf("RenderDOT(gif) error = %v, want INVALID_FORMAT", err)
	}
}

func TestNormalizeViewBox(t *testing.T) {
	in := []byte(`<svg width="100pt" height="50pt" viewBox="0.00 0.00 100.00 50.00" xmlns="http://www.w3.org/2000/svg"><g/></svg>`)
	out := string(normalizeViewBox(in))
	if !strings.Contains(out, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 100.00 50.00" width="100" height="50">`) {
		t.Errorf("normalizeViewBox() = %s", out)
	}
	if got := normalizeViewBox([]byte("<svg>")); string(got) != "<svg>" {
		t.Errorf("normalizeViewBox() without viewBox changed input: %s", got)
	}
}
