package sink

import (
	"bytes"
	"cmp"
	"fmt"
	"slices"

	"github.com/matzehuels/nameplate/pkg/card"
	"github.com/matzehuels/nameplate/pkg/fonts"
	"github.com/matzehuels/nameplate/pkg/names"
	"github.com/matzehuels/nameplate/pkg/render/styles"
)

// Plate size on screen, in pixels.
const (
	PlateWidth  = 200.0
	PlateHeight = 98.0
)

// editorScale is how much larger the edited plate is drawn in the overlay.
const editorScale = 2.5

const cardCSS = `
    .card { cursor: grab; }
    .card.selected { cursor: grabbing; }
    .editor-shade { fill: #000; fill-opacity: 0.35; }`

type SVGOption func(*svgRenderer)

type svgRenderer struct {
	style      styles.Style
	plateW     float64
	plateH     float64
	selected   int
	hasSel     bool
	editing    bool
	scratch    string
	fontFamily string
	font       *fonts.Font
}

func WithStyle(s styles.Style) SVGOption { return func(r *svgRenderer) { r.style = s } }
func WithPlateSize(w, h float64) SVGOption {
	return func(r *svgRenderer) {
		if w > 0 && h > 0 {
			r.plateW, r.plateH = w, h
		}
	}
}
func WithSelected(id int) SVGOption {
	return func(r *svgRenderer) { r.selected, r.hasSel = id, true }
}

// WithEditor draws the enlarged edit view of the selected card on top of
// the board, showing scratch instead of the card's value.
func WithEditor(scratch string) SVGOption {
	return func(r *svgRenderer) { r.editing, r.scratch = true, scratch }
}

// WithFontFamily overrides the label font stack with a CSS rule.
func WithFontFamily(family string) SVGOption { return func(r *svgRenderer) { r.fontFamily = family } }

// WithEmbeddedFont embeds f as an @font-face rule and uses it for labels.
func WithEmbeddedFont(f *fonts.Font) SVGOption { return func(r *svgRenderer) { r.font = f } }

// RenderSVG draws cards on a width x height board. Plates are painted in
// ascending (ZIndex, ID) order and each is rotated about its center.
func RenderSVG(cards []card.Card, width, height float64, opts ...SVGOption) []byte {
	r := newSVGRenderer(opts...)

	var buf bytes.Buffer
	fmt.Fprintf(&buf, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.1f %.1f" width="%.0f" height="%.0f">`+"\n",
		width, height, width, height)

	r.style.RenderDefs(&buf)
	r.renderCSS(&buf)
	r.style.RenderBackdrop(&buf, width, height)

	plates := r.buildPlates(cards)
	for _, p := range plates {
		r.renderPlate(&buf, p)
	}
	if r.editing && r.hasSel {
		r.renderEditor(&buf, plates, width, height)
	}

	buf.WriteString("</svg>\n")
	return buf.Bytes()
}

func newSVGRenderer(opts ...SVGOption) svgRenderer {
	r := svgRenderer{style: styles.Paper{}, plateW: PlateWidth, plateH: PlateHeight}
	for _, opt := range opts {
		opt(&r)
	}
	return r
}

// buildPlates converts cards to plates in paint order.
func (r *svgRenderer) buildPlates(cards []card.Card) []styles.Plate {
	ordered := card.Clone(cards)
	slices.SortStableFunc(ordered, func(a, b card.Card) int {
		return cmp.Or(cmp.Compare(a.ZIndex, b.ZIndex), cmp.Compare(a.ID, b.ID))
	})

	plates := make([]styles.Plate, len(ordered))
	for i, c := range ordered {
		plates[i] = styles.Plate{
			ID:       c.ID,
			Label:    names.Format(c.Value),
			CX:       c.X,
			CY:       c.Y,
			W:        r.plateW,
			H:        r.plateH,
			Rotation: c.Rotation,
			Scale:    c.EffectiveScale(),
			Selected: r.hasSel && c.ID == r.selected,
		}
	}
	return plates
}

func (r *svgRenderer) renderCSS(buf *bytes.Buffer) {
	fmt.Fprintf(buf, "  <style>%s", cardCSS)
	if r.font != nil {
		fmt.Fprintf(buf, "\n    %s", r.font.FaceCSS())
	}
	if r.font != nil || r.fontFamily != "" {
		family := r.fontFamily
		if family == "" {
			family = r.font.Family
		}
		fmt.Fprintf(buf, "\n    .plate-text { font-family: %s; }", fonts.Stack(family))
	}
	buf.WriteString("\n  </style>\n")
}

func (r *svgRenderer) renderPlate(buf *bytes.Buffer, p styles.Plate) {
	class := "card"
	if p.Selected {
		class += " selected"
	}
	fmt.Fprintf(buf, `  <g id="card-%d" class="%s" data-id="%d" transform="%s">`+"\n", p.ID, class, p.ID, transform(p))
	r.style.RenderPlate(buf, p)
	r.style.RenderText(buf, p)
	buf.WriteString("  </g>\n")
}

func (r *svgRenderer) renderEditor(buf *bytes.Buffer, plates []styles.Plate, width, height float64) {
	i := slices.IndexFunc(plates, func(p styles.Plate) bool { return p.ID == r.selected })
	if i < 0 {
		return
	}
	p := plates[i]
	p.Label = names.Format(r.scratch)
	p.CX, p.CY = width/2, height/2
	p.Rotation = 0
	p.Scale = min(editorScale, width*0.9/p.W, height*0.9/p.H)

	fmt.Fprintf(buf, `  <rect class="editor-shade" x="0" y="0" width="%.2f" height="%.2f"/>`+"\n", width, height)
	fmt.Fprintf(buf, `  <g id="editor" class="editor" data-id="%d" transform="%s">`+"\n", p.ID, transform(p))
	r.style.RenderPlate(buf, p)
	r.style.RenderText(buf, p)
	buf.WriteString("  </g>\n")
}

func transform(p styles.Plate) string {
	return fmt.Sprintf("translate(%.2f %.2f) rotate(%.2f) scale(%.3f)", p.CX, p.CY, p.Rotation, p.Scale)
}
