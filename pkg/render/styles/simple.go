package styles

import (
	"bytes"
	"fmt"
)

// Simple draws flat white plates with a thin outline on a plain board.
type Simple struct {
	FontFamily string
}

func (Simple) RenderDefs(buf *bytes.Buffer) {}

func (Simple) RenderBackdrop(buf *bytes.Buffer, width, height float64) {
	fmt.Fprintf(buf, `  <rect class="backdrop" x="0" y="0" width="%.2f" height="%.2f" fill="white"/>`+"\n", width, height)
}

func (Simple) RenderPlate(buf *bytes.Buffer, p Plate) {
	stroke, sw := "#333", 1.0
	if p.Selected {
		stroke, sw = "#2563eb", 2.5
	}
	fmt.Fprintf(buf, `    <rect id="plate-%d" class="plate" x="%.2f" y="%.2f" width="%.2f" height="%.2f" fill="white" stroke="%s" stroke-width="%.1f"/>`+"\n",
		p.ID, -p.W/2, -p.H/2, p.W, p.H, stroke, sw)
}

func (s Simple) RenderText(buf *bytes.Buffer, p Plate) {
	writeLabel(buf, p, s.FontFamily, "black", "")
}
