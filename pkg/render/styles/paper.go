package styles

import (
	"bytes"
	"fmt"
)

// Paper draws cream card-stock plates with a soft drop shadow over a
// blue-to-purple gradient board.
type Paper struct {
	FontFamily string
}

const paperDefs = `  <defs>
    <linearGradient id="board-bg" x1="0" y1="0" x2="1" y2="1">
      <stop offset="0" stop-color="#dbeafe"/>
      <stop offset="1" stop-color="#f3e8ff"/>
    </linearGradient>
    <linearGradient id="plate-fill" x1="0" y1="0" x2="0" y2="1">
      <stop offset="0" stop-color="#fffdf7"/>
      <stop offset="1" stop-color="#f5efe0"/>
    </linearGradient>
    <filter id="plate-shadow" x="-20%" y="-20%" width="140%" height="150%">
      <feDropShadow dx="0" dy="4" stdDeviation="3" flood-color="#000" flood-opacity="0.1"/>
      <feDropShadow dx="0" dy="1" stdDeviation="1.5" flood-color="#000" flood-opacity="0.08"/>
    </filter>
    <filter id="plate-shadow-lifted" x="-25%" y="-25%" width="150%" height="170%">
      <feDropShadow dx="0" dy="10" stdDeviation="7" flood-color="#000" flood-opacity="0.2"/>
      <feDropShadow dx="0" dy="5" stdDeviation="4" flood-color="#000" flood-opacity="0.15"/>
    </filter>
    <filter id="text-glow">
      <feDropShadow dx="1" dy="1" stdDeviation="1" flood-color="#fff" flood-opacity="0.8"/>
      <feDropShadow dx="-1" dy="-1" stdDeviation="1" flood-color="#fff" flood-opacity="0.8"/>
    </filter>
  </defs>
`

func (Paper) RenderDefs(buf *bytes.Buffer) { buf.WriteString(paperDefs) }

func (Paper) RenderBackdrop(buf *bytes.Buffer, width, height float64) {
	fmt.Fprintf(buf, `  <rect class="backdrop" x="0" y="0" width="%.2f" height="%.2f" fill="url(#board-bg)"/>`+"\n", width, height)
}

func (Paper) RenderPlate(buf *bytes.Buffer, p Plate) {
	filter := "plate-shadow"
	if p.Selected {
		filter = "plate-shadow-lifted"
	}
	fmt.Fprintf(buf, `    <rect id="plate-%d" class="plate" x="%.2f" y="%.2f" width="%.2f" height="%.2f" fill="url(#plate-fill)" stroke="#e7dfc9" stroke-width="0.8" filter="url(#%s)"/>`+"\n",
		p.ID, -p.W/2, -p.H/2, p.W, p.H, filter)
}

func (s Paper) RenderText(buf *bytes.Buffer, p Plate) {
	writeLabel(buf, p, s.FontFamily, "black", ` filter="url(#text-glow)"`)
}
