package styles

import (
	"bytes"
	"encoding/xml"
	"fmt"

	"github.com/matzehuels/nameplate/pkg/fonts"
)

const (
	fontHeightRatio = 40.0 / 98.0 // 40px labels on 98px plates
	fontWidthRatio  = 0.85
	fontSizeMin     = 6.0
	thinSpaceWidth  = 1.0 / 3.0
	latinWidth      = 0.6
)

// FontSize returns the label size for p: proportional to the plate height,
// shrunk so that the label fits the plate width.
func FontSize(p Plate) float64 {
	byHeight := p.H * fontHeightRatio
	ems := labelEms(p.Label)
	if ems == 0 {
		return max(fontSizeMin, byHeight)
	}
	byWidth := p.W * fontWidthRatio / ems
	return max(fontSizeMin, min(byHeight, byWidth))
}

// labelEms estimates the label width in ems: full width for CJK and other
// wide runes, less for Latin, a third for the three-per-em space.
func labelEms(s string) float64 {
	var w float64
	for _, r := range s {
		switch {
		case r == '\u2004':
			w += thinSpaceWidth
		case r < 0x2E80:
			w += latinWidth
		default:
			w++
		}
	}
	return w
}

func fontStack(family string) string { return fonts.Stack(family) }

func EscapeXML(s string) string {
	var buf bytes.Buffer
	xml.EscapeText(&buf, []byte(s))
	return buf.String()
}

func writeLabel(buf *bytes.Buffer, p Plate, family, fill, extra string) {
	fmt.Fprintf(buf, `    <text class="plate-text" x="0" y="0" text-anchor="middle" dominant-baseline="central" font-family="%s" font-weight="300" font-size="%.2f" fill="%s" xml:space="preserve"%s>%s</text>`+"\n",
		EscapeXML(fontStack(family)), FontSize(p), fill, extra, EscapeXML(p.Label))
}
