package sink

import (
	"bytes"
	"cmp"
	"context"
	"fmt"
	"regexp"
	"slices"
	"strconv"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/matzehuels/nameplate/pkg/card"
	"github.com/matzehuels/nameplate/pkg/errors"
	"github.com/matzehuels/nameplate/pkg/names"
)

// pointsPerInch converts plate pixels to Graphviz inches.
const pointsPerInch = 72.0

// ToDOT converts a board to Graphviz DOT for the neato engine. Every card
// is a fixed-size box pinned at its position (y flipped to Graphviz's
// upward axis) and rotated by its rotation, listed in paint order. The
// board corners are pinned as invisible points so the drawing keeps the
// board's extent.
func ToDOT(cards []card.Card, width, height float64) string {
	ordered := card.Clone(cards)
	slices.SortStableFunc(ordered, func(a, b card.Card) int {
		return cmp.Or(cmp.Compare(a.ZIndex, b.ZIndex), cmp.Compare(a.ID, b.ID))
	})

	var buf bytes.Buffer
	buf.WriteString("graph board {\n")
	buf.WriteString("  layout=neato;\n")
	fmt.Fprintf(&buf, "  inputscale=%g;\n", pointsPerInch)
	buf.WriteString("  overlap=true;\n")
	buf.WriteString("  splines=false;\n")
	buf.WriteString("  bgcolor=\"#eef2ff\";\n")
	fmt.Fprintf(&buf, "  node [shape=box, fixedsize=true, width=%s, height=%s, style=filled, fillcolor=\"#fffdf7\", color=\"#e7dfc9\", fontname=\"STZhongsong\", fontsize=28];\n",
		num(PlateWidth/pointsPerInch), num(PlateHeight/pointsPerInch))
	buf.WriteString("\n")

	for _, c := range ordered {
		fmt.Fprintf(&buf, "  card%d [label=%s, pos=\"%s,%s!\", orientation=%s];\n",
			c.ID, quote(names.Format(c.Value)), num(c.X), num(-c.Y), num(c.Rotation))
	}

	buf.WriteString("\n")
	buf.WriteString("  corner0 [shape=point, style=invis, pos=\"0,0!\"];\n")
	fmt.Fprintf(&buf, "  corner1 [shape=point, style=invis, pos=\"%s,%s!\"];\n", num(width), num(-height))

	buf.WriteString("}\n")
	return buf.String()
}

func num(v float64) string { return strconv.FormatFloat(v, 'f', -1, 64) }

// quote makes a DOT double-quoted string. Non-ASCII runes are kept as is.
func quote(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `"`, `\"`, "\n", `\n`)
	return `"` + r.Replace(s) + `"`
}

// RenderDOT lays out and renders a DOT graph with the WebAssembly build of
// Graphviz. format is "svg" or "png".
func RenderDOT(ctx context.Context, dot string, format string) ([]byte, error) {
	var gf graphviz.Format
	switch strings.ToLower(format) {
	case "svg":
		gf = graphviz.SVG
	case "png":
		gf = graphviz.PNG
	default:
		return nil, errors.New(errors.ErrCodeInvalidFormat, "graphviz cannot render %q (want svg or png)", format)
	}

	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()
	gv.SetLayout(graphviz.NEATO)

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "parse DOT")
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, gf, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	if gf == graphviz.SVG {
		return normalizeViewBox(buf.Bytes()), nil
	}
	return buf.Bytes(), nil
}

var (
	svgTagRe  = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

// normalizeViewBox replaces Graphviz's pt-sized svg tag with a plain one
// sized from its viewBox.
func normalizeViewBox(svg []byte) []byte {
	match := viewBoxRe.FindSubmatch(svg)
	if match == nil {
		return svg
	}

	w, _ := strconv.ParseFloat(string(match[3]), 64)
	h, _ := strconv.ParseFloat(string(match[4]), 64)
	if w == 0 || h == 0 {
		return svg
	}

	tag := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`,
		w, h, w, h)
	return svgTagRe.ReplaceAll(svg, []byte(tag))
}
