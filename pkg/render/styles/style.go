// Package styles defines how a nameplate is drawn in SVG.
//
// A [Style] writes shared definitions once, an optional backdrop for the
// whole board, then each plate and its label. Plates are drawn in local
// coordinates centered on the origin; the sink wraps every plate in a
// group that translates, rotates and scales it into place.
package styles

import (
	"bytes"
	"strings"

	"github.com/matzehuels/nameplate/pkg/errors"
)

// Style defines the visual appearance of a board.
type Style interface {
	// RenderDefs writes SVG <defs> content (filters, gradients).
	RenderDefs(buf *bytes.Buffer)
	// RenderBackdrop writes the board background covering width x height.
	RenderBackdrop(buf *bytes.Buffer, width, height float64)
	// RenderPlate writes the plate shape, centered on the origin.
	RenderPlate(buf *bytes.Buffer, p Plate)
	// RenderText writes the plate label, centered on the origin.
	RenderText(buf *bytes.Buffer, p Plate)
}

// Plate contains all data needed to render a single card.
type Plate struct {
	ID       int     // Card id
	Label    string  // Display text, already formatted
	CX, CY   float64 // Center in board coordinates
	W, H     float64 // Unscaled plate size
	Rotation float64 // Degrees, clockwise
	Scale    float64 // 1 for normal size
	Selected bool    // Card is being dragged or edited
}

// Names lists the built-in style names.
var Names = []string{"paper", "simple"}

// ByName returns the built-in style called name, using fontFamily for
// labels (the default stack when empty).
func ByName(name, fontFamily string) (Style, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "paper":
		return Paper{FontFamily: fontFamily}, nil
	case "simple":
		return Simple{FontFamily: fontFamily}, nil
	}
	return nil, errors.New(errors.ErrCodeInvalidStyle, "unknown style %q (want paper or simple)", name)
}
