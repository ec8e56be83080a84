// Package layout computes target poses for cards on a board.
//
// Given a card's index, the number of cards, the container size and a
// [Strategy], [Compute] returns where the card's center goes and how it is
// rotated. The three strategies are pure functions of their inputs, except
// that grid adds a small random rotation jitter drawn from the supplied
// [random.Source] on every call, so a grid looks hand-placed rather than
// mechanical.
//
// The engine never fails: unknown strategies fall back to grid, and
// degenerate geometry (a zero-sized container, a zero count) yields finite
// coordinates.
//
//	for i := range cards {
//	    p := layout.Compute(i, len(cards), 1280, 800, layout.Spiral, rng)
//	    cards[i].X, cards[i].Y, cards[i].Rotation = p.X, p.Y, p.Rotation
//	}
package layout

import (
	"strings"

	"github.com/matzehuels/nameplate/pkg/errors"
	"github.com/matzehuels/nameplate/pkg/random"
)

// Strategy names an arrangement algorithm.
type Strategy string

// Built-in strategies.
const (
	Grid     Strategy = "grid"
	Circular Strategy = "circular"
	Spiral   Strategy = "spiral"
)

// Strategies lists every built-in strategy in a stable order.
var Strategies = []Strategy{Grid, Circular, Spiral}

// Valid reports whether s names a built-in strategy.
func (s Strategy) Valid() bool {
	switch s {
	case Grid, Circular, Spiral:
		return true
	}
	return false
}

// Normalize returns s if it is valid, and Grid otherwise.
func (s Strategy) Normalize() Strategy {
	if s.Valid() {
		return s
	}
	return Grid
}

// ParseStrategy parses a strategy name strictly, for user input.
func ParseStrategy(name string) (Strategy, error) {
	s := Strategy(strings.ToLower(strings.TrimSpace(name)))
	if !s.Valid() {
		return "", errors.New(errors.ErrCodeInvalidStrategy, "unknown strategy %q (want grid, circular or spiral)", name)
	}
	return s, nil
}

// Position is a computed target pose. X and Y locate the card's center in
// container pixels; Rotation is in degrees.
type Position struct {
	X        float64 `json:"x"`
	Y        float64 `json:"y"`
	Rotation float64 `json:"rotation"`
	Scale    float64 `json:"scale"`
}

// Compute returns the target pose of the card at index among total cards in
// a width x height container. rng supplies grid jitter; a nil rng disables
// it.
func Compute(index, total int, width, height float64, s Strategy, rng random.Source) Position {
	total = max(total, 1)
	index = max(index, 0)
	var p Position
	switch s.Normalize() {
	case Circular:
		p = circular(index, total, width, height)
	case Spiral:
		p = spiral(index, width, height)
	default:
		p = grid(index, total, width, height, rng)
	}
	p.Scale = 1
	return p
}

// All computes the target pose of every index in [0, total).
func All(total int, width, height float64, s Strategy, rng random.Source) []Position {
	out := make([]Position, max(total, 0))
	for i := range out {
		out[i] = Compute(i, total, width, height, s, rng)
	}
	return out
}
