// Package card defines the nameplate card record shared by the deck,
// layout, arrangement and rendering packages.
//
// A [Card] is one on-screen nameplate: a display value plus a pose
// (center position, rotation, scale) and a stacking order. Positions are
// container-relative pixels anchored at the card's center.
package card

import "slices"

// Suit is a deck suit. Suits are provenance metadata only.
type Suit string

// Suits in deck order.
const (
	Hearts   Suit = "H"
	Diamonds Suit = "D"
	Clubs    Suit = "C"
	Spades   Suit = "S"
)

// Rank is a deck rank. Ranks are provenance metadata only.
type Rank string

// Card is one nameplate on the board.
type Card struct {
	ID       int     `json:"id"`
	Value    string  `json:"value"`
	X        float64 `json:"x"`
	Y        float64 `json:"y"`
	Rotation float64 `json:"rotation"`
	Scale    float64 `json:"scale,omitempty"`
	ZIndex   int     `json:"z_index"`
	Suit     Suit    `json:"suit,omitempty"`
	Rank     Rank    `json:"rank,omitempty"`
}

// Pose is a card placement: center position and rotation in degrees.
type Pose struct {
	X        float64 `json:"x"`
	Y        float64 `json:"y"`
	Rotation float64 `json:"rotation"`
}

// Code returns the rank+suit code of the card, e.g. "AH" or "TS".
func (c Card) Code() string { return string(c.Rank) + string(c.Suit) }

// Pose returns the card's current placement.
func (c Card) Pose() Pose { return Pose{X: c.X, Y: c.Y, Rotation: c.Rotation} }

// SetPose moves the card to p.
func (c *Card) SetPose(p Pose) {
	c.X, c.Y, c.Rotation = p.X, p.Y, p.Rotation
}

// EffectiveScale returns Scale, treating the zero value as 1.
func (c Card) EffectiveScale() float64 {
	if c.Scale == 0 {
		return 1
	}
	return c.Scale
}

// IndexOf returns the slice index of the card with the given id, or -1.
func IndexOf(cards []Card, id int) int {
	return slices.IndexFunc(cards, func(c Card) bool { return c.ID == id })
}

// MaxZ returns the highest ZIndex in cards, or -1 for an empty set.
func MaxZ(cards []Card) int {
	top := -1
	for i, c := range cards {
		if i == 0 || c.ZIndex > top {
			top = c.ZIndex
		}
	}
	return top
}

// BringToFront sets the ZIndex of cards[i] to one above the current maximum.
func BringToFront(cards []Card, i int) {
	cards[i].ZIndex = MaxZ(cards) + 1
}

// Clone returns a copy of cards that shares no backing array.
func Clone(cards []Card) []Card {
	if cards == nil {
		return nil
	}
	return slices.Clone(cards)
}

// PaintOrder returns a copy of cards sorted for drawing: ascending ZIndex,
// ties broken by set order.
func PaintOrder(cards []Card) []Card {
	out := Clone(cards)
	slices.SortStableFunc(out, func(a, b Card) int { return a.ZIndex - b.ZIndex })
	return out
}
