// Package deck provides the 52-card identity pool that nameplates draw
// their ids from, a copy-then-Fisher–Yates shuffle, and dealing of names
// onto shuffled cards.
//
// The deck exists only as a source of unique, stable ids: suit and rank are
// carried on each card as provenance metadata and never influence layout.
package deck

import "github.com/matzehuels/nameplate/pkg/card"

// Size is the number of cards in a deck.
const Size = 52

// Suits in generation order.
var Suits = []card.Suit{card.Hearts, card.Diamonds, card.Clubs, card.Spades}

// Ranks in generation order.
var Ranks = []card.Rank{"A", "2", "3", "4", "5", "6", "7", "8", "9", "T", "J", "Q", "K"}

// Generate returns a fresh 52-card deck in suit-major, rank-minor order.
// Each card's ID equals its position, its value is empty, it sits at the
// origin unrotated, and its scale is 1.
func Generate() []card.Card {
	cards := make([]card.Card, 0, Size)
	for _, s := range Suits {
		for _, r := range Ranks {
			cards = append(cards, card.Card{
				ID:    len(cards),
				Suit:  s,
				Rank:  r,
				Scale: 1,
			})
		}
	}
	return cards
}
