// Package arrange drives re-arrangement of a card set: it picks a layout
// strategy, assigns every card an entry pose and a target pose, and repeats
// that on container resize, on a fixed timer and on manual refresh.
//
// [Rearrange] is the pure pass over a card slice. [Controller] owns a live
// board (cards, container size, strategy, random source and gesture state),
// serializes every event, and publishes a [Frame] to its listeners after
// each change. Renderers draw frames; they never mutate cards themselves.
package arrange

import (
	"github.com/matzehuels/nameplate/pkg/card"
	"github.com/matzehuels/nameplate/pkg/layout"
	"github.com/matzehuels/nameplate/pkg/random"
)

// Transition is one card's move during a re-arrangement: from the entry
// pose above the container to its computed target.
type Transition struct {
	ID   int       `json:"id"`
	From card.Pose `json:"from"`
	To   card.Pose `json:"to"`
}

// ChooseStrategy returns one of the built-in strategies uniformly at random.
func ChooseStrategy(rng random.Source) layout.Strategy {
	return layout.Strategies[rng.IntN(len(layout.Strategies))]
}

// EntryPose returns a start pose above a width x height container: random
// x within the width, y one container height above the top, and a random
// rotation in [-180, 180).
func EntryPose(width, height float64, rng random.Source) card.Pose {
	return card.Pose{
		X:        rng.Float64() * width,
		Y:        -height,
		Rotation: rng.Float64()*360 - 180,
	}
}

// Rearrange moves every card to its target pose under strategy s and
// returns the entry-to-target transition of each card, in set order.
//
// IDs and values are preserved, scale is reset to 1, and ZIndex is reset to
// the card's index in the set.
func Rearrange(cards []card.Card, width, height float64, s layout.Strategy, rng random.Source) []Transition {
	ts := make([]Transition, len(cards))
	for i := range cards {
		entry := EntryPose(width, height, rng)
		p := layout.Compute(i, len(cards), width, height, s, rng)
		target := card.Pose{X: p.X, Y: p.Y, Rotation: p.Rotation}

		cards[i].SetPose(target)
		cards[i].Scale = p.Scale
		cards[i].ZIndex = i
		ts[i] = Transition{ID: cards[i].ID, From: entry, To: target}
	}
	return ts
}
