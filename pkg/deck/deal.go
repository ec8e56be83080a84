package deck

import (
	"strings"

	"github.com/matzehuels/nameplate/pkg/card"
	"github.com/matzehuels/nameplate/pkg/errors"
	"github.com/matzehuels/nameplate/pkg/random"
)

// Overflow selects what Deal does with more names than the deck has cards.
type Overflow int

const (
	// OverflowCap deals the first Size names and drops the rest.
	OverflowCap Overflow = iota
	// OverflowReject refuses to deal and returns an INVALID_INPUT error.
	OverflowReject
)

// String returns the config spelling of o.
func (o Overflow) String() string {
	switch o {
	case OverflowReject:
		return "reject"
	default:
		return "cap"
	}
}

// ParseOverflow parses "cap" or "reject". The empty string means cap.
func ParseOverflow(s string) (Overflow, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "cap":
		return OverflowCap, nil
	case "reject":
		return OverflowReject, nil
	}
	return OverflowCap, errors.New(errors.ErrCodeInvalidInput, "unknown overflow policy %q (want cap or reject)", s)
}

// Deal shuffles a fresh deck and assigns one name per card, in order.
// Card i gets Value names[i] and ZIndex i; ids are drawn without
// replacement so they are unique within the result.
//
// The returned count is the number of names dropped under OverflowCap.
// An empty name list yields no cards.
func Deal(names []string, rng random.Source, overflow Overflow) ([]card.Card, int, error) {
	dropped := 0
	if len(names) > Size {
		if overflow == OverflowReject {
			return nil, 0, errors.New(errors.ErrCodeInvalidInput, "too many names: %d (max %d)", len(names), Size)
		}
		dropped = len(names) - Size
		names = names[:Size]
	}
	if len(names) == 0 {
		return []card.Card{}, 0, nil
	}

	cards := Shuffle(Generate(), rng)[:len(names)]
	for i := range cards {
		cards[i].Value = names[i]
		cards[i].ZIndex = i
	}
	return cards, dropped, nil
}
