package deck

import (
	"slices"

	"github.com/matzehuels/nameplate/pkg/random"
)

// Shuffle returns a uniformly random permutation of items. The input is
// copied first and never mutated.
func Shuffle[T any](items []T, rng random.Source) []T {
	out := slices.Clone(items)
	for i := len(out) - 1; i > 0; i-- {
		j := rng.IntN(i + 1)
		out[i], out[j] = out[j], out[i]
	}
	return out
}
