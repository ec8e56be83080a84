package layout

import (
	"math"

	"github.com/matzehuels/nameplate/pkg/random"
)

const (
	// gridJitter is the half-width, in degrees, of grid rotation jitter.
	gridJitter = 5.0

	// circleRadius is the circle radius as a fraction of the shorter side.
	circleRadius = 0.4

	// spiralStep scales the index into an angle; spiralGrowth scales the
	// square root of that angle into a radius.
	spiralStep   = 0.1
	spiralGrowth = 5.0
)

// GridSize returns the grid used for total cards: ceil(sqrt(total))
// columns and enough rows to hold them, both at least 1.
func GridSize(total int) (cols, rows int) {
	total = max(total, 1)
	cols = max(1, int(math.Ceil(math.Sqrt(float64(total)))))
	rows = max(1, int(math.Ceil(float64(total)/float64(cols))))
	return cols, rows
}

func grid(index, total int, width, height float64, rng random.Source) Position {
	cols, rows := GridSize(total)
	cellW := width / float64(cols)
	cellH := height / float64(rows)

	col := index % cols
	row := index / cols

	var rot float64
	if rng != nil {
		rot = rng.Float64()*2*gridJitter - gridJitter
	}
	return Position{
		X:        float64(col)*cellW + cellW/2,
		Y:        float64(row)*cellH + cellH/2,
		Rotation: rot,
	}
}

func circular(index, total int, width, height float64) Position {
	angle := float64(index) / float64(total) * 2 * math.Pi
	radius := math.Min(width, height) * circleRadius
	return Position{
		X:        width/2 + radius*math.Cos(angle),
		Y:        height/2 + radius*math.Sin(angle),
		Rotation: degrees(angle),
	}
}

func spiral(index int, width, height float64) Position {
	angle := spiralStep * float64(index)
	radius := spiralGrowth * math.Sqrt(angle)
	return Position{
		X:        width/2 + radius*math.Cos(angle),
		Y:        height/2 + radius*math.Sin(angle),
		Rotation: degrees(angle),
	}
}

func degrees(rad float64) float64 { return rad * 180 / math.Pi }
