// Package rng supplies the random sources used by the atomic models.
//
// Every stochastic decision in the simulation draws from a *rand.Rand that is
// injected at construction time. Production code seeds one with New; tests
// either seed it or build one over a scripted source so that probability
// gates become deterministic.
package rng

import (
	"math"
	"math/rand"
	"time"

	"github.com/mroth/weightedrand"
)

// weightScale converts fractional weights to the integer weights weightedrand
// works with.
const weightScale = 1000

// New returns a generator seeded with seed, or with the wall clock when seed
// is zero.
func New(seed int64) *rand.Rand {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return rand.New(rand.NewSource(seed))
}

// ChooseWeighted picks one of items with probability proportional to its
// weight. It reports false when no item has a positive weight.
func ChooseWeighted[T any](r *rand.Rand, items []T, weights []float64) (T, bool) {
	var zero T
	if len(items) != len(weights) {
		return zero, false
	}
	choices := make([]weightedrand.Choice, 0, len(items))
	for i, item := range items {
		w := uint(math.Round(weights[i] * weightScale))
		if weights[i] <= 0 || w == 0 {
			continue
		}
		choices = append(choices, weightedrand.NewChoice(item, w))
	}
	if len(choices) == 0 {
		return zero, false
	}
	chooser, err := weightedrand.NewChooser(choices...)
	if err != nil {
		return zero, false
	}
	picked, ok := chooser.PickSource(r).(T)
	return picked, ok
}

// AngleBetween returns the unsigned angular distance between a and b in [0, π].
func AngleBetween(a, b float64) float64 {
	d := math.Mod(math.Abs(a-b), 2*math.Pi)
	if d > math.Pi {
		d = 2*math.Pi - d
	}
	return d
}

// DirectionAwayFrom picks a uniformly random direction that stays at least
// separation radians away from avoid.
func DirectionAwayFrom(r *rand.Rand, avoid, separation float64) float64 {
	span := 2*math.Pi - 2*separation
	return normalizeAngle(avoid + separation + r.Float64()*span)
}

func normalizeAngle(a float64) float64 {
	a = math.Mod(a, 2*math.Pi)
	if a < 0 {
		a += 2 * math.Pi
	}
	return a
}
