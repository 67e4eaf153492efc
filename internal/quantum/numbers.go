// Package quantum models the (n, l, m) state of the hydrogen electron and the
// dipole selection rules that govern transitions between states.
//
// Between two consecutive states n changes, |Δl| = 1 and |Δm| ≤ 1. A state
// is always validated on construction; the zero value is not a valid state.
package quantum

import (
	"errors"
	"fmt"
	"math/rand"

	"github.com/san-kum/hydrogensim/internal/rng"
)

const (
	GroundN = 1
	MaxN    = 6
)

var (
	// ErrInvalidState indicates an (n, l, m) triple outside its legal domain.
	ErrInvalidState = errors.New("quantum: invalid state")

	Ground     = Numbers{N: 1, L: 0, M: 0}
	Metastable = Numbers{N: 2, L: 0, M: 0}
)

// InvalidStateError carries the rejected triple.
type InvalidStateError struct {
	N, L, M int
}

func (e *InvalidStateError) Error() string {
	return fmt.Sprintf("quantum: invalid state (n=%d, l=%d, m=%d)", e.N, e.L, e.M)
}

func (e *InvalidStateError) Unwrap() error {
	return ErrInvalidState
}

// Numbers is an immutable (n, l, m) triple.
type Numbers struct {
	N int
	L int
	M int
}

// IsValid reports whether n ∈ [1,6], l ∈ [0,n-1] and m ∈ [-l,l].
func IsValid(n, l, m int) bool {
	return n >= GroundN && n <= MaxN &&
		l >= 0 && l <= n-1 &&
		m >= -l && m <= l
}

func New(n, l, m int) (Numbers, error) {
	if !IsValid(n, l, m) {
		return Numbers{}, &InvalidStateError{N: n, L: l, M: m}
	}
	return Numbers{N: n, L: l, M: m}, nil
}

// MustNew panics on an invalid triple. Intended for constants and tests.
func MustNew(n, l, m int) Numbers {
	q, err := New(n, l, m)
	if err != nil {
		panic(err)
	}
	return q
}

func (q Numbers) Valid() bool { return IsValid(q.N, q.L, q.M) }

func (q Numbers) String() string {
	return fmt.Sprintf("(%d,%d,%d)", q.N, q.L, q.M)
}

// Energy returns the energy of level n in eV.
func Energy(n int) float64 {
	return -13.6 / float64(n*n)
}

// CanTransition reports whether some l' with |l'-l| = 1 is legal in nNext.
func CanTransition(from Numbers, nNext int) bool {
	if nNext == from.N || nNext < GroundN || nNext > MaxN {
		return false
	}
	down := from.L-1 >= 0 && from.L-1 <= nNext-1
	up := from.L+1 <= nNext-1
	return down || up
}

// NextState selects the state reached when the principal number becomes
// nNext. l moves by exactly one and m by at most one.
func (q Numbers) NextState(nNext int, r *rand.Rand) (Numbers, error) {
	if !q.Valid() {
		return Numbers{}, &InvalidStateError{N: q.N, L: q.L, M: q.M}
	}
	if !CanTransition(q, nNext) {
		return Numbers{}, fmt.Errorf("%w: no dipole transition %v -> n=%d", ErrInvalidState, q, nNext)
	}
	l := q.chooseL(nNext, r)
	m := q.chooseM(l, r)
	return New(nNext, l, m)
}

func (q Numbers) chooseL(nNext int, r *rand.Rand) int {
	canDown := q.L-1 >= 0 && q.L-1 <= nNext-1
	canUp := q.L+1 <= nNext-1
	switch {
	case canDown && canUp:
		if r.Float64() < 0.5 {
			return q.L - 1
		}
		return q.L + 1
	case canUp:
		return q.L + 1
	default:
		return q.L - 1
	}
}

// chooseM moves m by -1, 0 or +1, keeping it within [-lNext, lNext].
func (q Numbers) chooseM(lNext int, r *rand.Rand) int {
	if lNext == 0 {
		return 0
	}
	if q.M > lNext {
		return lNext
	}
	if q.M < -lNext {
		return -lNext
	}
	candidates := make([]int, 0, 3)
	for d := -1; d <= 1; d++ {
		if m := q.M + d; m >= -lNext && m <= lNext {
			candidates = append(candidates, m)
		}
	}
	return candidates[r.Intn(len(candidates))]
}

// ChooseLowerN picks a lower principal number reachable under the dipole
// rule, weighted by transition strength. It reports false when no lower
// state carries weight, as from (2,0,0).
func (q Numbers) ChooseLowerN(r *rand.Rand) (int, bool) {
	nMin := q.L
	if q.L == 0 {
		nMin = 2
	}
	nMin = max(nMin, GroundN)
	if nMin > q.N-1 {
		return 0, false
	}
	candidates := make([]int, 0, q.N-nMin)
	weights := make([]float64, 0, q.N-nMin)
	for n := nMin; n <= q.N-1; n++ {
		candidates = append(candidates, n)
		weights = append(weights, TransitionStrength(q.N, n))
	}
	return rng.ChooseWeighted(r, candidates, weights)
}

// All returns every valid state ordered by n, then l, then m.
func All() []Numbers {
	states := make([]Numbers, 0, 91)
	for n := GroundN; n <= MaxN; n++ {
		for l := 0; l < n; l++ {
			for m := -l; m <= l; m++ {
				states = append(states, Numbers{N: n, L: l, M: m})
			}
		}
	}
	return states
}
