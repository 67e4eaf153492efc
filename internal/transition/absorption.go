package transition

import (
	"errors"
	"fmt"
	"math"
	"sort"
)

const (
	GroundState = 1
	MaxState    = 6

	// planckEV is hc in eV·nm, rydbergEV the ionisation energy of hydrogen.
	planckEV  = 1240.0
	rydbergEV = 13.6
)

// ErrInvalidTransition is returned for principal quantum numbers outside
// [GroundState, MaxState] or pairs in the wrong order.
var ErrInvalidTransition = errors.New("transition: invalid state pair")

// Transition is an (N1, N2) pair with N1 < N2.
type Transition struct {
	N1 int
	N2 int
}

func (t Transition) String() string {
	return fmt.Sprintf("%d->%d", t.N1, t.N2)
}

// AbsorptionModel is immutable after construction and safe to share.
type AbsorptionModel struct {
	byWavelength map[int]Transition
	wavelengths  [MaxState + 1][MaxState + 1]int
}

func NewAbsorptionModel() *AbsorptionModel {
	am := &AbsorptionModel{byWavelength: make(map[int]Transition)}
	for n1 := GroundState; n1 < MaxState; n1++ {
		for n2 := n1 + 1; n2 <= MaxState; n2++ {
			wl := rydberg(n1, n2)
			am.wavelengths[n1][n2] = wl
			am.byWavelength[wl] = Transition{N1: n1, N2: n2}
		}
	}
	return am
}

func rydberg(n1, n2 int) int {
	a, b := float64(n1), float64(n2)
	return int(math.Round(planckEV / (rydbergEV * (1/(a*a) - 1/(b*b)))))
}

func validState(n int) bool {
	return n >= GroundState && n <= MaxState
}

// AbsorptionWavelength returns the wavelength absorbed going from n1 up to n2.
func (am *AbsorptionModel) AbsorptionWavelength(n1, n2 int) (int, error) {
	if !validState(n1) || !validState(n2) || n1 >= n2 {
		return 0, fmt.Errorf("%w: absorption %d->%d", ErrInvalidTransition, n1, n2)
	}
	return am.wavelengths[n1][n2], nil
}

// EmissionWavelength returns the wavelength emitted going from n1 down to n2.
func (am *AbsorptionModel) EmissionWavelength(n1, n2 int) (int, error) {
	if !validState(n1) || !validState(n2) || n1 <= n2 {
		return 0, fmt.Errorf("%w: emission %d->%d", ErrInvalidTransition, n1, n2)
	}
	return am.wavelengths[n2][n1], nil
}

// HigherStateForWavelength scans n+1..MaxState for the first state whose
// absorption wavelength from n equals wavelength.
func (am *AbsorptionModel) HigherStateForWavelength(n, wavelength int) (int, bool) {
	if !validState(n) {
		return 0, false
	}
	for next := n + 1; next <= MaxState; next++ {
		if am.wavelengths[n][next] == wavelength {
			return next, true
		}
	}
	return 0, false
}

// LowerStateForWavelength scans n-1 down to GroundState.
func (am *AbsorptionModel) LowerStateForWavelength(n, wavelength int) (int, bool) {
	if !validState(n) {
		return 0, false
	}
	for next := n - 1; next >= GroundState; next-- {
		if am.wavelengths[next][n] == wavelength {
			return next, true
		}
	}
	return 0, false
}

// AbsorptionWavelengths lists every wavelength absorbable from n, lowest
// target state first. The list is empty for MaxState.
func (am *AbsorptionModel) AbsorptionWavelengths(n int) ([]int, error) {
	if !validState(n) {
		return nil, fmt.Errorf("%w: state %d", ErrInvalidTransition, n)
	}
	wls := make([]int, 0, MaxState-n)
	for next := n + 1; next <= MaxState; next++ {
		wls = append(wls, am.wavelengths[n][next])
	}
	return wls, nil
}

// Transition looks up the state pair for an exact wavelength.
func (am *AbsorptionModel) Transition(wavelength int) (Transition, bool) {
	t, ok := am.byWavelength[wavelength]
	return t, ok
}

// Wavelengths returns every transition wavelength in ascending order.
func (am *AbsorptionModel) Wavelengths() []int {
	wls := make([]int, 0, len(am.byWavelength))
	for wl := range am.byWavelength {
		wls = append(wls, wl)
	}
	sort.Ints(wls)
	return wls
}

// IsTransitionWavelength reports whether wavelength is a key of the table.
func (am *AbsorptionModel) IsTransitionWavelength(wavelength int) bool {
	_, ok := am.byWavelength[wavelength]
	return ok
}
