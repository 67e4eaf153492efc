package rng

import (
	"math"
	"testing"
)

func TestChooseWeightedSingleCandidate(t *testing.T) {
	r := New(7)
	for i := 0; i < 50; i++ {
		got, ok := ChooseWeighted(r, []int{1, 2, 3}, []float64{0, 4.2, 0})
		if !ok {
			t.Fatal("expected a choice")
		}
		if got != 2 {
			t.Errorf("expected 2, got %d", got)
		}
	}
}

func TestChooseWeightedNoWeight(t *testing.T) {
	r := New(7)
	if _, ok := ChooseWeighted(r, []int{1, 2}, []float64{0, 0}); ok {
		t.Error("expected no choice for zero weights")
	}
	if _, ok := ChooseWeighted(r, []int{}, []float64{}); ok {
		t.Error("expected no choice for empty input")
	}
	if _, ok := ChooseWeighted(r, []int{1}, []float64{1, 2}); ok {
		t.Error("expected no choice for mismatched lengths")
	}
}

func TestChooseWeightedDistribution(t *testing.T) {
	r := New(42)
	counts := map[string]int{}
	trials := 20000
	for i := 0; i < trials; i++ {
		got, _ := ChooseWeighted(r, []string{"a", "b"}, []float64{1, 3})
		counts[got]++
	}
	frac := float64(counts["b"]) / float64(trials)
	if math.Abs(frac-0.75) > 0.02 {
		t.Errorf("expected ~0.75 for b, got %.3f", frac)
	}
}

func TestScripted(t *testing.T) {
	r := Scripted(0.25, 0.75)
	if got := r.Float64(); math.Abs(got-0.25) > 1e-9 {
		t.Errorf("first draw = %v, want 0.25", got)
	}
	if got := r.Float64(); math.Abs(got-0.75) > 1e-9 {
		t.Errorf("second draw = %v, want 0.75", got)
	}
	if got := r.Float64(); math.Abs(got-0.25) > 1e-9 {
		t.Errorf("third draw = %v, want 0.25 (cycled)", got)
	}

	c := Constant(1.5)
	if got := c.Float64(); got >= 1 {
		t.Errorf("constant above 1 must clamp below 1, got %v", got)
	}
}

func TestDirectionAwayFrom(t *testing.T) {
	avoid := math.Pi / 2
	sep := math.Pi / 8
	for _, f := range []float64{0, 0.1, 0.5, 0.9, 0.999} {
		d := DirectionAwayFrom(Constant(f), avoid, sep)
		if AngleBetween(d, avoid) < sep-1e-9 {
			t.Errorf("fraction %.3f: direction %.3f within %.3f of %.3f", f, d, sep, avoid)
		}
		if d < 0 || d >= 2*math.Pi {
			t.Errorf("direction %.3f not normalised", d)
		}
	}
}

func TestAngleBetween(t *testing.T) {
	tests := []struct {
		a, b, want float64
	}{
		{0, math.Pi, math.Pi},
		{0, 2 * math.Pi, 0},
		{0.1, 2*math.Pi - 0.1, 0.2},
		{-math.Pi / 2, math.Pi / 2, math.Pi},
	}
	for _, tt := range tests {
		if got := AngleBetween(tt.a, tt.b); math.Abs(got-tt.want) > 1e-9 {
			t.Errorf("AngleBetween(%v, %v) = %v, want %v", tt.a, tt.b, got, tt.want)
		}
	}
}
