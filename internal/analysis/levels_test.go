package analysis

import (
	"math"
	"strings"
	"testing"

	"github.com/san-kum/hydrogensim/internal/quantum"
	"github.com/san-kum/hydrogensim/internal/sim"
)

func trace(levels ...int) []sim.Sample {
	samples := make([]sim.Sample, len(levels))
	for i, n := range levels {
		samples[i] = sim.Sample{Time: float64(i), State: quantum.MustNew(n, 0, 0)}
	}
	return samples
}

func near(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestOccupation(t *testing.T) {
	occ := Occupation(trace(1, 1, 2, 2, 2, 1))
	if !near(occ[1], 0.4) || !near(occ[2], 0.6) {
		t.Errorf("expected 40%%/60%%, got %v", occ)
	}
	if len(Occupation(trace(1))) != 0 {
		t.Error("expected empty occupation for a single sample")
	}
}

func TestDwell(t *testing.T) {
	tests := []struct {
		name   string
		levels []int
		want   map[int]float64
	}{
		{"constant", []int{1, 1, 1}, map[int]float64{1: 2}},
		{"one excursion", []int{1, 1, 3, 3, 3, 1}, map[int]float64{1: 2, 3: 3}},
		{"two stays", []int{2, 1, 2, 2, 1, 1}, map[int]float64{2: 1.5, 1: 1}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Dwell(trace(tt.levels...))
			for n, want := range tt.want {
				if !near(got[n], want) {
					t.Errorf("n=%d: expected %g, got %g", n, want, got[n])
				}
			}
		})
	}
}

func TestJumps(t *testing.T) {
	j := Jumps(trace(1, 3, 2, 1, 1, 3))
	if j[1][3] != 2 || j[3][2] != 1 || j[2][1] != 1 {
		t.Errorf("unexpected jumps %v", j)
	}

	s := Analyze(trace(1, 3, 2, 1, 1, 3))
	if s.Absorptions() != 2 || s.Emissions() != 2 {
		t.Errorf("expected 2 up and 2 down, got %d and %d", s.Absorptions(), s.Emissions())
	}
	if s.Duration != 5 {
		t.Errorf("expected duration 5, got %g", s.Duration)
	}
}

func TestFormat(t *testing.T) {
	out := Analyze(trace(1, 2, 1)).Format()
	for _, want := range []string{"n=1", "n=2", "1 up, 1 down", "50.0%"} {
		if !strings.Contains(out, want) {
			t.Errorf("expected %q in\n%s", want, out)
		}
	}
	if strings.Index(out, "n=1") > strings.Index(out, "n=2") {
		t.Error("expected levels in ascending order")
	}
}
