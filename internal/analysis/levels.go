package analysis

import (
	"fmt"
	"maps"
	"slices"
	"strings"

	"github.com/san-kum/hydrogensim/internal/quantum"
	"github.com/san-kum/hydrogensim/internal/sim"
)

// Summary holds the statistics of one state trace.
type Summary struct {
	Duration   float64
	Occupation map[int]float64
	Dwell      map[int]float64
	Jumps      [quantum.MaxN + 1][quantum.MaxN + 1]int
}

// Occupation returns the fraction of time spent at each level. Each sample
// holds until the next one.
func Occupation(samples []sim.Sample) map[int]float64 {
	out := make(map[int]float64)
	if len(samples) < 2 {
		return out
	}
	total := samples[len(samples)-1].Time - samples[0].Time
	if total <= 0 {
		return out
	}
	for i := 0; i < len(samples)-1; i++ {
		out[samples[i].State.N] += (samples[i+1].Time - samples[i].Time) / total
	}
	return out
}

// Dwell returns the mean length of the uninterrupted stays at each level.
// The stay still open at the end of the trace counts as well.
func Dwell(samples []sim.Sample) map[int]float64 {
	out := make(map[int]float64)
	if len(samples) < 2 {
		return out
	}
	stays := make(map[int]int)
	start := 0
	for i := 1; i < len(samples); i++ {
		last := i == len(samples)-1
		if samples[i].State.N == samples[start].State.N && !last {
			continue
		}
		n := samples[start].State.N
		out[n] += samples[i].Time - samples[start].Time
		stays[n]++
		start = i
	}
	for n, total := range out {
		out[n] = total / float64(stays[n])
	}
	return out
}

// Jumps counts level changes between consecutive samples, indexed
// [from][to].
func Jumps(samples []sim.Sample) [quantum.MaxN + 1][quantum.MaxN + 1]int {
	var out [quantum.MaxN + 1][quantum.MaxN + 1]int
	for i := 1; i < len(samples); i++ {
		from, to := samples[i-1].State.N, samples[i].State.N
		if from == to || !validLevel(from) || !validLevel(to) {
			continue
		}
		out[from][to]++
	}
	return out
}

func validLevel(n int) bool {
	return n >= quantum.GroundN && n <= quantum.MaxN
}

func Analyze(samples []sim.Sample) Summary {
	s := Summary{
		Occupation: Occupation(samples),
		Dwell:      Dwell(samples),
		Jumps:      Jumps(samples),
	}
	if len(samples) > 1 {
		s.Duration = samples[len(samples)-1].Time - samples[0].Time
	}
	return s
}

// Absorptions counts upward jumps.
func (s Summary) Absorptions() int {
	count := 0
	for from := range s.Jumps {
		for to := from + 1; to < len(s.Jumps); to++ {
			count += s.Jumps[from][to]
		}
	}
	return count
}

// Emissions counts downward jumps.
func (s Summary) Emissions() int {
	count := 0
	for from := range s.Jumps {
		for to := 0; to < from; to++ {
			count += s.Jumps[from][to]
		}
	}
	return count
}

func (s Summary) Format() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "duration: %.2fs\n", s.Duration)
	fmt.Fprintf(&sb, "jumps: %d up, %d down\n\n", s.Absorptions(), s.Emissions())

	sb.WriteString("level  occupation  mean dwell\n")
	for _, n := range slices.Sorted(maps.Keys(s.Occupation)) {
		fmt.Fprintf(&sb, "n=%d    %6.1f%%     %.2fs\n", n, 100*s.Occupation[n], s.Dwell[n])
	}
	return sb.String()
}
