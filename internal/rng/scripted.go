package rng

import "math/rand"

// maxFraction keeps scripted values below 1; math/rand retries Float64 draws
// that round to exactly 1.
const maxFraction = 0.999999

type scriptedSource struct {
	values []int64
	next   int
}

func (s *scriptedSource) Int63() int64 {
	v := s.values[s.next%len(s.values)]
	s.next++
	return v
}

func (s *scriptedSource) Seed(int64) { s.next = 0 }

// Scripted returns a generator whose successive Float64 draws cycle through
// fractions. Integer draws derive from the same underlying values.
func Scripted(fractions ...float64) *rand.Rand {
	if len(fractions) == 0 {
		fractions = []float64{0}
	}
	values := make([]int64, len(fractions))
	for i, f := range fractions {
		if f < 0 {
			f = 0
		}
		if f > maxFraction {
			f = maxFraction
		}
		values[i] = int64(f * (1 << 63))
	}
	return rand.New(&scriptedSource{values: values})
}

// Constant returns a generator whose Float64 draws always equal f.
func Constant(f float64) *rand.Rand {
	return Scripted(f)
}
