package orbital

import (
	"fmt"
	"math"
)

// MaxL is the highest l AssociatedLegendre supports. The brute-force
// expansion loses precision beyond it; it matches the highest l reachable
// with n ≤ 6.
const MaxL = 6

// AssociatedLegendre evaluates P_l^m(x) for x in [-1, 1], including the
// Condon-Shortley phase. It expands the Rodrigues formula term by term
// instead of using a recurrence. It returns 0 when |m| > l.
func AssociatedLegendre(l, m int, x float64) float64 {
	if l < 0 || l > MaxL {
		panic(fmt.Sprintf("orbital: associated Legendre polynomial unsupported for l=%d", l))
	}
	am := absInt(m)
	if am > l {
		return 0
	}

	// d^(l+|m|)/dx^(l+|m|) of (x²-1)^l, expanded binomially.
	sum := 0.0
	for k := 0; k <= l; k++ {
		p := 2*k - l - am
		if p < 0 {
			continue
		}
		coef := binomial(l, k) * factorial(2*k) / factorial(p)
		if (l-k)%2 == 1 {
			coef = -coef
		}
		sum += coef * math.Pow(x, float64(p))
	}

	result := sum * math.Pow(math.Max(0, 1-x*x), float64(am)/2) /
		(math.Pow(2, float64(l)) * factorial(l))
	if am%2 == 1 {
		result = -result
	}
	if m < 0 {
		result *= factorial(l-am) / factorial(l+am)
		if am%2 == 1 {
			result = -result
		}
	}
	return result
}

func factorial(n int) float64 {
	f := 1.0
	for i := 2; i <= n; i++ {
		f *= float64(i)
	}
	return f
}

func binomial(n, k int) float64 {
	if k < 0 || k > n {
		return 0
	}
	return factorial(n) / (factorial(k) * factorial(n-k))
}

func absInt(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
