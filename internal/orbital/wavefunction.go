package orbital

import (
	"math"

	"github.com/san-kum/hydrogensim/internal/photon"
	"github.com/san-kum/hydrogensim/internal/quantum"
)

// BohrRadius is a₀ in model distance units, chosen so that the n=6 orbital
// fills the zoomed-in box.
const BohrRadius = 6.5

// Extent is the half-width of the region an image covers.
const Extent = photon.BoxSide / 2

// Laguerre evaluates the generalized Laguerre polynomial L_k^alpha(x).
func Laguerre(k, alpha int, x float64) float64 {
	sum := 0.0
	for i := 0; i <= k; i++ {
		term := factorial(k+alpha) / (factorial(k-i) * factorial(alpha+i)) *
			math.Pow(x, float64(i)) / factorial(i)
		if i%2 == 1 {
			term = -term
		}
		sum += term
	}
	return sum
}

// RadialWavefunction evaluates the normalized R_nl(r) for Bohr radius a.
func RadialWavefunction(n, l int, r, a float64) float64 {
	na := float64(n) * a
	rho := 2 * r / na
	norm := math.Sqrt(math.Pow(2/na, 3) * factorial(n-l-1) / (2 * float64(n) * factorial(n+l)))
	return norm * math.Exp(-rho/2) * math.Pow(rho, float64(l)) * Laguerre(n-l-1, 2*l+1, rho)
}

// angular returns |Y_lm(θ)|² given cos θ.
func angular(l, m int, cosTheta float64) float64 {
	am := absInt(m)
	p := AssociatedLegendre(l, am, cosTheta)
	return float64(2*l+1) / (4 * math.Pi) * factorial(l-am) / factorial(l+am) * p * p
}

// ProbabilityDensity returns |ψ_nlm|² at the Cartesian point (x, y, z), with
// z as the polar axis.
func ProbabilityDensity(q quantum.Numbers, x, y, z float64) float64 {
	r := math.Sqrt(x*x + y*y + z*z)
	cosTheta := 1.0
	if r > 0 {
		cosTheta = z / r
	}
	radial := RadialWavefunction(q.N, q.L, r, BohrRadius)
	return radial * radial * angular(q.L, q.M, cosTheta)
}
