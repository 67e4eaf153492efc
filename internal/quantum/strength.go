package quantum

// transitionStrengths[n-1][nNew-1] holds empirical spontaneous emission
// strengths for n -> nNew, in units of 10^7 s^-1.
var transitionStrengths = [MaxN][MaxN - 1]float64{
	{0, 0, 0, 0, 0},
	{12.53, 0, 0, 0, 0},
	{3.34, 0.87, 0, 0, 0},
	{1.36, 0.24, 0.07, 0, 0},
	{0.69, 0.11, 0, 0.04, 0},
	{0.39, 0.06, 0.02, 0, 0},
}

// TransitionStrength returns the weight of the downward transition n -> nNew,
// or 0 when the pair is not a downward transition.
func TransitionStrength(n, nNew int) float64 {
	if n < GroundN || n > MaxN || nNew < GroundN || nNew >= n {
		return 0
	}
	return transitionStrengths[n-1][nNew-1]
}
