// Package transition holds the photon absorption model of the hydrogen atom.
//
// Wavelengths for every transition between principal quantum numbers in
// [GroundState, MaxState] are computed once with the Rydberg formula and
// rounded to whole nanometres:
//
//	wavelength = round(1240 / (13.6 * (1/n1² - 1/n2²)))
//
// Every absorption or emission wavelength used by the atomic models is an
// exact key into this table, so lookups by wavelength are exact integer
// comparisons.
//
// # Example
//
//	am := transition.NewAbsorptionModel()
//	wl, _ := am.AbsorptionWavelength(1, 2) // 122
//	n, ok := am.HigherStateForWavelength(1, wl)
package transition
