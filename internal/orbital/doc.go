// Package orbital computes hydrogen probability densities and the brightness
// images of Schrödinger orbitals.
//
// The density of state (n, l, m) at a point is |R_nl(r)|² |Y_lm(θ)|². It does
// not depend on the azimuth, so a single octant of space determines the whole
// orbital. The brightness of one quadrant of the (x, z) plane is the density
// summed along the y axis through the octant, normalized to [0, 1]; the full
// image is the quadrant mirrored about both axes.
//
// Computing a quadrant costs N³ density evaluations for an N×N grid, so Cache
// memoizes each image forever. States differing only in the sign of m share an
// image.
//
// # Example
//
//	cache := orbital.NewCache(40, false)
//	img := cache.Brightness(quantum.MustNew(3, 2, 1))
//	fmt.Println(img.At(40, 40))
package orbital
