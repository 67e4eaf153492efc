package photon

import "gonum.org/v1/gonum/spatial/r2"

// BoxSide is the side length of the zoomed-in box in model units.
const BoxSide = 475.0

// Box is the square interaction region, immutable after construction.
type Box struct {
	bounds r2.Box
}

// NewBox returns the zoomed-in box centered at the origin.
func NewBox() Box {
	return NewBoxAt(r2.Vec{}, BoxSide)
}

func NewBoxAt(center r2.Vec, side float64) Box {
	h := side / 2
	return Box{bounds: r2.Box{
		Min: r2.Vec{X: center.X - h, Y: center.Y - h},
		Max: r2.Vec{X: center.X + h, Y: center.Y + h},
	}}
}

// Contains reports whether p lies inside the box, edges included.
func (b Box) Contains(p r2.Vec) bool {
	return p.X >= b.bounds.Min.X && p.X <= b.bounds.Max.X &&
		p.Y >= b.bounds.Min.Y && p.Y <= b.bounds.Max.Y
}

func (b Box) Min() r2.Vec { return b.bounds.Min }
func (b Box) Max() r2.Vec { return b.bounds.Max }

func (b Box) Center() r2.Vec {
	return r2.Scale(0.5, r2.Add(b.bounds.Min, b.bounds.Max))
}

func (b Box) Side() float64 { return b.bounds.Max.X - b.bounds.Min.X }
