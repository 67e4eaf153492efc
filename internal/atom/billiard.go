package atom

import "github.com/san-kum/hydrogensim/internal/photon"

const BilliardBallRadius = 30.0

// BilliardBall is a rigid sphere. Photons bounce off it once and are never
// absorbed.
type BilliardBall struct {
	base
}

func NewBilliardBall(deps Deps) *BilliardBall {
	deps = deps.withDefaults()
	return &BilliardBall{base: newBase(NameBilliardBall, deps.Rand)}
}

func (m *BilliardBall) Step(dt float64) {}

func (m *BilliardBall) ProcessPhoton(p *photon.Photon) {
	if p.CollidedWithAtom {
		return
	}
	if photon.Collides(p.Position, m.position, BilliardBallRadius) {
		p.BounceBack(m.position, m.rand)
	}
}

func (m *BilliardBall) Reset() {}
