package atom_test

import (
	"errors"
	"math"
	"math/rand"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"gonum.org/v1/gonum/spatial/r2"

	"github.com/san-kum/hydrogensim/internal/atom"
	"github.com/san-kum/hydrogensim/internal/orbital"
	"github.com/san-kum/hydrogensim/internal/photon"
	"github.com/san-kum/hydrogensim/internal/quantum"
	"github.com/san-kum/hydrogensim/internal/rng"
	"github.com/san-kum/hydrogensim/internal/transition"
)

const dt = 0.01

// recorder collects every event a model publishes and keeps a photon system
// in sync with it, the way the simulator does.
type recorder struct {
	system      *photon.System
	emissions   []atom.Emission
	absorbed    []*photon.Photon
	transitions []atom.Transition
}

func attach(m atom.Model) *recorder {
	r := &recorder{system: photon.NewSystem(photon.NewBox())}
	r.system.SetModel(m)
	m.Events().OnEmitted(func(e atom.Emission) {
		r.emissions = append(r.emissions, e)
		r.system.Add(e.Photon())
	})
	m.Events().OnAbsorbed(func(p *photon.Photon) {
		r.absorbed = append(r.absorbed, p)
		r.system.Remove(p)
	})
	m.Events().OnTransition(func(t atom.Transition) {
		r.transitions = append(r.transitions, t)
	})
	return r
}

func stepFor(m atom.Model, seconds float64) {
	for t := 0.0; t < seconds; t += dt {
		m.Step(dt)
	}
}

func deps(r *rand.Rand) atom.Deps {
	return atom.Deps{Rand: r, Absorption: transition.NewAbsorptionModel()}
}

func fire(rec *recorder, wavelength int, at r2.Vec) *photon.Photon {
	p := photon.New(wavelength, at, photon.LightDirection, false)
	rec.system.Add(p)
	return p
}

var _ = Describe("BilliardBall", func() {
	It("bounces a colliding photon exactly once", func() {
		m := atom.NewBilliardBall(deps(rng.Constant(0.5)))
		p := photon.New(500, r2.Vec{X: 5, Y: -20}, photon.LightDirection, false)

		m.ProcessPhoton(p)
		Expect(p.CollidedWithAtom).To(BeTrue())
		Expect(p.Direction).NotTo(BeNumerically("~", photon.LightDirection, 1e-9))

		direction := p.Direction
		m.ProcessPhoton(p)
		Expect(p.Direction).To(Equal(direction))
	})

	It("ignores photons outside its radius", func() {
		m := atom.NewBilliardBall(deps(rng.Constant(0.5)))
		p := photon.New(500, r2.Vec{X: 31, Y: 0}, photon.LightDirection, false)
		m.ProcessPhoton(p)
		Expect(p.CollidedWithAtom).To(BeFalse())
	})
})

var _ = Describe("PlumPudding", func() {
	var (
		m   *atom.PlumPudding
		rec *recorder
	)

	setup := func(f float64) {
		m = atom.NewPlumPudding(deps(rng.Constant(f)))
		rec = attach(m)
	}

	It("absorbs a colliding photon when the coin lands under one half", func() {
		setup(0.3)
		p := fire(rec, 500, r2.Vec{Y: -10})

		m.ProcessPhoton(p)
		Expect(rec.absorbed).To(ConsistOf(p))
		Expect(rec.system.Contains(p)).To(BeFalse())
		Expect(m.PhotonsAbsorbed()).To(Equal(1))
		Expect(m.Moving()).To(BeTrue())

		other := photon.New(500, m.ElectronPosition(), photon.LightDirection, false)
		Expect(m.CanAbsorb(other)).To(BeFalse())
		m.ProcessPhoton(other)
		Expect(rec.absorbed).To(HaveLen(1))
	})

	It("lets the photon through when the coin lands over one half", func() {
		setup(0.7)
		p := fire(rec, 500, r2.Vec{Y: -10})
		m.ProcessPhoton(p)
		Expect(rec.absorbed).To(BeEmpty())
		Expect(m.Moving()).To(BeFalse())
	})

	It("never absorbs photons emitted by an atom", func() {
		setup(0.3)
		p := photon.New(150, r2.Vec{}, 0, true)
		Expect(m.CanAbsorb(p)).To(BeFalse())
	})

	It("re-emits at 150nm after a full oscillation and then comes to rest", func() {
		setup(0.05)
		m.ProcessPhoton(fire(rec, 500, r2.Vec{}))
		Expect(m.PhotonsAbsorbed()).To(Equal(1))

		stepFor(m, 2.5)
		Expect(rec.emissions).To(HaveLen(1))
		Expect(rec.emissions[0].Wavelength).To(Equal(atom.PlumPuddingWavelength))
		Expect(m.PhotonsAbsorbed()).To(Equal(0))

		// Still swinging back to the center with nothing to emit.
		Expect(m.Moving()).To(BeTrue())
		Expect(m.CanAbsorb(photon.New(500, r2.Vec{}, 0, false))).To(BeFalse())

		stepFor(m, 1.5)
		Expect(m.Moving()).To(BeFalse())
		Expect(m.ElectronPosition()).To(Equal(r2.Vec{}))
		Expect(m.CanAbsorb(photon.New(500, r2.Vec{}, 0, false))).To(BeTrue())
	})

	It("emits away from the light source", func() {
		setup(0.05)
		m.ProcessPhoton(fire(rec, 500, r2.Vec{}))
		stepFor(m, 2.5)
		Expect(rec.emissions).To(HaveLen(1))
		Expect(rng.AngleBetween(rec.emissions[0].Direction, photon.LightDirection)).To(BeNumerically(">=", math.Pi/8-1e-9))
	})
})

var _ = Describe("ClassicalSolarSystem", func() {
	It("spirals into the nucleus and stays destroyed", func() {
		m := atom.NewClassicalSolarSystem(deps(rng.New(7)))
		Expect(m.Distance()).To(Equal(atom.ElectronToProtonDistance))

		previous := m.Distance()
		steps := 0
		for !m.Destroyed() {
			m.Step(dt)
			Expect(m.Distance()).To(BeNumerically("<", previous))
			previous = m.Distance()
			steps++
			Expect(steps).To(BeNumerically("<", 10000))
		}
		Expect(m.Distance()).To(Equal(0.0))
		Expect(m.ElectronPosition()).To(Equal(m.Position()))

		for i := 0; i < 100; i++ {
			m.Step(dt)
		}
		Expect(m.Destroyed()).To(BeTrue())
		Expect(m.Distance()).To(Equal(0.0))

		at, ok := m.DestroyedAt()
		Expect(ok).To(BeTrue())
		Expect(at).To(BeNumerically("~", (atom.ElectronToProtonDistance-atom.MinElectronDistance)/atom.ElectronDistanceDelta, 0.02))
	})

	It("is restored by Reset", func() {
		m := atom.NewClassicalSolarSystem(deps(rng.New(7)))
		stepFor(m, 10)
		Expect(m.Destroyed()).To(BeTrue())
		m.Reset()
		Expect(m.Destroyed()).To(BeFalse())
		Expect(m.Distance()).To(Equal(atom.ElectronToProtonDistance))
	})
})

var _ = Describe("Bohr", func() {
	var (
		absorption = transition.NewAbsorptionModel()
		m          *atom.Bohr
		rec        *recorder
	)

	setup := func(f float64) {
		m = atom.NewBohr(atom.Deps{Rand: rng.Constant(f), Absorption: absorption})
		rec = attach(m)
	}

	It("absorbs a matching photon after 0.75s in the ground state", func() {
		setup(0.3)
		stepFor(m, 0.8)

		wl, err := absorption.AbsorptionWavelength(1, 2)
		Expect(err).NotTo(HaveOccurred())
		p := fire(rec, wl, m.ElectronPosition())

		m.ProcessPhoton(p)
		Expect(m.N()).To(Equal(2))
		Expect(rec.absorbed).To(ConsistOf(p))
		Expect(rec.system.Contains(p)).To(BeFalse())
		Expect(rec.transitions).To(ConsistOf(atom.Transition{
			From: quantum.Ground,
			To:   quantum.Numbers{N: 2},
		}))
	})

	It("does not absorb before 0.75s in the state", func() {
		setup(0.3)
		stepFor(m, 0.5)
		wl, _ := absorption.AbsorptionWavelength(1, 2)
		m.ProcessPhoton(fire(rec, wl, m.ElectronPosition()))
		Expect(m.N()).To(Equal(1))
		Expect(rec.absorbed).To(BeEmpty())
	})

	It("ignores wavelengths that match no transition", func() {
		setup(0.3)
		stepFor(m, 0.8)
		m.ProcessPhoton(fire(rec, 500, m.ElectronPosition()))
		Expect(m.N()).To(Equal(1))
	})

	It("ignores photons far from the electron", func() {
		setup(0.3)
		stepFor(m, 0.8)
		wl, _ := absorption.AbsorptionWavelength(1, 2)
		far := r2.Add(m.ElectronPosition(), r2.Vec{X: 40})
		m.ProcessPhoton(fire(rec, wl, far))
		Expect(m.N()).To(Equal(1))
	})

	It("emits a second photon on stimulated emission", func() {
		setup(0.7)
		Expect(m.SetN(3)).To(Succeed())
		stepFor(m, 1.1)
		Expect(m.N()).To(Equal(3))

		wl, _ := absorption.EmissionWavelength(3, 2)
		p := fire(rec, wl, m.ElectronPosition())
		m.ProcessPhoton(p)

		Expect(m.N()).To(Equal(2))
		Expect(rec.emissions).To(HaveLen(1))
		e := rec.emissions[0]
		Expect(e.Kind).To(Equal(atom.Stimulated))
		Expect(e.Wavelength).To(Equal(wl))
		Expect(e.Position).To(Equal(r2.Add(p.Position, r2.Vec{X: atom.StimulatedEmissionOffset})))
		Expect(rec.system.Contains(p)).To(BeTrue())
		Expect(rec.system.Len()).To(Equal(2))
	})

	It("decays spontaneously to a lower level", func() {
		setup(0.3)
		Expect(m.SetN(4)).To(Succeed())
		stepFor(m, 1.2)

		Expect(m.N()).To(BeNumerically("<", 4))
		Expect(rec.emissions).NotTo(BeEmpty())
		first := rec.emissions[0]
		Expect(first.Kind).To(Equal(atom.Spontaneous))
		tr, ok := absorption.Transition(first.Wavelength)
		Expect(ok).To(BeTrue())
		Expect(tr.N2).To(Equal(4))
		Expect(tr.N1).To(Equal(m.N()))
		Expect(rng.AngleBetween(first.Direction, photon.LightDirection)).To(BeNumerically(">=", math.Pi/8-1e-9))
	})

	It("holds the level while the coin keeps failing", func() {
		setup(0.7)
		Expect(m.SetN(5)).To(Succeed())
		stepFor(m, 5)
		Expect(m.N()).To(Equal(5))
		Expect(rec.emissions).To(BeEmpty())
	})

	It("resets to the ground state once and flags the transition", func() {
		setup(0.7)
		Expect(m.SetN(3)).To(Succeed())
		rec.transitions = nil

		m.Reset()
		m.Reset()
		Expect(m.N()).To(Equal(1))
		Expect(rec.transitions).To(ConsistOf(atom.Transition{
			From:      quantum.Numbers{N: 3},
			To:        quantum.Ground,
			Resetting: true,
		}))
	})

	It("orbits more slowly in higher levels", func() {
		Expect(atom.OrbitRate(2)).To(BeNumerically("~", atom.OrbitRate(1)/4, 1e-12))
		Expect(atom.OrbitRadius(6)).To(BeNumerically(">", atom.OrbitRadius(5)))
	})

	It("rejects an invalid level", func() {
		setup(0.5)
		err := m.SetN(7)
		Expect(errors.Is(err, quantum.ErrInvalidState)).To(BeTrue())
	})
})

var _ = Describe("DeBroglie", func() {
	It("absorbs a photon anywhere on the orbit ring", func() {
		absorption := transition.NewAbsorptionModel()
		m := atom.NewDeBroglie(atom.Deps{Rand: rng.Constant(0.3), Absorption: absorption})
		rec := attach(m)
		stepFor(m, 0.8)

		wl, _ := absorption.AbsorptionWavelength(1, 3)
		m.ProcessPhoton(fire(rec, wl, r2.Vec{X: atom.OrbitRadius(1)}))
		Expect(m.N()).To(Equal(3))
	})

	It("keeps the standing wave amplitude within [-1, 1]", func() {
		m := atom.NewDeBroglie(deps(rng.New(3)))
		Expect(m.SetN(4)).To(Succeed())
		for a := 0.0; a < 2*math.Pi; a += 0.1 {
			Expect(math.Abs(m.Amplitude(a))).To(BeNumerically("<=", 1))
		}
		Expect(m.Amplitude(0)).To(BeNumerically("~", 0, 1e-12))
	})
})

var _ = Describe("Schrodinger", func() {
	var absorption = transition.NewAbsorptionModel()

	newModel := func(f float64, initial quantum.Numbers) (*atom.Schrodinger, *recorder) {
		m, err := atom.NewSchrodinger(atom.Deps{Rand: rng.Constant(f), Absorption: absorption}, initial)
		Expect(err).NotTo(HaveOccurred())
		return m, attach(m)
	}

	It("absorbs into a dipole-allowed state", func() {
		m, rec := newModel(0.3, quantum.Ground)
		stepFor(m, 0.8)

		wl, _ := absorption.AbsorptionWavelength(1, 2)
		m.ProcessPhoton(fire(rec, wl, r2.Vec{Y: -atom.OrbitRadius(1)}))

		Expect(m.State().N).To(Equal(2))
		Expect(m.State().L).To(Equal(1))
		Expect(m.State().M).To(BeElementOf(-1, 0, 1))
		Expect(rec.absorbed).To(HaveLen(1))
		Expect(rec.transitions).To(HaveLen(1))
	})

	It("follows the selection rules on spontaneous emission", func() {
		start := quantum.MustNew(3, 1, 0)
		m, rec := newModel(0.3, start)
		stepFor(m, 1.2)

		Expect(rec.transitions).NotTo(BeEmpty())
		for _, t := range rec.transitions {
			Expect(t.To.Valid()).To(BeTrue())
			Expect(t.To.N).NotTo(Equal(t.From.N))
			Expect(t.To.L - t.From.L).To(BeElementOf(-1, 1))
			Expect(t.To.M - t.From.M).To(BeElementOf(-1, 0, 1))
		}
		Expect(rec.emissions).To(HaveLen(len(rec.transitions)))
		Expect(rec.emissions[0].Position).To(Equal(m.Position()))
	})

	It("stays in (2,0,0) without outside help", func() {
		m, rec := newModel(0.3, quantum.Metastable)
		stepFor(m, 10)
		Expect(m.State()).To(Equal(quantum.Metastable))
		Expect(rec.emissions).To(BeEmpty())
	})

	It("cannot be stimulated along a forbidden path", func() {
		m, rec := newModel(0.3, quantum.Metastable)
		stepFor(m, 1.1)
		wl, _ := absorption.EmissionWavelength(2, 1)
		m.ProcessPhoton(fire(rec, wl, r2.Vec{Y: -atom.OrbitRadius(2)}))
		Expect(m.State()).To(Equal(quantum.Metastable))
		Expect(rec.emissions).To(BeEmpty())
	})

	It("leaves (2,0,0) by absorbing", func() {
		m, rec := newModel(0.3, quantum.Metastable)
		stepFor(m, 0.8)
		wl, _ := absorption.AbsorptionWavelength(2, 3)
		m.ProcessPhoton(fire(rec, wl, r2.Vec{Y: -atom.OrbitRadius(2)}))
		Expect(m.State().N).To(Equal(3))
		Expect(m.State().L).To(Equal(1))
	})

	It("resets to its initial state", func() {
		start := quantum.MustNew(4, 2, -1)
		m, rec := newModel(0.7, start)
		Expect(m.SetState(quantum.Ground)).To(Succeed())
		rec.transitions = nil

		m.Reset()
		Expect(m.State()).To(Equal(start))
		Expect(rec.transitions).To(HaveLen(1))
		Expect(rec.transitions[0].Resetting).To(BeTrue())
	})

	It("rejects an invalid initial state", func() {
		_, err := atom.NewSchrodinger(deps(rng.New(1)), quantum.Numbers{N: 2, L: 2})
		Expect(errors.Is(err, quantum.ErrInvalidState)).To(BeTrue())
	})

	It("exposes the orbital image of its state", func() {
		cache := orbital.NewCache(4, false)
		m, err := atom.NewSchrodinger(atom.Deps{Rand: rng.New(1), Orbitals: cache}, quantum.MustNew(2, 1, 1))
		Expect(err).NotTo(HaveOccurred())

		img, ok := m.Orbital()
		Expect(ok).To(BeTrue())
		Expect(img.Size()).To(Equal(8))

		bare := atom.NewExperiment(deps(rng.New(1)))
		_, ok = bare.Orbital()
		Expect(ok).To(BeFalse())
		Expect(bare.Name()).To(Equal(atom.NameExperiment))
	})
})

var _ = Describe("Registry", func() {
	It("builds every model by name", func() {
		r := atom.NewRegistry()
		Expect(r.Names()).To(HaveLen(7))
		for _, name := range r.Names() {
			m, err := r.Get(name, deps(rng.New(1)), atom.Options{})
			Expect(err).NotTo(HaveOccurred())
			Expect(m.Name()).To(Equal(name))
		}
	})

	It("passes the initial state to the Schrödinger model", func() {
		m, err := atom.NewRegistry().Get(atom.NameSchrodinger, deps(rng.New(1)), atom.Options{Initial: quantum.MustNew(3, 2, 2)})
		Expect(err).NotTo(HaveOccurred())
		Expect(m.(atom.Quantized).State()).To(Equal(quantum.MustNew(3, 2, 2)))
	})

	It("fails for unknown models", func() {
		_, err := atom.NewRegistry().Get("thomson", deps(rng.New(1)), atom.Options{})
		Expect(err).To(HaveOccurred())
	})
})

var _ = Describe("Events", func() {
	It("stops delivering after unsubscribe", func() {
		m := atom.NewBohr(deps(rng.Constant(0.7)))
		count := 0
		cancel := m.Events().OnTransition(func(atom.Transition) { count++ })

		Expect(m.SetN(2)).To(Succeed())
		cancel()
		Expect(m.SetN(3)).To(Succeed())
		Expect(count).To(Equal(1))
	})
})
