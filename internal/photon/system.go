package photon

// Processor is the atomic model the System delegates to.
type Processor interface {
	ProcessPhoton(p *Photon)
}

// System owns every live photon inside the box. It is not safe for
// concurrent use; the host loop drives it from a single goroutine.
type System struct {
	box       Box
	photons   []*Photon
	processor Processor
	removed   int
}

func NewSystem(box Box) *System {
	return &System{
		box:     box,
		photons: make([]*Photon, 0, 64),
	}
}

func (s *System) Box() Box { return s.box }

// SetModel swaps the model that receives photons each tick.
func (s *System) SetModel(p Processor) { s.processor = p }

// Add inserts a photon. Photons added during Step are first processed on
// the following tick.
func (s *System) Add(p *Photon) {
	s.photons = append(s.photons, p)
}

// Remove drops p from the collection. It reports whether p was present.
func (s *System) Remove(p *Photon) bool {
	for i, live := range s.photons {
		if live == p {
			copy(s.photons[i:], s.photons[i+1:])
			s.photons[len(s.photons)-1] = nil
			s.photons = s.photons[:len(s.photons)-1]
			s.removed++
			return true
		}
	}
	return false
}

func (s *System) Contains(p *Photon) bool {
	for _, live := range s.photons {
		if live == p {
			return true
		}
	}
	return false
}

// Photons returns a copy of the live collection.
func (s *System) Photons() []*Photon {
	out := make([]*Photon, len(s.photons))
	copy(out, s.photons)
	return out
}

func (s *System) Len() int { return len(s.photons) }

// Removed counts photons removed since the last Clear.
func (s *System) Removed() int { return s.removed }

func (s *System) Clear() {
	for i := range s.photons {
		s.photons[i] = nil
	}
	s.photons = s.photons[:0]
	s.removed = 0
}

// Step moves every photon, removes those that left the box and hands the
// rest to the processor. It iterates a snapshot because processing may add
// or remove photons.
func (s *System) Step(dt float64) {
	snapshot := s.Photons()
	for _, p := range snapshot {
		if !s.Contains(p) {
			continue
		}
		p.Move(dt)
		if !s.box.Contains(p.Position) {
			s.Remove(p)
			continue
		}
		if s.processor != nil {
			s.processor.ProcessPhoton(p)
		}
	}
}
