package light

import (
	"math"
	"testing"

	"github.com/san-kum/hydrogensim/internal/photon"
	"github.com/san-kum/hydrogensim/internal/rng"
	"github.com/san-kum/hydrogensim/internal/transition"
)

type collector struct {
	photons []*photon.Photon
}

func (c *collector) Add(p *photon.Photon) { c.photons = append(c.photons, p) }

func newSource(seed int64) *Source {
	return NewSource(photon.NewBox(), rng.New(seed), transition.NewAbsorptionModel())
}

func TestStepRate(t *testing.T) {
	s := newSource(1)
	s.Rate = 10
	c := &collector{}

	for i := 0; i < 100; i++ {
		s.Step(0.01, c)
	}
	if len(c.photons) < 9 || len(c.photons) > 10 {
		t.Errorf("expected about 10 photons in 1s, got %d", len(c.photons))
	}
	if s.Emitted() != len(c.photons) {
		t.Errorf("expected emitted count %d, got %d", len(c.photons), s.Emitted())
	}
}

func TestOffEmitsNothing(t *testing.T) {
	s := newSource(1)
	s.On = false
	c := &collector{}
	if n := s.Step(1, c); n != 0 || len(c.photons) != 0 {
		t.Errorf("expected no photons, got %d", n)
	}
}

func TestPhotonsEnterFromBottomHeadingUp(t *testing.T) {
	s := newSource(2)
	box := photon.NewBox()
	c := &collector{}
	s.Step(1, c)

	for _, p := range c.photons {
		if p.Position.Y != box.Min().Y {
			t.Errorf("expected spawn at bottom edge, got y=%f", p.Position.Y)
		}
		if !box.Contains(p.Position) {
			t.Errorf("spawned outside box: %v", p.Position)
		}
		if p.Direction != math.Pi/2 {
			t.Errorf("expected upward direction, got %f", p.Direction)
		}
		if p.EmittedByAtom {
			t.Error("light source photons are not atom-emitted")
		}
	}
}

func TestMonochromatic(t *testing.T) {
	s := newSource(3)
	if err := s.SetWavelength(656); err != nil {
		t.Fatal(err)
	}
	for i := 0; i < 20; i++ {
		if wl := s.NextWavelength(); wl != 656 {
			t.Fatalf("expected 656, got %d", wl)
		}
	}
	if err := s.SetWavelength(40); err == nil {
		t.Error("expected out-of-range error")
	}
}

func TestWhiteLightMix(t *testing.T) {
	s := newSource(4)
	am := transition.NewAbsorptionModel()

	matches := 0
	const draws = 5000
	for i := 0; i < draws; i++ {
		wl := s.NextWavelength()
		if wl < MinWavelength || wl > MaxWavelength {
			t.Fatalf("wavelength %d out of range", wl)
		}
		if am.IsTransitionWavelength(wl) {
			matches++
		}
	}
	share := float64(matches) / draws
	if share < 0.35 || share > 0.48 {
		t.Errorf("expected roughly 40%% transition wavelengths, got %.3f", share)
	}
}

func TestTransitionWavelengthsInRange(t *testing.T) {
	got := newSource(1).TransitionWavelengths()
	want := []int{94, 95, 97, 103, 122, 410, 434, 486, 656}
	if len(got) != len(want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("expected %v, got %v", want, got)
			break
		}
	}
}

func TestColor(t *testing.T) {
	s := newSource(5)
	if s.Color().Hex() != "#ffffff" {
		t.Errorf("white light should be white, got %s", s.Color().Hex())
	}

	s.SetWavelength(656)
	c := s.Color()
	if c.R <= c.G || c.R <= c.B {
		t.Errorf("656nm should be red, got %s", c.Hex())
	}
	if !s.Visible() {
		t.Error("656nm is visible")
	}

	s.SetWavelength(122)
	if s.Visible() {
		t.Error("122nm is ultraviolet")
	}
	if s.Color() != invisibleColor {
		t.Errorf("expected the invisible color, got %s", s.Color().Hex())
	}
}

func TestParseMode(t *testing.T) {
	tests := []struct {
		in      string
		want    Mode
		wantErr bool
	}{
		{"white", White, false},
		{"monochromatic", Monochromatic, false},
		{"mono", Monochromatic, false},
		{"laser", White, true},
	}
	for _, tt := range tests {
		got, err := ParseMode(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseMode(%q) error = %v", tt.in, err)
		}
		if got != tt.want {
			t.Errorf("ParseMode(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}
