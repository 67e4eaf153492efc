package viz

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"gonum.org/v1/gonum/spatial/r2"

	"github.com/san-kum/hydrogensim/internal/atom"
	"github.com/san-kum/hydrogensim/internal/light"
	"github.com/san-kum/hydrogensim/internal/orbital"
	"github.com/san-kum/hydrogensim/internal/photon"
	"github.com/san-kum/hydrogensim/internal/quantum"
	"github.com/san-kum/hydrogensim/internal/rng"
	"github.com/san-kum/hydrogensim/internal/sim"
	"github.com/san-kum/hydrogensim/internal/transition"
)

func TestCanvasSetUnset(t *testing.T) {
	c := NewCanvas(2, 1)
	c.Set(3, 2)
	if !c.IsSet(3, 2) {
		t.Error("expected dot to be set")
	}
	if c.Grid[0][1] != brailleBlank|0x20 {
		t.Errorf("unexpected cell %U", c.Grid[0][1])
	}

	c.Unset(3, 2)
	if c.IsSet(3, 2) || c.Grid[0][1] != brailleBlank {
		t.Error("expected dot to be cleared")
	}

	c.Set(-1, 0)
	c.Set(4, 0)
	if strings.TrimRight(c.String(), "\n") != string([]rune{brailleBlank, brailleBlank}) {
		t.Error("out of range dots must be ignored")
	}
}

func TestProjector(t *testing.T) {
	c := NewCanvas(10, 5)
	box := photon.NewBox()
	p := NewProjector(c, box.Min(), box.Max())

	tests := []struct {
		name  string
		point r2.Vec
		x, y  int
	}{
		{"bottom left", box.Min(), 0, 19},
		{"top right", box.Max(), 19, 0},
		{"top left", r2.Vec{X: box.Min().X, Y: box.Max().Y}, 0, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			x, y := p.Point(tt.point)
			if x != tt.x || y != tt.y {
				t.Errorf("expected (%d,%d), got (%d,%d)", tt.x, tt.y, x, y)
			}
		})
	}
}

func TestDrawScene(t *testing.T) {
	box := photon.NewBox()
	model := atom.NewBohr(atom.Deps{Rand: rng.New(1)})
	c := NewCanvas(width, height)
	p := NewProjector(c, box.Min(), box.Max())

	ph := photon.New(656, r2.Vec{X: -150, Y: -150}, photon.LightDirection, false)
	DrawScene(c, box, model, []*photon.Photon{ph})

	x, y := p.Point(ph.Position)
	if !c.IsSet(x, y) {
		t.Error("expected photon to be drawn")
	}
	cx, cy := p.Point(model.Position())
	if !c.IsSet(cx, cy) {
		t.Error("expected nucleus to be drawn")
	}
}

func TestFrame(t *testing.T) {
	m := newLiveModel()
	c := Frame(m.sim)
	if c.Width != width || c.Height != height {
		t.Errorf("expected %dx%d canvas, got %dx%d", width, height, c.Width, c.Height)
	}
	if !c.IsSet(0, 0) {
		t.Error("expected the box outline in the corner")
	}
}

func TestShade(t *testing.T) {
	if Shade(0) != ' ' || Shade(1) != '@' || Shade(-3) != ' ' || Shade(7) != '@' {
		t.Error("unexpected shade bounds")
	}
	if ShadeColor(0).Hex() == ShadeColor(1).Hex() {
		t.Error("expected distinct colors at the ends of the ramp")
	}
}

func TestRenderOrbital(t *testing.T) {
	cache := orbital.NewCache(21, false)
	out := RenderOrbital(cache.Brightness(quantum.Ground), false)

	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	if len(lines) != 42 {
		t.Fatalf("expected 42 rows, got %d", len(lines))
	}
	if len(lines[0]) != 84 {
		t.Errorf("expected 84 columns, got %d", len(lines[0]))
	}
	if !strings.Contains(out, "@") {
		t.Error("expected the 1s peak to be fully shaded")
	}
}

func TestPlots(t *testing.T) {
	if PlotStates(nil, 40) != "" {
		t.Error("expected no plot without samples")
	}
	samples := []sim.Sample{
		{Time: 0, State: quantum.Ground},
		{Time: 1, State: quantum.MustNew(3, 1, 0)},
		{Time: 2, State: quantum.Ground},
	}
	if !strings.Contains(PlotStates(samples, 40), "n over 2.0s") {
		t.Error("expected caption on the state plot")
	}

	spectrum := map[int]int{656: 4, 122: 2}
	bars := SpectrumBars(spectrum, 10, false)
	if strings.Index(bars, "122nm") > strings.Index(bars, "656nm") {
		t.Error("expected ascending wavelengths")
	}
	if !strings.Contains(bars, strings.Repeat("█", 10)+" 4") {
		t.Errorf("expected the peak to span the width, got\n%s", bars)
	}
	if PlotSpectrum(map[int]int{656: 1}, 20) == "" {
		t.Error("expected a plot for a single wavelength")
	}
	if SpectrumBars(nil, 10, false) != "" {
		t.Error("expected no bars for an empty spectrum")
	}
}

func TestSparkline(t *testing.T) {
	if got := Sparkline([]float64{0, 1, 2, 3, 4, 5, 6, 7}, 4); got != "▁▃▅█" {
		t.Errorf("unexpected sparkline %q", got)
	}
	if got := Sparkline(nil, 3); got != "───" {
		t.Errorf("unexpected empty sparkline %q", got)
	}
}

func newLiveModel() Model {
	box := photon.NewBox()
	r := rng.New(5)
	s := sim.New(atom.NewBohr(atom.Deps{Rand: r}), light.NewSource(box, r, transition.NewAbsorptionModel()), photon.NewSystem(box))
	return NewModel(s, 0.01, []float64{3, 1, 0.25}, 1)
}

func press(m Model, key string) Model {
	var msg tea.KeyMsg
	switch key {
	case " ":
		msg = tea.KeyMsg{Type: tea.KeySpace}
	case "right":
		msg = tea.KeyMsg{Type: tea.KeyRight}
	default:
		msg = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(key)}
	}
	next, _ := m.Update(msg)
	return next.(Model)
}

func TestLiveKeys(t *testing.T) {
	m := newLiveModel()

	m = press(m, " ")
	if m.Running() {
		t.Error("expected pause")
	}
	next, _ := m.Update(TickMsg{})
	m = next.(Model)
	if m.sim.Time() != 0 {
		t.Error("paused model must not advance")
	}

	m = press(m, "l")
	if m.sim.Source().On {
		t.Error("expected light off")
	}

	m = press(m, "m")
	m = press(m, "right")
	src := m.sim.Source()
	if src.Mode != light.Monochromatic || src.Wavelength != light.DefaultWavelength+1 {
		t.Errorf("expected monochromatic %dnm, got %v %d", light.DefaultWavelength+1, src.Mode, src.Wavelength)
	}
	for i := 0; i < 100; i++ {
		m = press(m, "]")
	}
	if src.Wavelength != light.MaxWavelength {
		t.Errorf("expected wavelength clamped to %d, got %d", light.MaxWavelength, src.Wavelength)
	}

	if m.SpeedName() != "normal" {
		t.Errorf("expected normal speed, got %s", m.SpeedName())
	}
	m = press(m, "s")
	if m.SpeedName() != "slow" {
		t.Errorf("expected slow speed, got %s", m.SpeedName())
	}
}

func TestLiveTickAndView(t *testing.T) {
	m := newLiveModel().WithStuck(func() bool { return true })
	for i := 0; i < 30; i++ {
		next, _ := m.Update(TickMsg{})
		m = next.(Model)
	}
	if m.sim.Time() <= 0 {
		t.Error("expected the simulation to advance")
	}

	view := m.View()
	for _, want := range []string{"BOHR", "RUNNING", "stuck"} {
		if !strings.Contains(view, want) {
			t.Errorf("expected %q in view", want)
		}
	}
}
