package viz

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/san-kum/hydrogensim/internal/config"
	"github.com/san-kum/hydrogensim/internal/light"
	"github.com/san-kum/hydrogensim/internal/sim"
)

const (
	width           = 60
	height          = 30
	historyCapacity = 120
	frameRate       = 60
)

var (
	canvasStyle  = lipgloss.NewStyle().Padding(1, 2)
	statsStyle   = lipgloss.NewStyle().Border(lipgloss.NormalBorder(), false, false, false, true).BorderForeground(lipgloss.Color("240")).Padding(1, 2).Width(48)
	headerStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("86")).Bold(true).MarginBottom(1)
	labelStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Width(12)
	valueStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	warningStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("214")).Bold(true)
	graphStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("49")).Padding(1, 0)
	helpStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("240")).MarginTop(1)
)

type TickMsg time.Time

// Model is the bubbletea program showing the zoomed-in box.
type Model struct {
	sim     *sim.Simulator
	stuck   func() bool
	canvas  *Canvas
	dt      float64
	scales  []float64
	speed   int
	running bool

	photonHistory []float64
	showHelp      bool
}

// NewModel shows s, advancing it dt times the selected scale per frame.
func NewModel(s *sim.Simulator, dt float64, scales []float64, speed int) Model {
	if len(scales) == 0 {
		scales = []float64{1}
	}
	return Model{
		sim:           s,
		canvas:        NewCanvas(width, height),
		dt:            dt,
		scales:        scales,
		speed:         min(max(speed, 0), len(scales)-1),
		running:       true,
		photonHistory: make([]float64, 0, historyCapacity),
	}
}

// WithStuck installs the check behind the stuck-electron hint.
func (m Model) WithStuck(stuck func() bool) Model {
	m.stuck = stuck
	return m
}

func tick() tea.Cmd {
	return tea.Tick(time.Second/frameRate, func(t time.Time) tea.Msg { return TickMsg(t) })
}

func (m Model) Init() tea.Cmd {
	return tick()
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		src := m.sim.Source()
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case " ":
			m.running = !m.running
		case "r":
			m.sim.Reset()
			m.photonHistory = m.photonHistory[:0]
		case "l":
			src.On = !src.On
		case "w":
			src.Mode = light.White
		case "m":
			src.Mode = light.Monochromatic
		case "left":
			m.shiftWavelength(-1)
		case "right":
			m.shiftWavelength(1)
		case "[":
			m.shiftWavelength(-10)
		case "]":
			m.shiftWavelength(10)
		case "s":
			m.speed = (m.speed + 1) % len(m.scales)
		case "?":
			m.showHelp = !m.showHelp
		}
	case TickMsg:
		if m.running {
			m.step()
		}
		return m, tick()
	}
	return m, nil
}

func (m *Model) shiftWavelength(delta int) {
	src := m.sim.Source()
	wl := min(max(src.Wavelength+delta, light.MinWavelength), light.MaxWavelength)
	// The range is clamped, so this cannot fail.
	_ = src.SetWavelength(wl)
}

func (m *Model) step() {
	m.sim.Tick(m.dt * m.scales[m.speed])
	m.photonHistory = append(m.photonHistory, float64(m.sim.Photons().Len()))
	if len(m.photonHistory) > historyCapacity {
		m.photonHistory = m.photonHistory[1:]
	}
}

func (m Model) Running() bool { return m.running }

func (m Model) SpeedName() string {
	if m.speed < len(config.Speeds) {
		return config.Speeds[m.speed]
	}
	return fmt.Sprintf("x%g", m.scales[m.speed])
}

// Frame draws the current state of s on a canvas the size of the live view.
func Frame(s *sim.Simulator) *Canvas {
	c := NewCanvas(width, height)
	drawFrame(c, s)
	return c
}

func drawFrame(c *Canvas, s *sim.Simulator) {
	photons := s.Photons()
	DrawScene(c, photons.Box(), s.Model(), photons.Photons())
}

func (m Model) View() string {
	model := m.sim.Model()
	drawFrame(m.canvas, m.sim)
	canvasView := canvasStyle.Render(m.canvas.String())

	snap := m.sim.Snapshot()
	status := "RUNNING"
	if !m.running {
		status = "PAUSED"
	}

	var s strings.Builder
	s.WriteString(headerStyle.Render(strings.ToUpper(model.Name())) + "\n")
	s.WriteString(fmt.Sprintf("%s  %s\n\n", status, m.SpeedName()))

	row := func(label, value string) {
		s.WriteString(labelStyle.Render(label) + valueStyle.Render(value) + "\n")
	}
	row("Time", fmt.Sprintf("%.2fs", snap.Time))
	if snap.Quantized {
		row("State", snap.State.String())
	}
	if snap.Destroyed {
		row("Atom", "destroyed")
	}
	row("Light", m.lightLabel())
	row("Photons", fmt.Sprintf("%d", snap.Photons))
	row("Absorbed", fmt.Sprintf("%d", snap.Absorbed))
	row("Emitted", fmt.Sprintf("%d", snap.Emitted))

	s.WriteString(graphStyle.Render(Sparkline(m.photonHistory, 40)) + "\n")
	if bars := SpectrumBars(m.sim.Spectrum().Counts(), 20, true); bars != "" {
		s.WriteString("\nSPECTROMETER\n" + bars)
	}
	if m.stuck != nil && m.stuck() {
		s.WriteString("\n" + warningStyle.Render("Electron stuck in (2,0,0).\nTry white light or another wavelength.") + "\n")
	}
	s.WriteString(helpStyle.Render("SP:Pause R:Reset Q:Quit ?:Help"))

	mainView := lipgloss.JoinHorizontal(lipgloss.Top, canvasView, statsStyle.Render(s.String()))
	if m.showHelp {
		return helpText + "\n" + mainView
	}
	return mainView
}

func (m Model) lightLabel() string {
	src := m.sim.Source()
	if !src.On {
		return "off"
	}
	swatch := lipgloss.NewStyle().Foreground(lipgloss.Color(src.Color().Hex())).Render("●")
	if src.Mode == light.White {
		return swatch + " white"
	}
	label := fmt.Sprintf("%s %dnm", swatch, src.Wavelength)
	if !src.Visible() {
		label += " (invisible)"
	}
	return label
}

const helpText = `
  Space    pause or resume
  R        reset the atom and the light
  L        light on or off
  W / M    white or monochromatic light
  ← / →    wavelength -1nm / +1nm
  [ / ]    wavelength -10nm / +10nm
  S        cycle speed
  Q        quit
`
