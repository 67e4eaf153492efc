package viz

import (
	"fmt"
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"

	"github.com/san-kum/hydrogensim/internal/light"
	"github.com/san-kum/hydrogensim/internal/sim"
)

// PlotStates charts the principal quantum number over a run.
func PlotStates(samples []sim.Sample, width int) string {
	if len(samples) < 2 {
		return ""
	}
	data := make([]float64, len(samples))
	for i, s := range samples {
		data[i] = float64(s.State.N)
	}
	caption := fmt.Sprintf("n over %.1fs", samples[len(samples)-1].Time-samples[0].Time)
	return asciigraph.Plot(data,
		asciigraph.Height(6),
		asciigraph.Width(width),
		asciigraph.LowerBound(1),
		asciigraph.UpperBound(6),
		asciigraph.Caption(caption),
	)
}

// SpectrumBars renders one bar per wavelength, tinted with the color of the
// light. Invisible wavelengths are gray.
func SpectrumBars(spectrum map[int]int, width int, color bool) string {
	wavelengths := make([]int, 0, len(spectrum))
	peak := 0
	for wl, c := range spectrum {
		wavelengths = append(wavelengths, wl)
		peak = max(peak, c)
	}
	if peak == 0 {
		return ""
	}
	sort.Ints(wavelengths)

	var b strings.Builder
	for _, wl := range wavelengths {
		c := spectrum[wl]
		bar := strings.Repeat("█", max(1, c*width/peak))
		if color {
			bar = lipgloss.NewStyle().Foreground(lipgloss.Color(light.WavelengthColor(wl).Hex())).Render(bar)
		}
		fmt.Fprintf(&b, "%5dnm %s %d\n", wl, bar, c)
	}
	return b.String()
}

// PlotSpectrum charts counts against wavelength, in ascending order.
func PlotSpectrum(spectrum map[int]int, width int) string {
	if len(spectrum) == 0 {
		return ""
	}
	wavelengths := make([]int, 0, len(spectrum))
	for wl := range spectrum {
		wavelengths = append(wavelengths, wl)
	}
	sort.Ints(wavelengths)

	data := make([]float64, len(wavelengths))
	for i, wl := range wavelengths {
		data[i] = float64(spectrum[wl])
	}
	if len(data) == 1 {
		data = append(data, data[0])
	}
	caption := fmt.Sprintf("photons per wavelength, %dnm to %dnm", wavelengths[0], wavelengths[len(wavelengths)-1])
	return asciigraph.Plot(data,
		asciigraph.Height(10),
		asciigraph.Width(width),
		asciigraph.Caption(caption),
	)
}

var sparkChars = []rune{'▁', '▂', '▃', '▄', '▅', '▆', '▇', '█'}

// Sparkline renders the last width values scaled to their range.
func Sparkline(values []float64, width int) string {
	if len(values) == 0 {
		return strings.Repeat("─", width)
	}
	if len(values) > width {
		values = values[len(values)-width:]
	}

	lo, hi := values[0], values[0]
	for _, v := range values {
		lo = min(lo, v)
		hi = max(hi, v)
	}
	span := hi - lo
	if span == 0 {
		span = 1
	}

	var b strings.Builder
	for _, v := range values {
		idx := int((v - lo) / span * float64(len(sparkChars)-1))
		b.WriteRune(sparkChars[min(max(idx, 0), len(sparkChars)-1)])
	}
	return b.String()
}
