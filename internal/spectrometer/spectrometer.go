// Package spectrometer tallies the wavelengths of photons emitted by the
// atom.
package spectrometer

import (
	"errors"
	"fmt"
	"io"
	"sort"

	"github.com/wcharczuk/go-chart/v2"

	"github.com/san-kum/hydrogensim/internal/atom"
)

var ErrEmpty = errors.New("spectrometer: no photons recorded")

type Spectrometer struct {
	counts map[int]int
	total  int
}

func New() *Spectrometer {
	return &Spectrometer{counts: make(map[int]int)}
}

// FromCounts rebuilds a spectrometer from a stored histogram.
func FromCounts(counts map[int]int) *Spectrometer {
	s := New()
	for wl, c := range counts {
		if c > 0 {
			s.counts[wl] = c
			s.total += c
		}
	}
	return s
}

func (s *Spectrometer) Record(wavelength int) {
	s.counts[wavelength]++
	s.total++
}

// Attach records every photon the model emits until the returned func is
// called.
func (s *Spectrometer) Attach(events *atom.Events) func() {
	return events.OnEmitted(func(e atom.Emission) {
		s.Record(e.Wavelength)
	})
}

func (s *Spectrometer) Count(wavelength int) int { return s.counts[wavelength] }

// Counts returns a copy of the histogram.
func (s *Spectrometer) Counts() map[int]int {
	out := make(map[int]int, len(s.counts))
	for wl, c := range s.counts {
		out[wl] = c
	}
	return out
}

// Wavelengths lists the recorded wavelengths in ascending order.
func (s *Spectrometer) Wavelengths() []int {
	out := make([]int, 0, len(s.counts))
	for wl := range s.counts {
		out = append(out, wl)
	}
	sort.Ints(out)
	return out
}

func (s *Spectrometer) Total() int { return s.total }

// Merge adds the counts of other into s.
func (s *Spectrometer) Merge(other *Spectrometer) {
	for wl, c := range other.counts {
		s.counts[wl] += c
		s.total += c
	}
}

func (s *Spectrometer) Reset() {
	s.counts = make(map[int]int)
	s.total = 0
}

// WriteChart renders the histogram as a PNG bar chart.
func (s *Spectrometer) WriteChart(w io.Writer, title string) error {
	if s.total == 0 {
		return ErrEmpty
	}

	wavelengths := s.Wavelengths()
	bars := make([]chart.Value, 0, len(wavelengths))
	for _, wl := range wavelengths {
		bars = append(bars, chart.Value{Label: fmt.Sprintf("%dnm", wl), Value: float64(s.counts[wl])})
	}

	graph := chart.BarChart{
		Title: title,
		Background: chart.Style{
			Padding: chart.Box{
				Top: 50,
			},
		},
		Width:    max(640, 80*len(bars)),
		Height:   480,
		BarWidth: 40,
		Bars:     bars,
	}
	if err := graph.Render(chart.PNG, w); err != nil {
		return fmt.Errorf("render spectrum chart: %w", err)
	}
	return nil
}
