package storage

import (
	"encoding/json"
	"io"
)

type ExportData struct {
	RunMetadata
	Times    []float64   `json:"times"`
	States   [][3]int    `json:"states"`
	Photons  []int       `json:"photons"`
	Spectrum map[int]int `json:"spectrum"`
}

// Export writes a stored run as a single JSON document.
func (s *Store) Export(runID string, w io.Writer) error {
	meta, err := s.Load(runID)
	if err != nil {
		return err
	}
	samples, err := s.LoadStates(runID)
	if err != nil {
		return err
	}
	spectrum, err := s.LoadSpectrum(runID)
	if err != nil {
		return err
	}

	data := ExportData{
		RunMetadata: *meta,
		Times:       make([]float64, len(samples)),
		States:      make([][3]int, len(samples)),
		Photons:     make([]int, len(samples)),
		Spectrum:    spectrum,
	}
	for i, smp := range samples {
		data.Times[i] = smp.Time
		data.States[i] = [3]int{smp.State.N, smp.State.L, smp.State.M}
		data.Photons[i] = smp.Photons
	}

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(data)
}
