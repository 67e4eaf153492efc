package storage

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"time"

	"github.com/facette/natsort"

	"github.com/san-kum/hydrogensim/internal/config"
	"github.com/san-kum/hydrogensim/internal/quantum"
	"github.com/san-kum/hydrogensim/internal/sim"
)

const (
	metadataFile = "metadata.json"
	statesFile   = "states.csv"
	spectrumFile = "spectrum.csv"
)

type Store struct {
	baseDir string
}

func New(baseDir string) *Store {
	return &Store{baseDir: baseDir}
}

func (s *Store) Init() error {
	return os.MkdirAll(s.baseDir, 0755)
}

type RunMetadata struct {
	ID          string             `json:"id"`
	Model       string             `json:"model"`
	Timestamp   time.Time          `json:"timestamp"`
	Seed        int64              `json:"seed"`
	Dt          float64            `json:"dt"`
	Duration    float64            `json:"duration"`
	Speed       string             `json:"speed"`
	LightOn     bool               `json:"light_on"`
	LightMode   string             `json:"light_mode"`
	Wavelength  int                `json:"wavelength,omitempty"`
	Initial     string             `json:"initial_state,omitempty"`
	Steps       int                `json:"steps"`
	Elapsed     float64            `json:"elapsed"`
	Absorbed    int                `json:"photons_absorbed"`
	Emitted     int                `json:"photons_emitted"`
	Transitions int                `json:"transitions"`
	Metrics     map[string]float64 `json:"metrics"`
}

// Save writes the run under a new directory and returns its ID.
func (s *Store) Save(cfg *config.Config, result *sim.Result) (string, error) {
	now := time.Now()
	runID, runDir, err := s.newRunDir(fmt.Sprintf("%s_%d_%d", result.Model, now.Unix(), result.Seed))
	if err != nil {
		return "", err
	}

	meta := RunMetadata{
		ID:          runID,
		Model:       result.Model,
		Timestamp:   now,
		Seed:        result.Seed,
		Dt:          cfg.Dt,
		Duration:    cfg.Duration,
		Speed:       cfg.Speed,
		LightOn:     cfg.Light.On,
		LightMode:   cfg.LightMode().String(),
		Steps:       result.StepsTaken,
		Elapsed:     result.Elapsed,
		Absorbed:    result.Absorbed,
		Emitted:     result.Emitted,
		Transitions: result.Transitions,
		Metrics:     result.Metrics,
	}
	if meta.LightMode == "monochromatic" {
		meta.Wavelength = cfg.Light.Wavelength
	}
	if q, err := cfg.Initial(); err == nil {
		meta.Initial = q.String()
	}

	if err := writeJSON(filepath.Join(runDir, metadataFile), meta); err != nil {
		return "", err
	}
	if err := writeStates(filepath.Join(runDir, statesFile), result.Samples); err != nil {
		return "", err
	}
	if err := writeSpectrum(filepath.Join(runDir, spectrumFile), result.Spectrum); err != nil {
		return "", err
	}
	return runID, nil
}

func (s *Store) newRunDir(base string) (string, string, error) {
	if err := s.Init(); err != nil {
		return "", "", err
	}
	id := base
	for i := 2; ; i++ {
		dir := filepath.Join(s.baseDir, id)
		err := os.Mkdir(dir, 0755)
		if err == nil {
			return id, dir, nil
		}
		if !errors.Is(err, os.ErrExist) {
			return "", "", err
		}
		id = fmt.Sprintf("%s-%d", base, i)
	}
}

func writeJSON(path string, v any) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func writeCSV(path string, header []string, rows [][]string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(header); err != nil {
		return err
	}
	if err := w.WriteAll(rows); err != nil {
		return err
	}
	return w.Error()
}

func writeStates(path string, samples []sim.Sample) error {
	rows := make([][]string, 0, len(samples))
	for _, smp := range samples {
		rows = append(rows, []string{
			strconv.FormatFloat(smp.Time, 'f', 6, 64),
			strconv.Itoa(smp.State.N),
			strconv.Itoa(smp.State.L),
			strconv.Itoa(smp.State.M),
			strconv.Itoa(smp.Photons),
		})
	}
	return writeCSV(path, []string{"time", "n", "l", "m", "photons"}, rows)
}

func writeSpectrum(path string, spectrum map[int]int) error {
	wavelengths := make([]int, 0, len(spectrum))
	for wl := range spectrum {
		wavelengths = append(wavelengths, wl)
	}
	sort.Ints(wavelengths)

	rows := make([][]string, 0, len(wavelengths))
	for _, wl := range wavelengths {
		rows = append(rows, []string{strconv.Itoa(wl), strconv.Itoa(spectrum[wl])})
	}
	return writeCSV(path, []string{"wavelength_nm", "count"}, rows)
}

// List returns the stored runs in natural ID order.
func (s *Store) List() ([]RunMetadata, error) {
	entries, err := os.ReadDir(s.baseDir)
	if err != nil {
		if os.IsNotExist(err) {
			return []RunMetadata{}, nil
		}
		return nil, err
	}

	runs := make([]RunMetadata, 0)
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}

		meta, err := s.Load(entry.Name())
		if err != nil {
			continue
		}
		runs = append(runs, *meta)
	}

	sort.Slice(runs, func(i, j int) bool {
		return natsort.Compare(runs[i].ID, runs[j].ID)
	})
	return runs, nil
}

func (s *Store) Load(runID string) (*RunMetadata, error) {
	data, err := os.ReadFile(filepath.Join(s.baseDir, runID, metadataFile))
	if err != nil {
		return nil, err
	}

	var meta RunMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, fmt.Errorf("decode metadata of %s: %w", runID, err)
	}
	return &meta, nil
}

func readCSV(path string) ([][]string, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	r := csv.NewReader(file)
	r.FieldsPerRecord = -1
	records, err := r.ReadAll()
	if err != nil {
		return nil, err
	}
	if len(records) < 2 {
		return nil, nil
	}
	return records[1:], nil
}

// LoadStates reads the sampled electron states of a run. Malformed rows
// are skipped.
func (s *Store) LoadStates(runID string) ([]sim.Sample, error) {
	records, err := readCSV(filepath.Join(s.baseDir, runID, statesFile))
	if err != nil {
		return nil, err
	}

	samples := make([]sim.Sample, 0, len(records))
	for _, record := range records {
		if len(record) < 5 {
			continue
		}
		t, err := strconv.ParseFloat(record[0], 64)
		if err != nil {
			continue
		}
		ints := make([]int, 4)
		ok := true
		for j := range ints {
			if ints[j], err = strconv.Atoi(record[j+1]); err != nil {
				ok = false
				break
			}
		}
		if !ok {
			continue
		}
		samples = append(samples, sim.Sample{
			Time:    t,
			State:   quantum.Numbers{N: ints[0], L: ints[1], M: ints[2]},
			Photons: ints[3],
		})
	}
	return samples, nil
}

func (s *Store) LoadSpectrum(runID string) (map[int]int, error) {
	records, err := readCSV(filepath.Join(s.baseDir, runID, spectrumFile))
	if err != nil {
		return nil, err
	}

	spectrum := make(map[int]int, len(records))
	for _, record := range records {
		if len(record) < 2 {
			continue
		}
		wl, err1 := strconv.Atoi(record[0])
		count, err2 := strconv.Atoi(record[1])
		if err1 != nil || err2 != nil {
			continue
		}
		spectrum[wl] = count
	}
	return spectrum, nil
}
