package storage

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/san-kum/orbitbox/internal/scene"
	"github.com/san-kum/orbitbox/internal/sim"
)

const (
	metadataFile = "metadata.json"
	statesFile   = "states.csv"
	energyFile   = "energy.csv"
	sceneFile    = "scene.txt"
)

var ErrCorruptRun = errors.New("storage: corrupt run data")

type Store struct {
	baseDir string
}

func New(baseDir string) *Store {
	return &Store{baseDir: baseDir}
}

func (s *Store) Init() error {
	return os.MkdirAll(s.baseDir, 0755)
}

func (s *Store) Dir() string { return s.baseDir }

// RunInfo describes the run being saved.
type RunInfo struct {
	Scene    string
	Dt       float64
	G        float64
	Duration float64
	Seed     int64
	Every    int
	// Initial is the simulated set before the first step. It is written as
	// scene.txt so the run can be replayed.
	Initial []scene.Entry
}

type RunMetadata struct {
	ID          string             `json:"id"`
	Scene       string             `json:"scene"`
	Timestamp   time.Time          `json:"timestamp"`
	Seed        int64              `json:"seed"`
	Dt          float64            `json:"dt"`
	G           float64            `json:"g"`
	Duration    float64            `json:"duration"`
	Bodies      int                `json:"bodies"`
	Steps       int                `json:"steps"`
	Samples     int                `json:"samples"`
	SampleEvery int                `json:"sample_every"`
	EnergyDrift float64            `json:"energy_drift"`
	Errors      []string           `json:"errors,omitempty"`
	Metrics     map[string]float64 `json:"metrics"`
	// NonFinite names values that were NaN or Inf when the run ended. They
	// are left out of EnergyDrift and Metrics, which JSON cannot hold.
	NonFinite []string `json:"non_finite,omitempty"`
}

// SampleDt is the time between stored samples.
func (m *RunMetadata) SampleDt() float64 {
	if m.SampleEvery < 1 {
		return m.Dt
	}
	return m.Dt * float64(m.SampleEvery)
}

// RunID derives the id prefix from a premade name or scene file path.
func RunID(sceneName string, now time.Time) string {
	base := strings.TrimSuffix(filepath.Base(sceneName), filepath.Ext(sceneName))
	if base == "" || base == "." {
		base = "scene"
	}
	return fmt.Sprintf("%s_%d", base, now.UnixNano())
}

// Save writes a run directory. A halted run may carry NaN or Inf results;
// those are recorded by name in NonFinite. On failure nothing is left behind.
func (s *Store) Save(info RunInfo, result *sim.Result) (string, error) {
	now := time.Now()
	runID := RunID(info.Scene, now)
	runDir := filepath.Join(s.baseDir, runID)

	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}
	if err := writeRun(runDir, runID, now, info, result); err != nil {
		os.RemoveAll(runDir)
		return "", err
	}
	return runID, nil
}

func writeRun(runDir, runID string, now time.Time, info RunInfo, result *sim.Result) error {
	bodies := 0
	if len(result.Samples) > 0 {
		bodies = len(result.Samples[0].Positions)
	}

	meta := RunMetadata{
		ID:          runID,
		Scene:       info.Scene,
		Timestamp:   now,
		Seed:        info.Seed,
		Dt:          info.Dt,
		G:           info.G,
		Duration:    info.Duration,
		Bodies:      bodies,
		Steps:       result.StepsTaken,
		Samples:     len(result.Samples),
		SampleEvery: info.Every,
		Metrics:     make(map[string]float64, len(result.Metrics)),
	}
	if finite(result.EnergyDrift) {
		meta.EnergyDrift = result.EnergyDrift
	} else {
		meta.NonFinite = append(meta.NonFinite, "energy_drift")
	}
	names := make([]string, 0, len(result.Metrics))
	for name := range result.Metrics {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		v := result.Metrics[name]
		if !finite(v) {
			meta.NonFinite = append(meta.NonFinite, "metrics."+name)
			continue
		}
		meta.Metrics[name] = v
	}
	for _, err := range result.Errors {
		meta.Errors = append(meta.Errors, err.Error())
	}

	if err := writeJSON(filepath.Join(runDir, metadataFile), meta); err != nil {
		return err
	}
	if err := writeStates(filepath.Join(runDir, statesFile), result.Samples); err != nil {
		return err
	}
	if err := writeEnergy(filepath.Join(runDir, energyFile), result.Samples); err != nil {
		return err
	}
	if info.Initial != nil {
		return writeScene(filepath.Join(runDir, sceneFile), info.Initial, info.Dt)
	}
	return nil
}

func finite(v float64) bool { return !math.IsNaN(v) && !math.IsInf(v, 0) }

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

func ftoa(v float64) string {
	return strconv.FormatFloat(v, 'g', 10, 64)
}

func writeStates(path string, samples []sim.Sample) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)

	header := []string{"time"}
	if len(samples) > 0 {
		for i := range samples[0].Positions {
			header = append(header, fmt.Sprintf("b%d_x", i), fmt.Sprintf("b%d_y", i), fmt.Sprintf("b%d_z", i))
		}
	}
	if err := w.Write(header); err != nil {
		return err
	}

	for _, smp := range samples {
		row := make([]string, 0, 1+3*len(smp.Positions))
		row = append(row, ftoa(smp.Time))
		for _, p := range smp.Positions {
			row = append(row, ftoa(p.X()), ftoa(p.Y()), ftoa(p.Z()))
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}

	w.Flush()
	return w.Error()
}

func writeEnergy(path string, samples []sim.Sample) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write([]string{"time", "energy"}); err != nil {
		return err
	}
	for _, smp := range samples {
		if err := w.Write([]string{ftoa(smp.Time), ftoa(smp.Energy)}); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}

func writeScene(path string, entries []scene.Entry, dt float64) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return scene.Write(f, entries, dt)
}

// List returns every readable run, oldest first. Directories without valid
// metadata are skipped.
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
			sim.Logger.Printf("skipping %s: %v", entry.Name(), err)
			continue
		}

		runs = append(runs, *meta)
	}

	sort.Slice(runs, func(i, j int) bool { return runs[i].Timestamp.Before(runs[j].Timestamp) })
	return runs, nil
}

func (s *Store) Load(runID string) (*RunMetadata, error) {
	metaPath := filepath.Join(s.baseDir, runID, metadataFile)
	data, err := os.ReadFile(metaPath)
	if err != nil {
		return nil, err
	}

	var meta RunMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrCorruptRun, metadataFile, err)
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
	return r.ReadAll()
}

// LoadStates returns the sample times and, per sample, the position of each
// simulated body.
func (s *Store) LoadStates(runID string) ([]float64, [][]mgl64.Vec3, error) {
	records, err := readCSV(filepath.Join(s.baseDir, runID, statesFile))
	if err != nil {
		return nil, nil, err
	}

	if len(records) < 2 {
		return []float64{}, [][]mgl64.Vec3{}, nil
	}

	times := make([]float64, 0, len(records)-1)
	states := make([][]mgl64.Vec3, 0, len(records)-1)

	for i := 1; i < len(records); i++ {
		vals, err := parseRow(records[i])
		if err != nil {
			return nil, nil, fmt.Errorf("%w: %s row %d: %v", ErrCorruptRun, statesFile, i, err)
		}
		if (len(vals)-1)%3 != 0 {
			return nil, nil, fmt.Errorf("%w: %s row %d: %d coordinates", ErrCorruptRun, statesFile, i, len(vals)-1)
		}

		times = append(times, vals[0])
		pos := make([]mgl64.Vec3, 0, (len(vals)-1)/3)
		for j := 1; j+2 < len(vals); j += 3 {
			pos = append(pos, mgl64.Vec3{vals[j], vals[j+1], vals[j+2]})
		}
		states = append(states, pos)
	}

	return times, states, nil
}

// LoadEnergy returns the sample times and total energies of a run.
func (s *Store) LoadEnergy(runID string) ([]float64, []float64, error) {
	records, err := readCSV(filepath.Join(s.baseDir, runID, energyFile))
	if err != nil {
		return nil, nil, err
	}

	times := make([]float64, 0, len(records))
	energies := make([]float64, 0, len(records))
	for i := 1; i < len(records); i++ {
		vals, err := parseRow(records[i])
		if err != nil || len(vals) != 2 {
			return nil, nil, fmt.Errorf("%w: %s row %d", ErrCorruptRun, energyFile, i)
		}
		times = append(times, vals[0])
		energies = append(energies, vals[1])
	}
	return times, energies, nil
}

// LoadScene parses the initial scene saved with the run.
func (s *Store) LoadScene(runID string, dt float64) ([]scene.Entry, error) {
	return scene.LoadFile(filepath.Join(s.baseDir, runID, sceneFile), dt)
}

func parseRow(record []string) ([]float64, error) {
	vals := make([]float64, 0, len(record))
	for _, field := range record {
		v, err := strconv.ParseFloat(field, 64)
		if err != nil {
			return nil, err
		}
		vals = append(vals, v)
	}
	if len(vals) == 0 {
		return nil, errors.New("empty row")
	}
	return vals, nil
}
