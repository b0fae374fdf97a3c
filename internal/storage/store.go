package storage

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"time"

	"github.com/san-kum/gravsim/internal/dynamo"
	"github.com/san-kum/gravsim/internal/sim"
)

const (
	metadataFile = "metadata.json"
	bodiesFile   = "bodies.csv"
)

var bodiesHeader = []string{"step", "time", "body", "x", "y", "vx", "vy", "breakup"}

type Store struct {
	baseDir string
}

func New(baseDir string) *Store {
	return &Store{baseDir: baseDir}
}

func (s *Store) Init() error {
	return os.MkdirAll(s.baseDir, 0755)
}

// RunInfo describes how a run was set up.
type RunInfo struct {
	Scenario    string
	Seed        int64
	Speed       float64
	SampleEvery int
}

type RunMetadata struct {
	ID          string             `json:"id"`
	Scenario    string             `json:"scenario"`
	Timestamp   time.Time          `json:"timestamp"`
	Seed        int64              `json:"seed"`
	Speed       float64            `json:"speed"`
	Steps       int                `json:"steps"`
	SampleEvery int                `json:"sample_every"`
	Bodies      int                `json:"bodies"`
	EnergyDrift float64            `json:"energy_drift"`
	Breakups    int                `json:"breakup_steps"`
	Metrics     map[string]float64 `json:"metrics"`
	Warnings    []string           `json:"warnings,omitempty"`
}

// Save writes the run's metadata and every sampled body state under a new
// run directory and returns the run id. A failed save leaves no run
// directory behind.
func (s *Store) Save(info RunInfo, result *sim.Result) (id string, err error) {
	now := time.Now()
	runID := fmt.Sprintf("%s_%d", info.Scenario, now.UnixNano())
	runDir := filepath.Join(s.baseDir, runID)

	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}
	defer func() {
		if err != nil {
			os.RemoveAll(runDir)
		}
	}()

	meta := RunMetadata{
		ID:          runID,
		Scenario:    info.Scenario,
		Timestamp:   now,
		Seed:        info.Seed,
		Speed:       info.Speed,
		Steps:       result.StepsTaken,
		SampleEvery: info.SampleEvery,
		EnergyDrift: result.EnergyDrift,
		Breakups:    result.Breakups,
		Metrics:     result.Metrics,
	}
	if len(result.Samples) > 0 {
		meta.Bodies = len(result.Samples[0].Bodies)
	}
	for _, w := range result.Warnings {
		meta.Warnings = append(meta.Warnings, w.Error())
	}

	if err := writeMetadata(filepath.Join(runDir, metadataFile), &meta); err != nil {
		return "", err
	}

	f, err := os.Create(filepath.Join(runDir, bodiesFile))
	if err != nil {
		return "", err
	}

	if err := WriteSamplesCSV(f, result.Samples); err != nil {
		f.Close()
		return "", err
	}
	if err := f.Close(); err != nil {
		return "", err
	}

	return runID, nil
}

func writeMetadata(path string, meta *RunMetadata) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	return enc.Encode(meta)
}

// List returns the metadata of every readable run, oldest first.
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

	sort.SliceStable(runs, func(i, j int) bool { return runs[i].Timestamp.Before(runs[j].Timestamp) })
	return runs, nil
}

func (s *Store) Load(runID string) (*RunMetadata, error) {
	data, err := os.ReadFile(filepath.Join(s.baseDir, runID, metadataFile))
	if err != nil {
		return nil, err
	}

	var meta RunMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, fmt.Errorf("run %s: %w", runID, err)
	}

	return &meta, nil
}

// BodiesPath is the location of a run's sample table.
func (s *Store) BodiesPath(runID string) string {
	return filepath.Join(s.baseDir, runID, bodiesFile)
}

// LoadTracks reads a run's sample table back as one track per body.
func (s *Store) LoadTracks(runID string) ([]Track, error) {
	f, err := os.Open(s.BodiesPath(runID))
	if err != nil {
		return nil, err
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = len(bodiesHeader)

	records, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("run %s: %w", runID, err)
	}
	if len(records) < 2 {
		return []Track{}, nil
	}

	var tracks []Track
	for line, record := range records[1:] {
		body, p, err := parseRow(record)
		if err != nil {
			return nil, fmt.Errorf("run %s line %d: %w", runID, line+2, err)
		}
		for len(tracks) <= body {
			tracks = append(tracks, Track{Body: len(tracks)})
		}
		tracks[body].Points = append(tracks[body].Points, p)
	}

	return tracks, nil
}

func parseRow(record []string) (int, TrackPoint, error) {
	var p TrackPoint

	step, err := strconv.Atoi(record[0])
	if err != nil {
		return 0, p, err
	}
	body, err := strconv.Atoi(record[2])
	if err != nil {
		return 0, p, err
	}
	if body < 0 {
		return 0, p, fmt.Errorf("negative body index %d", body)
	}

	vals := make([]float64, 5)
	for i, field := range []string{record[1], record[3], record[4], record[5], record[6]} {
		vals[i], err = strconv.ParseFloat(field, 64)
		if err != nil {
			return 0, p, err
		}
	}
	breakup, err := strconv.ParseBool(record[7])
	if err != nil {
		return 0, p, err
	}

	p = TrackPoint{
		Step:     step,
		Time:     vals[0],
		Position: dynamo.V(vals[1], vals[2]),
		Velocity: dynamo.V(vals[3], vals[4]),
		Breakup:  breakup,
	}
	return body, p, nil
}
