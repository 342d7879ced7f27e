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

	"github.com/san-kum/galaxysim/internal/config"
	"github.com/san-kum/galaxysim/internal/experiment"
)

const (
	metadataFile = "metadata.json"
	framesFile   = "frames.csv"
)

// Store keeps headless runs on disk, one directory per run.
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
	ID            string             `json:"id"`
	Label         string             `json:"label"`
	Timestamp     time.Time          `json:"timestamp"`
	Seed          int64              `json:"seed"`
	Stars         int                `json:"stars"`
	Holes         int                `json:"holes"`
	Workers       int                `json:"workers"`
	Schedule      string             `json:"schedule"`
	BodyUpdate    string             `json:"body_update"`
	G             float64            `json:"g"`
	Dt            float64            `json:"dt"`
	Frames        int                `json:"frames"`
	Steps         int                `json:"steps"`
	ElapsedMillis float64            `json:"elapsed_ms"`
	Metrics       map[string]float64 `json:"metrics"`
}

// Save writes the run metadata and the per-frame timings and returns the run
// id.
func (s *Store) Save(label string, cfg *config.Config, result *experiment.Result) (string, error) {
	now := time.Now()
	runID := fmt.Sprintf("%s_%d", label, now.UnixNano())
	runDir := filepath.Join(s.baseDir, runID)

	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}

	meta := RunMetadata{
		ID:            runID,
		Label:         label,
		Timestamp:     now,
		Seed:          cfg.Seed.Seed,
		Stars:         cfg.Seed.Stars,
		Holes:         cfg.Seed.Holes,
		Workers:       cfg.Simulation.Workers,
		Schedule:      cfg.Simulation.Schedule,
		BodyUpdate:    cfg.Simulation.BodyUpdate,
		G:             cfg.Simulation.G,
		Dt:            cfg.Simulation.Dt,
		Frames:        result.Frames,
		Steps:         result.Steps,
		ElapsedMillis: float64(result.Elapsed) / float64(time.Millisecond),
		Metrics:       result.Metrics,
	}

	metaFile, err := os.Create(filepath.Join(runDir, metadataFile))
	if err != nil {
		return "", err
	}
	defer metaFile.Close()

	enc := json.NewEncoder(metaFile)
	enc.SetIndent("", "  ")
	if err := enc.Encode(meta); err != nil {
		return "", err
	}

	csvFile, err := os.Create(filepath.Join(runDir, framesFile))
	if err != nil {
		return "", err
	}
	defer csvFile.Close()

	w := csv.NewWriter(csvFile)
	if err := w.Write([]string{"frame", "ms_per_frame"}); err != nil {
		return "", err
	}
	for i, ms := range result.FrameMillis {
		if err := w.Write([]string{strconv.Itoa(i), strconv.FormatFloat(ms, 'f', 6, 64)}); err != nil {
			return "", err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return "", err
	}

	return runID, nil
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
		return nil, fmt.Errorf("parse %s: %w", runID, err)
	}
	return &meta, nil
}

func (s *Store) LoadFrameTimes(runID string) ([]float64, error) {
	file, err := os.Open(filepath.Join(s.baseDir, runID, framesFile))
	if err != nil {
		return nil, err
	}
	defer file.Close()

	records, err := csv.NewReader(file).ReadAll()
	if err != nil {
		return nil, err
	}
	if len(records) < 2 {
		return []float64{}, nil
	}

	out := make([]float64, 0, len(records)-1)
	for _, record := range records[1:] {
		if len(record) < 2 {
			continue
		}
		ms, err := strconv.ParseFloat(record[1], 64)
		if err != nil {
			continue
		}
		out = append(out, ms)
	}
	return out, nil
}
