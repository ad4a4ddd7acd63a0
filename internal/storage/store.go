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

	"github.com/pkg/errors"

	"github.com/san-kum/mlscenes/internal/anim"
)

// Store keeps the history of renders, one directory per run.
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
	ID        string    `json:"id"`
	Scene     string    `json:"scene"`
	Class     string    `json:"class"`
	Timestamp time.Time `json:"timestamp"`
	Width     int       `json:"width"`
	Height    int       `json:"height"`
	FPS       int       `json:"fps"`
	Frames    int       `json:"frames"`
	Duration  float64   `json:"duration"`
	Output    string    `json:"output"`
	Format    string    `json:"format"`
	Elapsed   float64   `json:"elapsed_seconds"`
}

// Save writes metadata.json and series.csv for a new run and returns its id.
// ID and Timestamp are filled in when empty.
func (s *Store) Save(meta RunMetadata, series []anim.Series) (string, error) {
	if meta.Timestamp.IsZero() {
		meta.Timestamp = time.Now()
	}
	runID := fmt.Sprintf("%s_%d", meta.Scene, meta.Timestamp.Unix())
	runDir := filepath.Join(s.baseDir, runID)
	for i := 2; exists(runDir); i++ {
		runID = fmt.Sprintf("%s_%d_%d", meta.Scene, meta.Timestamp.Unix(), i)
		runDir = filepath.Join(s.baseDir, runID)
	}
	meta.ID = runID

	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", errors.Wrap(err, "create run dir")
	}

	metaFile, err := os.Create(filepath.Join(runDir, "metadata.json"))
	if err != nil {
		return "", err
	}
	defer metaFile.Close()

	enc := json.NewEncoder(metaFile)
	enc.SetIndent("", "  ")
	if err := enc.Encode(meta); err != nil {
		return "", errors.Wrap(err, "write metadata")
	}

	csvFile, err := os.Create(filepath.Join(runDir, "series.csv"))
	if err != nil {
		return "", err
	}
	defer csvFile.Close()

	w := csv.NewWriter(csvFile)
	if err := w.Write([]string{"series", "x", "y"}); err != nil {
		return "", err
	}
	for _, sr := range series {
		for i := range sr.X {
			if i >= len(sr.Y) {
				break
			}
			row := []string{
				sr.Name,
				strconv.FormatFloat(sr.X[i], 'g', -1, 64),
				strconv.FormatFloat(sr.Y[i], 'g', -1, 64),
			}
			if err := w.Write(row); err != nil {
				return "", err
			}
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return "", errors.Wrap(err, "write series")
	}

	return runID, nil
}

func exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// List returns all runs, newest first. Unreadable run directories are skipped.
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

	sort.SliceStable(runs, func(i, j int) bool {
		return runs[i].Timestamp.After(runs[j].Timestamp)
	})
	return runs, nil
}

func (s *Store) Load(runID string) (*RunMetadata, error) {
	data, err := os.ReadFile(filepath.Join(s.baseDir, runID, "metadata.json"))
	if err != nil {
		return nil, err
	}

	var meta RunMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, errors.Wrapf(err, "parse metadata of %s", runID)
	}

	return &meta, nil
}

// LoadSeries reads a run's series back in the order they were saved.
func (s *Store) LoadSeries(runID string) ([]anim.Series, error) {
	file, err := os.Open(filepath.Join(s.baseDir, runID, "series.csv"))
	if err != nil {
		return nil, err
	}
	defer file.Close()

	r := csv.NewReader(file)
	r.FieldsPerRecord = 3

	records, err := r.ReadAll()
	if err != nil {
		return nil, errors.Wrapf(err, "read series of %s", runID)
	}

	var out []anim.Series
	index := make(map[string]int)
	for i, record := range records {
		if i == 0 {
			continue
		}
		x, errX := strconv.ParseFloat(record[1], 64)
		y, errY := strconv.ParseFloat(record[2], 64)
		if errX != nil || errY != nil {
			continue
		}
		k, ok := index[record[0]]
		if !ok {
			k = len(out)
			index[record[0]] = k
			out = append(out, anim.Series{Name: record[0]})
		}
		out[k].X = append(out[k].X, x)
		out[k].Y = append(out[k].Y, y)
	}
	return out, nil
}
