package store

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/okrylov/cardiosim/internal/cell"
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
	ID         string             `json:"id"`
	Model      string             `json:"model"`
	Timestamp  time.Time          `json:"timestamp"`
	Dt         float64            `json:"dt"`
	Steps      int                `json:"steps"`
	Integrator string             `json:"integrator"`
	Protocol   string             `json:"protocol"`
	Metrics    map[string]float64 `json:"metrics"`
}

// componentNames labels state columns. Cardiac models use the
// conventional (u, v, w) naming; anything else falls back to indexed
// columns.
func componentNames(dim int) []string {
	switch dim {
	case 2:
		return []string{"u", "v"}
	case 3:
		return []string{"u", "v", "w"}
	default:
		names := make([]string, dim)
		for i := range names {
			names[i] = fmt.Sprintf("x%d", i)
		}
		return names
	}
}

// writeCSV streams a trajectory as one row per sample: time, the state
// components, and the applied current. The stimulus column holds the
// current applied over the step that starts at the row's time, so the
// final row is padded with zero.
func writeCSV(out io.Writer, traj *cell.Trajectory) error {
	if traj.Len() == 0 {
		return nil
	}

	w := csv.NewWriter(out)

	header := append([]string{"time"}, componentNames(len(traj.States[0]))...)
	hasStims := len(traj.Stims) > 0
	if hasStims {
		header = append(header, "istim")
	}
	if err := w.Write(header); err != nil {
		return err
	}

	for i := range traj.States {
		row := []string{strconv.FormatFloat(traj.Times[i], 'f', 6, 64)}
		for _, val := range traj.States[i] {
			row = append(row, strconv.FormatFloat(val, 'f', 6, 64))
		}
		if hasStims {
			if i < len(traj.Stims) {
				row = append(row, strconv.FormatFloat(traj.Stims[i], 'f', 6, 64))
			} else {
				row = append(row, "0")
			}
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}

	w.Flush()
	return w.Error()
}

func (s *Store) Save(model string, dt float64, steps int, integrator, protocol string, traj *cell.Trajectory) (string, error) {
	runID := fmt.Sprintf("%s_%d", model, time.Now().Unix())
	runDir := filepath.Join(s.baseDir, runID)

	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}

	meta := RunMetadata{
		ID:         runID,
		Model:      model,
		Timestamp:  time.Now(),
		Dt:         dt,
		Steps:      steps,
		Integrator: integrator,
		Protocol:   protocol,
		Metrics:    traj.Metrics,
	}

	metaPath := filepath.Join(runDir, "metadata.json")
	metaFile, err := os.Create(metaPath)
	if err != nil {
		return "", err
	}
	defer metaFile.Close()

	enc := json.NewEncoder(metaFile)
	enc.SetIndent("", "  ")
	if err := enc.Encode(meta); err != nil {
		return "", err
	}

	csvPath := filepath.Join(runDir, "states.csv")
	csvFile, err := os.Create(csvPath)
	if err != nil {
		return "", err
	}
	defer csvFile.Close()

	if err := writeCSV(csvFile, traj); err != nil {
		return "", err
	}

	return runID, nil
}

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

		metaPath := filepath.Join(s.baseDir, entry.Name(), "metadata.json")
		data, err := os.ReadFile(metaPath)
		if err != nil {
			continue
		}

		var meta RunMetadata
		if err := json.Unmarshal(data, &meta); err != nil {
			continue
		}

		runs = append(runs, meta)
	}

	return runs, nil
}

func (s *Store) Load(runID string) (*RunMetadata, error) {
	metaPath := filepath.Join(s.baseDir, runID, "metadata.json")
	data, err := os.ReadFile(metaPath)
	if err != nil {
		return nil, err
	}

	var meta RunMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, err
	}

	return &meta, nil
}

// LoadStates reads a saved trace back as state rows and times. The
// stimulus column, when present, is not part of the state.
func (s *Store) LoadStates(runID string) ([][]float64, []float64, error) {
	csvPath := filepath.Join(s.baseDir, runID, "states.csv")
	file, err := os.Open(csvPath)
	if err != nil {
		return nil, nil, err
	}
	defer file.Close()

	r := csv.NewReader(file)
	r.FieldsPerRecord = -1

	records, err := r.ReadAll()
	if err != nil {
		return nil, nil, err
	}

	if len(records) < 2 {
		return [][]float64{}, []float64{}, nil
	}

	header := records[0]
	stateCols := len(header) - 1
	if header[len(header)-1] == "istim" {
		stateCols--
	}

	times := make([]float64, 0, len(records)-1)
	states := make([][]float64, 0, len(records)-1)

	for i := 1; i < len(records); i++ {
		record := records[i]
		if len(record) < 1+stateCols {
			continue
		}

		t, err := strconv.ParseFloat(record[0], 64)
		if err != nil {
			continue
		}

		state := make([]float64, 0, stateCols)
		for j := 1; j <= stateCols; j++ {
			val, err := strconv.ParseFloat(record[j], 64)
			if err != nil {
				continue
			}
			state = append(state, val)
		}

		times = append(times, t)
		states = append(states, state)
	}

	return states, times, nil
}
