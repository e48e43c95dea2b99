package store

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/okrylov/cardiosim/internal/cell"
)

func sampleTrajectory() *cell.Trajectory {
	return &cell.Trajectory{
		Times: []float64{0.0, 0.01, 0.02},
		States: []cell.State{
			{0.0, 1.0, 1.0},
			{0.1, 0.99, 1.0},
			{0.3, 0.95, 0.99},
		},
		Stims:      []float64{1.0, 0.0},
		Metrics:    map[string]float64{"peak_u": 0.3},
		StepsTaken: 2,
	}
}

func TestStoreSaveLoad(t *testing.T) {
	st := New(t.TempDir())

	if err := st.Init(); err != nil {
		t.Fatalf("init failed: %v", err)
	}

	runID, err := st.Save("fenton_karma", 0.01, 2, "euler", "pulse", sampleTrajectory())
	if err != nil {
		t.Fatalf("save failed: %v", err)
	}
	if runID == "" {
		t.Error("expected non-empty run id")
	}

	meta, err := st.Load(runID)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}

	if meta.Model != "fenton_karma" {
		t.Errorf("expected model 'fenton_karma', got '%s'", meta.Model)
	}
	if meta.Protocol != "pulse" {
		t.Errorf("expected protocol 'pulse', got '%s'", meta.Protocol)
	}
	if meta.Metrics["peak_u"] != 0.3 {
		t.Errorf("expected peak_u 0.3, got %f", meta.Metrics["peak_u"])
	}

	states, times, err := st.LoadStates(runID)
	if err != nil {
		t.Fatalf("load states failed: %v", err)
	}

	if len(states) != 3 || len(times) != 3 {
		t.Fatalf("expected 3 samples, got %d states, %d times", len(states), len(times))
	}
	if len(states[0]) != 3 {
		t.Errorf("expected 3 state components without the stim column, got %d", len(states[0]))
	}
	if states[2][0] != 0.3 {
		t.Errorf("expected final u 0.3, got %f", states[2][0])
	}
	if times[1] != 0.01 {
		t.Errorf("expected second time 0.01, got %f", times[1])
	}
}

func TestStoreList(t *testing.T) {
	st := New(t.TempDir())

	runs, err := st.List()
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(runs) != 0 {
		t.Errorf("expected empty store, got %d runs", len(runs))
	}

	if err := st.Init(); err != nil {
		t.Fatalf("init failed: %v", err)
	}
	if _, err := st.Save("fenton_karma", 0.01, 2, "euler", "pulse", sampleTrajectory()); err != nil {
		t.Fatalf("save failed: %v", err)
	}

	runs, err = st.List()
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(runs) != 1 {
		t.Fatalf("expected 1 run, got %d", len(runs))
	}
	if runs[0].Integrator != "euler" {
		t.Errorf("expected integrator 'euler', got '%s'", runs[0].Integrator)
	}
}

func TestExportCSV(t *testing.T) {
	path := filepath.Join(t.TempDir(), "trace.csv")

	if err := ExportCSV(path, sampleTrajectory()); err != nil {
		t.Fatalf("export failed: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read failed: %v", err)
	}

	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	if len(lines) != 4 {
		t.Fatalf("expected header plus 3 rows, got %d lines", len(lines))
	}
	if lines[0] != "time,u,v,w,istim" {
		t.Errorf("unexpected header: %s", lines[0])
	}
	if !strings.HasPrefix(lines[1], "0.000000,0.000000,1.000000,1.000000,1.000000") {
		t.Errorf("unexpected first row: %s", lines[1])
	}
	if !strings.HasSuffix(lines[3], ",0") {
		t.Errorf("expected final row padded with zero stim, got: %s", lines[3])
	}
}

func TestExportJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "trace.json")

	if err := ExportJSON(path, "fenton_karma", "euler", "pulse", 0.01, sampleTrajectory()); err != nil {
		t.Fatalf("export failed: %v", err)
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read failed: %v", err)
	}

	var data ExportData
	if err := json.Unmarshal(raw, &data); err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}

	if data.Model != "fenton_karma" {
		t.Errorf("expected model 'fenton_karma', got '%s'", data.Model)
	}
	if data.Steps != 2 {
		t.Errorf("expected 2 steps, got %d", data.Steps)
	}
	if len(data.States) != 3 {
		t.Errorf("expected 3 states, got %d", len(data.States))
	}
	if data.States[1][0] != 0.1 {
		t.Errorf("expected second u 0.1, got %f", data.States[1][0])
	}
}

func TestStoreSaveEmptyTrajectory(t *testing.T) {
	st := New(t.TempDir())
	if err := st.Init(); err != nil {
		t.Fatalf("init failed: %v", err)
	}

	runID, err := st.Save("fenton_karma", 0.01, 0, "euler", "none", &cell.Trajectory{})
	if err != nil {
		t.Fatalf("save failed: %v", err)
	}

	states, times, err := st.LoadStates(runID)
	if err != nil {
		t.Fatalf("load states failed: %v", err)
	}
	if len(states) != 0 || len(times) != 0 {
		t.Errorf("expected no samples, got %d states, %d times", len(states), len(times))
	}
}
