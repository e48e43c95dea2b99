package store

import (
	"encoding/json"
	"io"
	"os"

	"github.com/okrylov/cardiosim/internal/cell"
)

type ExportData struct {
	Model      string             `json:"model"`
	Integrator string             `json:"integrator"`
	Protocol   string             `json:"protocol"`
	Dt         float64            `json:"dt"`
	Steps      int                `json:"steps"`
	Times      []float64          `json:"times"`
	States     [][]float64        `json:"states"`
	Stims      []float64          `json:"stims"`
	Metrics    map[string]float64 `json:"metrics"`
}

func buildExportData(model, integrator, protocol string, dt float64, traj *cell.Trajectory) ExportData {
	data := ExportData{
		Model:      model,
		Integrator: integrator,
		Protocol:   protocol,
		Dt:         dt,
		Steps:      traj.StepsTaken,
		Times:      traj.Times,
		States:     make([][]float64, len(traj.States)),
		Stims:      traj.Stims,
		Metrics:    traj.Metrics,
	}
	for i, s := range traj.States {
		data.States[i] = s
	}
	return data
}

func encodeExport(w io.Writer, data ExportData) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(data)
}

func ExportJSON(path string, model, integrator, protocol string, dt float64, traj *cell.Trajectory) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()

	return encodeExport(file, buildExportData(model, integrator, protocol, dt, traj))
}

func ExportJSONStdout(model, integrator, protocol string, dt float64, traj *cell.Trajectory) error {
	return encodeExport(os.Stdout, buildExportData(model, integrator, protocol, dt, traj))
}

// ExportCSV writes the trace to a standalone CSV file with the same
// layout the run store uses.
func ExportCSV(path string, traj *cell.Trajectory) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()

	return writeCSV(file, traj)
}
