// Package export renders saved trajectories to image formats.
package export

import (
	"fmt"
	"os"
	"sort"

	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"github.com/okrylov/cardiosim/internal/analysis"
	"github.com/okrylov/cardiosim/internal/cell"
)

const (
	chartWidth  = 1024
	chartHeight = 400
)

var componentColors = []drawing.Color{
	chart.ColorRed,
	chart.ColorGreen,
	{R: 255, G: 165, B: 0, A: 255},
}

var componentNames = []string{"u", "v", "w"}

// WriteTraceChart renders every state component of a trajectory against
// time as a PNG line chart.
func WriteTraceChart(path string, traj *cell.Trajectory, title string) error {
	if traj == nil || traj.Len() < 2 {
		return fmt.Errorf("%w: trajectory needs at least two samples to chart", cell.ErrInvalidInput)
	}

	dim := len(traj.States[0])
	series := make([]chart.Series, 0, dim)
	for i := 0; i < dim; i++ {
		name := fmt.Sprintf("x%d", i)
		if i < len(componentNames) {
			name = componentNames[i]
		}
		color := chart.ColorBlue
		if i < len(componentColors) {
			color = componentColors[i]
		}
		series = append(series, chart.ContinuousSeries{
			Name:    name,
			XValues: traj.Times,
			YValues: traj.Component(i),
			Style:   chart.Style{StrokeColor: color, StrokeWidth: 2.0},
		})
	}

	graph := chart.Chart{
		Title:  title,
		Width:  chartWidth,
		Height: chartHeight,
		XAxis: chart.XAxis{
			Name: "time (ms)",
			ValueFormatter: func(v interface{}) string {
				return fmt.Sprintf("%.0f", v.(float64))
			},
		},
		YAxis: chart.YAxis{
			Name: "state",
		},
		Series: series,
	}
	graph.Elements = []chart.Renderable{chart.Legend(&graph)}

	return renderPNG(path, graph)
}

// WriteRestitutionChart renders an APD restitution curve as a PNG,
// diastolic interval on the x axis.
func WriteRestitutionChart(path string, points []analysis.RestitutionPoint) error {
	if len(points) < 2 {
		return fmt.Errorf("%w: restitution chart needs at least two points", cell.ErrInvalidInput)
	}

	sorted := make([]analysis.RestitutionPoint, len(points))
	copy(sorted, points)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].DI < sorted[j].DI })

	dis := make([]float64, len(sorted))
	apds := make([]float64, len(sorted))
	for i, p := range sorted {
		dis[i] = p.DI
		apds[i] = p.APD
	}

	graph := chart.Chart{
		Title:  "APD restitution",
		Width:  chartWidth,
		Height: chartHeight,
		XAxis: chart.XAxis{
			Name: "diastolic interval (ms)",
		},
		YAxis: chart.YAxis{
			Name: "APD (ms)",
		},
		Series: []chart.Series{
			chart.ContinuousSeries{
				Name:    "APD",
				XValues: dis,
				YValues: apds,
				Style: chart.Style{
					StrokeColor: chart.ColorBlue,
					StrokeWidth: 2.0,
					DotColor:    chart.ColorBlue,
					DotWidth:    4.0,
				},
			},
		},
	}

	return renderPNG(path, graph)
}

func renderPNG(path string, graph chart.Chart) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating chart file: %w", err)
	}
	defer f.Close()

	if err := graph.Render(chart.PNG, f); err != nil {
		return fmt.Errorf("rendering chart: %w", err)
	}
	return nil
}
