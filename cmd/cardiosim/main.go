package main

import (
	"context"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"strings"
	"text/tabwriter"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/okrylov/cardiosim/internal/analysis"
	"github.com/okrylov/cardiosim/internal/cell"
	"github.com/okrylov/cardiosim/internal/config"
	"github.com/okrylov/cardiosim/internal/experiment"
	"github.com/okrylov/cardiosim/internal/export"
	"github.com/okrylov/cardiosim/internal/stim"
	"github.com/okrylov/cardiosim/internal/store"
	"github.com/okrylov/cardiosim/internal/viz"
)

var (
	dataDir      string
	dt           float64
	steps        int
	integrator   string
	protocol     string
	amplitude    float64
	stimStart    float64
	stimDuration float64
	period       float64
	beats        int
	s2Interval   float64
	threshold    float64
	validate     bool
	// Initial state overrides
	u0 float64
	v0 float64
	w0 float64
	// Phase plot axes
	xAxis int
	yAxis int
	// Config file
	configFile string
	// Preset name
	preset string
	// Extra export targets for run
	csvOut  string
	jsonOut string
	// Live view pacing (continuous by default)
	liveProtocol string
	liveBeats    int
	// Restitution protocol
	restSteps     int
	restPeriod    float64
	restBeats     int
	restIntervals string
	restChart     string
	// Chart output path
	chartOut string
)

// main is the entry point for the cardiosim CLI; it registers commands and
// flags and executes the root command. It exits the process with status 1
// if command execution returns an error.
func main() {
	rootCmd := &cobra.Command{
		Use:   "cardiosim",
		Short: "cardiac cell electrophysiology lab",
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".cardiosim", "data directory")

	runCmd := &cobra.Command{
		Use:   "run [model]",
		Short: "run simulation",
		Args:  cobra.ExactArgs(1),
		RunE:  runSimulation,
	}
	runCmd.Flags().Float64Var(&dt, "dt", 0.01, "timestep (ms)")
	runCmd.Flags().IntVar(&steps, "steps", 40000, "number of steps")
	runCmd.Flags().StringVar(&integrator, "integrator", "euler", "integrator")
	runCmd.Flags().StringVar(&protocol, "protocol", "pulse", "stimulus protocol")
	runCmd.Flags().Float64Var(&amplitude, "amplitude", 1.0, "stimulus amplitude")
	runCmd.Flags().Float64Var(&stimStart, "stim-start", 0.1, "stimulus onset (ms)")
	runCmd.Flags().Float64Var(&stimDuration, "stim-duration", 0.2, "stimulus duration (ms)")
	runCmd.Flags().Float64Var(&period, "period", 1000.0, "pacing period (ms)")
	runCmd.Flags().IntVar(&beats, "beats", 4, "number of paced beats (0 = unlimited)")
	runCmd.Flags().Float64Var(&s2Interval, "interval", 300.0, "S1-S2 coupling interval (ms)")
	runCmd.Flags().Float64Var(&threshold, "threshold", 0.1, "AP detection threshold")
	runCmd.Flags().Float64Var(&u0, "u0", 0.0, "initial membrane potential (overrides rest state)")
	runCmd.Flags().Float64Var(&v0, "v0", 1.0, "initial fast gate (overrides rest state)")
	runCmd.Flags().Float64Var(&w0, "w0", 1.0, "initial slow gate (overrides rest state)")
	runCmd.Flags().BoolVar(&validate, "validate", false, "stop early on NaN/Inf states")
	runCmd.Flags().StringVar(&configFile, "config", "", "config file path (yaml)")
	runCmd.Flags().StringVar(&preset, "preset", "", "use preset configuration")
	runCmd.Flags().StringVar(&csvOut, "csv", "", "also write trajectory CSV to path")
	runCmd.Flags().StringVar(&jsonOut, "json", "", "also write trajectory JSON to path")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list runs",
		RunE:  listRuns,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot run results",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}

	apdCmd := &cobra.Command{
		Use:   "apd [run_id]",
		Short: "action potential durations of a run",
		Args:  cobra.ExactArgs(1),
		RunE:  apdRun,
	}
	apdCmd.Flags().Float64Var(&threshold, "threshold", 0.1, "AP detection threshold")

	restitutionCmd := &cobra.Command{
		Use:   "restitution [model]",
		Short: "measure the APD restitution curve",
		Args:  cobra.ExactArgs(1),
		RunE:  runRestitution,
	}
	restitutionCmd.Flags().Float64Var(&dt, "dt", 0.01, "timestep (ms)")
	restitutionCmd.Flags().IntVar(&restSteps, "steps", 200000, "steps per S1-S2 run")
	restitutionCmd.Flags().StringVar(&integrator, "integrator", "euler", "integrator")
	restitutionCmd.Flags().Float64Var(&amplitude, "amplitude", 1.0, "stimulus amplitude")
	restitutionCmd.Flags().Float64Var(&stimStart, "stim-start", 0.1, "S1 onset (ms)")
	restitutionCmd.Flags().Float64Var(&stimDuration, "stim-duration", 0.2, "stimulus duration (ms)")
	restitutionCmd.Flags().Float64Var(&restPeriod, "period", 500.0, "S1 pacing period (ms)")
	restitutionCmd.Flags().IntVar(&restBeats, "beats", 3, "number of S1 beats")
	restitutionCmd.Flags().StringVar(&restIntervals, "intervals", "250,300,350,400,500", "S2 coupling intervals (ms, comma separated)")
	restitutionCmd.Flags().Float64Var(&threshold, "threshold", 0.1, "AP detection threshold")
	restitutionCmd.Flags().StringVar(&restChart, "chart", "", "write restitution curve PNG to path")

	analyzeCmd := &cobra.Command{
		Use:   "analyze [run_id]",
		Short: "frequency analysis",
		Args:  cobra.ExactArgs(1),
		RunE:  analyzeRun,
	}

	exportCmd := &cobra.Command{
		Use:   "export [run_id]",
		Short: "export run metadata",
		Args:  cobra.ExactArgs(1),
		RunE:  exportRun,
	}

	exportCSVCmd := &cobra.Command{
		Use:   "export-csv [run_id]",
		Short: "export run data to CSV",
		Args:  cobra.ExactArgs(1),
		RunE:  exportCSVRun,
	}

	exportJSONCmd := &cobra.Command{
		Use:   "export-json [run_id]",
		Short: "export run data to JSON",
		Args:  cobra.ExactArgs(1),
		RunE:  exportJSONRun,
	}

	exportChartCmd := &cobra.Command{
		Use:   "export-chart [run_id]",
		Short: "render run trace to PNG or SVG",
		Args:  cobra.ExactArgs(1),
		RunE:  exportChartRun,
	}
	exportChartCmd.Flags().StringVar(&chartOut, "out", "", "output path (.png or .svg, default <run_id>.png)")

	liveCmd := &cobra.Command{
		Use:   "live [model]",
		Short: "run simulation with live visualization",
		Args:  cobra.ExactArgs(1),
		RunE:  runLive,
	}
	liveCmd.Flags().Float64Var(&dt, "dt", 0.01, "timestep (ms)")
	liveCmd.Flags().StringVar(&integrator, "integrator", "euler", "integrator")
	liveCmd.Flags().StringVar(&liveProtocol, "protocol", "train", "stimulus protocol")
	liveCmd.Flags().Float64Var(&amplitude, "amplitude", 1.0, "stimulus amplitude")
	liveCmd.Flags().Float64Var(&stimStart, "stim-start", 0.1, "stimulus onset (ms)")
	liveCmd.Flags().Float64Var(&stimDuration, "stim-duration", 0.2, "stimulus duration (ms)")
	liveCmd.Flags().Float64Var(&period, "period", 1000.0, "pacing period (ms)")
	liveCmd.Flags().IntVar(&liveBeats, "beats", 0, "number of paced beats (0 = unlimited)")
	liveCmd.Flags().Float64Var(&s2Interval, "interval", 300.0, "S1-S2 coupling interval (ms)")
	liveCmd.Flags().Float64Var(&u0, "u0", 0.0, "initial membrane potential (overrides rest state)")
	liveCmd.Flags().Float64Var(&v0, "v0", 1.0, "initial fast gate (overrides rest state)")
	liveCmd.Flags().Float64Var(&w0, "w0", 1.0, "initial slow gate (overrides rest state)")

	benchCmd := &cobra.Command{
		Use:   "bench [model]",
		Short: "benchmark model",
		Args:  cobra.ExactArgs(1),
		RunE:  benchModel,
	}
	benchCmd.Flags().StringVar(&integrator, "integrator", "euler", "integrator")

	phaseCmd := &cobra.Command{
		Use:   "phase [run_id]",
		Short: "phase portrait of a run",
		Args:  cobra.ExactArgs(1),
		RunE:  phasePlot,
	}
	phaseCmd.Flags().IntVar(&xAxis, "x-axis", 0, "state index for x-axis")
	phaseCmd.Flags().IntVar(&yAxis, "y-axis", 1, "state index for y-axis")

	compareCmd := &cobra.Command{
		Use:   "compare [model] [integrator1] [integrator2] ...",
		Short: "compare integrators on the same model",
		Args:  cobra.MinimumNArgs(2),
		RunE:  compareIntegrators,
	}
	compareCmd.Flags().Float64Var(&dt, "dt", 0.01, "timestep (ms)")
	compareCmd.Flags().IntVar(&steps, "steps", 40000, "number of steps")
	compareCmd.Flags().StringVar(&protocol, "protocol", "pulse", "stimulus protocol")
	compareCmd.Flags().Float64Var(&amplitude, "amplitude", 1.0, "stimulus amplitude")
	compareCmd.Flags().Float64Var(&stimStart, "stim-start", 0.1, "stimulus onset (ms)")
	compareCmd.Flags().Float64Var(&stimDuration, "stim-duration", 0.2, "stimulus duration (ms)")
	compareCmd.Flags().Float64Var(&threshold, "threshold", 0.1, "AP detection threshold")

	presetsCmd := &cobra.Command{
		Use:   "presets [model]",
		Short: "list available presets for a model",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			presets := config.ListPresets(args[0])
			if len(presets) == 0 {
				fmt.Printf("no presets for model: %s\n", args[0])
				return nil
			}
			fmt.Printf("presets for %s:\n", args[0])
			for _, p := range presets {
				fmt.Printf("  %s\n", p)
			}
			return nil
		},
	}

	infoCmd := &cobra.Command{
		Use:   "info",
		Short: "list available models, integrators, and protocols",
		RunE: func(cmd *cobra.Command, args []string) error {
			registry := experiment.NewRegistry()
			fmt.Printf("models:      %s\n", strings.Join(registry.ListModels(), ", "))
			fmt.Printf("integrators: %s\n", strings.Join(registry.ListIntegrators(), ", "))
			fmt.Printf("protocols:   %s\n", strings.Join(registry.ListProtocols(), ", "))
			return nil
		},
	}

	initConfigCmd := &cobra.Command{
		Use:   "init-config [path]",
		Short: "write a default config file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := config.Save(args[0], config.DefaultConfig()); err != nil {
				return err
			}
			fmt.Printf("wrote default config to %s\n", args[0])
			return nil
		},
	}

	rootCmd.AddCommand(runCmd, listCmd, plotCmd, apdCmd, restitutionCmd, analyzeCmd,
		exportCmd, exportCSVCmd, exportJSONCmd, exportChartCmd, liveCmd, benchCmd,
		phaseCmd, compareCmd, presetsCmd, infoCmd, initConfigCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func stimParams() map[string]float64 {
	return map[string]float64{
		"amplitude": amplitude,
		"start":     stimStart,
		"duration":  stimDuration,
		"period":    period,
		"count":     float64(beats),
		"interval":  s2Interval,
	}
}

func stateLabel(idx int) string {
	names := []string{"u", "v", "w"}
	if idx < len(names) {
		return names[idx]
	}
	return fmt.Sprintf("x%d", idx)
}

func plotCaption(model string, idx int) string {
	switch model {
	case "fenton_karma":
		switch idx {
		case 0:
			return "membrane potential u"
		case 1:
			return "fast inactivation gate v"
		case 2:
			return "slow inactivation gate w"
		}
	case "aliev_panfilov":
		switch idx {
		case 0:
			return "membrane potential u"
		case 1:
			return "recovery variable v"
		}
	}
	return fmt.Sprintf("%s vs time", stateLabel(idx))
}

func runSimulation(cmd *cobra.Command, args []string) error {
	model := args[0]

	var initState []float64

	// Load preset if specified
	if preset != "" {
		cfg := config.GetPreset(model, preset)
		if cfg == nil {
			return fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets(model))
		}
		dt = cfg.Dt
		steps = cfg.Steps
		integrator = cfg.Integrator
		protocol = cfg.Protocol
		threshold = cfg.Threshold
		amplitude = cfg.Stim.Amplitude
		stimStart = cfg.Stim.Start
		stimDuration = cfg.Stim.Duration
		period = cfg.Stim.Period
		beats = cfg.Stim.Beats
		s2Interval = cfg.Stim.Interval
		initState = cfg.GetInitState()
	}

	// Load config file if specified (CLI flags override config)
	if configFile != "" {
		cfg, err := config.Load(configFile)
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		if !cmd.Flags().Changed("dt") {
			dt = cfg.Dt
		}
		if !cmd.Flags().Changed("steps") {
			steps = cfg.Steps
		}
		if !cmd.Flags().Changed("integrator") {
			integrator = cfg.Integrator
		}
		if !cmd.Flags().Changed("protocol") {
			protocol = cfg.Protocol
		}
		if !cmd.Flags().Changed("threshold") {
			threshold = cfg.Threshold
		}
		if !cmd.Flags().Changed("amplitude") {
			amplitude = cfg.Stim.Amplitude
		}
		if !cmd.Flags().Changed("stim-start") {
			stimStart = cfg.Stim.Start
		}
		if !cmd.Flags().Changed("stim-duration") {
			stimDuration = cfg.Stim.Duration
		}
		if !cmd.Flags().Changed("period") {
			period = cfg.Stim.Period
		}
		if !cmd.Flags().Changed("beats") {
			beats = cfg.Stim.Beats
		}
		if !cmd.Flags().Changed("interval") {
			s2Interval = cfg.Stim.Interval
		}
		initState = cfg.GetInitState()
	}

	st := store.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}

	registry := experiment.NewRegistry()

	cellModel, err := registry.GetModel(model)
	if err != nil {
		return err
	}

	integ, err := registry.GetIntegrator(integrator)
	if err != nil {
		return err
	}

	pacing, err := registry.GetProtocol(protocol, stimParams())
	if err != nil {
		return err
	}

	if initState == nil {
		initState = []float64(cellModel.DefaultState())
	}
	if cmd.Flags().Changed("u0") && len(initState) > 0 {
		initState[0] = u0
	}
	if cmd.Flags().Changed("v0") && len(initState) > 1 {
		initState[1] = v0
	}
	if cmd.Flags().Changed("w0") && len(initState) > 2 {
		initState[2] = w0
	}

	cfg := experiment.Config{
		Model:         model,
		Integrator:    integrator,
		Protocol:      protocol,
		InitState:     initState,
		Dt:            dt,
		Steps:         steps,
		ValidateState: validate,
	}

	exp := experiment.New(cfg)
	metrics := registry.DefaultMetrics(model)
	if err := exp.Setup(cellModel, integ, pacing, metrics); err != nil {
		return err
	}

	fmt.Printf("running %s simulation...\n", model)
	start := time.Now()

	result, err := exp.Run(context.Background())
	if err != nil {
		return err
	}

	elapsed := time.Since(start)

	runID, err := st.Save(model, dt, result.StepsTaken, integrator, protocol, result)
	if err != nil {
		return err
	}

	fmt.Printf("completed in %v\n", elapsed)
	fmt.Printf("run id: %s\n", runID)
	fmt.Printf("samples: %d\n", result.Len())
	if len(result.Errors) > 0 {
		fmt.Printf("stopped early at step %d: %v\n", result.StepsTaken, result.Errors[0])
	}

	if apds := analysis.APDs(result, threshold); len(apds) > 0 {
		fmt.Printf("action potentials: %d (mean apd %.1f ms)\n", len(apds), stat.Mean(apds, nil))
	}

	fmt.Println("\nmetrics:")
	for name, val := range result.Metrics {
		fmt.Printf("  %s: %.6f\n", name, val)
	}

	if csvOut != "" {
		if err := store.ExportCSV(csvOut, result); err != nil {
			return err
		}
		fmt.Printf("csv written to %s\n", csvOut)
	}
	if jsonOut != "" {
		if err := store.ExportJSON(jsonOut, model, integrator, protocol, dt, result); err != nil {
			return err
		}
		fmt.Printf("json written to %s\n", jsonOut)
	}

	return nil
}

func listRuns(cmd *cobra.Command, args []string) error {
	st := store.New(dataDir)
	runs, err := st.List()
	if err != nil {
		return err
	}

	if len(runs) == 0 {
		fmt.Println("no runs found")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tMODEL\tTIME\tSTEPS\tDT\tINTEG\tPROTOCOL")

	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%.4f\t%s\t%s\n",
			run.ID,
			run.Model,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.Steps,
			run.Dt,
			run.Integrator,
			run.Protocol,
		)
	}

	return w.Flush()
}

// loadTrajectory rebuilds an in-memory trajectory from a saved run. The
// stimulus column is not recovered.
func loadTrajectory(st *store.Store, runID string) (*store.RunMetadata, *cell.Trajectory, error) {
	meta, err := st.Load(runID)
	if err != nil {
		return nil, nil, err
	}

	states, times, err := st.LoadStates(runID)
	if err != nil {
		return nil, nil, err
	}

	traj := &cell.Trajectory{
		Times:      times,
		States:     make([]cell.State, len(states)),
		Metrics:    meta.Metrics,
		StepsTaken: meta.Steps,
	}
	for i, s := range states {
		traj.States[i] = s
	}
	return meta, traj, nil
}

func plotRun(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st := store.New(dataDir)
	meta, traj, err := loadTrajectory(st, runID)
	if err != nil {
		return err
	}

	if traj.Len() == 0 {
		return fmt.Errorf("no data to plot")
	}

	fmt.Printf("run: %s\n", meta.ID)
	fmt.Printf("model: %s\n", meta.Model)
	fmt.Printf("samples: %d\n\n", traj.Len())

	for varIdx := 0; varIdx < len(traj.States[0]); varIdx++ {
		graph := asciigraph.Plot(traj.Component(varIdx),
			asciigraph.Height(10),
			asciigraph.Width(80),
			asciigraph.Caption(plotCaption(meta.Model, varIdx)),
		)
		fmt.Println(graph)
		fmt.Println()
	}

	return nil
}

func apdRun(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st := store.New(dataDir)
	meta, traj, err := loadTrajectory(st, runID)
	if err != nil {
		return err
	}

	aps := analysis.DetectAPs(traj, threshold)
	if len(aps) == 0 {
		fmt.Printf("no action potentials above threshold %.2f\n", threshold)
		return nil
	}

	fmt.Printf("run: %s\n", meta.ID)
	fmt.Printf("model: %s\n", meta.Model)
	fmt.Printf("threshold: %.2f\n\n", threshold)

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "AP\tONSET\tEND\tAPD")
	for i, ap := range aps {
		fmt.Fprintf(w, "%d\t%.2f\t%.2f\t%.2f\n", i+1, ap.Onset, ap.End, ap.Duration())
	}
	if err := w.Flush(); err != nil {
		return err
	}

	if dis := analysis.DiastolicIntervals(aps); len(dis) > 0 {
		fmt.Println("\ndiastolic intervals:")
		for i, di := range dis {
			fmt.Printf("  ap %d -> %d: %.2f ms\n", i+1, i+2, di)
		}
	}

	apds := analysis.APDs(traj, threshold)
	fmt.Printf("\nmean apd: %.2f ms\n", stat.Mean(apds, nil))

	return nil
}

func parseIntervals(s string) ([]float64, error) {
	parts := strings.Split(s, ",")
	out := make([]float64, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		v, err := strconv.ParseFloat(p, 64)
		if err != nil {
			return nil, fmt.Errorf("bad coupling interval %q: %w", p, err)
		}
		out = append(out, v)
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("no coupling intervals given")
	}
	return out, nil
}

func runRestitution(cmd *cobra.Command, args []string) error {
	model := args[0]

	intervals, err := parseIntervals(restIntervals)
	if err != nil {
		return err
	}

	registry := experiment.NewRegistry()

	cellModel, err := registry.GetModel(model)
	if err != nil {
		return err
	}

	// Validate the integrator name before the ensemble fans out.
	if _, err := registry.GetIntegrator(integrator); err != nil {
		return err
	}
	newIntegrator := func() cell.Integrator {
		integ, _ := registry.GetIntegrator(integrator)
		return integ
	}

	s1 := stim.NewTrain(amplitude, stimStart, stimDuration, restPeriod, restBeats)

	fmt.Printf("pacing %s with %d S1 beats (period %.0f ms), S2 at %d coupling intervals...\n",
		model, restBeats, restPeriod, len(intervals))
	start := time.Now()

	points, err := analysis.Restitution(context.Background(), cellModel, newIntegrator, *s1,
		intervals, cell.Config{Dt: dt, Steps: restSteps}, threshold)
	if err != nil {
		return err
	}

	fmt.Printf("completed in %v\n\n", time.Since(start))

	if len(points) == 0 {
		fmt.Println("no premature beats captured; try longer coupling intervals")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "DI\tAPD")
	for _, p := range points {
		fmt.Fprintf(w, "%.2f\t%.2f\n", p.DI, p.APD)
	}
	if err := w.Flush(); err != nil {
		return err
	}

	slope := analysis.Slope(points)
	fmt.Printf("\nrestitution slope: %.3f\n", slope)
	if slope > 1 {
		fmt.Println("slope exceeds 1: steep restitution, alternans risk")
	}

	if restChart != "" {
		if err := export.WriteRestitutionChart(restChart, points); err != nil {
			return err
		}
		fmt.Printf("chart written to %s\n", restChart)
	}

	return nil
}

func analyzeRun(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st := store.New(dataDir)
	meta, traj, err := loadTrajectory(st, runID)
	if err != nil {
		return err
	}

	u := traj.Component(0)
	if len(u) < 2 {
		return fmt.Errorf("no data")
	}

	fmt.Printf("frequency analysis: %s\n", meta.ID)
	fmt.Printf("model: %s\n\n", meta.Model)

	ps := analysis.PowerSpectrum(u)
	plotData := ps[:len(ps)/4]
	if len(plotData) > 1 {
		graph := asciigraph.Plot(plotData,
			asciigraph.Height(15),
			asciigraph.Width(80),
			asciigraph.Caption("power spectrum (u)"),
		)
		fmt.Println(graph)
		fmt.Println()
	}

	freq := analysis.DominantFrequency(u, meta.Dt)
	fmt.Printf("dominant frequency: %.3f hz\n", freq*1000.0)
	if freq > 0 {
		fmt.Printf("cycle length: %.1f ms\n", 1.0/freq)
	}

	return nil
}

func exportRun(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st := store.New(dataDir)
	meta, err := st.Load(runID)
	if err != nil {
		return err
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(meta)
}

func exportCSVRun(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st := store.New(dataDir)
	states, times, err := st.LoadStates(runID)
	if err != nil {
		return err
	}

	if len(states) == 0 {
		return fmt.Errorf("no data to export")
	}

	w := csv.NewWriter(os.Stdout)
	defer w.Flush()

	header := []string{"time"}
	for i := range states[0] {
		header = append(header, stateLabel(i))
	}
	if err := w.Write(header); err != nil {
		return err
	}

	for i := range states {
		row := []string{strconv.FormatFloat(times[i], 'f', 6, 64)}
		for _, val := range states[i] {
			row = append(row, strconv.FormatFloat(val, 'f', 6, 64))
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}

	return nil
}

func exportJSONRun(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st := store.New(dataDir)
	meta, traj, err := loadTrajectory(st, runID)
	if err != nil {
		return err
	}

	return store.ExportJSONStdout(meta.Model, meta.Integrator, meta.Protocol, meta.Dt, traj)
}

func exportChartRun(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st := store.New(dataDir)
	meta, traj, err := loadTrajectory(st, runID)
	if err != nil {
		return err
	}

	out := chartOut
	if out == "" {
		out = meta.ID + ".png"
	}

	if strings.HasSuffix(out, ".svg") {
		svg := export.TraceSVG(traj, 0, 1024, 400, "#00ff88")
		if svg == "" {
			return fmt.Errorf("not enough samples to render")
		}
		if err := os.WriteFile(out, []byte(svg), 0644); err != nil {
			return err
		}
	} else {
		title := fmt.Sprintf("%s (%s)", meta.ID, meta.Model)
		if err := export.WriteTraceChart(out, traj, title); err != nil {
			return err
		}
	}

	fmt.Printf("chart written to %s\n", out)
	return nil
}

func runLive(cmd *cobra.Command, args []string) error {
	model := args[0]

	registry := experiment.NewRegistry()

	cellModel, err := registry.GetModel(model)
	if err != nil {
		return err
	}

	integ, err := registry.GetIntegrator(integrator)
	if err != nil {
		return err
	}

	params := stimParams()
	params["count"] = float64(liveBeats)
	pacing, err := registry.GetProtocol(liveProtocol, params)
	if err != nil {
		return err
	}

	initState := []float64(cellModel.DefaultState())
	if cmd.Flags().Changed("u0") && len(initState) > 0 {
		initState[0] = u0
	}
	if cmd.Flags().Changed("v0") && len(initState) > 1 {
		initState[1] = v0
	}
	if cmd.Flags().Changed("w0") && len(initState) > 2 {
		initState[2] = w0
	}

	m := viz.NewModel(cellModel, integ, pacing, initState, dt, model)

	p := tea.NewProgram(m)
	if _, err := p.Run(); err != nil {
		return err
	}
	return nil
}

func benchModel(cmd *cobra.Command, args []string) error {
	model := args[0]

	registry := experiment.NewRegistry()

	cellModel, err := registry.GetModel(model)
	if err != nil {
		return err
	}

	durations := []float64{400, 1000, 4000}
	dts := []float64{0.005, 0.01, 0.05}

	fmt.Printf("benchmarking %s\n\n", model)
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "T_MAX\tDT\tSTEPS\tTIME\tSTEPS/SEC")

	for _, tmax := range durations {
		for _, dt := range dts {
			integ, err := registry.GetIntegrator(integrator)
			if err != nil {
				return err
			}
			pacing, err := registry.GetProtocol("train", map[string]float64{
				"amplitude": 1.0,
				"start":     0.1,
				"duration":  0.2,
				"period":    1000.0,
				"count":     0,
			})
			if err != nil {
				return err
			}

			sim := cell.New(cellModel, integ, pacing)

			start := time.Now()
			result, err := sim.Run(context.Background(), cellModel.DefaultState(),
				cell.Config{Dt: dt, Steps: int(tmax / dt)})
			if err != nil {
				return err
			}
			elapsed := time.Since(start)

			stepsPerSec := float64(result.StepsTaken) / elapsed.Seconds()
			fmt.Fprintf(w, "%.0fms\t%.3f\t%d\t%v\t%.0f\n",
				tmax, dt, result.StepsTaken, elapsed, stepsPerSec)
		}
	}

	return w.Flush()
}

func phasePlot(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st := store.New(dataDir)
	meta, traj, err := loadTrajectory(st, runID)
	if err != nil {
		return err
	}

	if traj.Len() == 0 {
		return fmt.Errorf("no data to plot")
	}

	if len(traj.States[0]) <= xAxis || len(traj.States[0]) <= yAxis {
		return fmt.Errorf("state dimension too small for selected axes")
	}

	fmt.Printf("phase portrait: %s\n", meta.ID)
	fmt.Printf("model: %s\n", meta.Model)
	fmt.Printf("x-axis: %s, y-axis: %s\n\n", stateLabel(xAxis), stateLabel(yAxis))

	xData := traj.Component(xAxis)
	yData := traj.Component(yAxis)

	xMin, xMax := floats.Min(xData), floats.Max(xData)
	yMin, yMax := floats.Min(yData), floats.Max(yData)

	xRange := xMax - xMin
	yRange := yMax - yMin
	if xRange == 0 {
		xRange = 1
	}
	if yRange == 0 {
		yRange = 1
	}

	width := 70
	height := 20
	canvas := make([][]rune, height)
	for i := range canvas {
		canvas[i] = make([]rune, width)
		for j := range canvas[i] {
			canvas[i][j] = ' '
		}
	}

	for i := range xData {
		px := int(float64(width-1) * (xData[i] - xMin) / xRange)
		py := int(float64(height-1) * (yData[i] - yMin) / yRange)
		py = height - 1 - py
		if px >= 0 && px < width && py >= 0 && py < height {
			if i < len(xData)/3 {
				canvas[py][px] = '.'
			} else if i < 2*len(xData)/3 {
				canvas[py][px] = 'o'
			} else {
				canvas[py][px] = '●'
			}
		}
	}

	fmt.Printf("  %.2f ┌", yMax)
	fmt.Print(strings.Repeat("─", width))
	fmt.Println("┐")

	for i := range canvas {
		if i == height/2 {
			fmt.Printf("  %.2f │", (yMax+yMin)/2)
		} else {
			fmt.Print("       │")
		}
		fmt.Print(string(canvas[i]))
		fmt.Println("│")
	}

	fmt.Printf("  %.2f └", yMin)
	fmt.Print(strings.Repeat("─", width))
	fmt.Println("┘")

	fmt.Printf("       %.2f%s%.2f\n", xMin, strings.Repeat(" ", width-20), xMax)
	fmt.Printf("\nLegend: . = early, o = middle, ● = late\n")

	return nil
}

func compareIntegrators(cmd *cobra.Command, args []string) error {
	model := args[0]
	names := args[1:]

	registry := experiment.NewRegistry()

	cellModel, err := registry.GetModel(model)
	if err != nil {
		return err
	}

	fmt.Printf("comparing integrators for %s (dt=%.4f, steps=%d)\n\n", model, dt, steps)
	fmt.Printf("%-12s  %-12s  %-12s  %-12s  %-12s\n", "integrator", "final_u", "peak_u", "apd_ms", "time_ms")
	fmt.Println(strings.Repeat("-", 68))

	for _, name := range names {
		integ, err := registry.GetIntegrator(name)
		if err != nil {
			fmt.Printf("%-12s  error: %v\n", name, err)
			continue
		}

		pacing, err := registry.GetProtocol(protocol, stimParams())
		if err != nil {
			return err
		}

		sim := cell.New(cellModel, integ, pacing)

		start := time.Now()
		result, err := sim.Run(context.Background(), cellModel.DefaultState(),
			cell.Config{Dt: dt, Steps: steps})
		elapsed := time.Since(start)

		if err != nil {
			fmt.Printf("%-12s  error: %v\n", name, err)
			continue
		}

		finalU := result.Final()[0]
		peakU := floats.Max(result.Component(0))
		apd := 0.0
		if apds := analysis.APDs(result, threshold); len(apds) > 0 {
			apd = apds[0]
		}

		fmt.Printf("%-12s  %12.6f  %12.6f  %12.2f  %12.2f\n",
			name, finalU, peakU, apd, float64(elapsed.Microseconds())/1000)
	}

	return nil
}
