package main

import (
	"context"
	"fmt"
	"log"
	"maps"
	"os"
	"os/signal"
	"slices"
	"text/tabwriter"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/san-kum/hydrogensim/internal/analysis"
	"github.com/san-kum/hydrogensim/internal/atom"
	"github.com/san-kum/hydrogensim/internal/automation"
	"github.com/san-kum/hydrogensim/internal/config"
	"github.com/san-kum/hydrogensim/internal/experiment"
	"github.com/san-kum/hydrogensim/internal/export"
	"github.com/san-kum/hydrogensim/internal/light"
	"github.com/san-kum/hydrogensim/internal/orbital"
	"github.com/san-kum/hydrogensim/internal/quantum"
	"github.com/san-kum/hydrogensim/internal/sim"
	"github.com/san-kum/hydrogensim/internal/spectrometer"
	"github.com/san-kum/hydrogensim/internal/storage"
	"github.com/san-kum/hydrogensim/internal/transition"
	"github.com/san-kum/hydrogensim/internal/viz"
)

var (
	dataDir    string
	dt         float64
	duration   float64
	seed       int64
	configFile string
	preset     string
	lightMode  string
	wavelength int
	speed      string
	gridSize   int
	nlm        string
	eager      bool
	verbose    bool
	numRuns    int
	sweepMin   int
	sweepMax   int
	sweepStep  int
	exportPath string
	chartPath  string
	svgPath    string
	scenePath  string
	color      bool
)

func main() {
	log.SetFlags(0)
	log.SetPrefix("hydrogensim: ")

	rootCmd := &cobra.Command{
		Use:           "hydrogensim",
		Short:         "models of the hydrogen atom",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".hydrogensim", "data directory")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "log progress")

	runCmd := &cobra.Command{
		Use:   "run [model]",
		Short: "run simulation and store the result",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runSimulation,
	}
	addSimFlags(runCmd)

	batchCmd := &cobra.Command{
		Use:   "batch [model]",
		Short: "run seeded copies in parallel and sum their spectra",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runBatch,
	}
	addSimFlags(batchCmd)
	batchCmd.Flags().IntVar(&numRuns, "runs", 8, "number of runs")

	sweepCmd := &cobra.Command{
		Use:   "sweep [model]",
		Short: "scan monochromatic wavelengths for absorption lines",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runSweep,
	}
	addSimFlags(sweepCmd)
	sweepCmd.Flags().IntVar(&sweepMin, "min", light.MinWavelength, "first wavelength in nm")
	sweepCmd.Flags().IntVar(&sweepMax, "max", 700, "last wavelength in nm")
	sweepCmd.Flags().IntVar(&sweepStep, "step", 1, "wavelength step in nm")

	scenarioCmd := &cobra.Command{
		Use:   "scenario [file]",
		Short: "run the steps of a YAML scenario",
		Args:  cobra.ExactArgs(1),
		RunE:  runScenario,
	}

	liveCmd := &cobra.Command{
		Use:   "live [model]",
		Short: "watch the atom in the terminal",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runLive,
	}
	addSimFlags(liveCmd)

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list runs",
		RunE:  listRuns,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot the state trace and spectrum of a run",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}

	analyzeCmd := &cobra.Command{
		Use:   "analyze [run_id]",
		Short: "level occupation and dwell times of a run",
		Args:  cobra.ExactArgs(1),
		RunE:  analyzeRun,
	}

	exportCmd := &cobra.Command{
		Use:   "export [run_id]",
		Short: "export a run as JSON",
		Args:  cobra.ExactArgs(1),
		RunE:  exportRun,
	}
	exportCmd.Flags().StringVarP(&exportPath, "output", "o", "", "output file (default stdout)")

	chartCmd := &cobra.Command{
		Use:   "chart [run_id]",
		Short: "render the spectrum of a run as PNG",
		Args:  cobra.ExactArgs(1),
		RunE:  chartRun,
	}
	chartCmd.Flags().StringVarP(&chartPath, "output", "o", "spectrum.png", "output file")

	orbitalCmd := &cobra.Command{
		Use:   "orbital [n] [l] [m]",
		Short: "draw the electron cloud of a state",
		Args:  cobra.ExactArgs(3),
		RunE:  drawOrbital,
	}
	orbitalCmd.Flags().IntVar(&gridSize, "grid", orbital.DefaultGridSize, "quadrant grid size")
	orbitalCmd.Flags().BoolVar(&color, "color", true, "shade with color")
	orbitalCmd.Flags().StringVar(&svgPath, "svg", "", "also write the image as SVG")

	snapshotCmd := &cobra.Command{
		Use:   "snapshot [model]",
		Short: "run for --time seconds and draw the box as SVG",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runSnapshot,
	}
	addSimFlags(snapshotCmd)
	snapshotCmd.Flags().StringVarP(&scenePath, "output", "o", "scene.svg", "output file")

	transitionsCmd := &cobra.Command{
		Use:   "transitions",
		Short: "list transition wavelengths and strengths",
		Args:  cobra.NoArgs,
		RunE:  listTransitions,
	}

	presetsCmd := &cobra.Command{
		Use:   "presets [model]",
		Short: "list available presets",
		Args:  cobra.MaximumNArgs(1),
		RunE:  listPresets,
	}

	rootCmd.AddCommand(runCmd, batchCmd, sweepCmd, scenarioCmd, liveCmd, listCmd, plotCmd, analyzeCmd, exportCmd, chartCmd, orbitalCmd, snapshotCmd, transitionsCmd, presetsCmd)

	if err := rootCmd.Execute(); err != nil {
		log.Print(err)
		os.Exit(1)
	}
}

func addSimFlags(cmd *cobra.Command) {
	f := cmd.Flags()
	f.Float64Var(&dt, "dt", config.DefaultDt, "timestep")
	f.Float64Var(&duration, "time", config.DefaultDuration, "duration in seconds")
	f.Int64Var(&seed, "seed", 0, "random seed (0 picks one)")
	f.StringVar(&configFile, "config", "", "config file path (yaml or toml)")
	f.StringVar(&preset, "preset", "", "use preset configuration")
	f.StringVar(&lightMode, "light", "white", "light: white, monochromatic or off")
	f.IntVar(&wavelength, "wavelength", light.DefaultWavelength, "monochromatic wavelength in nm")
	f.StringVar(&speed, "speed", config.DefaultSpeed, "speed: fast, normal or slow")
	f.IntVar(&gridSize, "grid", orbital.DefaultGridSize, "orbital quadrant grid size")
	f.StringVar(&nlm, "nlm", "1,0,0", "initial Schrödinger state n,l,m")
	f.BoolVar(&eager, "eager", false, "compute every orbital image up front")
}

func progress(format string, args ...any) {
	if verbose {
		log.Printf(format, args...)
	}
}

func runSimulation(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd, args)
	if err != nil {
		return err
	}
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}

	st := storage.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}

	exp, err := experiment.New(cfg, nil)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	fmt.Printf("running %s simulation...\n", cfg.Model)
	progress("dt=%g duration=%gs speed=%s seed=%d", cfg.Dt, cfg.Duration, cfg.Speed, cfg.Seed)
	start := time.Now()

	result, err := exp.Run(ctx)
	if err != nil && result == nil {
		return err
	}
	if err != nil {
		log.Printf("interrupted after %.2fs simulated", result.Elapsed)
	}

	runID, saveErr := st.Save(cfg, result)
	if saveErr != nil {
		return saveErr
	}

	fmt.Printf("completed in %v\n", time.Since(start))
	fmt.Printf("run id: %s\n", runID)
	printResult(result)
	return nil
}

func printResult(result *sim.Result) {
	fmt.Printf("steps: %d\n", result.StepsTaken)
	fmt.Printf("photons: %d absorbed, %d emitted\n", result.Absorbed, result.Emitted)
	fmt.Println("\nmetrics:")
	for _, name := range slices.Sorted(maps.Keys(result.Metrics)) {
		fmt.Printf("  %s: %.6f\n", name, result.Metrics[name])
	}
	if bars := viz.SpectrumBars(result.Spectrum, 40, false); bars != "" {
		fmt.Println("\nspectrum:")
		fmt.Print(bars)
	}
}

func runBatch(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd, args)
	if err != nil {
		return err
	}
	if numRuns < 1 {
		return fmt.Errorf("runs must be positive, got %d", numRuns)
	}
	seedStart := cfg.Seed
	if seedStart == 0 {
		seedStart = time.Now().UnixNano()
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	fmt.Printf("running %d %s simulations...\n", numRuns, cfg.Model)
	start := time.Now()
	results, err := sim.NewEnsemble(experiment.Factory(cfg), numRuns, seedStart).Run(ctx, cfg.SimConfig())
	if err != nil {
		return err
	}

	st := storage.New(dataDir)
	for _, r := range results {
		c := cfg.Clone()
		c.Seed = r.Seed
		runID, err := st.Save(c, r)
		if err != nil {
			return err
		}
		progress("stored %s", runID)
	}

	absorbed, emitted := 0, 0
	for _, r := range results {
		absorbed += r.Absorbed
		emitted += r.Emitted
	}
	fmt.Printf("completed in %v\n", time.Since(start))
	fmt.Printf("photons: %d absorbed, %d emitted\n", absorbed, emitted)
	if bars := viz.SpectrumBars(sim.MergeSpectra(results), 40, false); bars != "" {
		fmt.Println("\ncombined spectrum:")
		fmt.Print(bars)
	}
	return nil
}

func runSweep(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd, args)
	if err != nil {
		return err
	}
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	fmt.Printf("sweeping %s from %dnm to %dnm...\n", cfg.Model, sweepMin, sweepMax)
	start := time.Now()
	results, err := automation.RunSweep(ctx, &automation.WavelengthSweep{
		Base: cfg,
		Min:  sweepMin,
		Max:  sweepMax,
		Step: sweepStep,
	})
	if err != nil {
		return err
	}
	fmt.Printf("completed in %v\n\n", time.Since(start))

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "WAVELENGTH\tABSORBED\tEMITTED\tTRANSITIONS")
	for _, r := range results {
		if r.Absorbed == 0 && !verbose {
			continue
		}
		fmt.Fprintf(w, "%dnm\t%d\t%d\t%d\n", r.Wavelength, r.Absorbed, r.Emitted, r.Transitions)
	}
	if err := w.Flush(); err != nil {
		return err
	}

	if best, ok := automation.Best(results); ok {
		fmt.Printf("\nabsorption lines: %v\n", automation.Lines(results))
		fmt.Printf("strongest line: %dnm (%d absorbed)\n", best.Wavelength, best.Absorbed)
	} else {
		fmt.Println("\nno photon was absorbed")
	}
	return nil
}

func runScenario(cmd *cobra.Command, args []string) error {
	scenario, err := automation.LoadScenario(args[0])
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if scenario.Name != "" {
		fmt.Printf("scenario: %s\n", scenario.Name)
	}
	results, err := automation.RunScenario(ctx, scenario, func(i int, step automation.ScenarioStep) {
		fmt.Printf("running step %d/%d: %s\n", i+1, len(scenario.Steps), step.Model)
	})

	st := storage.New(dataDir)
	for _, r := range results {
		runID, saveErr := st.Save(r.Config, r.Result)
		if saveErr != nil {
			return saveErr
		}
		fmt.Printf("  %s: %d absorbed, %d emitted\n", runID, r.Result.Absorbed, r.Result.Emitted)
		if r.Step.SaveAs != "" {
			if err := exportTo(st, runID, r.Step.SaveAs); err != nil {
				return err
			}
		}
	}
	return err
}

func runLive(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd, args)
	if err != nil {
		return err
	}

	exp, err := experiment.New(cfg, nil)
	if err != nil {
		return err
	}

	speedIdx := slices.Index(config.Speeds, cfg.Speed)
	m := viz.NewModel(exp.Simulator(), cfg.Dt, cfg.TimeScale, speedIdx).WithStuck(exp.Stuck)
	p := tea.NewProgram(m, tea.WithAltScreen())
	_, err = p.Run()
	return err
}

func listRuns(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	runs, err := st.List()
	if err != nil {
		return err
	}

	if len(runs) == 0 {
		fmt.Println("no runs found")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tMODEL\tTIME\tDURATION\tLIGHT\tABSORBED\tEMITTED")

	for _, run := range runs {
		lightLabel := run.LightMode
		if !run.LightOn {
			lightLabel = "off"
		} else if run.Wavelength != 0 {
			lightLabel = fmt.Sprintf("%dnm", run.Wavelength)
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%.2fs\t%s\t%d\t%d\n",
			run.ID,
			run.Model,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.Duration,
			lightLabel,
			run.Absorbed,
			run.Emitted,
		)
	}

	return w.Flush()
}

func plotRun(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st := storage.New(dataDir)
	meta, err := st.Load(runID)
	if err != nil {
		return err
	}
	samples, err := st.LoadStates(runID)
	if err != nil {
		return err
	}
	spectrum, err := st.LoadSpectrum(runID)
	if err != nil {
		return err
	}

	fmt.Printf("run: %s\n", meta.ID)
	fmt.Printf("model: %s\n", meta.Model)
	fmt.Printf("samples: %d\n\n", len(samples))

	if atom.Predictive(meta.Model) {
		if graph := viz.PlotStates(samples, 80); graph != "" {
			fmt.Println(graph)
			fmt.Println()
		}
	}
	if graph := viz.PlotSpectrum(spectrum, 80); graph != "" {
		fmt.Println(graph)
		fmt.Println()
		fmt.Print(viz.SpectrumBars(spectrum, 40, true))
	} else {
		fmt.Println("no photons emitted")
	}
	return nil
}

func analyzeRun(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	meta, err := st.Load(args[0])
	if err != nil {
		return err
	}
	samples, err := st.LoadStates(args[0])
	if err != nil {
		return err
	}
	if len(samples) < 2 || samples[0].State.N == 0 {
		return fmt.Errorf("run %s has no state trace (model %s)", meta.ID, meta.Model)
	}

	fmt.Printf("run: %s\n", meta.ID)
	fmt.Printf("model: %s\n\n", meta.Model)
	fmt.Print(analysis.Analyze(samples).Format())
	return nil
}

func exportRun(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	if exportPath == "" {
		return st.Export(args[0], os.Stdout)
	}
	return exportTo(st, args[0], exportPath)
}

func exportTo(st *storage.Store, runID, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	if err := st.Export(runID, f); err != nil {
		return err
	}
	fmt.Printf("exported to %s\n", path)
	return nil
}

func chartRun(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	meta, err := st.Load(args[0])
	if err != nil {
		return err
	}
	spectrum, err := st.LoadSpectrum(args[0])
	if err != nil {
		return err
	}

	f, err := os.Create(chartPath)
	if err != nil {
		return err
	}
	defer f.Close()

	title := fmt.Sprintf("%s spectrum", meta.Model)
	if err := spectrometer.FromCounts(spectrum).WriteChart(f, title); err != nil {
		return err
	}
	fmt.Printf("chart written to %s\n", chartPath)
	return nil
}

func drawOrbital(cmd *cobra.Command, args []string) error {
	q, err := parseState(args)
	if err != nil {
		return err
	}
	if gridSize < 1 {
		return fmt.Errorf("grid size must be positive, got %d", gridSize)
	}

	start := time.Now()
	grid := orbital.NewCache(gridSize, false).Brightness(q)
	progress("computed %v in %v", q, time.Since(start))

	fmt.Printf("orbital %v, E = %.2f eV\n", q, quantum.Energy(q.N))
	fmt.Print(viz.RenderOrbital(grid, color))
	if svgPath != "" {
		return writeFile(svgPath, export.OrbitalToSVG(grid, 6))
	}
	return nil
}

func runSnapshot(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd, args)
	if err != nil {
		return err
	}

	exp, err := experiment.New(cfg, nil)
	if err != nil {
		return err
	}
	s := exp.Simulator()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	if _, err := exp.Run(ctx); err != nil {
		return err
	}

	snap := s.Snapshot()
	progress("t=%.2fs photons=%d", snap.Time, snap.Photons)
	return writeFile(scenePath, export.CanvasToSVG(viz.Frame(s), 4, "#4af2a1"))
}

func writeFile(path, content string) error {
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		return err
	}
	fmt.Printf("written to %s\n", path)
	return nil
}

func listTransitions(cmd *cobra.Command, args []string) error {
	am := transition.NewAbsorptionModel()

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "LOWER\tUPPER\tWAVELENGTH\tSTRENGTH\tVISIBLE")
	for n1 := transition.GroundState; n1 < transition.MaxState; n1++ {
		for n2 := n1 + 1; n2 <= transition.MaxState; n2++ {
			wl, err := am.AbsorptionWavelength(n1, n2)
			if err != nil {
				return err
			}
			fmt.Fprintf(w, "%d\t%d\t%dnm\t%.2f\t%v\n", n1, n2, wl, quantum.TransitionStrength(n2, n1), light.IsVisible(wl))
		}
	}
	return w.Flush()
}

func listPresets(cmd *cobra.Command, args []string) error {
	models := config.Models()
	if len(args) > 0 {
		models = args[:1]
	}

	for _, model := range models {
		presets := config.ListPresets(model)
		if len(presets) == 0 {
			fmt.Printf("no presets for model: %s\n", model)
			continue
		}
		fmt.Printf("presets for %s:\n", model)
		for _, p := range presets {
			fmt.Printf("  %s\n", p)
		}
	}
	return nil
}
