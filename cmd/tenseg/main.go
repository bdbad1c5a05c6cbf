package main

import (
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/san-kum/tenseg/internal/config"
	"github.com/san-kum/tenseg/internal/engine"
	"github.com/san-kum/tenseg/internal/export"
	"github.com/san-kum/tenseg/internal/metrics"
	"github.com/san-kum/tenseg/internal/physics"
	"github.com/san-kum/tenseg/internal/storage"
	"github.com/san-kum/tenseg/internal/tenscript"
	"github.com/san-kum/tenseg/internal/viz"
)

var (
	dataDir    string
	configFile string
	preset     string
	maxTicks   int
	noPretense bool
	// Export options
	format  string
	outFile string
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "tenseg",
		Short: "tensegrity growth and relaxation lab",
	}
	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".tenseg", "data directory")

	growCmd := &cobra.Command{
		Use:   "grow [code]",
		Short: "grow a tenscript program into a pretensed structure",
		Args:  cobra.MaximumNArgs(1),
		RunE:  growRun,
	}
	growCmd.Flags().StringVar(&configFile, "config", "", "config file path (yaml)")
	growCmd.Flags().StringVar(&preset, "preset", "", "use preset structure")
	growCmd.Flags().IntVar(&maxTicks, "max-ticks", config.DefaultMaxTicks, "tick budget for the run")
	growCmd.Flags().BoolVar(&noPretense, "no-pretense", false, "stop after shaping instead of pretensing")

	validateCmd := &cobra.Command{
		Use:   "validate [code]",
		Short: "check a tenscript program without growing it",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := tenscript.Parse(args[0]); err != nil {
				return err
			}
			fmt.Println("valid")
			return nil
		},
	}

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list saved runs",
		RunE:  listRuns,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot a saved run's history",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}

	exportCmd := &cobra.Command{
		Use:   "export [run_id]",
		Short: "export a saved run's geometry",
		Args:  cobra.ExactArgs(1),
		RunE:  exportRun,
	}
	exportCmd.Flags().StringVar(&format, "format", "obj", "output format (obj or json)")
	exportCmd.Flags().StringVar(&outFile, "out", "", "output file (default stdout)")

	liveCmd := &cobra.Command{
		Use:   "live [code]",
		Short: "grow a structure with live visualization",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runLive,
	}
	liveCmd.Flags().StringVar(&configFile, "config", "", "config file path (yaml)")
	liveCmd.Flags().StringVar(&preset, "preset", "", "use preset structure")
	liveCmd.Flags().IntVar(&maxTicks, "max-ticks", config.DefaultMaxTicks, "tick budget for the run")

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list preset structures",
		RunE: func(cmd *cobra.Command, args []string) error {
			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "NAME\tCODE\tABOUT")
			for _, name := range config.ListPresets() {
				p := config.Presets[name]
				fmt.Fprintf(w, "%s\t%s\t%s\n", name, p.Code, p.About)
			}
			return w.Flush()
		},
	}

	rootCmd.AddCommand(growCmd, validateCmd, listCmd, plotCmd, exportCmd, liveCmd, presetsCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// resolveConfig merges the config file, preset and positional code into
// one run configuration. Flags win over the file, the positional code
// wins over everything.
func resolveConfig(cmd *cobra.Command, args []string) (*config.Config, error) {
	cfg := config.DefaultConfig()

	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
	}
	if preset != "" {
		presetCfg := config.GetPreset(preset)
		if presetCfg == nil {
			return nil, fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets())
		}
		cfg.Code = presetCfg.Code
	}
	if len(args) > 0 {
		cfg.Code = args[0]
	}
	if cmd.Flags().Changed("max-ticks") {
		cfg.MaxTicks = maxTicks
	}
	if noPretense {
		cfg.Pretense = false
	}
	return cfg, nil
}

func newEngine(cfg *config.Config) (*engine.Engine, error) {
	eng := engine.New(physics.New(cfg.World), cfg.World)
	tree, err := tenscript.Parse(cfg.Code)
	if err != nil {
		return nil, err
	}
	if err := eng.SubmitGrammar(tree); err != nil {
		return nil, err
	}
	return eng, nil
}

func growRun(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd, args)
	if err != nil {
		return err
	}

	st := storage.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}

	eng, err := newEngine(cfg)
	if err != nil {
		return err
	}

	fmt.Printf("growing %s...\n", cfg.Code)
	start := time.Now()

	mets := metrics.Defaults()
	series, err := drive(eng, cfg, mets)
	if err != nil {
		return err
	}
	elapsed := time.Since(start)

	result := &storage.Result{
		Code:      cfg.Code,
		Stage:     eng.Stage().String(),
		Ticks:     eng.Ticks(),
		Joints:    eng.Joints(),
		Intervals: eng.Intervals(),
		Series:    series,
		Metrics:   make(map[string]float64, len(mets)),
	}
	for _, m := range mets {
		result.Metrics[m.Name()] = m.Value()
	}

	runID, err := st.Save(result)
	if err != nil {
		return err
	}

	fmt.Printf("completed in %v\n", elapsed)
	fmt.Printf("run id: %s\n", runID)
	fmt.Printf("stage: %s\n", eng.Stage())
	if eng.Stuck() {
		fmt.Println("warning: dynamics never calmed, run stopped early")
	}
	fmt.Printf("joints: %d  intervals: %d\n", eng.JointCount(), eng.IntervalCount())
	fmt.Println("\nmetrics:")
	for _, m := range mets {
		fmt.Printf("  %s: %.6f\n", m.Name(), m.Value())
	}
	return nil
}

// drive runs the life cycle to completion: growth, shaping, then slack
// and pretensing unless pretensing is disabled. It stops at the tick
// budget, at pretenst, or when the dynamics are stuck.
func drive(eng *engine.Engine, cfg *config.Config, mets []metrics.Metric) ([]storage.Point, error) {
	series := make([]storage.Point, 0, cfg.MaxTicks)
	for eng.Ticks() < cfg.MaxTicks {
		if err := eng.Tick(); err != nil {
			return series, err
		}

		sample := metrics.Sample{
			Tick:      eng.Ticks(),
			Stage:     eng.Stage().String(),
			Busy:      eng.Busy(),
			Joints:    eng.JointCount(),
			Intervals: eng.IntervalCount(),
			Faces:     eng.FaceCount(),
			MaxStrain: eng.MaxStrain(),
			Height:    eng.Height(),
		}
		metrics.Observe(sample, mets)
		series = append(series, storage.Point{
			Tick:      sample.Tick,
			Stage:     sample.Stage,
			MaxStrain: sample.MaxStrain,
			Height:    sample.Height,
		})

		if eng.Busy() {
			if eng.Stuck() {
				return series, nil
			}
			continue
		}

		switch eng.Stage() {
		case engine.Shaping:
			if !cfg.Pretense {
				return series, nil
			}
			if connectorsPending(eng) {
				continue
			}
			if err := eng.RequestStage(engine.Slack); err != nil {
				return series, err
			}
		case engine.Slack:
			if err := eng.RequestStage(engine.Pretensing); err != nil {
				return series, err
			}
		case engine.Pretenst:
			return series, nil
		}
	}
	return series, nil
}

func connectorsPending(eng *engine.Engine) bool {
	for _, iv := range eng.Intervals() {
		if iv.Role.Connector() {
			return true
		}
	}
	return false
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
	fmt.Fprintln(w, "ID\tCODE\tTIME\tSTAGE\tTICKS\tJOINTS\tINTERVALS")
	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%d\t%d\t%d\n",
			run.ID,
			run.Code,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.Stage,
			run.Ticks,
			run.Joints,
			run.Intervals,
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
	series, err := st.LoadSeries(runID)
	if err != nil {
		return err
	}

	fmt.Printf("run: %s\n", meta.ID)
	fmt.Printf("code: %s\n", meta.Code)
	fmt.Printf("samples: %d\n\n", len(series))
	fmt.Println(viz.Plot(series, 80, 10))
	return nil
}

func exportRun(cmd *cobra.Command, args []string) error {
	runID := args[0]
	st := storage.New(dataDir)

	meta, err := st.Load(runID)
	if err != nil {
		return err
	}
	joints, intervals, err := st.LoadGeometry(runID)
	if err != nil {
		return err
	}

	switch format {
	case "obj":
		if outFile == "" {
			fmt.Print(export.OBJ(joints, intervals, nil))
			return nil
		}
		return export.WriteOBJ(outFile, joints, intervals, nil)
	case "json":
		result := &storage.Result{
			Code:      meta.Code,
			Stage:     meta.Stage,
			Ticks:     meta.Ticks,
			Joints:    joints,
			Intervals: intervals,
			Metrics:   meta.Metrics,
		}
		if outFile == "" {
			return export.JSON(os.Stdout, result)
		}
		return export.WriteJSON(outFile, result)
	default:
		return fmt.Errorf("unknown format: %s (obj or json)", format)
	}
}

func runLive(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd, args)
	if err != nil {
		return err
	}
	eng, err := newEngine(cfg)
	if err != nil {
		return err
	}

	program := tea.NewProgram(viz.NewModel(eng, cfg.Code, cfg.MaxTicks), tea.WithAltScreen())
	_, err = program.Run()
	return err
}
