package main

import (
	"context"
	"encoding/csv"
	"fmt"
	"os"
	"sort"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/rodwindswept/gyrokite/internal/config"
	"github.com/rodwindswept/gyrokite/internal/optim"
	"github.com/rodwindswept/gyrokite/internal/rotor"
	"github.com/rodwindswept/gyrokite/internal/storage"
	"github.com/rodwindswept/gyrokite/internal/sweep"
	"github.com/rodwindswept/gyrokite/internal/tui"
	"github.com/rodwindswept/gyrokite/internal/viz"
)

var (
	dataDir    string
	configFile string
	preset     string

	bladeLength float64
	bladeChord  float64
	bladePitch  float64
	rotorMass   float64
	lineTension float64
	lineAngle   float64
	windSpeed   float64
	rotorTilt   float64

	sweepFrom float64
	sweepTo   float64
	sweepStep float64
	series    string
	saveRun   bool
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "gyrokite",
		Short: "kite-line autogyro rotor design tool",
		RunE: func(cmd *cobra.Command, args []string) error {
			// Default to the interactive editor when no command given.
			design, err := resolveDesign(cmd)
			if err != nil {
				return err
			}
			return tui.Run(design)
		},
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".gyrokite", "data directory")

	computeCmd := &cobra.Command{
		Use:   "compute",
		Short: "evaluate one design",
		RunE:  runCompute,
	}

	sweepCmd := &cobra.Command{
		Use:   "sweep [param]",
		Short: "sweep a parameter and chart the response",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runSweep,
	}
	sweepCmd.Flags().Float64Var(&sweepFrom, "from", 2, "sweep start")
	sweepCmd.Flags().Float64Var(&sweepTo, "to", 25, "sweep end")
	sweepCmd.Flags().Float64Var(&sweepStep, "step", 1, "sweep step")
	sweepCmd.Flags().StringVar(&series, "series", "thrust", "output to chart (thrust|rpm|lift|anchor)")
	sweepCmd.Flags().BoolVar(&saveRun, "save", false, "save the sweep to the data directory")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list saved sweeps",
		RunE:  runList,
	}

	exportCmd := &cobra.Command{
		Use:   "export [run_id]",
		Short: "export a saved sweep to JSON",
		Args:  cobra.ExactArgs(1),
		RunE:  runExport,
	}

	exportCSVCmd := &cobra.Command{
		Use:   "export-csv [run_id]",
		Short: "export a saved sweep to CSV",
		Args:  cobra.ExactArgs(1),
		RunE:  runExportCSV,
	}

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list design presets",
		Run: func(cmd *cobra.Command, args []string) {
			names := config.ListPresets()
			sort.Strings(names)
			for _, name := range names {
				p := config.GetPreset(name)
				fmt.Printf("  %-14s %.1fm blades, %.1fkg, line %.0f°\n",
					name, p.Design.BladeLength, p.Design.RotorMass, p.Design.LineAngle)
			}
		},
	}

	optimizeCmd := &cobra.Command{
		Use:   "optimize [param=from:to:n ...]",
		Short: "grid-search designs for maximum generated thrust",
		Args:  cobra.MinimumNArgs(1),
		RunE:  runOptimize,
	}

	tuiCmd := &cobra.Command{
		Use:   "tui",
		Short: "interactive design editor",
		RunE: func(cmd *cobra.Command, args []string) error {
			design, err := resolveDesign(cmd)
			if err != nil {
				return err
			}
			return tui.Run(design)
		},
	}

	for _, c := range []*cobra.Command{rootCmd, computeCmd, sweepCmd, optimizeCmd, tuiCmd} {
		addDesignFlags(c)
	}

	rootCmd.AddCommand(computeCmd, sweepCmd, listCmd, exportCmd, exportCSVCmd, presetsCmd, optimizeCmd, tuiCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func addDesignFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&configFile, "config", "", "design file path (yaml)")
	cmd.Flags().StringVar(&preset, "preset", "", "use a named preset design")
	cmd.Flags().Float64Var(&bladeLength, "blade-length", 1.2, "rotor radius (m)")
	cmd.Flags().Float64Var(&bladeChord, "blade-chord", 0.15, "blade chord (m)")
	cmd.Flags().Float64Var(&bladePitch, "blade-pitch", 4.0, "geometric blade pitch (deg)")
	cmd.Flags().Float64Var(&rotorMass, "rotor-mass", 1.5, "rotor mass (kg)")
	cmd.Flags().Float64Var(&lineTension, "line-tension", 200, "kite-side line tension (N)")
	cmd.Flags().Float64Var(&lineAngle, "line-angle", 60, "line elevation (deg)")
	cmd.Flags().Float64Var(&windSpeed, "wind", 10, "wind speed (m/s)")
	cmd.Flags().Float64Var(&rotorTilt, "tilt", 0, "mechanical rotor tilt (deg)")
}

// resolveDesign builds the design from preset, then config file, then any
// explicitly set CLI flags, and validates it at the editor boundary.
func resolveDesign(cmd *cobra.Command) (rotor.Design, error) {
	design := rotor.DefaultDesign()

	if preset != "" {
		cfg := config.GetPreset(preset)
		if cfg == nil {
			names := config.ListPresets()
			sort.Strings(names)
			return design, fmt.Errorf("unknown preset: %s (available: %v)", preset, names)
		}
		design = cfg.Design.ToRotor()
	}

	if configFile != "" {
		cfg, err := config.Load(configFile)
		if err != nil {
			return design, fmt.Errorf("failed to load config: %w", err)
		}
		design = cfg.Design.ToRotor()
	}

	flagVals := map[string]*float64{
		"blade-length": &bladeLength,
		"blade-chord":  &bladeChord,
		"blade-pitch":  &bladePitch,
		"rotor-mass":   &rotorMass,
		"line-tension": &lineTension,
		"line-angle":   &lineAngle,
		"wind":         &windSpeed,
		"tilt":         &rotorTilt,
	}
	paramNames := map[string]string{
		"blade-length": "blade_length",
		"blade-chord":  "blade_chord",
		"blade-pitch":  "blade_pitch",
		"rotor-mass":   "rotor_mass",
		"line-tension": "line_tension",
		"line-angle":   "line_angle",
		"wind":         "wind_speed",
		"tilt":         "rotor_tilt",
	}
	for flagName, val := range flagVals {
		if cmd.Flags().Changed(flagName) {
			if err := design.SetParam(paramNames[flagName], *val); err != nil {
				return design, err
			}
		}
	}

	if err := config.Validate(design); err != nil {
		return design, err
	}
	return design, nil
}

func runCompute(cmd *cobra.Command, args []string) error {
	design, err := resolveDesign(cmd)
	if err != nil {
		return err
	}

	s := rotor.Compute(design)

	regime := "autorotating"
	if !s.Spinning() {
		regime = "stationary (bluff body)"
	}
	fmt.Printf("regime: %s\n\n", regime)

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "rpm\t%.1f\n", s.RPM)
	fmt.Fprintf(w, "generated thrust\t%.1f N\n", s.GeneratedThrust)
	fmt.Fprintf(w, "total rotor thrust\t%.1f N\n", s.TotalRotorThrust)
	fmt.Fprintf(w, "lift\t%.1f N\n", s.Lift)
	fmt.Fprintf(w, "drag\t%.1f N\n", s.Drag)
	fmt.Fprintf(w, "gravity\t%.1f N\n", s.Gravity)
	fmt.Fprintf(w, "tip speed\t%.1f m/s\n", s.TipSpeed)
	fmt.Fprintf(w, "tip speed ratio\t%.2f\n", s.TipSpeedRatio)
	fmt.Fprintf(w, "stability\t%.0f/100\n", s.StabilityScore)
	fmt.Fprintf(w, "power\t%.0f W\n", s.PowerOutput)
	fmt.Fprintf(w, "disc alpha\t%.1f°\n", s.AngleOfAttack)
	fmt.Fprintf(w, "anchor tension\t%.1f N\n", s.Anchor.Tension)
	fmt.Fprintf(w, "anchor angle\t%.1f°\n", s.Anchor.Angle)
	if s.Spinning() {
		fmt.Fprintf(w, "blade adv/ret\t%.1f / %.1f m/s\n", s.Blades.AdvancingVelocity, s.Blades.RetreatingVelocity)
		fmt.Fprintf(w, "blade aoa adv/ret\t%.1f° / %.1f°\n", s.Blades.AdvancingAoA, s.Blades.RetreatingAoA)
		fmt.Fprintf(w, "advance ratio\t%.3f\n", s.Blades.AdvanceRatio)
		fmt.Fprintf(w, "reynolds (75%% span)\t%.2e\n", s.Blades.ReynoldsNumber)
	}
	return w.Flush()
}

func pickSeries(name string) (viz.Series, error) {
	switch name {
	case "thrust":
		return viz.DefaultSeries[0], nil
	case "rpm":
		return viz.DefaultSeries[1], nil
	case "lift":
		return viz.DefaultSeries[2], nil
	case "anchor":
		return viz.DefaultSeries[3], nil
	default:
		return viz.Series{}, fmt.Errorf("unknown series: %s (thrust|rpm|lift|anchor)", name)
	}
}

func runSweep(cmd *cobra.Command, args []string) error {
	design, err := resolveDesign(cmd)
	if err != nil {
		return err
	}

	param := "wind_speed"
	if len(args) > 0 {
		param = args[0]
	}

	ser, err := pickSeries(series)
	if err != nil {
		return err
	}

	r := sweep.Range{Param: param, From: sweepFrom, To: sweepTo, Step: sweepStep}
	points, err := sweep.Run(context.Background(), design, r)
	if err != nil {
		return err
	}

	fmt.Printf("sweep %s %g..%g step %g (%d points)\n\n", param, r.From, r.To, r.Step, len(points))
	fmt.Println(viz.Plot(points, ser, 80, 12))

	sum := sweep.Summary(points)
	fmt.Printf("\nmax generated thrust: %.1f N at %s=%g\n", sum["max_generated_thrust"], param, sum["best_input"])
	fmt.Printf("max anchor tension:   %.1f N\n", sum["max_anchor_tension"])

	if saveRun {
		st := storage.New(dataDir)
		if err := st.Init(); err != nil {
			return err
		}
		runID, err := st.Save(design, r, points)
		if err != nil {
			return err
		}
		fmt.Printf("\nsaved run: %s\n", runID)
	}
	return nil
}

func runList(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	runs, err := st.List()
	if err != nil {
		return err
	}
	if len(runs) == 0 {
		fmt.Println("no saved sweeps")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tTIME\tPARAM\tRANGE\tMAX THRUST")
	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%s\t%g..%g\t%.1f N\n",
			run.ID,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.Param,
			run.From, run.To,
			run.Summary["max_generated_thrust"],
		)
	}
	return w.Flush()
}

func runExport(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	meta, err := st.Load(args[0])
	if err != nil {
		return err
	}
	points, err := st.LoadPoints(args[0])
	if err != nil {
		return err
	}
	return storage.ExportJSONStdout(meta, points)
}

func runExportCSV(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	points, err := st.LoadPoints(args[0])
	if err != nil {
		return err
	}

	w := csv.NewWriter(os.Stdout)
	defer w.Flush()

	if err := w.Write([]string{"input", "rpm", "generated_thrust", "lift", "drag", "anchor_tension"}); err != nil {
		return err
	}
	for _, p := range points {
		row := []string{
			strconv.FormatFloat(p.Input, 'f', 6, 64),
			strconv.FormatFloat(p.State.RPM, 'f', 6, 64),
			strconv.FormatFloat(p.State.GeneratedThrust, 'f', 6, 64),
			strconv.FormatFloat(p.State.Lift, 'f', 6, 64),
			strconv.FormatFloat(p.State.Drag, 'f', 6, 64),
			strconv.FormatFloat(p.State.Anchor.Tension, 'f', 6, 64),
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	return nil
}

// parseAxis reads a grid axis spec of the form param=from:to:n.
func parseAxis(spec string) (string, []float64, error) {
	name, rng, ok := strings.Cut(spec, "=")
	if !ok {
		return "", nil, fmt.Errorf("bad axis %q, want param=from:to:n", spec)
	}
	parts := strings.Split(rng, ":")
	if len(parts) != 3 {
		return "", nil, fmt.Errorf("bad axis %q, want param=from:to:n", spec)
	}
	from, err := strconv.ParseFloat(parts[0], 64)
	if err != nil {
		return "", nil, fmt.Errorf("bad axis %q: %w", spec, err)
	}
	to, err := strconv.ParseFloat(parts[1], 64)
	if err != nil {
		return "", nil, fmt.Errorf("bad axis %q: %w", spec, err)
	}
	n, err := strconv.Atoi(parts[2])
	if err != nil {
		return "", nil, fmt.Errorf("bad axis %q: %w", spec, err)
	}
	return name, optim.Span(from, to, n), nil
}

func runOptimize(cmd *cobra.Command, args []string) error {
	design, err := resolveDesign(cmd)
	if err != nil {
		return err
	}

	names := make([]string, 0, len(args))
	ranges := make([][]float64, 0, len(args))
	for _, spec := range args {
		name, vals, err := parseAxis(spec)
		if err != nil {
			return err
		}
		names = append(names, name)
		ranges = append(ranges, vals)
	}

	g := optim.NewGridSearch(names, ranges)
	best, score, err := g.Search(context.Background(), design, optim.GeneratedThrust)
	if err != nil {
		return err
	}

	fmt.Printf("best generated thrust: %.1f N\n\n", score)
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	bestParams := best.Params()
	for _, name := range names {
		fmt.Fprintf(w, "%s\t%g\n", name, bestParams[name])
	}
	return w.Flush()
}
