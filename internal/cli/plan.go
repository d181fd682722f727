package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/glyphsign/glyphsign/pkg/config"
	"github.com/glyphsign/glyphsign/pkg/planner"
	"github.com/glyphsign/glyphsign/pkg/transition"
)

// planCommand creates the plan command for generating transition
// plans.
func (c *CLI) planCommand() *cobra.Command {
	var (
		output     string
		configPath string
		glyph      string
		kindName   string
		current    []string
		target     []string
		seed       uint64
		steps      int
		frameMS    int64
		wandering  float64
		density    float64
		noCache    bool
		refresh    bool
	)

	cmd := &cobra.Command{
		Use:   "plan [project.json]",
		Short: "Generate a transition plan between glyphs",
		Long: `Generate a transition plan between glyphs.

The plan command loads a project file and produces the step sequence that
moves the display from the current lit set to a target glyph. The output
is a plan.json file that 'play' can replay.

Plans are cached by layout, target, and every generation input, so
repeating a run is free. Use --seed to pick a specific random variation.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			fileCfg, err := config.Load(configPath)
			if err != nil {
				return err
			}

			kind, err := resolveKind(kindName, fileCfg)
			if err != nil {
				return err
			}

			base := fileCfg.Transition
			if cmd.Flags().Changed("steps") {
				base.Steps = steps
			}
			if cmd.Flags().Changed("frame-ms") {
				base.FrameMS = frameMS
			}
			if cmd.Flags().Changed("wandering") {
				base.Wandering = &wandering
			}
			if cmd.Flags().Changed("density") {
				base.Density = &density
			}
			engineCfg, err := base.Engine()
			if err != nil {
				return err
			}

			return c.runPlan(cmd.Context(), planner.Options{
				ProjectPath: args[0],
				Glyph:       glyph,
				Target:      target,
				Current:     current,
				Kind:        kind,
				Config:      engineCfg,
				Seed:        seed,
				Refresh:     refresh,
				Logger:      c.Logger,
			}, output, noCache)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default: <input>.plan.json)")
	cmd.Flags().StringVar(&configPath, "config", defaultConfigPath(), "TOML config file with transition defaults")
	cmd.Flags().StringVarP(&glyph, "glyph", "g", "", "target glyph name from the project")
	cmd.Flags().StringSliceVar(&target, "target", nil, "explicit target segment IDs (when --glyph is not set)")
	cmd.Flags().StringSliceVar(&current, "current", nil, "currently lit segment IDs (default: dark display)")
	cmd.Flags().StringVarP(&kindName, "kind", "k", "", "transition kind: "+strings.Join(transition.KindNames(), ", "))
	cmd.Flags().Uint64Var(&seed, "seed", 0, "random seed for plan generation")
	cmd.Flags().IntVar(&steps, "steps", transition.DefaultSteps, "target step count for randomized plans")
	cmd.Flags().Int64Var(&frameMS, "frame-ms", transition.DefaultFrameDuration.Milliseconds(), "playback interval between steps in milliseconds")
	cmd.Flags().Float64Var(&wandering, "wandering", transition.DefaultWandering, "acceptance probability per random draw, 0 to 1")
	cmd.Flags().Float64Var(&density, "density", transition.DefaultDensity, "fraction of pending changes per step, 0 to 1")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")
	cmd.Flags().BoolVar(&refresh, "refresh", false, "regenerate even when cached")

	return cmd
}

// runPlan executes the planner and writes the plan file.
func (c *CLI) runPlan(ctx context.Context, opts planner.Options, output string, noCache bool) error {
	runner, err := c.newRunner(ctx, noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	spinner := newSpinnerWithContext(ctx, fmt.Sprintf("Generating %s plan...", opts.Kind))
	spinner.Start()
	result, err := runner.Execute(ctx, opts)
	if err != nil {
		spinner.StopWithError("Plan failed")
		return err
	}
	spinner.Stop()
	if ctx.Err() != nil {
		return ctx.Err()
	}

	outputPath := output
	if outputPath == "" {
		base := strings.TrimSuffix(opts.ProjectPath, filepath.Ext(opts.ProjectPath))
		outputPath = base + ".plan.json"
	}

	file := &transition.PlanFile{
		Kind:          opts.Kind,
		FrameDuration: opts.Config.FrameDuration.Milliseconds(),
		Plan:          result.Plan,
	}
	if err := transition.WritePlanFile(file, outputPath); err != nil {
		return fmt.Errorf("write output %s: %w", outputPath, err)
	}

	printSuccess("Plan complete")
	printFile(outputPath)
	printDetail("%s, %d steps, %d changes", opts.Kind, result.Stats.StepCount, result.Stats.ChangeCount)
	printStats(result.Stats.SegmentCount, result.Stats.EdgeCount, result.CacheInfo.PlanHit)
	printNewline()
	printNextStep("Replay", fmt.Sprintf("glyphsign play %s --plan %s", opts.ProjectPath, outputPath))

	return nil
}

// resolveKind picks the transition kind from the flag or the config
// file default.
func resolveKind(name string, cfg *config.Config) (transition.Kind, error) {
	if name == "" {
		return cfg.Display.Kind()
	}
	for _, known := range transition.KindNames() {
		if known == name {
			return transition.ParseKind(name), nil
		}
	}
	return 0, fmt.Errorf("unknown transition kind %q (want one of %s)",
		name, strings.Join(transition.KindNames(), ", "))
}

// defaultConfigPath returns the XDG config file location
// (~/.config/glyphsign/config.toml). Load treats a missing file as
// defaults, so this path is always safe to pass.
func defaultConfigPath() string {
	if configHome := os.Getenv("XDG_CONFIG_HOME"); configHome != "" {
		return filepath.Join(configHome, appName, "config.toml")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", appName, "config.toml")
}
