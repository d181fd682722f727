package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/glyphsign/glyphsign/pkg/planner"
	"github.com/glyphsign/glyphsign/pkg/render"
	"github.com/glyphsign/glyphsign/pkg/segmentgraph"
)

// graphCommand creates the graph command for building and exporting
// segment connectivity graphs.
func (c *CLI) graphCommand() *cobra.Command {
	var (
		output     string
		format     string
		noCache    bool
		refresh    bool
		threshold  float64
		detailed   bool
		positioned bool
	)

	cmd := &cobra.Command{
		Use:   "graph [project.json]",
		Short: "Build the segment connectivity graph from a project layout",
		Long: `Build the segment connectivity graph from a project layout.

The graph command loads a project file, connects segments whose endpoints
coincide, and reports connectivity statistics. With --output the graph is
exported as a Graphviz diagram (dot, svg, or png) for layout debugging.

Results are cached locally for faster subsequent runs.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runGraph(cmd.Context(), args[0], graphOptions{
				output:     output,
				format:     format,
				noCache:    noCache,
				refresh:    refresh,
				threshold:  threshold,
				detailed:   detailed,
				positioned: positioned,
			})
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "diagram output file (default: no export)")
	cmd.Flags().StringVarP(&format, "format", "f", "", "diagram format: dot, svg, png (default: from output extension)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")
	cmd.Flags().BoolVar(&refresh, "refresh", false, "rebuild even when cached")
	cmd.Flags().Float64Var(&threshold, "threshold", 0,
		fmt.Sprintf("endpoint connection tolerance (default %g)", segmentgraph.DefaultConnectionThreshold))
	cmd.Flags().BoolVar(&detailed, "detailed", false, "include kind and tile in diagram labels")
	cmd.Flags().BoolVar(&positioned, "positioned", false, "pin diagram nodes to world coordinates")

	return cmd
}

type graphOptions struct {
	output     string
	format     string
	noCache    bool
	refresh    bool
	threshold  float64
	detailed   bool
	positioned bool
}

func (c *CLI) runGraph(ctx context.Context, input string, gopts graphOptions) error {
	runner, err := c.newRunner(ctx, gopts.noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	opts := planner.Options{
		ProjectPath:         input,
		ConnectionThreshold: gopts.threshold,
		Refresh:             gopts.refresh,
		Logger:              c.Logger,
	}

	spinner := newSpinnerWithContext(ctx, "Building segment graph...")
	spinner.Start()
	result, err := runner.Execute(ctx, opts)
	if err != nil {
		spinner.StopWithError("Graph failed")
		return fmt.Errorf("build graph: %w", err)
	}
	spinner.Stop()
	if ctx.Err() != nil {
		return ctx.Err()
	}

	printSuccess("Graph complete")
	printStats(result.Stats.SegmentCount, result.Stats.EdgeCount, result.CacheInfo.GraphHit)

	isolated := result.Stats.SegmentCount - len(result.Graph.IDs())
	if isolated > 0 {
		printWarning("%d segments have no connections", isolated)
	}

	if gopts.output == "" {
		return nil
	}
	return c.exportGraph(ctx, result, gopts)
}

func (c *CLI) exportGraph(ctx context.Context, result *planner.Result, gopts graphOptions) error {
	prog := newProgress(loggerFromContext(ctx))
	dot := render.ToDOT(result.Project.Grid, result.Graph, render.Options{
		Detailed:   gopts.detailed,
		Positioned: gopts.positioned,
	})

	format := gopts.format
	if format == "" {
		format = strings.TrimPrefix(filepath.Ext(gopts.output), ".")
	}

	var data []byte
	var err error
	switch format {
	case "dot":
		data = []byte(dot)
	case "svg":
		data, err = render.RenderSVG(ctx, dot)
	case "png":
		data, err = render.RenderPNG(ctx, dot)
	default:
		return fmt.Errorf("unknown diagram format %q (want dot, svg, or png)", format)
	}
	if err != nil {
		return fmt.Errorf("render %s: %w", format, err)
	}

	if err := os.WriteFile(gopts.output, data, 0o644); err != nil {
		return fmt.Errorf("write output %s: %w", gopts.output, err)
	}
	prog.done("exported " + format + " diagram")
	printFile(gopts.output)
	return nil
}
