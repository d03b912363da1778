package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/matzehuels/filmina/pkg/chart"
	"github.com/matzehuels/filmina/pkg/pipeline"
)

// chartFlags are the flags shared by the chart-rendering commands.
type chartFlags struct {
	kind     string
	preview  bool
	board    string
	template string
	date     string
}

func (f *chartFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&f.kind, "kind", "k", pipeline.DefaultKind.Short(), "chart kind: microsegmentation, profile")
	cmd.Flags().BoolVar(&f.preview, "preview", false, "render at the preview resolution")
	cmd.Flags().StringVar(&f.board, "board", "", "edited board JSON replacing the study projection (microsegmentation)")
	cmd.Flags().StringVar(&f.template, "template", "", "YAML template for ungrouped segments (microsegmentation)")
	cmd.Flags().StringVar(&f.date, "date", "", "profile date, YYYY-MM-DD")
	_ = cmd.RegisterFlagCompletionFunc("kind", completeKinds)
}

// chartPipelineOptions builds pipeline options from the flags.
func (c *CLI) chartPipelineOptions(f chartFlags) (pipeline.Options, error) {
	kind, err := chart.ParseKind(f.kind)
	if err != nil {
		return pipeline.Options{}, err
	}
	date, err := parseDate(f.date)
	if err != nil {
		return pipeline.Options{}, err
	}
	opts := pipeline.Options{Kind: kind, Preview: f.preview, Date: date}
	if err := c.chartOptions(&opts, f.board, f.template); err != nil {
		return pipeline.Options{}, err
	}
	return opts, nil
}

// chartCommand creates the chart command.
func (c *CLI) chartCommand() *cobra.Command {
	var (
		flags     chartFlags
		output    string
		formatStr string
		noCache   bool
		refresh   bool
	)

	cmd := &cobra.Command{
		Use:   "chart [study]",
		Short: "Render a study chart to PNG, SVG or a JSON layout",
		Long: `Render one chart of a study.

The study is a YAML/JSON file or the id of a stored study; without one the
oldest stored study is used. The microsegmentation board is seeded from the
study's Block A and Block B tables unless --board supplies an edited board.

Rendered artifacts are cached locally for faster subsequent runs.`,
		Args:              cobra.MaximumNArgs(1),
		ValidArgsFunction: c.completeStudies,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := c.chartPipelineOptions(flags)
			if err != nil {
				return err
			}
			opts.Formats = parseFormats(formatStr, pipeline.FormatPNG)
			opts.Refresh = refresh
			return c.runChart(cmd.Context(), argOr(args, ""), opts, output, noCache)
		},
	}

	flags.register(cmd)
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (single format) or base path (multiple)")
	cmd.Flags().StringVarP(&formatStr, "format", "f", "", "output format(s): png (default), svg, json (comma-separated)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")
	cmd.Flags().BoolVar(&refresh, "refresh", false, "re-render even when cached")

	return cmd
}

func (c *CLI) runChart(ctx context.Context, ref string, opts pipeline.Options, output string, noCache bool) error {
	s, err := c.resolveStudy(ctx, ref)
	if err != nil {
		return err
	}

	runner, err := c.newRunner(noCache)
	if err != nil {
		return err
	}
	defer runner.Close()

	sp := startSpinner(ctx, fmt.Sprintf("Rendering %s chart...", opts.Kind.Short()))
	result, err := runner.RenderChart(ctx, s, opts)
	if err != nil {
		sp.fail("Render failed")
		return err
	}
	sp.stop()
	if sp.cancelled() {
		return ctx.Err()
	}

	base := basePath(output, slug(s.Title)+"-"+result.Kind.Short())
	printSuccess("Rendered %s chart", result.Kind.Short())
	for _, format := range opts.Formats {
		path := base + "." + format
		if output != "" && len(opts.Formats) == 1 {
			path = output
		}
		if err := writeFile(path, result.Artifacts[format]); err != nil {
			return err
		}
		printFile(path)
	}
	printStats(result.Stats.Segments, len(result.Unplaced), result.CacheInfo.RenderHit)
	for _, name := range result.Unplaced {
		printWarning("segment %q has no slot in the template and was not drawn", name)
	}
	for _, party := range result.Skipped {
		printWarning("block A party %q is blank or repeated and was left out", party)
	}
	return nil
}

// layoutCommand creates the layout command.
func (c *CLI) layoutCommand() *cobra.Command {
	var (
		flags  chartFlags
		output string
	)

	cmd := &cobra.Command{
		Use:   "layout [study]",
		Short: "Print the computed chart geometry as JSON",
		Long: `Compute a chart layout and print it as JSON.

The document carries the chart kind, the resolution it was computed at, every
segment region and the payload attached when the chart is inserted. It is the
same document 'chart -f json' writes.`,
		Args:              cobra.MaximumNArgs(1),
		ValidArgsFunction: c.completeStudies,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := c.chartPipelineOptions(flags)
			if err != nil {
				return err
			}
			return c.runLayout(cmd.Context(), argOr(args, ""), opts, output)
		},
	}

	flags.register(cmd)
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default: stdout)")

	return cmd
}

func (c *CLI) runLayout(ctx context.Context, ref string, opts pipeline.Options, output string) error {
	if err := opts.ValidateForChart(); err != nil {
		return err
	}
	s, err := c.resolveStudy(ctx, ref)
	if err != nil {
		return err
	}
	ch, err := pipeline.BuildChart(s, opts)
	if err != nil {
		return err
	}
	doc, err := pipeline.ComputeLayout(ch, opts.Resolution())
	if err != nil {
		return err
	}
	data, err := pipeline.MarshalLayout(doc)
	if err != nil {
		return err
	}

	if output == "" {
		_, err := os.Stdout.Write(append(data, '\n'))
		return err
	}
	if err := writeFile(output, data); err != nil {
		return err
	}
	printSuccess("Layout complete")
	printFile(output)
	printNextStep("Render", "filmina chart -k "+opts.Kind.Short())
	return nil
}

func argOr(args []string, fallback string) string {
	if len(args) > 0 {
		return args[0]
	}
	return fallback
}
