package cli

import (
	"context"
	"fmt"
	"slices"

	"github.com/spf13/cobra"

	"github.com/matzehuels/filmina/pkg/pipeline"
	"github.com/matzehuels/filmina/pkg/slides"
)

// deckCommand creates the deck command.
func (c *CLI) deckCommand() *cobra.Command {
	var (
		opts      pipeline.Options
		output    string
		formatStr string
		dateStr   string
		noCache   bool
	)

	cmd := &cobra.Command{
		Use:   "deck [study]",
		Short: "Export a study as a 1280×720 slide deck",
		Long: `Draw the slides of a study and assemble them into a PDF, one page per
slide. With -f png every slide is also written as its own image.

Slides: ` + fmt.Sprint(slides.Names()) + `

Without --slides or --all the deck from the config file is used, falling back
to the archetype, adjectives and profiling slides.`,
		Args:              cobra.MaximumNArgs(1),
		ValidArgsFunction: c.completeStudies,
		RunE: func(cmd *cobra.Command, args []string) error {
			date, err := parseDate(dateStr)
			if err != nil {
				return err
			}
			opts.Date = date
			opts.Formats = parseFormats(formatStr, pipeline.FormatPDF)
			if len(opts.Slides) == 0 && !opts.All {
				opts.Slides = slices.Clone(c.Config.Deck.Slides)
			}
			return c.runDeck(cmd.Context(), argOr(args, ""), opts, output, noCache)
		},
	}

	cmd.Flags().StringSliceVar(&opts.Slides, "slides", nil, "slides to include, in order")
	_ = cmd.RegisterFlagCompletionFunc("slides", completeSlides)
	cmd.Flags().BoolVar(&opts.All, "all", false, "include every slide")
	cmd.Flags().StringVarP(&formatStr, "format", "f", "", "output format(s): pdf (default), png (comma-separated)")
	cmd.Flags().StringVarP(&output, "output", "o", "", "output base path (default: <study>)")
	cmd.Flags().StringVar(&dateStr, "date", "", "date printed on the slides, YYYY-MM-DD (default: today)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")
	cmd.Flags().BoolVar(&opts.Refresh, "refresh", false, "re-render even when cached")

	return cmd
}

func (c *CLI) runDeck(ctx context.Context, ref string, opts pipeline.Options, output string, noCache bool) error {
	s, err := c.resolveStudy(ctx, ref)
	if err != nil {
		return err
	}
	s = c.applyPlace(s)
	opts.Logger = c.Logger

	runner, err := c.newRunner(noCache)
	if err != nil {
		return err
	}
	defer runner.Close()

	sp := startSpinner(ctx, fmt.Sprintf("Drawing %s...", deckLabel(opts)))
	result, err := runner.RenderDeck(ctx, s, opts)
	if err != nil {
		sp.fail("Deck export failed")
		return err
	}
	sp.stop()
	if sp.cancelled() {
		return ctx.Err()
	}

	base := basePath(output, slug(s.Title))
	printSuccess("Exported %d slides", len(result.Slides))
	if result.PDF != nil {
		path := base + ".pdf"
		if err := writeFile(path, result.PDF); err != nil {
			return err
		}
		printFile(path)
	}
	for i, page := range result.Pages {
		path := fmt.Sprintf("%s-%02d-%s.png", base, i+1, result.Slides[i])
		if err := writeFile(path, page); err != nil {
			return err
		}
		printFile(path)
	}
	printDetail("%s", result.Stats.String())
	if result.CacheInfo.RenderHit {
		printDetail("served from cache")
	}
	return nil
}

// deckLabel names what a deck run draws, for the status line.
func deckLabel(opts pipeline.Options) string {
	switch {
	case opts.All:
		return fmt.Sprintf("all %d slides", len(slides.Names()))
	case len(opts.Slides) == 1:
		return "the " + opts.Slides[0] + " slide"
	case len(opts.Slides) > 1:
		return fmt.Sprintf("%d slides", len(opts.Slides))
	}
	return "the default slides"
}
