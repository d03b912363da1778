package cli

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/filmina/pkg/chart"
	"github.com/matzehuels/filmina/pkg/errors"
	"github.com/matzehuels/filmina/pkg/pipeline"
	"github.com/matzehuels/filmina/pkg/sink"
	"github.com/matzehuels/filmina/pkg/surface"
)

// composeCommand creates the compose command.
func (c *CLI) composeCommand() *cobra.Command {
	var (
		flags      chartFlags
		kinds      []string
		output     string
		scene      string
		width      int
		height     int
		multiplier float64
	)

	cmd := &cobra.Command{
		Use:   "compose [study]",
		Short: "Insert charts into a drawing surface and flatten it",
		Long: `Insert charts into an empty drawing surface the way the editor does, then
flatten the surface to a PNG.

Each chart is rendered at its export resolution and placed with its own
placement rule; the profile chart also adds its text annotations. Inserting
a kind that is already on the surface replaces it in place.`,
		Args:              cobra.MaximumNArgs(1),
		ValidArgsFunction: c.completeStudies,
		RunE: func(cmd *cobra.Command, args []string) error {
			if multiplier <= 0 {
				return errors.New(errors.ErrCodeInvalidInput, "--multiplier must be positive")
			}
			return c.runCompose(cmd.Context(), argOr(args, ""), flags, kinds, composeOutput{
				png: output, scene: scene, width: width, height: height, multiplier: multiplier,
			})
		},
	}

	cmd.Flags().StringVar(&flags.board, "board", "", "edited board JSON replacing the study projection")
	cmd.Flags().StringVar(&flags.template, "template", "", "YAML template for ungrouped segments")
	cmd.Flags().StringVar(&flags.date, "date", "", "profile date, YYYY-MM-DD")
	cmd.Flags().StringSliceVar(&kinds, "insert", []string{"microsegmentation", "profile"}, "charts to insert, in order")
	_ = cmd.RegisterFlagCompletionFunc("insert", completeKinds)
	cmd.Flags().StringVarP(&output, "output", "o", "", "output PNG (default: <study>-surface.png)")
	cmd.Flags().StringVar(&scene, "scene", "", "also write the surface scene graph as JSON")
	cmd.Flags().IntVar(&width, "width", surface.DefaultWidth, "surface width")
	cmd.Flags().IntVar(&height, "height", surface.DefaultHeight, "surface height")
	cmd.Flags().Float64Var(&multiplier, "multiplier", 1, "raster scale of the flattened surface")

	return cmd
}

type composeOutput struct {
	png, scene    string
	width, height int
	multiplier    float64
}

func (c *CLI) runCompose(ctx context.Context, ref string, flags chartFlags, kinds []string, out composeOutput) error {
	s, err := c.resolveStudy(ctx, ref)
	if err != nil {
		return err
	}
	s = c.applyPlace(s)

	prog := newProgress(loggerFromContext(ctx))
	surf := surface.New(out.width, out.height)
	comp := chart.NewCompositor(c.Logger)

	sp := startSpinner(ctx, "Composing...")
	sp.follow(func() string {
		if comp.InFlight() {
			return "decoding raster"
		}
		return ""
	})
	inserted := make([]chart.Inserted, 0, len(kinds))
	for i, name := range kinds {
		flags.kind = name
		opts, err := c.chartPipelineOptions(flags)
		if err != nil {
			sp.stop()
			return err
		}
		sp.setLabel("Inserting %s chart (%d/%d)", opts.Kind.Short(), i+1, len(kinds))
		ch, err := pipeline.BuildChart(s, opts)
		if err != nil {
			sp.fail("Compose failed")
			return err
		}

		// A kind inserted twice is reopened from the payload on the surface.
		sess := chart.NewSession(comp, surf)
		if err := sess.Reopen(opts.Kind, ch); err != nil {
			sp.fail("Compose failed")
			return err
		}
		ins, err := sess.Insert(ctx)
		if err != nil {
			sp.fail(fmt.Sprintf("Inserting the %s chart failed", opts.Kind.Short()))
			return err
		}
		prog.step(opts.Kind.Short())
		inserted = append(inserted, ins)
	}
	sp.stop()

	for _, ins := range inserted {
		verb := "Inserted"
		if ins.Replaced {
			verb = "Replaced"
		}
		printSuccess("%s %s chart", verb, ins.Kind.Short())
		printDetail("at %.0f,%.0f scale %.3f", ins.Placement.Left, ins.Placement.Top, ins.Placement.ScaleX)
	}
	prog.done(fmt.Sprintf("Composed %d objects", surf.Len()))

	path := out.png
	if path == "" {
		path = slug(s.Title) + "-surface.png"
	}
	data, err := sink.PNG(surf.RenderScaled(out.multiplier))
	if err != nil {
		return err
	}
	if err := writeFile(path, data); err != nil {
		return err
	}
	printFile(path)

	if out.scene != "" {
		doc, err := json.MarshalIndent(surf, "", "  ")
		if err != nil {
			return errors.Wrap(errors.ErrCodeInternal, err, "encode scene")
		}
		if err := writeFile(out.scene, doc); err != nil {
			return err
		}
		printFile(out.scene)
	}
	return nil
}
