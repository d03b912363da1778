package cli

import (
	"context"
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"

	"github.com/matzehuels/filmina/pkg/chart"
	"github.com/matzehuels/filmina/pkg/errors"
	"github.com/matzehuels/filmina/pkg/pipeline"
	"github.com/matzehuels/filmina/pkg/sink"
	"github.com/matzehuels/filmina/pkg/study"
)

// previewDebounce is how long a watched file must stay quiet before the
// preview is redrawn. Editors often write a file in several steps.
const previewDebounce = 300 * time.Millisecond

// previewCommand creates the preview command.
func (c *CLI) previewCommand() *cobra.Command {
	var (
		flags  chartFlags
		output string
		watch  bool
	)

	cmd := &cobra.Command{
		Use:   "preview <study.yaml>",
		Short: "Draw the live-edit preview of a chart",
		Long: `Draw a chart at its preview resolution (400×280 for the board, 800×600 for
the profile) from a study file.

With --watch the preview is redrawn every time the study file, or the board
given with --board, is saved. Press Ctrl+C to stop.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			flags.preview = true
			input := args[0]
			if output == "" {
				output = trimExt(input) + ".preview.png"
			}
			if !watch {
				return c.drawPreview(input, flags, output)
			}
			return c.watchPreview(cmd.Context(), input, flags, output)
		},
	}

	flags.register(cmd)
	cmd.Flags().StringVarP(&output, "output", "o", "", "output PNG (default: <study>.preview.png)")
	cmd.Flags().BoolVarP(&watch, "watch", "w", false, "redraw whenever the inputs change")

	return cmd
}

// drawPreview renders one preview frame. The cache is bypassed: previews
// are redrawn on every edit.
func (c *CLI) drawPreview(input string, flags chartFlags, output string) error {
	opts, err := c.chartPipelineOptions(flags)
	if err != nil {
		return err
	}
	if err := opts.ValidateForChart(); err != nil {
		return err
	}
	s, err := study.LoadFile(input)
	if err != nil {
		return err
	}
	ch, err := pipeline.BuildChart(s, opts)
	if err != nil {
		return err
	}
	data, err := sink.PNG(chart.RenderAt(ch, opts.Resolution()))
	if err != nil {
		return err
	}
	if err := writeFile(output, data); err != nil {
		return err
	}
	printSuccess("Preview drawn")
	printFile(output)
	return nil
}

// watchPreview redraws the preview until ctx is cancelled. Parent
// directories are watched, not the files, so editors that save by
// renaming a temporary file are still seen.
func (c *CLI) watchPreview(ctx context.Context, input string, flags chartFlags, output string) error {
	logger := loggerFromContext(ctx)

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "start file watcher")
	}
	defer watcher.Close()

	watched := map[string]bool{}
	for _, p := range []string{input, flags.board} {
		if p == "" {
			continue
		}
		abs, err := filepath.Abs(p)
		if err != nil {
			return errors.Wrap(errors.ErrCodeInvalidInput, err, "resolve %s", p)
		}
		watched[abs] = true
		if err := watcher.Add(filepath.Dir(abs)); err != nil {
			return errors.Wrap(errors.ErrCodeInternal, err, "watch %s", filepath.Dir(abs))
		}
	}

	redraw := func() {
		if err := c.drawPreview(input, flags, output); err != nil {
			printError("%s", errors.UserMessage(err))
		}
	}
	redraw()
	printInfo("Watching %s for changes (Ctrl+C to stop)", input)

	ticker := time.NewTicker(previewDebounce / 3)
	defer ticker.Stop()
	var pending time.Time

	for {
		select {
		case <-ctx.Done():
			printNewline()
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			abs, _ := filepath.Abs(event.Name)
			if !watched[abs] || event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			logger.Debug("input changed", "file", event.Name, "op", event.Op.String())
			pending = time.Now()
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logger.Warn("file watcher error", "error", err)
		case <-ticker.C:
			if pending.IsZero() || time.Since(pending) < previewDebounce {
				continue
			}
			pending = time.Time{}
			if _, err := os.Stat(input); err != nil {
				continue
			}
			redraw()
		}
	}
}

func trimExt(path string) string {
	return path[:len(path)-len(filepath.Ext(path))]
}
