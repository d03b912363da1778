package cli

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/matzehuels/filmina/pkg/errors"
	"github.com/matzehuels/filmina/pkg/study"
	"github.com/matzehuels/filmina/pkg/studystore"
)

// studyCommand creates the study management command.
func (c *CLI) studyCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "study",
		Short: "Manage the local study store",
		Long: `Manage studies in the local store.

The store is a single JSON document or a SQLite database, selected with
--store or the config file. A new store starts with a sample study.`,
	}

	cmd.AddCommand(c.studyListCommand())
	cmd.AddCommand(c.studyShowCommand())
	cmd.AddCommand(c.studyCreateCommand())
	cmd.AddCommand(c.studyImportCommand())
	cmd.AddCommand(c.studyExportCommand())
	cmd.AddCommand(c.studyDuplicateCommand())
	cmd.AddCommand(c.studyDeleteCommand())
	cmd.AddCommand(c.studyMoveCommand())

	return cmd
}

// withStore opens the store for the duration of fn.
func (c *CLI) withStore(fn func(studystore.Store) error) error {
	store, err := c.openStore()
	if err != nil {
		return err
	}
	defer store.Close()
	return fn(store)
}

func (c *CLI) studyListCommand() *cobra.Command {
	return &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List stored studies, oldest first",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.withStore(func(store studystore.Store) error {
				list, err := store.List(cmd.Context())
				if err != nil {
					return err
				}
				if len(list) == 0 {
					printInfo("No studies stored")
					printNextStep("Create one", appName+" study create --title \"...\"")
					return nil
				}
				fmt.Fprintln(cmd.OutOrStdout(), studyTable(list, -1, time.Now()).Render())
				return nil
			})
		},
	}
}

func (c *CLI) studyShowCommand() *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:               "show <id|file>",
		Short:             "Print a study",
		Args:              cobra.ExactArgs(1),
		ValidArgsFunction: c.completeStudies,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := c.resolveStudy(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			if format == "summary" {
				printStudySummary(s)
				return nil
			}
			return study.Encode(cmd.OutOrStdout(), s, study.Format(format))
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", "summary", "output format: summary, yaml, json")
	return cmd
}

func printStudySummary(s *study.Study) {
	fmt.Fprintln(uiOut, StyleTitle.Render(s.Title))
	printKeyValue("id", s.ID)
	if place := joinPlace(s.Municipality, s.State); place != "" {
		printKeyValue("place", place)
	}
	printKeyValue("archetype", fmt.Sprintf("%s (%s)", s.Archetype, s.ArchetypeUncertainty.Label()))
	printKeyValue("positive", strconv.Itoa(len(s.PositivePoints))+" points")
	printKeyValue("negative", strconv.Itoa(len(s.NegativePoints))+" points")
	printKeyValue("universe", study.Quantity(float64(s.DigitalUniverse)))
	for i, cand := range s.Candidates {
		printKeyValue(fmt.Sprintf("candidate %d", i+1), fmt.Sprintf("%s · %s", cand.Name, StyleHighlight.Render(cand.Party)))
	}
	printKeyValue("block A", strconv.Itoa(len(s.BlockA))+" parties")
	printKeyValue("block B", strconv.Itoa(len(s.BlockB))+" segments")
	printKeyValue("updated", s.UpdatedAt.Local().Format(time.DateTime))
}

func joinPlace(municipality, state string) string {
	switch {
	case municipality == "":
		return state
	case state == "":
		return municipality
	}
	return municipality + ", " + state
}

func (c *CLI) studyCreateCommand() *cobra.Command {
	var (
		title string
		from  string
	)

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a study, empty or from a file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var s *study.Study
			switch {
			case from != "":
				loaded, err := study.LoadFile(from)
				if err != nil {
					return err
				}
				s = loaded
				if title != "" {
					s.Title = title
				}
			case title != "":
				s = study.New(title)
			default:
				return errors.New(errors.ErrCodeInvalidInput, "give --title or --from")
			}
			c.Config.ApplyPlace(&s.Municipality, &s.State)
			return c.createStudies(cmd.Context(), s)
		},
	}

	cmd.Flags().StringVar(&title, "title", "", "study title")
	cmd.Flags().StringVar(&from, "from", "", "YAML/JSON study file to start from")
	return cmd
}

func (c *CLI) studyImportCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "import <file>...",
		Short: "Add study files to the store",
		Long: `Add one or more YAML/JSON study files to the store. Every imported study gets
a fresh id; ids and timestamps in the files are ignored.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			list := make([]*study.Study, 0, len(args))
			for _, path := range args {
				s, err := study.LoadFile(path)
				if err != nil {
					return err
				}
				list = append(list, s)
			}
			return c.createStudies(cmd.Context(), list...)
		},
	}
}

func (c *CLI) createStudies(ctx context.Context, list ...*study.Study) error {
	return c.withStore(func(store studystore.Store) error {
		for _, s := range list {
			created, err := store.Create(ctx, s)
			if err != nil {
				return err
			}
			printSuccess("Created %q", created.Title)
			printDetail("%s", created.ID)
		}
		return nil
	})
}

func (c *CLI) studyExportCommand() *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:               "export <id>",
		Short:             "Write a stored study to a file",
		Args:              cobra.ExactArgs(1),
		ValidArgsFunction: c.completeStudies,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := c.resolveStudy(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			if output == "" {
				output = slug(s.Title) + ".yaml"
			}
			if err := study.SaveFile(output, s); err != nil {
				return err
			}
			printSuccess("Exported %q", s.Title)
			printFile(output)
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file, .yaml or .json (default: <title>.yaml)")
	return cmd
}

func (c *CLI) studyDuplicateCommand() *cobra.Command {
	return &cobra.Command{
		Use:               "duplicate <id>",
		Short:             "Copy a study under a new id",
		Args:              cobra.ExactArgs(1),
		ValidArgsFunction: c.completeStudies,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.withStore(func(store studystore.Store) error {
				dup, err := store.Duplicate(cmd.Context(), args[0])
				if err != nil {
					return err
				}
				printSuccess("Created %q", dup.Title)
				printDetail("%s", dup.ID)
				return nil
			})
		},
	}
}

func (c *CLI) studyDeleteCommand() *cobra.Command {
	return &cobra.Command{
		Use:     "delete <id>...",
		Aliases: []string{"rm"},
		Short:   "Remove studies from the store",
		Args:    cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.withStore(func(store studystore.Store) error {
				for _, id := range args {
					if err := store.Delete(cmd.Context(), id); err != nil {
						return err
					}
					printSuccess("Deleted %s", id)
				}
				return nil
			})
		},
	}
}

func (c *CLI) studyMoveCommand() *cobra.Command {
	var down bool

	cmd := &cobra.Command{
		Use:   "move <id> <candidate-id>",
		Short: "Move a candidate one place up (or down) in the study",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			return c.withStore(func(store studystore.Store) error {
				s, err := store.Get(ctx, args[0])
				if err != nil {
					return err
				}
				var moved bool
				if down {
					moved = s.MoveCandidateDown(args[1])
				} else {
					moved = s.MoveCandidateUp(args[1])
				}
				if !moved {
					printInfo("Candidate %s was not moved", args[1])
					return nil
				}
				if _, err := store.Update(ctx, s); err != nil {
					return err
				}
				for i, cand := range s.Candidates {
					printKeyValue(strconv.Itoa(i+1), cand.Name)
				}
				return nil
			})
		},
	}

	cmd.Flags().BoolVar(&down, "down", false, "move towards the end instead")
	return cmd
}

// isFile reports whether ref names an existing file.
func isFile(ref string) bool {
	info, err := os.Stat(ref)
	return err == nil && !info.IsDir()
}
