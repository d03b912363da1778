package cli

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/filmina/pkg/chart"
	"github.com/matzehuels/filmina/pkg/slides"
)

// completionCommand prints shell completion scripts. Study arguments
// complete to stored ids, titled where the shell shows descriptions.
func (c *CLI) completionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "completion bash|zsh|fish|powershell",
		Short: "Generate shell completion scripts",
		Long: `Print a completion script for your shell.

  bash:        source <(filmina completion bash)
  zsh:         filmina completion zsh > "${fpath[1]}/_filmina"
  fish:        filmina completion fish > ~/.config/fish/completions/filmina.fish
  powershell:  filmina completion powershell | Out-String | Invoke-Expression

Study ids are completed from the store selected by --store and --store-path.`,
		DisableFlagsInUseLine: true,
		ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
		Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			out, root := cmd.OutOrStdout(), cmd.Root()
			switch args[0] {
			case "bash":
				return root.GenBashCompletionV2(out, true)
			case "zsh":
				return root.GenZshCompletion(out)
			case "fish":
				return root.GenFishCompletion(out, true)
			default:
				return root.GenPowerShellCompletionWithDesc(out)
			}
		},
	}
}

// completeStudies completes the first argument to stored study ids. Files
// are still offered by the shell.
func (c *CLI) completeStudies(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	if len(args) > 0 {
		return nil, cobra.ShellCompDirectiveDefault
	}
	if err := c.loadConfig(); err != nil {
		return nil, cobra.ShellCompDirectiveDefault
	}
	store, err := c.openStore()
	if err != nil {
		return nil, cobra.ShellCompDirectiveDefault
	}
	defer store.Close()
	list, err := store.List(cmd.Context())
	if err != nil {
		return nil, cobra.ShellCompDirectiveDefault
	}

	var out []string
	for _, s := range list {
		if strings.HasPrefix(s.ID, toComplete) {
			out = append(out, s.ID+"\t"+s.Title)
		}
	}
	return out, cobra.ShellCompDirectiveDefault
}

// completeKinds completes --kind and --insert values.
func completeKinds(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	out := make([]string, len(chart.Kinds))
	for i, k := range chart.Kinds {
		out[i] = k.Short()
	}
	return out, cobra.ShellCompDirectiveNoFileComp
}

// completeSlides completes --slides values.
func completeSlides(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	return slides.Names(), cobra.ShellCompDirectiveNoFileComp
}
