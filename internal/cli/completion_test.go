package cli

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/spf13/cobra"

	"github.com/matzehuels/filmina/pkg/study"
)

func TestCompleteStudies(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	ctx := context.Background()
	c := newStoreCLI(t)
	if err := c.createStudies(ctx, study.New("Segundo")); err != nil {
		t.Fatal(err)
	}
	cmd := &cobra.Command{}
	cmd.SetContext(ctx)

	got, directive := c.completeStudies(cmd, nil, "")
	if directive != cobra.ShellCompDirectiveDefault {
		t.Errorf("directive = %v, want default so files still complete", directive)
	}
	var titles []string
	for _, g := range got {
		id, title, ok := strings.Cut(g, "\t")
		if !ok || !strings.HasPrefix(id, "study_") {
			t.Errorf("completion %q is not <id>\\t<title>", g)
		}
		titles = append(titles, title)
	}
	if diff := cmp.Diff([]string{study.Sample().Title, "Segundo"}, titles); diff != "" {
		t.Errorf("completed titles mismatch (-want +got):\n%s", diff)
	}

	if got, _ := c.completeStudies(cmd, nil, "nope"); len(got) != 0 {
		t.Errorf("prefix filter kept %v", got)
	}
	if got, _ := c.completeStudies(cmd, []string{"study_x"}, ""); got != nil {
		t.Errorf("second argument completed to %v", got)
	}
}

func TestCompletionScripts(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	for _, shell := range []string{"bash", "zsh", "fish", "powershell"} {
		t.Run(shell, func(t *testing.T) {
			root := newStoreCLI(t).RootCommand()
			var out bytes.Buffer
			root.SetOut(&out)
			root.SetArgs([]string{"completion", shell})
			if err := root.Execute(); err != nil {
				t.Fatalf("completion %s: %v", shell, err)
			}
			if !strings.Contains(out.String(), "filmina") {
				t.Errorf("%s script does not mention filmina", shell)
			}
		})
	}
}
