package cli

import (
	"bytes"
	"context"
	"regexp"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
)

func TestNewLoggerLevels(t *testing.T) {
	tests := []struct {
		name    string
		level   log.Level
		logFunc func(*log.Logger)
		wantLog bool
	}{
		{
			name:    "warning at info level",
			level:   LogInfo,
			logFunc: func(l *log.Logger) { l.Warn("block A row left out of the board", "party", "") },
			wantLog: true,
		},
		{
			name:    "stage timing hidden without -v",
			level:   LogInfo,
			logFunc: func(l *log.Logger) { l.Debug("stage done", "stage", "profile") },
			wantLog: false,
		},
		{
			name:    "stage timing shown with -v",
			level:   LogDebug,
			logFunc: func(l *log.Logger) { l.Debug("stage done", "stage", "profile") },
			wantLog: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			tt.logFunc(newLogger(&buf, tt.level))
			if got := buf.Len() > 0; got != tt.wantLog {
				t.Errorf("logged = %v, want %v (%q)", got, tt.wantLog, buf.String())
			}
		})
	}
}

func TestNewLoggerTimestamp(t *testing.T) {
	var buf bytes.Buffer
	newLogger(&buf, LogInfo).Info("loaded config")
	if !regexp.MustCompile(`^\d{2}:\d{2}:\d{2}\.\d{2} `).MatchString(buf.String()) {
		t.Errorf("record lacks a short clock stamp: %q", buf.String())
	}
}

func TestProgress(t *testing.T) {
	var buf bytes.Buffer
	prog := newProgress(newLogger(&buf, LogDebug))
	prog.step("microsegmentation")
	prog.step("profile")
	prog.done("Composed 4 objects")

	out := buf.String()
	if strings.Count(out, "stage done") != 2 {
		t.Errorf("want one record per stage:\n%s", out)
	}
	if !strings.Contains(out, "stage=microsegmentation") || !strings.Contains(out, "stage=profile") {
		t.Errorf("stages not named:\n%s", out)
	}
	if !regexp.MustCompile(`Composed 4 objects \(\d+(\.\d+)?[µnm]?s\)`).MatchString(out) {
		t.Errorf("done line lacks elapsed time:\n%s", out)
	}
}

func TestLoggerFromContextDefault(t *testing.T) {
	if loggerFromContext(context.Background()) != log.Default() {
		t.Error("a bare context should yield log.Default()")
	}
}

func TestRootCommandAttachesLogger(t *testing.T) {
	var buf bytes.Buffer
	c := New(&buf, LogInfo)
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	root := c.RootCommand()

	var got *log.Logger
	root.AddCommand(&cobra.Command{
		Use: "which-logger",
		Run: func(cmd *cobra.Command, args []string) {
			got = loggerFromContext(cmd.Context())
		},
	})
	root.SetArgs([]string{"which-logger"})
	if err := root.ExecuteContext(context.Background()); err != nil {
		t.Fatal(err)
	}
	if got != c.Logger {
		t.Error("subcommands should log through the CLI logger")
	}
}
