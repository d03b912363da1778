package cli

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"sync"
	"testing"
	"time"

	"go.uber.org/goleak"

	"github.com/matzehuels/filmina/pkg/pipeline"
	"github.com/matzehuels/filmina/pkg/slides"
)

// syncBuffer lets the test read what the spinner goroutine writes.
type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

func TestSpinnerShowsInsertProgress(t *testing.T) {
	defer goleak.VerifyNone(t)

	var out syncBuffer
	sp := startSpinnerOn(context.Background(), &out, "Composing...")
	sp.setLabel("Inserting %s chart (%d/%d)", "microsegmentation", 1, 2)
	sp.setLabel("Inserting %s chart (%d/%d)", "profile", 2, 2)
	sp.stop()

	got := out.String()
	for _, want := range []string{"Composing...", "Inserting microsegmentation chart (1/2)", "Inserting profile chart (2/2)"} {
		if !strings.Contains(got, want) {
			t.Errorf("output lacks %q:\n%q", want, got)
		}
	}
	if !strings.HasSuffix(got, "\r") {
		t.Errorf("line not cleared on stop: %q", got)
	}
	if sp.cancelled() {
		t.Error("stop should not count as cancellation")
	}
}

func TestSpinnerFollowsStatus(t *testing.T) {
	defer goleak.VerifyNone(t)

	var (
		out  syncBuffer
		busy = true
	)
	sp := startSpinnerOn(context.Background(), &out, "Inserting profile chart (1/1)")
	sp.follow(func() string {
		if busy {
			return "decoding raster"
		}
		return ""
	})
	sp.stop()

	if !strings.Contains(out.String(), "Inserting profile chart (1/1) · decoding raster") {
		t.Errorf("status not appended:\n%q", out.String())
	}
}

func TestSpinnerClearsLongerLabels(t *testing.T) {
	var out syncBuffer
	sp := startSpinnerOn(context.Background(), &out, "Rendering microsegmentation chart...")
	sp.setLabel("Done")
	sp.stop()

	// The short label is padded over the long one.
	lines := strings.Split(out.String(), "\r")
	var short string
	for _, l := range lines {
		if strings.Contains(l, "Done") {
			short = l
			break
		}
	}
	if !strings.HasSuffix(short, strings.Repeat(" ", len("Rendering microsegmentation chart...")-len("Done"))) {
		t.Errorf("short label not padded: %q", short)
	}
}

func TestSpinnerEndsWithContext(t *testing.T) {
	defer goleak.VerifyNone(t)

	ctx, cancel := context.WithCancel(context.Background())
	sp := startSpinnerOn(ctx, &syncBuffer{}, "Drawing all 7 slides...")
	cancel()

	select {
	case <-sp.done:
	case <-time.After(time.Second):
		t.Fatal("spinner kept running after cancellation")
	}
	if !sp.cancelled() {
		t.Error("cancelled() = false after the command context ended")
	}
	sp.stop()
}

func TestSpinnerStopTwice(t *testing.T) {
	defer goleak.VerifyNone(t)

	sp := startSpinnerOn(context.Background(), &syncBuffer{}, "Drawing the archetype slide...")
	sp.stop()
	sp.stop()
	sp.fail("Deck export failed")
}

func TestDeckLabel(t *testing.T) {
	tests := []struct {
		name string
		opts pipeline.Options
		want string
	}{
		{"default", pipeline.Options{}, "the default slides"},
		{"one", pipeline.Options{Slides: []string{"archetype"}}, "the archetype slide"},
		{"several", pipeline.Options{Slides: []string{"archetype", "profiling"}}, "2 slides"},
		{"all", pipeline.Options{All: true}, fmt.Sprintf("all %d slides", len(slides.Names()))},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := deckLabel(tt.opts); got != tt.want {
				t.Errorf("deckLabel() = %q, want %q", got, tt.want)
			}
		})
	}
}
