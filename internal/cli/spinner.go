package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"
	"unicode/utf8"
)

var spinnerFrames = []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}

const spinnerInterval = 80 * time.Millisecond

// spinner animates a one-line status on a terminal while a stage runs.
// Its label can change between stages, and an optional status func adds
// live detail to every frame.
type spinner struct {
	ctx context.Context
	w   io.Writer

	mu     sync.Mutex
	label  string
	status func() string
	frame  int
	width  int // runes of the last line drawn

	quit chan struct{}
	done chan struct{}
	once sync.Once
}

// startSpinner draws label on stderr until stop is called or ctx ends.
// Nothing is drawn when stderr is not a terminal.
func startSpinner(ctx context.Context, label string) *spinner {
	var w io.Writer = os.Stderr
	if !stderrIsTerminal() {
		w = io.Discard
	}
	return startSpinnerOn(ctx, w, label)
}

func startSpinnerOn(ctx context.Context, w io.Writer, label string) *spinner {
	s := &spinner{
		ctx:   ctx,
		w:     w,
		label: label,
		quit:  make(chan struct{}),
		done:  make(chan struct{}),
	}
	s.draw()
	go s.run()
	return s
}

func (s *spinner) run() {
	defer close(s.done)
	ticker := time.NewTicker(spinnerInterval)
	defer ticker.Stop()
	for {
		select {
		case <-s.ctx.Done():
			return
		case <-s.quit:
			return
		case <-ticker.C:
			s.draw()
		}
	}
}

// setLabel replaces the label and redraws at once.
func (s *spinner) setLabel(format string, args ...any) {
	s.mu.Lock()
	s.label = fmt.Sprintf(format, args...)
	s.mu.Unlock()
	s.draw()
}

// follow appends the result of fn to every frame; an empty result adds
// nothing.
func (s *spinner) follow(fn func() string) {
	s.mu.Lock()
	s.status = fn
	s.mu.Unlock()
	s.draw()
}

func (s *spinner) draw() {
	s.mu.Lock()
	defer s.mu.Unlock()
	line := s.label
	if s.status != nil {
		if extra := s.status(); extra != "" {
			line += " · " + extra
		}
	}
	frame := spinnerFrames[s.frame%len(spinnerFrames)]
	s.frame++
	n := utf8.RuneCountInString(line) + 2
	pad := strings.Repeat(" ", max(s.width-n, 0))
	fmt.Fprintf(s.w, "\r%s %s%s", styleIconSpinner.Render(frame), StyleDim.Render(line), pad)
	s.width = n
}

// stop ends the animation and clears the line. It is safe to call more
// than once.
func (s *spinner) stop() {
	s.once.Do(func() {
		close(s.quit)
		<-s.done
		s.mu.Lock()
		defer s.mu.Unlock()
		fmt.Fprintf(s.w, "\r%s\r", strings.Repeat(" ", s.width))
	})
}

// fail stops the spinner and reports msg as an error line.
func (s *spinner) fail(msg string) {
	s.stop()
	printError("%s", msg)
}

// cancelled reports whether the command's context ended the spinner.
func (s *spinner) cancelled() bool {
	return s.ctx.Err() != nil
}
