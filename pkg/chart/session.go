package chart

import (
	"context"
	"image"

	"github.com/matzehuels/filmina/pkg/errors"
	"github.com/matzehuels/filmina/pkg/surface"
)

// State is the lifecycle state of a Session.
type State int

const (
	Closed State = iota
	Open
)

func (s State) String() string {
	if s == Open {
		return "open"
	}
	return "closed"
}

// Session is one editing dialog for a chart: opened with initial data,
// previewed after every edit, then cancelled or inserted. Cancel never
// touches the surface and a successful Insert mutates it exactly once.
type Session struct {
	Compositor *Compositor
	Surface    *surface.Surface

	state State
	chart Chart
}

// NewSession returns a closed session inserting into surf.
func NewSession(c *Compositor, surf *surface.Surface) *Session {
	if c == nil {
		c = NewCompositor(nil)
	}
	return &Session{Compositor: c, Surface: surf}
}

// State returns the current state.
func (s *Session) State() State { return s.state }

// Chart returns the chart being edited, or nil when closed. Edits are
// made on it directly.
func (s *Session) Chart() Chart { return s.chart }

// Open starts editing initial.
func (s *Session) Open(initial Chart) error {
	if s.state == Open {
		return errors.New(errors.ErrCodeInvalidInput, "session already open")
	}
	if initial == nil {
		return errors.New(errors.ErrCodeInvalidInput, "no chart to edit")
	}
	s.chart = initial
	s.state = Open
	return nil
}

// Reopen starts editing the chart of kind k already on the surface, or
// fallback when there is none or its payload cannot be read.
func (s *Session) Reopen(k Kind, fallback Chart) error {
	if c, err := Restore(s.Surface, k); err == nil {
		return s.Open(c)
	} else if !errors.Is(err, errors.ErrCodeNotFound) && !errors.Is(err, errors.ErrCodeNoSurface) {
		s.Compositor.logger().Warn("chart payload unreadable, starting over", "kind", k, "err", err)
	}
	return s.Open(fallback)
}

// Preview renders the chart at preview resolution. It is cheap enough to
// call after every edit.
func (s *Session) Preview() (image.Image, error) {
	if s.state != Open {
		return nil, errors.New(errors.ErrCodeInvalidInput, "session not open")
	}
	return Preview(s.chart), nil
}

// Cancel closes the session without touching the surface.
func (s *Session) Cancel() {
	s.state = Closed
	s.chart = nil
}

// Insert inserts the chart and closes the session. On failure the session
// stays open so the insert can be retried.
func (s *Session) Insert(ctx context.Context) (Inserted, error) {
	if s.state != Open {
		return Inserted{}, errors.New(errors.ErrCodeInvalidInput, "session not open")
	}
	res, err := s.Compositor.Insert(ctx, s.Surface, s.chart)
	if err != nil {
		return Inserted{}, err
	}
	s.Cancel()
	return res, nil
}
