package chart

import (
	"context"
	"image"
	"sync/atomic"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/matzehuels/filmina/pkg/errors"
	"github.com/matzehuels/filmina/pkg/observability"
	"github.com/matzehuels/filmina/pkg/sink"
	"github.com/matzehuels/filmina/pkg/surface"
)

// DefaultTimeout bounds the wait for the export raster to decode.
const DefaultTimeout = 5 * time.Second

// Compositor inserts charts into surfaces. One compositor admits a single
// insert at a time; a concurrent second insert is refused, not queued.
type Compositor struct {
	Logger  *log.Logger
	Timeout time.Duration

	// Decode turns the encoded export raster back into an image. It runs
	// on its own goroutine; nil means sink.DecodeDataURI.
	Decode func(uri string) (image.Image, error)

	inFlight atomic.Bool
}

// NewCompositor returns a compositor with the default timeout.
// If logger is nil, log.Default() is used.
func NewCompositor(logger *log.Logger) *Compositor {
	if logger == nil {
		logger = log.Default()
	}
	return &Compositor{Logger: logger, Timeout: DefaultTimeout}
}

// Inserted describes the object an insert added.
type Inserted struct {
	ID        uuid.UUID
	Kind      Kind
	Placement surface.Placement
	// Replaced is true when a prior chart of the same kind was removed
	// and its placement reused.
	Replaced bool
}

type decoded struct {
	img image.Image
	err error
}

// Insert renders c at export resolution and adds it to surf as an image
// object named after its kind, carrying c's payload. A chart of the same
// kind already on surf is removed first and its placement kept.
//
// Every failure leaves surf untouched and is returned with a code:
// NO_SURFACE, INSERT_IN_FLIGHT, DECODE_FAILED or TIMEOUT.
func (c *Compositor) Insert(ctx context.Context, surf *surface.Surface, ch Chart) (Inserted, error) {
	logger := c.logger()
	hooks := observability.Insert()
	kind := ch.Kind()

	if surf == nil {
		err := errors.New(errors.ErrCodeNoSurface, "no drawing surface to insert %s into", kind.Short())
		logger.Warn("insert skipped", "kind", kind, "reason", "no surface")
		hooks.OnInsertRejected(ctx, string(kind), err)
		return Inserted{}, err
	}
	if !c.inFlight.CompareAndSwap(false, true) {
		err := errors.New(errors.ErrCodeInsertInFlight, "an insert is already in progress")
		logger.Warn("insert skipped", "kind", kind, "reason", "in flight")
		hooks.OnInsertRejected(ctx, string(kind), err)
		return Inserted{}, err
	}
	defer c.inFlight.Store(false)

	start := time.Now()
	hooks.OnInsertStart(ctx, string(kind))
	res, err := c.insert(ctx, surf, ch)
	hooks.OnInsertComplete(ctx, string(kind), res.Replaced, time.Since(start), err)
	if err != nil {
		logger.Warn("insert failed", "kind", kind, "err", err)
		return Inserted{}, err
	}
	logger.Info("inserted chart",
		"kind", kind,
		"replaced", res.Replaced,
		"left", res.Placement.Left,
		"top", res.Placement.Top,
		"scale", res.Placement.ScaleX,
		"duration", time.Since(start))
	return res, nil
}

func (c *Compositor) insert(ctx context.Context, surf *surface.Surface, ch Chart) (Inserted, error) {
	if err := ctx.Err(); err != nil {
		return Inserted{}, err
	}
	kind := ch.Kind()

	payload, err := ch.Payload()
	if err != nil {
		return Inserted{}, errors.Wrap(errors.ErrCodeInternal, err, "encode %s payload", kind.Short())
	}
	raster, err := sink.PNG(Export(ch))
	if err != nil {
		return Inserted{}, err
	}
	uri := sink.DataURI(raster)

	img, err := c.await(uri)
	if err != nil {
		return Inserted{}, err
	}

	// The surface is only touched from here on.
	place := ch.Placement(float64(surf.Width), float64(surf.Height))
	prior, replaced := surf.FindByName(string(kind))
	if replaced {
		place = prior.Placement
		surf.RemoveByName(string(kind))
	}
	obj := surface.NewImage(string(kind), img, place)
	obj.Payload = payload
	id := surf.Add(obj)

	if a, ok := ch.(Annotator); ok {
		for _, note := range a.Annotations() {
			surf.RemoveByName(note.Name)
			surf.Add(note)
		}
	}
	return Inserted{ID: id, Kind: kind, Placement: place, Replaced: replaced}, nil
}

// await runs the decode on its own goroutine and waits for it or the
// timeout. The result channel is buffered, so an abandoned decode still
// completes and exits.
func (c *Compositor) await(uri string) (image.Image, error) {
	decode := c.Decode
	if decode == nil {
		decode = sink.DecodeDataURI
	}
	timeout := c.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	done := make(chan decoded, 1)
	go func() {
		img, err := decode(uri)
		done <- decoded{img, err}
	}()

	timer := time.NewTimer(timeout)
	defer timer.Stop()
	select {
	case r := <-done:
		if r.err != nil {
			if errors.GetCode(r.err) == errors.ErrCodeDecodeFailed {
				return nil, r.err
			}
			return nil, errors.Wrap(errors.ErrCodeDecodeFailed, r.err, "decode export raster")
		}
		if r.img == nil {
			return nil, errors.New(errors.ErrCodeDecodeFailed, "decode returned no image")
		}
		return r.img, nil
	case <-timer.C:
		return nil, errors.New(errors.ErrCodeTimeout, "export raster not decoded within %s", timeout)
	}
}

// InFlight reports whether an insert is running.
func (c *Compositor) InFlight() bool { return c.inFlight.Load() }

func (c *Compositor) logger() *log.Logger {
	if c.Logger == nil {
		return log.Default()
	}
	return c.Logger
}

// Restore rebuilds the chart of kind k from the payload of its object on
// surf, for re-editing.
func Restore(surf *surface.Surface, k Kind) (Chart, error) {
	if surf == nil {
		return nil, errors.New(errors.ErrCodeNoSurface, "no drawing surface")
	}
	obj, ok := surf.FindByName(string(k))
	if !ok {
		return nil, errors.New(errors.ErrCodeNotFound, "no %s chart on the surface", k.Short())
	}
	switch k {
	case KindMicrosegmentation:
		m, err := microsegmentationFromPayload(obj.Payload)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeDecodeFailed, err, "decode %s payload", k.Short())
		}
		return m, nil
	case KindProfile:
		p, err := profileFromPayload(obj.Payload)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeDecodeFailed, err, "decode %s payload", k.Short())
		}
		return p, nil
	}
	return nil, errors.New(errors.ErrCodeInvalidKind, "unknown chart kind %q", k)
}
