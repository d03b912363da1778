// Package studystore persists studies on the local machine.
//
// Two backends implement [Store]:
//   - [FileStore]: one JSON document holding every study, rewritten on
//     each change
//   - [SQLiteStore]: one row per study in a SQLite database (pure Go driver)
//
// Stores own study identity and timestamps: Create assigns a fresh
// "study_<uuid>" id and both timestamps, Update refreshes UpdatedAt and
// never changes the id or CreatedAt. A store opened for the first time is
// seeded with the sample study unless seeding is disabled.
//
// # Usage
//
//	store, err := studystore.Open(studystore.BackendSQLite, "", studystore.Options{})
//	if err != nil {
//	    return err
//	}
//	defer store.Close()
//
//	s, err := store.Create(ctx, study.New("Monterrey 2027"))
package studystore

import (
	"context"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/matzehuels/filmina/pkg/errors"
	"github.com/matzehuels/filmina/pkg/study"
)

// IDPrefix starts every study id.
const IDPrefix = "study_"

// CopySuffix is appended to the title of duplicated studies.
const CopySuffix = " (Copia)"

// Store is the interface of study persistence backends.
type Store interface {
	// List returns every study, oldest first.
	List(ctx context.Context) ([]*study.Study, error)

	// Get returns the study with id, or a STUDY_NOT_FOUND error.
	Get(ctx context.Context, id string) (*study.Study, error)

	// Create stores a copy of s under a new id and returns it.
	Create(ctx context.Context, s *study.Study) (*study.Study, error)

	// Update replaces the stored study with s.ID and returns the stored
	// copy. CreatedAt is kept from the stored study.
	Update(ctx context.Context, s *study.Study) (*study.Study, error)

	// Delete removes the study with id, or returns STUDY_NOT_FOUND.
	Delete(ctx context.Context, id string) error

	// Duplicate copies the study with id under a new id and a title
	// ending in CopySuffix.
	Duplicate(ctx context.Context, id string) (*study.Study, error)

	Close() error
}

// Options configures a store.
type Options struct {
	// NoSeed skips the sample study on first open.
	NoSeed bool

	// Now overrides the clock; nil means time.Now.
	Now func() time.Time
}

func (o Options) now() time.Time {
	if o.Now != nil {
		return o.Now().UTC()
	}
	return time.Now().UTC()
}

// Backend names a store implementation.
type Backend string

const (
	BackendFile   Backend = "file"
	BackendSQLite Backend = "sqlite"
)

// DefaultDir returns ~/.config/filmina.
func DefaultDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", errors.Wrap(errors.ErrCodeInternal, err, "get home dir")
	}
	return filepath.Join(home, ".config", "filmina"), nil
}

// DefaultPath returns the default location of backend's data file.
func DefaultPath(b Backend) (string, error) {
	dir, err := DefaultDir()
	if err != nil {
		return "", err
	}
	if b == BackendSQLite {
		return filepath.Join(dir, "studies.db"), nil
	}
	return filepath.Join(dir, "studies.json"), nil
}

// Open opens the store of backend at path. An empty backend means
// BackendFile and an empty path means DefaultPath(backend).
func Open(b Backend, path string, opts Options) (Store, error) {
	b = Backend(strings.ToLower(strings.TrimSpace(string(b))))
	if b == "" {
		b = BackendFile
	}
	if path == "" {
		p, err := DefaultPath(b)
		if err != nil {
			return nil, err
		}
		path = p
	}
	switch b {
	case BackendFile:
		return NewFileStore(path, opts)
	case BackendSQLite:
		return NewSQLiteStore(path, opts)
	default:
		return nil, errors.New(errors.ErrCodeInvalidInput, "unknown store backend %q (want file or sqlite)", b)
	}
}

// NewID returns a fresh study id.
func NewID() string {
	return IDPrefix + uuid.NewString()
}

func notFound(id string) error {
	return errors.New(errors.ErrCodeStudyNotFound, "study %q not found", id)
}

// prepare validates s and returns a copy stamped for creation.
func prepare(s *study.Study, now time.Time) (*study.Study, error) {
	if s == nil {
		return nil, errors.New(errors.ErrCodeInvalidInput, "nil study")
	}
	c := s.Clone()
	c.SetDefaultUncertainties()
	if err := c.Validate(); err != nil {
		return nil, err
	}
	c.ID = NewID()
	c.CreatedAt = now
	c.UpdatedAt = now
	return c, nil
}

// revise validates s and returns a copy carrying prev's identity.
func revise(prev, s *study.Study, now time.Time) (*study.Study, error) {
	c := s.Clone()
	c.SetDefaultUncertainties()
	if err := c.Validate(); err != nil {
		return nil, err
	}
	c.ID = prev.ID
	c.CreatedAt = prev.CreatedAt
	c.UpdatedAt = now
	return c, nil
}

func duplicateOf(s *study.Study) *study.Study {
	c := s.Clone()
	c.Title += CopySuffix
	return c
}

func seed() *study.Study {
	return study.Sample()
}

func sortByCreation(list []*study.Study) {
	slices.SortStableFunc(list, func(a, b *study.Study) int {
		return a.CreatedAt.Compare(b.CreatedAt)
	})
}
