package studystore

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"slices"
	"sync"

	"github.com/matzehuels/filmina/pkg/errors"
	"github.com/matzehuels/filmina/pkg/study"
)

// FileStore keeps every study in a single JSON document. Each operation
// reads the whole list and every change rewrites it.
type FileStore struct {
	mu   sync.Mutex
	path string
	opts Options
}

// NewFileStore opens the document at path, creating it (seeded unless
// opts.NoSeed) when it does not exist.
func NewFileStore(path string, opts Options) (*FileStore, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "create store dir")
	}
	s := &FileStore{path: path, opts: opts}

	if _, err := os.Stat(path); os.IsNotExist(err) {
		var initial []*study.Study
		if !opts.NoSeed {
			first, err := prepare(seed(), opts.now())
			if err != nil {
				return nil, err
			}
			initial = append(initial, first)
		}
		if err := s.save(initial); err != nil {
			return nil, err
		}
	} else if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "stat %s", path)
	}
	return s, nil
}

// Path returns the location of the document.
func (s *FileStore) Path() string { return s.path }

func (s *FileStore) load() ([]*study.Study, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "read %s", s.path)
	}
	var list []*study.Study
	if err := json.Unmarshal(data, &list); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "parse %s", s.path)
	}
	return list, nil
}

func (s *FileStore) save(list []*study.Study) error {
	if list == nil {
		list = []*study.Study{}
	}
	data, err := json.MarshalIndent(list, "", "  ")
	if err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "marshal studies")
	}
	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o600); err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "write %s", tmp)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "replace %s", s.path)
	}
	return nil
}

func find(list []*study.Study, id string) int {
	return slices.IndexFunc(list, func(s *study.Study) bool { return s.ID == id })
}

func (s *FileStore) List(ctx context.Context) ([]*study.Study, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.load()
}

func (s *FileStore) Get(ctx context.Context, id string) (*study.Study, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	list, err := s.load()
	if err != nil {
		return nil, err
	}
	i := find(list, id)
	if i < 0 {
		return nil, notFound(id)
	}
	return list[i], nil
}

func (s *FileStore) Create(ctx context.Context, st *study.Study) (*study.Study, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.create(st)
}

func (s *FileStore) create(st *study.Study) (*study.Study, error) {
	c, err := prepare(st, s.opts.now())
	if err != nil {
		return nil, err
	}
	list, err := s.load()
	if err != nil {
		return nil, err
	}
	if err := s.save(append(list, c)); err != nil {
		return nil, err
	}
	return c.Clone(), nil
}

func (s *FileStore) Update(ctx context.Context, st *study.Study) (*study.Study, error) {
	if st == nil {
		return nil, errors.New(errors.ErrCodeInvalidInput, "nil study")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	list, err := s.load()
	if err != nil {
		return nil, err
	}
	i := find(list, st.ID)
	if i < 0 {
		return nil, notFound(st.ID)
	}
	c, err := revise(list[i], st, s.opts.now())
	if err != nil {
		return nil, err
	}
	list[i] = c
	if err := s.save(list); err != nil {
		return nil, err
	}
	return c.Clone(), nil
}

func (s *FileStore) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	list, err := s.load()
	if err != nil {
		return err
	}
	i := find(list, id)
	if i < 0 {
		return notFound(id)
	}
	return s.save(slices.Delete(list, i, i+1))
}

func (s *FileStore) Duplicate(ctx context.Context, id string) (*study.Study, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	list, err := s.load()
	if err != nil {
		return nil, err
	}
	i := find(list, id)
	if i < 0 {
		return nil, notFound(id)
	}
	return s.create(duplicateOf(list[i]))
}

func (s *FileStore) Close() error { return nil }

var _ Store = (*FileStore)(nil)
