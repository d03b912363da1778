package studystore

import (
	"context"
	"database/sql"
	"encoding/json"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"

	"github.com/matzehuels/filmina/pkg/errors"
	"github.com/matzehuels/filmina/pkg/study"
)

const schema = `
CREATE TABLE IF NOT EXISTS studies (
	id         TEXT PRIMARY KEY,
	doc        BLOB NOT NULL,
	created_at INTEGER NOT NULL,
	updated_at INTEGER NOT NULL
);
CREATE TABLE IF NOT EXISTS meta (
	key   TEXT PRIMARY KEY,
	value TEXT NOT NULL
);
`

// SQLiteStore keeps one row per study; the study itself is stored as its
// JSON document.
type SQLiteStore struct {
	db   *sql.DB
	path string
	opts Options
}

// NewSQLiteStore opens or creates the database at path. The sample study
// is inserted the first time a database is initialized unless
// opts.NoSeed is set; deleting every study later does not re-seed.
func NewSQLiteStore(path string, opts Options) (*SQLiteStore, error) {
	if path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
			return nil, errors.Wrap(errors.ErrCodeInternal, err, "create store dir")
		}
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "open %s", path)
	}
	// One connection keeps :memory: databases alive and serializes writers.
	db.SetMaxOpenConns(1)

	s := &SQLiteStore{db: db, path: path, opts: opts}
	if err := s.init(context.Background()); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

func (s *SQLiteStore) init(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, schema); err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "create schema")
	}
	res, err := s.db.ExecContext(ctx, `INSERT OR IGNORE INTO meta(key, value) VALUES ('initialized', 'true')`)
	if err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "mark initialized")
	}
	if n, _ := res.RowsAffected(); n == 0 || s.opts.NoSeed {
		return nil
	}
	_, err = s.Create(ctx, seed())
	return err
}

// Path returns the database location.
func (s *SQLiteStore) Path() string { return s.path }

func decode(doc []byte) (*study.Study, error) {
	var st study.Study
	if err := json.Unmarshal(doc, &st); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "decode stored study")
	}
	return &st, nil
}

func (s *SQLiteStore) List(ctx context.Context) ([]*study.Study, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT doc FROM studies ORDER BY created_at, rowid`)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "list studies")
	}
	defer rows.Close()

	var list []*study.Study
	for rows.Next() {
		var doc []byte
		if err := rows.Scan(&doc); err != nil {
			return nil, errors.Wrap(errors.ErrCodeInternal, err, "scan study")
		}
		st, err := decode(doc)
		if err != nil {
			return nil, err
		}
		list = append(list, st)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "list studies")
	}
	sortByCreation(list)
	return list, nil
}

func (s *SQLiteStore) Get(ctx context.Context, id string) (*study.Study, error) {
	var doc []byte
	err := s.db.QueryRowContext(ctx, `SELECT doc FROM studies WHERE id = ?`, id).Scan(&doc)
	if err == sql.ErrNoRows {
		return nil, notFound(id)
	}
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "get study %s", id)
	}
	return decode(doc)
}

func (s *SQLiteStore) Create(ctx context.Context, st *study.Study) (*study.Study, error) {
	c, err := prepare(st, s.opts.now())
	if err != nil {
		return nil, err
	}
	doc, err := json.Marshal(c)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "encode study")
	}
	_, err = s.db.ExecContext(ctx,
		`INSERT INTO studies(id, doc, created_at, updated_at) VALUES (?, ?, ?, ?)`,
		c.ID, doc, c.CreatedAt.UnixNano(), c.UpdatedAt.UnixNano())
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "insert study")
	}
	return c, nil
}

func (s *SQLiteStore) Update(ctx context.Context, st *study.Study) (*study.Study, error) {
	if st == nil {
		return nil, errors.New(errors.ErrCodeInvalidInput, "nil study")
	}
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "begin update")
	}
	defer tx.Rollback()

	var doc []byte
	err = tx.QueryRowContext(ctx, `SELECT doc FROM studies WHERE id = ?`, st.ID).Scan(&doc)
	if err == sql.ErrNoRows {
		return nil, notFound(st.ID)
	}
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "get study %s", st.ID)
	}
	prev, err := decode(doc)
	if err != nil {
		return nil, err
	}
	c, err := revise(prev, st, s.opts.now())
	if err != nil {
		return nil, err
	}
	if doc, err = json.Marshal(c); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "encode study")
	}
	if _, err := tx.ExecContext(ctx, `UPDATE studies SET doc = ?, updated_at = ? WHERE id = ?`,
		doc, c.UpdatedAt.UnixNano(), c.ID); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "update study %s", c.ID)
	}
	if err := tx.Commit(); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "commit update")
	}
	return c, nil
}

func (s *SQLiteStore) Delete(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM studies WHERE id = ?`, id)
	if err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "delete study %s", id)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return notFound(id)
	}
	return nil
}

func (s *SQLiteStore) Duplicate(ctx context.Context, id string) (*study.Study, error) {
	orig, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.Create(ctx, duplicateOf(orig))
}

func (s *SQLiteStore) Close() error { return s.db.Close() }

var _ Store = (*SQLiteStore)(nil)
