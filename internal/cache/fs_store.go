package cache

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/parquet-go/parquet-go"

	"github.com/preston-bernstein/nba-shot-selection/internal/domain"
)

const parquetExt = ".parquet"

// FSStore keeps one Parquet file per key under a root directory, partitioned
// by kind. WrittenAt is the file's modification time.
type FSStore struct {
	root string
}

// NewFSStore constructs a filesystem store rooted at root.
func NewFSStore(root string) *FSStore {
	return &FSStore{root: root}
}

// Root exposes the store root path.
func (s *FSStore) Root() string {
	if s == nil {
		return ""
	}
	return s.root
}

// Get reads the table stored under key.
func (s *FSStore) Get(ctx context.Context, key Key) (Table, error) {
	if err := s.check(ctx, key); err != nil {
		return Table{}, err
	}
	path := filepath.Join(s.root, key.Path())
	info, err := os.Stat(path)
	if errors.Is(err, fs.ErrNotExist) {
		return Table{}, ErrMiss
	}
	if err != nil {
		return Table{}, err
	}

	table := Table{Kind: key.Kind, WrittenAt: info.ModTime()}
	switch key.Kind {
	case KindLeagueBaseline:
		rows, err := readTable[baselineRow](key, path, baselineColumns)
		if err != nil {
			return Table{}, err
		}
		table.Baseline = fromBaselineRows(rows)
	default:
		rows, err := readTable[shotRow](key, path, shotColumns)
		if err != nil {
			return Table{}, err
		}
		table.Shots = fromShotRows(rows)
	}
	return table, nil
}

// readTable decodes the Parquet file at path after checking that its schema
// carries every required column. Absent columns would otherwise decode as zero values.
func readTable[T any](key Key, path string, required []string) ([]T, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	info, err := f.Stat()
	if err != nil {
		return nil, err
	}

	pf, err := parquet.OpenFile(f, info.Size())
	if err != nil {
		return nil, corrupt(key, err)
	}
	if missing := missingColumns(pf.Schema(), required); len(missing) > 0 {
		return nil, &domain.DataShapeError{
			Table:  key.String(),
			Reason: "missing columns " + strings.Join(missing, ", "),
		}
	}
	rows, err := parquet.Read[T](f, info.Size())
	if err != nil {
		return nil, corrupt(key, err)
	}
	return rows, nil
}

func missingColumns(schema *parquet.Schema, required []string) []string {
	var missing []string
	for _, name := range required {
		if _, ok := schema.Lookup(name); !ok {
			missing = append(missing, name)
		}
	}
	return missing
}

// Put replaces the table stored under key. The file is written beside its
// target and renamed into place, so readers never observe a partial table.
func (s *FSStore) Put(ctx context.Context, key Key, table Table) error {
	if err := s.check(ctx, key); err != nil {
		return err
	}
	target := filepath.Join(s.root, key.Path())
	if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
		return err
	}

	tmp, err := os.CreateTemp(filepath.Dir(target), "."+key.Name()+"-*.tmp")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())

	switch key.Kind {
	case KindLeagueBaseline:
		err = parquet.Write(tmp, toBaselineRows(table.Baseline))
	default:
		err = parquet.Write(tmp, toShotRows(table.Shots))
	}
	if err != nil {
		tmp.Close()
		return fmt.Errorf("write %s: %w", key, err)
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), target)
}

// Delete removes the table stored under key. Deleting a missing key is not an error.
func (s *FSStore) Delete(ctx context.Context, key Key) error {
	if err := s.check(ctx, key); err != nil {
		return err
	}
	err := os.Remove(filepath.Join(s.root, key.Path()))
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	return err
}

// List returns the tables stored for kind, sorted by name.
func (s *FSStore) List(ctx context.Context, kind Kind) ([]Entry, error) {
	if s == nil {
		return nil, errors.New("cache store not configured")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	dir := filepath.Join(s.root, kind.Dir())
	entries, err := os.ReadDir(dir)
	if errors.Is(err, fs.ErrNotExist) {
		return []Entry{}, nil
	}
	if err != nil {
		return nil, err
	}

	out := make([]Entry, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), parquetExt) {
			continue
		}
		info, err := e.Info()
		if err != nil {
			continue
		}
		out = append(out, Entry{
			Kind:      kind,
			Name:      strings.TrimSuffix(e.Name(), parquetExt),
			WrittenAt: info.ModTime(),
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

// Purge deletes every table of kind and reports how many were removed.
func (s *FSStore) Purge(ctx context.Context, kind Kind) (int, error) {
	entries, err := s.List(ctx, kind)
	if err != nil {
		return 0, err
	}
	removed := 0
	for _, e := range entries {
		if err := os.Remove(filepath.Join(s.root, kind.Dir(), e.Name+parquetExt)); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return removed, err
		}
		removed++
	}
	return removed, nil
}

func (s *FSStore) check(ctx context.Context, key Key) error {
	if s == nil {
		return errors.New("cache store not configured")
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	return key.Validate()
}

func corrupt(key Key, err error) error {
	return &domain.DataShapeError{Table: key.String(), Reason: "unreadable cache file", Err: err}
}
