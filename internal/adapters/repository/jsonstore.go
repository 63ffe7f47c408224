package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"golang.org/x/sync/singleflight"

	"github.com/okian/ekiden/internal/domain/content"
	"github.com/okian/ekiden/internal/domain/ranking"
)

// JSONStore implements Store over files on local disk. Nothing is cached:
// every call reads the file again. Concurrent reads of the same file share
// one read, and each caller decodes its own copy.
type JSONStore struct {
	seasonDir   string
	rankingsDir string
	group       singleflight.Group
}

// NewJSONStore creates a store with the default directory layout.
func NewJSONStore(opts ...Option) *JSONStore {
	s := &JSONStore{
		seasonDir:   filepath.Join("data", "2025"),
		rankingsDir: filepath.Join("data", "rankings"),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// News implements Store.
func (s *JSONStore) News(ctx context.Context) (content.NewsCollection, error) {
	var c content.NewsCollection
	err := s.decode(ctx, filepath.Join(s.seasonDir, NewsFile), &c)
	return c, err
}

// Results implements Store.
func (s *JSONStore) Results(ctx context.Context) (content.ResultsCollection, error) {
	var c content.ResultsCollection
	err := s.decode(ctx, filepath.Join(s.seasonDir, ResultsFile), &c)
	return c, err
}

// Ranking implements Store.
func (s *JSONStore) Ranking(ctx context.Context, file string) (ranking.EventRanking, error) {
	var r ranking.EventRanking
	if file == "" || filepath.Base(file) != file || file == "." || file == ".." {
		return r, fmt.Errorf("%w: %q", ErrInvalidName, file)
	}
	err := s.decode(ctx, filepath.Join(s.rankingsDir, file), &r)
	return r, err
}

func (s *JSONStore) decode(ctx context.Context, path string, v any) error {
	data, err := s.read(ctx, path)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("%w %s: %w", ErrDecode, path, err)
	}
	return nil
}

func (s *JSONStore) read(ctx context.Context, path string) ([]byte, error) {
	ch := s.group.DoChan(path, func() (any, error) {
		return os.ReadFile(path)
	})

	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%w %s: %w", ErrRead, path, ctx.Err())
	case res := <-ch:
		if res.Err != nil {
			if errors.Is(res.Err, fs.ErrNotExist) {
				return nil, fmt.Errorf("%w: %s", ErrNotFound, path)
			}
			return nil, fmt.Errorf("%w %s: %w", ErrRead, path, res.Err)
		}
		return res.Val.([]byte), nil
	}
}
