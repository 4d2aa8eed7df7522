package storage

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

type FSSource struct{ base string }

func NewFSSource(base string) (*FSSource, error) {
	if base == "" {
		base = "./content"
	}
	if err := os.MkdirAll(base, 0o755); err != nil {
		return nil, err
	}
	return &FSSource{base: base}, nil
}

func (s *FSSource) path(name string) (string, error) {
	clean := filepath.Clean("/" + name)
	if name == "" || clean == "/" {
		return "", errors.New("empty document name")
	}
	return filepath.Join(s.base, clean), nil
}

func (s *FSSource) Fetch(_ context.Context, name string) ([]byte, error) {
	p, err := s.path(name)
	if err != nil {
		return nil, err
	}
	b, err := os.ReadFile(p)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, &FetchError{Name: name, Err: ErrNotFound}
	}
	if err != nil {
		return nil, &FetchError{Name: name, Err: err}
	}
	return b, nil
}

func (s *FSSource) Put(_ context.Context, name string, body []byte) error {
	p, err := s.path(name)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
		return err
	}
	return os.WriteFile(p, body, 0o644)
}

// List returns the names of the .json documents directly under the base
// directory, sorted.
func (s *FSSource) List() ([]string, error) {
	entries, err := os.ReadDir(s.base)
	if err != nil {
		return nil, err
	}
	out := []string{}
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".json") {
			continue
		}
		out = append(out, e.Name())
	}
	sort.Strings(out)
	return out, nil
}
