// Package localstore keeps uploaded files on the local disk.
package localstore

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"

	"github.com/bouncebacklearning/backend/core"
	"github.com/bouncebacklearning/backend/storage/files"
)

// URLPrefix is the public path files are served under.
const URLPrefix = "/uploads/"

type Store struct {
	dir string
}

var _ core.FileStore = (*Store)(nil)

// New creates dir if needed.
func New(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, errors.Wrap(err, "creating upload dir")
	}
	return &Store{dir: dir}, nil
}

// Dir is the directory files are written to.
func (s *Store) Dir() string { return s.dir }

func (s *Store) Save(_ context.Context, name string, r io.Reader) (core.StoredFile, error) {
	key := files.StorageKey(name)
	fp := filepath.Join(s.dir, key)

	f, err := os.OpenFile(fp, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0o644)
	if err != nil {
		return core.StoredFile{}, errors.Wrap(err, "creating file")
	}
	if _, err = io.Copy(f, r); err != nil {
		_ = f.Close()
		_ = os.Remove(fp)
		return core.StoredFile{}, errors.Wrap(err, "writing file")
	}
	if err = f.Close(); err != nil {
		_ = os.Remove(fp)
		return core.StoredFile{}, errors.Wrap(err, "closing file")
	}
	return core.StoredFile{Name: name, Path: URLPrefix + key}, nil
}

func (s *Store) Open(_ context.Context, path string) (io.ReadCloser, error) {
	fp, err := s.filePath(path)
	if err != nil {
		return nil, err
	}
	f, err := os.Open(fp)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, core.ErrFileNotFound
		}
		return nil, errors.Wrap(err, "opening file")
	}
	return f, nil
}

func (s *Store) Remove(_ context.Context, path string) error {
	fp, err := s.filePath(path)
	if err != nil {
		return err
	}
	if err = os.Remove(fp); err != nil {
		if os.IsNotExist(err) {
			return core.ErrFileNotFound
		}
		return errors.Wrap(err, "removing file")
	}
	return nil
}

// filePath maps a public path back to the disk, refusing anything outside dir.
func (s *Store) filePath(path string) (string, error) {
	if !strings.HasPrefix(path, URLPrefix) {
		return "", core.ErrFileNotFound
	}
	key := strings.TrimPrefix(path, URLPrefix)
	if key == "" || key != filepath.Base(key) || key == ".." {
		return "", core.ErrFileNotFound
	}
	return filepath.Join(s.dir, key), nil
}
