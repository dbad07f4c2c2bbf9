package core

import (
	"context"
	"io"

	"github.com/pkg/errors"
)

// ErrFileNotFound is returned by a FileStore when the requested file does not exist.
var ErrFileNotFound = errors.New("file not found")

type (
	// StoredFile describes a file persisted by a FileStore.
	StoredFile struct {
		Name string // original file name
		Path string // location used to read the file back
	}

	// FileStore persists uploaded files.
	FileStore interface {
		Save(ctx context.Context, name string, r io.Reader) (StoredFile, error)
		Open(ctx context.Context, path string) (io.ReadCloser, error)
		Remove(ctx context.Context, path string) error
	}
)
