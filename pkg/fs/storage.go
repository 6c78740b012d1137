package fs

import (
	"context"
	"io"
)

// Storage keeps downloaded episodes on disk, one namespace (directory)
// per podcast.
type Storage interface {
	// Create writes a new file from reader, creating the namespace
	// directory if necessary.
	Create(ctx context.Context, ns string, fileName string, reader io.Reader) (int64, error)

	// List returns file names present in the namespace. A namespace
	// that does not exist yet yields an empty list, not an error.
	List(ctx context.Context, ns string) ([]string, error)

	// Size returns the size of a stored file in bytes.
	Size(ctx context.Context, ns string, fileName string) (int64, error)

	// Delete deletes the file.
	Delete(ctx context.Context, ns string, fileName string) error
}
