package fs

import (
	"context"
	"io"
	"os"
	"path/filepath"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

// Local stores files under a single root directory.
type Local struct {
	rootDir string
}

var _ Storage = (*Local)(nil)

func NewLocal(rootDir string) (*Local, error) {
	if rootDir == "" {
		return nil, errors.New("root directory can't be empty")
	}

	return &Local{rootDir: rootDir}, nil
}

func (l *Local) Create(_ context.Context, ns string, fileName string, reader io.Reader) (int64, error) {
	var (
		logger = log.WithField("file", fileName)
		dir    = filepath.Join(l.rootDir, ns)
	)

	if err := os.MkdirAll(dir, 0755); err != nil {
		return 0, errors.Wrapf(err, "failed to create directory: %s", dir)
	}

	path := filepath.Join(dir, fileName)

	logger.Debugf("copying to: %s", path)
	written, err := l.copyFile(reader, path)
	if err != nil {
		return 0, errors.Wrap(err, "failed to copy file")
	}

	logger.Debugf("copied %d bytes", written)
	return written, nil
}

func (l *Local) List(_ context.Context, ns string) ([]string, error) {
	dir := filepath.Join(l.rootDir, ns)

	entries, err := os.ReadDir(dir)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, errors.Wrapf(err, "failed to list directory: %s", dir)
	}

	var names []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		names = append(names, entry.Name())
	}

	return names, nil
}

func (l *Local) Size(_ context.Context, ns string, fileName string) (int64, error) {
	path := filepath.Join(l.rootDir, ns, fileName)

	stat, err := os.Stat(path)
	if err != nil {
		return 0, err
	}

	return stat.Size(), nil
}

func (l *Local) Delete(_ context.Context, ns string, fileName string) error {
	path := filepath.Join(l.rootDir, ns, fileName)
	return os.Remove(path)
}

func (l *Local) copyFile(source io.Reader, destinationPath string) (int64, error) {
	dest, err := os.Create(destinationPath)
	if err != nil {
		return 0, errors.Wrap(err, "failed to create destination file")
	}

	defer dest.Close()

	written, err := io.Copy(dest, source)
	if err != nil {
		return 0, errors.Wrap(err, "failed to copy data")
	}

	return written, nil
}
