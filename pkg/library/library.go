package library

import (
	"context"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"

	"github.com/podcatch/podcatch/pkg/fs"
)

// Scanner inspects a podcast's storage directory and reports which
// episodes are already on disk.
type Scanner struct {
	storage fs.Storage
}

func NewScanner(storage fs.Storage) *Scanner {
	return &Scanner{storage: storage}
}

// Downloaded returns the set of episode titles already present in the
// podcast's directory, derived from file names with the extension
// stripped. A podcast with no directory yet yields an empty set.
func (s *Scanner) Downloaded(ctx context.Context, podcastTitle string) (map[string]struct{}, error) {
	names, err := s.storage.List(ctx, podcastTitle)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to scan library for %q", podcastTitle)
	}

	downloaded := make(map[string]struct{}, len(names))
	for _, name := range names {
		title := strings.TrimSuffix(name, filepath.Ext(name))
		downloaded[title] = struct{}{}
	}

	return downloaded, nil
}
