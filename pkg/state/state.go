package state

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"time"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"

	"github.com/podcatch/podcatch/pkg/config"
	"github.com/podcatch/podcatch/pkg/feed"
	"github.com/podcatch/podcatch/pkg/model"
)

const (
	// FileName is the subscription list kept at the root of the podcast
	// directory.
	FileName = ".subscriptions"

	tmpSuffix = ".tmp"

	// refreshAfter is how stale the state may get before a load
	// triggers a refresh sweep over every subscription.
	refreshAfter = 86400 * time.Second
)

// Downloader runs the automatic download pass over a fetched podcast.
type Downloader interface {
	DownloadLatest(ctx context.Context, podcast *model.Podcast, limit int)
}

// State is the durable singleton holding all subscriptions. Subs keeps
// insertion order and is unique by subscription title.
type State struct {
	LastRunTime time.Time            `json:"last_run_time"`
	Subs        []model.Subscription `json:"subs"`
}

// Store loads and persists State under a podcast root directory.
type Store struct {
	rootDir    string
	fetcher    feed.Fetcher
	downloader Downloader
}

func NewStore(rootDir string, fetcher feed.Fetcher, downloader Downloader) *Store {
	return &Store{
		rootDir:    rootDir,
		fetcher:    fetcher,
		downloader: downloader,
	}
}

// Load reads persisted state. A missing file yields a fresh empty state,
// a present but unparsable file is a fatal error naming the file. When
// more than a day has passed since the last run, every subscription is
// re-fetched and its download pass is run before the timestamp advances.
// LastRunTime is set to now on every successful load; it is persisted
// on the next mutation.
func (s *Store) Load(ctx context.Context, cfg *config.Config) (*State, error) {
	path := s.path()

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return &State{LastRunTime: time.Now().UTC()}, nil
	}
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read state file %s", path)
	}

	state := State{}
	if err := json.Unmarshal(data, &state); err != nil {
		return nil, errors.Wrapf(err, "could not parse %s", path)
	}

	if time.Since(state.LastRunTime) > refreshAfter {
		s.refresh(ctx, &state, cfg)
	}

	state.LastRunTime = time.Now().UTC()
	return &state, nil
}

// Subscribe fetches the feed at url and appends a subscription for it
// unless one with the same title already exists. The download pass runs
// either way. A fetch failure surfaces, a save failure is only logged
// and the subscription stays in memory.
func (s *Store) Subscribe(ctx context.Context, state *State, url string, cfg *config.Config) error {
	podcast, err := s.fetcher.Fetch(ctx, url)
	if err != nil {
		return errors.Wrapf(err, "failed to subscribe to %s", url)
	}

	titles := make(map[string]struct{}, len(state.Subs))
	for _, sub := range state.Subs {
		titles[sub.Title] = struct{}{}
	}

	if _, ok := titles[podcast.Title]; !ok {
		state.Subs = append(state.Subs, model.Subscription{
			Title:       podcast.Title,
			URL:         url,
			NumEpisodes: len(podcast.Episodes),
		})
	}

	if err := s.Save(state); err != nil {
		log.WithError(err).Error("failed to save subscriptions")
	}

	s.downloader.DownloadLatest(ctx, podcast, cfg.AutoDownloadLimit)
	return nil
}

// Save writes state to a temporary file next to the real one and renames
// it over the target. The rename is the only step that makes new content
// visible, so a reader never observes a partial write.
func (s *Store) Save(state *State) error {
	data, err := json.Marshal(state)
	if err != nil {
		return errors.Wrap(err, "failed to serialize state")
	}

	var (
		path    = s.path()
		tmpPath = path + tmpSuffix
	)

	if err := os.MkdirAll(s.rootDir, 0755); err != nil {
		return errors.Wrapf(err, "failed to create podcast directory %s", s.rootDir)
	}

	if err := os.WriteFile(tmpPath, data, 0644); err != nil {
		return errors.Wrapf(err, "failed to write state file %s", tmpPath)
	}

	if err := os.Rename(tmpPath, path); err != nil {
		return errors.Wrapf(err, "failed to replace state file %s", path)
	}

	return nil
}

func (s *Store) refresh(ctx context.Context, state *State, cfg *config.Config) {
	log.Infof("refreshing %d subscription(s)", len(state.Subs))

	for _, sub := range state.Subs {
		podcast, err := s.fetcher.Fetch(ctx, sub.URL)
		if err != nil {
			log.WithError(err).Errorf("failed to refresh feed %s", sub.URL)
			continue
		}

		s.downloader.DownloadLatest(ctx, podcast, cfg.AutoDownloadLimit)
	}
}

func (s *Store) path() string {
	return filepath.Join(s.rootDir, FileName)
}
