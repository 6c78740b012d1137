package download

import (
	"context"
	"net/http"
	"runtime"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/podcatch/podcatch/pkg/fs"
	"github.com/podcatch/podcatch/pkg/library"
	"github.com/podcatch/podcatch/pkg/model"
)

// Downloader fetches missing episodes of a podcast into per-podcast
// directories. Failures are local to an episode: they are logged and
// never abort sibling downloads or bubble up to the caller.
type Downloader struct {
	storage fs.Storage
	scanner *library.Scanner
	client  *http.Client
}

func New(storage fs.Storage, scanner *library.Scanner) *Downloader {
	return &Downloader{
		storage: storage,
		scanner: scanner,
		client:  &http.Client{},
	}
}

// DownloadAll fetches every episode of the podcast that is not on disk yet.
func (d *Downloader) DownloadAll(ctx context.Context, podcast *model.Podcast) {
	d.run(ctx, podcast, podcast.Episodes)
}

// DownloadLatest fetches up to limit of the most recent episodes.
// Feeds list newest episodes first, so this is the head of the list.
func (d *Downloader) DownloadLatest(ctx context.Context, podcast *model.Podcast, limit int) {
	episodes := podcast.Episodes
	if limit >= 0 && limit < len(episodes) {
		episodes = episodes[:limit]
	}

	d.run(ctx, podcast, episodes)
}

// DownloadSelected fetches episodes addressed by 1-based recency index:
// 1 is the oldest entry (the last list element), counting back from the
// end of the newest-first episode list.
func (d *Downloader) DownloadSelected(ctx context.Context, podcast *model.Podcast, numbers []int) {
	var selected []model.Episode

	for _, n := range numbers {
		if n < 1 || n > len(podcast.Episodes) {
			log.Warnf("no episode %d in %q", n, podcast.Title)
			continue
		}

		selected = append(selected, podcast.Episodes[len(podcast.Episodes)-n])
	}

	d.run(ctx, podcast, selected)
}

func (d *Downloader) run(ctx context.Context, podcast *model.Podcast, episodes []model.Episode) {
	downloaded, err := d.scanner.Downloaded(ctx, podcast.Title)
	if err != nil {
		log.WithError(err).Errorf("failed to scan downloaded episodes of %q", podcast.Title)
		return
	}

	var group errgroup.Group
	group.SetLimit(runtime.GOMAXPROCS(0))

	for _, episode := range episodes {
		episode := episode

		if episode.Title == "" {
			continue
		}

		if _, ok := downloaded[episode.Title]; ok {
			log.Debugf("skipping %q, already downloaded", episode.Title)
			continue
		}

		group.Go(func() error {
			if err := d.downloadEpisode(ctx, podcast.Title, episode); err != nil {
				log.WithError(err).Errorf("failed to download episode %q", episode.Title)
			}
			return nil
		})
	}

	_ = group.Wait()
}

func (d *Downloader) downloadEpisode(ctx context.Context, podcastTitle string, episode model.Episode) error {
	if episode.EnclosureURL == "" {
		// Nothing to fetch, not an error
		return nil
	}

	ext, err := Extension(episode)
	if err != nil {
		return err
	}

	fileName := episode.Title + ext
	log.Infof("downloading %s/%s", podcastTitle, fileName)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, episode.EnclosureURL, nil)
	if err != nil {
		return errors.Wrapf(err, "failed to build request for %s", episode.EnclosureURL)
	}

	resp, err := d.client.Do(req)
	if err != nil {
		return errors.Wrapf(err, "failed to fetch %s", episode.EnclosureURL)
	}

	defer resp.Body.Close()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return errors.Errorf("unexpected status %d from %s", resp.StatusCode, episode.EnclosureURL)
	}

	written, err := d.storage.Create(ctx, podcastTitle, fileName, resp.Body)
	if err != nil {
		return errors.Wrapf(err, "failed to store %s", fileName)
	}

	log.Debugf("wrote %d bytes to %s/%s", written, podcastTitle, fileName)
	return nil
}
