package feed

import (
	"context"
	"net/http"
	"time"

	"github.com/mmcdole/gofeed"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"

	"github.com/podcatch/podcatch/pkg/model"
)

const (
	fetchTimeout = 15 * time.Second
	userAgent    = "podcatch/1.0"
)

// Fetcher retrieves a podcast feed by URL. The network-backed Client is
// the production implementation, tests use fixture-backed doubles.
type Fetcher interface {
	Fetch(ctx context.Context, url string) (*model.Podcast, error)
}

// Client fetches and parses RSS/Atom feeds over HTTP.
type Client struct {
	client *http.Client
	parser *gofeed.Parser
}

var _ Fetcher = (*Client)(nil)

func NewClient() *Client {
	return &Client{
		client: &http.Client{Timeout: fetchTimeout},
		parser: gofeed.NewParser(),
	}
}

func (c *Client) Fetch(ctx context.Context, url string) (*model.Podcast, error) {
	log.Debugf("fetching feed %s", url)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to build request for %s", url)
	}

	req.Header.Set("User-Agent", userAgent)

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to fetch feed %s", url)
	}

	defer resp.Body.Close()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return nil, errors.Errorf("unexpected status %d from feed %s", resp.StatusCode, url)
	}

	rss, err := c.parser.Parse(resp.Body)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to parse feed %s", url)
	}

	return buildPodcast(rss), nil
}

func buildPodcast(rss *gofeed.Feed) *model.Podcast {
	podcast := &model.Podcast{
		Title: rss.Title,
	}

	for _, item := range rss.Items {
		episode := model.Episode{
			Title: item.Title,
		}

		if len(item.Enclosures) > 0 {
			episode.EnclosureURL = item.Enclosures[0].URL
			episode.MIMEType = item.Enclosures[0].Type
		}

		podcast.Episodes = append(podcast.Episodes, episode)
	}

	return podcast
}
