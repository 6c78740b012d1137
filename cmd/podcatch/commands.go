package main

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/hashicorp/go-multierror"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"

	"github.com/podcatch/podcatch/pkg/model"
)

type subscribeCommand struct {
	opts *Opts

	Args struct {
		URL string `positional-arg-name:"url" description:"feed URL"`
	} `positional-args:"yes" required:"yes"`
}

func (c *subscribeCommand) Execute(_ []string) error {
	ctx := context.Background()

	app, err := newApp(ctx, c.opts)
	if err != nil {
		return err
	}

	if err := app.store.Subscribe(ctx, app.state, c.Args.URL, app.cfg); err != nil {
		return err
	}

	log.Infof("subscribed to %s", c.Args.URL)
	return nil
}

type listCommand struct {
	opts *Opts
}

func (c *listCommand) Execute(_ []string) error {
	ctx := context.Background()

	app, err := newApp(ctx, c.opts)
	if err != nil {
		return err
	}

	if len(app.state.Subs) == 0 {
		fmt.Println("no subscriptions yet")
		return nil
	}

	for _, sub := range app.state.Subs {
		fmt.Printf("%s\t%s\t%d episode(s)\n", sub.Title, sub.URL, sub.NumEpisodes)
	}

	return nil
}

type downloadCommand struct {
	opts *Opts

	Episodes string `long:"episodes" short:"e" description:"comma separated episode numbers, 1 is the oldest episode"`

	Args struct {
		Podcast string `positional-arg-name:"podcast" description:"subscription title or feed URL"`
	} `positional-args:"yes" required:"yes"`
}

func (c *downloadCommand) Execute(_ []string) error {
	ctx := context.Background()

	app, err := newApp(ctx, c.opts)
	if err != nil {
		return err
	}

	url, err := resolveFeedURL(app.state.Subs, c.Args.Podcast)
	if err != nil {
		return err
	}

	podcast, err := app.feeds.Fetch(ctx, url)
	if err != nil {
		return err
	}

	if c.Episodes == "" {
		app.dl.DownloadAll(ctx, podcast)
		return nil
	}

	numbers, err := parseEpisodeNumbers(c.Episodes)
	if err != nil {
		return err
	}

	app.dl.DownloadSelected(ctx, podcast, numbers)
	return nil
}

// resolveFeedURL maps a subscription title to its feed URL. Anything
// that looks like a URL is passed through so unsubscribed feeds can be
// downloaded directly.
func resolveFeedURL(subs []model.Subscription, arg string) (string, error) {
	for _, sub := range subs {
		if sub.Title == arg {
			return sub.URL, nil
		}
	}

	if strings.Contains(arg, "://") {
		return arg, nil
	}

	return "", errors.Wrapf(model.ErrNotFound, "no subscription named %q", arg)
}

func parseEpisodeNumbers(arg string) ([]int, error) {
	var (
		result  *multierror.Error
		numbers []int
	)

	for _, field := range strings.Split(arg, ",") {
		n, err := strconv.Atoi(strings.TrimSpace(field))
		if err != nil {
			result = multierror.Append(result, errors.Errorf("invalid episode number %q", field))
			continue
		}

		numbers = append(numbers, n)
	}

	return numbers, result.ErrorOrNil()
}
