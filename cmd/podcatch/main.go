package main

import (
	"context"
	"os"
	"path/filepath"
	"time"

	"github.com/jessevdk/go-flags"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"

	"github.com/podcatch/podcatch/pkg/config"
	"github.com/podcatch/podcatch/pkg/download"
	"github.com/podcatch/podcatch/pkg/feed"
	"github.com/podcatch/podcatch/pkg/fs"
	"github.com/podcatch/podcatch/pkg/library"
	"github.com/podcatch/podcatch/pkg/state"
)

type Opts struct {
	Dir   string `long:"dir" short:"d" description:"podcast root directory" env:"PODCATCH_DIR"`
	Debug bool   `long:"debug" description:"enable debug logging"`
}

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	log.SetFormatter(&log.TextFormatter{
		TimestampFormat: time.RFC3339,
		FullTimestamp:   true,
	})

	opts := Opts{}

	parser := flags.NewParser(&opts, flags.HelpFlag|flags.PassDoubleDash)
	parser.CommandHandler = func(cmd flags.Commander, args []string) error {
		if opts.Debug {
			log.SetLevel(log.DebugLevel)
		}

		log.WithFields(log.Fields{
			"version": version,
			"commit":  commit,
			"date":    date,
		}).Debug("running podcatch")

		return cmd.Execute(args)
	}

	mustAddCommand(parser, "subscribe", "subscribe to a podcast feed",
		"Fetch the feed at the given URL, remember it and download the most recent episodes.",
		&subscribeCommand{opts: &opts})
	mustAddCommand(parser, "list", "list subscriptions",
		"Print every subscribed podcast with its feed URL and episode count.",
		&listCommand{opts: &opts})
	mustAddCommand(parser, "download", "download episodes of a podcast",
		"Download missing episodes of a subscribed podcast (or any feed URL), all of them or selected by recency index.",
		&downloadCommand{opts: &opts})

	if _, err := parser.Parse(); err != nil {
		if flags.WroteHelp(err) {
			parser.WriteHelp(os.Stdout)
			return
		}

		log.WithError(err).Fatal("command failed")
	}
}

func mustAddCommand(parser *flags.Parser, name, short, long string, cmd interface{}) {
	if _, err := parser.AddCommand(name, short, long, cmd); err != nil {
		log.WithError(err).Fatalf("failed to register %q command", name)
	}
}

// app wires the download pipeline for a single command invocation.
type app struct {
	cfg   *config.Config
	feeds *feed.Client
	dl    *download.Downloader
	store *state.Store
	state *state.State
}

func newApp(ctx context.Context, opts *Opts) (*app, error) {
	rootDir, err := resolveRootDir(opts)
	if err != nil {
		return nil, err
	}

	log.Debugf("using podcast directory %q", rootDir)

	cfg, err := config.Load(rootDir)
	if err != nil {
		return nil, err
	}

	storage, err := fs.NewLocal(rootDir)
	if err != nil {
		return nil, err
	}

	var (
		feeds = feed.NewClient()
		dl    = download.New(storage, library.NewScanner(storage))
		store = state.NewStore(rootDir, feeds, dl)
	)

	st, err := store.Load(ctx, cfg)
	if err != nil {
		return nil, err
	}

	return &app{
		cfg:   cfg,
		feeds: feeds,
		dl:    dl,
		store: store,
		state: st,
	}, nil
}

func resolveRootDir(opts *Opts) (string, error) {
	if opts.Dir != "" {
		return opts.Dir, nil
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return "", errors.Wrap(err, "failed to locate home directory")
	}

	return filepath.Join(home, "Podcasts"), nil
}
