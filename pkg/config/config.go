package config

import (
	"os"
	"path/filepath"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"
)

const (
	// FileName is the config file kept at the root of the podcast directory.
	FileName = ".config"

	DefaultAutoDownloadLimit = 1
	DefaultAutoDeleteLimit   = 0
)

// Config holds per-user limits read once at startup. Immutable after Load.
type Config struct {
	// AutoDownloadLimit is how many of the most recent episodes to pull
	// automatically when subscribing or refreshing a feed.
	AutoDownloadLimit int
	// AutoDeleteLimit is read for compatibility but not acted on yet.
	AutoDeleteLimit int
}

// Load reads the config file from rootDir, creating a default one if none
// exists. Unknown keys are ignored and unparsable values keep their
// defaults. Only an I/O failure on an existing file is an error.
func Load(rootDir string) (*Config, error) {
	cfg := &Config{
		AutoDownloadLimit: DefaultAutoDownloadLimit,
		AutoDeleteLimit:   DefaultAutoDeleteLimit,
	}

	path := filepath.Join(rootDir, FileName)

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		if err := writeDefault(rootDir, path); err != nil {
			return nil, err
		}
		return cfg, nil
	}
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read config file %s", path)
	}

	var doc map[string]interface{}
	if err := yaml.Unmarshal(data, &doc); err != nil {
		log.WithError(err).Warnf("ignoring malformed config file %s", path)
		return cfg, nil
	}

	if limit, ok := intValue(doc["auto_download_limit"]); ok {
		cfg.AutoDownloadLimit = limit
	}

	if limit, ok := intValue(doc["auto_delete_limit"]); ok {
		cfg.AutoDeleteLimit = limit
	}

	return cfg, nil
}

func writeDefault(rootDir, path string) error {
	if err := os.MkdirAll(rootDir, 0755); err != nil {
		return errors.Wrapf(err, "failed to create podcast directory %s", rootDir)
	}

	log.Debugf("creating default config file %s", path)

	content := []byte("auto_download_limit: 1\n")
	if err := os.WriteFile(path, content, 0644); err != nil {
		return errors.Wrapf(err, "failed to create config file %s", path)
	}

	return nil
}

func intValue(v interface{}) (int, bool) {
	switch val := v.(type) {
	case int:
		return val, true
	case int64:
		return int(val), true
	default:
		return 0, false
	}
}
