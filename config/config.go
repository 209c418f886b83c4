// Package config reads runtime settings from the environment.
package config

import (
	"io"

	"github.com/caarlos0/env/v11"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/they4kman/gosweep/score"
)

const (
	BackendFile   = "file"
	BackendSQLite = "sqlite"
)

type Config struct {
	ScoresDir    string `env:"GOSWEEP_SCORES_DIR" envDefault:"scores"`
	ScoreBackend string `env:"GOSWEEP_SCORE_BACKEND" envDefault:"file"`
	ScoresDB     string `env:"GOSWEEP_SCORES_DB" envDefault:"scores.db"`
	LogLevel     string `env:"GOSWEEP_LOG_LEVEL" envDefault:"warn"`
}

// Load parses the environment.
func Load() (Config, error) {
	var config Config
	if err := env.Parse(&config); err != nil {
		return Config{}, errors.Wrap(err, "parse env")
	}
	return config, nil
}

// Logger builds a text logger writing to out at the configured level.
func (config Config) Logger(out io.Writer) (*logrus.Logger, error) {
	level, err := logrus.ParseLevel(config.LogLevel)
	if err != nil {
		return nil, err
	}

	log := logrus.New()
	log.SetOutput(out)
	log.SetLevel(level)
	log.SetFormatter(&logrus.TextFormatter{DisableTimestamp: true})
	return log, nil
}

// OpenStore opens the configured score backend. The returned close function
// is never nil.
func (config Config) OpenStore() (score.Store, func() error, error) {
	switch config.ScoreBackend {
	case BackendFile:
		return score.NewFileStore(config.ScoresDir), func() error { return nil }, nil
	case BackendSQLite:
		store, err := score.OpenSQLite(config.ScoresDB)
		if err != nil {
			return nil, nil, err
		}
		return store, store.Close, nil
	}
	return nil, nil, errors.Errorf("unknown score backend %q", config.ScoreBackend)
}
