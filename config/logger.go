package config

import (
	"os"

	"github.com/cockroachdb/errors"
	log "github.com/sirupsen/logrus"
)

// NewLogger builds the logger every component writes to
func NewLogger(cfg Config) (*log.Logger, error) {
	level, err := log.ParseLevel(cfg.LogLevel)
	if err != nil {
		return nil, errors.Wrapf(err, "config: log level")
	}

	logger := log.New()
	logger.SetOutput(os.Stdout)
	logger.SetLevel(level)
	logger.SetFormatter(&log.TextFormatter{
		FullTimestamp: true,
	})

	return logger, nil
}
