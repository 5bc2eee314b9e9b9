package cli

import (
	"fmt"
	"io"

	"github.com/sirupsen/logrus"

	"github.com/leeovery/grocer/internal/config"
)

// newLogger builds the stderr logger. --verbose forces debug and --quiet
// raises the floor to warnings, whatever the configured level.
func newLogger(w io.Writer, cfg config.LogConfig, opts GlobalOpts) (*logrus.Logger, error) {
	logger := logrus.New()
	logger.SetOutput(w)

	lvl, err := logrus.ParseLevel(cfg.Level)
	if err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", cfg.Level, err)
	}
	switch {
	case opts.Verbose:
		lvl = logrus.DebugLevel
	case opts.Quiet && lvl > logrus.WarnLevel:
		lvl = logrus.WarnLevel
	}
	logger.SetLevel(lvl)

	switch cfg.Format {
	case "json":
		logger.SetFormatter(&logrus.JSONFormatter{})
	default:
		logger.SetFormatter(&logrus.TextFormatter{DisableTimestamp: true})
	}
	return logger, nil
}
