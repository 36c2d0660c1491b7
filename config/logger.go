package config

import (
	"os"

	"github.com/sirupsen/logrus"
)

// NewLogger returns a logger tagged with component, e.g. "APP" or
// "SESSION-MANAGER". An unknown level falls back to info.
func NewLogger(component, level string) *logrus.Entry {
	logger := logrus.New()
	logger.SetOutput(os.Stdout)
	logger.SetFormatter(&logrus.TextFormatter{
		ForceColors:     true,
		FullTimestamp:   true,
		TimestampFormat: "2006/01/02 15:04:05",
	})

	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		lvl = logrus.InfoLevel
		defer logger.WithField("level", level).Warn("unknown log level, using info")
	}
	logger.SetLevel(lvl)

	return logger.WithField("component", component)
}
