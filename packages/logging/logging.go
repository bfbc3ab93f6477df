// Package logging holds the process-wide diagnostic logger.
package logging

import (
	"io"
	"os"
	"sync"

	"github.com/sirupsen/logrus"
)

var (
	logger *logrus.Logger
	once   sync.Once
)

// InitLogger configures the shared logger. Diagnostics go to stderr so that
// rendered commands on stdout stay pipeable.
func InitLogger(level logrus.Level) *logrus.Logger {
	l := GetLogger()
	l.SetLevel(level)
	return l
}

// GetLogger returns the shared logger, creating it at warn level on first use.
func GetLogger() *logrus.Logger {
	once.Do(func() {
		logger = logrus.New()
		logger.SetOutput(os.Stderr)
		logger.SetLevel(logrus.WarnLevel)
		logger.SetFormatter(&logrus.TextFormatter{
			DisableTimestamp:       true,
			DisableLevelTruncation: true,
		})
	})
	return logger
}

// SetOutput redirects the shared logger.
func SetOutput(w io.Writer) {
	GetLogger().SetOutput(w)
}

// SetNoColor disables colored level names.
func SetNoColor(noColor bool) {
	GetLogger().SetFormatter(&logrus.TextFormatter{
		DisableTimestamp:       true,
		DisableLevelTruncation: true,
		DisableColors:          noColor,
	})
}

// Level maps a -v count to a log level: warn by default, debug for -v and
// trace for -vv or more.
func Level(verbosity int) logrus.Level {
	switch {
	case verbosity >= 2:
		return logrus.TraceLevel
	case verbosity == 1:
		return logrus.DebugLevel
	default:
		return logrus.WarnLevel
	}
}

// Warnf adapts the shared logger to the resolver warning callback.
func Warnf(format string, args ...any) {
	GetLogger().Warnf(format, args...)
}
