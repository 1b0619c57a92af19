// Package logging sets up the structured logger used by the CLI. The
// browser, firefox and store packages do not log, and the snss decoder
// never imports this package — a parser has no business writing to
// stderr.
package logging

import (
	"io"
	"os"

	"github.com/sirupsen/logrus"
)

// New returns a logger writing human-readable text to stderr at the given
// level. An empty level string defaults to "info".
func New(level string) *logrus.Logger {
	log := logrus.New()
	log.SetOutput(os.Stderr)
	log.SetFormatter(&logrus.TextFormatter{
		DisableTimestamp: false,
		FullTimestamp:    true,
	})

	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		lvl = logrus.InfoLevel
	}
	log.SetLevel(lvl)
	return log
}

// Discard returns a logger that drops everything, for tests and library
// callers that don't want tool output on their stderr.
func Discard() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}
