package logger

import (
	"io"

	"github.com/sirupsen/logrus"

	"sitesearch/pkg/config"
)

// New returns a JSON logger at the level named by LOG_LEVEL.
func New() *logrus.Logger {
	l := logrus.New()
	l.SetFormatter(&logrus.JSONFormatter{})
	l.SetLevel(config.GetLogLevel())
	return l
}

// NewWithService tags every entry with the binary's service name.
func NewWithService(service string) *logrus.Entry {
	return New().WithField("service", service)
}

// Discard is a logger for tests and for shells that own the terminal.
func Discard() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}
