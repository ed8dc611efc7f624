// Package logger builds the process logger from the environment.
package logger

import (
	"io"
	"os"
	"strings"

	"github.com/sirupsen/logrus"
)

// New returns a logger writing to stdout. LOG_LEVEL selects the level
// (default info) and LOG_FORMAT=json switches to the JSON formatter.
func New() *logrus.Logger {
	return NewWithOutput(os.Stdout)
}

// NewWithOutput is New with an explicit destination.
func NewWithOutput(out io.Writer) *logrus.Logger {
	log := logrus.New()

	logLevel, ok := os.LookupEnv("LOG_LEVEL")
	if !ok {
		logLevel = "info"
	}
	level, err := logrus.ParseLevel(logLevel)
	if err != nil {
		level = logrus.InfoLevel
	}
	log.SetLevel(level)

	if strings.ToLower(os.Getenv("LOG_FORMAT")) == "json" {
		log.SetFormatter(&logrus.JSONFormatter{})
	} else {
		log.SetFormatter(&logrus.TextFormatter{
			FullTimestamp: true,
		})
	}

	log.SetOutput(out)
	return log
}
