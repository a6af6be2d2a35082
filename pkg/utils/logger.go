package utils

import (
	"io"
	"os"
	"strings"

	"github.com/sirupsen/logrus"
)

// InitLogger builds the process logger. An empty level falls back to LOG_LEVEL.
func InitLogger(level string) *logrus.Logger {
	return NewLogger(level, os.Stdout)
}

func NewLogger(level string, out io.Writer) *logrus.Logger {
	logger := logrus.New()

	logger.SetFormatter(&logrus.JSONFormatter{
		TimestampFormat: "2006-01-02 15:04:05",
	})

	if level == "" {
		level = os.Getenv("LOG_LEVEL")
	}
	switch strings.ToLower(level) {
	case "debug":
		logger.SetLevel(logrus.DebugLevel)
	case "warn", "warning":
		logger.SetLevel(logrus.WarnLevel)
	case "error":
		logger.SetLevel(logrus.ErrorLevel)
	default:
		logger.SetLevel(logrus.InfoLevel)
	}

	logger.SetOutput(out)
	return logger
}

// NullLogger discards everything; tests use it to keep output quiet.
func NullLogger() *logrus.Logger {
	return NewLogger("error", io.Discard)
}
