package logger

import (
	"io"
	"strings"

	"github.com/sirupsen/logrus"
)

// New builds a logger writing to out. Production and staging get JSON lines,
// everything else a human-readable text format. Unknown levels fall back to info.
func New(level string, environment string, out io.Writer) *logrus.Logger {
	log := logrus.New()
	log.SetOutput(out)

	parsed, err := logrus.ParseLevel(strings.ToLower(strings.TrimSpace(level)))
	if err != nil {
		log.SetLevel(logrus.InfoLevel)
		log.Warnf("invalid log level %q, defaulting to info", level)
	} else {
		log.SetLevel(parsed)
	}

	switch strings.ToLower(environment) {
	case "production", "staging":
		log.SetFormatter(&logrus.JSONFormatter{
			TimestampFormat: "2006-01-02T15:04:05.000Z07:00",
		})
	default:
		log.SetFormatter(&logrus.TextFormatter{
			FullTimestamp:   true,
			TimestampFormat: "2006-01-02 15:04:05",
		})
	}
	return log
}
