package logging

import (
	"fmt"
	"io"
	"os"

	"github.com/sirupsen/logrus"
)

// Log is the application wide console logger.
var Log = logrus.NewEntry(newLogger(os.Stderr))

func newLogger(out io.Writer) *logrus.Logger {
	l := logrus.New()
	l.SetOutput(out)
	l.SetFormatter(&logrus.TextFormatter{DisableTimestamp: true})
	l.SetLevel(logrus.InfoLevel)
	if lvl, err := logrus.ParseLevel(os.Getenv("LOG_LEVEL")); err == nil {
		l.SetLevel(lvl)
	}
	return l
}

// Init configures level and format of Log. An empty level keeps the
// current one.
func Init(level, format string) error {
	if level != "" {
		lvl, err := logrus.ParseLevel(level)
		if err != nil {
			return fmt.Errorf("invalid log level %q: %w", level, err)
		}
		Log.Logger.SetLevel(lvl)
	}

	switch format {
	case "", "text":
		Log.Logger.SetFormatter(&logrus.TextFormatter{DisableTimestamp: true})
	case "json":
		Log.Logger.SetFormatter(&logrus.JSONFormatter{})
	default:
		return fmt.Errorf("unknown log format: %s (supported: text, json)", format)
	}
	return nil
}

// SetOutput redirects Log, mostly for tests.
func SetOutput(w io.Writer) {
	Log.Logger.SetOutput(w)
}
