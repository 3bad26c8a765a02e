package engine

import (
	"io"
	"os"

	"github.com/sirupsen/logrus"
)

// Logger is the engine's package-wide logger (§5, §10). Apart from
// pkg/milp, which logs its solver-unavailable warning through logrus's
// standard logger, the other packages do not log.
var Logger = logrus.New()

func init() {
	Logger.SetOutput(os.Stderr)
	Logger.SetLevel(logrus.InfoLevel)
	Logger.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: "2006-01-02 15:04:05",
	})
}

// SetLogLevel parses and applies level (e.g. "debug", "warn").
func SetLogLevel(level string) error {
	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		return err
	}
	Logger.SetLevel(lvl)
	return nil
}

// SetLogOutput redirects log output, mainly for tests.
func SetLogOutput(w io.Writer) {
	Logger.SetOutput(w)
}

func withScenario(name string) *logrus.Entry {
	return Logger.WithField("scenario", name)
}
