package internal

import (
	"io"
	"os"
	"path/filepath"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

// DefaultLogFile is the job's log destination relative to the working directory
const DefaultLogFile = "./logs/departures.log"

// InitLogging points the standard logrus logger at path, opened in append mode.
// An empty path or "-" logs to stdout. The returned closer releases the file.
func InitLogging(path string, level log.Level) (io.Closer, error) {
	log.SetFormatter(&log.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: "2006-01-02 15:04:05,000",
		DisableColors:   true,
	})
	log.SetLevel(level)

	if path == "" || path == "-" {
		log.SetOutput(os.Stdout)
		return io.NopCloser(nil), nil
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, errors.Wrapf(err, "creating log directory for %s", path)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, errors.Wrapf(err, "opening log file %s", path)
	}
	log.SetOutput(f)
	return f, nil
}
