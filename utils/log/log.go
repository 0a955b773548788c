package log

import (
	"io"
	"os"

	"github.com/sirupsen/logrus"
	"gopkg.in/natefinch/lumberjack.v2"
)

// global accessible logger
var (
	logger *logrus.Logger
	Log    *logrus.Entry
)

// This init function is only for testing cases, where the entry point is not
// main function. Unit test will fail with nil pointer dereference if we don't
// init here.
func init() {
	InitLogger("", 0)
}

// InitLogger sets up the process-wide logger. When path is non-empty the log
// is written both to stderr and to a size-rotated file at path; maxSizeMb
// bounds each rotated chunk.
func InitLogger(path string, maxSizeMb int) {
	logger = logrus.New()
	logger.SetFormatter(&logrus.TextFormatter{
		FullTimestamp: true,
	})

	out := io.Writer(os.Stderr)
	if path != "" {
		rotated := &lumberjack.Logger{
			Filename:   path,
			MaxSize:    maxSizeMb,
			MaxBackups: 3,
		}
		out = io.MultiWriter(os.Stderr, rotated)
	}
	logger.SetOutput(out)

	Log = logger.WithFields(logrus.Fields{"service": "boardcast"})
}
