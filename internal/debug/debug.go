package debug

import (
	"io"
	"os"
	"path/filepath"
	"sync"

	"github.com/charmbracelet/log"
)

var (
	once   sync.Once
	logger *log.Logger
)

// Logger returns the singleton diagnostic logger. It writes to a file so the
// interactive surface stays clean; if the file cannot be opened, logs are
// discarded rather than polluting the terminal.
func Logger() *log.Logger {
	once.Do(func() {
		path := filepath.Join(os.TempDir(), "nexus-debug.log")
		f, err := os.OpenFile(path, os.O_RDWR|os.O_CREATE|os.O_APPEND, 0666)
		if err != nil {
			logger = log.New(io.Discard)
			return
		}
		logger = log.NewWithOptions(f, log.Options{
			ReportTimestamp: true,
			ReportCaller:    true,
			Level:           log.DebugLevel,
		})
	})
	return logger
}
