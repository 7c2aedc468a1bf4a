package logger

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/spf13/afero"
)

const (
	// DefaultDir is the debug log directory used when none is configured.
	DefaultDir = "logs"

	// LogFileName is the debug log file inside the log directory.
	LogFileName = "uml-garden.log"
)

// Options controls how the run logger is built.
type Options struct {
	// Debug enables debug-level logging to a file under Dir.
	Debug bool
	Dir   string
	// Stderr receives warnings when Debug is off. Defaults to os.Stderr.
	Stderr io.Writer
}

// Setup builds the logger for one run. Every record carries a run_id.
// The returned closer releases the log file, if one was opened.
func Setup(fs afero.Fs, opts Options) (*slog.Logger, io.Closer, error) {
	runID := uuid.NewString()

	if !opts.Debug {
		w := opts.Stderr
		if w == nil {
			w = os.Stderr
		}
		handler := slog.NewTextHandler(w, &slog.HandlerOptions{Level: slog.LevelWarn})
		return slog.New(handler).With("run_id", runID), nopCloser{}, nil
	}

	dir := opts.Dir
	if dir == "" {
		dir = DefaultDir
	}
	if err := fs.MkdirAll(dir, 0755); err != nil {
		return nil, nil, err
	}
	f, err := fs.OpenFile(filepath.Join(dir, LogFileName), os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return nil, nil, err
	}

	handler := slog.NewTextHandler(f, &slog.HandlerOptions{Level: slog.LevelDebug})
	return slog.New(handler).With("run_id", runID), f, nil
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
