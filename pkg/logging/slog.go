package logging

import (
	"io"
	"log/slog"
)

// Setup installs the default slog logger. Without debug, logs are
// discarded. With debug, they go to a rotating file at path. The returned
// closer must be closed on exit; it is nil when nothing was opened.
func Setup(debug bool, path string, opts ...Option) (io.Closer, error) {
	if !debug {
		slog.SetDefault(slog.New(slog.DiscardHandler))
		return nil, nil
	}

	file, err := NewRotatingFile(path, opts...)
	if err != nil {
		return nil, err
	}

	slog.SetDefault(slog.New(slog.NewTextHandler(file, &slog.HandlerOptions{Level: slog.LevelDebug})))

	return file, nil
}
