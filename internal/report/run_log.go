package report

import (
	"os"
	"path/filepath"

	"github.com/rs/zerolog"
)

// RunLogger appends one JSON object per event to a run log file. Events are
// written at zerolog.NoLevel with an explicit level field, so the global
// level set for the server log never empties the run log.
type RunLogger struct {
	file   *os.File
	logger zerolog.Logger
}

func NewRunLogger(path string) (*RunLogger, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil && dir != "." {
		return nil, err
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, err
	}
	logger := zerolog.New(f).With().Timestamp().Logger()
	return &RunLogger{file: f, logger: logger}, nil
}

func (l *RunLogger) Close() {
	if l == nil || l.file == nil {
		return
	}
	_ = l.file.Close()
}

func (l *RunLogger) Info(event string, fields map[string]interface{}) {
	if l == nil || l.file == nil {
		return
	}
	l.event(zerolog.InfoLevel, event, fields)
}

func (l *RunLogger) Warn(event string, fields map[string]interface{}) {
	if l == nil || l.file == nil {
		return
	}
	l.event(zerolog.WarnLevel, event, fields)
}

func (l *RunLogger) event(level zerolog.Level, event string, fields map[string]interface{}) {
	l.logger.WithLevel(zerolog.NoLevel).
		Str(zerolog.LevelFieldName, level.String()).
		Str("event", event).
		Fields(fields).
		Send()
}
