package log

import (
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
	"gopkg.in/natefinch/lumberjack.v2"
)

// FileOptions задаёт файл лога и границы ротации.
type FileOptions struct {
	Path       string
	MaxSizeMB  int
	MaxBackups int
}

// NewLogger создаёт настроенный zerolog.
// В dev пишет в консоль в читаемом виде, иначе JSON в stdout. Если задан файл, дублирует запись туда с ротацией.
func NewLogger(appEnv string, file FileOptions) (zerolog.Logger, io.Closer) {
	level := zerolog.InfoLevel
	var console io.Writer = os.Stdout
	if appEnv == "dev" {
		level = zerolog.DebugLevel
		console = zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.RFC3339}
	}
	zerolog.TimeFieldFormat = time.RFC3339

	writers := []io.Writer{console}
	var closer io.Closer = nopCloser{}
	if rotated := newRotatingFile(file); rotated != nil {
		writers = append(writers, rotated)
		closer = rotated
	}

	logger := zerolog.New(zerolog.MultiLevelWriter(writers...)).With().Timestamp().Logger().Level(level)
	return logger, closer
}

func newRotatingFile(file FileOptions) *lumberjack.Logger {
	if file.Path == "" {
		return nil
	}
	return &lumberjack.Logger{
		Filename:   file.Path,
		MaxSize:    file.MaxSizeMB,
		MaxBackups: file.MaxBackups,
	}
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
