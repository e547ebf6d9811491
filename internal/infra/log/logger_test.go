package log

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestNewLoggerWritesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bot.log")
	logger, closer := NewLogger("prod", FileOptions{Path: path, MaxSizeMB: 1, MaxBackups: 1})
	logger.Info().Str("homework", "hw1").Msg("Сообщение отправлено")
	logger.Debug().Msg("не попадёт в лог")
	if err := closer.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("чтение лога: %v", err)
	}
	out := string(data)
	if !strings.Contains(out, "Сообщение отправлено") || !strings.Contains(out, `"homework":"hw1"`) {
		t.Fatalf("ожидали запись в файле, получили %q", out)
	}
	if strings.Contains(out, "не попадёт") {
		t.Fatalf("debug не должен писаться в prod: %q", out)
	}
}

func TestNewLoggerWithoutFile(t *testing.T) {
	_, closer := NewLogger("dev", FileOptions{})
	if err := closer.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}
}
