package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"github.com/rs/zerolog"

	"homework-bot/internal/domain"
)

// AppConfig описывает конфигурацию бота.
type AppConfig struct {
	AppEnv string `envconfig:"APP_ENV" default:"prod"`

	Practicum struct {
		Token    string        `envconfig:"PRACTICUM_TOKEN"`
		Endpoint string        `envconfig:"PRACTICUM_ENDPOINT" default:"https://practicum.yandex.ru/api/user_api/homework_statuses/"`
		Timeout  time.Duration `envconfig:"PRACTICUM_TIMEOUT" default:"15s"`
	} `envconfig:""`

	Telegram struct {
		Token        string        `envconfig:"TELEGRAM_TOKEN"`
		ChatID       string        `envconfig:"TELEGRAM_CHAT_ID"`
		Timeout      time.Duration `envconfig:"TELEGRAM_TIMEOUT" default:"15s"`
		SendAttempts uint          `envconfig:"TELEGRAM_SEND_ATTEMPTS" default:"3"`
	} `envconfig:""`

	Poll struct {
		RetryPeriod         time.Duration `envconfig:"RETRY_PERIOD" default:"10m"`
		ErrorNotifyCooldown time.Duration `envconfig:"ERROR_NOTIFY_COOLDOWN" default:"0s"`
	} `envconfig:""`

	Log struct {
		File       string `envconfig:"LOG_FILE" default:"homework_bot.log"`
		MaxSizeMB  int    `envconfig:"LOG_MAX_SIZE_MB" default:"50"`
		MaxBackups int    `envconfig:"LOG_MAX_BACKUPS" default:"5"`
	} `envconfig:""`

	HTTPAddr  string `envconfig:"HTTP_ADDR" default:":8080"`
	RedisAddr string `envconfig:"REDIS_ADDR"`
}

// Load загружает конфиг из окружения. Переменные из файла .env не перекрывают уже заданные.
func Load() (AppConfig, error) {
	_ = godotenv.Load()

	var cfg AppConfig
	if err := envconfig.Process("", &cfg); err != nil {
		return AppConfig{}, fmt.Errorf("%w: %w", domain.ErrConfig, err)
	}
	cfg.applyLegacyNames()
	return cfg, nil
}

// legacyNames: старые имена переменных окружения. Читаются, только если новое имя не задано.
var legacyNames = []struct {
	name  string
	field func(*AppConfig) *string
}{
	{"TOKEN", func(c *AppConfig) *string { return &c.Practicum.Token }},
	{"VARVARA_TOKEN", func(c *AppConfig) *string { return &c.Telegram.Token }},
	{"CHAT_ID", func(c *AppConfig) *string { return &c.Telegram.ChatID }},
}

func (c *AppConfig) applyLegacyNames() {
	for _, legacy := range legacyNames {
		field := legacy.field(c)
		if strings.TrimSpace(*field) != "" {
			continue
		}
		if v, ok := os.LookupEnv(legacy.name); ok {
			*field = v
		}
	}
}

// CheckTokens проверяет наличие обязательных переменных окружения.
// Об отсутствии пишет в лог с критическим уровнем, процесс не завершает.
func (c AppConfig) CheckTokens(logger zerolog.Logger) bool {
	missing := c.MissingTokens()
	if len(missing) == 0 {
		return true
	}
	logger.WithLevel(zerolog.FatalLevel).
		Strs("missing", missing).
		Msg("Проверь доступность переменных окружения!")
	return false
}

// MissingTokens возвращает имена незаданных обязательных переменных.
func (c AppConfig) MissingTokens() []string {
	var missing []string
	required := []struct {
		name  string
		value string
	}{
		{"PRACTICUM_TOKEN", c.Practicum.Token},
		{"TELEGRAM_TOKEN", c.Telegram.Token},
		{"TELEGRAM_CHAT_ID", c.Telegram.ChatID},
	}
	for _, r := range required {
		if strings.TrimSpace(r.value) == "" {
			missing = append(missing, r.name)
		}
	}
	return missing
}

// ChatID возвращает получателя сообщений: числовой id чата или @username канала.
func (c AppConfig) ChatID() (string, error) {
	chat := strings.TrimSpace(c.Telegram.ChatID)
	if strings.HasPrefix(chat, "@") {
		if len(chat) == 1 || strings.ContainsAny(chat, " \t") {
			return "", fmt.Errorf("%w: TELEGRAM_CHAT_ID: некорректное имя канала %q", domain.ErrConfig, chat)
		}
		return chat, nil
	}
	if _, err := strconv.ParseInt(chat, 10, 64); err != nil {
		return "", fmt.Errorf("%w: TELEGRAM_CHAT_ID: %w", domain.ErrConfig, err)
	}
	return chat, nil
}
