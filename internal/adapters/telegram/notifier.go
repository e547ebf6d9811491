package telegram

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/codeGROOVE-dev/retry"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/rs/zerolog"

	"homework-bot/internal/domain"
	"homework-bot/internal/infra/metrics"
)

// Sender отправляет подготовленное сообщение. Реализуется *tgbotapi.BotAPI.
type Sender interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
}

// SenderFactory создаёт клиента бота.
type SenderFactory func() (Sender, error)

// BotFactory возвращает фабрику клиента Bot API с таймаутом на каждый HTTP-вызов.
// Пустой endpoint означает tgbotapi.APIEndpoint.
func BotFactory(token, endpoint string, timeout time.Duration) SenderFactory {
	if endpoint == "" {
		endpoint = tgbotapi.APIEndpoint
	}
	return func() (Sender, error) {
		bot, err := tgbotapi.NewBotAPIWithClient(token, endpoint, &http.Client{Timeout: timeout})
		if err != nil {
			return nil, fmt.Errorf("создание бота: %w", err)
		}
		return bot, nil
	}
}

// Notifier доставляет сообщения в один чат.
type Notifier struct {
	chat     string
	chatID   int64
	factory  SenderFactory
	log      zerolog.Logger
	attempts uint
	delay    time.Duration

	mu     sync.Mutex
	sender Sender
}

type Option func(*Notifier)

// WithAttempts задаёт число попыток доставки одного сообщения.
func WithAttempts(attempts uint) Option {
	return func(n *Notifier) {
		if attempts > 0 {
			n.attempts = attempts
		}
	}
}

// WithRetryDelay задаёт базовую паузу между попытками.
func WithRetryDelay(d time.Duration) Option {
	return func(n *Notifier) {
		n.delay = d
	}
}

// NewNotifier создаёт нотификатор. chat — числовой id чата или @username канала.
// Клиент бота создаётся при первой отправке.
func NewNotifier(chat string, factory SenderFactory, logger zerolog.Logger, opts ...Option) *Notifier {
	chat = strings.TrimSpace(chat)
	chatID, _ := strconv.ParseInt(chat, 10, 64)
	n := &Notifier{
		chat:     chat,
		chatID:   chatID,
		factory:  factory,
		log:      logger,
		attempts: 3,
		delay:    time.Second,
	}
	for _, opt := range opts {
		opt(n)
	}
	return n
}

// SendMessage отправляет текст в чат. Ошибки пишутся в лог и наружу не передаются.
func (n *Notifier) SendMessage(ctx context.Context, text string) bool {
	parts := SplitMessage(text, messageLimit)
	if len(parts) == 0 {
		n.log.Warn().Msg("Пустое сообщение не отправлено")
		return false
	}
	for _, part := range parts {
		if err := n.sendWithRetry(ctx, part); err != nil {
			metrics.BotSendErrors.Inc()
			n.log.Error().Err(fmt.Errorf("%w: %w", domain.ErrNotify, err)).Str("chat", n.chat).Msg("Сообщение не отправлено")
			return false
		}
	}
	n.log.Info().Str("chat", n.chat).Int("parts", len(parts)).Msg("Сообщение отправлено")
	return true
}

func (n *Notifier) sendWithRetry(ctx context.Context, text string) error {
	return retry.Do(
		func() error {
			sender, err := n.client()
			if err != nil {
				return err
			}
			start := time.Now()
			_, err = sender.Send(n.newMessage(text))
			metrics.ObserveNetworkRequest("telegram", "sendMessage", start, err)
			return err
		},
		retry.Attempts(n.attempts),
		retry.Delay(n.delay),
		retry.MaxDelay(30*time.Second),
		retry.Context(ctx),
		retry.OnRetry(func(attempt uint, err error) {
			n.log.Warn().Err(err).Uint("attempt", attempt+1).Msg("Повторная отправка сообщения")
		}),
		retry.RetryIf(isTransient),
	)
}

func (n *Notifier) newMessage(text string) tgbotapi.MessageConfig {
	if strings.HasPrefix(n.chat, "@") {
		return tgbotapi.NewMessageToChannel(n.chat, text)
	}
	return tgbotapi.NewMessage(n.chatID, text)
}

func (n *Notifier) client() (Sender, error) {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.sender != nil {
		return n.sender, nil
	}
	sender, err := n.factory()
	if err != nil {
		return nil, err
	}
	n.sender = sender
	return sender, nil
}

// isTransient отсекает ответы Bot API, которые не исправятся повтором (неверный чат, токен и т.п.).
func isTransient(err error) bool {
	var apiErr *tgbotapi.Error
	if errors.As(err, &apiErr) {
		return apiErr.Code == http.StatusTooManyRequests || apiErr.Code >= http.StatusInternalServerError
	}
	return true
}

var _ domain.Notifier = (*Notifier)(nil)
