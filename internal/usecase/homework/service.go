package homework

import (
	"context"
	"errors"
	"fmt"
	"maps"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"homework-bot/internal/domain"
	"homework-bot/internal/infra/metrics"
)

// Snapshot описывает последнее состояние цикла опроса для /healthz.
type Snapshot struct {
	Cursor     int64             `json:"cursor"`
	LastPollAt time.Time         `json:"last_poll_at"`
	LastError  string            `json:"last_error,omitempty"`
	Iterations int64             `json:"iterations"`
	Failures   int64             `json:"failures"`
	Homeworks  map[string]string `json:"homeworks"`
}

// Service опрашивает API и сообщает об изменении статусов работ.
type Service struct {
	api      domain.HomeworkAPI
	notifier domain.Notifier
	cache    domain.Cache
	log      zerolog.Logger
	interval time.Duration
	cooldown time.Duration

	mu       sync.RWMutex
	snapshot Snapshot
}

// NewService создаёт сервис. cooldown > 0 подавляет повторы одинакового сообщения о сбое в пределах окна.
func NewService(api domain.HomeworkAPI, notifier domain.Notifier, cache domain.Cache, logger zerolog.Logger, interval, cooldown time.Duration) *Service {
	return &Service{
		api:      api,
		notifier: notifier,
		cache:    cache,
		log:      logger,
		interval: interval,
		cooldown: cooldown,
		snapshot: Snapshot{Homeworks: map[string]string{}},
	}
}

// Run крутит цикл опроса до отмены ctx и возвращает последнее состояние.
// Ошибка итерации не останавливает цикл: она логируется, о ней пишется в чат, и опрос повторяется через interval.
func (s *Service) Run(ctx context.Context, state domain.PollState) domain.PollState {
	s.log.Info().Int64("from_date", state.Cursor).Dur("interval", s.interval).Msg("Бот запущен")
	for {
		log := s.iterationLogger()
		next, err := s.iterate(ctx, log, state)
		if err != nil {
			if ctx.Err() != nil {
				break
			}
			metrics.PollIterations.WithLabelValues("error").Inc()
			s.reportFailure(ctx, log, err)
		}
		state = next
		s.record(state, err)

		if !sleep(ctx, s.interval) {
			break
		}
	}
	s.log.Info().Int64("from_date", state.Cursor).Msg("Остановка цикла опроса")
	return state
}

// Iterate выполняет одну итерацию опроса без паузы и без уведомления о сбое.
func (s *Service) Iterate(ctx context.Context, state domain.PollState) (domain.PollState, error) {
	return s.iterate(ctx, s.iterationLogger(), state)
}

// Snapshot возвращает копию последнего состояния.
func (s *Service) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := s.snapshot
	out.Homeworks = maps.Clone(s.snapshot.Homeworks)
	return out
}

func (s *Service) iterate(ctx context.Context, log zerolog.Logger, state domain.PollState) (domain.PollState, error) {
	resp, err := s.api.GetAPIAnswer(ctx, state.Cursor)
	if err != nil {
		return state, fmt.Errorf("запрос к API: %w", err)
	}

	if isEmptyList(resp.Homeworks) {
		metrics.PollIterations.WithLabelValues("empty").Inc()
		log.Debug().Int64("from_date", state.Cursor).Msg("Новых статусов нет")
		return state, nil
	}

	homeworks, err := CheckResponse(resp)
	if err != nil {
		return state, err
	}

	next := state.Clone()
	changed := 0
	var malformed []error
	for i, hw := range homeworks {
		message, err := ParseStatus(hw)
		if err != nil {
			if !errors.Is(err, domain.ErrUnknownVerdict) {
				log.Error().Err(err).Int("index", i).Msg("Запись о работе пропущена")
				malformed = append(malformed, fmt.Errorf("homeworks[%d]: %w", i, err))
				continue
			}
			log.Error().Err(err).Str("homework", hw.Name).Msg("Пришёл несуществующий статус")
		}
		if !next.Changed(hw) {
			continue
		}
		changed++
		metrics.StatusChanges.WithLabelValues(hw.Status).Inc()
		log.Info().Str("homework", hw.Name).Str("status", hw.Status).Msg("Изменился статус работы")
		if s.notifier.SendMessage(ctx, message) {
			metrics.MessagesSent.WithLabelValues("status").Inc()
		}
		next.Verdicts[hw.Name] = hw.Status
	}
	if changed == 0 {
		log.Info().Msg("Статус работ не изменился")
	}

	// Курсор сдвигается и при битых записях, иначе следующий опрос вернёт то же окно.
	next.Cursor = resp.CurrentDate
	metrics.PollCursor.Set(float64(next.Cursor))
	if len(malformed) > 0 {
		return next, errors.Join(malformed...)
	}
	metrics.PollIterations.WithLabelValues("ok").Inc()
	return next, nil
}

func (s *Service) reportFailure(ctx context.Context, log zerolog.Logger, err error) {
	message := FailureMessage(err)
	log.Error().Err(err).Msg("Сбой в работе программы")

	cacheErr := s.cache.Once("failure:"+message, s.cooldown, func() error {
		if !s.notifier.SendMessage(ctx, message) {
			return domain.ErrNotify
		}
		metrics.MessagesSent.WithLabelValues("failure").Inc()
		return nil
	})
	if cacheErr != nil && !errors.Is(cacheErr, domain.ErrNotify) {
		log.Warn().Err(cacheErr).Msg("Кэш недоступен, сообщение о сбое отправляется без проверки повтора")
		if s.notifier.SendMessage(ctx, message) {
			metrics.MessagesSent.WithLabelValues("failure").Inc()
		}
	}
}

func (s *Service) record(state domain.PollState, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.snapshot.Cursor = state.Cursor
	s.snapshot.LastPollAt = time.Now()
	s.snapshot.Iterations++
	s.snapshot.LastError = ""
	if err != nil {
		s.snapshot.Failures++
		s.snapshot.LastError = err.Error()
	}
	s.snapshot.Homeworks = maps.Clone(state.Verdicts)
}

func (s *Service) iterationLogger() zerolog.Logger {
	return s.log.With().Str("iteration", uuid.NewString()).Logger()
}

func sleep(ctx context.Context, d time.Duration) bool {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-timer.C:
		return true
	}
}
