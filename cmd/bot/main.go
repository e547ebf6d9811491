package main

import (
	"context"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	zlog "github.com/rs/zerolog/log"

	"homework-bot/internal/adapters/practicum"
	"homework-bot/internal/adapters/telegram"
	"homework-bot/internal/domain"
	"homework-bot/internal/infra/cache"
	"homework-bot/internal/infra/config"
	apphttp "homework-bot/internal/infra/http"
	"homework-bot/internal/infra/log"
	"homework-bot/internal/infra/metrics"
	"homework-bot/internal/usecase/homework"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		zlog.Fatal().Err(err).Msg("не удалось загрузить конфиг")
	}
	logger, closer := log.NewLogger(cfg.AppEnv, log.FileOptions{
		Path:       cfg.Log.File,
		MaxSizeMB:  cfg.Log.MaxSizeMB,
		MaxBackups: cfg.Log.MaxBackups,
	})
	defer closer.Close()

	if !cfg.CheckTokens(logger) {
		logger.Fatal().Msg("Программа принудительно остановлена.")
	}
	chat, err := cfg.ChatID()
	if err != nil {
		logger.Fatal().Err(err).Msg("Программа принудительно остановлена.")
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	metrics.MustRegister(prometheus.DefaultRegisterer)

	api, err := practicum.New(cfg.Practicum.Endpoint, cfg.Practicum.Token,
		practicum.WithTimeout(cfg.Practicum.Timeout),
		practicum.WithLogger(logger),
	)
	if err != nil {
		logger.Fatal().Err(err).Msg("не удалось создать клиента API")
	}
	notifier := telegram.NewNotifier(chat,
		telegram.BotFactory(cfg.Telegram.Token, "", cfg.Telegram.Timeout),
		logger,
		telegram.WithAttempts(cfg.Telegram.SendAttempts),
	)

	store := newCache(ctx, cfg.RedisAddr, logger)
	service := homework.NewService(api, notifier, store, logger, cfg.Poll.RetryPeriod, cfg.Poll.ErrorNotifyCooldown)

	if cfg.HTTPAddr != "" {
		srv := apphttp.NewServer(logger, func() any { return service.Snapshot() })
		srv.Start(ctx, cfg.HTTPAddr)
	}

	service.Run(ctx, domain.NewPollState(time.Now().Unix()))
}

func newCache(ctx context.Context, addr string, logger zerolog.Logger) domain.Cache {
	if addr == "" {
		return cache.NewMemory()
	}
	client := redis.NewClient(&redis.Options{Addr: addr})
	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		logger.Warn().Err(err).Str("addr", addr).Msg("Redis недоступен, используется кэш в памяти")
		_ = client.Close()
		return cache.NewMemory()
	}
	logger.Info().Str("addr", addr).Msg("Redis подключён")
	return cache.NewRedis(client, "homework-bot:")
}
