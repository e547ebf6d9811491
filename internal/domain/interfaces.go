package domain

import (
	"context"
	"time"
)

// HomeworkAPI запрашивает статусы работ начиная с момента cursor.
type HomeworkAPI interface {
	GetAPIAnswer(ctx context.Context, cursor int64) (APIResponse, error)
}

// Notifier доставляет текст в чат. Возвращает false, если доставка не удалась.
type Notifier interface {
	SendMessage(ctx context.Context, text string) bool
}

// Cache выполняет действие не чаще одного раза за ttl для каждого ключа.
type Cache interface {
	Once(key string, ttl time.Duration, fn func() error) error
}
