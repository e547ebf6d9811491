package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrConfig возвращается, если не хватает обязательных переменных окружения.
	ErrConfig = errors.New("некорректная конфигурация")
	// ErrAPIAccess возвращается, если запрос к API не удалось выполнить.
	ErrAPIAccess = errors.New("не удалось получить доступ к API")
	// ErrAPIStatus сопоставляется с любым *APIStatusError.
	ErrAPIStatus = errors.New("код ответа API не 200")
	// ErrTimeout помечает сетевые вызовы, прерванные по таймауту.
	ErrTimeout = errors.New("истекло время ожидания")
	// ErrSchema возвращается, если ответ API не соответствует ожидаемой структуре.
	ErrSchema = errors.New("неожиданная структура ответа API")
	// ErrUnknownVerdict возвращается для статуса, которого нет в справочнике вердиктов.
	ErrUnknownVerdict = errors.New("неизвестный статус работы")
	// ErrNotify описывает неудачную доставку сообщения. Наружу из нотификатора не выходит.
	ErrNotify = errors.New("сообщение не отправлено")
)

// APIStatusError содержит код ответа API, отличный от 200.
type APIStatusError struct {
	Code int
	Body string
}

func (e *APIStatusError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("%s: %d", ErrAPIStatus, e.Code)
	}
	return fmt.Sprintf("%s: %d: %s", ErrAPIStatus, e.Code, e.Body)
}

// Is позволяет проверять ошибку через errors.Is(err, ErrAPIStatus).
func (e *APIStatusError) Is(target error) bool {
	return target == ErrAPIStatus
}
