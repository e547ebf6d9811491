package homework

import (
	"bytes"
	"encoding/json"
	"fmt"

	"homework-bot/internal/domain"
)

// CheckResponse проверяет, что ответ API содержит список работ, и разбирает его.
func CheckResponse(resp domain.APIResponse) ([]domain.Homework, error) {
	raw := bytes.TrimSpace(resp.Homeworks)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return nil, fmt.Errorf("%w: не найден ключ homeworks", domain.ErrSchema)
	}
	if raw[0] != '[' {
		return nil, fmt.Errorf("%w: перечень домашек не является списком", domain.ErrSchema)
	}

	var items []json.RawMessage
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil, fmt.Errorf("%w: homeworks: %w", domain.ErrSchema, err)
	}

	homeworks := make([]domain.Homework, 0, len(items))
	for i, item := range items {
		item = bytes.TrimSpace(item)
		if len(item) == 0 || item[0] != '{' {
			return nil, fmt.Errorf("%w: homeworks[%d] не является объектом", domain.ErrSchema, i)
		}
		var hw domain.Homework
		if err := json.Unmarshal(item, &hw); err != nil {
			return nil, fmt.Errorf("%w: homeworks[%d]: %w", domain.ErrSchema, i, err)
		}
		homeworks = append(homeworks, hw)
	}
	return homeworks, nil
}

// isEmptyList сообщает, что homeworks присутствует и является пустым списком.
func isEmptyList(raw json.RawMessage) bool {
	var items []json.RawMessage
	if err := json.Unmarshal(raw, &items); err != nil {
		return false
	}
	return items != nil && len(items) == 0
}
