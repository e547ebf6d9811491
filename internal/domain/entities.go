package domain

import (
	"encoding/json"
	"maps"
)

// Homework описывает одну запись из списка homeworks.
// Пустое поле означает, что ключ в ответе отсутствовал.
type Homework struct {
	Name   string `json:"homework_name"`
	Status string `json:"status"`
}

// APIResponse хранит ответ API статусов домашних работ.
// Homeworks остаётся сырым JSON, чтобы валидатор мог отличить отсутствие поля от пустого списка.
type APIResponse struct {
	Homeworks   json.RawMessage `json:"homeworks"`
	CurrentDate int64           `json:"current_date"`
}

// PollState — состояние цикла опроса между итерациями.
type PollState struct {
	Cursor   int64
	Verdicts map[string]string
}

// NewPollState создаёт состояние с курсором cursor и пустой таблицей статусов.
func NewPollState(cursor int64) PollState {
	return PollState{Cursor: cursor, Verdicts: make(map[string]string)}
}

// Clone возвращает копию состояния с отдельной таблицей статусов.
func (s PollState) Clone() PollState {
	out := PollState{Cursor: s.Cursor, Verdicts: make(map[string]string, len(s.Verdicts))}
	maps.Copy(out.Verdicts, s.Verdicts)
	return out
}

// Changed сообщает, отличается ли статус работы от последнего известного.
func (s PollState) Changed(hw Homework) bool {
	prev, ok := s.Verdicts[hw.Name]
	return !ok || prev != hw.Status
}
