package homework

import (
	"fmt"

	"homework-bot/internal/domain"
)

var homeworkVerdicts = map[string]string{
	"approved":  "Работа проверена: ревьюеру всё понравилось. Ура!",
	"reviewing": "Работа взята на проверку ревьюером.",
	"rejected":  "Работа проверена: у ревьюера есть замечания.",
}

const unknownVerdict = "Пришёл несуществующий статус."

// Verdict возвращает текст вердикта для статуса.
func Verdict(status string) (string, bool) {
	verdict, ok := homeworkVerdicts[status]
	return verdict, ok
}

// ParseStatus собирает сообщение об изменении статуса работы.
// Для неизвестного статуса возвращает запасное сообщение вместе с ошибкой domain.ErrUnknownVerdict.
func ParseStatus(hw domain.Homework) (string, error) {
	if hw.Name == "" {
		return "", fmt.Errorf("%w: нет ключа homework_name", domain.ErrSchema)
	}
	if hw.Status == "" {
		return "", fmt.Errorf("%w: нет ключа status у работы %q", domain.ErrSchema, hw.Name)
	}
	verdict, ok := Verdict(hw.Status)
	if !ok {
		return statusMessage(hw.Name, unknownVerdict), fmt.Errorf("%w: %q", domain.ErrUnknownVerdict, hw.Status)
	}
	return statusMessage(hw.Name, verdict), nil
}

func statusMessage(name, verdict string) string {
	return fmt.Sprintf("Изменился статус проверки работы \"%s\". %s", name, verdict)
}

// FailureMessage формирует текст уведомления о сбое.
func FailureMessage(err error) string {
	return fmt.Sprintf("Сбой в работе программы: %v", err)
}
