package homework

import (
	"errors"
	"fmt"
	"testing"

	"homework-bot/internal/domain"
)

func TestParseStatus(t *testing.T) {
	cases := map[string]string{
		"approved":  `Изменился статус проверки работы "hw1". Работа проверена: ревьюеру всё понравилось. Ура!`,
		"reviewing": `Изменился статус проверки работы "hw1". Работа взята на проверку ревьюером.`,
		"rejected":  `Изменился статус проверки работы "hw1". Работа проверена: у ревьюера есть замечания.`,
	}
	for status, expected := range cases {
		got, err := ParseStatus(domain.Homework{Name: "hw1", Status: status})
		if err != nil {
			t.Fatalf("не ожидали ошибку для %s: %v", status, err)
		}
		if got != expected {
			t.Fatalf("ожидали %q, получили %q", expected, got)
		}
	}
}

func TestParseStatusUnknownVerdict(t *testing.T) {
	got, err := ParseStatus(domain.Homework{Name: "hw1", Status: "lost"})
	if !errors.Is(err, domain.ErrUnknownVerdict) {
		t.Fatalf("ожидали ErrUnknownVerdict, получили %v", err)
	}
	want := `Изменился статус проверки работы "hw1". Пришёл несуществующий статус.`
	if got != want {
		t.Fatalf("ожидали запасное сообщение %q, получили %q", want, got)
	}
}

func TestParseStatusMissingKeys(t *testing.T) {
	for _, hw := range []domain.Homework{{Status: "approved"}, {Name: "hw1"}} {
		if _, err := ParseStatus(hw); !errors.Is(err, domain.ErrSchema) {
			t.Fatalf("ожидали ErrSchema для %+v, получили %v", hw, err)
		}
	}
}

func TestFailureMessage(t *testing.T) {
	got := FailureMessage(fmt.Errorf("запрос к API: %w", domain.ErrAPIAccess))
	if got != "Сбой в работе программы: запрос к API: не удалось получить доступ к API" {
		t.Fatalf("неожиданный текст: %q", got)
	}
}
