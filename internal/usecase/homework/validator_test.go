package homework

import (
	"errors"
	"testing"

	"homework-bot/internal/domain"
)

func TestCheckResponse(t *testing.T) {
	resp := domain.APIResponse{Homeworks: []byte(`[{"homework_name":"hw1","status":"approved","id":7},{"homework_name":"hw2","status":"rejected"}]`)}
	homeworks, err := CheckResponse(resp)
	if err != nil {
		t.Fatalf("не ожидали ошибку: %v", err)
	}
	if len(homeworks) != 2 || homeworks[0] != (domain.Homework{Name: "hw1", Status: "approved"}) {
		t.Fatalf("неожиданный результат: %+v", homeworks)
	}
}

func TestCheckResponseEmptyList(t *testing.T) {
	homeworks, err := CheckResponse(domain.APIResponse{Homeworks: []byte(`[]`)})
	if err != nil {
		t.Fatalf("пустой список корректен: %v", err)
	}
	if homeworks == nil || len(homeworks) != 0 {
		t.Fatalf("ожидали пустой список, а не nil, получили %#v", homeworks)
	}
}

func TestCheckResponseSchemaErrors(t *testing.T) {
	cases := map[string]string{
		"absent":       ``,
		"null":         `null`,
		"object":       `{"homework_name":"hw1"}`,
		"string":       `"hw1"`,
		"not objects":  `[1, 2]`,
		"wrong fields": `[{"homework_name":1}]`,
	}
	for name, raw := range cases {
		t.Run(name, func(t *testing.T) {
			var resp domain.APIResponse
			if raw != "" {
				resp.Homeworks = []byte(raw)
			}
			if _, err := CheckResponse(resp); !errors.Is(err, domain.ErrSchema) {
				t.Fatalf("ожидали ErrSchema, получили %v", err)
			}
		})
	}
}

func TestIsEmptyList(t *testing.T) {
	cases := map[string]bool{
		``:          false,
		`null`:      false,
		`[]`:        true,
		` [ ] `:     true,
		`[{}]`:      false,
		`{}`:        false,
		`"nothing"`: false,
	}
	for raw, expected := range cases {
		if got := isEmptyList([]byte(raw)); got != expected {
			t.Fatalf("isEmptyList(%q) = %v, ожидали %v", raw, got, expected)
		}
	}
}
