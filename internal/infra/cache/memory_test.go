package cache

import (
	"errors"
	"testing"
	"time"
)

func TestMemoryOnceSuppressesWithinTTL(t *testing.T) {
	now := time.Unix(1000, 0)
	c := NewMemory()
	c.now = func() time.Time { return now }

	calls := 0
	fn := func() error { calls++; return nil }
	for i := 0; i < 3; i++ {
		if err := c.Once("k", time.Minute, fn); err != nil {
			t.Fatalf("не ожидали ошибку: %v", err)
		}
	}
	if calls != 1 {
		t.Fatalf("ожидали один вызов, получили %d", calls)
	}

	now = now.Add(time.Minute)
	if err := c.Once("k", time.Minute, fn); err != nil {
		t.Fatalf("не ожидали ошибку: %v", err)
	}
	if calls != 2 {
		t.Fatalf("после истечения TTL ожидали второй вызов, получили %d", calls)
	}
}

func TestMemoryOnceZeroTTLAlwaysRuns(t *testing.T) {
	c := NewMemory()
	calls := 0
	for i := 0; i < 3; i++ {
		_ = c.Once("k", 0, func() error { calls++; return nil })
	}
	if calls != 3 {
		t.Fatalf("ожидали 3 вызова, получили %d", calls)
	}
}

func TestMemoryOnceReleasesKeyOnError(t *testing.T) {
	c := NewMemory()
	boom := errors.New("boom")
	if err := c.Once("k", time.Minute, func() error { return boom }); !errors.Is(err, boom) {
		t.Fatalf("ожидали boom, получили %v", err)
	}
	calls := 0
	_ = c.Once("k", time.Minute, func() error { calls++; return nil })
	if calls != 1 {
		t.Fatal("после ошибки ключ должен освобождаться")
	}
}

func TestMemoryOnceKeysAreIndependent(t *testing.T) {
	c := NewMemory()
	calls := map[string]int{}
	for _, key := range []string{"failure:a", "failure:b", "failure:a"} {
		k := key
		_ = c.Once(k, time.Minute, func() error { calls[k]++; return nil })
	}
	if calls["failure:a"] != 1 || calls["failure:b"] != 1 {
		t.Fatalf("ожидали по одному вызову на ключ, получили %v", calls)
	}
}
