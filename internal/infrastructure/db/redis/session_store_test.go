package redis

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/rpdbs/research-databank/internal/core/domain"
)

func TestKey(t *testing.T) {
	if got := key("abc"); got != "session:abc" {
		t.Fatalf("unexpected key %q", got)
	}
}

func TestSessionStore_UnreachableServer(t *testing.T) {
	client := redis.NewClient(&redis.Options{
		Addr:        "127.0.0.1:1",
		DialTimeout: 100 * time.Millisecond,
		MaxRetries:  -1,
	})
	defer client.Close()
	store := NewSessionStore(client)

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	err := store.Save(ctx, domain.Session{ID: "sid"}, time.Minute)
	if err == nil {
		t.Fatalf("expected save error")
	}

	_, err = store.Get(ctx, "sid")
	if err == nil || errors.Is(err, domain.ErrSessionNotFound) {
		t.Fatalf("connection failures must not look like a missing session, got %v", err)
	}
}
