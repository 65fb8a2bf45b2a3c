package redis

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

func TestTokenKey(t *testing.T) {
	if got := tokenKey("work"); got != "jobtracker:token:work" {
		t.Fatalf("unexpected key %q", got)
	}
	if got := tokenKey(""); got != "jobtracker:token:default" {
		t.Fatalf("empty profile should map to default, got %q", got)
	}
}

func TestConnect_UnreachableServer(t *testing.T) {
	ctx := context.Background()
	_, err := Connect(ctx, Config{Addr: "127.0.0.1:1", Timeout: 200 * time.Millisecond})
	if err == nil {
		t.Fatalf("expected ping error")
	}
}

func TestTokenStore_ReportsUnreachableServer(t *testing.T) {
	client := redis.NewClient(&redis.Options{
		Addr:        "127.0.0.1:1",
		DialTimeout: 200 * time.Millisecond,
		MaxRetries:  -1,
	})
	s := NewTokenStore(client, "p")
	t.Cleanup(func() { _ = s.Close() })

	ctx := context.Background()
	if _, err := s.Get(ctx); err == nil {
		t.Fatalf("Get should surface the connection error")
	}
	if err := s.Set(ctx, "abc"); err == nil {
		t.Fatalf("Set should surface the connection error")
	}
	if s.Name() != "redis" {
		t.Fatalf("unexpected name %q", s.Name())
	}
}

func newMiniStore(t *testing.T, profile string) (*TokenStore, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	s := NewTokenStore(client, profile)
	t.Cleanup(func() { _ = s.Close() })
	return s, mr
}

func TestTokenStore_RoundTrip(t *testing.T) {
	ctx := context.Background()
	s, mr := newMiniStore(t, "work")

	got, err := s.Get(ctx)
	if err != nil {
		t.Fatalf("get on missing key: %v", err)
	}
	if got != "" {
		t.Fatalf("expected empty token, got %q", got)
	}

	if err := s.Set(ctx, "abc"); err != nil {
		t.Fatalf("set: %v", err)
	}
	if v, _ := mr.Get("jobtracker:token:work"); v != "abc" {
		t.Fatalf("unexpected stored value %q", v)
	}
	if mr.TTL("jobtracker:token:work") != 0 {
		t.Fatalf("token should not expire")
	}
	if got, _ := s.Get(ctx); got != "abc" {
		t.Fatalf("expected abc, got %q", got)
	}

	if err := s.Set(ctx, "def"); err != nil {
		t.Fatalf("overwrite: %v", err)
	}
	if got, _ := s.Get(ctx); got != "def" {
		t.Fatalf("expected def, got %q", got)
	}

	if err := s.Delete(ctx); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if mr.Exists("jobtracker:token:work") {
		t.Fatalf("key should be gone")
	}
	if got, _ := s.Get(ctx); got != "" {
		t.Fatalf("expected empty token after delete, got %q", got)
	}
}

func TestTokenStore_DeleteMissingKey(t *testing.T) {
	s, _ := newMiniStore(t, "p")
	if err := s.Delete(context.Background()); err != nil {
		t.Fatalf("delete on missing key: %v", err)
	}
}

func TestTokenStore_ProfilesAreIsolated(t *testing.T) {
	ctx := context.Background()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	work := NewTokenStore(client, "work")
	home := NewTokenStore(client, "home")
	if err := work.Set(ctx, "w"); err != nil {
		t.Fatalf("set: %v", err)
	}
	if got, _ := home.Get(ctx); got != "" {
		t.Fatalf("home should not see work's token, got %q", got)
	}
}

func TestTokenStore_CheckAndConnect(t *testing.T) {
	s, mr := newMiniStore(t, "p")
	if err := s.Check(context.Background()); err != nil {
		t.Fatalf("check: %v", err)
	}

	client, err := Connect(context.Background(), Config{Addr: mr.Addr()})
	if err != nil {
		t.Fatalf("connect: %v", err)
	}
	_ = client.Close()
}
