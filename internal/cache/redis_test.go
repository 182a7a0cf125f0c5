package cache

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/AdonisVillanueva/crypto-defi-yield-farming-agent/internal/domain"

	"github.com/redis/go-redis/v9"
)

func TestInitRedisWithCustomAddr(t *testing.T) {
	t.Setenv("REDIS_URL", "redis:9999")

	origNewClient := newRedisClient
	origPing := pingRedis
	t.Cleanup(func() {
		newRedisClient = origNewClient
		pingRedis = origPing
		Client = nil
	})

	var capturedAddr string
	newRedisClient = func(opts *redis.Options) *redis.Client {
		capturedAddr = opts.Addr
		return redis.NewClient(opts)
	}
	pingRedis = func(ctx context.Context, client *redis.Client) error {
		return nil
	}

	InitRedis(context.Background())
	if capturedAddr != "redis:9999" {
		t.Fatalf("expected custom addr, got %s", capturedAddr)
	}
}

func TestInitRedisDefaults(t *testing.T) {
	t.Setenv("REDIS_URL", "")

	origNewClient := newRedisClient
	origPing := pingRedis
	t.Cleanup(func() {
		newRedisClient = origNewClient
		pingRedis = origPing
		Client = nil
	})

	var capturedAddr string
	newRedisClient = func(opts *redis.Options) *redis.Client {
		capturedAddr = opts.Addr
		return redis.NewClient(opts)
	}
	pingRedis = func(ctx context.Context, client *redis.Client) error {
		return nil
	}

	InitRedis(context.Background())
	if capturedAddr != "localhost:6379" {
		t.Fatalf("expected default addr, got %s", capturedAddr)
	}
}

type fakeRedis struct {
	store map[string][]byte
}

func newFakeRedis() *fakeRedis {
	return &fakeRedis{store: make(map[string][]byte)}
}

func (f *fakeRedis) Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd {
	f.store[key] = append([]byte(nil), value.([]byte)...)
	return redis.NewStatusResult("OK", nil)
}

func (f *fakeRedis) Get(ctx context.Context, key string) *redis.StringCmd {
	v, ok := f.store[key]
	if !ok {
		return redis.NewStringResult("", redis.Nil)
	}
	return redis.NewStringResult(string(v), nil)
}

func TestRedisCacheHitSkipsFetch(t *testing.T) {
	rdb := newFakeRedis()
	c := NewRedisCache(rdb)

	calls := 0
	fetch := func(ctx context.Context) (domain.SignalReading, error) {
		calls++
		return okReading(63), nil
	}

	first, err := c.GetOrFetch(context.Background(), "fear_greed", time.Hour, fetch)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	second, err := c.GetOrFetch(context.Background(), "fear_greed", time.Hour, fetch)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if calls != 1 {
		t.Fatalf("expected a single fetch, got %d", calls)
	}
	if first.RawValue != second.RawValue || first.Detail != second.Detail {
		t.Fatalf("cached reading differs: %+v vs %+v", first, second)
	}
}

func TestRedisCacheServesStaleAfterEviction(t *testing.T) {
	rdb := newFakeRedis()
	c := NewRedisCache(rdb)

	if _, err := c.GetOrFetch(context.Background(), "k", time.Hour, func(ctx context.Context) (domain.SignalReading, error) {
		return okReading(55), nil
	}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// Simulate TTL eviction of the fresh key; the stale copy has no expiry.
	delete(rdb.store, "signal:k")

	reading, err := c.GetOrFetch(context.Background(), "k", time.Hour, func(ctx context.Context) (domain.SignalReading, error) {
		return domain.SignalReading{}, errors.New("source down")
	})
	if err != nil {
		t.Fatalf("stale serving should not surface the fetch error, got %v", err)
	}
	if !reading.Stale || reading.RawValue != 55 {
		t.Fatalf("expected stale prior reading, got %+v", reading)
	}
}

func TestRedisCachePropagatesFailureWithoutPriorEntry(t *testing.T) {
	c := NewRedisCache(newFakeRedis())
	wantErr := errors.New("source down")

	_, err := c.GetOrFetch(context.Background(), "k", time.Hour, func(ctx context.Context) (domain.SignalReading, error) {
		return domain.SignalReading{}, wantErr
	})
	if !errors.Is(err, wantErr) {
		t.Fatalf("expected fetch error to propagate, got %v", err)
	}
}
