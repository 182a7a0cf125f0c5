package cache

import (
	"context"
	"errors"
	"reflect"
	"testing"
	"time"

	"github.com/AdonisVillanueva/crypto-defi-yield-farming-agent/internal/domain"
)

func okReading(value float64) domain.SignalReading {
	return domain.SignalReading{
		Source:    domain.SourceFearGreed,
		RawValue:  value,
		Detail:    "Greed",
		FetchedAt: time.Unix(1771009800, 0).UTC(),
		Status:    domain.ReadingOk,
	}
}

func TestMemoryCacheHitWithinTTL(t *testing.T) {
	c := NewMemoryCache()
	current := time.Unix(1000, 0)
	c.now = func() time.Time { return current }

	calls := 0
	fetch := func(ctx context.Context) (domain.SignalReading, error) {
		calls++
		return okReading(63), nil
	}

	first, err := c.GetOrFetch(context.Background(), "fear_greed", time.Hour, fetch)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	current = current.Add(30 * time.Minute)
	second, err := c.GetOrFetch(context.Background(), "fear_greed", time.Hour, fetch)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if calls != 1 {
		t.Fatalf("expected exactly one fetch within TTL, got %d", calls)
	}
	if !reflect.DeepEqual(first, second) {
		t.Fatalf("cached reading differs from original: %+v vs %+v", first, second)
	}
}

func TestMemoryCacheExpiryTriggersSingleRefetch(t *testing.T) {
	c := NewMemoryCache()
	current := time.Unix(1000, 0)
	c.now = func() time.Time { return current }

	calls := 0
	fetch := func(ctx context.Context) (domain.SignalReading, error) {
		calls++
		return okReading(float64(40 + calls)), nil
	}

	if _, err := c.GetOrFetch(context.Background(), "k", time.Hour, fetch); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	current = current.Add(2 * time.Hour)
	reading, err := c.GetOrFetch(context.Background(), "k", time.Hour, fetch)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if calls != 2 {
		t.Fatalf("expected one refetch after expiry, got %d calls", calls)
	}
	if reading.RawValue != 42 {
		t.Fatalf("expected replaced reading, got %+v", reading)
	}
}

func TestMemoryCacheServesStaleOnRefetchFailure(t *testing.T) {
	c := NewMemoryCache()
	current := time.Unix(1000, 0)
	c.now = func() time.Time { return current }

	calls := 0
	fetch := func(ctx context.Context) (domain.SignalReading, error) {
		calls++
		if calls == 1 {
			return okReading(55), nil
		}
		return domain.SignalReading{}, errors.New("source down")
	}

	if _, err := c.GetOrFetch(context.Background(), "k", time.Hour, fetch); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	current = current.Add(2 * time.Hour)
	reading, err := c.GetOrFetch(context.Background(), "k", time.Hour, fetch)
	if err != nil {
		t.Fatalf("stale serving should not surface the fetch error, got %v", err)
	}
	if !reading.Stale || reading.RawValue != 55 {
		t.Fatalf("expected stale prior reading, got %+v", reading)
	}

	// The failure must not have refreshed the entry; the next call retries.
	reading, err = c.GetOrFetch(context.Background(), "k", time.Hour, fetch)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if calls != 3 {
		t.Fatalf("expected a retry after a failed refetch, got %d calls", calls)
	}
	if !reading.Stale {
		t.Fatalf("expected stale reading while the source stays down, got %+v", reading)
	}
}

func TestMemoryCachePropagatesFailureWithoutPriorEntry(t *testing.T) {
	c := NewMemoryCache()
	wantErr := errors.New("source down")
	fetch := func(ctx context.Context) (domain.SignalReading, error) {
		return domain.SignalReading{}, wantErr
	}

	_, err := c.GetOrFetch(context.Background(), "k", time.Hour, fetch)
	if !errors.Is(err, wantErr) {
		t.Fatalf("expected fetch error to propagate, got %v", err)
	}
}

func TestMemoryCacheKeysAreIndependent(t *testing.T) {
	c := NewMemoryCache()
	callsA, callsB := 0, 0

	if _, err := c.GetOrFetch(context.Background(), "a", time.Hour, func(ctx context.Context) (domain.SignalReading, error) {
		callsA++
		return okReading(1), nil
	}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := c.GetOrFetch(context.Background(), "b", time.Hour, func(ctx context.Context) (domain.SignalReading, error) {
		callsB++
		return okReading(2), nil
	}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if callsA != 1 || callsB != 1 {
		t.Fatalf("expected one fetch per key, got a=%d b=%d", callsA, callsB)
	}
}
