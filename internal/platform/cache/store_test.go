package cache

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

func TestStore_GetOrLoad_UsesSingleFlight(t *testing.T) {
	t.Parallel()

	store := NewStore(time.Minute)
	var calls atomic.Int32

	loader := func(context.Context) (any, error) {
		calls.Add(1)
		time.Sleep(20 * time.Millisecond)
		return "value", nil
	}

	const workers = 32
	start := make(chan struct{})
	var wg sync.WaitGroup
	wg.Add(workers)
	errCh := make(chan error, workers)

	for i := 0; i < workers; i++ {
		go func() {
			defer wg.Done()
			<-start
			v, err := store.GetOrLoad(context.Background(), "same-key", loader)
			if err != nil {
				errCh <- err
				return
			}
			if got, _ := v.(string); got != "value" {
				errCh <- errUnexpectedValue
			}
		}()
	}

	close(start)
	wg.Wait()
	close(errCh)
	for err := range errCh {
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}

	if got := calls.Load(); got != 1 {
		t.Fatalf("loader called %d times, want 1", got)
	}
}

func TestStore_GetOrLoad_UsesCachedValueAfterFirstLoad(t *testing.T) {
	t.Parallel()

	store := NewStore(time.Minute)
	var calls atomic.Int32

	loader := func(context.Context) (any, error) {
		calls.Add(1)
		return "cached", nil
	}

	if _, err := store.GetOrLoad(context.Background(), "k", loader); err != nil {
		t.Fatalf("first GetOrLoad error: %v", err)
	}
	if _, err := store.GetOrLoad(context.Background(), "k", loader); err != nil {
		t.Fatalf("second GetOrLoad error: %v", err)
	}

	if got := calls.Load(); got != 1 {
		t.Fatalf("loader called %d times, want 1", got)
	}
}

func TestStore_SetWithTTL_OverridesDefault(t *testing.T) {
	t.Parallel()

	store := NewStore(time.Minute)
	store.SetWithTTL(context.Background(), "short", "v", time.Nanosecond)
	time.Sleep(time.Millisecond)

	if _, ok := store.Get(context.Background(), "short"); ok {
		t.Fatal("entry with elapsed per-entry ttl should be gone")
	}

	store.SetWithTTL(context.Background(), "pinned", "v", 0)
	if _, ok := store.Get(context.Background(), "pinned"); !ok {
		t.Fatal("entry with zero ttl should be pinned")
	}
}

func TestStore_NegativeTTLDisablesStorage(t *testing.T) {
	t.Parallel()

	store := NewStore(-1)
	var calls atomic.Int32

	loader := func(context.Context) (any, error) {
		calls.Add(1)
		return "fresh", nil
	}

	if _, err := store.GetOrLoad(context.Background(), "k", loader); err != nil {
		t.Fatalf("first GetOrLoad error: %v", err)
	}
	if _, err := store.GetOrLoad(context.Background(), "k", loader); err != nil {
		t.Fatalf("second GetOrLoad error: %v", err)
	}

	if got := calls.Load(); got != 2 {
		t.Fatalf("loader called %d times, want 2", got)
	}
	if store.Len() != 0 {
		t.Fatalf("disabled store retained %d entries", store.Len())
	}
}

func TestStore_DeletePrefix(t *testing.T) {
	t.Parallel()

	store := NewStore(time.Minute)
	store.Set(context.Background(), "players:list:GKP", 1)
	store.Set(context.Background(), "players:list:DEF", 2)
	store.Set(context.Background(), "clubs:list", 3)

	store.DeletePrefix(context.Background(), "players:")

	if store.Len() != 1 {
		t.Fatalf("expected 1 surviving entry, got %d", store.Len())
	}
	if _, ok := store.Get(context.Background(), "clubs:list"); !ok {
		t.Fatal("unrelated entry should survive prefix delete")
	}
}

var errUnexpectedValue = errors.New("unexpected loaded value")
