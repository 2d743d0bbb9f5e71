package ratelimit

import (
	"context"
	"errors"
	"sort"
	"sync"
	"testing"
	"time"
)

func TestNew_DefaultsOnBadInput(t *testing.T) {
	for _, n := range []int{0, -3} {
		if l := New(n, time.Second); l.Limit() != 1 {
			t.Fatalf("limit %d: got capacity %d, want 1", n, l.Limit())
		}
	}
	if w := New(1, 0).Window(); w != time.Second {
		t.Fatalf("zero window: got %v, want 1s", w)
	}
}

func TestAcquire_SequentialSpacing(t *testing.T) {
	l := New(1, 200*time.Millisecond)
	start := time.Now()
	if err := l.Acquire(context.Background()); err != nil {
		t.Fatal(err)
	}
	if err := l.Acquire(context.Background()); err != nil {
		t.Fatal(err)
	}
	if elapsed := time.Since(start); elapsed < 200*time.Millisecond {
		t.Fatalf("second acquire returned after %v, want >= 200ms", elapsed)
	}
}

func TestAcquire_BurstWithinCapacity(t *testing.T) {
	l := New(3, 300*time.Millisecond)
	start := time.Now()

	var wg sync.WaitGroup
	for i := 0; i < 3; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := l.Acquire(context.Background()); err != nil {
				t.Error(err)
			}
		}()
	}
	wg.Wait()
	if elapsed := time.Since(start); elapsed > 100*time.Millisecond {
		t.Fatalf("burst of 3 took %v, want immediate", elapsed)
	}

	// fourth caller has to wait for the first admission to age out
	if err := l.Acquire(context.Background()); err != nil {
		t.Fatal(err)
	}
	if elapsed := time.Since(start); elapsed < 300*time.Millisecond {
		t.Fatalf("fourth acquire returned after %v, want >= window", elapsed)
	}
}

func TestAcquire_EvictsStaleWithoutWaiting(t *testing.T) {
	l := New(2, 50*time.Millisecond)
	for i := 0; i < 2; i++ {
		if err := l.Acquire(context.Background()); err != nil {
			t.Fatal(err)
		}
	}
	time.Sleep(60 * time.Millisecond)

	start := time.Now()
	if err := l.Acquire(context.Background()); err != nil {
		t.Fatal(err)
	}
	if elapsed := time.Since(start); elapsed > 20*time.Millisecond {
		t.Fatalf("acquire with stale records took %v, want immediate", elapsed)
	}
}

func TestAcquire_WindowInvariant(t *testing.T) {
	const limit = 5
	window := 150 * time.Millisecond
	l := New(limit, window)

	var (
		mu       sync.Mutex
		admitted []time.Time
		wg       sync.WaitGroup
	)
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := l.Acquire(context.Background()); err != nil {
				t.Error(err)
				return
			}
			mu.Lock()
			admitted = append(admitted, time.Now())
			mu.Unlock()
		}()
	}
	wg.Wait()

	if len(admitted) != 20 {
		t.Fatalf("admitted %d callers, want 20", len(admitted))
	}
	sort.Slice(admitted, func(i, j int) bool { return admitted[i].Before(admitted[j]) })

	// admission i+limit must start at least a window after admission i;
	// slack covers the gap between admission and the recording above
	const slack = 20 * time.Millisecond
	for i := 0; i+limit < len(admitted); i++ {
		if d := admitted[i+limit].Sub(admitted[i]); d < window-slack {
			t.Fatalf("admissions %d..%d only %v apart, window is %v", i, i+limit, d, window)
		}
	}
}

func TestAcquire_CancelAbortsWait(t *testing.T) {
	l := New(1, time.Second)
	if err := l.Acquire(context.Background()); err != nil {
		t.Fatal(err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	errCh := make(chan error, 1)
	go func() { errCh <- l.Acquire(ctx) }()

	time.Sleep(50 * time.Millisecond)
	cancel()

	select {
	case err := <-errCh:
		if !errors.Is(err, context.Canceled) {
			t.Fatalf("got %v, want context.Canceled", err)
		}
	case <-time.After(time.Second):
		t.Fatal("acquire did not abort after cancel")
	}
}

func TestAcquire_CancelledContextFailsFast(t *testing.T) {
	l := New(3, time.Second)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := l.Acquire(ctx); !errors.Is(err, context.Canceled) {
		t.Fatalf("got %v, want context.Canceled", err)
	}
}

func TestTryAdmit_ReportsRemainingWait(t *testing.T) {
	base := time.Now()
	cur := base

	l := New(1, 100*time.Millisecond)
	l.now = func() time.Time { return cur }

	if _, ok := l.tryAdmit(); !ok {
		t.Fatal("first admit should succeed")
	}

	cur = base.Add(40 * time.Millisecond)
	wait, ok := l.tryAdmit()
	if ok {
		t.Fatal("window is full, admit should fail")
	}
	if wait != 60*time.Millisecond {
		t.Fatalf("wait = %v, want 60ms", wait)
	}

	// exactly one window later the record is stale
	cur = base.Add(100 * time.Millisecond)
	if _, ok := l.tryAdmit(); !ok {
		t.Fatal("stale record should be evicted and the slot reused")
	}
}
