package search

import (
	"sync/atomic"
	"testing"
	"time"
)

func TestDebouncerOnlyLastCallRuns(t *testing.T) {
	d := NewDebouncer(50 * time.Millisecond)
	defer d.Stop()

	var calls atomic.Int32
	done := make(chan string, 3)

	for _, query := range []string{"a", "an", "ana"} {
		query := query
		d.Do(func() {
			calls.Add(1)
			done <- query
		})
		time.Sleep(5 * time.Millisecond)
	}

	select {
	case got := <-done:
		if got != "ana" {
			t.Fatalf("expected trailing call %q to win, got %q", "ana", got)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("debounced call never ran")
	}

	// Give any extra (buggy) invocations time to land.
	time.Sleep(150 * time.Millisecond)
	if n := calls.Load(); n != 1 {
		t.Fatalf("expected exactly one invocation, got %d", n)
	}
}

func TestDebouncerStopCancelsPending(t *testing.T) {
	d := NewDebouncer(30 * time.Millisecond)

	fired := make(chan struct{}, 1)
	d.Do(func() { fired <- struct{}{} })
	d.Stop()

	select {
	case <-fired:
		t.Fatal("stopped debouncer still fired")
	case <-time.After(100 * time.Millisecond):
	}
}

func TestDebouncerZeroDelayUsesDefault(t *testing.T) {
	d := NewDebouncer(0)
	defer d.Stop()
	if d.delay != DefaultDelay {
		t.Fatalf("expected default delay, got %s", d.delay)
	}
}

func TestDebouncerFlushRunsPendingOnce(t *testing.T) {
	d := NewDebouncer(time.Hour)
	defer d.Stop()

	var calls atomic.Int32
	d.Do(func() { calls.Add(1) })
	d.Flush()

	if n := calls.Load(); n != 1 {
		t.Fatalf("expected flush to run the pending call once, got %d", n)
	}

	// A second flush has nothing left to run.
	d.Flush()
	if n := calls.Load(); n != 1 {
		t.Fatalf("expected no extra invocation after flush, got %d", n)
	}
}
