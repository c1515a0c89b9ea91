package timer

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

const testInterval = 5 * time.Millisecond

func runAsync(ctx context.Context, interval time.Duration, fn func() error) <-chan struct{} {
	done := make(chan struct{})
	go func() {
		defer close(done)
		Run(ctx, interval, fn)
	}()
	return done
}

func waitDone(t *testing.T, done <-chan struct{}, timeout time.Duration) {
	t.Helper()
	select {
	case <-done:
	case <-time.After(timeout):
		t.Fatalf("Run did not return within %v of cancellation", timeout)
	}
}

func TestRunCallsRepeatedly(t *testing.T) {
	var calls atomic.Int64
	ctx, cancel := context.WithCancel(context.Background())
	done := runAsync(ctx, testInterval, func() error {
		calls.Add(1)
		return nil
	})

	time.Sleep(20 * testInterval)
	cancel()
	waitDone(t, done, time.Second)

	if calls.Load() < 2 {
		t.Errorf("fn called %d times, expected at least 2", calls.Load())
	}
}

func TestRunStopsPromptly(t *testing.T) {
	var calls atomic.Int64
	ctx, cancel := context.WithCancel(context.Background())
	done := runAsync(ctx, time.Hour, func() error {
		calls.Add(1)
		return nil
	})

	time.Sleep(20 * time.Millisecond)
	start := time.Now()
	cancel()
	waitDone(t, done, time.Second)

	if elapsed := time.Since(start); elapsed > 100*time.Millisecond {
		t.Errorf("Run took %v to stop during a one-hour sleep", elapsed)
	}
	if calls.Load() != 1 {
		t.Errorf("fn called %d times, expected exactly 1", calls.Load())
	}
}

func TestRunDoesNotStartAfterCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var calls atomic.Int64
	Run(ctx, testInterval, func() error {
		calls.Add(1)
		return nil
	})
	if calls.Load() != 0 {
		t.Errorf("fn called %d times after cancellation, expected 0", calls.Load())
	}
}

func TestRunLetsInFlightCallFinish(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	started := make(chan struct{})
	var once sync.Once
	var finished atomic.Bool

	done := runAsync(ctx, testInterval, func() error {
		once.Do(func() { close(started) })
		time.Sleep(50 * time.Millisecond)
		finished.Store(true)
		return nil
	})

	<-started
	cancel()
	waitDone(t, done, time.Second)

	if !finished.Load() {
		t.Error("Run returned before the in-flight call finished")
	}
}

func TestRunSurvivesErrorsAndPanics(t *testing.T) {
	var calls atomic.Int64
	ctx, cancel := context.WithCancel(context.Background())
	done := runAsync(ctx, testInterval, func() error {
		n := calls.Add(1)
		switch n % 3 {
		case 1:
			return errors.New("tick failed")
		case 2:
			panic("tick panicked")
		}
		return nil
	})

	time.Sleep(30 * testInterval)
	cancel()
	waitDone(t, done, time.Second)

	if calls.Load() < 4 {
		t.Errorf("fn called %d times, expected the loop to keep going after failures", calls.Load())
	}
}
