package hibp

import (
	"context"
	"sync/atomic"
	"testing"
	"time"
)

type countingChecker struct {
	calls  atomic.Int32
	result *Result
}

func (c *countingChecker) Check(_ context.Context, password string) (*Result, error) {
	if password == "" {
		return nil, ErrEmptyPassword
	}
	c.calls.Add(1)
	return c.result, nil
}

func TestCachedCheckerServesFromCache(t *testing.T) {
	inner := &countingChecker{result: &Result{Compromised: true, Count: 42, Risk: RiskMedium}}
	cached, err := NewCachedChecker(inner, time.Minute)
	if err != nil {
		t.Fatalf("NewCachedChecker should not fail: %s", err)
	}
	defer cached.Close()

	first, err := cached.Check(context.Background(), "password")
	if err != nil {
		t.Fatalf("Check should not fail: %s", err)
	}
	// ristretto admits writes asynchronously.
	time.Sleep(50 * time.Millisecond)

	second, err := cached.Check(context.Background(), "password")
	if err != nil {
		t.Fatalf("Check should not fail: %s", err)
	}

	if inner.calls.Load() != 1 {
		t.Errorf("Second lookup should be served from cache, inner calls: %d", inner.calls.Load())
	}
	if first.Count != 42 || second.Count != 42 {
		t.Errorf("Cached result should match: %+v, %+v", first, second)
	}
}

func TestCachedCheckerSkipsUnavailable(t *testing.T) {
	inner := &countingChecker{result: &Result{Unavailable: true}}
	cached, err := NewCachedChecker(inner, time.Minute)
	if err != nil {
		t.Fatalf("NewCachedChecker should not fail: %s", err)
	}
	defer cached.Close()

	for i := 0; i < 2; i++ {
		if _, err := cached.Check(context.Background(), "password"); err != nil {
			t.Fatalf("Check should not fail: %s", err)
		}
		time.Sleep(50 * time.Millisecond)
	}

	if inner.calls.Load() != 2 {
		t.Errorf("Unavailable results must not be cached, inner calls: %d", inner.calls.Load())
	}
}

func TestCachedCheckerEmptyPassword(t *testing.T) {
	cached, err := NewCachedChecker(&countingChecker{}, time.Minute)
	if err != nil {
		t.Fatalf("NewCachedChecker should not fail: %s", err)
	}
	defer cached.Close()

	if _, err := cached.Check(context.Background(), ""); err != ErrEmptyPassword {
		t.Errorf("Check should fail with ErrEmptyPassword, have %v", err)
	}
}
