package ratelimit

import (
	"fmt"
	"sync"
	"testing"
	"time"
)

func testConfig(max int, window time.Duration) Config {
	return Config{Window: window, MaxRequests: max}
}

func TestSlidingWindowLog_FirstRequestAdmitted(t *testing.T) {
	l := NewSlidingWindowLog(testConfig(1, time.Minute))

	d := l.Admit("client-a", time.Now())
	if !d.Allowed {
		t.Error("Expected first request for a key to be admitted")
	}
	if d.Remaining != 0 {
		t.Errorf("Expected 0 remaining, got %d", d.Remaining)
	}
}

func TestSlidingWindowLog_RejectsOverLimit(t *testing.T) {
	l := NewSlidingWindowLog(testConfig(3, time.Minute))
	now := time.Unix(1700000000, 0)

	for i := 0; i < 3; i++ {
		d := l.Admit("client-a", now.Add(time.Duration(i)*time.Second))
		if !d.Allowed {
			t.Fatalf("Request %d: expected admission", i)
		}
		if d.Remaining != 2-i {
			t.Errorf("Request %d: expected remaining %d, got %d", i, 2-i, d.Remaining)
		}
	}

	// 4th request inside the window must be rejected.
	d := l.Admit("client-a", now.Add(3*time.Second))
	if d.Allowed {
		t.Error("Expected 4th request to be rejected")
	}
	if d.Remaining != 0 {
		t.Errorf("Expected 0 remaining on rejection, got %d", d.Remaining)
	}

	// Oldest entry is at t+0s; it leaves the window at t+60s, so retry
	// after should be 57s from t+3s.
	if d.RetryAfter != 57*time.Second {
		t.Errorf("Expected retry after 57s, got %v", d.RetryAfter)
	}
	if d.RetryAfterSeconds() != 57 {
		t.Errorf("Expected 57 retry seconds, got %d", d.RetryAfterSeconds())
	}
}

func TestSlidingWindowLog_RetryAfterRoundsUp(t *testing.T) {
	l := NewSlidingWindowLog(testConfig(1, time.Minute))
	now := time.Unix(1700000000, 0)

	l.Admit("client-a", now)
	d := l.Admit("client-a", now.Add(500*time.Millisecond))
	if d.Allowed {
		t.Fatal("Expected rejection")
	}
	// 59.5s until the slot frees: must round up to 60 whole seconds.
	if d.RetryAfterSeconds() != 60 {
		t.Errorf("Expected 60 retry seconds, got %d", d.RetryAfterSeconds())
	}
}

func TestSlidingWindowLog_SlotFreesAfterWindow(t *testing.T) {
	l := NewSlidingWindowLog(testConfig(2, time.Minute))
	now := time.Unix(1700000000, 0)

	l.Admit("client-a", now)
	l.Admit("client-a", now.Add(30*time.Second))

	// Inside the window: full.
	if d := l.Admit("client-a", now.Add(59*time.Second)); d.Allowed {
		t.Error("Expected rejection while window is full")
	}

	// One window past the earliest entry: exactly one slot frees up.
	d := l.Admit("client-a", now.Add(61*time.Second))
	if !d.Allowed {
		t.Error("Expected admission after earliest entry aged out")
	}
	if d.Remaining != 0 {
		t.Errorf("Expected 0 remaining, got %d", d.Remaining)
	}

	// The entry from t+30s is still live, so the next request is rejected.
	if d := l.Admit("client-a", now.Add(62*time.Second)); d.Allowed {
		t.Error("Expected rejection, only one slot should have freed")
	}
}

func TestSlidingWindowLog_RejectionConsumesNoSlot(t *testing.T) {
	l := NewSlidingWindowLog(testConfig(1, time.Minute))
	now := time.Unix(1700000000, 0)

	l.Admit("client-a", now)
	for i := 0; i < 10; i++ {
		l.Admit("client-a", now.Add(time.Duration(i)*time.Second))
	}

	// All rejections above left the log untouched, so the key admits again
	// exactly when the single admitted entry ages out.
	if d := l.Admit("client-a", now.Add(61*time.Second)); !d.Allowed {
		t.Error("Expected admission; rejected requests must not consume slots")
	}
}

func TestSlidingWindowLog_KeysAreIsolated(t *testing.T) {
	l := NewSlidingWindowLog(testConfig(1, time.Minute))
	now := time.Unix(1700000000, 0)

	if d := l.Admit("client-a", now); !d.Allowed {
		t.Fatal("Expected admission for client-a")
	}
	if d := l.Admit("client-b", now); !d.Allowed {
		t.Error("Expected admission for client-b; keys must not share budgets")
	}
	if d := l.Admit("client-a", now.Add(time.Second)); d.Allowed {
		t.Error("Expected rejection for client-a")
	}
}

func TestSlidingWindowLog_Sweep(t *testing.T) {
	l := NewSlidingWindowLog(testConfig(5, time.Minute))
	now := time.Unix(1700000000, 0)

	l.Admit("client-a", now)
	l.Admit("client-b", now.Add(30*time.Second))

	l.sweep(now.Add(45 * time.Second))
	if l.Keys() != 2 {
		t.Errorf("Expected 2 keys before expiry, got %d", l.Keys())
	}

	// client-a's newest entry is outside the window, client-b's is not.
	l.sweep(now.Add(75 * time.Second))
	if l.Keys() != 1 {
		t.Errorf("Expected 1 key after sweep, got %d", l.Keys())
	}

	l.sweep(now.Add(2 * time.Hour))
	if l.Keys() != 0 {
		t.Errorf("Expected 0 keys after full expiry, got %d", l.Keys())
	}
}

func TestSlidingWindowLog_ConcurrentAdmission(t *testing.T) {
	l := NewSlidingWindowLog(testConfig(50, time.Minute))
	now := time.Unix(1700000000, 0)

	var wg sync.WaitGroup
	var mu sync.Mutex
	admitted := 0

	for i := 0; i < 100; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			d := l.Admit("shared", now.Add(time.Duration(i)*time.Millisecond))
			if d.Allowed {
				mu.Lock()
				admitted++
				mu.Unlock()
			}
		}(i)
	}
	wg.Wait()

	if admitted != 50 {
		t.Errorf("Expected exactly 50 admissions, got %d", admitted)
	}
}

func TestSlidingWindowLog_ManyKeys(t *testing.T) {
	l := NewSlidingWindowLog(testConfig(1, time.Minute))
	now := time.Unix(1700000000, 0)

	for i := 0; i < 100; i++ {
		key := fmt.Sprintf("client-%d", i)
		if d := l.Admit(key, now); !d.Allowed {
			t.Fatalf("Expected admission for %s", key)
		}
	}
	if l.Keys() != 100 {
		t.Errorf("Expected 100 tracked keys, got %d", l.Keys())
	}
}
