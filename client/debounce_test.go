package client

import (
	"sync"
	"testing"
	"time"
)

func TestDebouncerCollapsesBurst(t *testing.T) {
	var mu sync.Mutex
	var fired []string

	d := NewDebouncer(30*time.Millisecond, func(v string) {
		mu.Lock()
		fired = append(fired, v)
		mu.Unlock()
	})
	defer d.Stop()

	for _, v := range []string{"g", "ge", "ger", "germ", "germany"} {
		d.Input(v)
		time.Sleep(2 * time.Millisecond)
	}

	time.Sleep(150 * time.Millisecond)

	mu.Lock()
	defer mu.Unlock()
	if len(fired) != 1 {
		t.Fatalf("a keystroke burst must fire once, fired %d times: %v", len(fired), fired)
	}
	if fired[0] != "germany" {
		t.Errorf("fired with %q, want the final value", fired[0])
	}
}

func TestDebouncerSeparateBursts(t *testing.T) {
	var mu sync.Mutex
	var fired []string

	d := NewDebouncer(20*time.Millisecond, func(v string) {
		mu.Lock()
		fired = append(fired, v)
		mu.Unlock()
	})
	defer d.Stop()

	d.Input("ielts")
	time.Sleep(80 * time.Millisecond)
	d.Input("toefl")
	time.Sleep(80 * time.Millisecond)

	mu.Lock()
	defer mu.Unlock()
	if len(fired) != 2 || fired[0] != "ielts" || fired[1] != "toefl" {
		t.Errorf("separated bursts fire independently, got %v", fired)
	}
}

func TestDebouncerStop(t *testing.T) {
	var mu sync.Mutex
	count := 0

	d := NewDebouncer(20*time.Millisecond, func(string) {
		mu.Lock()
		count++
		mu.Unlock()
	})

	d.Input("abandoned")
	d.Stop()
	time.Sleep(80 * time.Millisecond)

	mu.Lock()
	defer mu.Unlock()
	if count != 0 {
		t.Errorf("Stop must cancel the pending fire, fired %d times", count)
	}
}
