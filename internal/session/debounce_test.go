package session

import (
	"sync/atomic"
	"testing"
	"time"
)

func TestDebounceCoalesces(t *testing.T) {
	var calls int64
	d := NewDebounce(30*time.Millisecond, func() { atomic.AddInt64(&calls, 1) })

	for i := 0; i < 5; i++ {
		d.Trigger()
		time.Sleep(5 * time.Millisecond)
	}
	time.Sleep(100 * time.Millisecond)

	if got := atomic.LoadInt64(&calls); got != 1 {
		t.Errorf("fn ran %d times, want 1", got)
	}
}

func TestDebounceFlush(t *testing.T) {
	var calls int64
	d := NewDebounce(time.Hour, func() { atomic.AddInt64(&calls, 1) })

	d.Trigger()
	d.Flush()
	if got := atomic.LoadInt64(&calls); got != 1 {
		t.Errorf("fn ran %d times after flush, want 1", got)
	}

	// nothing pending, flush is a no-op
	d.Flush()
	if got := atomic.LoadInt64(&calls); got != 1 {
		t.Errorf("fn ran %d times after second flush, want 1", got)
	}
}

func TestDebounceCancel(t *testing.T) {
	var calls int64
	d := NewDebounce(20*time.Millisecond, func() { atomic.AddInt64(&calls, 1) })

	d.Trigger()
	d.Cancel()
	time.Sleep(60 * time.Millisecond)

	if got := atomic.LoadInt64(&calls); got != 0 {
		t.Errorf("fn ran %d times after cancel, want 0", got)
	}
}
