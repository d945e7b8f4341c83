package watch

import (
	"sync/atomic"
	"testing"
	"time"
)

func TestDebouncer_SingleTrigger(t *testing.T) {
	var fired atomic.Int32
	d := NewDebouncer(20*time.Millisecond, func() { fired.Add(1) })
	defer d.Stop()

	d.Trigger()

	time.Sleep(100 * time.Millisecond)
	if n := fired.Load(); n != 1 {
		t.Errorf("got %d callbacks, want 1", n)
	}
}

func TestDebouncer_BurstCollapses(t *testing.T) {
	var fired atomic.Int32
	d := NewDebouncer(50*time.Millisecond, func() { fired.Add(1) })
	defer d.Stop()

	for i := 0; i < 5; i++ {
		d.Trigger()
		time.Sleep(5 * time.Millisecond)
	}

	time.Sleep(200 * time.Millisecond)
	if n := fired.Load(); n != 1 {
		t.Errorf("got %d callbacks, want exactly 1", n)
	}
}

func TestDebouncer_TriggerResetsWindow(t *testing.T) {
	var fired atomic.Int32
	d := NewDebouncer(60*time.Millisecond, func() { fired.Add(1) })
	defer d.Stop()

	d.Trigger()
	time.Sleep(40 * time.Millisecond)
	// Re-trigger before the window elapses: the clock restarts.
	d.Trigger()
	time.Sleep(40 * time.Millisecond)
	if n := fired.Load(); n != 0 {
		t.Errorf("callback fired before the reset window elapsed: %d", n)
	}

	time.Sleep(100 * time.Millisecond)
	if n := fired.Load(); n != 1 {
		t.Errorf("got %d callbacks, want 1", n)
	}
}

func TestDebouncer_StopCancelsPending(t *testing.T) {
	var fired atomic.Int32
	d := NewDebouncer(30*time.Millisecond, func() { fired.Add(1) })

	d.Trigger()
	d.Stop()

	time.Sleep(100 * time.Millisecond)
	if n := fired.Load(); n != 0 {
		t.Errorf("callback fired after Stop: %d", n)
	}
}

func TestDebouncer_TriggerAfterStop(t *testing.T) {
	var fired atomic.Int32
	d := NewDebouncer(20*time.Millisecond, func() { fired.Add(1) })
	defer d.Stop()

	d.Trigger()
	d.Stop()
	d.Trigger()

	time.Sleep(100 * time.Millisecond)
	if n := fired.Load(); n != 1 {
		t.Errorf("got %d callbacks, want 1", n)
	}
}
