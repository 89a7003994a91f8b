package challenge

import (
	"testing"
	"time"
)

func TestDebouncer_CollapsesBursts(t *testing.T) {
	clock := newFakeClock()
	d := NewDebouncer(clock, 120*time.Millisecond)

	fired := 0
	for i := 0; i < 5; i++ {
		d.Trigger(func() { fired++ })
		clock.Advance(30 * time.Millisecond)
	}

	if fired != 0 {
		t.Fatalf("callback fired during burst: %d", fired)
	}

	clock.Advance(120 * time.Millisecond)
	if fired != 1 {
		t.Fatalf("expected one firing after quiet period, got %d", fired)
	}
}

func TestDebouncer_LastWriteWins(t *testing.T) {
	clock := newFakeClock()
	d := NewDebouncer(clock, 120*time.Millisecond)

	var last string
	d.Trigger(func() { last = "first" })
	d.Trigger(func() { last = "second" })

	clock.Advance(120 * time.Millisecond)
	if last != "second" {
		t.Fatalf("expected newest callback, got %q", last)
	}
}

func TestDebouncer_Stop(t *testing.T) {
	clock := newFakeClock()
	d := NewDebouncer(clock, 120*time.Millisecond)

	fired := false
	d.Trigger(func() { fired = true })
	d.Stop()

	clock.Advance(time.Second)
	if fired {
		t.Fatal("stopped debouncer fired")
	}
}
