package dgmux

import (
	"testing"
	"time"
)

func TestCooldownTake(t *testing.T) {
	cm := newCooldownMap()
	cd := Cooldown{Rate: 2, Per: 10 * time.Second}
	base := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)

	// case: uses within the rate are free
	func() {
		if got := cm.take("k", cd, base); got != 0 {
			t.Error("first use should pass", got)
		}
		if got := cm.take("k", cd, base.Add(time.Second)); got != 0 {
			t.Error("second use should pass", got)
		}
	}()

	// case: the next use reports the time left in the window
	func() {
		got := cm.take("k", cd, base.Add(3*time.Second))
		if got != 7*time.Second {
			t.Error("expected 7s left in the window", got)
		}
	}()

	// case: a fresh window resets the bucket
	func() {
		if got := cm.take("k", cd, base.Add(11*time.Second)); got != 0 {
			t.Error("use after the window should pass", got)
		}
	}()

	// case: keys do not share buckets
	func() {
		if got := cm.take("other", cd, base.Add(3*time.Second)); got != 0 {
			t.Error("distinct key should have its own bucket", got)
		}
	}()
}

func TestCooldownEnabled(t *testing.T) {
	if (Cooldown{}).enabled() {
		t.Error("zero cooldown should be disabled")
	}
	if (Cooldown{Rate: 1}).enabled() {
		t.Error("cooldown without a window should be disabled")
	}
	if !(Cooldown{Rate: 1, Per: time.Second}).enabled() {
		t.Error("rate and window should enable the cooldown")
	}
}
