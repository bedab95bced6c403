package session

import (
	"testing"
	"time"
)

func TestSessionClockEdgeTrigger(t *testing.T) {
	base := time.Date(2025, 6, 1, 19, 0, 0, 0, time.UTC)
	var c SessionClock

	for count := 1; count <= 3; count++ {
		if c.OnPresenceChange(count, base) {
			t.Fatalf("clock started at count %d", count)
		}
	}
	if c.Anchor() != nil {
		t.Fatal("anchor set before fourth player")
	}

	if !c.OnPresenceChange(4, base) {
		t.Fatal("clock did not start on fourth player")
	}
	if got := c.Anchor(); got == nil || !got.Equal(base) {
		t.Errorf("Anchor() = %v, want %v", got, base)
	}
}

func TestSessionClockDoesNotReArm(t *testing.T) {
	base := time.Date(2025, 6, 1, 19, 0, 0, 0, time.UTC)
	var c SessionClock

	c.OnPresenceChange(4, base)

	// Drop below four and come back: the anchor must not move.
	later := base.Add(30 * time.Minute)
	if c.OnPresenceChange(3, later) {
		t.Error("clock fired on dropping to three")
	}
	if c.OnPresenceChange(4, later) {
		t.Error("clock fired a second time")
	}
	if got := c.Anchor(); got == nil || !got.Equal(base) {
		t.Errorf("Anchor() = %v, want original %v", got, base)
	}
}

func TestSessionClockReset(t *testing.T) {
	base := time.Date(2025, 6, 1, 19, 0, 0, 0, time.UTC)
	var c SessionClock

	c.OnPresenceChange(4, base)
	c.Reset()
	if c.Anchor() != nil {
		t.Fatal("anchor survived reset")
	}

	next := base.Add(24 * time.Hour)
	if !c.OnPresenceChange(4, next) {
		t.Fatal("clock did not re-arm after reset")
	}
	if got := c.Anchor(); got == nil || !got.Equal(next) {
		t.Errorf("Anchor() = %v, want %v", got, next)
	}
}
