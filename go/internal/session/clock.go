package session

import "time"

// startingPlayers is the court capacity: the session clock starts the moment
// a fourth player is present.
const startingPlayers = 4

// SessionClock tracks the session anchor, the zero instant every timeline
// offset is measured from. The anchor trips edge-triggered on the presence
// count reaching four and is never moved afterwards: dropping below four and
// coming back does not re-arm it. Only a full reset clears it.
type SessionClock struct {
	anchor *time.Time
}

// OnPresenceChange observes a new presence count. It returns true exactly
// once per session, when the count hits four with no anchor set.
func (c *SessionClock) OnPresenceChange(presentCount int, now time.Time) bool {
	if presentCount == startingPlayers && c.anchor == nil {
		t := now
		c.anchor = &t
		return true
	}
	return false
}

// Anchor returns the anchor instant, or nil before the session has started.
func (c *SessionClock) Anchor() *time.Time {
	return c.anchor
}

// Reset clears the anchor.
func (c *SessionClock) Reset() {
	c.anchor = nil
}
