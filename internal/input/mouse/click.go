package mouse

import (
	"time"

	"github.com/dshills/stormterm/internal/config"
)

// clickTracker tracks click patterns for double/triple click detection.
type clickTracker struct {
	// Configuration
	doubleTime time.Duration
	tripleTime time.Duration

	// Last click state
	lastPos   Position
	lastTime  time.Time
	lastCount ClickType
}

// newClickTracker creates a click tracker using the thresholds in cfg.
// Clicks only chain when they land on the same cell.
func newClickTracker(cfg config.MouseConfig) *clickTracker {
	return &clickTracker{
		doubleTime: cfg.DoubleClick.Threshold,
		tripleTime: cfg.TripleClick.Threshold,
	}
}

// recordClick records a click and returns its type.
// A click after a triple click starts a new sequence.
// If timestamp is zero, uses time.Now() as fallback.
func (t *clickTracker) recordClick(pos Position, timestamp time.Time) ClickType {
	if timestamp.IsZero() {
		timestamp = time.Now()
	}

	next := ClickSingle
	if t.chains(pos) {
		elapsed := timestamp.Sub(t.lastTime)
		switch t.lastCount {
		case ClickSingle:
			if within(elapsed, t.doubleTime) {
				next = ClickDouble
			}
		case ClickDouble:
			if within(elapsed, t.tripleTime) {
				next = ClickTriple
			}
		}
	}

	t.lastPos = pos
	t.lastTime = timestamp
	t.lastCount = next

	return next
}

// chains reports whether a click at pos may continue the current sequence.
func (t *clickTracker) chains(pos Position) bool {
	if t.lastCount == 0 || t.lastTime.IsZero() {
		return false
	}
	return pos.Equal(t.lastPos)
}

// within reports whether elapsed falls inside a threshold window.
// Clock skew (negative elapsed) never chains; a zero threshold disables chaining.
func within(elapsed, threshold time.Duration) bool {
	return elapsed >= 0 && elapsed < threshold
}

// reset clears the click tracking state.
func (t *clickTracker) reset() {
	t.lastCount = 0
	t.lastTime = time.Time{}
	t.lastPos = Position{}
}

// ClickType represents the type of click detected.
type ClickType uint8

const (
	// ClickNone means the event was not a click.
	ClickNone ClickType = 0
	// ClickSingle is a single click.
	ClickSingle ClickType = 1
	// ClickDouble is a double click.
	ClickDouble ClickType = 2
	// ClickTriple is a triple click.
	ClickTriple ClickType = 3
)

// String returns a string representation of the click type.
func (c ClickType) String() string {
	switch c {
	case ClickNone:
		return "none"
	case ClickSingle:
		return "single"
	case ClickDouble:
		return "double"
	case ClickTriple:
		return "triple"
	default:
		return "unknown"
	}
}
