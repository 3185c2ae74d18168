package mouse

// CursorVisibility tracks whether the mouse pointer should be drawn.
//
// With hiding enabled, typing hides the pointer and any mouse event shows it
// again. With hiding disabled the pointer is always visible.
type CursorVisibility struct {
	hideWhenTyping bool
	hidden         bool
}

// NewCursorVisibility creates a visible pointer.
func NewCursorVisibility(hideWhenTyping bool) *CursorVisibility {
	return &CursorVisibility{hideWhenTyping: hideWhenTyping}
}

// KeyTyped records keyboard input.
func (c *CursorVisibility) KeyTyped() {
	if c.hideWhenTyping {
		c.hidden = true
	}
}

// MouseMoved records mouse activity.
func (c *CursorVisibility) MouseMoved() {
	c.hidden = false
}

// Visible reports whether the pointer should be drawn.
func (c *CursorVisibility) Visible() bool {
	return !c.hidden
}

// SetHideWhenTyping changes the setting. Turning it off reveals the pointer.
func (c *CursorVisibility) SetHideWhenTyping(hide bool) {
	c.hideWhenTyping = hide
	if !hide {
		c.hidden = false
	}
}
