package mouse

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/dshills/stormterm/internal/config"
	"github.com/dshills/stormterm/internal/input/key"
)

// Button represents a mouse button.
type Button uint8

const (
	// ButtonNone indicates no button.
	ButtonNone Button = iota
	// ButtonLeft is the primary (left) mouse button.
	ButtonLeft
	// ButtonMiddle is the middle mouse button (scroll wheel click).
	ButtonMiddle
	// ButtonRight is the secondary (right) mouse button.
	ButtonRight
	// ButtonScrollUp indicates scroll wheel up.
	ButtonScrollUp
	// ButtonScrollDown indicates scroll wheel down.
	ButtonScrollDown
	// ButtonScrollLeft indicates horizontal scroll left.
	ButtonScrollLeft
	// ButtonScrollRight indicates horizontal scroll right.
	ButtonScrollRight
)

// String returns a string representation of the button.
func (b Button) String() string {
	switch b {
	case ButtonLeft:
		return "left"
	case ButtonMiddle:
		return "middle"
	case ButtonRight:
		return "right"
	case ButtonScrollUp:
		return "scroll-up"
	case ButtonScrollDown:
		return "scroll-down"
	case ButtonScrollLeft:
		return "scroll-left"
	case ButtonScrollRight:
		return "scroll-right"
	default:
		return "none"
	}
}

// IsScroll returns true if this is a scroll button.
func (b Button) IsScroll() bool {
	return b == ButtonScrollUp || b == ButtonScrollDown ||
		b == ButtonScrollLeft || b == ButtonScrollRight
}

// Action represents the type of mouse action.
type Action uint8

const (
	// ActionNone indicates no action.
	ActionNone Action = iota
	// ActionPress indicates a button press.
	ActionPress
	// ActionRelease indicates a button release.
	ActionRelease
	// ActionMove indicates mouse movement (no button held).
	ActionMove
	// ActionDrag indicates mouse movement with a button held.
	ActionDrag
)

// String returns a string representation of the action.
func (a Action) String() string {
	switch a {
	case ActionPress:
		return "press"
	case ActionRelease:
		return "release"
	case ActionMove:
		return "move"
	case ActionDrag:
		return "drag"
	default:
		return "none"
	}
}

// Position is a terminal cell: X is the column, Y the row.
type Position struct {
	X int
	Y int
}

// Equal returns true if two positions are equal.
func (p Position) Equal(other Position) bool {
	return p.X == other.X && p.Y == other.Y
}

// Event represents a mouse input event.
type Event struct {
	// Position is the cell under the pointer.
	Position Position

	// Button is the mouse button involved.
	Button Button

	// Modifiers are any keyboard modifiers held during the event.
	Modifiers key.Modifier

	// Action is the type of mouse action.
	Action Action

	// Timestamp is when the event occurred.
	Timestamp time.Time
}

// Result describes what the handler made of an event.
type Result struct {
	// Click is set for left button presses.
	Click ClickType

	// Hint is the link under the pointer, if hints are active.
	Hint *Hint

	// Launched is true when the hint was handed to the launcher.
	Launched bool
}

// Option configures a Handler.
type Option func(*Handler)

// WithLogger sets the logger for launch failures.
func WithLogger(logger *slog.Logger) Option {
	return func(h *Handler) {
		if logger != nil {
			h.logger = logger
		}
	}
}

// WithLaunchFunc replaces the function used to open links.
func WithLaunchFunc(fn LaunchFunc) Option {
	return func(h *Handler) {
		if fn != nil {
			h.launch = fn
		}
	}
}

// Handler applies the mouse configuration to input events.
type Handler struct {
	mu     sync.Mutex
	config config.MouseConfig

	click  *clickTracker
	cursor *CursorVisibility
	hints  *HintDetector

	launch LaunchFunc
	logger *slog.Logger
}

// NewHandler creates a new mouse handler with the given configuration.
func NewHandler(cfg config.MouseConfig, opts ...Option) *Handler {
	h := &Handler{
		launch: Launch,
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(h)
	}
	h.apply(cfg)
	h.cursor = NewCursorVisibility(cfg.HideWhenTyping)
	return h
}

// SetConfig swaps in a new configuration, as after a reload. Any click
// sequence in progress is discarded; pointer visibility is kept.
func (h *Handler) SetConfig(cfg config.MouseConfig) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.apply(cfg)
	h.cursor.SetHideWhenTyping(cfg.HideWhenTyping)
}

func (h *Handler) apply(cfg config.MouseConfig) {
	h.config = cfg
	h.click = newClickTracker(cfg)
	h.hints = NewHintDetector(cfg.URL)
}

// Config returns the configuration in use.
func (h *Handler) Config() config.MouseConfig {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.config
}

// Handle processes a mouse event. line is the text of the row under the
// pointer and is used for link detection. A left click on a link opens it.
func (h *Handler) Handle(ctx context.Context, event Event, line string) (Result, error) {
	h.mu.Lock()
	h.cursor.MouseMoved()

	var res Result
	hint, onHint := h.hints.At(line, event.Position.X, event.Modifiers)
	if onHint {
		res.Hint = &hint
	}

	var launcher *config.Command
	if event.Action == ActionPress && event.Button == ButtonLeft {
		res.Click = h.click.recordClick(event.Position, event.Timestamp)
		if onHint && res.Click == ClickSingle {
			launcher = h.config.URL.Launcher
		}
	}
	launch := h.launch
	h.mu.Unlock()

	// Launch outside the lock.
	if launcher == nil {
		return res, nil
	}
	if err := launch(ctx, *launcher, hint.URL); err != nil {
		h.logger.Warn("failed to open link",
			slog.String("url", hint.URL),
			slog.String("launcher", launcher.String()),
			slog.String("error", err.Error()),
		)
		return res, err
	}
	h.logger.Debug("opened link", slog.String("url", hint.URL), slog.String("launcher", launcher.String()))
	res.Launched = true
	return res, nil
}

// KeyTyped records keyboard input for pointer hiding.
func (h *Handler) KeyTyped() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.cursor.KeyTyped()
}

// CursorVisible reports whether the pointer should be drawn.
func (h *Handler) CursorVisible() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.cursor.Visible()
}

// Reset clears click tracking state.
func (h *Handler) Reset() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.click.reset()
}
