package mouse

import (
	"github.com/gdamore/tcell/v2"

	"github.com/dshills/stormterm/internal/input/key"
)

// EventFromTcell converts a tcell mouse event. tcell reports button state
// rather than transitions, so a held button is reported as a press and no
// button as a move; use TcellDecoder to recover releases and drags.
func EventFromTcell(ev *tcell.EventMouse) Event {
	x, y := ev.Position()
	button := convertButton(ev.Buttons())

	action := ActionMove
	if button != ButtonNone {
		action = ActionPress
	}

	return Event{
		Position:  Position{X: x, Y: y},
		Button:    button,
		Modifiers: key.FromTcell(ev.Modifiers()),
		Action:    action,
		Timestamp: ev.When(),
	}
}

// TcellDecoder converts a stream of tcell mouse events, tracking the held
// button between events.
type TcellDecoder struct {
	held Button
}

// Decode converts ev using the button state of the previous event.
func (d *TcellDecoder) Decode(ev *tcell.EventMouse) Event {
	event := EventFromTcell(ev)

	switch {
	case event.Button.IsScroll():
		// Wheel events are momentary.
		event.Action = ActionPress
	case event.Button == ButtonNone && d.held != ButtonNone:
		event.Action = ActionRelease
		event.Button = d.held
		d.held = ButtonNone
	case event.Button != ButtonNone && event.Button == d.held:
		event.Action = ActionDrag
	case event.Button != ButtonNone:
		event.Action = ActionPress
		d.held = event.Button
	}
	return event
}

// convertButton converts a tcell button mask. When several buttons are
// reported the primary one wins.
func convertButton(b tcell.ButtonMask) Button {
	switch {
	case b&tcell.ButtonPrimary != 0:
		return ButtonLeft
	case b&tcell.ButtonMiddle != 0:
		return ButtonMiddle
	case b&tcell.ButtonSecondary != 0:
		return ButtonRight
	case b&tcell.WheelUp != 0:
		return ButtonScrollUp
	case b&tcell.WheelDown != 0:
		return ButtonScrollDown
	case b&tcell.WheelLeft != 0:
		return ButtonScrollLeft
	case b&tcell.WheelRight != 0:
		return ButtonScrollRight
	default:
		return ButtonNone
	}
}
