// Package mouse applies the [mouse] configuration to terminal input.
//
// # Click Detection
//
// Left presses on the same cell are chained into double and triple clicks.
// The second press must arrive within the double_click threshold of the
// first, the third within the triple_click threshold of the second. A fourth
// press starts over as a single click.
//
// # Pointer Hiding
//
// With hide_when_typing set, key input hides the pointer and the next mouse
// event shows it again:
//
//	h := mouse.NewHandler(cfg.Mouse())
//	h.KeyTyped()
//	h.CursorVisible() // false
//
// # Link Hints
//
// While the configured url modifiers are held, links under the pointer are
// reported in Result.Hint and a single left click opens them with the
// configured launcher:
//
//	res, err := h.Handle(ctx, mouse.EventFromTcell(ev), lineText)
//	if res.Hint != nil {
//	    underline(res.Hint.Start, res.Hint.End)
//	}
//
// A nil launcher disables hints entirely.
//
// # Thread Safety
//
// Handler is safe for concurrent use. SetConfig may be called from a
// configuration reload observer while events are being handled.
package mouse
