// Package key defines keyboard modifier sets for the input system.
//
// Modifier sets appear in configuration files as strings such as
// "Control|Shift", "Ctrl+Alt" or "None", or as arrays of names:
//
//	mods, err := key.ParseModifiers("Control|Shift")
//	if err != nil {
//	    // unknown modifier name
//	}
//
// Recognized names (case-insensitive): ctrl, control, alt, option, opt,
// shift, meta, cmd, command, win, super, logo.
//
// Terminal events arrive as tcell modifier masks; FromTcell and
// Modifier.Tcell convert between the two.
package key
