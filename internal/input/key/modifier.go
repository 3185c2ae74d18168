package key

import (
	"fmt"
	"strings"
)

// Modifier represents keyboard modifier keys.
type Modifier uint8

const (
	// ModNone indicates no modifiers.
	ModNone Modifier = 0

	// ModShift indicates the Shift key.
	ModShift Modifier = 1 << iota

	// ModCtrl indicates the Control key.
	ModCtrl

	// ModAlt indicates the Alt key (Option on macOS).
	ModAlt

	// ModMeta indicates the Super key (Cmd on macOS, Win on Windows).
	ModMeta
)

// Has returns true if m contains every modifier in mod.
func (m Modifier) Has(mod Modifier) bool {
	return m&mod == mod
}

// HasShift returns true if Shift is pressed.
func (m Modifier) HasShift() bool {
	return m.Has(ModShift)
}

// HasCtrl returns true if Control is pressed.
func (m Modifier) HasCtrl() bool {
	return m.Has(ModCtrl)
}

// HasAlt returns true if Alt is pressed.
func (m Modifier) HasAlt() bool {
	return m.Has(ModAlt)
}

// HasMeta returns true if Meta is pressed.
func (m Modifier) HasMeta() bool {
	return m.Has(ModMeta)
}

// With returns a new Modifier with the specified modifier added.
func (m Modifier) With(mod Modifier) Modifier {
	return m | mod
}

// Without returns a new Modifier with the specified modifier removed.
func (m Modifier) Without(mod Modifier) Modifier {
	return m &^ mod
}

// IsEmpty returns true if no modifiers are set.
func (m Modifier) IsEmpty() bool {
	return m == ModNone
}

// String returns a human-readable representation like "Ctrl+Alt".
// ModNone renders as "None" so the result always parses back.
func (m Modifier) String() string {
	if m == ModNone {
		return "None"
	}

	var parts []string
	if m.HasCtrl() {
		parts = append(parts, "Ctrl")
	}
	if m.HasAlt() {
		parts = append(parts, "Alt")
	}
	if m.HasShift() {
		parts = append(parts, "Shift")
	}
	if m.HasMeta() {
		parts = append(parts, "Meta")
	}
	return strings.Join(parts, "+")
}

// MarshalText implements encoding.TextMarshaler.
func (m Modifier) MarshalText() ([]byte, error) {
	return []byte(m.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (m *Modifier) UnmarshalText(text []byte) error {
	mod, err := ParseModifiers(string(text))
	if err != nil {
		return err
	}
	*m = mod
	return nil
}

// UnknownModifierError is returned when a modifier name is not recognized.
type UnknownModifierError struct {
	Name string
}

// Error implements the error interface.
func (e *UnknownModifierError) Error() string {
	return fmt.Sprintf("unknown modifier %q", e.Name)
}

// modifierNameMap maps modifier names (lowercase) to Modifier values.
var modifierNameMap = map[string]Modifier{
	"ctrl":    ModCtrl,
	"control": ModCtrl,
	"alt":     ModAlt,
	"option":  ModAlt,
	"opt":     ModAlt,
	"shift":   ModShift,
	"meta":    ModMeta,
	"cmd":     ModMeta,
	"command": ModMeta,
	"win":     ModMeta,
	"super":   ModMeta,
	"logo":    ModMeta,
}

// ModifierFromName returns the Modifier for a given name (case-insensitive).
// The second result is false if the name is not recognized.
func ModifierFromName(name string) (Modifier, bool) {
	m, ok := modifierNameMap[strings.ToLower(strings.TrimSpace(name))]
	return m, ok
}

// ParseModifiers parses a modifier set such as "Control|Shift", "Ctrl+Alt"
// or "None". The empty string and "none" both yield ModNone.
// Any unrecognized name fails the whole parse.
func ParseModifiers(s string) (Modifier, error) {
	s = strings.TrimSpace(s)
	if s == "" || strings.EqualFold(s, "none") {
		return ModNone, nil
	}

	parts := strings.FieldsFunc(s, func(r rune) bool {
		return r == '|' || r == '+'
	})
	return ParseModifierList(parts)
}

// ParseModifierList combines a list of modifier names.
func ParseModifierList(names []string) (Modifier, error) {
	var result Modifier
	for _, name := range names {
		if strings.TrimSpace(name) == "" {
			continue
		}
		mod, ok := ModifierFromName(name)
		if !ok {
			return ModNone, &UnknownModifierError{Name: strings.TrimSpace(name)}
		}
		result = result.With(mod)
	}
	return result, nil
}
