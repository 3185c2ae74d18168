package config

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/pelletier/go-toml/v2"

	"github.com/dshills/stormterm/internal/config/pattern"
	"github.com/dshills/stormterm/internal/input/key"
)

// SectionMouse is the top-level key of the mouse section.
const SectionMouse = "mouse"

// DefaultClickThreshold is the double/triple click window used when none is configured.
const DefaultClickThreshold = 300 * time.Millisecond

// MouseConfig is the validated mouse section. It is always fully populated
// and is replaced as a whole on reload, never mutated.
type MouseConfig struct {
	// DoubleClick is the window for turning a second press into a double click.
	DoubleClick ClickHandler

	// TripleClick is the window for turning a third press into a triple click.
	TripleClick ClickHandler

	// HideWhenTyping hides the pointer while keys are pressed.
	HideWhenTyping bool

	// URL controls link hints and the program used to open them.
	URL URLConfig
}

// ClickHandler holds a multi-click timing window.
type ClickHandler struct {
	Threshold time.Duration
}

// URLConfig controls link detection and opening.
type URLConfig struct {
	// Launcher opens activated links. Nil means the user disabled it.
	Launcher *Command

	modifiers key.Modifier

	// Pattern overrides the built-in URL pattern when set.
	Pattern *pattern.Pattern
}

// NewURLConfig builds a URLConfig from resolved parts.
func NewURLConfig(launcher *Command, mods key.Modifier, pat *pattern.Pattern) URLConfig {
	return URLConfig{Launcher: launcher, modifiers: mods, Pattern: pat}
}

// Mods returns the modifiers that must be held for link hints to engage.
func (u URLConfig) Mods() key.Modifier {
	return u.modifiers
}

// Equal reports whether u and other describe the same settings.
// Patterns are compared by source text.
func (u URLConfig) Equal(other URLConfig) bool {
	if (u.Launcher == nil) != (other.Launcher == nil) {
		return false
	}
	if u.Launcher != nil && !u.Launcher.Equal(*other.Launcher) {
		return false
	}
	return u.modifiers == other.modifiers && u.Pattern.Equal(other.Pattern)
}

// DefaultClickHandler returns a ClickHandler with the default threshold.
func DefaultClickHandler() ClickHandler {
	return ClickHandler{Threshold: DefaultClickThreshold}
}

// DefaultURLConfig returns the platform launcher, no modifiers and no pattern.
func DefaultURLConfig() URLConfig {
	launcher := DefaultLauncher()
	return URLConfig{Launcher: &launcher}
}

// DefaultMouseConfig returns the mouse section used when none is configured.
func DefaultMouseConfig() MouseConfig {
	return MouseConfig{
		DoubleClick:    DefaultClickHandler(),
		TripleClick:    DefaultClickHandler(),
		HideWhenTyping: false,
		URL:            DefaultURLConfig(),
	}
}

// Equal reports whether m and other describe the same settings.
func (m MouseConfig) Equal(other MouseConfig) bool {
	return m.DoubleClick == other.DoubleClick &&
		m.TripleClick == other.TripleClick &&
		m.HideWhenTyping == other.HideWhenTyping &&
		m.URL.Equal(other.URL)
}

// Raw returns the canonical raw form of m. Decoding it yields an equal
// MouseConfig without any issues.
func (m MouseConfig) Raw() map[string]any {
	url := map[string]any{
		"modifiers": m.URL.modifiers.String(),
	}
	if m.URL.Launcher == nil {
		url["launcher"] = "None"
	} else {
		url["launcher"] = m.URL.Launcher.raw()
	}
	if m.URL.Pattern != nil {
		url["url_pattern"] = m.URL.Pattern.String()
	}

	return map[string]any{
		"double_click":     map[string]any{"threshold": m.DoubleClick.Threshold.Milliseconds()},
		"triple_click":     map[string]any{"threshold": m.TripleClick.Threshold.Milliseconds()},
		"hide_when_typing": m.HideWhenTyping,
		"url":              url,
	}
}

// MarshalTOML renders m as a [mouse] TOML document.
func (m MouseConfig) MarshalTOML() ([]byte, error) {
	return toml.Marshal(map[string]any{SectionMouse: m.Raw()})
}

// DecodeMouse decodes a raw mouse section, logging to slog.Default().
// A nil raw value yields DefaultMouseConfig().
func DecodeMouse(raw any) (MouseConfig, error) {
	return NewDecoder(slog.Default()).Mouse(raw)
}

// Mouse decodes a raw mouse section. Malformed fields fall back to their
// defaults individually. The only error returned is an invalid url_pattern.
func (d *Decoder) Mouse(raw any) (MouseConfig, error) {
	cfg := DefaultMouseConfig()

	m, ok := d.table(SectionMouse, raw, "default mouse settings")
	if !ok {
		return cfg, nil
	}

	cfg.DoubleClick = d.clickHandler(joinPath(SectionMouse, "double_click"), m["double_click"])
	cfg.TripleClick = d.clickHandler(joinPath(SectionMouse, "triple_click"), m["triple_click"])
	cfg.HideWhenTyping = d.boolean(joinPath(SectionMouse, "hide_when_typing"), m["hide_when_typing"], false)

	url, err := d.url(joinPath(SectionMouse, "url"), m["url"])
	if err != nil {
		return MouseConfig{}, err
	}
	cfg.URL = url

	return cfg, nil
}

func (d *Decoder) clickHandler(path string, raw any) ClickHandler {
	h := DefaultClickHandler()
	m, ok := d.table(path, raw, h.Threshold.String())
	if !ok {
		return h
	}
	h.Threshold = d.duration(joinPath(path, "threshold"), m["threshold"], DefaultClickThreshold)
	return h
}

func (d *Decoder) url(path string, raw any) (URLConfig, error) {
	u := DefaultURLConfig()
	m, ok := d.table(path, raw, "default url settings")
	if !ok {
		return u, nil
	}

	u.Launcher = d.launcher(joinPath(path, "launcher"), m["launcher"])
	u.modifiers = d.modifiers(joinPath(path, "modifiers"), m["modifiers"], key.ModNone)

	pat, err := urlPattern(joinPath(path, "url_pattern"), m["url_pattern"])
	if err != nil {
		return URLConfig{}, err
	}
	u.Pattern = pat

	return u, nil
}

// urlPattern compiles the user's link pattern. There is no safe pattern to
// substitute, so any failure is returned.
func urlPattern(path string, raw any) (*pattern.Pattern, error) {
	if raw == nil {
		return nil, nil
	}
	src, ok := raw.(string)
	if !ok {
		return nil, &TypeError{Path: path, Expected: "string", Actual: typeName(raw)}
	}
	p, err := pattern.Compile(src)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return p, nil
}
