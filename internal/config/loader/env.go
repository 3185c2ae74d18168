package loader

import (
	"os"
	"strconv"
	"strings"
)

// Kind tells EnvLoader how to interpret a variable's text.
type Kind int

const (
	// KindAuto converts numbers and booleans and keeps anything else as a string.
	KindAuto Kind = iota

	// KindString passes the text through unchanged.
	KindString
)

// Binding maps an environment variable onto a setting path.
type Binding struct {
	Path string
	Kind Kind
}

// EnvLoader loads configuration from environment variables.
// Only mapped variables are read; setting paths are snake_case and cannot be
// derived from variable names reliably.
type EnvLoader struct {
	prefix  string             // Environment variable prefix (e.g., "STORMTERM_")
	mapping map[string]Binding // Env var suffix -> binding
	lookup  func(string) (string, bool)
}

// NewEnvLoader creates a new environment variable loader.
// The prefix should include the trailing underscore (e.g., "STORMTERM_").
func NewEnvLoader(prefix string) *EnvLoader {
	return NewEnvLoaderWithMapping(prefix, DefaultEnvMapping())
}

// NewEnvLoaderWithMapping creates a loader with custom mappings. Keys are
// variable names without the prefix.
func NewEnvLoaderWithMapping(prefix string, mapping map[string]Binding) *EnvLoader {
	return &EnvLoader{
		prefix:  prefix,
		mapping: mapping,
		lookup:  os.LookupEnv,
	}
}

// DefaultEnvMapping returns the built-in variable suffix to binding table.
// Launcher, modifiers and pattern are strings whatever they look like.
func DefaultEnvMapping() map[string]Binding {
	return map[string]Binding{
		"MOUSE_HIDE_WHEN_TYPING": {Path: "mouse.hide_when_typing", Kind: KindAuto},
		"MOUSE_DOUBLE_CLICK_MS":  {Path: "mouse.double_click.threshold", Kind: KindAuto},
		"MOUSE_TRIPLE_CLICK_MS":  {Path: "mouse.triple_click.threshold", Kind: KindAuto},
		"URL_LAUNCHER":           {Path: "mouse.url.launcher", Kind: KindString},
		"URL_MODIFIERS":          {Path: "mouse.url.modifiers", Kind: KindString},
		"URL_PATTERN":            {Path: "mouse.url.url_pattern", Kind: KindString},
	}
}

// Load reads environment variables and returns a configuration map.
// Note: Empty string values are treated as valid values, not as unset.
func (l *EnvLoader) Load() (map[string]any, error) {
	config := make(map[string]any)
	for suffix, b := range l.mapping {
		val, ok := l.lookup(l.prefix + suffix)
		if !ok {
			continue
		}
		if b.Kind == KindString {
			setByPath(config, b.Path, val)
		} else {
			setByPath(config, b.Path, parseValue(val))
		}
	}
	return config, nil
}

// parseValue attempts to parse the string value into an appropriate type.
// Integers are tried before booleans so "0" stays a number.
func parseValue(s string) any {
	if s == "" {
		return s
	}

	if i, err := strconv.ParseInt(s, 10, 64); err == nil {
		return i
	}

	switch strings.ToLower(s) {
	case "true", "yes", "on":
		return true
	case "false", "no", "off":
		return false
	}

	if strings.Contains(s, ".") {
		if f, err := strconv.ParseFloat(s, 64); err == nil {
			return f
		}
	}

	return s
}

// setByPath sets a value in a nested map using a dot-separated path.
func setByPath(data map[string]any, path string, value any) {
	parts := strings.Split(path, ".")
	current := data

	for i := 0; i < len(parts)-1; i++ {
		part := parts[i]
		if next, ok := current[part].(map[string]any); ok {
			current = next
		} else {
			next := make(map[string]any)
			current[part] = next
			current = next
		}
	}

	current[parts[len(parts)-1]] = value
}
