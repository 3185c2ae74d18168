package config

import (
	"fmt"
	"log/slog"
	"math"
	"time"

	"github.com/dshills/stormterm/internal/input/key"
)

// maxMillis is the largest millisecond count a time.Duration can hold.
const maxMillis = uint64(math.MaxInt64 / int64(time.Millisecond))

// Decoder turns raw configuration trees into validated section values.
//
// Every field is decoded independently. A malformed field is recorded as an
// Issue, logged at warn level and replaced by its default; its siblings are
// unaffected. Only fields without a meaningful default fail the decode.
//
// A Decoder accumulates Issues and is not safe for concurrent use. Create one
// per load.
type Decoder struct {
	logger *slog.Logger
	issues []*Issue
}

// NewDecoder creates a Decoder that logs to logger.
// A nil logger uses slog.Default().
func NewDecoder(logger *slog.Logger) *Decoder {
	if logger == nil {
		logger = slog.Default()
	}
	return &Decoder{logger: logger}
}

// Issues returns the recovered failures seen so far.
func (d *Decoder) Issues() []*Issue {
	out := make([]*Issue, len(d.issues))
	copy(out, d.issues)
	return out
}

// recover records err for path and logs it. def describes the substituted value.
func (d *Decoder) recover(path string, raw any, def string, err error) {
	issue := &Issue{Path: path, Value: raw, Default: def, Err: err}
	d.issues = append(d.issues, issue)
	d.logger.Warn("problem with config; using default",
		slog.String("path", path),
		slog.String("value", fmt.Sprintf("%v", raw)),
		slog.String("default", def),
		slog.String("error", err.Error()),
	)
}

// table returns raw as a table. present is false when the value should be
// treated as absent. A non-table value is recorded against path.
func (d *Decoder) table(path string, raw any, def string) (m map[string]any, present bool) {
	if raw == nil {
		return nil, false
	}
	m, ok := asMap(raw)
	if !ok {
		d.recover(path, raw, def, &TypeError{Path: path, Expected: "table", Actual: typeName(raw)})
		return nil, false
	}
	return m, true
}

// duration decodes a non-negative millisecond count.
func (d *Decoder) duration(path string, raw any, def time.Duration) time.Duration {
	if raw == nil {
		return def
	}
	ms, err := asMillis(path, raw)
	if err == nil && ms > maxMillis {
		err = &ValueError{Path: path, Value: raw, Reason: "out of range"}
	}
	if err != nil {
		d.recover(path, raw, def.String(), err)
		return def
	}
	return time.Duration(ms) * time.Millisecond
}

// boolean decodes a bool.
func (d *Decoder) boolean(path string, raw any, def bool) bool {
	if raw == nil {
		return def
	}
	b, ok := raw.(bool)
	if !ok {
		d.recover(path, raw, fmt.Sprintf("%t", def), &TypeError{Path: path, Expected: "bool", Actual: typeName(raw)})
		return def
	}
	return b
}

// modifiers decodes a modifier set written as a string or an array of names.
func (d *Decoder) modifiers(path string, raw any, def key.Modifier) key.Modifier {
	if raw == nil {
		return def
	}

	var (
		mods key.Modifier
		err  error
	)
	switch v := raw.(type) {
	case string:
		mods, err = key.ParseModifiers(v)
	case []string, []any:
		var names []string
		names, err = asStringSlice(path, v)
		if err == nil {
			mods, err = key.ParseModifierList(names)
		}
	default:
		err = &TypeError{Path: path, Expected: "modifier string or array", Actual: typeName(raw)}
	}

	if err != nil {
		d.recover(path, raw, def.String(), err)
		return def
	}
	return mods
}
