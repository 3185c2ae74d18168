package config

import (
	"bytes"
	"encoding/json"
	"errors"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/dshills/stormterm/internal/config/pattern"
	"github.com/dshills/stormterm/internal/input/key"
)

// newTestDecoder returns a decoder whose log output is captured as JSON lines.
func newTestDecoder() (*Decoder, *bytes.Buffer) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, nil))
	return NewDecoder(logger), &buf
}

// logRecords parses captured JSON log lines.
func logRecords(t *testing.T, buf *bytes.Buffer) []map[string]any {
	t.Helper()
	var records []map[string]any
	for _, line := range strings.Split(strings.TrimSpace(buf.String()), "\n") {
		if line == "" {
			continue
		}
		var rec map[string]any
		if err := json.Unmarshal([]byte(line), &rec); err != nil {
			t.Fatalf("bad log line %q: %v", line, err)
		}
		records = append(records, rec)
	}
	return records
}

func TestDecodeMouse_Absent(t *testing.T) {
	d, buf := newTestDecoder()
	got, err := d.Mouse(nil)
	if err != nil {
		t.Fatalf("Mouse(nil) error = %v", err)
	}
	if !got.Equal(DefaultMouseConfig()) {
		t.Errorf("Mouse(nil) = %+v, want defaults", got)
	}
	if got.HideWhenTyping {
		t.Error("HideWhenTyping default should be false")
	}
	if got.URL.Launcher == nil || got.URL.Launcher.Program != DefaultLauncher().Program {
		t.Errorf("Launcher = %v, want platform default", got.URL.Launcher)
	}
	if len(d.Issues()) != 0 || buf.Len() != 0 {
		t.Errorf("absent section should not log; issues=%d log=%q", len(d.Issues()), buf.String())
	}
}

func TestDecodeMouse_Scenario(t *testing.T) {
	raw := map[string]any{
		"double_click":     map[string]any{"threshold": int64(500)},
		"hide_when_typing": true,
		"url":              map[string]any{"launcher": "none"},
	}

	d, _ := newTestDecoder()
	got, err := d.Mouse(raw)
	if err != nil {
		t.Fatalf("Mouse() error = %v", err)
	}

	if got.DoubleClick.Threshold != 500*time.Millisecond {
		t.Errorf("DoubleClick.Threshold = %v, want 500ms", got.DoubleClick.Threshold)
	}
	if got.TripleClick != DefaultClickHandler() {
		t.Errorf("TripleClick = %v, want default", got.TripleClick)
	}
	if !got.HideWhenTyping {
		t.Error("HideWhenTyping = false, want true")
	}
	if got.URL.Launcher != nil {
		t.Errorf("Launcher = %v, want nil", got.URL.Launcher)
	}
	if got.URL.Mods() != key.ModNone {
		t.Errorf("Mods() = %v, want None", got.URL.Mods())
	}
	if got.URL.Pattern != nil {
		t.Errorf("Pattern = %v, want nil", got.URL.Pattern)
	}
	if len(d.Issues()) != 0 {
		t.Errorf("unexpected issues: %v", d.Issues())
	}
}

func TestClickHandler_ValidThresholds(t *testing.T) {
	tests := []struct {
		raw  any
		want time.Duration
	}{
		{int64(0), 0},
		{int64(1), time.Millisecond},
		{int64(300), 300 * time.Millisecond},
		{int64(86400000), 24 * time.Hour},
		{500, 500 * time.Millisecond},
		{uint64(42), 42 * time.Millisecond},
		{float64(250), 250 * time.Millisecond},
	}

	for _, tt := range tests {
		d, _ := newTestDecoder()
		got := d.clickHandler("mouse.double_click", map[string]any{"threshold": tt.raw})
		if got.Threshold != tt.want {
			t.Errorf("threshold %v (%T) = %v, want %v", tt.raw, tt.raw, got.Threshold, tt.want)
		}
		if len(d.Issues()) != 0 {
			t.Errorf("threshold %v: unexpected issues %v", tt.raw, d.Issues())
		}
	}
}

func TestClickHandler_MalformedThreshold(t *testing.T) {
	tests := []any{
		int64(-5),
		"abc",
		float64(1.5),
		true,
		[]any{int64(1)},
		map[string]any{"ms": int64(1)},
		uint64(1 << 63),
	}

	for _, raw := range tests {
		d, buf := newTestDecoder()
		got := d.clickHandler("mouse.double_click", map[string]any{"threshold": raw})
		if got.Threshold != DefaultClickThreshold {
			t.Errorf("threshold %v = %v, want default", raw, got.Threshold)
		}

		issues := d.Issues()
		if len(issues) != 1 {
			t.Errorf("threshold %v: %d issues, want exactly 1", raw, len(issues))
			continue
		}
		if issues[0].Path != "mouse.double_click.threshold" {
			t.Errorf("issue path = %q", issues[0].Path)
		}
		if issues[0].Default != "300ms" {
			t.Errorf("issue default = %q, want 300ms", issues[0].Default)
		}

		records := logRecords(t, buf)
		if len(records) != 1 {
			t.Errorf("threshold %v: %d log records, want exactly 1", raw, len(records))
			continue
		}
		if records[0]["level"] != "WARN" {
			t.Errorf("log level = %v, want WARN", records[0]["level"])
		}
		if records[0]["default"] != "300ms" {
			t.Errorf("log default = %v, want 300ms", records[0]["default"])
		}
		if records[0]["path"] != "mouse.double_click.threshold" {
			t.Errorf("log path = %v", records[0]["path"])
		}
	}
}

func TestClickHandler_ErrorKinds(t *testing.T) {
	d, _ := newTestDecoder()
	d.clickHandler("c", map[string]any{"threshold": int64(-5)})
	d.clickHandler("c", map[string]any{"threshold": "abc"})

	issues := d.Issues()
	if !errors.Is(issues[0], ErrInvalidValue) {
		t.Errorf("negative threshold error = %v, want ErrInvalidValue", issues[0].Err)
	}
	if !errors.Is(issues[1], ErrTypeMismatch) {
		t.Errorf("string threshold error = %v, want ErrTypeMismatch", issues[1].Err)
	}
}

func TestClickHandler_AbsentAndMalformedTable(t *testing.T) {
	d, _ := newTestDecoder()

	got, err := d.Mouse(map[string]any{})
	if err != nil {
		t.Fatal(err)
	}
	if got.DoubleClick != DefaultClickHandler() {
		t.Errorf("absent double_click = %v, want default", got.DoubleClick)
	}
	if len(d.Issues()) != 0 {
		t.Errorf("absent double_click should not be an issue")
	}

	got, err = d.Mouse(map[string]any{"double_click": int64(200)})
	if err != nil {
		t.Fatal(err)
	}
	if got.DoubleClick != DefaultClickHandler() {
		t.Errorf("non-table double_click = %v, want default", got.DoubleClick)
	}
	if len(d.Issues()) != 1 || d.Issues()[0].Path != "mouse.double_click" {
		t.Errorf("issues = %v, want one for mouse.double_click", d.Issues())
	}

	// A table without threshold keeps the default silently.
	d2, _ := newTestDecoder()
	h := d2.clickHandler("mouse.triple_click", map[string]any{"unknown": int64(1)})
	if h != DefaultClickHandler() || len(d2.Issues()) != 0 {
		t.Errorf("empty table = %v with %d issues", h, len(d2.Issues()))
	}
}

func TestDecodeMouse_PerFieldFallback(t *testing.T) {
	raw := map[string]any{
		"double_click":     map[string]any{"threshold": "fast"},
		"triple_click":     map[string]any{"threshold": int64(600)},
		"hide_when_typing": "yes",
		"url": map[string]any{
			"launcher":  int64(7),
			"modifiers": "Control|Banana",
		},
	}

	d, buf := newTestDecoder()
	got, err := d.Mouse(raw)
	if err != nil {
		t.Fatalf("Mouse() error = %v", err)
	}

	if got.DoubleClick != DefaultClickHandler() {
		t.Errorf("DoubleClick = %v, want default", got.DoubleClick)
	}
	if got.TripleClick.Threshold != 600*time.Millisecond {
		t.Errorf("TripleClick = %v, want 600ms", got.TripleClick.Threshold)
	}
	if got.HideWhenTyping {
		t.Error("HideWhenTyping should fall back to false")
	}
	if got.URL.Launcher == nil || !got.URL.Launcher.Equal(DefaultLauncher()) {
		t.Errorf("Launcher = %v, want platform default", got.URL.Launcher)
	}
	if got.URL.Mods() != key.ModNone {
		t.Errorf("Mods() = %v, want None", got.URL.Mods())
	}

	wantPaths := map[string]bool{
		"mouse.double_click.threshold": true,
		"mouse.hide_when_typing":       true,
		"mouse.url.launcher":           true,
		"mouse.url.modifiers":          true,
	}
	issues := d.Issues()
	if len(issues) != len(wantPaths) {
		t.Fatalf("got %d issues, want %d: %v", len(issues), len(wantPaths), issues)
	}
	for _, issue := range issues {
		if !wantPaths[issue.Path] {
			t.Errorf("unexpected issue for %s", issue.Path)
		}
	}
	if n := len(logRecords(t, buf)); n != len(wantPaths) {
		t.Errorf("%d log records, want %d", n, len(wantPaths))
	}
}

func TestDecodeMouse_SectionNotTable(t *testing.T) {
	d, _ := newTestDecoder()
	got, err := d.Mouse("enabled")
	if err != nil {
		t.Fatalf("Mouse() error = %v", err)
	}
	if !got.Equal(DefaultMouseConfig()) {
		t.Errorf("Mouse(string) = %+v, want defaults", got)
	}
	if len(d.Issues()) != 1 || d.Issues()[0].Path != "mouse" {
		t.Errorf("issues = %v, want one for mouse", d.Issues())
	}
}

func TestDecodeMouse_URLNotTable(t *testing.T) {
	d, _ := newTestDecoder()
	got, err := d.Mouse(map[string]any{"url": "xdg-open", "hide_when_typing": true})
	if err != nil {
		t.Fatalf("Mouse() error = %v", err)
	}
	if !got.URL.Equal(DefaultURLConfig()) {
		t.Errorf("URL = %+v, want defaults", got.URL)
	}
	if !got.HideWhenTyping {
		t.Error("sibling field should still load")
	}
}

func TestDecodeMouse_Modifiers(t *testing.T) {
	tests := []struct {
		raw  any
		want key.Modifier
	}{
		{"Control|Shift", key.ModCtrl | key.ModShift},
		{"None", key.ModNone},
		{"Super", key.ModMeta},
		{[]any{"alt", "shift"}, key.ModAlt | key.ModShift},
		{[]string{"ctrl"}, key.ModCtrl},
	}

	for _, tt := range tests {
		d, _ := newTestDecoder()
		got, err := d.Mouse(map[string]any{"url": map[string]any{"modifiers": tt.raw}})
		if err != nil {
			t.Fatalf("Mouse() error = %v", err)
		}
		if got.URL.Mods() != tt.want {
			t.Errorf("modifiers %v = %v, want %v", tt.raw, got.URL.Mods(), tt.want)
		}
		if len(d.Issues()) != 0 {
			t.Errorf("modifiers %v: unexpected issues %v", tt.raw, d.Issues())
		}
	}

	for _, bad := range []any{int64(3), []any{"ctrl", int64(1)}, "Hyper", true} {
		d, _ := newTestDecoder()
		got, err := d.Mouse(map[string]any{"url": map[string]any{"modifiers": bad}})
		if err != nil {
			t.Fatalf("Mouse() error = %v", err)
		}
		if got.URL.Mods() != key.ModNone {
			t.Errorf("modifiers %v = %v, want None", bad, got.URL.Mods())
		}
		if len(d.Issues()) != 1 {
			t.Errorf("modifiers %v: %d issues, want 1", bad, len(d.Issues()))
		}
	}
}

func TestDecodeMouse_URLPattern(t *testing.T) {
	d, _ := newTestDecoder()
	got, err := d.Mouse(map[string]any{"url": map[string]any{"url_pattern": `https?://\S+`}})
	if err != nil {
		t.Fatalf("Mouse() error = %v", err)
	}
	if !got.URL.Pattern.Equal(pattern.MustCompile(`https?://\S+`)) {
		t.Errorf("Pattern = %v, want https?://\\S+", got.URL.Pattern)
	}
}

func TestDecodeMouse_InvalidURLPatternIsFatal(t *testing.T) {
	raw := map[string]any{
		"hide_when_typing": true,
		"url":              map[string]any{"url_pattern": "(https?://"},
	}

	d, buf := newTestDecoder()
	_, err := d.Mouse(raw)
	if err == nil {
		t.Fatal("Mouse() with invalid pattern should fail")
	}

	var perr *pattern.Error
	if !errors.As(err, &perr) {
		t.Fatalf("error = %v (%T), want *pattern.Error in chain", err, err)
	}
	if perr.Source != "(https?://" {
		t.Errorf("Error.Source = %q", perr.Source)
	}
	if !strings.Contains(err.Error(), "mouse.url.url_pattern") {
		t.Errorf("error %q should name the field", err)
	}
	if len(d.Issues()) != 0 || buf.Len() != 0 {
		t.Error("fatal pattern error must not be recorded as a recovered issue")
	}

	_, err = d.Mouse(map[string]any{"url": map[string]any{"url_pattern": int64(5)}})
	if !errors.Is(err, ErrTypeMismatch) {
		t.Errorf("non-string pattern error = %v, want ErrTypeMismatch", err)
	}
}

func TestMouseConfig_Equal(t *testing.T) {
	base := DefaultMouseConfig()
	if !base.Equal(DefaultMouseConfig()) {
		t.Error("defaults should be equal")
	}

	changed := DefaultMouseConfig()
	changed.HideWhenTyping = true
	if base.Equal(changed) {
		t.Error("HideWhenTyping difference not detected")
	}

	withPat := DefaultMouseConfig()
	withPat.URL.Pattern = pattern.MustCompile("a")
	otherPat := DefaultMouseConfig()
	otherPat.URL.Pattern = pattern.MustCompile("a")
	if !withPat.Equal(otherPat) {
		t.Error("separately compiled identical patterns should be equal")
	}
	otherPat.URL.Pattern = pattern.MustCompile("b")
	if withPat.Equal(otherPat) {
		t.Error("different patterns should not be equal")
	}

	disabled := DefaultMouseConfig()
	disabled.URL.Launcher = nil
	if base.Equal(disabled) || disabled.Equal(base) {
		t.Error("nil launcher should differ from default launcher")
	}

	mods := DefaultMouseConfig()
	mods.URL = NewURLConfig(mods.URL.Launcher, key.ModCtrl, nil)
	if base.Equal(mods) {
		t.Error("modifier difference not detected")
	}
}

func TestMouseConfig_RoundTrip(t *testing.T) {
	launcher := Command{Program: "firefox", Args: []string{"--new-tab"}}
	named := Command{Program: "none"}
	padded := Command{Program: " NONE "}
	configs := []MouseConfig{
		DefaultMouseConfig(),
		{
			DoubleClick:    ClickHandler{Threshold: 0},
			TripleClick:    ClickHandler{Threshold: 750 * time.Millisecond},
			HideWhenTyping: true,
			URL:            NewURLConfig(nil, key.ModCtrl|key.ModShift, pattern.MustCompile(`https?://\S+`)),
		},
		{
			DoubleClick: DefaultClickHandler(),
			TripleClick: DefaultClickHandler(),
			URL:         NewURLConfig(&launcher, key.ModAlt, nil),
		},
		{
			DoubleClick: DefaultClickHandler(),
			TripleClick: DefaultClickHandler(),
			URL:         NewURLConfig(&named, key.ModShift, nil),
		},
		{
			DoubleClick: DefaultClickHandler(),
			TripleClick: DefaultClickHandler(),
			URL:         NewURLConfig(&padded, key.ModShift, nil),
		},
	}

	for i, cfg := range configs {
		d, _ := newTestDecoder()
		got, err := d.Mouse(cfg.Raw())
		if err != nil {
			t.Fatalf("config %d: Mouse(Raw()) error = %v", i, err)
		}
		if !got.Equal(cfg) {
			t.Errorf("config %d: round trip = %+v, want %+v", i, got, cfg)
		}
		if len(d.Issues()) != 0 {
			t.Errorf("config %d: canonical form produced issues %v", i, d.Issues())
		}

		again, err := NewDecoder(nil).Mouse(got.Raw())
		if err != nil || !again.Equal(got) {
			t.Errorf("config %d: second round trip differs", i)
		}
	}
}

func TestMouseConfig_MarshalTOML(t *testing.T) {
	cfg := DefaultMouseConfig()
	cfg.URL = NewURLConfig(nil, key.ModCtrl, pattern.MustCompile(`https?://\S+`))

	out, err := cfg.MarshalTOML()
	if err != nil {
		t.Fatalf("MarshalTOML() error = %v", err)
	}
	text := string(out)
	for _, want := range []string{"[mouse", "threshold = 300", "launcher = ", "None", "Ctrl", "url_pattern", "hide_when_typing = false"} {
		if !strings.Contains(text, want) {
			t.Errorf("MarshalTOML() output missing %q:\n%s", want, text)
		}
	}
}

func TestDecodeMouse_UsesDefaultLogger(t *testing.T) {
	got, err := DecodeMouse(map[string]any{"double_click": map[string]any{"threshold": int64(123)}})
	if err != nil {
		t.Fatalf("DecodeMouse() error = %v", err)
	}
	if got.DoubleClick.Threshold != 123*time.Millisecond {
		t.Errorf("DoubleClick = %v, want 123ms", got.DoubleClick.Threshold)
	}
}
