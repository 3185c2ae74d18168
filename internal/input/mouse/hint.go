package mouse

import (
	"unicode/utf8"

	"github.com/dshills/stormterm/internal/config"
	"github.com/dshills/stormterm/internal/config/pattern"
	"github.com/dshills/stormterm/internal/input/key"
)

// DefaultURLPattern matches links when no url_pattern is configured.
var DefaultURLPattern = pattern.MustCompile(
	`(?:ipfs:|ipns:|magnet:|mailto:|gemini://|gopher://|https://|http://|news:|file:|git://|ssh:|ftp://)` +
		`[^\x{0000}-\x{001F}\x{007F}-\x{009F}<>"\s{}\^⟨⟩` + "`" + `]+`,
)

// Hint is a link found in a line of text. Start and End are column offsets
// (runes), End exclusive.
type Hint struct {
	Start int
	End   int
	URL   string
}

// Contains reports whether col falls inside the hint.
func (h Hint) Contains(col int) bool {
	return col >= h.Start && col < h.End
}

// HintDetector finds links in terminal lines according to a URLConfig.
type HintDetector struct {
	pattern *pattern.Pattern
	mods    key.Modifier
	enabled bool
}

// NewHintDetector creates a detector for u. Hints are disabled when u has no
// launcher, since there would be nothing to open them with.
func NewHintDetector(u config.URLConfig) *HintDetector {
	p := u.Pattern
	if p == nil {
		p = DefaultURLPattern
	}
	return &HintDetector{
		pattern: p,
		mods:    u.Mods(),
		enabled: u.Launcher != nil,
	}
}

// Pattern returns the pattern in use.
func (d *HintDetector) Pattern() *pattern.Pattern {
	return d.pattern
}

// Active reports whether hints engage with mods held. Extra modifiers beyond
// the configured ones are allowed.
func (d *HintDetector) Active(mods key.Modifier) bool {
	return d.enabled && mods.Has(d.mods)
}

// Find returns every link in line, regardless of modifiers.
func (d *HintDetector) Find(line string) []Hint {
	matches := d.pattern.FindAllIndex(line)
	if len(matches) == 0 {
		return nil
	}

	hints := make([]Hint, 0, len(matches))
	for _, m := range matches {
		if m[0] == m[1] {
			continue
		}
		start := utf8.RuneCountInString(line[:m[0]])
		hints = append(hints, Hint{
			Start: start,
			End:   start + utf8.RuneCountInString(line[m[0]:m[1]]),
			URL:   line[m[0]:m[1]],
		})
	}
	return hints
}

// At returns the link under column col when hints are active for mods.
func (d *HintDetector) At(line string, col int, mods key.Modifier) (Hint, bool) {
	if !d.Active(mods) {
		return Hint{}, false
	}
	for _, h := range d.Find(line) {
		if h.Contains(col) {
			return h, true
		}
	}
	return Hint{}, false
}
