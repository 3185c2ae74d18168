// Package config provides the configuration system for stormterm.
//
// Configuration files are read into raw trees by the loader package and then
// validated section by section into typed, immutable values. This package
// currently owns the [mouse] section: click thresholds, cursor hiding, and
// URL hints.
//
// # Field-level fallback
//
// A typo in one setting must never keep the terminal from starting. Each
// field is decoded on its own; a malformed value is logged, recorded as an
// Issue, and replaced by that field's default while its siblings load
// normally:
//
//	[mouse.double_click]
//	threshold = -5        # warning logged, 300ms used
//
//	[mouse.url]
//	launcher = "none"     # disables link opening
//	modifiers = "Control|Shift"
//
// The exception is url_pattern. There is no safe pattern to substitute, so an
// invalid expression fails the whole load:
//
//	[mouse.url]
//	url_pattern = "(https?://"   # error: invalid pattern
//
// # Basic Usage
//
//	cfg := config.New(config.WithWatcher(false))
//	if err := cfg.Load(ctx); err != nil {
//	    log.Fatal(err)
//	}
//	mouse := cfg.Mouse()
//	for _, issue := range cfg.Issues() {
//	    fmt.Println(issue.Path, issue)
//	}
//
// Raw sections can also be decoded directly:
//
//	mouse, err := config.NewDecoder(logger).Mouse(raw["mouse"])
//
// # Live Reload
//
// With the watcher enabled, edits to the config file are reloaded. A reload
// that fails keeps the previous snapshot; one that succeeds replaces the whole
// MouseConfig and notifies observers registered with SubscribePath("mouse")
// only if the new value differs from the old one.
package config
