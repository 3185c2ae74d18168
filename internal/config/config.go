package config

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"

	"github.com/dshills/stormterm/internal/config/loader"
	"github.com/dshills/stormterm/internal/config/notify"
	"github.com/dshills/stormterm/internal/config/watcher"
)

// DefaultEnvPrefix is the prefix of environment variable overrides.
const DefaultEnvPrefix = "STORMTERM_"

// configFileNames are looked up in the user config directory, in order.
var configFileNames = []string{
	"stormterm.toml",
	"stormterm.yaml",
	"stormterm.yml",
	"stormterm.json",
}

// Config loads the configuration file, validates it, and holds the current
// snapshot. Readers always see a complete MouseConfig; reloads swap in a new
// value atomically.
type Config struct {
	// mu serializes loads.
	mu sync.Mutex

	mouse  atomic.Pointer[MouseConfig]
	issues atomic.Pointer[[]*Issue]
	source atomic.Pointer[string]

	watcher  *watcher.Watcher
	notifier *notify.Notifier
	logger   *slog.Logger

	// Configuration paths
	userConfigDir string
	configFile    string
	envPrefix     string

	// Options
	enableWatcher bool
	watcherOpts   []watcher.Option
}

// Option configures a Config instance.
type Option func(*Config)

// WithUserConfigDir sets the directory searched for stormterm.{toml,yaml,yml,json}.
func WithUserConfigDir(dir string) Option {
	return func(c *Config) {
		c.userConfigDir = dir
	}
}

// WithConfigFile loads exactly this file instead of searching the user
// config directory. A missing file is an error.
func WithConfigFile(path string) Option {
	return func(c *Config) {
		c.configFile = path
	}
}

// WithEnvPrefix sets the environment variable prefix. An empty prefix
// disables environment overrides.
func WithEnvPrefix(prefix string) Option {
	return func(c *Config) {
		c.envPrefix = prefix
	}
}

// WithWatcher enables file watching for live reload.
func WithWatcher(enable bool) Option {
	return func(c *Config) {
		c.enableWatcher = enable
	}
}

// WithWatcherOptions passes options through to the file watcher.
func WithWatcherOptions(opts ...watcher.Option) Option {
	return func(c *Config) {
		c.watcherOpts = append(c.watcherOpts, opts...)
	}
}

// WithLogger sets the logger for field warnings and reload events.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Config) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// New creates a new Config instance with the given options.
// Until Load succeeds, Mouse returns DefaultMouseConfig().
func New(opts ...Option) *Config {
	c := &Config{
		notifier:      notify.New(),
		logger:        slog.Default(),
		envPrefix:     DefaultEnvPrefix,
		enableWatcher: true,
	}

	for _, opt := range opts {
		opt(c)
	}

	if c.userConfigDir == "" {
		c.userConfigDir = defaultUserConfigDir()
	}

	defaults := DefaultMouseConfig()
	c.mouse.Store(&defaults)
	c.issues.Store(&[]*Issue{})
	empty := ""
	c.source.Store(&empty)

	return c
}

// Load reads and validates the configuration. Recovered field problems are
// logged and available from Issues; an error means nothing was applied.
func (c *Config) Load(ctx context.Context) error {
	if err := c.load(ctx, false); err != nil {
		return err
	}

	c.mu.Lock()
	start := c.enableWatcher && c.watcher == nil
	c.mu.Unlock()

	// Start file watcher outside the lock; its callbacks take the same lock.
	if start {
		if err := c.startWatcher(); err != nil {
			c.logger.Warn("config live reload disabled", slog.String("error", err.Error()))
		}
	}
	return nil
}

// Reload reads the configuration again. On error the previous snapshot is
// kept. Observers are told about the reload and, if the mouse section
// changed, about that section.
func (c *Config) Reload(ctx context.Context) error {
	return c.load(ctx, true)
}

// Close shuts down the configuration system.
func (c *Config) Close() {
	c.mu.Lock()
	w := c.watcher
	c.mu.Unlock()

	if w != nil {
		w.Stop()
	}
	c.notifier.Close()
}

// Mouse returns the current mouse section.
func (c *Config) Mouse() MouseConfig {
	return *c.mouse.Load()
}

// Issues returns the recovered field problems of the last applied load.
func (c *Config) Issues() []*Issue {
	issues := *c.issues.Load()
	out := make([]*Issue, len(issues))
	copy(out, issues)
	return out
}

// Source returns the file the current snapshot was read from, or "" when
// only defaults and environment overrides applied.
func (c *Config) Source() string {
	return *c.source.Load()
}

// Subscribe registers an observer for all configuration changes.
func (c *Config) Subscribe(observer notify.Observer) *notify.Subscription {
	return c.notifier.Subscribe(observer)
}

// SubscribePath registers an observer for changes to a specific section.
func (c *Config) SubscribePath(path string, observer notify.Observer) *notify.Subscription {
	return c.notifier.SubscribePath(path, observer)
}

func (c *Config) load(ctx context.Context, reload bool) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	old, mouse, path, issues, err := c.swap()
	if err != nil || !reload {
		return err
	}

	// Observers run after the lock is released so they may call Reload.
	c.logger.Info("configuration reloaded",
		slog.String("source", displaySource(path)),
		slog.Int("issues", len(issues)),
	)
	c.notifier.NotifyReload(path)
	if !old.Equal(mouse) {
		c.notifier.NotifySection(SectionMouse, path)
	}
	return nil
}

// swap reads and decodes the sources under the load lock and stores the
// result. It returns the previous snapshot alongside the new one.
func (c *Config) swap() (old *MouseConfig, mouse MouseConfig, path string, issues []*Issue, err error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	path, err = c.resolvePath()
	if err != nil {
		return nil, MouseConfig{}, "", nil, err
	}

	raw, err := c.readSources(path)
	if err != nil {
		return nil, MouseConfig{}, "", nil, err
	}

	section, _ := getPath(raw, SectionMouse)
	d := NewDecoder(c.logger)
	mouse, err = d.Mouse(section)
	if err != nil {
		return nil, MouseConfig{}, "", nil, fmt.Errorf("loading %s: %w", displaySource(path), err)
	}

	old = c.mouse.Load()
	issues = d.Issues()
	c.mouse.Store(&mouse)
	c.issues.Store(&issues)
	c.source.Store(&path)
	return old, mouse, path, issues, nil
}

// resolvePath returns the file to read, or "" when none exists.
func (c *Config) resolvePath() (string, error) {
	if c.configFile != "" {
		if _, err := os.Stat(c.configFile); err != nil {
			if os.IsNotExist(err) {
				return "", fmt.Errorf("%w: %s", ErrFileNotFound, c.configFile)
			}
			return "", err
		}
		return c.configFile, nil
	}

	for _, name := range configFileNames {
		candidate := filepath.Join(c.userConfigDir, name)
		if _, err := os.Stat(candidate); err == nil {
			return candidate, nil
		}
	}
	return "", nil
}

// readSources loads the file at path (if any) with environment overrides on top.
func (c *Config) readSources(path string) (map[string]any, error) {
	var raw map[string]any
	if path != "" {
		l, err := loader.ForPath(path)
		if err != nil {
			return nil, err
		}
		raw, err = l.Load()
		if err != nil {
			return nil, err
		}
	}

	if c.envPrefix != "" {
		env, err := loader.NewEnvLoader(c.envPrefix).Load()
		if err != nil {
			return nil, err
		}
		raw = loader.DeepMerge(raw, env)
	}

	if raw == nil {
		raw = make(map[string]any)
	}
	return raw, nil
}

// watchPaths lists the files whose changes trigger a reload.
func (c *Config) watchPaths() []string {
	if c.configFile != "" {
		return []string{c.configFile}
	}
	paths := make([]string, len(configFileNames))
	for i, name := range configFileNames {
		paths[i] = filepath.Join(c.userConfigDir, name)
	}
	return paths
}

func (c *Config) startWatcher() error {
	w, err := watcher.New(append([]watcher.Option{watcher.WithLogger(c.logger)}, c.watcherOpts...)...)
	if err != nil {
		return err
	}
	for _, path := range c.watchPaths() {
		if err := w.Watch(path); err != nil {
			w.Stop()
			return err
		}
	}
	w.OnChange(c.handleFileChange)

	c.mu.Lock()
	c.watcher = w
	c.mu.Unlock()

	w.Start()
	return nil
}

// handleFileChange handles file change events from the watcher.
func (c *Config) handleFileChange(event watcher.Event) {
	if err := c.Reload(context.Background()); err != nil {
		c.logger.Error("configuration reload failed; keeping previous settings",
			slog.String("source", event.Path),
			slog.String("op", event.Op.String()),
			slog.String("error", err.Error()),
		)
		c.notifier.NotifyError(event.Path, err)
	}
}

// defaultUserConfigDir returns the default user configuration directory.
func defaultUserConfigDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "stormterm")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", "stormterm")
}

func displaySource(path string) string {
	if path == "" {
		return "defaults"
	}
	return path
}
