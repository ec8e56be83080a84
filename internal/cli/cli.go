package cli

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/nameplate/pkg/cache"
	"github.com/matzehuels/nameplate/pkg/config"
	"github.com/matzehuels/nameplate/pkg/fonts"
	"github.com/matzehuels/nameplate/pkg/random"
)

// =============================================================================
// Constants
// =============================================================================

const (
	// appName is the application name used for directories and display.
	appName = "nameplate"
)

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger     *log.Logger
	configPath string
	cfg        *config.Config
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{Logger: newLogger(w, level)}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// config returns the settings loaded by the root command's pre-run, or the
// built-in defaults when no command has loaded them.
func (c *CLI) config() *config.Config {
	if c.cfg == nil {
		return config.Default()
	}
	return c.cfg
}

// loadConfig reads the config file, .env and environment into c.cfg.
func (c *CLI) loadConfig() error {
	cfg, err := config.Load(c.configPath)
	if err != nil {
		return err
	}
	c.cfg = cfg
	return nil
}

// =============================================================================
// Factories
// =============================================================================

// newCache returns the artifact cache for a command: redis when a URL is
// configured, the file cache otherwise, or a null cache when disabled.
func (c *CLI) newCache(ctx context.Context, noCache bool) (cache.Cache, error) {
	if noCache {
		return cache.NewNullCache(), nil
	}
	if url := c.config().Serve.RedisURL; url != "" {
		c.Logger.Debug("Using redis artifact cache")
		rc, err := cache.NewRedisCache(ctx, url)
		if err != nil {
			return nil, err
		}
		return rc, nil
	}
	dir, err := cacheDir()
	if err != nil {
		return cache.NewNullCache(), nil
	}
	fc, err := cache.NewFileCache(dir)
	if err != nil {
		c.Logger.Warn("Artifact cache disabled", "dir", dir, "err", err)
		return cache.NewNullCache(), nil
	}
	return fc, nil
}

// newRandom returns a source for seed, or for a fresh seed when seed is
// zero, along with the seed used.
func (c *CLI) newRandom(seed uint64) (random.Source, uint64) {
	if seed == 0 {
		seed = c.config().Board.Seed
	}
	rng, used := random.Seeded(seed)
	c.Logger.Debug("Random source", "seed", used)
	return rng, used
}

// loadFont loads the configured font file, or returns nil when none is set.
func (c *CLI) loadFont() (*fonts.Font, error) {
	path := c.config().Render.FontFile
	if path == "" {
		return nil, nil
	}
	return fonts.Load(path)
}

// =============================================================================
// Paths
// =============================================================================

// cacheDir returns the cache directory using XDG standard (~/.cache/nameplate/).
func cacheDir() (string, error) {
	if cacheHome := os.Getenv("XDG_CACHE_HOME"); cacheHome != "" {
		return filepath.Join(cacheHome, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".cache", appName), nil
}

// =============================================================================
// Options Helpers
// =============================================================================

// parseFormats parses a comma-separated format string into a slice.
func parseFormats(s string) []string {
	if s == "" {
		return []string{formatSVG}
	}
	var out []string
	for _, f := range strings.Split(s, ",") {
		if f = strings.TrimSpace(f); f != "" {
			out = append(out, f)
		}
	}
	return out
}
