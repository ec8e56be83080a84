// Package config loads nameplate settings from a TOML file, a .env file
// and NAMEPLATE_* environment variables, in that order of precedence
// (later wins). Command-line flags are applied on top by the CLI.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"

	"github.com/matzehuels/nameplate/pkg/deck"
	"github.com/matzehuels/nameplate/pkg/errors"
	"github.com/matzehuels/nameplate/pkg/layout"
)

// EnvFile is the dotenv file read from the working directory.
const EnvFile = ".env"

// Duration is a time.Duration written as a Go duration string ("5m").
type Duration struct{ time.Duration }

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *Duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	d.Duration = v
	return nil
}

// MarshalText implements encoding.TextMarshaler.
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.Duration.String()), nil
}

// Config is the full settings tree.
type Config struct {
	Board  Board  `toml:"board"`
	Render Render `toml:"render"`
	Print  Print  `toml:"print"`
	Serve  Serve  `toml:"serve"`
}

// Board holds the arrangement settings.
type Board struct {
	Width    float64  `toml:"width"`
	Height   float64  `toml:"height"`
	Strategy string   `toml:"strategy"`
	Interval Duration `toml:"interval"`
	Seed     uint64   `toml:"seed"`
	Overflow string   `toml:"overflow"`
}

// Render holds static rendering settings.
type Render struct {
	Style      string `toml:"style"`
	FontFamily string `toml:"font_family"`
	FontFile   string `toml:"font_file"`
}

// Print holds print sheet settings.
type Print struct {
	Columns int `toml:"columns"`
}

// Serve holds HTTP view settings.
type Serve struct {
	Addr     string   `toml:"addr"`
	RedisURL string   `toml:"redis_url"`
	CacheTTL Duration `toml:"cache_ttl"`
}

// Default returns the built-in settings.
func Default() *Config {
	return &Config{
		Board: Board{
			Width:    1280,
			Height:   800,
			Interval: Duration{5 * time.Minute},
			Overflow: deck.OverflowCap.String(),
		},
		Render: Render{Style: "paper"},
		Print:  Print{Columns: 2},
		Serve: Serve{
			Addr:     "127.0.0.1:8080",
			CacheTTL: Duration{24 * time.Hour},
		},
	}
}

// ConfigHome returns XDG_CONFIG_HOME or ~/.config.
func ConfigHome() string {
	if dir := os.Getenv("XDG_CONFIG_HOME"); dir != "" {
		return dir
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config")
}

// Path returns the default config file path.
func Path() string {
	return filepath.Join(ConfigHome(), "nameplate", "config.toml")
}

// Load builds the settings from defaults, the TOML file at path (Path()
// when empty; a missing file is skipped), ./.env and the process
// environment, then validates them.
func Load(path string) (*Config, error) {
	if path == "" {
		path = Path()
	}
	cfg := Default()
	if err := cfg.decodeFile(path); err != nil {
		return nil, err
	}

	dotenv, err := readEnvFile(EnvFile)
	if err != nil {
		return nil, err
	}
	if err := cfg.Overlay(dotenv); err != nil {
		return nil, fmt.Errorf("%s: %w", EnvFile, err)
	}
	if err := cfg.Overlay(processEnv()); err != nil {
		return nil, fmt.Errorf("environment: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) decodeFile(path string) error {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil
	}
	md, err := toml.DecodeFile(path, c)
	if err != nil {
		return errors.Wrap(errors.ErrCodeInvalidFormat, err, "decode config %s", path)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return errors.New(errors.ErrCodeInvalidFormat, "config %s: unknown key %q", path, undecoded[0].String())
	}
	return nil
}

// readEnvFile parses a dotenv file without touching the process
// environment. A missing file yields no values.
func readEnvFile(path string) (map[string]string, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil, nil
	}
	env, err := godotenv.Read(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return env, nil
}

func processEnv() map[string]string {
	env := make(map[string]string)
	for _, key := range EnvKeys {
		if v, ok := os.LookupEnv(key); ok {
			env[key] = v
		}
	}
	return env
}

// EnvKeys lists the environment variables Overlay understands.
var EnvKeys = []string{
	"NAMEPLATE_WIDTH",
	"NAMEPLATE_HEIGHT",
	"NAMEPLATE_STRATEGY",
	"NAMEPLATE_INTERVAL",
	"NAMEPLATE_SEED",
	"NAMEPLATE_OVERFLOW",
	"NAMEPLATE_STYLE",
	"NAMEPLATE_FONT_FILE",
	"NAMEPLATE_ADDR",
	"NAMEPLATE_REDIS_URL",
}

// Overlay applies NAMEPLATE_* values from env. Unknown keys are ignored.
func (c *Config) Overlay(env map[string]string) error {
	for key, v := range env {
		var err error
		switch key {
		case "NAMEPLATE_WIDTH":
			c.Board.Width, err = strconv.ParseFloat(v, 64)
		case "NAMEPLATE_HEIGHT":
			c.Board.Height, err = strconv.ParseFloat(v, 64)
		case "NAMEPLATE_STRATEGY":
			c.Board.Strategy = v
		case "NAMEPLATE_INTERVAL":
			err = c.Board.Interval.UnmarshalText([]byte(v))
		case "NAMEPLATE_SEED":
			c.Board.Seed, err = strconv.ParseUint(v, 10, 64)
		case "NAMEPLATE_OVERFLOW":
			c.Board.Overflow = v
		case "NAMEPLATE_STYLE":
			c.Render.Style = v
		case "NAMEPLATE_FONT_FILE":
			c.Render.FontFile = v
		case "NAMEPLATE_ADDR":
			c.Serve.Addr = v
		case "NAMEPLATE_REDIS_URL":
			c.Serve.RedisURL = v
		}
		if err != nil {
			return errors.Wrap(errors.ErrCodeInvalidInput, err, "%s=%q", key, v)
		}
	}
	return nil
}

// Styles are the accepted render.style values.
var Styles = []string{"paper", "simple"}

// Validate checks strategy, overflow, style and geometry.
func (c *Config) Validate() error {
	if c.Board.Strategy != "" {
		if _, err := layout.ParseStrategy(c.Board.Strategy); err != nil {
			return err
		}
	}
	if _, err := deck.ParseOverflow(c.Board.Overflow); err != nil {
		return err
	}
	if err := errors.ValidateDimensions(c.Board.Width, c.Board.Height); err != nil {
		return err
	}
	if c.Board.Interval.Duration <= 0 {
		return errors.New(errors.ErrCodeInvalidInput, "board.interval must be positive, got %s", c.Board.Interval)
	}
	if err := errors.ValidateFormat(c.Render.Style, Styles...); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidStyle, err, "render.style")
	}
	if c.Print.Columns < 1 {
		return errors.New(errors.ErrCodeInvalidInput, "print.columns must be at least 1, got %d", c.Print.Columns)
	}
	return nil
}

// Strategy returns the pinned strategy, or "" for a random pick per
// trigger.
func (c *Config) Strategy() layout.Strategy {
	s, err := layout.ParseStrategy(c.Board.Strategy)
	if err != nil {
		return ""
	}
	return s
}

// Overflow returns the parsed overflow policy.
func (c *Config) Overflow() deck.Overflow {
	o, _ := deck.ParseOverflow(c.Board.Overflow)
	return o
}

// Write encodes cfg as TOML at path, creating parent directories.
func Write(cfg *Config, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("create config directory: %w", err)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create config file: %w", err)
	}
	if err := toml.NewEncoder(f).Encode(cfg); err != nil {
		f.Close()
		return fmt.Errorf("encode config: %w", err)
	}
	return f.Close()
}
