// Package config loads and saves ~/.typedterm/config.yaml.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	clog "github.com/charmbracelet/log"
	"gopkg.in/yaml.v3"

	"typedterm/internal/codeblock"
	"typedterm/internal/scenario"
	"typedterm/internal/typing"
)

// Config is the on-disk configuration.
type Config struct {
	LogLevel  string              `yaml:"log_level" json:"log_level" jsonschema:"enum=debug,enum=info,enum=warn,enum=error,default=info"`
	Terminal  Terminal            `yaml:"terminal" json:"terminal"`
	Code      Code                `yaml:"code" json:"code"`
	Cache     Cache               `yaml:"cache" json:"cache"`
	WebUI     WebUI               `yaml:"webui" json:"webui"`
	Scenarios []scenario.Scenario `yaml:"scenarios,omitempty" json:"scenarios,omitempty" jsonschema:"description=Extra scenarios; a name matching a built-in replaces it"`
}

// Terminal configures the typed terminal.
type Terminal struct {
	CharDelay   Duration `yaml:"char_delay" json:"char_delay" jsonschema:"description=Delay between typed characters"`
	LinePause   int      `yaml:"line_pause" json:"line_pause" jsonschema:"minimum=1,description=Pause after a command is typed, in multiples of char_delay"`
	Loop        bool     `yaml:"loop" json:"loop"`
	LoopDelay   Duration `yaml:"loop_delay" json:"loop_delay"`
	ClearOnLoop bool     `yaml:"clear_on_loop" json:"clear_on_loop" jsonschema:"description=Drop history when the script restarts"`
	Scenario    string   `yaml:"scenario" json:"scenario" jsonschema:"description=Scenario played when none is named"`
}

// Code configures code blocks.
type Code struct {
	LineNumbers bool     `yaml:"line_numbers" json:"line_numbers"`
	Typing      bool     `yaml:"typing" json:"typing"`
	TypingSpeed Duration `yaml:"typing_speed" json:"typing_speed"`
	Theme       string   `yaml:"theme" json:"theme" jsonschema:"enum=vitesse,enum=plain"`
}

// Cache configures the highlight cache.
type Cache struct {
	Size      int    `yaml:"size" json:"size" jsonschema:"minimum=0"`
	RedisAddr string `yaml:"redis_addr,omitempty" json:"redis_addr,omitempty" jsonschema:"description=host:port of a Redis server used by the web UI"`
}

// WebUI configures the web server.
type WebUI struct {
	Addr string `yaml:"addr" json:"addr"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		LogLevel: "info",
		Terminal: Terminal{
			CharDelay:   Duration(typing.DefaultCharDelay),
			LinePause:   typing.DefaultLinePause,
			LoopDelay:   Duration(typing.DefaultLoopDelay),
			ClearOnLoop: true,
			Scenario:    scenario.Default,
		},
		Code: Code{
			LineNumbers: true,
			Typing:      true,
			TypingSpeed: Duration(codeblock.DefaultTypingSpeed),
			Theme:       "vitesse",
		},
		Cache: Cache{Size: 512},
		WebUI: WebUI{Addr: "127.0.0.1:8787"},
	}
}

// Load reads the config file. A missing file yields Default() and no error;
// keys absent from the file keep their defaults.
func Load() (Config, error) {
	p, err := Path()
	if err != nil {
		return Default(), err
	}
	return LoadFile(p)
}

// LoadFile reads the config at path.
func LoadFile(path string) (Config, error) {
	cfg := Default()
	b, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(b, &cfg); err != nil {
		return Default(), fmt.Errorf("parse %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return Default(), fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Save writes cfg to the config path.
func Save(cfg Config) (string, error) {
	p, err := Path()
	if err != nil {
		return "", err
	}
	return p, SaveFile(p, cfg)
}

// SaveFile writes cfg to path, creating parent directories.
func SaveFile(path string, cfg Config) error {
	if err := cfg.Validate(); err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}
	b, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, b, 0o644)
}

// Validate rejects values the engine cannot use.
func (c Config) Validate() error {
	if lvl := strings.TrimSpace(c.LogLevel); lvl != "" {
		if _, err := clog.ParseLevel(lvl); err != nil {
			return fmt.Errorf("log_level: %w", err)
		}
	}
	switch {
	case c.Terminal.CharDelay < 0, c.Terminal.LoopDelay < 0, c.Code.TypingSpeed < 0:
		return errors.New("durations must not be negative")
	case c.Terminal.LinePause < 0:
		return errors.New("terminal.line_pause must not be negative")
	case c.Cache.Size < 0:
		return errors.New("cache.size must not be negative")
	}
	return nil
}

// TypingOptions converts the terminal section for the typing layer.
func (c Config) TypingOptions() typing.Options {
	return typing.Options{
		CharDelay:   time.Duration(c.Terminal.CharDelay),
		LinePause:   c.Terminal.LinePause,
		Loop:        c.Terminal.Loop,
		LoopDelay:   time.Duration(c.Terminal.LoopDelay),
		KeepHistory: !c.Terminal.ClearOnLoop,
	}.Normalize()
}

// CodeBlock converts the code section for a snippet in language.
func (c Config) CodeBlock(language string) codeblock.Config {
	return codeblock.Config{
		Language:        language,
		TypingEffect:    c.Code.Typing,
		TypingSpeed:     time.Duration(c.Code.TypingSpeed),
		ShowLineNumbers: c.Code.LineNumbers,
	}
}

// AllScenarios merges the configured scenarios with the built-ins.
func (c Config) AllScenarios() []scenario.Scenario {
	return scenario.Merge(c.Scenarios)
}
