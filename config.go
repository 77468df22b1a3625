package main

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/mcudoc/refdoc/internal/docast"
)

// TemplateConfig lets an operator force a vendor classification policy by
// alias when a document's Producer metadata is missing or ambiguous,
// overriding classify.Select's producer-string sniff.
type TemplateConfig struct {
	Override string `toml:"override"` // "black_white", "blue_gray", or "" for auto-detect
}

// WatchConfig configures directory-watch mode: a location to recursively
// watch and a poll interval fallback for filesystems where fsnotify
// doesn't fire reliably.
type WatchConfig struct {
	Location string `toml:"location"`
	PollInterval int `toml:"poll_interval"` // seconds, 0 = default (5s)
}

func (w WatchConfig) PollDuration() time.Duration {
	if w.PollInterval > 0 {
		return time.Duration(w.PollInterval) * time.Second
	}
	return 5 * time.Second
}

// OutputConfig controls where and how the HTML emitter writes its output.
type OutputConfig struct {
	Dir string `toml:"dir"`
	StylesheetHref string `toml:"stylesheet_href"` // defaults to "../style.css"
}

type Config struct {
	Template TemplateConfig `toml:"template"`
	Watch WatchConfig `toml:"watch"`
	Output OutputConfig `toml:"output"`
	Patches []docast.PatchRule `toml:"patches"`
}

func defaultConfig() *Config {
	return &Config{
		Output: OutputConfig{
			Dir: "out",
			StylesheetHref: "../style.css",
		},
	}
}

func LoadConfig(path string) (*Config, error) {
	cfg := defaultConfig()

	_, err := os.Stat(path)
	if errors.Is(err, os.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return nil, err
	}

	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}
	if cfg.Output.StylesheetHref == "" {
		cfg.Output.StylesheetHref = "../style.css"
	}
	return cfg, nil
}
