package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
)

// Config is the treeforth.toml configuration file; command line flags
// override anything set here.
type Config struct {
	Interp InterpConfig `toml:"interp"`
	Image  ImageConfig  `toml:"image"`
}

// InterpConfig configures the interpreter itself.
type InterpConfig struct {
	HeapBase  uint     `toml:"heap-base"`
	HeapLimit uint     `toml:"heap-limit"`
	MaxDepth  int      `toml:"max-depth"`
	Timeout   duration `toml:"timeout"`
	Trace     bool     `toml:"trace"`
	Dump      bool     `toml:"dump"`
}

// ImageConfig names session image files to restore before, and save after,
// running.
type ImageConfig struct {
	Load string `toml:"load"`
	Save string `toml:"save"`
}

// duration decodes TOML strings like "1.5s" with time.ParseDuration.
type duration struct{ time.Duration }

func (d *duration) UnmarshalText(text []byte) (err error) {
	d.Duration, err = time.ParseDuration(string(text))
	return err
}

func (d duration) MarshalText() ([]byte, error) {
	return []byte(d.Duration.String()), nil
}

// DefaultConfig returns the configuration used without any config file.
func DefaultConfig() Config {
	return Config{Interp: InterpConfig{HeapBase: defaultHeapBase}}
}

// LoadConfig reads a TOML config file over DefaultConfig; unknown keys are
// an error, to catch typos.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	md, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return cfg, fmt.Errorf("parse error in %s: %w", path, err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, key := range undecoded {
			keys[i] = key.String()
		}
		return cfg, fmt.Errorf("unknown keys in %s: %v", path, strings.Join(keys, ", "))
	}
	return cfg, nil
}

// Options returns VM options for the interpreter settings.
func (cfg Config) Options() []VMOption {
	return []VMOption{
		WithHeapBase(cfg.Interp.HeapBase),
		WithHeapLimit(cfg.Interp.HeapLimit),
		WithMaxDepth(cfg.Interp.MaxDepth),
	}
}
