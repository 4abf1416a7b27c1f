// Package config loads ewb.toml. Every value has a default; a file found
// upward from the working directory (or given explicitly) overrides the
// defaults, and command-line flags override the file.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
)

// FileName is the config file looked up from the working directory upward.
const FileName = "ewb.toml"

type Config struct {
	Parse ParseConfig `toml:"parse"`
	Query QueryConfig `toml:"query"`
	Fetch FetchConfig `toml:"fetch"`

	// Path is the file the config was read from, "" for defaults.
	Path string `toml:"-"`
}

type ParseConfig struct {
	MaxInputBytes  int64  `toml:"max_input_bytes"`
	MaxDepth       uint   `toml:"max_depth"`
	MaxNodes       uint   `toml:"max_nodes"`
	MaxTokenLength uint32 `toml:"max_token_length"`
	KeepComments   bool   `toml:"keep_comments"`
	KeepDoctype    bool   `toml:"keep_doctype"`
	NormalizeNFC   bool   `toml:"normalize_nfc"`
	MaxDiagnostics int    `toml:"max_diagnostics"`
	// MaxPerCode caps warnings of one code per document, 0 = no cap.
	MaxPerCode     int    `toml:"max_per_code"`
}

type QueryConfig struct {
	SkipWhitespaceText bool `toml:"skip_whitespace_text"`
}

type FetchConfig struct {
	UserAgent    string   `toml:"user_agent"`
	Timeout      Duration `toml:"timeout"`
	MaxBodyBytes int64    `toml:"max_body_bytes"`
	Cache        bool     `toml:"cache"`
	CacheDir     string   `toml:"cache_dir"`
}

// Duration reads TOML strings like "15s" or "1m30s".
type Duration struct {
	time.Duration
}

func (d *Duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(strings.TrimSpace(string(text)))
	if err != nil {
		return err
	}
	d.Duration = v
	return nil
}

func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

// DefaultUserAgent совпадает с тем, что браузер отправлял изначально.
const DefaultUserAgent = "Mozilla/5.0"

func Default() Config {
	return Config{
		Parse: ParseConfig{
			MaxInputBytes:  64 << 20,
			MaxDepth:       512,
			MaxNodes:       1 << 21,
			MaxTokenLength: 1 << 20,
			MaxDiagnostics: 100,
			MaxPerCode:     20,
		},
		Fetch: FetchConfig{
			UserAgent:    DefaultUserAgent,
			Timeout:      Duration{30 * time.Second},
			MaxBodyBytes: 32 << 20,
		},
	}
}

// Find walks from startDir up to the filesystem root looking for FileName.
func Find(startDir string) (string, bool, error) {
	if startDir == "" {
		startDir = "."
	}
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", false, fmt.Errorf("failed to resolve start directory: %w", err)
	}
	for {
		candidate := filepath.Join(dir, FileName)
		if _, err := os.Stat(candidate); err == nil {
			return candidate, true, nil
		} else if !errors.Is(err, os.ErrNotExist) {
			return "", false, fmt.Errorf("failed to stat %q: %w", candidate, err)
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return "", false, nil
}

// Load reads path on top of Default().
func Load(path string) (Config, error) {
	cfg := Default()
	meta, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return Config{}, fmt.Errorf("%s: failed to parse TOML: %w", path, err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, 0, len(undecoded))
		for _, k := range undecoded {
			keys = append(keys, k.String())
		}
		return Config{}, fmt.Errorf("%s: unknown keys: %s", path, strings.Join(keys, ", "))
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("%s: %w", path, err)
	}
	cfg.Path = path
	return cfg, nil
}

// Resolve loads explicit if set, otherwise the nearest FileName above startDir,
// otherwise the defaults.
func Resolve(explicit, startDir string) (Config, error) {
	if explicit != "" {
		return Load(explicit)
	}
	path, ok, err := Find(startDir)
	if err != nil {
		return Config{}, err
	}
	if !ok {
		return Default(), nil
	}
	return Load(path)
}

func (c Config) Validate() error {
	switch {
	case c.Parse.MaxInputBytes <= 0:
		return errors.New("[parse].max_input_bytes must be positive")
	case c.Parse.MaxDepth == 0:
		return errors.New("[parse].max_depth must be positive")
	case c.Parse.MaxNodes == 0:
		return errors.New("[parse].max_nodes must be positive")
	case c.Parse.MaxTokenLength == 0:
		return errors.New("[parse].max_token_length must be positive")
	case c.Parse.MaxDiagnostics < 0:
		return errors.New("[parse].max_diagnostics must not be negative")
	case c.Parse.MaxPerCode < 0:
		return errors.New("[parse].max_per_code must not be negative")
	case strings.TrimSpace(c.Fetch.UserAgent) == "":
		return errors.New("[fetch].user_agent must not be empty")
	case c.Fetch.Timeout.Duration < 0:
		return errors.New("[fetch].timeout must not be negative")
	case c.Fetch.MaxBodyBytes <= 0:
		return errors.New("[fetch].max_body_bytes must be positive")
	}
	return nil
}
