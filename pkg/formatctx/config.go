package formatctx

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	gojson "github.com/goccy/go-json"
	"github.com/tidwall/jsonc"
	"gopkg.in/yaml.v3"
)

// ConfigFormat identifies the syntax of a configuration file.
type ConfigFormat uint8

const (
	FormatYAML ConfigFormat = iota + 1
	FormatJSONC
)

// Config is the on-disk form of formatting options. Empty fields inherit
// the active mode.
//
//	# formats.yaml
//	duration: standard
//	timestamp: bcl
type Config struct {
	Duration  string `yaml:"duration,omitempty" json:"duration,omitempty"`
	Timestamp string `yaml:"timestamp,omitempty" json:"timestamp,omitempty"`
}

// Options converts the configuration into scope options.
func (c Config) Options() ([]Option, error) {
	var opts []Option
	if c.Duration != "" {
		m, err := ParseDurationMode(c.Duration)
		if err != nil {
			return nil, err
		}
		opts = append(opts, WithDurationMode(m))
	}
	if c.Timestamp != "" {
		m, err := ParseTimestampMode(c.Timestamp)
		if err != nil {
			return nil, err
		}
		opts = append(opts, WithTimestampMode(m))
	}
	return opts, nil
}

// ParseConfig decodes a configuration document. JSONC input may contain
// comments and trailing commas.
func ParseConfig(data []byte, format ConfigFormat) (Config, error) {
	var cfg Config
	switch format {
	case FormatYAML:
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("parsing yaml config: %w", err)
		}
	case FormatJSONC:
		if err := gojson.Unmarshal(jsonc.ToJSON(data), &cfg); err != nil {
			return Config{}, fmt.Errorf("parsing jsonc config: %w", err)
		}
	default:
		return Config{}, &ConfigError{Option: "format", Value: fmt.Sprint(uint8(format)), Err: ErrUnknownConfigFormat}
	}

	// Reject unknown names now rather than at scope entry.
	if _, err := cfg.Options(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// LoadConfig reads a configuration file. The syntax is chosen by extension:
// .yaml and .yml are YAML, .json and .jsonc are JSONC.
func LoadConfig(path string) (Config, error) {
	var format ConfigFormat
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		format = FormatYAML
	case ".json", ".jsonc":
		format = FormatJSONC
	default:
		return Config{}, &ConfigError{Option: path, Err: ErrUnknownConfigFormat}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("reading %s: %w", path, err)
	}

	cfg, err := ParseConfig(data, format)
	if err != nil {
		return Config{}, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}
