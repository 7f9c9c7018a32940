package config

import (
	"bytes"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

// Codec is the syntax of a configuration file.
type Codec string

const (
	CodecYAML Codec = "yaml"
	CodecTOML Codec = "toml"
)

// yamlIndent matches the indentation of the generated templates.
const yamlIndent = 2

// CodecFor picks the codec from a file name: .toml is TOML, anything else YAML.
func CodecFor(path string) Codec {
	if strings.EqualFold(filepath.Ext(path), ".toml") {
		return CodecTOML
	}
	return CodecYAML
}

// Decode layers data onto cfg. Settings absent from data keep their
// current values. TOML rejects unknown keys so typos surface.
func (c Codec) Decode(data []byte, cfg *Config) error {
	switch c {
	case CodecTOML:
		meta, err := toml.Decode(string(data), cfg)
		if err != nil {
			return fmt.Errorf("parse toml: %w", err)
		}
		if undecoded := meta.Undecoded(); len(undecoded) > 0 {
			return fmt.Errorf("parse toml: unknown key %q", undecoded[0].String())
		}
	default:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return fmt.Errorf("parse yaml: %w", err)
		}
	}

	if cfg.Rules == nil {
		cfg.Rules = make(map[string]RuleConfig)
	}
	return nil
}

// Encode serializes v, usually a *Config or a section of one.
func (c Codec) Encode(v any) ([]byte, error) {
	var buf bytes.Buffer
	if c == CodecTOML {
		if err := toml.NewEncoder(&buf).Encode(v); err != nil {
			return nil, fmt.Errorf("encode toml: %w", err)
		}
		return buf.Bytes(), nil
	}

	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(yamlIndent)
	if err := enc.Encode(v); err != nil {
		return nil, fmt.Errorf("encode yaml: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("encode yaml: %w", err)
	}
	return buf.Bytes(), nil
}

func decodeNew(c Codec, data []byte) (*Config, error) {
	cfg := &Config{}
	if err := c.Decode(data, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// FromYAML parses a configuration from YAML.
func FromYAML(data []byte) (*Config, error) { return decodeNew(CodecYAML, data) }

// FromTOML parses a configuration from TOML.
func FromTOML(data []byte) (*Config, error) { return decodeNew(CodecTOML, data) }

// ToYAML serializes c as YAML. A nil config encodes to nothing.
func (c *Config) ToYAML() ([]byte, error) {
	if c == nil {
		return nil, nil
	}
	return CodecYAML.Encode(c)
}

// ToTOML serializes c as TOML. A nil config encodes to nothing.
func (c *Config) ToTOML() ([]byte, error) {
	if c == nil {
		return nil, nil
	}
	return CodecTOML.Encode(c)
}
