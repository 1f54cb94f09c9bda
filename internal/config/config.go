package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/goccy/go-json"
	"github.com/goccy/go-yaml"
	"github.com/karupanerura/go9cc/internal/compiler"
	"github.com/mitchellh/mapstructure"
)

type Config struct {
	Entry  string `mapstructure:"entry"`
	Indent string `mapstructure:"indent"`
}

func Default() *Config {
	return &Config{
		Entry:  compiler.DefaultEntry,
		Indent: compiler.DefaultIndent,
	}
}

func (c *Config) Emitter() *compiler.Emitter {
	return &compiler.Emitter{
		Entry:  c.Entry,
		Indent: c.Indent,
	}
}

// Load reads a config file chosen by extension. An empty path yields the defaults.
func Load(filePath string) (*Config, error) {
	if filePath == "" {
		return Default(), nil
	}

	var parseConfig func(io.Reader) (*Config, error)
	switch filepath.Ext(filePath) {
	case ".json":
		parseConfig = ParseJSON
	case ".yaml", ".yml":
		parseConfig = ParseYAML
	default:
		return nil, fmt.Errorf("unsupported file extension: %s", filePath)
	}

	f, err := os.Open(filePath)
	if err != nil {
		return nil, fmt.Errorf("os.Open(%q): %w", filePath, err)
	}
	defer f.Close()

	c, err := parseConfig(f)
	if err != nil {
		return nil, fmt.Errorf("config.Parse(%q): %w", filePath, err)
	}
	return c, nil
}

func ParseYAML(r io.Reader) (*Config, error) {
	yamlBytes, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("io.ReadAll: %w", err)
	}

	jsonBytes, err := yaml.YAMLToJSON(yamlBytes)
	if err != nil {
		return nil, fmt.Errorf("yaml.YAMLToJSON: %w", err)
	}

	return ParseJSON(bytes.NewReader(jsonBytes))
}

func ParseJSON(r io.Reader) (*Config, error) {
	var raw map[string]any
	if err := json.NewDecoder(r).Decode(&raw); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("json.Decode: %w", err)
	}

	c := Default()
	if err := mapstructure.Decode(raw, c); err != nil {
		return nil, fmt.Errorf("mapstructure.Decode: %w", err)
	}
	if err := c.validate(); err != nil {
		return nil, err
	}
	return c, nil
}

func (c *Config) validate() error {
	if c.Entry == "" {
		return errors.New("entry must not be empty")
	}
	return nil
}
