// Package config loads the .adfconv.yml project configuration.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// FileName is the configuration file looked up in the working directory.
const FileName = ".adfconv.yml"

// ID modes for task lists created from Markdown.
const (
	IDModeUUID       = "uuid"
	IDModeSequential = "sequential"
)

// Config is the decoded configuration file.
type Config struct {
	Log     Log     `yaml:"log"`
	Convert Convert `yaml:"convert"`
	Server  Server  `yaml:"server"`
}

// Log configures the zap logger.
type Log struct {
	Level  string `yaml:"level"`            // debug, info, warn or error
	Format string `yaml:"format"`           // console or json
	File   string `yaml:"file,omitempty"`   // rotated log file; stderr when empty
	MaxMB  int    `yaml:"max_mb,omitempty"` // rotation size
	Keep   int    `yaml:"keep,omitempty"`   // rotated files kept
}

// Convert configures conversions.
type Convert struct {
	Sanitize bool   `yaml:"sanitize"`
	IDs      string `yaml:"ids"`
}

// Server configures adfc serve.
type Server struct {
	Addr      string        `yaml:"addr"`
	CacheTTL  time.Duration `yaml:"cache_ttl"`
	BodyLimit int           `yaml:"body_limit"`
}

// Default returns the configuration used when no file exists.
func Default() Config {
	return Config{
		Log:     Log{Level: "info", Format: "console", MaxMB: 10, Keep: 3},
		Convert: Convert{Sanitize: true, IDs: IDModeUUID},
		Server:  Server{Addr: ":8080", CacheTTL: 5 * time.Minute, BodyLimit: 4 << 20},
	}
}

// Load reads path over the defaults. A missing file is not an error.
func Load(path string) (Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return Config{}, fmt.Errorf("reading config: %w", err)
	}
	if err := Decode(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Decode decodes YAML data into cfg, keeping the values of keys data does
// not set. Unknown keys are rejected.
func Decode(data []byte, cfg *Config) error {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return fmt.Errorf("parse config: %w", err)
	}
	return cfg.Validate()
}

// Validate reports the first invalid setting.
func (c Config) Validate() error {
	switch c.Log.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("log.level: unknown level %q", c.Log.Level)
	}
	switch c.Log.Format {
	case "console", "json":
	default:
		return fmt.Errorf("log.format: unknown format %q", c.Log.Format)
	}
	switch c.Convert.IDs {
	case IDModeUUID, IDModeSequential:
	default:
		return fmt.Errorf("convert.ids: unknown mode %q", c.Convert.IDs)
	}
	if c.Server.CacheTTL <= 0 {
		return fmt.Errorf("server.cache_ttl: must be positive, got %s", c.Server.CacheTTL)
	}
	if c.Server.BodyLimit <= 0 {
		return fmt.Errorf("server.body_limit: must be positive, got %d", c.Server.BodyLimit)
	}
	return nil
}

// Marshal encodes cfg as YAML.
func Marshal(cfg Config) ([]byte, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(cfg); err != nil {
		return nil, fmt.Errorf("encode config: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("encode config: %w", err)
	}
	return buf.Bytes(), nil
}
