// Package config holds the runtime configuration of the BoardCut service and
// CLI, read by viper from ~/.boardcut.yaml, a --config file and BOARDCUT_*
// environment variables.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"net"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/piwi3910/BoardCut/internal/model"
)

// EnvPrefix is prepended to every environment override, e.g.
// BOARDCUT_SERVER_ADDR or BOARDCUT_STORAGE_BUCKET.
const EnvPrefix = "BOARDCUT"

type Config struct {
	Server    ServerConfig    `mapstructure:"server" yaml:"server"`
	Gate      GateConfig      `mapstructure:"gate" yaml:"gate"`
	Storage   StorageConfig   `mapstructure:"storage" yaml:"storage"`
	Orders    OrdersConfig    `mapstructure:"orders" yaml:"orders"`
	Telemetry TelemetryConfig `mapstructure:"telemetry" yaml:"telemetry"`
	Log       LogConfig       `mapstructure:"log" yaml:"log"`
	Layout    LayoutConfig    `mapstructure:"layout" yaml:"layout"`
}

type ServerConfig struct {
	Addr string `mapstructure:"addr" yaml:"addr"`
	// TrustedProxies may set the client address through X-Forwarded-For.
	// Empty means the peer address is used as is.
	TrustedProxies []string `mapstructure:"trusted_proxies" yaml:"trusted_proxies,omitempty"`
}

// GateConfig controls the shared-password gate in front of /api. An empty
// password disables it.
type GateConfig struct {
	Password    string        `mapstructure:"password" yaml:"password"`
	MaxAttempts int           `mapstructure:"max_attempts" yaml:"max_attempts"`
	Block       time.Duration `mapstructure:"block" yaml:"block"`
}

type StorageConfig struct {
	Backend  string `mapstructure:"backend" yaml:"backend"` // local or s3
	Root     string `mapstructure:"root" yaml:"root"`
	Bucket   string `mapstructure:"bucket" yaml:"bucket"`
	Region   string `mapstructure:"region" yaml:"region"`
	Profile  string `mapstructure:"profile" yaml:"profile"`
	Endpoint string `mapstructure:"endpoint" yaml:"endpoint"`
}

type OrdersConfig struct {
	Recorder string `mapstructure:"recorder" yaml:"recorder"` // file or dynamodb
	Path     string `mapstructure:"path" yaml:"path"`
	Table    string `mapstructure:"table" yaml:"table"`
}

type TelemetryConfig struct {
	Endpoint string `mapstructure:"endpoint" yaml:"endpoint"`
}

type LogConfig struct {
	Level  string `mapstructure:"level" yaml:"level"`
	Format string `mapstructure:"format" yaml:"format"`
}

type LayoutConfig struct {
	RotationPolicy string `mapstructure:"rotation_policy" yaml:"rotation_policy"`
}

// Default returns the configuration used when nothing is set.
func Default() Config {
	dataDir := filepath.Join(homeDir(), ".boardcut")
	return Config{
		Server: ServerConfig{Addr: ":8080"},
		Gate: GateConfig{
			MaxAttempts: 5,
			Block:       time.Hour,
		},
		Storage: StorageConfig{
			Backend: "local",
			Root:    filepath.Join(dataDir, "files"),
		},
		Orders: OrdersConfig{
			Recorder: "file",
			Path:     filepath.Join(dataDir, "orders.json"),
			Table:    "orders",
		},
		Log:    LogConfig{Level: "info", Format: "text"},
		Layout: LayoutConfig{RotationPolicy: string(model.RotationFree)},
	}
}

// DefaultPath returns ~/.boardcut.yaml.
func DefaultPath() string {
	return filepath.Join(homeDir(), ".boardcut.yaml")
}

// SetDefaults registers every default with v so env overrides work for keys
// absent from the config file.
func SetDefaults(v *viper.Viper) {
	d := Default()
	v.SetDefault("server.addr", d.Server.Addr)
	v.SetDefault("gate.password", d.Gate.Password)
	v.SetDefault("gate.max_attempts", d.Gate.MaxAttempts)
	v.SetDefault("gate.block", d.Gate.Block)
	v.SetDefault("storage.backend", d.Storage.Backend)
	v.SetDefault("storage.root", d.Storage.Root)
	v.SetDefault("storage.bucket", d.Storage.Bucket)
	v.SetDefault("storage.region", d.Storage.Region)
	v.SetDefault("storage.profile", d.Storage.Profile)
	v.SetDefault("storage.endpoint", d.Storage.Endpoint)
	v.SetDefault("orders.recorder", d.Orders.Recorder)
	v.SetDefault("orders.path", d.Orders.Path)
	v.SetDefault("orders.table", d.Orders.Table)
	v.SetDefault("telemetry.endpoint", d.Telemetry.Endpoint)
	v.SetDefault("log.level", d.Log.Level)
	v.SetDefault("log.format", d.Log.Format)
	v.SetDefault("layout.rotation_policy", d.Layout.RotationPolicy)
}

// Load applies defaults and environment binding to v, reads the config file
// if one is set, and returns the validated result. A missing file is not an
// error.
func Load(v *viper.Viper) (Config, error) {
	SetDefaults(v)
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if v.ConfigFileUsed() != "" {
		if err := v.ReadInConfig(); err != nil && !isMissing(err) {
			return Config{}, fmt.Errorf("failed to read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("failed to decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks enumerated settings.
func (c Config) Validate() error {
	switch c.Storage.Backend {
	case "local", "s3":
	default:
		return fmt.Errorf("%w: unknown storage backend %q", model.ErrInvalidInput, c.Storage.Backend)
	}
	if c.Storage.Backend == "s3" && c.Storage.Bucket == "" {
		return fmt.Errorf("%w: storage.bucket is required for the s3 backend", model.ErrInvalidInput)
	}
	switch c.Orders.Recorder {
	case "file", "dynamodb":
	default:
		return fmt.Errorf("%w: unknown order recorder %q", model.ErrInvalidInput, c.Orders.Recorder)
	}
	for _, proxy := range c.Server.TrustedProxies {
		if net.ParseIP(proxy) == nil {
			if _, _, err := net.ParseCIDR(proxy); err != nil {
				return fmt.Errorf("%w: server.trusted_proxies entry %q is not an IP or CIDR", model.ErrInvalidInput, proxy)
			}
		}
	}
	if c.Gate.MaxAttempts < 1 {
		return fmt.Errorf("%w: gate.max_attempts must be at least 1", model.ErrInvalidInput)
	}
	if _, err := model.ParseRotationPolicy(c.Layout.RotationPolicy); err != nil {
		return err
	}
	return nil
}

// RotationPolicy returns the parsed layout policy.
func (c Config) RotationPolicy() model.RotationPolicy {
	p, err := model.ParseRotationPolicy(c.Layout.RotationPolicy)
	if err != nil {
		return model.RotationFree
	}
	return p
}

// WriteDefault writes a starter YAML file. It refuses to overwrite an
// existing file.
func WriteDefault(path string) error {
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("config file %s already exists", path)
	}
	data, err := Marshal(Default())
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}
	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	return nil
}

// Marshal renders cfg as YAML.
func Marshal(cfg Config) ([]byte, error) {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal config: %w", err)
	}
	return data, nil
}

// Redacted returns a copy safe to print.
func (c Config) Redacted() Config {
	if c.Gate.Password != "" {
		c.Gate.Password = "********"
	}
	return c
}

func isMissing(err error) bool {
	var notFound viper.ConfigFileNotFoundError
	return errors.As(err, &notFound) || errors.Is(err, fs.ErrNotExist)
}

func homeDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "."
	}
	return home
}
