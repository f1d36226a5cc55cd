package config

import (
	"errors"
	"fmt"
	"net"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds settings shared by the packaging commands.
type Config struct {
	// ResourceRoot is the directory holding the read-only resource store
	// (variant trees, native runtimes, stubs, templates, icons).
	ResourceRoot string `yaml:"resource_root"`
	// ListenAddress is where the serve mode accepts packaging requests.
	ListenAddress string `yaml:"listen_addr"`
	// Timeout bounds a single packaging request in serve mode.
	Timeout time.Duration `yaml:"timeout"`
	// MaxProjectBytes caps the accepted project document size in serve mode.
	MaxProjectBytes int64 `yaml:"max_project_bytes"`
	// LogLevel is the minimum level for log output (debug, info, warn, error).
	LogLevel string `yaml:"log_level"`
}

const (
	// DefaultConfigFilename is the default filename for packager settings.
	DefaultConfigFilename = "snapp-packager-settings.yaml"

	// DefaultListenAddress is used when the serve mode has no configured address.
	DefaultListenAddress = ":8073"

	// DefaultTimeout is the default duration for a packaging request.
	DefaultTimeout = 60 * time.Second

	// DefaultMaxProjectBytes is the default cap on uploaded project documents.
	DefaultMaxProjectBytes = 64 << 20

	// DefaultFilePermissions is the default file permission for config files.
	DefaultFilePermissions = 0o600
)

var (
	// errConfigIsNotSet is returned when a nil configuration is provided.
	errConfigIsNotSet = errors.New("configuration is not set")
	// errResourceRootRequired is returned when the resource store root is missing.
	errResourceRootRequired = errors.New("resource root must be provided")
)

// Default returns a configuration with every optional field at its default.
// The resource root has no default: it names the machine-specific store.
func Default() *Config {
	return &Config{
		ListenAddress:   DefaultListenAddress,
		Timeout:         DefaultTimeout,
		MaxProjectBytes: DefaultMaxProjectBytes,
	}
}

// Load reads configuration from the provided path. The result is not
// validated: callers apply their overrides first, then call Validate.
func Load(path string) (*Config, error) {
	if path == "" {
		path = DefaultConfigFilename
	}

	contents, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return nil, fmt.Errorf("read settings: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(contents, &cfg); err != nil {
		return nil, fmt.Errorf("unmarshal settings: %w", err)
	}

	return &cfg, nil
}

// Save writes the configuration to the provided path.
func Save(path string, cfg *Config) error {
	if cfg == nil {
		return errConfigIsNotSet
	}

	if path == "" {
		path = DefaultConfigFilename
	}

	if err := Validate(cfg); err != nil {
		return err
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshal settings: %w", err)
	}

	// Restrict permissions.
	if err := os.WriteFile(filepath.Clean(path), data, DefaultFilePermissions); err != nil {
		return fmt.Errorf("write settings: %w", err)
	}

	return nil
}

// Validate checks the provided settings for required fields and formatting,
// filling defaults for optional ones.
func Validate(cfg *Config) error {
	if cfg == nil {
		return errConfigIsNotSet
	}

	if cfg.ResourceRoot == "" {
		return errResourceRootRequired
	}

	if cfg.ListenAddress == "" {
		cfg.ListenAddress = DefaultListenAddress
	}

	if _, err := net.ResolveTCPAddr("tcp", cfg.ListenAddress); err != nil {
		return fmt.Errorf("invalid listen address: %w", err)
	}

	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}

	if cfg.MaxProjectBytes <= 0 {
		cfg.MaxProjectBytes = DefaultMaxProjectBytes
	}

	return nil
}
