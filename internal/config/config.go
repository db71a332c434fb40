package config

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// Config represents the main configuration for cathode.
type Config struct {
	// ModesFile is the YAML mode store. The --filename flag overrides it.
	ModesFile string `toml:"modes_file"`
	LogDir    string `toml:"log_dir"`

	// DefaultTimeout is the test window in seconds used when --timeout is
	// not given. Zero means the built-in default.
	DefaultTimeout int `toml:"default_timeout,omitempty"`

	// ProfilePath is the login script that --persist appends to.
	ProfilePath string `toml:"profile_path"`

	Tools   ToolsConfig    `toml:"tools"`
	History HistoryConfig  `toml:"history"`
	Remotes []RemoteConfig `toml:"remotes"`
}

// ToolsConfig names the external executables cathode runs.
type ToolsConfig struct {
	Xrandr string `toml:"xrandr"`
	CVT    string `toml:"cvt"`
}

// HistoryConfig represents configuration for the activation history.
// This uses a tagged union pattern - the Type field determines which other fields are relevant.
type HistoryConfig struct {
	Type    string `toml:"type"`               // "sqlite", "memory" or "none"
	DataDir string `toml:"data_dir,omitempty"` // only used for type=sqlite
}

// RemoteConfig represents a place the mode file can be pushed to and pulled from.
// This uses a tagged union pattern - the Type field determines which other fields are relevant.
type RemoteConfig struct {
	Type string `toml:"type"` // "memory", "filesystem" or "s3"
	Name string `toml:"name"`

	// FileSystem-specific fields (only used when Type == "filesystem")
	FSRoot string `toml:"fs_root,omitempty"`

	// S3-specific fields (only used when Type == "s3")
	S3Bucket   string `toml:"s3_bucket,omitempty"`
	S3Prefix   string `toml:"s3_prefix,omitempty"`
	S3Region   string `toml:"s3_region,omitempty"`
	S3Endpoint string `toml:"s3_endpoint,omitempty"` // for S3-compatible services
	S3Profile  string `toml:"s3_profile,omitempty"`
}

// NewConfig creates a Config with defaults rooted at configDir (for the mode
// store) and dataDir (for logs and history). homeDir locates the login
// profile.
func NewConfig(configDir, dataDir, homeDir string) *Config {
	return &Config{
		ModesFile:   filepath.Join(configDir, "modes.yml"),
		LogDir:      filepath.Join(dataDir, "log"),
		ProfilePath: filepath.Join(homeDir, ".xprofile"),
		Tools: ToolsConfig{
			Xrandr: "xrandr",
			CVT:    "cvt",
		},
		History: HistoryConfig{
			Type:    "sqlite",
			DataDir: filepath.Join(dataDir, "db"),
		},
	}
}

// Merge fills every empty field of c from defaults.
func (c *Config) Merge(defaults *Config) {
	if c.ModesFile == "" {
		c.ModesFile = defaults.ModesFile
	}
	if c.LogDir == "" {
		c.LogDir = defaults.LogDir
	}
	if c.DefaultTimeout == 0 {
		c.DefaultTimeout = defaults.DefaultTimeout
	}
	if c.ProfilePath == "" {
		c.ProfilePath = defaults.ProfilePath
	}
	if c.Tools.Xrandr == "" {
		c.Tools.Xrandr = defaults.Tools.Xrandr
	}
	if c.Tools.CVT == "" {
		c.Tools.CVT = defaults.Tools.CVT
	}
	if c.History.Type == "" {
		c.History = defaults.History
	}
}

// Remote returns the remote called name, or the first remote when name is
// empty.
func (c *Config) Remote(name string) (RemoteConfig, error) {
	if len(c.Remotes) == 0 {
		return RemoteConfig{}, fmt.Errorf("no remotes configured")
	}
	if name == "" {
		return c.Remotes[0], nil
	}
	for _, r := range c.Remotes {
		if r.Name == name {
			return r, nil
		}
	}
	return RemoteConfig{}, fmt.Errorf("unknown remote: %s", name)
}

// Manager handles reading and writing configuration.
type Manager struct{}

// Read decodes a Config from the provided reader.
func (m *Manager) Read(r io.Reader) (*Config, error) {
	var cfg Config
	if _, err := toml.NewDecoder(r).Decode(&cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}
	return &cfg, nil
}

// Write encodes a Config to the provided writer.
func (m *Manager) Write(w io.Writer, cfg *Config) error {
	if err := toml.NewEncoder(w).Encode(cfg); err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}
	return nil
}

// ReadFromFile reads a Config from the specified file path.
func ReadFromFile(path string) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open config file: %w", err)
	}
	defer f.Close()

	m := &Manager{}
	cfg, err := m.Read(f)
	if err != nil {
		return nil, fmt.Errorf("reading config from %s: %w", path, err)
	}
	return cfg, nil
}

// Load reads the config at path and fills unset fields from defaults.
// A missing file is not an error: defaults are returned as is.
func Load(path string, defaults *Config) (*Config, error) {
	cfg, err := ReadFromFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			d := *defaults
			return &d, nil
		}
		return nil, err
	}
	cfg.Merge(defaults)
	return cfg, nil
}

// writeToFile writes a Config to the specified file path.
func writeToFile(path string, cfg *Config) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create config file: %w", err)
	}
	defer f.Close()

	m := &Manager{}
	if err := m.Write(f, cfg); err != nil {
		return fmt.Errorf("writing config to %s: %w", path, err)
	}
	return nil
}

// Init initializes a new config file at the specified path with the provided Config.
func Init(path string, cfg *Config) error {
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("config file already exists at %s", path)
	}

	if err := writeToFile(path, cfg); err != nil {
		return fmt.Errorf("initializing config: %w", err)
	}
	return nil
}
