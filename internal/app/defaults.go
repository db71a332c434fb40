package app

import (
	"fmt"
	"os"
	"path/filepath"
)

// Env reads environment variables. It exists so path resolution can be
// tested without touching the process environment.
type Env interface {
	Getenv(key string) string
}

// OSEnv reads the real process environment.
type OSEnv struct{}

func (OSEnv) Getenv(key string) string { return os.Getenv(key) }

// MapEnv is an Env backed by a map.
type MapEnv map[string]string

func (m MapEnv) Getenv(key string) string { return m[key] }

// GetDefaults returns application default paths, checking environment variables first.
// Environment variables:
//   - CATHODE_CONFIG_PATH: config file location (default: <config dir>/cathode.toml)
//   - XDG_CONFIG_HOME: parent of the config dir (default: ~/.config)
//   - CATHODE_HOME: data directory for logs and history (default: ~/.local/share/cathode)
//   - XDG_DATA_HOME: parent of the default data dir (default: ~/.local/share)
func GetDefaults(env Env) (map[string]string, error) {
	home := env.Getenv("HOME")

	configDir, err := getConfigDir(env, home)
	if err != nil {
		return nil, err
	}

	configPath := env.Getenv("CATHODE_CONFIG_PATH")
	if configPath == "" {
		configPath = filepath.Join(configDir, "cathode.toml")
	}

	dataDir, err := getDataDir(env, home)
	if err != nil {
		return nil, err
	}

	return map[string]string{
		"home_dir":    home,
		"config_dir":  configDir,
		"config_path": configPath,
		"modes_file":  filepath.Join(configDir, "modes.yml"),
		"data_dir":    dataDir,
		"log_dir":     filepath.Join(dataDir, "log"),
	}, nil
}

// ResolveModesPath returns the mode store path: override when given,
// otherwise <config dir>/modes.yml. The parent directories of the returned
// path are created.
func ResolveModesPath(override string, env Env) (string, error) {
	path := override
	if path == "" {
		configDir, err := getConfigDir(env, env.Getenv("HOME"))
		if err != nil {
			return "", err
		}
		path = filepath.Join(configDir, "modes.yml")
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return "", fmt.Errorf("creating directory for %s: %w", path, err)
	}
	return path, nil
}

// getConfigDir returns $XDG_CONFIG_HOME/cathode, falling back to
// ~/.config/cathode.
func getConfigDir(env Env, home string) (string, error) {
	if dir := env.Getenv("XDG_CONFIG_HOME"); dir != "" {
		return filepath.Join(dir, "cathode"), nil
	}
	if home == "" {
		return "", fmt.Errorf("cannot determine config directory: neither XDG_CONFIG_HOME nor HOME is set")
	}
	return filepath.Join(home, ".config", "cathode"), nil
}

// getDataDir returns $CATHODE_HOME, then $XDG_DATA_HOME/cathode, falling
// back to ~/.local/share/cathode.
func getDataDir(env Env, home string) (string, error) {
	if dir := env.Getenv("CATHODE_HOME"); dir != "" {
		return dir, nil
	}
	if dir := env.Getenv("XDG_DATA_HOME"); dir != "" {
		return filepath.Join(dir, "cathode"), nil
	}
	if home == "" {
		return "", fmt.Errorf("cannot determine data directory: neither CATHODE_HOME nor HOME is set")
	}
	return filepath.Join(home, ".local", "share", "cathode"), nil
}
