package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/charliek/tracehelper/internal/constants"
	"github.com/charliek/tracehelper/internal/domain"
	"github.com/joho/godotenv"
)

// Environment variables that override config values
const (
	EnvAddress     = constants.EnvPrefix + "ADDR"
	EnvDownloadDir = constants.EnvPrefix + "DOWNLOAD_DIR"
	EnvTimeout     = constants.EnvPrefix + "TIMEOUT"
)

// LoadEnvFile reads a .env file and returns the variables as a map
func LoadEnvFile(path string) (map[string]string, error) {
	if path == "" {
		return nil, nil
	}

	// Check if file exists
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil, fmt.Errorf("env file not found: %s", path)
	}

	env, err := godotenv.Read(path)
	if err != nil {
		return nil, fmt.Errorf("reading env file %s: %w", path, err)
	}

	return env, nil
}

// MergeEnv merges multiple environment maps in order, with later maps taking precedence
func MergeEnv(envMaps ...map[string]string) map[string]string {
	result := make(map[string]string)
	for _, env := range envMaps {
		for k, v := range env {
			result[k] = v
		}
	}
	return result
}

// processEnv returns the tracehelper variables of the current process environment
func processEnv() map[string]string {
	env := make(map[string]string)
	for _, kv := range os.Environ() {
		key, value, ok := strings.Cut(kv, "=")
		if ok && strings.HasPrefix(key, constants.EnvPrefix) {
			env[key] = value
		}
	}
	return env
}

// ApplyEnv overrides config values from environment variables
func (c *Config) ApplyEnv(env map[string]string) {
	if v := env[EnvAddress]; v != "" {
		c.Service.Address = v
	}
	if v := env[EnvDownloadDir]; v != "" {
		c.Download.Dir = v
	}
	if v := env[EnvTimeout]; v != "" {
		c.Service.Timeout = v
	}
}

// Resolve loads the config at path, falling back to defaults when the file
// does not exist, then applies env overrides.
// Priority (lowest to highest):
// 1. Defaults
// 2. Config file
// 3. env_file entries
// 4. Process environment
func Resolve(path string) (*Config, error) {
	cfg, err := Load(path)
	if err != nil {
		if !errors.Is(err, domain.ErrConfigNotFound) {
			return nil, err
		}
		cfg = Default()
	}

	fileEnv, err := LoadEnvFile(cfg.EnvFile)
	if err != nil {
		return nil, fmt.Errorf("loading env file: %w", err)
	}

	cfg.ApplyEnv(MergeEnv(fileEnv, processEnv()))

	if err := Validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// resolvePath resolves a potentially relative path against a base directory
func resolvePath(path, baseDir string) string {
	if filepath.IsAbs(path) {
		return path
	}
	if baseDir == "" {
		return path
	}
	return filepath.Join(baseDir, path)
}

// FindConfigFile searches for a config file in standard locations
func FindConfigFile() (string, error) {
	candidates := []string{
		"tracehelper.yaml",
		"tracehelper.yml",
		".tracehelper.yaml",
		".tracehelper.yml",
	}

	for _, name := range candidates {
		if _, err := os.Stat(name); err == nil {
			return name, nil
		}
	}

	return "", fmt.Errorf("%w (tried: %v)", domain.ErrConfigNotFound, candidates)
}

// CheckFilePermissions checks if a file has secure permissions.
// On Unix-like systems, it verifies the file is not world-writable.
func CheckFilePermissions(path string) error {
	if runtime.GOOS == "windows" {
		return nil
	}

	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("checking file permissions: %w", err)
	}

	// World-writable = others have write (0002)
	if info.Mode().Perm()&0002 != 0 {
		return fmt.Errorf("config file %s has insecure permissions: world-writable files can be modified by any user. Please run: chmod o-w %s", path, path)
	}

	return nil
}
