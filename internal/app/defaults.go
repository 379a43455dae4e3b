package app

import (
	"fmt"
	"os"
	"path/filepath"
)

// Environment variables read by LoadDefaults.
const (
	EnvConfigPath = "FORUMTRACK_CONFIG_PATH"
	EnvHome       = "FORUMTRACK_HOME"
	EnvUser       = "FORUMTRACK_USER"
)

// Defaults holds what a command needs before any config file is read.
type Defaults struct {
	// ConfigPath is the TOML config file.
	ConfigPath string
	// BaseDir holds the database and log directories of a new config.
	BaseDir string
	// User is the acting username when --user is not given. Empty is anonymous.
	User string
}

// LoadDefaults resolves Defaults from the environment. Paths fall back to the
// XDG config and data homes, then to ~/.config and ~/.local/share.
func LoadDefaults() (*Defaults, error) {
	configPath := os.Getenv(EnvConfigPath)
	if configPath == "" {
		dir, err := xdgDir("XDG_CONFIG_HOME", ".config")
		if err != nil {
			return nil, err
		}
		configPath = filepath.Join(dir, "forumtrack.toml")
	}

	baseDir := os.Getenv(EnvHome)
	if baseDir == "" {
		dir, err := xdgDir("XDG_DATA_HOME", filepath.Join(".local", "share"))
		if err != nil {
			return nil, err
		}
		baseDir = filepath.Join(dir, "forumtrack")
	}

	return &Defaults{
		ConfigPath: configPath,
		BaseDir:    baseDir,
		User:       os.Getenv(EnvUser),
	}, nil
}

// xdgDir returns $env when it is an absolute path, else ~/fallback.
func xdgDir(env, fallback string) (string, error) {
	if dir := os.Getenv(env); filepath.IsAbs(dir) {
		return dir, nil
	}
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("cannot determine home directory: %w", err)
	}
	return filepath.Join(homeDir, fallback), nil
}
