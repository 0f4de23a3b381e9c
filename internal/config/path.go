// Package config resolves cultiva's settings and the directories it keeps them in.
package config

import (
	"os"
	"path/filepath"
	"strings"
)

// DataDir returns the directory holding the curated icon database.
// $XDG_DATA_HOME is honored when it is an absolute path; otherwise the
// result is ~/.local/share/cultiva, left unexpanded for ExpandPath.
func DataDir() string {
	return xdgDir("XDG_DATA_HOME", filepath.Join(".local", "share"))
}

// ConfigDir returns the directory searched for config.yaml.
func ConfigDir() string {
	return xdgDir("XDG_CONFIG_HOME", ".config")
}

// DefaultDatabasePath returns the database location used when none is configured.
func DefaultDatabasePath() string {
	return filepath.Join(DataDir(), "cultiva.db")
}

func xdgDir(envVar, homeRel string) string {
	if base := os.Getenv(envVar); filepath.IsAbs(base) {
		return filepath.Join(base, "cultiva")
	}
	return filepath.Join("~", homeRel, "cultiva")
}

// ExpandPath resolves a leading ~ to the home directory and then expands
// $VAR references. A ~ is left alone when the home directory is unknown.
func ExpandPath(path string) string {
	if path == "" {
		return path
	}

	if rest, ok := strings.CutPrefix(path, "~"); ok && (rest == "" || rest[0] == '/') {
		if home, err := os.UserHomeDir(); err == nil {
			path = home + rest
		}
	}

	return filepath.Clean(os.ExpandEnv(path))
}
