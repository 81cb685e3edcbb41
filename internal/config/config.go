package config

import (
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// DefaultDBPath is where the document database lives unless overridden.
const DefaultDBPath = "~/.local/share/funkit/funkit.db"

// Original link rendering defaults.
const (
	DefaultLinkColor = "#0a84ff"
)

// Config holds everything the entry points need. Values come from an
// optional TOML file layered under environment variables; env wins.
type Config struct {
	DBPath        string `toml:"db_path"`
	LinkColor     string `toml:"link_color"`
	LinkUnderline bool   `toml:"link_underline"`
}

// Load reads ~/.config/funkit/config.toml when present, then applies
// FUNKIT_DB, FUNKIT_LINK_COLOR and FUNKIT_LINK_UNDERLINE overrides.
// A missing file is not an error; a malformed one is.
func Load() (Config, error) {
	cfg := Config{
		DBPath:        DefaultDBPath,
		LinkColor:     DefaultLinkColor,
		LinkUnderline: true,
	}

	if path := configFilePath(); path != "" {
		data, err := os.ReadFile(path)
		if err == nil {
			if err := toml.Unmarshal(data, &cfg); err != nil {
				return cfg, err
			}
		} else if !os.IsNotExist(err) {
			return cfg, err
		}
	}

	if env := os.Getenv("FUNKIT_DB"); env != "" {
		cfg.DBPath = env
	}
	if env := os.Getenv("FUNKIT_LINK_COLOR"); env != "" {
		cfg.LinkColor = env
	}
	if env := os.Getenv("FUNKIT_LINK_UNDERLINE"); env != "" {
		cfg.LinkUnderline = env != "0"
	}

	return cfg, nil
}

func configFilePath() string {
	configHome := os.Getenv("XDG_CONFIG_HOME")
	if configHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return ""
		}
		configHome = filepath.Join(home, ".config")
	}
	return filepath.Join(configHome, "funkit", "config.toml")
}
