// Package config provides configuration helpers and TOML parsing.
package config

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"

	"github.com/verte-zerg/readaloud/internal/level"
)

// FileConfig represents the TOML configuration file.
type FileConfig struct {
	Practice PracticeConfig      `toml:"practice"`
	Levels   map[string][]string `toml:"levels"`

	levelOrder []string
}

// PracticeConfig maps practice-related settings.
type PracticeConfig struct {
	Level      *string  `toml:"level"`
	Minutes    *float64 `toml:"minutes"`
	LevelsFile *string  `toml:"levels-file"`
	UseBank    *bool    `toml:"use-bank"`
	TroubleTop *int     `toml:"trouble-top"`
}

// LoadConfig reads a TOML config from the given path. Missing file is not an error.
func LoadConfig(path string) (FileConfig, error) {
	if path == "" {
		return FileConfig{}, fmt.Errorf("config path is empty")
	}
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return FileConfig{}, nil
		}
		return FileConfig{}, fmt.Errorf("failed to stat config: %w", err)
	}
	var cfg FileConfig
	meta, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return FileConfig{}, fmt.Errorf("failed to decode config: %w", err)
	}
	cfg.levelOrder = levelKeyOrder(meta)
	return cfg, nil
}

// LoadLevels reads a standalone TOML file whose top-level keys are level names
// mapped to sentence arrays.
func LoadLevels(path string) (level.Table, error) {
	var pools map[string][]string
	meta, err := toml.DecodeFile(path, &pools)
	if err != nil {
		return level.Table{}, fmt.Errorf("failed to decode levels file: %w", err)
	}
	var order []string
	for _, key := range meta.Keys() {
		if len(key) == 1 {
			order = append(order, key[0])
		}
	}
	return level.New(order, pools), nil
}

// LevelTable returns the [levels] section as a table, in file order.
func (c FileConfig) LevelTable() level.Table {
	return level.New(c.levelOrder, c.Levels)
}

func levelKeyOrder(meta toml.MetaData) []string {
	var order []string
	for _, key := range meta.Keys() {
		if len(key) == 2 && key[0] == "levels" {
			order = append(order, key[1])
		}
	}
	return order
}
