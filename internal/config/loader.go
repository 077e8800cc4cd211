package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

func loadYAML(path string, out any) error {
	b, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	if err := yaml.Unmarshal(b, out); err != nil {
		return fmt.Errorf("%s: %w", filepath.Base(path), err)
	}
	return nil
}

// LoadStrategy overlays the file onto DefaultStrategy, so omitted keys keep their defaults.
func LoadStrategy(path string) (*StrategyConfig, error) {
	sc := DefaultStrategy()
	if err := loadYAML(path, &sc); err != nil {
		return nil, err
	}
	if err := sc.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", filepath.Base(path), err)
	}
	return &sc, nil
}

func LoadMatch(path string) (*MatchConfig, error) {
	var mc MatchConfig
	if err := loadYAML(path, &mc); err != nil {
		return nil, err
	}
	return &mc, nil
}

// LoadAll reads strategy.yaml and match.yaml from dir. A missing match.yaml is not an error.
func LoadAll(dir string) (*StrategyConfig, *MatchConfig, error) {
	sc, err := LoadStrategy(filepath.Join(dir, "strategy.yaml"))
	if err != nil {
		return nil, nil, err
	}
	mc, err := LoadMatch(filepath.Join(dir, "match.yaml"))
	if errors.Is(err, fs.ErrNotExist) {
		return sc, &MatchConfig{}, nil
	}
	if err != nil {
		return nil, nil, err
	}
	return sc, mc, nil
}
