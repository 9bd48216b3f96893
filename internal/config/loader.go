package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

const (
	SkillsFile = "skills.yaml"
	RosterFile = "roster.yaml"
)

func loadYAML(path string, out any) error {
	b, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	if err := yaml.Unmarshal(b, out); err != nil {
		return fmt.Errorf("parsing %s: %w", path, err)
	}
	return nil
}

// LoadSkills reads dir/skills.yaml. A missing file yields an empty config.
func LoadSkills(dir string) (*SkillsConfig, error) {
	var sc SkillsConfig
	path := filepath.Join(dir, SkillsFile)
	if err := loadYAML(path, &sc); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return &sc, nil
		}
		return nil, fmt.Errorf("loading skills: %w", err)
	}
	return &sc, nil
}

// LoadRoster reads dir/roster.yaml, which must exist.
func LoadRoster(dir string) (*RosterConfig, error) {
	var rc RosterConfig
	if err := loadYAML(filepath.Join(dir, RosterFile), &rc); err != nil {
		return nil, fmt.Errorf("loading roster: %w", err)
	}
	seen := map[string]bool{}
	for i, c := range rc.Characters {
		if c.Name == "" {
			return nil, fmt.Errorf("loading roster: character #%d has no name", i+1)
		}
		if seen[c.Name] {
			return nil, fmt.Errorf("loading roster: duplicate character %q", c.Name)
		}
		seen[c.Name] = true
	}
	return &rc, nil
}

func LoadAll(dir string) (*SkillsConfig, *RosterConfig, error) {
	sc, err := LoadSkills(dir)
	if err != nil {
		return nil, nil, err
	}
	rc, err := LoadRoster(dir)
	if err != nil {
		return nil, nil, err
	}
	return sc, rc, nil
}
