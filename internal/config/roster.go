package config

import (
	"fmt"

	"costhaggle/internal/buildtext"
	"costhaggle/internal/combat"
)

// RosterConfig lists the characters entered into a run.
type RosterConfig struct {
	Characters []CharacterDef `yaml:"characters"`
}

// CharacterDef is either a build text or explicit stats with skill names.
type CharacterDef struct {
	Name   string   `yaml:"name"`
	Build  string   `yaml:"build"`
	A      int      `yaml:"a"`
	B      int      `yaml:"b"`
	C      int      `yaml:"c"`
	D      int      `yaml:"d"`
	S      int      `yaml:"s"`
	Skills []string `yaml:"skills"`
	Note   string   `yaml:"note"`
}

func (c CharacterDef) HasBuild() bool { return c.Build != "" }

func (r *RosterConfig) Find(name string) (CharacterDef, bool) {
	if r == nil {
		return CharacterDef{}, false
	}
	for _, c := range r.Characters {
		if c.Name == name {
			return c, true
		}
	}
	return CharacterDef{}, false
}

// Resolve turns every entry into a character against book, parsing build
// text where given.
func (r *RosterConfig) Resolve(book *combat.SkillBook) ([]combat.Character, error) {
	if r == nil {
		return nil, nil
	}
	out := make([]combat.Character, 0, len(r.Characters))
	for _, def := range r.Characters {
		ch, err := def.Character(book)
		if err != nil {
			return nil, err
		}
		out = append(out, ch)
	}
	return out, nil
}

func (c CharacterDef) Character(book *combat.SkillBook) (combat.Character, error) {
	if c.HasBuild() {
		return buildtext.Parse(c.Name, c.Build, book)
	}
	ch := combat.Character{Name: c.Name, A: c.A, B: c.B, C: c.C, D: c.D, S: c.S}
	for _, name := range c.Skills {
		sk, err := book.Lookup(name)
		if err != nil {
			return combat.Character{}, fmt.Errorf("%s: %w", c.Name, err)
		}
		ch.Skills = append(ch.Skills, sk)
	}
	return ch, nil
}
