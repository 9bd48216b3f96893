package combat

import (
	"fmt"
)

// SkillState is the per-fighter usage record for one skill slot.
type SkillState struct {
	Skill        *Skill
	Used         int
	PreviousUsed int
	everUsed     bool
}

func newSkillState(s *Skill) *SkillState {
	return &SkillState{Skill: s}
}

// Available applies delay, stock and reload against the given turn.
func (ss *SkillState) Available(turn int) bool {
	sk := ss.Skill
	if sk.Delay > turn {
		return false
	}
	if sk.Stock > 0 && ss.Used >= sk.Stock {
		return false
	}
	if sk.Reload > 0 && ss.everUsed && ss.PreviousUsed+sk.Reload > turn {
		return false
	}
	return true
}

// Use records one execution on the given turn.
func (ss *SkillState) Use(turn int) {
	ss.Used++
	ss.PreviousUsed = turn
	ss.everUsed = true
}

// SkillBook is an ordered name -> Skill catalog.
type SkillBook struct {
	byName map[string]*Skill
	order  []string
}

func NewSkillBook(skills ...*Skill) (*SkillBook, error) {
	sb := &SkillBook{byName: map[string]*Skill{}}
	for _, s := range skills {
		if err := sb.Add(s); err != nil {
			return nil, err
		}
	}
	return sb, nil
}

func (sb *SkillBook) Add(s *Skill) error {
	if s == nil || s.Name == "" {
		return fmt.Errorf("%w: skill without a name", ErrInvalidSkill)
	}
	if s.Effects == nil {
		return fmt.Errorf("%w: %s has no effects", ErrInvalidSkill, s.Name)
	}
	if _, ok := sb.byName[s.Name]; ok {
		return fmt.Errorf("%w: %s", ErrDuplicateSkill, s.Name)
	}
	sb.byName[s.Name] = s
	sb.order = append(sb.order, s.Name)
	return nil
}

func (sb *SkillBook) Lookup(name string) (*Skill, error) {
	if sb != nil {
		if s, ok := sb.byName[name]; ok {
			return s, nil
		}
	}
	return nil, fmt.Errorf("%w: %s", ErrUnknownSkill, name)
}

func (sb *SkillBook) Has(name string) bool {
	if sb == nil {
		return false
	}
	_, ok := sb.byName[name]
	return ok
}

func (sb *SkillBook) Len() int {
	if sb == nil {
		return 0
	}
	return len(sb.order)
}

func (sb *SkillBook) Names() []string {
	if sb == nil {
		return nil
	}
	return append([]string(nil), sb.order...)
}

// Skills returns the skills in insertion order.
func (sb *SkillBook) Skills() []*Skill {
	if sb == nil {
		return nil
	}
	out := make([]*Skill, len(sb.order))
	for i, name := range sb.order {
		out[i] = sb.byName[name]
	}
	return out
}

// Merge returns a new book holding sb's skills followed by other's.
// Name clashes are an error.
func (sb *SkillBook) Merge(other *SkillBook) (*SkillBook, error) {
	return NewSkillBook(append(sb.Skills(), other.Skills()...)...)
}
