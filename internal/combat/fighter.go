package combat

import (
	"fmt"
	"strings"
)

// Fighter is the mutable per-battle wrapper around a Character. It
// implements View; only Battle mutates it.
type Fighter struct {
	id       int
	original Character
	stats    [paramCount]int
	skills   []*SkillState
	status   [statusCount]int
	hit      bool
}

func newFighter(id int, c Character) (*Fighter, error) {
	if c.B <= 0 {
		return nil, fmt.Errorf("%w: %s starts with %d HP", ErrInvalidCharacter, c.Name, c.B)
	}
	f := &Fighter{
		id:       id,
		original: c,
		stats:    [paramCount]int{c.A, c.B, c.C, c.D, c.S},
		skills:   make([]*SkillState, len(c.Skills)),
	}
	for i, s := range c.Skills {
		if s == nil || s.Effects == nil {
			return nil, fmt.Errorf("%w: %s has an empty skill in slot %d", ErrInvalidCharacter, c.Name, i)
		}
		f.skills[i] = newSkillState(s)
	}
	return f, nil
}

func (f *Fighter) ID() int              { return f.id }
func (f *Fighter) Name() string         { return f.original.Name }
func (f *Fighter) A() int               { return f.stats[ParamA] }
func (f *Fighter) B() int               { return f.stats[ParamB] }
func (f *Fighter) C() int               { return f.stats[ParamC] }
func (f *Fighter) D() int               { return f.stats[ParamD] }
func (f *Fighter) S() int               { return f.stats[ParamS] }
func (f *Fighter) MaxB() int            { return f.original.B }
func (f *Fighter) HitThisTurn() bool    { return f.hit }
func (f *Fighter) Skills() []*SkillState { return f.skills }

func (f *Fighter) Param(p Param) int {
	if p < 0 || p >= paramCount {
		return 0
	}
	return f.stats[p]
}

func (f *Fighter) Status(s Status) int {
	if s < 0 || s >= statusCount {
		return 0
	}
	return f.status[s]
}

func (f *Fighter) addStatus(s Status, n int) { f.status[s] += n }
func (f *Fighter) damage(n int)              { f.stats[ParamB] -= n }
func (f *Fighter) knockedOut() bool          { return f.stats[ParamB] <= 0 }

// activeSkills returns the first S available skills in list order.
func (f *Fighter) activeSkills(turn int) []*SkillState {
	limit := f.S()
	var out []*SkillState
	for _, ss := range f.skills {
		if len(out) >= limit {
			break
		}
		if ss.Available(turn) {
			out = append(out, ss)
		}
	}
	return out
}

func (f *Fighter) endTurn() {
	for _, s := range turnScoped {
		f.status[s] = 0
	}
	f.hit = false
}

func (f *Fighter) summary() FighterSummary {
	sum := FighterSummary{
		Name: f.Name(),
		A:    f.A(), B: f.B(), MaxB: f.MaxB(), C: f.C(), D: f.D(), S: f.S(),
	}
	for i, v := range f.status {
		if v == 0 {
			continue
		}
		if sum.Status == nil {
			sum.Status = map[string]int{}
		}
		sum.Status[Status(i).Key()] = v
	}
	return sum
}

// String is the one-line state shown in the transcript.
func (f *Fighter) String() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "%s HP: %d/%d A: %d D: %d S: %d", f.Name(), f.B(), f.MaxB(), f.A(), f.D(), f.S())
	for i, v := range f.status {
		if v != 0 {
			fmt.Fprintf(&sb, " %s%d", Status(i), v)
		}
	}
	return sb.String()
}
