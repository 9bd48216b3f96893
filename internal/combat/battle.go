package combat

import (
	"fmt"
	"slices"
	"strings"
)

// Battle owns both fighters, the turn counter and the transcript. It is the
// only place fighters are mutated.
type Battle struct {
	fighters [2]*Fighter
	turn     int
	log      []string
	win      int
	decided  bool
}

// NewBattle assigns id 0 to p1 and id 1 to p2.
func NewBattle(p1, p2 Character) (*Battle, error) {
	f1, err := newFighter(0, p1)
	if err != nil {
		return nil, err
	}
	f2, err := newFighter(1, p2)
	if err != nil {
		return nil, err
	}
	return &Battle{fighters: [2]*Fighter{f1, f2}}, nil
}

func (b *Battle) Turn() int { return b.turn }

// Fighter returns the participant with the given id (0 or 1), or nil.
func (b *Battle) Fighter(id int) *Fighter {
	f, err := b.fighter(id)
	if err != nil {
		return nil
	}
	return f
}

func (b *Battle) Log() []string { return append([]string(nil), b.log...) }

// Decided reports whether the battle has ended and with which win code.
func (b *Battle) Decided() (int, bool) { return b.win, b.decided }

func (b *Battle) logf(format string, args ...any) {
	b.log = append(b.log, fmt.Sprintf(format, args...))
}

func (b *Battle) fighter(id int) (*Fighter, error) {
	for _, f := range b.fighters {
		if f.id == id {
			return f, nil
		}
	}
	return nil, fmt.Errorf("%w: %d", ErrUnknownCharacter, id)
}

func (b *Battle) enemyOf(id int) (*Fighter, error) {
	var enemy *Fighter
	n := 0
	for _, f := range b.fighters {
		if f.id != id {
			enemy = f
			n++
		}
	}
	if n != 1 {
		return nil, fmt.Errorf("%w: %d", ErrUnknownCharacter, id)
	}
	return enemy, nil
}

// Action is one scheduled skill use.
type Action struct {
	Actor *Fighter
	Skill *SkillState
}

// Schedule returns this turn's actions for both sides: skill speed tier
// first, then the actor's current S, then the lower id.
func (b *Battle) Schedule() []Action {
	var actions []Action
	for _, f := range b.fighters {
		for _, ss := range f.activeSkills(b.turn) {
			actions = append(actions, Action{Actor: f, Skill: ss})
		}
	}
	slices.SortStableFunc(actions, func(x, y Action) int {
		if x.Skill.Skill.Speed != y.Skill.Skill.Speed {
			return int(y.Skill.Skill.Speed) - int(x.Skill.Skill.Speed)
		}
		if x.Actor.S() != y.Actor.S() {
			return y.Actor.S() - x.Actor.S()
		}
		return x.Actor.id - y.Actor.id
	})
	return actions
}

// Apply resolves one effect, including any effects its hooks spawn.
func (b *Battle) Apply(e Effect) error {
	switch e := e.(type) {
	case Attack:
		return b.applyAttack(e)
	case AddStatus:
		target, err := b.fighter(e.TargetID)
		if err != nil {
			return err
		}
		if e.Status < 0 || e.Status >= statusCount {
			return fmt.Errorf("%w: status %d", ErrInvalidSkill, int(e.Status))
		}
		target.addStatus(e.Status, e.Amount)
		b.logf("『%s』%+d", e.Status, e.Amount)
		return nil
	case UpdateParameter:
		target, err := b.fighter(e.TargetID)
		if err != nil {
			return err
		}
		if e.Param < 0 || e.Param >= paramCount || e.Update == nil {
			return fmt.Errorf("%w: bad parameter update on %s", ErrInvalidSkill, e.Param)
		}
		prev := target.stats[e.Param]
		next := e.Update(prev)
		if e.Param == ParamB {
			next = min(next, target.MaxB())
		}
		target.stats[e.Param] = next
		b.logf("【%s】%d→%d", strings.ToUpper(e.Param.String()), prev, next)
		return nil
	case nil:
		return fmt.Errorf("%w: nil effect", ErrInvalidSkill)
	default:
		return fmt.Errorf("%w: unsupported effect %T", ErrInvalidSkill, e)
	}
}

func (b *Battle) applyAll(effects []Effect) error {
	for _, e := range effects {
		if err := b.Apply(e); err != nil {
			return err
		}
	}
	return nil
}

func (b *Battle) applyAttack(e Attack) error {
	attacker, err := b.fighter(e.AttackerID)
	if err != nil {
		return err
	}
	defender, err := b.fighter(e.TargetID)
	if err != nil {
		return err
	}
	ctx := Context{Attacker: attacker, Defender: defender}

	if defender.Status(Evade) > 0 {
		defender.addStatus(Evade, -1)
		b.logf("回避")
		if e.OnEvaded != nil && !e.Triggered {
			return b.applyAll(markTriggered(e.OnEvaded(ctx)))
		}
		return nil
	}

	guard := max(0, 1+defender.Status(Guard)-defender.Status(Exposed))
	damage := max(0, e.Power-defender.D()*guard)
	if defender.Status(FullGuard) > 0 {
		damage = 0
	}
	damage = b.deflect(defender, damage)

	defender.damage(damage)
	b.logf("%d ダメージ", damage)
	if damage > 0 {
		defender.hit = true
	}

	b.react(attacker, defender, damage)

	if e.OnSuccess != nil && damage > 0 && !e.Triggered {
		return b.applyAll(markTriggered(e.OnSuccess(HitContext{Context: ctx, Damage: damage})))
	}
	return nil
}

// checkEnd records the decision the first time either side is at or below
// zero HP. On a double knockout the higher HP wins, ties go to the first
// fighter.
func (b *Battle) checkEnd() bool {
	if b.decided {
		return true
	}
	p1, p2 := b.fighters[0], b.fighters[1]
	if !p1.knockedOut() && !p2.knockedOut() {
		return false
	}
	switch {
	case p1.knockedOut() && p2.knockedOut():
		if p1.B() >= p2.B() {
			b.win = WinFirst
		} else {
			b.win = WinSecond
		}
	case p1.knockedOut():
		b.win = WinSecond
	default:
		b.win = WinFirst
	}
	b.decided = true

	winner := p1
	if b.win == WinSecond {
		winner = p2
	}
	b.logf("========== 決着 ==========")
	b.logf("%s", p1)
	b.logf("%s", p2)
	b.logf("%s Win", winner.Name())
	return true
}
