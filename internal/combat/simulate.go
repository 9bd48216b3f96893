package combat

import (
	"encoding/json"
	"fmt"
)

// Simulate runs a full battle between p1 (id 0) and p2 (id 1).
func Simulate(p1, p2 Character) (Result, error) {
	b, err := NewBattle(p1, p2)
	if err != nil {
		return Result{}, err
	}
	for {
		done, err := b.Step()
		if err != nil {
			return b.Result(), err
		}
		if done {
			return b.Result(), nil
		}
	}
}

// Step plays one turn and reports whether the battle is over.
func (b *Battle) Step() (bool, error) {
	if b.decided || b.turn >= MaxTurns {
		return true, nil
	}
	b.turn++
	b.logf("========== turn %d ==========", b.turn)
	b.logf("%s", b.fighters[0])
	b.logf("%s", b.fighters[1])
	if b.checkEnd() {
		return true, nil
	}

	for _, act := range b.Schedule() {
		if err := b.act(act); err != nil {
			return true, fmt.Errorf("turn %d, %s: %s: %w", b.turn, act.Actor.Name(), act.Skill.Skill.Name, err)
		}
		if b.checkEnd() {
			return true, nil
		}
	}

	for _, f := range b.fighters {
		if poison := f.Status(Poison); poison > 0 {
			f.damage(poison)
			b.logf("%s: 毒: %d ダメージ", f.Name(), poison)
			f.addStatus(Poison, -1)
		}
		f.endTurn()
	}

	if b.turn >= MaxTurns {
		b.checkEnd()
		return true, nil
	}
	return false, nil
}

func (b *Battle) act(act Action) error {
	actor := act.Actor
	if actor.Status(Stun) > 0 {
		actor.addStatus(Stun, -1)
		b.logf("%s: 『%s』により行動中止： %s", actor.Name(), Stun, act.Skill.Skill.Name)
		return nil
	}
	defender, err := b.enemyOf(actor.id)
	if err != nil {
		return err
	}
	effects := act.Skill.Skill.Effects(Context{Attacker: actor, Defender: defender})
	act.Skill.Use(b.turn)
	b.logf("%s: %s", actor.Name(), act.Skill.Skill.Name)
	return b.applyAll(effects)
}

func (b *Battle) Result() Result {
	return Result{
		Win:   b.win,
		Log:   b.Log(),
		Turns: b.turn,
		Final: [2]FighterSummary{b.fighters[0].summary(), b.fighters[1].summary()},
	}
}

func MarshalPretty(v any) []byte {
	b, _ := json.MarshalIndent(v, "", "  ")
	return b
}
