package combat

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newSkill(name string, fn EffectFunc) *Skill {
	return &Skill{Name: name, Effects: fn}
}

func newChar(name string, a, b, d, s int, skills ...*Skill) Character {
	return Character{Name: name, A: a, B: b, C: 10, D: d, S: s, Skills: skills}
}

func countLines(log []string, line string) int {
	n := 0
	for _, l := range log {
		if l == line {
			n++
		}
	}
	return n
}

func hasPrefix(log []string, prefix string) bool {
	for _, l := range log {
		if strings.HasPrefix(l, prefix) {
			return true
		}
	}
	return false
}

func mustBattle(t *testing.T, p1, p2 Character) *Battle {
	t.Helper()
	b, err := NewBattle(p1, p2)
	require.NoError(t, err)
	return b
}

func TestSimulate_PlainAttackAgainstNoDefense(t *testing.T) {
	p1 := newChar("P1", 3, 20, 0, 1, newSkill("攻撃", PlainAttack()))
	p2 := newChar("P2", 0, 20, 0, 0)

	res, err := Simulate(p1, p2)
	require.NoError(t, err)

	assert.Equal(t, WinFirst, res.Win)
	assert.Equal(t, 7, res.Turns)
	assert.Equal(t, 7, countLines(res.Log, "3 ダメージ"))
	assert.Equal(t, -1, res.Final[1].B)
	assert.Equal(t, "P1 Win", res.Log[len(res.Log)-1])

	// HP shown at the top of each turn only goes down.
	prev := 21
	for _, l := range res.Log {
		var hp, maxHP, a, d, s int
		if n, _ := fmt.Sscanf(l, "P2 HP: %d/%d A: %d D: %d S: %d", &hp, &maxHP, &a, &d, &s); n == 5 {
			assert.Less(t, hp, prev)
			prev = hp
		}
	}
}

func TestSimulate_DelayedSkillNeverFires(t *testing.T) {
	late := &Skill{Name: "遅延攻撃", Delay: 5, Effects: PlainAttack()}
	p1 := newChar("P1", 50, 20, 0, 1, late)
	p2 := newChar("P2", 100, 20, 0, 1, newSkill("攻撃", PlainAttack()))

	res, err := Simulate(p1, p2)
	require.NoError(t, err)

	assert.Equal(t, WinSecond, res.Win)
	assert.Equal(t, 1, res.Turns)
	assert.False(t, hasPrefix(res.Log, "P1: 遅延攻撃"))
	assert.Equal(t, -80, res.Final[0].B)
}

func TestSimulate_KnockoutSkipsRestOfTurn(t *testing.T) {
	quick := &Skill{Name: "先制", Speed: SpeedFirst, Effects: PlainAttack()}
	late := newSkill("late", PlainAttack())
	p1 := newChar("P1", 50, 20, 0, 1, quick)
	p2 := newChar("P2", 50, 20, 0, 1, late)

	res, err := Simulate(p1, p2)
	require.NoError(t, err)

	assert.Equal(t, WinFirst, res.Win)
	assert.Equal(t, 1, res.Turns)
	assert.True(t, hasPrefix(res.Log, "P1: 先制"))
	assert.False(t, hasPrefix(res.Log, "P2: late"))
	assert.Equal(t, 20, res.Final[0].B)
	assert.Equal(t, -30, res.Final[1].B)
	assert.Equal(t, 1, countLines(res.Log, "50 ダメージ"))
}

func TestSimulate_NoDamageReachesTurnCap(t *testing.T) {
	p1 := newChar("P1", 0, 20, 0, 1, newSkill("攻撃", PlainAttack()))
	p2 := newChar("P2", 0, 20, 0, 1, newSkill("攻撃", PlainAttack()))

	res, err := Simulate(p1, p2)
	require.NoError(t, err)

	assert.Equal(t, Draw, res.Win)
	assert.Equal(t, MaxTurns, res.Turns)
	assert.Equal(t, 20, res.Final[0].B)
	assert.Equal(t, 20, res.Final[1].B)
	assert.Contains(t, res.Log, "========== turn 20 ==========")
	assert.NotContains(t, res.Log, "========== 決着 ==========")
}

func TestApply_FullGuardStillTriggersThorns(t *testing.T) {
	b := mustBattle(t, newChar("P1", 1000, 20, 0, 1), newChar("P2", 0, 20, 0, 1))
	require.NoError(t, b.Apply(AddStatus{TargetID: 1, Status: FullGuard, Amount: 1}))
	require.NoError(t, b.Apply(AddStatus{TargetID: 1, Status: ThornArmor, Amount: 1}))

	require.NoError(t, b.Apply(Attack{AttackerID: 0, TargetID: 1, Power: 1000}))

	assert.Equal(t, 20, b.Fighter(1).B())
	assert.Equal(t, 19, b.Fighter(0).B())
	assert.False(t, b.Fighter(1).HitThisTurn())
	assert.Contains(t, b.Log(), "0 ダメージ")
	assert.Contains(t, b.Log(), "茨の鎧: 1 ダメージ")
}

func TestApply_EvadeConsumesOneStack(t *testing.T) {
	b := mustBattle(t, newChar("P1", 5, 20, 0, 1), newChar("P2", 0, 20, 0, 1))
	require.NoError(t, b.Apply(AddStatus{TargetID: 1, Status: Evade, Amount: 2}))

	evaded := 0
	atk := Attack{AttackerID: 0, TargetID: 1, Power: 5, OnEvaded: func(ctx Context) []Effect {
		evaded++
		assert.Equal(t, 1, ctx.Defender.ID())
		return nil
	}}
	require.NoError(t, b.Apply(atk))

	assert.Equal(t, 1, b.Fighter(1).Status(Evade))
	assert.Equal(t, 20, b.Fighter(1).B())
	assert.Equal(t, 1, evaded)
	assert.Contains(t, b.Log(), "回避")

	atk.Triggered = true
	require.NoError(t, b.Apply(atk))
	assert.Zero(t, b.Fighter(1).Status(Evade))
	assert.Equal(t, 1, evaded, "triggered attacks do not fire hooks")
}

func TestApply_EvadedCounterIsTriggered(t *testing.T) {
	b := mustBattle(t, newChar("P1", 3, 20, 0, 1), newChar("P2", 0, 20, 0, 1))
	require.NoError(t, b.Apply(AddStatus{TargetID: 1, Status: Evade, Amount: 1}))

	counter := AttackWith(AttackOptions{
		OnEvaded: AttackWith(AttackOptions{Triggered: true, Inevitable: true, PowerMult: Mult(2)}),
	})
	require.NoError(t, b.applyAll(counter(Context{Attacker: b.Fighter(0), Defender: b.Fighter(1)})))

	assert.Equal(t, 14, b.Fighter(1).B())
}

func TestApply_HookChainStopsAfterOneLevel(t *testing.T) {
	b := mustBattle(t, newChar("P1", 2, 20, 0, 1), newChar("P2", 0, 100, 0, 1))

	calls := 0
	var chain EffectFunc
	chain = AttackWith(AttackOptions{OnSuccess: func(ctx HitContext) []Effect {
		calls++
		return chain(ctx.Context)
	}})

	require.NoError(t, b.applyAll(chain(Context{Attacker: b.Fighter(0), Defender: b.Fighter(1)})))

	assert.Equal(t, 1, calls)
	assert.Equal(t, 96, b.Fighter(1).B())
}

func TestApply_DoubleAttackHitsTwice(t *testing.T) {
	b := mustBattle(t, newChar("P1", 4, 20, 0, 1), newChar("P2", 0, 20, 1, 1))
	double := AttackWith(AttackOptions{OnSuccess: OnHit(AttackWith(AttackOptions{Triggered: true}))})

	require.NoError(t, b.applyAll(double(Context{Attacker: b.Fighter(0), Defender: b.Fighter(1)})))

	assert.Equal(t, 14, b.Fighter(1).B())
	assert.Equal(t, 2, countLines(b.Log(), "3 ダメージ"))
}

func TestApply_DefenseModifiers(t *testing.T) {
	tests := []struct {
		name     string
		d        int
		statuses map[Status]int
		power    int
		wantHP   int
		wantLeft map[Status]int
	}{
		{name: "plain defense", d: 2, power: 5, wantHP: 17},
		{name: "guard doubles defense", d: 2, statuses: map[Status]int{Guard: 1}, power: 5, wantHP: 19},
		{name: "exposed cancels defense", d: 2, statuses: map[Status]int{Guard: 1, Exposed: 3}, power: 5, wantHP: 15},
		{name: "defense above power", d: 9, power: 5, wantHP: 20},
		{
			name: "deflect absorbs and is spent", d: 0, power: 5,
			statuses: map[Status]int{Deflect: 3}, wantHP: 18, wantLeft: map[Status]int{Deflect: 0},
		},
		{
			name: "deflect larger than damage", d: 0, power: 2,
			statuses: map[Status]int{Deflect: 5}, wantHP: 20, wantLeft: map[Status]int{Deflect: 3},
		},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			b := mustBattle(t, newChar("P1", 0, 20, 0, 1), newChar("P2", 0, 20, tt.d, 1))
			for s, n := range tt.statuses {
				require.NoError(t, b.Apply(AddStatus{TargetID: 1, Status: s, Amount: n}))
			}
			require.NoError(t, b.Apply(Attack{AttackerID: 0, TargetID: 1, Power: tt.power}))
			assert.Equal(t, tt.wantHP, b.Fighter(1).B())
			for s, n := range tt.wantLeft {
				assert.Equal(t, n, b.Fighter(1).Status(s), s.String())
			}
		})
	}
}

func TestApply_ReactiveStatuses(t *testing.T) {
	b := mustBattle(t, newChar("P1", 0, 20, 0, 1), newChar("P2", 0, 20, 1, 1))
	require.NoError(t, b.Apply(AddStatus{TargetID: 1, Status: ReactiveArmor, Amount: 2}))
	require.NoError(t, b.Apply(AddStatus{TargetID: 1, Status: ParryBoost, Amount: 1}))

	require.NoError(t, b.Apply(Attack{AttackerID: 0, TargetID: 1, Power: 4}))
	assert.Equal(t, 17, b.Fighter(1).B())
	assert.Equal(t, 3, b.Fighter(1).D())
	assert.Equal(t, 1, b.Fighter(1).Status(Evade))
	assert.Zero(t, b.Fighter(1).Status(ParryBoost))
	assert.True(t, b.Fighter(1).HitThisTurn())

	require.NoError(t, b.Apply(Attack{AttackerID: 0, TargetID: 1, Power: 100}))
	assert.Equal(t, 17, b.Fighter(1).B(), "second attack is evaded")

	// No damage means no armour growth.
	require.NoError(t, b.Apply(Attack{AttackerID: 0, TargetID: 1, Power: 1}))
	assert.Equal(t, 3, b.Fighter(1).D())
}

func TestApply_HPIsClampedToStartingMax(t *testing.T) {
	b := mustBattle(t, newChar("P1", 0, 20, 0, 1), newChar("P2", 5, 20, 0, 1))
	heal := IncParam(ParamB, Const(4))
	ctx := Context{Attacker: b.Fighter(0), Defender: b.Fighter(1)}

	require.NoError(t, b.applyAll(heal(ctx)))
	assert.Equal(t, 20, b.Fighter(0).B())
	assert.Contains(t, b.Log(), "【B】20→20")

	require.NoError(t, b.Apply(Attack{AttackerID: 1, TargetID: 0, Power: 5}))
	require.NoError(t, b.applyAll(heal(ctx)))
	assert.Equal(t, 19, b.Fighter(0).B())
	require.NoError(t, b.applyAll(heal(ctx)))
	assert.Equal(t, 20, b.Fighter(0).B())

	// Other stats are not clamped.
	require.NoError(t, b.applyAll(IncParam(ParamA, Const(50))(ctx)))
	assert.Equal(t, 50, b.Fighter(0).A())
}

func TestApply_UnknownTarget(t *testing.T) {
	b := mustBattle(t, newChar("P1", 0, 20, 0, 1), newChar("P2", 0, 20, 0, 1))
	err := b.Apply(AddStatus{TargetID: 7, Status: Stun, Amount: 1})
	assert.ErrorIs(t, err, ErrUnknownCharacter)

	err = b.Apply(Attack{AttackerID: 0, TargetID: 2, Power: 1})
	assert.ErrorIs(t, err, ErrUnknownCharacter)

	err = b.Apply(nil)
	assert.ErrorIs(t, err, ErrInvalidSkill)
}

func TestSimulate_BrokenSkillFailsTheBattle(t *testing.T) {
	broken := newSkill("壊れた技", func(ctx Context) []Effect {
		return []Effect{AddStatus{TargetID: 42, Status: Poison, Amount: 1}}
	})
	_, err := Simulate(newChar("P1", 0, 20, 0, 1, broken), newChar("P2", 0, 20, 0, 0))
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnknownCharacter)
	assert.Contains(t, err.Error(), "壊れた技")
}

func TestNewBattle_RejectsInvalidCharacters(t *testing.T) {
	_, err := NewBattle(newChar("P1", 0, 0, 0, 1), newChar("P2", 0, 20, 0, 1))
	assert.ErrorIs(t, err, ErrInvalidCharacter)

	_, err = NewBattle(newChar("P1", 0, 20, 0, 1), newChar("P2", 0, 20, 0, 1, nil))
	assert.ErrorIs(t, err, ErrInvalidCharacter)
}

func TestStep_TurnEndResetsOnlyTurnScopedStatuses(t *testing.T) {
	var buffs []EffectFunc
	for _, s := range AllStatuses() {
		buffs = append(buffs, IncBuff(s))
	}
	p1 := newChar("P1", 0, 20, 0, 1, newSkill("全部", Merge(buffs...)))
	b := mustBattle(t, p1, newChar("P2", 0, 20, 0, 0))

	done, err := b.Step()
	require.NoError(t, err)
	require.False(t, done)

	f := b.Fighter(0)
	for _, s := range turnScoped {
		assert.Zero(t, f.Status(s), s.String())
	}
	assert.Equal(t, 1, f.Status(ThornArmor))
	assert.Equal(t, 1, f.Status(ReactiveArmor))
	assert.Equal(t, 1, f.Status(Deflect))
	assert.Zero(t, f.Status(Poison))
	assert.Equal(t, 19, f.B())
	assert.False(t, f.HitThisTurn())
}

func TestStep_PoisonDecays(t *testing.T) {
	poison := &Skill{Name: "毒", Stock: 1, Effects: IncEnemyDebuff(Poison, Const(3))}
	b := mustBattle(t, newChar("P1", 0, 20, 0, 1, poison), newChar("P2", 0, 20, 0, 0))

	for _, want := range []struct{ hp, stack int }{{17, 2}, {15, 1}, {14, 0}, {14, 0}} {
		_, err := b.Step()
		require.NoError(t, err)
		assert.Equal(t, want.hp, b.Fighter(1).B())
		assert.Equal(t, want.stack, b.Fighter(1).Status(Poison))
	}
}

func TestStep_StunCancelsNextAction(t *testing.T) {
	trip := &Skill{Name: "足払い", Speed: SpeedFirst, Stock: 1, Effects: IncEnemyDebuff(Stun)}
	hit := newSkill("攻撃", PlainAttack())
	b := mustBattle(t, newChar("P1", 0, 20, 0, 1, trip), newChar("P2", 5, 20, 0, 1, hit))

	_, err := b.Step()
	require.NoError(t, err)

	assert.Equal(t, 20, b.Fighter(0).B())
	assert.Contains(t, b.Log(), "P2: 『スタン』により行動中止： 攻撃")
	assert.Zero(t, b.Fighter(1).Skills()[0].Used)

	_, err = b.Step()
	require.NoError(t, err)
	assert.Equal(t, 15, b.Fighter(0).B(), "stun lasts one action")
}

func TestStep_EffectsSeeLiveStats(t *testing.T) {
	sharpen := newSkill("研磨", IncParam(ParamA, Const(5)))
	hit := newSkill("攻撃", PlainAttack())
	b := mustBattle(t, newChar("P1", 1, 20, 0, 2, sharpen, hit), newChar("P2", 0, 100, 0, 0))

	_, err := b.Step()
	require.NoError(t, err)
	assert.Equal(t, 94, b.Fighter(1).B())
}

func TestSchedule_Ordering(t *testing.T) {
	a := newSkill("A", PlainAttack())
	last := &Skill{Name: "B", Speed: SpeedLast, Effects: PlainAttack()}
	normal := newSkill("C", PlainAttack())
	first := &Skill{Name: "D", Speed: SpeedFirst, Effects: PlainAttack()}

	b := mustBattle(t, newChar("P1", 0, 20, 0, 1, a), newChar("P2", 0, 20, 0, 3, last, normal, first))
	var got []string
	for _, act := range b.Schedule() {
		got = append(got, act.Actor.Name()+":"+act.Skill.Skill.Name)
	}
	assert.Equal(t, []string{"P2:D", "P2:C", "P1:A", "P2:B"}, got)
}

func TestSchedule_TiesGoToFirstCharacter(t *testing.T) {
	p1 := newChar("P1", 0, 20, 0, 2, newSkill("x", PlainAttack()), newSkill("y", PlainAttack()))
	p2 := newChar("P2", 0, 20, 0, 2, newSkill("z", PlainAttack()))
	b := mustBattle(t, p2, p1)
	var got []string
	for _, act := range b.Schedule() {
		got = append(got, act.Skill.Skill.Name)
	}
	assert.Equal(t, []string{"z", "x", "y"}, got)
}

func TestCheckEnd_DoubleKnockout(t *testing.T) {
	tests := []struct {
		name   string
		hp1    int
		hp2    int
		want   int
		winner string
	}{
		{name: "second less negative", hp1: -5, hp2: 0, want: WinSecond, winner: "P2 Win"},
		{name: "first less negative", hp1: -1, hp2: -3, want: WinFirst, winner: "P1 Win"},
		{name: "exact tie favours first", hp1: -5, hp2: -5, want: WinFirst, winner: "P1 Win"},
		{name: "only second down", hp1: 3, hp2: 0, want: WinFirst, winner: "P1 Win"},
		{name: "only first down", hp1: 0, hp2: 3, want: WinSecond, winner: "P2 Win"},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			b := mustBattle(t, newChar("P1", 0, 20, 0, 1), newChar("P2", 0, 20, 0, 1))
			b.Fighter(0).stats[ParamB] = tt.hp1
			b.Fighter(1).stats[ParamB] = tt.hp2

			require.True(t, b.checkEnd())
			win, decided := b.Decided()
			assert.True(t, decided)
			assert.Equal(t, tt.want, win)
			assert.Equal(t, tt.winner, b.Log()[len(b.Log())-1])
		})
	}
}

func TestSimulate_PoisonKillAtTurnCapCounts(t *testing.T) {
	venom := &Skill{Name: "猛毒", Delay: MaxTurns, Speed: SpeedFirst, Effects: IncEnemyDebuff(Poison, Const(100))}
	res, err := Simulate(newChar("P1", 0, 20, 0, 1, venom), newChar("P2", 0, 20, 0, 0))
	require.NoError(t, err)
	assert.Equal(t, MaxTurns, res.Turns)
	assert.Equal(t, WinFirst, res.Win)
}

func TestSimulate_ReloadSpacing(t *testing.T) {
	heavy := &Skill{Name: "強攻撃", Reload: 2, Effects: PlainAttack()}
	res, err := Simulate(newChar("P1", 1, 20, 0, 1, heavy), newChar("P2", 0, 20, 0, 0))
	require.NoError(t, err)

	assert.Equal(t, Draw, res.Win)
	assert.Equal(t, 10, countLines(res.Log, "P1: 強攻撃"))
	assert.Equal(t, 10, res.Final[1].B)
}

func TestFighter_String(t *testing.T) {
	b := mustBattle(t, newChar("P1", 3, 20, 2, 1), newChar("P2", 0, 20, 0, 1))
	require.NoError(t, b.Apply(AddStatus{TargetID: 0, Status: Poison, Amount: 2}))
	require.NoError(t, b.Apply(AddStatus{TargetID: 0, Status: Guard, Amount: -1}))
	assert.Equal(t, "P1 HP: 20/20 A: 3 D: 2 S: 1 毒2 防御-1", b.Fighter(0).String())
	assert.Contains(t, b.Log(), "『毒』+2")
	assert.Contains(t, b.Log(), "『防御』-1")
}
