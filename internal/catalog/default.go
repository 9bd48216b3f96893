// Package catalog holds the skill definitions characters are built from.
package catalog

import (
	c "costhaggle/internal/combat"
)

// Default returns a fresh copy of the built-in skills, in display order.
func Default() *c.SkillBook {
	book, err := c.NewSkillBook(defaultSkills()...)
	if err != nil {
		panic(err)
	}
	return book
}

func defaultSkills() []*c.Skill {
	return []*c.Skill{
		{Name: "茨の鎧", Stock: 1, Speed: c.SpeedFirst, Effects: c.IncBuff(c.ThornArmor)},
		{Name: "反応装甲", Stock: 1, Delay: 2, Speed: c.SpeedFirst, Effects: c.IncBuff(c.ReactiveArmor)},
		{Name: "即席装甲", Stock: 1, Speed: c.SpeedFirst, Effects: c.IncBuff(c.Deflect, c.Const(5))},
		{
			Name: "グラスキャノン", Stock: 1, Speed: c.SpeedFirst,
			Effects: c.Merge(
				c.IncParam(c.ParamA, c.Const(2)),
				c.SetParam(c.ParamD, c.Const(0)),
			),
		},
		{
			Name: "先制攻撃", Delay: 4, Speed: c.SpeedFirst,
			Effects: c.AttackWith(c.AttackOptions{OnSuccess: c.OnHit(c.IncEnemyDebuff(c.Stun))}),
		},
		{Name: "投擲攻撃", Stock: 4, Speed: c.SpeedFirst, Effects: c.PlainAttack()},
		{Name: "緊急回避", Stock: 2, Speed: c.SpeedFirst, Effects: c.IncBuff(c.Evade)},
		{Name: "見切り", Speed: c.SpeedFirst, Effects: c.IncBuff(c.ParryBoost)},
		{Name: "防御", Speed: c.SpeedFirst, Effects: c.IncBuff(c.Guard)},
		{Name: "受け流し", Delay: 2, Speed: c.SpeedFirst, Effects: c.IncBuff(c.Deflect, c.Const(4))},
		{Name: "回避", Delay: 4, Speed: c.SpeedFirst, Effects: c.IncBuff(c.Evade)},

		{Name: "攻撃", Effects: c.PlainAttack()},
		{
			Name: "牽制攻撃", Delay: 2,
			Effects: c.AttackWith(c.AttackOptions{OnSuccess: c.OnHit(c.IncBuff(c.Deflect, c.Const(2)))}),
		},
		{
			Name: "致命攻撃", Delay: 3,
			Effects: c.AttackWith(c.AttackOptions{
				PowerMult: func(_, defender c.View) int {
					if defender.D() == 0 {
						return 10
					}
					return 1
				},
			}),
		},
		{
			Name: "連続攻撃", Delay: 3,
			Effects: c.AttackWith(c.AttackOptions{
				OnSuccess: c.OnHit(c.AttackWith(c.AttackOptions{Triggered: true})),
			}),
		},
		{
			Name: "燕返し", Delay: 3,
			Effects: c.AttackWith(c.AttackOptions{
				OnEvaded: c.AttackWith(c.AttackOptions{Triggered: true, Inevitable: true, PowerMult: c.Mult(2)}),
			}),
		},
		{
			Name: "毒攻撃", Stock: 1,
			Effects: c.AttackWith(c.AttackOptions{OnSuccess: c.OnHit(c.IncEnemyDebuff(c.Poison, c.Const(3)))}),
		},
		{
			Name: "吸血", Delay: 3,
			Effects: c.AttackWith(c.AttackOptions{
				OnSuccess: func(ctx c.HitContext) []c.Effect {
					return c.IncParam(c.ParamB, c.Const(ctx.Damage))(ctx.Context)
				},
			}),
		},
		{
			Name: "兜割り", Delay: 3,
			Effects: c.AttackWith(c.AttackOptions{OnSuccess: c.OnHit(c.IncEnemyParam(c.ParamD, c.Const(-1)))}),
		},
		{
			Name: "足払い", Delay: 2,
			Effects: c.AttackWith(c.AttackOptions{OnSuccess: c.OnHit(c.IncEnemyDebuff(c.Stun))}),
		},

		{Name: "大防御", Speed: c.SpeedLast, Effects: c.IncBuff(c.FullGuard)},
		{Name: "強攻撃", Speed: c.SpeedLast, Delay: 3, Reload: 2, Effects: c.AttackWith(c.AttackOptions{PowerMult: c.Mult(2)})},
		{Name: "必殺攻撃", Speed: c.SpeedLast, Delay: 6, Stock: 1, Effects: c.AttackWith(c.AttackOptions{PowerMult: c.Mult(10)})},
		{
			// Only lands if the user was not hit earlier this turn.
			Name: "重攻撃", Speed: c.SpeedLast,
			Effects: c.When(
				func(ctx c.Context) bool { return !ctx.Attacker.HitThisTurn() },
				c.AttackWith(c.AttackOptions{PowerMult: c.Mult(2)}),
			),
		},
		{Name: "魔法攻撃", Speed: c.SpeedLast, Delay: 3, Effects: c.IncEnemyParam(c.ParamB, attackerA(-1))},
		{Name: "毒魔法", Speed: c.SpeedLast, Delay: 4, Effects: c.IncEnemyDebuff(c.Poison, c.Const(2))},
		{
			Name: "大魔法", Speed: c.SpeedLast, Delay: 5, Reload: 2,
			Effects: c.Merge(
				c.IncEnemyParam(c.ParamB, attackerA(-1)),
				c.IncParam(c.ParamA, attackerA(1)),
			),
		},
		{Name: "回復", Speed: c.SpeedLast, Effects: c.IncParam(c.ParamB, c.Const(4))},
		{Name: "研磨", Speed: c.SpeedLast, Delay: 2, Effects: c.IncParam(c.ParamA, c.Const(1))},
		{Name: "補強", Speed: c.SpeedLast, Delay: 2, Effects: c.IncParam(c.ParamD, c.Const(1))},
		{Name: "加速", Speed: c.SpeedLast, Delay: 2, Effects: c.IncParam(c.ParamS, c.Const(1))},
		{Name: "茨の森", Speed: c.SpeedLast, Delay: 2, Effects: c.IncBuff(c.ThornArmor, c.Const(1))},
		{Name: "エンレイジ", Speed: c.SpeedLast, Delay: 20, Effects: c.IncEnemyParam(c.ParamB, c.Const(-9999))},
	}
}

func attackerA(scale int) c.Amount {
	return func(ctx c.Context) int { return scale * ctx.Attacker.A() }
}
