package combat

// Skill combinators. Each returns an EffectFunc that only describes intent;
// nothing here touches battle state.

// Const is an Amount that ignores the context.
func Const(n int) Amount {
	return func(Context) int { return n }
}

func amountOr1(amount []Amount) Amount {
	if len(amount) == 0 || amount[0] == nil {
		return Const(1)
	}
	return amount[0]
}

// Merge concatenates the effects of fns in argument order.
func Merge(fns ...EffectFunc) EffectFunc {
	return func(ctx Context) []Effect {
		var out []Effect
		for _, f := range fns {
			out = append(out, f(ctx)...)
		}
		return out
	}
}

// IncBuff adds stacks of status to the attacker. Amount defaults to 1.
func IncBuff(status Status, amount ...Amount) EffectFunc {
	n := amountOr1(amount)
	return func(ctx Context) []Effect {
		return []Effect{AddStatus{TargetID: ctx.Attacker.ID(), Status: status, Amount: n(ctx)}}
	}
}

// IncEnemyDebuff adds stacks of status to the defender. Amount defaults to 1.
func IncEnemyDebuff(status Status, amount ...Amount) EffectFunc {
	n := amountOr1(amount)
	return func(ctx Context) []Effect {
		return []Effect{AddStatus{TargetID: ctx.Defender.ID(), Status: status, Amount: n(ctx)}}
	}
}

// IncParam adds to one of the attacker's stats. The amount is evaluated when
// the skill fires, not when the update is applied.
func IncParam(p Param, amount ...Amount) EffectFunc {
	n := amountOr1(amount)
	return func(ctx Context) []Effect {
		delta := n(ctx)
		return []Effect{UpdateParameter{
			TargetID: ctx.Attacker.ID(),
			Param:    p,
			Update:   func(prev int) int { return prev + delta },
		}}
	}
}

// SetParam overwrites one of the attacker's stats.
func SetParam(p Param, amount ...Amount) EffectFunc {
	n := amountOr1(amount)
	return func(ctx Context) []Effect {
		v := n(ctx)
		return []Effect{UpdateParameter{
			TargetID: ctx.Attacker.ID(),
			Param:    p,
			Update:   func(int) int { return v },
		}}
	}
}

// IncEnemyParam adds to one of the defender's stats.
func IncEnemyParam(p Param, amount ...Amount) EffectFunc {
	n := amountOr1(amount)
	return func(ctx Context) []Effect {
		delta := n(ctx)
		return []Effect{UpdateParameter{
			TargetID: ctx.Defender.ID(),
			Param:    p,
			Update:   func(prev int) int { return prev + delta },
		}}
	}
}

type AttackOptions struct {
	// PowerMult scales the attacker's current A. Nil means 1.
	PowerMult  func(attacker, defender View) int
	OnSuccess  HitFunc
	OnEvaded   EffectFunc
	Triggered  bool
	Inevitable bool
}

// AttackWith produces a single Attack using the attacker's current A.
func AttackWith(opts AttackOptions) EffectFunc {
	return func(ctx Context) []Effect {
		power := ctx.Attacker.A()
		if opts.PowerMult != nil {
			power *= opts.PowerMult(ctx.Attacker, ctx.Defender)
		}
		return []Effect{Attack{
			AttackerID: ctx.Attacker.ID(),
			TargetID:   ctx.Defender.ID(),
			Power:      power,
			Inevitable: opts.Inevitable,
			Triggered:  opts.Triggered,
			OnSuccess:  opts.OnSuccess,
			OnEvaded:   opts.OnEvaded,
		}}
	}
}

// PlainAttack is AttackWith with no options.
func PlainAttack() EffectFunc {
	return AttackWith(AttackOptions{})
}

// Mult is a constant PowerMult.
func Mult(n int) func(attacker, defender View) int {
	return func(View, View) int { return n }
}

// OnHit adapts an EffectFunc into a hook that ignores the damage dealt.
func OnHit(f EffectFunc) HitFunc {
	return func(ctx HitContext) []Effect { return f(ctx.Context) }
}

// When gates f on a predicate evaluated at invocation time.
func When(pred func(ctx Context) bool, f EffectFunc) EffectFunc {
	return func(ctx Context) []Effect {
		if !pred(ctx) {
			return nil
		}
		return f(ctx)
	}
}
