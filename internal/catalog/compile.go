package catalog

import (
	"fmt"
	"strconv"
	"strings"

	"costhaggle/internal/combat"
	"costhaggle/internal/config"
)

// Compile turns declarative skill definitions into skills built from the
// combat combinators.
func Compile(cfg *config.SkillsConfig) (*combat.SkillBook, error) {
	book, err := combat.NewSkillBook()
	if err != nil {
		return nil, err
	}
	if cfg == nil {
		return book, nil
	}
	for _, def := range cfg.Skills {
		sk, err := compileSkill(def)
		if err != nil {
			return nil, fmt.Errorf("skill %q: %w", def.Name, err)
		}
		if err := book.Add(sk); err != nil {
			return nil, err
		}
	}
	return book, nil
}

// Load returns the default catalog extended with cfg's skills.
func Load(cfg *config.SkillsConfig) (*combat.SkillBook, error) {
	extra, err := Compile(cfg)
	if err != nil {
		return nil, err
	}
	return Default().Merge(extra)
}

func compileSkill(def config.SkillDef) (*combat.Skill, error) {
	if strings.TrimSpace(def.Name) == "" {
		return nil, fmt.Errorf("missing name")
	}
	if len(def.Effects) == 0 {
		return nil, fmt.Errorf("no effects")
	}
	speed, err := parseSpeed(def.Speed)
	if err != nil {
		return nil, err
	}
	fns, err := compileEffects(def.Effects, false)
	if err != nil {
		return nil, err
	}
	return &combat.Skill{
		Name:    def.Name,
		Delay:   def.Delay,
		Stock:   def.Stock,
		Reload:  def.Reload,
		Speed:   speed,
		Effects: combat.Merge(fns...),
	}, nil
}

func parseSpeed(s string) (combat.Speed, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "normal", "0":
		return combat.SpeedNormal, nil
	case "first", "1", "+1":
		return combat.SpeedFirst, nil
	case "last", "-1":
		return combat.SpeedLast, nil
	}
	return 0, fmt.Errorf("unknown speed %q", s)
}

// hitFn evaluates an effect against the damage of the hit that spawned it.
// Outside on_success the damage is always zero.
type hitFn func(ctx combat.HitContext) []combat.Effect

func compileEffects(defs []config.EffectDef, inHit bool) ([]combat.EffectFunc, error) {
	hits, err := compileHitEffects(defs, inHit)
	if err != nil {
		return nil, err
	}
	out := make([]combat.EffectFunc, len(hits))
	for i, h := range hits {
		h := h
		out[i] = func(ctx combat.Context) []combat.Effect {
			return h(combat.HitContext{Context: ctx})
		}
	}
	return out, nil
}

func compileHitEffects(defs []config.EffectDef, inHit bool) ([]hitFn, error) {
	out := make([]hitFn, 0, len(defs))
	for i, d := range defs {
		fn, err := compileEffect(d, inHit)
		if err != nil {
			return nil, fmt.Errorf("effect #%d (%s): %w", i+1, d.Kind, err)
		}
		out = append(out, fn)
	}
	return out, nil
}

func compileEffect(d config.EffectDef, inHit bool) (hitFn, error) {
	kind := strings.ToLower(strings.TrimSpace(d.Kind))
	switch kind {
	case "buff", "debuff":
		status, err := combat.ParseStatus(d.Status)
		if err != nil {
			return nil, err
		}
		amount, err := compileAmount(d.Amount, 1, inHit)
		if err != nil {
			return nil, err
		}
		build := combat.IncBuff
		if kind == "debuff" {
			build = combat.IncEnemyDebuff
		}
		return func(ctx combat.HitContext) []combat.Effect {
			return build(status, bindHit(amount, ctx))(ctx.Context)
		}, nil

	case "param", "set_param", "enemy_param":
		p, err := combat.ParseParam(d.Param)
		if err != nil {
			return nil, err
		}
		amount, err := compileAmount(d.Amount, 1, inHit)
		if err != nil {
			return nil, err
		}
		build := combat.IncParam
		switch kind {
		case "set_param":
			build = combat.SetParam
		case "enemy_param":
			build = combat.IncEnemyParam
		}
		return func(ctx combat.HitContext) []combat.Effect {
			return build(p, bindHit(amount, ctx))(ctx.Context)
		}, nil

	case "attack":
		mult, err := compileAmount(d.PowerMult, 1, inHit)
		if err != nil {
			return nil, err
		}
		var onSuccess combat.HitFunc
		if len(d.OnSuccess) > 0 {
			hooks, err := compileHitEffects(d.OnSuccess, true)
			if err != nil {
				return nil, fmt.Errorf("on_success: %w", err)
			}
			onSuccess = func(ctx combat.HitContext) []combat.Effect {
				var out []combat.Effect
				for _, h := range hooks {
					out = append(out, h(ctx)...)
				}
				return out
			}
		}
		var onEvaded combat.EffectFunc
		if len(d.OnEvaded) > 0 {
			hooks, err := compileEffects(d.OnEvaded, false)
			if err != nil {
				return nil, fmt.Errorf("on_evaded: %w", err)
			}
			onEvaded = combat.Merge(hooks...)
		}
		return func(ctx combat.HitContext) []combat.Effect {
			opts := combat.AttackOptions{
				PowerMult: func(attacker, defender combat.View) int {
					return mult(combat.HitContext{
						Context: combat.Context{Attacker: attacker, Defender: defender},
						Damage:  ctx.Damage,
					})
				},
				OnSuccess:  onSuccess,
				OnEvaded:   onEvaded,
				Triggered:  d.Triggered,
				Inevitable: d.Inevitable,
			}
			return combat.AttackWith(opts)(ctx.Context)
		}, nil
	}
	return nil, fmt.Errorf("unknown effect kind %q", d.Kind)
}

type hitAmount func(ctx combat.HitContext) int

func bindHit(a hitAmount, hc combat.HitContext) combat.Amount {
	return func(ctx combat.Context) int {
		return a(combat.HitContext{Context: ctx, Damage: hc.Damage})
	}
}

// compileAmount resolves an AmountDef; a nil def yields fallback.
func compileAmount(d *config.AmountDef, fallback int, inHit bool) (hitAmount, error) {
	if d == nil {
		return func(combat.HitContext) int { return fallback }, nil
	}
	value := d.Value
	from := strings.ToLower(strings.TrimSpace(d.From))
	if from == "" {
		return func(combat.HitContext) int { return value }, nil
	}
	scale := d.Scale
	if scale == 0 {
		scale = 1
	}
	if from == "damage" {
		if !inHit {
			return nil, fmt.Errorf("amount from damage outside on_success")
		}
		return func(ctx combat.HitContext) int { return value + scale*ctx.Damage }, nil
	}
	side, name, ok := strings.Cut(from, ".")
	if !ok {
		return nil, fmt.Errorf("unknown amount source %q", d.From)
	}
	p, err := combat.ParseParam(name)
	if err != nil {
		return nil, err
	}
	switch side {
	case "attacker":
		return func(ctx combat.HitContext) int { return value + scale*ctx.Attacker.Param(p) }, nil
	case "defender":
		return func(ctx combat.HitContext) int { return value + scale*ctx.Defender.Param(p) }, nil
	}
	return nil, fmt.Errorf("unknown amount source %q", d.From)
}

// Describe renders a skill's constraints for listings, e.g.
// "強攻撃 [last delay=3 reload=2]".
func Describe(sk *combat.Skill) string {
	var parts []string
	switch sk.Speed {
	case combat.SpeedFirst:
		parts = append(parts, "first")
	case combat.SpeedLast:
		parts = append(parts, "last")
	}
	if sk.Delay > 0 {
		parts = append(parts, "delay="+strconv.Itoa(sk.Delay))
	}
	if sk.Stock > 0 {
		parts = append(parts, "stock="+strconv.Itoa(sk.Stock))
	}
	if sk.Reload > 0 {
		parts = append(parts, "reload="+strconv.Itoa(sk.Reload))
	}
	if len(parts) == 0 {
		return sk.Name
	}
	return sk.Name + " [" + strings.Join(parts, " ") + "]"
}
