package combat

// Effect is one requested state change. The resolver applies effects in
// order; only Attack can spawn further effects through its hooks.
type Effect interface {
	effect()
}

// Attack carries an already stat-derived Power. Triggered marks an attack
// spawned by another attack's hook: its own hooks never fire.
type Attack struct {
	AttackerID int
	TargetID   int
	Power      int
	Inevitable bool
	Triggered  bool
	OnSuccess  HitFunc
	OnEvaded   EffectFunc
}

type AddStatus struct {
	TargetID int
	Status   Status
	Amount   int
}

type UpdateParameter struct {
	TargetID int
	Param    Param
	Update   func(prev int) int
}

func (Attack) effect()          {}
func (AddStatus) effect()       {}
func (UpdateParameter) effect() {}

// markTriggered returns effects spawned by a hook with every attack flagged,
// so a hook's payload can go one level deep and no further.
func markTriggered(effects []Effect) []Effect {
	out := make([]Effect, len(effects))
	for i, e := range effects {
		if atk, ok := e.(Attack); ok {
			atk.Triggered = true
			e = atk
		}
		out[i] = e
	}
	return out
}
