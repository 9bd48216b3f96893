package config

// SkillsConfig declares skills on top of the built-in catalog.
type SkillsConfig struct {
	Skills []SkillDef `yaml:"skills"`
}

type SkillDef struct {
	Name    string      `yaml:"name"`
	Delay   int         `yaml:"delay"`
	Stock   int         `yaml:"stock"`
	Reload  int         `yaml:"reload"`
	Speed   string      `yaml:"speed"` // first | normal | last, or 1 | 0 | -1
	Effects []EffectDef `yaml:"effects"`
	Note    string      `yaml:"note"`
}

// EffectDef is one combinator call. Kind is one of buff, debuff, param,
// set_param, enemy_param, attack.
type EffectDef struct {
	Kind       string      `yaml:"kind"`
	Status     string      `yaml:"status"`
	Param      string      `yaml:"param"`
	Amount     *AmountDef  `yaml:"amount"`
	PowerMult  *AmountDef  `yaml:"power_mult"`
	OnSuccess  []EffectDef `yaml:"on_success"`
	OnEvaded   []EffectDef `yaml:"on_evaded"`
	Triggered  bool        `yaml:"triggered"`
	Inevitable bool        `yaml:"inevitable"`
}

// AmountDef evaluates to Value + Scale*From. From is attacker.<p>,
// defender.<p> or damage; Scale defaults to 1 when From is set.
type AmountDef struct {
	Value int    `yaml:"value"`
	From  string `yaml:"from"`
	Scale int    `yaml:"scale"`
}
