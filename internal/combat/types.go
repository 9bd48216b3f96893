package combat

import (
	"fmt"
	"strings"
)

// MaxTurns caps every battle. Reaching it with both sides standing is a draw.
const MaxTurns = 20

// Win codes reported in Result.Win.
const (
	WinFirst  = 1
	Draw      = 0
	WinSecond = -1
)

type Param int

const (
	ParamA Param = iota // attack power
	ParamB              // hit points
	ParamC              // build cost
	ParamD              // defense
	ParamS              // actions per turn
	paramCount
)

var paramNames = [paramCount]string{"a", "b", "c", "d", "s"}

func (p Param) String() string {
	if p < 0 || p >= paramCount {
		return fmt.Sprintf("param(%d)", int(p))
	}
	return paramNames[p]
}

func ParseParam(s string) (Param, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	for i, name := range paramNames {
		if name == s {
			return Param(i), nil
		}
	}
	return 0, fmt.Errorf("unknown parameter %q", s)
}

type Status int

const (
	Poison        Status = iota // 毒: damage per turn end, decays by one
	Stun                        // スタン: cancels the next action
	Guard                       // 防御: multiplies defense
	Exposed                     // 無防備: cancels guard
	FullGuard                   // 完全防御: nullifies damage
	Evade                       // 回避: negates one attack
	Reflect                     // 反射
	ParryBoost                  // 見切り: becomes Evade when hit
	Deflect                     // 受け流し: absorbs damage points
	ThornArmor                  // 茨の鎧: damages attackers
	ReactiveArmor               // 反応装甲: raises defense when hit
	statusCount
)

var statusNames = [statusCount]string{
	"毒", "スタン", "防御", "無防備", "完全防御", "回避", "反射", "見切り", "受け流し", "茨の鎧", "反応装甲",
}

var statusKeys = [statusCount]string{
	"poison", "stun", "guard", "exposed", "full_guard", "evade", "reflect", "parry_boost", "deflect", "thorn_armor", "reactive_armor",
}

// turnScoped statuses are cleared at every turn end. The rest persist.
var turnScoped = []Status{Stun, Guard, Exposed, FullGuard, Evade, Reflect, ParryBoost}

func (s Status) String() string {
	if s < 0 || s >= statusCount {
		return fmt.Sprintf("status(%d)", int(s))
	}
	return statusNames[s]
}

// Key is the ASCII identifier used in config files.
func (s Status) Key() string {
	if s < 0 || s >= statusCount {
		return ""
	}
	return statusKeys[s]
}

// TurnScoped reports whether the status is reset at the end of each turn.
func (s Status) TurnScoped() bool {
	for _, t := range turnScoped {
		if t == s {
			return true
		}
	}
	return false
}

// ParseStatus accepts either the display name (毒) or the key (poison).
func ParseStatus(name string) (Status, error) {
	name = strings.TrimSpace(name)
	for i := Status(0); i < statusCount; i++ {
		if statusNames[i] == name || strings.EqualFold(statusKeys[i], name) {
			return i, nil
		}
	}
	return 0, fmt.Errorf("unknown status %q", name)
}

func AllStatuses() []Status {
	out := make([]Status, statusCount)
	for i := range out {
		out[i] = Status(i)
	}
	return out
}

// Speed is the skill-level priority tier.
type Speed int

const (
	SpeedLast   Speed = -1 // 後出し
	SpeedNormal Speed = 0
	SpeedFirst  Speed = 1 // 先制
)

// Character is the static, author-supplied build.
type Character struct {
	Name   string
	A      int
	B      int
	C      int
	D      int
	S      int
	Skills []*Skill
}

// Skill is shared between characters; usage state lives in SkillState.
// Zero Delay and Reload mean no constraint, Stock <= 0 means unlimited.
type Skill struct {
	Name    string
	Delay   int
	Stock   int
	Reload  int
	Speed   Speed
	Effects EffectFunc
}

// View is the read-only capability handed to effect functions. It is backed
// by the live fighter, so reads observe mutations made earlier in the turn.
type View interface {
	ID() int
	Name() string
	A() int
	B() int
	C() int
	D() int
	S() int
	Param(p Param) int
	Status(s Status) int
	HitThisTurn() bool
}

type Context struct {
	Attacker View
	Defender View
}

// HitContext is passed to on-success hooks.
type HitContext struct {
	Context
	Damage int
}

type EffectFunc func(ctx Context) []Effect

type HitFunc func(ctx HitContext) []Effect

// Amount computes a number from the acting context.
type Amount func(ctx Context) int

type Result struct {
	Win   int               `json:"win"`
	Log   []string          `json:"log"`
	Turns int               `json:"turns"`
	Final [2]FighterSummary `json:"final"`
}

type FighterSummary struct {
	Name   string         `json:"name"`
	A      int            `json:"a"`
	B      int            `json:"b"`
	MaxB   int            `json:"max_b"`
	C      int            `json:"c"`
	D      int            `json:"d"`
	S      int            `json:"s"`
	Status map[string]int `json:"status,omitempty"`
}
