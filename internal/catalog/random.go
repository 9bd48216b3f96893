package catalog

import (
	"fmt"
	"math/rand"

	"costhaggle/internal/combat"
)

// RandomSkillSlots is the number of skills drawn for a random build.
const RandomSkillSlots = 10

// RandomCharacter rolls a legal 10-point build: S in 1..5, A and D share the
// rest, 20 HP, and ten skills drawn with replacement from book.
func RandomCharacter(rng *rand.Rand, book *combat.SkillBook, name string) combat.Character {
	s := rng.Intn(5) + 1
	a := rng.Intn(10 - s + 1)
	d := 10 - s - a
	skills := book.Skills()
	ch := combat.Character{
		Name: name,
		A:    a,
		B:    20,
		C:    10,
		D:    d,
		S:    s,
	}
	if len(skills) == 0 {
		return ch
	}
	ch.Skills = make([]*combat.Skill, RandomSkillSlots)
	for i := range ch.Skills {
		ch.Skills[i] = skills[rng.Intn(len(skills))]
	}
	return ch
}

// RandomCharacters rolls n builds named prefix-1 .. prefix-n.
func RandomCharacters(rng *rand.Rand, book *combat.SkillBook, prefix string, n int) []combat.Character {
	out := make([]combat.Character, n)
	for i := range out {
		out[i] = RandomCharacter(rng, book, fmt.Sprintf("%s-%d", prefix, i+1))
	}
	return out
}
