// Package buildtext turns a human-authored parts list into a character.
//
// A build is one entry per line:
//
//	⓪無償パーツBx20
//	①基本パーツAx3
//	攻撃
//
// Free parts cost nothing; every basic part spends one point of C, which
// starts at 10. Any other non-empty line must name a skill.
package buildtext

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"golang.org/x/text/width"

	"costhaggle/internal/combat"
)

// InitialCost is the C budget a build starts from.
const InitialCost = 10

// FormatError reports the first line that is neither a part nor a skill.
type FormatError struct {
	Name string
	Line int
	Text string
}

func (e *FormatError) Error() string {
	return fmt.Sprintf("%s: line %d: unknown line %q", e.Name, e.Line, e.Text)
}

type partRule struct {
	re    *regexp.Regexp
	apply func(c *combat.Character, n int)
}

var partRules = []partRule{
	{regexp.MustCompile(`⓪無償パーツBx(\d+)`), func(c *combat.Character, n int) { c.B += n }},
	{regexp.MustCompile(`①基本パーツAx(\d+)`), func(c *combat.Character, n int) { c.A += n; c.C -= n }},
	{regexp.MustCompile(`①基本パーツBx(\d+)`), func(c *combat.Character, n int) { c.B += n * 5; c.C -= n }},
	{regexp.MustCompile(`①基本パーツDx(\d+)`), func(c *combat.Character, n int) { c.D += n; c.C -= n }},
	{regexp.MustCompile(`①基本パーツSx(\d+)`), func(c *combat.Character, n int) { c.S += n; c.C -= n }},
}

// Parse builds a character from text, resolving skill lines against book.
func Parse(name, text string, book *combat.SkillBook) (combat.Character, error) {
	ch := combat.Character{Name: name, C: InitialCost}
	for i, raw := range strings.Split(text, "\n") {
		line := normalize(raw)
		if line == "" {
			continue
		}
		if applyPart(&ch, line) {
			continue
		}
		if sk, err := book.Lookup(line); err == nil {
			ch.Skills = append(ch.Skills, sk)
			continue
		}
		return combat.Character{}, &FormatError{Name: name, Line: i + 1, Text: strings.TrimSpace(raw)}
	}
	return ch, nil
}

// normalize folds full-width ASCII and half-width kana to their canonical
// widths, so "①基本パーツＡｘ３" reads as "①基本パーツAx3".
func normalize(line string) string {
	return strings.TrimSpace(width.Fold.String(strings.TrimRight(line, "\r")))
}

func applyPart(c *combat.Character, line string) bool {
	for _, r := range partRules {
		m := r.re.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		n, err := strconv.Atoi(m[1])
		if err != nil {
			return false
		}
		r.apply(c, n)
		return true
	}
	return false
}

// Format writes c back out as build text. Stats are emitted as free B plus
// basic A/D/S parts, which round-trips through Parse for builds whose HP
// came from free parts only.
func Format(c combat.Character) string {
	var sb strings.Builder
	if c.B > 0 {
		fmt.Fprintf(&sb, "⓪無償パーツBx%d\n", c.B)
	}
	for _, p := range []struct {
		label string
		n     int
	}{{"A", c.A}, {"D", c.D}, {"S", c.S}} {
		if p.n > 0 {
			fmt.Fprintf(&sb, "①基本パーツ%sx%d\n", p.label, p.n)
		}
	}
	for _, sk := range c.Skills {
		sb.WriteString(sk.Name)
		sb.WriteByte('\n')
	}
	return sb.String()
}
