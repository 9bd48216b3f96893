package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"

	"costhaggle/internal/catalog"
	"costhaggle/internal/combat"
	"costhaggle/internal/tournament"
)

type printer struct {
	w      io.Writer
	banner func(a ...any) string
	decide func(a ...any) string
	winner func(a ...any) string
	lose   func(a ...any) string
	draw   func(a ...any) string
}

func newPrinter(w io.Writer, enabled bool) *printer {
	mk := func(attrs ...color.Attribute) func(a ...any) string {
		c := color.New(attrs...)
		if !enabled {
			c.DisableColor()
		} else {
			c.EnableColor()
		}
		return c.SprintFunc()
	}
	return &printer{
		w:      w,
		banner: mk(color.FgCyan),
		decide: mk(color.FgYellow, color.Bold),
		winner: mk(color.FgGreen, color.Bold),
		lose:   mk(color.FgRed),
		draw:   mk(color.FgHiBlack),
	}
}

func (p *printer) transcript(lines []string) {
	for _, line := range lines {
		switch {
		case strings.HasPrefix(line, "========== turn"):
			line = p.banner(line)
		case strings.HasPrefix(line, "========== "):
			line = p.decide(line)
		case strings.HasSuffix(line, " Win"):
			line = p.winner(line)
		}
		fmt.Fprintln(p.w, line)
	}
}

func (p *printer) skills(book *combat.SkillBook) {
	for _, sk := range book.Skills() {
		fmt.Fprintln(p.w, catalog.Describe(sk))
	}
}

func (p *printer) cell(win int) string {
	switch {
	case win > 0:
		return p.winner("W")
	case win < 0:
		return p.lose("L")
	}
	return p.draw("-")
}

func (p *printer) matrix(rep *tournament.Report) {
	for i, name := range rep.Names {
		cells := make([]string, len(rep.Names))
		for j := range rep.Names {
			if i == j {
				cells[j] = " "
				continue
			}
			cells[j] = p.cell(rep.Matrix[i][j])
		}
		fmt.Fprintf(p.w, "%s\t%s\n", strings.Join(cells, " "), name)
	}
}

func (p *printer) standings(st []tournament.Standing) {
	fmt.Fprintln(p.w, p.banner("========== standings =========="))
	for rank, s := range st {
		line := fmt.Sprintf("%2d. %s  W%d D%d L%d", rank+1, s.Name, s.Wins, s.Draws, s.Losses)
		if s.Failures > 0 {
			line += fmt.Sprintf(" (failed %d)", s.Failures)
		}
		if rank == 0 {
			line = p.winner(line)
		}
		fmt.Fprintln(p.w, line)
	}
}

func (p *printer) batch(name string, n int, win, draw, loss float64) {
	fmt.Fprintf(p.w, "%s vs %d random builds: %s %s %s\n", name, n,
		p.winner(fmt.Sprintf("win %.1f%%", win*100)),
		p.draw(fmt.Sprintf("draw %.1f%%", draw*100)),
		p.lose(fmt.Sprintf("loss %.1f%%", loss*100)))
}
