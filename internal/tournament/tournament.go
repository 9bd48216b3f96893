// Package tournament runs every pairing of a roster.
package tournament

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"sync"

	"golang.org/x/sync/errgroup"

	"costhaggle/internal/combat"
)

type Options struct {
	// Workers bounds concurrent battles; values below 1 mean 1.
	Workers int
	// MirrorByNegation simulates only i<j and fills (j,i) with -win. Only
	// sound when the resolver is side-symmetric, which the id tie-break
	// breaks, so it is off by default.
	MirrorByNegation bool
	// KeepLogs retains each simulated battle's transcript in Pair.Log.
	// Mirrored pairs were never played and carry no transcript.
	KeepLogs bool
}

// Pair is the outcome of Characters[I] (first) against Characters[J]. A
// Mirrored pair is derived from (J, I) and has a nil Log.
type Pair struct {
	I, J     int
	Win      int
	Turns    int
	Mirrored bool
	Log      []string
	Err      error
}

type Standing struct {
	Name     string `json:"name"`
	Wins     int    `json:"wins"`
	Draws    int    `json:"draws"`
	Losses   int    `json:"losses"`
	Failures int    `json:"failures"`
}

type Report struct {
	Names []string
	// Matrix[i][j] is the win code of i (first) against j; the diagonal is 0.
	Matrix    [][]int
	Pairs     []Pair
	Standings []Standing
}

// Failed returns the pairs whose battle returned an error.
func (r *Report) Failed() []Pair {
	var out []Pair
	for _, p := range r.Pairs {
		if p.Err != nil {
			out = append(out, p)
		}
	}
	return out
}

// Run simulates the round robin. A failing battle is recorded on its pair
// and the rest continue; only ctx cancellation aborts the run.
func Run(ctx context.Context, chars []combat.Character, opts Options) (*Report, error) {
	n := len(chars)
	rep := &Report{
		Names:  make([]string, n),
		Matrix: make([][]int, n),
	}
	for i, c := range chars {
		rep.Names[i] = c.Name
		rep.Matrix[i] = make([]int, n)
	}

	var jobs [][2]int
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			if i == j || (opts.MirrorByNegation && j < i) {
				continue
			}
			jobs = append(jobs, [2]int{i, j})
		}
	}

	workers := max(1, opts.Workers)
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	var mu sync.Mutex
	results := make([]Pair, 0, len(jobs))
	for _, job := range jobs {
		if gctx.Err() != nil {
			break
		}
		i, j := job[0], job[1]
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			p := play(chars, i, j, opts.KeepLogs)
			mu.Lock()
			results = append(results, p)
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("tournament: %w", err)
	}
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("tournament: %w", err)
	}

	if opts.MirrorByNegation {
		mirrored := make([]Pair, len(results))
		for k, p := range results {
			mirrored[k] = Pair{I: p.J, J: p.I, Win: -p.Win, Turns: p.Turns, Mirrored: true, Err: p.Err}
		}
		results = append(results, mirrored...)
	}
	sort.Slice(results, func(a, b int) bool {
		if results[a].I != results[b].I {
			return results[a].I < results[b].I
		}
		return results[a].J < results[b].J
	})
	for _, p := range results {
		if p.Err == nil {
			rep.Matrix[p.I][p.J] = p.Win
		}
	}
	rep.Pairs = results
	rep.Standings = standings(rep.Names, results)
	return rep, nil
}

func play(chars []combat.Character, i, j int, keepLog bool) Pair {
	p := Pair{I: i, J: j}
	res, err := combat.Simulate(chars[i], chars[j])
	if err != nil {
		slog.Warn("battle failed", "first", chars[i].Name, "second", chars[j].Name, "err", err)
		p.Err = err
		return p
	}
	p.Win = res.Win
	p.Turns = res.Turns
	if keepLog {
		p.Log = res.Log
	}
	slog.Debug("battle finished", "first", chars[i].Name, "second", chars[j].Name, "win", res.Win, "turns", res.Turns)
	return p
}

// standings counts each pair once per side. Sorted by wins desc, then
// losses asc, then name.
func standings(names []string, pairs []Pair) []Standing {
	st := make([]Standing, len(names))
	for i, name := range names {
		st[i].Name = name
	}
	for _, p := range pairs {
		if p.Err != nil {
			st[p.I].Failures++
			st[p.J].Failures++
			continue
		}
		switch {
		case p.Win > 0:
			st[p.I].Wins++
			st[p.J].Losses++
		case p.Win < 0:
			st[p.I].Losses++
			st[p.J].Wins++
		default:
			st[p.I].Draws++
			st[p.J].Draws++
		}
	}
	sort.SliceStable(st, func(a, b int) bool {
		if st[a].Wins != st[b].Wins {
			return st[a].Wins > st[b].Wins
		}
		if st[a].Losses != st[b].Losses {
			return st[a].Losses < st[b].Losses
		}
		return st[a].Name < st[b].Name
	})
	return st
}
