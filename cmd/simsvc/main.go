package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"sync"
	"syscall"

	"golang.org/x/sync/errgroup"

	"costhaggle/internal/buildtext"
	"costhaggle/internal/catalog"
	"costhaggle/internal/combat"
	"costhaggle/internal/config"
	"costhaggle/internal/tournament"
	"costhaggle/internal/util"
)

type options struct {
	cfgDir     string
	out        string
	p1, p2     string
	seed       int64
	n          int
	workers    int
	roundRobin bool
	list       bool
	mirror     bool
	color      bool
	logLevel   string
}

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := run(ctx); err != nil {
		slog.Error("fatal", "err", err)
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	settings, err := config.LoadSettings()
	if err != nil {
		return err
	}

	var o options
	flag.StringVar(&o.cfgDir, "config", settings.ConfigDir, "config dir (roster.yaml, skills.yaml)")
	flag.StringVar(&o.out, "out", "out.json", "output file (single) or summary file (batch / round robin)")
	flag.StringVar(&o.p1, "p1", "", "first character (roster name)")
	flag.StringVar(&o.p2, "p2", "", "second character (roster name)")
	flag.Int64Var(&o.seed, "seed", 12345, "seed for random builds")
	flag.IntVar(&o.n, "n", 0, "fight -p1 against n random builds")
	flag.IntVar(&o.workers, "workers", settings.Workers, "concurrent battles")
	flag.BoolVar(&o.roundRobin, "roundrobin", false, "run every ordered pairing of the roster")
	flag.BoolVar(&o.list, "list", false, "list available skills and exit")
	flag.BoolVar(&o.mirror, "mirror", settings.MirrorByNegation, "round robin: derive (j,i) by negating (i,j)")
	flag.BoolVar(&o.color, "color", settings.Color, "colour the transcript")
	flag.StringVar(&o.logLevel, "log", settings.LogLevel, "log level: debug|info|warn|error")
	flag.Parse()

	level, err := config.ParseLevel(o.logLevel)
	if err != nil {
		return err
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))
	pr := newPrinter(os.Stdout, o.color)

	skillsCfg, err := config.LoadSkills(o.cfgDir)
	if err != nil {
		return err
	}
	book, err := catalog.Load(skillsCfg)
	if err != nil {
		return fmt.Errorf("building catalog: %w", err)
	}
	slog.Debug("catalog loaded", "skills", book.Len(), "custom", len(skillsCfg.Skills))

	if o.list {
		pr.skills(book)
		return nil
	}

	roster, err := config.LoadRoster(o.cfgDir)
	if err != nil {
		return err
	}
	slog.Info("roster loaded", "dir", o.cfgDir, "characters", len(roster.Characters))

	switch {
	case o.roundRobin:
		return runRoundRobin(ctx, o, roster, book, pr)
	case o.n > 0:
		return runBatch(ctx, o, roster, book, pr)
	default:
		return runSingle(o, roster, book, pr)
	}
}

func resolve(roster *config.RosterConfig, book *combat.SkillBook, name string) (combat.Character, error) {
	if name == "" {
		return combat.Character{}, errors.New("character name required (-p1/-p2)")
	}
	def, ok := roster.Find(name)
	if !ok {
		return combat.Character{}, fmt.Errorf("character %q not in roster", name)
	}
	ch, err := def.Character(book)
	if err != nil {
		var fe *buildtext.FormatError
		if errors.As(err, &fe) {
			return combat.Character{}, fmt.Errorf("build text of %s, line %d (%q): %w", name, fe.Line, fe.Text, err)
		}
		return combat.Character{}, err
	}
	return ch, nil
}

func runSingle(o options, roster *config.RosterConfig, book *combat.SkillBook, pr *printer) error {
	p1, err := resolve(roster, book, o.p1)
	if err != nil {
		return err
	}
	p2, err := resolve(roster, book, o.p2)
	if err != nil {
		return err
	}
	res, err := combat.Simulate(p1, p2)
	if err != nil {
		return fmt.Errorf("simulating %s vs %s: %w", p1.Name, p2.Name, err)
	}
	pr.transcript(res.Log)
	if err := os.WriteFile(o.out, combat.MarshalPretty(res), 0644); err != nil {
		return err
	}
	slog.Info("single battle finished", "win", res.Win, "turns", res.Turns, "out", o.out)
	return nil
}

func runRoundRobin(ctx context.Context, o options, roster *config.RosterConfig, book *combat.SkillBook, pr *printer) error {
	chars, err := roster.Resolve(book)
	if err != nil {
		return err
	}
	rep, err := tournament.Run(ctx, chars, tournament.Options{
		Workers:          o.workers,
		MirrorByNegation: o.mirror,
	})
	if err != nil {
		return err
	}
	pr.matrix(rep)
	pr.standings(rep.Standings)

	failed := map[string]string{}
	for _, p := range rep.Failed() {
		failed[rep.Names[p.I]+" vs "+rep.Names[p.J]] = p.Err.Error()
	}
	summary := map[string]any{
		"names":     rep.Names,
		"matrix":    rep.Matrix,
		"standings": rep.Standings,
		"mirrored":  o.mirror,
	}
	if len(failed) > 0 {
		summary["failures"] = failed
	}
	if err := os.WriteFile(o.out, combat.MarshalPretty(summary), 0644); err != nil {
		return err
	}
	slog.Info("round robin finished", "characters", len(chars), "failures", len(failed), "out", filepath.Base(o.out))
	return nil
}

func runBatch(ctx context.Context, o options, roster *config.RosterConfig, book *combat.SkillBook, pr *printer) error {
	p1, err := resolve(roster, book, o.p1)
	if err != nil {
		return err
	}

	type stat struct {
		Win, Draw, Loss, Failed int
		SumTurns                int
		FirstLoss               []string
		FirstLossRun            int
	}
	st := stat{FirstLossRun: -1}
	var mu sync.Mutex
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(max(1, o.workers))
	for i := 0; i < o.n; i++ {
		i := i
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			foe := catalog.RandomCharacter(util.ForRun(o.seed, i), book, fmt.Sprintf("random-%d", i+1))
			res, err := combat.Simulate(p1, foe)

			mu.Lock()
			defer mu.Unlock()
			switch {
			case err != nil:
				st.Failed++
				slog.Warn("battle failed", "run", i, "err", err)
				return nil
			case res.Win > 0:
				st.Win++
			case res.Win < 0:
				st.Loss++
				if st.FirstLossRun < 0 || i < st.FirstLossRun {
					st.FirstLossRun = i
					st.FirstLoss = res.Log
				}
			default:
				st.Draw++
			}
			st.SumTurns += res.Turns
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	played := o.n - st.Failed
	rate := func(k int) float64 {
		if played == 0 {
			return 0
		}
		return float64(k) / float64(played)
	}
	summary := map[string]any{
		"runs":      o.n,
		"character": p1.Name,
		"seed":      o.seed,
		"win_rate":  rate(st.Win),
		"draw_rate": rate(st.Draw),
		"loss_rate": rate(st.Loss),
		"failed":    st.Failed,
		"avg_turns": rate(st.SumTurns),
	}
	if st.FirstLossRun >= 0 {
		summary["first_loss_run"] = st.FirstLossRun
		summary["first_loss_log"] = st.FirstLoss
		pr.transcript(st.FirstLoss)
	}
	if err := os.WriteFile(o.out, combat.MarshalPretty(summary), 0644); err != nil {
		return err
	}
	pr.batch(p1.Name, o.n, rate(st.Win), rate(st.Draw), rate(st.Loss))
	slog.Info("batch finished", "runs", o.n, "out", filepath.Base(o.out))
	return nil
}
