// Package tablegen is the offline preflop-equity table builder: it
// computes a Row for every (player count, hand class) pair and assembles
// the result into a preflop.Table, either by driving the Monte Carlo
// simulator (internal/equity) or, for heads-up only, by exact enumeration
// of every remaining opponent holding and board.
package tablegen

import (
	"context"
	"fmt"
	"io"
	"math"
	"time"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"

	"github.com/lox/holdem-equity/internal/deck"
	"github.com/lox/holdem-equity/internal/equity"
	"github.com/lox/holdem-equity/internal/evaluator"
	"github.com/lox/holdem-equity/internal/handclass"
	"github.com/lox/holdem-equity/internal/preflop"
)

// Mode selects the table-generation algorithm.
type Mode string

const (
	ModeMonteCarlo Mode = "monte_carlo"
	ModeExact      Mode = "exact"
)

// Config describes one build run.
type Config struct {
	Trials     uint64 // Monte Carlo only
	Mode       Mode
	PlayersMin int
	PlayersMax int

	// Logger receives progress lines every 100 completed rows. Nil selects
	// a silent logger (io.Discard); only cmd/ entry points pass a real one.
	Logger *log.Logger

	// Clock supplies the wall-clock measurement reported on completion.
	// Nil selects the real clock.
	Clock quartz.Clock
}

// progressCadence is how often (in completed rows) a progress line is
// logged, matching the reference table builder's stderr cadence.
const progressCadence = 100

// Build computes a complete preflop.Table for cfg.PlayersMin..cfg.PlayersMax
// across all 169 hand classes. It returns an error if the mode/player-range
// combination is invalid (per spec: exact mode is heads-up only) or if the
// simulation is canceled via ctx.
func Build(ctx context.Context, cfg Config) (*preflop.Table, error) {
	logger := cfg.Logger
	if logger == nil {
		logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	clock := cfg.Clock
	if clock == nil {
		clock = quartz.NewReal()
	}

	if cfg.PlayersMin < 2 || cfg.PlayersMax > 10 || cfg.PlayersMin > cfg.PlayersMax {
		return nil, fmt.Errorf("tablegen: invalid player range [%d,%d]", cfg.PlayersMin, cfg.PlayersMax)
	}
	if cfg.Mode == ModeExact && (cfg.PlayersMin != 2 || cfg.PlayersMax != 2) {
		return nil, fmt.Errorf("tablegen: exact mode requires players_min = players_max = 2, got [%d,%d]", cfg.PlayersMin, cfg.PlayersMax)
	}
	if cfg.Mode != ModeMonteCarlo && cfg.Mode != ModeExact {
		return nil, fmt.Errorf("tablegen: unknown mode %q", cfg.Mode)
	}

	start := clock.Now()
	classes := handclass.Enumerate()

	data := make(map[string]map[string]preflop.Row, cfg.PlayersMax-cfg.PlayersMin+1)
	for p := cfg.PlayersMin; p <= cfg.PlayersMax; p++ {
		data[fmt.Sprintf("%d", p)] = make(map[string]preflop.Row, len(classes))
	}

	total := len(classes) * (cfg.PlayersMax - cfg.PlayersMin + 1)
	done := 0

	for _, class := range classes {
		hero, err := handclass.ClassToCards(class)
		if err != nil {
			logger.Warn("skipping invalid hand class", "class", class, "error", err)
			continue
		}
		percentile := handclass.Percentile(class)

		for p := cfg.PlayersMin; p <= cfg.PlayersMax; p++ {
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			default:
			}

			var row preflop.Row
			if cfg.Mode == ModeExact {
				row = exactHeadsUp(hero)
			} else {
				result, err := equity.Simulate(ctx, equity.Config{
					Hero:    hero,
					Players: p,
					Trials:  cfg.Trials,
					Clock:   clock,
				})
				if err != nil {
					return nil, err
				}
				row = preflop.Row{
					Win:  round6(result.Win),
					Tie:  round6(result.Tie),
					Lose: round6(result.Lose),
				}
			}
			row.Percentile = percentile

			data[fmt.Sprintf("%d", p)][class] = row
			done++
			if done%progressCadence == 0 {
				logger.Info("progress", "done", done, "total", total, "class", class, "players", p)
			}
		}
	}

	elapsed := clock.Now().Sub(start)
	logger.Info("table build complete", "elapsed", elapsed.Round(time.Millisecond).String())

	return &preflop.Table{
		Version:       "v1",
		GeneratedAt:   clock.Now().UTC().Format(time.RFC3339),
		Method:        string(cfg.Mode),
		TrialsPerHand: cfg.Trials,
		PlayersMin:    cfg.PlayersMin,
		PlayersMax:    cfg.PlayersMax,
		Data:          data,
	}, nil
}

func round6(x float64) float64 {
	return math.Round(x*1e6) / 1e6
}

// exactHeadsUp computes the exact (no-variance) heads-up row for hero by
// enumerating every C(50,2) opponent holding and, for each, every C(48,5)
// board, scoring both hands with the same allocation-free evaluator the
// Monte Carlo path uses.
func exactHeadsUp(hero [2]deck.Card) preflop.Row {
	known := []deck.Card{hero[0], hero[1]}
	remaining50 := deck.BuildDeck(known)

	var win, tie, lose uint64

	var remaining48 [48]deck.Card
	for i := 0; i < len(remaining50); i++ {
		for j := i + 1; j < len(remaining50); j++ {
			opp := [2]deck.Card{remaining50[i], remaining50[j]}

			k := 0
			for p, c := range remaining50 {
				if p == i || p == j {
					continue
				}
				remaining48[k] = c
				k++
			}

			forEachCombination5(48, func(idx [5]int) {
				var heroSeven, oppSeven [7]deck.Card
				heroSeven[0], heroSeven[1] = hero[0], hero[1]
				oppSeven[0], oppSeven[1] = opp[0], opp[1]
				for b := 0; b < 5; b++ {
					card := remaining48[idx[b]]
					heroSeven[2+b] = card
					oppSeven[2+b] = card
				}

				heroScore := evaluator.Evaluate7(heroSeven)
				oppScore := evaluator.Evaluate7(oppSeven)
				switch {
				case heroScore < oppScore:
					win++
				case heroScore > oppScore:
					lose++
				default:
					tie++
				}
			})
		}
	}

	total := float64(win + tie + lose)
	return preflop.Row{
		Win:  round6(float64(win) / total),
		Tie:  round6(float64(tie) / total),
		Lose: round6(float64(lose) / total),
	}
}

// forEachCombination5 calls visit once for every 5-element combination of
// indices in [0,n), in lexicographic order, reusing a single fixed-size
// array — no allocation per combination.
func forEachCombination5(n int, visit func(idx [5]int)) {
	if n < 5 {
		return
	}
	var c [5]int
	c[0], c[1], c[2], c[3], c[4] = 0, 1, 2, 3, 4
	for {
		visit(c)
		i := 4
		for i >= 0 && c[i] == n-5+i {
			i--
		}
		if i < 0 {
			return
		}
		c[i]++
		for j := i + 1; j < 5; j++ {
			c[j] = c[j-1] + 1
		}
	}
}
