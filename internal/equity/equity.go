// Package equity implements the parallel Monte Carlo hand-equity simulator:
// given a hero holding, a partial or complete board, and an opponent count,
// it estimates win/tie/lose fractions by repeatedly drawing the unseen
// cards and scoring the resulting hands.
//
// Work is split across a fixed worker pool via golang.org/x/sync/errgroup.
// Each worker owns its own deck snapshot, scratch draw
// buffer, board buffer, and random stream — nothing is shared or locked on
// the hot path. Workers accumulate local win/tie/lose counts and fold them
// into shared atomic counters once, at the end of their chunk.
package equity

import (
	"context"
	"runtime"

	"github.com/coder/quartz"
	"golang.org/x/sync/errgroup"

	"github.com/lox/holdem-equity/internal/deck"
	"github.com/lox/holdem-equity/internal/evaluator"
	"github.com/lox/holdem-equity/internal/randutil"
)

// Config describes one simulation request.
type Config struct {
	Hero    [2]deck.Card
	Board   []deck.Card // 0, 3, 4, or 5 cards
	Players int         // total players at the table, including hero; >= 2
	Trials  uint64
	Seed    *int64 // nil selects a nondeterministic stream per worker

	// Clock supplies the elapsed-time measurement. Nil selects the real
	// wall clock (quartz.NewReal()); tests inject quartz.NewMock() for a
	// deterministic Result.ElapsedMs.
	Clock quartz.Clock
}

// Result is the outcome of a simulation: win/tie/lose are fractions of
// Trials (they sum to 1.0), ElapsedMs is wall-clock milliseconds spent.
type Result struct {
	Win       float64
	Tie       float64
	Lose      float64
	Trials    uint64
	ElapsedMs int64
}

// Trial outcome codes returned by runOneTrial.
const (
	outcomeWin = iota
	outcomeTie
	outcomeLose
)

// Simulate runs cfg.Trials Monte Carlo trials split across a worker pool
// and returns the aggregate win/tie/lose fractions. It returns an error
// only if ctx is canceled before completion.
func Simulate(ctx context.Context, cfg Config) (Result, error) {
	clock := cfg.Clock
	if clock == nil {
		clock = quartz.NewReal()
	}
	start := clock.Now()

	numOpponents := cfg.Players - 1
	needBoard := 5 - len(cfg.Board)

	known := make([]deck.Card, 0, 2+len(cfg.Board))
	known = append(known, cfg.Hero[0], cfg.Hero[1])
	known = append(known, cfg.Board...)
	deckTemplate := deck.BuildDeck(known)

	numWorkers := runtime.GOMAXPROCS(0)
	if numWorkers < 1 {
		numWorkers = 1
	}
	if uint64(numWorkers) > cfg.Trials && cfg.Trials > 0 {
		numWorkers = int(cfg.Trials)
	}
	chunk := int((cfg.Trials + uint64(numWorkers) - 1) / uint64(numWorkers))

	var winCount, tieCount, loseCount atomicCounter

	g, gctx := errgroup.WithContext(ctx)
	for w := 0; w < numWorkers; w++ {
		workerIdx := w
		startTrial := workerIdx * chunk
		endTrial := startTrial + chunk
		if endTrial > int(cfg.Trials) {
			endTrial = int(cfg.Trials)
		}
		if startTrial >= endTrial {
			continue
		}

		g.Go(func() error {
			var rng randutil.Stream
			if cfg.Seed != nil {
				rng = randutil.Seeded(*cfg.Seed, workerIdx)
			} else {
				rng = randutil.NonDeterministic()
			}

			nDraw := numOpponents*2 + needBoard
			scratch := make([]deck.Card, nDraw)
			allBoard := make([]deck.Card, 5)
			copy(allBoard, cfg.Board)

			deckCopy := make([]deck.Card, len(deckTemplate))

			var lwin, ltie, llose uint64
			for i := startTrial; i < endTrial; i++ {
				if i%4096 == 0 {
					select {
					case <-gctx.Done():
						return gctx.Err()
					default:
					}
				}

				copy(deckCopy, deckTemplate)
				outcome := runOneTrial(cfg.Hero, len(cfg.Board), deckCopy, numOpponents, needBoard, &rng, scratch, allBoard)
				switch outcome {
				case outcomeWin:
					lwin++
				case outcomeTie:
					ltie++
				default:
					llose++
				}
			}

			winCount.add(lwin)
			tieCount.add(ltie)
			loseCount.add(llose)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return Result{}, err
	}

	elapsed := clock.Now().Sub(start)
	trials := float64(cfg.Trials)
	return Result{
		Win:       float64(winCount.load()) / trials,
		Tie:       float64(tieCount.load()) / trials,
		Lose:      float64(loseCount.load()) / trials,
		Trials:    cfg.Trials,
		ElapsedMs: elapsed.Milliseconds(),
	}, nil
}

// runOneTrial draws the cards needed to complete one trial, scores hero
// against every opponent, and classifies the outcome. deckCards is mutated
// by the draw (partial Fisher–Yates); scratch and allBoard are reused
// buffers owned by the calling worker.
func runOneTrial(hero [2]deck.Card, boardLen int, deckCards []deck.Card, numOpponents, needBoard int, rng *randutil.Stream, scratch, allBoard []deck.Card) int {
	nDraw := numOpponents*2 + needBoard
	deck.DrawIndices(deckCards, nDraw, rng, scratch[:nDraw])

	offset := 0
	for i := 0; i < needBoard; i++ {
		allBoard[boardLen+i] = scratch[offset+i]
	}
	offset += needBoard

	var heroSeven [7]deck.Card
	heroSeven[0], heroSeven[1] = hero[0], hero[1]
	copy(heroSeven[2:], allBoard)
	heroScore := evaluator.Evaluate7(heroSeven)

	var bestOpp evaluator.HandRank
	for i := 0; i < numOpponents; i++ {
		opp0, opp1 := scratch[offset], scratch[offset+1]
		offset += 2

		var oppSeven [7]deck.Card
		oppSeven[0], oppSeven[1] = opp0, opp1
		copy(oppSeven[2:], allBoard)
		s := evaluator.Evaluate7(oppSeven)

		if s < bestOpp || bestOpp == 0 {
			bestOpp = s
		}
	}

	switch {
	case heroScore < bestOpp:
		return outcomeWin
	case heroScore > bestOpp:
		return outcomeLose
	default:
		return outcomeTie
	}
}
