// Command equity-cli is a thin command-line harness over the equity
// engine: it parses a hero hand and optional board, consults the preflop
// table when applicable, otherwise runs a Monte Carlo simulation, and
// prints the result as a styled table.
package main

import (
	"context"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/alecthomas/kong"
	"github.com/charmbracelet/lipgloss"

	"github.com/lox/holdem-equity/internal/deck"
	"github.com/lox/holdem-equity/internal/equity"
	"github.com/lox/holdem-equity/internal/handclass"
	"github.com/lox/holdem-equity/internal/preflop"
)

type CLI struct {
	Hero    string `arg:"" help:"Hero's two cards, e.g. 'AsKd'"`
	Board   string `short:"b" help:"Community board cards (0, 3, 4, or 5 cards), e.g. 'Td7s8h'"`
	Players int    `short:"n" help:"Total players at the table, including hero" default:"2"`
	Preset  string `short:"p" help:"Trial-count preset: fast, standard, or high" default:"standard"`
	Seed    *int64 `help:"Seed for reproducible results (omit for a nondeterministic run)"`
	Table   string `short:"t" help:"Path to a preflop-equity table JSON file (optional)"`
}

var presetTrials = map[string]uint64{
	"fast":     50_000,
	"standard": 200_000,
	"high":     1_000_000,
}

func trialsForPreset(preset string) uint64 {
	if n, ok := presetTrials[preset]; ok {
		return n
	}
	return presetTrials["standard"]
}

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("15"))
	handStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("14"))
	winStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	tieStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("11"))
	noteStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Italic(true)
	methodStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("12"))
)

func main() {
	var cli CLI
	kctx := kong.Parse(&cli)

	hero, err := deck.ParseCards(cli.Hero)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error parsing hero: %v\n", err)
		kctx.Exit(1)
	}
	if len(hero) != 2 {
		fmt.Fprintf(os.Stderr, "error: hero must be exactly 2 cards\n")
		kctx.Exit(1)
	}
	var heroArr [2]deck.Card
	copy(heroArr[:], hero)

	var board []deck.Card
	if cli.Board != "" {
		board, err = deck.ParseCards(cli.Board)
		if err != nil {
			fmt.Fprintf(os.Stderr, "error parsing board: %v\n", err)
			kctx.Exit(1)
		}
	}

	if err := deck.ValidateInput(hero, board); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		kctx.Exit(1)
	}
	if cli.Players < 2 || cli.Players > 10 {
		fmt.Fprintf(os.Stderr, "error: invalid_players: players must be between 2 and 10, got %d\n", cli.Players)
		kctx.Exit(1)
	}

	var table *preflop.Table
	if cli.Table != "" {
		table, err = preflop.Load(cli.Table)
		if err != nil {
			fmt.Fprintf(os.Stderr, "warning: could not load preflop table %s: %v\n", cli.Table, err)
			table = nil
		}
	}

	method := "monte_carlo"
	var note string
	var row preflop.Row
	var elapsedMs int64
	var trials uint64

	if len(board) == 0 && table != nil {
		class, err := handclass.ToClass(heroArr)
		if err == nil {
			if hit, ok := table.Get(cli.Players, class); ok {
				row = hit
				method = "preflop_table"
				trials = table.TrialsPerHand
				if cli.Preset != "standard" || cli.Seed != nil {
					note = "preset and seed are ignored when using the preflop table"
				}
			}
		}
	}

	if method != "preflop_table" {
		trials = trialsForPreset(cli.Preset)
		result, err := equity.Simulate(context.Background(), equity.Config{
			Hero:    heroArr,
			Board:   board,
			Players: cli.Players,
			Trials:  trials,
			Seed:    cli.Seed,
		})
		if err != nil {
			fmt.Fprintf(os.Stderr, "error running simulation: %v\n", err)
			kctx.Exit(1)
		}
		row = preflop.Row{Win: result.Win, Tie: result.Tie, Lose: result.Lose}
		elapsedMs = result.ElapsedMs
	}

	displayResult(heroArr, board, cli.Players, row, method, trials, elapsedMs, note)
}

func displayResult(hero [2]deck.Card, board []deck.Card, players int, row preflop.Row, method string, trials uint64, elapsedMs int64, note string) {
	if len(board) > 0 {
		fmt.Printf("%s\n%s\n\n", headerStyle.Render("board"), formatCards(board))
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "%s\t%s\t%s\t%s\n",
		headerStyle.Render("hand"),
		headerStyle.Render("win"),
		headerStyle.Render("tie"),
		headerStyle.Render("lose"))
	fmt.Fprintf(w, "%s\t%s\t%s\t%s\n",
		handStyle.Render(formatCards(hero[:])),
		winStyle.Render(fmt.Sprintf("%.2f%%", row.Win*100)),
		tieStyle.Render(fmt.Sprintf("%.2f%%", row.Tie*100)),
		fmt.Sprintf("%.2f%%", row.Lose*100))
	w.Flush()

	fmt.Printf("\n%s players=%d trials=%d elapsed=%dms\n", methodStyle.Render(method), players, trials, elapsedMs)
	if note != "" {
		fmt.Printf("%s\n", noteStyle.Render(note))
	}
}

func formatCards(cards []deck.Card) string {
	s := ""
	for i, c := range cards {
		if i > 0 {
			s += " "
		}
		s += c.String()
	}
	return s
}
