// Command preflop-gen is the offline preflop-equity table builder's CLI
// entry point: it drives internal/tablegen and writes the resulting
// document to disk.
package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/alecthomas/kong"
	"github.com/charmbracelet/log"

	"github.com/lox/holdem-equity/internal/preflop"
	"github.com/lox/holdem-equity/internal/tablegen"
)

type CLI struct {
	Out        string `help:"Output path for the generated table" default:"assets/data/preflop_table.v1.json"`
	Trials     uint64 `help:"Monte Carlo trials per hand class (ignored in exact mode)" default:"2000000"`
	Mode       string `help:"Table generation mode: monte_carlo or exact" default:"monte_carlo" enum:"monte_carlo,exact"`
	PlayersMin int    `help:"Minimum player count to generate" default:"2"`
	PlayersMax int    `help:"Maximum player count to generate" default:"10"`
}

func main() {
	var cli CLI
	kctx := kong.Parse(&cli)

	logger := log.NewWithOptions(os.Stderr, log.Options{ReportTimestamp: true})

	start := time.Now()
	table, err := tablegen.Build(context.Background(), tablegen.Config{
		Trials:     cli.Trials,
		Mode:       tablegen.Mode(cli.Mode),
		PlayersMin: cli.PlayersMin,
		PlayersMax: cli.PlayersMax,
		Logger:     logger,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		kctx.Exit(1)
	}

	if dir := filepath.Dir(cli.Out); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			fmt.Fprintf(os.Stderr, "error creating output directory: %v\n", err)
			kctx.Exit(1)
		}
	}

	if err := preflop.Save(table, cli.Out); err != nil {
		fmt.Fprintf(os.Stderr, "error writing table: %v\n", err)
		kctx.Exit(1)
	}

	fmt.Printf("Done. Wrote %s (%.1fs)\n", cli.Out, time.Since(start).Seconds())
}
