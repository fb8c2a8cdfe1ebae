// Package preflop loads and serves the persisted preflop-equity lookup
// table: a versioned JSON document mapping (player count, hand class) to a
// precomputed win/tie/lose row, generated offline by internal/tablegen.
package preflop

import (
	"encoding/json"
	"os"
	"strconv"

	"github.com/lox/holdem-equity/internal/fileutil"
)

// Row is one precomputed equity result. Win, Tie, and Lose are fractions
// that sum to (approximately) 1.0 — table rows are rounded to six decimal
// places by the builder and are never renormalized after rounding.
type Row struct {
	Win  float64 `json:"win"`
	Tie  float64 `json:"tie"`
	Lose float64 `json:"lose"`

	// Percentile is the hand class's static starting-hand strength ranking
	// (handclass.Percentile), carried along purely to annotate the
	// generated document for human consumption — never consulted by Get.
	Percentile float64 `json:"percentile,omitempty"`
}

// Table is an immutable, shared-by-reference preflop document. Once
// loaded, a *Table is safe for concurrent reads from any number of
// goroutines: nothing in this package mutates a Table after Load returns
// it.
type Table struct {
	Version       string `json:"version"`
	GeneratedAt   string `json:"generatedAt,omitempty"`
	Method        string `json:"method"`
	TrialsPerHand uint64 `json:"trialsPerHand"`
	PlayersMin    int    `json:"playersMin,omitempty"`
	PlayersMax    int    `json:"playersMax,omitempty"`

	// Data is keyed first by player count (as a decimal string, e.g. "6"),
	// then by hand class (e.g. "AKs").
	Data map[string]map[string]Row `json:"data"`
}

// Load reads and parses a preflop table document from path. It returns an
// error on any read or parse failure; callers that get an error should
// simply not install a table — every lookup then behaves exactly like a
// miss, which is indistinguishable from "no table was ever loaded".
func Load(path string) (*Table, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var t Table
	if err := json.Unmarshal(raw, &t); err != nil {
		return nil, err
	}
	return &t, nil
}

// Get looks up the row for the given player count and hand class. The
// second return value is false on any miss: unknown player count, unknown
// hand class, or (via a nil receiver) no table loaded at all.
func (t *Table) Get(players int, handClass string) (Row, bool) {
	if t == nil {
		return Row{}, false
	}
	byClass, ok := t.Data[strconv.Itoa(players)]
	if !ok {
		return Row{}, false
	}
	row, ok := byClass[handClass]
	return row, ok
}

// Save writes t as a pretty-printed JSON document to path. The write is
// atomic (via fileutil.WriteFileAtomic): a reader racing the write always
// sees either the previous complete document or the new one, never a
// partial file.
func Save(t *Table, path string) error {
	raw, err := json.MarshalIndent(t, "", "  ")
	if err != nil {
		return err
	}
	return fileutil.WriteFileAtomic(path, raw, 0o644)
}
