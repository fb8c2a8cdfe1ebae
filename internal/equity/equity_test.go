package equity

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lox/holdem-equity/internal/deck"
)

func heroCards(t *testing.T, s string) [2]deck.Card {
	t.Helper()
	cards, err := deck.ParseCards(s)
	require.NoError(t, err)
	require.Len(t, cards, 2)
	var out [2]deck.Card
	copy(out[:], cards)
	return out
}

func TestSimulateFractionsSumToOne(t *testing.T) {
	seed := int64(42)
	result, err := Simulate(context.Background(), Config{
		Hero:    heroCards(t, "AsAh"),
		Players: 2,
		Trials:  20000,
		Seed:    &seed,
	})
	require.NoError(t, err)
	assert.InDelta(t, 1.0, result.Win+result.Tie+result.Lose, 1e-9)
	assert.Equal(t, uint64(20000), result.Trials)
}

func TestSimulatePocketAcesHeadsUpStrongFavorite(t *testing.T) {
	seed := int64(42)
	result, err := Simulate(context.Background(), Config{
		Hero:    heroCards(t, "AsAh"),
		Players: 2,
		Trials:  50000,
		Seed:    &seed,
	})
	require.NoError(t, err)
	assert.Greater(t, result.Win, 0.80)
}

func TestSimulateDeterministicWithSameSeed(t *testing.T) {
	seed := int64(7)
	cfg := Config{
		Hero:    heroCards(t, "KsQs"),
		Players: 3,
		Trials:  10000,
		Seed:    &seed,
	}
	a, err := Simulate(context.Background(), cfg)
	require.NoError(t, err)
	b, err := Simulate(context.Background(), cfg)
	require.NoError(t, err)
	assert.Equal(t, a.Win, b.Win)
	assert.Equal(t, a.Tie, b.Tie)
	assert.Equal(t, a.Lose, b.Lose)
}

func TestSimulateCompleteBoardIsDeterministicOutcome(t *testing.T) {
	// Hero has the nuts on a fully dealt board against a single opponent:
	// outcome is certain regardless of trial count or seed.
	seed := int64(1)
	board, err := deck.ParseCards("KsQsJsTs2c")
	require.NoError(t, err)
	result, err := Simulate(context.Background(), Config{
		Hero:    heroCards(t, "AsKd"), // royal flush on this board
		Board:   board,
		Players: 2,
		Trials:  500,
		Seed:    &seed,
	})
	require.NoError(t, err)
	assert.Equal(t, 1.0, result.Win)
	assert.Equal(t, 0.0, result.Tie)
	assert.Equal(t, 0.0, result.Lose)
}

func TestSimulateRespectsContextCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	seed := int64(1)
	_, err := Simulate(ctx, Config{
		Hero:    heroCards(t, "AsAh"),
		Players: 2,
		Trials:  10_000_000,
		Seed:    &seed,
	})
	assert.Error(t, err)
}

func TestSimulateMultiwayPlayersReducesEquity(t *testing.T) {
	seed := int64(42)
	headsUp, err := Simulate(context.Background(), Config{
		Hero:    heroCards(t, "7h2c"),
		Players: 2,
		Trials:  20000,
		Seed:    &seed,
	})
	require.NoError(t, err)
	nineWay, err := Simulate(context.Background(), Config{
		Hero:    heroCards(t, "7h2c"),
		Players: 9,
		Trials:  20000,
		Seed:    &seed,
	})
	require.NoError(t, err)
	assert.Greater(t, headsUp.Win, nineWay.Win)
}
