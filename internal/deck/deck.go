package deck

import "github.com/lox/holdem-equity/internal/randutil"

// BuildDeck returns the 52-|known| remaining card indices, in stable
// ascending order. The caller mutates the returned slice via DrawIndices;
// to run several independent draws against the same known set, snapshot
// (copy) the template deck before each trial rather than rebuilding it.
func BuildDeck(known []Card) []Card {
	excluded := make(map[Card]bool, len(known))
	for _, c := range known {
		excluded[c] = true
	}
	out := make([]Card, 0, 52-len(known))
	for i := 0; i < 52; i++ {
		c := Card(i)
		if !excluded[c] {
			out = append(out, c)
		}
	}
	return out
}

// DrawIndices performs a partial Fisher–Yates shuffle: it draws n cards
// from deck without replacement, writing them to out, and leaves deck
// mutated (the first n entries hold the drawn cards in draw order, the
// remainder is an arbitrary permutation of what's left). deck must have at
// least n elements and out must have capacity for n.
//
// rng takes the concrete *randutil.Stream, not an interface, so the
// per-draw Next() call on this hot path is direct and inlinable rather
// than a dynamic dispatch through an itable.
func DrawIndices(deckCards []Card, n int, rng *randutil.Stream, out []Card) {
	for i := 0; i < n; i++ {
		j := i + int(rng.Next()*float64(len(deckCards)-i))
		deckCards[i], deckCards[j] = deckCards[j], deckCards[i]
		out[i] = deckCards[i]
	}
}
