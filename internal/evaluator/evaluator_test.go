package evaluator

import (
	"testing"

	"github.com/lox/holdem-equity/internal/deck"
)

func hand7(t *testing.T, s string) [7]deck.Card {
	t.Helper()
	cards, err := deck.ParseCards(s)
	if err != nil {
		t.Fatalf("ParseCards(%q): %v", s, err)
	}
	if len(cards) != 7 {
		t.Fatalf("ParseCards(%q) returned %d cards, want 7", s, len(cards))
	}
	var out [7]deck.Card
	copy(out[:], cards)
	return out
}

func TestEvaluate7Categories(t *testing.T) {
	tests := []struct {
		name     string
		cards    string
		wantCat  int
	}{
		{"royal flush", "AsKsQsJsTs2c3d", CategoryStraightFlush},
		{"straight flush", "9s8s7s6s5s2c3d", CategoryStraightFlush},
		{"wheel straight flush", "5s4s3s2sAs9c2d", CategoryStraightFlush},
		{"four of a kind", "AsAhAdAcKs2c3d", CategoryFourOfAKind},
		{"full house", "AsAhAdKsKh2c3d", CategoryFullHouse},
		{"flush", "As2s5s9sKs2c3d", CategoryFlush},
		{"straight", "AsKdQhJcTs2c3d", CategoryStraight},
		{"wheel straight", "AsKd5h4c3sTd2c", CategoryStraight},
		{"three of a kind", "AsAhAd9c3sTd2c", CategoryThreeOfAKind},
		{"two pair", "AsAhKdKc3sTd2c", CategoryTwoPair},
		{"one pair", "AsAhKdQc3sTd2c", CategoryOnePair},
		{"high card", "As Kd Qc 9h 3s Td 2c", CategoryHighCard},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cards, err := deck.ParseCards(tt.cards)
			if err != nil {
				t.Fatalf("ParseCards(%q): %v", tt.cards, err)
			}
			var h [7]deck.Card
			copy(h[:], cards)
			rank := Evaluate7(h)
			if rank.Category() != tt.wantCat {
				t.Errorf("Evaluate7(%q).Category() = %d (%s), want %d", tt.cards, rank.Category(), rank, tt.wantCat)
			}
		})
	}
}

func TestEvaluate7RoyalFlushBeatsOffsuitBroadway(t *testing.T) {
	royal := hand7(t, "AsKsQsJsTs2c3d")
	broadway := hand7(t, "AhKdQcJhTd2s3c")
	if Evaluate7(royal) >= Evaluate7(broadway) {
		t.Errorf("royal flush score %v should be less than offsuit broadway straight score %v", Evaluate7(royal), Evaluate7(broadway))
	}
}

func TestEvaluate7CategoryOrdering(t *testing.T) {
	// Each hand below is strictly weaker than the previous; scores must be
	// strictly increasing (weaker = higher packed value).
	hands := []string{
		"AsKsQsJsTs2c3d", // straight flush
		"AsAhAdAcKs2c3d", // four of a kind
		"AsAhAdKsKh2c3d", // full house
		"As2s5s9sKs2c3d", // flush
		"AsKdQhJcTs2c3d", // straight
		"AsAhAd9c3sTd2c", // three of a kind
		"AsAhKdKc3sTd2c", // two pair
		"AsAhKdQc3sTd2c", // one pair
		"AsKdQc9h3sTd2c", // high card
	}
	var prev HandRank
	for i, h := range hands {
		rank := Evaluate7(hand7(t, h))
		if i > 0 && rank <= prev {
			t.Errorf("hand %d (%q) score %v not strictly weaker than previous %v", i, h, rank, prev)
		}
		prev = rank
	}
}

func TestEvaluate7HigherKickerWins(t *testing.T) {
	// kingHigh deliberately avoids 9h/Td/Jc/Qd/Ks all landing in one hand,
	// which would form a 9-K straight and beat aceHigh on category alone
	// rather than on the top-card kicker this test targets.
	aceHigh := hand7(t, "AsKdQc9h3sTd2c")
	kingHigh := hand7(t, "KsQd8c9h3sTd2c")
	if Evaluate7(aceHigh) >= Evaluate7(kingHigh) {
		t.Errorf("ace-high score %v should beat king-high score %v", Evaluate7(aceHigh), Evaluate7(kingHigh))
	}
}

func TestEvaluate7Deterministic(t *testing.T) {
	h := hand7(t, "AsKsQsJsTs2c3d")
	first := Evaluate7(h)
	for i := 0; i < 100; i++ {
		if got := Evaluate7(h); got != first {
			t.Fatalf("Evaluate7 not deterministic: got %v, want %v", got, first)
		}
	}
}

func TestHandRankString(t *testing.T) {
	if got := HandRank(CategoryFullHouse << 24).String(); got != "Full House" {
		t.Errorf("String() = %q, want %q", got, "Full House")
	}
}

func BenchmarkEvaluate7(b *testing.B) {
	cards, err := deck.ParseCards("AsKsQsJsTs2c3d")
	if err != nil {
		b.Fatal(err)
	}
	var h [7]deck.Card
	copy(h[:], cards)
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		Evaluate7(h)
	}
}
