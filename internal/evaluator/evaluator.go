// Package evaluator implements an allocation-free best-of-5-from-7 Texas
// Hold'em hand scorer.
//
// The core algorithm classifies rank/suit counts from fixed-size arrays,
// walks the strongest-to-weakest category ladder, and packs the result
// into a single comparable integer. No slices are allocated on the
// evaluation hot path; every scratch buffer is a fixed-size array sized to
// the problem (5 or 7 cards).
//
// # Encoding scheme
//
// Results are packed as (category << 24) | kicker, where category is in
// [0,8] (0 = straight/royal flush, 8 = high card; lower is stronger) and
// kicker is the five evaluated ranks, packed as five 4-bit nibbles
// occupying bits 0-19, most significant card first. Lower packed values
// always compare as stronger hands: category dominates the comparison,
// and within a category the nibble packing preserves strength ordering.
//
// The card model's rank bijection (card.go) puts Ace at 12 and Two at 0,
// so the raw rank value is *backwards* from what this "lower is stronger"
// score needs. eval5 therefore works internally in "strength" units,
// strength = 12 - rank, so Ace (the strongest card) is 0 and Two (the
// weakest) is 12 — consistently across sorting, grouping, straight
// detection, and the final kicker packing.
package evaluator

import "github.com/lox/holdem-equity/internal/deck"

// Category codes, strongest to weakest. Lower is stronger.
const (
	CategoryStraightFlush = 0
	CategoryFourOfAKind   = 1
	CategoryFullHouse     = 2
	CategoryFlush         = 3
	CategoryStraight      = 4
	CategoryThreeOfAKind  = 5
	CategoryTwoPair       = 6
	CategoryOnePair       = 7
	CategoryHighCard      = 8
)

var categoryNames = [...]string{
	CategoryStraightFlush: "Straight Flush",
	CategoryFourOfAKind:   "Four of a Kind",
	CategoryFullHouse:     "Full House",
	CategoryFlush:         "Flush",
	CategoryStraight:      "Straight",
	CategoryThreeOfAKind:  "Three of a Kind",
	CategoryTwoPair:       "Two Pair",
	CategoryOnePair:       "One Pair",
	CategoryHighCard:      "High Card",
}

// HandRank is a packed 5-card hand score. Lower values are stronger hands;
// HandRank values are directly comparable with <, >, ==.
type HandRank uint32

// Category returns the hand's category code (CategoryStraightFlush..CategoryHighCard).
func (h HandRank) Category() int {
	return int(h >> 24)
}

// String returns the category's readable name, e.g. "Full House".
func (h HandRank) String() string {
	c := h.Category()
	if c < 0 || c >= len(categoryNames) {
		return "Unknown"
	}
	return categoryNames[c]
}

// wheelMask is the strength bitmap for the A-2-3-4-5 straight (the
// "wheel"), where ace plays low: strengths {0 (ace), 9 (five), 10 (four),
// 11 (three), 12 (two)}.
const wheelMask = 1<<0 | 1<<9 | 1<<10 | 1<<11 | 1<<12

// eval5 scores exactly 5 cards (as deck indices) and returns the packed
// HandRank. No allocation: all scratch state lives in fixed-size arrays.
func eval5(idx [5]int) HandRank {
	var strength [5]int
	var suits [5]int
	for i, ci := range idx {
		strength[i] = 12 - ci%13
		suits[i] = ci / 13
	}

	// Ascending sort on strength puts the strongest card first.
	for i := 1; i < 5; i++ {
		v := strength[i]
		j := i - 1
		for j >= 0 && strength[j] > v {
			strength[j+1] = strength[j]
			j--
		}
		strength[j+1] = v
	}

	isFlush := suits[0] == suits[1] && suits[1] == suits[2] && suits[2] == suits[3] && suits[3] == suits[4]

	// Run-length encode the sorted strengths into (strength,count) groups,
	// then sort groups by count desc, then strength asc (strongest rank
	// first) — this becomes the order the final kicker is packed in.
	var groupStrength, groupCount [5]int
	groups := 0
	v, count := strength[0], 1
	for i := 1; i < 5; i++ {
		if strength[i] == v {
			count++
		} else {
			groupStrength[groups], groupCount[groups] = v, count
			groups++
			v, count = strength[i], 1
		}
	}
	groupStrength[groups], groupCount[groups] = v, count
	groups++
	for i := 1; i < groups; i++ {
		gs, gc := groupStrength[i], groupCount[i]
		j := i - 1
		for j >= 0 && (groupCount[j] < gc || (groupCount[j] == gc && groupStrength[j] > gs)) {
			groupStrength[j+1], groupCount[j+1] = groupStrength[j], groupCount[j]
			j--
		}
		groupStrength[j+1], groupCount[j+1] = gs, gc
	}

	var rankBits uint32
	for _, s := range strength {
		rankBits |= 1 << uint(s)
	}
	isStraight := rankBits == wheelMask ||
		(strength[1] == strength[0]+1 && strength[2] == strength[0]+2 &&
			strength[3] == strength[0]+3 && strength[4] == strength[0]+4)

	var category int
	switch {
	case isFlush && isStraight:
		category = CategoryStraightFlush
	case groupCount[0] == 4:
		category = CategoryFourOfAKind
	case groups >= 2 && groupCount[0] == 3 && groupCount[1] == 2:
		category = CategoryFullHouse
	case isFlush:
		category = CategoryFlush
	case isStraight:
		category = CategoryStraight
	case groupCount[0] == 3:
		category = CategoryThreeOfAKind
	case groups >= 2 && groupCount[0] == 2 && groupCount[1] == 2:
		category = CategoryTwoPair
	case groupCount[0] == 2:
		category = CategoryOnePair
	default:
		category = CategoryHighCard
	}

	// Expand the count-ordered groups back into a flat 5-card sequence,
	// most significant group first, and pack that as the kicker — this is
	// what makes e.g. four 3s outrank four 2s regardless of kicker.
	var kickerSeq [5]int
	k := 0
	for i := 0; i < groups; i++ {
		for c := 0; c < groupCount[i]; c++ {
			kickerSeq[k] = groupStrength[i]
			k++
		}
	}
	// The wheel plays its ace low: pack it as 5,4,3,2,A so it ranks below
	// every other straight (and straight flush).
	if rankBits == wheelMask {
		kickerSeq = [5]int{9, 10, 11, 12, 0}
	}

	var kicker uint32
	for i, s := range kickerSeq {
		kicker |= uint32(s) << uint(4*(4-i))
	}

	return HandRank(uint32(category)<<24 | kicker)
}

// Evaluate7 returns the best (lowest) HandRank achievable from any 5-card
// subset of the given 7 cards. It evaluates all 21 subsets by excluding
// each pair of cards in turn; no heap allocation occurs.
func Evaluate7(cards [7]deck.Card) HandRank {
	var idx [7]int
	for i, c := range cards {
		idx[i] = c.Index()
	}

	best := HandRank(^uint32(0))
	var sub [5]int
	for i := 0; i < 7; i++ {
		for j := i + 1; j < 7; j++ {
			k := 0
			for p := 0; p < 7; p++ {
				if p == i || p == j {
					continue
				}
				sub[k] = idx[p]
				k++
			}
			if score := eval5(sub); score < best {
				best = score
			}
		}
	}
	return best
}

// Evaluate7Slice is a convenience wrapper over Evaluate7 for callers that
// assemble a hand into a slice rather than a fixed array. It panics if
// cards does not have exactly 7 elements; callers on the hot path should
// prefer Evaluate7 directly to avoid the bounds-check and copy.
func Evaluate7Slice(cards []deck.Card) HandRank {
	if len(cards) != 7 {
		panic("evaluator: Evaluate7Slice requires exactly 7 cards")
	}
	var arr [7]deck.Card
	copy(arr[:], cards)
	return Evaluate7(arr)
}
