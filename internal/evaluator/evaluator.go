// Package evaluator selects the best five-card poker hand from five or more
// cards, with full tie-break resolution via ordered kickers.
package evaluator

import (
	"fmt"
	"sort"

	"github.com/maverickhq/maverick/internal/deck"
)

// Category enumerates poker hand categories from weakest to strongest.
// Any higher category beats any lower category regardless of kickers.
type Category int

const (
	HighCard Category = iota + 1
	OnePair
	TwoPair
	ThreeOfAKind
	Straight
	Flush
	FullHouse
	FourOfAKind
	StraightFlush
	RoyalFlush
)

// String returns a human-readable category name.
func (c Category) String() string {
	switch c {
	case HighCard:
		return "High Card"
	case OnePair:
		return "One Pair"
	case TwoPair:
		return "Two Pair"
	case ThreeOfAKind:
		return "Three of a Kind"
	case Straight:
		return "Straight"
	case Flush:
		return "Flush"
	case FullHouse:
		return "Full House"
	case FourOfAKind:
		return "Four of a Kind"
	case StraightFlush:
		return "Straight Flush"
	case RoyalFlush:
		return "Royal Flush"
	default:
		return "Unknown"
	}
}

// EvaluatedHand is the result of ranking a card set: the best category and
// up to five kicker ranks in most-significant-first order. Kickers encode
// the full tie-break precedence within a category; suits never break ties.
type EvaluatedHand struct {
	Category Category
	Kickers  []deck.Rank
}

// Compare returns 1 if e is stronger than other, -1 if weaker, 0 if equal.
// Category strictly dominates kickers.
func (e EvaluatedHand) Compare(other EvaluatedHand) int {
	if e.Category != other.Category {
		if e.Category > other.Category {
			return 1
		}
		return -1
	}
	for i := 0; i < len(e.Kickers) && i < len(other.Kickers); i++ {
		if e.Kickers[i] != other.Kickers[i] {
			if e.Kickers[i] > other.Kickers[i] {
				return 1
			}
			return -1
		}
	}
	return 0
}

// String returns a readable description, e.g. "Full House (A A A K K)".
func (e EvaluatedHand) String() string {
	s := e.Category.String() + " ("
	for i, k := range e.Kickers {
		if i > 0 {
			s += " "
		}
		s += k.String()
	}
	return s + ")"
}

// aceLow is the wheel value of an Ace in straight detection.
const aceLow = 1

// Evaluate selects the best five-card hand from the given cards.
// At least five cards are required.
func Evaluate(cards []deck.Card) (EvaluatedHand, error) {
	if len(cards) < 5 {
		return EvaluatedHand{}, fmt.Errorf("%w: need at least 5 cards to evaluate, got %d", deck.ErrInvalidInput, len(cards))
	}

	flushSuit, hasFlush := flushCandidate(cards)

	// Straight flushes outrank everything, so the suited cards get their
	// own straight scan before the generic category ladder runs.
	if hasFlush {
		var suited []deck.Card
		for _, c := range cards {
			if c.Suit == flushSuit {
				suited = append(suited, c)
			}
		}
		if high, ok := straightHigh(rankValues(suited)); ok {
			if high == int(deck.Ace) {
				return EvaluatedHand{Category: RoyalFlush, Kickers: straightKickers(high)}, nil
			}
			return EvaluatedHand{Category: StraightFlush, Kickers: straightKickers(high)}, nil
		}
	}

	counts := rankCounts(cards)

	if quad := ranksWithCount(counts, 4); len(quad) > 0 {
		kickers := []deck.Rank{quad[0], quad[0], quad[0], quad[0]}
		kickers = fillKickers(kickers, counts, quad[:1])
		return EvaluatedHand{Category: FourOfAKind, Kickers: kickers}, nil
	}

	trips := ranksWithCount(counts, 3)
	pairs := ranksWithCount(counts, 2)
	if len(trips) > 0 {
		// A second triple's spare cards can serve as the pair.
		pairRanks := append([]deck.Rank{}, pairs...)
		pairRanks = append(pairRanks, trips[1:]...)
		sortRanksDesc(pairRanks)
		if len(pairRanks) > 0 {
			t, p := trips[0], pairRanks[0]
			return EvaluatedHand{Category: FullHouse, Kickers: []deck.Rank{t, t, t, p, p}}, nil
		}
	}

	if hasFlush {
		var suitedRanks []deck.Rank
		for _, c := range cards {
			if c.Suit == flushSuit {
				suitedRanks = append(suitedRanks, c.Rank)
			}
		}
		sortRanksDesc(suitedRanks)
		return EvaluatedHand{Category: Flush, Kickers: suitedRanks[:5]}, nil
	}

	if high, ok := straightHigh(rankValues(cards)); ok {
		return EvaluatedHand{Category: Straight, Kickers: straightKickers(high)}, nil
	}

	if len(trips) > 0 {
		t := trips[0]
		kickers := fillKickers([]deck.Rank{t, t, t}, counts, trips[:1])
		return EvaluatedHand{Category: ThreeOfAKind, Kickers: kickers}, nil
	}

	if len(pairs) >= 2 {
		hi, lo := pairs[0], pairs[1]
		kickers := fillKickers([]deck.Rank{hi, hi, lo, lo}, counts, pairs[:2])
		return EvaluatedHand{Category: TwoPair, Kickers: kickers}, nil
	}

	if len(pairs) == 1 {
		p := pairs[0]
		kickers := fillKickers([]deck.Rank{p, p}, counts, pairs[:1])
		return EvaluatedHand{Category: OnePair, Kickers: kickers}, nil
	}

	kickers := fillKickers(nil, counts, nil)
	return EvaluatedHand{Category: HighCard, Kickers: kickers}, nil
}

// flushCandidate returns a suit holding five or more cards, if any.
func flushCandidate(cards []deck.Card) (deck.Suit, bool) {
	var counts [4]int
	for _, c := range cards {
		counts[c.Suit]++
	}
	for suit, n := range counts {
		if n >= 5 {
			return deck.Suit(suit), true
		}
	}
	return 0, false
}

// rankValues returns the distinct rank values present, ascending, with an
// additional low value 1 when an Ace is present (wheel support).
func rankValues(cards []deck.Card) []int {
	seen := make(map[int]bool, len(cards))
	for _, c := range cards {
		seen[c.Value()] = true
	}
	if seen[int(deck.Ace)] {
		seen[aceLow] = true
	}
	values := make([]int, 0, len(seen))
	for v := range seen {
		values = append(values, v)
	}
	sort.Ints(values)
	return values
}

// straightHigh finds the highest value ending a run of five consecutive
// values, if one exists.
func straightHigh(values []int) (int, bool) {
	best := 0
	run := 1
	for i := 1; i < len(values); i++ {
		if values[i] == values[i-1]+1 {
			run++
			if run >= 5 {
				best = values[i]
			}
		} else {
			run = 1
		}
	}
	return best, best != 0
}

// straightKickers expands a straight's high value into its five run ranks.
// A wheel reports as 5-4-3-2-A.
func straightKickers(high int) []deck.Rank {
	kickers := make([]deck.Rank, 0, 5)
	for v := high; v > high-5; v-- {
		if v == aceLow {
			kickers = append(kickers, deck.Ace)
		} else {
			kickers = append(kickers, deck.Rank(v))
		}
	}
	return kickers
}

func rankCounts(cards []deck.Card) map[deck.Rank]int {
	counts := make(map[deck.Rank]int, len(cards))
	for _, c := range cards {
		counts[c.Rank]++
	}
	return counts
}

// ranksWithCount returns the ranks appearing exactly n times, descending.
func ranksWithCount(counts map[deck.Rank]int, n int) []deck.Rank {
	var ranks []deck.Rank
	for r, c := range counts {
		if c == n {
			ranks = append(ranks, r)
		}
	}
	sortRanksDesc(ranks)
	return ranks
}

// fillKickers pads matched category ranks out to five using the highest
// remaining ranks not consumed by the category.
func fillKickers(matched []deck.Rank, counts map[deck.Rank]int, used []deck.Rank) []deck.Rank {
	usedSet := make(map[deck.Rank]bool, len(used))
	for _, r := range used {
		usedSet[r] = true
	}

	var rest []deck.Rank
	for r := range counts {
		if !usedSet[r] {
			rest = append(rest, r)
		}
	}
	sortRanksDesc(rest)

	for _, r := range rest {
		if len(matched) >= 5 {
			break
		}
		matched = append(matched, r)
	}
	return matched
}

func sortRanksDesc(ranks []deck.Rank) {
	sort.Slice(ranks, func(i, j int) bool { return ranks[i] > ranks[j] })
}
