package simulator

import (
	"math"

	hankin "github.com/paulhankin/poker"

	"github.com/maverickhq/maverick/internal/deck"
)

// Oracle ranks the best hand formed by hole cards plus a board, returning a
// comparable strength where lower values are stronger. The simulation hot
// path only depends on this narrow seam, so the ranking implementation is
// swappable without touching simulation control flow.
type Oracle interface {
	Rank(hole, board []deck.Card) int32
}

// HankinOracle ranks hands with the paulhankin/poker lookup-table evaluator.
// The library scores hands with higher-is-better int16 values; Rank inverts
// them so lower is stronger.
type HankinOracle struct{}

// NewHankinOracle returns the default fast ranking oracle.
func NewHankinOracle() HankinOracle {
	return HankinOracle{}
}

// Rank evaluates the best five-card hand from hole+board (5-7 cards total).
func (HankinOracle) Rank(hole, board []deck.Card) int32 {
	cards := make([]hankin.Card, 0, 7)
	for _, c := range hole {
		cards = append(cards, toLibCard(c))
	}
	for _, c := range board {
		cards = append(cards, toLibCard(c))
	}

	var score int16
	switch len(cards) {
	case 7:
		var a7 [7]hankin.Card
		copy(a7[:], cards)
		score = hankin.Eval7(&a7)
	case 5:
		var a5 [5]hankin.Card
		copy(a5[:], cards)
		score = hankin.Eval5(&a5)
	default:
		score = bestFiveSubset(cards)
	}

	return int32(math.MaxInt16) - int32(score)
}

// bestFiveSubset evaluates all five-card subsets for the 6-card case.
func bestFiveSubset(cards []hankin.Card) int16 {
	n := len(cards)
	best := int16(math.MinInt16)
	var five [5]hankin.Card
	var choose [5]int

	var rec func(start, k int)
	rec = func(start, k int) {
		if k == 5 {
			for i := 0; i < 5; i++ {
				five[i] = cards[choose[i]]
			}
			if score := hankin.Eval5(&five); score > best {
				best = score
			}
			return
		}
		for i := start; i <= n-(5-k); i++ {
			choose[k] = i
			rec(i+1, k+1)
		}
	}
	rec(0, 0)
	return best
}

// toLibCard converts a deck.Card to the library representation.
// Library ranks run 1-13 with Ace low.
func toLibCard(c deck.Card) hankin.Card {
	var s hankin.Suit
	switch c.Suit {
	case deck.Clubs:
		s = hankin.Club
	case deck.Diamonds:
		s = hankin.Diamond
	case deck.Hearts:
		s = hankin.Heart
	case deck.Spades:
		s = hankin.Spade
	}

	r := hankin.Rank(c.Rank)
	if c.Rank == deck.Ace {
		r = hankin.Rank(1)
	}

	card, _ := hankin.MakeCard(s, r)
	return card
}

// memoOracle caches oracle calls for unique (hole, board) pairs within one
// simulation run. It is not safe for concurrent use; parallel workers each
// get their own shard.
type memoOracle struct {
	inner Oracle
	memo  map[memoKey]int32
}

type memoKey struct {
	hole  deck.CardSet
	board deck.CardSet
}

func newMemoOracle(inner Oracle) *memoOracle {
	return &memoOracle{inner: inner, memo: make(map[memoKey]int32)}
}

func (m *memoOracle) Rank(hole, board []deck.Card) int32 {
	key := memoKey{hole: deck.NewCardSet(hole...), board: deck.NewCardSet(board...)}
	if rank, ok := m.memo[key]; ok {
		return rank
	}
	rank := m.inner.Rank(hole, board)
	m.memo[key] = rank
	return rank
}
