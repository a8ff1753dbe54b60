package evaluator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/maverickhq/maverick/internal/deck"
)

func ranks(rs ...deck.Rank) []deck.Rank { return rs }

func TestEvaluate(t *testing.T) {
	tests := []struct {
		name     string
		cards    string
		category Category
		kickers  []deck.Rank
	}{
		{
			name:     "royal flush with noise",
			cards:    "AhKhQhJhTh2c3d",
			category: RoyalFlush,
			kickers:  ranks(deck.Ace, deck.King, deck.Queen, deck.Jack, deck.Ten),
		},
		{
			name:     "straight flush",
			cards:    "9s8s7s6s5sAhAd",
			category: StraightFlush,
			kickers:  ranks(deck.Nine, deck.Eight, deck.Seven, deck.Six, deck.Five),
		},
		{
			name:     "steel wheel straight flush",
			cards:    "Ad2d3d4d5dKsKc",
			category: StraightFlush,
			kickers:  ranks(deck.Five, deck.Four, deck.Three, deck.Two, deck.Ace),
		},
		{
			name:     "four of a kind",
			cards:    "QsQhQdQc7h2c",
			category: FourOfAKind,
			kickers:  ranks(deck.Queen, deck.Queen, deck.Queen, deck.Queen, deck.Seven),
		},
		{
			name:     "full house",
			cards:    "AhAdAcKhKd",
			category: FullHouse,
			kickers:  ranks(deck.Ace, deck.Ace, deck.Ace, deck.King, deck.King),
		},
		{
			name:     "full house from two triples",
			cards:    "AhAdAc9h9d9s2c",
			category: FullHouse,
			kickers:  ranks(deck.Ace, deck.Ace, deck.Ace, deck.Nine, deck.Nine),
		},
		{
			name:     "flush takes top five of suit",
			cards:    "Kh9h7h5h3h2hAs",
			category: Flush,
			kickers:  ranks(deck.King, deck.Nine, deck.Seven, deck.Five, deck.Three),
		},
		{
			name:     "straight",
			cards:    "9c8d7h6s5c2h2d",
			category: Straight,
			kickers:  ranks(deck.Nine, deck.Eight, deck.Seven, deck.Six, deck.Five),
		},
		{
			name:     "wheel straight",
			cards:    "Ah2c3d4s5hKdQd",
			category: Straight,
			kickers:  ranks(deck.Five, deck.Four, deck.Three, deck.Two, deck.Ace),
		},
		{
			name:     "highest run wins among multiple",
			cards:    "Tc9d8h7s6c5d4h",
			category: Straight,
			kickers:  ranks(deck.Ten, deck.Nine, deck.Eight, deck.Seven, deck.Six),
		},
		{
			name:     "three of a kind",
			cards:    "8h8d8cAhQc2s",
			category: ThreeOfAKind,
			kickers:  ranks(deck.Eight, deck.Eight, deck.Eight, deck.Ace, deck.Queen),
		},
		{
			name:     "two pair keeps best kicker",
			cards:    "JhJd4c4sAh2c3d",
			category: TwoPair,
			kickers:  ranks(deck.Jack, deck.Jack, deck.Four, deck.Four, deck.Ace),
		},
		{
			name:     "three pairs pick top two",
			cards:    "JhJd9c9s4h4dAc",
			category: TwoPair,
			kickers:  ranks(deck.Jack, deck.Jack, deck.Nine, deck.Nine, deck.Ace),
		},
		{
			name:     "one pair",
			cards:    "ThTd8c6s4h2d",
			category: OnePair,
			kickers:  ranks(deck.Ten, deck.Ten, deck.Eight, deck.Six, deck.Four),
		},
		{
			name:     "high card",
			cards:    "AhQd9c7s5h3d2c",
			category: HighCard,
			kickers:  ranks(deck.Ace, deck.Queen, deck.Nine, deck.Seven, deck.Five),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			hand, err := Evaluate(deck.MustParseCards(tt.cards))
			require.NoError(t, err)
			assert.Equal(t, tt.category, hand.Category, "category")
			assert.Equal(t, tt.kickers, hand.Kickers, "kickers")
		})
	}
}

func TestEvaluateTooFewCards(t *testing.T) {
	_, err := Evaluate(deck.MustParseCards("AhKhQhJh"))
	require.Error(t, err)
	assert.ErrorIs(t, err, deck.ErrInvalidInput)
}

func TestCategoryDominatesKickers(t *testing.T) {
	// The weakest hand of a higher category beats the strongest hand of
	// a lower one.
	pairOfTwos, err := Evaluate(deck.MustParseCards("2h2d5c4s3d"))
	require.NoError(t, err)
	aceHigh, err := Evaluate(deck.MustParseCards("AhKdQc9s8d"))
	require.NoError(t, err)

	assert.Equal(t, 1, pairOfTwos.Compare(aceHigh))
	assert.Equal(t, -1, aceHigh.Compare(pairOfTwos))
}

func TestCompareKickers(t *testing.T) {
	better, err := Evaluate(deck.MustParseCards("AhAdKc9s8d"))
	require.NoError(t, err)
	worse, err := Evaluate(deck.MustParseCards("AsAcQh9c8c"))
	require.NoError(t, err)

	assert.Equal(t, 1, better.Compare(worse), "king kicker beats queen kicker")
	assert.Equal(t, 0, better.Compare(better), "identical ranks tie regardless of suits")
}

func TestCompareWheelIsLowestStraight(t *testing.T) {
	wheel, err := Evaluate(deck.MustParseCards("Ah2c3d4s5h"))
	require.NoError(t, err)
	sixHigh, err := Evaluate(deck.MustParseCards("2h3c4d5s6h"))
	require.NoError(t, err)

	require.Equal(t, Straight, wheel.Category)
	require.Equal(t, Straight, sixHigh.Category)
	assert.Equal(t, 1, sixHigh.Compare(wheel))
}

func TestCategoryOrderingTotal(t *testing.T) {
	order := []Category{
		HighCard, OnePair, TwoPair, ThreeOfAKind, Straight,
		Flush, FullHouse, FourOfAKind, StraightFlush, RoyalFlush,
	}
	for i := 1; i < len(order); i++ {
		assert.Greater(t, order[i], order[i-1], "%s must outrank %s", order[i], order[i-1])
	}
}

func BenchmarkEvaluateSevenCards(b *testing.B) {
	cards := deck.MustParseCards("AhKhQhJh9c8d7s")
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = Evaluate(cards)
	}
}
