// Package equity provides the canonical starting-hand notation and a static
// preflop equity lookup derived from PokerStove all-in calculations.
package equity

import "github.com/maverickhq/maverick/internal/deck"

// preflopEquity maps canonical starting-hand notation to approximate
// heads-up all-in equity against a random hand. Hands outside the map are
// marginal holdings that resolve to the neutral default.
var preflopEquity = map[string]float64{
	// Pocket pairs
	"AA": 0.852, "KK": 0.823, "QQ": 0.799, "JJ": 0.775,
	"TT": 0.751, "99": 0.720, "88": 0.690, "77": 0.661,
	"66": 0.633, "55": 0.605, "44": 0.578, "33": 0.551, "22": 0.524,

	// Suited hands
	"AKs": 0.670, "AQs": 0.662, "AJs": 0.654, "ATs": 0.647,
	"A9s": 0.624, "A8s": 0.619, "A7s": 0.614, "A6s": 0.609,
	"A5s": 0.615, "A4s": 0.611, "A3s": 0.606, "A2s": 0.601,
	"KQs": 0.632, "KJs": 0.624, "KTs": 0.617, "K9s": 0.593,
	"QJs": 0.611, "QTs": 0.604, "Q9s": 0.580,
	"JTs": 0.599, "J9s": 0.575,
	"T9s": 0.570,

	// Offsuit hands
	"AKo": 0.653, "AQo": 0.644, "AJo": 0.635, "ATo": 0.627,
	"A9o": 0.602, "A8o": 0.596, "A7o": 0.591, "A6o": 0.586,
	"A5o": 0.591, "A4o": 0.587, "A3o": 0.582, "A2o": 0.577,
	"KQo": 0.612, "KJo": 0.603, "KTo": 0.595, "K9o": 0.569,
	"QJo": 0.589, "QTo": 0.581, "Q9o": 0.555,
	"JTo": 0.575, "J9o": 0.549,
	"T9o": 0.543,
}

// neutralEquity is returned for hands without a table entry. A lookup miss
// is not an error.
const neutralEquity = 0.5

// Notation returns the canonical starting-hand notation for two hole cards:
// ranks in descending order, pairs as "AA", otherwise a suited ("AKs") or
// offsuit ("AKo") marker.
func Notation(c1, c2 deck.Card) string {
	if c2.Rank > c1.Rank {
		c1, c2 = c2, c1
	}

	if c1.Rank == c2.Rank {
		return c1.Rank.String() + c2.Rank.String()
	}

	suffix := "o"
	if c1.Suit == c2.Suit {
		suffix = "s"
	}
	return c1.Rank.String() + c2.Rank.String() + suffix
}

// Preflop returns the approximate heads-up equity for a starting hand.
// Never fails; unknown notations resolve to 0.5.
func Preflop(c1, c2 deck.Card) float64 {
	if eq, ok := preflopEquity[Notation(c1, c2)]; ok {
		return eq
	}
	return neutralEquity
}
