// Package outs enumerates the deck cards that would improve a hold'em hand,
// classified by drawing pattern. Individual draws may share improving cards;
// the aggregate out count is always the cardinality of their union.
package outs

import (
	"sort"

	"github.com/maverickhq/maverick/internal/deck"
)

// DrawType identifies a drawing pattern.
type DrawType int

const (
	FlushDraw DrawType = iota
	BackdoorFlushDraw
	OpenStraightDraw
	GutshotStraightDraw
	PairToSet
	TwoOvercards
	TripsToFullHouse
	TwoPairToFullHouse
	SetToQuads
	PairToTwoPair
	PairPlusGutshot
)

// String returns the draw's tag.
func (d DrawType) String() string {
	switch d {
	case FlushDraw:
		return "flush_draw"
	case BackdoorFlushDraw:
		return "backdoor_flush_draw"
	case OpenStraightDraw:
		return "open_straight_draw"
	case GutshotStraightDraw:
		return "gutshot_straight_draw"
	case PairToSet:
		return "pair_to_set"
	case TwoOvercards:
		return "two_overcards"
	case TripsToFullHouse:
		return "trips_to_full_house"
	case TwoPairToFullHouse:
		return "two_pair_to_full_house"
	case SetToQuads:
		return "set_to_quads"
	case PairToTwoPair:
		return "pair_to_two_pair"
	case PairPlusGutshot:
		return "pair_plus_gutshot"
	default:
		return "unknown"
	}
}

// DrawInfo describes one detected draw. For simple draws Outs equals the
// cardinality of Cards; composite draws (backdoor flushes, pair+gutshot)
// define Outs by their own rule.
type DrawInfo struct {
	Type DrawType
	Outs int
	// Cards is the set of deck cards that complete the draw.
	Cards deck.CardSet
}

// Calculate enumerates every draw available to the given hole cards and
// board. It returns the deduplicated total out count (the union of every
// draw's improving cards) alongside the individual draws. Detection rules
// are independent and may co-fire; Calculate never fails, and a hand with
// no draws yields zero outs.
func Calculate(hole, board []deck.Card) (int, []DrawInfo) {
	all := make([]deck.Card, 0, len(hole)+len(board))
	all = append(all, hole...)
	all = append(all, board...)
	used := deck.NewCardSet(all...)

	var draws []DrawInfo
	draws = append(draws, flushDraws(all, used, len(board))...)
	straight := straightDraws(all)
	draws = append(draws, straight...)
	draws = append(draws, holeCardDraws(hole, used, len(board))...)
	draws = append(draws, rankCountDraws(all, used)...)
	draws = append(draws, comboDraws(all, straight)...)

	var union deck.CardSet
	for _, d := range draws {
		union = union.Union(d.Cards)
	}
	return union.Count(), draws
}

// flushDraws detects made flush draws (exactly four of a suit) and backdoor
// flush draws (exactly three of a suit while the board can still add two).
func flushDraws(all []deck.Card, used deck.CardSet, boardLen int) []DrawInfo {
	var counts [4]int
	for _, c := range all {
		counts[c.Suit]++
	}

	var draws []DrawInfo
	for suit := deck.Spades; suit <= deck.Clubs; suit++ {
		remaining := remainingOfSuit(suit, used)
		switch {
		case counts[suit] == 4:
			draws = append(draws, DrawInfo{Type: FlushDraw, Outs: 9, Cards: remaining})
		case counts[suit] == 3 && boardLen <= 3:
			// Two runner-runner cards are still needed, so the
			// conventional count is 3 despite the larger card set.
			draws = append(draws, DrawInfo{Type: BackdoorFlushDraw, Outs: 3, Cards: remaining})
		}
	}
	return draws
}

// straightDraws detects open-ended and gutshot straight draws over the
// distinct rank values, with the Ace also counted low.
func straightDraws(all []deck.Card) []DrawInfo {
	values := distinctValuesAceLow(all)

	var draws []DrawInfo

	// Four consecutive distinct values extend at either end.
	for i := 0; i+4 <= len(values); i++ {
		if values[i+3]-values[i] != 3 {
			continue
		}
		var ext []int
		for _, v := range []int{values[i] - 1, values[i+3] + 1} {
			if v >= int(deck.Two) && v <= int(deck.Ace) {
				ext = append(ext, v)
			}
		}
		if len(ext) == 0 {
			continue
		}
		var cards deck.CardSet
		for _, v := range ext {
			cards = cards.Union(allOfRank(deck.Rank(v)))
		}
		draws = append(draws, DrawInfo{Type: OpenStraightDraw, Outs: 4 * len(ext), Cards: cards})
	}

	// Four values spanning five leave exactly one internal gap.
	for i := 0; i+4 <= len(values); i++ {
		if values[i+3]-values[i] != 4 {
			continue
		}
		missing := 0
		for v := values[i] + 1; v < values[i+3]; v++ {
			if !containsInt(values[i:i+4], v) {
				missing = v
				break
			}
		}
		if missing < int(deck.Two) || missing > int(deck.Ace) {
			continue
		}
		draws = append(draws, DrawInfo{
			Type:  GutshotStraightDraw,
			Outs:  4,
			Cards: allOfRank(deck.Rank(missing)),
		})
	}

	return draws
}

// holeCardDraws detects draws defined purely by the hole cards: pocket
// pairs drawing to a set, and two unpaired overcards before the flop.
func holeCardDraws(hole []deck.Card, used deck.CardSet, boardLen int) []DrawInfo {
	if len(hole) != 2 {
		return nil
	}

	var draws []DrawInfo

	if hole[0].Rank == hole[1].Rank {
		draws = append(draws, DrawInfo{
			Type:  PairToSet,
			Outs:  2,
			Cards: remainingOfRank(hole[0].Rank, used),
		})
	}

	if boardLen == 0 && hole[0].Rank != hole[1].Rank &&
		hole[0].Value() > 10 && hole[1].Value() > 10 {
		cards := remainingOfRank(hole[0].Rank, used).Union(remainingOfRank(hole[1].Rank, used))
		draws = append(draws, DrawInfo{Type: TwoOvercards, Outs: 6, Cards: cards})
	}

	return draws
}

// rankCountDraws covers draws driven by rank multiplicity across hole and
// board: trips to a full house or quads, two pair to a full house, and one
// pair to two pair.
func rankCountDraws(all []deck.Card, used deck.CardSet) []DrawInfo {
	counts := make(map[deck.Rank]int, len(all))
	for _, c := range all {
		counts[c.Rank]++
	}

	var trips, pairs, singles []deck.Rank
	for r, n := range counts {
		switch n {
		case 3:
			trips = append(trips, r)
		case 2:
			pairs = append(pairs, r)
		case 1:
			singles = append(singles, r)
		}
	}
	sortRanksDesc(trips)
	sortRanksDesc(pairs)

	var draws []DrawInfo

	if len(trips) > 0 {
		// Pairing any unpaired rank fills the boat.
		var boat deck.CardSet
		for _, r := range singles {
			boat = boat.Union(remainingOfRank(r, used))
		}
		if boat.Count() > 0 {
			draws = append(draws, DrawInfo{Type: TripsToFullHouse, Outs: boat.Count(), Cards: boat})
		}

		quads := remainingOfRank(trips[0], used)
		if quads.Count() > 0 {
			draws = append(draws, DrawInfo{Type: SetToQuads, Outs: quads.Count(), Cards: quads})
		}
	}

	if len(pairs) == 2 {
		for _, r := range pairs {
			cards := remainingOfRank(r, used)
			if cards.Count() > 0 {
				draws = append(draws, DrawInfo{Type: TwoPairToFullHouse, Outs: cards.Count(), Cards: cards})
			}
		}
	}

	if len(pairs) == 1 {
		var cards deck.CardSet
		for _, r := range singles {
			cards = cards.Union(remainingOfRank(r, used))
		}
		if cards.Count() > 0 {
			draws = append(draws, DrawInfo{Type: PairToTwoPair, Outs: cards.Count(), Cards: cards})
		}
	}

	return draws
}

// comboDraws detects a pair co-occurring with a gutshot. The out count
// equals the gutshot's improving cards, not the sum with the pair's, to
// avoid double counting.
func comboDraws(all []deck.Card, straight []DrawInfo) []DrawInfo {
	counts := make(map[deck.Rank]int, len(all))
	for _, c := range all {
		counts[c.Rank]++
	}
	hasPair := false
	for _, n := range counts {
		if n == 2 {
			hasPair = true
			break
		}
	}
	if !hasPair {
		return nil
	}

	var cards deck.CardSet
	for _, d := range straight {
		if d.Type == GutshotStraightDraw {
			cards = cards.Union(d.Cards)
		}
	}
	if cards.Count() == 0 {
		return nil
	}

	return []DrawInfo{{Type: PairPlusGutshot, Outs: cards.Count(), Cards: cards}}
}

// distinctValuesAceLow returns the distinct card values ascending, with 1
// inserted when an Ace is present.
func distinctValuesAceLow(cards []deck.Card) []int {
	seen := make(map[int]bool, len(cards))
	for _, c := range cards {
		seen[c.Value()] = true
	}
	if seen[int(deck.Ace)] {
		seen[1] = true
	}
	values := make([]int, 0, len(seen))
	for v := range seen {
		values = append(values, v)
	}
	sort.Ints(values)
	return values
}

func allOfRank(rank deck.Rank) deck.CardSet {
	var cs deck.CardSet
	for suit := deck.Spades; suit <= deck.Clubs; suit++ {
		cs.Add(deck.NewCard(rank, suit))
	}
	return cs
}

func remainingOfRank(rank deck.Rank, used deck.CardSet) deck.CardSet {
	var cs deck.CardSet
	for suit := deck.Spades; suit <= deck.Clubs; suit++ {
		card := deck.NewCard(rank, suit)
		if !used.Contains(card) {
			cs.Add(card)
		}
	}
	return cs
}

func remainingOfSuit(suit deck.Suit, used deck.CardSet) deck.CardSet {
	var cs deck.CardSet
	for rank := deck.Two; rank <= deck.Ace; rank++ {
		card := deck.NewCard(rank, suit)
		if !used.Contains(card) {
			cs.Add(card)
		}
	}
	return cs
}

func containsInt(values []int, v int) bool {
	for _, x := range values {
		if x == v {
			return true
		}
	}
	return false
}

func sortRanksDesc(ranks []deck.Rank) {
	sort.Slice(ranks, func(i, j int) bool { return ranks[i] > ranks[j] })
}
