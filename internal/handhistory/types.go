// Package handhistory parses PHH-style hand history records into structured
// hands. Historical logs are noisy: malformed or masked card tokens are
// dropped from the parsed structure rather than aborting the parse, unlike
// the strict parsing the evaluation core applies to direct input.
package handhistory

import "github.com/maverickhq/maverick/internal/deck"

// Street names the betting round an action occurred on.
type Street string

const (
	Preflop Street = "preflop"
	Flop    Street = "flop"
	Turn    Street = "turn"
	River   Street = "river"
)

// Action is a single chronological player action.
type Action struct {
	Player string
	Type   string // f, cc, cbr, sm, ...
	Amount float64
	Street Street
}

// Hand is one parsed hand history record. The evaluation core consumes only
// the card-bearing fields; the rest serve downstream statistics.
type Hand struct {
	ID             int
	Players        []string
	StartingStacks []int
	Actions        []Action

	// HoleCards maps a player to the cards revealed at showdown.
	HoleCards map[string][]deck.Card

	// Community holds the board cards in deal order.
	Community []deck.Card
}
