// Package decision recommends a poker action from estimated win probability
// and simple pot-odds threshold rules.
package decision

// Action is a recommended poker move.
type Action int

const (
	Fold Action = iota
	Check
	Call
	Raise
	AllIn
)

func (a Action) String() string {
	switch a {
	case Fold:
		return "Fold"
	case Check:
		return "Check"
	case Call:
		return "Call"
	case Raise:
		return "Raise"
	case AllIn:
		return "All-in"
	default:
		return "Unknown"
	}
}

// GameState captures the table situation a recommendation needs.
type GameState struct {
	PotSize    float64
	CurrentBet float64 // amount needed to call
	StackSize  float64
	Position   string // early, middle, late, button, small_blind, big_blind
	NumPlayers int
	Street     string // preflop, flop, turn, river
}

// Thresholds tune the engine for a player style.
type Thresholds struct {
	StrongHand      float64
	MediumHand      float64
	WeakHand        float64
	RaiseMultiplier float64 // raise sizing relative to pot
	MinRaiseBB      float64
}

// DefaultThresholds returns a balanced default style.
func DefaultThresholds() Thresholds {
	return Thresholds{
		StrongHand:      0.7,
		MediumHand:      0.45,
		WeakHand:        0.3,
		RaiseMultiplier: 2.5,
		MinRaiseBB:      2.5,
	}
}

// Engine turns win probabilities into action recommendations.
type Engine struct {
	thresholds Thresholds
}

// NewEngine creates an engine with the given thresholds.
func NewEngine(thresholds Thresholds) *Engine {
	return &Engine{thresholds: thresholds}
}

// PotOdds returns the equity required to break even on a call.
func PotOdds(currentBet, potSize float64) float64 {
	if currentBet <= 0 {
		return 0
	}
	return currentBet / (potSize + currentBet)
}

// positionMultiplier scales win probability by position; later positions
// play more aggressively.
func positionMultiplier(position string) float64 {
	switch position {
	case "early":
		return 0.8
	case "middle":
		return 0.9
	case "late":
		return 1.1
	case "button":
		return 1.2
	case "small_blind":
		return 0.9
	default:
		return 1.0
	}
}

// raiseSize returns the recommended raise, or false when raising is not
// recommended for this strength.
func (e *Engine) raiseSize(state GameState, winProbability float64) (float64, bool) {
	if winProbability < e.thresholds.MediumHand {
		return 0, false
	}

	raise := state.PotSize * e.thresholds.RaiseMultiplier
	if winProbability > e.thresholds.StrongHand {
		raise *= 1.5
	}

	if raise > state.StackSize {
		raise = state.StackSize
	}
	return raise, true
}

// Recommend maps a win probability and game state to an action and bet
// size. The size is zero for fold and check.
func (e *Engine) Recommend(winProbability float64, state GameState) (Action, float64) {
	adjusted := winProbability * positionMultiplier(state.Position)
	potOdds := PotOdds(state.CurrentBet, state.PotSize)

	// Short stacks shove rather than leave themselves committed.
	if state.StackSize <= state.PotSize*0.5 {
		required := potOdds + 0.1
		if required < 0.5 {
			required = 0.5
		}
		if adjusted > required {
			return AllIn, state.StackSize
		}
	}

	if adjusted > e.thresholds.StrongHand {
		if raise, ok := e.raiseSize(state, adjusted); ok {
			return Raise, raise
		}
		return Call, 0
	}

	if adjusted > e.thresholds.MediumHand && adjusted > potOdds {
		if state.CurrentBet == 0 {
			if raise, ok := e.raiseSize(state, adjusted); ok {
				return Raise, raise
			}
			return Check, 0
		}
		return Call, 0
	}

	if adjusted < e.thresholds.WeakHand {
		if state.CurrentBet == 0 {
			return Check, 0
		}
		return Fold, 0
	}

	// Marginal hands take a free card or call with the right price.
	if state.CurrentBet == 0 {
		return Check, 0
	}
	if potOdds < adjusted {
		return Call, 0
	}
	return Fold, 0
}

// StyleThresholds returns thresholds adjusted for a named player style:
// tight, loose, aggressive, passive, or balanced.
func StyleThresholds(style string) Thresholds {
	t := DefaultThresholds()
	switch style {
	case "tight":
		t.StrongHand = 0.75
		t.MediumHand = 0.50
		t.WeakHand = 0.35
	case "loose":
		t.StrongHand = 0.65
		t.MediumHand = 0.40
		t.WeakHand = 0.25
	case "aggressive":
		t.RaiseMultiplier = 3.0
		t.MinRaiseBB = 3.0
	case "passive":
		t.RaiseMultiplier = 2.0
		t.MinRaiseBB = 2.0
	}
	return t
}
