// Package simulator estimates hold'em equity by Monte Carlo simulation:
// it repeatedly completes the board, deals opponents plausible hands, ranks
// every hand with a fast oracle, and tabulates win/split/loss outcomes.
package simulator

import (
	"fmt"
	"io"
	"math"
	rand "math/rand/v2"
	"sync/atomic"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"
	"golang.org/x/sync/errgroup"

	"github.com/maverickhq/maverick/internal/deck"
	"github.com/maverickhq/maverick/internal/evaluator"
	"github.com/maverickhq/maverick/internal/randutil"
)

// Result holds the tabulated outcome of a simulation run.
// WinProbability = (wins + 0.5*splits) / trials.
type Result struct {
	WinProbability float64
	Wins           int
	Splits         int
	Losses         int
}

// Trials returns the total number of simulated trials.
func (r Result) Trials() int {
	return r.Wins + r.Splits + r.Losses
}

// ConfidenceInterval returns the 95% confidence interval for the win
// probability, treating it as a binomial proportion.
func (r Result) ConfidenceInterval() (lower, upper float64) {
	n := float64(r.Trials())
	if n == 0 {
		return 0, 0
	}

	p := r.WinProbability
	margin := 1.96 * math.Sqrt(p*(1-p)/n)

	return math.Max(0, p-margin), math.Min(1, p+margin)
}

// SamplingPolicy controls how opponent hole cards are sampled. The defaults
// mirror observed play but carry no empirical derivation, so they stay
// configurable rather than hardcoded.
type SamplingPolicy struct {
	// MadeHandBias is the postflop probability that a sampled opponent
	// must already hold a made hand (pair or better).
	MadeHandBias float64

	// MaxRankGap admits unmade postflop hands that are suited or at most
	// this connected.
	MaxRankGap int

	// PreflopAcceptRate is the acceptance probability for uniform
	// preflop sampling.
	PreflopAcceptRate float64

	// MaxAttempts bounds rejection sampling before falling back to a
	// uniform random hand.
	MaxAttempts int
}

// DefaultSamplingPolicy returns the standard opponent model.
func DefaultSamplingPolicy() SamplingPolicy {
	return SamplingPolicy{
		MadeHandBias:      0.8,
		MaxRankGap:        4,
		PreflopAcceptRate: 0.2,
		MaxAttempts:       100,
	}
}

// Options configures a single simulation run.
type Options struct {
	Simulations int  // number of trials (default 10000)
	Opponents   int  // number of opponents (default 1)
	BatchSize   int  // trials per batch (default 1000)
	Workers     int  // parallel workers; 1 runs sequentially
	NoCache     bool // bypass the result cache
}

// Config configures a Simulator.
type Config struct {
	Oracle Oracle         // fast ranking oracle (default HankinOracle)
	Cache  *Cache         // result cache (default fresh cache)
	Policy SamplingPolicy // opponent sampling policy
	Logger *log.Logger    // defaults to a discarding logger
	Clock  quartz.Clock   // defaults to the real clock
	Seed   int64          // base RNG seed; 0 derives one from the clock
}

// Simulator runs Monte Carlo equity simulations.
type Simulator struct {
	oracle Oracle
	cache  *Cache
	policy SamplingPolicy
	logger *log.Logger
	clock  quartz.Clock
	seed   int64
	calls  atomic.Int64
}

// New creates a simulator, filling in defaults for unset config fields.
func New(cfg Config) *Simulator {
	if cfg.Oracle == nil {
		cfg.Oracle = NewHankinOracle()
	}
	if cfg.Cache == nil {
		cfg.Cache = NewCache()
	}
	if cfg.Policy == (SamplingPolicy{}) {
		cfg.Policy = DefaultSamplingPolicy()
	}
	if cfg.Logger == nil {
		cfg.Logger = log.New(io.Discard)
	}
	if cfg.Clock == nil {
		cfg.Clock = quartz.NewReal()
	}
	if cfg.Seed == 0 {
		cfg.Seed = cfg.Clock.Now().UnixNano()
	}
	return &Simulator{
		oracle: cfg.Oracle,
		cache:  cfg.Cache,
		policy: cfg.Policy,
		logger: cfg.Logger,
		clock:  cfg.Clock,
		seed:   cfg.Seed,
	}
}

// Simulate estimates equity for the hole cards against Opponents random-ish
// hands over a partially known board. Exactly two hole cards and at most
// five board cards are required.
func (s *Simulator) Simulate(hole, board []deck.Card, opts Options) (Result, error) {
	if len(hole) != 2 {
		return Result{}, fmt.Errorf("%w: hole must contain exactly 2 cards, got %d", deck.ErrInvalidInput, len(hole))
	}
	if len(board) > 5 {
		return Result{}, fmt.Errorf("%w: board cannot exceed 5 cards, got %d", deck.ErrInvalidInput, len(board))
	}
	used := deck.NewCardSet(hole...).Union(deck.NewCardSet(board...))
	if used.Count() != len(hole)+len(board) {
		return Result{}, fmt.Errorf("%w: duplicate cards in hole/board", deck.ErrInvalidInput)
	}

	if opts.Simulations <= 0 {
		opts.Simulations = 10000
	}
	if opts.Opponents < 1 {
		opts.Opponents = 1
	}
	if opts.BatchSize <= 0 {
		opts.BatchSize = 1000
	}
	if opts.Workers < 1 {
		opts.Workers = 1
	}

	if opts.Opponents*2+(5-len(board)) > 52-used.Count() {
		return Result{}, fmt.Errorf("%w: %d opponents need more cards than remain", deck.ErrInsufficientDeck, opts.Opponents)
	}

	key := cacheKey(hole, board, opts.Opponents)
	if !opts.NoCache {
		if result, ok := s.cache.Get(key); ok {
			s.logger.Debug("simulation cache hit", "key", key)
			return result, nil
		}
	}

	remaining := remainingDeck(used)
	runSeed := s.seed + s.calls.Add(1)

	start := s.clock.Now()
	var wins, splits int
	if opts.Workers > 1 {
		wins, splits = s.runParallel(hole, board, remaining, opts, runSeed)
	} else {
		wins, splits = s.runTrials(hole, board, remaining, opts, opts.Simulations,
			randutil.New(runSeed), newMemoOracle(s.oracle))
	}

	result := Result{
		WinProbability: (float64(wins) + 0.5*float64(splits)) / float64(opts.Simulations),
		Wins:           wins,
		Splits:         splits,
		Losses:         opts.Simulations - wins - splits,
	}

	s.logger.Debug("simulation complete",
		"trials", opts.Simulations,
		"opponents", opts.Opponents,
		"win", result.WinProbability,
		"elapsed", s.clock.Since(start),
	)

	if !opts.NoCache {
		s.cache.Put(key, result)
	}
	return result, nil
}

// runTrials processes trials in fixed-size batches. Batching bounds peak
// memory for the per-trial working deck and keeps the loop shaped for
// worker fan-out.
func (s *Simulator) runTrials(hole, board, remaining []deck.Card, opts Options, trials int, rng *rand.Rand, oracle Oracle) (wins, splits int) {
	working := make([]deck.Card, len(remaining))
	fullBoard := make([]deck.Card, 5)

	for batchStart := 0; batchStart < trials; batchStart += opts.BatchSize {
		batchEnd := batchStart + opts.BatchSize
		if batchEnd > trials {
			batchEnd = trials
		}

		for trial := batchStart; trial < batchEnd; trial++ {
			copy(working, remaining)
			shuffle(working, rng)

			pool := working
			oppHands := make([][2]deck.Card, opts.Opponents)
			for i := range oppHands {
				var hand [2]deck.Card
				hand, pool = s.sampleOpponent(pool, board, rng)
				oppHands[i] = hand
			}

			// Complete the board from the shuffled pool.
			copy(fullBoard, board)
			copy(fullBoard[len(board):], pool[:5-len(board)])

			playerRank := oracle.Rank(hole, fullBoard)

			best := int32(1<<31 - 1)
			for _, opp := range oppHands {
				if rank := oracle.Rank(opp[:], fullBoard); rank < best {
					best = rank
				}
			}

			switch {
			case playerRank < best:
				wins++
			case playerRank == best:
				splits++
			}
		}
	}
	return wins, splits
}

// runParallel divides trials across workers, each with an independent
// random stream and its own oracle memo shard, then merges the tallies.
func (s *Simulator) runParallel(hole, board, remaining []deck.Card, opts Options, runSeed int64) (wins, splits int) {
	perWorker := opts.Simulations / opts.Workers
	extra := opts.Simulations % opts.Workers

	type tally struct{ wins, splits int }
	tallies := make([]tally, opts.Workers)

	var g errgroup.Group
	for w := 0; w < opts.Workers; w++ {
		trials := perWorker
		if w < extra {
			trials++
		}
		g.Go(func() error {
			wWins, wSplits := s.runTrials(hole, board, remaining, opts, trials,
				randutil.Stream(runSeed, w), newMemoOracle(s.oracle))
			tallies[w] = tally{wins: wWins, splits: wSplits}
			return nil
		})
	}
	_ = g.Wait() // workers never error

	for _, t := range tallies {
		wins += t.wins
		splits += t.splits
	}
	return wins, splits
}

// sampleOpponent draws a plausible two-card hand from the pool and returns
// the reduced pool. Postflop sampling is biased toward made hands, with
// unmade hands required to be suited or connected; preflop sampling is
// uniform under an acceptance heuristic. After MaxAttempts rejections the
// opponent just takes the next two cards.
func (s *Simulator) sampleOpponent(pool []deck.Card, board []deck.Card, rng *rand.Rand) ([2]deck.Card, []deck.Card) {
	for attempt := 0; attempt < s.policy.MaxAttempts; attempt++ {
		i := rng.IntN(len(pool))
		j := rng.IntN(len(pool) - 1)
		if j >= i {
			j++
		}
		hand := [2]deck.Card{pool[i], pool[j]}

		if s.plausibleHand(hand, board, rng) {
			return hand, removeTwo(pool, i, j)
		}
	}

	hand := [2]deck.Card{pool[0], pool[1]}
	return hand, pool[2:]
}

func (s *Simulator) plausibleHand(hand [2]deck.Card, board []deck.Card, rng *rand.Rand) bool {
	if len(board) == 0 {
		return rng.Float64() < s.policy.PreflopAcceptRate
	}

	if rng.Float64() < s.policy.MadeHandBias {
		return isMadeHand(hand, board)
	}

	gap := int(hand[0].Rank) - int(hand[1].Rank)
	if gap < 0 {
		gap = -gap
	}
	return hand[0].Suit == hand[1].Suit || gap <= s.policy.MaxRankGap
}

// isMadeHand reports whether the hand already ranks pair or better on the
// board. This is the one place the combinatorial evaluator appears in the
// simulation: it judges opponent plausibility, never trial outcomes.
func isMadeHand(hand [2]deck.Card, board []deck.Card) bool {
	cards := make([]deck.Card, 0, 7)
	cards = append(cards, hand[0], hand[1])
	cards = append(cards, board...)
	evaluated, err := evaluator.Evaluate(cards)
	if err != nil {
		return false
	}
	return evaluated.Category >= evaluator.OnePair
}

func remainingDeck(used deck.CardSet) []deck.Card {
	remaining := make([]deck.Card, 0, 52-used.Count())
	for _, card := range deck.AllCards() {
		if !used.Contains(card) {
			remaining = append(remaining, card)
		}
	}
	return remaining
}

func shuffle(cards []deck.Card, rng *rand.Rand) {
	for i := len(cards) - 1; i > 0; i-- {
		j := rng.IntN(i + 1)
		cards[i], cards[j] = cards[j], cards[i]
	}
}

// removeTwo returns the pool without elements i and j, preserving the
// shuffled order of everything else.
func removeTwo(pool []deck.Card, i, j int) []deck.Card {
	if i > j {
		i, j = j, i
	}
	out := make([]deck.Card, 0, len(pool)-2)
	out = append(out, pool[:i]...)
	out = append(out, pool[i+1:j]...)
	out = append(out, pool[j+1:]...)
	return out
}
