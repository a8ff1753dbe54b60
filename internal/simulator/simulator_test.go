package simulator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/maverickhq/maverick/internal/deck"
)

func newTestSimulator(seed int64) *Simulator {
	return New(Config{Seed: seed})
}

func TestSimulateValidatesInput(t *testing.T) {
	s := newTestSimulator(1)

	tests := []struct {
		name  string
		hole  string
		board string
		opts  Options
		want  error
	}{
		{
			name: "one hole card",
			hole: "Ah",
			want: deck.ErrInvalidInput,
		},
		{
			name: "three hole cards",
			hole: "AhKhQh",
			want: deck.ErrInvalidInput,
		},
		{
			name:  "six board cards",
			hole:  "AhKh",
			board: "2c3c4c5c6c7c",
			want:  deck.ErrInvalidInput,
		},
		{
			name:  "hole card repeated on board",
			hole:  "AhKh",
			board: "Ah7c2d",
			want:  deck.ErrInvalidInput,
		},
		{
			name: "too many opponents",
			hole: "AhKh",
			opts: Options{Opponents: 23, Simulations: 10},
			want: deck.ErrInsufficientDeck,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var board []deck.Card
			if tt.board != "" {
				board = deck.MustParseCards(tt.board)
			}
			_, err := s.Simulate(deck.MustParseCards(tt.hole), board, tt.opts)
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestSimulateTalliesAddUp(t *testing.T) {
	s := newTestSimulator(7)

	result, err := s.Simulate(
		deck.MustParseCards("JhTh"),
		deck.MustParseCards("9h8c2d"),
		Options{Simulations: 2000, Opponents: 2},
	)
	require.NoError(t, err)

	assert.Equal(t, 2000, result.Trials())
	assert.Equal(t, 2000, result.Wins+result.Splits+result.Losses)
	assert.GreaterOrEqual(t, result.WinProbability, 0.0)
	assert.LessOrEqual(t, result.WinProbability, 1.0)
}

func TestSimulateDeterministicWithSeed(t *testing.T) {
	hole := deck.MustParseCards("QsQd")
	board := deck.MustParseCards("Jc7h2s")
	opts := Options{Simulations: 1000, NoCache: true}

	a, err := newTestSimulator(42).Simulate(hole, board, opts)
	require.NoError(t, err)
	b, err := newTestSimulator(42).Simulate(hole, board, opts)
	require.NoError(t, err)

	assert.Equal(t, a, b)
}

func TestSimulateUsesCache(t *testing.T) {
	cache := NewCache()
	s := New(Config{Cache: cache, Seed: 11})

	hole := deck.MustParseCards("AcKd")
	board := deck.MustParseCards("Qs8h3c")
	opts := Options{Simulations: 500}

	first, err := s.Simulate(hole, board, opts)
	require.NoError(t, err)
	assert.Equal(t, 1, cache.Len())

	// The second call hits the cache even though the run counter moved on.
	second, err := s.Simulate(hole, board, opts)
	require.NoError(t, err)
	assert.Equal(t, first, second)
	assert.Equal(t, 1, cache.Len())

	// Hole card order does not create a new scenario.
	swapped, err := s.Simulate(deck.MustParseCards("KdAc"), board, opts)
	require.NoError(t, err)
	assert.Equal(t, first, swapped)
	assert.Equal(t, 1, cache.Len())

	// A different opponent count does.
	_, err = s.Simulate(hole, board, Options{Simulations: 500, Opponents: 3})
	require.NoError(t, err)
	assert.Equal(t, 2, cache.Len())
}

func TestSimulateNoCacheBypassesCache(t *testing.T) {
	cache := NewCache()
	s := New(Config{Cache: cache, Seed: 5})

	_, err := s.Simulate(deck.MustParseCards("9c9d"), nil, Options{Simulations: 200, NoCache: true})
	require.NoError(t, err)
	assert.Zero(t, cache.Len())
}

func TestSimulatePocketAcesDominate(t *testing.T) {
	s := newTestSimulator(99)

	result, err := s.Simulate(deck.MustParseCards("AhAd"), nil, Options{Simulations: 10000})
	require.NoError(t, err)

	assert.Greater(t, result.WinProbability, 0.75, "aces heads-up win most trials")

	trash, err := s.Simulate(deck.MustParseCards("7h2c"), nil, Options{Simulations: 10000})
	require.NoError(t, err)
	assert.Greater(t, result.WinProbability, trash.WinProbability)
}

func TestSimulatePocketAcesSixWay(t *testing.T) {
	s := newTestSimulator(13)

	result, err := s.Simulate(deck.MustParseCards("AsAh"), nil,
		Options{Simulations: 10000, Opponents: 5})
	require.NoError(t, err)

	// Against five random hands aces win roughly half the time.
	assert.Greater(t, result.WinProbability, 0.45)
	assert.Less(t, result.WinProbability, 0.55)
}

func BenchmarkSimulate(b *testing.B) {
	s := newTestSimulator(1)
	hole := deck.MustParseCards("AhKh")
	board := deck.MustParseCards("QhJh2c")

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, err := s.Simulate(hole, board, Options{Simulations: 1000, NoCache: true})
		if err != nil {
			b.Fatal(err)
		}
	}
}

func TestSimulateNutsNeverLoses(t *testing.T) {
	s := newTestSimulator(3)

	// Royal flush on a complete board; no opponent hand can match it.
	result, err := s.Simulate(
		deck.MustParseCards("AhKh"),
		deck.MustParseCards("QhJhTh2c7d"),
		Options{Simulations: 500, Opponents: 4},
	)
	require.NoError(t, err)

	assert.Equal(t, 500, result.Wins)
	assert.Zero(t, result.Losses)
	assert.InDelta(t, 1.0, result.WinProbability, 1e-9)
}

// constantOracle ranks every hand identically, forcing splits.
type constantOracle struct{}

func (constantOracle) Rank(hole, board []deck.Card) int32 { return 1 }

func TestSimulateWithInjectedOracle(t *testing.T) {
	s := New(Config{Oracle: constantOracle{}, Seed: 17})

	result, err := s.Simulate(deck.MustParseCards("4c4d"), nil, Options{Simulations: 300, NoCache: true})
	require.NoError(t, err)

	assert.Equal(t, 300, result.Splits)
	assert.Zero(t, result.Wins)
	assert.Zero(t, result.Losses)
	assert.InDelta(t, 0.5, result.WinProbability, 1e-9)
}

func TestSimulateParallelWorkers(t *testing.T) {
	s := newTestSimulator(21)

	result, err := s.Simulate(
		deck.MustParseCards("KsKc"),
		deck.MustParseCards("9d5h2c"),
		Options{Simulations: 4000, Workers: 4, NoCache: true},
	)
	require.NoError(t, err)

	assert.Equal(t, 4000, result.Trials())
	assert.Greater(t, result.WinProbability, 0.6, "an overpair is well ahead")
}

func TestResultConfidenceInterval(t *testing.T) {
	var empty Result
	lower, upper := empty.ConfidenceInterval()
	assert.Zero(t, lower)
	assert.Zero(t, upper)

	r := Result{WinProbability: 0.5, Wins: 50, Losses: 50}
	lower, upper = r.ConfidenceInterval()
	assert.InDelta(t, 0.402, lower, 0.001)
	assert.InDelta(t, 0.598, upper, 0.001)

	sure := Result{WinProbability: 1.0, Wins: 100}
	lower, upper = sure.ConfidenceInterval()
	assert.Equal(t, 1.0, lower)
	assert.Equal(t, 1.0, upper)
}
