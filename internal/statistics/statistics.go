// Package statistics aggregates playing-style metrics from parsed hand
// histories.
package statistics

import (
	"math"
	"sort"

	"github.com/maverickhq/maverick/internal/handhistory"
)

// Sample accumulates a numeric series and answers summary questions about it.
type Sample struct {
	n    int
	sum  float64
	sum2 float64 // sum of squares for variance
	// values are retained for median/percentile queries
	values []float64
}

// Add incorporates one observation.
func (s *Sample) Add(v float64) {
	s.n++
	s.sum += v
	s.sum2 += v * v
	s.values = append(s.values, v)
}

// Count returns the number of observations.
func (s *Sample) Count() int { return s.n }

// Mean returns the arithmetic mean, or 0 for an empty sample.
func (s *Sample) Mean() float64 {
	if s.n == 0 {
		return 0
	}
	return s.sum / float64(s.n)
}

// Variance returns the sample variance.
func (s *Sample) Variance() float64 {
	if s.n < 2 {
		return 0
	}
	mean := s.Mean()
	return (s.sum2 - float64(s.n)*mean*mean) / float64(s.n-1)
}

// StdDev returns the sample standard deviation.
func (s *Sample) StdDev() float64 {
	return math.Sqrt(s.Variance())
}

// StdError returns the standard error of the mean.
func (s *Sample) StdError() float64 {
	if s.n == 0 {
		return 0
	}
	return s.StdDev() / math.Sqrt(float64(s.n))
}

// ConfidenceInterval95 returns the 95% confidence interval for the mean.
func (s *Sample) ConfidenceInterval95() (float64, float64) {
	mean := s.Mean()
	margin := 1.96 * s.StdError()
	return mean - margin, mean + margin
}

// Median returns the median observation, or 0 for an empty sample.
func (s *Sample) Median() float64 {
	if len(s.values) == 0 {
		return 0
	}
	sorted := s.sorted()
	n := len(sorted)
	if n%2 == 0 {
		return (sorted[n/2-1] + sorted[n/2]) / 2
	}
	return sorted[n/2]
}

// Percentile returns the linearly interpolated value at p in [0, 1].
func (s *Sample) Percentile(p float64) float64 {
	if len(s.values) == 0 {
		return 0
	}
	sorted := s.sorted()

	index := p * float64(len(sorted)-1)
	lower := int(index)
	upper := lower + 1
	if upper >= len(sorted) {
		return sorted[len(sorted)-1]
	}

	weight := index - float64(lower)
	return sorted[lower]*(1-weight) + sorted[upper]*weight
}

func (s *Sample) sorted() []float64 {
	sorted := make([]float64, len(s.values))
	copy(sorted, s.values)
	sort.Float64s(sorted)
	return sorted
}

// PlayerStats tracks one player's observed tendencies across hands. Blind
// positions are not modeled, so a big-blind check counts toward VPIP; the
// rates are comparative, not absolute.
type PlayerStats struct {
	Hands     int // hands the player acted in
	VPIPHands int // hands with a voluntary preflop call or raise
	PFRHands  int // hands with a preflop raise
	Showdowns int // hands reaching showdown

	Raises int
	Calls  int
	Folds  int
}

// VPIP returns the voluntarily-put-in-pot rate.
func (p *PlayerStats) VPIP() float64 {
	if p.Hands == 0 {
		return 0
	}
	return float64(p.VPIPHands) / float64(p.Hands)
}

// PFR returns the preflop raise rate.
func (p *PlayerStats) PFR() float64 {
	if p.Hands == 0 {
		return 0
	}
	return float64(p.PFRHands) / float64(p.Hands)
}

// AggressionFactor returns raises per call. A player who never calls but
// raises is reported as infinitely aggressive via math.Inf.
func (p *PlayerStats) AggressionFactor() float64 {
	if p.Calls == 0 {
		if p.Raises == 0 {
			return 0
		}
		return math.Inf(1)
	}
	return float64(p.Raises) / float64(p.Calls)
}

// Report summarizes a batch of parsed hands.
type Report struct {
	Hands   int
	Players map[string]*PlayerStats

	// StreetCounts tallies the furthest street each hand reached.
	StreetCounts map[handhistory.Street]int

	// BoardCards samples the number of community cards dealt per hand.
	BoardCards Sample
}

// Player returns the named player's stats, or empty stats when unseen.
func (r *Report) Player(name string) PlayerStats {
	if p, ok := r.Players[name]; ok {
		return *p
	}
	return PlayerStats{}
}

// Analyze computes per-player tendencies and aggregate shape over parsed
// hands.
func Analyze(hands []handhistory.Hand) *Report {
	report := &Report{
		Players:      make(map[string]*PlayerStats),
		StreetCounts: make(map[handhistory.Street]int),
	}

	for _, hand := range hands {
		report.Hands++
		report.StreetCounts[furthestStreet(hand)]++
		report.BoardCards.Add(float64(len(hand.Community)))

		acted := make(map[string]bool)
		for _, action := range hand.Actions {
			stats := report.Players[action.Player]
			if stats == nil {
				stats = &PlayerStats{}
				report.Players[action.Player] = stats
			}
			if !acted[action.Player] {
				acted[action.Player] = true
				stats.Hands++
			}

			switch action.Type {
			case "cbr":
				stats.Raises++
			case "cc":
				stats.Calls++
			case "f":
				stats.Folds++
			case "sm":
				stats.Showdowns++
			}
		}

		// VPIP and PFR count a hand once however many preflop actions it
		// held.
		for player, stats := range report.Players {
			if !acted[player] {
				continue
			}
			if voluntary, raised := preflopIntent(hand, player); voluntary {
				stats.VPIPHands++
				if raised {
					stats.PFRHands++
				}
			}
		}
	}

	return report
}

func preflopIntent(hand handhistory.Hand, player string) (voluntary, raised bool) {
	for _, action := range hand.Actions {
		if action.Player != player || action.Street != handhistory.Preflop {
			continue
		}
		switch action.Type {
		case "cbr":
			return true, true
		case "cc":
			voluntary = true
		}
	}
	return voluntary, false
}

func furthestStreet(hand handhistory.Hand) handhistory.Street {
	switch {
	case len(hand.Community) >= 5:
		return handhistory.River
	case len(hand.Community) == 4:
		return handhistory.Turn
	case len(hand.Community) >= 3:
		return handhistory.Flop
	default:
		return handhistory.Preflop
	}
}
