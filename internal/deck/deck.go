package deck

import (
	"errors"
	"fmt"
	rand "math/rand/v2"
)

// ErrInsufficientDeck is returned when a draw asks for more cards than remain.
var ErrInsufficientDeck = errors.New("insufficient cards in deck")

// Deck represents a deck of playing cards. A Deck is scoped to one shuffle
// session; Reset restores and reshuffles the full 52 cards.
type Deck struct {
	cards []Card
	rng   *rand.Rand
}

// NewDeck creates a new shuffled 52-card deck using the provided RNG.
func NewDeck(rng *rand.Rand) *Deck {
	d := &Deck{
		cards: AllCards(),
		rng:   rng,
	}
	d.Shuffle()
	return d
}

// Shuffle randomizes the order of the remaining cards using Fisher-Yates.
func (d *Deck) Shuffle() {
	for i := len(d.cards) - 1; i > 0; i-- {
		j := d.rng.IntN(i + 1)
		d.cards[i], d.cards[j] = d.cards[j], d.cards[i]
	}
}

// Draw removes and returns the first n cards from the deck.
func (d *Deck) Draw(n int) ([]Card, error) {
	if n > len(d.cards) {
		return nil, fmt.Errorf("%w: want %d, have %d", ErrInsufficientDeck, n, len(d.cards))
	}

	drawn := make([]Card, n)
	copy(drawn, d.cards[:n])
	d.cards = d.cards[n:]
	return drawn, nil
}

// Remaining returns the number of cards left in the deck.
func (d *Deck) Remaining() int {
	return len(d.cards)
}

// Reset restores the deck to a full 52-card deck and shuffles it.
func (d *Deck) Reset() {
	d.cards = append(d.cards[:0], AllCards()...)
	d.Shuffle()
}
