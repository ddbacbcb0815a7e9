package deck

import rand "math/rand/v2"

// Deck represents a deck of playing cards. The RNG is injected so hands can be
// dealt deterministically under test.
type Deck struct {
	cards []Card
	rng   *rand.Rand
}

// New creates a new standard 52-card deck using the given RNG for shuffling.
func New(rng *rand.Rand) *Deck {
	d := &Deck{
		cards: make([]Card, 0, 52),
		rng:   rng,
	}
	for suit := Spades; suit <= Clubs; suit++ {
		for rank := Two; rank <= Ace; rank++ {
			d.cards = append(d.cards, NewCard(rank, suit))
		}
	}
	return d
}

// FromCards builds a deck from an explicit card order. The next card dealt is
// cards[0]. Used to restore a deck from a game state snapshot.
func FromCards(cards []Card, rng *rand.Rand) *Deck {
	d := &Deck{
		cards: make([]Card, len(cards)),
		rng:   rng,
	}
	copy(d.cards, cards)
	return d
}

// Shuffle randomizes the order of cards in the deck (Fisher-Yates).
func (d *Deck) Shuffle() {
	for i := len(d.cards) - 1; i > 0; i-- {
		j := d.rng.IntN(i + 1)
		d.cards[i], d.cards[j] = d.cards[j], d.cards[i]
	}
}

// Deal removes and returns the top card from the deck
func (d *Deck) Deal() (Card, bool) {
	if len(d.cards) == 0 {
		return Card{}, false
	}
	card := d.cards[0]
	d.cards = d.cards[1:]
	return card, true
}

// DealN deals n cards from the deck
func (d *Deck) DealN(n int) []Card {
	if n > len(d.cards) {
		n = len(d.cards)
	}
	cards := make([]Card, n)
	for i := 0; i < n; i++ {
		if card, ok := d.Deal(); ok {
			cards[i] = card
		}
	}
	return cards
}

// CardsRemaining returns the number of cards left in the deck
func (d *Deck) CardsRemaining() int {
	return len(d.cards)
}

// Remaining returns a copy of the undealt cards in deal order.
func (d *Deck) Remaining() []Card {
	out := make([]Card, len(d.cards))
	copy(out, d.cards)
	return out
}

// IsEmpty returns true if the deck has no cards left
func (d *Deck) IsEmpty() bool {
	return len(d.cards) == 0
}
