package deck

import (
	"testing"

	"github.com/feltlab/holdem/internal/randutil"
)

func TestNewDeckHas52UniqueCards(t *testing.T) {
	t.Parallel()

	d := New(randutil.New(1))
	if d.CardsRemaining() != 52 {
		t.Fatalf("Expected 52 cards, got %d", d.CardsRemaining())
	}

	seen := map[Card]bool{}
	for !d.IsEmpty() {
		c, ok := d.Deal()
		if !ok {
			t.Fatal("Deal failed on non-empty deck")
		}
		if seen[c] {
			t.Errorf("Duplicate card dealt: %s", c)
		}
		seen[c] = true
	}
	if len(seen) != 52 {
		t.Errorf("Expected 52 unique cards, got %d", len(seen))
	}
}

func TestShuffleIsDeterministicForSeed(t *testing.T) {
	t.Parallel()

	d1 := New(randutil.New(42))
	d1.Shuffle()
	d2 := New(randutil.New(42))
	d2.Shuffle()

	r1, r2 := d1.Remaining(), d2.Remaining()
	for i := range r1 {
		if r1[i] != r2[i] {
			t.Fatalf("Decks diverge at %d: %s vs %s", i, r1[i], r2[i])
		}
	}

	d3 := New(randutil.New(43))
	d3.Shuffle()
	same := true
	for i, c := range d3.Remaining() {
		if c != r1[i] {
			same = false
			break
		}
	}
	if same {
		t.Error("Different seeds produced identical shuffles")
	}
}

func TestShufflePreservesTheFullDeck(t *testing.T) {
	t.Parallel()

	d := New(randutil.New(7))
	d.Shuffle()

	seen := map[Card]bool{}
	for _, c := range d.Remaining() {
		seen[c] = true
	}
	if len(seen) != 52 {
		t.Errorf("Shuffle lost cards: %d unique of 52", len(seen))
	}
}

func TestDealN(t *testing.T) {
	t.Parallel()

	d := New(randutil.New(1))
	hole := d.DealN(2)
	if len(hole) != 2 {
		t.Fatalf("Expected 2 cards, got %d", len(hole))
	}
	if d.CardsRemaining() != 50 {
		t.Errorf("Expected 50 remaining, got %d", d.CardsRemaining())
	}

	rest := d.DealN(50)
	if len(rest) != 50 {
		t.Fatalf("Expected 50 cards, got %d", len(rest))
	}
	if !d.IsEmpty() {
		t.Error("Deck should be empty")
	}
	if _, ok := d.Deal(); ok {
		t.Error("Deal from empty deck should fail")
	}
}

func TestFromCardsRestoresDealOrder(t *testing.T) {
	t.Parallel()

	d := New(randutil.New(11))
	d.Shuffle()
	d.DealN(9)
	snapshot := d.Remaining()

	restored := FromCards(snapshot, randutil.New(0))
	if restored.CardsRemaining() != len(snapshot) {
		t.Fatalf("Restored %d cards, want %d", restored.CardsRemaining(), len(snapshot))
	}
	for i, want := range snapshot {
		got, ok := restored.Deal()
		if !ok || got != want {
			t.Fatalf("Card %d = %s, want %s", i, got, want)
		}
	}
}

func TestCardDisplay(t *testing.T) {
	t.Parallel()

	tests := []struct {
		card Card
		want string
		red  bool
	}{
		{NewCard(Ace, Spades), "A♠", false},
		{NewCard(Ten, Hearts), "10♥", true},
		{NewCard(Two, Diamonds), "2♦", true},
		{NewCard(Queen, Clubs), "Q♣", false},
	}
	for _, tt := range tests {
		if got := tt.card.String(); got != tt.want {
			t.Errorf("String() = %s, want %s", got, tt.want)
		}
		if got := tt.card.IsRed(); got != tt.red {
			t.Errorf("%s IsRed() = %v, want %v", tt.card, got, tt.red)
		}
	}
}
