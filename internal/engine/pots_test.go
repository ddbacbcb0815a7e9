package engine

import (
	"reflect"
	"testing"

	"github.com/feltlab/holdem/internal/deck"
)

func TestPotTiersByContribution(t *testing.T) {
	t.Parallel()

	players := []*Player{
		{Name: "short", TotalBet: 50, AllIn: true},
		{Name: "mid", TotalBet: 100, AllIn: true},
		{Name: "big", TotalBet: 200},
	}

	tiers := potTiers(players)
	if len(tiers) != 3 {
		t.Fatalf("Expected 3 tiers, got %d", len(tiers))
	}

	wantAmounts := []int{150, 100, 100}
	wantEligible := [][]int{{0, 1, 2}, {1, 2}, {2}}
	for i, tier := range tiers {
		if tier.Amount != wantAmounts[i] {
			t.Errorf("Tier %d amount = %d, want %d", i, tier.Amount, wantAmounts[i])
		}
		if !reflect.DeepEqual(tier.Eligible, wantEligible[i]) {
			t.Errorf("Tier %d eligible = %v, want %v", i, tier.Eligible, wantEligible[i])
		}
	}
}

func TestPotTiersFoldedPlayersFundButCannotWin(t *testing.T) {
	t.Parallel()

	players := []*Player{
		{Name: "folder", TotalBet: 100, Folded: true},
		{Name: "a", TotalBet: 100},
		{Name: "b", TotalBet: 100},
	}

	tiers := potTiers(players)
	if len(tiers) != 1 {
		t.Fatalf("Expected 1 tier, got %d", len(tiers))
	}
	if tiers[0].Amount != 300 {
		t.Errorf("Tier amount = %d, want 300", tiers[0].Amount)
	}
	if !reflect.DeepEqual(tiers[0].Eligible, []int{1, 2}) {
		t.Errorf("Eligible = %v, want [1 2]", tiers[0].Eligible)
	}
}

func TestPotTiersIgnoreZeroContributions(t *testing.T) {
	t.Parallel()

	players := []*Player{
		{Name: "a", TotalBet: 0},
		{Name: "b", TotalBet: 40},
		{Name: "c", TotalBet: 40},
	}

	tiers := potTiers(players)
	if len(tiers) != 1 {
		t.Fatalf("Expected 1 tier, got %d", len(tiers))
	}
	if tiers[0].Amount != 80 {
		t.Errorf("Tier amount = %d, want 80", tiers[0].Amount)
	}
	if !reflect.DeepEqual(tiers[0].Eligible, []int{1, 2}) {
		t.Errorf("Eligible = %v, want [1 2]", tiers[0].Eligible)
	}
}

func cards(cs ...deck.Card) []deck.Card { return cs }

func TestAwardPotsSidePotGoesToBigStacks(t *testing.T) {
	t.Parallel()

	// The short stack holds the best hand but only contributed 50: it wins the
	// main pot while the side pot goes to the better of the other two.
	s := &GameState{
		Players: []*Player{
			{
				Name: "short", TotalBet: 50, AllIn: true,
				Hole: cards(deck.NewCard(deck.Ace, deck.Spades), deck.NewCard(deck.Ace, deck.Hearts)),
			},
			{
				Name: "mid", TotalBet: 100, AllIn: true,
				Hole: cards(deck.NewCard(deck.King, deck.Spades), deck.NewCard(deck.King, deck.Hearts)),
			},
			{
				Name: "big", TotalBet: 200,
				Hole: cards(deck.NewCard(deck.Two, deck.Clubs), deck.NewCard(deck.Three, deck.Diamonds)),
			},
		},
		Community: cards(
			deck.NewCard(deck.Four, deck.Spades),
			deck.NewCard(deck.Seven, deck.Diamonds),
			deck.NewCard(deck.Nine, deck.Clubs),
			deck.NewCard(deck.Jack, deck.Hearts),
			deck.NewCard(deck.Queen, deck.Diamonds),
		),
		Round: Showdown,
		Pot:   350,
	}

	if err := awardPots(s); err != nil {
		t.Fatalf("awardPots failed: %v", err)
	}

	// Main pot 150 to the aces, middle tier 100 to the kings, top tier 100
	// back to the big stack as the only eligible player.
	if s.Players[0].Chips != 150 {
		t.Errorf("Short stack chips = %d, want 150", s.Players[0].Chips)
	}
	if s.Players[1].Chips != 100 {
		t.Errorf("Mid stack chips = %d, want 100", s.Players[1].Chips)
	}
	if s.Players[2].Chips != 100 {
		t.Errorf("Big stack chips = %d, want 100", s.Players[2].Chips)
	}
	if !reflect.DeepEqual(s.Winners, []int{0, 1, 2}) {
		t.Errorf("Winners = %v, want [0 1 2]", s.Winners)
	}
	if s.Pot != 0 {
		t.Errorf("Pot = %d, want 0", s.Pot)
	}
}

func TestAwardPotsSplitWithRemainder(t *testing.T) {
	t.Parallel()

	// Both hands play the board; the odd chip goes to the earlier seat.
	s := &GameState{
		Players: []*Player{
			{
				Name: "a", TotalBet: 15,
				Hole: cards(deck.NewCard(deck.Two, deck.Spades), deck.NewCard(deck.Three, deck.Hearts)),
			},
			{
				Name: "b", TotalBet: 15,
				Hole: cards(deck.NewCard(deck.Two, deck.Diamonds), deck.NewCard(deck.Three, deck.Clubs)),
			},
			{
				Name: "folder", TotalBet: 15, Folded: true,
			},
		},
		Community: cards(
			deck.NewCard(deck.Nine, deck.Hearts),
			deck.NewCard(deck.Ten, deck.Diamonds),
			deck.NewCard(deck.Jack, deck.Clubs),
			deck.NewCard(deck.Queen, deck.Spades),
			deck.NewCard(deck.King, deck.Hearts),
		),
		Round: Showdown,
		Pot:   45,
	}

	if err := awardPots(s); err != nil {
		t.Fatalf("awardPots failed: %v", err)
	}

	if s.Players[0].Chips != 23 {
		t.Errorf("Seat 0 chips = %d, want 23 (22 + remainder)", s.Players[0].Chips)
	}
	if s.Players[1].Chips != 22 {
		t.Errorf("Seat 1 chips = %d, want 22", s.Players[1].Chips)
	}
	if s.Players[2].Chips != 0 {
		t.Errorf("Folder chips = %d, want 0", s.Players[2].Chips)
	}
	if !reflect.DeepEqual(s.Winners, []int{0, 1}) {
		t.Errorf("Winners = %v, want [0 1]", s.Winners)
	}
}

func TestAwardPotsUncontested(t *testing.T) {
	t.Parallel()

	// Everyone folded preflop; no community cards are needed to pay the
	// last player standing.
	s := &GameState{
		Players: []*Player{
			{Name: "a", TotalBet: 10, Folded: true},
			{Name: "b", TotalBet: 20},
			{Name: "c", TotalBet: 0, Folded: true},
		},
		Round: Showdown,
		Pot:   30,
	}

	if err := awardPots(s); err != nil {
		t.Fatalf("awardPots failed: %v", err)
	}
	if s.Players[1].Chips != 30 {
		t.Errorf("Winner chips = %d, want 30", s.Players[1].Chips)
	}
	if !reflect.DeepEqual(s.Winners, []int{1}) {
		t.Errorf("Winners = %v, want [1]", s.Winners)
	}
}
