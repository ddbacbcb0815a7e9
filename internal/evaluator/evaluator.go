// Package evaluator ranks Texas Hold'em hands. A hand's strength is a category
// (high card up to straight flush) plus a category-specific tiebreaker list,
// compared lexicographically. Best-of-seven works by scoring every 5-card
// subset; with at most 7 cards that is at most 21 combinations, so no lookup
// tables or pruning are needed.
package evaluator

import (
	"fmt"
	"sort"

	"github.com/feltlab/holdem/internal/deck"
)

// Category classifies a 5-card hand, weakest first.
type Category int

const (
	HighCard Category = iota
	OnePair
	TwoPair
	ThreeOfAKind
	Straight
	Flush
	FullHouse
	FourOfAKind
	StraightFlush
)

var categoryNames = [...]string{
	"High Card",
	"One Pair",
	"Two Pair",
	"Three of a Kind",
	"Straight",
	"Flush",
	"Full House",
	"Four of a Kind",
	"Straight Flush",
}

// String returns the display name of the category
func (c Category) String() string {
	if c < HighCard || c > StraightFlush {
		return "Unknown"
	}
	return categoryNames[c]
}

// HandRank is the comparable strength of a 5-card hand.
//
// Tiebreaks depend on the category: a pair carries the pair rank then the
// three kickers descending, a flush carries all five ranks descending, a
// straight carries only its high card (5 for the wheel), and so on. Two ranks
// in the same category always carry tiebreaker lists of the same length.
type HandRank struct {
	Category  Category
	Tiebreaks []int
}

// Compare orders two hand ranks: 1 if a is stronger, -1 if b is stronger,
// 0 on an exact tie.
func Compare(a, b HandRank) int {
	if a.Category != b.Category {
		if a.Category > b.Category {
			return 1
		}
		return -1
	}
	for i := 0; i < len(a.Tiebreaks) && i < len(b.Tiebreaks); i++ {
		if a.Tiebreaks[i] != b.Tiebreaks[i] {
			if a.Tiebreaks[i] > b.Tiebreaks[i] {
				return 1
			}
			return -1
		}
	}
	return 0
}

// RankFive scores exactly five cards.
func RankFive(cards []deck.Card) (HandRank, error) {
	if len(cards) != 5 {
		return HandRank{}, fmt.Errorf("rank five: need exactly 5 cards, got %d", len(cards))
	}

	ranks := make([]int, 5)
	for i, c := range cards {
		ranks[i] = c.Value()
	}
	sort.Sort(sort.Reverse(sort.IntSlice(ranks)))

	flush := true
	for _, c := range cards[1:] {
		if c.Suit != cards[0].Suit {
			flush = false
			break
		}
	}

	straightHigh := straightHighCard(ranks)

	counts := map[int]int{}
	for _, r := range ranks {
		counts[r]++
	}

	// Distinct ranks ordered by multiplicity first, then rank, both descending.
	// For One Pair this puts the pair rank first followed by kickers; for Two
	// Pair the higher pair, lower pair, then the kicker; and so on.
	distinct := make([]int, 0, len(counts))
	for r := range counts {
		distinct = append(distinct, r)
	}
	sort.Slice(distinct, func(i, j int) bool {
		if counts[distinct[i]] != counts[distinct[j]] {
			return counts[distinct[i]] > counts[distinct[j]]
		}
		return distinct[i] > distinct[j]
	})

	switch {
	case flush && straightHigh != 0:
		return HandRank{StraightFlush, []int{straightHigh}}, nil
	case counts[distinct[0]] == 4:
		return HandRank{FourOfAKind, distinct}, nil
	case counts[distinct[0]] == 3 && len(distinct) == 2:
		return HandRank{FullHouse, distinct}, nil
	case flush:
		return HandRank{Flush, ranks}, nil
	case straightHigh != 0:
		return HandRank{Straight, []int{straightHigh}}, nil
	case counts[distinct[0]] == 3:
		return HandRank{ThreeOfAKind, distinct}, nil
	case counts[distinct[0]] == 2 && counts[distinct[1]] == 2:
		return HandRank{TwoPair, distinct}, nil
	case counts[distinct[0]] == 2:
		return HandRank{OnePair, distinct}, nil
	default:
		return HandRank{HighCard, ranks}, nil
	}
}

// straightHighCard returns the high card of a straight formed by the five
// descending ranks, or 0 if they do not form one. The wheel A-2-3-4-5 counts
// as a 5-high straight.
func straightHighCard(desc []int) int {
	consecutive := true
	for i := 1; i < len(desc); i++ {
		if desc[i] != desc[i-1]-1 {
			consecutive = false
			break
		}
	}
	if consecutive {
		return desc[0]
	}
	if desc[0] == int(deck.Ace) && desc[1] == 5 && desc[2] == 4 && desc[3] == 3 && desc[4] == 2 {
		return 5
	}
	return 0
}

// BestOf returns the strongest 5-card rank available from 5 to 7 cards.
func BestOf(cards []deck.Card) (HandRank, error) {
	if len(cards) < 5 || len(cards) > 7 {
		return HandRank{}, fmt.Errorf("best of: need 5 to 7 cards, got %d", len(cards))
	}

	var best HandRank
	found := false
	combo := make([]deck.Card, 5)
	var walk func(start, depth int) error
	walk = func(start, depth int) error {
		if depth == 5 {
			rank, err := RankFive(combo)
			if err != nil {
				return err
			}
			if !found || Compare(rank, best) > 0 {
				best = rank
				found = true
			}
			return nil
		}
		for i := start; i <= len(cards)-(5-depth); i++ {
			combo[depth] = cards[i]
			if err := walk(i+1, depth+1); err != nil {
				return err
			}
		}
		return nil
	}
	if err := walk(0, 0); err != nil {
		return HandRank{}, err
	}
	return best, nil
}

// Winners returns the positions of every hand whose best rank ties for the
// maximum. Each entry in holes is a player's 2 hole cards, combined with the
// shared community cards. Ties are multi-winner; nothing beyond the tiebreaker
// lists splits them further.
func Winners(holes [][]deck.Card, community []deck.Card) ([]int, error) {
	if len(holes) == 0 {
		return nil, fmt.Errorf("winners: no hands to evaluate")
	}

	var best HandRank
	var winners []int
	for i, hole := range holes {
		all := make([]deck.Card, 0, len(hole)+len(community))
		all = append(all, hole...)
		all = append(all, community...)
		rank, err := BestOf(all)
		if err != nil {
			return nil, fmt.Errorf("winners: hand %d: %w", i, err)
		}
		switch {
		case len(winners) == 0:
			best = rank
			winners = []int{i}
		case Compare(rank, best) > 0:
			best = rank
			winners = []int{i}
		case Compare(rank, best) == 0:
			winners = append(winners, i)
		}
	}
	return winners, nil
}
