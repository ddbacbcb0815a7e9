package engine

import (
	"fmt"
	"sort"

	"github.com/feltlab/holdem/internal/deck"
	"github.com/feltlab/holdem/internal/evaluator"
)

// potTier is one slice of the pot, cut at a contribution level. Eligible
// holds the seats that can win it, in seat order.
type potTier struct {
	Amount   int
	Eligible []int
}

// potTiers partitions the hand's total contributions into a main pot and side
// pots. Tier boundaries are the distinct nonzero contribution totals, lowest
// first; each tier's chips come from every player who contributed at least
// that much, including folded players, but only unfolded contributors are
// eligible to win it.
func potTiers(players []*Player) []potTier {
	levelSet := map[int]bool{}
	for _, p := range players {
		if p.TotalBet > 0 {
			levelSet[p.TotalBet] = true
		}
	}
	levels := make([]int, 0, len(levelSet))
	for level := range levelSet {
		levels = append(levels, level)
	}
	sort.Ints(levels)

	var tiers []potTier
	prev := 0
	for _, level := range levels {
		tier := potTier{}
		for seat, p := range players {
			if p.TotalBet >= level {
				tier.Amount += level - prev
				if !p.Folded {
					tier.Eligible = append(tier.Eligible, seat)
				}
			}
		}
		if tier.Amount > 0 {
			tiers = append(tiers, tier)
		}
		prev = level
	}
	return tiers
}

// awardPots resolves the showdown: each tier is awarded to the best hand(s)
// among its eligible seats, split evenly with any integer remainder going to
// the winner earliest in seat order. The union of all tier winners becomes
// the hand's winners list and the pot is zeroed.
func awardPots(s *GameState) error {
	tiers := potTiers(s.Players)

	ranks := map[int]evaluator.HandRank{}
	rankFor := func(seat int) (evaluator.HandRank, error) {
		if r, ok := ranks[seat]; ok {
			return r, nil
		}
		p := s.Players[seat]
		all := make([]deck.Card, 0, len(p.Hole)+len(s.Community))
		all = append(all, p.Hole...)
		all = append(all, s.Community...)
		r, err := evaluator.BestOf(all)
		if err != nil {
			return evaluator.HandRank{}, fmt.Errorf("award pots: seat %d: %w", seat, err)
		}
		ranks[seat] = r
		return r, nil
	}

	wonSomething := map[int]bool{}
	for _, tier := range tiers {
		eligible := tier.Eligible
		if len(eligible) == 0 {
			// Every contributor at this level folded. The chips still belong
			// to the hand: they go to the unfolded players with the best hand
			// overall rather than being dropped.
			for seat, p := range s.Players {
				if !p.Folded {
					eligible = append(eligible, seat)
				}
			}
			if len(eligible) == 0 {
				return fmt.Errorf("award pots: no unfolded players")
			}
		}

		var tierWinners []int
		if len(eligible) == 1 {
			tierWinners = eligible
		} else {
			var err error
			tierWinners, err = showdownWinners(s, eligible, rankFor)
			if err != nil {
				return err
			}
		}

		share := tier.Amount / len(tierWinners)
		remainder := tier.Amount % len(tierWinners)
		for _, seat := range tierWinners {
			s.Players[seat].Chips += share
			wonSomething[seat] = true
		}
		s.Players[tierWinners[0]].Chips += remainder
	}

	winners := make([]int, 0, len(wonSomething))
	for seat := range wonSomething {
		winners = append(winners, seat)
	}
	sort.Ints(winners)
	s.Winners = winners
	s.Pot = 0
	return nil
}

// showdownWinners returns the seats among eligible whose best hand ties for
// the maximum, in seat order.
func showdownWinners(s *GameState, eligible []int, rankFor func(int) (evaluator.HandRank, error)) ([]int, error) {
	var best evaluator.HandRank
	var winners []int
	for _, seat := range eligible {
		rank, err := rankFor(seat)
		if err != nil {
			return nil, err
		}
		switch {
		case len(winners) == 0:
			best = rank
			winners = []int{seat}
		case evaluator.Compare(rank, best) > 0:
			best = rank
			winners = []int{seat}
		case evaluator.Compare(rank, best) == 0:
			winners = append(winners, seat)
		}
	}
	return winners, nil
}
