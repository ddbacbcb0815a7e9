package bot

import (
	"errors"
	"fmt"
	rand "math/rand/v2"

	"golang.org/x/sync/errgroup"

	"github.com/feltlab/holdem/internal/deck"
	"github.com/feltlab/holdem/internal/engine"
	"github.com/feltlab/holdem/internal/evaluator"
	"github.com/feltlab/holdem/internal/randutil"
)

// Trials at or above this count are split across workers.
const parallelThreshold = 500

var errNoHoleCards = errors.New("bot: seat has no hole cards")

// WinRate estimates the probability that the seat's hand wins at showdown by
// simulating random run-outs against the remaining active opponents. Ties
// count as half a win. The simulation draws opponent holes and the rest of
// the board from the undealt portion of the deck.
func WinRate(s *engine.GameState, seat, trials int, rng *rand.Rand) (float64, error) {
	if seat < 0 || seat >= len(s.Players) {
		return 0, fmt.Errorf("bot: seat %d out of range", seat)
	}
	hero := s.Players[seat]
	if len(hero.Hole) != 2 {
		return 0, errNoHoleCards
	}
	opponents := 0
	for i, p := range s.Players {
		if i != seat && !p.Folded {
			opponents++
		}
	}
	if opponents == 0 {
		return 1, nil
	}
	if trials <= 0 {
		trials = 1
	}

	boardNeed := 5 - len(s.Community)
	need := boardNeed + 2*opponents
	if need > len(s.DeckCards) {
		return 0, fmt.Errorf("bot: deck too short for simulation: need %d, have %d", need, len(s.DeckCards))
	}

	if trials < parallelThreshold {
		wins, ties, err := simulate(s, seat, opponents, trials, rng)
		if err != nil {
			return 0, err
		}
		return (wins + ties/2) / float64(trials), nil
	}

	// Large trial counts run on parallel workers, each with its own RNG
	// derived from the caller's stream.
	const workers = 4
	var g errgroup.Group
	results := make([][2]float64, workers)
	per := trials / workers
	for w := 0; w < workers; w++ {
		w := w
		n := per
		if w == workers-1 {
			n = trials - per*(workers-1)
		}
		wrng := randutil.New(rng.Int64())
		g.Go(func() error {
			wins, ties, err := simulate(s, seat, opponents, n, wrng)
			if err != nil {
				return err
			}
			results[w] = [2]float64{wins, ties}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return 0, err
	}
	var wins, ties float64
	for _, r := range results {
		wins += r[0]
		ties += r[1]
	}
	return (wins + ties/2) / float64(trials), nil
}

func simulate(s *engine.GameState, seat, opponents, trials int, rng *rand.Rand) (wins, ties float64, err error) {
	hero := s.Players[seat]
	pool := make([]deck.Card, len(s.DeckCards))
	holes := make([][]deck.Card, 1+opponents)
	community := make([]deck.Card, 0, 5)

	for t := 0; t < trials; t++ {
		copy(pool, s.DeckCards)
		rng.Shuffle(len(pool), func(i, j int) {
			pool[i], pool[j] = pool[j], pool[i]
		})

		next := 0
		community = append(community[:0], s.Community...)
		for len(community) < 5 {
			community = append(community, pool[next])
			next++
		}
		holes[0] = hero.Hole
		for o := 1; o <= opponents; o++ {
			holes[o] = pool[next : next+2]
			next += 2
		}

		winners, werr := evaluator.Winners(holes, community)
		if werr != nil {
			return 0, 0, werr
		}
		for _, w := range winners {
			if w == 0 {
				if len(winners) == 1 {
					wins++
				} else {
					ties++
				}
				break
			}
		}
	}
	return wins, ties, nil
}
