package bot

import (
	rand "math/rand/v2"

	"github.com/charmbracelet/log"

	"github.com/feltlab/holdem/internal/engine"
)

// normalStrategy estimates equity by Monte Carlo simulation and weighs it
// against pot odds, with positional adjustment and occasional bluffs.
type normalStrategy struct {
	profile profile
	rng     *rand.Rand
	logger  *log.Logger
}

func (n *normalStrategy) Decide(g *engine.Game, s *engine.GameState) (Decision, bool) {
	actions, err := g.LegalActions(s)
	if err != nil {
		n.logger.Warn("could not read legal actions", "err", err)
		return Decision{}, false
	}
	if len(actions) == 0 {
		return Decision{}, false
	}

	seat := s.ActivePlayer
	winRate, err := WinRate(s, seat, n.profile.Trials, n.rng)
	if err != nil {
		n.logger.Warn("simulation failed, falling back to basic play", "err", err)
		return easyDecision(actions), true
	}
	winRate = adjustForPosition(winRate, positionFactor(s, seat))
	bluffing := n.rng.Float64() < n.profile.BluffRate
	if bluffing {
		winRate = adjustForPosition(winRate+0.2, 1)
	}

	pot := engine.PotTotal(s)
	odds := potOdds(pot, s.ToCall(seat))
	n.logger.Debug("decision inputs",
		"seat", seat, "winRate", winRate, "potOdds", odds, "bluff", bluffing)

	if bet, ok := pickAction(actions, engine.ActionBet); ok {
		if winRate > odds+0.15 || bluffing {
			return Decision{
				Action: engine.ActionBet,
				Amount: betAmount(bet, pot, winRate, n.profile.Aggression),
			}, true
		}
	}
	if call, ok := pickAction(actions, engine.ActionCall); ok && winRate > odds {
		return Decision{Action: engine.ActionCall, Amount: call.Amount}, true
	}
	if _, ok := pickAction(actions, engine.ActionCheck); ok {
		return Decision{Action: engine.ActionCheck}, true
	}
	return Decision{Action: engine.ActionFold}, true
}
