package bot

import (
	rand "math/rand/v2"

	"github.com/charmbracelet/log"

	"github.com/feltlab/holdem/internal/engine"
)

// hardStrategy runs deeper simulations than normal and additionally shifts
// its thresholds by reading the table: aggressive opponents widen its calling
// range, passive tables invite more stabs.
type hardStrategy struct {
	profile profile
	rng     *rand.Rand
	logger  *log.Logger
}

func (h *hardStrategy) Decide(g *engine.Game, s *engine.GameState) (Decision, bool) {
	actions, err := g.LegalActions(s)
	if err != nil {
		h.logger.Warn("could not read legal actions", "err", err)
		return Decision{}, false
	}
	if len(actions) == 0 {
		return Decision{}, false
	}

	seat := s.ActivePlayer
	winRate, err := WinRate(s, seat, h.profile.Trials, h.rng)
	if err != nil {
		h.logger.Warn("simulation failed, falling back to basic play", "err", err)
		return easyDecision(actions), true
	}
	winRate = adjustForPosition(winRate, positionFactor(s, seat))
	bluffing := h.rng.Float64() < h.profile.BluffRate
	if bluffing {
		winRate = adjustForPosition(winRate+0.2, 1)
	}

	tableAggr := opponentAggression(s, seat)
	betThreshold := 0.15 + tableAggr*0.1
	callMargin := -tableAggr * 0.05

	pot := engine.PotTotal(s)
	odds := potOdds(pot, s.ToCall(seat))
	h.logger.Debug("decision inputs",
		"seat", seat, "winRate", winRate, "potOdds", odds,
		"tableAggression", tableAggr, "bluff", bluffing)

	if bet, ok := pickAction(actions, engine.ActionBet); ok {
		if winRate > odds+betThreshold || bluffing {
			return Decision{
				Action: engine.ActionBet,
				Amount: betAmount(bet, pot, winRate, h.profile.Aggression),
			}, true
		}
	}
	if call, ok := pickAction(actions, engine.ActionCall); ok && winRate > odds+callMargin {
		return Decision{Action: engine.ActionCall, Amount: call.Amount}, true
	}
	if _, ok := pickAction(actions, engine.ActionCheck); ok {
		return Decision{Action: engine.ActionCheck}, true
	}
	return Decision{Action: engine.ActionFold}, true
}

// opponentAggression scores the table's current temperament in [0, 1] from
// the visible last actions of the other unfolded seats. 0.5 is neutral.
func opponentAggression(s *engine.GameState, seat int) float64 {
	score := 0.5
	for i, p := range s.Players {
		if i == seat || p.Folded {
			continue
		}
		switch p.LastAction {
		case engine.ActionBet, engine.ActionRaise:
			score += 0.1
		case engine.ActionCheck, engine.ActionCall:
			score -= 0.05
		}
	}
	if score < 0 {
		return 0
	}
	if score > 1 {
		return 1
	}
	return score
}
