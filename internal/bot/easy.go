package bot

import "github.com/feltlab/holdem/internal/engine"

// easyStrategy plays a fixed passive line with no simulation: check when
// free, call any bet, otherwise make a small fixed stab.
type easyStrategy struct{}

func (e *easyStrategy) Decide(g *engine.Game, s *engine.GameState) (Decision, bool) {
	actions, err := g.LegalActions(s)
	if err != nil || len(actions) == 0 {
		return Decision{}, false
	}
	return easyDecision(actions), true
}

func easyDecision(actions []engine.LegalAction) Decision {
	if len(actions) == 0 {
		return Decision{}
	}
	if _, ok := pickAction(actions, engine.ActionCheck); ok {
		return Decision{Action: engine.ActionCheck}
	}
	if call, ok := pickAction(actions, engine.ActionCall); ok {
		return Decision{Action: engine.ActionCall, Amount: call.Amount}
	}
	if bet, ok := pickAction(actions, engine.ActionBet); ok {
		amount := 20
		if amount > bet.Max {
			amount = bet.Max
		}
		if amount < bet.Min {
			amount = bet.Min
		}
		return Decision{Action: engine.ActionBet, Amount: amount}
	}
	return Decision{Action: engine.ActionFold}
}
