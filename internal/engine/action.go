package engine

// ActionType identifies a player action.
//
// Bet doubles as the raise: when the acting player already faces a bet, the
// amount is the raise increment on top of the call, so the player pays
// toCall+amount in total. The engine records the narration as Raise in that
// case. ActionNone is the not-yet-acted marker used for narration resets.
type ActionType int

const (
	ActionNone ActionType = iota
	ActionFold
	ActionCheck
	ActionCall
	ActionBet
	ActionRaise
)

func (a ActionType) String() string {
	switch a {
	case ActionFold:
		return "fold"
	case ActionCheck:
		return "check"
	case ActionCall:
		return "call"
	case ActionBet:
		return "bet"
	case ActionRaise:
		return "raise"
	default:
		return "none"
	}
}

// LegalAction describes one available action for the current player.
// Call carries the exact Amount to pay. Bet carries the [Min, Max] range for
// the raise increment; any amount inside the range is accepted, anything else
// is rejected by ApplyAction.
type LegalAction struct {
	Type   ActionType
	Amount int
	Min    int
	Max    int
}
