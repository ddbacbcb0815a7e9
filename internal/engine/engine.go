// Package engine implements the Texas Hold'em rules state machine: dealing,
// blinds, betting rounds, legal-action generation, showdown and pot award.
// Every operation is a pure function over an immutable GameState; the Game
// value itself only carries the table configuration and the RNG used for
// shuffling.
package engine

import (
	"errors"
	"fmt"
	rand "math/rand/v2"

	"github.com/feltlab/holdem/internal/deck"
	"github.com/feltlab/holdem/internal/evaluator"
)

var (
	// ErrInvalidState marks a malformed state passed by the caller.
	ErrInvalidState = errors.New("invalid game state")
	// ErrIllegalAction marks an action outside the current legal set.
	ErrIllegalAction = errors.New("illegal action")
	// ErrAmountOutOfRange marks a bet increment outside the quoted range.
	ErrAmountOutOfRange = errors.New("bet amount out of range")
	// ErrGameOver is returned by Start when fewer than two seats have chips.
	ErrGameOver = errors.New("game over")
)

// Seat describes one player at the table before any hand is dealt.
type Seat struct {
	Name       string
	Bot        bool
	Difficulty Difficulty
}

// Game holds the fixed table configuration. Blinds do not escalate.
type Game struct {
	rng           *rand.Rand
	seats         []Seat
	startingChips int
	smallBlind    int
	bigBlind      int
	minBet        int
}

// Option configures a Game.
type Option func(*Game)

// WithStartingChips sets the stack every seat begins the game with.
func WithStartingChips(chips int) Option {
	return func(g *Game) { g.startingChips = chips }
}

// WithBlinds sets the small and big blind. The big blind is also the minimum
// opening bet.
func WithBlinds(small, big int) Option {
	return func(g *Game) {
		g.smallBlind = small
		g.bigBlind = big
	}
}

// New creates a game for the given seats. The RNG drives shuffling and the
// fresh-game button draw; pass a seeded source for deterministic hands.
func New(rng *rand.Rand, seats []Seat, opts ...Option) (*Game, error) {
	if rng == nil {
		return nil, fmt.Errorf("%w: nil rng", ErrInvalidState)
	}
	if len(seats) < 2 {
		return nil, fmt.Errorf("%w: need at least 2 seats, got %d", ErrInvalidState, len(seats))
	}
	g := &Game{
		rng:           rng,
		seats:         append([]Seat(nil), seats...),
		startingChips: 1000,
		smallBlind:    10,
		bigBlind:      20,
		minBet:        10,
	}
	for _, opt := range opts {
		opt(g)
	}
	return g, nil
}

// Start deals a new hand. With a nil previous state every seat gets the
// starting stack and the button lands on a random seat. With a previous state
// the stacks carry over, busted seats are dropped, the button moves one live
// seat clockwise and blinds are re-posted. Returns ErrGameOver when fewer
// than two seats still hold chips.
func (g *Game) Start(prev *GameState) (*GameState, error) {
	var players []*Player
	var button int

	if prev == nil {
		players = make([]*Player, len(g.seats))
		for i, seat := range g.seats {
			players[i] = &Player{
				Name:       seat.Name,
				Bot:        seat.Bot,
				Difficulty: seat.Difficulty,
				Chips:      g.startingChips,
			}
		}
		button = g.rng.IntN(len(players))
	} else {
		var err error
		players, button, err = carryOver(prev)
		if err != nil {
			return nil, err
		}
	}

	d := deck.New(g.rng)
	d.Shuffle()

	// Hole cards go out round-robin starting at the seat after the button.
	n := len(players)
	for i := 1; i <= n; i++ {
		players[(button+i)%n].Hole = d.DealN(2)
	}

	s := &GameState{
		Players:   players,
		DeckCards: d.Remaining(),
		Round:     Preflop,
		Button:    button,
	}

	sb := (button + 1) % n
	bb := (button + 2) % n
	postBlind(players[sb], g.smallBlind)
	postBlind(players[bb], g.bigBlind)

	s.ActivePlayer = s.nextLiveSeat((bb + 1) % n)

	// Short stacks can be all-in from the blinds alone; if no betting is
	// possible the board runs out immediately.
	if s.countLive() <= 1 && noOutstandingCall(s) {
		if err := g.runOut(s); err != nil {
			return nil, err
		}
	}
	return s, nil
}

// carryOver builds the next hand's roster from a finished one.
func carryOver(prev *GameState) ([]*Player, int, error) {
	if err := validState(prev); err != nil {
		return nil, 0, err
	}

	var players []*Player
	button := -1
	n := len(prev.Players)
	// Walk seats clockwise from the old button so the first surviving seat
	// after it becomes the new button.
	for i := 1; i <= n; i++ {
		idx := (prev.Button + i) % n
		p := prev.Players[idx]
		if p.Chips <= 0 {
			continue
		}
		if button == -1 {
			button = len(players)
		}
		players = append(players, &Player{
			Name:       p.Name,
			Bot:        p.Bot,
			Difficulty: p.Difficulty,
			Chips:      p.Chips,
		})
	}
	if len(players) < 2 {
		return nil, 0, ErrGameOver
	}
	return players, button, nil
}

func postBlind(p *Player, blind int) {
	paid := min(blind, p.Chips)
	p.Chips -= paid
	p.Bet = paid
	p.TotalBet = paid
	if p.Chips == 0 {
		p.AllIn = true
	}
}

// LegalActions returns the actions available to the current player. The list
// is empty once the hand is over, at showdown, or for a dead seat. It is a
// pure function of the state: calling it repeatedly yields identical results.
//
// With nothing to call the player may check or open a bet of [minBet, chips].
// Facing a bet the player may fold, call (capped at their stack) or raise by
// an increment of [minBet, chips-toCall].
func (g *Game) LegalActions(s *GameState) ([]LegalAction, error) {
	if err := validState(s); err != nil {
		return nil, err
	}
	if s.HandOver || s.Round == Showdown || s.ActivePlayer < 0 {
		return nil, nil
	}

	p := s.Players[s.ActivePlayer]
	if p.Folded || p.Chips == 0 {
		return nil, nil
	}

	toCall := s.ToCall(s.ActivePlayer)
	var actions []LegalAction
	if toCall == 0 {
		actions = append(actions, LegalAction{Type: ActionCheck})
		if p.Chips >= g.minBet {
			actions = append(actions, LegalAction{Type: ActionBet, Min: g.minBet, Max: p.Chips})
		}
	} else {
		actions = append(actions, LegalAction{Type: ActionFold})
		actions = append(actions, LegalAction{Type: ActionCall, Amount: min(toCall, p.Chips)})
		if p.Chips-toCall >= g.minBet {
			actions = append(actions, LegalAction{Type: ActionBet, Min: g.minBet, Max: p.Chips - toCall})
		}
	}
	return actions, nil
}

// ApplyAction validates the action against the legal set and returns the
// resulting state. The input state is never mutated. Amounts outside the
// quoted bet range are rejected, not clamped; forgiving UIs must clamp before
// calling.
func (g *Game) ApplyAction(s *GameState, action ActionType, amount int) (*GameState, error) {
	legal, err := g.LegalActions(s)
	if err != nil {
		return nil, err
	}

	var chosen *LegalAction
	for i := range legal {
		if legal[i].Type == action {
			chosen = &legal[i]
			break
		}
	}
	if chosen == nil {
		return nil, fmt.Errorf("%w: %s not available", ErrIllegalAction, action)
	}
	if action == ActionBet && (amount < chosen.Min || amount > chosen.Max) {
		return nil, fmt.Errorf("%w: %d not in [%d, %d]", ErrAmountOutOfRange, amount, chosen.Min, chosen.Max)
	}

	next := s.clone()
	idx := next.ActivePlayer
	p := next.Players[idx]
	toCall := next.ToCall(idx)

	switch action {
	case ActionFold:
		p.Folded = true
		p.LastAction = ActionFold
		p.LastActionAmount = 0

	case ActionCheck:
		p.LastAction = ActionCheck
		p.LastActionAmount = 0

	case ActionCall:
		pay := min(toCall, p.Chips)
		wager(p, pay)
		p.LastAction = ActionCall
		p.LastActionAmount = pay

	case ActionBet:
		pay := toCall + amount
		wager(p, pay)
		if toCall > 0 {
			p.LastAction = ActionRaise
		} else {
			p.LastAction = ActionBet
		}
		p.LastActionAmount = pay
		// A bet or raise reopens the action: everyone else must act again.
		for _, other := range next.Players {
			if other != p {
				other.acted = false
			}
		}
	}
	p.acted = true

	if err := g.settle(next, idx); err != nil {
		return nil, err
	}
	return next, nil
}

// settle advances the state after an action at seat idx: uncontested wins,
// round completion, all-in run-outs and turn rotation.
func (g *Game) settle(s *GameState, idx int) error {
	// Everyone else folded: the last player standing wins without showdown.
	if s.countNotFolded() == 1 {
		s.sweepBets()
		s.Round = Showdown
		return g.finishHand(s)
	}

	advanced := false
	if s.bettingComplete() {
		s.sweepBets()
		switch s.Round {
		case Preflop:
			s.Round = Flop
			s.dealCommunity(3)
		case Flop:
			s.Round = Turn
			s.dealCommunity(1)
		case Turn:
			s.Round = River
			s.dealCommunity(1)
		case River:
			s.Round = Showdown
			return g.finishHand(s)
		}
		advanced = true
		s.ActivePlayer = s.nextLiveSeat((s.Button + 1) % len(s.Players))
	}

	// With at most one seat able to bet and nothing left to call, betting is
	// dead for the rest of the hand: run the board out to showdown.
	if s.countLive() <= 1 && noOutstandingCall(s) {
		return g.runOut(s)
	}

	if !advanced {
		s.ActivePlayer = s.nextLiveSeat((idx + 1) % len(s.Players))
	}
	if s.ActivePlayer < 0 {
		return g.runOut(s)
	}
	return nil
}

// noOutstandingCall reports whether every live seat has matched the table's
// highest bet (all-in bets above a live seat's stack notwithstanding, a live
// seat below the target still owes a decision).
func noOutstandingCall(s *GameState) bool {
	target := s.HighestBet()
	for _, p := range s.Players {
		if p.Live() && p.Bet != target {
			return false
		}
	}
	return true
}

// runOut deals the remaining community cards without further betting and
// resolves the showdown. Models the all-in run-out.
func (g *Game) runOut(s *GameState) error {
	s.sweepBets()
	if s.countNotFolded() > 1 {
		s.dealCommunity(5 - len(s.Community))
	}
	s.Round = Showdown
	return g.finishHand(s)
}

// finishHand awards all pots and marks the hand complete.
func (g *Game) finishHand(s *GameState) error {
	s.sweepBets()
	if err := awardPots(s); err != nil {
		return err
	}
	s.HandOver = true
	s.ActivePlayer = -1

	withChips := 0
	for _, p := range s.Players {
		if p.Chips > 0 {
			withChips++
		}
	}
	s.GameOver = withChips < 2
	return nil
}

func wager(p *Player, pay int) {
	p.Chips -= pay
	p.Bet += pay
	p.TotalBet += pay
	if p.Chips == 0 {
		p.AllIn = true
	}
}

// PotTotal returns the pot plus all uncollected bets.
func PotTotal(s *GameState) int {
	total := s.Pot
	for _, p := range s.Players {
		total += p.Bet
	}
	return total
}

// Status reports the hand's lifecycle phase.
type Status string

const (
	StatusPlaying  Status = "playing"
	StatusShowdown Status = "showdown"
	StatusEnded    Status = "ended"
)

// HandStatus returns the lifecycle phase of the hand.
func HandStatus(s *GameState) Status {
	switch {
	case s.HandOver:
		return StatusEnded
	case s.Round == Showdown:
		return StatusShowdown
	default:
		return StatusPlaying
	}
}

// WinnerSeats returns the seats that won at least one pot this hand.
func WinnerSeats(s *GameState) []int {
	return append([]int(nil), s.Winners...)
}

// BestHandName names the best 5-card hand available from the hole and
// community cards, for UI hint panels. Empty until at least five cards are
// visible.
func BestHandName(hole, community []deck.Card) string {
	all := make([]deck.Card, 0, len(hole)+len(community))
	all = append(all, hole...)
	all = append(all, community...)
	if len(all) < 5 {
		return ""
	}
	rank, err := evaluator.BestOf(all)
	if err != nil {
		return ""
	}
	return rank.Category.String()
}

func validState(s *GameState) error {
	if s == nil {
		return fmt.Errorf("%w: nil state", ErrInvalidState)
	}
	if len(s.Players) == 0 {
		return fmt.Errorf("%w: no players", ErrInvalidState)
	}
	if s.ActivePlayer >= len(s.Players) {
		return fmt.Errorf("%w: active player %d out of range", ErrInvalidState, s.ActivePlayer)
	}
	return nil
}
