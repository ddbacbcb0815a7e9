package engine

import (
	"github.com/feltlab/holdem/internal/deck"
)

// Round represents the betting round
type Round int

const (
	Preflop Round = iota
	Flop
	Turn
	River
	Showdown
)

func (r Round) String() string {
	return [...]string{"preflop", "flop", "turn", "river", "showdown"}[r]
}

// Difficulty selects a bot's decision policy.
type Difficulty int

const (
	Easy Difficulty = iota
	Normal
	Hard
)

func (d Difficulty) String() string {
	return [...]string{"easy", "normal", "hard"}[d]
}

// Player is one seat's state within a hand.
type Player struct {
	Name       string
	Bot        bool
	Difficulty Difficulty

	Chips    int
	Hole     []deck.Card
	Bet      int // wagered this betting round
	TotalBet int // cumulative contribution this hand
	Folded   bool
	AllIn    bool

	// Narration of the most recent action this round, for display.
	LastAction       ActionType
	LastActionAmount int

	// acted since the last bet or raise this round. Distinct from LastAction
	// so a raise can reopen the action without wiping the narration.
	acted bool
}

// Live reports whether the seat can still act: not folded and has chips.
func (p *Player) Live() bool {
	return !p.Folded && p.Chips > 0
}

func (p *Player) clone() *Player {
	c := *p
	c.Hole = append([]deck.Card(nil), p.Hole...)
	return &c
}

// GameState is an immutable snapshot of a hand. Every transition builds a new
// state from the old one's fields; callers never observe in-place mutation.
type GameState struct {
	Players      []*Player
	DeckCards    []deck.Card // remaining deck, next card dealt first
	Community    []deck.Card
	Round        Round
	Pot          int // chips swept from completed betting rounds
	Button       int
	ActivePlayer int // -1 once the hand is over
	Winners      []int
	HandOver     bool
	GameOver     bool // fewer than two players still hold chips
}

func (s *GameState) clone() *GameState {
	c := &GameState{
		Players:      make([]*Player, len(s.Players)),
		DeckCards:    append([]deck.Card(nil), s.DeckCards...),
		Community:    append([]deck.Card(nil), s.Community...),
		Round:        s.Round,
		Pot:          s.Pot,
		Button:       s.Button,
		ActivePlayer: s.ActivePlayer,
		Winners:      append([]int(nil), s.Winners...),
		HandOver:     s.HandOver,
		GameOver:     s.GameOver,
	}
	for i, p := range s.Players {
		c.Players[i] = p.clone()
	}
	return c
}

// HighestBet returns the largest per-round bet on the table.
func (s *GameState) HighestBet() int {
	highest := 0
	for _, p := range s.Players {
		if p.Bet > highest {
			highest = p.Bet
		}
	}
	return highest
}

// ToCall returns the amount seat idx must add to match the highest bet.
func (s *GameState) ToCall(idx int) int {
	owed := s.HighestBet() - s.Players[idx].Bet
	if owed < 0 {
		return 0
	}
	return owed
}

func (s *GameState) countNotFolded() int {
	n := 0
	for _, p := range s.Players {
		if !p.Folded {
			n++
		}
	}
	return n
}

func (s *GameState) countLive() int {
	n := 0
	for _, p := range s.Players {
		if p.Live() {
			n++
		}
	}
	return n
}

// nextLiveSeat returns the first seat at or after from (wrapping) that can
// still act, or -1 if none exists.
func (s *GameState) nextLiveSeat(from int) int {
	n := len(s.Players)
	for i := 0; i < n; i++ {
		idx := (from + i) % n
		if s.Players[idx].Live() {
			return idx
		}
	}
	return -1
}

// bettingComplete reports whether the current betting round is finished:
// every live seat has matched the table's highest bet and has acted since the
// last bet or raise. All-in and folded seats satisfy the condition
// automatically and are never re-prompted.
func (s *GameState) bettingComplete() bool {
	target := s.HighestBet()
	for _, p := range s.Players {
		if !p.Live() {
			continue
		}
		if !p.acted || p.Bet != target {
			return false
		}
	}
	return true
}

// sweepBets moves all per-round bets into the pot and resets the per-round
// betting fields for a fresh round.
func (s *GameState) sweepBets() {
	for _, p := range s.Players {
		s.Pot += p.Bet
		p.Bet = 0
		p.LastAction = ActionNone
		p.LastActionAmount = 0
		p.acted = false
	}
}

func (s *GameState) dealCommunity(n int) {
	for i := 0; i < n && len(s.DeckCards) > 0; i++ {
		s.Community = append(s.Community, s.DeckCards[0])
		s.DeckCards = s.DeckCards[1:]
	}
}
