// Package table orchestrates a running game: it owns the current state,
// schedules bot turns after a randomized think time and serializes all
// actions. The engine itself is pure; this is the only package with mutable
// game state.
package table

import (
	"fmt"
	rand "math/rand/v2"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"

	"github.com/feltlab/holdem/internal/bot"
	"github.com/feltlab/holdem/internal/engine"
)

// UpdateFunc receives every new state the runner produces. It is called
// without the runner's lock held, but never concurrently with itself.
type UpdateFunc func(*engine.GameState)

// Runner drives one table of humans and bots.
type Runner struct {
	mu         sync.Mutex
	game       *engine.Game
	state      *engine.GameState
	generation uint64

	clock      quartz.Clock
	rng        *rand.Rand
	logger     *log.Logger
	strategies map[engine.Difficulty]bot.Strategy
	onUpdate   UpdateFunc
}

// New creates a runner. The clock paces bot think time; tests inject a mock
// to step through turns synchronously. The RNG drives think-time jitter and
// bot decisions and is independent of the engine's shuffle RNG. Bot options
// apply to every seated strategy.
func New(game *engine.Game, clock quartz.Clock, rng *rand.Rand, logger *log.Logger, onUpdate UpdateFunc, botOpts ...bot.Option) *Runner {
	strategies := map[engine.Difficulty]bot.Strategy{
		engine.Easy:   bot.New(engine.Easy, rng, logger, botOpts...),
		engine.Normal: bot.New(engine.Normal, rng, logger, botOpts...),
		engine.Hard:   bot.New(engine.Hard, rng, logger, botOpts...),
	}
	return &Runner{
		game:       game,
		clock:      clock,
		rng:        rng,
		logger:     logger.WithPrefix("table"),
		strategies: strategies,
		onUpdate:   onUpdate,
	}
}

// StartHand deals the next hand, carrying over stacks from the previous one.
// Returns engine.ErrGameOver once fewer than two seats have chips.
func (r *Runner) StartHand() error {
	r.mu.Lock()
	next, err := r.game.Start(r.state)
	if err != nil {
		r.mu.Unlock()
		return err
	}
	r.logger.Info("hand started",
		"button", next.Button, "players", len(next.Players))
	r.publishLocked(next)
	return nil
}

// State returns the current state. The state is immutable; callers may read
// it freely.
func (r *Runner) State() *engine.GameState {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.state
}

// HumanAction applies an action on behalf of the active human seat.
func (r *Runner) HumanAction(action engine.ActionType, amount int) error {
	r.mu.Lock()
	s := r.state
	if s == nil || s.HandOver || s.ActivePlayer < 0 {
		r.mu.Unlock()
		return fmt.Errorf("%w: no action pending", engine.ErrInvalidState)
	}
	if s.Players[s.ActivePlayer].Bot {
		r.mu.Unlock()
		return fmt.Errorf("%w: not the human's turn", engine.ErrIllegalAction)
	}

	next, err := r.game.ApplyAction(s, action, amount)
	if err != nil {
		r.mu.Unlock()
		return err
	}
	r.logger.Info("human acted", "action", action, "amount", amount)
	r.publishLocked(next)
	return nil
}

// publishLocked installs a new state, bumps the generation so queued bot
// callbacks for the old state discard themselves, notifies the listener and
// schedules the next bot turn. The lock is released before the callback runs
// and is not held on return.
func (r *Runner) publishLocked(s *engine.GameState) {
	r.state = s
	r.generation++
	gen := r.generation

	if !s.HandOver && s.ActivePlayer >= 0 && s.Players[s.ActivePlayer].Bot {
		p := s.Players[s.ActivePlayer]
		delay := bot.ThinkTime(p.Difficulty, r.rng)
		r.logger.Debug("scheduling bot turn",
			"seat", s.ActivePlayer, "name", p.Name, "delay", delay)
		r.clock.AfterFunc(delay, func() {
			r.botTurn(gen)
		})
	}
	r.mu.Unlock()

	if r.onUpdate != nil {
		r.onUpdate(s)
	}
}

// botTurn fires from the clock. A generation mismatch means the state moved
// on since this turn was scheduled (new hand, or the action was resolved some
// other way) and the turn is dropped.
func (r *Runner) botTurn(gen uint64) {
	r.mu.Lock()
	if gen != r.generation {
		r.logger.Debug("discarding stale bot turn", "generation", gen)
		r.mu.Unlock()
		return
	}
	s := r.state
	if s == nil || s.HandOver || s.ActivePlayer < 0 || !s.Players[s.ActivePlayer].Bot {
		r.mu.Unlock()
		return
	}

	p := s.Players[s.ActivePlayer]
	strategy := r.strategies[p.Difficulty]
	decision, ok := strategy.Decide(r.game, s)
	if !ok {
		r.logger.Warn("bot had no legal action", "seat", s.ActivePlayer, "name", p.Name)
		r.mu.Unlock()
		return
	}

	next, err := r.game.ApplyAction(s, decision.Action, decision.Amount)
	if err != nil {
		r.logger.Error("bot action rejected",
			"seat", s.ActivePlayer, "name", p.Name,
			"action", decision.Action, "amount", decision.Amount, "err", err)
		r.mu.Unlock()
		return
	}
	r.logger.Info("bot acted",
		"name", p.Name, "action", decision.Action, "amount", decision.Amount)
	r.publishLocked(next)
}
