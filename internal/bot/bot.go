// Package bot implements the computer players. Each difficulty tier is a
// Strategy over the same decision interface: given the game and the current
// state it returns exactly one action from the legal set, or reports that no
// action is available (a dead seat is a no-op for the caller).
package bot

import (
	rand "math/rand/v2"
	"time"

	"github.com/charmbracelet/log"

	"github.com/feltlab/holdem/internal/engine"
)

// Decision is the single action a strategy pushes per invocation.
type Decision struct {
	Action engine.ActionType
	Amount int
}

// Strategy decides a bot's action. Decide returns false when the current
// player has no legal actions.
type Strategy interface {
	Decide(g *engine.Game, s *engine.GameState) (Decision, bool)
}

// profile tunes a difficulty tier: simulation effort, betting temperament and
// cosmetic think-time pacing.
type profile struct {
	Trials       int
	Aggression   float64
	BluffRate    float64
	ThinkTimeMin time.Duration
	ThinkTimeMax time.Duration
}

var profiles = map[engine.Difficulty]profile{
	engine.Easy: {
		Trials:       100,
		Aggression:   0.3,
		BluffRate:    0.1,
		ThinkTimeMin: 800 * time.Millisecond,
		ThinkTimeMax: 1500 * time.Millisecond,
	},
	engine.Normal: {
		Trials:       300,
		Aggression:   0.5,
		BluffRate:    0.2,
		ThinkTimeMin: 1200 * time.Millisecond,
		ThinkTimeMax: 2500 * time.Millisecond,
	},
	engine.Hard: {
		Trials:       600,
		Aggression:   0.7,
		BluffRate:    0.3,
		ThinkTimeMin: 2 * time.Second,
		ThinkTimeMax: 4 * time.Second,
	},
}

// Option adjusts a strategy's profile.
type Option func(*profile)

// WithTrials overrides the tier's Monte Carlo trial count. Zero or negative
// keeps the default.
func WithTrials(n int) Option {
	return func(p *profile) {
		if n > 0 {
			p.Trials = n
		}
	}
}

// New returns the strategy for a difficulty tier. The RNG drives bluffing and
// Monte Carlo sampling; pass a seeded source for reproducible decisions.
func New(d engine.Difficulty, rng *rand.Rand, logger *log.Logger, opts ...Option) Strategy {
	p := profiles[d]
	for _, opt := range opts {
		opt(&p)
	}
	switch d {
	case engine.Normal:
		return &normalStrategy{profile: p, rng: rng, logger: logger.WithPrefix("bot-normal")}
	case engine.Hard:
		return &hardStrategy{profile: p, rng: rng, logger: logger.WithPrefix("bot-hard")}
	default:
		return &easyStrategy{}
	}
}

// ThinkTime returns a randomized pause before a bot of the given difficulty
// acts. Purely cosmetic pacing for the orchestrator, not a correctness
// mechanism.
func ThinkTime(d engine.Difficulty, rng *rand.Rand) time.Duration {
	p := profiles[d]
	spread := p.ThinkTimeMax - p.ThinkTimeMin
	if spread <= 0 {
		return p.ThinkTimeMin
	}
	return p.ThinkTimeMin + time.Duration(rng.Int64N(int64(spread)))
}

// pickAction finds a legal action descriptor by type.
func pickAction(actions []engine.LegalAction, t engine.ActionType) (engine.LegalAction, bool) {
	for _, a := range actions {
		if a.Type == t {
			return a, true
		}
	}
	return engine.LegalAction{}, false
}

// potOdds is the fraction of the resulting pot a call pays for.
func potOdds(pot, toCall int) float64 {
	if toCall <= 0 {
		return 0
	}
	return float64(toCall) / float64(pot+toCall)
}

// betAmount sizes a bet increment from the pot and estimated win rate,
// clamped to the quoted legal range.
func betAmount(action engine.LegalAction, pot int, winRate, aggression float64) int {
	var size float64
	switch {
	case winRate > 0.7:
		size = float64(pot) * (0.75 + aggression*0.25)
	case winRate > 0.5:
		size = float64(pot) * (0.5 + aggression*0.3)
	case winRate > 0.3:
		size = float64(pot) * (0.25 + aggression*0.2)
	default:
		size = float64(action.Min)
	}
	amount := int(size)
	if amount < action.Min {
		amount = action.Min
	}
	if amount > action.Max {
		amount = action.Max
	}
	return amount
}

// positionFactor loosens play as the seat gets closer to the button: early
// seats play tighter, late seats looser.
func positionFactor(s *engine.GameState, seat int) float64 {
	n := len(s.Players)
	if n < 2 {
		return 1.0
	}
	// Distance clockwise from the seat to the button; the button itself acts
	// last and plays loosest.
	dist := ((s.Button-seat)%n + n) % n
	switch {
	case dist == 0:
		return 1.1
	case dist <= n/3:
		return 1.05
	case dist <= 2*n/3:
		return 1.0
	default:
		return 0.9
	}
}

func adjustForPosition(winRate, factor float64) float64 {
	adjusted := winRate * factor
	if adjusted > 1 {
		return 1
	}
	return adjusted
}
