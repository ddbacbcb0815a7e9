package main

import (
	"fmt"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/alecthomas/kong"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/feltlab/holdem/internal/bot"
	"github.com/feltlab/holdem/internal/config"
	"github.com/feltlab/holdem/internal/engine"
	"github.com/feltlab/holdem/internal/randutil"
)

var headerStyle = lipgloss.NewStyle().
	Foreground(lipgloss.Color("#FAFAFA")).
	Background(lipgloss.Color("#1565C0")).
	Padding(0, 1).
	Bold(true)

type CLI struct {
	Games    int    `short:"g" help:"Number of games to simulate" default:"100"`
	Bots     string `short:"b" help:"Comma-separated bot difficulties" default:"easy,normal,hard"`
	Seed     int64  `short:"s" help:"RNG seed (0 picks time-based)" default:"0"`
	Trials   int    `short:"t" help:"Monte Carlo trials per decision (0 keeps per-tier defaults)" default:"0"`
	MaxHands int    `help:"Safety cap on hands per game" default:"10000"`
	LogLevel string `help:"Log level (debug, info, warn, error)" default:"error"`
}

type playerStats struct {
	name       string
	difficulty engine.Difficulty
	gamesWon   int
	handsWon   int
	netChips   int
}

func main() {
	var cli CLI
	ctx := kong.Parse(&cli)

	level, err := log.ParseLevel(cli.LogLevel)
	if err != nil {
		log.Fatal("Invalid log level", "level", cli.LogLevel)
	}
	logger := log.NewWithOptions(os.Stderr, log.Options{Level: level})

	seed := cli.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	seats, err := parseSeats(cli.Bots)
	if err != nil {
		log.Fatal("Invalid bot list", "error", err)
	}

	fmt.Println(headerStyle.Render(" Hold'em bot simulation "))
	fmt.Printf("games=%d bots=%s seed=%d\n\n", cli.Games, cli.Bots, seed)

	stats := make([]playerStats, len(seats))
	for i, s := range seats {
		stats[i] = playerStats{name: s.Name, difficulty: s.Difficulty}
	}

	start := time.Now()
	totalHands, totalShowdowns := 0, 0
	for gameNum := 0; gameNum < cli.Games; gameNum++ {
		hands, showdowns, err := runGame(seats, seed+int64(gameNum), cli.MaxHands, cli.Trials, logger, stats)
		if err != nil {
			log.Fatal("Simulation failed", "game", gameNum, "error", err)
		}
		totalHands += hands
		totalShowdowns += showdowns
	}
	elapsed := time.Since(start)

	printSummary(stats, cli.Games, totalHands, totalShowdowns, elapsed)
	ctx.Exit(0)
}

func parseSeats(spec string) ([]engine.Seat, error) {
	parts := strings.Split(spec, ",")
	if len(parts) < 2 {
		return nil, fmt.Errorf("need at least two bots, got %d", len(parts))
	}
	seats := make([]engine.Seat, len(parts))
	for i, p := range parts {
		d, err := config.ParseDifficulty(strings.TrimSpace(p))
		if err != nil {
			return nil, err
		}
		seats[i] = engine.Seat{
			Name:       fmt.Sprintf("%s-%d", strings.TrimSpace(p), i+1),
			Bot:        true,
			Difficulty: d,
		}
	}
	return seats, nil
}

// runGame plays one game to completion and returns the number of hands dealt
// and how many of them reached a contested showdown. Bot turns run
// synchronously with no think-time pacing.
func runGame(seats []engine.Seat, seed int64, maxHands, trials int, logger *log.Logger, stats []playerStats) (int, int, error) {
	gameRNG := randutil.New(seed)
	botRNG := randutil.New(seed + 1)

	game, err := engine.New(gameRNG, seats)
	if err != nil {
		return 0, 0, err
	}
	strategies := map[engine.Difficulty]bot.Strategy{
		engine.Easy:   bot.New(engine.Easy, botRNG, logger, bot.WithTrials(trials)),
		engine.Normal: bot.New(engine.Normal, botRNG, logger, bot.WithTrials(trials)),
		engine.Hard:   bot.New(engine.Hard, botRNG, logger, bot.WithTrials(trials)),
	}

	byName := map[string]*playerStats{}
	for i := range stats {
		byName[stats[i].name] = &stats[i]
	}

	var state *engine.GameState
	hands, showdowns := 0, 0
	for hands < maxHands {
		state, err = game.Start(state)
		if err != nil {
			return hands, showdowns, err
		}
		hands++

		for !state.HandOver {
			p := state.Players[state.ActivePlayer]
			decision, ok := strategies[p.Difficulty].Decide(game, state)
			if !ok {
				return hands, showdowns, fmt.Errorf("bot %s stuck with no action", p.Name)
			}
			state, err = game.ApplyAction(state, decision.Action, decision.Amount)
			if err != nil {
				return hands, showdowns, fmt.Errorf("bot %s: %w", p.Name, err)
			}
		}

		contested := 0
		for _, p := range state.Players {
			if !p.Folded {
				contested++
			}
		}
		if contested > 1 {
			showdowns++
		}
		for _, idx := range engine.WinnerSeats(state) {
			byName[state.Players[idx].Name].handsWon++
		}

		if state.GameOver {
			settleNetChips(state, byName)
			for _, p := range state.Players {
				if p.Chips > 0 {
					byName[p.Name].gamesWon++
				}
			}
			return hands, showdowns, nil
		}
	}
	logger.Warn("game hit hand cap without a winner", "hands", hands)
	settleNetChips(state, byName)
	return hands, showdowns, nil
}

// settleNetChips accumulates each seat's profit against the starting stack.
// Busted players are no longer in the final state and count as a full loss.
func settleNetChips(state *engine.GameState, byName map[string]*playerStats) {
	const startingChips = 1000
	seated := map[string]bool{}
	for _, p := range state.Players {
		seated[p.Name] = true
		byName[p.Name].netChips += p.Chips - startingChips
	}
	for name, ps := range byName {
		if !seated[name] {
			ps.netChips -= startingChips
		}
	}
}

func printSummary(stats []playerStats, games, totalHands, totalShowdowns int, elapsed time.Duration) {
	sort.SliceStable(stats, func(i, j int) bool {
		return stats[i].gamesWon > stats[j].gamesWon
	})

	fmt.Printf("%-12s %-8s %10s %10s %8s %10s\n", "player", "tier", "games won", "hands won", "win %", "net chips")
	for _, s := range stats {
		pct := 0.0
		if games > 0 {
			pct = 100 * float64(s.gamesWon) / float64(games)
		}
		fmt.Printf("%-12s %-8s %10d %10d %7.1f%% %+10d\n",
			s.name, strings.ToLower(s.difficulty.String()), s.gamesWon, s.handsWon, pct, s.netChips)
	}

	showdownRate := 0.0
	if totalHands > 0 {
		showdownRate = 100 * float64(totalShowdowns) / float64(totalHands)
	}
	perSec := float64(totalHands) / elapsed.Seconds()
	fmt.Printf("\n%d games, %d hands (%.1f%% to showdown) in %s (%.0f hands/sec)\n",
		games, totalHands, showdownRate, elapsed.Round(time.Millisecond), perSec)
}
