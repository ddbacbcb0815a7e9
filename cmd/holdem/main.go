package main

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/alecthomas/kong"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
	"github.com/coder/quartz"

	"github.com/feltlab/holdem/internal/bot"
	"github.com/feltlab/holdem/internal/config"
	"github.com/feltlab/holdem/internal/deck"
	"github.com/feltlab/holdem/internal/engine"
	"github.com/feltlab/holdem/internal/randutil"
	"github.com/feltlab/holdem/internal/table"
)

var (
	titleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#2E7D32")).
			Padding(0, 1).
			Bold(true)

	redCardStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF5555")).Bold(true)
	blackCardStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#FAFAFA")).Bold(true)
	potStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("#FFD700")).Bold(true)
	winnerStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#50FA7B")).Bold(true)
)

type CLI struct {
	Config   string `short:"c" help:"Path to HCL configuration file" default:"holdem.hcl"`
	Seed     int64  `short:"s" help:"RNG seed for reproducible games (0 picks a random seed)" default:"0"`
	LogLevel string `help:"Log level (debug, info, warn, error)" default:"warn"`
}

func main() {
	var cli CLI
	ctx := kong.Parse(&cli)

	cfg, err := config.Load(cli.Config)
	if err != nil {
		log.Fatal("Failed to load configuration", "error", err)
	}
	if err := cfg.Validate(); err != nil {
		log.Fatal("Invalid configuration", "error", err)
	}

	level, err := log.ParseLevel(cli.LogLevel)
	if err != nil {
		level, _ = log.ParseLevel(cfg.Game.LogLevel)
	}
	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05",
		Level:           level,
	})

	seed := cli.Seed
	if seed == 0 {
		seed = cfg.Game.Seed
	}

	fmt.Print(titleStyle.Render(" ♠ ♥ Texas Hold'em ♦ ♣ "))
	fmt.Println()
	fmt.Println()

	if err := run(cfg, seed, logger); err != nil {
		log.Fatal("Game failed", "error", err)
	}
	ctx.Exit(0)
}

func run(cfg *config.Config, seed int64, logger *log.Logger) error {
	seats, err := cfg.Seats()
	if err != nil {
		return err
	}

	gameRNG := randutil.New(seed)
	botRNG := randutil.New(seed + 1)

	game, err := engine.New(gameRNG, seats,
		engine.WithStartingChips(cfg.Game.StartingChips),
		engine.WithBlinds(cfg.Game.SmallBlind, cfg.Game.BigBlind))
	if err != nil {
		return err
	}

	updates := make(chan *engine.GameState, 64)
	runner := table.New(game, quartz.NewReal(), botRNG, logger, func(s *engine.GameState) {
		updates <- s
	}, bot.WithTrials(cfg.Game.BotTrials))

	if err := runner.StartHand(); err != nil {
		return err
	}

	input := bufio.NewScanner(os.Stdin)
	for s := range updates {
		render(s)

		if s.HandOver {
			announceWinners(s)
			if s.GameOver {
				fmt.Println("\nGame over!")
				return nil
			}
			if !promptContinue(input) {
				return nil
			}
			if err := runner.StartHand(); err != nil {
				if errors.Is(err, engine.ErrGameOver) {
					fmt.Println("\nGame over!")
					return nil
				}
				return err
			}
			continue
		}

		if s.ActivePlayer >= 0 && !s.Players[s.ActivePlayer].Bot {
			if err := promptAction(input, game, runner, s); err != nil {
				if errors.Is(err, errQuit) {
					return nil
				}
				return err
			}
		}
	}
	return nil
}

var errQuit = errors.New("player quit")

func promptContinue(input *bufio.Scanner) bool {
	fmt.Print("\nDeal the next hand? [Y/n] ")
	if !input.Scan() {
		return false
	}
	answer := strings.ToLower(strings.TrimSpace(input.Text()))
	return answer != "n" && answer != "q" && answer != "no"
}

func promptAction(input *bufio.Scanner, game *engine.Game, runner *table.Runner, s *engine.GameState) error {
	actions, err := game.LegalActions(s)
	if err != nil {
		return err
	}
	if len(actions) == 0 {
		return nil
	}

	for {
		fmt.Printf("\nYour move [%s] (q to quit): ", describeActions(actions))
		if !input.Scan() {
			return errQuit
		}
		action, amount, ok := parseAction(input.Text(), actions)
		if !ok {
			if strings.TrimSpace(input.Text()) == "q" {
				return errQuit
			}
			fmt.Println("Didn't catch that, try again.")
			continue
		}
		if err := runner.HumanAction(action, amount); err != nil {
			fmt.Printf("Can't do that: %v\n", err)
			continue
		}
		return nil
	}
}

func describeActions(actions []engine.LegalAction) string {
	var parts []string
	for _, a := range actions {
		switch a.Type {
		case engine.ActionFold:
			parts = append(parts, "f=fold")
		case engine.ActionCheck:
			parts = append(parts, "k=check")
		case engine.ActionCall:
			parts = append(parts, fmt.Sprintf("c=call %d", a.Amount))
		case engine.ActionBet:
			parts = append(parts, fmt.Sprintf("b <n>=bet %d-%d", a.Min, a.Max))
		}
	}
	return strings.Join(parts, ", ")
}

func parseAction(line string, actions []engine.LegalAction) (engine.ActionType, int, bool) {
	fields := strings.Fields(strings.ToLower(line))
	if len(fields) == 0 {
		return engine.ActionNone, 0, false
	}
	var want engine.ActionType
	switch fields[0] {
	case "f", "fold":
		want = engine.ActionFold
	case "k", "check":
		want = engine.ActionCheck
	case "c", "call":
		want = engine.ActionCall
	case "b", "bet", "r", "raise":
		want = engine.ActionBet
	default:
		return engine.ActionNone, 0, false
	}

	for _, a := range actions {
		if a.Type != want {
			continue
		}
		amount := a.Amount
		if want == engine.ActionBet {
			if len(fields) < 2 {
				return engine.ActionNone, 0, false
			}
			n, err := strconv.Atoi(fields[1])
			if err != nil {
				return engine.ActionNone, 0, false
			}
			amount = n
		}
		return want, amount, true
	}
	return engine.ActionNone, 0, false
}

func render(s *engine.GameState) {
	fmt.Printf("\n━━━ %s ━━━  pot %s\n", s.Round, potStyle.Render(strconv.Itoa(engine.PotTotal(s))))
	if len(s.Community) > 0 {
		fmt.Printf("Board: %s\n", renderCards(s.Community))
	}

	for i, p := range s.Players {
		marker := "  "
		if i == s.Button {
			marker = "D "
		}
		if i == s.ActivePlayer {
			marker = "> "
		}
		status := ""
		switch {
		case p.Folded:
			status = " (folded)"
		case p.AllIn:
			status = " (all-in)"
		}
		hole := "🂠 🂠"
		if !p.Bot || s.Round == engine.Showdown || s.HandOver {
			hole = renderCards(p.Hole)
		}
		last := ""
		if p.LastAction != engine.ActionNone {
			last = fmt.Sprintf("  %s", strings.ToLower(p.LastAction.String()))
			if p.LastActionAmount > 0 {
				last += fmt.Sprintf(" %d", p.LastActionAmount)
			}
		}
		fmt.Printf("%s%-8s %4d chips  bet %3d  %s%s%s\n",
			marker, p.Name, p.Chips, p.Bet, hole, status, last)

		if !p.Bot && !p.Folded {
			if name := engine.BestHandName(p.Hole, s.Community); name != "" {
				fmt.Printf("          best hand: %s\n", name)
			}
		}
	}
}

func renderCards(cards []deck.Card) string {
	var parts []string
	for _, c := range cards {
		style := blackCardStyle
		if c.IsRed() {
			style = redCardStyle
		}
		parts = append(parts, style.Render(c.String()))
	}
	return strings.Join(parts, " ")
}

func announceWinners(s *engine.GameState) {
	for _, idx := range engine.WinnerSeats(s) {
		p := s.Players[idx]
		hand := engine.BestHandName(p.Hole, s.Community)
		if hand != "" && len(s.Community) == 5 && !p.Folded {
			fmt.Println(winnerStyle.Render(fmt.Sprintf("%s wins with %s", p.Name, hand)))
		} else {
			fmt.Println(winnerStyle.Render(fmt.Sprintf("%s wins the pot", p.Name)))
		}
	}
}
