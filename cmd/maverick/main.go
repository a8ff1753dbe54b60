package main

import (
	"fmt"
	"os"
	"sort"
	"text/tabwriter"

	"github.com/alecthomas/kong"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/maverickhq/maverick/internal/config"
	"github.com/maverickhq/maverick/internal/decision"
	"github.com/maverickhq/maverick/internal/deck"
	"github.com/maverickhq/maverick/internal/equity"
	"github.com/maverickhq/maverick/internal/evaluator"
	"github.com/maverickhq/maverick/internal/handhistory"
	"github.com/maverickhq/maverick/internal/outs"
	"github.com/maverickhq/maverick/internal/simulator"
	"github.com/maverickhq/maverick/internal/statistics"
)

type CLI struct {
	Config  string `help:"Path to HCL config file" default:"maverick.hcl"`
	Verbose bool   `short:"v" help:"Verbose logging"`

	Evaluate EvaluateCmd `cmd:"" help:"Rank the best five-card hand from 5+ cards"`
	Outs     OutsCmd     `cmd:"" help:"Enumerate cards that improve a hand"`
	Simulate SimulateCmd `cmd:"" help:"Estimate win probability by Monte Carlo simulation"`
	Equity   EquityCmd   `cmd:"" help:"Look up approximate preflop equity for a starting hand"`
	Advise   AdviseCmd   `cmd:"" help:"Recommend an action from equity and pot odds"`
	Stats    StatsCmd    `cmd:"" help:"Summarize player tendencies from a hand history log"`
}

// appContext carries shared state into subcommands.
type appContext struct {
	cfg    *config.Config
	logger *log.Logger
}

var (
	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("15"))

	handStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("14"))

	categoryStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("12"))

	winStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("10"))

	percentStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("9"))
)

func main() {
	var cli CLI
	ctx := kong.Parse(&cli,
		kong.Name("maverick"),
		kong.Description("Texas Hold'em hand strength, outs, and equity engine"),
	)

	logger := log.New(os.Stderr)
	if cli.Verbose {
		logger.SetLevel(log.DebugLevel)
	}

	cfg, err := config.Load(cli.Config)
	if err != nil {
		logger.Error("failed to load config", "path", cli.Config, "error", err)
		ctx.Exit(1)
	}

	if err := ctx.Run(&appContext{cfg: cfg, logger: logger}); err != nil {
		logger.Error("command failed", "error", err)
		ctx.Exit(1)
	}
}

// EvaluateCmd ranks a card set into its best five-card hand.
type EvaluateCmd struct {
	Cards string `arg:"" help:"Cards in notation like 'AhKhQhJhTh2c3d'"`
}

func (c *EvaluateCmd) Run(app *appContext) error {
	cards, err := deck.ParseCards(c.Cards)
	if err != nil {
		return err
	}

	hand, err := evaluator.Evaluate(cards)
	if err != nil {
		return err
	}

	fmt.Printf("%s %s\n", handStyle.Render(cardString(cards)), categoryStyle.Render(hand.String()))
	return nil
}

// OutsCmd enumerates improvement draws for hole cards and a board.
type OutsCmd struct {
	Hole  string `arg:"" help:"Two hole cards, e.g. 'AhKh'"`
	Board string `short:"b" help:"Board cards (0-5), e.g. 'QhJh2c'"`
}

func (c *OutsCmd) Run(app *appContext) error {
	hole, err := deck.ParseCards(c.Hole)
	if err != nil {
		return err
	}
	if len(hole) != 2 {
		return fmt.Errorf("%w: expected exactly 2 hole cards, got %d", deck.ErrInvalidInput, len(hole))
	}

	var board []deck.Card
	if c.Board != "" {
		if board, err = deck.ParseCards(c.Board); err != nil {
			return err
		}
	}

	total, draws := outs.Calculate(hole, board)

	fmt.Println(headerStyle.Render(fmt.Sprintf("%s on %s", cardString(hole), boardString(board))))
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	for _, d := range draws {
		cards := d.Cards.Cards()
		fmt.Fprintf(w, "%s\t%d outs\t%s\n", d.Type, d.Outs, cardString(cards))
	}
	w.Flush()
	fmt.Printf("total: %s outs\n", winStyle.Render(fmt.Sprintf("%d", total)))
	return nil
}

// SimulateCmd estimates equity against sampled opponents.
type SimulateCmd struct {
	Hole      string `arg:"" help:"Two hole cards, e.g. 'AsAh'"`
	Board     string `short:"b" help:"Board cards (0-5)"`
	Opponents int    `short:"o" help:"Number of opponents" default:"0"`
	Trials    int    `short:"n" help:"Number of simulations" default:"0"`
	Workers   int    `help:"Parallel workers" default:"0"`
	Seed      int64  `help:"Random seed for reproducible results"`
	NoCache   bool   `help:"Bypass the result cache"`
}

func (c *SimulateCmd) Run(app *appContext) error {
	hole, err := deck.ParseCards(c.Hole)
	if err != nil {
		return err
	}
	var board []deck.Card
	if c.Board != "" {
		if board, err = deck.ParseCards(c.Board); err != nil {
			return err
		}
	}

	sim := simulator.New(simulator.Config{
		Policy: samplingPolicy(app.cfg),
		Logger: app.logger,
		Seed:   c.Seed,
	})

	opts := simulator.Options{
		Simulations: orDefault(c.Trials, app.cfg.Simulation.Trials),
		Opponents:   orDefault(c.Opponents, app.cfg.Simulation.Opponents),
		BatchSize:   app.cfg.Simulation.BatchSize,
		Workers:     orDefault(c.Workers, app.cfg.Simulation.Workers),
		NoCache:     c.NoCache,
	}

	result, err := sim.Simulate(hole, board, opts)
	if err != nil {
		return err
	}

	fmt.Println(headerStyle.Render(fmt.Sprintf("%s on %s vs %d opponent(s), %d trials",
		cardString(hole), boardString(board), opts.Opponents, opts.Simulations)))
	fmt.Printf("win probability: %s\n", winStyle.Render(fmt.Sprintf("%.1f%%", result.WinProbability*100)))
	fmt.Printf("wins: %d  splits: %d  losses: %d\n", result.Wins, result.Splits, result.Losses)
	return nil
}

// EquityCmd looks up the static preflop equity table.
type EquityCmd struct {
	Hole string `arg:"" help:"Two hole cards, e.g. 'AdKh'"`
}

func (c *EquityCmd) Run(app *appContext) error {
	hole, err := deck.ParseCards(c.Hole)
	if err != nil {
		return err
	}
	if len(hole) != 2 {
		return fmt.Errorf("%w: expected exactly 2 hole cards, got %d", deck.ErrInvalidInput, len(hole))
	}

	notation := equity.Notation(hole[0], hole[1])
	fmt.Printf("%s %s\n", handStyle.Render(notation),
		percentStyle.Render(fmt.Sprintf("%.1f%%", equity.Preflop(hole[0], hole[1])*100)))
	return nil
}

// AdviseCmd recommends an action for a simulated win probability.
type AdviseCmd struct {
	Hole      string  `arg:"" help:"Two hole cards"`
	Board     string  `short:"b" help:"Board cards (0-5)"`
	Pot       float64 `help:"Current pot size" required:""`
	Bet       float64 `help:"Amount needed to call" default:"0"`
	Stack     float64 `help:"Remaining stack size" required:""`
	Position  string  `help:"Table position" default:"middle" enum:"early,middle,late,button,small_blind,big_blind"`
	Street    string  `help:"Current street" default:"preflop" enum:"preflop,flop,turn,river"`
	Opponents int     `short:"o" help:"Number of opponents" default:"0"`
	Seed      int64   `help:"Random seed for reproducible results"`
}

func (c *AdviseCmd) Run(app *appContext) error {
	hole, err := deck.ParseCards(c.Hole)
	if err != nil {
		return err
	}
	var board []deck.Card
	if c.Board != "" {
		if board, err = deck.ParseCards(c.Board); err != nil {
			return err
		}
	}

	sim := simulator.New(simulator.Config{
		Policy: samplingPolicy(app.cfg),
		Logger: app.logger,
		Seed:   c.Seed,
	})
	result, err := sim.Simulate(hole, board, simulator.Options{
		Simulations: app.cfg.Simulation.Trials,
		Opponents:   orDefault(c.Opponents, app.cfg.Simulation.Opponents),
		BatchSize:   app.cfg.Simulation.BatchSize,
		Workers:     app.cfg.Simulation.Workers,
	})
	if err != nil {
		return err
	}

	engine := decision.NewEngine(decision.StyleThresholds(app.cfg.Decision.Style))
	action, size := engine.Recommend(result.WinProbability, decision.GameState{
		PotSize:    c.Pot,
		CurrentBet: c.Bet,
		StackSize:  c.Stack,
		Position:   c.Position,
		Street:     c.Street,
		NumPlayers: orDefault(c.Opponents, app.cfg.Simulation.Opponents) + 1,
	})

	fmt.Printf("equity %s, pot odds %s\n",
		winStyle.Render(fmt.Sprintf("%.1f%%", result.WinProbability*100)),
		percentStyle.Render(fmt.Sprintf("%.1f%%", decision.PotOdds(c.Bet, c.Pot)*100)))
	if action == decision.Raise || action == decision.AllIn {
		fmt.Printf("recommendation: %s %.0f\n", handStyle.Render(action.String()), size)
	} else {
		fmt.Printf("recommendation: %s\n", handStyle.Render(action.String()))
	}
	return nil
}

// StatsCmd aggregates tendencies from a PHH-style hand history file.
type StatsCmd struct {
	File string `arg:"" help:"Path to a hand history log" type:"existingfile"`
}

func (c *StatsCmd) Run(app *appContext) error {
	f, err := os.Open(c.File)
	if err != nil {
		return err
	}
	defer f.Close()

	hands, err := handhistory.NewParser().Parse(f)
	if err != nil {
		return err
	}

	report := statistics.Analyze(hands)
	app.logger.Debug("parsed hand history", "path", c.File, "hands", report.Hands)

	fmt.Println(headerStyle.Render(fmt.Sprintf("%d hands, %.1f board cards/hand",
		report.Hands, report.BoardCards.Mean())))

	players := make([]string, 0, len(report.Players))
	for name := range report.Players {
		players = append(players, name)
	}
	sort.Strings(players)

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "player\thands\tvpip\tpfr\taggression\tshowdowns")
	for _, name := range players {
		p := report.Player(name)
		fmt.Fprintf(w, "%s\t%d\t%.0f%%\t%.0f%%\t%.2f\t%d\n",
			name, p.Hands, p.VPIP()*100, p.PFR()*100, p.AggressionFactor(), p.Showdowns)
	}
	return w.Flush()
}

func samplingPolicy(cfg *config.Config) simulator.SamplingPolicy {
	return simulator.SamplingPolicy{
		MadeHandBias:      cfg.Sampling.MadeHandBias,
		MaxRankGap:        cfg.Sampling.MaxRankGap,
		PreflopAcceptRate: cfg.Sampling.PreflopAcceptRate,
		MaxAttempts:       cfg.Sampling.MaxAttempts,
	}
}

func orDefault(value, fallback int) int {
	if value > 0 {
		return value
	}
	return fallback
}

func cardString(cards []deck.Card) string {
	s := ""
	for i, c := range cards {
		if i > 0 {
			s += " "
		}
		s += c.String()
	}
	return s
}

func boardString(board []deck.Card) string {
	if len(board) == 0 {
		return "empty board"
	}
	return cardString(board)
}
