package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	app "github.com/rocketscienceinc/slide-backend/internal"
	"github.com/rocketscienceinc/slide-backend/internal/advisor"
	"github.com/rocketscienceinc/slide-backend/internal/console"
	"github.com/rocketscienceinc/slide-backend/internal/entity"
)

var (
	flagMode       string
	flagStrategy   string
	flagSeed       int64
	flagThinkDelay time.Duration
	flagLogLevel   string
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play a game in the terminal",
	Long: `Play slide in the terminal. You are X and move first.

In one-player mode the bot answers as O; in two-player mode both sides
type their moves in turn. Type ? for a hint and Q to quit.

Examples:
  slide play
  slide play --strategy heuristic --think-delay 500ms
  slide play --mode two-player
  slide play --seed 42`,
	RunE: runPlay,
}

func init() {
	playCmd.Flags().StringVar(&flagMode, "mode", entity.OnePlayerMode, "Game mode: one-player or two-player")
	playCmd.Flags().StringVar(&flagStrategy, "strategy", string(advisor.StrategyParity), "Bot strategy: parity or heuristic")
	playCmd.Flags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random)")
	playCmd.Flags().DurationVar(&flagThinkDelay, "think-delay", 0, "Pause before the bot moves")
	playCmd.Flags().StringVar(&flagLogLevel, "log-level", "warn", "Log level: debug, info, warn or error")
}

func runPlay(cmd *cobra.Command, _ []string) error {
	logger := stderrLogger(flagLogLevel)

	strategy, err := advisor.ParseStrategy(flagStrategy)
	if err != nil {
		return err
	}

	moveAdvisor := advisor.New(app.NewRandom(flagSeed), advisor.WithStrategy(strategy), advisor.WithLogger(logger))

	session, err := console.NewSession(logger, moveAdvisor, cmd.InOrStdin(), cmd.OutOrStdout(), flagMode, flagThinkDelay)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	_, err = session.Run(ctx)
	switch {
	case err == nil:
		return nil
	case errors.Is(err, console.ErrQuit), errors.Is(err, io.EOF):
		fmt.Fprintln(cmd.OutOrStdout(), "Bye!")
		return nil
	default:
		return err
	}
}
