package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	app "github.com/rocketscienceinc/slide-backend/internal"
	"github.com/rocketscienceinc/slide-backend/internal/advisor"
	"github.com/rocketscienceinc/slide-backend/internal/entity"
)

var (
	flagBoard  string
	flagPlayer string
)

var suggestCmd = &cobra.Command{
	Use:   "suggest",
	Short: "Print the move the bot would play",
	Long: `Print the label the advisor picks for a position, followed by the rule
that chose it (block, win, heuristic or random).

The board is 25 cells, row A first, written with X, O and . for empty.
Spaces and slashes between cells are ignored.

Examples:
  slide suggest --board "XXXX./...../...../...../....." --player O
  slide suggest --board "..O.. ..O.. XX.XX ..... .OOOO" --player X --strategy heuristic`,
	RunE: runSuggest,
}

func init() {
	suggestCmd.Flags().StringVar(&flagBoard, "board", "", "Board cells, row by row")
	suggestCmd.Flags().StringVar(&flagPlayer, "player", string(entity.MarkX), "Player to advise: X or O")
	suggestCmd.Flags().StringVar(&flagStrategy, "strategy", string(advisor.StrategyParity), "Strategy: parity or heuristic")
	suggestCmd.Flags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random)")

	_ = suggestCmd.MarkFlagRequired("board")
}

func runSuggest(cmd *cobra.Command, _ []string) error {
	board, err := entity.ParseBoard(flagBoard)
	if err != nil {
		return err
	}

	strategy, err := advisor.ParseStrategy(flagStrategy)
	if err != nil {
		return err
	}

	moveAdvisor := advisor.New(app.NewRandom(flagSeed), advisor.WithStrategy(strategy))

	suggestion, err := moveAdvisor.Suggest(board, entity.Mark(strings.ToUpper(flagPlayer)))
	if err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", suggestion.Label, suggestion.Reason)

	return nil
}
