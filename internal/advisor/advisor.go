// Package advisor picks a move for the automated player.
//
// A suggestion is decided in a fixed order over the canonical labels: a move that
// denies the opponent an immediate win, then a move that wins immediately, then
// (heuristic strategy only) the move with the best open-line score, and finally a
// uniformly random label. Every candidate is played on a private copy of the board.
package advisor

import (
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/rocketscienceinc/slide-backend/internal/dependencies/random"
	"github.com/rocketscienceinc/slide-backend/internal/entity"
)

type Strategy string

const (
	// StrategyParity suggests block > win > random.
	StrategyParity Strategy = "parity"
	// StrategyHeuristic adds a one-ply open-line evaluation before the random fallback.
	StrategyHeuristic Strategy = "heuristic"
)

var ErrUnknownStrategy = errors.New("unknown advisor strategy")

func ParseStrategy(value string) (Strategy, error) {
	switch Strategy(value) {
	case StrategyParity, StrategyHeuristic:
		return Strategy(value), nil
	case "":
		return StrategyParity, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownStrategy, value)
	}
}

// Reason tells which rule produced a suggestion.
type Reason string

const (
	ReasonBlock     Reason = "block"
	ReasonWin       Reason = "win"
	ReasonHeuristic Reason = "heuristic"
	ReasonRandom    Reason = "random"
)

// Suggestion is a label together with the rule that chose it.
type Suggestion struct {
	Label  entity.Label `json:"label"`
	Reason Reason       `json:"reason"`
	Score  int          `json:"score,omitempty"`
}

type Option func(*Advisor)

func WithStrategy(strategy Strategy) Option {
	return func(that *Advisor) {
		that.strategy = strategy
	}
}

func WithLogger(logger *slog.Logger) Option {
	return func(that *Advisor) {
		that.logger = logger
	}
}

// Advisor holds no game state; the random source is its only dependency.
type Advisor struct {
	random   random.Random
	strategy Strategy
	logger   *slog.Logger
}

func New(rnd random.Random, opts ...Option) *Advisor {
	advisor := &Advisor{
		random:   rnd,
		strategy: StrategyParity,
		logger:   slog.New(slog.NewJSONHandler(io.Discard, nil)),
	}

	for _, opt := range opts {
		opt(advisor)
	}

	advisor.logger = advisor.logger.With("component", "advisor", "strategy", string(advisor.strategy))

	return advisor
}

func (that *Advisor) Strategy() Strategy {
	return that.strategy
}

// SuggestMove - returns the label the player should play next. The board is taken by
// value, the caller's board is never modified.
func (that *Advisor) SuggestMove(board entity.Board, player entity.Mark) (entity.Label, error) {
	suggestion, err := that.Suggest(board, player)
	if err != nil {
		return 0, err
	}

	return suggestion.Label, nil
}

// Suggest - same as SuggestMove but also reports why the label was chosen.
func (that *Advisor) Suggest(board entity.Board, player entity.Mark) (Suggestion, error) {
	if !player.IsPlayer() {
		return Suggestion{}, fmt.Errorf("%w: %q", entity.ErrInvalidPlayer, player)
	}

	labels := entity.Labels()
	opponent := player.Opponent()

	if label, ok := findWinningMove(board, opponent, labels); ok {
		that.logger.Debug("blocking opponent", "player", player, "label", label)
		return Suggestion{Label: label, Reason: ReasonBlock}, nil
	}

	if label, ok := findWinningMove(board, player, labels); ok {
		that.logger.Debug("winning move", "player", player, "label", label)
		return Suggestion{Label: label, Reason: ReasonWin}, nil
	}

	if that.strategy == StrategyHeuristic {
		label, score := that.bestScoredMove(board, player, labels)
		that.logger.Debug("heuristic move", "player", player, "label", label, "score", score)
		return Suggestion{Label: label, Reason: ReasonHeuristic, Score: score}, nil
	}

	label := labels[that.random.Intn(len(labels))]
	that.logger.Debug("random move", "player", player, "label", label)

	return Suggestion{Label: label, Reason: ReasonRandom}, nil
}

// findWinningMove - returns the first label, in order, with which mark wins outright.
func findWinningMove(board entity.Board, mark entity.Mark, labels []entity.Label) (entity.Label, bool) {
	win := entity.ResultFor(mark)

	for _, label := range labels {
		snapshot := board
		if err := snapshot.ApplyMove(label, mark); err != nil {
			continue
		}

		if snapshot.CheckWinner() == win {
			return label, true
		}
	}

	return 0, false
}

// bestScoredMove - scores every label one ply deep and picks randomly among the best.
func (that *Advisor) bestScoredMove(board entity.Board, player entity.Mark, labels []entity.Label) (entity.Label, int) {
	var best []entity.Label
	bestScore := 0

	for _, label := range labels {
		snapshot := board
		if err := snapshot.ApplyMove(label, player); err != nil {
			continue
		}

		score := Evaluate(snapshot, player)
		switch {
		case len(best) == 0 || score > bestScore:
			best = append(best[:0], label)
			bestScore = score
		case score == bestScore:
			best = append(best, label)
		}
	}

	return best[that.random.Intn(len(best))], bestScore
}
