// Package console runs a game of slide in a terminal.
package console

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/rocketscienceinc/slide-backend/internal/advisor"
	"github.com/rocketscienceinc/slide-backend/internal/entity"
)

var ErrQuit = errors.New("player quit")

const (
	commandHint = "?"
	commandQuit = "Q"
)

type moveAdvisor interface {
	Suggest(board entity.Board, player entity.Mark) (advisor.Suggestion, error)
}

type Session struct {
	logger  *slog.Logger
	advisor moveAdvisor
	in      *bufio.Scanner
	out     io.Writer

	mode       string
	bot        entity.Mark
	thinkDelay time.Duration

	board entity.Board
}

// NewSession - in one-player mode the automated player takes O.
func NewSession(logger *slog.Logger, advisor moveAdvisor, in io.Reader, out io.Writer, mode string, thinkDelay time.Duration) (*Session, error) {
	if err := entity.ValidateMode(mode); err != nil {
		return nil, err
	}

	session := &Session{
		logger:     logger.With("component", "console"),
		advisor:    advisor,
		in:         bufio.NewScanner(in),
		out:        out,
		mode:       mode,
		thinkDelay: thinkDelay,
		board:      entity.NewBoard(),
	}

	if mode == entity.OnePlayerMode {
		session.bot = entity.MarkO
	}

	return session, nil
}

func (that *Session) Board() entity.Board {
	return that.board
}

// Run - plays until the game is decided, the input ends or the player quits.
func (that *Session) Run(ctx context.Context) (entity.Result, error) {
	that.printf("Shove a token in from the top (1-5) or from the left (A-E).\n")
	that.printf("Type %s for a hint, %s to quit.\n\n", commandHint, commandQuit)

	for {
		if err := ctx.Err(); err != nil {
			return entity.ResultUndecided, err
		}

		that.printf("%s\n", that.board.String())

		current := that.board.CurrentPlayer()

		var err error
		if current == that.bot {
			err = that.botTurn(ctx, current)
		} else {
			err = that.humanTurn(current)
		}

		if err != nil {
			return entity.ResultUndecided, err
		}

		if result := that.board.CheckWinner(); result.IsDecided() {
			that.printf("%s\n", that.board.String())
			that.printResult(result)

			return result, nil
		}
	}
}

func (that *Session) humanTurn(player entity.Mark) error {
	for {
		that.printf("%s to move: ", player)

		if !that.in.Scan() {
			if err := that.in.Err(); err != nil {
				return fmt.Errorf("failed to read input: %w", err)
			}
			return io.EOF
		}

		input := strings.ToUpper(strings.TrimSpace(that.in.Text()))

		switch input {
		case "":
			continue
		case commandQuit:
			return ErrQuit
		case commandHint:
			that.printHint(player)
			continue
		}

		label, err := entity.ParseLabel(input)
		if err != nil {
			that.printf("%v, try again\n", err)
			continue
		}

		if err = that.board.Submit(label); err != nil {
			that.printf("%v, try again\n", err)
			continue
		}

		return nil
	}
}

func (that *Session) botTurn(ctx context.Context, player entity.Mark) error {
	suggestion, err := that.advisor.Suggest(that.board, player)
	if err != nil {
		return fmt.Errorf("failed to suggest move: %w", err)
	}

	if that.thinkDelay > 0 {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(that.thinkDelay):
		}
	}

	if err = that.board.Submit(suggestion.Label); err != nil {
		return fmt.Errorf("failed to apply move: %w", err)
	}

	that.logger.Debug("bot move", "label", suggestion.Label, "reason", suggestion.Reason)
	that.printf("%s plays %s\n", player, suggestion.Label)

	return nil
}

func (that *Session) printHint(player entity.Mark) {
	suggestion, err := that.advisor.Suggest(that.board, player)
	if err != nil {
		that.printf("no hint: %v\n", err)
		return
	}

	that.printf("hint: %s (%s)\n", suggestion.Label, suggestion.Reason)
}

func (that *Session) printResult(result entity.Result) {
	if winner, ok := result.Winner(); ok {
		that.printf("%s wins!\n", winner)
		return
	}

	that.printf("It's a tie!\n")
}

func (that *Session) printf(format string, args ...any) {
	if _, err := fmt.Fprintf(that.out, format, args...); err != nil {
		that.logger.Error("failed to write output", "error", err)
	}
}
