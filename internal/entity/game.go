package entity

import (
	"errors"
	"fmt"

	"github.com/rocketscienceinc/slide-backend/internal/apperror"
)

const (
	StatusFinished = "finished"
	StatusOngoing  = "ongoing"
	StatusWaiting  = "waiting"
)

const (
	OnePlayerMode = "one-player"
	TwoPlayerMode = "two-player"
)

var (
	ErrUnknownGameStatus = errors.New("unknown game status")
	ErrInvalidMode       = errors.New("invalid game mode")
)

// Game is a single play session: the live board plus the bookkeeping around it.
type Game struct {
	ID       string    `json:"id"`
	Board    Board     `json:"board"`
	Result   Result    `json:"result"`
	Status   string    `json:"status"`
	Mode     string    `json:"mode"`
	Moves    int       `json:"moves"`
	LastMove Label     `json:"last_move,omitempty"`
	Players  []*Player `json:"players,omitempty"`
}

func NewGame(id, mode string) *Game {
	return &Game{
		ID:     id,
		Board:  NewBoard(),
		Result: ResultUndecided,
		Status: StatusWaiting,
		Mode:   mode,
	}
}

func ValidateMode(mode string) error {
	switch mode {
	case OnePlayerMode, TwoPlayerMode:
		return nil
	default:
		return fmt.Errorf("%w: %q", ErrInvalidMode, mode)
	}
}

// MakeTurn - plays label for mark, passes the turn and refreshes the result.
func (that *Game) MakeTurn(mark Mark, label Label) error {
	if err := that.ConfirmOngoingState(); err != nil {
		return err
	}

	if that.Board.Current != mark {
		return apperror.ErrNotYourTurn
	}

	if err := that.Board.Submit(label); err != nil {
		return fmt.Errorf("failed to apply move: %w", err)
	}

	that.Moves++
	that.LastMove = label

	that.UpdateGameState()

	return nil
}

func (that *Game) UpdateGameState() {
	that.Result = that.Board.CheckWinner()

	if that.Result.IsDecided() {
		that.Status = StatusFinished
		return
	}

	that.Status = StatusOngoing
}

// Winner - returns the winning mark, Empty for a tie or an unfinished game.
func (that *Game) Winner() Mark {
	mark, _ := that.Result.Winner()
	return mark
}

func (that *Game) IsFinished() bool {
	return that.Status == StatusFinished
}

func (that *Game) IsOngoing() bool {
	return that.Status == StatusOngoing
}

func (that *Game) IsWaiting() bool {
	return that.Status == StatusWaiting
}

func (that *Game) ConfirmOngoingState() error {
	switch {
	case that.IsWaiting():
		return apperror.ErrGameIsNotStarted
	case that.IsFinished():
		return apperror.ErrGameFinished
	case that.IsOngoing():
		return nil
	default:
		return fmt.Errorf("%w: %s", ErrUnknownGameStatus, that.Status)
	}
}

func (that *Game) IsWithBot() bool {
	return that.Mode == OnePlayerMode
}

func (that *Game) Bot() (*Player, bool) {
	for _, player := range that.Players {
		if player.IsBot() {
			return player, true
		}
	}

	return nil, false
}

func (that *Game) PlayerByID(id string) (*Player, bool) {
	for _, player := range that.Players {
		if player.ID == id {
			return player, true
		}
	}

	return nil, false
}

func (that *Game) IsFull() bool {
	return len(that.Players) >= 2
}
