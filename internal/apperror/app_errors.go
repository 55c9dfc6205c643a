package apperror

import "errors"

var (
	ErrGameFinished      = errors.New("game is already finished")
	ErrGameIsNotStarted  = errors.New("game is not started")
	ErrNotYourTurn       = errors.New("it's not your turn")
	ErrGameAlreadyExists = errors.New("game already exists")
	ErrGameIsFull        = errors.New("game already has two players")
	ErrNotFound          = errors.New("not found")
	ErrGameNotFound      = errors.New("game not found")
	ErrPlayerNotFound    = errors.New("player not found")
	ErrPlayerNotInGame   = errors.New("player is not in a game")
)
