package entity

import "strings"

const botPrefix = "bot:"

type Player struct {
	ID     string `json:"id"`
	Mark   Mark   `json:"mark,omitempty"`
	GameID string `json:"game_id,omitempty"`
}

func NewBotPlayer(gameID string, mark Mark) *Player {
	return &Player{
		ID:     botPrefix + gameID,
		Mark:   mark,
		GameID: gameID,
	}
}

func (that *Player) IsBot() bool {
	return strings.HasPrefix(that.ID, botPrefix)
}

func (that *Player) InGame() bool {
	return that.GameID != ""
}
