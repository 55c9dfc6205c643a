package entity

import "time"

// GameRecord is the archived outcome of a finished game.
type GameRecord struct {
	GameID     string    `json:"game_id"`
	Mode       string    `json:"mode"`
	Result     Result    `json:"result"`
	PlayerX    string    `json:"player_x"`
	PlayerO    string    `json:"player_o"`
	Moves      int       `json:"moves"`
	Board      string    `json:"board"`
	FinishedAt time.Time `json:"finished_at"`
}

// NewGameRecord - snapshot of game for the history table.
func NewGameRecord(game *Game, finishedAt time.Time) *GameRecord {
	record := &GameRecord{
		GameID:     game.ID,
		Mode:       game.Mode,
		Result:     game.Result,
		Moves:      game.Moves,
		Board:      game.Board.String(),
		FinishedAt: finishedAt,
	}

	for _, player := range game.Players {
		switch player.Mark {
		case MarkX:
			record.PlayerX = player.ID
		case MarkO:
			record.PlayerO = player.ID
		}
	}

	return record
}

type PlayerStats struct {
	PlayerID string `json:"player_id"`
	Played   int    `json:"played"`
	Wins     int    `json:"wins"`
	Losses   int    `json:"losses"`
	Ties     int    `json:"ties"`
}
