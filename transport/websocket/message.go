package websocket

import (
	"encoding/json"

	"github.com/rocketscienceinc/slide-backend/internal/advisor"
	"github.com/rocketscienceinc/slide-backend/internal/entity"
)

const (
	actionConnect   = "connect"
	actionGameNew   = "game:new"
	actionGameJoin  = "game:join"
	actionGameTurn  = "game:turn"
	actionSuggest   = "game:suggest"
	actionGameLeave = "game:leave"
)

const (
	gameStatusLeave       = "leave"
	gameStatusOpponentOut = "opponent_out"
)

// Message represents a WebSocket message with an action type and a payload.
type Message struct {
	Action  string          `json:"action"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

type Payload struct {
	Player     *entity.Player      `json:"player,omitempty"`
	Game       *entity.Game        `json:"game,omitempty"`
	GameID     string              `json:"game_id,omitempty"`
	Mode       string              `json:"mode,omitempty"`
	Label      string              `json:"label,omitempty"`
	Suggestion *advisor.Suggestion `json:"suggestion,omitempty"`
	Error      string              `json:"error,omitempty"`
}

func encodeMessage(action string, payload Payload) ([]byte, error) {
	rawPayload, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}

	return json.Marshal(Message{
		Action:  action,
		Payload: rawPayload,
	})
}
