package websocket

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rocketscienceinc/slide-backend/internal/apperror"
	"github.com/rocketscienceinc/slide-backend/internal/entity"
)

var errPlayerRequired = errors.New("player is required")

func (that *Server) handleConnect(ctx context.Context, c *client, action string, payload Payload) error {
	log := that.logger.With("method", "handleConnect")

	var playerID string
	if payload.Player != nil {
		playerID = payload.Player.ID
	}

	player, err := that.gameUseCase.GetOrCreatePlayer(ctx, playerID)
	if err != nil {
		that.sendError(c, action, "failed to create a new player")
		return fmt.Errorf("failed to get or create player: %w", err)
	}

	that.register(c, player.ID)

	response := Payload{Player: player}

	if player.InGame() {
		game, err := that.gameUseCase.GetGameByPlayerID(ctx, player.ID)
		if err != nil {
			log.Warn("failed to restore game", "playerID", player.ID, "error", err)
		} else {
			response.Game = game
		}
	}

	that.send(c, action, response)

	log.Info("successfully connected player", "playerID", player.ID)

	return nil
}

func (that *Server) handleNewGame(ctx context.Context, c *client, action string, payload Payload) error {
	if payload.Player == nil || payload.Player.ID == "" {
		that.sendError(c, action, errPlayerRequired.Error())
		return errPlayerRequired
	}

	mode := payload.Mode
	if mode == "" {
		mode = entity.OnePlayerMode
	}

	that.register(c, payload.Player.ID)

	game, err := that.gameUseCase.GetOrCreateGame(ctx, payload.Player.ID, mode)
	if err != nil {
		that.sendError(c, action, err.Error())
		return fmt.Errorf("failed to create a new game: %w", err)
	}

	that.broadcast(action, game)

	return nil
}

func (that *Server) handleJoinGame(ctx context.Context, c *client, action string, payload Payload) error {
	if payload.Player == nil || payload.Player.ID == "" {
		that.sendError(c, action, errPlayerRequired.Error())
		return errPlayerRequired
	}

	if payload.GameID == "" {
		that.sendError(c, action, "game_id is required")
		return nil
	}

	that.register(c, payload.Player.ID)

	game, err := that.gameUseCase.JoinGame(ctx, payload.GameID, payload.Player.ID)
	if err != nil {
		that.sendError(c, action, fmt.Sprintf("game %s: %v", payload.GameID, err))
		return fmt.Errorf("failed to join game: %w", err)
	}

	that.broadcast(action, game)

	return nil
}

func (that *Server) handleGameTurn(ctx context.Context, c *client, action string, payload Payload) error {
	if payload.Player == nil || payload.Player.ID == "" {
		that.sendError(c, action, errPlayerRequired.Error())
		return errPlayerRequired
	}

	label, err := entity.ParseLabel(payload.Label)
	if err != nil {
		that.sendError(c, action, err.Error())
		return nil
	}

	that.register(c, payload.Player.ID)

	game, err := that.gameUseCase.MakeTurn(ctx, payload.Player.ID, label)
	if errors.Is(err, apperror.ErrGameFinished) && game != nil {
		that.broadcast(action, game)
		return nil
	}

	if err != nil {
		that.sendError(c, action, err.Error())

		var invalidMove *entity.InvalidMoveError
		if errors.As(err, &invalidMove) || errors.Is(err, apperror.ErrNotYourTurn) {
			return nil
		}

		return fmt.Errorf("failed to make turn: %w", err)
	}

	that.broadcast(action, game)

	return nil
}

func (that *Server) handleSuggest(ctx context.Context, c *client, action string, payload Payload) error {
	if payload.Player == nil || payload.Player.ID == "" {
		that.sendError(c, action, errPlayerRequired.Error())
		return errPlayerRequired
	}

	suggestion, err := that.gameUseCase.SuggestMove(ctx, payload.Player.ID)
	if err != nil {
		that.sendError(c, action, err.Error())
		return nil
	}

	that.send(c, action, Payload{Player: payload.Player, Suggestion: &suggestion})

	return nil
}

func (that *Server) handleGameLeave(ctx context.Context, c *client, action string, payload Payload) error {
	if payload.Player == nil || payload.Player.ID == "" {
		that.sendError(c, action, errPlayerRequired.Error())
		return errPlayerRequired
	}

	that.register(c, payload.Player.ID)

	game, err := that.gameUseCase.GetGameByPlayerID(ctx, payload.Player.ID)
	if err != nil {
		that.sendError(c, action, "game doesn't exist")
		return nil
	}

	if err = that.gameUseCase.EndGame(ctx, game); err != nil {
		that.sendError(c, action, "failed to leave the game")
		return fmt.Errorf("failed to end game: %w", err)
	}

	game.Status = gameStatusLeave
	that.broadcast(action, game)

	that.logger.Info("player left", "playerID", payload.Player.ID, "gameID", game.ID)

	return nil
}

// handleOpponentOut - ends the game of a player who never came back and tells the others.
func (that *Server) handleOpponentOut(ctx context.Context, playerID string) {
	log := that.logger.With("method", "handleOpponentOut", "playerID", playerID)

	game, err := that.gameUseCase.GetGameByPlayerID(ctx, playerID)
	if err != nil {
		log.Debug("no game to end", "error", err)
		return
	}

	if err = that.gameUseCase.EndGame(ctx, game); err != nil {
		log.Error("failed to finish game", "gameID", game.ID, "error", err)
		return
	}

	game.Status = gameStatusOpponentOut

	for _, player := range game.Players {
		if player.ID == playerID || player.IsBot() {
			continue
		}

		that.sendToPlayer(player.ID, actionGameLeave, Payload{Player: player, Game: game})
	}

	log.Info("handled opponent out", "gameID", game.ID)
}

func (that *Server) handleDisconnect(c *client) {
	log := that.logger.With("method", "handleDisconnect")

	c.close()

	playerID := c.getPlayerID()
	if playerID == "" {
		return
	}

	that.connectionsMutex.Lock()
	current := that.connections[playerID] == c
	if current {
		delete(that.connections, playerID)
	}
	that.connectionsMutex.Unlock()

	// the player already has a newer connection
	if !current {
		return
	}

	that.disconnectedMutex.Lock()
	that.disconnectedPlayers[playerID] = time.Now()
	that.disconnectedMutex.Unlock()

	log.Info("player disconnected", "playerID", playerID)
}

// register - binds the connection to the player, replacing an older connection.
func (that *Server) register(c *client, playerID string) {
	c.setPlayerID(playerID)

	that.connectionsMutex.Lock()
	that.connections[playerID] = c
	that.connectionsMutex.Unlock()

	that.disconnectedMutex.Lock()
	delete(that.disconnectedPlayers, playerID)
	that.disconnectedMutex.Unlock()
}

// broadcast - sends the game to every connected human player of it.
func (that *Server) broadcast(action string, game *entity.Game) {
	for _, player := range game.Players {
		if player.IsBot() {
			continue
		}

		that.sendToPlayer(player.ID, action, Payload{Player: player, Game: game})
	}
}

func (that *Server) sendToPlayer(playerID, action string, payload Payload) {
	that.connectionsMutex.RLock()
	conn, ok := that.connections[playerID]
	that.connectionsMutex.RUnlock()

	if !ok {
		that.logger.Debug("connection not found for player", "playerID", playerID)
		return
	}

	that.send(conn, action, payload)
}

func (that *Server) send(c *client, action string, payload Payload) {
	message, err := encodeMessage(action, payload)
	if err != nil {
		that.logger.Error("failed to marshal message", "action", action, "error", err)
		return
	}

	if !c.enqueue(message) {
		that.logger.Warn("dropped message for slow or closed connection", "action", action)
	}
}

func (that *Server) sendError(c *client, action, errorMsg string) {
	that.send(c, action, Payload{Error: errorMsg})
}
