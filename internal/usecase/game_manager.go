package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/rocketscienceinc/slide-backend/internal/advisor"
	"github.com/rocketscienceinc/slide-backend/internal/apperror"
	"github.com/rocketscienceinc/slide-backend/internal/dependencies/random"
	"github.com/rocketscienceinc/slide-backend/internal/entity"
	"github.com/rocketscienceinc/slide-backend/internal/pkg"
)

type playerRepo interface {
	CreateOrUpdate(ctx context.Context, player *entity.Player) error
	GetByID(ctx context.Context, id string) (*entity.Player, error)
}

type gameRepo interface {
	CreateOrUpdate(ctx context.Context, game *entity.Game) error
	GetByID(ctx context.Context, id string) (*entity.Game, error)
	DeleteByID(ctx context.Context, id string) error
}

type resultRepo interface {
	Save(ctx context.Context, record *entity.GameRecord) error
	Stats(ctx context.Context, playerID string) (*entity.PlayerStats, error)
}

type botService interface {
	MakeTurn(ctx context.Context, game *entity.Game) (entity.Label, error)
}

type hintAdvisor interface {
	Suggest(board entity.Board, player entity.Mark) (advisor.Suggestion, error)
}

type GameManager struct {
	logger *slog.Logger

	playerRepo playerRepo
	gameRepo   gameRepo
	resultRepo resultRepo

	bot   botService
	hints hintAdvisor

	// ids feeds game ids; it must not be the seeded bot source or ids repeat across restarts.
	ids   random.Random
	locks *gameLocks

	now func() time.Time
}

func NewGameManager(
	logger *slog.Logger,
	playerRepo playerRepo,
	gameRepo gameRepo,
	resultRepo resultRepo,
	bot botService,
	hints hintAdvisor,
	ids random.Random,
) *GameManager {
	return &GameManager{
		logger: logger.With("component", "game_manager"),

		playerRepo: playerRepo,
		gameRepo:   gameRepo,
		resultRepo: resultRepo,

		bot:   bot,
		hints: hints,

		ids:   ids,
		locks: newGameLocks(),

		now: time.Now,
	}
}

// GetOrCreatePlayer - an empty or expired id gets a fresh player.
func (that *GameManager) GetOrCreatePlayer(ctx context.Context, id string) (*entity.Player, error) {
	if id == "" {
		return that.createPlayer(ctx)
	}

	player, err := that.playerRepo.GetByID(ctx, id)
	if errors.Is(err, apperror.ErrPlayerNotFound) {
		that.logger.Info("unknown player, creating a new one", "playerID", id)
		return that.createPlayer(ctx)
	}

	if err != nil {
		return nil, fmt.Errorf("failed to get player by id: %w", err)
	}

	return player, nil
}

// GetOrCreateGame - returns the game the player is seated in, otherwise starts a new one
// in the given mode with the player as X.
func (that *GameManager) GetOrCreateGame(ctx context.Context, playerID, mode string) (*entity.Game, error) {
	player, err := that.playerRepo.GetByID(ctx, playerID)
	if err != nil {
		return nil, fmt.Errorf("failed get player by id: %w", err)
	}

	if player.InGame() {
		existingGame, err := that.gameRepo.GetByID(ctx, player.GameID)
		if err == nil {
			return existingGame, nil
		}

		if !errors.Is(err, apperror.ErrGameNotFound) {
			return nil, fmt.Errorf("failed get game: %w", err)
		}

		// the game expired under the player
		player.GameID = ""
		player.Mark = entity.Empty
	}

	if err = entity.ValidateMode(mode); err != nil {
		return nil, err
	}

	return that.createGame(ctx, player, mode)
}

// JoinGame - seats the player as O in a waiting two-player game.
func (that *GameManager) JoinGame(ctx context.Context, gameID, playerID string) (*entity.Game, error) {
	unlock := that.locks.lock(gameID)
	defer unlock()

	existingGame, err := that.gameRepo.GetByID(ctx, gameID)
	if err != nil {
		return nil, fmt.Errorf("failed get game by id: %w", err)
	}

	player, err := that.playerRepo.GetByID(ctx, playerID)
	if err != nil {
		return nil, fmt.Errorf("failed get player by id: %w", err)
	}

	if player.GameID == existingGame.ID {
		return existingGame, nil
	}

	if player.InGame() {
		return nil, fmt.Errorf("%w: player %s is in game %s", apperror.ErrGameAlreadyExists, player.ID, player.GameID)
	}

	if existingGame.IsWithBot() || existingGame.IsFull() || !existingGame.IsWaiting() {
		return nil, fmt.Errorf("%w: game id %s", apperror.ErrGameIsFull, gameID)
	}

	player.GameID = existingGame.ID
	player.Mark = entity.MarkO
	if err = that.updatePlayer(ctx, player); err != nil {
		return nil, err
	}

	existingGame.Status = entity.StatusOngoing
	existingGame.Players = append(existingGame.Players, player)
	if err = that.updateGame(ctx, existingGame); err != nil {
		return nil, err
	}

	return existingGame, nil
}

// MakeTurn - plays label for the player and, in a one-player game, lets the bot answer.
// When the game ends the result is recorded, the live state is removed and the final
// game is returned together with apperror.ErrGameFinished.
func (that *GameManager) MakeTurn(ctx context.Context, playerID string, label entity.Label) (*entity.Game, error) {
	player, err := that.playerRepo.GetByID(ctx, playerID)
	if err != nil {
		return nil, fmt.Errorf("failed get player by id: %w", err)
	}

	if !player.InGame() {
		return nil, fmt.Errorf("%w: %s", apperror.ErrPlayerNotInGame, playerID)
	}

	unlock := that.locks.lock(player.GameID)
	defer unlock()

	// re-read under the lock, a concurrent request may have moved or ended the game
	game, player, err := that.gameOfPlayer(ctx, playerID)
	if err != nil {
		return nil, err
	}

	if err = that.catchUpBot(ctx, game); err != nil {
		return nil, err
	}

	if err = game.MakeTurn(player.Mark, label); err != nil {
		if errors.Is(err, apperror.ErrGameFinished) {
			that.finishGame(ctx, game)
		}

		return game, fmt.Errorf("failed make turn: %w", err)
	}

	if game.IsFinished() {
		that.finishGame(ctx, game)
		return game, apperror.ErrGameFinished
	}

	if game.IsWithBot() {
		if _, err = that.bot.MakeTurn(ctx, game); err != nil {
			// keep the player's move, catchUpBot answers on the next request
			if updateErr := that.updateGame(ctx, game); updateErr != nil {
				that.logger.Error("failed to save game after bot error", "gameID", game.ID, "error", updateErr)
			}

			return nil, fmt.Errorf("bot failed to make turn: %w", err)
		}

		if game.IsFinished() {
			that.finishGame(ctx, game)
			return game, apperror.ErrGameFinished
		}
	}

	if err = that.updateGame(ctx, game); err != nil {
		return nil, err
	}

	return game, nil
}

// SuggestMove - hint for the player whose turn it is.
func (that *GameManager) SuggestMove(ctx context.Context, playerID string) (advisor.Suggestion, error) {
	game, player, err := that.gameOfPlayer(ctx, playerID)
	if err != nil {
		return advisor.Suggestion{}, err
	}

	if err = game.ConfirmOngoingState(); err != nil {
		return advisor.Suggestion{}, err
	}

	if game.Board.CurrentPlayer() != player.Mark {
		return advisor.Suggestion{}, apperror.ErrNotYourTurn
	}

	suggestion, err := that.hints.Suggest(game.Board, player.Mark)
	if err != nil {
		return advisor.Suggestion{}, fmt.Errorf("failed to suggest move: %w", err)
	}

	return suggestion, nil
}

func (that *GameManager) GetGameByPlayerID(ctx context.Context, playerID string) (*entity.Game, error) {
	game, _, err := that.gameOfPlayer(ctx, playerID)
	if err != nil {
		return nil, err
	}

	return game, nil
}

func (that *GameManager) GetGameByID(ctx context.Context, id string) (*entity.Game, error) {
	game, err := that.gameRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get game: %w", err)
	}

	return game, nil
}

// EndGame - removes the live game and frees its human players.
func (that *GameManager) EndGame(ctx context.Context, game *entity.Game) error {
	unlock := that.locks.lock(game.ID)
	defer unlock()

	return that.endGame(ctx, game)
}

func (that *GameManager) endGame(ctx context.Context, game *entity.Game) error {
	log := that.logger.With("method", "EndGame", "gameID", game.ID)

	if err := that.gameRepo.DeleteByID(ctx, game.ID); err != nil && !errors.Is(err, apperror.ErrGameNotFound) {
		return fmt.Errorf("failed to delete game: %w", err)
	}

	for _, player := range game.Players {
		if player.IsBot() {
			continue
		}

		detached := &entity.Player{ID: player.ID}
		if err := that.playerRepo.CreateOrUpdate(ctx, detached); err != nil {
			log.Error("failed to update player", "playerID", player.ID, "error", err)
		}
	}

	log.Info("game deleted")

	return nil
}

func (that *GameManager) PlayerStats(ctx context.Context, playerID string) (*entity.PlayerStats, error) {
	stats, err := that.resultRepo.Stats(ctx, playerID)
	if err != nil {
		return nil, fmt.Errorf("failed to get stats: %w", err)
	}

	return stats, nil
}

func (that *GameManager) finishGame(ctx context.Context, game *entity.Game) {
	log := that.logger.With("method", "finishGame", "gameID", game.ID)

	if game.Result.IsDecided() {
		if err := that.resultRepo.Save(ctx, entity.NewGameRecord(game, that.now())); err != nil {
			log.Error("failed to record result", "error", err)
		}
	}

	if err := that.endGame(ctx, game); err != nil {
		log.Error("failed to end game", "error", err)
	}

	log.Info("game finished", "result", game.Result.String(), "moves", game.Moves)
}

// catchUpBot - plays a bot move that was lost to an earlier failure.
func (that *GameManager) catchUpBot(ctx context.Context, game *entity.Game) error {
	bot, ok := game.Bot()
	if !ok || !game.IsOngoing() || game.Board.CurrentPlayer() != bot.Mark {
		return nil
	}

	if _, err := that.bot.MakeTurn(ctx, game); err != nil {
		return fmt.Errorf("bot failed to make turn: %w", err)
	}

	return nil
}

func (that *GameManager) gameOfPlayer(ctx context.Context, playerID string) (*entity.Game, *entity.Player, error) {
	player, err := that.playerRepo.GetByID(ctx, playerID)
	if err != nil {
		return nil, nil, fmt.Errorf("failed get player by id: %w", err)
	}

	if !player.InGame() {
		return nil, nil, fmt.Errorf("%w: %s", apperror.ErrPlayerNotInGame, playerID)
	}

	game, err := that.gameRepo.GetByID(ctx, player.GameID)
	if err != nil {
		return nil, nil, fmt.Errorf("failed get game by id: %w", err)
	}

	return game, player, nil
}

func (that *GameManager) createGame(ctx context.Context, player *entity.Player, mode string) (*entity.Game, error) {
	gameID := pkg.GenerateGameID(that.ids)

	player.GameID = gameID
	player.Mark = entity.MarkX
	if err := that.updatePlayer(ctx, player); err != nil {
		return nil, err
	}

	newGame := entity.NewGame(gameID, mode)
	newGame.Players = []*entity.Player{player}

	if newGame.IsWithBot() {
		newGame.Players = append(newGame.Players, entity.NewBotPlayer(gameID, entity.MarkO))
		newGame.Status = entity.StatusOngoing
	}

	if err := that.gameRepo.CreateOrUpdate(ctx, newGame); err != nil {
		return nil, fmt.Errorf("failed to create game: %w", err)
	}

	that.logger.Info("game created", "gameID", gameID, "mode", mode, "playerID", player.ID)

	return newGame, nil
}

func (that *GameManager) createPlayer(ctx context.Context) (*entity.Player, error) {
	player := &entity.Player{
		ID: pkg.GenerateNewSessionID(),
	}

	if err := that.playerRepo.CreateOrUpdate(ctx, player); err != nil {
		return nil, fmt.Errorf("failed to create player: %w", err)
	}

	return player, nil
}

func (that *GameManager) updateGame(ctx context.Context, game *entity.Game) error {
	if err := that.gameRepo.CreateOrUpdate(ctx, game); err != nil {
		return fmt.Errorf("failed to update game: %w", err)
	}

	return nil
}

func (that *GameManager) updatePlayer(ctx context.Context, player *entity.Player) error {
	if err := that.playerRepo.CreateOrUpdate(ctx, player); err != nil {
		return fmt.Errorf("failed to update player: %w", err)
	}

	return nil
}
