package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/rocketscienceinc/slide-backend/internal/entity"
)

var ErrBotNotFound = errors.New("bot player not found")

type BotService interface {
	MakeTurn(ctx context.Context, game *entity.Game) (entity.Label, error)
}

type moveAdvisor interface {
	SuggestMove(board entity.Board, player entity.Mark) (entity.Label, error)
}

type botService struct {
	logger     *slog.Logger
	advisor    moveAdvisor
	thinkDelay time.Duration
}

// NewBotService - the bot waits thinkDelay before every move so replies do not look instant.
func NewBotService(logger *slog.Logger, advisor moveAdvisor, thinkDelay time.Duration) BotService {
	return &botService{
		logger:     logger.With("component", "bot"),
		advisor:    advisor,
		thinkDelay: thinkDelay,
	}
}

func (that *botService) MakeTurn(ctx context.Context, game *entity.Game) (entity.Label, error) {
	log := that.logger.With("method", "MakeTurn", "gameID", game.ID)

	botPlayer, ok := game.Bot()
	if !ok {
		return 0, ErrBotNotFound
	}

	label, err := that.advisor.SuggestMove(game.Board, botPlayer.Mark)
	if err != nil {
		return 0, fmt.Errorf("failed to suggest move: %w", err)
	}

	if err = that.think(ctx); err != nil {
		return 0, err
	}

	if err = game.MakeTurn(botPlayer.Mark, label); err != nil {
		return 0, fmt.Errorf("bot failed to make turn: %w", err)
	}

	log.Debug("bot made a turn", "label", label, "mark", botPlayer.Mark)

	return label, nil
}

func (that *botService) think(ctx context.Context) error {
	if that.thinkDelay <= 0 {
		return nil
	}

	timer := time.NewTimer(that.thinkDelay)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return fmt.Errorf("bot interrupted: %w", ctx.Err())
	case <-timer.C:
		return nil
	}
}
