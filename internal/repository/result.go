package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/rocketscienceinc/slide-backend/internal/apperror"
	"github.com/rocketscienceinc/slide-backend/internal/entity"
)

type ResultRepository interface {
	Save(ctx context.Context, record *entity.GameRecord) error
	GetByGameID(ctx context.Context, gameID string) (*entity.GameRecord, error)
	Stats(ctx context.Context, playerID string) (*entity.PlayerStats, error)
}

type resultRepository struct {
	conn *sql.DB
}

func NewResultRepository(conn *sql.DB) ResultRepository {
	return &resultRepository{
		conn: conn,
	}
}

// Save - stores the record once; saving the same game again is a no-op.
func (that *resultRepository) Save(ctx context.Context, record *entity.GameRecord) error {
	query := `INSERT INTO results (game_id, mode, result, player_x, player_o, moves, board, finished_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(game_id) DO NOTHING`

	_, err := that.conn.ExecContext(ctx, query,
		record.GameID,
		record.Mode,
		record.Result.String(),
		record.PlayerX,
		record.PlayerO,
		record.Moves,
		record.Board,
		record.FinishedAt.Unix(),
	)
	if err != nil {
		return fmt.Errorf("can't save result: %w", err)
	}

	return nil
}

func (that *resultRepository) GetByGameID(ctx context.Context, gameID string) (*entity.GameRecord, error) {
	query := `SELECT game_id, mode, result, player_x, player_o, moves, board, finished_at
		FROM results WHERE game_id = ?`

	var (
		record     entity.GameRecord
		result     string
		finishedAt int64
	)

	err := that.conn.QueryRowContext(ctx, query, gameID).Scan(
		&record.GameID,
		&record.Mode,
		&result,
		&record.PlayerX,
		&record.PlayerO,
		&record.Moves,
		&record.Board,
		&finishedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: result of game %s", apperror.ErrNotFound, gameID)
	}

	if err != nil {
		return nil, fmt.Errorf("can't get result: %w", err)
	}

	if err = record.Result.UnmarshalText([]byte(result)); err != nil {
		return nil, fmt.Errorf("can't parse result: %w", err)
	}

	record.FinishedAt = time.Unix(finishedAt, 0).UTC()

	return &record, nil
}

// Stats - counts the recorded games of a player. A player without history gets zero stats.
func (that *resultRepository) Stats(ctx context.Context, playerID string) (*entity.PlayerStats, error) {
	query := `SELECT
			COUNT(*),
			COALESCE(SUM(CASE WHEN (player_x = ? AND result = 'x') OR (player_o = ? AND result = 'o') THEN 1 ELSE 0 END), 0),
			COALESCE(SUM(CASE WHEN result = 'tie' THEN 1 ELSE 0 END), 0)
		FROM results
		WHERE player_x = ? OR player_o = ?`

	stats := &entity.PlayerStats{PlayerID: playerID}

	err := that.conn.QueryRowContext(ctx, query, playerID, playerID, playerID, playerID).Scan(
		&stats.Played,
		&stats.Wins,
		&stats.Ties,
	)
	if err != nil {
		return nil, fmt.Errorf("can't get stats: %w", err)
	}

	stats.Losses = stats.Played - stats.Wins - stats.Ties

	return stats, nil
}
