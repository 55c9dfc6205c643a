package repository

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rocketscienceinc/slide-backend/internal/apperror"
	"github.com/rocketscienceinc/slide-backend/internal/entity"
	"github.com/rocketscienceinc/slide-backend/internal/repository/storage"
)

func newResultRepository(t *testing.T) ResultRepository {
	t.Helper()

	st, err := storage.NewSQLiteStorage(filepath.Join(t.TempDir(), "slide.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })

	require.NoError(t, st.Init(context.Background()))

	return NewResultRepository(st.Connection)
}

func record(gameID, playerX, playerO string, result entity.Result) *entity.GameRecord {
	return &entity.GameRecord{
		GameID:     gameID,
		Mode:       entity.TwoPlayerMode,
		Result:     result,
		PlayerX:    playerX,
		PlayerO:    playerO,
		Moves:      9,
		Board:      entity.NewBoard().String(),
		FinishedAt: time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC),
	}
}

func TestResultRepository_Save(t *testing.T) {
	t.Run("Save_Success", func(t *testing.T) {
		ctx := context.Background()
		resultRepo := newResultRepository(t)

		// Given: a finished game record
		saved := record("G1", "alice", "bob", entity.ResultOWins)

		// When: it is saved and read back
		err := resultRepo.Save(ctx, saved)
		require.NoError(t, err)

		retrieved, err := resultRepo.GetByGameID(ctx, "G1")

		// Then: every field survives the round trip
		require.NoError(t, err)
		assert.Equal(t, saved, retrieved)
	})

	t.Run("Save_Twice", func(t *testing.T) {
		ctx := context.Background()
		resultRepo := newResultRepository(t)

		// Given: a saved record
		require.NoError(t, resultRepo.Save(ctx, record("G1", "alice", "bob", entity.ResultXWins)))

		// When: the same game is saved again with another result
		err := resultRepo.Save(ctx, record("G1", "alice", "bob", entity.ResultTie))

		// Then: the first record is kept
		require.NoError(t, err)
		retrieved, err := resultRepo.GetByGameID(ctx, "G1")
		require.NoError(t, err)
		assert.Equal(t, entity.ResultXWins, retrieved.Result)
	})

	t.Run("GetByGameID_NotFound", func(t *testing.T) {
		_, err := newResultRepository(t).GetByGameID(context.Background(), "missing")

		require.ErrorIs(t, err, apperror.ErrNotFound)
	})
}

func TestResultRepository_Stats(t *testing.T) {
	ctx := context.Background()
	resultRepo := newResultRepository(t)

	// Given: alice won twice, lost once and tied once
	require.NoError(t, resultRepo.Save(ctx, record("G1", "alice", "bob", entity.ResultXWins)))
	require.NoError(t, resultRepo.Save(ctx, record("G2", "bob", "alice", entity.ResultOWins)))
	require.NoError(t, resultRepo.Save(ctx, record("G3", "alice", "bot:G3", entity.ResultOWins)))
	require.NoError(t, resultRepo.Save(ctx, record("G4", "carol", "alice", entity.ResultTie)))
	require.NoError(t, resultRepo.Save(ctx, record("G5", "carol", "bob", entity.ResultTie)))

	// When: the stats are queried
	stats, err := resultRepo.Stats(ctx, "alice")

	// Then: only alice's games are counted
	require.NoError(t, err)
	assert.Equal(t, &entity.PlayerStats{PlayerID: "alice", Played: 4, Wins: 2, Losses: 1, Ties: 1}, stats)

	t.Run("unknown player", func(t *testing.T) {
		stats, err := resultRepo.Stats(ctx, "nobody")

		require.NoError(t, err)
		assert.Equal(t, &entity.PlayerStats{PlayerID: "nobody"}, stats)
	})
}
