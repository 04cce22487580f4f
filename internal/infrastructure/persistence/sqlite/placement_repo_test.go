package sqlite_test

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bnema/tabmover/internal/domain/entity"
	"github.com/bnema/tabmover/internal/infrastructure/persistence/sqlite"
	"github.com/bnema/tabmover/internal/logging"
)

func testCtx() context.Context {
	logger := logging.NewFromConfigValues("debug", "console")
	return logging.WithContext(context.Background(), logger)
}

func openTestDB(t *testing.T) (context.Context, *sql.DB) {
	t.Helper()
	ctx := testCtx()
	db, err := sqlite.NewConnection(ctx, filepath.Join(t.TempDir(), "tabmover.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return ctx, db
}

func TestPlacementRepository_SaveAndGetRecent(t *testing.T) {
	ctx, db := openTestDB(t)
	repo := sqlite.NewPlacementRepository(db)

	base := time.Date(2026, 2, 1, 9, 0, 0, 0, time.UTC)
	for i := 0; i < 3; i++ {
		p := &entity.Placement{
			TabID:     entity.TabID(10 + i),
			WindowID:  1,
			FromIndex: 5,
			ToIndex:   2,
			Outcome:   entity.PlacementMoved,
			URL:       "https://example.com",
			At:        base.Add(time.Duration(i) * time.Minute),
		}
		require.NoError(t, repo.Save(ctx, p))
		assert.NotZero(t, p.ID)
	}
	require.NoError(t, repo.Save(ctx, &entity.Placement{
		TabID:   20,
		Outcome: entity.PlacementFailed,
		ToIndex: 1, FromIndex: 3,
		Error: "tab gone",
		At:    base.Add(time.Hour),
	}))

	recent, err := repo.GetRecent(ctx, 2)
	require.NoError(t, err)
	require.Len(t, recent, 2)

	assert.Equal(t, entity.TabID(20), recent[0].TabID)
	assert.Equal(t, entity.PlacementFailed, recent[0].Outcome)
	assert.Equal(t, "tab gone", recent[0].Error)
	assert.True(t, recent[0].At.Equal(base.Add(time.Hour)))

	assert.Equal(t, entity.TabID(12), recent[1].TabID)
	assert.Equal(t, 5, recent[1].FromIndex)
	assert.Equal(t, 2, recent[1].ToIndex)
	assert.Equal(t, "https://example.com", recent[1].URL)
}

func TestPlacementRepository_RejectsInvalid(t *testing.T) {
	ctx, db := openTestDB(t)
	repo := sqlite.NewPlacementRepository(db)

	err := repo.Save(ctx, &entity.Placement{TabID: 1, Outcome: "teleported", At: time.Now()})
	assert.ErrorIs(t, err, entity.ErrInvalidPlacement)

	err = repo.Save(ctx, &entity.Placement{TabID: 1, Outcome: entity.PlacementMoved})
	assert.ErrorIs(t, err, entity.ErrInvalidPlacement)
}

func TestPlacementRepository_DeleteOldest(t *testing.T) {
	ctx, db := openTestDB(t)
	repo := sqlite.NewPlacementRepository(db)

	base := time.Date(2026, 2, 1, 9, 0, 0, 0, time.UTC)
	for i := 0; i < 5; i++ {
		require.NoError(t, repo.Save(ctx, &entity.Placement{
			TabID:   entity.TabID(i + 1),
			Outcome: entity.PlacementSkipped,
			ToIndex: -1,
			At:      base.Add(time.Duration(i) * time.Second),
		}))
	}

	removed, err := repo.DeleteOldest(ctx, 2)
	require.NoError(t, err)
	assert.Equal(t, int64(3), removed)

	recent, err := repo.GetRecent(ctx, 10)
	require.NoError(t, err)
	require.Len(t, recent, 2)
	assert.Equal(t, entity.TabID(5), recent[0].TabID)
	assert.Equal(t, entity.TabID(4), recent[1].TabID)
}

func TestNewConnection_ReopenKeepsData(t *testing.T) {
	ctx := testCtx()
	path := filepath.Join(t.TempDir(), "nested", "tabmover.db")

	db, err := sqlite.NewConnection(ctx, path)
	require.NoError(t, err)
	require.NoError(t, sqlite.NewPlacementRepository(db).Save(ctx, &entity.Placement{
		TabID: 1, Outcome: entity.PlacementMoved, FromIndex: 3, ToIndex: 1, At: time.Now(),
	}))
	require.NoError(t, db.Close())

	db, err = sqlite.NewConnection(ctx, path)
	require.NoError(t, err)
	defer db.Close()

	recent, err := sqlite.NewPlacementRepository(db).GetRecent(ctx, 10)
	require.NoError(t, err)
	assert.Len(t, recent, 1)
}

func TestNewConnection_EmptyPath(t *testing.T) {
	_, err := sqlite.NewConnection(testCtx(), "")
	assert.Error(t, err)
}
