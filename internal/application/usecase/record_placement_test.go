package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/bnema/tabmover/internal/domain/entity"
	mock_repository "github.com/bnema/tabmover/internal/domain/repository/mocks"
	"github.com/bnema/tabmover/internal/logging"
)

func testContext() context.Context {
	return logging.WithContext(context.Background(), logging.NewFromConfigValues("debug", "console"))
}

func TestPlacementFromOutput(t *testing.T) {
	at := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	tab := entity.Tab{ID: 4, WindowID: 2, Index: 6, URL: "https://example.com"}

	moved := PlacementFromOutput(tab, &PlaceNewTabOutput{Moved: true, TargetIndex: 2, Tab: &entity.Tab{ID: 4, Index: 2}}, at)
	assert.Equal(t, entity.PlacementMoved, moved.Outcome)
	assert.Equal(t, 6, moved.FromIndex)
	assert.Equal(t, 2, moved.ToIndex)
	assert.Equal(t, entity.WindowID(2), moved.WindowID)
	assert.Equal(t, "https://example.com", moved.URL)
	assert.True(t, moved.At.Equal(at))
	require.NoError(t, moved.Validate())

	skipped := PlacementFromOutput(entity.Tab{ID: 5}, &PlaceNewTabOutput{Skipped: true}, at)
	assert.Equal(t, entity.PlacementSkipped, skipped.Outcome)
	assert.Equal(t, -1, skipped.ToIndex)

	failed := PlacementFromOutput(tab, &PlaceNewTabOutput{TargetIndex: 2, MoveErr: errors.New("gone")}, at)
	assert.Equal(t, entity.PlacementFailed, failed.Outcome)
	assert.Equal(t, 2, failed.ToIndex)
	assert.Equal(t, "gone", failed.Error)
}

func TestRecordPlacementUseCase_Execute(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := mock_repository.NewMockPlacementRepository(ctrl)
	uc := NewRecordPlacementUseCase(repo)
	at := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	uc.now = func() time.Time { return at }

	repo.EXPECT().
		Save(gomock.Any(), gomock.Cond(func(p *entity.Placement) bool {
			return p.TabID == 3 && p.Outcome == entity.PlacementMoved && p.At.Equal(at)
		})).
		Return(nil)

	err := uc.Execute(testContext(), entity.Tab{ID: 3, Index: 5}, &PlaceNewTabOutput{Moved: true, TargetIndex: 1})
	require.NoError(t, err)
}

func TestRecordPlacementUseCase_SaveErrorIsWrapped(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := mock_repository.NewMockPlacementRepository(ctrl)
	uc := NewRecordPlacementUseCase(repo)

	dbErr := errors.New("database is locked")
	repo.EXPECT().Save(gomock.Any(), gomock.Any()).Return(dbErr)

	err := uc.Execute(testContext(), entity.Tab{ID: 3, Index: 5}, &PlaceNewTabOutput{Moved: true})
	assert.ErrorIs(t, err, dbErr)
}

func TestRecordPlacementUseCase_NilOutput(t *testing.T) {
	ctrl := gomock.NewController(t)
	uc := NewRecordPlacementUseCase(mock_repository.NewMockPlacementRepository(ctrl))

	err := uc.Execute(context.Background(), entity.Tab{ID: 1}, nil)
	assert.ErrorIs(t, err, entity.ErrInvalidPlacement)
}

func TestRecordPlacementUseCase_Prune(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := mock_repository.NewMockPlacementRepository(ctrl)
	uc := NewRecordPlacementUseCase(repo)

	repo.EXPECT().DeleteOldest(gomock.Any(), 100).Return(int64(7), nil)
	removed, err := uc.Prune(testContext(), 100)
	require.NoError(t, err)
	assert.Equal(t, int64(7), removed)

	repo.EXPECT().DeleteOldest(gomock.Any(), 100).Return(int64(0), errors.New("boom"))
	_, err = uc.Prune(testContext(), 100)
	assert.Error(t, err)
}

func TestListPlacementsUseCase_Execute(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := mock_repository.NewMockPlacementRepository(ctrl)
	uc := NewListPlacementsUseCase(repo)

	rows := []*entity.Placement{
		{ID: 3, Outcome: entity.PlacementMoved},
		{ID: 2, Outcome: entity.PlacementSkipped},
		{ID: 1, Outcome: entity.PlacementMoved},
	}
	repo.EXPECT().GetRecent(gomock.Any(), defaultPlacementLimit).Return(rows, nil)

	out, err := uc.Execute(testContext(), 0)
	require.NoError(t, err)
	assert.Len(t, out.Placements, 3)
	assert.Equal(t, 2, out.Counts[entity.PlacementMoved])
	assert.Equal(t, 1, out.Counts[entity.PlacementSkipped])
	assert.Zero(t, out.Counts[entity.PlacementFailed])
}
