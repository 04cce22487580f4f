package usecase_test

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/bnema/tabmover/internal/application/port"
	"github.com/bnema/tabmover/internal/application/port/mocks"
	"github.com/bnema/tabmover/internal/application/usecase"
	"github.com/bnema/tabmover/internal/domain/entity"
	"github.com/bnema/tabmover/internal/logging"
)

func testContext() context.Context {
	logger := logging.NewFromConfigValues("debug", "console")
	return logging.WithContext(context.Background(), logger)
}

// capturingContext returns a context whose logger writes JSON lines to buf.
func capturingContext(buf *bytes.Buffer) context.Context {
	logger := logging.New(logging.Config{Level: zerolog.DebugLevel, Format: logging.FormatJSON, Output: buf})
	return logging.WithContext(context.Background(), logger)
}

func pinnedTabs(n int) []entity.Tab {
	tabs := make([]entity.Tab, n)
	for i := range tabs {
		tabs[i] = entity.Tab{ID: entity.TabID(100 + i), Index: i, Pinned: true}
	}
	return tabs
}

func newPlacement(host port.TabHost) *usecase.PlaceNewTabUseCase {
	return usecase.NewPlaceNewTabUseCase(host, usecase.NewCountPinnedTabsUseCase(host))
}

func TestCountPinnedTabsUseCase_Execute_ReturnsCount(t *testing.T) {
	host := mocks.NewMockTabHost(t)
	host.EXPECT().Query(mock.Anything, port.PinnedOnly()).Return(pinnedTabs(3), nil).Once()

	uc := usecase.NewCountPinnedTabsUseCase(host)
	assert.Equal(t, 3, uc.Execute(testContext()))
}

func TestCountPinnedTabsUseCase_Execute_QueryIsNotWindowScoped(t *testing.T) {
	host := mocks.NewMockTabHost(t)
	host.EXPECT().Query(mock.Anything, mock.MatchedBy(func(q port.TabQuery) bool {
		return q.Pinned != nil && *q.Pinned && q.WindowID == nil
	})).Return(nil, nil).Once()

	uc := usecase.NewCountPinnedTabsUseCase(host)
	assert.Equal(t, 0, uc.Execute(testContext()))
}

func TestCountPinnedTabsUseCase_Execute_FailureFallsBackToZero(t *testing.T) {
	var buf bytes.Buffer
	host := mocks.NewMockTabHost(t)
	host.EXPECT().Query(mock.Anything, mock.Anything).Return(nil, errors.New("host gone")).Once()

	uc := usecase.NewCountPinnedTabsUseCase(host)
	assert.Equal(t, 0, uc.Execute(capturingContext(&buf)))
	assert.Contains(t, buf.String(), "failed to query pinned tabs")
	assert.Contains(t, buf.String(), "host gone")
}

func TestPlaceNewTabUseCase_Execute_FrontTabIsLeftAlone(t *testing.T) {
	// No expectations: any Query or Move call fails the test.
	host := mocks.NewMockTabHost(t)

	out := newPlacement(host).Execute(testContext(), usecase.PlaceNewTabInput{
		Tab: entity.Tab{ID: 7, Index: 0},
	})

	require.NotNil(t, out)
	assert.True(t, out.Skipped)
	assert.False(t, out.Moved)
	host.AssertNotCalled(t, "Query", mock.Anything, mock.Anything)
	host.AssertNotCalled(t, "Move", mock.Anything, mock.Anything, mock.Anything)
}

func TestPlaceNewTabUseCase_Execute_MovesAfterPinnedTabs(t *testing.T) {
	// 2 pinned + 3 unpinned, new tab appended at index 5.
	host := mocks.NewMockTabHost(t)
	host.EXPECT().Query(mock.Anything, port.PinnedOnly()).Return(pinnedTabs(2), nil).Once()
	host.EXPECT().Move(mock.Anything, entity.TabID(42), 2).
		Return(&entity.Tab{ID: 42, Index: 2}, nil).Once()

	out := newPlacement(host).Execute(testContext(), usecase.PlaceNewTabInput{
		Tab: entity.Tab{ID: 42, Index: 5},
	})

	require.NotNil(t, out)
	assert.False(t, out.Skipped)
	assert.True(t, out.Moved)
	assert.Equal(t, 2, out.TargetIndex)
	require.NotNil(t, out.Tab)
	assert.Equal(t, 2, out.Tab.Index)
	assert.NoError(t, out.MoveErr)
}

func TestPlaceNewTabUseCase_Execute_QueryFailureMovesToZero(t *testing.T) {
	var buf bytes.Buffer
	host := mocks.NewMockTabHost(t)
	host.EXPECT().Query(mock.Anything, mock.Anything).Return(nil, errors.New("query rejected")).Once()
	host.EXPECT().Move(mock.Anything, entity.TabID(9), 0).
		Return(&entity.Tab{ID: 9, Index: 0}, nil).Once()

	var out *usecase.PlaceNewTabOutput
	require.NotPanics(t, func() {
		out = newPlacement(host).Execute(capturingContext(&buf), usecase.PlaceNewTabInput{
			Tab: entity.Tab{ID: 9, Index: 3},
		})
	})

	assert.True(t, out.Moved)
	assert.Equal(t, 0, out.TargetIndex)
	assert.Contains(t, buf.String(), "query rejected")
}

func TestPlaceNewTabUseCase_Execute_MoveFailureIsLoggedNotRetried(t *testing.T) {
	var buf bytes.Buffer
	moveErr := errors.New("invalid tab id")

	host := mocks.NewMockTabHost(t)
	host.EXPECT().Query(mock.Anything, mock.Anything).Return(pinnedTabs(1), nil).Once()
	host.EXPECT().Move(mock.Anything, entity.TabID(5), 1).Return(nil, moveErr).Once()

	out := newPlacement(host).Execute(capturingContext(&buf), usecase.PlaceNewTabInput{
		Tab: entity.Tab{ID: 5, Index: 4},
	})

	assert.False(t, out.Moved)
	assert.ErrorIs(t, out.MoveErr, moveErr)
	assert.Equal(t, 1, out.TargetIndex)
	host.AssertNumberOfCalls(t, "Move", 1)
	assert.Contains(t, buf.String(), "failed to move new tab")
	assert.Contains(t, buf.String(), `"tab_id":5`)
}

func TestPlaceNewTabUseCase_Execute_UsesSnapshotIndex(t *testing.T) {
	// The snapshot says index 0; whatever the host thinks now is ignored.
	host := mocks.NewMockTabHost(t)

	out := newPlacement(host).Execute(testContext(), usecase.PlaceNewTabInput{
		Tab: entity.Tab{ID: 3, Index: 0, WindowID: 2},
	})

	assert.True(t, out.Skipped)
}
