package usecase

import (
	"context"

	"github.com/bnema/tabmover/internal/application/port"
	"github.com/bnema/tabmover/internal/domain/entity"
	"github.com/bnema/tabmover/internal/logging"
)

// PlaceNewTabUseCase moves a freshly created tab right after the pinned tabs.
type PlaceNewTabUseCase struct {
	mover   port.TabMover
	counter *CountPinnedTabsUseCase
}

// NewPlaceNewTabUseCase creates a new placement use case.
func NewPlaceNewTabUseCase(mover port.TabMover, counter *CountPinnedTabsUseCase) *PlaceNewTabUseCase {
	return &PlaceNewTabUseCase{
		mover:   mover,
		counter: counter,
	}
}

// PlaceNewTabInput contains the tab snapshot taken at creation time.
type PlaceNewTabInput struct {
	Tab entity.Tab
}

// PlaceNewTabOutput describes what placement did.
type PlaceNewTabOutput struct {
	// Skipped is true when the snapshot was already at index 0.
	Skipped     bool
	TargetIndex int
	Moved       bool
	// Tab is the host's view of the tab after a successful move.
	Tab     *entity.Tab
	MoveErr error
}

// Execute places the tab. Failures are logged and reported in the output,
// never returned: there is no retry and nothing for the caller to recover.
func (uc *PlaceNewTabUseCase) Execute(ctx context.Context, input PlaceNewTabInput) *PlaceNewTabOutput {
	ctx = logging.WithTabID(ctx, int(input.Tab.ID))
	log := logging.FromContext(ctx)

	// The creation snapshot decides, even if the host reindexed since.
	if input.Tab.Index == 0 {
		log.Debug().Msg("new tab already in front position")
		return &PlaceNewTabOutput{Skipped: true}
	}

	target := uc.counter.Execute(ctx)
	log.Debug().
		Int("from", input.Tab.Index).
		Int("to", target).
		Msg("moving new tab")

	moved, err := uc.mover.Move(ctx, input.Tab.ID, target)
	if err != nil {
		log.Error().Err(err).Msg("failed to move new tab")
		return &PlaceNewTabOutput{TargetIndex: target, MoveErr: err}
	}

	position := target
	if moved != nil {
		position = moved.Index
	}
	log.Info().Int("position", position).Msg("new tab moved")

	return &PlaceNewTabOutput{
		TargetIndex: target,
		Moved:       true,
		Tab:         moved,
	}
}
