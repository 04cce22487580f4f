package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/bnema/tabmover/internal/domain/entity"
	"github.com/bnema/tabmover/internal/domain/repository"
	"github.com/bnema/tabmover/internal/logging"
)

// RecordPlacementUseCase writes placement decisions to the journal.
type RecordPlacementUseCase struct {
	repo repository.PlacementRepository
	now  func() time.Time
}

// NewRecordPlacementUseCase creates a new journal writer.
func NewRecordPlacementUseCase(repo repository.PlacementRepository) *RecordPlacementUseCase {
	return &RecordPlacementUseCase{
		repo: repo,
		now:  time.Now,
	}
}

// Execute records the outcome of one placement.
func (uc *RecordPlacementUseCase) Execute(ctx context.Context, tab entity.Tab, out *PlaceNewTabOutput) error {
	if out == nil {
		return fmt.Errorf("record placement: %w", entity.ErrInvalidPlacement)
	}

	placement := PlacementFromOutput(tab, out, uc.now())
	if err := uc.repo.Save(ctx, placement); err != nil {
		logging.FromContext(ctx).Warn().Err(err).Int("tab_id", int(tab.ID)).Msg("failed to record placement")
		return fmt.Errorf("record placement: %w", err)
	}
	return nil
}

// Prune drops all but the newest keep entries.
func (uc *RecordPlacementUseCase) Prune(ctx context.Context, keep int) (int64, error) {
	removed, err := uc.repo.DeleteOldest(ctx, keep)
	if err != nil {
		return 0, fmt.Errorf("prune placements: %w", err)
	}
	if removed > 0 {
		logging.FromContext(ctx).Debug().Int64("removed", removed).Msg("pruned placement journal")
	}
	return removed, nil
}

// PlacementFromOutput maps a placement decision onto a journal entry.
func PlacementFromOutput(tab entity.Tab, out *PlaceNewTabOutput, at time.Time) *entity.Placement {
	p := &entity.Placement{
		TabID:     tab.ID,
		WindowID:  tab.WindowID,
		FromIndex: tab.Index,
		ToIndex:   out.TargetIndex,
		URL:       tab.URL,
		At:        at.UTC(),
	}

	switch {
	case out.Skipped:
		p.Outcome = entity.PlacementSkipped
		p.ToIndex = -1
	case out.MoveErr != nil:
		p.Outcome = entity.PlacementFailed
		p.Error = out.MoveErr.Error()
	default:
		p.Outcome = entity.PlacementMoved
		if out.Tab != nil {
			p.ToIndex = out.Tab.Index
		}
	}
	return p
}
