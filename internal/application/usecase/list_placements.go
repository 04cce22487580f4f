package usecase

import (
	"context"

	"github.com/bnema/tabmover/internal/domain/entity"
	"github.com/bnema/tabmover/internal/domain/repository"
)

const defaultPlacementLimit = 20

// ListPlacementsUseCase reads the placement journal.
type ListPlacementsUseCase struct {
	repo repository.PlacementRepository
}

// NewListPlacementsUseCase creates a new journal reader.
func NewListPlacementsUseCase(repo repository.PlacementRepository) *ListPlacementsUseCase {
	return &ListPlacementsUseCase{repo: repo}
}

// ListPlacementsOutput holds the newest entries and a per-outcome tally.
type ListPlacementsOutput struct {
	Placements []*entity.Placement
	Counts     map[entity.PlacementOutcome]int
}

// Execute returns up to limit entries, newest first.
func (uc *ListPlacementsUseCase) Execute(ctx context.Context, limit int) (*ListPlacementsOutput, error) {
	if limit <= 0 {
		limit = defaultPlacementLimit
	}

	placements, err := uc.repo.GetRecent(ctx, limit)
	if err != nil {
		return nil, err
	}

	counts := make(map[entity.PlacementOutcome]int)
	for _, p := range placements {
		counts[p.Outcome]++
	}
	return &ListPlacementsOutput{Placements: placements, Counts: counts}, nil
}
