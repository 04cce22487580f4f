// Package repository declares the persistence ports of the domain.
package repository

import (
	"context"

	"github.com/bnema/tabmover/internal/domain/entity"
)

//go:generate mockgen -source=placement.go -destination=mocks/mock_placement.go

// PlacementRepository persists the placement journal.
type PlacementRepository interface {
	Save(ctx context.Context, placement *entity.Placement) error
	// GetRecent returns the newest entries first.
	GetRecent(ctx context.Context, limit int) ([]*entity.Placement, error)
	// DeleteOldest keeps the newest keepCount entries and returns how many
	// rows were removed.
	DeleteOldest(ctx context.Context, keepCount int) (int64, error)
}
