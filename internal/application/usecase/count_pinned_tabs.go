package usecase

import (
	"context"

	"github.com/bnema/tabmover/internal/application/port"
	"github.com/bnema/tabmover/internal/logging"
)

// CountPinnedTabsUseCase counts the host's pinned tabs.
type CountPinnedTabsUseCase struct {
	tabs port.TabQuerier
}

// NewCountPinnedTabsUseCase creates a new pinned tab counter.
func NewCountPinnedTabsUseCase(tabs port.TabQuerier) *CountPinnedTabsUseCase {
	return &CountPinnedTabsUseCase{tabs: tabs}
}

// Execute returns the number of pinned tabs across every window.
// A failed query is logged and counts as zero so placement is never blocked.
func (uc *CountPinnedTabsUseCase) Execute(ctx context.Context) int {
	log := logging.FromContext(ctx)

	// Not scoped to the new tab's window: the host is asked for all pinned tabs.
	tabs, err := uc.tabs.Query(ctx, port.PinnedOnly())
	if err != nil {
		log.Error().Err(err).Msg("failed to query pinned tabs")
		return 0
	}

	count := len(tabs)
	log.Debug().Int("pinned_count", count).Msg("pinned tabs counted")
	return count
}
