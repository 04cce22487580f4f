package port

import (
	"context"

	"github.com/bnema/tabmover/internal/domain/entity"
)

// TabQuery filters a tab query. Nil fields match every tab.
type TabQuery struct {
	Pinned   *bool            `json:"pinned,omitempty"`
	WindowID *entity.WindowID `json:"windowId,omitempty"`
}

// Matches reports whether tab satisfies the filter.
func (q TabQuery) Matches(tab entity.Tab) bool {
	if q.Pinned != nil && tab.Pinned != *q.Pinned {
		return false
	}
	if q.WindowID != nil && tab.WindowID != *q.WindowID {
		return false
	}
	return true
}

// PinnedOnly returns a query matching pinned tabs in every window.
func PinnedOnly() TabQuery {
	pinned := true
	return TabQuery{Pinned: &pinned}
}

// TabQuerier lists the host's tabs.
type TabQuerier interface {
	// Query returns the tabs matching q across all windows the host exposes.
	Query(ctx context.Context, q TabQuery) ([]entity.Tab, error)
}

// TabMover repositions tabs.
type TabMover interface {
	// Move places the tab at index within its own window and returns its new state.
	// Fails if the ID is unknown or the host rejects the move.
	Move(ctx context.Context, id entity.TabID, index int) (*entity.Tab, error)
}

// TabSubscription delivers created-tab snapshots until closed.
type TabSubscription interface {
	// Created yields one snapshot per newly created tab.
	// The channel is closed once the subscription ends.
	Created() <-chan entity.Tab
	Close() error
}

// TabEvents lets callers subscribe to tab lifecycle notifications.
type TabEvents interface {
	SubscribeCreated(ctx context.Context) (TabSubscription, error)
}

// TabHost is the full browser tab surface tabmover consumes.
type TabHost interface {
	TabQuerier
	TabMover
	TabEvents
}
