package entity

import (
	"errors"
	"fmt"
)

var (
	// ErrTabNotFound is returned when a tab ID does not match any tab.
	ErrTabNotFound = errors.New("tab not found")
	// ErrInvalidIndex is returned for negative target indexes.
	ErrInvalidIndex = errors.New("invalid tab index")
)

// TabID is the opaque handle the host assigns to a tab.
type TabID int

// WindowID identifies the browser window owning a tab.
type WindowID int

// Tab is a host-owned snapshot of one open tab.
type Tab struct {
	ID       TabID    `json:"id"`
	WindowID WindowID `json:"windowId"`
	Index    int      `json:"index"` // Position in the tab strip (0-indexed)
	Pinned   bool     `json:"pinned"`
	URL      string   `json:"url,omitempty"`
	Title    string   `json:"title,omitempty"`
}

// String implements fmt.Stringer.
func (t Tab) String() string {
	return fmt.Sprintf("tab %d (window %d, index %d, pinned %t)", t.ID, t.WindowID, t.Index, t.Pinned)
}

// DisplayTitle returns the title, falling back to URL or "New Tab".
func (t Tab) DisplayTitle() string {
	if t.Title != "" {
		return t.Title
	}
	if t.URL != "" {
		return t.URL
	}
	return "New Tab"
}

// TabList is the ordered tab strip of a single window.
// Pinned tabs are always contiguous at the front.
type TabList struct {
	WindowID WindowID
	Tabs     []*Tab
}

// NewTabList creates an empty tab strip for a window.
func NewTabList(windowID WindowID) *TabList {
	return &TabList{
		WindowID: windowID,
		Tabs:     make([]*Tab, 0),
	}
}

// Count returns the number of tabs.
func (tl *TabList) Count() int {
	return len(tl.Tabs)
}

// PinnedCount returns the number of pinned tabs.
func (tl *TabList) PinnedCount() int {
	n := 0
	for _, t := range tl.Tabs {
		if t.Pinned {
			n++
		}
	}
	return n
}

// Find returns a tab by ID.
func (tl *TabList) Find(id TabID) *Tab {
	for _, tab := range tl.Tabs {
		if tab.ID == id {
			return tab
		}
	}
	return nil
}

// Insert places a tab at index, clamped to the range its pinned state allows.
// A negative index appends. Returns the final index.
func (tl *TabList) Insert(tab *Tab, index int) int {
	tab.WindowID = tl.WindowID
	if index < 0 {
		index = len(tl.Tabs)
	}
	index = tl.clamp(tab.Pinned, index, len(tl.Tabs))

	tl.Tabs = append(tl.Tabs, nil)
	copy(tl.Tabs[index+1:], tl.Tabs[index:])
	tl.Tabs[index] = tab
	tl.reindex()
	return index
}

// Remove removes a tab by ID and reindexes positions.
func (tl *TabList) Remove(id TabID) bool {
	for i, tab := range tl.Tabs {
		if tab.ID == id {
			tl.Tabs = append(tl.Tabs[:i], tl.Tabs[i+1:]...)
			tl.reindex()
			return true
		}
	}
	return false
}

// Move moves a tab to a new position. Like a browser tab strip, targets past
// the end land on the last slot and unpinned tabs cannot enter the pinned
// block (nor pinned tabs leave it). Returns the final index.
func (tl *TabList) Move(id TabID, newPos int) (int, error) {
	if newPos < 0 {
		return 0, fmt.Errorf("%w: %d", ErrInvalidIndex, newPos)
	}
	tab := tl.Find(id)
	if tab == nil {
		return 0, fmt.Errorf("%w: %d", ErrTabNotFound, id)
	}

	// Remove from old position
	tl.Tabs = append(tl.Tabs[:tab.Index], tl.Tabs[tab.Index+1:]...)
	newPos = tl.clamp(tab.Pinned, newPos, len(tl.Tabs))

	// Insert at new position
	tl.Tabs = append(tl.Tabs[:newPos], append([]*Tab{tab}, tl.Tabs[newPos:]...)...)
	tl.reindex()
	return newPos, nil
}

// SetPinned changes a tab's pinned state, moving it to the edge of the
// pinned block so the block stays contiguous.
func (tl *TabList) SetPinned(id TabID, pinned bool) error {
	tab := tl.Find(id)
	if tab == nil {
		return fmt.Errorf("%w: %d", ErrTabNotFound, id)
	}
	if tab.Pinned == pinned {
		return nil
	}

	tl.Tabs = append(tl.Tabs[:tab.Index], tl.Tabs[tab.Index+1:]...)
	tab.Pinned = pinned
	// The pinned block's edge is the last pinned slot once the tab is back.
	edge := 0
	for _, t := range tl.Tabs {
		if t.Pinned {
			edge++
		}
	}
	tl.Tabs = append(tl.Tabs[:edge], append([]*Tab{tab}, tl.Tabs[edge:]...)...)
	tl.reindex()
	return nil
}

// Snapshot returns copies of all tabs in order.
func (tl *TabList) Snapshot() []Tab {
	out := make([]Tab, len(tl.Tabs))
	for i, t := range tl.Tabs {
		out[i] = *t
	}
	return out
}

// clamp bounds index for a tab with the given pinned state inside a strip of
// size n (the strip not yet containing the tab).
func (tl *TabList) clamp(pinned bool, index, n int) int {
	pinnedCount := 0
	for _, t := range tl.Tabs {
		if t.Pinned {
			pinnedCount++
		}
	}
	if pinned {
		return min(index, pinnedCount)
	}
	return min(max(index, pinnedCount), n)
}

func (tl *TabList) reindex() {
	for i := range tl.Tabs {
		tl.Tabs[i].Index = i
		tl.Tabs[i].WindowID = tl.WindowID
	}
}
