// Package memory implements an in-process tab host. It backs the simulator
// and the placement tests.
package memory

import (
	"context"
	"fmt"
	"sync"

	"github.com/bnema/tabmover/internal/application/port"
	"github.com/bnema/tabmover/internal/domain/entity"
	"github.com/bnema/tabmover/internal/infrastructure/host"
	"github.com/bnema/tabmover/internal/logging"
)

var _ port.TabHost = (*Host)(nil)

// CreateTabOptions describes a tab to open.
type CreateTabOptions struct {
	URL    string
	Title  string
	Pinned bool
	// Index is the requested position; negative appends.
	Index int
}

// Host keeps one entity.TabList per window.
type Host struct {
	mu       sync.Mutex
	windows  map[entity.WindowID]*entity.TabList
	order    []entity.WindowID
	nextTab  entity.TabID
	nextWin  entity.WindowID
	queryErr error
	moveErr  error
	queries  int
	moves    int
	onChange []func()

	created *host.Broadcaster
}

// New creates a host with no windows.
func New() *Host {
	return &Host{
		windows: make(map[entity.WindowID]*entity.TabList),
		nextTab: 1,
		nextWin: 1,
		created: host.NewBroadcaster(),
	}
}

// OpenWindow adds an empty window and returns its ID.
func (h *Host) OpenWindow() entity.WindowID {
	h.mu.Lock()
	id := h.nextWin
	h.nextWin++
	h.windows[id] = entity.NewTabList(id)
	h.order = append(h.order, id)
	h.mu.Unlock()

	h.notifyChange()
	return id
}

// Windows returns window IDs in creation order.
func (h *Host) Windows() []entity.WindowID {
	h.mu.Lock()
	defer h.mu.Unlock()
	return append([]entity.WindowID(nil), h.order...)
}

// Tabs returns a snapshot of a window's strip.
func (h *Host) Tabs(windowID entity.WindowID) []entity.Tab {
	h.mu.Lock()
	defer h.mu.Unlock()
	tl, ok := h.windows[windowID]
	if !ok {
		return nil
	}
	return tl.Snapshot()
}

// Tab returns the current state of one tab.
func (h *Host) Tab(id entity.TabID) (entity.Tab, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if tl := h.windowOf(id); tl != nil {
		return *tl.Find(id), true
	}
	return entity.Tab{}, false
}

// CreateTab opens a tab and notifies created-tab subscribers with the
// snapshot taken right after insertion.
func (h *Host) CreateTab(windowID entity.WindowID, opts CreateTabOptions) (entity.Tab, error) {
	h.mu.Lock()
	tl, ok := h.windows[windowID]
	if !ok {
		h.mu.Unlock()
		return entity.Tab{}, fmt.Errorf("window %d not found", windowID)
	}
	tab := &entity.Tab{
		ID:     h.nextTab,
		URL:    opts.URL,
		Title:  opts.Title,
		Pinned: opts.Pinned,
	}
	h.nextTab++
	tl.Insert(tab, opts.Index)
	snapshot := *tab
	h.mu.Unlock()

	h.created.Publish(snapshot)
	h.notifyChange()
	return snapshot, nil
}

// CloseTab removes a tab from its window.
func (h *Host) CloseTab(id entity.TabID) error {
	h.mu.Lock()
	tl := h.windowOf(id)
	if tl == nil {
		h.mu.Unlock()
		return fmt.Errorf("%w: %d", entity.ErrTabNotFound, id)
	}
	tl.Remove(id)
	h.mu.Unlock()

	h.notifyChange()
	return nil
}

// SetPinned pins or unpins a tab.
func (h *Host) SetPinned(id entity.TabID, pinned bool) error {
	h.mu.Lock()
	tl := h.windowOf(id)
	if tl == nil {
		h.mu.Unlock()
		return fmt.Errorf("%w: %d", entity.ErrTabNotFound, id)
	}
	err := tl.SetPinned(id, pinned)
	h.mu.Unlock()

	if err == nil {
		h.notifyChange()
	}
	return err
}

// FailQueries makes every Query fail with err until reset with nil.
func (h *Host) FailQueries(err error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.queryErr = err
}

// FailMoves makes every Move fail with err until reset with nil.
func (h *Host) FailMoves(err error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.moveErr = err
}

// Calls returns how many Query and Move calls the host has served.
func (h *Host) Calls() (queries, moves int) {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.queries, h.moves
}

// OnChange registers a callback run after every strip mutation.
func (h *Host) OnChange(fn func()) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.onChange = append(h.onChange, fn)
}

// Close ends all subscriptions.
func (h *Host) Close() {
	h.created.Close()
}

// Query implements port.TabQuerier.
func (h *Host) Query(ctx context.Context, q port.TabQuery) ([]entity.Tab, error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.queries++
	if h.queryErr != nil {
		return nil, h.queryErr
	}

	var out []entity.Tab
	for _, id := range h.order {
		for _, tab := range h.windows[id].Snapshot() {
			if q.Matches(tab) {
				out = append(out, tab)
			}
		}
	}
	logging.FromContext(ctx).Trace().Int("matches", len(out)).Msg("memory host query")
	return out, nil
}

// Move implements port.TabMover.
func (h *Host) Move(ctx context.Context, id entity.TabID, index int) (*entity.Tab, error) {
	h.mu.Lock()
	h.moves++
	if h.moveErr != nil {
		err := h.moveErr
		h.mu.Unlock()
		return nil, err
	}

	tl := h.windowOf(id)
	if tl == nil {
		h.mu.Unlock()
		return nil, fmt.Errorf("%w: %d", entity.ErrTabNotFound, id)
	}
	pos, err := tl.Move(id, index)
	if err != nil {
		h.mu.Unlock()
		return nil, err
	}
	tab := *tl.Find(id)
	h.mu.Unlock()

	logging.FromContext(ctx).Trace().Int("position", pos).Msg("memory host move")
	h.notifyChange()
	return &tab, nil
}

// SubscribeCreated implements port.TabEvents.
func (h *Host) SubscribeCreated(_ context.Context) (port.TabSubscription, error) {
	return h.created.Subscribe(), nil
}

func (h *Host) windowOf(id entity.TabID) *entity.TabList {
	for _, wid := range h.order {
		if tl := h.windows[wid]; tl.Find(id) != nil {
			return tl
		}
	}
	return nil
}

func (h *Host) notifyChange() {
	h.mu.Lock()
	callbacks := append([]func(){}, h.onChange...)
	h.mu.Unlock()

	for _, fn := range callbacks {
		fn()
	}
}
