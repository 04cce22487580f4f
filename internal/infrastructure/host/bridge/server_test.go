package bridge_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bnema/tabmover/internal/app/placement"
	"github.com/bnema/tabmover/internal/application/port"
	"github.com/bnema/tabmover/internal/application/usecase"
	"github.com/bnema/tabmover/internal/domain/entity"
	"github.com/bnema/tabmover/internal/infrastructure/host/bridge"
	"github.com/bnema/tabmover/internal/infrastructure/host/memory"
	"github.com/bnema/tabmover/internal/logging"
	"github.com/bnema/tabmover/internal/ui/mainloop"
)

func testContext() context.Context {
	return logging.WithContext(context.Background(), logging.NewFromConfigValues("debug", "console"))
}

func newBridge(t *testing.T, opts bridge.Options) (*bridge.Server, string) {
	t.Helper()
	srv := bridge.NewServer(testContext(), opts)
	ts := httptest.NewServer(srv)
	t.Cleanup(func() {
		_ = srv.Close()
		ts.Close()
	})
	return srv, "ws" + strings.TrimPrefix(ts.URL, "http")
}

// fakeExtension plays the browser side of the bridge, answering commands
// from an in-memory tab host.
type fakeExtension struct {
	conn    *websocket.Conn
	browser *memory.Host
	writeMu sync.Mutex

	mu       sync.Mutex
	commands []bridge.Message
	reject   string
}

func dialExtension(t *testing.T, url string, browser *memory.Host) *fakeExtension {
	t.Helper()
	conn, _, err := websocket.DefaultDialer.Dial(url, http.Header{"Origin": {"moz-extension://test"}})
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })

	var hello bridge.Message
	require.NoError(t, conn.ReadJSON(&hello))
	require.Equal(t, bridge.TypeHello, hello.Type)
	require.Equal(t, bridge.ProtocolVersion, hello.Version)

	return &fakeExtension{conn: conn, browser: browser}
}

func (f *fakeExtension) send(msg bridge.Message) error {
	f.writeMu.Lock()
	defer f.writeMu.Unlock()
	return f.conn.WriteJSON(msg)
}

func (f *fakeExtension) serve() {
	for {
		var msg bridge.Message
		if err := f.conn.ReadJSON(&msg); err != nil {
			return
		}
		if msg.Type != bridge.TypeCommand {
			continue
		}

		f.mu.Lock()
		f.commands = append(f.commands, msg)
		reject := f.reject
		f.mu.Unlock()

		_ = f.send(f.answer(msg, reject))
	}
}

func (f *fakeExtension) answer(msg bridge.Message, reject string) bridge.Message {
	ok, fail := true, false
	resp := bridge.Message{Type: bridge.TypeResponse, ID: msg.ID, OK: &ok}
	if reject != "" {
		resp.OK, resp.Error = &fail, reject
		return resp
	}

	ctx := context.Background()
	switch msg.Method {
	case bridge.MethodQuery:
		tabs, err := f.browser.Query(ctx, *msg.Query)
		if err != nil {
			resp.OK, resp.Error = &fail, err.Error()
		}
		resp.Tabs = tabs
	case bridge.MethodMove:
		tab, err := f.browser.Move(ctx, *msg.TabID, *msg.Index)
		if err != nil {
			resp.OK, resp.Error = &fail, err.Error()
		}
		resp.Tab = tab
	default:
		resp.OK, resp.Error = &fail, "unknown method"
	}
	return resp
}

func (f *fakeExtension) methods() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]string, 0, len(f.commands))
	for _, c := range f.commands {
		out = append(out, c.Method)
	}
	return out
}

func TestServer_NotConnected(t *testing.T) {
	srv, _ := newBridge(t, bridge.Options{})

	_, err := srv.Query(context.Background(), port.PinnedOnly())
	assert.ErrorIs(t, err, bridge.ErrNotConnected)

	_, err = srv.Move(context.Background(), 1, 0)
	assert.ErrorIs(t, err, bridge.ErrNotConnected)
	assert.False(t, srv.Connected())
}

func TestServer_QueryAndMoveRoundTrip(t *testing.T) {
	srv, url := newBridge(t, bridge.Options{WriteTimeout: time.Second})

	browser := memory.New()
	win := browser.OpenWindow()
	_, _ = browser.CreateTab(win, memory.CreateTabOptions{Pinned: true, Index: -1})
	_, _ = browser.CreateTab(win, memory.CreateTabOptions{Index: -1})
	last, _ := browser.CreateTab(win, memory.CreateTabOptions{Index: -1})

	ext := dialExtension(t, url, browser)
	go ext.serve()
	require.True(t, srv.Connected())

	pinned, err := srv.Query(context.Background(), port.PinnedOnly())
	require.NoError(t, err)
	assert.Len(t, pinned, 1)

	moved, err := srv.Move(context.Background(), last.ID, 1)
	require.NoError(t, err)
	require.NotNil(t, moved)
	assert.Equal(t, 1, moved.Index)

	assert.Equal(t, []string{bridge.MethodQuery, bridge.MethodMove}, ext.methods())
}

func TestServer_RemoteError(t *testing.T) {
	srv, url := newBridge(t, bridge.Options{})

	ext := dialExtension(t, url, memory.New())
	ext.reject = "Invalid tab ID: 12"
	go ext.serve()

	_, err := srv.Move(context.Background(), 12, 0)
	var remote *bridge.RemoteError
	require.ErrorAs(t, err, &remote)
	assert.Equal(t, bridge.MethodMove, remote.Method)
	assert.Contains(t, err.Error(), "Invalid tab ID: 12")
}

func TestServer_DisconnectFailsPendingCall(t *testing.T) {
	srv, url := newBridge(t, bridge.Options{})
	ext := dialExtension(t, url, memory.New())

	go func() {
		var cmd bridge.Message
		if err := ext.conn.ReadJSON(&cmd); err == nil {
			_ = ext.conn.Close()
		}
	}()

	_, err := srv.Query(context.Background(), port.PinnedOnly())
	require.Error(t, err)
	assert.True(t, errors.Is(err, bridge.ErrConnectionClosed) || strings.Contains(err.Error(), "send"))

	assert.Eventually(t, func() bool { return !srv.Connected() }, time.Second, 10*time.Millisecond)
}

func TestServer_ContextCancelsCall(t *testing.T) {
	srv, url := newBridge(t, bridge.Options{})
	_ = dialExtension(t, url, memory.New()) // never answers

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	_, err := srv.Query(ctx, port.PinnedOnly())
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestServer_CreatedEventsReachSubscribers(t *testing.T) {
	srv, url := newBridge(t, bridge.Options{})

	sub, err := srv.SubscribeCreated(context.Background())
	require.NoError(t, err)
	defer sub.Close()

	ext := dialExtension(t, url, memory.New())
	require.NoError(t, ext.send(bridge.Message{Type: bridge.TypeEvent, Event: "tabs.onRemoved"}))
	require.NoError(t, ext.send(bridge.Message{
		Type:  bridge.TypeEvent,
		Event: bridge.EventTabCreated,
		Tab:   &entity.Tab{ID: 17, WindowID: 3, Index: 4, URL: "about:newtab"},
	}))

	select {
	case tab := <-sub.Created():
		assert.Equal(t, entity.TabID(17), tab.ID)
		assert.Equal(t, entity.WindowID(3), tab.WindowID)
		assert.Equal(t, 4, tab.Index)
	case <-time.After(time.Second):
		t.Fatal("created event not delivered")
	}
}

func TestServer_AnswersPing(t *testing.T) {
	_, url := newBridge(t, bridge.Options{})
	ext := dialExtension(t, url, memory.New())

	require.NoError(t, ext.send(bridge.Message{Type: bridge.TypePing}))

	var pong bridge.Message
	require.NoError(t, ext.conn.SetReadDeadline(time.Now().Add(time.Second)))
	require.NoError(t, ext.conn.ReadJSON(&pong))
	assert.Equal(t, bridge.TypePong, pong.Type)
}

func TestServer_RejectsForeignOrigin(t *testing.T) {
	_, url := newBridge(t, bridge.Options{})

	_, resp, err := websocket.DefaultDialer.Dial(url, http.Header{"Origin": {"https://evil.example"}})
	require.Error(t, err)
	require.NotNil(t, resp)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
}

func TestServer_AllowedOriginsList(t *testing.T) {
	_, url := newBridge(t, bridge.Options{AllowedOrigins: []string{"moz-extension://mine"}})

	_, _, err := websocket.DefaultDialer.Dial(url, http.Header{"Origin": {"moz-extension://other"}})
	require.Error(t, err)

	conn, _, err := websocket.DefaultDialer.Dial(url, http.Header{"Origin": {"moz-extension://mine"}})
	require.NoError(t, err)
	_ = conn.Close()
}

func TestServer_NewConnectionReplacesOld(t *testing.T) {
	srv, url := newBridge(t, bridge.Options{})

	first := dialExtension(t, url, memory.New())
	second := dialExtension(t, url, memory.New())
	go second.serve()

	// The first connection is closed by the server.
	require.NoError(t, first.conn.SetReadDeadline(time.Now().Add(time.Second)))
	var msg bridge.Message
	assert.Error(t, first.conn.ReadJSON(&msg))

	_, err := srv.Query(context.Background(), port.TabQuery{})
	assert.NoError(t, err)
}

func TestServer_PlacementEndToEnd(t *testing.T) {
	srv, url := newBridge(t, bridge.Options{WriteTimeout: time.Second})
	ctx := testContext()

	browser := memory.New()
	win := browser.OpenWindow()
	for i := 0; i < 5; i++ {
		_, _ = browser.CreateTab(win, memory.CreateTabOptions{Pinned: i < 2, Index: -1})
	}

	ext := dialExtension(t, url, browser)
	go ext.serve()

	loop := mainloop.New(ctx)
	loop.Start()
	defer loop.Stop()

	placed := make(chan *usecase.PlaceNewTabOutput, 1)
	listener := placement.NewListener(srv, loop, usecase.NewPlaceNewTabUseCase(srv, usecase.NewCountPinnedTabsUseCase(srv)))
	listener.OnPlaced(func(_ entity.Tab, out *usecase.PlaceNewTabOutput) { placed <- out })
	require.NoError(t, listener.Start(ctx))
	defer func() { _ = listener.Stop() }()

	// The browser opens a tab at the end and reports it.
	tab, err := browser.CreateTab(win, memory.CreateTabOptions{URL: "about:newtab", Index: -1})
	require.NoError(t, err)
	require.Equal(t, 5, tab.Index)
	require.NoError(t, ext.send(bridge.Message{Type: bridge.TypeEvent, Event: bridge.EventTabCreated, Tab: &tab}))

	select {
	case out := <-placed:
		assert.True(t, out.Moved)
		assert.Equal(t, 2, out.TargetIndex)
	case <-time.After(2 * time.Second):
		t.Fatal("tab was never placed")
	}

	got, ok := browser.Tab(tab.ID)
	require.True(t, ok)
	assert.Equal(t, 2, got.Index)
	assert.Equal(t, []string{bridge.MethodQuery, bridge.MethodMove}, ext.methods())
}
