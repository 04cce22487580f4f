package bridge

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"

	"github.com/bnema/tabmover/internal/application/port"
	"github.com/bnema/tabmover/internal/domain/entity"
	"github.com/bnema/tabmover/internal/infrastructure/host"
	"github.com/bnema/tabmover/internal/logging"
)

var _ port.TabHost = (*Server)(nil)

// Options configures the bridge server.
type Options struct {
	// AllowedOrigins lists accepted Origin headers. Empty accepts browser
	// extension origins and clients that send no Origin at all.
	AllowedOrigins []string
	WriteTimeout   time.Duration
	// PingInterval enables keepalive pings; zero disables them.
	PingInterval time.Duration
}

// Server is an http.Handler accepting one extension connection at a time
// and a port.TabHost forwarding calls over it.
type Server struct {
	opts     Options
	upgrader websocket.Upgrader
	log      *zerolog.Logger
	nextID   atomic.Int64

	mu      sync.Mutex
	peer    *peer
	closed  bool
	created *host.Broadcaster
}

// NewServer creates a bridge server. ctx only supplies the logger.
func NewServer(ctx context.Context, opts Options) *Server {
	ctx = logging.WithComponent(ctx, "bridge")
	s := &Server{
		opts:    opts,
		log:     logging.FromContext(ctx),
		created: host.NewBroadcaster(),
	}
	s.upgrader = websocket.Upgrader{CheckOrigin: s.checkOrigin}
	return s
}

func (s *Server) checkOrigin(r *http.Request) bool {
	origin := r.Header.Get("Origin")
	if len(s.opts.AllowedOrigins) == 0 {
		return origin == "" ||
			strings.HasPrefix(origin, "moz-extension://") ||
			strings.HasPrefix(origin, "chrome-extension://")
	}
	for _, allowed := range s.opts.AllowedOrigins {
		if origin == allowed {
			return true
		}
	}
	return false
}

// ServeHTTP upgrades the request and serves the connection until it drops.
// A newer connection replaces the current one.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.log.Warn().Err(err).Str("origin", r.Header.Get("Origin")).Msg("websocket upgrade failed")
		return
	}

	p := newPeer(conn, s.opts.WriteTimeout)

	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		p.shutdown()
		return
	}
	old := s.peer
	s.peer = p
	s.mu.Unlock()

	if old != nil {
		s.log.Info().Msg("replacing existing extension connection")
		old.shutdown()
	}

	s.log.Info().Str("remote", r.RemoteAddr).Msg("extension connected")
	if err := p.write(Message{Type: TypeHello, Version: ProtocolVersion}); err != nil {
		s.log.Warn().Err(err).Msg("failed to greet extension")
	}

	stopPing := p.startPing(s.opts.PingInterval, s.log)
	s.readLoop(p)
	stopPing()

	s.mu.Lock()
	if s.peer == p {
		s.peer = nil
	}
	s.mu.Unlock()
	p.shutdown()
	s.log.Info().Msg("extension disconnected")
}

func (s *Server) readLoop(p *peer) {
	for {
		var msg Message
		if err := p.conn.ReadJSON(&msg); err != nil {
			if !websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				s.log.Debug().Err(err).Msg("websocket read ended")
			}
			return
		}

		switch msg.Type {
		case TypeEvent:
			s.handleEvent(msg)
		case TypeResponse:
			if !p.resolve(msg) {
				s.log.Debug().Str("id", msg.ID).Msg("response for unknown command")
			}
		case TypePing:
			if err := p.write(Message{Type: TypePong}); err != nil {
				s.log.Debug().Err(err).Msg("failed to answer ping")
			}
		default:
			s.log.Debug().Str("type", string(msg.Type)).Msg("ignoring unknown message type")
		}
	}
}

func (s *Server) handleEvent(msg Message) {
	if msg.Event != EventTabCreated {
		s.log.Trace().Str("event", msg.Event).Msg("ignoring event")
		return
	}
	if msg.Tab == nil {
		s.log.Warn().Msg("tab created event without tab")
		return
	}
	s.created.Publish(*msg.Tab)
}

// Connected reports whether an extension is attached.
func (s *Server) Connected() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.peer != nil
}

// Close drops the extension connection and ends all subscriptions.
func (s *Server) Close() error {
	s.mu.Lock()
	s.closed = true
	p := s.peer
	s.peer = nil
	s.mu.Unlock()

	if p != nil {
		p.shutdown()
	}
	s.created.Close()
	return nil
}

// Query implements port.TabQuerier.
func (s *Server) Query(ctx context.Context, q port.TabQuery) ([]entity.Tab, error) {
	resp, err := s.call(ctx, queryCommand(q))
	if err != nil {
		return nil, err
	}
	return resp.Tabs, nil
}

// Move implements port.TabMover.
func (s *Server) Move(ctx context.Context, id entity.TabID, index int) (*entity.Tab, error) {
	resp, err := s.call(ctx, moveCommand(id, index))
	if err != nil {
		return nil, err
	}
	return resp.Tab, nil
}

// SubscribeCreated implements port.TabEvents. Subscriptions outlive
// reconnects of the extension.
func (s *Server) SubscribeCreated(_ context.Context) (port.TabSubscription, error) {
	return s.created.Subscribe(), nil
}

func (s *Server) call(ctx context.Context, cmd Message) (Message, error) {
	s.mu.Lock()
	p := s.peer
	s.mu.Unlock()
	if p == nil {
		return Message{}, ErrNotConnected
	}

	cmd.ID = fmt.Sprintf("cmd-%d", s.nextID.Add(1))
	ch := p.register(cmd.ID)
	defer p.unregister(cmd.ID)

	if err := p.write(cmd); err != nil {
		return Message{}, fmt.Errorf("send %s: %w", cmd.Method, err)
	}

	select {
	case resp := <-ch:
		if resp.OK == nil || !*resp.OK {
			return Message{}, &RemoteError{Method: cmd.Method, Message: resp.Error}
		}
		return resp, nil
	case <-p.closed:
		return Message{}, fmt.Errorf("%s: %w", cmd.Method, ErrConnectionClosed)
	case <-ctx.Done():
		return Message{}, ctx.Err()
	}
}
