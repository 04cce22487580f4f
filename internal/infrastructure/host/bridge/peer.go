package bridge

import (
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"
)

// peer is one extension connection.
type peer struct {
	conn         *websocket.Conn
	writeTimeout time.Duration

	writeMu sync.Mutex

	pendingMu sync.Mutex
	pending   map[string]chan Message

	closed    chan struct{}
	closeOnce sync.Once
}

func newPeer(conn *websocket.Conn, writeTimeout time.Duration) *peer {
	return &peer{
		conn:         conn,
		writeTimeout: writeTimeout,
		pending:      make(map[string]chan Message),
		closed:       make(chan struct{}),
	}
}

func (p *peer) write(msg Message) error {
	p.writeMu.Lock()
	defer p.writeMu.Unlock()

	if p.writeTimeout > 0 {
		if err := p.conn.SetWriteDeadline(time.Now().Add(p.writeTimeout)); err != nil {
			return err
		}
	}
	return p.conn.WriteJSON(msg)
}

func (p *peer) register(id string) <-chan Message {
	ch := make(chan Message, 1)
	p.pendingMu.Lock()
	p.pending[id] = ch
	p.pendingMu.Unlock()
	return ch
}

func (p *peer) unregister(id string) {
	p.pendingMu.Lock()
	delete(p.pending, id)
	p.pendingMu.Unlock()
}

// resolve hands a response to its waiting caller.
func (p *peer) resolve(msg Message) bool {
	p.pendingMu.Lock()
	ch, ok := p.pending[msg.ID]
	delete(p.pending, msg.ID)
	p.pendingMu.Unlock()

	if ok {
		ch <- msg
	}
	return ok
}

// startPing sends websocket pings until the returned func is called.
func (p *peer) startPing(interval time.Duration, log *zerolog.Logger) func() {
	if interval <= 0 {
		return func() {}
	}

	stop := make(chan struct{})
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				p.writeMu.Lock()
				err := p.conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(interval))
				p.writeMu.Unlock()
				if err != nil {
					log.Debug().Err(err).Msg("ping failed")
					return
				}
			case <-stop:
				return
			case <-p.closed:
				return
			}
		}
	}()
	return func() { close(stop) }
}

func (p *peer) shutdown() {
	p.closeOnce.Do(func() {
		close(p.closed)
		_ = p.conn.Close()
	})
}
