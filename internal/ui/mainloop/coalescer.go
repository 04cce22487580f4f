package mainloop

import (
	"sync"

	"github.com/bnema/tabmover/internal/application/port"
)

// Coalescer merges bursts of same-key tasks into a single post.
// The latest callback for a key wins.
type Coalescer struct {
	mu        sync.Mutex
	pending   map[string]func()
	deferrer  port.Deferrer
	destroyed bool
}

func NewCoalescer(deferrer port.Deferrer) *Coalescer {
	if deferrer == nil {
		panic("mainloop.NewCoalescer: deferrer cannot be nil")
	}

	return &Coalescer{
		pending:  make(map[string]func()),
		deferrer: deferrer,
	}
}

func (c *Coalescer) Post(key string, fn func()) {
	if fn == nil || key == "" {
		return
	}

	c.mu.Lock()
	if c.destroyed {
		c.mu.Unlock()
		return
	}
	_, scheduled := c.pending[key]
	c.pending[key] = fn
	c.mu.Unlock()

	if scheduled {
		return
	}

	posted := c.deferrer.Post(func() {
		c.mu.Lock()
		fn := c.pending[key]
		delete(c.pending, key)
		destroyed := c.destroyed
		c.mu.Unlock()

		if !destroyed && fn != nil {
			fn()
		}
	})
	if !posted {
		c.mu.Lock()
		delete(c.pending, key)
		c.mu.Unlock()
	}
}

func (c *Coalescer) Destroy() {
	c.mu.Lock()
	c.destroyed = true
	c.pending = map[string]func(){}
	c.mu.Unlock()
}
