package port

// Deferrer runs work after the tasks already queued on it have drained.
// There is no minimum delay and no timing guarantee.
type Deferrer interface {
	// Post queues fn. Returns false if the deferrer no longer accepts work.
	Post(fn func()) bool
}

// DeferFunc adapts a plain function to Deferrer.
type DeferFunc func(fn func()) bool

// Post implements Deferrer.
func (f DeferFunc) Post(fn func()) bool {
	return f(fn)
}
