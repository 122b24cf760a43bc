package resilience

import "sync"

// SingleFlight collapses concurrent loads of the same key into one call.
type SingleFlight[V any] struct {
	mu      sync.Mutex
	pending map[string]*flight[V]
}

type flight[V any] struct {
	done chan struct{}
	val  V
	err  error
}

// Do runs fn unless a call for key is already pending, in which case it
// waits for that call. shared reports a result produced by another caller.
func (g *SingleFlight[V]) Do(key string, fn func() (V, error)) (v V, err error, shared bool) {
	g.mu.Lock()
	if f, ok := g.pending[key]; ok {
		g.mu.Unlock()
		<-f.done
		return f.val, f.err, true
	}
	if g.pending == nil {
		g.pending = make(map[string]*flight[V])
	}
	f := &flight[V]{done: make(chan struct{})}
	g.pending[key] = f
	g.mu.Unlock()

	defer func() {
		g.mu.Lock()
		if g.pending[key] == f {
			delete(g.pending, key)
		}
		g.mu.Unlock()
		close(f.done)
	}()
	f.val, f.err = fn()
	return f.val, f.err, false
}

// Forget detaches the pending call for key. Callers already waiting still
// get its result; later callers start a new call.
func (g *SingleFlight[V]) Forget(key string) {
	g.mu.Lock()
	delete(g.pending, key)
	g.mu.Unlock()
}
