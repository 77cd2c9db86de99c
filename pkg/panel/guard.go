package panel

import "sync"

// guard is a mutex that poisons itself when a holder panics. The image cache
// and the reader's state vectors are both mutated under a guard; a panic in
// the middle of an update must not let the next holder observe half-written
// state, so subsequent acquisitions fail with ErrPoisoned instead.
type guard struct {
	mu       sync.Mutex
	poisoned bool
}

// do runs fn while holding the lock. The panic is re-raised after the guard
// is marked.
func (g *guard) do(fn func()) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.poisoned {
		return ErrPoisoned
	}
	defer func() {
		if r := recover(); r != nil {
			g.poisoned = true
			panic(r)
		}
	}()
	fn()
	return nil
}
