package state

import (
	"errors"
	"sync"
)

// Store owns the current State. Reads return snapshots; writes go through
// Dispatch, which serializes commands and notifies subscribers in order.
type Store struct {
	// dispatchMu serializes Dispatch including subscriber notification.
	dispatchMu sync.Mutex

	mu      sync.RWMutex
	current State
	subs    map[int]func(State)
	nextSub int
}

// New creates a store holding initial.
func New(initial State) *Store {
	return &Store{
		current: initial,
		subs:    make(map[int]func(State)),
	}
}

// State returns the current snapshot.
func (st *Store) State() State {
	st.mu.RLock()
	defer st.mu.RUnlock()
	return st.current
}

// Subscribe registers fn to be called with every new snapshot. fn runs on the
// dispatching goroutine and must not call Dispatch. The returned function
// removes the subscription.
func (st *Store) Subscribe(fn func(State)) func() {
	st.mu.Lock()
	id := st.nextSub
	st.nextSub++
	st.subs[id] = fn
	st.mu.Unlock()

	return func() {
		st.mu.Lock()
		delete(st.subs, id)
		st.mu.Unlock()
	}
}

// Dispatch applies cmd. On error the state is unchanged and no subscriber is
// notified.
func (st *Store) Dispatch(cmd Command) error {
	st.dispatchMu.Lock()
	defer st.dispatchMu.Unlock()

	st.mu.RLock()
	prev := st.current
	st.mu.RUnlock()

	next, err := cmd.apply(prev)
	if errors.Is(err, errUnchanged) {
		return nil
	}
	if err != nil {
		return err
	}
	next.Version = prev.Version + 1

	st.mu.Lock()
	st.current = next
	subs := make([]func(State), 0, len(st.subs))
	for _, fn := range st.subs {
		subs = append(subs, fn)
	}
	st.mu.Unlock()

	for _, fn := range subs {
		fn(next)
	}
	return nil
}
