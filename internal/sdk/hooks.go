package sdk

import "sync"

// Hooks is the readiness registry fed by the SDK's async init hook.
// Subscribers run once, in registration order, when Fire is called.
// Subscribing after Fire runs the callback immediately.
type Hooks struct {
	mu     sync.Mutex
	fired  bool
	nextID int
	subs   []hookSub
}

type hookSub struct {
	id int
	fn func()
}

// NewHooks returns an unfired registry.
func NewHooks() *Hooks {
	return &Hooks{}
}

// Subscribe registers fn and returns a function that removes it.
func (h *Hooks) Subscribe(fn func()) (cancel func()) {
	h.mu.Lock()
	if h.fired {
		h.mu.Unlock()
		fn()
		return func() {}
	}
	h.nextID++
	id := h.nextID
	h.subs = append(h.subs, hookSub{id: id, fn: fn})
	h.mu.Unlock()

	return func() {
		h.mu.Lock()
		defer h.mu.Unlock()
		for i, sub := range h.subs {
			if sub.id == id {
				h.subs = append(h.subs[:i], h.subs[i+1:]...)
				break
			}
		}
	}
}

// Fire notifies every pending subscriber. Only the first call has an effect.
func (h *Hooks) Fire() {
	h.mu.Lock()
	if h.fired {
		h.mu.Unlock()
		return
	}
	h.fired = true
	subs := h.subs
	h.subs = nil
	h.mu.Unlock()

	for _, sub := range subs {
		sub.fn()
	}
}

// Fired reports whether the readiness signal has been observed.
func (h *Hooks) Fired() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.fired
}

// Reset re-arms the registry and drops pending subscribers.
func (h *Hooks) Reset() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.fired = false
	h.subs = nil
}

// Chain returns the function to install as the SDK's readiness hook. It runs
// previous, the hook that was installed before, and then fires. An error from
// previous is passed to onErr and does not stop the fire.
func (h *Hooks) Chain(previous func() error, onErr func(error)) func() {
	return func() {
		if previous != nil {
			if err := previous(); err != nil && onErr != nil {
				onErr(err)
			}
		}
		h.Fire()
	}
}
