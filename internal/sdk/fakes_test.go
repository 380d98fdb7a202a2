package sdk

import (
	"errors"
	"sync"
)

type fakeDocument struct {
	mu       sync.Mutex
	scripts  map[string]string
	injected int
	removed  int
	pending  []func(error)

	// autoLoad completes injections synchronously with loadErr.
	autoLoad bool
	loadErr  error
	// hooks, when set, fires after a successful load like the real SDK does.
	hooks *Hooks
}

func newFakeDocument() *fakeDocument {
	return &fakeDocument{scripts: make(map[string]string)}
}

func (d *fakeDocument) HasScript(id string) bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	_, ok := d.scripts[id]
	return ok
}

func (d *fakeDocument) InjectScript(id, src string, done func(error)) {
	d.mu.Lock()
	d.scripts[id] = src
	d.injected++
	auto, err := d.autoLoad, d.loadErr
	if !auto {
		d.pending = append(d.pending, done)
	}
	d.mu.Unlock()
	if auto {
		d.finish(done, err)
	}
}

func (d *fakeDocument) RemoveScript(id string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if _, ok := d.scripts[id]; ok {
		delete(d.scripts, id)
		d.removed++
	}
}

// complete settles every pending injection with err.
func (d *fakeDocument) complete(err error) {
	d.mu.Lock()
	pending := d.pending
	d.pending = nil
	d.mu.Unlock()
	for _, done := range pending {
		d.finish(done, err)
	}
}

func (d *fakeDocument) finish(done func(error), err error) {
	done(err)
	if err == nil && d.hooks != nil {
		d.hooks.Fire()
	}
}

func (d *fakeDocument) injections() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.injected
}

func (d *fakeDocument) src(id string) string {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.scripts[id]
}

type fakeHandle struct{}

func (fakeHandle) Login(LoginOptions, func(LoginResponse)) {}
func (fakeHandle) GetLoginStatus(func(LoginResponse))      {}
func (fakeHandle) Logout(func(LoginResponse))              {}

type fakeInitializer struct {
	mu      sync.Mutex
	calls   []Config
	err     error
	panicky bool
}

func (f *fakeInitializer) Init(cfg Config) (Handle, error) {
	f.mu.Lock()
	f.calls = append(f.calls, cfg)
	err, panicky := f.err, f.panicky
	f.mu.Unlock()
	if panicky {
		panic("FB is not defined")
	}
	if err != nil {
		return nil, err
	}
	return fakeHandle{}, nil
}

func (f *fakeInitializer) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.calls)
}

func (f *fakeInitializer) setErr(err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.err = err
}

var errBlocked = errors.New("net::ERR_BLOCKED_BY_CLIENT")
