package sdk

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"sync"
	"time"

	"github.com/Its-donkey/wa-signup/logging"
)

// DefaultTimeout bounds how long a load waits for the script and readiness hook.
const DefaultTimeout = 10 * time.Second

const logCategory = "sdk"

// Loader owns the SDK lifecycle for one page. Create one at the application
// root and pass it to whatever needs SDK access.
type Loader struct {
	doc         Document
	hooks       *Hooks
	initializer Initializer
	timeout     time.Duration
	log         *logging.Logger

	mu        sync.Mutex
	status    Status
	err       error
	handle    Handle
	inflight  *attempt
	gen       uint64
	watchers  map[int]func(Snapshot)
	nextWatch int
}

// attempt is one in-flight load shared by every caller that arrives while it runs.
type attempt struct {
	gen  uint64
	done chan struct{}
	err  error
}

// Option configures a Loader.
type Option func(*Loader)

// WithTimeout overrides DefaultTimeout.
func WithTimeout(d time.Duration) Option {
	return func(l *Loader) {
		if d > 0 {
			l.timeout = d
		}
	}
}

// WithLogger sets the logger used for lifecycle events.
func WithLogger(logger *logging.Logger) Option {
	return func(l *Loader) {
		if logger != nil {
			l.log = logger
		}
	}
}

// NewLoader builds an idle loader. hooks must be the registry the page's
// readiness hook fires.
func NewLoader(doc Document, hooks *Hooks, initializer Initializer, opts ...Option) *Loader {
	l := &Loader{
		doc:         doc,
		hooks:       hooks,
		initializer: initializer,
		timeout:     DefaultTimeout,
		log:         logging.Discard(),
		watchers:    make(map[int]func(Snapshot)),
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Load makes the SDK ready. It returns immediately when already ready and
// joins the pending attempt when one is in flight. ctx only limits how long
// this caller waits; the attempt itself keeps running.
func (l *Loader) Load(ctx context.Context, cfg Config) error {
	l.mu.Lock()
	if l.status == StatusReady {
		l.mu.Unlock()
		return nil
	}
	a := l.inflight
	started := a == nil
	if started {
		l.gen++
		a = &attempt{gen: l.gen, done: make(chan struct{})}
		l.inflight = a
		l.status = StatusLoading
		l.err = nil
	}
	l.mu.Unlock()

	if started {
		l.publish()
		go l.run(a, cfg.Normalized())
	} else {
		l.log.Debug(logCategory, "joining in-flight sdk load", nil)
	}

	select {
	case <-a.done:
		return a.err
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (l *Loader) run(a *attempt, cfg Config) {
	start := time.Now()
	l.log.Info(logCategory, "loading sdk", map[string]any{
		"version": cfg.Version,
		"debug":   cfg.Debug,
	})
	handle, err := l.bootstrap(cfg)
	if (errors.Is(err, ErrScriptLoad) || errors.Is(err, ErrInitTimeout)) && l.current(a) {
		// Drop the tag so a retry injects a fresh one.
		l.doc.RemoveScript(ScriptID)
	}
	l.settle(a, handle, err)

	fields := map[string]any{"duration_ms": time.Since(start).Milliseconds()}
	if err != nil {
		l.log.Error(logCategory, "sdk load failed", err, fields)
		return
	}
	l.log.Info(logCategory, "sdk ready", fields)
}

func (l *Loader) bootstrap(cfg Config) (Handle, error) {
	if cfg.AppID == "" {
		return nil, ErrMissingIdentity
	}

	deadline := time.NewTimer(l.timeout)
	defer deadline.Stop()
	timedOut := fmt.Errorf("%w after %s", ErrInitTimeout, l.timeout)

	if !l.doc.HasScript(ScriptID) {
		loaded := make(chan error, 1)
		l.doc.InjectScript(ScriptID, cfg.ScriptURL(), func(err error) {
			select {
			case loaded <- err:
			default:
			}
		})
		select {
		case err := <-loaded:
			if err != nil {
				return nil, fmt.Errorf("%w: %w", ErrScriptLoad, err)
			}
		case <-deadline.C:
			return nil, timedOut
		}
	}

	ready := make(chan struct{}, 1)
	cancel := l.hooks.Subscribe(func() {
		select {
		case ready <- struct{}{}:
		default:
		}
	})
	defer cancel()

	select {
	case <-ready:
	case <-deadline.C:
		return nil, timedOut
	}
	return l.initialize(cfg)
}

func (l *Loader) initialize(cfg Config) (handle Handle, err error) {
	defer func() {
		if r := recover(); r != nil {
			handle = nil
			err = fmt.Errorf("%w: %v", ErrInitException, r)
		}
	}()
	handle, err = l.initializer.Init(cfg)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInitException, err)
	}
	if handle == nil {
		return nil, fmt.Errorf("%w: no sdk handle", ErrInitException)
	}
	return handle, nil
}

func (l *Loader) current(a *attempt) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.inflight == a && l.gen == a.gen
}

func (l *Loader) settle(a *attempt, handle Handle, err error) {
	l.mu.Lock()
	current := l.inflight == a && l.gen == a.gen
	if current {
		l.inflight = nil
		if err != nil {
			l.status = StatusFailed
			l.err = err
			l.handle = nil
		} else {
			l.status = StatusReady
			l.err = nil
			l.handle = handle
		}
	}
	l.mu.Unlock()

	a.err = err
	if current {
		l.publish()
	}
	close(a.done)
}

// Reset returns the loader to idle, removes the script tag and re-arms the
// readiness registry. An attempt still pending settles without touching state.
func (l *Loader) Reset() {
	l.mu.Lock()
	l.gen++
	l.inflight = nil
	l.status = StatusIdle
	l.err = nil
	l.handle = nil
	l.mu.Unlock()

	l.doc.RemoveScript(ScriptID)
	l.hooks.Reset()
	l.log.Debug(logCategory, "sdk state reset", nil)
	l.publish()
}

// Snapshot returns the current state.
func (l *Loader) Snapshot() Snapshot {
	l.mu.Lock()
	defer l.mu.Unlock()
	return Snapshot{Status: l.status, Err: l.err}
}

// Handle returns the initialised SDK, or nil when not ready.
func (l *Loader) Handle() Handle {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.handle
}

// Watch registers fn for state changes and calls it once with the current
// state. Watchers receive the state as of notification time.
func (l *Loader) Watch(fn func(Snapshot)) (cancel func()) {
	l.mu.Lock()
	l.nextWatch++
	id := l.nextWatch
	l.watchers[id] = fn
	snap := Snapshot{Status: l.status, Err: l.err}
	l.mu.Unlock()

	fn(snap)
	return func() {
		l.mu.Lock()
		delete(l.watchers, id)
		l.mu.Unlock()
	}
}

func (l *Loader) publish() {
	l.mu.Lock()
	snap := Snapshot{Status: l.status, Err: l.err}
	ids := make([]int, 0, len(l.watchers))
	for id := range l.watchers {
		ids = append(ids, id)
	}
	fns := make([]func(Snapshot), 0, len(ids))
	slices.Sort(ids)
	for _, id := range ids {
		fns = append(fns, l.watchers[id])
	}
	l.mu.Unlock()

	for _, fn := range fns {
		fn(snap)
	}
}
