package signup

import (
	"sync"

	"github.com/google/uuid"

	"github.com/Its-donkey/wa-signup/internal/sdk"
	"github.com/Its-donkey/wa-signup/logging"
)

const (
	logCategory = "signup"

	// SessionInfoVersion selects the message protocol that carries waba_id and phone_number_id.
	SessionInfoVersion = "3"
)

// ReadySource exposes the loader state the launcher depends on.
type ReadySource interface {
	Snapshot() sdk.Snapshot
	Handle() sdk.Handle
}

// MessageChannel delivers cross-window message payloads until unsubscribed.
type MessageChannel interface {
	Subscribe(fn func(payload any)) (unsubscribe func())
}

// Launcher opens the embedded signup popup and emits one outcome per launch.
// The first outcome of a launch wins; anything after it is dropped.
type Launcher struct {
	source   ReadySource
	messages MessageChannel
	handlers Handlers
	log      *logging.Logger
	newID    func() string

	mu      sync.Mutex
	current *session
}

// LauncherOption configures a Launcher.
type LauncherOption func(*Launcher)

// WithLauncherLogger sets the logger used for launch events.
func WithLauncherLogger(logger *logging.Logger) LauncherOption {
	return func(l *Launcher) {
		if logger != nil {
			l.log = logger
		}
	}
}

// WithSessionIDs overrides the session id generator.
func WithSessionIDs(fn func() string) LauncherOption {
	return func(l *Launcher) {
		if fn != nil {
			l.newID = fn
		}
	}
}

// NewLauncher wires a launcher to the loader state and the page's message channel.
func NewLauncher(source ReadySource, messages MessageChannel, handlers Handlers, opts ...LauncherOption) *Launcher {
	l := &Launcher{
		source:   source,
		messages: messages,
		handlers: handlers,
		log:      logging.Discard(),
		newID:    uuid.NewString,
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// LoginOptions builds the FB.login parameters for the given signup configuration.
func LoginOptions(configID string) sdk.LoginOptions {
	return sdk.LoginOptions{
		ConfigID:                    configID,
		ResponseType:                "code",
		OverrideDefaultResponseType: true,
		Extras: map[string]any{
			"setup":              map[string]any{},
			"featureType":        "",
			"sessionInfoVersion": SessionInfoVersion,
		},
	}
}

// Launch opens the popup. It does nothing and reports false unless the SDK
// is ready. A new launch supersedes any launch still waiting for its callback.
func (l *Launcher) Launch(configID string) bool {
	handle := l.source.Handle()
	if !l.source.Snapshot().Ready() || handle == nil {
		l.log.Debug(logCategory, "launch ignored, sdk not ready", nil)
		return false
	}

	// Subscribe before FB.login so a message posted right away is not missed.
	// release must be set before s becomes visible to a superseding launch.
	s := newSession(l.newID())
	s.release = sync.OnceFunc(l.messages.Subscribe(func(payload any) {
		l.handleMessage(s, payload)
	}))

	l.mu.Lock()
	previous := l.current
	l.current = s
	l.mu.Unlock()
	if previous != nil {
		if previous.settle() {
			l.trace(previous).Info("launch superseded")
		}
		previous.release()
	}

	l.trace(s).WithField("config_id", configID).Info("opening embedded signup")
	handle.Login(LoginOptions(configID), func(resp sdk.LoginResponse) {
		l.handleLogin(s, resp)
	})
	return true
}

func (l *Launcher) handleMessage(s *session, payload any) {
	msg, ok := DecodeMessage(payload)
	if !ok {
		return
	}
	switch msg.Event {
	case EventFinish:
		s.store(msg.PhoneNumberID, msg.BusinessAccountID)
		l.trace(s).WithField("version", msg.Version).Debug("session info received")
	case EventCancel, EventError:
		l.trace(s).
			WithField("event", string(msg.Event)).
			WithField("current_step", msg.CurrentStep).
			WithField("error_message", msg.ErrorMessage).
			Info("popup reported early exit")
		l.emitCancel(s, Cancel{CurrentStep: msg.CurrentStep})
	}
}

func (l *Launcher) handleLogin(s *session, resp sdk.LoginResponse) {
	s.release()
	l.mu.Lock()
	if l.current == s {
		l.current = nil
	}
	l.mu.Unlock()

	auth := resp.AuthResponse
	if auth == nil {
		l.emitCancel(s, Cancel{})
		return
	}
	code := auth.Code
	if code == "" {
		code = auth.AccessToken
	}
	if code == "" {
		l.emitError(s, ErrMissingCredential)
		return
	}
	phoneNumberID, businessAccountID := s.buffered()
	l.emitSuccess(s, Success{
		Code:              code,
		BusinessAccountID: businessAccountID,
		PhoneNumberID:     phoneNumberID,
	})
}

func (l *Launcher) emitSuccess(s *session, out Success) {
	if !s.settle() {
		return
	}
	l.trace(s).WithField("has_waba", out.BusinessAccountID != "").Info("signup succeeded")
	if l.handlers.Success != nil {
		l.handlers.Success(out)
	}
}

func (l *Launcher) emitCancel(s *session, out Cancel) {
	if !s.settle() {
		l.trace(s).Debug("duplicate outcome dropped")
		return
	}
	l.trace(s).WithField("current_step", out.CurrentStep).Info("signup cancelled")
	if l.handlers.Cancel != nil {
		l.handlers.Cancel(out)
	}
}

func (l *Launcher) emitError(s *session, err error) {
	if !s.settle() {
		return
	}
	l.trace(s).Error("signup failed", err)
	if l.handlers.Error != nil {
		l.handlers.Error(err)
	}
}

func (l *Launcher) trace(s *session) *logging.LogContext {
	return l.log.WithRequestID(s.id).WithCategory(logCategory)
}
