//go:build js && wasm

package wasm

import (
	"context"
	"encoding/json"
	"html"
	"strings"
	"sync"
	"syscall/js"

	"github.com/Its-donkey/wa-signup/internal/config"
	"github.com/Its-donkey/wa-signup/internal/sdk"
	"github.com/Its-donkey/wa-signup/internal/signup"
	"github.com/Its-donkey/wa-signup/internal/ui/model"
	"github.com/Its-donkey/wa-signup/logging"
)

// DOM events dispatched on the signup root for the embedding page.
const (
	EventSuccess = "signup:success"
	EventCancel  = "signup:cancel"
	EventError   = "signup:error"
)

// signupButton renders the embedded signup trigger and reflects loader state.
type signupButton struct {
	root     js.Value
	loader   *sdk.Loader
	launcher *signup.Launcher
	cfg      config.PageConfig
	log      *logging.Logger

	mu       sync.Mutex
	snap     sdk.Snapshot
	pending  bool
	last     *model.Outcome
	handlers []js.Func
}

func newSignupButton(root js.Value, loader *sdk.Loader, cfg config.PageConfig, logger *logging.Logger) *signupButton {
	return &signupButton{root: root, loader: loader, cfg: cfg, log: logger}
}

// outcomeHandlers returns the launcher handlers that update the component.
func (b *signupButton) outcomeHandlers() signup.Handlers {
	return signup.Handlers{
		Success: func(s signup.Success) {
			b.finish(model.Outcome{Kind: model.OutcomeSuccess, Success: s})
			b.dispatch(EventSuccess, s)
		},
		Cancel: func(c signup.Cancel) {
			b.finish(model.Outcome{Kind: model.OutcomeCancel, Cancel: c})
			b.dispatch(EventCancel, c)
		},
		Error: func(err error) {
			b.finish(model.Outcome{Kind: model.OutcomeError, Err: err})
			b.dispatch(EventError, map[string]string{"message": err.Error()})
		},
	}
}

// mount attaches the launcher and starts following the loader.
func (b *signupButton) mount(launcher *signup.Launcher) {
	b.launcher = launcher
	b.loader.Watch(func(s sdk.Snapshot) {
		b.mu.Lock()
		b.snap = s
		b.mu.Unlock()
		b.render()
	})
}

func (b *signupButton) load() {
	if err := b.loader.Load(context.Background(), b.cfg.SDK()); err != nil {
		b.log.Warn("ui", "sdk unavailable", map[string]any{"error": err.Error()})
	}
}

func (b *signupButton) launch() {
	if strings.TrimSpace(b.cfg.ConfigID) == "" {
		b.log.Warn("ui", "launching without a signup config id", nil)
	}
	b.mu.Lock()
	b.pending = true
	b.last = nil
	b.mu.Unlock()
	b.render()

	if !b.launcher.Launch(b.cfg.ConfigID) {
		b.mu.Lock()
		b.pending = false
		b.mu.Unlock()
		b.render()
	}
}

func (b *signupButton) finish(out model.Outcome) {
	b.mu.Lock()
	b.pending = false
	b.last = &out
	b.mu.Unlock()
	b.render()
}

func (b *signupButton) render() {
	b.mu.Lock()
	view := model.BuildSignupView(b.snap, b.pending, b.last)
	b.mu.Unlock()

	var builder strings.Builder
	builder.WriteString(`<div class="signup-card">`)
	builder.WriteString(`<button type="button" id="signup-launch" class="signup-button"`)
	if view.Disabled {
		builder.WriteString(` disabled aria-disabled="true"`)
	}
	builder.WriteString(">")
	builder.WriteString(html.EscapeString(view.ButtonLabel))
	builder.WriteString("</button>")
	if view.ErrorText != "" {
		builder.WriteString(`<p class="signup-error" role="alert">`)
		builder.WriteString(html.EscapeString(view.ErrorText))
		builder.WriteString("</p>")
	}
	if view.ShowRetry {
		builder.WriteString(`<button type="button" id="signup-retry" class="signup-retry">Try again</button>`)
	}
	if view.ResultText != "" {
		builder.WriteString(`<p class="signup-result signup-result--` + html.EscapeString(view.ResultTone) + `" role="status">`)
		builder.WriteString(html.EscapeString(view.ResultText))
		builder.WriteString("</p>")
	}
	builder.WriteString("</div>")

	b.releaseHandlers()
	b.root.Set("innerHTML", builder.String())
	b.bind("signup-launch", func() { b.launch() })
	b.bind("signup-retry", func() { go b.load() })
}

func (b *signupButton) bind(id string, action func()) {
	node := b.root.Call("querySelector", "#"+id)
	if !node.Truthy() {
		return
	}
	fn := js.FuncOf(func(_ js.Value, args []js.Value) any {
		if len(args) > 0 {
			args[0].Call("preventDefault")
		}
		action()
		return nil
	})
	node.Call("addEventListener", "click", fn)
	b.mu.Lock()
	b.handlers = append(b.handlers, fn)
	b.mu.Unlock()
}

func (b *signupButton) releaseHandlers() {
	b.mu.Lock()
	handlers := b.handlers
	b.handlers = nil
	b.mu.Unlock()
	for _, fn := range handlers {
		fn.Release()
	}
}

func (b *signupButton) dispatch(name string, detail any) {
	data, err := json.Marshal(detail)
	if err != nil {
		b.log.Error("ui", "encode event detail", err, map[string]any{"event": name})
		return
	}
	window := js.Global()
	event := window.Get("CustomEvent").New(name, map[string]any{
		"detail":  window.Get("JSON").Call("parse", string(data)),
		"bubbles": true,
	})
	b.root.Call("dispatchEvent", event)
}
