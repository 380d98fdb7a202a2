//go:build js && wasm

package wasm

import (
	"syscall/js"

	"github.com/Its-donkey/wa-signup/internal/config"
	"github.com/Its-donkey/wa-signup/internal/sdk"
	"github.com/Its-donkey/wa-signup/internal/signup"
	"github.com/Its-donkey/wa-signup/logging"
)

// ReadyHook is the window.fbAsyncInit callback installed by RunApp.
var ReadyHook js.Func

// RunApp bootstraps the embedded signup component and blocks forever.
func RunApp() {
	done := make(chan struct{})
	window := js.Global()
	document := window.Get("document")

	root := document.Call("getElementById", config.RootElementID)
	if !root.Truthy() {
		window.Get("console").Call("error", "signup root missing")
		return
	}
	cfg := config.PageConfigFromAttributes(func(name string) string {
		value := root.Call("getAttribute", name)
		if value.Type() == js.TypeString {
			return value.String()
		}
		return ""
	})

	level := logging.INFO
	if cfg.Debug {
		level = logging.DEBUG
	}
	logger := logging.New("signup-ui", level, logging.ConsoleWriter{})

	hooks := sdk.NewHooks()
	if ReadyHook.Type() != js.TypeUndefined {
		ReadyHook.Release()
	}
	ReadyHook = installReadyHook(hooks)

	loader := sdk.NewLoader(jsDocument{doc: document}, hooks, jsInitializer{},
		sdk.WithTimeout(cfg.InitTimeout),
		sdk.WithLogger(logger),
	)
	button := newSignupButton(root, loader, cfg, logger)
	launcher := signup.NewLauncher(loader, windowMessages{window: window}, button.outcomeHandlers(),
		signup.WithLauncherLogger(logger),
	)
	button.mount(launcher)
	go button.load()
	<-done
}
