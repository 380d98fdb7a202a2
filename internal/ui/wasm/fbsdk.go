//go:build js && wasm

package wasm

import (
	"errors"
	"syscall/js"

	"github.com/Its-donkey/wa-signup/internal/sdk"
)

// installReadyHook sets window.fbAsyncInit so the SDK's ready signal reaches
// hooks. A hook installed earlier by someone else runs first.
func installReadyHook(hooks *sdk.Hooks) js.Func {
	window := js.Global()
	var previous func() error
	if prev := window.Get("fbAsyncInit"); prev.Type() == js.TypeFunction {
		previous = func() error { return catchJS(func() { prev.Invoke() }) }
	}
	ready := hooks.Chain(previous, func(err error) {
		js.Global().Get("console").Call("warn", "previous fbAsyncInit failed", err.Error())
	})
	fn := js.FuncOf(func(js.Value, []js.Value) any {
		ready()
		return nil
	})
	window.Set("fbAsyncInit", fn)

	// The SDK may already have booted before the bundle started.
	if fb := window.Get("FB"); fb.Truthy() && fb.Get("init").Type() == js.TypeFunction {
		hooks.Fire()
	}
	return fn
}

// jsInitializer calls FB.init with the loader configuration.
type jsInitializer struct{}

func (jsInitializer) Init(cfg sdk.Config) (sdk.Handle, error) {
	fb := js.Global().Get("FB")
	if !fb.Truthy() {
		return nil, errors.New("window.FB is not defined")
	}
	err := catchJS(func() {
		fb.Call("init", map[string]any{
			"appId":   cfg.AppID,
			"cookie":  cfg.Cookie,
			"xfbml":   cfg.XFBML,
			"version": cfg.Version,
		})
	})
	if err != nil {
		return nil, err
	}
	return &jsHandle{fb: fb}, nil
}

// jsHandle wraps the initialised window.FB object.
type jsHandle struct {
	fb js.Value
}

func (h *jsHandle) Login(opts sdk.LoginOptions, callback func(sdk.LoginResponse)) {
	h.call("login", callback, map[string]any{
		"config_id":                      opts.ConfigID,
		"response_type":                  opts.ResponseType,
		"override_default_response_type": opts.OverrideDefaultResponseType,
		"extras":                         opts.Extras,
	})
}

func (h *jsHandle) GetLoginStatus(callback func(sdk.LoginResponse)) {
	h.call("getLoginStatus", callback)
}

func (h *jsHandle) Logout(callback func(sdk.LoginResponse)) {
	h.call("logout", callback)
}

// call invokes an FB method whose first argument is a response callback. A
// synchronous exception is reported to callback as an empty response.
func (h *jsHandle) call(method string, callback func(sdk.LoginResponse), extra ...any) {
	var fn js.Func
	fn = js.FuncOf(func(_ js.Value, args []js.Value) any {
		fn.Release()
		var resp js.Value
		if len(args) > 0 {
			resp = args[0]
		}
		callback(decodeLoginResponse(resp))
		return nil
	})
	args := append([]any{fn}, extra...)
	if err := catchJS(func() { h.fb.Call(method, args...) }); err != nil {
		fn.Release()
		js.Global().Get("console").Call("error", "FB."+method+" failed", err.Error())
		callback(sdk.LoginResponse{Status: "error"})
	}
}

// decodeLoginResponse hands the callback payload to the JSON decoder. Values
// that are not objects decode to an empty response.
func decodeLoginResponse(v js.Value) sdk.LoginResponse {
	if v.Type() != js.TypeObject {
		return sdk.LoginResponse{}
	}
	raw, err := stringify(v)
	if err != nil {
		return sdk.LoginResponse{}
	}
	return sdk.ParseLoginResponse(raw)
}
