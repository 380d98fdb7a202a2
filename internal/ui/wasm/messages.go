//go:build js && wasm

package wasm

import "syscall/js"

// windowMessages delivers window "message" event payloads. Strings pass
// through as-is; objects are JSON encoded so the signup parser sees one shape.
type windowMessages struct {
	window js.Value
}

func (w windowMessages) Subscribe(fn func(payload any)) (unsubscribe func()) {
	handler := js.FuncOf(func(_ js.Value, args []js.Value) any {
		if len(args) == 0 {
			return nil
		}
		if payload := messagePayload(args[0].Get("data")); payload != nil {
			fn(payload)
		}
		return nil
	})
	w.window.Call("addEventListener", "message", handler)
	return func() {
		w.window.Call("removeEventListener", "message", handler)
		handler.Release()
	}
}

func messagePayload(data js.Value) any {
	switch data.Type() {
	case js.TypeString:
		return data.String()
	case js.TypeObject:
		encoded, err := stringify(data)
		if err != nil {
			return nil
		}
		return encoded
	default:
		return nil
	}
}

// stringify JSON-encodes a JavaScript value. Cyclic values report an error.
func stringify(v js.Value) (string, error) {
	var encoded string
	err := catchJS(func() {
		encoded = js.Global().Get("JSON").Call("stringify", v).String()
	})
	return encoded, err
}
