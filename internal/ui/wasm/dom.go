//go:build js && wasm

package wasm

import (
	"fmt"
	"syscall/js"
)

// jsDocument manages the SDK script element in the live DOM.
type jsDocument struct {
	doc js.Value
}

func (d jsDocument) HasScript(id string) bool {
	return d.doc.Call("getElementById", id).Truthy()
}

func (d jsDocument) InjectScript(id, src string, done func(error)) {
	script := d.doc.Call("createElement", "script")
	script.Set("id", id)
	script.Set("src", src)
	script.Set("async", true)
	script.Set("defer", true)
	script.Set("crossOrigin", "anonymous")

	var onLoad, onError js.Func
	release := func() {
		script.Set("onload", js.Null())
		script.Set("onerror", js.Null())
		onLoad.Release()
		onError.Release()
	}
	onLoad = js.FuncOf(func(js.Value, []js.Value) any {
		release()
		done(nil)
		return nil
	})
	onError = js.FuncOf(func(js.Value, []js.Value) any {
		release()
		done(fmt.Errorf("failed to load %s", src))
		return nil
	})
	script.Set("onload", onLoad)
	script.Set("onerror", onError)

	parent := d.doc.Get("head")
	if !parent.Truthy() {
		parent = d.doc.Get("body")
	}
	parent.Call("appendChild", script)
}

func (d jsDocument) RemoveScript(id string) {
	node := d.doc.Call("getElementById", id)
	if node.Truthy() {
		node.Call("remove")
	}
}

// catchJS runs fn and turns a thrown JavaScript exception into an error.
func catchJS(fn func()) (err error) {
	defer func() {
		if r := recover(); r != nil {
			if jsErr, ok := r.(js.Error); ok {
				err = jsErr
				return
			}
			err = fmt.Errorf("%v", r)
		}
	}()
	fn()
	return nil
}
