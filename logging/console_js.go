//go:build js && wasm

package logging

import (
	"bytes"
	"encoding/json"
	"syscall/js"
)

// ConsoleWriter forwards JSON log lines to the browser console, picking the
// console method from the entry level.
type ConsoleWriter struct{}

func (ConsoleWriter) Write(p []byte) (int, error) {
	console := js.Global().Get("console")
	if !console.Truthy() {
		return len(p), nil
	}
	line := string(bytes.TrimSpace(p))
	var entry Entry
	method := "log"
	if err := json.Unmarshal(p, &entry); err == nil {
		switch entry.Level {
		case "DEBUG":
			method = "debug"
		case "WARN":
			method = "warn"
		case "ERROR", "FATAL":
			method = "error"
		}
	}
	console.Call(method, line)
	return len(p), nil
}
