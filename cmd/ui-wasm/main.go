//go:build js && wasm

package main

import "github.com/Its-donkey/wa-signup/internal/ui/wasm"

func main() {
	wasm.RunApp()
}
