// Package page renders the HTML shell that hosts the signup WASM bundle.
package page

import (
	"bytes"
	"fmt"

	"github.com/PuerkitoBio/goquery"

	"github.com/Its-donkey/wa-signup/internal/config"
)

const (
	// RootID is the element the WASM component mounts into.
	RootID = config.RootElementID

	WasmExecPath  = "/wasm_exec.js"
	WasmPath      = "/main.wasm"
	bootstrapID   = "signup-bootstrap"
	bootstrapCode = `const go = new Go();
WebAssembly.instantiateStreaming(fetch("` + WasmPath + `"), go.importObject).then((result) => go.run(result.instance));`
)

// DefaultShell is served when no template file is configured.
const DefaultShell = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1">
<title>Connect WhatsApp Business</title>
</head>
<body>
<main>
<h1>Connect your WhatsApp Business account</h1>
<div id="` + RootID + `"></div>
</main>
</body>
</html>`

// Render writes cfg onto the signup root of shell and makes sure the WASM
// bootstrap scripts are present. An empty shell uses DefaultShell.
func Render(shell []byte, cfg config.PageConfig) ([]byte, error) {
	if len(bytes.TrimSpace(shell)) == 0 {
		shell = []byte(DefaultShell)
	}
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(shell))
	if err != nil {
		return nil, fmt.Errorf("parse page shell: %w", err)
	}

	root := doc.Find("#" + RootID)
	if root.Length() == 0 {
		doc.Find("body").AppendHtml(`<div id="` + RootID + `"></div>`)
		root = doc.Find("#" + RootID)
	}
	for name, value := range cfg.Attributes() {
		root.SetAttr(name, value)
	}

	body := doc.Find("body")
	if doc.Find(`script[src="`+WasmExecPath+`"]`).Length() == 0 {
		body.AppendHtml(`<script src="` + WasmExecPath + `"></script>`)
	}
	if doc.Find("#"+bootstrapID).Length() == 0 {
		body.AppendHtml(`<script id="` + bootstrapID + `">` + bootstrapCode + `</script>`)
	}

	out, err := doc.Html()
	if err != nil {
		return nil, fmt.Errorf("render page shell: %w", err)
	}
	return []byte(out), nil
}
