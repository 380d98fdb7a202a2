package main

import (
	"net/http"
	"path/filepath"

	"github.com/Its-donkey/wa-signup/internal/config"
	"github.com/Its-donkey/wa-signup/internal/page"
	"github.com/Its-donkey/wa-signup/logging"
)

type server struct {
	assetsDir string
	index     []byte
	log       *logging.Logger
}

func newServer(assetsDir string, shell []byte, cfg config.PageConfig, logger *logging.Logger) (*server, error) {
	index, err := page.Render(shell, cfg)
	if err != nil {
		return nil, err
	}
	return &server{assetsDir: assetsDir, index: index, log: logger}, nil
}

func (s *server) routes() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/", s.handleIndex)
	mux.Handle(page.WasmPath, s.assetHandler("main.wasm", "application/wasm"))
	mux.Handle(page.WasmExecPath, s.assetHandler("wasm_exec.js", "application/javascript"))
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		_, _ = w.Write([]byte("ok"))
	})
	mux.HandleFunc("/favicon.ico", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})
	return logging.NewHTTPLogger(s.log).Middleware(mux)
}

func (s *server) handleIndex(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	if r.Method != http.MethodGet && r.Method != http.MethodHead {
		w.Header().Set("Allow", "GET, HEAD")
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Cache-Control", "no-store")
	_, _ = w.Write(s.index)
}

func (s *server) assetHandler(name, contentType string) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		path := filepath.Join(s.assetsDir, name)
		if contentType != "" {
			w.Header().Set("Content-Type", contentType)
		}
		http.ServeFile(w, r, path)
	})
}
