package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/Its-donkey/wa-signup/internal/config"
	"github.com/Its-donkey/wa-signup/logging"
)

type serveOptions struct {
	listen   string
	assets   string
	template string
}

func main() {
	if err := newRootCmd().ExecuteContext(context.Background()); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	opts := serveOptions{}
	cmd := &cobra.Command{
		Use:          "ui-server",
		Short:        "Serve the WhatsApp embedded signup page and its WASM bundle",
		Long:         "ui-server renders the signup page with the Facebook SDK settings taken from the environment (FB_APP_ID, FB_GRAPH_API_VERSION, FB_SIGNUP_CONFIG_ID, FB_SDK_DEBUG) and serves main.wasm and wasm_exec.js from the assets directory.",
		SilenceUsage: true,
		Args:         cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runServer(cmd.Context(), opts)
		},
	}
	flags := cmd.Flags()
	flags.StringVar(&opts.listen, "listen", "127.0.0.1:4173", "address to serve the signup UI")
	flags.StringVar(&opts.assets, "assets", "ui", "directory containing main.wasm and wasm_exec.js")
	flags.StringVar(&opts.template, "template", "", "optional HTML shell; the built-in page is used when empty")
	return cmd
}

func runServer(ctx context.Context, opts serveOptions) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	level, err := logging.ParseLevel(cfg.LogLevel)
	if err != nil {
		return err
	}
	logger := logging.New("ui-server", level, os.Stdout)
	if cfg.AppID == "" {
		logger.Warn("server", "FB_APP_ID is not set; the page will report a missing app id", nil)
	}

	var shell []byte
	if path := strings.TrimSpace(opts.template); path != "" {
		shell, err = os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("read page template: %w", err)
		}
	}
	assetsDir, err := filepath.Abs(opts.assets)
	if err != nil {
		return fmt.Errorf("resolve assets dir: %w", err)
	}

	srv, err := newServer(assetsDir, shell, cfg.Page(), logger)
	if err != nil {
		return err
	}
	httpServer := &http.Server{
		Addr:              opts.listen,
		Handler:           srv.routes(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		logger.Info("server", "serving signup ui", map[string]any{
			"listen": opts.listen,
			"assets": assetsDir,
		})
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err, ok := <-errCh:
		if ok {
			logger.Error("server", "listener failed", err, nil)
			return err
		}
		return nil
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	logger.Info("server", "stopped", nil)
	return nil
}
