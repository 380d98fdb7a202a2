package main

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"os/signal"
	"path/filepath"
	"strings"
	"sync"
	"syscall"
	"time"
)

type procConfig struct {
	Name string
	Args []string
	Dir  string
	Env  []string
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := os.MkdirAll("ui", 0o755); err != nil {
		fmt.Fprintf(os.Stderr, "create ui dir: %v\n", err)
		os.Exit(1)
	}
	if err := copyWasmExec(ctx, "ui/wasm_exec.js"); err != nil {
		fmt.Fprintf(os.Stderr, "copy wasm_exec.js: %v\n", err)
		os.Exit(1)
	}

	build := procConfig{
		Name: "build-ui-wasm",
		Args: []string{"go", "build", "-o", "ui/main.wasm", "./cmd/ui-wasm"},
		Env:  []string{"GOOS=js", "GOARCH=wasm"},
	}
	if err := runAll(ctx, []procConfig{build}); err != nil {
		fmt.Fprintf(os.Stderr, "wasm build failed: %v\n", err)
		os.Exit(1)
	}

	procs := []procConfig{
		{
			Name: "ui",
			Args: []string{
				"go", "run", "./cmd/ui-server",
				"--listen", "127.0.0.1:4173",
				"--assets", "ui",
			},
		},
	}
	if err := runAll(ctx, procs); err != nil {
		fmt.Fprintf(os.Stderr, "wa-signup exited with error: %v\n", err)
		os.Exit(1)
	}
}

// copyWasmExec copies the JS glue that matches the local Go toolchain.
func copyWasmExec(ctx context.Context, dest string) error {
	out, err := exec.CommandContext(ctx, "go", "env", "GOROOT").Output()
	if err != nil {
		return fmt.Errorf("go env GOROOT: %w", err)
	}
	goroot := strings.TrimSpace(string(out))
	var data []byte
	for _, candidate := range []string{
		filepath.Join(goroot, "lib", "wasm", "wasm_exec.js"),
		filepath.Join(goroot, "misc", "wasm", "wasm_exec.js"),
	} {
		if data, err = os.ReadFile(candidate); err == nil {
			break
		}
	}
	if err != nil {
		return err
	}
	return os.WriteFile(dest, data, 0o644)
}

func runAll(ctx context.Context, procs []procConfig) error {
	if len(procs) == 0 {
		return fmt.Errorf("no processes configured")
	}
	var wg sync.WaitGroup
	errCh := make(chan error, len(procs))

	for _, cfg := range procs {
		wg.Add(1)
		go func(cfg procConfig) {
			defer wg.Done()
			cmd := exec.CommandContext(ctx, cfg.Args[0], cfg.Args[1:]...)
			cmd.Stdout = os.Stdout
			cmd.Stderr = os.Stderr
			if cfg.Dir != "" {
				cmd.Dir = cfg.Dir
			}
			if len(cfg.Env) > 0 {
				cmd.Env = append(append([]string{}, os.Environ()...), cfg.Env...)
			}
			if err := cmd.Start(); err != nil {
				errCh <- fmt.Errorf("%s start: %w", cfg.Name, err)
				return
			}
			if err := cmd.Wait(); err != nil {
				// If the context was cancelled, treat the exit as expected.
				select {
				case <-ctx.Done():
					return
				default:
				}
				errCh <- fmt.Errorf("%s exited: %w", cfg.Name, err)
			}
		}(cfg)
	}

	done := make(chan struct{})
	go func() {
		wg.Wait()
		close(done)
	}()

	select {
	case <-ctx.Done():
		shutdownDelay := time.After(2 * time.Second)
		select {
		case <-done:
		case <-shutdownDelay:
		}
	case err := <-errCh:
		return err
	case <-done:
		// Each process sends its error before it is counted done.
		select {
		case err := <-errCh:
			return err
		default:
		}
	}
	return nil
}
