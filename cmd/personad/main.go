// File path: cmd/personad/main.go
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/sgci-marketing/persona-studio/internal/api"
	"github.com/sgci-marketing/persona-studio/internal/common"
	"github.com/sgci-marketing/persona-studio/internal/llm"
)

func main() {
	logger := common.Logger()

	if err := godotenv.Load(); err != nil {
		logger.Warn("personad: .env file not loaded", "error", err)
	} else {
		logger.Info("personad: environment loaded from .env")
	}

	addr := flag.String("addr", ":8080", "listen address")
	maxUpload := flag.Int64("max-upload", 0, "maximum upload size in bytes (0 uses the default)")
	offline := flag.Bool("offline", false, "preconfigure sessions with the local echo provider instead of OpenAI")
	flag.Parse()

	logger.Info("personad: startup initiated", "addr", *addr)

	cfg := api.DefaultConfig()
	if *maxUpload > 0 {
		cfg.MaxUploadBytes = *maxUpload
	}
	switch {
	case *offline:
		cfg.DefaultProvider = llm.NewLocalProvider()
		logger.Warn("personad: offline mode, completions are echoed locally")
	case strings.TrimSpace(os.Getenv("OPENAI_API_KEY")) != "":
		provider, err := llm.NewProvider(os.Getenv("OPENAI_API_KEY"))
		if err != nil {
			logger.Error("personad: default provider construction failed", "error", err)
			fmt.Println("provider error:", err)
			os.Exit(1)
		}
		cfg.DefaultProvider = provider
		logger.Info("personad: sessions preconfigured from OPENAI_API_KEY", "provider", provider.Name())
	default:
		logger.Info("personad: no shared credential, sessions configure their own key")
	}

	server := api.NewServer(&cfg)

	logger.Info("personad: server listening", "addr", *addr, "ui", "/ui/", "health", "/healthz")
	fmt.Printf("Serving on %s\n", *addr)
	reachable := *addr
	if strings.HasPrefix(reachable, ":") {
		reachable = "localhost" + reachable
	}
	logger.Info("personad: verify reachability", "suggestion", fmt.Sprintf("curl http://%s/healthz", reachable))

	httpServer := &http.Server{Addr: *addr, Handler: server}
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		errCh <- httpServer.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("personad: server stopped", "error", err)
			fmt.Println("server error:", err)
			os.Exit(1)
		}
	case <-ctx.Done():
		logger.Info("personad: shutdown signal received")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			logger.Error("personad: shutdown failed", "error", err)
			os.Exit(1)
		}
		logger.Info("personad: shutdown complete")
	}
}
