package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/jask/gomarketplace/internal/cart"
	"github.com/jask/gomarketplace/internal/catalog"
	"github.com/jask/gomarketplace/internal/config"
	"github.com/jask/gomarketplace/internal/logger"
	"github.com/jask/gomarketplace/internal/storage"
	"github.com/jask/gomarketplace/internal/tui"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	lg, closeLog, err := logger.New(logger.Options{
		Service:   "gomarketplace",
		Level:     cfg.Log.Level,
		Path:      cfg.Log.Path,
		AddSource: cfg.Log.AddSource,
	})
	if err != nil {
		log.Fatalf("logger: %v", err)
	}
	defer closeLog()

	kv, closeKV, err := storage.Open(ctx, cfg, lg)
	if err != nil {
		log.Fatalf("storage: %v", err)
	}
	defer closeKV()

	cat, err := catalog.Load(cfg.Catalog.Path)
	if err != nil {
		log.Fatalf("catalog: %v", err)
	}

	// the cart provider: everything below ctx can reach the store
	store := cart.NewStore(kv, cfg.Storage.Key, lg)
	store.Start(ctx)
	ctx = cart.NewContext(ctx, store)

	app, err := tui.New(ctx, cfg, cat, lg)
	if err != nil {
		log.Fatalf("ui: %v", err)
	}
	defer app.Close()

	lg.Info("starting", "backend", cfg.Storage.Backend, "products", cat.Len())
	p := tea.NewProgram(app, tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil {
		fmt.Printf("error: %v\n", err)
	}
}
