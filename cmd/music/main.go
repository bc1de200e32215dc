package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/example/crud-services/internal/config"
	"github.com/example/crud-services/internal/music"
	"github.com/example/crud-services/internal/musicapi"
	"github.com/example/crud-services/pkg/db"
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
	slog.SetDefault(logger)

	cfg, err := config.Load(":8000")
	if err != nil {
		logger.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	gdb, err := db.Open(cfg.Database)
	if err != nil {
		logger.Error("failed to open database", "error", err)
		os.Exit(1)
	}

	if err := gdb.AutoMigrate(music.Models()...); err != nil {
		logger.Error("failed to migrate schema", "error", err)
		os.Exit(1)
	}

	router := musicapi.NewRouter(musicapi.Dependencies{
		Logger: logger,
		Music:  music.NewService(gdb),
	})

	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-sigCh
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = srv.Shutdown(ctx)
	}()

	logger.Info("music service listening", "addr", cfg.Addr, "env", cfg.Environment, "db_driver", cfg.Database.Driver)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Error("server error", "error", err)
		os.Exit(1)
	}
}
