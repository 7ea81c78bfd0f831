package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/mbolis/user-form/app"
	"github.com/mbolis/user-form/config"
	"github.com/mbolis/user-form/database"
	"github.com/mbolis/user-form/log"
	"github.com/mbolis/user-form/routes"
)

func main() {
	if err := run(os.Args[1:]); err != nil {
		log.Fatal(err)
	}
}

// run owns the pool, so it is closed before main exits non-zero.
func run(args []string) error {
	cfg, err := config.Load(args, os.Getenv)
	if err != nil {
		return fmt.Errorf("main.config: %w", err)
	}
	if cfg.Debug {
		log.SetLevel(log.DebugLevel)
	}

	db, err := database.Open(cfg)
	if err != nil {
		return fmt.Errorf("main.db.open: %w", err)
	}
	defer db.Close()

	app := app.App{
		DB:     db,
		Config: cfg,
	}

	handler := routes.Wire(app)

	err = runServer(cfg, handler)
	if !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("main.server: %w", err)
	}
	return nil
}

func runServer(cfg config.Config, handler http.Handler) error {
	srv := &http.Server{
		Addr:         cfg.Addr,
		Handler:      handler,
		IdleTimeout:  time.Minute,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	serveErr := make(chan error, 1)
	go func() {
		log.Info("Listening on " + cfg.Url())
		serveErr <- srv.ListenAndServe()
	}()

	select {
	case err := <-serveErr:
		return err
	case <-ctx.Done():
	}

	log.Info("Shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	return http.ErrServerClosed
}
