package main

import (
	"context"
	"errors"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/Zarux/othello/internal/config"
	"github.com/Zarux/othello/internal/logger"
	"github.com/Zarux/othello/pkg/othello"
	"github.com/Zarux/othello/services/match"
)

func main() {
	configPath := flag.String("config", "", "path to a JSON config file")
	addr := flag.String("addr", "", "listen address, overrides the config")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		logger.New().Error("load config", "error", err)
		os.Exit(1)
	}

	if *addr != "" {
		cfg.Addr = *addr
	}

	log := logger.NewWithWriter(os.Stdout, logger.ParseLevel(cfg.LogLevel))

	svc := match.New(
		match.AlphaBetaBots(cfg.Workers, cfg.DepthSchedule),
		othello.Evaluator{Workers: cfg.EvalWorkers},
		cfg.ThinkTime.Std(),
	)

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(logger.NewMiddleware(log))
	r.Mount("/game/v1", match.HTTPHandler(svc))

	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           r,
		ReadHeaderTimeout: 5 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ThinkTime.Std()+5*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	log.Info("listening on", "addr", cfg.Addr)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Error(err.Error())
		os.Exit(1)
	}
}
