package main

import (
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/Zarux/othello/internal/config"
	"github.com/Zarux/othello/internal/logger"
	"github.com/Zarux/othello/pkg/alphabeta"
	"github.com/Zarux/othello/pkg/othello"
	"github.com/Zarux/othello/services/game"
)

func main() {
	configPath := flag.String("config", "", "path to a JSON config file")
	think := flag.Duration("think", 0, "default bot think time, overrides the config")
	workers := flag.Int("workers", 0, "parallel root searches, overrides the config")
	logLevel := flag.String("log-level", "", "debug, info, warn or error")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	if *think > 0 {
		cfg.ThinkTime = config.Duration(*think)
	}
	if *workers > 0 {
		cfg.Workers = *workers
	}
	if *logLevel != "" {
		cfg.LogLevel = *logLevel
	}

	// The terminal belongs to the UI, so logs only go to a file.
	var w io.Writer = io.Discard
	if cfg.LogFile != "" {
		f, err := os.OpenFile(cfg.LogFile, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		defer f.Close()
		w = f
	}

	log := logger.NewWithWriter(w, logger.ParseLevel(cfg.LogLevel))

	bot := alphabeta.New(cfg.Workers, cfg.ThinkTime.Std())
	if len(cfg.DepthSchedule) > 0 {
		bot.UpdateSchedule(cfg.DepthSchedule)
	}

	gameService := game.New(bot, othello.Evaluator{Workers: cfg.EvalWorkers}, log, cfg.ThinkTime.Std())
	if err := gameService.Play(); err != nil {
		log.Error("play", "error", err)
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
