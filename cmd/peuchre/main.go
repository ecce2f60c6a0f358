// Command peuchre plays automated euchre games against euchred servers and
// collects call and follow statistics for two competing strategies.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"peuchre/internal/app"
	"peuchre/internal/bot"
	"peuchre/internal/config"
	"peuchre/internal/game"
	"peuchre/internal/logging"
	"peuchre/internal/ports/web"
	"peuchre/internal/record"
)

func main() {
	if err := run(os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "peuchre: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string) error {
	fs := flag.NewFlagSet("peuchre", flag.ContinueOnError)
	configPath := fs.String("config", "", "JSON run config")
	games := fs.Int("games", 0, "games to play, 0 plays until interrupted")
	workers := fs.Int("workers", 1, "games played at once")
	team1 := fs.String("team1", "", fmt.Sprintf("team 1 strategy %v", bot.Names()))
	team2 := fs.String("team2", "", fmt.Sprintf("team 2 strategy %v", bot.Names()))
	server := fs.String("server", "", "euchred binary")
	timeout := fs.Duration("timeout", 0, "abandon a game after this long without messages")
	seed := fs.Int64("seed", 0, "seed for the random strategies, 0 uses the clock")
	status := fs.String("status", "", "status server listen address, e.g. :8080")
	logLevel := fs.String("log-level", "", "debug, info, warn or error")
	if err := fs.Parse(args); err != nil {
		return err
	}

	if err := config.LoadRunConfig(*configPath); err != nil {
		return err
	}
	cfg := *config.GetRunConfig()
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "games":
			cfg.Games = *games
		case "workers":
			cfg.Workers = *workers
		case "team1":
			cfg.Team1 = *team1
		case "team2":
			cfg.Team2 = *team2
		case "server":
			cfg.ServerBinary = *server
		case "timeout":
			cfg.TimeoutSeconds = timeout.Seconds()
		case "seed":
			cfg.Seed = *seed
		case "status":
			cfg.StatusAddr = *status
		case "log-level":
			cfg.LogLevel = *logLevel
		}
	})
	if err := cfg.Validate(); err != nil {
		return err
	}
	for _, name := range []string{cfg.Team1, cfg.Team2} {
		if _, err := bot.NewStrategy(name, nil); err != nil {
			return err
		}
	}

	logger, err := logging.New(os.Stderr, cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		return err
	}

	rec := record.New(record.Options{
		Team1:         cfg.Team1,
		Team2:         cfg.Team2,
		CallHandsPath: cfg.CallHandsPath,
		FollowPath:    cfg.FollowPath,
		FlushInterval: cfg.FlushInterval(),
	})
	launcher := game.ExecLauncher{Binary: cfg.ServerBinary, Args: cfg.ServerArgs}

	svc := app.NewService(app.Options{
		Workers: cfg.Workers,
		Seed:    cfg.Seed,
		Flusher: rec,
		Logger:  logger,
		NewGame: func(id string, seed int64) app.Runner {
			return game.New(game.Options{
				ID:       id,
				Host:     cfg.Host,
				Team1:    cfg.Team1,
				Team2:    cfg.Team2,
				Seed:     seed,
				Grace:    cfg.Grace(),
				Timeout:  cfg.Timeout(),
				Launcher: launcher,
				Recorder: rec,
				Logger:   logger,
			})
		},
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if cfg.StatusAddr != "" {
		srv := web.NewServer(svc, rec, logger)
		go func() {
			if err := srv.Start(cfg.StatusAddr); err != nil {
				logger.Error("run: status server: %v", err)
			}
		}()
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			srv.Shutdown(shutdownCtx)
		}()
	}

	logger.Info("run: %s vs %s on %d workers", cfg.Team1, cfg.Team2, cfg.Workers)
	err = svc.Run(ctx, cfg.Games)
	if werr := rec.WriteReport(os.Stdout); werr != nil {
		logger.Error("run: report: %v", werr)
	}
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}
