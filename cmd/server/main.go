package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/fystack/stream-giveaway/internal/catalog"
	"github.com/fystack/stream-giveaway/internal/chat"
	"github.com/fystack/stream-giveaway/internal/game"
	"github.com/fystack/stream-giveaway/internal/outcome"
	"github.com/fystack/stream-giveaway/internal/registry"
	"github.com/fystack/stream-giveaway/internal/session"
	"github.com/fystack/stream-giveaway/pkg/common/config"
	"github.com/fystack/stream-giveaway/pkg/common/logger"
	"github.com/fystack/stream-giveaway/pkg/events"
	"github.com/fystack/stream-giveaway/pkg/infra"
	"github.com/fystack/stream-giveaway/pkg/kvstore"
)

const version = "1.0.0"

func main() {
	var (
		configPath string
		debug      bool
	)

	root := &cobra.Command{
		Use:   "giveaway-server",
		Short: "Live-stream giveaway mini-game server",
	}

	serve := &cobra.Command{
		Use:   "serve",
		Short: "Run the game server",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServer(configPath, debug)
		},
	}
	serve.Flags().StringVarP(&configPath, "config", "c", "configs/config.yaml", "Path to config file")
	serve.Flags().BoolVar(&debug, "debug", false, "Enable debug logs")
	root.AddCommand(serve)

	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}

func runServer(configPath string, debug bool) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		slog.Error("Load config failed", "err", err)
		os.Exit(1)
	}

	level := slog.LevelInfo
	if debug {
		level = slog.LevelDebug
	}
	logger.Init(&logger.Options{
		Level:      level,
		TimeFormat: time.RFC3339,
	})
	logger.Info("Config loaded", "environment", cfg.Environment)

	nc, err := infra.GetNATSConnection(cfg.NATS)
	if err != nil {
		logger.Fatal("NATS connect failed", "err", err)
	}
	emitter := events.NewEmitter(nc, cfg.NATS.SubjectPrefix)

	store, err := kvstore.NewBadgerStore(cfg.Catalog.CacheDir, "catalog")
	if err != nil {
		logger.Fatal("Open catalog cache failed", "err", err)
	}

	skins := catalog.NewService(cfg.Catalog.SourceURLs, store)
	loadCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	if err := skins.Load(loadCtx); err != nil {
		logger.Warn("Skin catalog load failed, fallback set in use", "err", err)
	}
	cancel()

	sessions := session.NewStore(
		cfg.Auth.AdminPassword,
		time.Duration(cfg.Auth.SessionTTLHrs)*time.Hour,
	)
	sessions.StartSweeper(time.Duration(cfg.Auth.SweepEveryMins) * time.Minute)

	// The manager's chat-status callback closes over the bridge variable; the
	// bridge itself needs the manager to register participants.
	var bridge *chat.Bridge

	manager := game.NewManager(game.Config{
		MaxWin:     cfg.Game.MaxWin,
		TargetAvg:  cfg.Game.TargetAvg,
		MaxPicks:   cfg.Game.MaxPicks,
		AllowForce: cfg.Game.AllowForce,
	}, game.Deps{
		Generator:    outcome.NewGenerator(outcome.DefaultRNG(), cfg.Game.MinGuaranteed),
		Emitter:      emitter,
		Participants: registry.New(),
		Passwords:    sessions,
		Skins:        skins.Skins,
		ChatStatus: func() any {
			if bridge == nil {
				return nil
			}
			return bridge.Status()
		},
	})

	bridge = chat.NewBridge(nc, emitter, manager, chat.Config{
		JoinKeyword:    cfg.Chat.JoinKeyword,
		Channel:        cfg.Chat.Channel,
		BotUsernames:   cfg.Chat.BotUsernames,
		MessageSubject: cfg.Chat.MessageSubject,
		StatusSubject:  cfg.Chat.StatusSubject,
	})
	if err := bridge.Start(); err != nil {
		logger.Fatal("Chat bridge start failed", "err", err)
	}

	manager.Start()
	server := startHTTPServer(cfg.Server.Addr, version, NewGameHTTPHandler(version, manager, sessions, skins))

	logger.Info("Game server is running... Press Ctrl+C to stop")
	waitForShutdown()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Warn("HTTP shutdown failed", "err", err)
	}
	bridge.Stop()
	manager.Stop()
	sessions.Stop()
	emitter.Close()
	if err := store.Close(); err != nil {
		logger.Warn("Catalog cache close failed", "err", err)
	}
	logger.Info("Game server stopped")
	return nil
}

func waitForShutdown() {
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop
}
