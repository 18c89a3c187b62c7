package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"

	"github.com/sirupsen/logrus"

	"roguely-server/internal/agent"
	"roguely-server/internal/audio"
	"roguely-server/internal/domain"
	"roguely-server/internal/engine"
	"roguely-server/internal/infrastructure/storage"
	"roguely-server/internal/server"
	"roguely-server/internal/version"
	"roguely-server/pkg/logger"
)

func init() {
	logger.Init()
}

func main() {
	var (
		seed       int64
		configPath string
		sound      bool
		recordDir  string
		replayPath string
	)
	flag.Int64Var(&seed, "seed", 0, "World seed (0 keeps the config/random seed)")
	flag.StringVar(&configPath, "config", "", "Path to a YAML game config")
	flag.BoolVar(&sound, "sound", false, "Play sounds on the local audio device")
	flag.StringVar(&recordDir, "record", "", "Directory to save the command journal to on shutdown")
	flag.StringVar(&replayPath, "replay", "", "Replay a saved journal headless and exit")
	flag.Parse()

	logger.Log.Info("Starting roguely...")
	logger.Log.Info(version.Current().String())

	cfg := engine.NewConfig()
	if configPath != "" {
		loaded, err := engine.LoadConfig(configPath)
		if err != nil {
			logger.Log.WithError(err).Fatal("Failed to load config.")
		}
		cfg = loaded
	}
	if seed != 0 {
		cfg.Seed = seed
	}
	if port := os.Getenv("ROGUELY_PORT"); port != "" {
		cfg.Game.Port = port
	}

	if replayPath != "" {
		runReplay(cfg, replayPath)
		return
	}

	logger.Log.WithField("seed", cfg.Seed).Info("Using world seed.")
	svc := newGame(cfg)

	if sound {
		player := audio.NewPlayer(cfg.Game.Sounds)
		if err := player.Init(); err != nil {
			logger.Log.WithError(err).Warn("Audio unavailable, running silent.")
		} else {
			svc.SetSoundPlayer(player)
			defer player.Close()
		}
	}

	var journal *storage.Journal
	if recordDir != "" {
		journal = storage.NewJournal(cfg.Seed)
		svc.SetRecorder(journal)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		if err := svc.Run(ctx); err != nil {
			stop()
		}
	}()

	if err := server.New(svc, cfg.Game.Port).Run(ctx); err != nil {
		logger.Log.WithError(err).Error("Server error.")
		stop()
	}

	logger.Log.Info("Shutting down...")
	if journal != nil {
		saveJournal(svc, journal, recordDir)
	}
	logger.Log.Info("Done.")
}

func newGame(cfg engine.Config) *engine.Service {
	svc := engine.NewService(cfg)
	if err := svc.SetupLevel(); err != nil {
		logger.Log.WithError(err).Fatal("Failed to build level.")
	}
	agent.Register(svc)
	return svc
}

func saveJournal(svc *engine.Service, journal *storage.Journal, dir string) {
	svc.Inspect(func(s *engine.Service) { journal.Finish(s.Frame()) })

	store, err := storage.NewStore(dir)
	if err != nil {
		logger.Log.WithError(err).Error("Journal not saved.")
		return
	}
	path, err := store.Save(journal.Session())
	if err != nil {
		logger.Log.WithError(err).Error("Journal not saved.")
		return
	}
	logger.Log.WithField("path", path).Info("Journal saved.")
}

// runReplay прогоняет журнал на мире с seed из журнала и печатает итог.
func runReplay(cfg engine.Config, path string) {
	session, err := storage.LoadFile(path)
	if err != nil {
		logger.Log.WithError(err).Fatal("Failed to load journal.")
	}
	cfg.Seed = session.Seed

	svc := newGame(cfg)
	if err := storage.Replay(svc, session); err != nil {
		logger.Log.WithError(err).Fatal("Replay failed.")
	}

	svc.Inspect(func(s *engine.Service) {
		fields := logrus.Fields{"frame": s.Frame(), "entities": s.Registry().Len()}
		if player, ok := s.Registry().Player(); ok {
			pos, _ := player.Position()
			fields["position"] = pos
			fields["health"] = domain.ComponentValue(player, "health", "current")
			fields["score"] = domain.ComponentValue(player, "score", "")
		}
		logger.Log.WithFields(fields).Info("Final state.")
	})
}
