package main

import (
	"context"
	"flag"
	"io"
	"os"

	"github.com/gdamore/tcell/v2"

	"roguely-server/internal/agent"
	"roguely-server/internal/audio"
	"roguely-server/internal/engine"
	"roguely-server/pkg/api"
	"roguely-server/pkg/logger"
)

const session = "terminal"

func main() {
	var (
		seed       int64
		configPath string
		logPath    string
		sound      bool
	)
	flag.Int64Var(&seed, "seed", 0, "World seed (0 keeps the config/random seed)")
	flag.StringVar(&configPath, "config", "", "Path to a YAML game config")
	flag.StringVar(&logPath, "log", "", "Write logs to this file (default: discard)")
	flag.BoolVar(&sound, "sound", true, "Play sounds on the local audio device")
	flag.Parse()

	var logOut io.Writer = io.Discard
	if logPath != "" {
		f, err := os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			os.Stderr.WriteString("cannot open log file: " + err.Error() + "\n")
			os.Exit(1)
		}
		defer f.Close()
		logOut = f
	}
	logger.InitWithOutput(logOut)

	if err := run(seed, configPath, sound); err != nil {
		logger.Log.WithError(err).Error("Terminal client failed.")
		os.Stderr.WriteString(err.Error() + "\n")
		os.Exit(1)
	}
}

func run(seed int64, configPath string, sound bool) error {
	cfg := engine.NewConfig()
	if configPath != "" {
		loaded, err := engine.LoadConfig(configPath)
		if err != nil {
			return err
		}
		cfg = loaded
	}
	if seed != 0 {
		cfg.Seed = seed
	}

	svc := engine.NewService(cfg)
	if err := svc.SetupLevel(); err != nil {
		return err
	}
	agent.Register(svc)

	if sound {
		player := audio.NewPlayer(cfg.Game.Sounds)
		if err := player.Init(); err != nil {
			logger.Log.WithError(err).Warn("Audio unavailable, running silent.")
		} else {
			svc.SetSoundPlayer(player)
			defer player.Close()
		}
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		return err
	}
	if err := screen.Init(); err != nil {
		return err
	}
	defer screen.Fini()

	frames := svc.Hub.Register(session)
	defer svc.Hub.Unregister(session)
	submit(svc, api.ClientCommand{Action: "REDRAW"})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go func() {
		if err := svc.Run(ctx); err != nil {
			cancel()
		}
	}()

	events := make(chan tcell.Event, 100)
	go func() {
		for {
			ev := screen.PollEvent()
			if ev == nil {
				return
			}
			events <- ev
		}
	}()

	v := newView()
	for {
		select {
		case <-ctx.Done():
			return nil

		case f, ok := <-frames:
			if !ok {
				return nil
			}
			v.apply(f)
			redraw(screen, v)

		case ev := <-events:
			switch ev := ev.(type) {
			case *tcell.EventKey:
				cmd, ok, quit := keyCommand(ev.Key(), ev.Rune())
				if quit {
					return nil
				}
				if ok {
					submit(svc, cmd)
				}
			case *tcell.EventResize:
				screen.Sync()
				submit(svc, api.ClientCommand{Action: "REDRAW"})
			}
		}
	}
}

// commandSink - то, что принимает команды терминальной сессии.
type commandSink interface {
	ProcessCommand(session string, cmd api.ClientCommand) error
}

// submit ставит команду в очередь; отказ только пишется в лог.
func submit(sink commandSink, cmd api.ClientCommand) bool {
	if err := sink.ProcessCommand(session, cmd); err != nil {
		logger.Component("term").WithError(err).WithField("action", cmd.Action).Debug("Command refused.")
		return false
	}
	return true
}

func redraw(screen tcell.Screen, v *view) {
	screen.Clear()
	w, h := screen.Size()
	v.draw(screen, w, h)
	screen.Show()
}
