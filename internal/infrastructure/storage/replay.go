package storage

import (
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"roguely-server/internal/domain"
	"roguely-server/internal/engine"
	"roguely-server/pkg/logger"
)

// Inputs раскладывает журнал по кадрам 0..Frames-1.
// Кадр без записей получает время последнего такта, чтобы такт на нем не сработал.
func (s *Session) Inputs() []engine.FrameInput {
	inputs := make([]engine.FrameInput, s.Frames)
	recorded := make([]bool, s.Frames)
	ticks := make([]bool, s.Frames)

	for _, rec := range s.Records {
		if rec.Frame < 0 || rec.Frame >= s.Frames {
			continue
		}
		in := &inputs[rec.Frame]
		in.Now = s.Started.Add(rec.Elapsed)
		recorded[rec.Frame] = true

		switch rec.Kind {
		case RecordTick:
			ticks[rec.Frame] = true
		case RecordCommand:
			in.Commands = append(in.Commands, domain.InternalCommand{
				Action:  rec.Action,
				Session: rec.Session,
				Payload: rec.Payload,
			})
		}
	}

	lastTick := s.Started
	for i := range inputs {
		if !recorded[i] {
			inputs[i].Now = lastTick
		}
		if ticks[i] {
			lastTick = inputs[i].Now
		}
	}
	return inputs
}

// Replay прогоняет журнал через подготовленный сервис (тот же seed и конфиг,
// уровень уже создан, системы зарегистрированы).
func Replay(svc *engine.Service, session *Session) error {
	log := logger.Log.WithFields(logrus.Fields{
		"component": "replay",
		"seed":      session.Seed,
	})
	if svc.Config().Seed != session.Seed {
		return fmt.Errorf("%w: journal seed %d, service seed %d", ErrBadJournal, session.Seed, svc.Config().Seed)
	}

	start := time.Now()
	for i, in := range session.Inputs() {
		var err error
		svc.Inspect(func(s *engine.Service) {
			if err = s.RunFrame(in); err == nil {
				// как в живом Step: снимок забирает звуки и логи кадра
				s.BuildSnapshot()
			}
		})
		if err != nil {
			return fmt.Errorf("frame %d: %w", i, err)
		}
	}

	log.WithFields(logrus.Fields{
		"frames":   session.Frames,
		"records":  len(session.Records),
		"duration": time.Since(start),
	}).Info("Replay finished.")
	return nil
}
