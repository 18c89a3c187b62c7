package storage

import (
	"encoding/json"
	"sync"
	"time"

	"roguely-server/internal/domain"
)

// RecordKind - тип записи журнала.
type RecordKind uint8

const (
	RecordCommand RecordKind = iota + 1
	RecordTick
)

// Record - одна запись журнала. Elapsed отсчитывается от Session.Started.
type Record struct {
	Frame   int
	Kind    RecordKind
	Elapsed time.Duration

	Action  domain.ActionType
	Session string
	Payload json.RawMessage
}

// Session - журнал одной партии.
type Session struct {
	Seed    int64
	Started time.Time
	Frames  int
	Records []Record
}

// Journal пишет кадры сервиса в память (реализует engine.FrameRecorder).
type Journal struct {
	mu      sync.Mutex
	session Session
}

func NewJournal(seed int64) *Journal {
	return &Journal{session: Session{Seed: seed}}
}

func (j *Journal) RecordFrame(frame int, now time.Time, ticked bool, cmds []domain.InternalCommand) {
	j.mu.Lock()
	defer j.mu.Unlock()

	if j.session.Started.IsZero() {
		j.session.Started = now
	}
	elapsed := now.Sub(j.session.Started)

	if ticked {
		j.session.Records = append(j.session.Records, Record{Frame: frame, Kind: RecordTick, Elapsed: elapsed})
	}
	for _, cmd := range cmds {
		j.session.Records = append(j.session.Records, Record{
			Frame:   frame,
			Kind:    RecordCommand,
			Elapsed: elapsed,
			Action:  cmd.Action,
			Session: cmd.Session,
			Payload: cmd.Payload,
		})
	}
	if frame+1 > j.session.Frames {
		j.session.Frames = frame + 1
	}
}

// Finish фиксирует общее число кадров партии, включая хвост без событий.
func (j *Journal) Finish(frames int) {
	j.mu.Lock()
	defer j.mu.Unlock()

	if frames > j.session.Frames {
		j.session.Frames = frames
	}
}

// Session возвращает копию накопленного журнала.
func (j *Journal) Session() *Session {
	j.mu.Lock()
	defer j.mu.Unlock()

	s := j.session
	s.Records = append([]Record(nil), j.session.Records...)
	return &s
}
