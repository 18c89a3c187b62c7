package storage

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"roguely-server/internal/agent"
	"roguely-server/internal/domain"
	"roguely-server/internal/engine"
	"roguely-server/pkg/api"
	"roguely-server/pkg/logger"
)

func TestMain(m *testing.M) {
	logger.Init()
	os.Exit(m.Run())
}

func moveCmd(dir string) domain.InternalCommand {
	payload, _ := json.Marshal(map[string]string{"direction": dir})
	return domain.InternalCommand{Action: domain.ActionMove, Session: "s1", Payload: payload}
}

func TestJournal_RecordFrame(t *testing.T) {
	j := NewJournal(5)
	start := time.Unix(100, 0)

	j.RecordFrame(0, start, true, nil)
	j.RecordFrame(3, start.Add(500*time.Millisecond), false, []domain.InternalCommand{moveCmd("UP"), moveCmd("LEFT")})
	j.Finish(6)

	s := j.Session()
	assert.Equal(t, int64(5), s.Seed)
	assert.Equal(t, start, s.Started)
	assert.Equal(t, 6, s.Frames)
	require.Len(t, s.Records, 3)
	assert.Equal(t, RecordTick, s.Records[0].Kind)
	assert.Equal(t, RecordCommand, s.Records[1].Kind)
	assert.Equal(t, 500*time.Millisecond, s.Records[2].Elapsed)
	assert.Equal(t, "s1", s.Records[2].Session)
}

func TestEncodeDecode(t *testing.T) {
	j := NewJournal(-42)
	start := time.Unix(0, 1700000000123456789)
	j.RecordFrame(0, start, true, []domain.InternalCommand{{Action: domain.ActionWait, Session: "a"}})
	j.RecordFrame(7, start.Add(time.Second), true, []domain.InternalCommand{moveCmd("DOWN")})
	orig := j.Session()

	var buf bytes.Buffer
	require.NoError(t, Encode(&buf, orig))

	got, err := Decode(&buf)
	require.NoError(t, err)
	assert.Equal(t, orig.Seed, got.Seed)
	assert.True(t, orig.Started.Equal(got.Started))
	assert.Equal(t, orig.Frames, got.Frames)
	require.Len(t, got.Records, len(orig.Records))
	for i := range orig.Records {
		assert.Equal(t, orig.Records[i].Frame, got.Records[i].Frame)
		assert.Equal(t, orig.Records[i].Kind, got.Records[i].Kind)
		assert.Equal(t, orig.Records[i].Action, got.Records[i].Action)
		assert.Equal(t, orig.Records[i].Elapsed, got.Records[i].Elapsed)
		assert.Equal(t, orig.Records[i].Session, got.Records[i].Session)
		assert.Equal(t, string(orig.Records[i].Payload), string(got.Records[i].Payload))
	}
}

func TestDecode_Errors(t *testing.T) {
	_, err := Decode(bytes.NewReader([]byte("XXXX\x01\x00\x00\x00")))
	assert.Error(t, err)

	var buf bytes.Buffer
	require.NoError(t, Encode(&buf, &Session{Seed: 1}))
	raw := buf.Bytes()
	raw[0] = 'X'
	_, err = Decode(bytes.NewReader(raw))
	assert.True(t, errors.Is(err, ErrBadJournal))

	buf.Reset()
	require.NoError(t, Encode(&buf, &Session{Seed: 1, Records: []Record{{Kind: RecordTick}}}))
	truncated := buf.Bytes()[:buf.Len()-2]
	_, err = Decode(bytes.NewReader(truncated))
	assert.Error(t, err)
}

func TestEncode_SessionTooLong(t *testing.T) {
	long := make([]byte, 300)
	for i := range long {
		long[i] = 'x'
	}
	s := &Session{Records: []Record{{Kind: RecordCommand, Session: string(long)}}}
	assert.Error(t, Encode(&bytes.Buffer{}, s))
}

func TestSession_Inputs(t *testing.T) {
	start := time.Unix(10, 0)
	s := &Session{
		Started: start,
		Frames:  5,
		Records: []Record{
			{Frame: 0, Kind: RecordTick},
			{Frame: 2, Kind: RecordCommand, Elapsed: 400 * time.Millisecond, Action: domain.ActionWait},
			{Frame: 3, Kind: RecordTick, Elapsed: time.Second},
			{Frame: 9, Kind: RecordTick},
		},
	}

	in := s.Inputs()
	require.Len(t, in, 5)
	assert.Equal(t, start, in[0].Now)
	assert.Equal(t, start, in[1].Now, "unrecorded frame reuses the last tick time")
	assert.Equal(t, start.Add(400*time.Millisecond), in[2].Now)
	require.Len(t, in[2].Commands, 1)
	assert.Equal(t, domain.ActionWait, in[2].Commands[0].Action)
	assert.Equal(t, start.Add(time.Second), in[4].Now)
}

func newGame(t *testing.T) *engine.Service {
	cfg := engine.NewConfig()
	cfg.Seed = 777
	cfg.Game.MapWidth = 40
	cfg.Game.MapHeight = 20
	cfg.Game.Spawns = []engine.SpawnConfig{
		{Template: "rat", Count: 6},
		{Template: "goblin", Count: 2},
		{Template: "coin", Count: 8},
	}
	cfg.Game.TickInterval = 500 * time.Millisecond

	s := engine.NewService(cfg)
	require.NoError(t, s.SetupLevel())
	agent.Register(s)
	return s
}

type gameState struct {
	Frame    int
	Entities int
	Player   domain.Point
	Health   int
	Score    int
}

func stateOf(s *engine.Service) gameState {
	var st gameState
	s.Inspect(func(s *engine.Service) {
		st.Frame = s.Frame()
		st.Entities = s.Registry().Len()
		player, _ := s.Registry().Player()
		st.Player, _ = player.Position()
		st.Health = domain.ComponentValue(player, "health", "current")
		st.Score = domain.ComponentValue(player, "score", "score")
	})
	return st
}

func TestReplay_ReproducesLiveGame(t *testing.T) {
	live := newGame(t)
	journal := NewJournal(live.Config().Seed)
	live.SetRecorder(journal)

	dirs := []string{"UP", "LEFT", "DOWN", "RIGHT", "RIGHT", "UP"}
	start := time.Unix(1000, 0)
	for i := 0; i < 40; i++ {
		if i%3 == 0 {
			payload, _ := json.Marshal(api.DirectionPayload{Direction: dirs[i%len(dirs)]})
			require.NoError(t, live.ProcessCommand("s1", api.ClientCommand{Action: "MOVE", Payload: payload}))
		}
		require.NoError(t, live.Step(start.Add(time.Duration(i)*170*time.Millisecond)))
	}
	journal.Finish(live.Frame())

	var buf bytes.Buffer
	require.NoError(t, Encode(&buf, journal.Session()))
	loaded, err := Decode(&buf)
	require.NoError(t, err)

	replayed := newGame(t)
	require.NoError(t, Replay(replayed, loaded))

	assert.Equal(t, stateOf(live), stateOf(replayed))
}

func TestReplay_SeedMismatch(t *testing.T) {
	s := newGame(t)
	err := Replay(s, &Session{Seed: 1})
	assert.True(t, errors.Is(err, ErrBadJournal))
}

func TestStore_SaveLoad(t *testing.T) {
	store, err := NewStore(t.TempDir())
	require.NoError(t, err)

	j := NewJournal(3)
	j.RecordFrame(0, time.Unix(50, 0), true, nil)
	path, err := store.Save(j.Session())
	require.NoError(t, err)

	got, err := store.Load(path)
	require.NoError(t, err)
	assert.Equal(t, int64(3), got.Seed)
	assert.Len(t, got.Records, 1)
}
