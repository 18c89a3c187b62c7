package main

import (
	"encoding/json"
	"errors"
	"io"
	"testing"

	"github.com/gdamore/tcell/v2"
	"github.com/sirupsen/logrus"
	logtest "github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"roguely-server/pkg/api"
	"roguely-server/pkg/logger"
)

type cell struct {
	r     rune
	style tcell.Style
}

type fakeScreen map[[2]int]cell

func (f fakeScreen) SetContent(x, y int, r rune, _ []rune, st tcell.Style) {
	f[[2]int{x, y}] = cell{r, st}
}

func TestKeyCommand(t *testing.T) {
	tests := []struct {
		name   string
		key    tcell.Key
		ch     rune
		action string
		dir    string
		quit   bool
	}{
		{name: "arrow up", key: tcell.KeyUp, action: "MOVE", dir: "UP"},
		{name: "arrow right", key: tcell.KeyRight, action: "MOVE", dir: "RIGHT"},
		{name: "wasd left", key: tcell.KeyRune, ch: 'a', action: "MOVE", dir: "LEFT"},
		{name: "wasd down", key: tcell.KeyRune, ch: 'S', action: "MOVE", dir: "DOWN"},
		{name: "wait", key: tcell.KeyRune, ch: ' ', action: "WAIT"},
		{name: "redraw", key: tcell.KeyRune, ch: 'r', action: "REDRAW"},
		{name: "quit", key: tcell.KeyRune, ch: 'q', quit: true},
		{name: "escape", key: tcell.KeyEscape, quit: true},
		{name: "ignored", key: tcell.KeyRune, ch: 'z'},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmd, ok, quit := keyCommand(tt.key, tt.ch)
			assert.Equal(t, tt.quit, quit)
			assert.Equal(t, tt.action != "", ok)
			assert.Equal(t, tt.action, cmd.Action)
			if tt.dir != "" {
				var p api.DirectionPayload
				require.NoError(t, json.Unmarshal(cmd.Payload, &p))
				assert.Equal(t, tt.dir, p.Direction)
			}
		})
	}
}

func testFrame() api.FrameSnapshot {
	f := api.FrameSnapshot{
		Type:     "FRAME",
		Frame:    3,
		Map:      "main",
		Viewport: api.ViewportView{X: 10, Y: 5, Right: 13, Bottom: 7},
		Tiles: []api.TileView{
			{X: 10, Y: 5, Symbol: "#", Color: "#6B5B45", IsWall: true},
			{X: 11, Y: 5, Symbol: ".", Color: "#3A3A3A", IsVisible: true},
		},
		Logs: []api.LogEntry{{Text: "hero waits."}},
	}
	var p api.EntityView
	p.Group = "player"
	p.Name = "hero"
	p.Pos.X, p.Pos.Y = 11, 5
	p.Render.Symbol, p.Render.Color = "@", "#FFFFFF"
	p.Values = map[string]int{"health": 90, "health_max": 100, "score": 20}
	f.Entities = []api.EntityView{p}
	return f
}

func TestView_ApplyAndDraw(t *testing.T) {
	v := newView()
	v.apply(testFrame())

	assert.Len(t, v.tiles, 2)
	assert.Contains(t, v.status, "HP 90/100")
	assert.Contains(t, v.status, "Score 20")

	screen := fakeScreen{}
	v.draw(screen, 80, 24)

	assert.Equal(t, '#', screen[[2]int{0, 0}].r)
	assert.Equal(t, '@', screen[[2]int{1, 0}].r, "entities are drawn over tiles")
	assert.Equal(t, 'h', screen[[2]int{0, 3}].r, "status goes below the viewport")
	assert.Equal(t, 'h', screen[[2]int{0, 4}].r, "log line follows the status")
}

func TestView_KeepsTilesBetweenRedraws(t *testing.T) {
	v := newView()
	v.apply(testFrame())

	next := testFrame()
	next.Tiles = nil
	next.Logs = []api.LogEntry{{Text: "a"}, {Text: "b"}, {Text: "c"}, {Text: "d"}}
	v.apply(next)

	assert.Len(t, v.tiles, 2)
	assert.Equal(t, []string{"a", "b", "c", "d"}, v.logs)
}

func TestView_DrawClipsToScreen(t *testing.T) {
	v := newView()
	v.apply(testFrame())

	screen := fakeScreen{}
	v.draw(screen, 1, 1)
	_, ok := screen[[2]int{1, 0}]
	assert.False(t, ok)
}

type recordingSink struct {
	err  error
	got  []api.ClientCommand
	seen []string
}

func (r *recordingSink) ProcessCommand(session string, cmd api.ClientCommand) error {
	r.seen = append(r.seen, session)
	r.got = append(r.got, cmd)
	return r.err
}

func TestSubmit(t *testing.T) {
	logger.InitWithOutput(io.Discard)
	logger.Log.SetLevel(logrus.DebugLevel)
	hook := logtest.NewLocal(logger.Log)

	t.Run("accepted", func(t *testing.T) {
		hook.Reset()
		sink := &recordingSink{}
		assert.True(t, submit(sink, api.ClientCommand{Action: "REDRAW"}))
		assert.Equal(t, []string{session}, sink.seen)
		assert.Empty(t, hook.AllEntries())
	})

	t.Run("refused commands are logged", func(t *testing.T) {
		hook.Reset()
		sink := &recordingSink{err: errors.New("queue full")}
		assert.False(t, submit(sink, api.ClientCommand{Action: "WAIT"}))
		assert.False(t, submit(sink, api.ClientCommand{Action: "REDRAW"}))
		assert.Len(t, sink.got, 2)

		entries := hook.AllEntries()
		require.Len(t, entries, 2)
		assert.Equal(t, logrus.DebugLevel, entries[0].Level)
		assert.Equal(t, "WAIT", entries[0].Data["action"])
		assert.Equal(t, "REDRAW", entries[1].Data["action"])
		assert.Equal(t, "term", entries[1].Data["component"])
	})
}
