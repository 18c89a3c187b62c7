package main

import (
	"fmt"
	"unicode/utf8"

	"github.com/gdamore/tcell/v2"

	"roguely-server/internal/domain"
	"roguely-server/pkg/api"
)

const maxLogLines = 4

// cellWriter - то, что рендеру нужно от tcell.Screen.
type cellWriter interface {
	SetContent(x, y int, primary rune, combining []rune, style tcell.Style)
}

type tileKey struct{ x, y int }

// view накапливает кадры: тайлы приходят только при перерисовке, сущности и логи - каждый кадр.
type view struct {
	mapName  string
	viewport api.ViewportView
	tiles    map[tileKey]api.TileView
	entities []api.EntityView
	logs     []string
	status   string
}

func newView() *view {
	return &view{tiles: make(map[tileKey]api.TileView)}
}

func (v *view) apply(f api.FrameSnapshot) {
	v.mapName = f.Map
	v.viewport = f.Viewport
	if len(f.Tiles) > 0 {
		v.tiles = make(map[tileKey]api.TileView, len(f.Tiles))
		for _, t := range f.Tiles {
			v.tiles[tileKey{t.X, t.Y}] = t
		}
	}
	v.entities = f.Entities

	for _, l := range f.Logs {
		v.logs = append(v.logs, l.Text)
	}
	if len(v.logs) > maxLogLines {
		v.logs = v.logs[len(v.logs)-maxLogLines:]
	}

	for _, e := range f.Entities {
		if e.Group != domain.GroupPlayer {
			continue
		}
		v.status = fmt.Sprintf("%s  HP %d/%d  Score %d  Frame %d",
			e.Name, e.Values["health"], e.Values["health_max"], e.Values["score"], f.Frame)
	}
}

// draw рисует окно карты от (0,0), под ним статус и последние сообщения.
func (v *view) draw(w cellWriter, width, height int) {
	for _, t := range v.tiles {
		sx, sy := t.X-v.viewport.X, t.Y-v.viewport.Y
		if sx < 0 || sy < 0 || sx >= width || sy >= height {
			continue
		}
		style := tcell.StyleDefault.Foreground(tcell.GetColor(t.Color))
		w.SetContent(sx, sy, symbolRune(t.Symbol), nil, style)
	}

	for _, e := range v.entities {
		sx, sy := e.Pos.X-v.viewport.X, e.Pos.Y-v.viewport.Y
		if sx < 0 || sy < 0 || sx >= width || sy >= height {
			continue
		}
		style := tcell.StyleDefault.Foreground(tcell.GetColor(e.Render.Color)).Bold(e.Group == domain.GroupPlayer)
		w.SetContent(sx, sy, symbolRune(e.Render.Symbol), nil, style)
	}

	row := v.viewport.Bottom - v.viewport.Y + 1
	drawText(w, 0, row, width, v.status, tcell.StyleDefault.Foreground(tcell.ColorYellow))
	for i, l := range v.logs {
		drawText(w, 0, row+1+i, width, l, tcell.StyleDefault)
	}
}

func drawText(w cellWriter, x, y, width int, s string, style tcell.Style) {
	for _, r := range s {
		if x >= width {
			return
		}
		w.SetContent(x, y, r, nil, style)
		x++
	}
}

func symbolRune(s string) rune {
	r, _ := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return '?'
	}
	return r
}
