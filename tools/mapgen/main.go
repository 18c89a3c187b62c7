// mapgen печатает сгенерированный уровень в ASCII: '#' стена, '.' пол,
// символы сущностей и '@' для стартовой точки.
package main

import (
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"roguely-server/internal/core/types"
	"roguely-server/pkg/dungeon"
	"roguely-server/pkg/logger"
	"roguely-server/pkg/utils"
)

func main() {
	logger.InitWithOutput(os.Stderr)

	seed := flag.Int64("seed", time.Now().UnixNano(), "Generator seed")
	width := flag.Int("width", 100, "Map width")
	height := flag.Int("height", 40, "Map height")
	passes := flag.Int("passes", 10, "Cellular automaton passes")
	spawns := flag.String("spawns", "", "Spawn list, e.g. rat:5,coin:10")
	flag.Parse()

	requests, err := parseSpawns(*spawns)
	if err != nil {
		logger.Log.WithError(err).Fatal("Bad -spawns value.")
	}

	b := dungeon.NewLevel("mapgen", utils.NewRandom(*seed)).WithSize(*width, *height).WithPasses(*passes)
	for _, r := range requests {
		b.Spawn(r.template, r.count)
	}
	level, err := b.Build()
	if err != nil {
		logger.Log.WithError(err).Fatal("Generation failed.")
	}

	fmt.Printf("seed=%d size=%dx%d passes=%d\n", *seed, *width, *height, *passes)
	fmt.Print(render(level))
}

type spawnRequest struct {
	template string
	count    int
}

func parseSpawns(s string) ([]spawnRequest, error) {
	var out []spawnRequest
	if strings.TrimSpace(s) == "" {
		return out, nil
	}
	for _, part := range strings.Split(s, ",") {
		name, countStr, ok := strings.Cut(strings.TrimSpace(part), ":")
		if !ok || name == "" {
			return nil, fmt.Errorf("expected template:count, got %q", part)
		}
		count, err := strconv.Atoi(countStr)
		if err != nil || count < 0 {
			return nil, fmt.Errorf("bad count in %q", part)
		}
		if _, ok := dungeon.LookupTemplate(name); !ok {
			return nil, fmt.Errorf("unknown template %q", name)
		}
		out = append(out, spawnRequest{template: name, count: count})
	}
	return out, nil
}

func render(level *dungeon.Level) string {
	m := level.Map
	rows := make([][]rune, m.Height)
	for y := range rows {
		rows[y] = make([]rune, m.Width)
		for x := range rows[y] {
			if m.IsWall(x, y) {
				rows[y][x] = '#'
			} else {
				rows[y][x] = '.'
			}
		}
	}

	for _, p := range level.Entities {
		if pos, ok := p.Entity.Position(); ok && m.InBounds(pos.X, pos.Y) {
			rows[pos.Y][pos.X] = p.Entity.Glyph().Rune()
		}
	}
	if m.InBounds(level.Start.X, level.Start.Y) {
		rows[level.Start.Y][level.Start.X] = types.GlyphPlayer.Rune()
	}

	var sb strings.Builder
	for _, row := range rows {
		sb.WriteString(string(row))
		sb.WriteByte('\n')
	}
	return sb.String()
}
