package main

import (
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"roguely-server/pkg/dungeon"
	"roguely-server/pkg/logger"
	"roguely-server/pkg/utils"
)

func TestMain(m *testing.M) {
	logger.Init()
	os.Exit(m.Run())
}

func TestParseSpawns(t *testing.T) {
	got, err := parseSpawns("rat:3, coin:10")
	require.NoError(t, err)
	assert.Equal(t, []spawnRequest{{"rat", 3}, {"coin", 10}}, got)

	got, err = parseSpawns("")
	require.NoError(t, err)
	assert.Empty(t, got)

	for _, bad := range []string{"rat", "rat:x", "rat:-1", "dragon:1", ":2"} {
		_, err := parseSpawns(bad)
		assert.Error(t, err, bad)
	}
}

func TestRender(t *testing.T) {
	level, err := dungeon.NewLevel("t", utils.NewRandom(3)).WithSize(30, 12).Spawn("rat", 2).Build()
	require.NoError(t, err)

	out := render(level)
	lines := strings.Split(strings.TrimSuffix(out, "\n"), "\n")
	require.Len(t, lines, 12)
	for _, l := range lines {
		assert.Len(t, []rune(l), 30)
	}
	assert.Equal(t, 1, strings.Count(out, "@"))
	assert.Equal(t, byte('@'), lines[level.Start.Y][level.Start.X])
}
