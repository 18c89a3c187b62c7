package engine

import (
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"roguely-server/internal/systems"
)

var ErrInvalidConfig = errors.New("invalid game config")

// Config хранит параметры запуска движка
type Config struct {
	// Seed - мастер-зерно. От него зависят карта и расстановка сущностей.
	Seed int64      `yaml:"seed"`
	Game GameConfig `yaml:"game"`
}

// GameConfig - таблица игры: окно, спрайты, карта, темп и звуки.
type GameConfig struct {
	Title        string `yaml:"title"`
	WindowWidth  int    `yaml:"window_width"`
	WindowHeight int    `yaml:"window_height"`
	SpriteWidth  int    `yaml:"sprite_width"`
	SpriteHeight int    `yaml:"sprite_height"`
	SpriteScale  int    `yaml:"sprite_scale"`

	MapName   string `yaml:"map_name"`
	MapWidth  int    `yaml:"map_width"`
	MapHeight int    `yaml:"map_height"`
	MapPasses int    `yaml:"map_passes"`

	PlayerName string        `yaml:"player_name"`
	Spawns     []SpawnConfig `yaml:"spawns"`

	FrameRate    int           `yaml:"frame_rate"`
	TickInterval time.Duration `yaml:"tick_interval"`
	FOVDistance  int           `yaml:"fov_distance"`

	// Sounds: имя звука -> частота тона в Гц.
	Sounds map[string]float64 `yaml:"sounds"`

	Port string `yaml:"port"`
}

// SpawnConfig - сколько сущностей шаблона разместить на карте.
type SpawnConfig struct {
	Template string `yaml:"template"`
	Count    int    `yaml:"count"`
}

// NewConfig создает конфиг по умолчанию (случайный сид)
func NewConfig() Config {
	return Config{
		Seed: time.Now().UnixNano(),
		Game: GameConfig{
			Title:        "Roguely",
			WindowWidth:  1280,
			WindowHeight: 640,
			SpriteWidth:  16,
			SpriteHeight: 16,
			SpriteScale:  2,
			MapName:      "main",
			MapWidth:     100,
			MapHeight:    40,
			MapPasses:    10,
			PlayerName:   "player",
			Spawns: []SpawnConfig{
				{Template: "rat", Count: 8},
				{Template: "goblin", Count: 4},
				{Template: "coin", Count: 20},
				{Template: "gem", Count: 5},
			},
			FrameRate:    6,
			TickInterval: time.Second,
			Sounds: map[string]float64{
				"hit":    220,
				"pickup": 880,
				"death":  110,
				"bump":   70,
			},
			Port: "8080",
		},
	}
}

// LoadConfig читает YAML поверх значений по умолчанию и проверяет результат.
func LoadConfig(path string) (Config, error) {
	cfg := NewConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// Validate проверяет обязательные поля таблицы игры.
func (c Config) Validate() error {
	g := c.Game
	switch {
	case g.WindowWidth <= 0 || g.WindowHeight <= 0:
		return fmt.Errorf("%w: window size %dx%d", ErrInvalidConfig, g.WindowWidth, g.WindowHeight)
	case g.SpriteWidth <= 0 || g.SpriteHeight <= 0 || g.SpriteScale <= 0:
		return fmt.Errorf("%w: sprite %dx%d scale %d", ErrInvalidConfig, g.SpriteWidth, g.SpriteHeight, g.SpriteScale)
	case g.MapWidth <= 0 || g.MapHeight <= 0:
		return fmt.Errorf("%w: map size %dx%d", ErrInvalidConfig, g.MapWidth, g.MapHeight)
	case g.MapPasses < 0:
		return fmt.Errorf("%w: negative map passes", ErrInvalidConfig)
	case g.MapName == "":
		return fmt.Errorf("%w: map name is empty", ErrInvalidConfig)
	case g.FrameRate <= 0:
		return fmt.Errorf("%w: frame rate %d", ErrInvalidConfig, g.FrameRate)
	case g.TickInterval <= 0:
		return fmt.Errorf("%w: tick interval %s", ErrInvalidConfig, g.TickInterval)
	}
	for _, s := range g.Spawns {
		if s.Template == "" || s.Count < 0 {
			return fmt.Errorf("%w: spawn %q x%d", ErrInvalidConfig, s.Template, s.Count)
		}
	}
	return nil
}

// ViewportSize - размер окна просмотра в клетках.
func (c Config) ViewportSize() (int, int) {
	g := c.Game
	return systems.ViewportCells(g.WindowWidth, g.SpriteWidth, g.SpriteScale),
		systems.ViewportCells(g.WindowHeight, g.SpriteHeight, g.SpriteScale)
}

// FrameInterval - длительность одного кадра.
func (c Config) FrameInterval() time.Duration {
	return time.Second / time.Duration(c.Game.FrameRate)
}
