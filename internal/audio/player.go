package audio

import (
	"errors"
	"fmt"
	"math"
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"
	"github.com/sirupsen/logrus"

	"roguely-server/pkg/logger"
)

const (
	sampleRate = beep.SampleRate(44100)
	toneLength = 120 * time.Millisecond
	amplitude  = 0.25
)

var ErrUnknownSound = errors.New("unknown sound")

// Player синтезирует короткие тоны по имени звука и подмешивает их в вывод.
// Пока Init не вызван, Play только проверяет имя.
type Player struct {
	mu          sync.Mutex
	tones       map[string]float64
	mixer       *beep.Mixer
	initialized bool
	log         *logrus.Entry
}

// NewPlayer создает проигрыватель для таблицы "имя -> частота, Гц".
func NewPlayer(tones map[string]float64) *Player {
	copied := make(map[string]float64, len(tones))
	for k, v := range tones {
		copied[k] = v
	}
	return &Player{
		tones: copied,
		mixer: &beep.Mixer{},
		log:   logger.Component("audio"),
	}
}

// Init открывает аудиоустройство.
func (p *Player) Init() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.initialized {
		return nil
	}
	if err := speaker.Init(sampleRate, sampleRate.N(100*time.Millisecond)); err != nil {
		return fmt.Errorf("init speaker: %w", err)
	}
	speaker.Play(p.mixer)
	p.initialized = true
	p.log.WithField("sounds", len(p.tones)).Info("Audio initialized.")
	return nil
}

// Play подмешивает тон звука name.
func (p *Player) Play(name string) error {
	tone, err := p.Tone(name)
	if err != nil {
		return err
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	if !p.initialized {
		return nil
	}

	speaker.Lock()
	p.mixer.Add(tone)
	speaker.Unlock()
	return nil
}

// Tone возвращает конечный поток звука name.
func (p *Player) Tone(name string) (beep.Streamer, error) {
	freq, ok := p.tones[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownSound, name)
	}
	n := sampleRate.N(toneLength)
	return beep.Take(n, &toneGenerator{sr: sampleRate, freq: freq, length: n}), nil
}

// Close останавливает все звуки и закрывает устройство.
func (p *Player) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.initialized {
		return
	}
	speaker.Lock()
	p.mixer.Clear()
	speaker.Unlock()
	speaker.Close()
	p.initialized = false
}

// toneGenerator - синус с линейным затуханием к концу тона.
type toneGenerator struct {
	sr     beep.SampleRate
	freq   float64
	length int
	pos    int
}

func (g *toneGenerator) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		t := float64(g.pos) / float64(g.sr)
		envelope := 1.0
		if g.length > 0 {
			envelope = math.Max(0, 1-float64(g.pos)/float64(g.length))
		}
		v := amplitude * envelope * math.Sin(2*math.Pi*g.freq*t)

		samples[i][0] = v
		samples[i][1] = v
		g.pos++
	}
	return len(samples), true
}

func (g *toneGenerator) Err() error {
	return nil
}
