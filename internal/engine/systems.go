package engine

import (
	"fmt"
	"sort"
	"time"

	"github.com/sirupsen/logrus"

	"roguely-server/internal/core/types/enums"
	"roguely-server/internal/domain"
	"roguely-server/pkg/logger"
)

// SystemContext - то, что система видит в момент вызова.
type SystemContext struct {
	Service  *Service
	Player   *domain.Entity
	Viewport []domain.ViewportEntry

	// Input - обработанная команда (только для систем ввода).
	Input *domain.InternalCommand
	// Delta - время, прошедшее с начала кадра (только для систем отрисовки).
	Delta time.Duration
}

// FrameRecorder получает входные данные кадров, в которых были команды или такт.
// Этого достаточно, чтобы повторить партию с тем же seed.
type FrameRecorder interface {
	RecordFrame(frame int, now time.Time, ticked bool, cmds []domain.InternalCommand)
}

// SystemFunc - обратный вызов системы.
type SystemFunc func(ctx *SystemContext) error

// FrameInput - входные данные одного кадра.
type FrameInput struct {
	Now      time.Time
	Commands []domain.InternalCommand
}

// systemTable хранит системы по категориям; внутри категории порядок - по имени.
type systemTable struct {
	byCategory map[enums.SystemCategory]map[string]SystemFunc
}

func newSystemTable() *systemTable {
	return &systemTable{byCategory: make(map[enums.SystemCategory]map[string]SystemFunc)}
}

// add регистрирует систему. Повторное имя в категории заменяет прежнюю.
func (t *systemTable) add(category enums.SystemCategory, name string, fn SystemFunc) {
	m, ok := t.byCategory[category]
	if !ok {
		m = make(map[string]SystemFunc)
		t.byCategory[category] = m
	}
	m[name] = fn
}

func (t *systemTable) remove(category enums.SystemCategory, name string) bool {
	m, ok := t.byCategory[category]
	if !ok {
		return false
	}
	if _, ok := m[name]; !ok {
		return false
	}
	delete(m, name)
	return true
}

func (t *systemTable) names(category enums.SystemCategory) []string {
	m := t.byCategory[category]
	out := make([]string, 0, len(m))
	for name := range m {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

// run вызывает системы категории по порядку имен. Первая ошибка прерывает проход.
func (t *systemTable) run(category enums.SystemCategory, ctx *SystemContext) error {
	for _, name := range t.names(category) {
		if err := t.byCategory[category][name](ctx); err != nil {
			return fmt.Errorf("%s system %q: %w", category, name, err)
		}
	}
	return nil
}

// AddSystem регистрирует систему в категории.
func (s *Service) AddSystem(category enums.SystemCategory, name string, fn SystemFunc) {
	s.systems.add(category, name, fn)
	logger.Log.WithFields(logrus.Fields{
		"component": "engine",
		"category":  category.String(),
		"system":    name,
	}).Debug("System registered.")
}

// RemoveSystem снимает систему с регистрации.
func (s *Service) RemoveSystem(category enums.SystemCategory, name string) bool {
	return s.systems.remove(category, name)
}

// SystemNames - имена систем категории в порядке запуска.
func (s *Service) SystemNames(category enums.SystemCategory) []string {
	return s.systems.names(category)
}

// RunFrame выполняет один кадр: команды и системы ввода, общие системы,
// системы такта (если прошел интервал), затем системы отрисовки.
// Ошибка общей системы возвращается вызывающему; ошибки остальных категорий только логируются.
func (s *Service) RunFrame(in FrameInput) error {
	if in.Now.IsZero() {
		in.Now = time.Now()
	}
	frameLogger := logger.Log.WithFields(logrus.Fields{
		"component": "engine",
		"frame":     s.frame,
	})

	for i := range in.Commands {
		cmd := in.Commands[i]
		s.executeCommand(cmd)
		if err := s.systems.run(enums.SystemInput, s.systemContext(&cmd, 0)); err != nil {
			frameLogger.WithError(err).Error("Input system failed.")
		}
	}

	s.trackPlayer()

	if err := s.systems.run(enums.SystemGeneric, s.systemContext(nil, 0)); err != nil {
		return err
	}

	ticked := false
	if s.lastTick.IsZero() || in.Now.Sub(s.lastTick) >= s.cfg.Game.TickInterval {
		ticked = true
		if err := s.systems.run(enums.SystemTick, s.systemContext(nil, 0)); err != nil {
			frameLogger.WithError(err).Error("Tick system failed.")
		}
		s.lastTick = in.Now
		s.trackPlayer()
	}

	if err := s.systems.run(enums.SystemRender, s.systemContext(nil, time.Since(in.Now))); err != nil {
		frameLogger.WithError(err).Error("Render system failed.")
	}

	if s.recorder != nil && (ticked || len(in.Commands) > 0) {
		s.recorder.RecordFrame(s.frame, in.Now, ticked, in.Commands)
	}

	s.frame++
	return nil
}

func (s *Service) systemContext(input *domain.InternalCommand, delta time.Duration) *SystemContext {
	ctx := &SystemContext{Service: s, Input: input, Delta: delta}
	if p, ok := s.registry.Player(); ok {
		ctx.Player = p
	}
	if s.current != nil {
		ctx.Viewport = s.registry.EntitiesInViewport(s.IsWithinViewport)
	}
	return ctx
}
