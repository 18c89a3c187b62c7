package engine

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"roguely-server/internal/core/types"
	"roguely-server/internal/core/types/enums"
	"roguely-server/internal/domain"
	"roguely-server/internal/engine/handlers"
	"roguely-server/internal/engine/handlers/actions"
	"roguely-server/internal/network"
	"roguely-server/internal/systems"
	"roguely-server/pkg/api"
	"roguely-server/pkg/dungeon"
	"roguely-server/pkg/logger"
	"roguely-server/pkg/utils"
)

var (
	ErrNoMap       = errors.New("no map selected")
	ErrQueueFull   = errors.New("command queue is full")
	ErrUnknownVerb = errors.New("unknown action")
)

const commandBuffer = 100

// SoundPlayer проигрывает звук по имени.
type SoundPlayer interface {
	Play(name string) error
}

// Service владеет картами, реестром, окном просмотра и таблицей систем.
// Все мутации выполняются в горутине симуляции (Run/Step); остальные горутины
// общаются с ней через Commands и Hub, а читают состояние через Inspect.
type Service struct {
	mu sync.Mutex

	cfg Config
	rng *utils.Random

	maps     map[string]*domain.Map
	current  *domain.Map
	registry *domain.Registry
	viewport *systems.Viewport

	handlers map[domain.ActionType]handlers.HandlerFunc
	systems  *systemTable

	sound    SoundPlayer
	recorder FrameRecorder
	sounds   []string
	logs     []api.LogEntry

	frame    int
	lastTick time.Time

	Commands chan domain.InternalCommand
	Hub      *network.Broadcaster

	log *logrus.Entry
}

func NewService(cfg Config) *Service {
	vw, vh := cfg.ViewportSize()

	s := &Service{
		cfg:      cfg,
		rng:      utils.NewRandom(cfg.Seed),
		maps:     make(map[string]*domain.Map),
		registry: domain.NewRegistry(),
		viewport: systems.NewViewport(vw, vh),
		handlers: make(map[domain.ActionType]handlers.HandlerFunc),
		systems:  newSystemTable(),
		Commands: make(chan domain.InternalCommand, commandBuffer),
		Hub:      network.NewBroadcaster(),
		log:      logger.Component("engine"),
	}

	s.registerHandlers()
	return s
}

func (s *Service) registerHandlers() {
	s.handlers[domain.ActionMove] = handlers.WithPayload(actions.HandleMove)
	s.handlers[domain.ActionWait] = handlers.WithEmptyPayload(actions.HandleWait)
	s.handlers[domain.ActionRedraw] = handlers.WithEmptyPayload(actions.HandleRedraw)
}

func (s *Service) Config() Config { return s.cfg }

// Frame - номер следующего кадра.
func (s *Service) Frame() int { return s.frame }

// Rand - общий генератор движка.
func (s *Service) Rand() *utils.Random { return s.rng }

// SetSoundPlayer подключает проигрыватель звуков. nil отключает звук.
func (s *Service) SetSoundPlayer(p SoundPlayer) { s.sound = p }

// SetRecorder включает журнал кадров (nil выключает).
func (s *Service) SetRecorder(r FrameRecorder) { s.recorder = r }

// --- КАРТЫ ---

// GenerateMap создает карту клеточным автоматом и запоминает ее под именем name.
// Первая созданная карта становится текущей.
func (s *Service) GenerateMap(name string, width, height int) (*domain.Map, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("generate %q: %w: %dx%d", name, dungeon.ErrEmptyMap, width, height)
	}
	m := dungeon.Generate(name, width, height, s.cfg.Game.MapPasses, s.rng)
	s.AddMap(m)
	return m, nil
}

// AddMap регистрирует готовую карту. Карта с тем же именем заменяется.
// Первая карта становится текущей.
func (s *Service) AddMap(m *domain.Map) {
	if old, ok := s.maps[m.Name]; ok {
		m.ID = old.ID
	} else {
		m.ID = types.PackID(types.ArenaMap, 1, uint32(len(s.maps)))
	}
	s.maps[m.Name] = m

	s.log.WithFields(logrus.Fields{
		"map":    m.Name,
		"width":  m.Width,
		"height": m.Height,
	}).Info("Map added.")

	if s.current == nil || s.current.Name == m.Name {
		s.SelectMap(m.Name)
	}
}

// SelectMap делает карту текущей. Неизвестное имя - false.
func (s *Service) SelectMap(name string) bool {
	m, ok := s.maps[name]
	if !ok {
		return false
	}
	s.current = m
	s.viewport = systems.NewViewport(s.viewport.Width, s.viewport.Height)
	m.TriggerRedraw()
	s.trackPlayer()
	return true
}

func (s *Service) CurrentMap() *domain.Map { return s.current }

func (s *Service) Map(name string) (*domain.Map, bool) {
	m, ok := s.maps[name]
	return m, ok
}

// MapNames - имена карт по алфавиту.
func (s *Service) MapNames() []string {
	names := make([]string, 0, len(s.maps))
	for n := range s.maps {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// RandomPointOnMap - случайная клетка пола текущей карты, не занятая ни одной сущностью.
func (s *Service) RandomPointOnMap() (domain.Point, error) {
	if s.current == nil {
		return domain.Point{}, ErrNoMap
	}
	return s.Spatial().RandomUnblockedPoint(s.registry.GroupNames())
}

// Spatial - пространственные запросы по текущей карте.
func (s *Service) Spatial() *systems.Spatial {
	return systems.NewSpatial(s.current, s.registry, s.rng)
}

// --- СУЩНОСТИ ---

func (s *Service) Registry() *domain.Registry { return s.registry }

// SetupLevel строит уровень по конфигу: карта, сущности из Spawns и игрок на стартовой клетке.
func (s *Service) SetupLevel() error {
	g := s.cfg.Game
	b := dungeon.NewLevel(g.MapName, s.rng).WithSize(g.MapWidth, g.MapHeight).WithPasses(g.MapPasses)
	for _, sp := range g.Spawns {
		b.Spawn(sp.Template, sp.Count)
	}

	level, err := b.Build()
	if err != nil {
		return fmt.Errorf("setup level: %w", err)
	}

	s.AddMap(level.Map)
	for _, p := range level.Entities {
		s.registry.AddEntityToGroup(p.Group, p.Entity)
	}

	player := dungeon.NewPlayer(g.PlayerName, level.Start)
	s.registry.SetPlayer(s.registry.AddEntityToGroup(domain.GroupPlayer, player))
	s.trackPlayer()

	s.log.WithFields(logrus.Fields{
		"map":      level.Map.Name,
		"entities": s.registry.Len(),
		"start":    level.Start,
	}).Info("Level ready.")
	return nil
}

// --- ОКНО ПРОСМОТРА ---

// UpdateViewport центрирует окно на tracked. Если окно изменилось,
// пересчитывается поле зрения и сбрасывается кэш отрисовки карты.
func (s *Service) UpdateViewport(tracked domain.Point) domain.Dimension {
	if s.current == nil {
		return domain.Dimension{}
	}
	dim, changed := s.viewport.Update(tracked, s.current.Size())
	if changed {
		systems.UpdateFieldOfView(s.current, tracked, systems.FOVOptions{MaxDistance: s.cfg.Game.FOVDistance})
		s.current.TriggerRedraw()
	}
	return dim
}

func (s *Service) IsWithinViewport(x, y int) bool {
	return s.viewport.Contains(x, y)
}

func (s *Service) Viewport() domain.Dimension { return s.viewport.Current() }

func (s *Service) trackPlayer() {
	if p, ok := s.registry.PlayerPosition(); ok {
		s.UpdateViewport(p)
	}
}

// --- ПОИСК ПУТИ ---

// FindPath - путь по текущей карте от start до goal включительно или nil.
func (s *Service) FindPath(start, goal domain.Point) []domain.Point {
	if s.current == nil {
		return nil
	}
	path := systems.FindPath(s.current.Cells(), systems.CellOf(start), systems.CellOf(goal))
	if len(path) == 0 {
		return nil
	}
	return systems.PathToPoints(path)
}

// --- УВЕДОМЛЕНИЯ ---

// ForceRedraw заставляет следующий кадр отправить клетки окна заново.
func (s *Service) ForceRedraw() {
	if s.current != nil {
		s.current.TriggerRedraw()
	}
}

func (s *Service) ForEachOverlapping(excludeName string, p domain.Point, fn func(domain.Overlap)) int {
	return s.registry.ForEachOverlapping(excludeName, p, fn)
}

// BlockedPoint ищет в группе сущность, преграждающую шаг из (x, y) в направлении dir.
// Найденная преграда запрашивает перерисовку.
func (s *Service) BlockedPoint(group string, x, y int, dir enums.Direction) (domain.BlockedPoint, bool) {
	bp, ok := s.registry.BlockedBy(group, domain.Point{X: x, Y: y}, dir)
	if ok {
		s.ForceRedraw()
	}
	return bp, ok
}

// --- ЗВУК И ЛОГИ ---

// PlaySound проигрывает звук и добавляет его в следующий кадр.
func (s *Service) PlaySound(name string) {
	s.sounds = append(s.sounds, name)
	if s.sound == nil {
		return
	}
	if err := s.sound.Play(name); err != nil {
		s.log.WithError(err).WithField("sound", name).Warn("Sound playback failed.")
	}
}

func (s *Service) AddLog(text, logType string) {
	now := time.Now()
	s.logs = append(s.logs, api.LogEntry{
		ID:        fmt.Sprintf("%d-%d", s.frame, len(s.logs)),
		Text:      text,
		Type:      logType,
		Timestamp: now.UnixMilli(),
	})
}

// --- КОМАНДЫ ---

// ProcessCommand принимает команду от внешнего мира (WebSocket, терминал).
// Блокировки нет: при переполненной очереди команда отбрасывается.
func (s *Service) ProcessCommand(session string, cmd api.ClientCommand) error {
	action := domain.ParseAction(cmd.Action)
	if action == domain.ActionUnknown {
		return fmt.Errorf("%w: %q", ErrUnknownVerb, cmd.Action)
	}

	select {
	case s.Commands <- domain.InternalCommand{Action: action, Session: session, Payload: cmd.Payload}:
		return nil
	default:
		s.log.WithField("session", session).Warn("Command queue full, command dropped.")
		return ErrQueueFull
	}
}

func (s *Service) drainCommands() []domain.InternalCommand {
	var out []domain.InternalCommand
	for {
		select {
		case cmd := <-s.Commands:
			out = append(out, cmd)
		default:
			return out
		}
	}
}

// executeCommand выполняет хендлер от имени игрока и пишет логи
func (s *Service) executeCommand(cmd domain.InternalCommand) {
	handler, ok := s.handlers[cmd.Action]
	if !ok || s.current == nil {
		return
	}
	actor, ok := s.registry.Player()
	if !ok {
		return
	}

	ctx := handlers.Context{
		Map:      s.current,
		Registry: s.registry,
		Spatial:  s.Spatial(),
		Actor:    actor,
	}

	result, err := handler(ctx, cmd.Payload)
	if err != nil {
		s.log.WithError(err).WithFields(logrus.Fields{
			"action":  cmd.Action.String(),
			"session": cmd.Session,
		}).Warn("Command rejected.")
		s.AddLog(err.Error(), "ERROR")
		return
	}

	if result.Msg != "" {
		msgType := result.MsgType
		if msgType == "" {
			msgType = "INFO"
		}
		s.AddLog(result.Msg, msgType)
	}
	for _, snd := range result.Sounds {
		s.PlaySound(snd)
	}
}

// --- ЦИКЛ ---

// Step выполняет кадр с накопленными командами и рассылает снимок подписчикам.
func (s *Service) Step(now time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.RunFrame(FrameInput{Now: now, Commands: s.drainCommands()}); err != nil {
		return err
	}

	snap := s.BuildSnapshot()
	if s.Hub.SubscriberCount() > 0 {
		s.Hub.Broadcast(snap)
	}
	return nil
}

// Run крутит кадры с частотой FrameRate до отмены ctx или ошибки системы.
func (s *Service) Run(ctx context.Context) error {
	ticker := time.NewTicker(s.cfg.FrameInterval())
	defer ticker.Stop()

	s.log.WithField("fps", s.cfg.Game.FrameRate).Info("Simulation loop started.")
	for {
		select {
		case <-ctx.Done():
			s.log.Info("Simulation loop stopped.")
			return nil
		case now := <-ticker.C:
			if err := s.Step(now); err != nil {
				s.log.WithError(err).Error("Simulation loop aborted.")
				return err
			}
		}
	}
}

// Inspect дает другим горутинам согласованный доступ к состоянию между кадрами.
func (s *Service) Inspect(fn func(s *Service)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	fn(s)
}
