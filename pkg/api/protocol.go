package api

import (
	"encoding/json"
)

// --- СЕРВЕР -> КЛИЕНТ ---

// FrameSnapshot это корневой объект, который сервер отправляет клиенту после кадра.
// Он содержит только то, что попадает в текущее окно просмотра.
type FrameSnapshot struct {
	// Type тип сообщения. На данный момент всегда "FRAME".
	Type string `json:"type"`

	// Frame число кадров, выполненных к моменту снимка.
	Frame int `json:"frame"`

	// Map имя активной карты.
	Map string `json:"map"`

	// Grid метаданные о размере всей карты.
	Grid *GridMeta `json:"grid,omitempty"`

	// Viewport текущее окно просмотра.
	Viewport ViewportView `json:"viewport"`

	// Tiles клетки окна. Пусто, если окно не изменилось с прошлой отрисовки:
	// клиент переиспользует последний полученный набор.
	Tiles []TileView `json:"tiles,omitempty"`

	// Entities сущности внутри окна.
	Entities []EntityView `json:"entities,omitempty"`

	// Sounds имена звуков, запрошенных за кадр.
	Sounds []string `json:"sounds,omitempty"`

	// Logs новые сообщения с прошлого кадра.
	Logs []LogEntry `json:"logs,omitempty"`
}

// GridMeta содержит общие размеры карты.
type GridMeta struct {
	Width  int `json:"w"`
	Height int `json:"h"`
}

// ViewportView - левый верхний угол и дальний край окна, плюс отслеживаемая точка.
type ViewportView struct {
	X      int `json:"x"`
	Y      int `json:"y"`
	Right  int `json:"right"`
	Bottom int `json:"bottom"`
	FocusX int `json:"focusX"`
	FocusY int `json:"focusY"`
}

// TileView это DTO для одной клетки окна.
type TileView struct {
	X int `json:"x"`
	Y int `json:"y"`

	// Symbol и Color - визуальное представление клетки.
	Symbol string `json:"symbol"`
	Color  string `json:"color"`

	IsWall bool `json:"isWall"`

	// IsVisible true, если клетка освещена последним расчетом поля зрения.
	IsVisible bool `json:"isVisible"`
}

// EntityView это DTO для сущности.
type EntityView struct {
	ID       string `json:"id"`
	Group    string `json:"group"`
	Name     string `json:"name"`
	FullName string `json:"fullName"`

	Pos struct {
		X int `json:"x"`
		Y int `json:"y"`
	} `json:"pos"`

	Render struct {
		Symbol string `json:"symbol"`
		Color  string `json:"color"`
	} `json:"render"`

	// Values целочисленные значения компонентов (health, score, ...).
	Values map[string]int `json:"values,omitempty"`

	// Inventory содержимое инвентаря: имя -> количество.
	Inventory map[string]int `json:"inventory,omitempty"`
}

// LogEntry представляет одну запись в игровом логе.
type LogEntry struct {
	ID        string `json:"id"`
	Text      string `json:"text"`
	Type      string `json:"type"`      // INFO, COMBAT, ERROR
	Timestamp int64  `json:"timestamp"` // Unix milliseconds
}

// --- КЛИЕНТ -> СЕРВЕР ---

// ClientCommand это корневой объект для всех сообщений от клиента к серверу.
type ClientCommand struct {
	// Action название действия: MOVE, WAIT, REDRAW.
	Action string `json:"action"`

	// Payload JSON-объект с данными для действия. Его структура зависит от Action.
	Payload json.RawMessage `json:"payload,omitempty"`
}

// --- Payloads ---

// DirectionPayload используется для MOVE.
type DirectionPayload struct {
	Direction string `json:"direction"` // UP, DOWN, LEFT, RIGHT
}
