package handlers

import (
	"encoding/json"

	"roguely-server/internal/domain"
	"roguely-server/internal/systems"
)

// Context передает хендлеру состояние мира.
// Мы передаем ссылки, чтобы хендлер мог менять состояние (мутировать данные).
type Context struct {
	Map      *domain.Map
	Registry *domain.Registry
	Spatial  *systems.Spatial
	Actor    *domain.Entity // Тот, кто выполняет команду
}

// Result - возвращает результат выполнения команды.
// Хендлер НЕ пишет в логи сервиса напрямую, он возвращает данные.
type Result struct {
	Msg     string   // Текст лога
	MsgType string   // Тип лога (INFO, COMBAT, ERROR)
	Sounds  []string // Звуки, которые нужно проиграть
}

// HandlerFunc - это контракт для любой команды (MOVE, WAIT, REDRAW).
type HandlerFunc func(ctx Context, payload json.RawMessage) (Result, error)

// EmptyResult - вспомогательная функция для пустого успешного ответа
func EmptyResult() Result {
	return Result{}
}
