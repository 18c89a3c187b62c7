package domain

import "encoding/json"

// InternalCommand - команда клиента, переданная в цикл симуляции.
type InternalCommand struct {
	Action  ActionType
	Session string // ID сессии отправителя
	Payload json.RawMessage
}
