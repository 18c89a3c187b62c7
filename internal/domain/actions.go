package domain

import "strings"

// ActionType - внутренний идентификатор команды клиента.
type ActionType uint8

const (
	ActionUnknown ActionType = iota
	ActionMove
	ActionWait
	ActionRedraw
)

var actionNames = map[ActionType]string{
	ActionMove:   "MOVE",
	ActionWait:   "WAIT",
	ActionRedraw: "REDRAW",
}

var actionsByName = func() map[string]ActionType {
	m := make(map[string]ActionType, len(actionNames))
	for a, name := range actionNames {
		m[name] = a
	}
	return m
}()

// ParseAction переводит имя действия из JSON в ActionType.
// Регистр и пробелы по краям не важны.
func ParseAction(s string) ActionType {
	if a, ok := actionsByName[strings.ToUpper(strings.TrimSpace(s))]; ok {
		return a
	}
	return ActionUnknown
}

func (a ActionType) String() string {
	if name, ok := actionNames[a]; ok {
		return name
	}
	return "UNKNOWN"
}
