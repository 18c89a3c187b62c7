package enums

import "strings"

type Direction uint8

const (
	DirectionNone Direction = iota
	DirectionUp
	DirectionDown
	DirectionLeft
	DirectionRight
)

var directionToString = map[Direction]string{
	DirectionUp:    "UP",
	DirectionDown:  "DOWN",
	DirectionLeft:  "LEFT",
	DirectionRight: "RIGHT",
}

var directionStringToType = map[string]Direction{
	"UP":    DirectionUp,
	"DOWN":  DirectionDown,
	"LEFT":  DirectionLeft,
	"RIGHT": DirectionRight,
}

// Delta возвращает смещение (dx, dy) для направления.
func (d Direction) Delta() (int, int) {
	switch d {
	case DirectionUp:
		return 0, -1
	case DirectionDown:
		return 0, 1
	case DirectionLeft:
		return -1, 0
	case DirectionRight:
		return 1, 0
	}
	return 0, 0
}

func (d Direction) String() string {
	if val, ok := directionToString[d]; ok {
		return val
	}
	return "NONE"
}

func ParseDirection(s string) Direction {
	if val, ok := directionStringToType[strings.ToUpper(s)]; ok {
		return val
	}
	return DirectionNone
}
