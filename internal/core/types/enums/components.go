package enums

import "strings"

// ComponentKind - тег варианта компонента.
type ComponentKind uint8

const (
	ComponentUnknown ComponentKind = iota
	ComponentSprite
	ComponentPosition
	ComponentHealth
	ComponentStats
	ComponentScore
	ComponentValue
	ComponentInventory
	ComponentProperties
)

var componentKindToString = map[ComponentKind]string{
	ComponentSprite:     "sprite",
	ComponentPosition:   "position",
	ComponentHealth:     "health",
	ComponentStats:      "stats",
	ComponentScore:      "score",
	ComponentValue:      "value",
	ComponentInventory:  "inventory",
	ComponentProperties: "properties",
}

var componentStringToKind = map[string]ComponentKind{
	"sprite":     ComponentSprite,
	"position":   ComponentPosition,
	"health":     ComponentHealth,
	"stats":      ComponentStats,
	"score":      ComponentScore,
	"value":      ComponentValue,
	"inventory":  ComponentInventory,
	"properties": ComponentProperties,
}

func (k ComponentKind) String() string {
	if val, ok := componentKindToString[k]; ok {
		return val
	}
	return "unknown"
}

// ParseComponentKind принимает как "health", так и "health_component".
func ParseComponentKind(s string) ComponentKind {
	key := strings.TrimSuffix(strings.ToLower(strings.TrimSpace(s)), "_component")
	if val, ok := componentStringToKind[key]; ok {
		return val
	}
	return ComponentUnknown
}
