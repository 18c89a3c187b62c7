package enums

import "strings"

// SystemCategory определяет место системы в кадре.
// Порядок значений совпадает с порядком запуска.
type SystemCategory uint8

const (
	SystemInput SystemCategory = iota
	SystemGeneric
	SystemTick
	SystemRender
)

var systemCategoryToString = map[SystemCategory]string{
	SystemInput:   "input",
	SystemGeneric: "generic",
	SystemTick:    "tick",
	SystemRender:  "render",
}

func (c SystemCategory) String() string {
	if val, ok := systemCategoryToString[c]; ok {
		return val
	}
	return "unknown"
}

// ParseSystemCategory неизвестные имена относит к generic.
func ParseSystemCategory(s string) SystemCategory {
	for k, v := range systemCategoryToString {
		if v == strings.ToLower(s) {
			return k
		}
	}
	return SystemGeneric
}
