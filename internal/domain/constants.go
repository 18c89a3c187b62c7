package domain

// Значения клеток карты. Одна конвенция для генератора, FOV, A* и запросов.
const (
	CellWall  = 0
	CellFloor = 1
)

// Значения карты освещенности.
const (
	LightUnseen  = 0
	LightVisible = 1
)

// ValueNotFound - результат обобщенного чтения компонента, если значение отсутствует.
const ValueNotFound = -1

// Стандартные группы сущностей. Набор групп открыт.
const (
	GroupPlayer = "player"
	GroupMobs   = "mobs"
	GroupItems  = "items"
	GroupOther  = "other"
)

// Параметры восприятия мобов.
const (
	VisionRadius = 8
	AggroRadius  = 10
)
