package enums

// OccupantKind - кто занимает проверяемую клетку.
type OccupantKind uint8

const (
	OccupantGround OccupantKind = iota
	OccupantWall
	OccupantPlayer
	OccupantEntity
)

var occupantKindToString = map[OccupantKind]string{
	OccupantGround: "GROUND",
	OccupantWall:   "WALL",
	OccupantPlayer: "PLAYER",
	OccupantEntity: "ENTITY",
}

func (o OccupantKind) String() string {
	if val, ok := occupantKindToString[o]; ok {
		return val
	}
	return "UNKNOWN"
}
