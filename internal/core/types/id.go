package types

import (
	"fmt"
	"strconv"
)

// ID - 64-битный дескриптор объекта в арене (сущности, карты).
//
// Формат битов (от старших к младшим):
//
//	[ Arena (8) | Generation (24) | Index (32) ]
//
// Index - номер слота в арене, Generation - версия слота, увеличивается
// при каждом освобождении. Устаревший дескриптор не совпадает с новым
// владельцем слота, поэтому идентификаторы уникальны в пределах запуска.
type ID uint64

// NilID - отсутствующий объект.
const NilID ID = 0

// Arena - вид арены, которой принадлежит дескриптор.
type Arena uint8

const (
	ArenaNone Arena = iota
	ArenaEntity
	ArenaMap
)

func (a Arena) String() string {
	switch a {
	case ArenaEntity:
		return "entity"
	case ArenaMap:
		return "map"
	default:
		return "none"
	}
}

const (
	bitsIndex = 32
	bitsGen   = 24
	bitsArena = 8

	shiftGen   = bitsIndex
	shiftArena = bitsIndex + bitsGen

	maskIndex = (1 << bitsIndex) - 1
	maskGen   = (1 << bitsGen) - 1
	maskArena = (1 << bitsArena) - 1
)

// MaxGeneration - предельное значение поколения, которое помещается в дескриптор.
const MaxGeneration = maskGen

// PackID собирает дескриптор. gen обрезается до 24 бит.
func PackID(arena Arena, gen uint32, index uint32) ID {
	return ID(
		(uint64(arena)&maskArena)<<shiftArena |
			(uint64(gen)&maskGen)<<shiftGen |
			uint64(index),
	)
}

func (id ID) Index() uint32 {
	return uint32(id & maskIndex)
}

func (id ID) Generation() uint32 {
	return uint32((id >> shiftGen) & maskGen)
}

func (id ID) Arena() Arena {
	return Arena((id >> shiftArena) & maskArena)
}

func (id ID) IsNil() bool {
	return id == NilID
}

func (id ID) String() string {
	if id.IsNil() {
		return "<nil>"
	}
	return fmt.Sprintf("%s#%d.%d", id.Arena(), id.Index(), id.Generation())
}

// MarshalJSON пишет ID строкой: JavaScript-клиенты теряют точность на uint64.
func (id ID) MarshalJSON() ([]byte, error) {
	return []byte(`"` + strconv.FormatUint(uint64(id), 10) + `"`), nil
}

// UnmarshalJSON принимает строку или число.
func (id *ID) UnmarshalJSON(data []byte) error {
	s := string(data)
	if len(s) > 1 && s[0] == '"' {
		s = s[1 : len(s)-1]
	}
	if s == "" {
		*id = NilID
		return nil
	}

	v, err := strconv.ParseUint(s, 10, 64)
	if err != nil {
		return fmt.Errorf("invalid id %q: %w", s, err)
	}
	*id = ID(v)
	return nil
}
