package api

import (
	"errors"
	"strings"
)

var ErrBadDirection = errors.New("direction must be one of UP, DOWN, LEFT, RIGHT")

// Validator - интерфейс, который могут реализовать DTO
type Validator interface {
	Validate() error
}

func (p DirectionPayload) Validate() error {
	switch strings.ToUpper(strings.TrimSpace(p.Direction)) {
	case "UP", "DOWN", "LEFT", "RIGHT":
		return nil
	}
	return ErrBadDirection
}
