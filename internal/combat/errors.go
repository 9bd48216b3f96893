package combat

import "errors"

var (
	// ErrUnknownCharacter means an effect targeted an id outside the battle.
	// It always points at a broken skill definition.
	ErrUnknownCharacter = errors.New("unknown character id")
	ErrInvalidCharacter = errors.New("invalid character")
	ErrInvalidSkill     = errors.New("invalid skill")
	ErrDuplicateSkill   = errors.New("duplicate skill")
	ErrUnknownSkill     = errors.New("unknown skill")
)
