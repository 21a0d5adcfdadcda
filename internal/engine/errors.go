package engine

import "errors"

// Rejection reasons returned by engine operations. Every operation is
// total: on error the game state is left untouched and the caller may
// retry with corrected input.
var (
	ErrInvalidPhase      = errors.New("operation not legal in current phase")
	ErrInvalidActor      = errors.New("caller is not the required actor")
	ErrInvalidTarget     = errors.New("invalid target player")
	ErrInvalidIndex      = errors.New("hand index out of range")
	ErrInvalidAction     = errors.New("executive action not offered")
	ErrInsufficientCards = errors.New("not enough policy cards to draw")
	ErrGameFull          = errors.New("game already has the maximum number of players")
	ErrNameTaken         = errors.New("player name already in use")
	ErrRosterSize        = errors.New("game requires between 5 and 10 players")
)
