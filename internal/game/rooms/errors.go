package rooms

import "errors"

var (
	ErrNoTiles     = errors.New("room needs at least one tile")
	ErrTileInRoom  = errors.New("tile already belongs to a room")
	ErrUnknownKind = errors.New("unknown room kind")
)
