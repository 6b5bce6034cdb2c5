package core

import "errors"

var (
	ErrInvalidCoordinates = errors.New("invalid coordinates")
	ErrInvalidOwner       = errors.New("invalid owner ID")
	ErrNotDiggable        = errors.New("tile cannot be dug")
	ErrUnknownPassability = errors.New("unknown passability class")
)
