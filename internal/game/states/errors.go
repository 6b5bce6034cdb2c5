package states

import "errors"

var (
	ErrInvalidTransition = errors.New("invalid phase transition")
	ErrUnknownPhase      = errors.New("unknown phase")
	ErrNoState           = errors.New("no state registered for phase")
)
