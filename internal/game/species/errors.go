package species

import "errors"

var (
	ErrMissingClassName  = errors.New("species definition has no class name")
	ErrInvalidDefinition = errors.New("invalid species definition")
	ErrDuplicateSpecies  = errors.New("duplicate species")
	ErrUnknownSpecies    = errors.New("unknown species")
)
