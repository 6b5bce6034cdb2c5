package game

import "errors"

var (
	ErrBlockedSpawn    = errors.New("spawn tile is blocked")
	ErrNoSpawnableKind = errors.New("catalog has no species of the requested kind")
	ErrNotRunning      = errors.New("simulation is not running")
)
