package events

import "time"

// Event type constants
const (
	TypeSimulationStarted = "simulation.started"
	TypeTickStarted       = "tick.started"
	TypeTickEnded         = "tick.ended"
	TypeCreatureSpawned   = "creature.spawned"
	TypeCreatureDied      = "creature.died"
	TypeCreatureMoved     = "creature.moved"
	TypeCreatureAnimation = "creature.animation"
	TypeCreatureSound     = "creature.sound"
	TypeCreatureScaled    = "creature.scaled"
	TypeCreatureLeveledUp = "creature.leveled_up"
	TypeCreatureAttacked  = "creature.attacked"
	TypeTileDug           = "tile.dug"
	TypeTileClaimed       = "tile.claimed"
	TypePhaseChanged      = "simulation.phase_changed"
)

// SimulationStartedEvent is published once the world is built
type SimulationStartedEvent struct {
	BaseEvent
	Width, Height int
	Owners        int
	Seed          int64
}

func NewSimulationStartedEvent(simID string, width, height, owners int, seed int64) *SimulationStartedEvent {
	return &SimulationStartedEvent{
		BaseEvent: newBase(TypeSimulationStarted, simID),
		Width:     width,
		Height:    height,
		Owners:    owners,
		Seed:      seed,
	}
}

func (e *SimulationStartedEvent) Payload() map[string]any {
	return map[string]any{"width": e.Width, "height": e.Height, "owners": e.Owners, "seed": e.Seed}
}

// TickStartedEvent is published before any creature acts in a tick
type TickStartedEvent struct {
	BaseEvent
	Tick int
}

func NewTickStartedEvent(simID string, tick int) *TickStartedEvent {
	return &TickStartedEvent{BaseEvent: newBase(TypeTickStarted, simID), Tick: tick}
}

func (e *TickStartedEvent) Payload() map[string]any {
	return map[string]any{"tick": e.Tick}
}

// TickEndedEvent is published after every creature has acted
type TickEndedEvent struct {
	BaseEvent
	Tick          int
	Living        int
	ProcessedTime time.Duration
}

func NewTickEndedEvent(simID string, tick, living int, processed time.Duration) *TickEndedEvent {
	return &TickEndedEvent{
		BaseEvent:     newBase(TypeTickEnded, simID),
		Tick:          tick,
		Living:        living,
		ProcessedTime: processed,
	}
}

func (e *TickEndedEvent) Payload() map[string]any {
	return map[string]any{"tick": e.Tick, "living": e.Living, "process_time_ms": e.ProcessedTime.Milliseconds()}
}

// CreatureRef identifies the creature a presentation event is about
type CreatureRef struct {
	CreatureID int
	Name       string
	Owner      int
}

func (r CreatureRef) fields(m map[string]any) map[string]any {
	m["creature_id"] = r.CreatureID
	m["creature"] = r.Name
	m["owner"] = r.Owner
	return m
}

// CreatureSpawnedEvent is published when a creature enters the map
type CreatureSpawnedEvent struct {
	BaseEvent
	CreatureRef
	Species string
	X, Y    int
}

func NewCreatureSpawnedEvent(simID string, ref CreatureRef, species string, x, y int) *CreatureSpawnedEvent {
	return &CreatureSpawnedEvent{BaseEvent: newBase(TypeCreatureSpawned, simID), CreatureRef: ref, Species: species, X: x, Y: y}
}

func (e *CreatureSpawnedEvent) Payload() map[string]any {
	return e.fields(map[string]any{"species": e.Species, "x": e.X, "y": e.Y})
}

// CreatureDiedEvent is published when a creature is removed from the map
type CreatureDiedEvent struct {
	BaseEvent
	CreatureRef
	X, Y int
}

func NewCreatureDiedEvent(simID string, ref CreatureRef, x, y int) *CreatureDiedEvent {
	return &CreatureDiedEvent{BaseEvent: newBase(TypeCreatureDied, simID), CreatureRef: ref, X: x, Y: y}
}

func (e *CreatureDiedEvent) Payload() map[string]any {
	return e.fields(map[string]any{"x": e.X, "y": e.Y})
}

// CreatureMovedEvent asks a renderer to place a creature
type CreatureMovedEvent struct {
	BaseEvent
	CreatureRef
	X, Y float64
}

func NewCreatureMovedEvent(simID string, ref CreatureRef, x, y float64) *CreatureMovedEvent {
	return &CreatureMovedEvent{BaseEvent: newBase(TypeCreatureMoved, simID), CreatureRef: ref, X: x, Y: y}
}

func (e *CreatureMovedEvent) Payload() map[string]any {
	return e.fields(map[string]any{"x": e.X, "y": e.Y})
}

// CreatureAnimationEvent asks a renderer to switch a creature's animation
type CreatureAnimationEvent struct {
	BaseEvent
	CreatureRef
	Animation string
	Loop      bool
}

func NewCreatureAnimationEvent(simID string, ref CreatureRef, animation string, loop bool) *CreatureAnimationEvent {
	return &CreatureAnimationEvent{BaseEvent: newBase(TypeCreatureAnimation, simID), CreatureRef: ref, Animation: animation, Loop: loop}
}

func (e *CreatureAnimationEvent) Payload() map[string]any {
	return e.fields(map[string]any{"animation": e.Animation, "loop": e.Loop})
}

// CreatureSoundEvent asks for a sound at a creature's position
type CreatureSoundEvent struct {
	BaseEvent
	CreatureRef
	Sound string
	X, Y  float64
}

func NewCreatureSoundEvent(simID string, ref CreatureRef, sound string, x, y float64) *CreatureSoundEvent {
	return &CreatureSoundEvent{BaseEvent: newBase(TypeCreatureSound, simID), CreatureRef: ref, Sound: sound, X: x, Y: y}
}

func (e *CreatureSoundEvent) Payload() map[string]any {
	return e.fields(map[string]any{"sound": e.Sound, "x": e.X, "y": e.Y})
}

// CreatureScaledEvent asks a renderer to grow a creature's model
type CreatureScaledEvent struct {
	BaseEvent
	CreatureRef
	Scale float64
}

func NewCreatureScaledEvent(simID string, ref CreatureRef, scale float64) *CreatureScaledEvent {
	return &CreatureScaledEvent{BaseEvent: newBase(TypeCreatureScaled, simID), CreatureRef: ref, Scale: scale}
}

func (e *CreatureScaledEvent) Payload() map[string]any {
	return e.fields(map[string]any{"scale": e.Scale})
}

// CreatureLeveledUpEvent is published on every level gained
type CreatureLeveledUpEvent struct {
	BaseEvent
	CreatureRef
	Level int
}

func NewCreatureLeveledUpEvent(simID string, ref CreatureRef, level int) *CreatureLeveledUpEvent {
	return &CreatureLeveledUpEvent{BaseEvent: newBase(TypeCreatureLeveledUp, simID), CreatureRef: ref, Level: level}
}

func (e *CreatureLeveledUpEvent) Payload() map[string]any {
	return e.fields(map[string]any{"level": e.Level})
}

// CreatureAttackedEvent records one strike
type CreatureAttackedEvent struct {
	BaseEvent
	CreatureRef
	TargetID int
	Damage   float64
}

func NewCreatureAttackedEvent(simID string, ref CreatureRef, targetID int, damage float64) *CreatureAttackedEvent {
	return &CreatureAttackedEvent{BaseEvent: newBase(TypeCreatureAttacked, simID), CreatureRef: ref, TargetID: targetID, Damage: damage}
}

func (e *CreatureAttackedEvent) Payload() map[string]any {
	return e.fields(map[string]any{"target_id": e.TargetID, "damage": e.Damage})
}

// TileDugEvent is published when a creature removes material from a tile
type TileDugEvent struct {
	BaseEvent
	CreatureRef
	X, Y     int
	Fullness float64
}

func NewTileDugEvent(simID string, ref CreatureRef, x, y int, fullness float64) *TileDugEvent {
	return &TileDugEvent{BaseEvent: newBase(TypeTileDug, simID), CreatureRef: ref, X: x, Y: y, Fullness: fullness}
}

func (e *TileDugEvent) Payload() map[string]any {
	return e.fields(map[string]any{"x": e.X, "y": e.Y, "fullness": e.Fullness})
}

// TileClaimedEvent is published when a creature advances a claim
type TileClaimedEvent struct {
	BaseEvent
	CreatureRef
	X, Y     int
	Progress float64
	Wall     bool
}

func NewTileClaimedEvent(simID string, ref CreatureRef, x, y int, progress float64, wall bool) *TileClaimedEvent {
	return &TileClaimedEvent{BaseEvent: newBase(TypeTileClaimed, simID), CreatureRef: ref, X: x, Y: y, Progress: progress, Wall: wall}
}

func (e *TileClaimedEvent) Payload() map[string]any {
	return e.fields(map[string]any{"x": e.X, "y": e.Y, "progress": e.Progress, "wall": e.Wall})
}

// PhaseChangedEvent is published when the simulation lifecycle moves on
type PhaseChangedEvent struct {
	BaseEvent
	From, To string
	Reason   string
}

func NewPhaseChangedEvent(simID, from, to, reason string) *PhaseChangedEvent {
	return &PhaseChangedEvent{BaseEvent: newBase(TypePhaseChanged, simID), From: from, To: to, Reason: reason}
}

func (e *PhaseChangedEvent) Payload() map[string]any {
	return map[string]any{"from": e.From, "to": e.To, "reason": e.Reason}
}
