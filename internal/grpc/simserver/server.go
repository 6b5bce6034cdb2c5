package simserver

import (
	"context"
	"errors"
	"fmt"
	"math"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/mitchelldurbincs/CreatureSim/internal/game"
	"github.com/mitchelldurbincs/CreatureSim/internal/game/core"
	"github.com/mitchelldurbincs/CreatureSim/internal/game/events"
	"github.com/mitchelldurbincs/CreatureSim/internal/game/states"
)

// TypeWatchStarted is the first message of every WatchEvents stream. It is
// sent once the stream is subscribed, so nothing published after it is missed.
const TypeWatchStarted = "watch.started"

const defaultStreamBuffer = 256

const streamComponent = "event_streams"

// ComponentTracker is told when long-lived stream handlers start and finish.
type ComponentTracker interface {
	AdjustComponent(name string, delta int)
}

// Server implements SimulationServiceServer over a Runner
type Server struct {
	runner       *Runner
	bus          *events.EventBus
	logger       zerolog.Logger
	streamBuffer int
	tracker      ComponentTracker
}

// NewServer creates a new simulation server
func NewServer(runner *Runner, bus *events.EventBus, logger zerolog.Logger) *Server {
	return &Server{
		runner:       runner,
		bus:          bus,
		logger:       logger.With().Str("component", "simserver").Logger(),
		streamBuffer: defaultStreamBuffer,
	}
}

// SetTracker reports open event streams to t
func (s *Server) SetTracker(t ComponentTracker) {
	s.tracker = t
}

// GetStats returns a per-owner summary of the simulation
func (s *Server) GetStats(ctx context.Context, _ *emptypb.Empty) (*structpb.Struct, error) {
	stats := s.runner.Stats()
	owners := make([]any, 0, len(stats.Owners))
	for _, id := range stats.OwnerIDs() {
		o := stats.Owners[id]
		owners = append(owners, map[string]any{
			"owner":         id,
			"creatures":     o.Creatures,
			"gold_carried":  o.GoldCarried,
			"gold_stored":   o.GoldStored,
			"tiles_claimed": o.TilesClaimed,
			"total_levels":  o.TotalLevels,
		})
	}
	return newStruct(map[string]any{
		"tick":   stats.Tick,
		"living": stats.Living,
		"died":   stats.Died,
		"phase":  s.runner.Phase().String(),
		"owners": owners,
	})
}

// Render returns the map as text. Set "color" to get ANSI colors.
func (s *Server) Render(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	color := req.GetFields()["color"].GetBoolValue()
	out, tick := s.runner.Render(color)
	return newStruct(map[string]any{"tick": tick, "map": out})
}

// Pause suspends ticking; an optional "reason" is recorded
func (s *Server) Pause(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	if err := s.runner.Pause(reasonOf(req, "paused over gRPC")); err != nil {
		return nil, toStatus(err)
	}
	return newStruct(map[string]any{"phase": s.runner.Phase().String()})
}

// Resume restarts ticking after a pause
func (s *Server) Resume(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	if err := s.runner.Resume(reasonOf(req, "resumed over gRPC")); err != nil {
		return nil, toStatus(err)
	}
	return newStruct(map[string]any{"phase": s.runner.Phase().String()})
}

// MarkForDigging sets or clears a dig mark. It takes "owner", "x", "y" and
// an optional "marked" that defaults to true.
func (s *Server) MarkForDigging(ctx context.Context, req *structpb.Struct) (*emptypb.Empty, error) {
	owner, err := intField(req, "owner")
	if err != nil {
		return nil, err
	}
	x, err := intField(req, "x")
	if err != nil {
		return nil, err
	}
	y, err := intField(req, "y")
	if err != nil {
		return nil, err
	}
	marked := true
	if v, ok := req.GetFields()["marked"]; ok {
		marked = v.GetBoolValue()
	}

	if err := s.runner.MarkForDigging(owner, x, y, marked); err != nil {
		return nil, toStatus(err)
	}
	return &emptypb.Empty{}, nil
}

// WatchEvents streams simulation events until the client goes away. An
// optional "types" list restricts which event types are sent. Events are
// dropped rather than stalling the simulation when the client falls behind.
func (s *Server) WatchEvents(req *structpb.Struct, stream EventStream) error {
	var types []string
	for _, v := range req.GetFields()["types"].GetListValue().GetValues() {
		types = append(types, v.GetStringValue())
	}

	sub := newStreamSubscriber(uuid.NewString(), types, s.streamBuffer)
	s.bus.Subscribe(sub)
	defer s.bus.Unsubscribe(sub.ID())
	if s.tracker != nil {
		s.tracker.AdjustComponent(streamComponent, 1)
		defer s.tracker.AdjustComponent(streamComponent, -1)
	}

	logger := s.logger.With().Str("subscriber_id", sub.ID()).Logger()
	logger.Info().Strs("types", types).Msg("Event stream opened")

	hello, err := newStruct(map[string]any{"type": TypeWatchStarted})
	if err != nil {
		return err
	}
	if err := stream.Send(hello); err != nil {
		return err
	}

	ctx := stream.Context()
	for {
		select {
		case <-ctx.Done():
			logger.Info().Int("dropped", sub.Dropped()).Msg("Event stream closed")
			return nil
		case msg := <-sub.ch:
			if err := stream.Send(msg); err != nil {
				logger.Warn().Err(err).Msg("Failed to send event")
				return err
			}
		}
	}
}

func newStruct(fields map[string]any) (*structpb.Struct, error) {
	out, err := structpb.NewStruct(fields)
	if err != nil {
		return nil, status.Errorf(codes.Internal, "encoding response: %v", err)
	}
	return out, nil
}

func reasonOf(req *structpb.Struct, fallback string) string {
	if r := req.GetFields()["reason"].GetStringValue(); r != "" {
		return r
	}
	return fallback
}

func intField(req *structpb.Struct, key string) (int, error) {
	v, ok := req.GetFields()[key]
	if !ok {
		return 0, status.Errorf(codes.InvalidArgument, "missing field %q", key)
	}
	n, ok := v.GetKind().(*structpb.Value_NumberValue)
	if !ok || n.NumberValue != math.Trunc(n.NumberValue) {
		return 0, status.Errorf(codes.InvalidArgument, "field %q must be an integer", key)
	}
	return int(n.NumberValue), nil
}

// toStatus maps domain errors onto gRPC codes
func toStatus(err error) error {
	switch {
	case errors.Is(err, core.ErrInvalidCoordinates),
		errors.Is(err, core.ErrInvalidOwner),
		errors.Is(err, core.ErrNotDiggable):
		return status.Error(codes.InvalidArgument, err.Error())
	case errors.Is(err, states.ErrInvalidTransition),
		errors.Is(err, game.ErrNotRunning):
		return status.Error(codes.FailedPrecondition, err.Error())
	default:
		return status.Error(codes.Internal, fmt.Sprintf("simulation error: %v", err))
	}
}
