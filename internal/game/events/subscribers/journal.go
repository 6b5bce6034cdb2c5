package subscribers

import (
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/mitchelldurbincs/CreatureSim/internal/game/events"
	"github.com/rs/zerolog"
	"google.golang.org/protobuf/encoding/protojson"
	"google.golang.org/protobuf/types/known/structpb"
	"google.golang.org/protobuf/types/known/timestamppb"
)

// JournalSubscriber appends every event to w as one protojson object per
// line, for external renderers and replay tooling.
type JournalSubscriber struct {
	id              string
	w               io.Writer
	mu              sync.Mutex
	logger          zerolog.Logger
	eventTypeFilter map[string]bool
	marshal         protojson.MarshalOptions
	written         int
}

// NewJournalSubscriber creates a journal writing to w.
func NewJournalSubscriber(id string, w io.Writer, logger zerolog.Logger) *JournalSubscriber {
	return &JournalSubscriber{
		id:      id,
		w:       w,
		logger:  logger.With().Str("subscriber", "journal").Logger(),
		marshal: protojson.MarshalOptions{UseProtoNames: true},
	}
}

func (js *JournalSubscriber) ID() string { return js.id }

// SetEventFilter sets which event types to record (nil means all)
func (js *JournalSubscriber) SetEventFilter(eventTypes []string) {
	js.eventTypeFilter = typeFilter(eventTypes)
}

func (js *JournalSubscriber) InterestedIn(eventType string) bool {
	if js.eventTypeFilter == nil {
		return true
	}
	return js.eventTypeFilter[eventType]
}

// HandleEvent writes the event. Failures are logged, never returned to the
// publisher.
func (js *JournalSubscriber) HandleEvent(event events.Event) {
	line, err := js.encode(event)
	if err != nil {
		js.logger.Warn().Err(err).Str("event_type", event.Type()).Msg("Failed to encode journal entry")
		return
	}

	js.mu.Lock()
	defer js.mu.Unlock()
	if _, err := js.w.Write(append(line, '\n')); err != nil {
		js.logger.Warn().Err(err).Str("event_type", event.Type()).Msg("Failed to write journal entry")
		return
	}
	js.written++
}

// Written is the number of entries successfully written.
func (js *JournalSubscriber) Written() int {
	js.mu.Lock()
	defer js.mu.Unlock()
	return js.written
}

func (js *JournalSubscriber) encode(event events.Event) ([]byte, error) {
	record, err := EncodeEvent(event)
	if err != nil {
		return nil, err
	}
	return js.marshal.Marshal(record)
}

// EncodeEvent flattens an event into a protobuf Struct with its type, sim id,
// RFC 3339 timestamp and payload.
func EncodeEvent(event events.Event) (*structpb.Struct, error) {
	ts := timestamppb.New(event.Timestamp())
	if err := ts.CheckValid(); err != nil {
		return nil, fmt.Errorf("timestamp: %w", err)
	}

	fields := map[string]any{
		"type":      event.Type(),
		"sim_id":    event.SimID(),
		"timestamp": ts.AsTime().Format(time.RFC3339Nano),
	}
	if payload := event.Payload(); len(payload) > 0 {
		fields["payload"] = payload
	}

	record, err := structpb.NewStruct(fields)
	if err != nil {
		return nil, fmt.Errorf("payload: %w", err)
	}
	return record, nil
}
