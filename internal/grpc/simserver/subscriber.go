package simserver

import (
	"sync/atomic"

	"google.golang.org/protobuf/types/known/structpb"

	"github.com/mitchelldurbincs/CreatureSim/internal/game/events"
	"github.com/mitchelldurbincs/CreatureSim/internal/game/events/subscribers"
)

// streamSubscriber hands encoded events to one WatchEvents stream. It never
// blocks the publisher: when the buffer is full the event is dropped.
type streamSubscriber struct {
	id      string
	filter  map[string]bool
	ch      chan *structpb.Struct
	dropped atomic.Int64
}

func newStreamSubscriber(id string, types []string, buffer int) *streamSubscriber {
	s := &streamSubscriber{id: id, ch: make(chan *structpb.Struct, buffer)}
	if len(types) > 0 {
		s.filter = make(map[string]bool, len(types))
		for _, t := range types {
			s.filter[t] = true
		}
	}
	return s
}

func (s *streamSubscriber) ID() string { return s.id }

func (s *streamSubscriber) InterestedIn(eventType string) bool {
	return s.filter == nil || s.filter[eventType]
}

func (s *streamSubscriber) HandleEvent(event events.Event) {
	msg, err := subscribers.EncodeEvent(event)
	if err != nil {
		s.dropped.Add(1)
		return
	}
	select {
	case s.ch <- msg:
	default:
		s.dropped.Add(1)
	}
}

// Dropped is how many events never reached the stream.
func (s *streamSubscriber) Dropped() int { return int(s.dropped.Load()) }
