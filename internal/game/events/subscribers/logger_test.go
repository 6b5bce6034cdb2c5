package subscribers_test

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mitchelldurbincs/CreatureSim/internal/game/events"
	"github.com/mitchelldurbincs/CreatureSim/internal/game/events/subscribers"
)

func TestLoggerSubscriber(t *testing.T) {
	var buf bytes.Buffer
	logger := zerolog.New(&buf).With().Timestamp().Logger()

	logSub := subscribers.NewLoggerSubscriber("test-logger", logger, zerolog.InfoLevel)

	assert.Equal(t, "test-logger", logSub.ID())
	assert.True(t, logSub.InterestedIn(events.TypeTickStarted))
	assert.True(t, logSub.InterestedIn("any.event.type"))

	logSub.SetEventFilter([]string{events.TypeTileDug})
	assert.True(t, logSub.InterestedIn(events.TypeTileDug))
	assert.False(t, logSub.InterestedIn(events.TypeTickStarted))

	logSub.SetEventFilter(nil)
	assert.True(t, logSub.InterestedIn(events.TypeTickStarted))
}

func TestLoggerSubscriberEventLogging(t *testing.T) {
	ref := events.CreatureRef{CreatureID: 2, Name: "Kobold_2", Owner: 0}

	testCases := []struct {
		name  string
		event events.Event
		check func(t *testing.T, logLine map[string]interface{})
	}{
		{
			name:  "TickStarted",
			event: events.NewTickStartedEvent("sim-1", 5),
			check: func(t *testing.T, logLine map[string]interface{}) {
				assert.Equal(t, float64(5), logLine["tick"])
			},
		},
		{
			name:  "TileDug",
			event: events.NewTileDugEvent("sim-1", ref, 3, 4, 0.25),
			check: func(t *testing.T, logLine map[string]interface{}) {
				assert.Equal(t, "Kobold_2", logLine["creature"])
				assert.Equal(t, float64(3), logLine["x"])
				assert.Equal(t, 0.25, logLine["fullness"])
			},
		},
		{
			name:  "CreatureAttacked",
			event: events.NewCreatureAttackedEvent("sim-1", ref, 7, 1.5),
			check: func(t *testing.T, logLine map[string]interface{}) {
				assert.Equal(t, float64(7), logLine["target_id"])
				assert.Equal(t, 1.5, logLine["damage"])
			},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			var buf bytes.Buffer
			logSub := subscribers.NewLoggerSubscriber("event-logger", zerolog.New(&buf), zerolog.InfoLevel)

			logSub.HandleEvent(tc.event)

			var logLine map[string]interface{}
			require.NoError(t, json.Unmarshal(buf.Bytes(), &logLine))
			assert.Equal(t, "Simulation event", logLine["message"])
			assert.Equal(t, "info", logLine["level"])
			assert.Equal(t, tc.event.Type(), logLine["event_type"])
			assert.Equal(t, "sim-1", logLine["sim_id"])
			tc.check(t, logLine)
		})
	}
}

func TestLoggerSubscriberDevMode(t *testing.T) {
	var buf bytes.Buffer
	logSub := subscribers.NewLoggerSubscriber("dev", zerolog.New(&buf), zerolog.DebugLevel)
	logSub.SetDevMode(true)

	logSub.HandleEvent(events.NewTickEndedEvent("sim-1", 3, 10, 0))

	var logLine map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &logLine))
	assert.Equal(t, "debug", logLine["level"])
	require.Contains(t, logLine, "event_data")
	data := logLine["event_data"].(map[string]interface{})
	assert.Equal(t, float64(3), data["Tick"])
}
