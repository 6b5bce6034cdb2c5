package simserver

import (
	"context"
	"net"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/status"
	"google.golang.org/grpc/test/bufconn"
	"google.golang.org/protobuf/types/known/emptypb"

	"github.com/mitchelldurbincs/CreatureSim/internal/game"
	"github.com/mitchelldurbincs/CreatureSim/internal/game/events"
	"github.com/mitchelldurbincs/CreatureSim/internal/testutil"
)

type testHarness struct {
	engine  *game.Engine
	runner  *Runner
	server  *Server
	client  *Client
	tracker *countingTracker
}

type countingTracker struct {
	mu     sync.Mutex
	counts map[string]int
}

func (c *countingTracker) AdjustComponent(name string, delta int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.counts[name] += delta
}

func (c *countingTracker) count(name string) int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.counts[name]
}

func newTestHarness(t *testing.T) *testHarness {
	t.Helper()
	engine := newTestEngine(t)
	runner := NewRunner(engine, time.Millisecond, 0, testutil.NopLogger())

	lis := bufconn.Listen(1 << 20)
	srv := grpc.NewServer(ServerOptions(testutil.NopLogger())...)
	tracker := &countingTracker{counts: map[string]int{}}
	server := NewServer(runner, engine.EventBus(), testutil.NopLogger())
	server.SetTracker(tracker)
	RegisterSimulationServiceServer(srv, server)
	go func() { _ = srv.Serve(lis) }()
	t.Cleanup(srv.Stop)

	conn, err := grpc.NewClient("passthrough:///bufnet",
		grpc.WithContextDialer(func(ctx context.Context, _ string) (net.Conn, error) {
			return lis.DialContext(ctx)
		}),
		grpc.WithTransportCredentials(insecure.NewCredentials()),
	)
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })

	return &testHarness{engine: engine, runner: runner, server: server, client: NewClient(conn), tracker: tracker}
}

func testContext(t *testing.T) context.Context {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	t.Cleanup(cancel)
	return ctx
}

func TestServer_GetStats(t *testing.T) {
	h := newTestHarness(t)
	ctx := testContext(t)

	_, err := h.runner.step(ctx)
	require.NoError(t, err)

	stats, err := h.client.GetStats(ctx)
	require.NoError(t, err)
	fields := stats.AsMap()
	assert.Equal(t, float64(1), fields["tick"])
	assert.Equal(t, float64(6), fields["living"])
	assert.Equal(t, "Running", fields["phase"])

	owners, ok := fields["owners"].([]any)
	require.True(t, ok)
	require.Len(t, owners, 2)
	first := owners[0].(map[string]any)
	assert.Equal(t, float64(0), first["owner"])
	assert.Equal(t, float64(3), first["creatures"])
}

func TestServer_Render(t *testing.T) {
	h := newTestHarness(t)

	resp, err := h.client.Render(testContext(t), false)
	require.NoError(t, err)
	fields := resp.AsMap()
	assert.Equal(t, float64(0), fields["tick"])
	out, ok := fields["map"].(string)
	require.True(t, ok)
	assert.Contains(t, out, "R=rock")
	assert.NotContains(t, out, "\x1b[")
}

func TestServer_PauseResume(t *testing.T) {
	h := newTestHarness(t)
	ctx := testContext(t)

	resp, err := h.client.Pause(ctx, "inspection")
	require.NoError(t, err)
	assert.Equal(t, "Paused", resp.AsMap()["phase"])

	_, err = h.client.Pause(ctx, "again")
	assert.Equal(t, codes.FailedPrecondition, status.Code(err))

	resp, err = h.client.Resume(ctx, "")
	require.NoError(t, err)
	assert.Equal(t, "Running", resp.AsMap()["phase"])

	_, err = h.client.Resume(ctx, "")
	assert.Equal(t, codes.FailedPrecondition, status.Code(err))
}

func TestServer_MarkForDigging(t *testing.T) {
	h := newTestHarness(t)
	base := h.engine.Bases()[0]
	wx, wy := base.Center.X, base.Center.Y-base.Radius-1

	tests := []struct {
		name     string
		owner    int
		x, y     int
		marked   bool
		wantCode codes.Code
	}{
		{name: "clear mark", owner: 0, x: wx, y: wy, marked: false, wantCode: codes.OK},
		{name: "set mark", owner: 0, x: wx, y: wy, marked: true, wantCode: codes.OK},
		{name: "off the map", owner: 0, x: -1, y: wy, marked: true, wantCode: codes.InvalidArgument},
		{name: "undiggable rock", owner: 0, x: 0, y: 0, marked: true, wantCode: codes.InvalidArgument},
		{name: "bad owner", owner: 99, x: wx, y: wy, marked: true, wantCode: codes.InvalidArgument},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := h.client.MarkForDigging(testContext(t), tt.owner, tt.x, tt.y, tt.marked)
			assert.Equal(t, tt.wantCode, status.Code(err))
		})
	}
	assert.True(t, h.engine.Grid().Tile(wx, wy).IsMarkedBy(0))
}

func TestServer_MarkForDiggingRequiresIntegers(t *testing.T) {
	h := newTestHarness(t)
	ctx := testContext(t)

	in, err := newStruct(map[string]any{"owner": 0, "x": 1.5, "y": 2})
	require.NoError(t, err)
	err = h.client.cc.Invoke(ctx, methodMarkForDigging, in, new(emptypb.Empty))
	assert.Equal(t, codes.InvalidArgument, status.Code(err))

	in, err = newStruct(map[string]any{"owner": 0, "x": 1})
	require.NoError(t, err)
	err = h.client.cc.Invoke(ctx, methodMarkForDigging, in, new(emptypb.Empty))
	assert.Equal(t, codes.InvalidArgument, status.Code(err))
}

func TestServer_WatchEvents(t *testing.T) {
	h := newTestHarness(t)
	ctx := testContext(t)

	recv, err := h.client.WatchEvents(ctx, []string{events.TypeTickStarted})
	require.NoError(t, err)

	hello, err := recv.Recv()
	require.NoError(t, err)
	assert.Equal(t, TypeWatchStarted, hello.AsMap()["type"])

	_, err = h.runner.step(ctx)
	require.NoError(t, err)

	msg, err := recv.Recv()
	require.NoError(t, err)
	fields := msg.AsMap()
	assert.Equal(t, events.TypeTickStarted, fields["type"])
	assert.Equal(t, h.engine.SimID(), fields["sim_id"])
}

func TestServer_WatchEventsTracksStreams(t *testing.T) {
	h := newTestHarness(t)
	ctx, cancel := context.WithCancel(testContext(t))

	recv, err := h.client.WatchEvents(ctx, nil)
	require.NoError(t, err)
	_, err = recv.Recv()
	require.NoError(t, err)
	assert.Equal(t, 1, h.tracker.count(streamComponent))

	cancel()
	assert.Eventually(t, func() bool {
		return h.tracker.count(streamComponent) == 0
	}, 5*time.Second, 5*time.Millisecond)
}

func TestToStatus(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want codes.Code
	}{
		{name: "not running", err: game.ErrNotRunning, want: codes.FailedPrecondition},
		{name: "blocked spawn", err: game.ErrBlockedSpawn, want: codes.Internal},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, status.Code(toStatus(tt.err)))
		})
	}
}
