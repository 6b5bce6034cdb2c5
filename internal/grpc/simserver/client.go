package simserver

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/structpb"
)

// Client calls SimulationService over an existing connection
type Client struct {
	cc grpc.ClientConnInterface
}

func NewClient(cc grpc.ClientConnInterface) *Client {
	return &Client{cc: cc}
}

func (c *Client) GetStats(ctx context.Context, opts ...grpc.CallOption) (*structpb.Struct, error) {
	out := new(structpb.Struct)
	if err := c.cc.Invoke(ctx, methodGetStats, &emptypb.Empty{}, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) Render(ctx context.Context, color bool, opts ...grpc.CallOption) (*structpb.Struct, error) {
	return c.invokeStruct(ctx, methodRender, map[string]any{"color": color}, opts...)
}

func (c *Client) Pause(ctx context.Context, reason string, opts ...grpc.CallOption) (*structpb.Struct, error) {
	return c.invokeStruct(ctx, methodPause, map[string]any{"reason": reason}, opts...)
}

func (c *Client) Resume(ctx context.Context, reason string, opts ...grpc.CallOption) (*structpb.Struct, error) {
	return c.invokeStruct(ctx, methodResume, map[string]any{"reason": reason}, opts...)
}

func (c *Client) MarkForDigging(ctx context.Context, owner, x, y int, marked bool, opts ...grpc.CallOption) error {
	in, err := structpb.NewStruct(map[string]any{"owner": owner, "x": x, "y": y, "marked": marked})
	if err != nil {
		return err
	}
	return c.cc.Invoke(ctx, methodMarkForDigging, in, &emptypb.Empty{}, opts...)
}

// WatchEvents opens an event stream. The first message received is always
// of type TypeWatchStarted.
func (c *Client) WatchEvents(ctx context.Context, types []string, opts ...grpc.CallOption) (*EventReceiver, error) {
	list := make([]any, len(types))
	for i, t := range types {
		list[i] = t
	}
	in, err := structpb.NewStruct(map[string]any{"types": list})
	if err != nil {
		return nil, err
	}

	stream, err := c.cc.NewStream(ctx, &ServiceDesc.Streams[0], methodWatchEvents, opts...)
	if err != nil {
		return nil, err
	}
	if err := stream.SendMsg(in); err != nil {
		return nil, err
	}
	if err := stream.CloseSend(); err != nil {
		return nil, err
	}
	return &EventReceiver{stream: stream}, nil
}

func (c *Client) invokeStruct(ctx context.Context, method string, fields map[string]any, opts ...grpc.CallOption) (*structpb.Struct, error) {
	in, err := structpb.NewStruct(fields)
	if err != nil {
		return nil, err
	}
	out := new(structpb.Struct)
	if err := c.cc.Invoke(ctx, method, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

// EventReceiver is the client side of WatchEvents
type EventReceiver struct {
	stream grpc.ClientStream
}

func (r *EventReceiver) Recv() (*structpb.Struct, error) {
	m := new(structpb.Struct)
	if err := r.stream.RecvMsg(m); err != nil {
		return nil, err
	}
	return m, nil
}
