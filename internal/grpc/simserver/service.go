package simserver

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/structpb"
)

// ServiceName is the fully qualified gRPC service name.
const ServiceName = "creaturesim.v1.SimulationService"

const (
	methodGetStats       = "/" + ServiceName + "/GetStats"
	methodRender         = "/" + ServiceName + "/Render"
	methodPause          = "/" + ServiceName + "/Pause"
	methodResume         = "/" + ServiceName + "/Resume"
	methodMarkForDigging = "/" + ServiceName + "/MarkForDigging"
	methodWatchEvents    = "/" + ServiceName + "/WatchEvents"
)

// SimulationServiceServer is the operations surface of a running simulation.
// Messages are protobuf well-known types so no generated code is needed.
type SimulationServiceServer interface {
	GetStats(context.Context, *emptypb.Empty) (*structpb.Struct, error)
	Render(context.Context, *structpb.Struct) (*structpb.Struct, error)
	Pause(context.Context, *structpb.Struct) (*structpb.Struct, error)
	Resume(context.Context, *structpb.Struct) (*structpb.Struct, error)
	MarkForDigging(context.Context, *structpb.Struct) (*emptypb.Empty, error)
	WatchEvents(*structpb.Struct, EventStream) error
}

// EventStream is the server side of WatchEvents.
type EventStream interface {
	Send(*structpb.Struct) error
	Context() context.Context
}

type eventStream struct {
	grpc.ServerStream
}

func (s *eventStream) Send(m *structpb.Struct) error {
	return s.ServerStream.SendMsg(m)
}

// RegisterSimulationServiceServer attaches srv to a gRPC server.
func RegisterSimulationServiceServer(s grpc.ServiceRegistrar, srv SimulationServiceServer) {
	s.RegisterService(&ServiceDesc, srv)
}

// ServiceDesc describes SimulationService to the gRPC runtime.
var ServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*SimulationServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "GetStats", Handler: getStatsHandler},
		{MethodName: "Render", Handler: renderHandler},
		{MethodName: "Pause", Handler: pauseHandler},
		{MethodName: "Resume", Handler: resumeHandler},
		{MethodName: "MarkForDigging", Handler: markForDiggingHandler},
	},
	Streams: []grpc.StreamDesc{
		{StreamName: "WatchEvents", Handler: watchEventsHandler, ServerStreams: true},
	},
}

func getStatsHandler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(emptypb.Empty)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(SimulationServiceServer).GetStats(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: methodGetStats}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(SimulationServiceServer).GetStats(ctx, req.(*emptypb.Empty))
	}
	return interceptor(ctx, in, info, handler)
}

// structHandler builds the handler for a Struct-in method.
func structHandler(fullMethod string, call func(SimulationServiceServer, context.Context, *structpb.Struct) (any, error)) func(any, context.Context, func(any) error, grpc.UnaryServerInterceptor) (any, error) {
	return func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
		in := new(structpb.Struct)
		if err := dec(in); err != nil {
			return nil, err
		}
		if interceptor == nil {
			return call(srv.(SimulationServiceServer), ctx, in)
		}
		info := &grpc.UnaryServerInfo{Server: srv, FullMethod: fullMethod}
		handler := func(ctx context.Context, req any) (any, error) {
			return call(srv.(SimulationServiceServer), ctx, req.(*structpb.Struct))
		}
		return interceptor(ctx, in, info, handler)
	}
}

var (
	renderHandler = structHandler(methodRender, func(s SimulationServiceServer, ctx context.Context, in *structpb.Struct) (any, error) {
		return s.Render(ctx, in)
	})
	pauseHandler = structHandler(methodPause, func(s SimulationServiceServer, ctx context.Context, in *structpb.Struct) (any, error) {
		return s.Pause(ctx, in)
	})
	resumeHandler = structHandler(methodResume, func(s SimulationServiceServer, ctx context.Context, in *structpb.Struct) (any, error) {
		return s.Resume(ctx, in)
	})
	markForDiggingHandler = structHandler(methodMarkForDigging, func(s SimulationServiceServer, ctx context.Context, in *structpb.Struct) (any, error) {
		return s.MarkForDigging(ctx, in)
	})
)

func watchEventsHandler(srv any, stream grpc.ServerStream) error {
	in := new(structpb.Struct)
	if err := stream.RecvMsg(in); err != nil {
		return err
	}
	return srv.(SimulationServiceServer).WatchEvents(in, &eventStream{stream})
}
