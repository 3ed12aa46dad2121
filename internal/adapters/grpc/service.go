package grpc

import (
	"context"

	"google.golang.org/grpc"
)

const serviceName = "sensorpanel.v1.SensorPanel"

// SensorPanelServer is the server API of the panel service
type SensorPanelServer interface {
	GetState(context.Context, *GetStateRequest) (*GetStateResponse, error)
	GetLog(context.Context, *GetLogRequest) (*GetLogResponse, error)
	GetCapabilities(context.Context, *GetCapabilitiesRequest) (*GetCapabilitiesResponse, error)
	InjectSample(context.Context, *InjectSampleRequest) (*InjectSampleResponse, error)
	Watch(*WatchRequest, WatchServer) error
}

// WatchServer is the server side of a Watch stream
type WatchServer interface {
	Send(*WatchEvent) error
	grpc.ServerStream
}

type watchServer struct {
	grpc.ServerStream
}

func (x *watchServer) Send(m *WatchEvent) error {
	return x.ServerStream.SendMsg(m)
}

// RegisterSensorPanelServer registers srv on s
func RegisterSensorPanelServer(s grpc.ServiceRegistrar, srv SensorPanelServer) {
	s.RegisterService(&serviceDesc, srv)
}

func fullMethod(method string) string {
	return "/" + serviceName + "/" + method
}

// unaryHandler builds the grpc.MethodHandler of a unary method
func unaryHandler[Req, Resp any](method string, call func(SensorPanelServer, context.Context, *Req) (*Resp, error)) func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	return func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
		in := new(Req)
		if err := dec(in); err != nil {
			return nil, err
		}
		if interceptor == nil {
			return call(srv.(SensorPanelServer), ctx, in)
		}
		info := &grpc.UnaryServerInfo{
			Server:     srv,
			FullMethod: fullMethod(method),
		}
		handler := func(ctx context.Context, req any) (any, error) {
			return call(srv.(SensorPanelServer), ctx, req.(*Req))
		}
		return interceptor(ctx, in, info, handler)
	}
}

func watchHandler(srv any, stream grpc.ServerStream) error {
	in := new(WatchRequest)
	if err := stream.RecvMsg(in); err != nil {
		return err
	}
	return srv.(SensorPanelServer).Watch(in, &watchServer{stream})
}

var serviceDesc = grpc.ServiceDesc{
	ServiceName: serviceName,
	HandlerType: (*SensorPanelServer)(nil),
	Methods: []grpc.MethodDesc{
		{
			MethodName: "GetState",
			Handler:    unaryHandler("GetState", SensorPanelServer.GetState),
		},
		{
			MethodName: "GetLog",
			Handler:    unaryHandler("GetLog", SensorPanelServer.GetLog),
		},
		{
			MethodName: "GetCapabilities",
			Handler:    unaryHandler("GetCapabilities", SensorPanelServer.GetCapabilities),
		},
		{
			MethodName: "InjectSample",
			Handler:    unaryHandler("InjectSample", SensorPanelServer.InjectSample),
		},
	},
	Streams: []grpc.StreamDesc{
		{
			StreamName:    "Watch",
			Handler:       watchHandler,
			ServerStreams: true,
		},
	},
}
