package grpc

import (
	"context"

	"google.golang.org/grpc"
)

// Client calls a remote panel service
type Client struct {
	cc grpc.ClientConnInterface
}

// NewClient wraps a connection to the panel service
func NewClient(cc grpc.ClientConnInterface) *Client {
	return &Client{cc: cc}
}

// CallOptions returns the call options every panel RPC needs
func CallOptions(opts ...grpc.CallOption) []grpc.CallOption {
	return append([]grpc.CallOption{grpc.CallContentSubtype(codecName)}, opts...)
}

// GetState fetches the session summary
func (c *Client) GetState(ctx context.Context, in *GetStateRequest, opts ...grpc.CallOption) (*GetStateResponse, error) {
	out := new(GetStateResponse)
	if err := c.cc.Invoke(ctx, fullMethod("GetState"), in, out, CallOptions(opts...)...); err != nil {
		return nil, err
	}
	return out, nil
}

// GetLog fetches log entries
func (c *Client) GetLog(ctx context.Context, in *GetLogRequest, opts ...grpc.CallOption) (*GetLogResponse, error) {
	out := new(GetLogResponse)
	if err := c.cc.Invoke(ctx, fullMethod("GetLog"), in, out, CallOptions(opts...)...); err != nil {
		return nil, err
	}
	return out, nil
}

// GetCapabilities fetches the sensor capabilities
func (c *Client) GetCapabilities(ctx context.Context, in *GetCapabilitiesRequest, opts ...grpc.CallOption) (*GetCapabilitiesResponse, error) {
	out := new(GetCapabilitiesResponse)
	if err := c.cc.Invoke(ctx, fullMethod("GetCapabilities"), in, out, CallOptions(opts...)...); err != nil {
		return nil, err
	}
	return out, nil
}

// InjectSample feeds a sample to the remote session
func (c *Client) InjectSample(ctx context.Context, in *InjectSampleRequest, opts ...grpc.CallOption) (*InjectSampleResponse, error) {
	out := new(InjectSampleResponse)
	if err := c.cc.Invoke(ctx, fullMethod("InjectSample"), in, out, CallOptions(opts...)...); err != nil {
		return nil, err
	}
	return out, nil
}

// WatchClient is the client side of a Watch stream
type WatchClient interface {
	Recv() (*WatchEvent, error)
	grpc.ClientStream
}

type watchClient struct {
	grpc.ClientStream
}

func (x *watchClient) Recv() (*WatchEvent, error) {
	m := new(WatchEvent)
	if err := x.ClientStream.RecvMsg(m); err != nil {
		return nil, err
	}
	return m, nil
}

// Watch opens a stream of session events
func (c *Client) Watch(ctx context.Context, in *WatchRequest, opts ...grpc.CallOption) (WatchClient, error) {
	stream, err := c.cc.NewStream(ctx, &serviceDesc.Streams[0], fullMethod("Watch"), CallOptions(opts...)...)
	if err != nil {
		return nil, err
	}
	x := &watchClient{stream}
	if err := x.ClientStream.SendMsg(in); err != nil {
		return nil, err
	}
	if err := x.ClientStream.CloseSend(); err != nil {
		return nil, err
	}
	return x, nil
}
