package main

import (
	"bytes"
	"context"
	"net"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"

	grpcAdapter "github.com/quentinrf/sensor-panel/internal/adapters/grpc"
	"github.com/quentinrf/sensor-panel/internal/adapters/memory"
	"github.com/quentinrf/sensor-panel/internal/domain"
	"github.com/quentinrf/sensor-panel/internal/session"
)

func newClient(t *testing.T) *grpcAdapter.Client {
	t.Helper()

	// Started well in the past so injected "now" samples are outside the first window
	panel, err := session.Open(context.Background(), memory.NewLogRepository(), time.Now().Add(-time.Hour),
		session.WithLightSensor(domain.SensorInfo{Name: "light", MaximumRange: 300}))
	require.NoError(t, err)

	lis, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	srv := grpc.NewServer()
	grpcAdapter.RegisterSensorPanelServer(srv, grpcAdapter.NewPanelServiceHandler(panel, 4))
	go srv.Serve(lis)
	t.Cleanup(srv.Stop)

	conn, err := grpc.NewClient(lis.Addr().String(), grpc.WithTransportCredentials(insecure.NewCredentials()))
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })

	return grpcAdapter.NewClient(conn)
}

func TestRun_InjectThenLog(t *testing.T) {
	client := newClient(t)
	ctx := context.Background()

	var out bytes.Buffer
	require.NoError(t, run(ctx, client, []string{"inject", "light", "250", "300"}, &out))
	require.Equal(t, "color=GREEN log=2\n", out.String())

	out.Reset()
	require.NoError(t, run(ctx, client, []string{"log"}, &out))
	require.Contains(t, out.String(), "There is a light sensor!\nMaximum Range: 300.0 lxs")
	require.Contains(t, out.String(), "New value light sensor = 250.0\nHIGH intensity")
	require.Less(t, strings.Index(out.String(), "There is"), strings.Index(out.String(), "New value"))
}

func TestRun_StateAndCaps(t *testing.T) {
	client := newClient(t)
	ctx := context.Background()

	var out bytes.Buffer
	require.NoError(t, run(ctx, client, []string{"state"}, &out))
	require.Contains(t, out.String(), "color:    GREEN")

	out.Reset()
	require.NoError(t, run(ctx, client, []string{"caps"}, &out))
	require.Equal(t, "Sorry, there is no accelerometer\n", out.String())
}

func TestRun_Errors(t *testing.T) {
	client := newClient(t)
	ctx := context.Background()

	require.Error(t, run(ctx, client, []string{"dance"}, &bytes.Buffer{}))
	require.Error(t, run(ctx, client, []string{"inject", "light"}, &bytes.Buffer{}))
	require.Error(t, run(ctx, client, []string{"inject", "light", "bright", "300"}, &bytes.Buffer{}))
}
