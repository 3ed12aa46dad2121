// Command panelctl renders a running sensor panel from the terminal.
//
//	panelctl [-addr host:port] state|log|caps|watch
//	panelctl inject accelerometer X Y Z
//	panelctl inject light LUX [MAX_RANGE]
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"

	grpcAdapter "github.com/quentinrf/sensor-panel/internal/adapters/grpc"
	"github.com/quentinrf/sensor-panel/pkg/tlsconfig"
)

func main() {
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	addr := flag.String("addr", "localhost:50051", "panel gRPC address")
	certFile := flag.String("cert", os.Getenv("TLS_CERT"), "client certificate (mTLS)")
	keyFile := flag.String("key", os.Getenv("TLS_KEY"), "client key (mTLS)")
	caFile := flag.String("ca", os.Getenv("TLS_CA"), "CA certificate (mTLS)")
	serverName := flag.String("server-name", "", "override the server name checked against its certificate")
	flag.Parse()

	if flag.NArg() == 0 {
		fmt.Fprintln(os.Stderr, "usage: panelctl [flags] state|log|caps|watch|inject ...")
		os.Exit(2)
	}

	creds := grpc.WithTransportCredentials(insecure.NewCredentials())
	files := tlsconfig.Files{Cert: *certFile, Key: *keyFile, CA: *caFile}
	if files.Enabled() {
		tc, err := files.ClientCredentials(*serverName)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to load TLS config")
		}
		creds = grpc.WithTransportCredentials(tc)
	}

	conn, err := grpc.NewClient(*addr, creds)
	if err != nil {
		log.Fatal().Err(err).Str("addr", *addr).Msg("failed to dial")
	}
	defer conn.Close()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, grpcAdapter.NewClient(conn), flag.Args(), os.Stdout); err != nil {
		log.Fatal().Err(err).Msg(flag.Arg(0) + " failed")
	}
}

func run(ctx context.Context, client *grpcAdapter.Client, args []string, out io.Writer) error {
	switch args[0] {
	case "state":
		return printState(ctx, client, out)
	case "log":
		return printLog(ctx, client, out)
	case "caps":
		return printCapabilities(ctx, client, out)
	case "watch":
		return watch(ctx, client, out)
	case "inject":
		return inject(ctx, client, args[1:], out)
	}
	return fmt.Errorf("unknown command %q", args[0])
}

func printState(ctx context.Context, client *grpcAdapter.Client, out io.Writer) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	resp, err := client.GetState(ctx, &grpcAdapter.GetStateRequest{})
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "session:  %s\n", resp.SessionID)
	fmt.Fprintf(out, "started:  %s\n", time.UnixMilli(resp.StartedAt).Format(time.RFC3339))
	fmt.Fprintf(out, "color:    %s\n", resp.Color)
	fmt.Fprintf(out, "log:      %d entries\n", resp.LogLength)
	return nil
}

// printLog renders the log newest-last
func printLog(ctx context.Context, client *grpcAdapter.Client, out io.Writer) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	resp, err := client.GetLog(ctx, &grpcAdapter.GetLogRequest{})
	if err != nil {
		return err
	}
	for _, e := range resp.Entries {
		fmt.Fprintf(out, "#%d %s\n%s\n\n", e.Seq, time.UnixMilli(e.Timestamp).Format(time.TimeOnly), e.Text)
	}
	return nil
}

func printCapabilities(ctx context.Context, client *grpcAdapter.Client, out io.Writer) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	resp, err := client.GetCapabilities(ctx, &grpcAdapter.GetCapabilitiesRequest{})
	if err != nil {
		return err
	}
	fmt.Fprintln(out, resp.Panel)
	return nil
}

func watch(ctx context.Context, client *grpcAdapter.Client, out io.Writer) error {
	stream, err := client.Watch(ctx, &grpcAdapter.WatchRequest{})
	if err != nil {
		return err
	}

	for {
		ev, err := stream.Recv()
		if errors.Is(err, io.EOF) || ctx.Err() != nil {
			return nil
		}
		if err != nil {
			return err
		}

		switch {
		case ev.Entry != nil:
			fmt.Fprintf(out, "[%s] #%d %s\n", ev.Kind, ev.Entry.Seq, ev.Entry.Text)
		default:
			fmt.Fprintf(out, "[%s] color=%s\n", ev.Kind, ev.Color)
		}
	}
}

func inject(ctx context.Context, client *grpcAdapter.Client, args []string, out io.Writer) error {
	if len(args) < 2 {
		return errors.New("usage: inject accelerometer X Y Z | inject light LUX [MAX_RANGE]")
	}

	values := make([]float64, 0, len(args)-1)
	for _, a := range args[1:] {
		v, err := strconv.ParseFloat(a, 64)
		if err != nil {
			return fmt.Errorf("parse %q: %w", a, err)
		}
		values = append(values, v)
	}

	req := &grpcAdapter.InjectSampleRequest{Kind: args[0], Values: values}
	if args[0] == "light" && len(values) >= 2 {
		req.Values, req.MaxRange = values[:1], values[1]
	}

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	resp, err := client.InjectSample(ctx, req)
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "color=%s log=%d\n", resp.Color, resp.LogLength)
	return nil
}
