package main

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"google.golang.org/grpc"

	grpcAdapter "github.com/quentinrf/sensor-panel/internal/adapters/grpc"
	"github.com/quentinrf/sensor-panel/internal/adapters/kafkabus"
	"github.com/quentinrf/sensor-panel/internal/adapters/memory"
	"github.com/quentinrf/sensor-panel/internal/adapters/mock"
	"github.com/quentinrf/sensor-panel/internal/adapters/sqlite"
	"github.com/quentinrf/sensor-panel/internal/config"
	"github.com/quentinrf/sensor-panel/internal/domain"
	"github.com/quentinrf/sensor-panel/internal/ports"
	"github.com/quentinrf/sensor-panel/internal/session"
	httptransport "github.com/quentinrf/sensor-panel/internal/transport/http"
	"github.com/quentinrf/sensor-panel/pkg/tlsconfig"
)

func main() {
	// Read configuration from environment
	cfg := config.Load()

	// Initialize logger
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	if level, err := zerolog.ParseLevel(cfg.LogLevel); err == nil {
		zerolog.SetGlobalLevel(level)
	}

	log.Info().Msg("starting sensor panel")

	// Initialize repository
	var repo domain.LogRepository
	switch cfg.RepoType {
	case "sqlite":
		r, err := sqlite.NewLogRepository(cfg.DBPath)
		if err != nil {
			log.Fatal().Err(err).Str("db_path", cfg.DBPath).Msg("failed to open SQLite database")
		}
		defer r.Close()
		repo = r
		log.Info().Str("db_path", cfg.DBPath).Msg("initialized SQLite repository")
	default:
		repo = memory.NewLogRepository()
		log.Info().Msg("initialized in-memory repository")
	}

	// Initialize sensors; an absent sensor is a supported configuration
	sensors, opts := initSensors(cfg)
	defer func() {
		for _, s := range sensors {
			s.Close()
		}
	}()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	panel, err := session.Open(ctx, repo, time.Now(), opts...)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to open session")
	}

	// Publish session events when a broker is configured
	if len(cfg.KafkaBrokers) > 0 {
		publisher := kafkabus.NewPublisher(kafkabus.NewWriter(cfg.KafkaBrokers, cfg.KafkaTopic), 5*time.Second)
		defer publisher.Close()
		unsubscribe := panel.Subscribe(publisher)
		defer unsubscribe()
		log.Info().Strs("brokers", cfg.KafkaBrokers).Str("topic", cfg.KafkaTopic).Msg("publishing session events")
	}

	// Configure TLS if certificates are provided
	var serverOpts []grpc.ServerOption
	tlsFiles := tlsconfig.Files{Cert: cfg.TLSCert, Key: cfg.TLSKey, CA: cfg.TLSCA}
	if tlsFiles.Enabled() {
		creds, err := tlsFiles.ServerCredentials()
		if err != nil {
			log.Fatal().Err(err).Msg("failed to load TLS config")
		}
		serverOpts = append(serverOpts, grpc.Creds(creds))
		log.Info().Msg("mTLS enabled")
	} else {
		log.Warn().Msg("TLS_CERT not set, starting without TLS (dev mode only)")
	}

	// Create gRPC server. The service has no proto descriptor, so reflection
	// is not registered; panelctl is the client.
	grpcServer := grpc.NewServer(serverOpts...)
	grpcAdapter.RegisterSensorPanelServer(grpcServer, grpcAdapter.NewPanelServiceHandler(panel, cfg.WatchBuffer))

	listener, err := net.Listen("tcp", fmt.Sprintf(":%s", cfg.GRPCPort))
	if err != nil {
		log.Fatal().Err(err).Msg("failed to listen")
	}

	log.Info().Str("port", cfg.GRPCPort).Msg("gRPC server listening")

	go func() {
		if err := grpcServer.Serve(listener); err != nil {
			log.Fatal().Err(err).Msg("failed to serve")
		}
	}()

	// Start HTTP server for health, metrics and read-only views
	httpServer := httptransport.NewServer(httptransport.ServerConfig{
		Address:      cfg.HTTPAddress,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
	}, httptransport.NewRouter(panel))

	go func() {
		log.Info().Str("address", cfg.HTTPAddress).Msg("HTTP server listening")
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("HTTP server failed")
		}
	}()

	// Start sampling
	sampler := ports.NewSampler(panel, cfg.SampleInterval, sensors...)
	go sampler.Start(ctx)

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down server...")

	// Graceful shutdown
	cancel() // Stop sampler

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("HTTP shutdown failed")
	}
	grpcServer.GracefulStop()

	log.Info().Str("session", panel.ID()).Msg("server stopped")
}

// initSensors builds the configured sensors and the matching session options
func initSensors(cfg config.Config) ([]ports.Sensor, []session.Option) {
	if cfg.SensorType != "mock" {
		log.Fatal().Str("sensor_type", cfg.SensorType).Msg("unsupported sensor type; set SENSOR_TYPE=mock")
	}

	var sensors []ports.Sensor
	var opts []session.Option

	if cfg.Accelerometer {
		accel := mock.NewFakeAccelerometer(cfg.ShakeChance)
		sensors = append(sensors, accel)
		opts = append(opts, session.WithAccelerometer(accel.Info()))
		log.Info().Float64("shake_chance", cfg.ShakeChance).Msg("initialized mock accelerometer")
	} else {
		log.Warn().Msg("no accelerometer")
	}

	if cfg.LightSensor {
		light := mock.NewFakeLight(cfg.LightBase, cfg.LightVariation, cfg.LightMaxRange)
		sensors = append(sensors, light)
		opts = append(opts, session.WithLightSensor(light.Info()))
		log.Info().Float64("max_range", cfg.LightMaxRange).Msg("initialized mock light sensor")
	} else {
		log.Warn().Msg("no light sensor")
	}

	return sensors, opts
}
