package grpc

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog/log"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/quentinrf/sensor-panel/internal/domain"
	"github.com/quentinrf/sensor-panel/internal/session"
)

// Panel is the session API the handler serves
// *session.Session implements it
type Panel interface {
	ID() string
	StartedAt() time.Time
	Color() domain.DisplayColor
	Log(ctx context.Context) ([]*domain.LogEntry, error)
	Capabilities() string
	Accelerometer() *domain.SensorInfo
	LightSensor() *domain.SensorInfo
	HandleSample(ctx context.Context, sample domain.Sample) error
	SubscribeSnapshot(o session.Observer) (color domain.DisplayColor, unsubscribe func())
}

// PanelServiceHandler implements the gRPC SensorPanel service
type PanelServiceHandler struct {
	panel       Panel
	watchBuffer int
	now         func() time.Time
}

// NewPanelServiceHandler creates a new gRPC handler
// watchBuffer bounds the events queued per watcher before they are dropped.
func NewPanelServiceHandler(panel Panel, watchBuffer int) *PanelServiceHandler {
	if watchBuffer < 1 {
		watchBuffer = 1
	}
	return &PanelServiceHandler{
		panel:       panel,
		watchBuffer: watchBuffer,
		now:         time.Now,
	}
}

// GetState returns the session summary
func (h *PanelServiceHandler) GetState(ctx context.Context, req *GetStateRequest) (*GetStateResponse, error) {
	log.Debug().Msg("GetState called")

	entries, err := h.panel.Log(ctx)
	if err != nil {
		log.Error().Err(err).Msg("failed to list log")
		return nil, status.Error(codes.Internal, "failed to read log")
	}

	return &GetStateResponse{
		SessionID:     h.panel.ID(),
		Color:         string(h.panel.Color()),
		StartedAt:     h.panel.StartedAt().UnixMilli(),
		LogLength:     len(entries),
		Accelerometer: h.panel.Accelerometer() != nil,
		LightSensor:   h.panel.LightSensor() != nil,
	}, nil
}

// GetLog returns log entries newer than req.AfterSeq
func (h *PanelServiceHandler) GetLog(ctx context.Context, req *GetLogRequest) (*GetLogResponse, error) {
	log.Debug().Int64("after_seq", req.AfterSeq).Msg("GetLog called")

	entries, err := h.panel.Log(ctx)
	if err != nil {
		log.Error().Err(err).Msg("failed to list log")
		return nil, status.Error(codes.Internal, "failed to read log")
	}

	out := make([]*LogEntry, 0, len(entries))
	for _, e := range entries {
		if e.Seq > req.AfterSeq {
			out = append(out, convertEntryToProto(e))
		}
	}

	return &GetLogResponse{Entries: out}, nil
}

// GetCapabilities returns the device sensors and the accelerometer panel text
func (h *PanelServiceHandler) GetCapabilities(ctx context.Context, req *GetCapabilitiesRequest) (*GetCapabilitiesResponse, error) {
	log.Debug().Msg("GetCapabilities called")

	return &GetCapabilitiesResponse{
		Accelerometer: convertInfoToProto(h.panel.Accelerometer()),
		LightSensor:   convertInfoToProto(h.panel.LightSensor()),
		Panel:         h.panel.Capabilities(),
	}, nil
}

// InjectSample feeds a sample to the session (useful for testing)
func (h *PanelServiceHandler) InjectSample(ctx context.Context, req *InjectSampleRequest) (*InjectSampleResponse, error) {
	log.Info().Str("kind", req.Kind).Floats64("values", req.Values).Msg("InjectSample called")

	kind, err := domain.ParseSensorKind(req.Kind)
	if err != nil {
		return nil, status.Error(codes.InvalidArgument, err.Error())
	}

	at := h.now()
	if req.Timestamp != 0 {
		at = time.UnixMilli(req.Timestamp)
	}

	sample := domain.Sample{
		Kind:      kind,
		Timestamp: at,
		Values:    req.Values,
		MaxRange:  req.MaxRange,
	}

	if err := h.panel.HandleSample(ctx, sample); err != nil {
		if errors.Is(err, domain.ErrMalformedSample) || errors.Is(err, domain.ErrUnknownSensor) {
			return nil, status.Error(codes.InvalidArgument, err.Error())
		}
		log.Error().Err(err).Msg("failed to handle sample")
		return nil, status.Error(codes.Internal, "failed to handle sample")
	}

	entries, err := h.panel.Log(ctx)
	if err != nil {
		log.Error().Err(err).Msg("failed to list log")
		return nil, status.Error(codes.Internal, "failed to read log")
	}

	return &InjectSampleResponse{
		Color:     string(h.panel.Color()),
		LogLength: len(entries),
	}, nil
}

// Watch streams session events until the client goes away
// The stream opens with the color taken when the watcher subscribed,
// so every streamed event is newer than the snapshot.
func (h *PanelServiceHandler) Watch(req *WatchRequest, stream WatchServer) error {
	ctx := stream.Context()
	log.Info().Msg("Watch stream opened")

	events := make(chan session.Event, h.watchBuffer)
	color, unsubscribe := h.panel.SubscribeSnapshot(session.ObserverFunc(func(e session.Event) {
		select {
		case events <- e:
		default:
			log.Warn().Str("kind", string(e.Kind)).Msg("watcher too slow, dropping event")
		}
	}))
	defer unsubscribe()

	snapshot := &WatchEvent{
		Kind:      EventSnapshot,
		SessionID: h.panel.ID(),
		At:        h.now().UnixMilli(),
		Color:     string(color),
	}
	if err := stream.Send(snapshot); err != nil {
		return err
	}

	for {
		select {
		case e := <-events:
			if err := stream.Send(convertEventToProto(e)); err != nil {
				log.Error().Err(err).Msg("failed to send watch event")
				return err
			}
		case <-ctx.Done():
			log.Info().Msg("Watch stream closed")
			return nil
		}
	}
}

// convertEntryToProto converts a domain log entry to its wire form
func convertEntryToProto(e *domain.LogEntry) *LogEntry {
	return &LogEntry{
		Seq:       e.Seq,
		Text:      e.Text,
		Timestamp: e.Timestamp.UnixMilli(),
		Intensity: e.Intensity,
		Bucket:    string(e.Bucket),
	}
}

func convertInfoToProto(info *domain.SensorInfo) *SensorInfo {
	if info == nil {
		return nil
	}
	return &SensorInfo{
		Name:         info.Name,
		Vendor:       info.Vendor,
		Version:      info.Version,
		Power:        info.Power,
		Resolution:   info.Resolution,
		MaximumRange: info.MaximumRange,
	}
}

func convertEventToProto(e session.Event) *WatchEvent {
	out := &WatchEvent{
		Kind:      string(e.Kind),
		SessionID: e.SessionID,
		At:        e.At.UnixMilli(),
		Color:     string(e.Color),
	}
	if e.Entry != nil {
		out.Entry = convertEntryToProto(e.Entry)
	}
	return out
}
