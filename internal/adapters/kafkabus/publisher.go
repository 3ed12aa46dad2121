package kafkabus

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/segmentio/kafka-go"

	"github.com/quentinrf/sensor-panel/internal/observability"
	"github.com/quentinrf/sensor-panel/internal/session"
)

// MessageWriter is the subset of *kafka.Writer the publisher uses
type MessageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// Publisher forwards session events to a Kafka topic
// It implements session.Observer.
type Publisher struct {
	writer  MessageWriter
	timeout time.Duration

	mu     sync.Mutex
	closed bool
}

// NewWriter returns an async writer for topic
// Async keeps Notify from blocking the sampler on broker round trips;
// delivery failures surface through Completion.
func NewWriter(brokers []string, topic string) *kafka.Writer {
	return &kafka.Writer{
		Addr:         kafka.TCP(brokers...),
		Topic:        topic,
		RequiredAcks: kafka.RequireOne,
		Balancer:     &kafka.Hash{},
		Async:        true,
		Completion: func(messages []kafka.Message, err error) {
			if err != nil {
				for range messages {
					observability.RecordPublishFailure()
				}
				log.Error().Err(err).Int("messages", len(messages)).Msg("failed to deliver session events")
			}
		},
	}
}

// NewPublisher creates a publisher writing through w
func NewPublisher(w MessageWriter, timeout time.Duration) *Publisher {
	return &Publisher{writer: w, timeout: timeout}
}

// eventMessage is the JSON value of a published event
type eventMessage struct {
	Kind      string   `json:"kind"`
	SessionID string   `json:"session_id"`
	At        int64    `json:"at"` // unix ms
	Color     string   `json:"color"`
	Seq       int64    `json:"seq,omitempty"`
	Text      string   `json:"text,omitempty"`
	Intensity *float64 `json:"intensity,omitempty"`
	Bucket    string   `json:"bucket,omitempty"`
}

// Notify publishes one event, keyed by session id
func (p *Publisher) Notify(e session.Event) {
	p.mu.Lock()
	closed := p.closed
	p.mu.Unlock()
	if closed {
		return
	}

	msg := eventMessage{
		Kind:      string(e.Kind),
		SessionID: e.SessionID,
		At:        e.At.UnixMilli(),
		Color:     string(e.Color),
	}
	if e.Entry != nil {
		msg.Seq = e.Entry.Seq
		msg.Text = e.Entry.Text
		msg.Intensity = e.Entry.Intensity
		msg.Bucket = string(e.Entry.Bucket)
	}

	value, err := json.Marshal(msg)
	if err != nil {
		log.Error().Err(err).Msg("failed to encode session event")
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), p.timeout)
	defer cancel()

	err = p.writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(e.SessionID),
		Value: value,
		Time:  e.At,
		Headers: []kafka.Header{
			{Key: "event_type", Value: []byte(e.Kind)},
		},
	})
	if err != nil {
		observability.RecordPublishFailure()
		log.Error().Err(err).Str("kind", string(e.Kind)).Msg("failed to publish session event")
	}
}

// Close flushes and releases the writer
func (p *Publisher) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed {
		return nil
	}
	p.closed = true
	return p.writer.Close()
}
