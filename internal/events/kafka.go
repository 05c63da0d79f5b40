package events

import (
	"context"
	"encoding/json"
	"time"

	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

// KafkaPublisher writes each event as a JSON message keyed by workspace, so
// events of one workspace land on the same partition in order.
//
// The writer is asynchronous: Publish only enqueues, and delivery failures
// are reported to the log by the completion callback. A slow or missing
// broker never holds up the request that caused the event.
type KafkaPublisher struct {
	writer *kafkago.Writer
	log    *zap.Logger
}

func NewKafkaPublisher(brokers []string, topic string, logger *zap.Logger) *KafkaPublisher {
	p := &KafkaPublisher{log: logger}
	p.writer = &kafkago.Writer{
		Addr:         kafkago.TCP(brokers...),
		Topic:        topic,
		Balancer:     &kafkago.Hash{},
		RequiredAcks: kafkago.RequireOne,
		BatchTimeout: 50 * time.Millisecond,
		WriteTimeout: 5 * time.Second,
		Async:        true,
		Completion:   p.completed,
	}
	return p
}

func (p *KafkaPublisher) Publish(ctx context.Context, e Event) error {
	b, err := json.Marshal(e)
	if err != nil {
		return err
	}
	return p.writer.WriteMessages(ctx, kafkago.Message{
		Key:   []byte(e.WorkspaceID),
		Value: b,
		Time:  e.OccurredAt,
		Headers: []kafkago.Header{
			{Key: "type", Value: []byte(e.Type)},
		},
	})
}

func (p *KafkaPublisher) completed(msgs []kafkago.Message, err error) {
	if err == nil {
		return
	}
	for _, m := range msgs {
		p.log.Warn("event not delivered",
			zap.String("type", headerValue(m, "type")),
			zap.ByteString("workspace_id", m.Key),
			zap.Error(err))
	}
}

func headerValue(m kafkago.Message, key string) string {
	for _, h := range m.Headers {
		if h.Key == key {
			return string(h.Value)
		}
	}
	return ""
}

// Close flushes pending messages.
func (p *KafkaPublisher) Close() error {
	return p.writer.Close()
}
