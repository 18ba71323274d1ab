package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"transcribe_billing/internal/domain/entities"
	"transcribe_billing/internal/usecase/interfaces"

	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

const (
	writeTimeout = 10 * time.Second
	batchTimeout = 5 * time.Millisecond
)

type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// KafkaOrderPublisher writes order events keyed by order id, so events for one
// order stay on one partition in commit order.
type KafkaOrderPublisher struct {
	writer messageWriter
	log    *zap.Logger
}

var _ interfaces.IOrderEventPublisher = (*KafkaOrderPublisher)(nil)

func NewKafkaOrderPublisher(brokers []string, topic string, log *zap.Logger) *KafkaOrderPublisher {
	return newKafkaOrderPublisher(newKafkaWriter(brokers, topic), log)
}

// newKafkaWriter flushes each event almost immediately; publishes run on the
// request path and carry one message each.
func newKafkaWriter(brokers []string, topic string) *kafka.Writer {
	return &kafka.Writer{
		Addr:                   kafka.TCP(brokers...),
		Topic:                  topic,
		Balancer:               &kafka.Hash{},
		RequiredAcks:           kafka.RequireAll,
		BatchTimeout:           batchTimeout,
		WriteTimeout:           writeTimeout,
		AllowAutoTopicCreation: true,
	}
}

func newKafkaOrderPublisher(w messageWriter, log *zap.Logger) *KafkaOrderPublisher {
	if log == nil {
		log = zap.NewNop()
	}
	return &KafkaOrderPublisher{writer: w, log: log}
}

func (p *KafkaOrderPublisher) Publish(ctx context.Context, e entities.OrderEvent) error {
	payload, err := json.Marshal(e)
	if err != nil {
		return fmt.Errorf("marshal %s: %w", e.Type, err)
	}

	ctx, cancel := context.WithTimeout(ctx, writeTimeout)
	defer cancel()

	err = p.writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(e.OrderID),
		Value: payload,
		Headers: []kafka.Header{
			{Key: "event_type", Value: []byte(e.Type)},
		},
		Time: e.OccurredAt,
	})
	if err != nil {
		p.log.Error("[order][events] publish failed",
			zap.String("event_type", string(e.Type)),
			zap.String("order_id", e.OrderID),
			zap.Error(err),
		)
		return err
	}
	p.log.Info("[order][events] published",
		zap.String("event_type", string(e.Type)),
		zap.String("order_id", e.OrderID),
	)
	return nil
}

func (p *KafkaOrderPublisher) Close() error {
	return p.writer.Close()
}

// NoopOrderPublisher drops events. Used when no brokers are configured.
type NoopOrderPublisher struct {
	log *zap.Logger
}

var _ interfaces.IOrderEventPublisher = NoopOrderPublisher{}

func NewNoopOrderPublisher(log *zap.Logger) NoopOrderPublisher {
	if log == nil {
		log = zap.NewNop()
	}
	return NoopOrderPublisher{log: log}
}

func (p NoopOrderPublisher) Publish(_ context.Context, e entities.OrderEvent) error {
	p.log.Debug("[order][events] publishing disabled", zap.String("event_type", string(e.Type)), zap.String("order_id", e.OrderID))
	return nil
}
