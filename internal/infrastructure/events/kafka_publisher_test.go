package events

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"transcribe_billing/internal/domain/entities"

	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

type fakeWriter struct {
	msgs        []kafka.Message
	hasDeadline bool
	err         error
	closed      bool
}

func (f *fakeWriter) WriteMessages(ctx context.Context, msgs ...kafka.Message) error {
	_, f.hasDeadline = ctx.Deadline()
	if f.err != nil {
		return f.err
	}
	f.msgs = append(f.msgs, msgs...)
	return nil
}

func (f *fakeWriter) Close() error {
	f.closed = true
	return nil
}

func sampleEvent() entities.OrderEvent {
	return entities.OrderEvent{
		Type:        entities.OrderEventPaid,
		OrderID:     "order-1",
		OrderNumber: "TT-123456789",
		UserID:      "user-1",
		Status:      entities.PaymentStatusPaid,
		AmountMinor: 5490,
		Currency:    "NGN",
		OccurredAt:  time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC),
	}
}

func TestKafkaOrderPublisher_Publish(t *testing.T) {
	w := &fakeWriter{}
	p := newKafkaOrderPublisher(w, nil)

	if err := p.Publish(context.Background(), sampleEvent()); err != nil {
		t.Fatalf("publish: %v", err)
	}
	if len(w.msgs) != 1 || !w.hasDeadline {
		t.Fatalf("expected one message under a deadline, got %d deadline=%v", len(w.msgs), w.hasDeadline)
	}
	msg := w.msgs[0]
	if string(msg.Key) != "order-1" || string(msg.Headers[0].Value) != "order.paid" {
		t.Fatalf("unexpected message %+v", msg)
	}
	var got entities.OrderEvent
	if err := json.Unmarshal(msg.Value, &got); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if got != sampleEvent() {
		t.Fatalf("unexpected payload %+v", got)
	}

	if err := p.Close(); err != nil || !w.closed {
		t.Fatalf("expected writer to be closed")
	}
}

func TestKafkaOrderPublisher_PublishError(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	p := newKafkaOrderPublisher(&fakeWriter{err: errors.New("broker down")}, zap.New(core))

	if err := p.Publish(context.Background(), sampleEvent()); err == nil {
		t.Fatalf("expected error")
	}
	if logs.FilterMessage("[order][events] publish failed").Len() != 1 {
		t.Fatalf("expected failure to be logged")
	}
}

func TestNoopOrderPublisher(t *testing.T) {
	if err := NewNoopOrderPublisher(nil).Publish(context.Background(), sampleEvent()); err != nil {
		t.Fatalf("noop publish: %v", err)
	}
}

func TestNewKafkaWriter(t *testing.T) {
	w := newKafkaWriter([]string{"localhost:9092"}, "order-events")
	defer w.Close()

	if w.BatchTimeout != batchTimeout || w.BatchTimeout > 50*time.Millisecond {
		t.Fatalf("expected a short batch timeout, got %s", w.BatchTimeout)
	}
	if w.Topic != "order-events" || w.RequiredAcks != kafka.RequireAll {
		t.Fatalf("unexpected writer config: topic=%s acks=%v", w.Topic, w.RequiredAcks)
	}
	if _, ok := w.Balancer.(*kafka.Hash); !ok {
		t.Fatalf("expected key hash balancer, got %T", w.Balancer)
	}
}
