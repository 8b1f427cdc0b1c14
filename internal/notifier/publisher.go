package notifier

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/segmentio/kafka-go"
	"github.com/sony/gobreaker/v2"
)

// Email is the rendered confirmation handed to the delivery channel.
type Email struct {
	To      string `json:"to"`
	Subject string `json:"subject"`
	Body    string `json:"body"`
}

// EmailPublisher hands a rendered email to the delivery side. A failed publish
// must surface as an error; there is no fail-silent path.
type EmailPublisher interface {
	Publish(ctx context.Context, orderID string, email Email) error
}

// KafkaPublisher writes emails to the outgoing mail topic. The circuit breaker
// stops hammering the brokers while they are down; rejected publishes leave the
// outbox row pending so the next poll retries.
type KafkaPublisher struct {
	writer  *kafka.Writer
	breaker *gobreaker.CircuitBreaker[struct{}]
}

func NewKafkaPublisher(brokers ...string) *KafkaPublisher {
	w := &kafka.Writer{
		Addr:                   kafka.TCP(brokers...),
		Topic:                  "order-confirmation-emails",
		Balancer:               &kafka.LeastBytes{},
		AllowAutoTopicCreation: true,
	}
	cb := gobreaker.NewCircuitBreaker[struct{}](gobreaker.Settings{
		Name: "email-publisher",
	})
	return &KafkaPublisher{writer: w, breaker: cb}
}

func (p *KafkaPublisher) Publish(ctx context.Context, orderID string, email Email) error {
	payload, err := json.Marshal(email)
	if err != nil {
		return fmt.Errorf("marshal email: %w", err)
	}

	msg := kafka.Message{
		Key:   []byte(orderID), // order_id for per-order ordering
		Value: payload,
		Headers: []kafka.Header{
			{Key: "event_type", Value: []byte("order_confirmation")},
		},
	}

	_, err = p.breaker.Execute(func() (struct{}, error) {
		return struct{}{}, p.writer.WriteMessages(ctx, msg)
	})
	if err != nil {
		return fmt.Errorf("publish email for order %s: %w", orderID, err)
	}
	return nil
}

func (p *KafkaPublisher) Close() error {
	return p.writer.Close()
}
