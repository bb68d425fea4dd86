package printer

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
)

// Publisher is the subset of *amqp.Channel used to publish jobs.
type Publisher interface {
	PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error
	IsClosed() bool
}

// AMQPSink publishes jobs to a topic exchange; print workers consume
// print.kitchen and print.bill.
type AMQPSink struct {
	ch       Publisher
	exchange string
}

func NewAMQPSink(ch Publisher, exchange string) *AMQPSink {
	return &AMQPSink{ch: ch, exchange: exchange}
}

// DialAMQP connects to url, opens a channel and declares the durable topic exchange.
func DialAMQP(url, exchange string) (*amqp.Connection, *amqp.Channel, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, nil, fmt.Errorf("dial amqp: %w", err)
	}
	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, nil, fmt.Errorf("open channel: %w", err)
	}
	if err := ch.ExchangeDeclare(exchange, "topic", true, false, false, false, nil); err != nil {
		conn.Close()
		return nil, nil, fmt.Errorf("declare exchange %s: %w", exchange, err)
	}
	return conn, ch, nil
}

// RoutingKey returns the routing key for a receipt kind.
func RoutingKey(kind string) string {
	if kind == KindPaymentBill {
		return "print.bill"
	}
	return "print.kitchen"
}

func (s *AMQPSink) Print(ctx context.Context, job Job) error {
	if s.ch == nil || s.ch.IsClosed() {
		return fmt.Errorf("%w: amqp channel closed", ErrUnavailable)
	}

	body, err := json.Marshal(job)
	if err != nil {
		return fmt.Errorf("marshal job: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	err = s.ch.PublishWithContext(ctx,
		s.exchange,                   // exchange
		RoutingKey(job.Receipt.Kind), // routing key
		false,                        // mandatory
		false,                        // immediate
		amqp.Publishing{
			DeliveryMode: amqp.Persistent,
			ContentType:  "application/json",
			Body:         body,
			Timestamp:    time.Now(),
		})
	if err != nil {
		return fmt.Errorf("publish %s: %w", job.Receipt.Kind, err)
	}
	return nil
}
