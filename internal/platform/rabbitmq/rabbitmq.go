package rabbitmq

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	amqp "github.com/rabbitmq/amqp091-go"
)

// Message is consumed message.
type Message struct {
	Body    []byte
	Headers map[string]any
}

// Header returns string value of header or empty string.
func (m Message) Header(name string) string {
	value, _ := m.Headers[name].(string)
	return value
}

// HandlerFunc is function which handles messages.
type HandlerFunc func(ctx context.Context, message Message) error

// RabbitMQ consumes and publishes amqp messages.
type RabbitMQ struct {
	channel   *amqp.Channel
	exchange  string
	isRunning chan struct{}
}

// NewRabbitMQ returns new RabbitMQ.
func NewRabbitMQ(connection *amqp.Connection, exchange string) (*RabbitMQ, error) {
	channel, err := connection.Channel()
	if err != nil {
		return nil, fmt.Errorf("can't open channel: %w", err)
	}

	// sync passes are long, one unacked command at a time
	if err := channel.Qos(1, 0, false); err != nil {
		return nil, fmt.Errorf("can't set channel qos: %w", err)
	}

	return &RabbitMQ{
		channel:  channel,
		exchange: exchange,
	}, nil
}

// DeclareQueue declares durable exchange and queue and binds queue to routing key.
func (mq *RabbitMQ) DeclareQueue(queue, routingKey string) error {
	if err := mq.channel.ExchangeDeclare(mq.exchange, amqp.ExchangeDirect, true, false, false, false, nil); err != nil {
		return fmt.Errorf("can't declare exchange: %w", err)
	}
	if _, err := mq.channel.QueueDeclare(queue, true, false, false, false, nil); err != nil {
		return fmt.Errorf("can't declare queue: %w", err)
	}
	if err := mq.channel.QueueBind(queue, routingKey, mq.exchange, false, nil); err != nil {
		return fmt.Errorf("can't bind queue: %w", err)
	}

	return nil
}

// Publish publishes persistent message with headers to routing key.
func (mq *RabbitMQ) Publish(ctx context.Context, routingKey string, message []byte, headers map[string]any) error {
	msg := amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		Headers:      amqp.Table(headers),
		Body:         message,
	}

	return mq.channel.PublishWithContext(
		ctx,
		mq.exchange,
		routingKey,
		false,
		false,
		msg,
	)
}

// Consume consumes messages from queue and passes deliveries to provided handler function.
// Messages are acked when handler returns nil and nacked without requeue otherwise.
// It returns channel with errors from handler function and consuming process.
// Function works asynchronously, it consumes messages in background as long as context is not closed.
func (mq *RabbitMQ) Consume(ctx context.Context, queue string, handler HandlerFunc) (<-chan error, error) {
	consumerID, err := uuid.NewUUID()
	if err != nil {
		return nil, fmt.Errorf("can't create consumer ID: %w", err)
	}

	deliveries, err := mq.channel.Consume(
		queue,
		consumerID.String(),
		false, // auto acknowledge
		false,
		false,
		false,
		nil,
	)
	if err != nil {
		return nil, fmt.Errorf("can't start consuming: %w", err)
	}

	consumingErrors := make(chan error)
	mq.isRunning = make(chan struct{})
	go func() {
		defer close(mq.isRunning)
		defer close(consumingErrors)
		mq.consumeMessages(ctx, deliveries, consumingErrors, handler)
	}()

	go func() {
		<-ctx.Done()
		_ = mq.channel.Cancel(consumerID.String(), false)
	}()

	return consumingErrors, nil
}

func (mq *RabbitMQ) consumeMessages(
	ctx context.Context,
	deliveries <-chan amqp.Delivery,
	consumingErrors chan error,
	handler HandlerFunc,
) {
	for delivery := range deliveries {
		err := handler(ctx, Message{Body: delivery.Body, Headers: delivery.Headers})
		if err != nil {
			_ = pushError(ctx, err, consumingErrors)
			if err := acknowledge(ctx, "nack", func() error { return delivery.Nack(false, false) }, consumingErrors); err != nil {
				return
			}
			continue
		}
		if err := acknowledge(ctx, "ack", func() error { return delivery.Ack(false) }, consumingErrors); err != nil {
			return
		}
		select {
		case <-ctx.Done():
			return
		default:
		}
	}
}

func acknowledge(ctx context.Context, kind string, ack func() error, consumingErrors chan error) error {
	if err := ack(); err != nil {
		if pushErr := pushError(ctx, fmt.Errorf("can't %s message: %w", kind, err), consumingErrors); pushErr != nil {
			return pushErr
		}
	}
	return nil
}

// Done returns channel which will be closed when consuming will be finished.
func (mq *RabbitMQ) Done() chan struct{} {
	return mq.isRunning
}

func pushError(ctx context.Context, err error, errChan chan error) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	case errChan <- err:
	}
	return nil
}
