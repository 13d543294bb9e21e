package common

import (
	"context"
	"fmt"

	amqp "github.com/rabbitmq/amqp091-go"
)

type Exchange string

type Queue string

type RoutingKey string

// Event topology. Registrations are published on the account exchange and
// routed to the activation email queue consumed by mailservice.
const (
	AccountExchange      Exchange   = "inkpost.accounts"
	ActivationEmailQueue Queue      = "activation_emails"
	UserRegisteredKey    RoutingKey = "user.registered"
)

type Publisher interface {
	Publish(ctx context.Context, body []byte, key RoutingKey, exchange Exchange) error
}

type Consumer interface {
	Consume(queue Queue) (<-chan amqp.Delivery, error)
}

// Broker is a single AMQP connection with one channel, shared by every
// publisher and consumer in the process.
type Broker struct {
	conn *amqp.Connection
	ch   *amqp.Channel
}

func NewBroker(uri string) (*Broker, error) {
	conn, err := amqp.Dial(uri)
	if err != nil {
		return nil, fmt.Errorf("dial amqp: %w", err)
	}

	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("open channel: %w", err)
	}

	return &Broker{conn: conn, ch: ch}, nil
}

func (b *Broker) Close() error {
	if err := b.ch.Close(); err != nil {
		return err
	}

	return b.conn.Close()
}

// DeclareAccountEvents declares the account exchange and binds the activation
// email queue to it. Must run once at startup, before the first publish.
func (b *Broker) DeclareAccountEvents() error {
	if err := b.ch.ExchangeDeclare(string(AccountExchange), "direct", true, false, false, false, nil); err != nil {
		return err
	}

	if _, err := b.ch.QueueDeclare(string(ActivationEmailQueue), true, false, false, false, nil); err != nil {
		return err
	}

	return b.ch.QueueBind(string(ActivationEmailQueue), string(UserRegisteredKey), string(AccountExchange), false, nil)
}

// Publish sends a JSON body to the exchange. Messages are persistent so a
// broker restart does not drop queued activation emails.
func (b *Broker) Publish(ctx context.Context, body []byte, key RoutingKey, exchange Exchange) error {
	err := b.ch.PublishWithContext(ctx, string(exchange), string(key), false, false, amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		Body:         body,
	})
	if err != nil {
		return fmt.Errorf("publish %s: %w", key, err)
	}

	return nil
}

// Consume opens a manually acked delivery stream on the queue.
func (b *Broker) Consume(queue Queue) (<-chan amqp.Delivery, error) {
	msgs, err := b.ch.Consume(string(queue), "", false, false, false, false, nil)
	if err != nil {
		return nil, fmt.Errorf("consume %s: %w", queue, err)
	}

	return msgs, nil
}
