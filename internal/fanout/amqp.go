package fanout

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"justfood/pkg/config"
	"justfood/pkg/logger"
	"justfood/pkg/models"

	amqp "github.com/rabbitmq/amqp091-go"
)

const notificationsExchange = "notifications_fanout"

// AMQPPublisher mirrors hub events onto a durable fanout exchange so staff
// tooling in other processes can observe order activity. Like the hub it is
// best-effort: the caller logs and discards its errors.
type AMQPPublisher struct {
	conn    *amqp.Connection
	channel *amqp.Channel
	mylog   *logger.Logger
}

func NewAMQPPublisher(cfg *config.RabbitMQConfig, mylog *logger.Logger) (*AMQPPublisher, error) {
	conn, err := amqp.Dial(cfg.URL())
	if err != nil {
		return nil, fmt.Errorf("failed to connect to RabbitMQ: %w", err)
	}

	channel, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to open channel: %w", err)
	}

	err = channel.ExchangeDeclare(
		notificationsExchange, // name
		"fanout",              // type
		true,                  // durable
		false,                 // auto-deleted
		false,                 // internal
		false,                 // no-wait
		nil,                   // arguments
	)
	if err != nil {
		channel.Close()
		conn.Close()
		return nil, fmt.Errorf("failed to declare exchange: %w", err)
	}

	mylog.Info("", "rabbitmq_connected", "Connected to RabbitMQ")
	return &AMQPPublisher{
		conn:    conn,
		channel: channel,
		mylog:   mylog,
	}, nil
}

func (p *AMQPPublisher) PublishNewOrder(order *models.Order) error {
	return p.publish(Event{Type: EventNewOrder, Order: order})
}

func (p *AMQPPublisher) PublishStatusChange(order *models.Order) error {
	return p.publish(Event{Type: EventOrderUpdate, Order: order})
}

func (p *AMQPPublisher) publish(event Event) error {
	body, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	err = p.channel.PublishWithContext(ctx,
		notificationsExchange, // exchange
		"",                    // routing key
		false,                 // mandatory
		false,                 // immediate
		amqp.Publishing{
			DeliveryMode: amqp.Persistent,
			ContentType:  "application/json",
			Body:         body,
			Timestamp:    time.Now(),
		})
	if err != nil {
		return fmt.Errorf("failed to publish event: %w", err)
	}

	p.mylog.Debug("", "event_published",
		fmt.Sprintf("%s published for order %s", event.Type, event.Order.OrderNumber))
	return nil
}

func (p *AMQPPublisher) Close() {
	if p.channel != nil {
		p.channel.Close()
	}
	if p.conn != nil {
		p.conn.Close()
	}
}
