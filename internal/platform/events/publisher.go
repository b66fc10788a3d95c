// Package events publishes budget alert notifications to a message broker so
// downstream consumers (mailers, push notifiers) can react to overspending.
package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/rabbitmq/amqp091-go"

	"github.com/fintrackr/personal_finance_app/internal/core/domain"
)

const (
	exchangeName = "pfa.events"
	queueName    = "budget.alerts"
)

// BudgetAlertEvent is the wire payload for a triggered budget alert.
type BudgetAlertEvent struct {
	UserID    string             `json:"userId"`
	Alert     domain.BudgetAlert `json:"alert"`
	Timestamp time.Time          `json:"timestamp"`
}

// AlertPublisher publishes budget alert events. A nil *AlertPublisher is a
// valid no-op publisher, used when no broker is configured.
type AlertPublisher struct {
	conn    *amqp091.Connection
	channel *amqp091.Channel
}

// NewAlertPublisher connects to the broker and declares the durable exchange
// and queue for budget alerts.
func NewAlertPublisher(url string) (*AlertPublisher, error) {
	conn, err := amqp091.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("dial AMQP: %w", err)
	}

	channel, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("open channel: %w", err)
	}

	p := &AlertPublisher{conn: conn, channel: channel}
	if err := p.setup(); err != nil {
		p.Close()
		return nil, fmt.Errorf("setup exchange and queue: %w", err)
	}
	return p, nil
}

func (p *AlertPublisher) setup() error {
	err := p.channel.ExchangeDeclare(
		exchangeName, // name
		"direct",     // type
		true,         // durable
		false,        // auto-deleted
		false,        // internal
		false,        // no-wait
		nil,          // arguments
	)
	if err != nil {
		return fmt.Errorf("declare exchange: %w", err)
	}

	_, err = p.channel.QueueDeclare(
		queueName, // name
		true,      // durable
		false,     // delete when unused
		false,     // exclusive
		false,     // no-wait
		nil,       // arguments
	)
	if err != nil {
		return fmt.Errorf("declare queue: %w", err)
	}

	err = p.channel.QueueBind(
		queueName,    // queue name
		queueName,    // routing key (same as queue name for direct exchange)
		exchangeName, // exchange
		false,
		nil,
	)
	if err != nil {
		return fmt.Errorf("bind queue: %w", err)
	}

	return nil
}

// PublishBudgetAlert publishes an alert for userID. Safe to call on a nil
// receiver.
func (p *AlertPublisher) PublishBudgetAlert(ctx context.Context, userID string, alert domain.BudgetAlert) error {
	if p == nil {
		return nil
	}

	body, err := json.Marshal(BudgetAlertEvent{
		UserID:    userID,
		Alert:     alert,
		Timestamp: time.Now(),
	})
	if err != nil {
		return fmt.Errorf("marshal event: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	err = p.channel.PublishWithContext(
		ctx,
		exchangeName, // exchange
		queueName,    // routing key
		false,        // mandatory
		false,        // immediate
		amqp091.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp091.Persistent,
			Timestamp:    time.Now(),
			Body:         body,
		},
	)
	if err != nil {
		return fmt.Errorf("publish event: %w", err)
	}
	return nil
}

// Close releases the channel and connection. Safe to call on a nil receiver.
func (p *AlertPublisher) Close() error {
	if p == nil {
		return nil
	}
	if p.channel != nil {
		p.channel.Close()
	}
	if p.conn != nil {
		return p.conn.Close()
	}
	return nil
}
