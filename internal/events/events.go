// Package events publishes resource change events to an AMQP broker so
// that caches and downstream consumers can invalidate stale data.
//
// The broker is optional. When AMQP_URL is not set, the client is inert
// and all publishes are no-ops. Publish failures are logged and never
// propagated, a broken broker must not fail API writes.
package events

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/rabbitmq/amqp091-go"
	"github.com/rs/zerolog/log"
)

const (
	exchangeName   = "hauskasse"
	queueName      = "resource-changes"
	publishTimeout = 5 * time.Second
)

// ChangeMessage notifies consumers that a resource changed. Consumers
// re-fetch the resource from the API, the message carries no payload
// beyond identification.
type ChangeMessage struct {
	Resource  string    `json:"resource"`  // resource type, e.g. "transaction"
	ID        string    `json:"id"`        // UUID of the changed resource
	Action    string    `json:"action"`    // "created", "updated" or "deleted"
	Timestamp time.Time `json:"timestamp"` // time the change was recorded
}

// Client publishes change messages. The zero value and a nil *Client
// are valid and silently discard all messages.
type Client struct {
	conn    *amqp091.Connection
	channel *amqp091.Channel
}

// Default is the client used by the package level Publish function.
// It is set in main after connecting to the broker and stays nil in
// tests, where publishes are silently discarded.
var Default *Client

// Publish sends a change message through the Default client.
func Publish(ctx context.Context, resource, id, action string) {
	Default.Publish(ctx, resource, id, action)
}

// Connect initializes the AMQP connection from the AMQP_URL environment
// variable. An unset AMQP_URL returns an inert client.
func Connect() (*Client, error) {
	url, ok := os.LookupEnv("AMQP_URL")
	if !ok || url == "" {
		return &Client{}, nil
	}

	conn, err := amqp091.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("dial AMQP: %w", err)
	}

	channel, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("open channel: %w", err)
	}

	client := &Client{
		conn:    conn,
		channel: channel,
	}

	if err := client.setup(); err != nil {
		client.Close()
		return nil, fmt.Errorf("setup exchange and queue: %w", err)
	}

	return client, nil
}

func (c *Client) setup() error {
	err := c.channel.ExchangeDeclare(
		exchangeName,
		"direct",
		true,  // durable
		false, // auto-deleted
		false, // internal
		false, // no-wait
		nil,
	)
	if err != nil {
		return fmt.Errorf("declare exchange: %w", err)
	}

	_, err = c.channel.QueueDeclare(
		queueName,
		true,  // durable
		false, // delete when unused
		false, // exclusive
		false, // no-wait
		nil,
	)
	if err != nil {
		return fmt.Errorf("declare queue: %w", err)
	}

	err = c.channel.QueueBind(
		queueName,
		queueName, // routing key, same as queue name for direct exchange
		exchangeName,
		false,
		nil,
	)
	if err != nil {
		return fmt.Errorf("bind queue: %w", err)
	}

	return nil
}

// Publish sends a change message for the resource. Failures are logged,
// never returned.
func (c *Client) Publish(ctx context.Context, resource, id, action string) {
	if c == nil || c.channel == nil {
		return
	}

	body, err := json.Marshal(ChangeMessage{
		Resource:  resource,
		ID:        id,
		Action:    action,
		Timestamp: time.Now(),
	})
	if err != nil {
		log.Error().Err(err).Str("resource", resource).Str("id", id).Msg("events")
		return
	}

	ctx, cancel := context.WithTimeout(ctx, publishTimeout)
	defer cancel()

	err = c.channel.PublishWithContext(
		ctx,
		exchangeName,
		queueName,
		false, // mandatory
		false, // immediate
		amqp091.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp091.Persistent,
			Timestamp:    time.Now(),
			Body:         body,
		},
	)
	if err != nil {
		log.Error().Err(err).Str("resource", resource).Str("id", id).Str("action", action).Msg("events")
		return
	}

	log.Debug().Str("resource", resource).Str("id", id).Str("action", action).Msg("events")
}

// Close shuts down the channel and connection.
func (c *Client) Close() error {
	if c == nil {
		return nil
	}

	if c.channel != nil {
		c.channel.Close()
	}
	if c.conn != nil {
		return c.conn.Close()
	}

	return nil
}
