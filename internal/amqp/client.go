// Package amqp moves ledger events between the web process and the statement
// worker over RabbitMQ.
package amqp

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/rabbitmq/amqp091-go"
)

type Client struct {
	conn         *amqp091.Connection
	channel      *amqp091.Channel
	exchangeName string
	queueName    string
}

func NewClient(url, exchangeName, queueName string) (*Client, error) {
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
		conn:         conn,
		channel:      channel,
		exchangeName: exchangeName,
		queueName:    queueName,
	}

	if err := client.setup(); err != nil {
		client.Close()
		return nil, fmt.Errorf("setup exchange and queue: %w", err)
	}

	return client, nil
}

func (c *Client) setup() error {
	err := c.channel.ExchangeDeclare(
		c.exchangeName, // name
		"direct",       // type
		true,           // durable
		false,          // auto-deleted
		false,          // internal
		false,          // no-wait
		nil,            // arguments
	)
	if err != nil {
		return fmt.Errorf("declare exchange: %w", err)
	}

	_, err = c.channel.QueueDeclare(
		c.queueName, // name
		true,        // durable
		false,       // delete when unused
		false,       // exclusive
		false,       // no-wait
		nil,         // arguments
	)
	if err != nil {
		return fmt.Errorf("declare queue: %w", err)
	}

	err = c.channel.QueueBind(
		c.queueName,    // queue name
		c.queueName,    // routing key (same as queue name for direct exchange)
		c.exchangeName, // exchange
		false,
		nil,
	)
	if err != nil {
		return fmt.Errorf("bind queue: %w", err)
	}

	return nil
}

// PublishTransactionRecorded announces a committed transaction to the
// statement queue.
func (c *Client) PublishTransactionRecorded(ctx context.Context, ownerID, transactionID int64) error {
	msg := TransactionRecordedMessage{TransactionID: transactionID, OwnerID: ownerID}
	if err := c.publish(ctx, KindTransactionRecorded, msg); err != nil {
		return err
	}
	slog.InfoContext(ctx, "Published transaction event",
		"transaction_id", transactionID,
		"exchange", c.exchangeName,
		"queue", c.queueName)
	return nil
}

// PublishTransferExecuted announces a committed transfer.
func (c *Client) PublishTransferExecuted(ctx context.Context, ownerID, transferID int64) error {
	msg := TransferExecutedMessage{TransferID: transferID, OwnerID: ownerID}
	if err := c.publish(ctx, KindTransferExecuted, msg); err != nil {
		return err
	}
	slog.InfoContext(ctx, "Published transfer event",
		"transfer_id", transferID,
		"exchange", c.exchangeName,
		"queue", c.queueName)
	return nil
}

func (c *Client) publish(ctx context.Context, kind string, payload any) error {
	body, err := encodeMessage(kind, payload)
	if err != nil {
		return fmt.Errorf("encode message: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	err = c.channel.PublishWithContext(
		ctx,
		c.exchangeName, // exchange
		c.queueName,    // routing key
		false,          // mandatory
		false,          // immediate
		amqp091.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp091.Persistent,
			Timestamp:    time.Now(),
			Body:         body,
		},
	)
	if err != nil {
		return fmt.Errorf("publish message: %w", err)
	}
	return nil
}

// ConsumeMessages dispatches queue deliveries to the given handlers until the
// context ends. A failed message is nacked back onto the queue for
// redelivery.
func (c *Client) ConsumeMessages(
	ctx context.Context,
	onTransaction func(ctx context.Context, msg *TransactionRecordedMessage) error,
	onTransfer func(ctx context.Context, msg *TransferExecutedMessage) error,
) error {
	deliveries, err := c.channel.Consume(
		c.queueName, // queue
		"",          // consumer tag
		false,       // auto-ack
		false,       // exclusive
		false,       // no-local
		false,       // no-wait
		nil,         // args
	)
	if err != nil {
		return fmt.Errorf("start consuming: %w", err)
	}

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case d, ok := <-deliveries:
			if !ok {
				return fmt.Errorf("delivery channel closed")
			}
			if err := c.dispatch(ctx, d.Body, onTransaction, onTransfer); err != nil {
				slog.ErrorContext(ctx, "Failed to handle message", "error", err)
				_ = d.Nack(false, true) // requeue
				continue
			}
			_ = d.Ack(false)
		}
	}
}

func (c *Client) dispatch(
	ctx context.Context,
	body []byte,
	onTransaction func(ctx context.Context, msg *TransactionRecordedMessage) error,
	onTransfer func(ctx context.Context, msg *TransferExecutedMessage) error,
) error {
	env, err := decodeEnvelope(body)
	if err != nil {
		return err
	}

	switch env.Kind {
	case KindTransactionRecorded:
		var msg TransactionRecordedMessage
		if err := decodePayload(env, &msg); err != nil {
			return err
		}
		return onTransaction(ctx, &msg)
	case KindTransferExecuted:
		var msg TransferExecutedMessage
		if err := decodePayload(env, &msg); err != nil {
			return err
		}
		return onTransfer(ctx, &msg)
	default:
		return fmt.Errorf("unknown message kind: %s", env.Kind)
	}
}

func (c *Client) Close() error {
	var firstErr error
	if c.channel != nil {
		if err := c.channel.Close(); err != nil {
			firstErr = err
		}
	}
	if c.conn != nil {
		if err := c.conn.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}
