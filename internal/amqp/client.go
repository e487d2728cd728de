package amqp

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dafibh/tally/tally-backend/internal/domain"
	"github.com/google/uuid"
	"github.com/rabbitmq/amqp091-go"
	"github.com/rs/zerolog/log"
)

const publishTimeout = 5 * time.Second

// Client publishes and consumes ledger change messages on a durable direct exchange
type Client struct {
	conn         *amqp091.Connection
	channel      *amqp091.Channel
	exchangeName string
	queueName    string
}

// NewClient dials the broker and declares the exchange, queue and binding
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
	if err := c.channel.ExchangeDeclare(c.exchangeName, "direct", true, false, false, false, nil); err != nil {
		return fmt.Errorf("declare exchange: %w", err)
	}

	if _, err := c.channel.QueueDeclare(c.queueName, true, false, false, false, nil); err != nil {
		return fmt.Errorf("declare queue: %w", err)
	}

	// routing key is the queue name
	if err := c.channel.QueueBind(c.queueName, c.queueName, c.exchangeName, false, nil); err != nil {
		return fmt.Errorf("bind queue: %w", err)
	}

	// one unacked message at a time keeps recalculation per owner ordered
	if err := c.channel.Qos(1, 0, false); err != nil {
		return fmt.Errorf("set qos: %w", err)
	}
	return nil
}

// NotifyLedgerChanged publishes a persistent ledger change message.
// It satisfies service.LedgerChangeNotifier.
func (c *Client) NotifyLedgerChanged(ctx context.Context, ownerID uuid.UUID, period domain.Period) error {
	msg := NewLedgerChangedMessage(ownerID, period)
	body, err := msg.ToJSON()
	if err != nil {
		return fmt.Errorf("marshal message: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, publishTimeout)
	defer cancel()

	err = c.channel.PublishWithContext(
		ctx,
		c.exchangeName,
		c.queueName,
		false, // mandatory
		false, // immediate
		amqp091.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp091.Persistent,
			Timestamp:    msg.Timestamp,
			Body:         body,
		},
	)
	if err != nil {
		return fmt.Errorf("publish message: %w", err)
	}

	log.Debug().
		Str("owner_id", ownerID.String()).
		Str("period", period.String()).
		Str("exchange", c.exchangeName).
		Msg("Published ledger change")
	return nil
}

// LedgerChangeHandler processes one decoded message
type LedgerChangeHandler func(ctx context.Context, msg *LedgerChangedMessage) error

// ConsumeLedgerChanges blocks, dispatching deliveries to handler until ctx is done
func (c *Client) ConsumeLedgerChanges(ctx context.Context, handler LedgerChangeHandler) error {
	msgs, err := c.channel.Consume(
		c.queueName,
		"",    // consumer
		false, // auto-ack
		false, // exclusive
		false, // no-local
		false, // no-wait
		nil,
	)
	if err != nil {
		return fmt.Errorf("start consuming: %w", err)
	}

	log.Info().Str("queue", c.queueName).Msg("Started consuming ledger changes")

	for {
		select {
		case <-ctx.Done():
			log.Info().Err(ctx.Err()).Msg("Stopping ledger change consumption")
			return ctx.Err()
		case delivery, ok := <-msgs:
			if !ok {
				return errors.New("message channel closed")
			}
			handleDelivery(ctx, delivery, handler)
		}
	}
}

// handleDelivery acks on success, drops messages that can never succeed and
// requeues transient failures
func handleDelivery(ctx context.Context, delivery amqp091.Delivery, handler LedgerChangeHandler) {
	msg, err := LedgerChangedMessageFromJSON(delivery.Body)
	if err != nil {
		log.Error().Err(err).Msg("Discarding malformed ledger change")
		_ = delivery.Nack(false, false)
		return
	}

	logger := log.With().
		Str("owner_id", msg.OwnerID.String()).
		Str("period", msg.Period().String()).
		Logger()

	if err := handler(ctx, msg); err != nil {
		if isPermanent(err) {
			logger.Warn().Err(err).Msg("Discarding ledger change")
			_ = delivery.Nack(false, false)
			return
		}
		logger.Error().Err(err).Msg("Failed to handle ledger change, requeueing")
		_ = delivery.Nack(false, true)
		return
	}

	_ = delivery.Ack(false)
	logger.Debug().Msg("Processed ledger change")
}

func isPermanent(err error) bool {
	return errors.Is(err, domain.ErrNotFound) ||
		errors.Is(err, domain.ErrInvalidPeriod) ||
		errors.Is(err, domain.ErrValidation) ||
		errors.Is(err, ErrInvalidMessage)
}

// Close closes the channel and connection
func (c *Client) Close() error {
	if c.channel != nil {
		c.channel.Close()
	}
	if c.conn != nil {
		return c.conn.Close()
	}
	return nil
}
