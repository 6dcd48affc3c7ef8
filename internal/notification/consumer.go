package notification

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"log/slog"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"

	"goldenticket-service/internal/event"
)

const maxDeliveryRetries = 3

// messagePublisher is the slice of *amqp.Channel the consumer needs to
// requeue retries and park exhausted messages on the dead letter queue.
type messagePublisher interface {
	PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error
}

// QueueConsumer drains win_noti_events and sends the winner emails.
type QueueConsumer struct {
	conn            *event.RabbitMQConnection
	publisher       messagePublisher
	emailService    *EmailService
	queueName       string
	deadLetterQueue string
}

func NewQueueConsumer(conn *event.RabbitMQConnection, emailService *EmailService) (*QueueConsumer, error) {
	// Set QoS for controlled processing
	err := conn.Channel.Qos(
		5,     // prefetch count
		0,     // prefetch size
		false, // global
	)
	if err != nil {
		return nil, fmt.Errorf("failed to set QoS: %w", err)
	}

	_, err = conn.Channel.QueueDeclare(
		event.WinNotiQueue,
		true,  // durable
		false, // delete when unused
		false, // exclusive
		false, // no-wait
		nil,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to declare queue: %w", err)
	}

	// Declare dead letter queue
	_, err = conn.Channel.QueueDeclare(
		event.WinNotiDeadQueue,
		true,
		false,
		false,
		false,
		nil,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to declare DLQ: %w", err)
	}

	return &QueueConsumer{
		conn:            conn,
		publisher:       conn.Channel,
		emailService:    emailService,
		queueName:       event.WinNotiQueue,
		deadLetterQueue: event.WinNotiDeadQueue,
	}, nil
}

func (q *QueueConsumer) StartConsuming(ctx context.Context) error {
	msgs, err := q.conn.Channel.Consume(
		q.queueName,
		"",    // consumer tag
		false, // auto-ack
		false, // exclusive
		false, // no-local
		false, // no-wait
		nil,   // args
	)
	if err != nil {
		return fmt.Errorf("failed to register consumer: %w", err)
	}

	for {
		select {
		case msg := <-msgs:
			q.handleDelivery(ctx, msg)

		case <-ctx.Done():
			return ctx.Err()
		}
	}
}

// handleDelivery settles exactly one delivery: ack on success, republish
// with a bumped retry count on a retryable failure, park on the DLQ once
// the retries are exhausted. The original delivery is always acked after a
// successful republish so it never piles up against the prefetch window.
func (q *QueueConsumer) handleDelivery(ctx context.Context, msg amqp.Delivery) {
	err := q.processMessage(msg)
	if err == nil {
		msg.Ack(false)
		return
	}
	log.Printf("Error processing message: %v", err)

	retryCount := 0
	if val, ok := msg.Headers["x-retry-count"].(int32); ok {
		retryCount = int(val)
	}

	if retryCount < maxDeliveryRetries {
		if err := q.requeueMessage(ctx, msg, retryCount+1); err != nil {
			log.Printf("Failed to requeue message: %v", err)
			msg.Nack(false, true)
			return
		}
		msg.Ack(false)
		return
	}

	if err := q.sendToDeadLetter(ctx, msg); err != nil {
		log.Printf("Failed to publish message to DLQ: %v", err)
		msg.Nack(false, true)
		return
	}
	msg.Ack(false)
	log.Printf("Message sent to DLQ after %d retries", retryCount)
}

func (q *QueueConsumer) processMessage(msg amqp.Delivery) error {
	var message event.WinMessage
	if err := json.Unmarshal(msg.Body, &message); err != nil {
		return fmt.Errorf("failed to unmarshal message: %w", err)
	}

	win := message.Payload
	slog.Info("Win event received", "prize", win.PrizeTitle, "email", win.ParticipantEmail)

	if err := q.emailService.SendWinEmail(win.ParticipantEmail, win.ParticipantName, win.PrizeTitle); err != nil {
		return fmt.Errorf("failed to send win email: %w", err)
	}
	return nil
}

func (q *QueueConsumer) requeueMessage(ctx context.Context, msg amqp.Delivery, retryCount int) error {
	headers := msg.Headers
	if headers == nil {
		headers = amqp.Table{}
	}
	headers["x-retry-count"] = int32(retryCount)

	// Exponential backoff via per-message expiration
	delay := time.Duration(retryCount*retryCount) * time.Second

	return q.publisher.PublishWithContext(
		ctx,
		"",          // exchange
		q.queueName, // routing key
		false,       // mandatory
		false,       // immediate
		amqp.Publishing{
			ContentType: "application/json",
			Body:        msg.Body,
			Headers:     headers,
			Expiration:  fmt.Sprintf("%d", delay.Milliseconds()),
		},
	)
}

func (q *QueueConsumer) sendToDeadLetter(ctx context.Context, msg amqp.Delivery) error {
	return q.publisher.PublishWithContext(
		ctx,
		"",                // exchange
		q.deadLetterQueue, // routing key
		false,             // mandatory
		false,             // immediate
		amqp.Publishing{
			ContentType: "application/json",
			Body:        msg.Body,
			Headers:     msg.Headers,
		},
	)
}
