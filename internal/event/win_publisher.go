package event

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"

	"goldenticket-service/pkg/utils"
)

type WinPublisher struct {
	conn              *RabbitMQConnection
	messagesPublished int64
	messagesFailed    int64
	lastPublishTime   time.Time
}

// NewWinPublisher creates a new win event publisher
func NewWinPublisher(conn *RabbitMQConnection) *WinPublisher {
	return &WinPublisher{
		conn:            conn,
		lastPublishTime: time.Now(),
	}
}

// PublishWin publishes a win event to the win_noti_events queue
func (p *WinPublisher) PublishWin(ctx context.Context, event WinEvent) error {
	// Ensure the queue exists
	_, err := p.conn.Channel.QueueDeclare(
		WinNotiQueue, // queue name
		true,         // durable
		false,        // delete when unused
		false,        // exclusive
		false,        // no-wait
		nil,          // arguments
	)
	if err != nil {
		p.messagesFailed++
		return fmt.Errorf("failed to declare queue: %w", err)
	}

	message := WinMessage{
		ID:         utils.GenerateRandomStringWithLength(6),
		Payload:    event,
		RetryCount: 0,
		MaxRetries: 5,
		CreatedAt:  time.Now(),
	}

	body, err := json.Marshal(message)
	if err != nil {
		p.messagesFailed++
		return fmt.Errorf("failed to marshal win event: %w", err)
	}

	err = p.conn.Channel.PublishWithContext(
		ctx,
		"",           // exchange
		WinNotiQueue, // routing key (queue name)
		false,        // mandatory
		false,        // immediate
		amqp.Publishing{
			DeliveryMode: amqp.Persistent,
			ContentType:  "application/json",
			Body:         body,
			Timestamp:    time.Now(),
		},
	)
	if err != nil {
		p.messagesFailed++
		return fmt.Errorf("failed to publish win event: %w", err)
	}

	p.messagesPublished++
	p.lastPublishTime = time.Now()

	slog.Info("Win event published",
		"queue", WinNotiQueue,
		"prize", event.PrizeTitle,
	)

	return nil
}
